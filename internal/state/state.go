// Package state holds the mutable application state shared by the controls,
// the animation loop and the picker: animation flags, pointer, tooltip, the
// frame counter and a log of control events.
//
// A Manager is owned by the Bubble Tea update loop, which delivers every
// message on a single goroutine, so it carries no locks.
package state

import (
	"time"

	"github.com/litescript/ls-orrery/internal/geom"
)

// EventType represents the type of control event.
type EventType string

const (
	EventPaused       EventType = "PAUSED"
	EventResumed      EventType = "RESUMED"
	EventThemeDark    EventType = "THEME_DARK"
	EventThemeLight   EventType = "THEME_LIGHT"
	EventSpeedChanged EventType = "SPEED_CHANGED"
	EventCameraTilted EventType = "CAMERA_TILTED"
)

// Event records one user-driven state change.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Frame     uint64    `json:"frame"`
	Planet    string    `json:"planet,omitempty"`
	Value     float64   `json:"value,omitempty"`
}

// Flags are the process-wide animation flags.
type Flags struct {
	Paused   bool
	DarkMode bool
}

// Pointer is the last known pointer position.
type Pointer struct {
	NDC    geom.NDC // Normalized coordinates in [-1, 1] × [-1, 1]
	EventX int      // Screen column of the last pointer-move event
	EventY int      // Screen row of the last pointer-move event
	Active bool     // True while the last pointer event was over the scene
}

// Tooltip is the floating label naming the planet under the pointer.
type Tooltip struct {
	Visible bool
	Text    string
	X, Y    int
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents      int
	StartDark      bool
	TooltipOffsetX int // Columns right of the pointer event
	TooltipOffsetY int // Rows below the pointer event
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:      50,
		StartDark:      true,
		TooltipOffsetX: 2,
		TooltipOffsetY: 1,
	}
}

// Manager owns the shared application state.
type Manager struct {
	flags   Flags
	pointer Pointer
	tooltip Tooltip
	frame   uint64

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	offsetX, offsetY int
	now              func() time.Time
}

// NewManager creates a new state manager. The animation starts running.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		flags:     Flags{DarkMode: cfg.StartDark},
		events:    make([]Event, 0, maxEvents),
		maxEvents: maxEvents,
		offsetX:   cfg.TooltipOffsetX,
		offsetY:   cfg.TooltipOffsetY,
		now:       time.Now,
	}
}

// Flags returns the current animation flags.
func (m *Manager) Flags() Flags {
	return m.flags
}

// Paused reports whether orbital motion is paused.
func (m *Manager) Paused() bool {
	return m.flags.Paused
}

// DarkMode reports whether the dark theme is active.
func (m *Manager) DarkMode() bool {
	return m.flags.DarkMode
}

// TogglePause flips the pause flag and returns the new value.
func (m *Manager) TogglePause() bool {
	m.flags.Paused = !m.flags.Paused
	if m.flags.Paused {
		m.addEvent(Event{Type: EventPaused})
	} else {
		m.addEvent(Event{Type: EventResumed})
	}
	return m.flags.Paused
}

// ToggleTheme flips the dark-mode flag and returns the new value.
func (m *Manager) ToggleTheme() bool {
	m.flags.DarkMode = !m.flags.DarkMode
	if m.flags.DarkMode {
		m.addEvent(Event{Type: EventThemeDark})
	} else {
		m.addEvent(Event{Type: EventThemeLight})
	}
	return m.flags.DarkMode
}

// RecordSpeed logs a speed change made through a control.
func (m *Manager) RecordSpeed(planet string, speed float64) {
	m.addEvent(Event{Type: EventSpeedChanged, Planet: planet, Value: speed})
}

// RecordCameraTilt logs a camera elevation change in degrees.
func (m *Manager) RecordCameraTilt(deg float64) {
	m.addEvent(Event{Type: EventCameraTilted, Value: deg})
}

// MovePointer records a pointer-move event: its normalized coordinates and
// the raw screen cell it happened at. The tooltip position follows the raw
// event, offset by the configured amount; it changes only here.
func (m *Manager) MovePointer(ndc geom.NDC, x, y int) {
	m.pointer = Pointer{NDC: ndc, EventX: x, EventY: y, Active: true}
	m.tooltip.X = x + m.offsetX
	m.tooltip.Y = y + m.offsetY
}

// LeavePointer marks the pointer as off the scene, so nothing is picked
// until it moves back.
func (m *Manager) LeavePointer() {
	m.pointer.Active = false
}

// Pointer returns the last pointer state.
func (m *Manager) Pointer() Pointer {
	return m.pointer
}

// ShowTooltip makes the tooltip visible with the given text.
func (m *Manager) ShowTooltip(text string) {
	m.tooltip.Visible = true
	m.tooltip.Text = text
}

// HideTooltip hides the tooltip. Its last text and position are kept.
func (m *Manager) HideTooltip() {
	m.tooltip.Visible = false
}

// Tooltip returns the tooltip state.
func (m *Manager) Tooltip() Tooltip {
	return m.tooltip
}

// AdvanceFrame increments the frame counter and returns the new count.
func (m *Manager) AdvanceFrame() uint64 {
	m.frame++
	return m.frame
}

// Frame returns the number of frames rendered so far.
func (m *Manager) Frame() uint64 {
	return m.frame
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	e.Timestamp = m.now()
	e.Frame = m.frame
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Flags   Flags
	Pointer Pointer
	Tooltip Tooltip
	Frame   uint64
	Events  []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Flags:   m.flags,
		Pointer: m.pointer,
		Tooltip: m.tooltip,
		Frame:   m.frame,
		Events:  m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}
