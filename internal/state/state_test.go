package state

import (
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/geom"
)

func TestNewManager(t *testing.T) {
	m := NewManager(DefaultConfig())

	if m == nil {
		t.Fatal("NewManager returned nil")
	}
	if m.Paused() {
		t.Error("animation should start running")
	}
	if !m.DarkMode() {
		t.Error("default config should start in dark mode")
	}
	if m.Frame() != 0 {
		t.Errorf("Frame = %d, want 0", m.Frame())
	}
	if m.Tooltip().Visible {
		t.Error("tooltip should start hidden")
	}
	if p := m.Pointer(); p.Active || p.NDC != (geom.NDC{}) {
		t.Errorf("pointer should start at (0, 0) inactive, got %+v", p)
	}
}

func TestManager_StartLight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartDark = false
	if NewManager(cfg).DarkMode() {
		t.Error("StartDark=false should start in light mode")
	}
}

func TestManager_TogglePauseTwice(t *testing.T) {
	m := NewManager(DefaultConfig())
	before := m.Flags()

	if !m.TogglePause() {
		t.Error("first toggle should pause")
	}
	if m.TogglePause() {
		t.Error("second toggle should resume")
	}
	if m.Flags() != before {
		t.Errorf("flags = %+v, want %+v", m.Flags(), before)
	}

	events := m.RecentEvents(10)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type != EventPaused || events[1].Type != EventResumed {
		t.Errorf("event types = %q, %q", events[0].Type, events[1].Type)
	}
}

func TestManager_ToggleThemeTwice(t *testing.T) {
	m := NewManager(DefaultConfig())

	if m.ToggleTheme() {
		t.Error("first toggle from dark should switch to light")
	}
	if !m.ToggleTheme() {
		t.Error("second toggle should switch back to dark")
	}

	events := m.RecentEvents(10)
	if len(events) != 2 || events[0].Type != EventThemeLight || events[1].Type != EventThemeDark {
		t.Errorf("unexpected events %+v", events)
	}
}

func TestManager_MovePointer(t *testing.T) {
	m := NewManager(DefaultConfig())

	m.MovePointer(geom.NDC{X: 0.25, Y: -0.5}, 40, 12)

	p := m.Pointer()
	if !p.Active || p.NDC != (geom.NDC{X: 0.25, Y: -0.5}) || p.EventX != 40 || p.EventY != 12 {
		t.Errorf("pointer = %+v", p)
	}

	tip := m.Tooltip()
	if tip.X != 42 || tip.Y != 13 {
		t.Errorf("tooltip position = (%d, %d), want (42, 13)", tip.X, tip.Y)
	}
}

func TestManager_LeavePointer(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.MovePointer(geom.NDC{X: 0.5}, 30, 4)
	m.LeavePointer()

	p := m.Pointer()
	if p.Active {
		t.Error("pointer should be inactive after leaving")
	}
	if p.EventX != 30 || p.NDC.X != 0.5 {
		t.Errorf("leaving should keep the last position, got %+v", p)
	}
}

func TestManager_TooltipFollowsOnlyPointerEvents(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.MovePointer(geom.NDC{}, 10, 5)

	m.ShowTooltip("Earth")
	m.AdvanceFrame()
	m.ShowTooltip("Mars")

	tip := m.Tooltip()
	if !tip.Visible || tip.Text != "Mars" {
		t.Errorf("tooltip = %+v, want visible Mars", tip)
	}
	if tip.X != 12 || tip.Y != 6 {
		t.Errorf("tooltip moved without a pointer event: (%d, %d)", tip.X, tip.Y)
	}

	m.HideTooltip()
	if m.Tooltip().Visible {
		t.Error("tooltip should be hidden")
	}
}

func TestManager_AdvanceFrame(t *testing.T) {
	m := NewManager(DefaultConfig())
	for i := 1; i <= 3; i++ {
		if got := m.AdvanceFrame(); got != uint64(i) {
			t.Errorf("AdvanceFrame = %d, want %d", got, i)
		}
	}
}

func TestManager_RecordSpeed(t *testing.T) {
	m := NewManager(DefaultConfig())
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return fixed }
	m.AdvanceFrame()

	m.RecordSpeed("Earth", 0.02)

	events := m.RecentEvents(1)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Type != EventSpeedChanged || e.Planet != "Earth" || e.Value != 0.02 {
		t.Errorf("event = %+v", e)
	}
	if !e.Timestamp.Equal(fixed) || e.Frame != 1 {
		t.Errorf("event stamp = %v frame %d", e.Timestamp, e.Frame)
	}
}

func TestManager_EventRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 5
	m := NewManager(cfg)

	for i := 0; i < 8; i++ {
		m.RecordCameraTilt(float64(i))
	}

	events := m.RecentEvents(100)
	if len(events) != cfg.MaxEvents {
		t.Fatalf("events = %d, want %d", len(events), cfg.MaxEvents)
	}
	// Oldest surviving event is #3, newest #7.
	for i, e := range events {
		if e.Value != float64(i+3) {
			t.Errorf("events[%d].Value = %v, want %d", i, e.Value, i+3)
		}
	}

	last := m.RecentEvents(2)
	if len(last) != 2 || last[1].Value != 7 {
		t.Errorf("RecentEvents(2) = %+v", last)
	}
}

func TestManager_Snapshot_IsCopy(t *testing.T) {
	m := NewManager(DefaultConfig())
	m.TogglePause()

	snap := m.Snapshot()
	if !snap.Flags.Paused || len(snap.Events) != 1 {
		t.Fatalf("snapshot = %+v", snap)
	}

	snap.Events[0].Type = EventResumed
	if m.RecentEvents(1)[0].Type != EventPaused {
		t.Error("modifying snapshot events changed manager state")
	}
}
