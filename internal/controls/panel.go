package controls

import (
	"github.com/litescript/ls-orrery/internal/orrery"
	"github.com/litescript/ls-orrery/internal/state"
)

// Control names reported to the Recorder.
const (
	ControlSpeed = "speed"
	ControlPause = "pause"
	ControlTheme = "theme"
)

// Recorder receives a notification for every control event.
type Recorder interface {
	ControlEvent(control string)
}

type nopRecorder struct{}

func (nopRecorder) ControlEvent(string) {}

// SpeedControl binds a slider to one planet's speed.
type SpeedControl struct {
	Slider Slider
	Planet *orrery.Planet
}

// Panel is the control panel. It writes slider values straight into the
// planets it was built from and flips the shared flags.
type Panel struct {
	Speeds []*SpeedControl

	state    *state.Manager
	recorder Recorder
	selected int
}

// NewPanel builds one speed slider per planet in scene order. A starting
// speed outside the slider's domain is snapped, and the snapped value is
// written back to the planet so both agree from the first frame.
func NewPanel(scene *orrery.Scene, st *state.Manager, rec Recorder) *Panel {
	if rec == nil {
		rec = nopRecorder{}
	}
	p := &Panel{
		Speeds:   make([]*SpeedControl, 0, len(scene.Planets)),
		state:    st,
		recorder: rec,
	}
	for _, planet := range scene.Planets {
		slider := NewSpeedSlider(planet.Name(), planet.Speed)
		planet.Speed = slider.Value
		p.Speeds = append(p.Speeds, &SpeedControl{Slider: slider, Planet: planet})
	}
	return p
}

// Selected returns the index of the slider under keyboard focus.
func (p *Panel) Selected() int {
	return p.selected
}

// Select moves keyboard focus by delta sliders, wrapping around.
func (p *Panel) Select(delta int) {
	n := len(p.Speeds)
	if n == 0 {
		return
	}
	p.selected = ((p.selected+delta)%n + n) % n
}

// SelectIndex focuses slider i if it exists.
func (p *Panel) SelectIndex(i int) {
	if i >= 0 && i < len(p.Speeds) {
		p.selected = i
	}
}

func (p *Panel) control(i int) *SpeedControl {
	if i < 0 || i >= len(p.Speeds) {
		return nil
	}
	return p.Speeds[i]
}

func (p *Panel) commit(c *SpeedControl) {
	c.Planet.Speed = c.Slider.Value
	p.state.RecordSpeed(c.Planet.Name(), c.Slider.Value)
	p.recorder.ControlEvent(ControlSpeed)
}

// Nudge moves the focused slider by n steps.
func (p *Panel) Nudge(n int) {
	c := p.control(p.selected)
	if c == nil {
		return
	}
	c.Slider.Nudge(n)
	p.commit(c)
}

// Input applies a typed value to the focused slider. A value that does not
// parse leaves the planet's speed untouched.
func (p *Panel) Input(raw string) error {
	c := p.control(p.selected)
	if c == nil {
		return nil
	}
	if _, err := c.Slider.Input(raw); err != nil {
		return err
	}
	p.commit(c)
	return nil
}

// SetFraction sets slider i from a track position and focuses it.
func (p *Panel) SetFraction(i int, f float64) {
	c := p.control(i)
	if c == nil {
		return
	}
	p.selected = i
	c.Slider.SetFraction(f)
	p.commit(c)
}

// TogglePause flips the pause flag and returns the button's new label.
func (p *Panel) TogglePause() string {
	p.state.TogglePause()
	p.recorder.ControlEvent(ControlPause)
	return p.PauseLabel()
}

// PauseLabel is "Pause" while running and "Resume" while paused.
func (p *Panel) PauseLabel() string {
	if p.state.Paused() {
		return "Resume"
	}
	return "Pause"
}

// ToggleTheme flips the dark-mode flag and returns the palette to apply.
func (p *Panel) ToggleTheme() Palette {
	p.state.ToggleTheme()
	p.recorder.ControlEvent(ControlTheme)
	return p.Palette()
}

// ThemeLabel names the theme the button switches to.
func (p *Panel) ThemeLabel() string {
	if p.state.DarkMode() {
		return "Light Mode"
	}
	return "Dark Mode"
}

// Palette returns the colors for the current theme.
func (p *Panel) Palette() Palette {
	return PaletteFor(p.state.DarkMode())
}
