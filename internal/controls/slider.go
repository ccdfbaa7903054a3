// Package controls implements the control panel: per-planet speed sliders,
// the pause toggle and the theme toggle.
package controls

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Speed slider domain.
const (
	SpeedMin  = 0.001
	SpeedMax  = 0.05
	SpeedStep = 0.001
)

// ErrNotANumber is returned when slider input does not parse as a float.
var ErrNotANumber = errors.New("not a number")

// Slider is a range input with a fixed domain and step. It never holds a
// value outside [Min, Max] or off the step grid.
type Slider struct {
	Label string
	Min   float64
	Max   float64
	Step  float64
	Value float64
}

// NewSpeedSlider creates a speed slider for a planet, initialised to its
// starting speed snapped to the slider's domain.
func NewSpeedSlider(name string, speed float64) Slider {
	s := Slider{
		Label: name + " Speed:",
		Min:   SpeedMin,
		Max:   SpeedMax,
		Step:  SpeedStep,
	}
	s.Value = s.Snap(speed)
	return s
}

// Snap clamps v to the slider's domain and rounds it to the nearest step.
func (s Slider) Snap(v float64) float64 {
	if math.IsNaN(v) {
		return s.Min
	}
	if v <= s.Min {
		return s.Min
	}
	if v >= s.Max {
		return s.Max
	}
	if s.Step > 0 {
		steps := math.Round((v - s.Min) / s.Step)
		v = s.Min + steps*s.Step
	}
	// Drop float noise such as 0.010000000000000002.
	v = math.Round(v*1e9) / 1e9
	return math.Min(math.Max(v, s.Min), s.Max)
}

// Set stores v after snapping and returns the stored value.
func (s *Slider) Set(v float64) float64 {
	s.Value = s.Snap(v)
	return s.Value
}

// Input parses a raw value the way an input event delivers it and stores it.
func (s *Slider) Input(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return s.Value, fmt.Errorf("%w: %q", ErrNotANumber, raw)
	}
	return s.Set(v), nil
}

// Nudge moves the value by n steps.
func (s *Slider) Nudge(n int) float64 {
	return s.Set(s.Value + float64(n)*s.Step)
}

// Fraction returns the value's position along the track in [0, 1].
func (s Slider) Fraction() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// SetFraction sets the value from a position along the track, as a click on
// the track would.
func (s *Slider) SetFraction(f float64) float64 {
	return s.Set(s.Min + f*(s.Max-s.Min))
}

// String formats the value with the step's precision.
func (s Slider) String() string {
	return strconv.FormatFloat(s.Value, 'f', 3, 64)
}
