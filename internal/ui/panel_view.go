package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/controls"
	"github.com/litescript/ls-orrery/internal/state"
)

// Control panel layout, in cells relative to the panel's top-left corner.
const (
	panelWidth  = 30
	sliderRow0  = 1  // Row of the first slider
	trackX0     = 11 // First column of every slider track
	trackWidth  = 12
	eventsShown = 6
)

// sliderTrack draws a slider as a track with a knob at its value.
func sliderTrack(s controls.Slider) string {
	knob := int(s.Fraction()*float64(trackWidth-1) + 0.5)
	var b strings.Builder
	for i := 0; i < trackWidth; i++ {
		if i == knob {
			b.WriteRune('●')
		} else {
			b.WriteRune('─')
		}
	}
	return b.String()
}

// sliderAt maps a panel-relative cell to the slider whose track it lies on
// and the track fraction under it.
func sliderAt(px, py, n int) (index int, fraction float64, ok bool) {
	index = py - sliderRow0
	if index < 0 || index >= n {
		return 0, 0, false
	}
	if px < trackX0 || px >= trackX0+trackWidth {
		return 0, 0, false
	}
	return index, float64(px-trackX0) / float64(trackWidth-1), true
}

func (m Model) renderPanel(height int) string {
	pal := m.panel.Palette()
	base := lipgloss.NewStyle().
		Width(panelWidth).
		Foreground(lipgloss.Color(pal.PanelText)).
		Background(lipgloss.Color(pal.PanelBackground))
	title := base.Bold(true)
	selected := base.Foreground(lipgloss.Color(pal.Accent)).Bold(true)
	dim := base.Foreground(lipgloss.Color(pal.Dim))

	var lines []string
	lines = append(lines, title.Render(" Speeds"))
	for i, sc := range m.panel.Speeds {
		marker := "   "
		style := base
		if i == m.panel.Selected() {
			marker = " ▸ "
			style = selected
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%-7s %s %s",
			marker, sc.Planet.Name(), sliderTrack(sc.Slider), sc.Slider.String())))
	}

	hover := "-"
	if tip := m.state.Tooltip(); tip.Visible {
		hover = tip.Text
	}
	lines = append(lines,
		base.Render(""),
		base.Render(fmt.Sprintf(" Tilt     %+.0f°", m.scene.CameraElevation())),
		base.Render(fmt.Sprintf(" Frame    %d", m.state.Frame())),
		base.Render(fmt.Sprintf(" Hover    %s", hover)),
		base.Render(""),
		title.Render(" Events"),
	)
	events := m.state.RecentEvents(eventsShown)
	if len(events) == 0 {
		lines = append(lines, dim.Render(" (none)"))
	}
	for i := len(events) - 1; i >= 0; i-- {
		lines = append(lines, dim.Render(" "+formatEvent(events[i])))
	}

	for len(lines) < height {
		lines = append(lines, base.Render(""))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func formatEvent(e state.Event) string {
	switch e.Type {
	case state.EventSpeedChanged:
		return fmt.Sprintf("%-8s %.3f", e.Planet, e.Value)
	case state.EventCameraTilted:
		return fmt.Sprintf("tilt     %+.0f°", e.Value)
	case state.EventPaused:
		return "paused"
	case state.EventResumed:
		return "resumed"
	case state.EventThemeDark:
		return "dark mode"
	case state.EventThemeLight:
		return "light mode"
	default:
		return string(e.Type)
	}
}
