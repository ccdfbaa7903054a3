// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/controls"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/orrery"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/version"
)

// DefaultFPS is the frame rate used when Options.FPS is unset.
const DefaultFPS = 60

// Screen layout.
const (
	headerRows = 1
	footerRows = 2
	minCanvasW = 20
	minCanvasH = 8
)

const (
	tiltStep    = 15.0 // Degrees per camera tilt key press
	maxEditLen  = 12
	hoverLogGap = 250 * time.Millisecond
)

// FrameMsg drives the animation loop, one per frame.
type FrameMsg time.Time

// Options configures a Model.
type Options struct {
	FPS     int
	Logger  *logging.Logger
	Metrics *metrics.Collector
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	scene    *orrery.Scene
	state    *state.Manager
	panel    *controls.Panel
	metrics  *metrics.Collector
	logger   *logging.Logger
	hoverLog *logging.Throttle

	// UI state
	interval  time.Duration
	width     int
	height    int
	ready     bool
	statusMsg string // Last control error
	hovered   string

	// Numeric entry for the focused slider
	editing bool
	editBuf string
}

// New creates the root UI model around a scene and its state.
func New(scene *orrery.Scene, st *state.Manager, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewCollector()
	}

	return Model{
		scene:    scene,
		state:    st,
		panel:    controls.NewPanel(scene, st, opts.Metrics),
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		hoverLog: opts.Logger.Throttled(hoverLogGap, 4),
		interval: time.Second / time.Duration(opts.FPS),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("ls-orrery"),
		frameCmd(m.interval),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		w, h := m.canvasSize()
		m.scene.SetAspect(CanvasAspect(w, h))
		m.logger.Debug("Resized to %dx%d, canvas %dx%d", msg.Width, msg.Height, w, h)
		return m, nil

	case FrameMsg:
		m.advanceFrame()
		return m, frameCmd(m.interval)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd
	}

	return m, nil
}

// advanceFrame runs one animation step: orbital motion and spin, then a pick
// at the last pointer position.
func (m *Model) advanceFrame() {
	start := time.Now()
	paused := m.state.Paused()

	m.scene.Step(paused)
	m.updateHover()
	m.state.AdvanceFrame()

	m.metrics.RecordFrame(paused, time.Since(start))
}

func (m *Model) updateHover() {
	p := m.state.Pointer()
	if !p.Active {
		m.state.HideTooltip()
		m.setHovered("")
		return
	}

	w, h := m.canvasSize()
	hit, ok := m.scene.Pick(p.NDC, pickTolerance(w, h))
	m.metrics.RecordPick(ok)
	if !ok {
		m.state.HideTooltip()
		m.setHovered("")
		return
	}
	m.state.ShowTooltip(hit.Planet.Name())
	m.setHovered(hit.Planet.Name())
}

func (m *Model) setHovered(name string) {
	if name == m.hovered {
		return
	}
	if name == "" {
		m.hoverLog.Debug("Pointer left %s", m.hovered)
	} else {
		m.hoverLog.Debug("Pointer over %s", name)
	}
	m.hovered = name
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.editing {
		m.handleEditKey(msg)
		return nil
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case " ", "space", "p":
		label := m.panel.TogglePause()
		m.logger.Info("Animation %s (button now %q)", pausedWord(m.state.Paused()), label)
	case "t":
		m.panel.ToggleTheme()
		m.logger.Info("Theme switched, button now %q", m.panel.ThemeLabel())
	case "up", "k":
		m.panel.Select(-1)
	case "down", "j":
		m.panel.Select(1)
	case "left", "h":
		m.panel.Nudge(-1)
	case "right", "l":
		m.panel.Nudge(1)
	case "e", "enter":
		m.editing = true
		m.editBuf = ""
		m.statusMsg = ""
	case "[":
		m.tilt(-tiltStep)
	case "]":
		m.tilt(tiltStep)
	case "c":
		m.tilt(-m.scene.CameraElevation())
	}
	return nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "enter":
		m.editing = false
		if err := m.panel.Input(m.editBuf); err != nil {
			m.statusMsg = err.Error()
			m.logger.Warn("Rejected speed input: %v", err)
		}
	case "esc":
		m.editing = false
	case "backspace":
		if r := []rune(m.editBuf); len(r) > 0 {
			m.editBuf = string(r[:len(r)-1])
		}
	default:
		if msg.Type == tea.KeyRunes && len([]rune(m.editBuf))+len(msg.Runes) <= maxEditLen {
			m.editBuf += string(msg.Runes)
		}
	}
}

func (m *Model) tilt(delta float64) {
	m.scene.SetCameraElevation(m.scene.CameraElevation() + delta)
	m.state.RecordCameraTilt(m.scene.CameraElevation())
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			m.dragSlider(msg.X, msg.Y)
		}
		m.movePointer(msg.X, msg.Y)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.click(msg.X, msg.Y)
		}
	}
}

// movePointer handles a pointer-move event at screen cell (x, y).
func (m *Model) movePointer(x, y int) {
	m.metrics.RecordPointerEvent()

	w, h := m.canvasSize()
	cx, cy := x-panelWidth, y-headerRows
	if cx < 0 || cx >= w || cy < 0 || cy >= h {
		m.state.LeavePointer()
		return
	}
	m.state.MovePointer(cellNDC(cx, cy, w, h), x, y)
}

func (m *Model) click(x, y int) {
	if y < headerRows {
		pause, theme := m.buttonSpans()
		switch {
		case pause.contains(x):
			m.panel.TogglePause()
		case theme.contains(x):
			m.panel.ToggleTheme()
		}
		return
	}
	m.dragSlider(x, y)
}

func (m *Model) dragSlider(x, y int) {
	if x >= panelWidth || y < headerRows {
		return
	}
	if i, f, ok := sliderAt(x, y-headerRows, len(m.panel.Speeds)); ok {
		m.panel.SetFraction(i, f)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	w, h := m.canvasSize()
	if w < minCanvasW || h < minCanvasH {
		return fmt.Sprintf("Terminal too small (%dx%d), need at least %dx%d",
			m.width, m.height, panelWidth+minCanvasW, headerRows+footerRows+minCanvasH)
	}

	pal := m.panel.Palette()
	c := rasterize(m.scene, w, h, pal)
	tip := m.state.Tooltip()
	c.overlayTooltip(tip, tip.X-panelWidth, tip.Y-headerRows)
	m.metrics.SetPlanetsVisible(c.visible)

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderPanel(h), c.String(false))
	return m.renderHeader() + "\n" + body + "\n" + m.renderFooter()
}

// canvasSize is the scene area: everything right of the panel between the
// header and the footer.
func (m Model) canvasSize() (w, h int) {
	return m.width - panelWidth, m.height - headerRows - footerRows
}

// span is a half-open column range [x0, x1).
type span struct{ x0, x1 int }

func (s span) contains(x int) bool { return x >= s.x0 && x < s.x1 }

func (m Model) buttonLabels() (pause, theme string) {
	return "[ " + m.panel.PauseLabel() + " ]", "[ " + m.panel.ThemeLabel() + " ]"
}

// buttonSpans returns the header columns of the pause and theme buttons,
// right-aligned with one column of margin.
func (m Model) buttonSpans() (pause, theme span) {
	p, t := m.buttonLabels()
	theme = span{m.width - 1 - lipgloss.Width(t), m.width - 1}
	pause = span{theme.x0 - 1 - lipgloss.Width(p), theme.x0 - 1}
	return pause, theme
}

func (m Model) renderHeader() string {
	pal := m.panel.Palette()
	bg := lipgloss.Color(pal.Background)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Dim)).Background(bg)
	button := lipgloss.NewStyle().
		Foreground(lipgloss.Color(pal.PanelText)).
		Background(lipgloss.Color(pal.PanelBackground)).
		Bold(true)
	fill := lipgloss.NewStyle().Background(bg)

	left := fill.Render(" ") + m.renderTitle("ls-orrery") + dim.Render(" v"+version.Version)

	pauseLabel, themeLabel := m.buttonLabels()
	pause, _ := m.buttonSpans()
	gap := pause.x0 - lipgloss.Width(left)
	if gap < 1 {
		gap = 1
	}

	return left +
		fill.Render(strings.Repeat(" ", gap)) +
		button.Render(pauseLabel) + fill.Render(" ") +
		button.Render(themeLabel) + fill.Render(" ")
}

// renderTitle draws text with a horizontal gradient.
func (m Model) renderTitle(text string) string {
	bg := lipgloss.Color(m.panel.Palette().Background)
	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(gradientColor(i, len(runes)))).
			Background(bg).
			Bold(true)
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// Title gradient: blue -> purple -> magenta -> pink.
var gradientStops = []colorful.Color{
	mustHex("#3B82F6"),
	mustHex("#8B5CF6"),
	mustHex("#D946EF"),
	mustHex("#EC4899"),
}

// gradientColor returns a hex color for position col of width.
func gradientColor(col, width int) string {
	if width <= 1 {
		return gradientStops[0].Hex()
	}
	t := float64(col) / float64(width-1) * float64(len(gradientStops)-1)
	i := int(t)
	if i >= len(gradientStops)-1 {
		return gradientStops[len(gradientStops)-1].Hex()
	}
	return gradientStops[i].BlendLab(gradientStops[i+1], t-float64(i)).Clamped().Hex()
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (m Model) renderFooter() string {
	pal := m.panel.Palette()
	bg := lipgloss.Color(pal.Background)
	line := lipgloss.NewStyle().Inline(true).MaxWidth(m.width)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Dim)).Background(bg)
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Accent)).Background(bg)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Background(bg)
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Text)).Background(bg)

	var status string
	switch {
	case m.editing && len(m.panel.Speeds) > 0:
		label := m.panel.Speeds[m.panel.Selected()].Slider.Label
		status = accent.Render("  "+label+" ") + text.Render(m.editBuf+"█") +
			dim.Render("  enter: apply | esc: cancel")
	case m.statusMsg != "":
		status = errStyle.Render("  ERROR: " + m.statusMsg)
	default:
		spinner := spinnerFrames[int(m.state.Frame()/4)%len(spinnerFrames)]
		word := "running"
		if m.state.Paused() {
			spinner = "❚❚"
			word = "paused"
		}
		status = accent.Render("  "+spinner) + dim.Render(fmt.Sprintf(" %s | frame %d | %d fps",
			word, m.state.Frame(), int(time.Second/m.interval)))
		if m.hovered != "" {
			status += dim.Render(" | ") + text.Render(m.hovered)
		}
	}

	help := dim.Render("  space: pause | t: theme | ↑↓: select | ←→: speed | e: type speed | [ ]: tilt | c: level | q: quit")
	return line.Render(status) + "\n" + line.Render(help)
}

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func pausedWord(paused bool) string {
	if paused {
		return "paused"
	}
	return "resumed"
}
