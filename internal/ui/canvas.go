package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/controls"
	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/orrery"
	"github.com/litescript/ls-orrery/internal/state"
)

const (
	sunGlyph  = '☉'
	starGlyph = '·'
	nearStar  = '∗'
	farStar   = '˙'

	// Cells are about twice as tall as they are wide.
	cellAspect = 0.5

	tooltipFg = "#ffffff"
	tooltipBg = "#333333"
)

// spinGlyphs show a planet's self-rotation phase in its center cell.
var spinGlyphs = []rune{'◐', '◓', '◑', '◒'}

// shadeRamp maps lit intensity to a fill glyph, darkest first.
var shadeRamp = []rune{'░', '▒', '▓', '█'}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellStar
	cellSun
	cellPlanet
	cellTooltip
)

type cell struct {
	ch    rune
	fg    string
	kind  cellKind
	depth float64
	name  string // Body drawn in the cell
}

// canvas is a rasterized frame of the scene, one cell per terminal column
// and row.
type canvas struct {
	w, h    int
	cells   [][]cell
	bg      string
	visible int // Planets with at least one cell on screen
}

// CanvasAspect is the camera aspect ratio for a canvas of w×h terminal cells.
func CanvasAspect(w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float64(w) * cellAspect / float64(h)
}

// cellNDC returns the normalized coordinates of the center of cell (x, y).
func cellNDC(x, y, w, h int) geom.NDC {
	return geom.NDC{
		X: (float64(x)+0.5)/float64(w)*2 - 1,
		Y: 1 - (float64(y)+0.5)/float64(h)*2,
	}
}

// ndcCell maps normalized coordinates to the cell containing them.
func ndcCell(p geom.NDC, w, h int) (x, y int, ok bool) {
	x = int(math.Floor((p.X + 1) / 2 * float64(w)))
	y = int(math.Floor((1 - p.Y) / 2 * float64(h)))
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}

// pickTolerance is half a cell on each axis, in normalized coordinates. A
// body whose center lies within it of the pointer is drawn in the pointer's
// cell.
func pickTolerance(w, h int) geom.NDC {
	if w <= 0 || h <= 0 {
		return geom.NDC{}
	}
	return geom.NDC{X: 1 / float64(w), Y: 1 / float64(h)}
}

func newCanvas(w, h int, bg string) *canvas {
	c := &canvas{w: w, h: h, bg: bg, cells: make([][]cell, h)}
	for y := range c.cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{ch: ' ', depth: math.Inf(1)}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) put(x, y int, v cell) bool {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return false
	}
	if v.depth >= c.cells[y][x].depth {
		return false
	}
	c.cells[y][x] = v
	return true
}

// rasterize draws the scene as seen by its camera into a w×h canvas.
func rasterize(scene *orrery.Scene, w, h int, pal controls.Palette) *canvas {
	c := newCanvas(w, h, pal.Background)
	if w <= 0 || h <= 0 {
		return c
	}

	bg := mustHex(pal.Background)
	fg := mustHex(pal.Text)
	c.drawStarfield(scene, bg, fg)

	sunColor := scene.Sun.Color.Hex()
	c.drawSphere(scene, scene.Sun, func(geom.Vec3, geom.Vec3) (rune, string) {
		return '█', sunColor
	})
	c.drawCenter(scene.Camera, scene.Sun, sunGlyph, sunColor)

	for _, p := range scene.Planets {
		mesh := p.Mesh
		base := mustHex(mesh.Color.Hex())
		drawn := c.drawSphere(scene, mesh, func(point, normal geom.Vec3) (rune, string) {
			i := lambert(scene, point, normal)
			return shadeGlyph(i), bg.BlendRgb(base, 0.35+0.65*i).Hex()
		})
		if c.drawCenter(scene.Camera, mesh, spinGlyph(mesh.RotationY), mesh.Color.Hex()) {
			drawn = true
		}
		if drawn {
			c.visible++
		}
	}
	return c
}

// drawStarfield plots every star in front of the camera, dimmer with depth.
func (c *canvas) drawStarfield(scene *orrery.Scene, bg, fg colorful.Color) {
	far := scene.Camera.Far
	for _, s := range scene.Stars {
		ndc, depth, ok := scene.Camera.Project(s)
		if !ok {
			continue
		}
		x, y, in := ndcCell(ndc, c.w, c.h)
		if !in {
			continue
		}
		near := 1 - depth/far
		glyph := starGlyph
		switch {
		case near > 0.85:
			glyph = nearStar
		case near < 0.4:
			glyph = farStar
		}
		c.put(x, y, cell{
			ch:    glyph,
			fg:    bg.BlendRgb(fg, 0.25+0.5*near).Hex(),
			kind:  cellStar,
			depth: depth,
		})
	}
}

// drawSphere casts a ray through every cell the mesh can cover and shades
// the cells whose ray hits it. It reports whether any cell was drawn.
func (c *canvas) drawSphere(scene *orrery.Scene, mesh *orrery.Mesh, shade func(point, normal geom.Vec3) (rune, string)) bool {
	cam := scene.Camera
	ndc, depth, ok := cam.Project(mesh.Position)
	if !ok {
		return false
	}

	// Bounding box of the projected disk, in cells.
	rNDC := mesh.Radius / cam.WorldPerNDC(math.Max(depth-mesh.Radius, cam.Near))
	cx, cy, _ := ndcCell(ndc, c.w, c.h)
	rx := int(math.Ceil(rNDC/cam.Aspect*float64(c.w)/2)) + 1
	ry := int(math.Ceil(rNDC*float64(c.h)/2)) + 1

	kind := cellPlanet
	if !mesh.Lit {
		kind = cellSun
	}

	drawn := false
	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			if x < 0 || x >= c.w || y < 0 || y >= c.h {
				continue
			}
			ray := cam.RayThrough(cellNDC(x, y, c.w, c.h))
			t, hit := ray.IntersectSphere(mesh.Position, mesh.Radius)
			if !hit {
				continue
			}
			point := ray.At(t)
			normal := point.Sub(mesh.Position).Normalized()
			glyph, color := shade(point, normal)
			if c.put(x, y, cell{ch: glyph, fg: color, kind: kind, depth: t, name: mesh.Name}) {
				drawn = true
			}
		}
	}
	return drawn
}

// drawCenter marks the cell under the mesh center so bodies smaller than a
// cell stay visible.
func (c *canvas) drawCenter(cam geom.Camera, mesh *orrery.Mesh, glyph rune, color string) bool {
	ndc, _, ok := cam.Project(mesh.Position)
	if !ok {
		return false
	}
	x, y, in := ndcCell(ndc, c.w, c.h)
	if !in {
		return false
	}

	kind := cellPlanet
	if !mesh.Lit {
		kind = cellSun
	}
	depth := mesh.FrontDistance(cam.Position)
	// A sphere hit on this cell nearer than our front surface occludes us.
	existing := c.cells[y][x]
	if (existing.kind == cellSun || existing.kind == cellPlanet) && existing.depth < depth-1e-9 {
		return false
	}
	c.cells[y][x] = cell{ch: glyph, fg: color, kind: kind, depth: depth, name: mesh.Name}
	return true
}

// overlayTooltip draws the tooltip box with its top-left corner at canvas
// cell (x, y), clipped to the canvas.
func (c *canvas) overlayTooltip(tip state.Tooltip, x, y int) {
	if !tip.Visible || y < 0 || y >= c.h {
		return
	}
	for i, r := range []rune(" " + tip.Text + " ") {
		cx := x + i
		if cx < 0 || cx >= c.w {
			continue
		}
		c.cells[y][cx] = cell{ch: r, fg: tooltipFg, kind: cellTooltip}
	}
}

// lambert returns the lit intensity in [0, 1] of a surface point: ambient
// plus diffuse light from the point light.
func lambert(scene *orrery.Scene, point, normal geom.Vec3) float64 {
	ambient := scene.Ambient.Intensity * channel(scene.Ambient.Color)
	toLight := scene.Point.Position.Sub(point).Normalized()
	diffuse := math.Max(0, normal.Dot(toLight)) * scene.Point.Intensity * channel(scene.Point.Color)
	return math.Min(1, ambient+diffuse)
}

// channel is the mean brightness of a light color in [0, 1].
func channel(c orrery.Color) float64 {
	r := float64((c >> 16) & 0xff)
	g := float64((c >> 8) & 0xff)
	b := float64(c & 0xff)
	return (r + g + b) / (3 * 255)
}

func shadeGlyph(i float64) rune {
	idx := int(i * float64(len(shadeRamp)))
	if idx >= len(shadeRamp) {
		idx = len(shadeRamp) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return shadeRamp[idx]
}

func spinGlyph(rotation float64) rune {
	phase := geom.NormalizeAngle(rotation) / (2 * math.Pi)
	return spinGlyphs[int(phase*float64(len(spinGlyphs)))%len(spinGlyphs)]
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// String renders the canvas. plain drops all styling.
func (c *canvas) String(plain bool) string {
	var b strings.Builder
	for y, row := range c.cells {
		if plain {
			for _, cl := range row {
				b.WriteRune(cl.ch)
			}
		} else {
			c.renderRow(&b, row)
		}
		if y < c.h-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// renderRow writes one row, merging neighbouring cells of the same style into
// one styled run.
func (c *canvas) renderRow(b *strings.Builder, row []cell) {
	var run strings.Builder
	var runFg string
	var runKind cellKind

	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := lipgloss.NewStyle().Background(lipgloss.Color(c.bg))
		switch runKind {
		case cellEmpty:
		case cellTooltip:
			style = style.Foreground(lipgloss.Color(runFg)).Background(lipgloss.Color(tooltipBg))
		case cellSun:
			style = style.Foreground(lipgloss.Color(runFg)).Bold(true)
		default:
			style = style.Foreground(lipgloss.Color(runFg))
		}
		b.WriteString(style.Render(run.String()))
		run.Reset()
	}

	for _, cl := range row {
		if cl.fg != runFg || cl.kind != runKind {
			flush()
			runFg, runKind = cl.fg, cl.kind
		}
		run.WriteRune(cl.ch)
	}
	flush()
}

// RenderScene rasterizes the scene into a w×h block of text.
func RenderScene(scene *orrery.Scene, w, h int, pal controls.Palette, plain bool) string {
	return rasterize(scene, w, h, pal).String(plain)
}
