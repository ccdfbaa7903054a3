// Package orrery builds the solar-system scene and drives its per-frame
// animation and pointer picking.
package orrery

import (
	"fmt"
	"math"

	"github.com/litescript/ls-orrery/internal/geom"
)

// Color is a 24-bit RGB value, e.g. 0x3399ff.
type Color uint32

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// PlanetSpec is one row of the static planet table.
type PlanetSpec struct {
	Name     string
	Radius   float64 // Render size
	Distance float64 // Orbital radius from the origin
	Speed    float64 // Initial angle delta per frame, radians
	Color    Color
}

// DefaultPlanets returns the eight-planet table, innermost first.
func DefaultPlanets() []PlanetSpec {
	return []PlanetSpec{
		{Name: "Mercury", Radius: 0.5, Distance: 7, Speed: 0.02, Color: 0xaaaaaa},
		{Name: "Venus", Radius: 0.6, Distance: 10, Speed: 0.015, Color: 0xffddaa},
		{Name: "Earth", Radius: 0.7, Distance: 13, Speed: 0.01, Color: 0x3399ff},
		{Name: "Mars", Radius: 0.6, Distance: 16, Speed: 0.008, Color: 0xff5533},
		{Name: "Jupiter", Radius: 1.2, Distance: 20, Speed: 0.006, Color: 0xffaa33},
		{Name: "Saturn", Radius: 1, Distance: 24, Speed: 0.004, Color: 0xffeeaa},
		{Name: "Uranus", Radius: 0.9, Distance: 28, Speed: 0.003, Color: 0x66ccff},
		{Name: "Neptune", Radius: 0.8, Distance: 32, Speed: 0.002, Color: 0x3366ff},
	}
}

// Mesh is the renderable body for a sphere in the scene.
type Mesh struct {
	Name      string // Tag used to identify the body when picked
	Position  geom.Vec3
	RotationY float64 // Self-rotation about the vertical axis, radians
	Radius    float64
	Color     Color
	Lit       bool // False for emissive bodies such as the sun
}

// Planet is the mutable per-planet animation state.
type Planet struct {
	Spec  PlanetSpec
	Speed float64 // Current angle delta per frame; written by the speed slider
	Angle float64 // Orbital angle in radians, kept in [0, 2π)
	Mesh  *Mesh
}

// Name returns the planet's unique name.
func (p *Planet) Name() string {
	return p.Spec.Name
}

// OrbitPosition returns where the planet sits on its circular orbit for the
// current angle, keeping the mesh's current height.
func (p *Planet) OrbitPosition() geom.Vec3 {
	return OrbitPoint(p.Spec.Distance, p.Angle, p.Mesh.Position.Y)
}

// OrbitPoint evaluates circular parametric motion in the XZ plane.
func OrbitPoint(distance, angle, y float64) geom.Vec3 {
	return geom.Vec3{
		X: distance * math.Cos(angle),
		Y: y,
		Z: distance * math.Sin(angle),
	}
}
