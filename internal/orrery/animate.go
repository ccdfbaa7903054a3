package orrery

import (
	"github.com/litescript/ls-orrery/internal/geom"
)

// Step advances the scene by one frame. When running, every planet's angle
// grows by its current speed and its mesh moves along the circular orbit.
// Self-rotation advances on every frame, paused or not.
func (s *Scene) Step(paused bool) {
	for _, p := range s.Planets {
		if !paused {
			p.Angle = geom.NormalizeAngle(p.Angle + p.Speed)
			p.Mesh.Position = p.OrbitPosition()
		}
		p.Mesh.RotationY = geom.NormalizeAngle(p.Mesh.RotationY + s.spin)
	}
}

// SpinPerFrame returns the self-rotation applied to each mesh per frame.
func (s *Scene) SpinPerFrame() float64 {
	return s.spin
}
