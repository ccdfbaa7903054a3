package orrery

import (
	"math"

	"github.com/litescript/ls-orrery/internal/geom"
)

// Hit is the result of a successful pick.
type Hit struct {
	Planet   *Planet
	Distance float64 // Distance from the camera to the picked surface
}

// Pick returns the nearest planet under ndc. The sun and the starfield are
// never picked.
//
// A planet is under the pointer when the ray through ndc hits its sphere, or
// when its projected center lies within tol of ndc on each axis. The second
// test lets a coarse pointer (such as a terminal cell) land on a body smaller
// than the pointer itself; a zero tol is an exact ray/sphere test. Center
// candidates are ranked by their front surface, so the winner is the body
// drawn nearest the camera. On equal distances the planet earlier in the
// table wins.
func (s *Scene) Pick(ndc, tol geom.NDC) (Hit, bool) {
	ray := s.Camera.RayThrough(ndc)

	var best Hit
	found := false
	for _, p := range s.Planets {
		d := math.Inf(1)
		if t, ok := ray.IntersectSphere(p.Mesh.Position, p.Mesh.Radius); ok {
			d = t
		}
		if s.centerWithin(p.Mesh, ndc, tol) {
			d = math.Min(d, p.Mesh.FrontDistance(s.Camera.Position))
		}
		if !math.IsInf(d, 1) && (!found || d < best.Distance) {
			best = Hit{Planet: p, Distance: d}
			found = true
		}
	}
	return best, found
}

// centerWithin reports whether the mesh center projects within tol of ndc.
func (s *Scene) centerWithin(m *Mesh, ndc, tol geom.NDC) bool {
	if tol.X <= 0 && tol.Y <= 0 {
		return false
	}
	c, _, ok := s.Camera.Project(m.Position)
	if !ok {
		return false
	}
	return math.Abs(c.X-ndc.X) <= tol.X && math.Abs(c.Y-ndc.Y) <= tol.Y
}

// FrontDistance is the distance from a point outside the mesh to the nearest
// point of its surface.
func (m *Mesh) FrontDistance(from geom.Vec3) float64 {
	return m.Position.Sub(from).Norm() - m.Radius
}
