package geom

import (
	"math"
)

// worldUp is the reference up direction used to build the camera basis.
var worldUp = Vec3{X: 0, Y: 1, Z: 0}

// NDC is a point in normalized device coordinates. X grows to the right and
// Y grows upward; the visible viewport spans [-1, 1] on both axes.
type NDC struct {
	X, Y float64
}

// InViewport reports whether the point lies inside the [-1, 1] square.
func (p NDC) InViewport() bool {
	return p.X >= -1 && p.X <= 1 && p.Y >= -1 && p.Y <= 1
}

// Camera is a perspective camera looking from Position toward Target.
type Camera struct {
	Position Vec3
	Target   Vec3
	FovDeg   float64 // Vertical field of view
	Aspect   float64 // Viewport width / height
	Near     float64
	Far      float64
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fovDeg, aspect, near, far float64) Camera {
	return Camera{
		Target: Vec3{Z: -1},
		FovDeg: fovDeg,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// Basis returns the camera's forward, right and up unit vectors.
func (c Camera) Basis() (forward, right, up Vec3) {
	forward = c.Target.Sub(c.Position).Normalized()
	right = forward.Cross(worldUp).Normalized()
	if right.Norm() == 0 {
		// Looking straight along the world up axis; pick +X as right.
		right = Vec3{X: 1}
	}
	up = right.Cross(forward)
	return forward, right, up
}

func (c Camera) tanHalfFov() float64 {
	return math.Tan(DegToRad(c.FovDeg) / 2)
}

func (c Camera) aspect() float64 {
	if c.Aspect <= 0 {
		return 1
	}
	return c.Aspect
}

// Project maps a world point to normalized device coordinates. depth is the
// distance along the view axis; ok is false when the point lies outside the
// near/far range.
func (c Camera) Project(p Vec3) (ndc NDC, depth float64, ok bool) {
	forward, right, up := c.Basis()
	rel := p.Sub(c.Position)

	depth = rel.Dot(forward)
	if depth < c.Near || depth > c.Far {
		return NDC{}, depth, false
	}

	t := c.tanHalfFov()
	ndc = NDC{
		X: rel.Dot(right) / (depth * t * c.aspect()),
		Y: rel.Dot(up) / (depth * t),
	}
	return ndc, depth, true
}

// RayThrough returns the ray from the camera through a point given in
// normalized device coordinates.
func (c Camera) RayThrough(p NDC) Ray {
	forward, right, up := c.Basis()
	t := c.tanHalfFov()

	dir := forward.
		Add(right.Scale(p.X * t * c.aspect())).
		Add(up.Scale(p.Y * t))

	return Ray{Origin: c.Position, Dir: dir.Normalized()}
}

// WorldPerNDC returns the world-space size covered by one NDC unit
// vertically at the given depth.
func (c Camera) WorldPerNDC(depth float64) float64 {
	return depth * c.tanHalfFov()
}
