package geom

import (
	"math"
)

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// IntersectSphere returns the distance along the ray to the first point
// where it enters the sphere. When the origin is inside the sphere the exit
// distance is returned instead. ok is false on a miss or when the sphere is
// entirely behind the origin.
func (r Ray) IntersectSphere(center Vec3, radius float64) (t float64, ok bool) {
	if radius <= 0 {
		return 0, false
	}

	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	t0 := -b - sq
	t1 := -b + sq
	switch {
	case t0 >= 0:
		return t0, true
	case t1 >= 0:
		return t1, true
	default:
		return 0, false
	}
}
