package orrery

import (
	"math/rand"

	"github.com/litescript/ls-orrery/internal/geom"
)

// GenerateStarfield scatters n points uniformly through a cube of the given
// side centered on the origin. The same seed always yields the same field.
func GenerateStarfield(n int, spread float64, seed int64) []geom.Vec3 {
	if n <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	spreadFloat := func() float64 {
		return spread * (0.5 - rng.Float64())
	}

	stars := make([]geom.Vec3, n)
	for i := range stars {
		stars[i] = geom.Vec3{X: spreadFloat(), Y: spreadFloat(), Z: spreadFloat()}
	}
	return stars
}
