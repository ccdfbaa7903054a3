package orrery

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-orrery/internal/geom"
)

// ErrInvalidPlanet is returned when the planet table cannot be turned into a
// scene.
var ErrInvalidPlanet = errors.New("invalid planet")

// Config holds the static inputs of the scene bootstrap.
type Config struct {
	Planets      []PlanetSpec
	StarCount    int
	StarSpread   float64 // Side of the cube the stars are scattered in
	Seed         int64   // Starfield seed
	SpinPerFrame float64 // Mesh self-rotation per frame, radians

	CameraDistance float64
	FovDeg         float64
	Near           float64
	Far            float64
	Aspect         float64
}

// DefaultConfig returns the stock eight-planet configuration.
func DefaultConfig() Config {
	return Config{
		Planets:        DefaultPlanets(),
		StarCount:      1000,
		StarSpread:     600,
		Seed:           1,
		SpinPerFrame:   0.01,
		CameraDistance: 100,
		FovDeg:         75,
		Near:           0.1,
		Far:            1000,
		Aspect:         1,
	}
}

// Light is a scene light source.
type Light struct {
	Color     Color
	Intensity float64
	Position  geom.Vec3 // Ignored for ambient lights
}

// Scene owns every renderable object and the planet registry shared by the
// animation step and the picker.
type Scene struct {
	Camera  geom.Camera
	Sun     *Mesh
	Ambient Light
	Point   Light
	Stars   []geom.Vec3
	Planets []*Planet

	spin           float64
	cameraDistance float64
	elevation      float64 // Camera elevation above the orbital plane, radians
}

// NewScene builds the scene from cfg: camera, lights, sun, starfield, and one
// mesh per planet placed at (distance, 0, 0).
func NewScene(cfg Config) (*Scene, error) {
	if err := validatePlanets(cfg.Planets); err != nil {
		return nil, err
	}

	s := &Scene{
		Camera: geom.NewPerspectiveCamera(cfg.FovDeg, cfg.Aspect, cfg.Near, cfg.Far),
		Sun: &Mesh{
			Name:   "Sun",
			Radius: 4,
			Color:  0xffff00,
		},
		Ambient: Light{Color: 0x404040, Intensity: 1},
		Point:   Light{Color: 0xffffff, Intensity: 1.5},
		Stars:   GenerateStarfield(cfg.StarCount, cfg.StarSpread, cfg.Seed),
		Planets: make([]*Planet, 0, len(cfg.Planets)),

		spin:           cfg.SpinPerFrame,
		cameraDistance: cfg.CameraDistance,
	}
	s.SetCameraElevation(0)

	for _, spec := range cfg.Planets {
		mesh := &Mesh{
			Name:     spec.Name,
			Position: geom.Vec3{X: spec.Distance},
			Radius:   spec.Radius,
			Color:    spec.Color,
			Lit:      true,
		}
		s.Planets = append(s.Planets, &Planet{
			Spec:  spec,
			Speed: spec.Speed,
			Mesh:  mesh,
		})
	}

	return s, nil
}

func validatePlanets(specs []PlanetSpec) error {
	seen := make(map[string]bool, len(specs))
	for i, spec := range specs {
		switch {
		case spec.Name == "":
			return fmt.Errorf("%w: entry %d has no name", ErrInvalidPlanet, i)
		case seen[spec.Name]:
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidPlanet, spec.Name)
		case spec.Radius <= 0:
			return fmt.Errorf("%w: %s radius %v must be positive", ErrInvalidPlanet, spec.Name, spec.Radius)
		case spec.Distance <= 0:
			return fmt.Errorf("%w: %s distance %v must be positive", ErrInvalidPlanet, spec.Name, spec.Distance)
		}
		seen[spec.Name] = true
	}
	return nil
}

// PlanetByName returns the planet with the given name, or nil.
func (s *Scene) PlanetByName(name string) *Planet {
	for _, p := range s.Planets {
		if p.Spec.Name == name {
			return p
		}
	}
	return nil
}

// Meshes returns the planet meshes in table order. The sun is not included.
func (s *Scene) Meshes() []*Mesh {
	meshes := make([]*Mesh, len(s.Planets))
	for i, p := range s.Planets {
		meshes[i] = p.Mesh
	}
	return meshes
}

// maxElevation keeps the camera off the vertical axis.
const maxElevation = 85.0

// SetCameraElevation places the camera on a circle of the configured distance
// in the YZ plane, elevated deg degrees above the orbital plane, looking at
// the origin. Zero elevation is the straight-on (0, 0, distance) view.
func (s *Scene) SetCameraElevation(deg float64) {
	if deg > maxElevation {
		deg = maxElevation
	} else if deg < -maxElevation {
		deg = -maxElevation
	}
	s.elevation = geom.DegToRad(deg)
	s.Camera.Position = geom.Vec3{Z: s.cameraDistance}.RotateX(-s.elevation)
	s.Camera.Target = geom.Vec3{}
}

// CameraElevation returns the camera elevation in degrees.
func (s *Scene) CameraElevation() float64 {
	return geom.RadToDeg(s.elevation)
}

// SetAspect updates the camera aspect ratio.
func (s *Scene) SetAspect(aspect float64) {
	if aspect > 0 {
		s.Camera.Aspect = aspect
	}
}
