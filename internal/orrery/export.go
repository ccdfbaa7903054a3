package orrery

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/litescript/ls-orrery/internal/geom"
)

// SnapshotExport is the JSON-serializable state of the scene at one frame.
type SnapshotExport struct {
	Frame   uint64         `json:"frame"`
	Paused  bool           `json:"paused"`
	Planets []PlanetExport `json:"planets"`
}

// PlanetExport is a JSON-friendly planet row.
type PlanetExport struct {
	Name      string  `json:"name"`
	Distance  float64 `json:"distance"`
	Speed     float64 `json:"speed"`
	AngleRad  float64 `json:"angle_rad"`
	AngleDeg  float64 `json:"angle_deg"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	RotationY float64 `json:"rotation_y"`
}

// ExportSnapshot captures the planet state of the scene.
func ExportSnapshot(s *Scene, frame uint64, paused bool) *SnapshotExport {
	export := &SnapshotExport{
		Frame:   frame,
		Paused:  paused,
		Planets: make([]PlanetExport, 0, len(s.Planets)),
	}
	for _, p := range s.Planets {
		export.Planets = append(export.Planets, PlanetExport{
			Name:      p.Spec.Name,
			Distance:  p.Spec.Distance,
			Speed:     p.Speed,
			AngleRad:  p.Angle,
			AngleDeg:  geom.RadToDeg(p.Angle),
			X:         p.Mesh.Position.X,
			Y:         p.Mesh.Position.Y,
			Z:         p.Mesh.Position.Z,
			RotationY: p.Mesh.RotationY,
		})
	}
	return export
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (e *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteSummaryTable writes a text table of planet positions.
func (e *SnapshotExport) WriteSummaryTable(w io.Writer) {
	state := "running"
	if e.Paused {
		state = "paused"
	}
	fmt.Fprintf(w, "Orrery @ frame %d (%s)\n", e.Frame, state)
	fmt.Fprintln(w, strings.Repeat("─", 64))

	if len(e.Planets) == 0 {
		fmt.Fprintln(w, "No planets")
		return
	}

	fmt.Fprintf(w, "%-8s %6s %7s %7s %9s %9s %9s\n",
		"Planet", "Dist", "Speed", "Angle", "X", "Y", "Z")
	fmt.Fprintln(w, strings.Repeat("─", 64))

	for _, p := range e.Planets {
		fmt.Fprintf(w, "%-8s %6.1f %7.3f %6.1f° %9.3f %9.3f %9.3f\n",
			p.Name, p.Distance, p.Speed, p.AngleDeg, p.X, p.Y, p.Z)
	}

	fmt.Fprintf(w, "\nTotal: %d planets\n", len(e.Planets))
}
