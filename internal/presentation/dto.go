// Package presentation converts session state into display and output
// representations: DTOs for JSON output and styled text tables for the
// terminal.
package presentation

import (
	"github.com/lborak/cleftmeter/internal/landmark"
	"github.com/lborak/cleftmeter/internal/measure"
	"github.com/lborak/cleftmeter/internal/session"
)

// PointDTO represents one landmark for presentation.
type PointDTO struct {
	Label  string   `json:"label"`
	Status string   `json:"status"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Z      *float64 `json:"z,omitempty"`

	// Display is the status text shown in tables: the lowest-index undefined
	// landmark reads "define now", later undefined ones "to be defined".
	Display string `json:"-"`
}

// DistanceDTO represents one distance definition with its computed value.
type DistanceDTO struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// AngleDTO represents one angle definition with its computed value.
type AngleDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// SessionDTO is the full session snapshot for JSON output.
type SessionDTO struct {
	ModelName string        `json:"model_name,omitempty"`
	Points    []PointDTO    `json:"points"`
	Distances []DistanceDTO `json:"distances"`
	Angles    []AngleDTO    `json:"angles"`
}

// FromSession converts a session snapshot to its DTO.
func FromSession(s *session.Session) SessionDTO {
	reg := s.Registry()
	set := s.Set()
	res := s.Results()

	next, hasNext := reg.NextUndefined()

	points := make([]PointDTO, 0, reg.Len())
	for i, m := range reg.Landmarks() {
		dto := PointDTO{
			Label:   m.Label,
			Status:  m.Status.String(),
			Display: statusDisplay(m.Status, hasNext && i == next),
		}
		if m.Status == landmark.StatusDefined {
			x, y, z := m.Coord.X, m.Coord.Y, m.Coord.Z
			dto.X, dto.Y, dto.Z = &x, &y, &z
		}
		points = append(points, dto)
	}

	distances := make([]DistanceDTO, 0, len(set.Distances()))
	for _, d := range set.Distances() {
		distances = append(distances, DistanceDTO{
			Name:  d.String(),
			Kind:  distanceKind(d),
			Value: res.Distance(d).String(),
			Unit:  "mm",
		})
	}

	angles := make([]AngleDTO, 0, len(set.Angles()))
	for _, a := range set.Angles() {
		angles = append(angles, AngleDTO{
			Name:  a.String(),
			Value: res.Angle(a).String(),
			Unit:  "degrees",
		})
	}

	return SessionDTO{
		ModelName: s.ModelName(),
		Points:    points,
		Distances: distances,
		Angles:    angles,
	}
}

// PromptLine returns the guidance line shown above the points table.
func PromptLine(reg *landmark.Registry) string {
	if i, ok := reg.NextUndefined(); ok {
		mark, _ := reg.At(i)
		return "Define point " + mark.Label
	}
	return "All points marked."
}

func statusDisplay(st landmark.Status, isNext bool) string {
	switch st {
	case landmark.StatusDefined:
		return "defined"
	case landmark.StatusSkipped:
		return "skipped"
	default:
		if isNext {
			return "define now"
		}
		return "to be defined"
	}
}

func distanceKind(d measure.Distance) string {
	if d.Kind() == measure.PointLine {
		return "point-line"
	}
	return "point-point"
}
