// Package measure provides user-declared distance and angle definitions and
// the engine that evaluates them against a landmark registry.
//
// Definitions reference landmarks by label only; they carry no coordinates and
// stay valid across registry reloads. Evaluation degrades to "n/a" when a
// referenced label is missing or not yet defined.
package measure

import "errors"

var (
	// ErrDuplicateDefinition is returned when an equivalent definition
	// already exists in the set.
	ErrDuplicateDefinition = errors.New("duplicate measurement definition")

	// ErrInvalidDefinition is returned when a definition does not reference
	// enough distinct labels.
	ErrInvalidDefinition = errors.New("invalid measurement definition")

	// ErrIndexOutOfRange is returned for removal indices outside the set.
	ErrIndexOutOfRange = errors.New("definition index out of range")
)

// DistanceKind discriminates the two distance definition shapes.
type DistanceKind int

const (
	// PointPoint is the Euclidean distance between two landmarks.
	PointPoint DistanceKind = iota

	// PointLine is the perpendicular distance from a landmark to the
	// infinite line through two other landmarks.
	PointLine
)

// Distance declares a distance measurement by landmark label.
// When C is empty the definition is point-to-point between A and B.
// Otherwise it is the perpendicular distance from A to the line through B, C.
type Distance struct {
	A, B, C string
}

// Kind returns the definition shape.
func (d Distance) Kind() DistanceKind {
	if d.C == "" {
		return PointPoint
	}
	return PointLine
}

// String renders the display form: "I-P" for point-point, "I-CC'" for
// point-line.
func (d Distance) String() string {
	if d.Kind() == PointPoint {
		return d.A + "-" + d.B
	}
	return d.A + "-" + d.B + d.C
}

// reversed returns the definition with its unordered pair swapped: the point
// pair for point-point, the line-end pair for point-line. The apex of a
// point-line definition is not interchangeable with the line ends.
func (d Distance) reversed() Distance {
	if d.Kind() == PointPoint {
		return Distance{A: d.B, B: d.A}
	}
	return Distance{A: d.A, B: d.C, C: d.B}
}

// EquivalentTo reports whether two definitions describe the same measurement.
func (d Distance) EquivalentTo(o Distance) bool {
	if d.Kind() != o.Kind() {
		return false
	}
	return d == o || d.reversed() == o
}

func (d Distance) validate() error {
	switch d.Kind() {
	case PointPoint:
		if d.A == "" || d.B == "" || d.A == d.B {
			return ErrInvalidDefinition
		}
	case PointLine:
		if d.A == "" || d.B == "" || d.C == "" ||
			d.A == d.B || d.A == d.C || d.B == d.C {
			return ErrInvalidDefinition
		}
	}
	return nil
}

// Angle declares the angle at Vertex between the arms toward A and B.
type Angle struct {
	A, Vertex, B string
}

// String renders the display form "A-V-B".
func (a Angle) String() string {
	return a.A + "-" + a.Vertex + "-" + a.B
}

// reversed returns the angle with its arms swapped, which describes the same
// geometry.
func (a Angle) reversed() Angle {
	return Angle{A: a.B, Vertex: a.Vertex, B: a.A}
}

// EquivalentTo reports whether two angle definitions describe the same angle:
// the vertex matches and the arms form the same unordered pair.
func (a Angle) EquivalentTo(o Angle) bool {
	return a == o || a.reversed() == o
}

func (a Angle) validate() error {
	if a.A == "" || a.Vertex == "" || a.B == "" ||
		a.A == a.Vertex || a.B == a.Vertex || a.A == a.B {
		return ErrInvalidDefinition
	}
	return nil
}
