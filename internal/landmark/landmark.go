// Package landmark provides the pure domain layer for anatomical landmarks
// with no infrastructure dependencies.
//
// A landmark is a named point of interest with a lifecycle status and, once
// placed, a 3D coordinate. Landmarks live in a fixed-order registry; the order
// defines the "next to define" scan used during interactive placement.
package landmark

import "math"

// Status represents the lifecycle state of a landmark.
type Status int

const (
	// StatusUndefined indicates the landmark has not been placed yet.
	StatusUndefined Status = iota

	// StatusSkipped indicates the operator deferred or deleted the landmark.
	StatusSkipped

	// StatusDefined indicates the landmark has a coordinate.
	StatusDefined
)

// String returns the on-disk tag for the status.
func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusDefined:
		return "defined"
	default:
		return "to_be_defined"
	}
}

// StatusFromString parses an on-disk status tag. Unrecognized tags map to
// StatusUndefined, matching the tolerant load behavior for legacy files.
func StatusFromString(tag string) Status {
	switch tag {
	case "skipped":
		return StatusSkipped
	case "defined":
		return StatusDefined
	default:
		return StatusUndefined
	}
}

// Coord is a point in model space, in millimeters.
type Coord struct {
	X, Y, Z float64
}

// Sub returns c - o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{c.X - o.X, c.Y - o.Y, c.Z - o.Z}
}

// Dot returns the dot product of c and o.
func (c Coord) Dot(o Coord) float64 {
	return c.X*o.X + c.Y*o.Y + c.Z*o.Z
}

// Cross returns the cross product of c and o.
func (c Coord) Cross(o Coord) Coord {
	return Coord{
		c.Y*o.Z - c.Z*o.Y,
		c.Z*o.X - c.X*o.Z,
		c.X*o.Y - c.Y*o.X,
	}
}

// Norm returns the Euclidean length of c.
func (c Coord) Norm() float64 {
	return math.Sqrt(c.Dot(c))
}

// SamePoint reports whether c and o coincide within the interactive placement
// epsilon (1e-6 on the squared distance). Used by collaborators to suppress
// redundant placements at an identical position.
func (c Coord) SamePoint(o Coord) bool {
	d := c.Sub(o)
	return d.Dot(d) <= 1e-6
}

// Landmark is a single named point with its lifecycle status.
// Coord is meaningful only when Status is StatusDefined.
type Landmark struct {
	Label  string
	Status Status
	Coord  Coord
}
