package measure

import (
	"fmt"
	"math"

	"github.com/lborak/cleftmeter/internal/landmark"
)

// degenerateEps is the absolute epsilon below which reference geometry is
// considered degenerate (zero-length line or arm).
const degenerateEps = 1e-9

// ResultState classifies an evaluated measurement.
type ResultState int

const (
	// Computed means the measurement evaluated to a numeric value.
	Computed ResultState = iota

	// NotAvailable means an operand landmark is missing or not yet defined.
	NotAvailable

	// Invalid means the geometry is degenerate.
	Invalid
)

// Result is the outcome of evaluating one definition. Value holds the
// formatted number only when State is Computed.
type Result struct {
	State ResultState
	Value string
}

// String renders the result the way panels and files show it.
func (r Result) String() string {
	switch r.State {
	case Computed:
		return r.Value
	case Invalid:
		return "invalid"
	default:
		return "n/a"
	}
}

// Results maps every definition in a set to its evaluated outcome. It is
// derived state: rebuilt in full after every mutation, never patched.
type Results struct {
	Distances map[Distance]Result
	Angles    map[Angle]Result
}

// Distance looks up a distance result, falling back to "n/a" for unknown keys.
func (r Results) Distance(d Distance) Result {
	if res, ok := r.Distances[d]; ok {
		return res
	}
	return Result{State: NotAvailable}
}

// Angle looks up an angle result, falling back to "n/a" for unknown keys.
func (r Results) Angle(a Angle) Result {
	if res, ok := r.Angles[a]; ok {
		return res
	}
	return Result{State: NotAvailable}
}

// DeleteDistance removes the cached result for d under both orientations.
func (r Results) DeleteDistance(d Distance) {
	delete(r.Distances, d)
	delete(r.Distances, d.reversed())
}

// DeleteAngle removes the cached result for a under both orientations.
func (r Results) DeleteAngle(a Angle) {
	delete(r.Angles, a)
	delete(r.Angles, a.reversed())
}

// Compute evaluates every definition in the set against the registry's
// current coordinates. It is pure with respect to its inputs.
func Compute(reg *landmark.Registry, set *Set) Results {
	out := Results{
		Distances: make(map[Distance]Result, len(set.distances)),
		Angles:    make(map[Angle]Result, len(set.angles)),
	}
	for _, d := range set.distances {
		out.Distances[d] = computeDistance(reg, d)
	}
	for _, a := range set.angles {
		out.Angles[a] = computeAngle(reg, a)
	}
	return out
}

func computeDistance(reg *landmark.Registry, d Distance) Result {
	a, okA := reg.CoordOf(d.A)
	b, okB := reg.CoordOf(d.B)
	if d.Kind() == PointPoint {
		if !okA || !okB {
			return Result{State: NotAvailable}
		}
		return Result{State: Computed, Value: fmt.Sprintf("%.3f", a.Sub(b).Norm())}
	}

	c, okC := reg.CoordOf(d.C)
	if !okA || !okB || !okC {
		return Result{State: NotAvailable}
	}
	line := c.Sub(b)
	norm := line.Norm()
	if norm < degenerateEps {
		return Result{State: Invalid}
	}
	dist := line.Cross(b.Sub(a)).Norm() / norm
	return Result{State: Computed, Value: fmt.Sprintf("%.3f", dist)}
}

func computeAngle(reg *landmark.Registry, a Angle) Result {
	p1, ok1 := reg.CoordOf(a.A)
	v, okV := reg.CoordOf(a.Vertex)
	p2, ok2 := reg.CoordOf(a.B)
	if !ok1 || !okV || !ok2 {
		return Result{State: NotAvailable}
	}

	v1 := p1.Sub(v)
	v2 := p2.Sub(v)
	n1 := v1.Norm()
	n2 := v2.Norm()
	if n1 < degenerateEps || n2 < degenerateEps {
		return Result{State: Invalid}
	}

	cos := v1.Dot(v2) / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))
	deg := math.Acos(cos) * 180 / math.Pi
	return Result{State: Computed, Value: fmt.Sprintf("%.2f°", deg)}
}
