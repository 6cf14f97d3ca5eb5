package landmark

import (
	"errors"
	"fmt"
)

// DefaultLabels is the canonical ordered label set for a cleft measurement
// session. The order is semantically meaningful: it drives the "next to
// define" cursor during placement.
var DefaultLabels = []string{"I", "P", "P'", "L", "L'", "C", "C'", "Q", "Q'", "T", "T'"}

var (
	// ErrAllDefined is returned when a mutation needs an undefined landmark
	// but every landmark is already defined or skipped.
	ErrAllDefined = errors.New("all landmarks are defined or skipped")

	// ErrIndexOutOfRange is returned for indices outside the registry.
	// This is a caller contract violation, not an operator-facing condition.
	ErrIndexOutOfRange = errors.New("landmark index out of range")

	// ErrDuplicateLabel is returned when a replacement sequence repeats a label.
	ErrDuplicateLabel = errors.New("duplicate landmark label")
)

// Registry owns the ordered collection of landmarks and their statuses.
// All mutation goes through the methods below; callers read state back through
// the accessors after each mutation. Registry is not safe for concurrent use;
// a concurrent embedding must serialize mutating calls externally.
type Registry struct {
	marks []Landmark
}

// NewRegistry creates a registry with the canonical label sequence,
// all landmarks undefined.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

// Len returns the number of landmarks.
func (r *Registry) Len() int {
	return len(r.marks)
}

// At returns the landmark at index i.
func (r *Registry) At(i int) (Landmark, error) {
	if i < 0 || i >= len(r.marks) {
		return Landmark{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return r.marks[i], nil
}

// Landmarks returns a copy of the ordered landmark sequence.
func (r *Registry) Landmarks() []Landmark {
	out := make([]Landmark, len(r.marks))
	copy(out, r.marks)
	return out
}

// Labels returns the ordered label sequence.
func (r *Registry) Labels() []string {
	out := make([]string, len(r.marks))
	for i, m := range r.marks {
		out[i] = m.Label
	}
	return out
}

// IndexOf returns the index of the landmark with the given label.
func (r *Registry) IndexOf(label string) (int, bool) {
	for i, m := range r.marks {
		if m.Label == label {
			return i, true
		}
	}
	return 0, false
}

// CoordOf returns the coordinate of the labeled landmark if it is defined.
func (r *Registry) CoordOf(label string) (Coord, bool) {
	i, ok := r.IndexOf(label)
	if !ok || r.marks[i].Status != StatusDefined {
		return Coord{}, false
	}
	return r.marks[i].Coord, true
}

// NextUndefined returns the lowest index whose status is StatusUndefined.
// The second return is false when every landmark is defined or skipped.
// Statuses need not be monotonic left to right, so this is a linear scan.
func (r *Registry) NextUndefined() (int, bool) {
	for i, m := range r.marks {
		if m.Status == StatusUndefined {
			return i, true
		}
	}
	return 0, false
}

// DefineNext places the first undefined landmark at coord and returns its
// index. This is the sole path for "click to place the next point".
func (r *Registry) DefineNext(coord Coord) (int, error) {
	i, ok := r.NextUndefined()
	if !ok {
		return 0, ErrAllDefined
	}
	r.marks[i].Status = StatusDefined
	r.marks[i].Coord = coord
	return i, nil
}

// Redefine overwrites the landmark at index i with coord, regardless of its
// prior status. Labels and their order never change.
func (r *Registry) Redefine(i int, coord Coord) error {
	if i < 0 || i >= len(r.marks) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	r.marks[i].Status = StatusDefined
	r.marks[i].Coord = coord
	return nil
}

// Skip marks the landmark at index i as skipped, discarding any coordinate.
func (r *Registry) Skip(i int) error {
	if i < 0 || i >= len(r.marks) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	r.marks[i].Status = StatusSkipped
	r.marks[i].Coord = Coord{}
	return nil
}

// DeleteAt removes the coordinate of the landmark at index i. Deletion and
// skipping collapse to the same state at the data level.
func (r *Registry) DeleteAt(i int) error {
	return r.Skip(i)
}

// DeferNext skips the next undefined landmark and returns its index.
func (r *Registry) DeferNext() (int, error) {
	i, ok := r.NextUndefined()
	if !ok {
		return 0, ErrAllDefined
	}
	if err := r.Skip(i); err != nil {
		return 0, err
	}
	return i, nil
}

// DefinedLabels returns the labels of all defined landmarks in registry order.
func (r *Registry) DefinedLabels() []string {
	var out []string
	for _, m := range r.marks {
		if m.Status == StatusDefined {
			out = append(out, m.Label)
		}
	}
	return out
}

// Reset replaces the sequence with the canonical label set, all undefined.
func (r *Registry) Reset() {
	r.marks = make([]Landmark, len(DefaultLabels))
	for i, label := range DefaultLabels {
		r.marks[i] = Landmark{Label: label, Status: StatusUndefined}
	}
}

// ReplaceFromLoad atomically replaces the entire sequence with landmarks
// recovered from a file. The registry is untouched if validation fails, so a
// failed load never leaves partial state behind.
func (r *Registry) ReplaceFromLoad(marks []Landmark) error {
	seen := make(map[string]struct{}, len(marks))
	for _, m := range marks {
		if _, dup := seen[m.Label]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateLabel, m.Label)
		}
		seen[m.Label] = struct{}{}
	}
	next := make([]Landmark, len(marks))
	copy(next, marks)
	r.marks = next
	return nil
}
