package measure

import "fmt"

// DefaultDistances is the built-in distance definition list for a cleft
// session: 23 point-point pairs plus 3 point-line references.
var DefaultDistances = []Distance{
	{A: "I", B: "P"}, {A: "I", B: "P'"}, {A: "I", B: "L"}, {A: "I", B: "L'"},
	{A: "I", B: "C"}, {A: "I", B: "C'"}, {A: "I", B: "Q"}, {A: "I", B: "Q'"},
	{A: "I", B: "T"}, {A: "I", B: "T'"}, {A: "P", B: "L"}, {A: "P'", B: "L'"},
	{A: "P", B: "C"}, {A: "P'", B: "C'"}, {A: "P", B: "Q"}, {A: "P'", B: "Q'"},
	{A: "P", B: "T"}, {A: "P'", B: "T'"},
	{A: "P", B: "P'"}, {A: "L", B: "L'"}, {A: "C", B: "C'"}, {A: "Q", B: "Q'"}, {A: "T", B: "T'"},
	{A: "I", B: "C", C: "C'"}, {A: "I", B: "Q", C: "Q'"}, {A: "I", B: "T", C: "T'"},
}

// DefaultAngles is the built-in angle definition list for a cleft session.
var DefaultAngles = []Angle{
	{A: "I", Vertex: "L", B: "L'"}, {A: "I", Vertex: "L'", B: "L"},
	{A: "I", Vertex: "C", B: "C'"}, {A: "I", Vertex: "C'", B: "C"},
	{A: "I", Vertex: "Q", B: "Q'"}, {A: "I", Vertex: "Q'", B: "Q"},
	{A: "I", Vertex: "T", B: "T'"}, {A: "I", Vertex: "T'", B: "T"},
	{A: "C", Vertex: "L", B: "P"}, {A: "T", Vertex: "C", B: "L"},
}

// Set owns the ordered distance and angle definition lists. Order is display
// order only; uniqueness is enforced under the symmetry rules of the
// definition types. Set is not safe for concurrent use.
type Set struct {
	distances []Distance
	angles    []Angle
}

// NewDefaultSet creates a set preloaded with the built-in definitions.
func NewDefaultSet() *Set {
	s := &Set{}
	s.ResetToDefaults()
	return s
}

// ResetToDefaults restores the built-in definition lists.
func (s *Set) ResetToDefaults() {
	s.distances = make([]Distance, len(DefaultDistances))
	copy(s.distances, DefaultDistances)
	s.angles = make([]Angle, len(DefaultAngles))
	copy(s.angles, DefaultAngles)
}

// Distances returns a copy of the ordered distance definition list.
func (s *Set) Distances() []Distance {
	out := make([]Distance, len(s.distances))
	copy(out, s.distances)
	return out
}

// Angles returns a copy of the ordered angle definition list.
func (s *Set) Angles() []Angle {
	out := make([]Angle, len(s.angles))
	copy(out, s.angles)
	return out
}

// AddDistance appends a distance definition. The set is unchanged on error.
func (s *Set) AddDistance(d Distance) error {
	if err := d.validate(); err != nil {
		return fmt.Errorf("distance %s: %w", d, err)
	}
	for _, existing := range s.distances {
		if existing.EquivalentTo(d) {
			return fmt.Errorf("distance %s: %w", d, ErrDuplicateDefinition)
		}
	}
	s.distances = append(s.distances, d)
	return nil
}

// AddAngle appends an angle definition. The set is unchanged on error.
func (s *Set) AddAngle(a Angle) error {
	if err := a.validate(); err != nil {
		return fmt.Errorf("angle %s: %w", a, err)
	}
	for _, existing := range s.angles {
		if existing.EquivalentTo(a) {
			return fmt.Errorf("angle %s: %w", a, ErrDuplicateDefinition)
		}
	}
	s.angles = append(s.angles, a)
	return nil
}

// RemoveDistance deletes the definition at index i and returns it so the
// caller can drop any cached result, including one keyed by the reversed
// orientation.
func (s *Set) RemoveDistance(i int) (Distance, error) {
	if i < 0 || i >= len(s.distances) {
		return Distance{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	d := s.distances[i]
	s.distances = append(s.distances[:i], s.distances[i+1:]...)
	return d, nil
}

// RemoveAngle deletes the definition at index i and returns it.
func (s *Set) RemoveAngle(i int) (Angle, error) {
	if i < 0 || i >= len(s.angles) {
		return Angle{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	a := s.angles[i]
	s.angles = append(s.angles[:i], s.angles[i+1:]...)
	return a, nil
}

// ReplaceDistances swaps in a definition list recovered from a file.
func (s *Set) ReplaceDistances(defs []Distance) {
	s.distances = make([]Distance, len(defs))
	copy(s.distances, defs)
}

// ReplaceAngles swaps in an angle list recovered from a file.
func (s *Set) ReplaceAngles(defs []Angle) {
	s.angles = make([]Angle, len(defs))
	copy(s.angles, defs)
}
