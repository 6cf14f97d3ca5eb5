package measure

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSet_Counts(t *testing.T) {
	s := NewDefaultSet()
	require.Len(t, s.Distances(), 26)
	require.Len(t, s.Angles(), 10)
}

func TestAddDistance_PointPointDuplicate(t *testing.T) {
	s := &Set{}
	require.NoError(t, s.AddDistance(Distance{A: "A", B: "B"}))

	err := s.AddDistance(Distance{A: "B", B: "A"})
	require.ErrorIs(t, err, ErrDuplicateDefinition, "reversed pair is the same distance")
	require.Len(t, s.Distances(), 1)
}

func TestAddDistance_PointLineDuplicate(t *testing.T) {
	s := &Set{}
	require.NoError(t, s.AddDistance(Distance{A: "X", B: "A", C: "B"}))

	err := s.AddDistance(Distance{A: "X", B: "B", C: "A"})
	require.ErrorIs(t, err, ErrDuplicateDefinition, "line ends are an unordered pair")
}

func TestAddDistance_ApexNotInterchangeable(t *testing.T) {
	s := &Set{}
	require.NoError(t, s.AddDistance(Distance{A: "X", B: "A", C: "B"}))
	require.NoError(t, s.AddDistance(Distance{A: "A", B: "X", C: "B"}),
		"different apex is a different measurement")
}

func TestAddDistance_Invalid(t *testing.T) {
	s := &Set{}
	require.ErrorIs(t, s.AddDistance(Distance{A: "A", B: "A"}), ErrInvalidDefinition)
	require.ErrorIs(t, s.AddDistance(Distance{A: "A", B: "A", C: "B"}), ErrInvalidDefinition)
	require.ErrorIs(t, s.AddDistance(Distance{A: "A", B: "B", C: "B"}), ErrInvalidDefinition)
	require.ErrorIs(t, s.AddDistance(Distance{A: "", B: "B"}), ErrInvalidDefinition)
	require.Empty(t, s.Distances(), "set unchanged after rejections")
}

func TestAddAngle_ArmReversalDuplicate(t *testing.T) {
	s := &Set{}
	require.NoError(t, s.AddAngle(Angle{A: "A", Vertex: "V", B: "B"}))

	err := s.AddAngle(Angle{A: "B", Vertex: "V", B: "A"})
	require.ErrorIs(t, err, ErrDuplicateDefinition, "(A,V,B) and (B,V,A) are the same angle")

	require.NoError(t, s.AddAngle(Angle{A: "A", Vertex: "B", B: "V"}),
		"(A,V,B) and (A,B,V) differ: vertex moved")
}

func TestAddAngle_Invalid(t *testing.T) {
	s := &Set{}
	require.ErrorIs(t, s.AddAngle(Angle{A: "A", Vertex: "A", B: "B"}), ErrInvalidDefinition)
	require.ErrorIs(t, s.AddAngle(Angle{A: "A", Vertex: "V", B: "A"}), ErrInvalidDefinition)
	require.ErrorIs(t, s.AddAngle(Angle{A: "A", Vertex: "V", B: "V"}), ErrInvalidDefinition)
}

func TestRemoveDistance(t *testing.T) {
	s := &Set{}
	require.NoError(t, s.AddDistance(Distance{A: "A", B: "B"}))
	require.NoError(t, s.AddDistance(Distance{A: "A", B: "C"}))

	removed, err := s.RemoveDistance(0)
	require.NoError(t, err)
	require.Equal(t, Distance{A: "A", B: "B"}, removed)
	require.Equal(t, []Distance{{A: "A", B: "C"}}, s.Distances())

	_, err = s.RemoveDistance(5)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRemoveAngle(t *testing.T) {
	s := &Set{}
	require.NoError(t, s.AddAngle(Angle{A: "A", Vertex: "V", B: "B"}))

	removed, err := s.RemoveAngle(0)
	require.NoError(t, err)
	require.Equal(t, Angle{A: "A", Vertex: "V", B: "B"}, removed)
	require.Empty(t, s.Angles())

	_, err = s.RemoveAngle(0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDistanceString(t *testing.T) {
	require.Equal(t, "I-P", Distance{A: "I", B: "P"}.String())
	require.Equal(t, "I-CC'", Distance{A: "I", B: "C", C: "C'"}.String())
	require.Equal(t, "I-L-L'", Angle{A: "I", Vertex: "L", B: "L'"}.String())
}

func TestReplaceLists(t *testing.T) {
	s := NewDefaultSet()
	s.ReplaceDistances([]Distance{{A: "X", B: "Y"}})
	s.ReplaceAngles(nil)

	require.Equal(t, []Distance{{A: "X", B: "Y"}}, s.Distances())
	require.Empty(t, s.Angles())

	s.ResetToDefaults()
	require.Len(t, s.Distances(), len(DefaultDistances))
}
