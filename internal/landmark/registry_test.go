package landmark

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewRegistry_CanonicalLabels(t *testing.T) {
	r := NewRegistry()
	require.Equal(t, 11, r.Len())
	require.Equal(t, []string{"I", "P", "P'", "L", "L'", "C", "C'", "Q", "Q'", "T", "T'"}, r.Labels())

	for _, m := range r.Landmarks() {
		require.Equal(t, StatusUndefined, m.Status)
	}
}

func TestDefineNext_AdvancesCursor(t *testing.T) {
	r := NewRegistry()

	i, err := r.DefineNext(Coord{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 0, i)

	m, err := r.At(0)
	require.NoError(t, err)
	require.Equal(t, StatusDefined, m.Status)
	require.Equal(t, Coord{1, 2, 3}, m.Coord)

	next, ok := r.NextUndefined()
	require.True(t, ok)
	require.Equal(t, 1, next)
}

func TestDefineNext_SkipsOverSkippedAndDefined(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Skip(0))
	require.NoError(t, r.Redefine(1, Coord{5, 0, 0}))

	i, err := r.DefineNext(Coord{0, 0, 1})
	require.NoError(t, err)
	require.Equal(t, 2, i)
}

func TestDefineNext_AllDefined(t *testing.T) {
	r := NewRegistry()
	for j := 0; j < r.Len(); j++ {
		require.NoError(t, r.Redefine(j, Coord{float64(j), 0, 0}))
	}

	_, err := r.DefineNext(Coord{})
	require.ErrorIs(t, err, ErrAllDefined)

	_, ok := r.NextUndefined()
	require.False(t, ok)
}

func TestRedefine_WorksOnAnyStatus(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Skip(3))

	require.NoError(t, r.Redefine(3, Coord{1, 1, 1}))
	m, _ := r.At(3)
	require.Equal(t, StatusDefined, m.Status)

	require.NoError(t, r.Redefine(3, Coord{2, 2, 2}))
	m, _ = r.At(3)
	require.Equal(t, Coord{2, 2, 2}, m.Coord)
}

func TestRedefine_NeverChangesLabels(t *testing.T) {
	r := NewRegistry()
	before := r.Labels()
	require.NoError(t, r.Redefine(5, Coord{9, 9, 9}))
	require.Equal(t, before, r.Labels())
}

func TestRedefine_IndexOutOfRange(t *testing.T) {
	r := NewRegistry()
	require.ErrorIs(t, r.Redefine(-1, Coord{}), ErrIndexOutOfRange)
	require.ErrorIs(t, r.Redefine(r.Len(), Coord{}), ErrIndexOutOfRange)
	require.ErrorIs(t, r.Skip(99), ErrIndexOutOfRange)
}

func TestSkip_DiscardsCoordinate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Redefine(0, Coord{4, 5, 6}))
	require.NoError(t, r.Skip(0))

	m, _ := r.At(0)
	require.Equal(t, StatusSkipped, m.Status)
	require.Equal(t, Coord{}, m.Coord)
}

func TestDeleteAt_CollapsesToSkipped(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Redefine(2, Coord{1, 0, 0}))
	require.NoError(t, r.DeleteAt(2))

	m, _ := r.At(2)
	require.Equal(t, StatusSkipped, m.Status)
}

func TestDeferNext(t *testing.T) {
	r := NewRegistry()
	i, err := r.DeferNext()
	require.NoError(t, err)
	require.Equal(t, 0, i)

	m, _ := r.At(0)
	require.Equal(t, StatusSkipped, m.Status)

	next, ok := r.NextUndefined()
	require.True(t, ok)
	require.Equal(t, 1, next)
}

func TestDeferNext_AllDefined(t *testing.T) {
	r := NewRegistry()
	for j := 0; j < r.Len(); j++ {
		require.NoError(t, r.Skip(j))
	}
	_, err := r.DeferNext()
	require.ErrorIs(t, err, ErrAllDefined)
}

func TestDefinedLabels_RegistryOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Redefine(4, Coord{1, 0, 0})) // L'
	require.NoError(t, r.Redefine(0, Coord{0, 0, 0})) // I
	require.NoError(t, r.Skip(1))

	require.Equal(t, []string{"I", "L'"}, r.DefinedLabels())
}

func TestCoordOf(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Redefine(0, Coord{1, 2, 3}))

	c, ok := r.CoordOf("I")
	require.True(t, ok)
	require.Equal(t, Coord{1, 2, 3}, c)

	_, ok = r.CoordOf("P")
	require.False(t, ok, "undefined landmark has no coordinate")

	_, ok = r.CoordOf("NOPE")
	require.False(t, ok, "unknown label has no coordinate")
}

func TestReplaceFromLoad_Atomic(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Redefine(0, Coord{1, 1, 1}))

	err := r.ReplaceFromLoad([]Landmark{
		{Label: "A", Status: StatusDefined, Coord: Coord{1, 0, 0}},
		{Label: "A", Status: StatusSkipped},
	})
	require.ErrorIs(t, err, ErrDuplicateLabel)

	// Failed replacement leaves prior state intact.
	require.Equal(t, 11, r.Len())
	c, ok := r.CoordOf("I")
	require.True(t, ok)
	require.Equal(t, Coord{1, 1, 1}, c)

	require.NoError(t, r.ReplaceFromLoad([]Landmark{
		{Label: "A", Status: StatusDefined, Coord: Coord{1, 0, 0}},
		{Label: "B", Status: StatusSkipped},
	}))
	require.Equal(t, []string{"A", "B"}, r.Labels())
}

func TestReset(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.ReplaceFromLoad([]Landmark{{Label: "X", Status: StatusSkipped}}))
	r.Reset()

	require.Equal(t, DefaultLabels, r.Labels())
	for _, m := range r.Landmarks() {
		require.Equal(t, StatusUndefined, m.Status)
	}
}

func TestStatusRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusUndefined, StatusSkipped, StatusDefined} {
		require.Equal(t, s, StatusFromString(s.String()))
	}
	require.Equal(t, StatusUndefined, StatusFromString("garbage"))
}

func TestSamePoint(t *testing.T) {
	a := Coord{1, 2, 3}
	require.True(t, a.SamePoint(Coord{1.0000001, 2, 3}))
	require.False(t, a.SamePoint(Coord{1.01, 2, 3}))
}

// TestNextUndefined_IsLowestIndex is a property-based test: after any sequence
// of mutations, NextUndefined always returns the lowest undefined index.
func TestNextUndefined_IsLowestIndex(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := NewRegistry()
		ops := rapid.IntRange(0, 30).Draw(rt, "ops")
		for k := 0; k < ops; k++ {
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0:
				_, _ = r.DefineNext(Coord{float64(k), 0, 0})
			case 1:
				_, _ = r.DeferNext()
			case 2:
				_ = r.Skip(rapid.IntRange(0, r.Len()-1).Draw(rt, "skipIdx"))
			case 3:
				_ = r.Redefine(rapid.IntRange(0, r.Len()-1).Draw(rt, "redefIdx"), Coord{1, 1, 1})
			}
		}

		want := -1
		for i, m := range r.Landmarks() {
			if m.Status == StatusUndefined {
				want = i
				break
			}
		}
		got, ok := r.NextUndefined()
		if want == -1 {
			if ok {
				rt.Fatalf("expected no undefined landmark, got index %d", got)
			}
		} else if !ok || got != want {
			rt.Fatalf("NextUndefined = %d (ok=%v), want %d", got, ok, want)
		}
	})
}
