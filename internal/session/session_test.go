package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lborak/cleftmeter/internal/landmark"
	"github.com/lborak/cleftmeter/internal/measure"
)

func TestNew(t *testing.T) {
	s := New()
	defer s.Close()

	require.Equal(t, len(landmark.DefaultLabels), s.Registry().Len())
	require.Len(t, s.Set().Distances(), len(measure.DefaultDistances))
	require.Len(t, s.Set().Angles(), len(measure.DefaultAngles))
	require.False(t, s.Dirty())

	// All landmarks undefined, so every default measurement is unavailable.
	res := s.Results()
	require.Equal(t, "n/a", res.Distance(measure.DefaultDistances[0]).String())
}

func TestDefineNext_RecomputesAndMarksDirty(t *testing.T) {
	s := New()
	defer s.Close()

	i, err := s.DefineNext(landmark.Coord{X: 0, Y: 0, Z: 0})
	require.NoError(t, err)
	require.Equal(t, 0, i)
	i, err = s.DefineNext(landmark.Coord{X: 3, Y: 0, Z: 0})
	require.NoError(t, err)
	require.Equal(t, 1, i)

	require.True(t, s.Dirty())
	res := s.Results()
	require.Equal(t, "3.000", res.Distance(measure.Distance{A: "I", B: "P"}).String())
}

func TestSkip_DropsCoordinate(t *testing.T) {
	s := New()
	defer s.Close()

	_, err := s.DefineNext(landmark.Coord{X: 1, Y: 2, Z: 3})
	require.NoError(t, err)
	require.NoError(t, s.Skip(0))

	mark, err := s.Registry().At(0)
	require.NoError(t, err)
	require.Equal(t, landmark.StatusSkipped, mark.Status)
	require.Equal(t, landmark.Coord{}, mark.Coord)

	res := s.Results()
	require.Equal(t, "n/a", res.Distance(measure.Distance{A: "I", B: "P"}).String())
}

func TestRemoveDistance_DropsCachedResultBothOrders(t *testing.T) {
	s := New()
	defer s.Close()

	_, err := s.DefineNext(landmark.Coord{})
	require.NoError(t, err)
	_, err = s.DefineNext(landmark.Coord{X: 4})
	require.NoError(t, err)

	d := measure.DefaultDistances[0] // I-P
	require.Equal(t, "4.000", s.Results().Distance(d).String())

	require.NoError(t, s.RemoveDistance(0))
	require.Equal(t, "n/a", s.Results().Distance(d).String())
	require.Equal(t, "n/a", s.Results().Distance(measure.Distance{A: d.B, B: d.A}).String())
	require.Len(t, s.Set().Distances(), len(measure.DefaultDistances)-1)
}

func TestAddDistance_RejectsDuplicateReversed(t *testing.T) {
	s := New()
	defer s.Close()

	err := s.AddDistance(measure.Distance{A: "P", B: "I"})
	require.ErrorIs(t, err, measure.ErrDuplicateDefinition)
}

func TestClear_RestoresDefaults(t *testing.T) {
	s := New()
	defer s.Close()

	_, err := s.DefineNext(landmark.Coord{X: 1})
	require.NoError(t, err)
	require.NoError(t, s.RemoveDistance(0))
	s.SetModelName("skull.stl")

	s.Clear()

	require.False(t, s.Dirty())
	require.Empty(t, s.ModelName())
	require.Len(t, s.Set().Distances(), len(measure.DefaultDistances))
	mark, err := s.Registry().At(0)
	require.NoError(t, err)
	require.Equal(t, landmark.StatusUndefined, mark.Status)
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case01.txt")
	ctx := context.Background()

	s := New()
	defer s.Close()
	s.SetModelName("case01.stl")
	_, err := s.DefineNext(landmark.Coord{X: 1.5, Y: 2.25, Z: -3})
	require.NoError(t, err)
	_, err = s.DeferNext()
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, path))
	require.False(t, s.Dirty())

	loaded := New()
	defer loaded.Close()
	require.NoError(t, loaded.Load(ctx, path))

	require.Equal(t, "case01.stl", loaded.ModelName())
	require.False(t, loaded.Dirty())
	mark, err := loaded.Registry().At(0)
	require.NoError(t, err)
	require.Equal(t, landmark.StatusDefined, mark.Status)
	require.InDelta(t, 1.5, mark.Coord.X, 1e-9)
	mark, err = loaded.Registry().At(1)
	require.NoError(t, err)
	require.Equal(t, landmark.StatusSkipped, mark.Status)
}

func TestLoad_MissingFileLeavesStateIntact(t *testing.T) {
	s := New()
	defer s.Close()

	_, err := s.DefineNext(landmark.Coord{X: 7})
	require.NoError(t, err)

	err = s.Load(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)

	mark, atErr := s.Registry().At(0)
	require.NoError(t, atErr)
	require.Equal(t, landmark.StatusDefined, mark.Status)
	require.True(t, s.Dirty())
}

func TestLoad_DuplicateLabelFailsAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dup.txt")
	content := "[POINTS]\n" +
		"A\tdefined\t1.0\t2.0\t3.0\n" +
		"A\tdefined\t4.0\t5.0\t6.0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := New()
	defer s.Close()
	_, err := s.DefineNext(landmark.Coord{X: 9})
	require.NoError(t, err)

	require.ErrorIs(t, s.Load(context.Background(), path), landmark.ErrDuplicateLabel)

	// Prior state survives the failed load.
	require.Equal(t, len(landmark.DefaultLabels), s.Registry().Len())
	mark, atErr := s.Registry().At(0)
	require.NoError(t, atErr)
	require.Equal(t, landmark.StatusDefined, mark.Status)
}

func TestLoad_NoPointsKeepsCanonicalLabels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("# just a comment\n"), 0o644))

	s := New()
	defer s.Close()
	_, err := s.DefineNext(landmark.Coord{X: 1})
	require.NoError(t, err)

	require.NoError(t, s.Load(context.Background(), path))

	require.Equal(t, landmark.DefaultLabels, s.Registry().Labels())
	mark, atErr := s.Registry().At(0)
	require.NoError(t, atErr)
	require.Equal(t, landmark.StatusUndefined, mark.Status)
	require.Len(t, s.Set().Distances(), len(measure.DefaultDistances))
}

func TestSave_WritesCanonicalGrammar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	s := New()
	defer s.Close()
	_, err := s.DefineNext(landmark.Coord{X: 1, Y: 2, Z: 3})
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.Contains(t, text, "[POINTS]")
	require.Contains(t, text, "[DISTANCES]")
	require.Contains(t, text, "[ANGLES]")
	require.Contains(t, text, "I\tdefined\t1.000000\t2.000000\t3.000000")
}

func TestSubscribe_PublishesChanges(t *testing.T) {
	s := New()
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := s.Subscribe(ctx)

	_, err := s.DefineNext(landmark.Coord{X: 1})
	require.NoError(t, err)

	select {
	case ev := <-ch:
		require.Equal(t, ChangePointDefined, ev.Payload.Kind)
		require.Equal(t, "I", ev.Payload.Detail)
	case <-time.After(time.Second):
		t.Fatal("no change event published")
	}
}

func TestCompanionPath(t *testing.T) {
	require.Equal(t, "/data/case01.txt", CompanionPath("/data/case01.stl"))
	require.Equal(t, "scan.txt", CompanionPath("scan.obj"))
	require.Equal(t, "noext.txt", CompanionPath("noext"))
}
