package presentation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lborak/cleftmeter/internal/landmark"
	"github.com/lborak/cleftmeter/internal/session"
)

func TestFromSession_StatusDisplay(t *testing.T) {
	s := session.New()
	defer s.Close()

	_, err := s.DefineNext(landmark.Coord{X: 1, Y: 2, Z: 3})
	require.NoError(t, err)
	_, err = s.DeferNext()
	require.NoError(t, err)

	dto := FromSession(s)
	require.Len(t, dto.Points, len(landmark.DefaultLabels))

	require.Equal(t, "defined", dto.Points[0].Display)
	require.Equal(t, "skipped", dto.Points[1].Display)
	require.Equal(t, "define now", dto.Points[2].Display)
	require.Equal(t, "to be defined", dto.Points[3].Display)

	require.NotNil(t, dto.Points[0].X)
	require.InDelta(t, 1.0, *dto.Points[0].X, 1e-9)
	require.Nil(t, dto.Points[1].X)
}

func TestFromSession_Measurements(t *testing.T) {
	s := session.New()
	defer s.Close()

	_, err := s.DefineNext(landmark.Coord{})
	require.NoError(t, err)
	_, err = s.DefineNext(landmark.Coord{X: 3})
	require.NoError(t, err)

	dto := FromSession(s)
	require.Equal(t, "I-P", dto.Distances[0].Name)
	require.Equal(t, "point-point", dto.Distances[0].Kind)
	require.Equal(t, "3.000", dto.Distances[0].Value)
	require.Equal(t, "mm", dto.Distances[0].Unit)

	require.Equal(t, "degrees", dto.Angles[0].Unit)
	require.Equal(t, "n/a", dto.Angles[0].Value)

	// The point-line defaults carry their compound second endpoint name.
	var foundPointLine bool
	for _, d := range dto.Distances {
		if d.Kind == "point-line" {
			foundPointLine = true
		}
	}
	require.True(t, foundPointLine)
}

func TestPromptLine(t *testing.T) {
	s := session.New()
	defer s.Close()

	require.Equal(t, "Define point I", PromptLine(s.Registry()))

	for range landmark.DefaultLabels {
		_, err := s.DeferNext()
		require.NoError(t, err)
	}
	require.Equal(t, "All points marked.", PromptLine(s.Registry()))
}

func TestFormatJSON(t *testing.T) {
	s := session.New()
	defer s.Close()
	s.SetModelName("case01.stl")

	var buf bytes.Buffer
	f := NewFormatter(&buf)
	require.NoError(t, f.FormatJSON(FromSession(s)))

	var out SessionDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "case01.stl", out.ModelName)
	require.Len(t, out.Points, len(landmark.DefaultLabels))
}

func TestFormatText(t *testing.T) {
	s := session.New()
	defer s.Close()

	_, err := s.DefineNext(landmark.Coord{X: 1.234, Y: 0, Z: 0})
	require.NoError(t, err)

	var buf bytes.Buffer
	f := NewFormatter(&buf)
	require.NoError(t, f.FormatText(FromSession(s)))

	out := buf.String()
	require.Contains(t, out, "Points")
	require.Contains(t, out, "Distances")
	require.Contains(t, out, "Angles")
	require.Contains(t, out, "define now")
	require.Contains(t, out, "1.23")
}

func TestFormatText_HideValues(t *testing.T) {
	s := session.New()
	defer s.Close()

	var buf bytes.Buffer
	f := NewFormatter(&buf)
	f.ShowValues = false
	require.NoError(t, f.FormatText(FromSession(s)))
	require.NotContains(t, buf.String(), "Value")
}
