// Package testutil provides builders for assembling annotation sessions and
// points files in tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lborak/cleftmeter/internal/landmark"
	"github.com/lborak/cleftmeter/internal/measure"
	"github.com/lborak/cleftmeter/internal/session"
)

// step is one deferred mutation applied to the session being built.
type step func(t *testing.T, s *session.Session)

// SessionBuilder accumulates landmark placements and definition changes and
// applies them in order.
type SessionBuilder struct {
	t     *testing.T
	steps []step
}

// NewSessionBuilder creates a builder for an annotation session.
func NewSessionBuilder(t *testing.T) *SessionBuilder {
	t.Helper()
	return &SessionBuilder{t: t}
}

// WithPoint defines the next undefined landmark at the given coordinate.
func (b *SessionBuilder) WithPoint(x, y, z float64) *SessionBuilder {
	b.steps = append(b.steps, func(t *testing.T, s *session.Session) {
		_, err := s.DefineNext(landmark.Coord{X: x, Y: y, Z: z})
		require.NoError(t, err)
	})
	return b
}

// WithSkipped skips the next undefined landmark.
func (b *SessionBuilder) WithSkipped() *SessionBuilder {
	b.steps = append(b.steps, func(t *testing.T, s *session.Session) {
		_, err := s.DeferNext()
		require.NoError(t, err)
	})
	return b
}

// WithDistance adds a distance definition.
func (b *SessionBuilder) WithDistance(d measure.Distance) *SessionBuilder {
	b.steps = append(b.steps, func(t *testing.T, s *session.Session) {
		require.NoError(t, s.AddDistance(d))
	})
	return b
}

// WithAngle adds an angle definition.
func (b *SessionBuilder) WithAngle(a measure.Angle) *SessionBuilder {
	b.steps = append(b.steps, func(t *testing.T, s *session.Session) {
		require.NoError(t, s.AddAngle(a))
	})
	return b
}

// WithModelName sets the companion model file name.
func (b *SessionBuilder) WithModelName(name string) *SessionBuilder {
	b.steps = append(b.steps, func(t *testing.T, s *session.Session) {
		s.SetModelName(name)
	})
	return b
}

// Build creates the session and applies all accumulated steps.
// The session is closed automatically when the test finishes.
func (b *SessionBuilder) Build() *session.Session {
	b.t.Helper()
	s := session.New()
	b.t.Cleanup(s.Close)
	for _, apply := range b.steps {
		apply(b.t, s)
	}
	return s
}

// WritePointsFile writes content to a points file under a temp directory and
// returns its path.
func WritePointsFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.txt")
	content := strings.Join(lines, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
