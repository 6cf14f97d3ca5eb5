// Package session composes the landmark registry, the measurement set and the
// computed results into one annotation session with load/save, change
// notification and wholesale recomputation after every mutation.
package session

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lborak/cleftmeter/internal/codec"
	"github.com/lborak/cleftmeter/internal/landmark"
	"github.com/lborak/cleftmeter/internal/log"
	"github.com/lborak/cleftmeter/internal/measure"
	"github.com/lborak/cleftmeter/internal/pubsub"
)

// ChangeKind identifies what a session change event describes.
type ChangeKind int

const (
	ChangePointDefined ChangeKind = iota
	ChangePointRedefined
	ChangePointSkipped
	ChangePointDeferred
	ChangeDistanceAdded
	ChangeDistanceRemoved
	ChangeAngleAdded
	ChangeAngleRemoved
	ChangeLoaded
	ChangeSaved
	ChangeCleared
)

// Change is published on the session broker after every successful mutation.
type Change struct {
	Kind   ChangeKind
	Detail string
}

// Session is one annotation session over a single points file.
// All mutators recompute every measurement before returning, so Results is
// never stale relative to the registry and the definition set.
type Session struct {
	mu       sync.Mutex
	id       uuid.UUID
	registry *landmark.Registry
	set      *measure.Set
	results  measure.Results
	model    string
	dirty    bool
	broker   *pubsub.Broker[Change]
	tracer   trace.Tracer
}

// New creates a session with the canonical labels and default measurement
// definitions, all landmarks undefined.
func New() *Session {
	s := &Session{
		id:       uuid.New(),
		registry: landmark.NewRegistry(),
		set:      measure.NewDefaultSet(),
		broker:   pubsub.NewBroker[Change](),
		tracer:   otel.Tracer("cleftmeter/session"),
	}
	s.results = measure.Compute(s.registry, s.set)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Registry returns the landmark registry.
func (s *Session) Registry() *landmark.Registry { return s.registry }

// Set returns the measurement definition set.
func (s *Session) Set() *measure.Set { return s.set }

// Results returns the current computed measurements.
func (s *Session) Results() measure.Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// ModelName returns the associated model file name, if any.
func (s *Session) ModelName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// SetModelName records the base name of the companion 3D model file.
func (s *Session) SetModelName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = name
}

// Dirty reports whether the session has unsaved changes.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Subscribe returns a channel of change events, closed when ctx is cancelled.
func (s *Session) Subscribe(ctx context.Context) <-chan pubsub.Event[Change] {
	return s.broker.Subscribe(ctx)
}

// Close releases the session's event broker.
func (s *Session) Close() {
	s.broker.Close()
}

// DefineNext assigns coord to the lowest-index undefined landmark and returns
// that index.
func (s *Session) DefineNext(coord landmark.Coord) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.registry.DefineNext(coord)
	if err != nil {
		return 0, err
	}
	mark, _ := s.registry.At(i)
	s.commit(ChangePointDefined, mark.Label)
	return i, nil
}

// Redefine assigns a new coordinate to the landmark at index i.
func (s *Session) Redefine(i int, coord landmark.Coord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registry.Redefine(i, coord); err != nil {
		return err
	}
	mark, _ := s.registry.At(i)
	s.commit(ChangePointRedefined, mark.Label)
	return nil
}

// Skip marks the landmark at index i as skipped and drops its coordinate.
func (s *Session) Skip(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registry.Skip(i); err != nil {
		return err
	}
	mark, _ := s.registry.At(i)
	s.commit(ChangePointSkipped, mark.Label)
	return nil
}

// DeleteAt removes the coordinate of the landmark at index i.
// The landmark keeps its place in the sequence as a skipped entry.
func (s *Session) DeleteAt(i int) error {
	return s.Skip(i)
}

// DeferNext marks the lowest-index undefined landmark as skipped without a
// coordinate and returns its index.
func (s *Session) DeferNext() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.registry.DeferNext()
	if err != nil {
		return 0, err
	}
	mark, _ := s.registry.At(i)
	s.commit(ChangePointDeferred, mark.Label)
	return i, nil
}

// AddDistance adds a distance definition, rejecting duplicates in either
// endpoint order.
func (s *Session) AddDistance(d measure.Distance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.set.AddDistance(d); err != nil {
		return err
	}
	s.commit(ChangeDistanceAdded, d.String())
	return nil
}

// AddAngle adds an angle definition, rejecting duplicates with the endpoints
// swapped around the same vertex.
func (s *Session) AddAngle(a measure.Angle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.set.AddAngle(a); err != nil {
		return err
	}
	s.commit(ChangeAngleAdded, a.String())
	return nil
}

// RemoveDistance removes the distance definition at index i along with any
// cached result stored under either endpoint order.
func (s *Session) RemoveDistance(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.set.RemoveDistance(i)
	if err != nil {
		return err
	}
	s.results.DeleteDistance(d)
	s.commit(ChangeDistanceRemoved, d.String())
	return nil
}

// RemoveAngle removes the angle definition at index i along with any cached
// result stored under either endpoint order.
func (s *Session) RemoveAngle(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.set.RemoveAngle(i)
	if err != nil {
		return err
	}
	s.results.DeleteAngle(a)
	s.commit(ChangeAngleRemoved, a.String())
	return nil
}

// Clear resets the session to the canonical labels and default definitions
// with every landmark undefined.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registry.Reset()
	s.set.ResetToDefaults()
	s.model = ""
	s.commit(ChangeCleared, "")
	s.dirty = false
}

// Recompute re-evaluates every measurement from the current coordinates.
func (s *Session) Recompute(ctx context.Context) measure.Results {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, span := s.tracer.Start(ctx, "session.recompute")
	defer span.End()

	s.results = measure.Compute(s.registry, s.set)
	span.SetAttributes(
		attribute.Int("distances", len(s.set.Distances())),
		attribute.Int("angles", len(s.set.Angles())),
	)
	return s.results
}

// Load replaces the session state from the points file at path.
// The label sequence is replaced only when the file defines at least one
// POINTS row; the distance and angle lists likewise keep their defaults when
// their sections are empty. On any error the session is left untouched.
func (s *Session) Load(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, span := s.tracer.Start(ctx, "session.load",
		trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	data, err := os.ReadFile(path) //nolint:gosec // G304: user-chosen points file
	if err != nil {
		log.ErrorErr(log.CatSession, "Failed to read points file", err, "path", path)
		return fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := codec.Decode(data)
	if err != nil {
		log.ErrorErr(log.CatSession, "Failed to decode points file", err, "path", path)
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	// Stage the registry replacement first so a duplicate label in the file
	// fails before any session state changes.
	staged := landmark.NewRegistry()
	if doc.HasPoints() {
		if err := staged.ReplaceFromLoad(doc.Landmarks); err != nil {
			log.ErrorErr(log.CatSession, "Rejected points file", err, "path", path)
			return fmt.Errorf("loading %s: %w", path, err)
		}
	} else {
		log.Warn(log.CatSession, "No points in file, keeping canonical labels", "path", path)
	}

	s.registry = staged
	s.set.ResetToDefaults()
	if doc.HasDistances() {
		s.set.ReplaceDistances(doc.Distances)
	}
	if doc.HasAngles() {
		s.set.ReplaceAngles(doc.Angles)
	}
	s.model = doc.ModelName

	s.results = measure.Compute(s.registry, s.set)
	s.publish(ChangeLoaded, path)
	s.dirty = false

	span.SetAttributes(attribute.Int("points", s.registry.Len()))
	log.Info(log.CatSession, "Loaded points file", "path", path,
		"points", s.registry.Len(),
		"distances", len(s.set.Distances()),
		"angles", len(s.set.Angles()))
	return nil
}

// Save writes the session to path in the canonical grammar. Measurements are
// recomputed immediately before writing so the stored values always match the
// coordinates.
func (s *Session) Save(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, span := s.tracer.Start(ctx, "session.save",
		trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	s.results = measure.Compute(s.registry, s.set)

	doc := &codec.Document{
		ModelName: s.model,
		Landmarks: s.registry.Landmarks(),
		Distances: s.set.Distances(),
		Angles:    s.set.Angles(),
		Results:   s.results,
	}

	var buf bytes.Buffer
	if err := codec.Encode(&buf, doc); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // G306: data file
		log.ErrorErr(log.CatSession, "Failed to write points file", err, "path", path)
		return fmt.Errorf("writing %s: %w", path, err)
	}

	s.publish(ChangeSaved, path)
	s.dirty = false

	log.Info(log.CatSession, "Saved points file", "path", path, "points", s.registry.Len())
	return nil
}

// commit recomputes results, marks the session dirty and publishes the change.
// Callers must hold s.mu.
func (s *Session) commit(kind ChangeKind, detail string) {
	s.results = measure.Compute(s.registry, s.set)
	s.dirty = true
	s.publish(kind, detail)
}

func (s *Session) publish(kind ChangeKind, detail string) {
	s.broker.Publish(Change{Kind: kind, Detail: detail})
}

// CompanionPath returns the points file path that accompanies a model file:
// same directory and base name with a .txt extension.
func CompanionPath(modelPath string) string {
	ext := filepath.Ext(modelPath)
	return strings.TrimSuffix(modelPath, ext) + ".txt"
}
