// Package codec implements the points file format: it always writes the
// canonical tab-separated sectioned grammar and reads that grammar plus three
// legacy variants produced by earlier releases.
//
// Recognized grammars:
//  1. Canonical: [POINTS]/[DISTANCES]/[ANGLES] sections with tab-separated
//     rows and header lines.
//  2. Legacy sectioned: same headers, colon-separated "Point X: ..." rows and
//     "A-B: value" measurement rows.
//  3. Legacy unsectioned: bare "Point X: ..." lines and nothing else.
//
// Files are decoded as UTF-8 first and as Windows-1250 when that fails.
// Malformed rows are skipped, never fatal: old files in the field contain
// stray and partial lines.
package codec

import (
	"errors"

	"github.com/lborak/cleftmeter/internal/landmark"
	"github.com/lborak/cleftmeter/internal/measure"
)

// ErrUnreadable is returned when the file content cannot be decoded under
// either supported encoding.
var ErrUnreadable = errors.New("file is not valid UTF-8 or Windows-1250 text")

// Document is the persisted annotation state. On encode, Results supplies the
// value columns. On decode, Results is empty: stored values are display
// artifacts and are always recomputed from coordinates.
type Document struct {
	// ModelName is the base name of the companion 3D model file, when known.
	ModelName string

	Landmarks []landmark.Landmark
	Distances []measure.Distance
	Angles    []measure.Angle
	Results   measure.Results
}

// HasPoints reports whether decode recognized at least one POINTS row.
// A load replaces the registry's label sequence only when this is true.
func (d *Document) HasPoints() bool {
	return len(d.Landmarks) > 0
}

// HasDistances reports whether decode recognized at least one DISTANCES row.
func (d *Document) HasDistances() bool {
	return len(d.Distances) > 0
}

// HasAngles reports whether decode recognized at least one ANGLES row.
func (d *Document) HasAngles() bool {
	return len(d.Angles) > 0
}
