package codec

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/lborak/cleftmeter/internal/landmark"
	"github.com/lborak/cleftmeter/internal/measure"
)

// section tracks which bracketed block the line classifier is inside.
type section int

const (
	sectionNone section = iota
	sectionPoints
	sectionDistances
	sectionAngles
)

// Decode parses file content in any of the four recognized grammars.
// Rows that match no recognized shape for their section are skipped; only an
// undecodable byte stream is an error.
func Decode(data []byte) (*Document, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	cur := sectionNone

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if name, ok := modelNameComment(line); ok {
				doc.ModelName = name
			}
			continue
		}

		switch strings.ToUpper(line) {
		case "[POINTS]":
			cur = sectionPoints
			continue
		case "[DISTANCES]":
			cur = sectionDistances
			continue
		case "[ANGLES]":
			cur = sectionAngles
			continue
		}

		if strings.ContainsRune(line, '\t') {
			parseTabRow(doc, cur, line)
		} else if strings.ContainsRune(line, ':') {
			parseColonRow(doc, cur, line)
		}
	}

	return doc, nil
}

// modelNameComment extracts the companion model file name from its preamble
// comment. Current files write "# Model File:"; the earliest releases wrote
// "# STL File:".
func modelNameComment(line string) (string, bool) {
	body := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	lower := strings.ToLower(body)
	for _, prefix := range []string{"model file:", "stl file:"} {
		if strings.HasPrefix(lower, prefix) {
			name := strings.TrimSpace(body[len(prefix):])
			return name, name != ""
		}
	}
	return "", false
}

// decodeText decodes the raw bytes as UTF-8, falling back to Windows-1250 for
// files written by pre-Unicode releases.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1250.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return string(decoded), nil
}

// parseTabRow handles canonical tab-separated rows. Header rows are skipped;
// rows outside a known section are ignored.
func parseTabRow(doc *Document, cur section, line string) {
	lower := strings.ToLower(line)
	if strings.HasPrefix(lower, "label\t") || strings.HasPrefix(lower, "type\t") {
		return
	}

	parts := strings.Split(line, "\t")
	switch cur {
	case sectionPoints:
		if len(parts) < 2 {
			return
		}
		label := parts[0]
		status := strings.ToLower(parts[1])
		mark := landmark.Landmark{Label: label, Status: landmark.StatusUndefined}
		if status == "defined" && len(parts) >= 5 {
			if c, ok := parseCoords(parts[2], parts[3], parts[4]); ok {
				mark.Status = landmark.StatusDefined
				mark.Coord = c
			}
		} else if status == "skipped" {
			mark.Status = landmark.StatusSkipped
		}
		doc.Landmarks = append(doc.Landmarks, mark)

	case sectionDistances:
		if len(parts) < 3 {
			return
		}
		d := measure.Distance{A: parts[1], B: parts[2]}
		if len(parts) > 3 && strings.TrimSpace(parts[3]) != "" {
			d.C = parts[3]
		}
		doc.Distances = append(doc.Distances, d)

	case sectionAngles:
		if len(parts) < 4 {
			return
		}
		doc.Angles = append(doc.Angles, measure.Angle{A: parts[1], Vertex: parts[2], B: parts[3]})
	}
}

// parseColonRow handles the legacy colon-separated grammars. Outside any
// section only bare "Point X: ..." lines are recognized; that variant carries
// no measurement definitions.
func parseColonRow(doc *Document, cur section, line string) {
	switch cur {
	case sectionNone, sectionPoints:
		// The unsectioned grammar only ever wrote "Point X: ...", so require
		// the space there; sectioned legacy rows match on the bare prefix.
		prefix := "point"
		if cur == sectionNone {
			prefix = "point "
		}
		label, value, ok := splitPointRow(line, prefix)
		if !ok {
			return
		}
		doc.Landmarks = append(doc.Landmarks, legacyPoint(label, value))

	case sectionDistances:
		defPart, _, _ := strings.Cut(line, ":")
		defPart = strings.TrimSpace(defPart)
		p0, rest, found := strings.Cut(defPart, "-")
		if !found {
			return
		}
		doc.Distances = append(doc.Distances, legacyDistance(strings.TrimSpace(p0), strings.TrimSpace(rest)))

	case sectionAngles:
		defPart, _, _ := strings.Cut(line, ":")
		parts := strings.Split(strings.TrimSpace(defPart), "-")
		if len(parts) != 3 {
			return
		}
		doc.Angles = append(doc.Angles, measure.Angle{A: parts[0], Vertex: parts[1], B: parts[2]})
	}
}

// splitPointRow matches "Point <label>: <value>" case-insensitively on the
// given prefix and returns the label and raw value.
func splitPointRow(line, prefix string) (label, value string, ok bool) {
	head, tail, found := strings.Cut(line, ":")
	if !found || !strings.HasPrefix(strings.ToLower(head), prefix) {
		return "", "", false
	}
	label = strings.TrimSpace(head[len("Point"):])
	if label == "" {
		return "", "", false
	}
	return label, strings.TrimSpace(tail), true
}

// legacyPoint parses the legacy point value grammar: "skipped",
// "to_be_defined", or three whitespace-separated coordinates.
func legacyPoint(label, value string) landmark.Landmark {
	mark := landmark.Landmark{Label: label, Status: landmark.StatusUndefined}
	switch strings.ToLower(value) {
	case "skipped":
		mark.Status = landmark.StatusSkipped
	case "to_be_defined":
	default:
		fields := strings.Fields(value)
		if len(fields) >= 3 {
			if c, ok := parseCoords(fields[0], fields[1], fields[2]); ok {
				mark.Status = landmark.StatusDefined
				mark.Coord = c
			}
		}
	}
	return mark
}

// legacyDistance applies the historical point-line heuristic to the part
// after the first dash: strip apostrophes, and when the second remaining
// character repeats the first character of the raw string, read the row as
// apex + two line ends. The heuristic can misread labels that share a leading
// letter; it is preserved as-is so old files keep their meaning.
func legacyDistance(p0, rest string) measure.Distance {
	restRunes := []rune(rest)
	stripped := []rune(strings.ReplaceAll(rest, "'", ""))
	if len(restRunes) >= 2 && len(stripped) >= 2 && restRunes[0] == stripped[1] {
		return measure.Distance{A: p0, B: string(restRunes[0]), C: string(restRunes[1:])}
	}
	return measure.Distance{A: p0, B: rest}
}

func parseCoords(xs, ys, zs string) (landmark.Coord, bool) {
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	z, errZ := strconv.ParseFloat(strings.TrimSpace(zs), 64)
	if errX != nil || errY != nil || errZ != nil {
		return landmark.Coord{}, false
	}
	return landmark.Coord{X: x, Y: y, Z: z}, true
}
