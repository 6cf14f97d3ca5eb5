package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lborak/cleftmeter/internal/landmark"
	"github.com/lborak/cleftmeter/internal/measure"
)

// Encode writes doc in the canonical grammar: a comment preamble followed by
// the [POINTS], [DISTANCES] and [ANGLES] sections as tab-separated tables.
// Output is always UTF-8.
func Encode(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# CleftMeter Data")
	if doc.ModelName != "" {
		fmt.Fprintf(bw, "# Model File: %s\n", doc.ModelName)
	}
	fmt.Fprintln(bw, "# To import into Excel: open this file, press Ctrl+A (select all), Ctrl+C (copy), and paste into a blank Excel sheet.")
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "[POINTS]")
	fmt.Fprintln(bw, "Label\tStatus\tX\tY\tZ")
	for _, m := range doc.Landmarks {
		if m.Status == landmark.StatusDefined {
			fmt.Fprintf(bw, "%s\tdefined\t%.6f\t%.6f\t%.6f\n", m.Label, m.Coord.X, m.Coord.Y, m.Coord.Z)
		} else {
			fmt.Fprintf(bw, "%s\t%s\t\t\t\n", m.Label, m.Status)
		}
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "[DISTANCES]")
	fmt.Fprintln(bw, "Type\tPoint 1\tPoint 2\tPoint 3\tValue\tUnit")
	for _, d := range doc.Distances {
		val := doc.Results.Distance(d).String()
		if d.Kind() == measure.PointPoint {
			fmt.Fprintf(bw, "Point-Point\t%s\t%s\t\t%s\tmm\n", d.A, d.B, val)
		} else {
			fmt.Fprintf(bw, "Point-Line\t%s\t%s\t%s\t%s\tmm\n", d.A, d.B, d.C, val)
		}
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "[ANGLES]")
	fmt.Fprintln(bw, "Type\tPoint 1\tVertex\tPoint 2\tValue\tUnit")
	for _, a := range doc.Angles {
		// The degree marker is a display affordance; the file stores the number.
		val := strings.ReplaceAll(doc.Results.Angle(a).String(), "°", "")
		fmt.Fprintf(bw, "Angle\t%s\t%s\t%s\t%s\tdegrees\n", a.A, a.Vertex, a.B, val)
	}

	return bw.Flush()
}
