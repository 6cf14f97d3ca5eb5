package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Faint(true)
)

// Formatter handles output formatting.
type Formatter struct {
	writer io.Writer

	// CoordinateDecimals controls coordinate precision in text tables.
	CoordinateDecimals int

	// ShowValues controls whether measurement tables include value columns.
	ShowValues bool
}

// NewFormatter creates a formatter with the default display options.
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer:             writer,
		CoordinateDecimals: 2,
		ShowValues:         true,
	}
}

// FormatJSON writes the session snapshot as indented JSON.
func (f *Formatter) FormatJSON(dto SessionDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dto)
}

// FormatText writes the session snapshot as styled text tables.
func (f *Formatter) FormatText(dto SessionDTO) error {
	var b strings.Builder

	if dto.ModelName != "" {
		b.WriteString(titleStyle.Render("Model: "+dto.ModelName) + "\n\n")
	}

	b.WriteString(titleStyle.Render("Points") + "\n")
	b.WriteString(f.pointsTable(dto.Points))

	b.WriteString("\n" + titleStyle.Render("Distances") + "\n")
	b.WriteString(f.distancesTable(dto.Distances))

	b.WriteString("\n" + titleStyle.Render("Angles") + "\n")
	b.WriteString(f.anglesTable(dto.Angles))

	_, err := io.WriteString(f.writer, b.String())
	return err
}

func (f *Formatter) pointsTable(points []PointDTO) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %-14s %10s %10s %10s", "Label", "Status", "X", "Y", "Z")) + "\n")
	for _, p := range points {
		x, y, z := "", "", ""
		if p.X != nil {
			x = fmt.Sprintf("%.*f", f.CoordinateDecimals, *p.X)
			y = fmt.Sprintf("%.*f", f.CoordinateDecimals, *p.Y)
			z = fmt.Sprintf("%.*f", f.CoordinateDecimals, *p.Z)
		}
		b.WriteString(fmt.Sprintf("%-6s %-14s %10s %10s %10s\n", p.Label, p.Display, x, y, z))
	}
	return b.String()
}

func (f *Formatter) distancesTable(distances []DistanceDTO) string {
	var b strings.Builder
	if f.ShowValues {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %-12s %10s %-4s", "Name", "Kind", "Value", "Unit")) + "\n")
	} else {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %-12s", "Name", "Kind")) + "\n")
	}
	for _, d := range distances {
		if f.ShowValues {
			b.WriteString(fmt.Sprintf("%-12s %-12s %10s %-4s\n", d.Name, d.Kind, d.Value, d.Unit))
		} else {
			b.WriteString(fmt.Sprintf("%-12s %-12s\n", d.Name, d.Kind))
		}
	}
	return b.String()
}

func (f *Formatter) anglesTable(angles []AngleDTO) string {
	var b strings.Builder
	if f.ShowValues {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %10s %-8s", "Name", "Value", "Unit")) + "\n")
	} else {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s", "Name")) + "\n")
	}
	for _, a := range angles {
		if f.ShowValues {
			b.WriteString(fmt.Sprintf("%-12s %10s %-8s\n", a.Name, a.Value, a.Unit))
		} else {
			b.WriteString(fmt.Sprintf("%-12s\n", a.Name))
		}
	}
	return b.String()
}
