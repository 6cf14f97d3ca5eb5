// Package annotate provides the interactive annotation view: a landmark list
// driven by the define/edit/skip workflow with live measurement values.
package annotate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lborak/cleftmeter/internal/landmark"
	"github.com/lborak/cleftmeter/internal/log"
	"github.com/lborak/cleftmeter/internal/presentation"
	"github.com/lborak/cleftmeter/internal/session"
)

// Mode identifies which input workflow the view is in.
type Mode int

const (
	// ModeIdle is the browsing state: navigation and single-key commands.
	ModeIdle Mode = iota

	// ModeDefining collects a coordinate for the next undefined landmark.
	ModeDefining

	// ModeEditing collects a replacement coordinate for the selected landmark.
	ModeEditing

	// ModeDeleting waits for confirmation before dropping a coordinate.
	ModeDeleting
)

// SavedMsg is sent after the session was written to disk.
type SavedMsg struct{ Path string }

// QuitMsg is sent when the user leaves the annotate view.
type QuitMsg struct{}

type errMsg struct{ err error }

// Model holds the annotate view state.
type Model struct {
	session *session.Session
	path    string

	mode     Mode
	selected int
	input    textinput.Model
	status   string

	// lastPlaced suppresses accidental double placement: a define with the
	// same coordinate as the previous one is ignored.
	lastPlaced    landmark.Coord
	hasLastPlaced bool

	width  int
	height int
}

// New creates the annotate view over an existing session.
// path is where the s key writes the points file.
func New(s *session.Session, path string) Model {
	ti := textinput.New()
	ti.Placeholder = "x y z"
	ti.Width = 40
	ti.Prompt = "> "

	return Model{
		session: s,
		path:    path,
		input:   ti,
	}
}

// SetSize sets the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Mode returns the current input mode.
func (m Model) Mode() Mode { return m.mode }

// Selected returns the index of the highlighted landmark.
func (m Model) Selected() int { return m.selected }

// Status returns the last status line shown to the user.
func (m Model) Status() string { return m.status }

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case SavedMsg:
		m.status = "Saved " + msg.Path
		return m, nil

	case errMsg:
		m.status = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeIdle:
			return m.updateIdle(msg)
		case ModeDefining, ModeEditing:
			return m.updateEntry(msg)
		case ModeDeleting:
			return m.updateDeleting(msg)
		}
	}

	return m, nil
}

func (m Model) updateIdle(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, func() tea.Msg { return QuitMsg{} }

	case "j", "down":
		if m.selected < m.session.Registry().Len()-1 {
			m.selected++
		}
		return m, nil

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "d":
		if _, ok := m.session.Registry().NextUndefined(); !ok {
			m.status = "All points marked."
			return m, nil
		}
		m.mode = ModeDefining
		m.status = ""
		m.input.SetValue("")
		m.input.Focus()
		return m, nil

	case "e":
		mark, err := m.session.Registry().At(m.selected)
		if err != nil {
			return m, nil
		}
		m.mode = ModeEditing
		m.status = ""
		if mark.Status == landmark.StatusDefined {
			m.input.SetValue(fmt.Sprintf("%g %g %g", mark.Coord.X, mark.Coord.Y, mark.Coord.Z))
		} else {
			m.input.SetValue("")
		}
		m.input.Focus()
		return m, nil

	case "x":
		mark, err := m.session.Registry().At(m.selected)
		if err != nil || mark.Status != landmark.StatusDefined {
			return m, nil
		}
		m.mode = ModeDeleting
		m.status = "Delete point " + mark.Label + "? (y/n)"
		return m, nil

	case "n":
		if i, err := m.session.DeferNext(); err == nil {
			mark, _ := m.session.Registry().At(i)
			m.status = "Skipped point " + mark.Label
		} else {
			m.status = err.Error()
		}
		return m, nil

	case "s":
		return m, m.saveCmd()
	}

	return m, nil
}

func (m Model) updateEntry(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeIdle
		m.input.Blur()
		return m, nil

	case "enter":
		coord, err := parseCoord(m.input.Value())
		if err != nil {
			m.status = err.Error()
			return m, nil
		}

		if m.mode == ModeDefining {
			if m.hasLastPlaced && coord.SamePoint(m.lastPlaced) {
				m.status = "Ignored duplicate placement"
				return m, nil
			}
			i, err := m.session.DefineNext(coord)
			if err != nil {
				m.status = err.Error()
				return m, nil
			}
			mark, _ := m.session.Registry().At(i)
			m.lastPlaced = coord
			m.hasLastPlaced = true
			m.status = "Defined point " + mark.Label
			log.Debug(log.CatUI, "Defined point", "label", mark.Label)

			// Stay in defining mode while points remain.
			m.input.SetValue("")
			if _, ok := m.session.Registry().NextUndefined(); !ok {
				m.mode = ModeIdle
				m.input.Blur()
			}
			return m, nil
		}

		if err := m.session.Redefine(m.selected, coord); err != nil {
			m.status = err.Error()
			return m, nil
		}
		mark, _ := m.session.Registry().At(m.selected)
		m.status = "Redefined point " + mark.Label
		m.mode = ModeIdle
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateDeleting(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if err := m.session.DeleteAt(m.selected); err != nil {
			m.status = err.Error()
		} else {
			mark, _ := m.session.Registry().At(m.selected)
			m.status = "Deleted point " + mark.Label
		}
		m.mode = ModeIdle
		return m, nil

	case "n", "esc":
		m.mode = ModeIdle
		m.status = ""
		return m, nil
	}
	return m, nil
}

func (m Model) saveCmd() tea.Cmd {
	s, path := m.session, m.path
	return func() tea.Msg {
		if err := s.Save(context.Background(), path); err != nil {
			return errMsg{err: err}
		}
		return SavedMsg{Path: path}
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// View renders the annotate view.
func (m Model) View() string {
	dto := presentation.FromSession(m.session)

	var b strings.Builder
	if dto.ModelName != "" {
		b.WriteString(titleStyle.Render("Model: "+dto.ModelName) + "\n")
	}
	b.WriteString(promptStyle.Render(presentation.PromptLine(m.session.Registry())) + "\n\n")

	for i, p := range dto.Points {
		row := fmt.Sprintf("%-4s %-14s", p.Label, p.Display)
		if p.X != nil {
			row += fmt.Sprintf(" %9.2f %9.2f %9.2f", *p.X, *p.Y, *p.Z)
		}
		if i == m.selected {
			row = selectedStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("Measurements") + "\n")
	for _, d := range dto.Distances {
		b.WriteString(fmt.Sprintf("%-12s %10s %s\n", d.Name, d.Value, d.Unit))
	}
	for _, a := range dto.Angles {
		b.WriteString(fmt.Sprintf("%-12s %10s\n", a.Name, a.Value))
	}

	switch m.mode {
	case ModeDefining, ModeEditing:
		b.WriteString("\n" + m.input.View() + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("d define  e edit  x delete  n skip  s save  q quit") + "\n")

	return b.String()
}

// parseCoord parses "x y z" with spaces or commas between components.
func parseCoord(text string) (landmark.Coord, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	if len(fields) != 3 {
		return landmark.Coord{}, fmt.Errorf("expected three coordinates, got %d", len(fields))
	}

	var vals [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return landmark.Coord{}, fmt.Errorf("bad coordinate %q", f)
		}
		vals[i] = v
	}
	return landmark.Coord{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}
