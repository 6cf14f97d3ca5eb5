package annotate

import (
	tea "github.com/charmbracelet/bubbletea"
)

// App wraps Model as a top-level tea.Model so it can run as its own program.
// It translates QuitMsg into tea.Quit.
type App struct {
	model Model
}

// NewApp creates the top-level program model.
func NewApp(model Model) App {
	return App{model: model}
}

// Init initializes the program.
func (a App) Init() tea.Cmd {
	return a.model.Init()
}

// Update handles messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(QuitMsg); ok {
		return a, tea.Quit
	}
	var cmd tea.Cmd
	a.model, cmd = a.model.Update(msg)
	return a, cmd
}

// View renders the program.
func (a App) View() string {
	return a.model.View()
}
