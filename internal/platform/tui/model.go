// Package tui renders rain through a Bubble Tea program. The engine keeps
// control of pacing: frames arrive as messages and the model only mirrors
// them, while key and window-size messages are forwarded to an inbox.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rain/internal/core"
	"github.com/vovakirdan/tui-rain/internal/platform/inbox"
)

// frameMsg carries one frame from the engine into the program.
type frameMsg core.Frame

// quitMsg asks the program to exit after the engine stops.
type quitMsg struct{}

// Model is the Bubble Tea model for the rain view.
type Model struct {
	keys     KeyMap
	inbox    *inbox.Inbox
	screen   mirror
	styles   *styleCache
	quitting bool
}

// NewModel creates a model with an initial mirror of the given size.
func NewModel(in *inbox.Inbox, width, height int, r *lipgloss.Renderer) Model {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Model{
		keys:   DefaultKeyMap(),
		inbox:  in,
		screen: newMirror(width, height),
		styles: newStyleCache(r),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keys.IsQuit(msg) {
			m.inbox.RequestExit()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.inbox.Resize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		f := core.Frame(msg)
		if f.Reset {
			m.screen = newMirror(f.Width, f.Height)
		}
		m.screen.apply(f)
		return m, nil

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the mirrored frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.screen.render(m.styles)
}
