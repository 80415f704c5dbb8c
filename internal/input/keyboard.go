// Package input turns keyboard and mouse events into docking operations.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/app"
)

// HandleInput is the app.InputHandler for tuidock.
func HandleInput(msg tea.Msg, m *app.Model) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKey(msg, m)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, m)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, m)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, m)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, m)
	}
	return m, nil
}

// HandleKey handles a key press. The help and log overlays take the
// keyboard while they are open.
func HandleKey(msg tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
	key := msg.String()
	action := m.KeybindRegistry.GetAction(key)

	if m.ShowHelp {
		switch {
		case key == "esc" || key == "q" || action == "toggle_help":
			m.ShowHelp = false
		case key == "left" || key == "h":
			m.CycleHelpCategory(-1)
		case key == "right" || key == "l":
			m.CycleHelpCategory(1)
		case action == "quit":
			return GetDispatcher().Dispatch(action, msg, m)
		}
		return m, nil
	}

	if m.ShowLogs {
		switch {
		case key == "esc" || key == "q" || action == "toggle_logs":
			m.ShowLogs = false
		case key == "up" || key == "k":
			m.ScrollLogs(-1)
		case key == "down" || key == "j":
			m.ScrollLogs(1)
		case key == "pgup":
			m.ScrollLogs(-10)
		case key == "pgdown":
			m.ScrollLogs(10)
		case key == "home" || key == "g":
			m.ScrollLogs(-len(m.LogMessages))
		case key == "end" || key == "G":
			m.ScrollLogs(len(m.LogMessages))
		case action == "quit":
			return GetDispatcher().Dispatch(action, msg, m)
		}
		return m, nil
	}

	if action == "" {
		return m, nil
	}
	return GetDispatcher().Dispatch(action, msg, m)
}
