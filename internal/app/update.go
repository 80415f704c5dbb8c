package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
)

// TickerMsg represents a periodic tick event for updating the UI.
// This is exported so it can be used by the input package.
type TickerMsg time.Time

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, m *Model) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
// This will be set by the main package to break the circular dependency.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the tick timer and the config watcher.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(), m.WatchConfig())
}

// TickCmd creates a command that generates tick messages at NormalFPS.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// FastTickCmd ticks at InteractionFPS while a drag is in flight.
func FastTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.InteractionFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Update handles all incoming messages and updates the application state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		m.CleanupNotifications()
		if m.Docking.ActiveDrag() != nil || m.WindowDrag != nil {
			return m, FastTickCmd()
		}
		return m, TickCmd()

	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil

	case ConfigReloadedMsg:
		if msg.Err != nil {
			m.ShowNotification("Config reload failed: "+msg.Err.Error(), "error", config.NotificationDuration)
		} else if msg.Config != nil {
			m.ApplyConfig(msg.Config)
			m.ShowNotification("Config reloaded", "success", config.NotificationDuration)
		}
		if m.watchCtx == nil {
			return m, nil
		}
		return m, ListenForConfigChanges(m.watchCtx, m.configCh)

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg, tea.MouseWheelMsg:
		if inputHandler != nil {
			return inputHandler(msg, m)
		}
	}
	return m, nil
}
