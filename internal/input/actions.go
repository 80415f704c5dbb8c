package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/app"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(msg tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

func (d *ActionDispatcher) registerHandlers() {
	// Tabs
	d.Register("new_tab", handleNewTab)
	d.Register("close_tab", handleCloseTab)
	d.Register("next_tab", handleNextTab)
	d.Register("prev_tab", handlePrevTab)

	// Layout
	d.Register("split_right", makeSplitHandler(dock.RightOf))
	d.Register("split_down", makeSplitHandler(dock.Below))
	d.Register("save_layout", handleSaveLayout)
	d.Register("restore_layout", handleRestoreLayout)

	// System
	d.Register("cancel_drag", handleCancelDrag)
	d.Register("toggle_logs", handleToggleLogs)
	d.Register("toggle_help", handleToggleHelp)
	d.Register("quit", handleQuit)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, m)
	}
	return m, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// ============================================================================
// Tab Action Handlers
// ============================================================================

func handleNewTab(_ tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
	m.OpenNewTab()
	return m, nil
}

func handleCloseTab(_ tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
	m.CloseTab(m.FocusedTab())
	return m, nil
}

func handleNextTab(_ tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
	m.CycleTab(1)
	return m, nil
}

func handlePrevTab(_ tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
	m.CycleTab(-1)
	return m, nil
}

// ============================================================================
// Layout Action Handlers
// ============================================================================

func makeSplitHandler(dir dock.Direction) ActionHandler {
	return func(_ tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
		m.SplitFocused(dir)
		return m, nil
	}
}

func handleSaveLayout(_ tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
	if err := m.SaveLayout(); err != nil {
		m.ShowNotification("Save failed: "+err.Error(), "error", config.NotificationDuration)
		return m, nil
	}
	m.ShowNotification("Layout saved", "success", config.NotificationDuration)
	return m, nil
}

func handleRestoreLayout(_ tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
	if err := m.RestoreLayout(); err != nil {
		m.ShowNotification("Restore failed: "+err.Error(), "error", config.NotificationDuration)
		return m, nil
	}
	m.ShowNotification("Layout restored", "success", config.NotificationDuration)
	return m, nil
}

// ============================================================================
// System Action Handlers
// ============================================================================

// handleCancelDrag abandons whatever the pointer is doing. A cancelled tab
// drag leaves the tab in a floating window of its own.
func handleCancelDrag(_ tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
	if op := m.Docking.ActiveDrag(); op != nil {
		tab := op.Tab()
		op.Cancel()
		m.FocusStack(tab.Stack())
		m.LogInfo("drag of %s cancelled", tab.ID())
	}
	if m.Reordering != nil {
		m.Reordering.EndReorder()
		m.Reordering = nil
	}
	m.Press = nil
	m.WindowDrag = nil
	m.Relayout()
	return m, nil
}

func handleToggleLogs(_ tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
	wasShowing := m.ShowLogs
	m.ShowLogs = !m.ShowLogs
	if m.ShowLogs && !wasShowing {
		m.LogInfo("Log viewer opened")
		m.ScrollLogs(len(m.LogMessages))
	}
	return m, nil
}

func handleToggleHelp(_ tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
	m.ShowHelp = !m.ShowHelp
	return m, nil
}

func handleQuit(_ tea.KeyPressMsg, m *app.Model) (*app.Model, tea.Cmd) {
	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}
	return m, tea.Quit
}
