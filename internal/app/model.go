// Package app provides the tuidock application model: a desktop of virtual
// windows, the docking hierarchy laid out inside them, and the UI state
// around it.
package app

import (
	"context"
	"fmt"
	"time"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/Gaurav-Gosain/tuidock/internal/host"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/google/uuid"
)

// Press is a mouse press on a tab that has not turned into a drag yet.
type Press struct {
	Tab   *dock.Tab
	Start dock.Point
	// Grab is where the tab was grabbed, as a fraction of its size.
	Grab dock.Point
}

// WindowDrag is a floating window being moved by its title bar.
type WindowDrag struct {
	Window *host.Window
	Offset dock.Point
}

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // DEBUG, INFO, WARN, ERROR
	Message string
}

// Model is the application state. One Model drives one docking hierarchy;
// SSH sessions each get their own.
type Model struct {
	Docking    *dock.Docking
	Desktop    *host.Desktop
	MainWindow *host.Window
	MainArea   *dock.Area
	// Tabs owns document tabs; Global owns the nomad tool tabs and hears
	// every notification.
	Tabs     *dock.TabManager
	Global   *dock.TabManager
	Geometry *host.Geometry

	Config          *config.UserConfig
	KeybindRegistry *config.KeybindRegistry
	Layouts         *layout.Store
	Logger          *log.Logger

	Width  int
	Height int

	FocusedStack *dock.TabStack
	Press        *Press
	WindowDrag   *WindowDrag
	// Reordering is the well holding the pointer for an in-place reorder.
	Reordering *dock.TabWell

	ShowHelp        bool
	HelpCategory    int
	ShowLogs        bool
	LogMessages     []LogMessage
	LogScrollOffset int
	Notifications   []Notification

	IsSSHMode bool

	nextDoc    int
	configPath string
	configCh   chan ConfigReloadedMsg
	watchCtx   context.Context
	cancel     context.CancelFunc
}

// Options configures New.
type Options struct {
	Config *config.UserConfig
	// ConfigPath enables live reload when set.
	ConfigPath string
	Layouts    *layout.Store
	Width      int
	Height     int
	Debug      bool
	SSH        bool
}

func createID() string {
	return uuid.New().String()
}

// New builds a model and its docking hierarchy, restoring the configured
// layout when one was saved.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.Validate()

	m := &Model{
		Config:          cfg,
		KeybindRegistry: config.NewKeybindRegistry(cfg),
		Layouts:         opts.Layouts,
		Width:           max(opts.Width, 1),
		Height:          max(opts.Height, 1),
		IsSSHMode:       opts.SSH,
		configPath:      opts.ConfigPath,
		configCh:        make(chan ConfigReloadedMsg, 1),
	}
	m.Logger = newRingLogger(m, opts.Debug)
	m.buildDock()

	restored := false
	if m.Layouts != nil {
		var err error
		restored, err = m.restoreLayout(cfg.Layout.Name)
		if err != nil {
			m.LogError("restore layout %q: %v", cfg.Layout.Name, err)
			m.buildDock()
			restored = false
		}
	}
	if !restored {
		m.populateDefault()
	}
	m.Relayout()
	return m
}

// buildDock replaces the desktop and docking hierarchy with empty ones.
func (m *Model) buildDock() {
	m.Desktop = host.NewDesktop(m.desktopSize(), m.Logger)
	m.MainWindow = m.Desktop.NewMainWindow("tuidock")

	m.Global = dock.NewGlobalTabManager("global")
	m.Global.RegisterTabSpawner(logTab, m.spawnTool)
	m.Global.RegisterTabSpawner(keysTab, m.spawnTool)
	m.Global.AddListener(dock.ListenerFuncs{
		TabRelocated: func(tab *dock.Tab, w dock.Window) {
			m.Logger.Info("tab relocated", "tab", tab.ID(), "window", w.ID())
		},
		AreaClosing: func(a *dock.Area) {
			m.Logger.Debug("area closing", "area", a.ID())
		},
	})

	m.Tabs = dock.NewTabManager("documents")
	m.Tabs.SetDefaultSpawner(m.spawnDocument)
	m.Tabs.SetPolicy(dock.PolicyFunc(func(t *dock.Tab) bool {
		return t.ID() != welcomeTab
	}))
	m.Tabs.AddListener(dock.ListenerFuncs{
		TabClosing: func(tab *dock.Tab) {
			m.Logger.Info("tab closed", "tab", tab.ID())
		},
	})

	m.Docking = dock.New(m.Desktop,
		dock.WithGlobalTabManager(m.Global),
		dock.WithRootWindow(m.MainWindow),
		dock.WithLogger(m.Logger),
		dock.WithTabSizing(m.Config.Docking.TabSizing()),
	)
	m.MainArea = nil
	m.FocusedStack = nil
	m.Press = nil
	m.WindowDrag = nil
	m.Reordering = nil
	m.Geometry = nil
}

const (
	welcomeTab = "welcome"
	logTab     = "log"
	keysTab    = "keys"
)

func (m *Model) spawnTool(id string) *dock.Tab {
	switch id {
	case logTab:
		return dock.NewTab(id, "Log", dock.NomadTab, m.Global)
	case keysTab:
		return dock.NewTab(id, "Keys", dock.NomadTab, m.Global)
	}
	return nil
}

func (m *Model) spawnDocument(id string) *dock.Tab {
	if id == welcomeTab {
		return dock.NewTab(id, "Welcome", dock.MajorTab, m.Tabs)
	}
	var n int
	if _, err := fmt.Sscanf(id, "doc-%d", &n); err != nil {
		return nil
	}
	m.nextDoc = max(m.nextDoc, n)
	return dock.NewTab(id, fmt.Sprintf("Document %d", n), dock.MinorTab, m.Tabs)
}

// NewDocument spawns the next numbered document tab.
func (m *Model) NewDocument() *dock.Tab {
	m.nextDoc++
	return m.spawnDocument(fmt.Sprintf("doc-%d", m.nextDoc))
}

// populateDefault builds the first-run layout: documents on the left, the
// log and key list stacked on the right.
func (m *Model) populateDefault() {
	m.MainArea = m.Docking.NewArea(m.Tabs, dock.WithWindow(m.MainWindow, false), dock.AsPrimary())

	left := m.Docking.NewStack()
	for _, tab := range []*dock.Tab{m.spawnDocument(welcomeTab), m.NewDocument(), m.NewDocument()} {
		if err := left.OpenTab(tab, -1); err != nil {
			m.LogError("open %s: %v", tab.ID(), err)
		}
	}
	left.Well().BringTabToFront(0)

	right := m.Docking.NewStack()
	for _, id := range []string{logTab, keysTab} {
		if err := right.OpenTab(m.spawnTool(id), -1); err != nil {
			m.LogError("open %s: %v", id, err)
		}
	}
	right.Well().BringTabToFront(0)
	left.SetSizeCoefficient(2)

	if err := m.MainArea.AddChild(left, -1); err != nil {
		m.LogError("build layout: %v", err)
	}
	if err := m.MainArea.AddChild(right, -1); err != nil {
		m.LogError("build layout: %v", err)
	}
	m.FocusedStack = left
}

func (m *Model) desktopSize() dock.Size {
	h := m.Height
	if !m.Config.Appearance.HideHelpBar {
		h--
	}
	return dock.Size{W: float64(m.Width), H: float64(max(h, 1))}
}

// Resize follows a terminal resize.
func (m *Model) Resize(width, height int) {
	m.Width = max(width, 1)
	m.Height = max(height, 1)
	m.Desktop.Resize(m.desktopSize())
	for _, w := range m.Desktop.Windows() {
		if !w.IsMaximized() && !w.IsDecorator() {
			w.Reshape(fitOnScreen(w.Bounds(), m.Desktop.Size()))
		}
	}
	m.Relayout()
}

func fitOnScreen(r dock.Rect, sz dock.Size) dock.Rect {
	r.W = min(r.W, sz.W)
	r.H = min(r.H, sz.H)
	r.X = min(max(r.X, 0), sz.W-r.W)
	r.Y = min(max(r.Y, 0), sz.H-r.H)
	return r
}

// Relayout reaps destroyed windows and recomputes the geometry.
func (m *Model) Relayout() {
	if m.Docking.ActiveDrag() == nil {
		m.Desktop.Reap()
	}
	m.Geometry = host.Arrange(m.Desktop, m.Docking.Areas(), float64(m.Config.Docking.TabHeight))
	if m.FocusedStack != nil && !m.FocusedStack.Alive() {
		m.FocusedStack = nil
	}
	if m.FocusedStack == nil {
		m.FocusedStack = m.firstStack()
	}
}

func (m *Model) firstStack() *dock.TabStack {
	if m.MainArea != nil {
		for _, s := range m.MainArea.Stacks() {
			if s.Well().Len() > 0 {
				return s
			}
		}
	}
	for _, a := range m.Docking.Areas() {
		for _, s := range a.Stacks() {
			if s.Well().Len() > 0 {
				return s
			}
		}
	}
	return nil
}

// ApplyConfig swaps in a reloaded configuration.
func (m *Model) ApplyConfig(cfg *config.UserConfig) {
	cfg.Validate()
	m.Config = cfg
	m.KeybindRegistry = config.NewKeybindRegistry(cfg)
	m.Docking.SetSizing(cfg.Docking.TabSizing())
	m.Desktop.Resize(m.desktopSize())
	m.Relayout()
}

// Cleanup stops background work. Call it when the program exits.
func (m *Model) Cleanup() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if op := m.Docking.ActiveDrag(); op != nil {
		op.Cancel()
	}
	if m.Config.Layout.Autosave && m.Layouts != nil {
		if err := m.SaveLayout(); err != nil {
			m.Logger.Error("autosave layout", "err", err)
		}
	}
}
