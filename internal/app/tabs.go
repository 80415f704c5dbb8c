package app

import (
	"errors"
	"fmt"

	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/Gaurav-Gosain/tuidock/internal/host"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
)

var errNoLayoutStore = errors.New("layout persistence is disabled")

// FocusedTab returns the foreground tab of the focused stack.
func (m *Model) FocusedTab() *dock.Tab {
	if m.FocusedStack == nil {
		return nil
	}
	return m.FocusedStack.Well().Foreground()
}

// FocusStack makes s the target of keyboard actions.
func (m *Model) FocusStack(s *dock.TabStack) {
	if s != nil {
		m.FocusedStack = s
	}
}

// OpenNewTab opens a new document in the focused stack, creating a stack in
// the main area when there is none.
func (m *Model) OpenNewTab() {
	s := m.FocusedStack
	if s == nil {
		if m.MainArea == nil {
			return
		}
		s = m.Docking.NewStack()
		if err := m.MainArea.AddChild(s, -1); err != nil {
			m.LogError("new stack: %v", err)
			return
		}
	}
	tab := m.NewDocument()
	if err := s.OpenTab(tab, -1); err != nil {
		m.LogError("open %s: %v", tab.ID(), err)
		return
	}
	m.FocusedStack = s
	m.Relayout()
}

// CloseTab closes tab for good.
func (m *Model) CloseTab(tab *dock.Tab) {
	if tab == nil || tab.Well() == nil {
		return
	}
	if err := tab.Well().RemoveAndDestroyTab(tab, dock.TabRemovalClosed); err != nil {
		m.LogError("close %s: %v", tab.ID(), err)
	}
	m.Relayout()
}

// CycleTab foregrounds the tab delta places away in the focused stack.
func (m *Model) CycleTab(delta int) {
	if m.FocusedStack == nil {
		return
	}
	w := m.FocusedStack.Well()
	n := w.Len()
	if n == 0 {
		return
	}
	w.BringTabToFront(((w.ForegroundIndex()+delta)%n + n) % n)
}

// SplitFocused moves the focused tab into a new stack placed in dir next
// to its current one.
func (m *Model) SplitFocused(dir dock.Direction) {
	s := m.FocusedStack
	tab := m.FocusedTab()
	if s == nil || tab == nil {
		return
	}
	if s.Well().Len() < 2 {
		m.ShowNotification("Need at least two tabs to split", "warning", config.NotificationDuration)
		return
	}
	parent := s.Parent()
	if parent == nil {
		return
	}
	ns := m.Docking.NewStack()
	if err := parent.PlaceNode(ns, dir, s); err != nil {
		m.LogError("split %s: %v", dir, err)
		return
	}
	if err := ns.OpenTab(tab, -1); err != nil {
		m.LogError("split %s: %v", dir, err)
		return
	}
	m.FocusedStack = ns
	m.Relayout()
}

// CloseWindow closes every tab shown in win; the window goes away with its
// last tab.
func (m *Model) CloseWindow(win *host.Window) {
	for _, a := range m.Docking.Areas() {
		if a.Window() != dock.Window(win) {
			continue
		}
		for _, s := range a.Stacks() {
			for _, t := range s.Well().Tabs() {
				if err := s.Well().RemoveAndDestroyTab(t, dock.TabRemovalClosed); err != nil {
					m.LogError("close %s: %v", t.ID(), err)
				}
			}
		}
	}
	m.Relayout()
}

// GatherLayout collects the persistent layout of every area.
func (m *Model) GatherLayout() *layout.Layout {
	l := layout.New(m.Config.Layout.Name)
	for _, a := range m.Docking.Areas() {
		if n := a.GatherPersistentLayout(); n != nil {
			l.Areas = append(l.Areas, n)
		}
	}
	return l
}

// SaveLayout writes the current layout to the store.
func (m *Model) SaveLayout() error {
	if m.Layouts == nil {
		return errNoLayoutStore
	}
	if m.Docking.ActiveDrag() != nil {
		return dock.ErrDragInProgress
	}
	l := m.GatherLayout()
	if err := m.Layouts.Save(l); err != nil {
		return fmt.Errorf("save layout %q: %w", l.Name, err)
	}
	m.Logger.Info("layout saved", "name", l.Name, "areas", len(l.Areas))
	return nil
}

// RestoreLayout throws away the current hierarchy and rebuilds it from the
// saved layout, or from the defaults when nothing was saved.
func (m *Model) RestoreLayout() error {
	if m.Layouts == nil {
		return errNoLayoutStore
	}
	if m.Docking.ActiveDrag() != nil {
		return dock.ErrDragInProgress
	}
	m.buildDock()
	ok, err := m.restoreLayout(m.Config.Layout.Name)
	if err != nil {
		m.buildDock()
	}
	if !ok || err != nil {
		m.populateDefault()
	}
	m.Relayout()
	return err
}

// restoreLayout rebuilds the saved areas into a freshly built dock. The
// primary area goes into the main window and every other area gets a
// floating window of its own.
func (m *Model) restoreLayout(name string) (bool, error) {
	l, ok, err := m.Layouts.Load(name)
	if err != nil || !ok {
		return false, err
	}

	var primary *layout.Node
	var floating []*layout.Node
	for _, n := range l.Areas {
		if n.Primary && primary == nil {
			primary = n
			continue
		}
		floating = append(floating, n)
	}

	if primary != nil {
		a, err := m.Docking.RestoreArea(primary, m.Tabs, dock.WithWindow(m.MainWindow, false))
		if err != nil {
			return false, err
		}
		m.MainArea = a
	} else {
		m.MainArea = m.Docking.NewArea(m.Tabs, dock.WithWindow(m.MainWindow, false), dock.AsPrimary())
	}
	// The main window stays maximized whatever size was saved.
	m.Desktop.Resize(m.desktopSize())

	for _, n := range floating {
		win := m.Desktop.CreateFloatingWindow(dock.WindowSpec{
			Title:  "tuidock",
			Size:   dock.Size{W: 40, H: 12},
			Parent: m.MainWindow,
		}).(*host.Window)
		a, err := m.Docking.RestoreArea(n, m.Tabs, dock.WithWindow(win, true))
		if err != nil {
			m.LogWarn("skip floating area: %v", err)
			if a != nil {
				a.CleanUp(dock.TabRemovalClosed)
			}
			win.RequestDestroy()
			continue
		}
		win.Reshape(fitOnScreen(win.Bounds(), m.Desktop.Size()))
		if a.CenterTargetOnly() {
			a.CleanUp(dock.TabRemovalClosed)
		}
	}
	m.Logger.Info("layout restored", "name", name, "areas", len(l.Areas))
	return true, nil
}
