package dock

import (
	"slices"

	"github.com/Gaurav-Gosain/tuidock/internal/layout"
)

// TabStack is a leaf node presenting one TabWell. It also remembers the ids
// of tabs closed in it so a restored layout can reopen them in place.
type TabStack struct {
	nodeBase
	well    *TabWell
	history []string
	// pinned keeps an emptied stack in the tree while its tab is dragged.
	pinned bool
}

// NewStack returns a detached, empty stack.
func (d *Docking) NewStack() *TabStack {
	s := &TabStack{nodeBase: newBase(d)}
	s.well = &TabWell{stack: s, foreground: NoTab}
	return s
}

func (s *TabStack) Kind() NodeKind { return KindStack }

// Area returns the root area of the tree s belongs to.
func (s *TabStack) Area() *Area { return areaOf(s) }

// Well returns the stack's tab well.
func (s *TabStack) Well() *TabWell { return s.well }

// History returns the ids of closed tabs, oldest first.
func (s *TabStack) History() []string { return slices.Clone(s.history) }

// OpenTab adds tab to the well at index at and foregrounds it. The first
// time a tab is opened its managers hear OnTabOpening.
func (s *TabStack) OpenTab(tab *Tab, at int) error {
	if tab == nil {
		return ErrNilNode
	}
	if !tab.opened {
		tab.opened = true
		s.docking.notifyTab(tab, s.Area(), func(l Listener) { l.OnTabOpening(tab) })
	}
	s.forget(tab.id)
	return s.well.AddTab(tab, at)
}

func (s *TabStack) forget(id string) {
	s.history = slices.DeleteFunc(s.history, func(h string) bool { return h == id })
}

func (s *TabStack) remember(id string) {
	s.forget(id)
	s.history = append(s.history, id)
}

// onTabRemoved runs after the well lost a tab and lets the area clean up.
func (s *TabStack) onTabRemoved(tab *Tab, method RemovalMethod) {
	if method == TabRemovalClosed {
		s.remember(tab.id)
	}
	area := s.Area()
	if s.well.Len() == 0 {
		s.docking.log.Debug("last tab removed", "stack", s.id, "tab", tab.id, "method", method)
	}
	if area != nil {
		area.CleanUp(method)
	}
}

// CleanUpNodes reports Visible while the well has tabs, History while
// closed tabs are remembered, and NoTabs otherwise.
func (s *TabStack) CleanUpNodes() CleanUpResult {
	switch {
	case s.well.Len() > 0:
		return VisibleTabsUnderNode
	case len(s.history) > 0, s.pinned:
		return HistoryTabsUnderNode
	default:
		return NoTabsUnderNode
	}
}

// GatherPersistentLayout lists open tabs followed by remembered ones.
func (s *TabStack) GatherPersistentLayout() *layout.Node {
	if s.well.Len() == 0 && len(s.history) == 0 {
		return nil
	}
	n := &layout.Node{Kind: layout.KindStack, SizeCoefficient: s.coefficient}
	for _, t := range s.well.tabs {
		n.Tabs = append(n.Tabs, layout.Tab{ID: t.id, State: layout.TabOpened})
	}
	for _, id := range s.history {
		n.Tabs = append(n.Tabs, layout.Tab{ID: id, State: layout.TabClosed})
	}
	if fg := s.well.Foreground(); fg != nil {
		n.Foreground = fg.id
	}
	return n
}

// OnUserAttemptingDock adds the tab to this stack for Center and splits a
// new stack off next to this one otherwise.
func (s *TabStack) OnUserAttemptingDock(dir Direction, op *DragOperation) bool {
	if op == nil || op.tab == nil {
		return false
	}
	if dir == Center {
		return s.well.acceptDrop(op.tab, s.well.Len()) == nil
	}
	parent := s.parent
	if parent == nil {
		return false
	}
	stack := s.docking.NewStack()
	if err := parent.PlaceNode(stack, dir, s); err != nil {
		s.docking.log.Warn("place node failed", "stack", s.id, "dir", dir, "err", err)
		return false
	}
	return stack.OpenTab(op.tab, -1) == nil
}
