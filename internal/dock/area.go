package dock

import (
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
)

// Area is the root of one docking hierarchy. It may manage the lifetime of
// the window it lives in, and it carries the drop-target overlay state.
type Area struct {
	Splitter

	manager       *TabManager
	window        Window
	managesWindow bool
	primary       bool

	crossVisible     bool
	centerTargetOnly bool
	draggedOver      *Area

	// set while a dragged-out tab may still come back before the window
	// is destroyed
	awaitingRelocation bool
	closed             bool
}

// AreaOption configures a new Area.
type AreaOption func(*Area)

// WithWindow places the area in w. When manage is set the area destroys the
// window once it runs out of tabs.
func WithWindow(w Window, manage bool) AreaOption {
	return func(a *Area) {
		a.window = w
		a.managesWindow = manage && w != nil
	}
}

// AsPrimary marks the area as primary; primary areas are always persisted.
func AsPrimary() AreaOption {
	return func(a *Area) { a.primary = true }
}

// WithOrientation sets the initial axis of the area.
func WithOrientation(o Orientation) AreaOption {
	return func(a *Area) { a.orientation = o }
}

// NewArea creates a root area owned by manager and registers it with d.
func (d *Docking) NewArea(manager *TabManager, opts ...AreaOption) *Area {
	a := &Area{
		Splitter: Splitter{nodeBase: newBase(d), orientation: Horizontal},
		manager:  manager,
	}
	a.Splitter.area = a
	for _, opt := range opts {
		opt(a)
	}
	if a.managesWindow {
		for _, other := range d.areas {
			if other.managesWindow && other.window == a.window {
				d.log.Warn("window already managed by another area", "window", a.window.ID(), "area", other.id)
				a.managesWindow = false
				break
			}
		}
	}
	a.centerTargetOnly = true
	d.areas = append(d.areas, a)
	d.notifyArea(a, func(l Listener) { l.OnDockAreaCreated(a) })
	d.log.Debug("area created", "area", a.id, "primary", a.primary, "manages_window", a.managesWindow)
	return a
}

func (a *Area) Kind() NodeKind { return KindArea }

// Area returns a itself.
func (a *Area) Area() *Area { return a }

func (a *Area) Manager() *TabManager { return a.manager }
func (a *Area) Window() Window       { return a.window }
func (a *Area) ManagesWindow() bool  { return a.managesWindow }
func (a *Area) IsPrimary() bool      { return a.primary }

// CrossVisible reports whether the drop-target cross is shown.
func (a *Area) CrossVisible() bool { return a.crossVisible }

// CenterTargetOnly reports whether the area only offers its centre target
// because it has no visible tabs.
func (a *Area) CenterTargetOnly() bool { return a.centerTargetOnly && !a.hasVisibleTabs() }

// ShowCross shows the drop-target overlay.
func (a *Area) ShowCross() { a.crossVisible = true }

// HideCross hides the drop-target overlay.
func (a *Area) HideCross() { a.crossVisible = false }

// DraggedOver returns the area the tab dragged out of this one is
// currently over, or nil.
func (a *Area) DraggedOver() *Area { return a.draggedOver }

// CleanUp runs CleanUpNodes and reacts to an area left without visible
// tabs. A managed window is destroyed at once when the tab was closed. When
// the tab was dragged out the window is only hidden, and destruction waits
// for the drag to report the tab's new home.
func (a *Area) CleanUp(method RemovalMethod) CleanUpResult {
	result := a.CleanUpNodes()
	a.centerTargetOnly = result != VisibleTabsUnderNode
	if result == VisibleTabsUnderNode || !a.managesWindow || a.window == nil || a.closed {
		return result
	}
	switch method {
	case TabRemovalClosed:
		a.close()
	case TabRemovalDraggedOut:
		a.window.Hide()
		op := a.docking.activeDrag
		if op == nil {
			a.close()
			break
		}
		if !a.awaitingRelocation {
			a.awaitingRelocation = true
			op.onFinished(a.onTabFoundNewHome)
		}
	}
	return result
}

func (a *Area) close() {
	if a.closed {
		return
	}
	a.closed = true
	d := a.docking
	d.notifyArea(a, func(l Listener) { l.OnDockAreaClosing(a) })
	if a.window != nil {
		a.window.RequestDestroy()
	}
	d.unregister(a)
	a.dead = true
	d.log.Debug("area closed", "area", a.id)
}

func (a *Area) onTabFoundNewHome(home Window) {
	a.HideCross()
	if !a.awaitingRelocation || a.closed {
		return
	}
	a.awaitingRelocation = false
	if a.hasVisibleTabs() || home == a.window {
		a.window.Show()
		return
	}
	a.close()
}

func (a *Area) hasVisibleTabs() bool {
	for _, s := range a.Stacks() {
		if s.well.Len() > 0 {
			return true
		}
	}
	return false
}

func (a *Area) setDraggedOver(over *Area) { a.draggedOver = over }

// GatherPersistentLayout returns nil for a non-primary area with nothing to
// save. Primary areas always produce a node, even when empty.
func (a *Area) GatherPersistentLayout() *layout.Node {
	children := a.gatherChildren()
	if len(children) == 0 && !a.primary {
		return nil
	}
	n := &layout.Node{
		Kind:            layout.KindArea,
		Orientation:     a.orientation.persisted(),
		SizeCoefficient: a.coefficient,
		Primary:         a.primary,
		Children:        children,
	}
	if a.window != nil {
		b := a.window.Bounds()
		n.WindowPosition = &layout.Point{X: b.X, Y: b.Y}
		n.WindowSize = &layout.Size{W: b.W, H: b.H}
		n.IsMaximized = a.window.IsMaximized()
	}
	return n
}

// OnUserAttemptingDock docks the dragged tab into this area: Center while
// the area is empty, otherwise at the requested outer edge.
func (a *Area) OnUserAttemptingDock(dir Direction, op *DragOperation) bool {
	if a.closed {
		return false
	}
	if !a.Splitter.OnUserAttemptingDock(dir, op) {
		return false
	}
	a.HideCross()
	a.centerTargetOnly = false
	return true
}

// DockTabFromOutside docks the tab of op along the area's outer edge.
func (a *Area) DockTabFromOutside(dir Direction, op *DragOperation) bool {
	if dir == Center {
		return false
	}
	return a.OnUserAttemptingDock(dir, op)
}

// WindowChromeStacks returns the stacks that share their tab row with the
// window buttons: the upper-left-most and the upper-right-most. On ties the
// first stack in traversal order wins. Both are nil for an empty area.
func (a *Area) WindowChromeStacks() (left, right *TabStack) {
	return chromeStack(&a.Splitter, false), chromeStack(&a.Splitter, true)
}

func chromeStack(s *Splitter, right bool) *TabStack {
	for len(s.children) > 0 {
		i := 0
		if right && s.orientation == Horizontal {
			i = len(s.children) - 1
		}
		switch c := s.children[i].(type) {
		case *TabStack:
			return c
		case *Splitter:
			s = c
		default:
			return nil
		}
	}
	return nil
}
