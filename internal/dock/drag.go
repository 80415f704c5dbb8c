package dock

// DropTarget is what the pointer is over during a drag. Exactly one of two
// shapes is used: a tab well (Well set, Offset is the pointer's horizontal
// offset inside it) or a zone of a node (Node and Direction set). Rect is
// the preview rectangle for zones and the well strip for wells.
type DropTarget struct {
	Node      Node
	Direction Direction
	Well      *TabWell
	Offset    float64
	Rect      Rect
}

// IsZero reports whether t targets nothing.
func (t DropTarget) IsZero() bool {
	return isNil(t.Node) && t.Well == nil
}

func (t DropTarget) same(o DropTarget) bool {
	return t.Node == o.Node && t.Direction == o.Direction && t.Well == o.Well
}

// alive reports whether the target still belongs to a live tree.
func (t DropTarget) alive() bool {
	if t.Well != nil {
		return t.Well.alive()
	}
	if isNil(t.Node) || !t.Node.Alive() {
		return false
	}
	a := areaOf(t.Node)
	return a != nil && a.Alive() && !a.closed
}

// area returns the area the target belongs to.
func (t DropTarget) area() *Area {
	if t.Well != nil {
		return t.Well.stack.Area()
	}
	if isNil(t.Node) {
		return nil
	}
	return areaOf(t.Node)
}

// DragOperation moves one tab from its well to a new home. It is created by
// TabWell.StartDraggingTab and ends with Drop or Cancel.
type DragOperation struct {
	docking *Docking

	tab     *Tab
	grab    Point
	tabSize Size
	pointer Point

	origin           *Area
	originWindow     Window
	originWell       *TabWell
	originIndex      int
	originForeground bool

	decorator     Window
	decoratorSize Size

	hovered     DropTarget
	hoveredArea *Area
	state       DragState

	continuations []func(home Window)
}

type dragStart struct {
	tab         *Tab
	grab        Point
	pointer     Point
	tabSize     Size
	origin      *Area
	originWell  *TabWell
	originIndex int
	foreground  bool
}

func (d *Docking) beginDrag(s dragStart) *DragOperation {
	op := &DragOperation{
		docking:          d,
		tab:              s.tab,
		grab:             s.grab,
		tabSize:          s.tabSize,
		pointer:          s.pointer,
		origin:           s.origin,
		originWell:       s.originWell,
		originIndex:      s.originIndex,
		originForeground: s.foreground,
		state:            DragDragging,
	}
	if s.origin != nil {
		op.originWindow = d.host.FindWindowContainingArea(s.origin)
	}
	op.decoratorSize = d.previewSize(s.tab.contentSize)
	op.decorator = d.host.CreateFloatingWindow(WindowSpec{
		Title:     s.tab.label,
		Position:  op.decoratorPosition(),
		Size:      op.decoratorSize,
		Decorator: true,
	})
	d.activeDrag = op
	d.log.Debug("drag started", "tab", s.tab.id, "role", s.tab.role, "index", s.originIndex)
	return op
}

func (op *DragOperation) Tab() *Tab           { return op.tab }
func (op *DragOperation) State() DragState    { return op.state }
func (op *DragOperation) Pointer() Point      { return op.pointer }
func (op *DragOperation) Grab() Point         { return op.grab }
func (op *DragOperation) Origin() *Area       { return op.origin }
func (op *DragOperation) Decorator() Window   { return op.decorator }
func (op *DragOperation) DecoratorSize() Size { return op.decoratorSize }
func (op *DragOperation) Hovered() DropTarget { return op.hovered }
func (op *DragOperation) HoveredArea() *Area  { return op.hoveredArea }

func (op *DragOperation) terminal() bool {
	return op.state == DragDropped || op.state == DragCancelled
}

// onFinished registers fn to run once the drag reaches a terminal state.
func (op *DragOperation) onFinished(fn func(home Window)) {
	op.continuations = append(op.continuations, fn)
}

// decoratorPosition keeps the grabbed point of the tab under the pointer.
func (op *DragOperation) decoratorPosition() Point {
	return Point{
		X: op.pointer.X - op.grab.X*op.tabSize.W,
		Y: op.pointer.Y - op.grab.Y*op.tabSize.H,
	}
}

// MoveTo records a new pointer position and moves the floating decorator.
func (op *DragOperation) MoveTo(p Point) {
	if op.terminal() {
		return
	}
	op.pointer = p
	if op.state == DragDragging && op.decorator != nil {
		op.decorator.MoveTo(op.decoratorPosition())
	}
}

// Hover makes t the current target. A zero target is the same as
// ClearHover. Changing target leaves the previous well, previews the new
// drop and tells the origin area which area is under the tab.
func (op *DragOperation) Hover(t DropTarget) {
	if op.terminal() {
		return
	}
	if t.IsZero() || !t.alive() {
		op.ClearHover()
		return
	}
	if op.state == DragHovering && op.hovered.same(t) {
		op.hovered.Offset = t.Offset
		op.hovered.Rect = t.Rect
		if t.Well != nil {
			t.Well.DragOver(t.Offset)
		}
		return
	}

	op.leaveWell()
	op.hovered = t
	op.state = DragHovering
	if t.Well != nil {
		t.Well.DragEnter(op.tab, op.grab)
		t.Well.DragOver(t.Offset)
		if op.decorator != nil {
			op.decorator.Hide()
		}
	} else if op.decorator != nil {
		op.decorator.Reshape(t.Rect)
		op.decorator.SetPreview(true)
		op.decorator.Show()
	}
	op.setHoveredArea(t.area())
}

// ClearHover returns to plain dragging.
func (op *DragOperation) ClearHover() {
	if op.state != DragHovering {
		return
	}
	op.leaveWell()
	op.hovered = DropTarget{}
	op.state = DragDragging
	if op.decorator != nil {
		op.decorator.SetPreview(false)
		pos := op.decoratorPosition()
		op.decorator.Reshape(Rect{X: pos.X, Y: pos.Y, W: op.decoratorSize.W, H: op.decoratorSize.H})
		op.decorator.Show()
	}
	op.setHoveredArea(nil)
}

func (op *DragOperation) leaveWell() {
	if w := op.hovered.Well; w != nil {
		w.DragLeave()
	}
}

func (op *DragOperation) setHoveredArea(a *Area) {
	if a == op.hoveredArea {
		return
	}
	if prev := op.hoveredArea; prev != nil {
		prev.HideCross()
	}
	op.hoveredArea = a
	if a != nil {
		a.ShowCross()
	}
	if op.origin != nil {
		op.origin.setDraggedOver(a)
	}
}

// CanDockInNode applies the role rules to a target:
//   - nomad tabs go into any well, and split only areas whose manager is
//     not global;
//   - major tabs go anywhere their own manager rules, well or zone, and
//     into any empty area;
//   - every other tab stays with its manager of origin.
func (op *DragOperation) CanDockInNode(t DropTarget) bool {
	target := t.area()
	if target == nil {
		return false
	}
	viaWell := t.Well != nil
	origin := op.tab.manager
	if op.origin != nil && op.origin.manager != nil {
		origin = op.origin.manager
	}
	switch op.tab.role {
	case NomadTab:
		if viaWell {
			return true
		}
		return target.manager == nil || !target.manager.global
	case MajorTab:
		return target.manager == origin || target.Len() == 0
	default:
		return target.manager == origin
	}
}

// Drop ends the drag on the hovered target and returns the window the tab
// now lives in. With no usable target the drag is cancelled instead. A
// target refused by CanDockInNode sends the tab back where it came from.
func (op *DragOperation) Drop() Window {
	if op.terminal() {
		return nil
	}
	t := op.hovered
	at := -1
	if t.Well != nil {
		at = t.Well.ComputeChildDropIndex(t.Offset)
	}
	op.leaveWell()
	if t.IsZero() || !t.alive() {
		return op.Cancel()
	}
	if !op.CanDockInNode(t) {
		op.docking.log.Debug("drop refused", "tab", op.tab.id, "role", op.tab.role)
		return op.refuse()
	}

	var ok bool
	if t.Well != nil {
		ok = t.Well.acceptDrop(op.tab, at) == nil
	} else {
		ok = t.Node.OnUserAttemptingDock(t.Direction, op)
	}
	if !ok {
		return op.refuse()
	}
	op.state = DragDropped
	home := op.docking.host.FindWindowContainingArea(op.tab.area())
	op.docking.log.Debug("tab dropped", "tab", op.tab.id, "direction", t.Direction)
	op.finish(home)
	return home
}

// Cancel ends the drag without a target. The tab is never discarded: it
// gets a new floating window of its own.
func (op *DragOperation) Cancel() Window {
	if op.terminal() {
		return nil
	}
	op.leaveWell()
	op.state = DragCancelled
	home := op.droppedOntoNothing()
	op.docking.log.Debug("drag cancelled", "tab", op.tab.id)
	op.finish(home)
	return home
}

// refuse puts the tab back at its original index, or into a new window when
// the original well has been cleaned up meanwhile.
func (op *DragOperation) refuse() Window {
	op.state = DragCancelled
	w := op.originWell
	if w == nil || !w.alive() {
		home := op.droppedOntoNothing()
		op.finish(home)
		return home
	}
	front := w.Foreground()
	if front == nil && !op.originForeground {
		front = w.TabAt(w.pendingForeground)
	}
	if err := w.stack.OpenTab(op.tab, op.originIndex); err != nil {
		op.docking.log.Warn("reopen tab failed", "tab", op.tab.id, "stack", w.stack.id, "err", err)
	}
	if !op.originForeground && front != nil {
		w.BringTabToFrontTab(front)
	}
	home := op.docking.host.FindWindowContainingArea(w.stack.Area())
	op.finish(home)
	return home
}

// droppedOntoNothing builds a window, area and stack around the tab at the
// decorator's position. Major and nomad tabs are parented under the root
// window when there is one; other tabs under their window of origin.
func (op *DragOperation) droppedOntoNothing() Window {
	d := op.docking
	var parent Window
	switch op.tab.role {
	case MajorTab, NomadTab:
		parent = d.root
	default:
		parent = op.originWindow
	}
	win := d.host.CreateFloatingWindow(WindowSpec{
		Title:    op.tab.label,
		Position: op.decoratorPosition(),
		Size:     op.decoratorSize,
		Parent:   parent,
	})
	manager := op.tab.manager
	if manager == nil && op.origin != nil {
		manager = op.origin.manager
	}
	area := d.NewArea(manager, WithWindow(win, true))
	stack := d.NewStack()
	area.insert(stack, -1)
	if err := stack.OpenTab(op.tab, -1); err != nil {
		d.log.Warn("open tab in new window failed", "tab", op.tab.id, "window", win.ID(), "err", err)
	}
	area.centerTargetOnly = false
	win.Show()
	return win
}

// releaseOrigin unpins the stack the tab was dragged from and lets its area
// clean up. A stack still empty here lost its tab for good.
func (op *DragOperation) releaseOrigin() {
	w := op.originWell
	if w == nil || !w.stack.pinned {
		return
	}
	w.stack.pinned = false
	if w.alive() {
		w.stack.Area().CleanUp(TabRemovalDraggedOut)
	}
}

func (op *DragOperation) finish(home Window) {
	d := op.docking
	op.hovered = DropTarget{}
	op.setHoveredArea(nil)
	if op.origin != nil {
		op.origin.setDraggedOver(nil)
	}
	if op.decorator != nil {
		op.decorator.RequestDestroy()
		op.decorator = nil
	}
	if d.activeDrag == op {
		d.activeDrag = nil
	}
	op.releaseOrigin()
	if w := op.originWell; w != nil && w.alive() {
		w.settleForeground()
	}
	d.notifyTab(op.tab, op.tab.area(), func(l Listener) { l.OnTabRelocated(op.tab, home) })

	conts := op.continuations
	op.continuations = nil
	for _, fn := range conts {
		fn(home)
	}
}
