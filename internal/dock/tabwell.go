package dock

import (
	"math"
	"slices"
)

// NoTab is the foreground index of a well with nothing in front.
const NoTab = -1

// TabWell is the ordered row of tabs owned by one stack. Besides its tabs it
// tracks a foreign tab being dragged through it, and a tab of its own being
// reordered while the pointer is captured.
type TabWell struct {
	stack      *TabStack
	tabs       []*Tab
	foreground int

	// available width, set by the host when laying out
	width float64

	dragged    *Tab
	dragOffset float64
	grab       Point

	reordering *Tab

	// index to foreground once an outgoing drag finishes
	pendingForeground int
}

// Stack returns the owning stack.
func (w *TabWell) Stack() *TabStack { return w.stack }

// Tabs returns a copy of the tab list.
func (w *TabWell) Tabs() []*Tab { return slices.Clone(w.tabs) }

// Len returns the number of tabs.
func (w *TabWell) Len() int { return len(w.tabs) }

// TabAt returns the tab at index i, or nil.
func (w *TabWell) TabAt(i int) *Tab {
	if i < 0 || i >= len(w.tabs) {
		return nil
	}
	return w.tabs[i]
}

// IndexOf returns the position of tab, or -1.
func (w *TabWell) IndexOf(tab *Tab) int {
	return slices.Index(w.tabs, tab)
}

// ForegroundIndex returns the foreground index or NoTab.
func (w *TabWell) ForegroundIndex() int { return w.foreground }

// Foreground returns the foreground tab, or nil.
func (w *TabWell) Foreground() *Tab { return w.TabAt(w.foreground) }

// Width returns the available width last set by the host.
func (w *TabWell) Width() float64 { return w.width }

// SetWidth records the width available to the row of tabs.
func (w *TabWell) SetWidth(width float64) { w.width = max(width, 0) }

// AddTab inserts tab at index at and brings it to front. A tab still held
// by another well is taken out of it first, without cleanup.
func (w *TabWell) AddTab(tab *Tab, at int) error {
	if tab == nil {
		return ErrNilNode
	}
	if prev := tab.well; prev != nil {
		i := prev.IndexOf(tab)
		prev.take(i)
		if prev != w {
			prev.pendingForeground = max(i-1, 0)
			prev.settleForeground()
		}
	}
	if at < 0 || at > len(w.tabs) {
		at = len(w.tabs)
	}
	w.tabs = slices.Insert(w.tabs, at, tab)
	tab.well = w
	if w.foreground >= at {
		w.foreground++
	}
	if w.dragged == tab {
		w.DragLeave()
	}
	w.BringTabToFront(at)
	return nil
}

// take removes the tab at i and fixes up the foreground index. The
// foreground becomes NoTab when the removed tab was in front.
func (w *TabWell) take(i int) *Tab {
	if i < 0 || i >= len(w.tabs) {
		return nil
	}
	tab := w.tabs[i]
	w.tabs = slices.Delete(w.tabs, i, i+1)
	tab.well = nil
	switch {
	case i == w.foreground:
		w.foreground = NoTab
	case i < w.foreground:
		w.foreground--
	}
	if w.reordering == tab {
		w.reordering = nil
	}
	return tab
}

// BringTabToFront foregrounds the tab at index. Nothing happens when it is
// already in front or the index is invalid.
func (w *TabWell) BringTabToFront(index int) {
	if index < 0 || index >= len(w.tabs) || index == w.foreground {
		return
	}
	old := w.Foreground()
	w.foreground = index
	tab := w.tabs[index]
	w.stack.docking.notifyTab(tab, w.stack.Area(), func(l Listener) { l.OnTabForegrounded(tab, old) })
}

// BringTabToFrontTab foregrounds tab if it belongs to this well.
func (w *TabWell) BringTabToFrontTab(tab *Tab) {
	w.BringTabToFront(w.IndexOf(tab))
}

func (w *TabWell) sizing() TabSizing {
	return w.stack.docking.sizing
}

func (w *TabWell) maxSize() Size {
	sz := w.sizing()
	limit := Size{}
	grow := func(t *Tab) {
		if t == nil {
			return
		}
		m := sz.forRole(t.role)
		limit.W = max(limit.W, m.W)
		limit.H = max(limit.H, m.H)
	}
	for _, t := range w.tabs {
		grow(t)
	}
	grow(w.dragged)
	if limit.W == 0 {
		limit = sz.Minor
	}
	return limit
}

// TabWidth returns the uniform width of every tab in the well:
// (available - overlap) / N + overlap, where N counts a reserved drag
// placeholder, capped by the largest role present.
func (w *TabWell) TabWidth() float64 {
	n := len(w.tabs)
	if w.dragged != nil {
		n++
	}
	if n == 0 {
		return 0
	}
	overlap := w.sizing().Overlap
	width := (w.width-overlap)/float64(n) + overlap
	return max(0, min(width, w.maxSize().W))
}

// Overlap returns how far neighbouring tabs overlap.
func (w *TabWell) Overlap() float64 {
	return w.sizing().Overlap
}

// TabHeight returns the height of the row of tabs.
func (w *TabWell) TabHeight() float64 {
	return w.maxSize().H
}

// TabSize returns the visual size of one tab.
func (w *TabWell) TabSize() Size {
	return Size{W: w.TabWidth(), H: w.TabHeight()}
}

// ComputeChildDropIndex maps a horizontal offset within the well to an
// insertion index: offset / (tabWidth - overlap), clamped to [0, Len].
func (w *TabWell) ComputeChildDropIndex(offset float64) int {
	step := w.TabWidth() - w.sizing().Overlap
	if step <= 0 {
		return len(w.tabs)
	}
	i := int(math.Floor(offset / step))
	return max(0, min(i, len(w.tabs)))
}

// StartDraggingTab begins moving tab out of the well. grab is the fraction
// of the tab's size where the pointer holds it.
//
// When policy keeps the tab in its well, the well captures the pointer for
// reordering instead and the returned operation is nil.
//
// A stack emptied by the drag stays in the tree until the drag ends, so a
// refused drop can put the tab back where it was.
func (w *TabWell) StartDraggingTab(tab *Tab, grab Point, pointer Point) (*DragOperation, error) {
	idx := w.IndexOf(tab)
	if idx < 0 {
		return nil, ErrNotInWell
	}
	d := w.stack.docking
	if d.activeDrag != nil || w.reordering != nil {
		return nil, ErrDragInProgress
	}
	if !tab.canLeaveWell() {
		w.reordering = tab
		w.grab = grab
		w.BringTabToFront(idx)
		d.log.Debug("tab reorder started", "tab", tab.id)
		return nil, nil
	}

	tabSize := w.TabSize()
	wasForeground := idx == w.foreground
	var previous *Tab
	if !wasForeground {
		previous = w.Foreground()
	}
	origin := w.stack.Area()
	w.take(idx)
	w.foreground = NoTab
	w.pendingForeground = max(idx-1, 0)
	if previous != nil {
		w.pendingForeground = w.IndexOf(previous)
	}

	op := d.beginDrag(dragStart{
		tab:         tab,
		grab:        grab,
		pointer:     pointer,
		tabSize:     tabSize,
		origin:      origin,
		originWell:  w,
		originIndex: idx,
		foreground:  wasForeground,
	})
	w.stack.pinned = true
	w.stack.onTabRemoved(tab, TabRemovalDraggedOut)
	return op, nil
}

// IsReordering reports whether the well holds the pointer for a reorder.
func (w *TabWell) IsReordering() bool { return w.reordering != nil }

// Reordering returns the tab being reordered, or nil.
func (w *TabWell) Reordering() *Tab { return w.reordering }

// ReorderTo moves the captured tab to the slot under offset.
func (w *TabWell) ReorderTo(offset float64) {
	tab := w.reordering
	if tab == nil {
		return
	}
	from := w.IndexOf(tab)
	to := min(w.ComputeChildDropIndex(offset), len(w.tabs)-1)
	if from < 0 || from == to {
		return
	}
	front := w.Foreground()
	w.tabs = slices.Delete(w.tabs, from, from+1)
	w.tabs = slices.Insert(w.tabs, to, tab)
	if front != nil {
		w.foreground = w.IndexOf(front)
	}
}

// EndReorder releases the pointer capture.
func (w *TabWell) EndReorder() {
	w.reordering = nil
	w.grab = Point{}
}

// RemoveAndDestroyTab takes tab out of the well for good. If it was in
// front, its left neighbour (or the new first tab) takes its place. The
// owning area then cleans up with the given method.
func (w *TabWell) RemoveAndDestroyTab(tab *Tab, method RemovalMethod) error {
	idx := w.IndexOf(tab)
	if idx < 0 {
		return ErrNotInWell
	}
	d := w.stack.docking
	area := w.stack.Area()
	if method == TabRemovalClosed {
		d.notifyTab(tab, area, func(l Listener) { l.OnTabClosing(tab) })
		tab.opened = false
	}
	wasForeground := idx == w.foreground
	w.take(idx)
	if wasForeground && len(w.tabs) > 0 {
		w.BringTabToFront(max(idx-1, 0))
	}
	w.stack.onTabRemoved(tab, method)
	return nil
}

// settleForeground fills an empty foreground slot left by an outgoing drag.
func (w *TabWell) settleForeground() {
	if w.foreground != NoTab || len(w.tabs) == 0 {
		return
	}
	w.BringTabToFront(max(0, min(w.pendingForeground, len(w.tabs)-1)))
}

// DragEnter reserves a placeholder for a foreign tab.
func (w *TabWell) DragEnter(tab *Tab, grab Point) {
	w.dragged = tab
	w.grab = grab
}

// DragOver moves the placeholder and returns the index a drop would use.
func (w *TabWell) DragOver(offset float64) int {
	w.dragOffset = offset
	return w.ComputeChildDropIndex(offset)
}

// DragLeave drops the placeholder.
func (w *TabWell) DragLeave() {
	w.dragged = nil
	w.dragOffset = 0
}

// DraggedThrough returns the tab hovering over the well and its offset.
func (w *TabWell) DraggedThrough() (*Tab, float64) {
	return w.dragged, w.dragOffset
}

// PlaceholderIndex returns where the hovering tab would land, or -1.
func (w *TabWell) PlaceholderIndex() int {
	if w.dragged == nil {
		return -1
	}
	return w.ComputeChildDropIndex(w.dragOffset)
}

func (w *TabWell) acceptDrop(tab *Tab, at int) error {
	w.DragLeave()
	return w.stack.OpenTab(tab, at)
}

func (w *TabWell) alive() bool {
	if !w.stack.Alive() {
		return false
	}
	a := w.stack.Area()
	return a != nil && a.Alive()
}
