// Package host provides the windowing layer the docking engine runs on: a
// desktop of virtual windows stacked in z-order, and a geometry pass that
// lays a dock tree out inside a window.
package host

import (
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
)

// Window is a virtual window on a Desktop.
type Window struct {
	id        string
	title     string
	bounds    dock.Rect
	restore   dock.Rect
	parent    dock.Window
	desktop   *Desktop
	visible   bool
	preview   bool
	maximized bool
	decorator bool
	frameless bool
	destroyed bool
}

func (w *Window) ID() string          { return w.id }
func (w *Window) Title() string       { return w.title }
func (w *Window) SetTitle(t string)   { w.title = t }
func (w *Window) Bounds() dock.Rect   { return w.bounds }
func (w *Window) Parent() dock.Window { return w.parent }
func (w *Window) IsVisible() bool     { return w.visible && !w.destroyed }
func (w *Window) IsMaximized() bool   { return w.maximized }
func (w *Window) IsPreview() bool     { return w.preview }
func (w *Window) IsDecorator() bool   { return w.decorator }
func (w *Window) IsFrameless() bool   { return w.frameless }
func (w *Window) Destroyed() bool     { return w.destroyed }
func (w *Window) SetPreview(on bool)  { w.preview = on }
func (w *Window) Hide()               { w.visible = false }

// Show makes the window visible and raises it.
func (w *Window) Show() {
	if w.destroyed {
		return
	}
	w.visible = true
	if w.desktop != nil {
		w.desktop.Raise(w)
	}
}

// MoveTo places the window's top-left corner at p.
func (w *Window) MoveTo(p dock.Point) {
	w.bounds.X = p.X
	w.bounds.Y = p.Y
}

// Resize changes the window size, keeping its position.
func (w *Window) Resize(sz dock.Size) {
	w.bounds.W = max(sz.W, minWindowSide)
	w.bounds.H = max(sz.H, minWindowSide)
}

// Reshape moves and resizes the window in one step.
func (w *Window) Reshape(r dock.Rect) {
	w.MoveTo(r.Origin())
	w.Resize(r.Size())
}

// ToggleMaximize fills the desktop, or restores the previous bounds.
func (w *Window) ToggleMaximize() {
	if w.desktop == nil {
		return
	}
	if w.maximized {
		w.maximized = false
		w.bounds = w.restore
		return
	}
	w.restore = w.bounds
	w.maximized = true
	w.bounds = dock.Rect{W: w.desktop.size.W, H: w.desktop.size.H}
}

// RequestDestroy hides the window and queues it; Desktop.Reap removes it.
func (w *Window) RequestDestroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.visible = false
	if w.desktop != nil {
		w.desktop.pending = append(w.desktop.pending, w)
	}
}

// Content returns the window's inner rectangle: the bounds minus the
// one-cell border, or the bounds themselves for frameless windows.
func (w *Window) Content() dock.Rect {
	if w.frameless {
		return w.bounds
	}
	return dock.Rect{X: w.bounds.X + 1, Y: w.bounds.Y + 1, W: max(w.bounds.W-2, 0), H: max(w.bounds.H-2, 0)}
}
