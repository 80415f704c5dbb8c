package host

import (
	"io"
	"math"
	"slices"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/google/uuid"
)

const minWindowSide = 3

// Desktop is a stack of virtual windows. It implements dock.WindowHost.
type Desktop struct {
	size    dock.Size
	windows []*Window // bottom to top
	pending []*Window
	pointer dock.Point
	log     *log.Logger
}

var _ dock.WindowHost = (*Desktop)(nil)

// NewDesktop returns an empty desktop of the given size.
func NewDesktop(size dock.Size, logger *log.Logger) *Desktop {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Desktop{size: size, log: logger}
}

// Size returns the desktop size.
func (d *Desktop) Size() dock.Size { return d.size }

// Resize changes the desktop size. Maximized windows follow it.
func (d *Desktop) Resize(size dock.Size) {
	d.size = size
	for _, w := range d.windows {
		if w.maximized {
			w.bounds = dock.Rect{W: size.W, H: size.H}
		}
	}
}

// NewMainWindow creates the frameless window that fills the desktop.
func (d *Desktop) NewMainWindow(title string) *Window {
	w := d.newWindow(title, dock.Rect{W: d.size.W, H: d.size.H})
	w.frameless = true
	w.maximized = true
	w.restore = w.bounds
	return w
}

func (d *Desktop) newWindow(title string, r dock.Rect) *Window {
	w := &Window{id: uuid.New().String(), title: title, desktop: d, visible: true}
	w.Reshape(r)
	d.windows = append(d.windows, w)
	return w
}

// CreateFloatingWindow creates a window on top of the others.
func (d *Desktop) CreateFloatingWindow(spec dock.WindowSpec) dock.Window {
	r := dock.Rect{X: spec.Position.X, Y: spec.Position.Y, W: spec.Size.W, H: spec.Size.H}
	if !spec.Decorator {
		r = d.fit(r)
	}
	w := d.newWindow(spec.Title, r)
	w.parent = spec.Parent
	w.decorator = spec.Decorator
	d.Raise(w)
	d.log.Debug("window created", "window", w.id, "title", spec.Title, "decorator", spec.Decorator)
	return w
}

// fit keeps a new window on screen and on whole cells.
func (d *Desktop) fit(r dock.Rect) dock.Rect {
	r.X, r.Y = math.Round(r.X), math.Round(r.Y)
	r.W, r.H = math.Round(r.W), math.Round(r.H)
	if d.size.W <= 0 || d.size.H <= 0 {
		return r
	}
	r.W = min(max(r.W, minWindowSide), d.size.W)
	r.H = min(max(r.H, minWindowSide), d.size.H)
	r.X = min(max(r.X, 0), d.size.W-r.W)
	r.Y = min(max(r.Y, 0), d.size.H-r.H)
	return r
}

// PointerPosition returns the last pointer position reported by input.
func (d *Desktop) PointerPosition() dock.Point { return d.pointer }

// SetPointer records the pointer position.
func (d *Desktop) SetPointer(p dock.Point) { d.pointer = p }

// FindWindowContainingArea returns the window the area lives in.
func (d *Desktop) FindWindowContainingArea(a *dock.Area) dock.Window {
	if a == nil {
		return nil
	}
	return a.Window()
}

// Windows returns the live windows from bottom to top.
func (d *Desktop) Windows() []*Window {
	return slices.Clone(d.windows)
}

// Raise moves w to the top of the stack. Decorators stay above everything.
func (d *Desktop) Raise(w *Window) {
	i := slices.Index(d.windows, w)
	if i < 0 {
		return
	}
	d.windows = slices.Delete(d.windows, i, i+1)
	d.windows = append(d.windows, w)
	slices.SortStableFunc(d.windows, func(a, b *Window) int {
		switch {
		case a.decorator == b.decorator:
			return 0
		case a.decorator:
			return 1
		default:
			return -1
		}
	})
}

// Pick returns the topmost visible, non-decorator window under p.
func (d *Desktop) Pick(p dock.Point) *Window {
	for i := len(d.windows) - 1; i >= 0; i-- {
		w := d.windows[i]
		if w.decorator || !w.IsVisible() {
			continue
		}
		if w.bounds.Contains(p) {
			return w
		}
	}
	return nil
}

// Pending returns the windows waiting for Reap.
func (d *Desktop) Pending() []*Window { return slices.Clone(d.pending) }

// Reap removes every window whose destruction was requested and returns
// them. Call it between input events, never while a drag is in flight.
func (d *Desktop) Reap() []*Window {
	if len(d.pending) == 0 {
		return nil
	}
	gone := d.pending
	d.pending = nil
	d.windows = slices.DeleteFunc(d.windows, func(w *Window) bool { return w.destroyed })
	for _, w := range gone {
		d.log.Debug("window destroyed", "window", w.id, "title", w.title)
	}
	return gone
}
