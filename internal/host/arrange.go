package host

import (
	"math"

	"github.com/Gaurav-Gosain/tuidock/internal/dock"
)

// TabRect is the on-screen slot of one tab in a well.
type TabRect struct {
	Tab        *dock.Tab
	Rect       dock.Rect
	Foreground bool
	// Placeholder marks the slot reserved for a tab dragged through the
	// well; Tab is the dragged tab.
	Placeholder bool
}

// Geometry is the result of laying out dock trees inside their windows. It
// implements dock.Geometry.
type Geometry struct {
	wellHeight float64

	areas   []*dock.Area // bottom to top
	windows map[*dock.Area]*Window
	bounds  map[dock.Node]dock.Rect
	wells   map[*dock.TabWell]dock.Rect
	tabs    map[*dock.TabWell][]TabRect
}

var _ dock.Geometry = (*Geometry)(nil)

// NewGeometry returns an empty geometry whose tab rows are wellHeight tall.
func NewGeometry(wellHeight float64) *Geometry {
	return &Geometry{
		wellHeight: max(wellHeight, 1),
		windows:    make(map[*dock.Area]*Window),
		bounds:     make(map[dock.Node]dock.Rect),
		wells:      make(map[*dock.TabWell]dock.Rect),
		tabs:       make(map[*dock.TabWell][]TabRect),
	}
}

// Arrange lays out every area shown in a visible window of desk, bottom to
// top.
func Arrange(desk *Desktop, areas []*dock.Area, wellHeight float64) *Geometry {
	g := NewGeometry(wellHeight)
	for _, w := range desk.Windows() {
		if w.decorator || !w.IsVisible() {
			continue
		}
		for _, a := range areas {
			if win, ok := a.Window().(*Window); ok && win == w {
				g.windows[a] = w
				g.Arrange(a, w.Content())
			}
		}
	}
	return g
}

// Arrange lays out one area inside bounds and puts it above the areas
// arranged before it.
func (g *Geometry) Arrange(a *dock.Area, bounds dock.Rect) {
	g.areas = append(g.areas, a)
	g.arrange(a, bounds)
}

func (g *Geometry) arrange(n dock.Node, r dock.Rect) {
	g.bounds[n] = r
	switch v := n.(type) {
	case *dock.Area:
		g.split(v.Orientation(), v.Children(), r)
	case *dock.Splitter:
		g.split(v.Orientation(), v.Children(), r)
	case *dock.TabStack:
		g.arrangeStack(v, r)
	}
}

// split divides r between children in proportion to their coefficients,
// rounding the cut positions to whole cells.
func (g *Geometry) split(o dock.Orientation, children []dock.Node, r dock.Rect) {
	var total float64
	for _, c := range children {
		total += c.SizeCoefficient()
	}
	if total <= 0 {
		return
	}
	length := r.W
	if o == dock.Vertical {
		length = r.H
	}
	var acc, start float64
	for i, c := range children {
		acc += c.SizeCoefficient()
		end := math.Round(length * acc / total)
		if i == len(children)-1 {
			end = length
		}
		cr := r
		if o == dock.Vertical {
			cr.Y = r.Y + start
			cr.H = end - start
		} else {
			cr.X = r.X + start
			cr.W = end - start
		}
		g.arrange(c, cr)
		start = end
	}
}

func (g *Geometry) arrangeStack(s *dock.TabStack, r dock.Rect) {
	well := s.Well()
	wh := min(g.wellHeight, r.H)
	wr := dock.Rect{X: r.X, Y: r.Y, W: r.W, H: wh}
	g.wells[well] = wr
	well.SetWidth(r.W)

	content := dock.Size{W: r.W, H: max(r.H-wh, 0)}
	tabs := well.Tabs()
	for _, t := range tabs {
		t.SetContentSize(content)
	}

	width := math.Floor(well.TabWidth())
	step := math.Max(width-well.Overlap(), 1)
	placeholder := well.PlaceholderIndex()
	rects := make([]TabRect, 0, len(tabs)+1)
	slot := 0
	for i, t := range tabs {
		if i == placeholder {
			slot++
		}
		rects = append(rects, TabRect{
			Tab:        t,
			Rect:       dock.Rect{X: r.X + float64(slot)*step, Y: r.Y, W: width, H: wh},
			Foreground: i == well.ForegroundIndex(),
		})
		slot++
	}
	if placeholder >= 0 {
		dragged, _ := well.DraggedThrough()
		rects = append(rects, TabRect{
			Tab:         dragged,
			Rect:        dock.Rect{X: r.X + float64(placeholder)*step, Y: r.Y, W: width, H: wh},
			Placeholder: true,
		})
	}
	g.tabs[well] = rects
}

// Areas returns the arranged areas from bottom to top.
func (g *Geometry) Areas() []*dock.Area {
	out := make([]*dock.Area, len(g.areas))
	copy(out, g.areas)
	return out
}

// WindowOf returns the window an arranged area was laid out in.
func (g *Geometry) WindowOf(a *dock.Area) *Window { return g.windows[a] }

// AreaAt returns the topmost arranged area containing p.
func (g *Geometry) AreaAt(p dock.Point) *dock.Area {
	for i := len(g.areas) - 1; i >= 0; i-- {
		a := g.areas[i]
		if g.bounds[a].Contains(p) {
			return a
		}
	}
	return nil
}

// Bounds returns the rectangle assigned to n.
func (g *Geometry) Bounds(n dock.Node) (dock.Rect, bool) {
	r, ok := g.bounds[n]
	return r, ok
}

// WellBounds returns the strip holding a well's tabs.
func (g *Geometry) WellBounds(w *dock.TabWell) (dock.Rect, bool) {
	r, ok := g.wells[w]
	return r, ok
}

// TabRects returns the tab slots of a well in drawing order.
func (g *Geometry) TabRects(w *dock.TabWell) []TabRect {
	return g.tabs[w]
}

// StackAt returns the stack under p in the topmost area there.
func (g *Geometry) StackAt(p dock.Point) *dock.TabStack {
	a := g.AreaAt(p)
	if a == nil {
		return nil
	}
	for _, s := range a.Stacks() {
		if r, ok := g.bounds[s]; ok && r.Contains(p) {
			return s
		}
	}
	return nil
}

// TabAt returns the tab slot under p. Later slots win where tabs overlap,
// except that the foreground tab is always on top.
func (g *Geometry) TabAt(p dock.Point) (TabRect, bool) {
	s := g.StackAt(p)
	if s == nil {
		return TabRect{}, false
	}
	rects := g.tabs[s.Well()]
	for _, tr := range rects {
		if tr.Foreground && tr.Rect.Contains(p) {
			return tr, true
		}
	}
	for i := len(rects) - 1; i >= 0; i-- {
		if tr := rects[i]; !tr.Placeholder && tr.Rect.Contains(p) {
			return tr, true
		}
	}
	return TabRect{}, false
}
