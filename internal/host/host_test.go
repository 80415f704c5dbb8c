package host

import (
	"testing"

	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/stretchr/testify/require"
)

func newDesk() *Desktop {
	return NewDesktop(dock.Size{W: 120, H: 40}, nil)
}

func TestMainWindowFillsDesktop(t *testing.T) {
	d := newDesk()
	w := d.NewMainWindow("main")

	require.True(t, w.IsMaximized())
	require.True(t, w.IsFrameless())
	require.Equal(t, dock.Rect{W: 120, H: 40}, w.Content())

	d.Resize(dock.Size{W: 80, H: 20})
	require.Equal(t, dock.Rect{W: 80, H: 20}, w.Bounds())
}

func TestCreateFloatingWindowStaysOnScreen(t *testing.T) {
	d := newDesk()
	w := d.CreateFloatingWindow(dock.WindowSpec{
		Title:    "float",
		Position: dock.Point{X: 110, Y: 35},
		Size:     dock.Size{W: 30, H: 10},
	}).(*Window)

	require.Equal(t, dock.Rect{X: 90, Y: 30, W: 30, H: 10}, w.Bounds())
	require.Equal(t, dock.Rect{X: 91, Y: 31, W: 28, H: 8}, w.Content())

	deco := d.CreateFloatingWindow(dock.WindowSpec{
		Position:  dock.Point{X: 110, Y: 35},
		Size:      dock.Size{W: 30, H: 10},
		Decorator: true,
	}).(*Window)
	require.Equal(t, dock.Rect{X: 110, Y: 35, W: 30, H: 10}, deco.Bounds())
}

func TestRaiseKeepsDecoratorsOnTop(t *testing.T) {
	d := newDesk()
	main := d.NewMainWindow("main")
	deco := d.CreateFloatingWindow(dock.WindowSpec{Size: dock.Size{W: 5, H: 3}, Decorator: true}).(*Window)
	a := d.CreateFloatingWindow(dock.WindowSpec{Size: dock.Size{W: 10, H: 5}}).(*Window)
	b := d.CreateFloatingWindow(dock.WindowSpec{Size: dock.Size{W: 10, H: 5}}).(*Window)

	require.Equal(t, []*Window{main, a, b, deco}, d.Windows())
	a.Show()
	require.Equal(t, []*Window{main, b, a, deco}, d.Windows())
}

func TestPick(t *testing.T) {
	d := newDesk()
	main := d.NewMainWindow("main")
	float := d.CreateFloatingWindow(dock.WindowSpec{Position: dock.Point{X: 10, Y: 10}, Size: dock.Size{W: 20, H: 10}}).(*Window)
	d.CreateFloatingWindow(dock.WindowSpec{Position: dock.Point{X: 10, Y: 10}, Size: dock.Size{W: 20, H: 10}, Decorator: true})

	require.Same(t, float, d.Pick(dock.Point{X: 15, Y: 15}))
	require.Same(t, main, d.Pick(dock.Point{X: 50, Y: 5}))

	float.Hide()
	require.Same(t, main, d.Pick(dock.Point{X: 15, Y: 15}))
	require.Nil(t, d.Pick(dock.Point{X: 500, Y: 5}))
}

func TestReap(t *testing.T) {
	d := newDesk()
	d.NewMainWindow("main")
	w := d.CreateFloatingWindow(dock.WindowSpec{Size: dock.Size{W: 10, H: 5}}).(*Window)

	w.RequestDestroy()
	w.RequestDestroy()
	w.Show()
	require.False(t, w.IsVisible())
	require.Equal(t, []*Window{w}, d.Pending())

	require.Equal(t, []*Window{w}, d.Reap())
	require.Len(t, d.Windows(), 1)
	require.Empty(t, d.Pending())
	require.Nil(t, d.Reap())
}

func TestToggleMaximize(t *testing.T) {
	d := newDesk()
	w := d.CreateFloatingWindow(dock.WindowSpec{Position: dock.Point{X: 5, Y: 5}, Size: dock.Size{W: 20, H: 10}}).(*Window)

	w.ToggleMaximize()
	require.True(t, w.IsMaximized())
	require.Equal(t, dock.Rect{W: 120, H: 40}, w.Bounds())
	w.ToggleMaximize()
	require.Equal(t, dock.Rect{X: 5, Y: 5, W: 20, H: 10}, w.Bounds())
}

func TestResizeEnforcesMinimum(t *testing.T) {
	d := newDesk()
	w := d.CreateFloatingWindow(dock.WindowSpec{Size: dock.Size{W: 20, H: 10}}).(*Window)
	w.Resize(dock.Size{W: 1, H: -4})
	require.Equal(t, dock.Size{W: minWindowSide, H: minWindowSide}, w.Bounds().Size())
}

// =============================================================================
// Arrange
// =============================================================================

type tree struct {
	desk *Desktop
	d    *dock.Docking
	m    *dock.TabManager
	area *dock.Area
}

func newTree(t *testing.T) *tree {
	t.Helper()
	desk := newDesk()
	main := desk.NewMainWindow("main")
	d := dock.New(desk, dock.WithTabSizing(dock.TabSizing{
		Major:   dock.Size{W: 20, H: 1},
		Minor:   dock.Size{W: 16, H: 1},
		Nomad:   dock.Size{W: 16, H: 1},
		Overlap: 1,
	}))
	m := dock.NewTabManager("m")
	area := d.NewArea(m, dock.WithWindow(main, false), dock.AsPrimary())
	return &tree{desk: desk, d: d, m: m, area: area}
}

func (tr *tree) stack(t *testing.T, ids ...string) *dock.TabStack {
	t.Helper()
	s := tr.d.NewStack()
	for _, id := range ids {
		require.NoError(t, s.OpenTab(dock.NewTab(id, id, dock.MinorTab, tr.m), -1))
	}
	return s
}

func TestArrangeSplitsByCoefficient(t *testing.T) {
	tr := newTree(t)
	left := tr.stack(t, "a")
	right := tr.d.NewSplitter(dock.Vertical)
	top, bottom := tr.stack(t, "b"), tr.stack(t, "c")
	require.NoError(t, right.AddChild(top, -1))
	require.NoError(t, right.AddChild(bottom, -1))
	right.SetSizeCoefficient(2)
	require.NoError(t, tr.area.AddChild(left, -1))
	require.NoError(t, tr.area.AddChild(right, -1))

	g := Arrange(tr.desk, tr.d.Areas(), 1)

	tests := []struct {
		node dock.Node
		want dock.Rect
	}{
		{tr.area, dock.Rect{W: 120, H: 40}},
		{left, dock.Rect{W: 40, H: 40}},
		{right, dock.Rect{X: 40, W: 80, H: 40}},
		{top, dock.Rect{X: 40, W: 80, H: 20}},
		{bottom, dock.Rect{X: 40, Y: 20, W: 80, H: 20}},
	}
	for _, tt := range tests {
		got, ok := g.Bounds(tt.node)
		require.True(t, ok, tt.node.ID())
		require.Equal(t, tt.want, got, tt.node.ID())
	}

	wb, ok := g.WellBounds(top.Well())
	require.True(t, ok)
	require.Equal(t, dock.Rect{X: 40, W: 80, H: 1}, wb)
	require.InDelta(t, 80, top.Well().Width(), 1e-9)
	require.Equal(t, dock.Size{W: 80, H: 19}, top.Well().Foreground().ContentSize())
}

func TestArrangeRoundsCuts(t *testing.T) {
	tr := newTree(t)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, tr.area.AddChild(tr.stack(t, id), -1))
	}
	tr.desk.Resize(dock.Size{W: 100, H: 10})

	g := Arrange(tr.desk, tr.d.Areas(), 1)

	var total float64
	for _, s := range tr.area.Stacks() {
		r, _ := g.Bounds(s)
		require.Equal(t, r.W, float64(int(r.W)))
		total += r.W
	}
	require.InDelta(t, 100, total, 1e-9)
}

func TestTabRectsAndTabAt(t *testing.T) {
	tr := newTree(t)
	s := tr.stack(t, "a", "b", "c")
	require.NoError(t, tr.area.AddChild(s, -1))
	s.Well().BringTabToFront(0)

	g := Arrange(tr.desk, tr.d.Areas(), 1)
	rects := g.TabRects(s.Well())
	require.Len(t, rects, 3)
	// 120 wide: (119)/3+1 caps at 16; tabs step by 15.
	require.Equal(t, dock.Rect{X: 0, W: 16, H: 1}, rects[0].Rect)
	require.Equal(t, dock.Rect{X: 15, W: 16, H: 1}, rects[1].Rect)
	require.Equal(t, dock.Rect{X: 30, W: 16, H: 1}, rects[2].Rect)
	require.True(t, rects[0].Foreground)

	// x=15 is covered by a and b; the foreground tab wins.
	hit, ok := g.TabAt(dock.Point{X: 15, Y: 0})
	require.True(t, ok)
	require.Equal(t, "a", hit.Tab.ID())

	// x=30 is covered by b and c; the later one wins.
	hit, ok = g.TabAt(dock.Point{X: 30, Y: 0})
	require.True(t, ok)
	require.Equal(t, "c", hit.Tab.ID())

	_, ok = g.TabAt(dock.Point{X: 60, Y: 0})
	require.False(t, ok)
	_, ok = g.TabAt(dock.Point{X: 5, Y: 5})
	require.False(t, ok)
}

func TestTabRectsReservePlaceholder(t *testing.T) {
	tr := newTree(t)
	s := tr.stack(t, "a", "b")
	require.NoError(t, tr.area.AddChild(s, -1))
	guest := dock.NewTab("g", "g", dock.MinorTab, tr.m)
	s.Well().DragEnter(guest, dock.Point{})
	s.Well().SetWidth(120)
	s.Well().DragOver(16)

	g := Arrange(tr.desk, tr.d.Areas(), 1)
	rects := g.TabRects(s.Well())
	require.Len(t, rects, 3)
	require.Equal(t, 0.0, rects[0].Rect.X)
	require.Equal(t, 30.0, rects[1].Rect.X)
	require.True(t, rects[2].Placeholder)
	require.Same(t, guest, rects[2].Tab)
	require.Equal(t, 15.0, rects[2].Rect.X)
}

func TestArrangeSkipsHiddenWindows(t *testing.T) {
	tr := newTree(t)
	win := tr.desk.CreateFloatingWindow(dock.WindowSpec{Position: dock.Point{X: 10, Y: 5}, Size: dock.Size{W: 40, H: 20}}).(*Window)
	float := tr.d.NewArea(tr.m, dock.WithWindow(win, true))
	require.NoError(t, float.AddChild(tr.stack(t, "f"), -1))

	g := Arrange(tr.desk, tr.d.Areas(), 1)
	require.Equal(t, []*dock.Area{tr.area, float}, g.Areas())
	require.Same(t, float, g.AreaAt(dock.Point{X: 20, Y: 10}))
	require.Same(t, win, g.WindowOf(float))
	b, _ := g.Bounds(float)
	require.Equal(t, win.Content(), b)

	win.Hide()
	g = Arrange(tr.desk, tr.d.Areas(), 1)
	require.Equal(t, []*dock.Area{tr.area}, g.Areas())
	require.Same(t, tr.area, g.AreaAt(dock.Point{X: 20, Y: 10}))
}
