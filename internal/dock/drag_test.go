package dock_test

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/Gaurav-Gosain/tuidock/internal/host"
	"github.com/stretchr/testify/require"
)

var grabCenter = dock.Point{X: 0.5, Y: 0.5}

// Scenario A: dragging TabB from stack1 onto stack2's right zone puts it in
// a new stack directly right of stack2; stack1 keeps TabA in front.
func TestScenarioADropOnRightZone(t *testing.T) {
	f := newFixture(t)
	a, b, c := f.tab("A"), f.tab("B"), f.tab("C")
	split := f.d.NewSplitter(dock.Horizontal)
	require.NoError(t, f.area.AddChild(split, -1))
	s1 := f.stack(t, a, b)
	s2 := f.stack(t, c)
	require.NoError(t, split.AddChild(s1, -1))
	require.NoError(t, split.AddChild(s2, -1))
	require.Same(t, b, s1.Well().Foreground())

	op, err := s1.Well().StartDraggingTab(b, grabCenter, dock.Point{X: 100, Y: 10})
	require.NoError(t, err)
	require.NotNil(t, op)
	require.Same(t, op, f.d.ActiveDrag())
	require.Nil(t, b.Well())

	op.Hover(dock.DropTarget{Node: s2, Direction: dock.RightOf})
	require.Equal(t, dock.DragHovering, op.State())
	home := op.Drop()

	require.Equal(t, dock.DragDropped, op.State())
	require.Same(t, f.main, home)
	require.Nil(t, f.d.ActiveDrag())

	require.Equal(t, []*dock.Tab{a}, s1.Well().Tabs())
	require.Same(t, a, s1.Well().Foreground())
	require.Equal(t, []*dock.Tab{c}, s2.Well().Tabs())

	placed := b.Stack()
	require.NotNil(t, placed)
	require.NotSame(t, s2, placed)
	parent := placed.Parent()
	require.Same(t, s2.Parent(), parent)
	require.Equal(t, dock.Horizontal, parent.Orientation())
	require.Equal(t, parent.IndexOf(s2)+1, parent.IndexOf(placed))

	requireWellFormed(t, f.area)
	requireNoOrphans(t, f.d, a, b, c)
}

// Scenario C: dragging the only tab out of a window-managing area hides the
// window; cancelling builds a new window for the tab and queues the old one
// for destruction.
func TestScenarioCCancelAfterDraggingLastTabOut(t *testing.T) {
	f := newFixture(t)
	x := f.tab("only")
	win, origin, _ := f.floating(t, f.m, x)

	op, err := x.Well().StartDraggingTab(x, grabCenter, dock.Point{X: 300, Y: 200})
	require.NoError(t, err)

	require.False(t, win.IsVisible())
	require.False(t, win.Destroyed())
	require.NotContains(t, f.desk.Pending(), win)
	require.Contains(t, f.d.Areas(), origin)

	home := op.Cancel()

	require.Equal(t, dock.DragCancelled, op.State())
	require.NotNil(t, home)
	require.NotSame(t, win, home)
	require.True(t, home.IsVisible())

	newArea := x.Stack().Area()
	require.NotSame(t, origin, newArea)
	require.Same(t, home, newArea.Window())
	require.True(t, newArea.ManagesWindow())

	require.True(t, win.Destroyed())
	require.Contains(t, f.desk.Pending(), win)
	require.NotContains(t, f.d.Areas(), origin)
	require.Nil(t, f.d.ActiveDrag())

	reaped := f.desk.Reap()
	require.Contains(t, reaped, win)
	require.NotContains(t, f.desk.Windows(), win)
	requireNoOrphans(t, f.d, x)
}

// Scenario D: a major tab of one manager is refused by a well of another
// and goes back to its original slot.
func TestScenarioDMajorTabRefusedByForeignWell(t *testing.T) {
	f := newFixture(t)
	m2 := dock.NewTabManager("other")
	keep := f.tab("keep")
	major := dock.NewTab("doc", "doc", dock.MajorTab, f.m)
	s1 := f.stack(t, keep, major)
	require.NoError(t, f.area.AddChild(s1, -1))
	other := dock.NewTab("o", "o", dock.MinorTab, m2)
	_, _, s2 := f.floating(t, m2, other)

	op, err := s1.Well().StartDraggingTab(major, grabCenter, dock.Point{X: 10, Y: 10})
	require.NoError(t, err)
	target := dock.DropTarget{Node: s2, Direction: dock.Center, Well: s2.Well()}
	require.False(t, op.CanDockInNode(target))

	op.Hover(target)
	home := op.Drop()

	require.Equal(t, dock.DragCancelled, op.State())
	require.Same(t, f.main, home)
	require.Same(t, s1.Well(), major.Well())
	require.Equal(t, 1, s1.Well().IndexOf(major))
	require.Same(t, major, s1.Well().Foreground())
	require.Equal(t, []*dock.Tab{other}, s2.Well().Tabs())
	requireNoOrphans(t, f.d, keep, major, other)
}

// A major tab that is the only tab of its stack goes back into that same
// stack when refused, and the layout is as it was before the drag.
func TestScenarioDLoneMajorTabRefusedStaysHome(t *testing.T) {
	var logs bytes.Buffer
	f := newFixture(t, dock.WithLogger(log.New(&logs)))
	m2 := dock.NewTabManager("other")
	left := f.tab("left")
	major := dock.NewTab("doc", "doc", dock.MajorTab, f.m)
	s0 := f.stack(t, left)
	s1 := f.stack(t, major)
	require.NoError(t, f.area.AddChild(s0, -1))
	require.NoError(t, f.area.AddChild(s1, -1))
	other := dock.NewTab("o", "o", dock.MinorTab, m2)
	_, _, s2 := f.floating(t, m2, other)
	before := dump(f.area)
	areas, windows := len(f.d.Areas()), len(f.desk.Windows())

	op, err := s1.Well().StartDraggingTab(major, grabCenter, dock.Point{X: 10, Y: 10})
	require.NoError(t, err)
	require.True(t, s1.Alive())
	deco := op.Decorator().(*host.Window)

	op.Hover(dock.DropTarget{Node: s2, Direction: dock.Center, Well: s2.Well()})
	home := op.Drop()

	require.Equal(t, dock.DragCancelled, op.State())
	require.Same(t, f.main, home)
	require.True(t, s1.Alive())
	require.Same(t, s1.Well(), major.Well())
	require.Same(t, major, s1.Well().Foreground())
	require.Equal(t, before, dump(f.area))
	require.Len(t, f.d.Areas(), areas)
	// Only the drag decorator goes away.
	require.Equal(t, []*host.Window{deco}, f.desk.Reap())
	require.Len(t, f.desk.Windows(), windows)
	require.NotContains(t, logs.String(), "failed")
	requireWellFormed(t, f.area)
	requireNoOrphans(t, f.d, left, major, other)
}

// A refused lone tab keeps its floating window, which reappears.
func TestRefusedLoneTabKeepsFloatingWindow(t *testing.T) {
	f := newFixture(t)
	m2 := dock.NewTabManager("other")
	only := f.tab("only")
	win, origin, s1 := f.floating(t, f.m, only)
	_, _, s2 := f.floating(t, m2, dock.NewTab("o", "o", dock.MinorTab, m2))

	op, err := s1.Well().StartDraggingTab(only, grabCenter, dock.Point{X: 40, Y: 40})
	require.NoError(t, err)
	require.False(t, win.IsVisible())

	op.Hover(dock.DropTarget{Node: s2, Direction: dock.Center, Well: s2.Well()})
	home := op.Drop()

	require.Same(t, win, home)
	require.True(t, win.IsVisible())
	require.False(t, win.Destroyed())
	require.Contains(t, f.d.Areas(), origin)
	require.Same(t, s1.Well(), only.Well())
	requireWellFormed(t, origin)
}

func TestRefusedDropKeepsPreviousForeground(t *testing.T) {
	f := newFixture(t)
	m2 := dock.NewTabManager("other")
	a, b := f.tab("a"), f.tab("b")
	s1 := f.stack(t, a, b)
	require.NoError(t, f.area.AddChild(s1, -1))
	_, _, s2 := f.floating(t, m2, dock.NewTab("o", "o", dock.MinorTab, m2))

	// a is in the background while it travels.
	op, err := s1.Well().StartDraggingTab(a, grabCenter, dock.Point{})
	require.NoError(t, err)
	op.Hover(dock.DropTarget{Node: s2, Direction: dock.RightOf})
	op.Drop()

	require.Equal(t, []*dock.Tab{a, b}, s1.Well().Tabs())
	require.Same(t, b, s1.Well().Foreground())
}

func TestRefusedDropWithoutOriginWellSynthesizesWindow(t *testing.T) {
	f := newFixture(t)
	m2 := dock.NewTabManager("other")
	only := f.tab("only")
	s1 := f.stack(t, only)
	require.NoError(t, f.area.AddChild(s1, -1))
	_, _, s2 := f.floating(t, m2, dock.NewTab("o", "o", dock.MinorTab, m2))

	op, err := s1.Well().StartDraggingTab(only, grabCenter, dock.Point{X: 40, Y: 40})
	require.NoError(t, err)
	// The emptied stack waits for the drop, but here it is taken out of
	// the tree before that.
	require.True(t, s1.Alive())
	require.NoError(t, f.area.RemoveChild(s1))

	op.Hover(dock.DropTarget{Node: s2, Direction: dock.Center, Well: s2.Well()})
	home := op.Drop()

	require.NotNil(t, home)
	require.Same(t, home, only.Stack().Area().Window())
	requireNoOrphans(t, f.d, only)
}

func TestDropIntoWellAtIndex(t *testing.T) {
	f := newFixture(t)
	a, b, c, d := f.tab("a"), f.tab("b"), f.tab("c"), f.tab("d")
	s1 := f.stack(t, a)
	s2 := f.stack(t, b, c, d)
	require.NoError(t, f.area.AddChild(s1, -1))
	require.NoError(t, f.area.AddChild(s2, -1))
	s2.Well().SetWidth(450)

	op, err := s1.Well().StartDraggingTab(a, grabCenter, dock.Point{})
	require.NoError(t, err)
	// s1 is empty but stays until the drop.
	require.True(t, s1.Alive())
	require.Zero(t, s1.Well().Len())

	op.Hover(dock.DropTarget{Node: s2, Direction: dock.Center, Well: s2.Well(), Offset: 120})
	tab, offset := s2.Well().DraggedThrough()
	require.Same(t, a, tab)
	require.InDelta(t, 120, offset, 1e-9)
	op.Drop()

	require.Equal(t, []*dock.Tab{b, a, c, d}, s2.Well().Tabs())
	require.Same(t, a, s2.Well().Foreground())
	dragged, _ := s2.Well().DraggedThrough()
	require.Nil(t, dragged)
	require.False(t, s1.Alive())
	require.Equal(t, []dock.Node{s2}, f.area.Children())
	requireWellFormed(t, f.area)
}

func TestDropIntoEmptyAreaCenter(t *testing.T) {
	f := newFixture(t)
	other := f.d.NewArea(f.m)
	a, b := f.tab("a"), f.tab("b")
	s := f.stack(t, a, b)
	require.NoError(t, other.AddChild(s, -1))
	require.True(t, f.area.CenterTargetOnly())

	op, err := s.Well().StartDraggingTab(b, grabCenter, dock.Point{})
	require.NoError(t, err)
	op.Hover(dock.DropTarget{Node: f.area, Direction: dock.Center})
	require.True(t, f.area.CrossVisible())
	require.Same(t, f.area, other.DraggedOver())
	op.Drop()

	require.False(t, f.area.CrossVisible())
	require.False(t, f.area.CenterTargetOnly())
	require.Nil(t, other.DraggedOver())
	require.Equal(t, 1, f.area.Len())
	require.Same(t, f.area, b.Stack().Area())
}

func TestHoverTransitions(t *testing.T) {
	f := newFixture(t)
	a, b := f.tab("a"), f.tab("b")
	s1, s2 := f.stack(t, a), f.stack(t, b)
	require.NoError(t, f.area.AddChild(s1, -1))
	require.NoError(t, f.area.AddChild(s2, -1))
	extra := f.tab("x")
	require.NoError(t, s1.OpenTab(extra, -1))

	op, err := s1.Well().StartDraggingTab(extra, grabCenter, dock.Point{X: 50, Y: 50})
	require.NoError(t, err)
	deco := op.Decorator().(*host.Window)
	require.True(t, deco.IsVisible())

	zone := dock.DropTarget{Node: s2, Direction: dock.Below, Rect: dock.Rect{X: 10, Y: 20, W: 30, H: 40}}
	op.Hover(zone)
	require.Equal(t, dock.DragHovering, op.State())
	require.True(t, deco.IsPreview())
	require.Equal(t, zone.Rect, deco.Bounds())

	well := dock.DropTarget{Node: s2, Direction: dock.Center, Well: s2.Well()}
	op.Hover(well)
	require.False(t, deco.IsVisible())
	dragged, _ := s2.Well().DraggedThrough()
	require.Same(t, extra, dragged)

	op.ClearHover()
	require.Equal(t, dock.DragDragging, op.State())
	require.True(t, deco.IsVisible())
	require.False(t, deco.IsPreview())
	dragged, _ = s2.Well().DraggedThrough()
	require.Nil(t, dragged)

	op.MoveTo(dock.Point{X: 200, Y: 150})
	require.Equal(t, dock.Point{X: 200, Y: 150}, op.Pointer())

	op.Drop()
	require.Equal(t, dock.DragCancelled, op.State())
	require.True(t, deco.Destroyed())
	requireNoOrphans(t, f.d, a, b, extra)
}

func TestStaleTargetDegradesToNoTarget(t *testing.T) {
	f := newFixture(t)
	a, b := f.tab("a"), f.tab("b")
	s1, s2 := f.stack(t, a), f.stack(t, b)
	require.NoError(t, f.area.AddChild(s1, -1))
	require.NoError(t, f.area.AddChild(s2, -1))
	extra := f.tab("x")
	require.NoError(t, s1.OpenTab(extra, -1))

	op, err := s1.Well().StartDraggingTab(extra, grabCenter, dock.Point{})
	require.NoError(t, err)
	op.Hover(dock.DropTarget{Node: s2, Direction: dock.LeftOf})

	// The hovered stack goes away mid-drag.
	require.NoError(t, s2.Well().RemoveAndDestroyTab(b, dock.TabRemovalDraggedOut))
	require.False(t, s2.Alive())

	home := op.Drop()
	require.Equal(t, dock.DragCancelled, op.State())
	require.Same(t, home, extra.Stack().Area().Window())
	require.NotSame(t, f.main, home)
}

func TestStartDraggingErrors(t *testing.T) {
	f := newFixture(t)
	a, b := f.tab("a"), f.tab("b")
	s := f.stack(t, a, b)
	require.NoError(t, f.area.AddChild(s, -1))

	_, err := s.Well().StartDraggingTab(f.tab("stranger"), grabCenter, dock.Point{})
	require.ErrorIs(t, err, dock.ErrNotInWell)

	op, err := s.Well().StartDraggingTab(a, grabCenter, dock.Point{})
	require.NoError(t, err)
	_, err = s.Well().StartDraggingTab(b, grabCenter, dock.Point{})
	require.ErrorIs(t, err, dock.ErrDragInProgress)

	op.Cancel()
	require.Nil(t, op.Drop())
}

func TestCanDockInNode(t *testing.T) {
	f := newFixture(t)
	global := dock.NewGlobalTabManager("global")
	foreign := dock.NewTabManager("foreign")

	own := f.stack(t, f.tab("own"))
	require.NoError(t, f.area.AddChild(own, -1))
	_, globalArea, globalStack := f.floating(t, global, dock.NewTab("g", "g", dock.MinorTab, global))
	_, _, foreignStack := f.floating(t, foreign, dock.NewTab("f", "f", dock.MinorTab, foreign))
	emptyForeign := f.d.NewArea(foreign)

	viaWell := func(s *dock.TabStack) dock.DropTarget {
		return dock.DropTarget{Node: s, Direction: dock.Center, Well: s.Well()}
	}
	viaZone := func(n dock.Node) dock.DropTarget {
		return dock.DropTarget{Node: n, Direction: dock.RightOf}
	}

	tests := []struct {
		name   string
		role   dock.TabRole
		target dock.DropTarget
		want   bool
	}{
		{"nomad into foreign well", dock.NomadTab, viaWell(foreignStack), true},
		{"nomad into global well", dock.NomadTab, viaWell(globalStack), true},
		{"nomad splits foreign area", dock.NomadTab, viaZone(foreignStack), true},
		{"nomad refuses global area zone", dock.NomadTab, viaZone(globalArea), false},
		{"major into own well", dock.MajorTab, viaWell(own), true},
		{"major refuses foreign well", dock.MajorTab, viaWell(foreignStack), false},
		{"major splits own zone", dock.MajorTab, viaZone(own), true},
		{"major refuses foreign zone", dock.MajorTab, viaZone(foreignStack), false},
		{"major into empty area", dock.MajorTab, dock.DropTarget{Node: emptyForeign, Direction: dock.Center}, true},
		{"major onto empty area edge", dock.MajorTab, viaZone(emptyForeign), true},
		{"minor into own zone", dock.MinorTab, viaZone(own), true},
		{"minor refuses foreign well", dock.MinorTab, viaWell(foreignStack), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := dock.NewTab("", "moving", tt.role, f.m)
			require.NoError(t, own.OpenTab(tab, -1))
			op, err := own.Well().StartDraggingTab(tab, grabCenter, dock.Point{})
			require.NoError(t, err)
			defer op.Cancel()
			require.Equal(t, tt.want, op.CanDockInNode(tt.target))
		})
	}
}

func TestDroppedOntoNothingParenting(t *testing.T) {
	tests := []struct {
		name       string
		role       dock.TabRole
		wantParent string
	}{
		{"major under root", dock.MajorTab, "root"},
		{"nomad under root", dock.NomadTab, "root"},
		{"minor under origin", dock.MinorTab, "origin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desk := host.NewDesktop(dock.Size{W: 1600, H: 1000}, nil)
			root := desk.NewMainWindow("root")
			d := dock.New(desk, dock.WithRootWindow(root))
			m := dock.NewTabManager("m")
			originWin := desk.CreateFloatingWindow(dock.WindowSpec{Size: dock.Size{W: 300, H: 200}})
			origin := d.NewArea(m, dock.WithWindow(originWin, true))
			s := d.NewStack()
			require.NoError(t, origin.AddChild(s, -1))
			tab := dock.NewTab("t", "t", tt.role, m)
			require.NoError(t, s.OpenTab(tab, -1))
			require.NoError(t, s.OpenTab(dock.NewTab("stay", "stay", dock.MinorTab, m), -1))

			op, err := s.Well().StartDraggingTab(tab, grabCenter, dock.Point{X: 500, Y: 500})
			require.NoError(t, err)
			home := op.Cancel().(*host.Window)

			want := dock.Window(root)
			if tt.wantParent == "origin" {
				want = originWin
			}
			require.Same(t, want, home.Parent())
		})
	}
}

func TestPreviewSizeIsCapped(t *testing.T) {
	f := newFixture(t)
	a, b := f.tab("a"), f.tab("b")
	s := f.stack(t, a, b)
	require.NoError(t, f.area.AddChild(s, -1))
	a.SetContentSize(dock.Size{W: 1600, H: 400})

	op, err := s.Well().StartDraggingTab(a, dock.Point{}, dock.Point{X: 5, Y: 5})
	require.NoError(t, err)
	defer op.Cancel()

	require.InDelta(t, 800, op.DecoratorSize().W, 1e-9)
	require.InDelta(t, 200, op.DecoratorSize().H, 1e-9)
}

func TestRelocatedNotification(t *testing.T) {
	f := newFixture(t)
	var relocated []string
	f.m.AddListener(dock.ListenerFuncs{TabRelocated: func(tab *dock.Tab, w dock.Window) {
		relocated = append(relocated, tab.ID()+"@"+w.ID())
	}})
	a, b := f.tab("a"), f.tab("b")
	s := f.stack(t, a, b)
	require.NoError(t, f.area.AddChild(s, -1))

	op, err := s.Well().StartDraggingTab(a, grabCenter, dock.Point{})
	require.NoError(t, err)
	op.Hover(dock.DropTarget{Node: s, Direction: dock.Below})
	op.Drop()

	require.Equal(t, []string{"a@" + f.main.ID()}, relocated)
}

// =============================================================================
// No orphaned tabs across random drag sequences
// =============================================================================

func TestRandomDragSequencesNeverOrphanTabs(t *testing.T) {
	f := newFixture(t)
	rng := rand.New(rand.NewPCG(7, 11))

	var tabs []*dock.Tab
	for i := range 3 {
		s := f.d.NewStack()
		for j := range 3 {
			tab := dock.NewTab("", string(rune('a'+i))+string(rune('0'+j)), dock.MinorTab, f.m)
			require.NoError(t, s.OpenTab(tab, -1))
			tabs = append(tabs, tab)
		}
		require.NoError(t, f.area.AddChild(s, -1))
	}

	size := f.desk.Size()
	for step := range 200 {
		all := f.d.AllTabs()
		tab := all[rng.IntN(len(all))]
		start := dock.Point{X: rng.Float64() * size.W, Y: rng.Float64() * size.H}
		op, err := tab.Well().StartDraggingTab(tab, grabCenter, start)
		require.NoError(t, err, "step %d", step)

		for range 3 {
			p := dock.Point{X: rng.Float64() * size.W, Y: rng.Float64() * size.H}
			op.MoveTo(p)
			geo := host.Arrange(f.desk, f.d.Areas(), 50)
			op.Hover(dock.HitTest(geo, p))
		}
		if rng.IntN(5) == 0 {
			op.Cancel()
		} else {
			op.Drop()
		}
		f.desk.Reap()

		require.Nil(t, f.d.ActiveDrag())
		requireNoOrphans(t, f.d, tabs...)
		for _, a := range f.d.Areas() {
			requireWellFormed(t, a)
		}
	}
}
