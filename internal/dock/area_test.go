package dock_test

import (
	"testing"

	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/stretchr/testify/require"
)

func TestWindowChromeStacks(t *testing.T) {
	f := newFixture(t)
	left, right := f.area.WindowChromeStacks()
	require.Nil(t, left)
	require.Nil(t, right)

	s1 := f.stack(t, f.tab("a"))
	split := f.d.NewSplitter(dock.Vertical)
	s2, s3 := f.stack(t, f.tab("b")), f.stack(t, f.tab("c"))
	require.NoError(t, split.AddChild(s2, -1))
	require.NoError(t, split.AddChild(s3, -1))
	require.NoError(t, f.area.AddChild(s1, -1))
	require.NoError(t, f.area.AddChild(split, -1))

	left, right = f.area.WindowChromeStacks()
	require.Same(t, s1, left)
	require.Same(t, s2, right)

	f.area.SetOrientation(dock.Vertical)
	left, right = f.area.WindowChromeStacks()
	require.Same(t, s1, left)
	require.Same(t, s1, right)
}

func TestSecondAreaCannotManageSameWindow(t *testing.T) {
	f := newFixture(t)
	win, first, _ := f.floating(t, f.m, f.tab("a"))
	second := f.d.NewArea(f.m, dock.WithWindow(win, true))

	require.True(t, first.ManagesWindow())
	require.False(t, second.ManagesWindow())
}

func TestAreaCreatedNotification(t *testing.T) {
	global := dock.NewGlobalTabManager("global")
	f := newFixture(t, dock.WithGlobalTabManager(global))
	var created []*dock.Area
	record := dock.ListenerFuncs{AreaCreated: func(a *dock.Area) { created = append(created, a) }}
	f.m.AddListener(record)
	global.AddListener(record)

	a := f.d.NewArea(f.m)

	require.Equal(t, []*dock.Area{a, a}, created)
}

func TestDockFromOutsideEdge(t *testing.T) {
	f := newFixture(t)
	a, b := f.tab("a"), f.tab("b")
	s := f.stack(t, a, b)
	require.NoError(t, f.area.AddChild(s, -1))

	op, err := s.Well().StartDraggingTab(b, grabCenter, dock.Point{})
	require.NoError(t, err)
	require.False(t, f.area.DockTabFromOutside(dock.Center, op))
	op.Hover(dock.DropTarget{Node: f.area, Direction: dock.Above})
	home := op.Drop()

	require.Same(t, f.main, home)
	require.Equal(t, dock.Vertical, f.area.Orientation())
	require.Equal(t, 2, f.area.Len())
	require.Same(t, b.Stack(), f.area.ChildAt(0))
	require.Same(t, s, f.area.ChildAt(1))
	require.False(t, f.area.CrossVisible())
	requireWellFormed(t, f.area)
}
