package dock_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/Gaurav-Gosain/tuidock/internal/host"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	desk *host.Desktop
	d    *dock.Docking
	m    *dock.TabManager
	main *host.Window
	area *dock.Area
}

func newFixture(t *testing.T, opts ...dock.Option) *fixture {
	t.Helper()
	desk := host.NewDesktop(dock.Size{W: 1600, H: 1000}, nil)
	main := desk.NewMainWindow("main")
	d := dock.New(desk, opts...)
	m := dock.NewTabManager("editor")
	area := d.NewArea(m, dock.WithWindow(main, false), dock.AsPrimary())
	return &fixture{desk: desk, d: d, m: m, main: main, area: area}
}

func (f *fixture) tab(id string) *dock.Tab {
	return dock.NewTab(id, id, dock.MinorTab, f.m)
}

func (f *fixture) stack(t *testing.T, tabs ...*dock.Tab) *dock.TabStack {
	t.Helper()
	s := f.d.NewStack()
	for _, tab := range tabs {
		require.NoError(t, s.OpenTab(tab, -1))
	}
	return s
}

// floating creates a managed floating window with its own area.
func (f *fixture) floating(t *testing.T, m *dock.TabManager, tabs ...*dock.Tab) (*host.Window, *dock.Area, *dock.TabStack) {
	t.Helper()
	win := f.desk.CreateFloatingWindow(dock.WindowSpec{
		Title:    "float",
		Position: dock.Point{X: 100, Y: 100},
		Size:     dock.Size{W: 400, H: 300},
	})
	a := f.d.NewArea(m, dock.WithWindow(win, true))
	s := f.stack(t, tabs...)
	require.NoError(t, a.AddChild(s, -1))
	return win.(*host.Window), a, s
}

// requireWellFormed checks parent links, that no reachable splitter is
// empty, and that every tab points back at its well.
func requireWellFormed(t *testing.T, a *dock.Area) {
	t.Helper()
	var walk func(n dock.Node, parent *dock.Splitter)
	walk = func(n dock.Node, parent *dock.Splitter) {
		require.Same(t, parent, n.Parent(), "node %s has wrong parent", n.ID())
		require.True(t, n.Alive(), "reachable node %s is dead", n.ID())
		require.Same(t, a, n.Area())
		switch v := n.(type) {
		case *dock.Splitter:
			require.NotZero(t, v.Len(), "reachable splitter %s is empty", v.ID())
			for _, c := range v.Children() {
				walk(c, v)
			}
		case *dock.TabStack:
			for _, tab := range v.Well().Tabs() {
				require.Same(t, v.Well(), tab.Well())
			}
			if v.Well().Len() > 0 {
				require.NotNil(t, v.Well().Foreground())
			}
		}
	}
	for _, c := range a.Children() {
		walk(c, &a.Splitter)
	}
}

// requireNoOrphans checks that every tab is owned by exactly one well of a
// live area.
func requireNoOrphans(t *testing.T, d *dock.Docking, tabs ...*dock.Tab) {
	t.Helper()
	seen := make(map[*dock.Tab]int)
	for _, a := range d.Areas() {
		for _, s := range a.Stacks() {
			for _, tab := range s.Well().Tabs() {
				seen[tab]++
			}
		}
	}
	for _, tab := range tabs {
		require.Equal(t, 1, seen[tab], "tab %s owned %d times", tab.ID(), seen[tab])
		require.NotNil(t, tab.Well())
	}
}

// dump renders the tree with ids so two snapshots can be compared.
func dump(n dock.Node) string {
	var b strings.Builder
	var walk func(n dock.Node, depth int)
	walk = func(n dock.Node, depth int) {
		fmt.Fprintf(&b, "%s%s %s %.4f", strings.Repeat("  ", depth), n.Kind(), n.ID(), n.SizeCoefficient())
		switch v := n.(type) {
		case *dock.Area:
			fmt.Fprintf(&b, " %s\n", v.Orientation())
			for _, c := range v.Children() {
				walk(c, depth+1)
			}
		case *dock.Splitter:
			fmt.Fprintf(&b, " %s\n", v.Orientation())
			for _, c := range v.Children() {
				walk(c, depth+1)
			}
		case *dock.TabStack:
			for _, tab := range v.Well().Tabs() {
				fmt.Fprintf(&b, " %s", tab.ID())
			}
			fmt.Fprintf(&b, " history=%v\n", v.History())
		}
	}
	walk(n, 0)
	return b.String()
}
