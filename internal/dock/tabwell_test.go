package dock_test

import (
	"testing"

	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/stretchr/testify/require"
)

type foregroundEvent struct {
	newTab, oldTab string
}

func recordForeground(m *dock.TabManager) *[]foregroundEvent {
	var events []foregroundEvent
	m.AddListener(dock.ListenerFuncs{
		TabForegrounded: func(newTab, oldTab *dock.Tab) {
			e := foregroundEvent{newTab: newTab.ID()}
			if oldTab != nil {
				e.oldTab = oldTab.ID()
			}
			events = append(events, e)
		},
	})
	return &events
}

func TestAddTabForegroundsNewTab(t *testing.T) {
	f := newFixture(t)
	events := recordForeground(f.m)
	s := f.d.NewStack()
	require.NoError(t, f.area.AddChild(s, -1))
	a, b := f.tab("a"), f.tab("b")

	require.NoError(t, s.OpenTab(a, -1))
	require.NoError(t, s.OpenTab(b, 0))

	require.Equal(t, []*dock.Tab{b, a}, s.Well().Tabs())
	require.Same(t, b, s.Well().Foreground())
	require.Equal(t, 0, s.Well().ForegroundIndex())
	require.Equal(t, []foregroundEvent{{newTab: "a"}, {newTab: "b", oldTab: "a"}}, *events)
}

func TestBringTabToFrontNotifiesGlobalManager(t *testing.T) {
	global := dock.NewGlobalTabManager("global")
	f := newFixture(t, dock.WithGlobalTabManager(global))
	local := recordForeground(f.m)
	s := f.stack(t, f.tab("a"), f.tab("b"))
	require.NoError(t, f.area.AddChild(s, -1))
	globalEvents := recordForeground(global)
	*local = nil

	s.Well().BringTabToFront(0)
	s.Well().BringTabToFront(0)
	s.Well().BringTabToFront(7)

	want := []foregroundEvent{{newTab: "a", oldTab: "b"}}
	require.Equal(t, want, *local)
	require.Equal(t, want, *globalEvents)
}

func TestRemoveAndDestroyTabForegroundsLeftNeighbour(t *testing.T) {
	tests := []struct {
		name     string
		remove   int
		front    int
		wantTabs []string
		wantFg   string
	}{
		{"middle in front", 1, 1, []string{"a", "c"}, "a"},
		{"first in front", 0, 0, []string{"b", "c"}, "b"},
		{"background tab", 2, 0, []string{"a", "b"}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			s := f.stack(t, f.tab("a"), f.tab("b"), f.tab("c"))
			require.NoError(t, f.area.AddChild(s, -1))
			w := s.Well()
			w.BringTabToFront(tt.front)

			require.NoError(t, w.RemoveAndDestroyTab(w.TabAt(tt.remove), dock.TabRemovalClosed))

			var ids []string
			for _, tab := range w.Tabs() {
				ids = append(ids, tab.ID())
			}
			require.Equal(t, tt.wantTabs, ids)
			require.Equal(t, tt.wantFg, w.Foreground().ID())
		})
	}
}

func TestRemoveLastTabCleansUpArea(t *testing.T) {
	f := newFixture(t)
	closing := 0
	f.m.AddListener(dock.ListenerFuncs{TabClosing: func(*dock.Tab) { closing++ }})
	keep := f.stack(t, f.tab("keep"))
	s := f.stack(t, f.tab("x"))
	require.NoError(t, f.area.AddChild(keep, -1))
	require.NoError(t, f.area.AddChild(s, -1))

	require.NoError(t, s.Well().RemoveAndDestroyTab(s.Well().TabAt(0), dock.TabRemovalClosed))

	require.Equal(t, 1, closing)
	require.Equal(t, []string{"x"}, s.History())
	require.Equal(t, dock.NoTab, s.Well().ForegroundIndex())
	// The stack survives because it remembers the closed tab.
	require.Equal(t, []dock.Node{keep, s}, f.area.Children())
	require.ErrorIs(t, s.Well().RemoveAndDestroyTab(f.tab("stranger"), dock.TabRemovalClosed), dock.ErrNotInWell)
}

func TestClosingLastTabDestroysManagedWindow(t *testing.T) {
	f := newFixture(t)
	closed := 0
	f.m.AddListener(dock.ListenerFuncs{AreaClosing: func(*dock.Area) { closed++ }})
	x := f.tab("x")
	win, a, s := f.floating(t, f.m, x)

	require.NoError(t, s.Well().RemoveAndDestroyTab(x, dock.TabRemovalClosed))

	require.Equal(t, 1, closed)
	require.True(t, win.Destroyed())
	require.Contains(t, f.desk.Pending(), win)
	require.NotContains(t, f.d.Areas(), a)
	require.True(t, a.CenterTargetOnly())
}

// =============================================================================
// Sizing and drop index
// =============================================================================

func TestTabWidth(t *testing.T) {
	tests := []struct {
		name  string
		role  dock.TabRole
		count int
		width float64
		want  float64
	}{
		{"minor capped", dock.MinorTab, 3, 450, 150},
		{"major capped", dock.MajorTab, 1, 1000, 210},
		{"shared evenly", dock.MinorTab, 4, 410, 110},
		{"single narrow", dock.NomadTab, 1, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			s := f.d.NewStack()
			for i := 0; i < tt.count; i++ {
				require.NoError(t, s.OpenTab(dock.NewTab("", "t", tt.role, f.m), -1))
			}
			s.Well().SetWidth(tt.width)
			require.InDelta(t, tt.want, s.Well().TabWidth(), 1e-9)
		})
	}
}

func TestComputeChildDropIndex(t *testing.T) {
	f := newFixture(t)
	s := f.stack(t, f.tab("a"), f.tab("b"), f.tab("c"))
	s.Well().SetWidth(450)

	tests := []struct {
		offset float64
		want   int
	}{
		{-50, 0},
		{0, 0},
		{139, 0},
		{140, 1},
		{320, 2},
		{1000, 3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, s.Well().ComputeChildDropIndex(tt.offset), "offset %v", tt.offset)
	}
}

// Scenario B: three tabs of width 150 with overlap 10 in a 450 wide well;
// the middle tab dragged to offset 320 lands at index 2.
func TestScenarioBReorderToOffset(t *testing.T) {
	f := newFixture(t)
	f.m.SetPolicy(dock.PolicyFunc(func(*dock.Tab) bool { return false }))
	a, b, c := f.tab("a"), f.tab("b"), f.tab("c")
	s := f.stack(t, a, b, c)
	require.NoError(t, f.area.AddChild(s, -1))
	w := s.Well()
	w.SetWidth(450)
	require.InDelta(t, 150, w.TabWidth(), 1e-9)

	op, err := w.StartDraggingTab(b, dock.Point{X: 0.5, Y: 0.5}, dock.Point{X: 220, Y: 10})
	require.NoError(t, err)
	require.Nil(t, op)
	require.True(t, w.IsReordering())
	require.Same(t, b, w.Reordering())
	require.Equal(t, 2, w.ComputeChildDropIndex(320))

	w.ReorderTo(320)
	w.EndReorder()

	require.Equal(t, []*dock.Tab{a, c, b}, w.Tabs())
	require.Same(t, b, w.Foreground())
	require.False(t, w.IsReordering())
	require.Nil(t, f.d.ActiveDrag())
}

func TestPlaceholderWidensDivisor(t *testing.T) {
	f := newFixture(t)
	s := f.stack(t, f.tab("a"), f.tab("b"))
	w := s.Well()
	w.SetWidth(310)
	require.InDelta(t, 150, w.TabWidth(), 1e-9)

	w.DragEnter(f.tab("guest"), dock.Point{X: 0.5})
	require.Equal(t, 1, w.DragOver(150))
	require.InDelta(t, 110, w.TabWidth(), 1e-9)
	require.Equal(t, 1, w.PlaceholderIndex())

	w.DragLeave()
	require.Equal(t, -1, w.PlaceholderIndex())
}
