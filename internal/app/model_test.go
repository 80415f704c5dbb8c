package app

import (
	"strings"
	"testing"
	"time"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func tabIDs(s *dock.TabStack) []string {
	var ids []string
	for _, t := range s.Well().Tabs() {
		ids = append(ids, t.ID())
	}
	return ids
}

func newStore(t *testing.T) *layout.Store {
	t.Helper()
	store, err := layout.NewStore(t.TempDir(), log.New(&strings.Builder{}))
	require.NoError(t, err)
	return store
}

func TestNewBuildsDefaultLayout(t *testing.T) {
	m := New(Options{Width: 100, Height: 30})

	stacks := m.MainArea.Stacks()
	require.Len(t, stacks, 2)
	require.Equal(t, []string{"welcome", "doc-1", "doc-2"}, tabIDs(stacks[0]))
	require.Equal(t, []string{"log", "keys"}, tabIDs(stacks[1]))
	require.Same(t, stacks[0], m.FocusedStack)
	require.Equal(t, "welcome", m.FocusedTab().ID())
	require.True(t, m.MainArea.IsPrimary())
}

func TestNewDocumentNumbersIncrease(t *testing.T) {
	m := New(Options{Width: 100, Height: 30})
	m.OpenNewTab()
	m.OpenNewTab()
	require.Equal(t, "doc-4", m.FocusedTab().ID())
	require.Equal(t, "Document 4", m.FocusedTab().Label())
}

func TestCycleTabWraps(t *testing.T) {
	m := New(Options{Width: 100, Height: 30})
	m.CycleTab(-1)
	require.Equal(t, "doc-2", m.FocusedTab().ID())
	m.CycleTab(1)
	require.Equal(t, "welcome", m.FocusedTab().ID())
}

func TestSplitFocusedBelow(t *testing.T) {
	m := New(Options{Width: 100, Height: 30})
	m.CycleTab(1)
	m.SplitFocused(dock.Below)

	tab := m.FocusedTab()
	require.Equal(t, "doc-1", tab.ID())
	require.Len(t, m.MainArea.Stacks(), 3)

	// The new stack shares a vertical splitter with the old one.
	parent := tab.Stack().Parent()
	require.NotNil(t, parent)
	require.Equal(t, dock.Vertical, parent.Orientation())
}

func TestCloseTabRemembersIt(t *testing.T) {
	m := New(Options{Width: 100, Height: 30})
	left := m.FocusedStack
	doc := m.Docking.FindTab("doc-1")
	require.NotNil(t, doc)

	m.CloseTab(doc)

	require.Equal(t, []string{"welcome", "doc-2"}, tabIDs(left))
	n := left.GatherPersistentLayout()
	require.Equal(t, layout.Tab{ID: "doc-1", State: layout.TabClosed}, n.Tabs[len(n.Tabs)-1])
}

func TestSaveAndRestoreLayout(t *testing.T) {
	store := newStore(t)

	m := New(Options{Width: 100, Height: 30, Layouts: store})
	m.CycleTab(1)
	m.SplitFocused(dock.RightOf)
	require.NoError(t, m.SaveLayout())
	saved := m.GatherLayout()

	// A fresh model picks the saved layout up on start.
	m2 := New(Options{Width: 100, Height: 30, Layouts: store})
	require.Len(t, m2.MainArea.Stacks(), 3)
	restored := m2.GatherLayout()
	require.Len(t, restored.Areas, len(saved.Areas))
	require.True(t, layout.Equivalent(saved.Areas[0], restored.Areas[0]))

	// New documents continue after the restored ones.
	m2.OpenNewTab()
	require.Equal(t, "doc-3", m2.FocusedTab().ID())

	// Restoring in place throws the extra tab away again.
	require.NoError(t, m2.RestoreLayout())
	require.Nil(t, m2.Docking.FindTab("doc-3"))
	require.Len(t, m2.MainArea.Stacks(), 3)
}

func TestRestoreWithoutSavedLayoutUsesDefault(t *testing.T) {
	m := New(Options{Width: 100, Height: 30, Layouts: newStore(t)})
	m.OpenNewTab()

	require.NoError(t, m.RestoreLayout())
	require.Len(t, m.MainArea.Stacks(), 2)
	require.Nil(t, m.Docking.FindTab("doc-3"))
}

func TestLayoutPersistenceDisabled(t *testing.T) {
	m := New(Options{Width: 100, Height: 30})
	require.ErrorIs(t, m.SaveLayout(), errNoLayoutStore)
	require.ErrorIs(t, m.RestoreLayout(), errNoLayoutStore)
}

func TestCleanupAutosaves(t *testing.T) {
	store := newStore(t)
	m := New(Options{Width: 100, Height: 30, Layouts: store})
	m.OpenNewTab()
	m.Cleanup()

	l, ok, err := store.Load(m.Config.Layout.Name)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, l.Areas[0].TabIDs(), "doc-3")
}

func TestNormalizeLevel(t *testing.T) {
	tests := map[string]string{
		"DEBU":  "DEBUG",
		"INFO":  "INFO",
		"WARN":  "WARN",
		"ERRO":  "ERROR",
		"FATA":  "ERROR",
		"other": "INFO",
	}
	for in, want := range tests {
		require.Equal(t, want, normalizeLevel(in), in)
	}
}

func TestLoggerFeedsLogViewer(t *testing.T) {
	m := New(Options{Width: 100, Height: 30})
	before := len(m.LogMessages)

	m.Logger.Warn("disk full", "free", 0)
	m.Logger.Debug("hidden")

	require.Len(t, m.LogMessages, before+1)
	last := m.LogMessages[len(m.LogMessages)-1]
	require.Equal(t, "WARN", last.Level)
	require.Contains(t, last.Message, "disk full")
	require.Contains(t, last.Message, "free=0")
}

func TestNotificationsExpire(t *testing.T) {
	m := New(Options{Width: 100, Height: 30})
	m.ShowNotification("gone", "info", 0)
	m.ShowNotification("stays", "success", time.Hour)

	m.CleanupNotifications()

	require.Len(t, m.Notifications, 1)
	require.Equal(t, "stays", m.Notifications[0].Message)
}

func TestRenderDrawsTabsAndHelpBar(t *testing.T) {
	m := New(Options{Width: 100, Height: 30})
	out := m.Render()

	lines := strings.Split(out, "\n")
	require.LessOrEqual(t, len(lines), 30)
	plain := ansi.Strip(out)
	require.Contains(t, plain, "Welcome")
	require.Contains(t, plain, "Document 1")
	require.Contains(t, plain, "Log")
	for _, line := range lines {
		require.LessOrEqual(t, ansi.StringWidth(line), 100)
	}
}

func TestRenderHelpOverlay(t *testing.T) {
	m := New(Options{Width: 100, Height: 30})
	m.ShowHelp = true
	plain := ansi.Strip(m.Render())
	require.Contains(t, plain, "TABS")
	require.Contains(t, plain, "New tab")
}
