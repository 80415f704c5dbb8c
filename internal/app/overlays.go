package app

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

const maxVisibleNotifications = 3

func (r *renderer) overlays() {
	m := r.m
	if !m.Config.Appearance.HideHelpBar {
		r.add(m.renderHelpBar(), 0, m.Height-1, "helpbar")
	}
	r.notifications()
	if m.ShowLogs {
		r.add(m.renderLogViewer(), 0, 0, "logs")
	}
	if m.ShowHelp {
		r.add(m.RenderHelpMenu(m.Width, m.Height), 0, 0, "help")
	}
}

// renderHelpBar is the status row: a few key hints and what the pointer is
// doing.
func (m *Model) renderHelpBar() string {
	key := lipgloss.NewStyle().Foreground(theme.HelpKeyBadge()).Bold(true)
	gray := lipgloss.NewStyle().Foreground(theme.HelpGray())
	hint := func(action, label string) string {
		keys := m.KeybindRegistry.GetKeys(action)
		if len(keys) == 0 {
			return ""
		}
		return key.Render(keys[0]) + " " + gray.Render(label)
	}
	var parts []string
	for _, h := range []string{
		hint("toggle_help", "help"),
		hint("new_tab", "new"),
		hint("close_tab", "close"),
		hint("save_layout", "save"),
		hint("quit", "quit"),
	} {
		if h != "" {
			parts = append(parts, h)
		}
	}
	left := " " + strings.Join(parts, "  ")
	right := gray.Render(m.statusText()) + " "
	fill := m.Width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if fill < 1 {
		return fitBlock([]string{left}, m.Width, 1)
	}
	return left + strings.Repeat(" ", fill) + right
}

func (m *Model) statusText() string {
	switch {
	case m.Docking.ActiveDrag() != nil:
		op := m.Docking.ActiveDrag()
		t := op.Hovered()
		switch {
		case t.Well != nil:
			return fmt.Sprintf("dragging %s into a tab row", op.Tab().Label())
		case t.Node != nil:
			return fmt.Sprintf("dragging %s: dock %s", op.Tab().Label(), t.Direction)
		default:
			return fmt.Sprintf("dragging %s: float", op.Tab().Label())
		}
	case m.Reordering != nil:
		return "reordering"
	case m.WindowDrag != nil:
		return "moving window"
	}
	if t := m.FocusedTab(); t != nil {
		return t.Label()
	}
	return ""
}

func (r *renderer) notifications() {
	m := r.m
	notifY := 1
	for i, notif := range m.Notifications {
		if i >= maxVisibleNotifications {
			break
		}
		var fg color.Color
		var icon string
		switch notif.Type {
		case "error":
			fg, icon = theme.NotificationError(), "✕"
		case "warning":
			fg, icon = theme.NotificationWarning(), "⚠"
		case "success":
			fg, icon = theme.NotificationSuccess(), "✓"
		default:
			fg, icon = theme.NotificationInfo(), "ℹ"
		}

		maxWidth := min(max(m.Width-8, 20), 60)
		message := ansi.Truncate(notif.Message, maxWidth-8, "…")
		box := lipgloss.NewStyle().
			Border(getBorder(m.Config.Appearance.BorderStyle)).
			BorderForeground(fg).
			Foreground(fg).
			Padding(0, 1).
			Bold(true).
			Render(fmt.Sprintf(" %s  %s ", icon, message))

		x := max(m.Width-lipgloss.Width(box)-2, 0)
		r.add(box, x, notifY, "notif-"+notif.ID)
		notifY += lipgloss.Height(box) + 1
	}
}

func (m *Model) renderLogViewer() string {
	perPage := m.logsPerPage()
	total := len(m.LogMessages)
	maxScroll := max(total-perPage, 0)
	m.LogScrollOffset = min(max(m.LogScrollOffset, 0), maxScroll)

	gray := lipgloss.NewStyle().Foreground(theme.HelpGray())
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.LogViewerTitle()).Bold(true).Render("System Logs"),
		"",
	}
	end := min(m.LogScrollOffset+perPage, total)
	for _, msg := range m.LogMessages[m.LogScrollOffset:end] {
		lines = append(lines, ansi.Truncate(formatLogLine(msg), 74, "…"))
	}
	if maxScroll > 0 {
		lines = append(lines, "", gray.Render(fmt.Sprintf("Showing %d-%d of %d logs (↑/↓ to scroll)",
			m.LogScrollOffset+1, end, total)))
	}
	lines = append(lines, "", gray.Render("Press esc to close, ↑/↓ or j/k to scroll"))

	box := lipgloss.NewStyle().
		Border(getBorder(m.Config.Appearance.BorderStyle)).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Width(80).
		Background(theme.LogViewerBg()).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, box)
}
