package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/tuidock/internal/config"
	"github.com/Gaurav-Gosain/tuidock/internal/theme"
)

const helpWidth = 72

// HelpSections returns the sections shown in the help overlay.
func (m *Model) HelpSections() []config.KeybindingSection {
	return config.GetKeybindings(m.KeybindRegistry)
}

// CycleHelpCategory moves the help overlay delta sections over.
func (m *Model) CycleHelpCategory(delta int) {
	n := len(m.HelpSections())
	if n == 0 {
		return
	}
	m.HelpCategory = ((m.HelpCategory+delta)%n + n) % n
}

// RenderHelpMenu renders the help overlay centered in width x height.
func (m *Model) RenderHelpMenu(width, height int) string {
	sections := m.HelpSections()
	if len(sections) == 0 {
		return ""
	}
	m.HelpCategory = min(max(m.HelpCategory, 0), len(sections)-1)

	center := lipgloss.NewStyle().Width(helpWidth).Align(lipgloss.Center)
	lines := []string{
		center.Render(renderCategoryTabs(sections, m.HelpCategory)),
		"",
		center.Render(renderBindingsTable(sections[m.HelpCategory])),
		"",
		center.Render(renderHelpFooter()),
	}

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, helpBox)
}

func renderCategoryTabs(sections []config.KeybindingSection, active int) string {
	tabs := make([]string, 0, len(sections))
	for i, s := range sections {
		style := lipgloss.NewStyle().Foreground(theme.HelpGray()).Padding(0, 1)
		if i == active {
			style = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Black).
				Background(theme.HelpKeyBadge()).
				Padding(0, 1)
		}
		tabs = append(tabs, style.Render(s.Title))
	}
	return strings.Join(tabs, " ")
}

func renderBindingsTable(section config.KeybindingSection) string {
	rows := make([][]string, 0, len(section.Bindings))
	for _, b := range section.Bindings {
		rows = append(rows, []string{b.Key, b.Description})
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HelpKeyBadge()).
		Padding(0, 1)
	keyStyle := lipgloss.NewStyle().
		Foreground(theme.HelpKeyBadge()).
		Padding(0, 1)
	actionStyle := lipgloss.NewStyle().
		Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.HelpGray())).
		Headers("Keys", "Action").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			default:
				return actionStyle
			}
		})
	return t.Render()
}

func renderHelpFooter() string {
	return lipgloss.NewStyle().
		Foreground(theme.HelpGray()).
		Italic(true).
		Render(strings.Join([]string{"←/→: Sections", "?: Close help"}, "  •  "))
}

// keyLines is the body of the key bindings tool tab.
func (m *Model) keyLines() []string {
	var lines []string
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HelpKeyBadge())
	for _, s := range m.HelpSections() {
		lines = append(lines, "", " "+title.Render(s.Title))
		for _, b := range s.Bindings {
			lines = append(lines, "   "+padRight(b.Key, 26)+" "+b.Description)
		}
	}
	return lines
}
