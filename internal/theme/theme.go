// Package theme provides the colours used to draw the docking UI.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming will be disabled and the fallback colours
// below are used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if ok := tint.SetTintID(themeName); !ok {
		tint.SetTintID("default")
	}

	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// pick returns the themed colour when a theme is active.
func pick(fallback string, themed func(t *tint.Tint) color.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	return themed(t)
}

// Window border colors
func BorderUnfocused() color.Color {
	return pick("#6c6c80", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

func BorderFocused() color.Color {
	return pick("#AFFFFF", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

// Tab colors
func TabForegroundBg() color.Color {
	return pick("#5c5cff", func(t *tint.Tint) color.Color { return t.Blue })
}

func TabForegroundFg() color.Color {
	return pick("#ffffff", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

func TabBackgroundBg() color.Color {
	return pick("#2a2a3e", func(t *tint.Tint) color.Color { return t.Black })
}

func TabBackgroundFg() color.Color {
	return pick("#a0a0a8", func(t *tint.Tint) color.Color { return t.White })
}

// TabRoleAccent marks major tabs in the well.
func TabRoleAccent() color.Color {
	return pick("#cdcd00", func(t *tint.Tint) color.Color { return t.Yellow })
}

func TabPlaceholder() color.Color {
	return lipgloss.Color("#808090")
}

func WellBg() color.Color {
	return lipgloss.Color("#1a1a2a")
}

// Drop target colors
func CrossFg() color.Color {
	return pick("#00cdcd", func(t *tint.Tint) color.Color { return t.Cyan })
}

func CrossActive() color.Color {
	return pick("#00ff00", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

func PreviewBorder() color.Color {
	return pick("#00ff00", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

func PreviewFg() color.Color {
	return lipgloss.Color("#808090")
}

func DecoratorBorder() color.Color {
	return pick("#cd00cd", func(t *tint.Tint) color.Color { return t.Purple })
}

// Content area colors
func ContentFg() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) color.Color { return t.Fg })
}

func ContentDimmed() color.Color {
	return lipgloss.Color("#808090")
}

// Button colors
func CloseButton() color.Color {
	return pick("#cd0000", func(t *tint.Tint) color.Color { return t.Red })
}

// Log viewer colors
func LogViewerTitle() color.Color {
	return lipgloss.Color("14")
}

func LogViewerError() color.Color {
	return lipgloss.Color("9")
}

func LogViewerWarn() color.Color {
	return lipgloss.Color("11")
}

func LogViewerInfo() color.Color {
	return lipgloss.Color("10")
}

func LogViewerDebug() color.Color {
	return lipgloss.Color("12")
}

func LogViewerBg() color.Color {
	return lipgloss.Color("#1a1a2a")
}

// Notification colors
func NotificationError() color.Color {
	return pick("#cd0000", func(t *tint.Tint) color.Color { return t.Red })
}

func NotificationWarning() color.Color {
	return pick("#cdcd00", func(t *tint.Tint) color.Color { return t.Yellow })
}

func NotificationSuccess() color.Color {
	return pick("#00cd00", func(t *tint.Tint) color.Color { return t.Green })
}

func NotificationInfo() color.Color {
	return pick("#0000ee", func(t *tint.Tint) color.Color { return t.Blue })
}

func NotificationFg() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) color.Color { return t.Fg })
}

// Help bar and overlay colors
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5")
}

func HelpGray() color.Color {
	return lipgloss.Color("8")
}

func HelpBorder() color.Color {
	return lipgloss.Color("14")
}
