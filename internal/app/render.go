package app

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
	"github.com/Gaurav-Gosain/tuidock/internal/host"
	"github.com/Gaurav-Gosain/tuidock/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

const (
	closeGlyph    = "×"
	maximizeGlyph = "□"
	restoreGlyph  = "❐"
)

// View renders the program's UI.
func (m *Model) View() tea.View {
	var view tea.View
	view.SetContent(m.Render())
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

// Render draws the whole screen.
func (m *Model) Render() string {
	if m.Geometry == nil {
		m.Relayout()
	}
	r := &renderer{m: m, g: m.Geometry, width: m.Width, height: m.Height}
	r.windows()
	r.cross()
	r.overlays()
	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(lipgloss.NewCompositor(r.layers...))
	return canvas.Render()
}

// renderer collects layers bottom to top; every layer gets its own z so
// equal-z reordering can never swap two of them.
type renderer struct {
	m      *Model
	g      *host.Geometry
	width  int
	height int
	z      int
	layers []*lipgloss.Layer
}

func (r *renderer) add(content string, x, y int, id string) {
	content, x, y = clipWindowContent(content, x, y, r.width, r.height)
	if content == "" {
		return
	}
	r.z++
	l := lipgloss.NewLayer(content).X(x).Y(y).Z(r.z)
	if id != "" {
		l = l.ID(id)
	}
	r.layers = append(r.layers, l)
}

func cells(v float64) int { return int(math.Round(v)) }

func getBorder(style string) lipgloss.Border {
	switch style {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

func (r *renderer) windows() {
	for _, w := range r.m.Desktop.Windows() {
		if !w.IsVisible() {
			continue
		}
		if w.IsDecorator() {
			r.decorator(w)
			continue
		}
		if !w.IsFrameless() {
			r.frame(w)
		}
		for _, a := range r.g.Areas() {
			if r.g.WindowOf(a) == w {
				r.area(a)
			}
		}
	}
}

// frame draws a floating window's border with its title and buttons.
func (r *renderer) frame(w *host.Window) {
	b := w.Bounds()
	width, height := cells(b.W), cells(b.H)
	if width < 2 || height < 2 {
		return
	}
	fg := theme.BorderUnfocused()
	if r.m.FocusedStack != nil && r.m.FocusedStack.Area() != nil && r.m.FocusedStack.Area().Window() == dock.Window(w) {
		fg = theme.BorderFocused()
	}
	border := getBorder(r.m.Config.Appearance.BorderStyle)
	box := lipgloss.NewStyle().
		Border(border).
		BorderForeground(fg).
		Width(width).
		Height(height).
		Render(fitBlock(nil, width-2, height-2))
	lines := strings.Split(box, "\n")
	lines[0] = topBorder(border, width, r.title(w), r.buttons(w), fg)
	r.add(strings.Join(lines, "\n"), cells(b.X), cells(b.Y), w.ID())
}

// title names a window after the foreground tabs of the stacks that carry
// its chrome.
func (r *renderer) title(w *host.Window) string {
	for _, a := range r.g.Areas() {
		if r.g.WindowOf(a) != w {
			continue
		}
		left, right := a.WindowChromeStacks()
		var parts []string
		if left != nil && left.Well().Foreground() != nil {
			parts = append(parts, left.Well().Foreground().Label())
		}
		if right != nil && right != left && right.Well().Foreground() != nil {
			parts = append(parts, right.Well().Foreground().Label())
		}
		if len(parts) > 0 {
			return strings.Join(parts, " · ")
		}
	}
	return w.Title()
}

func (r *renderer) buttons(w *host.Window) string {
	toggle := maximizeGlyph
	if w.IsMaximized() {
		toggle = restoreGlyph
	}
	return toggle + " " + lipgloss.NewStyle().Foreground(theme.CloseButton()).Render(closeGlyph)
}

func topBorder(b lipgloss.Border, width int, title, buttons string, fg color.Color) string {
	style := lipgloss.NewStyle().Foreground(fg)
	inner := width - 2
	right := " " + buttons + " "
	room := inner - ansi.StringWidth(right) - 1
	label := ""
	if room > 2 && title != "" {
		label = " " + ansi.Truncate(title, room-2, "…") + " "
	}
	fill := max(inner-ansi.StringWidth(label)-ansi.StringWidth(right)-1, 0)
	if ansi.StringWidth(right)+1 > inner {
		right, fill = "", max(inner-ansi.StringWidth(label)-1, 0)
	}
	return style.Render(b.TopLeft+b.Top) + label +
		style.Render(strings.Repeat(b.Top, fill)) + right +
		style.Render(b.TopRight)
}

// TitleButtonAt reports which title button of a floating window is under
// p: "maximize", "close" or "".
func TitleButtonAt(w *host.Window, p dock.Point) string {
	if w == nil || w.IsFrameless() {
		return ""
	}
	b := w.Bounds()
	if cells(p.Y) != cells(b.Y) {
		return ""
	}
	right := cells(b.X + b.W)
	switch cells(p.X) {
	case right - 3:
		return "close"
	case right - 5:
		return "maximize"
	}
	return ""
}

func (r *renderer) decorator(w *host.Window) {
	b := w.Bounds()
	width, height := max(cells(b.W), 3), max(cells(b.H), 3)
	label := ""
	if op := r.m.Docking.ActiveDrag(); op != nil {
		label = op.Tab().Label()
	}
	fg := theme.DecoratorBorder()
	lines := []string{label}
	if w.IsPreview() {
		fg = theme.PreviewBorder()
		lines = []string{"", centerText("drop "+label+" here", width-2)}
	}
	box := lipgloss.NewStyle().
		Border(getBorder(r.m.Config.Appearance.BorderStyle)).
		BorderForeground(fg).
		Foreground(theme.PreviewFg()).
		Width(width).
		Height(height).
		Render(fitBlock(lines, width-2, height-2))
	r.add(box, cells(b.X), cells(b.Y), w.ID())
}

func (r *renderer) area(a *dock.Area) {
	ab, ok := r.g.Bounds(a)
	if !ok {
		return
	}
	stacks := a.Stacks()
	if len(stacks) == 0 || a.CenterTargetOnly() {
		lines := []string{"", centerText("Drag a tab here", cells(ab.W))}
		r.add(lipgloss.NewStyle().Foreground(theme.ContentDimmed()).Render(fitBlock(lines, cells(ab.W), cells(ab.H))),
			cells(ab.X), cells(ab.Y), a.ID())
	}
	for _, s := range stacks {
		r.stack(a, s, ab)
	}
}

func (r *renderer) stack(a *dock.Area, s *dock.TabStack, ab dock.Rect) {
	sb, ok := r.g.Bounds(s)
	if !ok {
		return
	}
	wb, _ := r.g.WellBounds(s.Well())
	x, y := cells(sb.X), cells(sb.Y)
	width, height := cells(sb.W), cells(sb.H)
	wellH := cells(wb.H)

	// Tab row background, then the tabs on top of it.
	row := lipgloss.NewStyle().Background(theme.WellBg()).Render(fitBlock(nil, width, wellH))
	r.add(row, x, y, s.ID())
	var front *host.TabRect
	for _, tr := range r.g.TabRects(s.Well()) {
		if tr.Foreground {
			front = &tr
			continue
		}
		r.tab(tr, s == r.m.FocusedStack)
	}
	if front != nil {
		r.tab(*front, s == r.m.FocusedStack)
	}

	// Content, with a divider where the stack does not touch the area's
	// left edge.
	contentH := height - wellH
	if contentH <= 0 {
		return
	}
	style := lipgloss.NewStyle().Foreground(theme.ContentFg())
	cw := width
	if cells(sb.X) > cells(ab.X) {
		style = style.Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(theme.BorderUnfocused())
		cw--
	}
	body := style.Render(fitBlock(r.m.tabContent(s.Well().Foreground(), max(cw, 0), contentH), max(cw, 0), contentH))
	r.add(body, x, y+wellH, "")
}

func (r *renderer) tab(tr host.TabRect, focusedStack bool) {
	width := cells(tr.Rect.W)
	if width <= 0 || tr.Tab == nil {
		return
	}
	label := tr.Tab.Label()
	if tr.Tab.Role() == dock.MajorTab {
		label = "◆ " + label
	}
	style := lipgloss.NewStyle().Background(theme.TabBackgroundBg()).Foreground(theme.TabBackgroundFg())
	var text string
	switch {
	case tr.Placeholder:
		style = lipgloss.NewStyle().Foreground(theme.TabPlaceholder()).Background(theme.WellBg())
		text = "┆" + centerText(label, width-2) + "┆"
	case tr.Foreground:
		style = style.Background(theme.TabForegroundBg()).Foreground(theme.TabForegroundFg())
		if focusedStack {
			style = style.Bold(true)
		}
		text = " " + padRight(ansi.Truncate(label, max(width-4, 0), "…"), max(width-3, 0)) + closeGlyph + " "
	default:
		text = " " + ansi.Truncate(label, max(width-2, 0), "…")
	}
	r.add(style.Render(fitBlock([]string{text}, width, cells(tr.Rect.H))), cells(tr.Rect.X), cells(tr.Rect.Y), tr.Tab.ID())
}

// CloseGlyphAt reports whether p is on the close glyph of a foreground tab.
func CloseGlyphAt(tr host.TabRect, p dock.Point) bool {
	return tr.Foreground && cells(tr.Rect.W) >= 4 &&
		cells(p.X) == cells(tr.Rect.X+tr.Rect.W)-2
}

// cross draws the drop markers of every area a drag is over: an arrow at
// each side of each stack and a chevron at each outer edge.
func (r *renderer) cross() {
	op := r.m.Docking.ActiveDrag()
	if op == nil {
		return
	}
	hovered := op.Hovered()
	glyph := func(p dock.Point, s string, active bool) {
		c := theme.CrossFg()
		if active {
			c = theme.CrossActive()
		}
		r.add(lipgloss.NewStyle().Foreground(c).Bold(active).Render(s), cells(p.X), cells(p.Y), "")
	}
	for _, a := range r.g.Areas() {
		if !a.CrossVisible() {
			continue
		}
		if ab, ok := r.g.Bounds(a); ok {
			for dir, s := range map[dock.Direction]string{dock.LeftOf: "«", dock.RightOf: "»", dock.Above: "⌃", dock.Below: "⌄"} {
				active := hovered.Node == dock.Node(a) && hovered.Direction == dir
				glyph(edgeMid(ab, dir), s, active)
			}
		}
		for _, s := range a.Stacks() {
			sb, ok := r.g.Bounds(s)
			if !ok {
				continue
			}
			wb, _ := r.g.WellBounds(s.Well())
			body := dock.Rect{X: sb.X, Y: sb.Y + wb.H, W: sb.W, H: sb.H - wb.H}
			if body.W < 5 || body.H < 3 {
				continue
			}
			inset := dock.Rect{X: body.X + 2, Y: body.Y + 1, W: body.W - 4, H: body.H - 2}
			for dir, g := range map[dock.Direction]string{dock.LeftOf: "◀", dock.RightOf: "▶", dock.Above: "▲", dock.Below: "▼"} {
				active := hovered.Node == dock.Node(s) && hovered.Direction == dir
				glyph(edgeMid(inset, dir), g, active)
			}
		}
	}
}

func edgeMid(r dock.Rect, dir dock.Direction) dock.Point {
	mx, my := r.X+math.Floor(r.W/2), r.Y+math.Floor(r.H/2)
	switch dir {
	case dock.LeftOf:
		return dock.Point{X: r.X, Y: my}
	case dock.RightOf:
		return dock.Point{X: r.X + r.W - 1, Y: my}
	case dock.Above:
		return dock.Point{X: mx, Y: r.Y}
	default:
		return dock.Point{X: mx, Y: r.Y + r.H - 1}
	}
}

// tabContent stands in for the widget a tab would host.
func (m *Model) tabContent(tab *dock.Tab, width, height int) []string {
	if tab == nil {
		return nil
	}
	switch tab.ID() {
	case logTab:
		return m.logLines(height)
	case keysTab:
		return m.keyLines()
	case welcomeTab:
		return []string{
			"",
			" Welcome to tuidock",
			"",
			" Drag a tab by its label to move it:",
			"   onto a tab row to join that stack,",
			"   onto an arrow to split next to a stack,",
			"   onto a screen edge to dock along it,",
			"   anywhere else to float it.",
			"",
			" This tab is pinned: it can only be reordered.",
			" Press ? for the key bindings.",
		}
	}
	lines := []string{
		"",
		" " + tab.Label(),
		"",
		fmt.Sprintf(" id       %s", tab.ID()),
		fmt.Sprintf(" role     %s", tab.Role()),
		fmt.Sprintf(" manager  %s", tab.Manager().Name()),
		fmt.Sprintf(" size     %dx%d", width, height),
	}
	if s := tab.Stack(); s != nil {
		lines = append(lines, fmt.Sprintf(" stack    %s (%d tabs)", shortID(s.ID()), s.Well().Len()))
		if h := s.History(); len(h) > 0 {
			lines = append(lines, " closed   "+strings.Join(h, ", "))
		}
	}
	return lines
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m *Model) logLines(height int) []string {
	start := max(len(m.LogMessages)-height, 0)
	lines := make([]string, 0, height)
	for _, msg := range m.LogMessages[start:] {
		lines = append(lines, formatLogLine(msg))
	}
	return lines
}

func formatLogLine(msg LogMessage) string {
	var c color.Color
	switch msg.Level {
	case "ERROR":
		c = theme.LogViewerError()
	case "WARN":
		c = theme.LogViewerWarn()
	case "DEBUG":
		c = theme.LogViewerDebug()
	default:
		c = theme.LogViewerInfo()
	}
	level := lipgloss.NewStyle().Foreground(c).Render(fmt.Sprintf("[%s]", msg.Level))
	return fmt.Sprintf("%s %s %s", msg.Time.Format("15:04:05"), level, msg.Message)
}

// fitBlock pads or cuts lines to exactly width by height cells.
func fitBlock(lines []string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = ansi.Truncate(lines[i], width, "…")
		}
		out[i] = padRight(line, width)
	}
	return strings.Join(out, "\n")
}

func padRight(s string, width int) string {
	if pad := width - ansi.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func centerText(s string, width int) string {
	s = ansi.Truncate(s, max(width, 0), "…")
	left := max((width-ansi.StringWidth(s))/2, 0)
	return padRight(strings.Repeat(" ", left)+s, width)
}

// clipWindowContent cuts content to the viewport and returns the new
// origin.
func clipWindowContent(content string, x, y, viewportWidth, viewportHeight int) (string, int, int) {
	lines := strings.Split(content, "\n")
	windowHeight := len(lines)
	windowWidth := 0
	for _, l := range lines {
		windowWidth = max(windowWidth, ansi.StringWidth(l))
	}

	if x+windowWidth <= 0 || x >= viewportWidth || y+windowHeight <= 0 || y >= viewportHeight {
		return "", max(x, 0), max(y, 0)
	}

	clipTop, clipLeft := max(-y, 0), max(-x, 0)
	finalX, finalY := max(x, 0), max(y, 0)

	visible := lines[clipTop:]
	if maxLines := viewportHeight - finalY; maxLines < len(visible) {
		visible = visible[:maxLines]
	}
	if clipLeft == 0 && finalX+windowWidth <= viewportWidth {
		return strings.Join(visible, "\n"), finalX, finalY
	}

	maxWidth := viewportWidth - finalX
	clipped := make([]string, len(visible))
	for i, line := range visible {
		clipped[i] = ansi.Cut(line, clipLeft, clipLeft+maxWidth)
	}
	return strings.Join(clipped, "\n"), finalX, finalY
}
