package input

import (
	"math"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/tuidock/internal/app"
	"github.com/Gaurav-Gosain/tuidock/internal/dock"
)

func pointOf(mouse tea.Mouse) dock.Point {
	return dock.Point{X: float64(mouse.X), Y: float64(mouse.Y)}
}

func handleMouseClick(msg tea.MouseClickMsg, m *app.Model) (*app.Model, tea.Cmd) {
	mouse := msg.Mouse()
	p := pointOf(mouse)
	m.Desktop.SetPointer(p)

	// Overlays swallow the pointer.
	if m.ShowHelp || m.ShowLogs || mouse.Button != tea.MouseLeft {
		return m, nil
	}
	// A press while something is already in flight is a stray second button.
	if m.Docking.ActiveDrag() != nil || m.Reordering != nil || m.WindowDrag != nil {
		return m, nil
	}

	if win := m.Desktop.Pick(p); win != nil && !win.IsFrameless() {
		m.Desktop.Raise(win)
		switch app.TitleButtonAt(win, p) {
		case "close":
			m.CloseWindow(win)
			return m, nil
		case "maximize":
			win.ToggleMaximize()
			m.Relayout()
			return m, nil
		}
		if !win.Content().Contains(p) {
			if p.Y == math.Round(win.Bounds().Y) {
				m.WindowDrag = &app.WindowDrag{Window: win, Offset: p.Sub(win.Bounds().Origin())}
			}
			m.Relayout()
			return m, nil
		}
		m.Relayout()
	}

	if tr, ok := m.Geometry.TabAt(p); ok && tr.Tab != nil {
		m.FocusStack(tr.Tab.Stack())
		if app.CloseGlyphAt(tr, p) {
			m.CloseTab(tr.Tab)
			return m, nil
		}
		if well := tr.Tab.Well(); well != nil {
			well.BringTabToFrontTab(tr.Tab)
		}
		m.Press = &app.Press{
			Tab:   tr.Tab,
			Start: p,
			Grab: dock.Point{
				X: (p.X - tr.Rect.X) / math.Max(tr.Rect.W, 1),
				Y: (p.Y - tr.Rect.Y) / math.Max(tr.Rect.H, 1),
			},
		}
		m.Relayout()
		return m, nil
	}

	if s := m.Geometry.StackAt(p); s != nil {
		m.FocusStack(s)
	}
	return m, nil
}

func handleMouseMotion(msg tea.MouseMotionMsg, m *app.Model) (*app.Model, tea.Cmd) {
	p := pointOf(msg.Mouse())
	m.Desktop.SetPointer(p)

	switch {
	case m.WindowDrag != nil:
		origin := p.Sub(m.WindowDrag.Offset)
		// Keep the title row reachable.
		origin = dock.Point{X: math.Round(origin.X), Y: max(math.Round(origin.Y), 0)}
		m.WindowDrag.Window.MoveTo(origin)
		m.Relayout()

	case m.Docking.ActiveDrag() != nil:
		hoverAt(m, m.Docking.ActiveDrag(), p)

	case m.Reordering != nil:
		if wb, ok := m.Geometry.WellBounds(m.Reordering); ok {
			m.Reordering.ReorderTo(p.X - wb.X)
		}
		m.Relayout()

	case m.Press != nil:
		if !pastThreshold(m.Press.Start, p, float64(m.Config.Docking.DragThreshold)) {
			return m, nil
		}
		startDrag(m, p)
	}
	return m, nil
}

func pastThreshold(start, p dock.Point, threshold float64) bool {
	d := p.Sub(start)
	return math.Max(math.Abs(d.X), math.Abs(d.Y)) >= threshold
}

// startDrag turns the pending press into a drag, or into a reorder when the
// tab may not leave its well.
func startDrag(m *app.Model, p dock.Point) {
	press := m.Press
	m.Press = nil
	well := press.Tab.Well()
	if well == nil {
		return
	}
	op, err := well.StartDraggingTab(press.Tab, press.Grab, p)
	if err != nil {
		m.LogWarn("drag %s: %v", press.Tab.ID(), err)
		return
	}
	if op == nil {
		m.Reordering = well
		if wb, ok := m.Geometry.WellBounds(well); ok {
			well.ReorderTo(p.X - wb.X)
		}
		m.Relayout()
		return
	}
	m.Relayout()
	hoverAt(m, op, p)
}

func hoverAt(m *app.Model, op *dock.DragOperation, p dock.Point) {
	op.MoveTo(p)
	op.Hover(dock.HitTest(m.Geometry, p))
	m.Relayout()
}

func handleMouseRelease(msg tea.MouseReleaseMsg, m *app.Model) (*app.Model, tea.Cmd) {
	p := pointOf(msg.Mouse())
	m.Desktop.SetPointer(p)
	m.Press = nil

	switch {
	case m.WindowDrag != nil:
		m.WindowDrag = nil

	case m.Docking.ActiveDrag() != nil:
		op := m.Docking.ActiveDrag()
		tab := op.Tab()
		if home := op.Drop(); home != nil {
			m.Logger.Debug("tab home", "tab", tab.ID(), "window", home.ID())
		}
		m.FocusStack(tab.Stack())

	case m.Reordering != nil:
		m.Reordering.EndReorder()
		m.Reordering = nil
	}
	m.Relayout()
	return m, nil
}

func handleMouseWheel(msg tea.MouseWheelMsg, m *app.Model) (*app.Model, tea.Cmd) {
	mouse := msg.Mouse()
	delta := 0
	switch mouse.Button {
	case tea.MouseWheelUp:
		delta = -1
	case tea.MouseWheelDown:
		delta = 1
	default:
		return m, nil
	}

	if m.ShowLogs {
		m.ScrollLogs(delta)
		return m, nil
	}
	if m.ShowHelp || m.Docking.ActiveDrag() != nil {
		return m, nil
	}
	// Scrolling over a tab row flips through that stack's tabs.
	if s := m.Geometry.StackAt(pointOf(mouse)); s != nil {
		if wb, ok := m.Geometry.WellBounds(s.Well()); ok && wb.Contains(pointOf(mouse)) {
			m.FocusStack(s)
			m.CycleTab(delta)
		}
	}
	return m, nil
}
