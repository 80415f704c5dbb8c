package dock

import (
	"errors"
	"fmt"

	"github.com/Gaurav-Gosain/tuidock/internal/layout"
)

// ErrBadLayout is returned when a persisted node cannot be restored.
var ErrBadLayout = errors.New("dock: layout node cannot be restored here")

// RestoreArea rebuilds an area from a persisted node. Tabs are recreated
// through manager's spawners; ids nobody can spawn, and ids of tabs that are
// already open somewhere, are kept as closed-tab history so a later save
// does not lose them.
//
// The window options are the caller's business: the persisted position and
// size are applied to a window passed with WithWindow.
func (d *Docking) RestoreArea(n *layout.Node, manager *TabManager, opts ...AreaOption) (*Area, error) {
	if n == nil || n.Kind != layout.KindArea {
		return nil, fmt.Errorf("restore area: %w", ErrBadLayout)
	}
	if n.Primary {
		opts = append(opts, AsPrimary())
	}
	opts = append(opts, WithOrientation(orientationFrom(n.Orientation)))
	a := d.NewArea(manager, opts...)
	a.SetSizeCoefficient(n.SizeCoefficient)

	if err := d.restoreChildren(&a.Splitter, n.Children, manager); err != nil {
		return a, err
	}
	if a.window != nil {
		if n.WindowPosition != nil && n.WindowSize != nil {
			a.window.Reshape(Rect{X: n.WindowPosition.X, Y: n.WindowPosition.Y, W: n.WindowSize.W, H: n.WindowSize.H})
		}
	}
	a.centerTargetOnly = !a.hasVisibleTabs()
	d.log.Debug("area restored", "area", a.id, "stacks", len(a.Stacks()))
	return a, nil
}

func (d *Docking) restoreChildren(s *Splitter, children []*layout.Node, manager *TabManager) error {
	for i, c := range children {
		n, err := d.restoreNode(c, manager)
		if err != nil {
			return fmt.Errorf("child %d: %w", i, err)
		}
		s.insert(n, -1)
	}
	return nil
}

func (d *Docking) restoreNode(n *layout.Node, manager *TabManager) (Node, error) {
	if n == nil {
		return nil, ErrBadLayout
	}
	switch n.Kind {
	case layout.KindSplitter:
		s := d.NewSplitter(orientationFrom(n.Orientation))
		s.SetSizeCoefficient(n.SizeCoefficient)
		if err := d.restoreChildren(s, n.Children, manager); err != nil {
			return nil, err
		}
		return s, nil
	case layout.KindStack:
		st := d.NewStack()
		st.SetSizeCoefficient(n.SizeCoefficient)
		var front *Tab
		for _, pt := range n.Tabs {
			if pt.State != layout.TabOpened {
				st.remember(pt.ID)
				continue
			}
			tab := d.spawnTab(pt.ID, manager)
			if tab == nil {
				d.log.Warn("no spawner for tab, keeping it closed", "tab", pt.ID)
				st.remember(pt.ID)
				continue
			}
			if err := st.OpenTab(tab, -1); err != nil {
				return nil, err
			}
			if pt.ID == n.Foreground {
				front = tab
			}
		}
		if front != nil {
			st.well.BringTabToFrontTab(front)
		}
		return st, nil
	default:
		return nil, fmt.Errorf("%s node: %w", n.Kind, ErrBadLayout)
	}
}

func (d *Docking) spawnTab(id string, manager *TabManager) *Tab {
	if d.FindTab(id) != nil {
		return nil
	}
	if t := manager.spawn(id); t != nil {
		return t
	}
	if d.global != manager {
		return d.global.spawn(id)
	}
	return nil
}
