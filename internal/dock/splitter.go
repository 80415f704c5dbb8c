package dock

import (
	"fmt"
	"slices"

	"github.com/Gaurav-Gosain/tuidock/internal/layout"
)

// Splitter owns an ordered list of children laid out along one axis. Each
// child takes a share of the axis proportional to its size coefficient.
type Splitter struct {
	nodeBase
	orientation Orientation
	children    []Node

	// area is set when this splitter is the embedded part of an Area.
	area *Area
}

// NewSplitter returns a detached splitter.
func (d *Docking) NewSplitter(o Orientation) *Splitter {
	return &Splitter{nodeBase: newBase(d), orientation: o}
}

func (s *Splitter) Kind() NodeKind { return KindSplitter }

// Area returns the root area of the tree s belongs to.
func (s *Splitter) Area() *Area { return areaOf(s.node()) }

// Orientation returns the layout axis.
func (s *Splitter) Orientation() Orientation { return s.orientation }

// SetOrientation changes the layout axis. Children are not reordered.
func (s *Splitter) SetOrientation(o Orientation) { s.orientation = o }

// Children returns a copy of the child list.
func (s *Splitter) Children() []Node { return slices.Clone(s.children) }

// Len returns the number of children.
func (s *Splitter) Len() int { return len(s.children) }

// ChildAt returns the child at index i, or nil when out of range.
func (s *Splitter) ChildAt(i int) Node {
	if i < 0 || i >= len(s.children) {
		return nil
	}
	return s.children[i]
}

// IndexOf returns the index of n among the children, or -1.
func (s *Splitter) IndexOf(n Node) int {
	for i, c := range s.children {
		if c == n {
			return i
		}
	}
	return -1
}

// node returns the value other nodes see as this splitter: the owning
// Area when s is embedded in one.
func (s *Splitter) node() Node {
	if s.area != nil {
		return s.area
	}
	return s
}

func (s *Splitter) checkAdoptable(n Node) error {
	if isNil(n) {
		return ErrNilNode
	}
	switch v := n.(type) {
	case *Area:
		return ErrAreaChild
	case *Splitter:
		if v.area != nil {
			return ErrAreaChild
		}
	}
	for p := s.node(); p != nil; {
		if p == n {
			return ErrCycle
		}
		parent := p.Parent()
		if parent == nil {
			break
		}
		p = parent.node()
	}
	return nil
}

// AddChild inserts n at index at, reparenting it. A negative or
// out-of-range index appends.
func (s *Splitter) AddChild(n Node, at int) error {
	if err := s.checkAdoptable(n); err != nil {
		return err
	}
	detach(n)
	s.insert(n, at)
	return nil
}

func (s *Splitter) insert(n Node, at int) {
	if at < 0 || at > len(s.children) {
		at = len(s.children)
	}
	s.children = slices.Insert(s.children, at, n)
	b := n.base()
	b.parent = s
	b.dead = false
}

// RemoveChild removes n without running cleanup.
func (s *Splitter) RemoveChild(n Node) error {
	i := s.IndexOf(n)
	if i < 0 {
		return ErrNotChild
	}
	_, err := s.RemoveChildAt(i)
	return err
}

// RemoveChildAt removes and returns the child at index i without running
// cleanup.
func (s *Splitter) RemoveChildAt(i int) (Node, error) {
	if i < 0 || i >= len(s.children) {
		return nil, fmt.Errorf("index %d of %d: %w", i, len(s.children), ErrNotChild)
	}
	n := s.children[i]
	s.children = slices.Delete(s.children, i, i+1)
	n.base().parent = nil
	return n, nil
}

func (s *Splitter) removeChild(n Node) {
	if i := s.IndexOf(n); i >= 0 {
		s.children = slices.Delete(s.children, i, i+1)
		n.base().parent = nil
	}
}

// ReplaceChild puts replacement where old was. The replacement takes over
// old's size coefficient.
func (s *Splitter) ReplaceChild(old, replacement Node) error {
	if s.IndexOf(old) < 0 {
		return ErrNotChild
	}
	if old == replacement {
		return nil
	}
	if err := s.checkAdoptable(replacement); err != nil {
		return err
	}
	detach(replacement)
	i := s.IndexOf(old)
	replacement.SetSizeCoefficient(old.SizeCoefficient())
	s.children[i] = replacement
	replacement.base().parent = s
	replacement.base().dead = false
	old.base().parent = nil
	return nil
}

// PlaceNode inserts n next to relativeTo: before it for LeftOf and Above,
// after it for RightOf and Below. The two share relativeTo's former size.
//
// When dir runs across the splitter's axis, a single-child splitter simply
// turns; otherwise relativeTo is wrapped in a new perpendicular splitter and
// n is placed inside that.
func (s *Splitter) PlaceNode(n Node, dir Direction, relativeTo Node) error {
	if dir == Center {
		return ErrCenterPlacement
	}
	if s.IndexOf(relativeTo) < 0 {
		return ErrNotChild
	}
	if n == relativeTo {
		return ErrCycle
	}
	if err := s.checkAdoptable(n); err != nil {
		return err
	}

	want := dir.Orientation()
	if want != s.orientation {
		if len(s.children) == 1 {
			s.orientation = want
		} else {
			wrap := s.docking.NewSplitter(want)
			if err := s.ReplaceChild(relativeTo, wrap); err != nil {
				return err
			}
			relativeTo.SetSizeCoefficient(1)
			wrap.insert(relativeTo, 0)
			return wrap.PlaceNode(n, dir, relativeTo)
		}
	}

	detach(n)
	i := s.IndexOf(relativeTo)
	share := relativeTo.SizeCoefficient() / 2
	relativeTo.SetSizeCoefficient(share)
	n.SetSizeCoefficient(share)
	if dir.before() {
		s.insert(n, i)
	} else {
		s.insert(n, i+1)
	}
	return nil
}

// DockFromOutside docks n at one edge of the whole splitter. A request
// across the current axis with more than one child first wraps every child
// into a nested splitter with the old axis, so their proportions survive,
// then turns this splitter.
func (s *Splitter) DockFromOutside(n Node, dir Direction) error {
	if dir == Center {
		return ErrCenterPlacement
	}
	if err := s.checkAdoptable(n); err != nil {
		return err
	}
	detach(n)

	want := dir.Orientation()
	if want != s.orientation {
		if len(s.children) > 1 {
			nested := s.docking.NewSplitter(s.orientation)
			for _, c := range s.children {
				nested.children = append(nested.children, c)
				c.base().parent = nested
			}
			s.children = nil
			s.insert(nested, -1)
		}
		s.orientation = want
	}
	if dir.before() {
		s.insert(n, 0)
	} else {
		s.insert(n, -1)
	}
	return nil
}

// CleanUpNodes removes every child subtree that carries no tabs and returns
// the most responsible result across the remaining children. Afterwards the
// tree is compacted: single-child splitters are replaced by their child,
// splitters with the same axis as their parent are spliced into it, and a
// lone splitter child is hoisted into this one.
func (s *Splitter) CleanUpNodes() CleanUpResult {
	result := NoTabsUnderNode
	for i := len(s.children) - 1; i >= 0; i-- {
		c := s.children[i]
		r := c.CleanUpNodes()
		if r == NoTabsUnderNode {
			s.children = slices.Delete(s.children, i, i+1)
			c.base().parent = nil
			markDead(c)
			continue
		}
		result = max(result, r)
	}
	s.compact()
	return result
}

func (s *Splitter) compact() {
	for i := 0; i < len(s.children); {
		child, ok := s.children[i].(*Splitter)
		if !ok {
			i++
			continue
		}
		switch {
		case len(child.children) == 1:
			only := child.children[0]
			only.SetSizeCoefficient(child.coefficient)
			child.children = nil
			child.parent = nil
			child.dead = true
			s.children[i] = only
			only.base().parent = s
		case child.orientation == s.orientation:
			var total float64
			for _, g := range child.children {
				total += g.SizeCoefficient()
			}
			grand := child.children
			for _, g := range grand {
				if total > 0 {
					g.SetSizeCoefficient(g.SizeCoefficient() * child.coefficient / total)
				}
				g.base().parent = s
			}
			child.children = nil
			child.parent = nil
			child.dead = true
			s.children = slices.Replace(s.children, i, i+1, grand...)
		default:
			i++
		}
	}

	if len(s.children) != 1 {
		return
	}
	only, ok := s.children[0].(*Splitter)
	if !ok {
		return
	}
	s.orientation = only.orientation
	s.children = only.children
	for _, g := range s.children {
		g.base().parent = s
	}
	only.children = nil
	only.parent = nil
	only.dead = true
}

// GatherPersistentLayout returns nil when no child has anything to save.
func (s *Splitter) GatherPersistentLayout() *layout.Node {
	children := s.gatherChildren()
	if len(children) == 0 {
		return nil
	}
	return &layout.Node{
		Kind:            layout.KindSplitter,
		Orientation:     s.orientation.persisted(),
		SizeCoefficient: s.coefficient,
		Children:        children,
	}
}

func (s *Splitter) gatherChildren() []*layout.Node {
	var out []*layout.Node
	for _, c := range s.children {
		if n := c.GatherPersistentLayout(); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// OnUserAttemptingDock accepts Center only while empty, creating a stack
// for the tab. Other directions dock a new stack at the matching edge.
func (s *Splitter) OnUserAttemptingDock(dir Direction, op *DragOperation) bool {
	if op == nil || op.tab == nil {
		return false
	}
	stack := s.docking.NewStack()
	if dir == Center {
		if len(s.children) > 0 {
			return false
		}
		s.insert(stack, -1)
	} else if err := s.DockFromOutside(stack, dir); err != nil {
		return false
	}
	if err := stack.OpenTab(op.tab, -1); err != nil {
		return false
	}
	return true
}

// Stacks returns every stack under s in depth-first order.
func (s *Splitter) Stacks() []*TabStack {
	var out []*TabStack
	for _, c := range s.children {
		switch v := c.(type) {
		case *TabStack:
			out = append(out, v)
		case *Splitter:
			out = append(out, v.Stacks()...)
		}
	}
	return out
}
