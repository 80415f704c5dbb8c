// Package dock implements the docking layout engine: a tree of areas,
// splitters and tab stacks, the drag-and-drop protocol that moves tabs
// between them, drop-zone hit testing and persistent-layout gathering.
//
// Everything in this package is single-threaded. Callers drive it from the
// goroutine that dispatches input events.
package dock

import (
	"math"

	"github.com/Gaurav-Gosain/tuidock/internal/layout"
)

// NodeKind identifies the concrete type of a Node.
type NodeKind int

const (
	// KindArea is the root of one docking hierarchy.
	KindArea NodeKind = iota
	// KindSplitter arranges children along one axis.
	KindSplitter
	// KindStack is a leaf holding one tab well.
	KindStack
)

func (k NodeKind) String() string {
	switch k {
	case KindArea:
		return "area"
	case KindSplitter:
		return "splitter"
	case KindStack:
		return "stack"
	default:
		return "unknown"
	}
}

// Orientation is the layout axis of a splitter.
type Orientation int

const (
	// Horizontal lays children out left to right.
	Horizontal Orientation = iota
	// Vertical lays children out top to bottom.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

func (o Orientation) persisted() layout.Orientation {
	if o == Vertical {
		return layout.Vertical
	}
	return layout.Horizontal
}

func orientationFrom(o layout.Orientation) Orientation {
	if o == layout.Vertical {
		return Vertical
	}
	return Horizontal
}

// Direction is where a node is placed relative to another.
type Direction int

const (
	LeftOf Direction = iota
	Above
	RightOf
	Below
	Center
)

func (d Direction) String() string {
	switch d {
	case LeftOf:
		return "left"
	case Above:
		return "above"
	case RightOf:
		return "right"
	case Below:
		return "below"
	case Center:
		return "center"
	default:
		return "unknown"
	}
}

// Orientation returns the splitter axis a placement in d requires.
// Center has no axis and reports Horizontal.
func (d Direction) Orientation() Orientation {
	if d == Above || d == Below {
		return Vertical
	}
	return Horizontal
}

// before reports whether d inserts ahead of the reference node.
func (d Direction) before() bool {
	return d == LeftOf || d == Above
}

// CleanUpResult reports what a subtree still carries after cleanup. The
// values are ordered so that the most responsible result is the maximum.
type CleanUpResult int

const (
	NoTabsUnderNode CleanUpResult = iota
	HistoryTabsUnderNode
	VisibleTabsUnderNode
)

func (r CleanUpResult) String() string {
	switch r {
	case VisibleTabsUnderNode:
		return "visible"
	case HistoryTabsUnderNode:
		return "history"
	default:
		return "none"
	}
}

// RemovalMethod says why a tab left its well.
type RemovalMethod int

const (
	// TabRemovalClosed means the user closed the tab.
	TabRemovalClosed RemovalMethod = iota
	// TabRemovalDraggedOut means the tab is travelling with a drag.
	TabRemovalDraggedOut
)

func (m RemovalMethod) String() string {
	if m == TabRemovalDraggedOut {
		return "dragged-out"
	}
	return "closed"
}

// TabRole governs docking eligibility and maximum tab size.
type TabRole int

const (
	MajorTab TabRole = iota
	MinorTab
	NomadTab
)

func (r TabRole) String() string {
	switch r {
	case MajorTab:
		return "major"
	case NomadTab:
		return "nomad"
	default:
		return "minor"
	}
}

// DragState is the phase of a DragOperation.
type DragState int

const (
	DragDragging DragState = iota
	DragHovering
	DragDropped
	DragCancelled
)

func (s DragState) String() string {
	switch s {
	case DragDragging:
		return "dragging"
	case DragHovering:
		return "hovering"
	case DragDropped:
		return "dropped"
	case DragCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Point is a position in host units.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is an extent in host units.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle in host units.
type Rect struct {
	X, Y, W, H float64
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the extent of r.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return !r.Empty() && p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
