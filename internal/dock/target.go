package dock

import "math"

const (
	zoneFraction = 0.3
	zoneMin      = 5
	zoneMax      = 150

	outsideFraction = 0.05
	outsideMin      = 1
	outsideMax      = 50
)

// ZoneSize returns how far from an edge, along one axis, a point still
// counts as inside that edge's drop zone.
func ZoneSize(axis float64) float64 {
	return clamp(axis*zoneFraction, zoneMin, zoneMax)
}

// OutsideZoneSize returns the thickness of the strips along an area's outer
// edges used for docking from outside.
func OutsideZoneSize(axis float64) float64 {
	return clamp(axis*outsideFraction, outsideMin, outsideMax)
}

// TargetCross is the four-way split overlay drawn over a node.
type TargetCross struct {
	Node Node
}

// Classify maps a point local to a node of the given size to a direction.
// Points not within ZoneSize of any edge report false.
//
// The point is normalised to the unit square. Its slope y/x says which side
// of the main diagonal it is on, and its projection onto (1, 1) compared
// with 1 says which side of the anti-diagonal.
func (TargetCross) Classify(local Point, size Size) (Direction, bool) {
	if size.W <= 0 || size.H <= 0 {
		return Center, false
	}
	if local.X < 0 || local.Y < 0 || local.X > size.W || local.Y > size.H {
		return Center, false
	}
	zx, zy := ZoneSize(size.W), ZoneSize(size.H)
	nearEdge := local.X < zx || local.X > size.W-zx || local.Y < zy || local.Y > size.H-zy
	if !nearEdge {
		return Center, false
	}

	x, y := local.X/size.W, local.Y/size.H
	slope := math.Inf(1)
	if x > 0 {
		slope = y / x
	}
	projection := x + y
	switch {
	case slope > 1 && projection > 1:
		return Below, true
	case slope > 1:
		return LeftOf, true
	case projection > 1:
		return RightOf, true
	default:
		return Above, true
	}
}

// TargetZone is a fixed-direction strip along one outer edge of an area.
type TargetZone struct {
	Area      *Area
	Direction Direction
}

// Rect returns the strip inside bounds covered by the zone.
func (z TargetZone) Rect(bounds Rect) Rect {
	tw := OutsideZoneSize(bounds.W)
	th := OutsideZoneSize(bounds.H)
	switch z.Direction {
	case LeftOf:
		return Rect{X: bounds.X, Y: bounds.Y, W: tw, H: bounds.H}
	case RightOf:
		return Rect{X: bounds.X + bounds.W - tw, Y: bounds.Y, W: tw, H: bounds.H}
	case Above:
		return Rect{X: bounds.X, Y: bounds.Y, W: bounds.W, H: th}
	case Below:
		return Rect{X: bounds.X, Y: bounds.Y + bounds.H - th, W: bounds.W, H: th}
	default:
		return Rect{}
	}
}

// PreviewRect returns the part of r a drop in dir would occupy.
func PreviewRect(r Rect, dir Direction) Rect {
	halfW := math.Floor(r.W / 2)
	halfH := math.Floor(r.H / 2)
	switch dir {
	case LeftOf:
		return Rect{X: r.X, Y: r.Y, W: halfW, H: r.H}
	case RightOf:
		return Rect{X: r.X + r.W - halfW, Y: r.Y, W: halfW, H: r.H}
	case Above:
		return Rect{X: r.X, Y: r.Y, W: r.W, H: halfH}
	case Below:
		return Rect{X: r.X, Y: r.Y + r.H - halfH, W: r.W, H: halfH}
	default:
		return r
	}
}

// Geometry answers where the host placed areas, nodes and wells on screen.
type Geometry interface {
	// AreaAt returns the topmost visible area under p, or nil.
	AreaAt(p Point) *Area
	Bounds(n Node) (Rect, bool)
	WellBounds(w *TabWell) (Rect, bool)
}

var edgeDirections = [...]Direction{LeftOf, Above, RightOf, Below}

// HitTest resolves a screen point to a drop target. In order it tries the
// whole of an empty area, tab wells, the outer edge strips of the area and
// then the cross of the stack under the point. Wells come before the strips
// so a row of tabs along the area's top edge stays reachable. The middle of
// a stack, which the cross does not cover, drops into that stack's well.
func HitTest(g Geometry, p Point) DropTarget {
	area := g.AreaAt(p)
	if area == nil {
		return DropTarget{}
	}
	ab, ok := g.Bounds(area)
	if !ok || !ab.Contains(p) {
		return DropTarget{}
	}
	if area.Len() == 0 {
		return DropTarget{Node: area, Direction: Center, Rect: ab}
	}
	stacks := area.Stacks()
	for _, stack := range stacks {
		if wb, ok := g.WellBounds(stack.well); ok && wb.Contains(p) {
			return DropTarget{Node: stack, Direction: Center, Well: stack.well, Offset: p.X - wb.X, Rect: wb}
		}
	}
	for _, dir := range edgeDirections {
		if (TargetZone{Area: area, Direction: dir}).Rect(ab).Contains(p) {
			return DropTarget{Node: area, Direction: dir, Rect: PreviewRect(ab, dir)}
		}
	}

	for _, stack := range stacks {
		sb, ok := g.Bounds(stack)
		if !ok || !sb.Contains(p) {
			continue
		}
		if dir, ok := (TargetCross{Node: stack}).Classify(p.Sub(sb.Origin()), sb.Size()); ok {
			return DropTarget{Node: stack, Direction: dir, Rect: PreviewRect(sb, dir)}
		}
		wb, _ := g.WellBounds(stack.well)
		return DropTarget{Node: stack, Direction: Center, Well: stack.well, Offset: wb.W, Rect: wb}
	}
	return DropTarget{}
}
