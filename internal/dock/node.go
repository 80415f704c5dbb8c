package dock

import (
	"errors"

	"github.com/Gaurav-Gosain/tuidock/internal/layout"
	"github.com/google/uuid"
)

var (
	// ErrNilNode is returned when a nil node is passed to a tree operation.
	ErrNilNode = errors.New("dock: nil node")
	// ErrAreaChild is returned when an area would become another node's child.
	ErrAreaChild = errors.New("dock: an area cannot be a child")
	// ErrCycle is returned when a node would become its own descendant.
	ErrCycle = errors.New("dock: node would become its own descendant")
	// ErrNotChild is returned when a node is not a child of the splitter.
	ErrNotChild = errors.New("dock: node is not a child of this splitter")
	// ErrCenterPlacement is returned when Center is used for a split.
	ErrCenterPlacement = errors.New("dock: center is not a split direction")
	// ErrNotInWell is returned when a tab is not part of the well.
	ErrNotInWell = errors.New("dock: tab is not in this well")
	// ErrDragInProgress is returned when a second drag is started.
	ErrDragInProgress = errors.New("dock: a drag is already in progress")
)

// Node is a container in the docking tree. It is implemented by *Area,
// *Splitter and *TabStack.
type Node interface {
	Kind() NodeKind
	ID() string
	// Parent is nil for a root area and for detached nodes.
	Parent() *Splitter
	SizeCoefficient() float64
	SetSizeCoefficient(c float64)
	// Area returns the root area this node belongs to, or nil when detached.
	Area() *Area
	// Alive is false once cleanup has removed the node from its tree.
	Alive() bool
	CleanUpNodes() CleanUpResult
	// GatherPersistentLayout returns nil when the node has nothing to save.
	GatherPersistentLayout() *layout.Node
	// OnUserAttemptingDock docks the dragged tab relative to this node and
	// reports whether it was accepted.
	OnUserAttemptingDock(dir Direction, op *DragOperation) bool

	base() *nodeBase
}

type nodeBase struct {
	id          string
	parent      *Splitter
	coefficient float64
	dead        bool
	docking     *Docking
}

func newBase(d *Docking) nodeBase {
	return nodeBase{id: uuid.New().String(), coefficient: 1, docking: d}
}

func (b *nodeBase) ID() string               { return b.id }
func (b *nodeBase) Parent() *Splitter        { return b.parent }
func (b *nodeBase) SizeCoefficient() float64 { return b.coefficient }
func (b *nodeBase) Alive() bool              { return !b.dead }
func (b *nodeBase) base() *nodeBase          { return b }

func (b *nodeBase) SetSizeCoefficient(c float64) {
	if c <= 0 {
		c = 1
	}
	b.coefficient = c
}

func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Area:
		return v == nil
	case *Splitter:
		return v == nil
	case *TabStack:
		return v == nil
	}
	return false
}

// areaOf walks parent pointers up to the root area.
func areaOf(n Node) *Area {
	for n != nil {
		if a, ok := n.(*Area); ok {
			return a
		}
		p := n.Parent()
		if p == nil {
			return nil
		}
		n = p.node()
	}
	return nil
}

func detach(n Node) {
	if p := n.Parent(); p != nil {
		p.removeChild(n)
	}
}

func markDead(n Node) {
	n.base().dead = true
	switch v := n.(type) {
	case *Splitter:
		for _, c := range v.children {
			markDead(c)
		}
	case *TabStack:
		v.well.DragLeave()
	}
}
