// Package layout defines the serializable mirror of a dock tree and the
// on-disk store for named layouts.
package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/pelletier/go-toml/v2"
)

// Version is written into every saved layout.
const Version = 1

// Kind identifies the variant held by a Node.
type Kind string

const (
	// KindArea is the root of one docking hierarchy.
	KindArea Kind = "area"
	// KindSplitter arranges its children along one axis.
	KindSplitter Kind = "splitter"
	// KindStack holds a row of tabs.
	KindStack Kind = "stack"
)

// Orientation is the persisted axis of an area or splitter.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// TabState records whether a persisted tab was open or only remembered.
type TabState string

const (
	TabOpened TabState = "opened"
	TabClosed TabState = "closed"
)

// Point is a persisted window position.
type Point struct {
	X float64 `toml:"x" json:"x"`
	Y float64 `toml:"y" json:"y"`
}

// Size is a persisted window size.
type Size struct {
	W float64 `toml:"w" json:"w"`
	H float64 `toml:"h" json:"h"`
}

// Tab is one entry of a persisted stack.
type Tab struct {
	ID    string   `toml:"id" json:"id"`
	State TabState `toml:"state" json:"state"`
}

// Node is a tagged union over areas, splitters and stacks. Which fields are
// meaningful depends on Kind.
type Node struct {
	Kind            Kind        `toml:"kind" json:"kind"`
	Orientation     Orientation `toml:"orientation,omitempty" json:"orientation,omitempty"`
	SizeCoefficient float64     `toml:"size_coefficient" json:"size_coefficient"`

	// Area only.
	Primary        bool   `toml:"primary,omitempty" json:"primary,omitempty"`
	WindowPosition *Point `toml:"window_position,omitempty" json:"window_position,omitempty"`
	WindowSize     *Size  `toml:"window_size,omitempty" json:"window_size,omitempty"`
	IsMaximized    bool   `toml:"is_maximized,omitempty" json:"is_maximized,omitempty"`

	// Area and splitter.
	Children []*Node `toml:"children,omitempty" json:"children,omitempty"`

	// Stack only.
	Tabs       []Tab  `toml:"tabs,omitempty" json:"tabs,omitempty"`
	Foreground string `toml:"foreground,omitempty" json:"foreground,omitempty"`
}

// Layout is a named, versioned set of persisted areas.
type Layout struct {
	Name    string  `toml:"name" json:"name"`
	Version int     `toml:"version" json:"version"`
	Areas   []*Node `toml:"areas" json:"areas"`
}

var (
	// ErrUnknownKind is returned when a node carries an unrecognised kind.
	ErrUnknownKind = errors.New("layout: unknown node kind")
	// ErrMisplacedNode is returned when a node appears where its kind is not allowed.
	ErrMisplacedNode = errors.New("layout: node kind not allowed here")
)

// New returns an empty layout with the current version.
func New(name string) *Layout {
	return &Layout{Name: name, Version: Version}
}

// Validate checks the shape of the tree: areas only at the top, stacks only
// as leaves, splitters only inside areas or splitters.
func (l *Layout) Validate() error {
	for i, a := range l.Areas {
		if a == nil {
			return fmt.Errorf("area %d: %w", i, ErrMisplacedNode)
		}
		if a.Kind != KindArea {
			return fmt.Errorf("area %d is a %s: %w", i, a.Kind, ErrMisplacedNode)
		}
		if err := validateChildren(a); err != nil {
			return fmt.Errorf("area %d: %w", i, err)
		}
	}
	return nil
}

func validateChildren(n *Node) error {
	for _, c := range n.Children {
		if c == nil {
			return ErrMisplacedNode
		}
		switch c.Kind {
		case KindSplitter:
			if err := validateChildren(c); err != nil {
				return err
			}
		case KindStack:
			if len(c.Children) > 0 {
				return fmt.Errorf("stack with children: %w", ErrMisplacedNode)
			}
		case KindArea:
			return fmt.Errorf("nested area: %w", ErrMisplacedNode)
		default:
			return fmt.Errorf("%q: %w", c.Kind, ErrUnknownKind)
		}
	}
	return nil
}

// EncodeTOML encodes the layout as TOML.
func (l *Layout) EncodeTOML() ([]byte, error) {
	return toml.Marshal(l)
}

// DecodeTOML decodes a layout and validates it.
func DecodeTOML(data []byte) (*Layout, error) {
	var l Layout
	if err := toml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// EncodeJSON encodes the layout as indented JSON.
func (l *Layout) EncodeJSON() ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// TabIDs returns every tab id under n in depth-first order.
func (n *Node) TabIDs() []string {
	var ids []string
	n.walk(func(c *Node) {
		for _, t := range c.Tabs {
			ids = append(ids, t.ID)
		}
	})
	return ids
}

func (n *Node) walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}

const coefficientEpsilon = 1e-6

// Equivalent reports whether two trees have the same shape, orientations,
// coefficients and tab identifiers. Window placement is ignored.
func Equivalent(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Orientation != b.Orientation || a.Primary != b.Primary {
		return false
	}
	if math.Abs(a.SizeCoefficient-b.SizeCoefficient) > coefficientEpsilon {
		return false
	}
	if a.Foreground != b.Foreground || len(a.Tabs) != len(b.Tabs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Tabs {
		if a.Tabs[i] != b.Tabs[i] {
			return false
		}
	}
	for i := range a.Children {
		if !Equivalent(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
