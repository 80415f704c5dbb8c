package dock

import (
	"io"
	"slices"

	"charm.land/log/v2"
)

// WindowSpec describes a floating window the engine asks the host for.
type WindowSpec struct {
	Title    string
	Position Point
	Size     Size
	// Parent groups the window under another one. It may be nil.
	Parent Window
	// Decorator marks the preview window that follows the pointer.
	Decorator bool
}

// Window is a host window the engine can move, hide and destroy.
type Window interface {
	ID() string
	Bounds() Rect
	MoveTo(p Point)
	Resize(sz Size)
	Reshape(r Rect)
	Hide()
	Show()
	// RequestDestroy queues the window for destruction. Hosts must not tear
	// it down synchronously.
	RequestDestroy()
	IsVisible() bool
	IsMaximized() bool
	// SetPreview switches the window between its normal look and the
	// translucent drop-preview look.
	SetPreview(on bool)
}

// WindowHost is the windowing layer the engine runs on.
type WindowHost interface {
	CreateFloatingWindow(spec WindowSpec) Window
	PointerPosition() Point
	// FindWindowContainingArea returns nil when the area is not shown in
	// any window.
	FindWindowContainingArea(a *Area) Window
}

// TabSizing holds the per-role tab caps and preview limits.
type TabSizing struct {
	Major   Size
	Minor   Size
	Nomad   Size
	Overlap float64
	// MaxPreview caps either side of a floating preview.
	MaxPreview float64
	// DefaultContent is used for tabs whose content size is unknown.
	DefaultContent Size
}

// DefaultTabSizing returns the sizes used when no option overrides them.
func DefaultTabSizing() TabSizing {
	return TabSizing{
		Major:          Size{W: 210, H: 50},
		Minor:          Size{W: 150, H: 50},
		Nomad:          Size{W: 150, H: 50},
		Overlap:        10,
		MaxPreview:     800,
		DefaultContent: Size{W: 480, H: 320},
	}
}

func (s TabSizing) forRole(r TabRole) Size {
	switch r {
	case MajorTab:
		return s.Major
	case NomadTab:
		return s.Nomad
	default:
		return s.Minor
	}
}

// Option configures a Docking.
type Option func(*Docking)

// WithGlobalTabManager sets the manager that hears every notification.
func WithGlobalTabManager(m *TabManager) Option {
	return func(d *Docking) { d.global = m }
}

// WithRootWindow sets the window that major and nomad tabs parent their
// floating windows under.
func WithRootWindow(w Window) Option {
	return func(d *Docking) { d.root = w }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(d *Docking) {
		if l != nil {
			d.log = l
		}
	}
}

// WithTabSizing replaces the tab sizes.
func WithTabSizing(s TabSizing) Option {
	return func(d *Docking) { d.sizing = s }
}

// Docking is the context of one independent docking hierarchy: the host it
// runs on, its collaborators, the live areas and the drag in flight.
type Docking struct {
	host   WindowHost
	global *TabManager
	root   Window
	log    *log.Logger
	sizing TabSizing

	activeDrag *DragOperation
	areas      []*Area
}

// New returns a Docking running on host.
func New(host WindowHost, opts ...Option) *Docking {
	d := &Docking{
		host:   host,
		log:    log.New(io.Discard),
		sizing: DefaultTabSizing(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Docking) Host() WindowHost              { return d.host }
func (d *Docking) GlobalTabManager() *TabManager { return d.global }
func (d *Docking) RootWindow() Window            { return d.root }
func (d *Docking) SetRootWindow(w Window)        { d.root = w }
func (d *Docking) Logger() *log.Logger           { return d.log }
func (d *Docking) Sizing() TabSizing             { return d.sizing }
func (d *Docking) SetSizing(s TabSizing)         { d.sizing = s }

// ActiveDrag returns the drag in flight, or nil.
func (d *Docking) ActiveDrag() *DragOperation { return d.activeDrag }

// Areas returns the live areas in creation order.
func (d *Docking) Areas() []*Area { return slices.Clone(d.areas) }

func (d *Docking) unregister(a *Area) {
	d.areas = slices.DeleteFunc(d.areas, func(x *Area) bool { return x == a })
}

// AllTabs returns every tab held by a well of a live area, followed by the
// tab in flight if there is one.
func (d *Docking) AllTabs() []*Tab {
	var tabs []*Tab
	for _, a := range d.areas {
		for _, s := range a.Stacks() {
			tabs = append(tabs, s.well.tabs...)
		}
	}
	if d.activeDrag != nil {
		tabs = append(tabs, d.activeDrag.tab)
	}
	return tabs
}

// FindTab returns the live tab with the given id.
func (d *Docking) FindTab(id string) *Tab {
	for _, t := range d.AllTabs() {
		if t.id == id {
			return t
		}
	}
	return nil
}

func (d *Docking) previewSize(content Size) Size {
	if content.W <= 0 || content.H <= 0 {
		content = d.sizing.DefaultContent
	}
	limit := d.sizing.MaxPreview
	if limit <= 0 {
		return content
	}
	if longest := max(content.W, content.H); longest > limit {
		scale := limit / longest
		content = Size{W: content.W * scale, H: content.H * scale}
	}
	return content
}

func (d *Docking) managersFor(primary *TabManager) []*TabManager {
	var ms []*TabManager
	if primary != nil {
		ms = append(ms, primary)
	}
	if d.global != nil && d.global != primary {
		ms = append(ms, d.global)
	}
	return ms
}

func (d *Docking) notifyArea(a *Area, fn func(Listener)) {
	for _, m := range d.managersFor(a.manager) {
		for _, l := range m.listeners {
			fn(l)
		}
	}
}

// notifyTab tells the manager of the tab's area, or the tab's own manager
// when it has no area, and the global manager.
func (d *Docking) notifyTab(tab *Tab, a *Area, fn func(Listener)) {
	primary := tab.manager
	if a != nil && a.manager != nil {
		primary = a.manager
	}
	for _, m := range d.managersFor(primary) {
		for _, l := range m.listeners {
			fn(l)
		}
	}
}
