package dock

import (
	"github.com/google/uuid"
)

// Tab is a relocatable handle to some content. The engine never owns the
// content; it only moves the handle between wells.
type Tab struct {
	id          string
	label       string
	role        TabRole
	manager     *TabManager
	well        *TabWell
	contentSize Size
	opened      bool
}

// NewTab returns a tab owned by manager. An empty id gets a generated one.
func NewTab(id, label string, role TabRole, manager *TabManager) *Tab {
	if id == "" {
		id = uuid.New().String()
	}
	return &Tab{id: id, label: label, role: role, manager: manager}
}

func (t *Tab) ID() string             { return t.id }
func (t *Tab) Label() string          { return t.label }
func (t *Tab) SetLabel(label string)  { t.label = label }
func (t *Tab) Role() TabRole          { return t.role }
func (t *Tab) Manager() *TabManager   { return t.manager }
func (t *Tab) ContentSize() Size      { return t.contentSize }
func (t *Tab) SetContentSize(sz Size) { t.contentSize = sz }

// Well returns the well currently holding the tab, or nil while it is being
// dragged.
func (t *Tab) Well() *TabWell { return t.well }

// Stack returns the stack holding the tab, or nil.
func (t *Tab) Stack() *TabStack {
	if t.well == nil {
		return nil
	}
	return t.well.stack
}

// IsForeground reports whether the tab is the visible one in its well.
func (t *Tab) IsForeground() bool {
	return t.well != nil && t.well.Foreground() == t
}

func (t *Tab) area() *Area {
	if s := t.Stack(); s != nil {
		return s.Area()
	}
	return nil
}

func (t *Tab) canLeaveWell() bool {
	if t.manager == nil || t.manager.policy == nil {
		return true
	}
	return t.manager.policy.CanTabLeaveTabWell(t)
}

// Listener receives the notifications fired by tree, well and drag
// operations.
type Listener interface {
	OnTabOpening(tab *Tab)
	OnTabClosing(tab *Tab)
	OnTabForegrounded(newTab, oldTab *Tab)
	OnTabRelocated(tab *Tab, newWindow Window)
	OnDockAreaCreated(area *Area)
	OnDockAreaClosing(area *Area)
}

// ListenerFuncs adapts optional functions to a Listener. Nil fields are
// ignored.
type ListenerFuncs struct {
	TabOpening      func(tab *Tab)
	TabClosing      func(tab *Tab)
	TabForegrounded func(newTab, oldTab *Tab)
	TabRelocated    func(tab *Tab, newWindow Window)
	AreaCreated     func(area *Area)
	AreaClosing     func(area *Area)
}

func (f ListenerFuncs) OnTabOpening(tab *Tab) {
	if f.TabOpening != nil {
		f.TabOpening(tab)
	}
}

func (f ListenerFuncs) OnTabClosing(tab *Tab) {
	if f.TabClosing != nil {
		f.TabClosing(tab)
	}
}

func (f ListenerFuncs) OnTabForegrounded(newTab, oldTab *Tab) {
	if f.TabForegrounded != nil {
		f.TabForegrounded(newTab, oldTab)
	}
}

func (f ListenerFuncs) OnTabRelocated(tab *Tab, newWindow Window) {
	if f.TabRelocated != nil {
		f.TabRelocated(tab, newWindow)
	}
}

func (f ListenerFuncs) OnDockAreaCreated(area *Area) {
	if f.AreaCreated != nil {
		f.AreaCreated(area)
	}
}

func (f ListenerFuncs) OnDockAreaClosing(area *Area) {
	if f.AreaClosing != nil {
		f.AreaClosing(area)
	}
}

// Policy decides whether a tab may be dragged out of its well.
type Policy interface {
	CanTabLeaveTabWell(tab *Tab) bool
}

// PolicyFunc adapts a function to a Policy.
type PolicyFunc func(tab *Tab) bool

func (f PolicyFunc) CanTabLeaveTabWell(tab *Tab) bool { return f(tab) }

// TabSpawner recreates the tab with the given id during layout restore. It
// returns nil when the id is not known.
type TabSpawner func(id string) *Tab

// TabManager groups tabs that may dock together and fans notifications
// out to its listeners.
type TabManager struct {
	name      string
	global    bool
	listeners []Listener
	policy    Policy
	spawners  map[string]TabSpawner
	fallback  TabSpawner
}

// NewTabManager returns a regular tab manager.
func NewTabManager(name string) *TabManager {
	return &TabManager{name: name, spawners: make(map[string]TabSpawner)}
}

// NewGlobalTabManager returns a manager flagged as global. Nomad tabs refuse
// to split areas owned by a global manager.
func NewGlobalTabManager(name string) *TabManager {
	m := NewTabManager(name)
	m.global = true
	return m
}

func (m *TabManager) Name() string   { return m.name }
func (m *TabManager) IsGlobal() bool { return m.global }

// AddListener subscribes l to this manager's notifications.
func (m *TabManager) AddListener(l Listener) {
	if l != nil {
		m.listeners = append(m.listeners, l)
	}
}

// SetPolicy replaces the drag-out policy. Nil allows every tab to leave.
func (m *TabManager) SetPolicy(p Policy) { m.policy = p }

// RegisterTabSpawner registers the spawner for one tab id.
func (m *TabManager) RegisterTabSpawner(id string, fn TabSpawner) {
	m.spawners[id] = fn
}

// SetDefaultSpawner is consulted for ids without a registered spawner.
func (m *TabManager) SetDefaultSpawner(fn TabSpawner) { m.fallback = fn }

func (m *TabManager) spawn(id string) *Tab {
	if m == nil {
		return nil
	}
	if fn, ok := m.spawners[id]; ok && fn != nil {
		if t := fn(id); t != nil {
			return t
		}
	}
	if m.fallback != nil {
		return m.fallback(id)
	}
	return nil
}
