package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetKeybindings returns all keybinding sections for the help overlay.
// If registry is nil, it falls back to the defaults.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultConfig())
	}

	sections := []KeybindingSection{}

	tabs := KeybindingSection{Title: "TABS"}
	addBinding(&tabs, registry, "new_tab", "New tab")
	addBinding(&tabs, registry, "close_tab", "Close tab")
	addBinding(&tabs, registry, "next_tab", "Next tab")
	addBinding(&tabs, registry, "prev_tab", "Previous tab")
	if len(tabs.Bindings) > 0 {
		sections = append(sections, tabs)
	}

	layout := KeybindingSection{Title: "LAYOUT"}
	addBinding(&layout, registry, "split_right", "Split right")
	addBinding(&layout, registry, "split_down", "Split down")
	addBinding(&layout, registry, "save_layout", "Save layout")
	addBinding(&layout, registry, "restore_layout", "Restore layout")
	if len(layout.Bindings) > 0 {
		sections = append(sections, layout)
	}

	system := KeybindingSection{Title: "SYSTEM"}
	addBinding(&system, registry, "cancel_drag", "Cancel drag")
	addBinding(&system, registry, "toggle_logs", "Toggle log viewer")
	addBinding(&system, registry, "toggle_help", "Toggle help")
	addBinding(&system, registry, "quit", "Quit")
	if len(system.Bindings) > 0 {
		sections = append(sections, system)
	}

	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns the mouse gestures, which are not rebindable.
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Click tab", "Bring tab to front"},
				{"Drag tab along its row", "Reorder tabs"},
				{"Drag tab onto a tab row", "Move tab into that stack"},
				{"Drag tab onto a stack edge", "Split next to that stack"},
				{"Drag tab onto a screen edge", "Dock along the whole area"},
				{"Drop tab anywhere else", "Float tab in its own window"},
				{"Drag window title", "Move floating window"},
				{"Click ×", "Close tab"},
			},
		},
	}
}
