package config

import (
	"fmt"
	"slices"
	"strings"
)

// ActionDescriptions is the human description of every bindable action.
var ActionDescriptions = map[string]string{
	"new_tab":        "Open a new tab in the focused stack",
	"close_tab":      "Close the foreground tab",
	"next_tab":       "Foreground the next tab",
	"prev_tab":       "Foreground the previous tab",
	"split_right":    "Move the foreground tab into a new stack on the right",
	"split_down":     "Move the foreground tab into a new stack below",
	"save_layout":    "Save the current layout",
	"restore_layout": "Restore the saved layout",
	"cancel_drag":    "Cancel the drag in progress",
	"toggle_logs":    "Toggle log viewer",
	"toggle_help":    "Toggle help",
	"quit":           "Quit application",
}

// KeybindRegistry resolves actions to keys and back.
type KeybindRegistry struct {
	actions map[string][]string
	keys    map[string]string
	norm    *KeyNormalizer
}

// NewKeybindRegistry builds a registry from the keybindings in cfg.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		actions: make(map[string][]string),
		keys:    make(map[string]string),
		norm:    NewKeyNormalizer(),
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	all := cfg.Keybindings.All()
	names := make([]string, 0, len(all))
	for action := range all {
		names = append(names, action)
	}
	// Sorted so that a key bound twice always resolves the same way.
	slices.Sort(names)
	for _, action := range names {
		for _, key := range all[action] {
			if ok, _ := r.norm.ValidateKey(key); !ok {
				continue
			}
			r.actions[action] = append(r.actions[action], key)
			for _, k := range r.norm.NormalizeKey(key) {
				if _, taken := r.keys[k]; !taken {
					r.keys[k] = action
				}
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return slices.Clone(r.actions[action])
}

// GetAction returns the action bound to key, or "".
func (r *KeybindRegistry) GetAction(key string) string {
	for _, k := range r.norm.NormalizeKey(key) {
		if action, ok := r.keys[k]; ok {
			return action
		}
	}
	return ""
}

// GetKeysForDisplay returns the keys of action formatted for the help view.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.actions[action]
	if len(keys) == 0 {
		return ""
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = displayKey(k)
	}
	return strings.Join(out, ", ")
}

// Actions returns every bound action, sorted.
func (r *KeybindRegistry) Actions() []string {
	out := make([]string, 0, len(r.actions))
	for a := range r.actions {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}

func displayKey(k string) string {
	parts := strings.Split(k, "+")
	for i, p := range parts {
		switch p {
		case "ctrl", "alt", "shift", "super":
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		case "esc":
			parts[i] = "Esc"
		case "tab":
			parts[i] = "Tab"
		case "enter":
			parts[i] = "Enter"
		case "left":
			parts[i] = "←"
		case "right":
			parts[i] = "→"
		case "up":
			parts[i] = "↑"
		case "down":
			parts[i] = "↓"
		}
	}
	return strings.Join(parts, "+")
}

// KeyNormalizer maps the spellings users write to the ones bubbletea emits.
type KeyNormalizer struct {
	aliases map[string]string
}

// NewKeyNormalizer returns a normalizer with the usual aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{aliases: map[string]string{
		"escape":    "esc",
		"return":    "enter",
		"spacebar":  "space",
		"control":   "ctrl",
		"option":    "alt",
		"meta":      "alt",
		"cmd":       "super",
		"pageup":    "pgup",
		"pagedown":  "pgdown",
		"del":       "delete",
		"backspace": "backspace",
	}}
}

// NormalizeKey returns the lowercase key followed by its alias spelling,
// if any.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	// A lone uppercase letter is a shifted key and keeps its case.
	if len([]rune(key)) == 1 {
		return []string{key}
	}
	lower := strings.ToLower(key)
	out := []string{lower}
	parts := strings.Split(lower, "+")
	changed := false
	for i, p := range parts {
		if a, ok := n.aliases[p]; ok && a != p {
			parts[i] = a
			changed = true
		}
	}
	if changed {
		out = append(out, strings.Join(parts, "+"))
	}
	return out
}

// ValidateKey reports whether key can be bound.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, "key is empty"
	}
	if key != "+" {
		for _, p := range strings.Split(key, "+") {
			if p == "" {
				return false, fmt.Sprintf("key %q has an empty part", key)
			}
		}
	}
	return true, ""
}
