package ui

import (
	"sort"
)

// KeyMode selects a keybinding set.
type KeyMode string

const (
	// KeyModeDefault uses arrows, enter and esc.
	KeyModeDefault KeyMode = "default"
	// KeyModeEmacs adds ctrl+n/ctrl+p navigation and ctrl+g to dismiss.
	KeyModeEmacs KeyMode = "emacs"
	// KeyModeVim adds ctrl+j/ctrl+k navigation.
	KeyModeVim KeyMode = "vim"
	// KeyModeFunction adds function-key shortcuts for every action.
	KeyModeFunction KeyMode = "function"
)

// ValidKeyModes lists all valid key modes.
var ValidKeyModes = []KeyMode{KeyModeDefault, KeyModeEmacs, KeyModeVim, KeyModeFunction}

// IsValidKeyMode checks if a key mode string is valid.
func IsValidKeyMode(mode string) bool {
	for _, m := range ValidKeyModes {
		if string(m) == mode {
			return true
		}
	}
	return false
}

// Action is what a key press does in the planner.
type Action string

const (
	ActionNone       Action = ""
	ActionDown       Action = "down"
	ActionUp         Action = "up"
	ActionSelect     Action = "select"
	ActionDismiss    Action = "dismiss"
	ActionClear      Action = "clear"
	ActionSave       Action = "save"
	ActionRemoveStop Action = "remove_stop"
	ActionHelp       Action = "help"
	ActionQuit       Action = "quit"
)

var actionDescriptions = map[Action]string{
	ActionDown:       "next result",
	ActionUp:         "previous result",
	ActionSelect:     "add highlighted place to the itinerary",
	ActionDismiss:    "close the results list",
	ActionClear:      "clear the search",
	ActionSave:       "save the itinerary as a trip",
	ActionRemoveStop: "remove the last stop",
	ActionHelp:       "toggle help",
	ActionQuit:       "quit",
}

var baseKeyBindings = map[string]Action{
	"down":   ActionDown,
	"up":     ActionUp,
	"enter":  ActionSelect,
	"esc":    ActionDismiss,
	"ctrl+u": ActionClear,
	"ctrl+s": ActionSave,
	"ctrl+x": ActionRemoveStop,
	"f1":     ActionHelp,
	"ctrl+c": ActionQuit,
}

var modeKeyBindings = map[KeyMode]map[string]Action{
	KeyModeEmacs: {
		"ctrl+n": ActionDown,
		"ctrl+p": ActionUp,
		"ctrl+g": ActionDismiss,
		"ctrl+q": ActionQuit,
	},
	KeyModeVim: {
		"ctrl+j": ActionDown,
		"ctrl+k": ActionUp,
	},
	KeyModeFunction: {
		"f2":  ActionSave,
		"f4":  ActionClear,
		"f8":  ActionRemoveStop,
		"f10": ActionQuit,
	},
}

// KeyMap resolves key strings to actions for one mode.
type KeyMap struct {
	mode     KeyMode
	bindings map[string]Action
}

// NewKeyMap builds the bindings for mode. Unknown modes get the defaults.
func NewKeyMap(mode KeyMode) KeyMap {
	if !IsValidKeyMode(string(mode)) {
		mode = KeyModeDefault
	}
	bindings := make(map[string]Action, len(baseKeyBindings)+4)
	for k, a := range baseKeyBindings {
		bindings[k] = a
	}
	for k, a := range modeKeyBindings[mode] {
		bindings[k] = a
	}
	return KeyMap{mode: mode, bindings: bindings}
}

// Mode returns the key mode.
func (k KeyMap) Mode() KeyMode { return k.mode }

// Action returns the action bound to key, or ActionNone.
func (k KeyMap) Action(key string) Action {
	return k.bindings[key]
}

// Keys returns the keys bound to a, sorted.
func (k KeyMap) Keys(a Action) []string {
	var keys []string
	for key, bound := range k.bindings {
		if bound == a {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
