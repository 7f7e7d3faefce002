package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeyMapDefaults(t *testing.T) {
	k := NewKeyMap(KeyModeDefault)

	assert.Equal(t, ActionDown, k.Action("down"))
	assert.Equal(t, ActionUp, k.Action("up"))
	assert.Equal(t, ActionSelect, k.Action("enter"))
	assert.Equal(t, ActionDismiss, k.Action("esc"))
	assert.Equal(t, ActionSave, k.Action("ctrl+s"))
	assert.Equal(t, ActionHelp, k.Action("f1"))
	assert.Equal(t, ActionClear, k.Action("ctrl+u"))
	assert.Equal(t, ActionNone, k.Action("ctrl+n"))
	assert.Equal(t, ActionNone, k.Action("j"))
}

func TestNewKeyMapModes(t *testing.T) {
	tests := []struct {
		mode KeyMode
		key  string
		want Action
	}{
		{KeyModeEmacs, "ctrl+n", ActionDown},
		{KeyModeEmacs, "ctrl+p", ActionUp},
		{KeyModeEmacs, "ctrl+g", ActionDismiss},
		{KeyModeVim, "ctrl+j", ActionDown},
		{KeyModeVim, "ctrl+k", ActionUp},
		{KeyModeFunction, "f2", ActionSave},
		{KeyModeFunction, "f8", ActionRemoveStop},
		{KeyModeFunction, "f10", ActionQuit},
		{KeyModeFunction, "f4", ActionClear},
		{KeyModeEmacs, "ctrl+u", ActionClear},
		{KeyModeVim, "down", ActionDown},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode)+"/"+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, NewKeyMap(tt.mode).Action(tt.key))
		})
	}
}

func TestNewKeyMapUnknownModeFallsBack(t *testing.T) {
	k := NewKeyMap("nano")
	assert.Equal(t, KeyModeDefault, k.Mode())
}

func TestKeyMapKeysSorted(t *testing.T) {
	k := NewKeyMap(KeyModeEmacs)
	assert.Equal(t, []string{"ctrl+n", "down"}, k.Keys(ActionDown))
	assert.Equal(t, []string{"ctrl+c", "ctrl+q"}, k.Keys(ActionQuit))
}

func TestIsValidKeyMode(t *testing.T) {
	for _, m := range []string{"default", "emacs", "vim", "function"} {
		assert.True(t, IsValidKeyMode(m), m)
	}
	assert.False(t, IsValidKeyMode(""))
	assert.False(t, IsValidKeyMode("VIM"))
}

func TestHelpViewListsBindings(t *testing.T) {
	out := NewHelpModel(NewKeyMap(KeyModeVim), NewTheme(true)).View()
	assert.Contains(t, out, "Keys (vim mode)")
	assert.Contains(t, out, "ctrl+j, down")
	assert.Contains(t, out, "save the itinerary as a trip")
	assert.Contains(t, out, "clear the search")
}
