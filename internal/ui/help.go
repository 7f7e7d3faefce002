package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

var helpOrder = []Action{
	ActionDown, ActionUp, ActionSelect, ActionDismiss, ActionClear,
	ActionSave, ActionRemoveStop, ActionHelp, ActionQuit,
}

// HelpModel is the keybinding overlay.
type HelpModel struct {
	keys  KeyMap
	theme Theme
	width int
}

// NewHelpModel lists the bindings in keys.
func NewHelpModel(keys KeyMap, theme Theme) *HelpModel {
	return &HelpModel{keys: keys, theme: theme}
}

func (m *HelpModel) Init() tea.Cmd { return nil }

func (m *HelpModel) Update(tea.Msg) (ChildModel, tea.Cmd) { return m, nil }

func (m *HelpModel) SetSize(width, _ int) { m.width = width }

func (m *HelpModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Heading.Render("Keys ("+string(m.keys.Mode())+" mode)") + "\n")
	for _, a := range helpOrder {
		keys := m.keys.Keys(a)
		if len(keys) == 0 {
			continue
		}
		label := m.theme.HelpKey.Render(padKeys(strings.Join(keys, ", ")))
		b.WriteString(label + "  " + actionDescriptions[a] + "\n")
	}
	b.WriteString("\n" + m.theme.Dim.Render("Type at least three characters to search. Click outside the list to close it."))
	style := m.theme.Pane
	if m.width > 4 {
		style = style.Width(m.width - 2)
	}
	return style.Render(b.String())
}

func padKeys(s string) string {
	const w = 22
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
