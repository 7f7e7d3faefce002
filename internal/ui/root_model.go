package ui

import (
	tea "charm.land/bubbletea/v2"
)

// Mode controls message routing in the root model.
type Mode int

const (
	// NormalMode routes input to the planner.
	NormalMode Mode = iota
	// HelpMode displays the help overlay.
	HelpMode
)

// RootModel is the top-level model. It owns quitting, help and resizing
// and delegates everything else to the current child.
type RootModel struct {
	mode    Mode
	current ChildModel
	help    ChildModel
	keys    KeyMap

	width    int
	height   int
	quitting bool
}

// NewRootModel creates a root model around current.
func NewRootModel(current, help ChildModel, keys KeyMap) *RootModel {
	return &RootModel{
		mode:    NormalMode,
		current: current,
		help:    help,
		keys:    keys,
		width:   80,
		height:  24,
	}
}

func (m *RootModel) Init() tea.Cmd {
	if m.current == nil {
		return nil
	}
	return m.current.Init()
}

func (m *RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for _, child := range []ChildModel{m.current, m.help} {
			if sized, ok := child.(ModelWithSize); ok {
				sized.SetSize(m.width, m.height)
			}
		}
		return m, nil

	case tea.KeyPressMsg:
		// ctrl+c may arrive as the raw control character.
		if msg.String() == "ctrl+c" || msg.Key().Code == 0x03 {
			return m, m.quit()
		}
		switch m.keys.Action(msg.String()) {
		case ActionQuit:
			return m, m.quit()
		case ActionHelp:
			m.toggleHelp()
			return m, nil
		}
		if m.mode == HelpMode {
			if m.keys.Action(msg.String()) == ActionDismiss {
				m.mode = NormalMode
			}
			return m, nil
		}
	}

	if m.current == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.current, cmd = m.current.Update(msg)
	return m, cmd
}

func (m *RootModel) toggleHelp() {
	if m.mode == HelpMode {
		m.mode = NormalMode
		return
	}
	if m.help != nil {
		m.mode = HelpMode
	}
}

func (m *RootModel) quit() tea.Cmd {
	m.quitting = true
	if c, ok := m.current.(ModelWithClose); ok {
		c.Close()
	}
	return tea.Quit
}

// Mode returns the current mode.
func (m *RootModel) Mode() Mode { return m.mode }

// Quitting reports whether a quit was requested.
func (m *RootModel) Quitting() bool { return m.quitting }

func (m *RootModel) View() tea.View {
	var content string
	if !m.quitting && m.current != nil {
		content = m.current.View()
		if m.mode == HelpMode && m.help != nil {
			content = m.help.View() + "\n" + content
		}
	}
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true
	return v
}
