package ui

import tea "charm.land/bubbletea/v2"

// ChildModel is implemented by the panes the root model routes messages to.
type ChildModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (ChildModel, tea.Cmd)
	View() string
}

// ModelWithSize is implemented by panes that react to resizes.
type ModelWithSize interface {
	SetSize(width, height int)
}

// ModelWithClose is implemented by panes that own background work which
// must be stopped when the program exits.
type ModelWithClose interface {
	Close()
}
