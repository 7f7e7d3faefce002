package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

const flashDuration = 3 * time.Second

type flashKind int

const (
	flashInfo flashKind = iota
	flashSuccess
	flashError
)

// flashClearMsg clears the flash line. Only the one matching the latest
// flash ID does anything.
type flashClearMsg struct {
	ID int
}

// Flash is a one-line status message that clears itself.
type Flash struct {
	text string
	kind flashKind
	id   int
}

// Set replaces the message and schedules its removal.
func (f *Flash) Set(kind flashKind, text string) tea.Cmd {
	f.id++
	f.text = text
	f.kind = kind
	id := f.id
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{ID: id}
	})
}

// Update clears the message when its timer fires.
func (f *Flash) Update(msg tea.Msg) {
	if m, ok := msg.(flashClearMsg); ok && m.ID == f.id {
		f.text = ""
	}
}

// Text returns the current message.
func (f *Flash) Text() string { return f.text }

// View renders the message in the style for its kind.
func (f *Flash) View(th Theme) string {
	if f.text == "" {
		return ""
	}
	switch f.kind {
	case flashSuccess:
		return th.Success.Render("✓ " + f.text)
	case flashError:
		return th.Error.Render("✗ " + f.text)
	default:
		return th.Info.Render(f.text)
	}
}
