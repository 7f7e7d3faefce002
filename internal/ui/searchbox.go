package ui

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/roadtrip/internal/search"
	"github.com/oakwood-commons/roadtrip/pkg/model"
)

// PlaceSelectedMsg is emitted once when a candidate is chosen.
type PlaceSelectedMsg struct {
	Place model.Candidate
}

// SearchDismissedMsg is emitted when an open results list is closed without
// a selection.
type SearchDismissedMsg struct{}

// SearchBox is the query input with its results dropdown.
type SearchBox struct {
	input   textinput.Model
	spinner spinner.Model
	ctrl    *search.Controller
	keys    KeyMap
	theme   Theme
	width   int
}

// NewSearchBox wires an input to ctrl.
func NewSearchBox(ctrl *search.Controller, keys KeyMap, theme Theme) *SearchBox {
	ti := textinput.New()
	ti.Placeholder = "Search for a place (e.g. Yellowstone)"
	ti.CharLimit = 200
	ti.SetWidth(60)
	ti.Prompt = "❯ "
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return &SearchBox{input: ti, spinner: s, ctrl: ctrl, keys: keys, theme: theme, width: 80}
}

func (b *SearchBox) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, b.spinner.Tick)
}

// SetQuery replaces the input text as if it had been typed.
func (b *SearchBox) SetQuery(q string) tea.Cmd {
	b.input.SetValue(q)
	b.input.CursorEnd()
	return b.ctrl.QueryChanged(q)
}

// Query returns the input text.
func (b *SearchBox) Query() string { return b.input.Value() }

// Controller exposes the search controller.
func (b *SearchBox) Controller() *search.Controller { return b.ctrl }

func (b *SearchBox) SetSize(width, _ int) {
	b.width = width
	b.input.SetWidth(max(width-8, 10))
}

// Height is the number of lines View renders.
func (b *SearchBox) Height() int {
	return 1 + len(b.rowOwners())
}

// rowOwners maps each dropdown line below the input to the index of the
// candidate drawn on it. A candidate with categories takes two lines.
func (b *SearchBox) rowOwners() []int {
	sel := b.ctrl.Selection()
	if !sel.IsOpen() {
		return nil
	}
	cands := b.ctrl.Candidates()
	owners := make([]int, 0, 2*sel.Len())
	for i := 0; i < sel.Len() && i < len(cands); i++ {
		owners = append(owners, i)
		if len(cands[i].Categories) > 0 {
			owners = append(owners, i)
		}
	}
	return owners
}

func (b *SearchBox) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return b, b.handleKey(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return b, cmd
	case tea.BlurMsg:
		return b, b.Outside()
	case tea.FocusMsg:
		b.ctrl.Navigate(search.InputFocus)
		return b, b.input.Focus()
	case tea.PasteMsg:
		return b, tea.Batch(b.focus(), b.edit(msg))
	}

	cmd := b.ctrl.Update(msg)
	var icmd tea.Cmd
	b.input, icmd = b.input.Update(msg)
	return b, tea.Batch(cmd, icmd)
}

func (b *SearchBox) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	action := b.keys.Action(msg.String())
	if action == ActionDismiss {
		return b.dismiss(search.InputEscape)
	}
	focus := b.focus()
	switch action {
	case ActionDown:
		b.ctrl.Navigate(search.InputDown)
		return focus
	case ActionUp:
		b.ctrl.Navigate(search.InputUp)
		return focus
	case ActionSelect:
		chosen, ok := b.ctrl.Navigate(search.InputEnter)
		if !ok {
			return focus
		}
		return tea.Batch(focus, b.selected(chosen))
	case ActionClear:
		return tea.Batch(focus, b.Clear())
	}
	return tea.Batch(focus, b.edit(msg))
}

// focus gives the input focus back after Escape took it away.
func (b *SearchBox) focus() tea.Cmd {
	if b.input.Focused() {
		return nil
	}
	return b.input.Focus()
}

func (b *SearchBox) selected(chosen model.Candidate) tea.Cmd {
	b.input.SetValue(chosen.Name)
	b.input.CursorEnd()
	return func() tea.Msg { return PlaceSelectedMsg{Place: chosen} }
}

// PickRow chooses the candidate drawn on dropdown line row, counted from
// zero below the input.
func (b *SearchBox) PickRow(row int) tea.Cmd {
	owners := b.rowOwners()
	if row < 0 || row >= len(owners) {
		return nil
	}
	chosen, ok := b.ctrl.Pick(owners[row])
	if !ok {
		return nil
	}
	return tea.Batch(b.focus(), b.selected(chosen))
}

// Clear empties the input and drops the results. A debounce window still
// pending for the old text does nothing when it fires.
func (b *SearchBox) Clear() tea.Cmd {
	wasOpen := b.ctrl.Selection().IsOpen()
	b.input.SetValue("")
	b.ctrl.Clear()
	if !wasOpen {
		return nil
	}
	return func() tea.Msg { return SearchDismissedMsg{} }
}

// edit forwards msg to the input and restarts the debounce when the text
// changed.
func (b *SearchBox) edit(msg tea.Msg) tea.Cmd {
	before := b.input.Value()
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	if after := b.input.Value(); after != before {
		return tea.Batch(cmd, b.ctrl.QueryChanged(after))
	}
	return cmd
}

// Outside closes the list after a pointer press or focus loss elsewhere.
func (b *SearchBox) Outside() tea.Cmd {
	return b.dismiss(search.InputOutside)
}

// Refocus reopens the list after a click on the input.
func (b *SearchBox) Refocus() tea.Cmd {
	b.ctrl.Navigate(search.InputFocus)
	return b.focus()
}

// Focused reports whether the input takes typing.
func (b *SearchBox) Focused() bool { return b.input.Focused() }

func (b *SearchBox) dismiss(in search.Input) tea.Cmd {
	if in == search.InputEscape {
		b.input.Blur()
	}
	if !b.ctrl.Selection().IsOpen() {
		return nil
	}
	b.ctrl.Navigate(in)
	return func() tea.Msg { return SearchDismissedMsg{} }
}

// Close stops pending searches.
func (b *SearchBox) Close() {
	b.ctrl.Close()
	b.input.Blur()
}

func (b *SearchBox) View() string {
	line := b.input.View()
	if b.ctrl.Searching() {
		line += " " + b.spinner.View()
	}
	sel := b.ctrl.Selection()
	if !sel.IsOpen() {
		return line
	}

	idx, hasIdx := sel.Index()
	lines := []string{line}
	for i, c := range b.ctrl.Candidates() {
		if hasIdx && i == idx {
			lines = append(lines, b.theme.Selected.Render("› "+c.Name)+dimSuffix(b.theme, c.Address))
		} else {
			lines = append(lines, "  "+b.theme.Candidate.Render(c.Name)+dimSuffix(b.theme, c.Address))
		}
		if cats := categoryLine(c.Categories); cats != "" {
			lines = append(lines, "    "+b.theme.Dim.Render(cats))
		}
	}
	return strings.Join(lines, "\n")
}

// categoryLine shows the first two categories, underscores as spaces.
func categoryLine(cats []string) string {
	if len(cats) > 2 {
		cats = cats[:2]
	}
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, strings.ReplaceAll(c, "_", " "))
		}
	}
	return strings.Join(out, " · ")
}

func dimSuffix(th Theme, s string) string {
	if s == "" {
		return ""
	}
	return "  " + th.Dim.Render(s)
}
