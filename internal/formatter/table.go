// Package formatter renders API results for the terminal: aligned tables,
// a trip tree, JSON and YAML.
package formatter

import (
	"image/color"
	"os"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

var (
	defaultHeaderFG  = lipgloss.Color("12")
	defaultValueFG   = lipgloss.Color("248")
	defaultSeparator = lipgloss.Color("240")
	defaultAccent    = lipgloss.Color("14")

	headerStyle    lipgloss.Style
	valueStyle     lipgloss.Style
	separatorStyle lipgloss.Style
	accentStyle    lipgloss.Style
)

// TableColors controls the rendered colors for tables. Nil fields fall back
// to the defaults.
type TableColors struct {
	HeaderFG       color.Color
	ValueColor     color.Color
	SeparatorColor color.Color
	AccentColor    color.Color
}

// SetTableTheme overrides the table styles.
func SetTableTheme(tc TableColors) {
	pick := func(c, def color.Color) color.Color {
		if c == nil {
			return def
		}
		return c
	}
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(pick(tc.HeaderFG, defaultHeaderFG))
	valueStyle = lipgloss.NewStyle().Foreground(pick(tc.ValueColor, defaultValueFG))
	separatorStyle = lipgloss.NewStyle().Foreground(pick(tc.SeparatorColor, defaultSeparator))
	accentStyle = lipgloss.NewStyle().Foreground(pick(tc.AccentColor, defaultAccent))
}

//nolint:gochecknoinits // initialize default table theme for package consumers
func init() {
	SetTableTheme(TableColors{})
}

// ColumnHint tunes one column of a Table.
type ColumnHint struct {
	// MaxWidth caps the column width. 0 = no cap.
	MaxWidth int
	// Priority resists shrinking; lower values shrink first.
	Priority int
	// Align is "right" or "left" (default).
	Align string
}

// Table is a header plus rows of pre-formatted cells.
type Table struct {
	Columns []string
	Rows    [][]string
	Hints   map[string]ColumnHint
}

// TableOptions configures Render.
type TableOptions struct {
	// Width is the total width available. 0 uses the terminal width.
	Width   int
	NoColor bool
}

const (
	sepWidth    = 2
	minColWidth = 3
)

// Render lays the table out within the available width, shrinking the
// lowest-priority columns first.
func (t Table) Render(opts TableOptions) string {
	if len(t.Columns) == 0 {
		return ""
	}
	width := opts.Width
	if width <= 0 {
		width = terminalWidth()
	}
	hints := make([]ColumnHint, len(t.Columns))
	for i, c := range t.Columns {
		hints[i] = t.Hints[c]
	}
	widths := columnWidths(t.Columns, t.Rows, width, hints)
	sep := strings.Repeat(" ", sepWidth)

	var b strings.Builder
	parts := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		parts[i] = style(headerStyle, padRight(truncate(c, widths[i]), widths[i]), opts.NoColor)
	}
	b.WriteString(strings.TrimRight(strings.Join(parts, sep), " ") + "\n")

	total := (len(widths) - 1) * sepWidth
	for _, w := range widths {
		total += w
	}
	b.WriteString(style(separatorStyle, strings.Repeat("─", total), opts.NoColor) + "\n")

	for _, row := range t.Rows {
		for i := range t.Columns {
			cell := ""
			if i < len(row) {
				cell = truncate(row[i], widths[i])
			}
			if hints[i].Align == "right" {
				cell = padLeft(cell, widths[i])
			} else {
				cell = padRight(cell, widths[i])
			}
			parts[i] = style(valueStyle, cell, opts.NoColor)
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, sep), " ") + "\n")
	}
	return b.String()
}

func columnWidths(columns []string, rows [][]string, available int, hints []ColumnHint) []int {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}
	for i := range widths {
		if hints[i].MaxWidth > 0 {
			widths[i] = min(widths[i], hints[i].MaxWidth)
		}
	}

	usable := available - (len(columns)-1)*sepWidth
	excess := -usable
	for _, w := range widths {
		excess += w
	}
	if excess <= 0 {
		return widths
	}

	order := make([]int, len(widths))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return hints[order[a]].Priority < hints[order[b]].Priority
	})
	for _, idx := range order {
		if excess <= 0 {
			break
		}
		shrink := min(widths[idx]-minColWidth, excess)
		if shrink <= 0 {
			continue
		}
		widths[idx] -= shrink
		excess -= shrink
	}
	return widths
}

// truncate shortens s to width display cells, ending in an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width < 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}

func style(st lipgloss.Style, s string, noColor bool) string {
	if noColor {
		return s
	}
	return st.Render(s)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}
