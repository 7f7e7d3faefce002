package ui

import (
	"charm.land/lipgloss/v2"
)

// Theme holds the styles used across the planner.
type Theme struct {
	Title     lipgloss.Style
	Prompt    lipgloss.Style
	Selected  lipgloss.Style
	Candidate lipgloss.Style
	Dim       lipgloss.Style
	Heading   lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Debug     lipgloss.Style
	Pane      lipgloss.Style
	HelpKey   lipgloss.Style
}

// NewTheme returns the default palette, or unstyled output when noColor is set.
func NewTheme(noColor bool) Theme {
	if noColor {
		plain := lipgloss.NewStyle()
		return Theme{
			Title:     plain.Bold(true),
			Prompt:    plain,
			Selected:  plain.Reverse(true),
			Candidate: plain,
			Dim:       plain,
			Heading:   plain.Bold(true),
			Success:   plain,
			Error:     plain,
			Info:      plain,
			Debug:     plain,
			Pane:      plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
			HelpKey:   plain.Bold(true),
		}
	}
	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")),
		Candidate: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		Debug:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		HelpKey: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
	}
}
