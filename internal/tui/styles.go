package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle renders the app name in the header.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	// ScopeBadgeStyle marks a local query scope in the header.
	ScopeBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Padding(0, 1)

	// SSHBadgeStyle marks a remote endpoint in the header.
	SSHBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3")).Padding(0, 1)

	verbStyles = map[string]lipgloss.Style{
		"build": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")).Padding(0, 1),
		"run":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4")).Padding(0, 1),
		"test":  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("5")).Padding(0, 1),
	}

	// SelectedRowStyle highlights the cursor row of a list.
	SelectedRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))

	// FaintStyle renders secondary text (counts, help, breadcrumbs).
	FaintStyle = lipgloss.NewStyle().Faint(true)

	// EmptyStyle renders the "(no matches)" placeholder.
	EmptyStyle = lipgloss.NewStyle().Faint(true).Italic(true)
)

// VerbStyle returns the badge style for the given verb.
func VerbStyle(verb string) lipgloss.Style {
	if s, ok := verbStyles[verb]; ok {
		return s
	}
	return lipgloss.NewStyle().Bold(true).Padding(0, 1)
}
