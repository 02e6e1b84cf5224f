package ui

import (
	"github.com/charmbracelet/lipgloss"

	"fintrack/internal/prefs"
)

// Theme holds the semantic color palette for the entire UI. Exactly two
// variants exist; anything else persisted resolves to the default.
type Theme struct {
	Name string

	Base    lipgloss.Color
	Surface lipgloss.Color
	Border  lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var Light = Theme{
	Name:    prefs.ThemeLight,
	Base:    lipgloss.Color("#F8FAFC"),
	Surface: lipgloss.Color("#E2E8F0"),
	Border:  lipgloss.Color("#94A3B8"),
	Muted:   lipgloss.Color("#64748B"),
	Text:    lipgloss.Color("#0F172A"),
	Primary: lipgloss.Color("#0D9488"),
	Accent:  lipgloss.Color("#2563EB"),
	Success: lipgloss.Color("#15803D"),
	Warning: lipgloss.Color("#B45309"),
	Error:   lipgloss.Color("#B91C1C"),
}

var Dark = Theme{
	Name:    prefs.ThemeDark,
	Base:    lipgloss.Color("#0F172A"),
	Surface: lipgloss.Color("#1E293B"),
	Border:  lipgloss.Color("#475569"),
	Muted:   lipgloss.Color("#94A3B8"),
	Text:    lipgloss.Color("#E2E8F0"),
	Primary: lipgloss.Color("#2DD4BF"),
	Accent:  lipgloss.Color("#60A5FA"),
	Success: lipgloss.Color("#4ADE80"),
	Warning: lipgloss.Color("#FBBF24"),
	Error:   lipgloss.Color("#F87171"),
}

// ThemeByName resolves a persisted theme name to a palette. Unknown names
// get the default, matching the persistence layer's reset-to-default rule.
func ThemeByName(name string) Theme {
	if name == prefs.ThemeDark {
		return Dark
	}
	return Light
}

// styles are the shared lipgloss styles derived from the active theme.
type styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Card    lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Banner  lipgloss.Style
	Help    lipgloss.Style
	Active  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Card:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		Label:   lipgloss.NewStyle().Foreground(t.Muted),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Banner:  lipgloss.NewStyle().Bold(true).Foreground(t.Base).Background(t.Warning).Padding(0, 1),
		Help:    lipgloss.NewStyle().Foreground(t.Muted),
		Active:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
	}
}
