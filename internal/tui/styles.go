package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ------- styling (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	helpStyle    = lipgloss.NewStyle().Faint(true)

	pillStyle       = lipgloss.NewStyle().Padding(0, 1).Faint(true)
	pillActiveStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Reverse(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	cardSelectedStyle = cardStyle.BorderForeground(lipgloss.Color("12")).Border(lipgloss.ThickBorder())
	cardTakenStyle    = cardStyle.Faint(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(1, 2)

	badgeColors = map[string]lipgloss.Color{
		"new":       lipgloss.Color("42"),
		"available": lipgloss.Color("34"),
		"reserved":  lipgloss.Color("214"),
		"taken":     lipgloss.Color("245"),
		"other":     lipgloss.Color("170"),
	}

	imageGlyph = "▣"
)

func badge(label, class string) string {
	c, ok := badgeColors[class]
	if !ok {
		c = badgeColors["other"]
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(strings.ToUpper(label))
}

// helpers for View
func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}
