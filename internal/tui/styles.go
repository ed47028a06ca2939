package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#FF9900")
	accentColor  = lipgloss.Color("#5A9CF7")
	mutedColor   = lipgloss.Color("#626262")
	errorColor   = lipgloss.Color("#FF6B6B")
	starColor    = lipgloss.Color("#F5A623")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#131921")).
			Background(primaryColor).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accentColor).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Padding(0, 2)

	reelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle = lipgloss.NewStyle().Foreground(errorColor)
	starStyle  = lipgloss.NewStyle().Foreground(starColor)
	priceStyle = lipgloss.NewStyle().Bold(true)

	badgeStyles = map[string]lipgloss.Style{
		"hot":        lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#E53935")),
		"trending":   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#8E24AA")),
		"bestseller": lipgloss.NewStyle().Foreground(lipgloss.Color("#131921")).Background(lipgloss.Color("#F9A825")),
		"inactive":   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(mutedColor),
	}
)
