package chat

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	user       lipgloss.Style
	userLabel  lipgloss.Style
	botLabel   lipgloss.Style
	neutral    lipgloss.Style
	warning    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	hint       lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	win        lipgloss.Style
	lose       lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		user:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		userLabel:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		botLabel:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")),
		neutral:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		hint:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		win:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		lose:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
