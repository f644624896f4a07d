package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Status      lipgloss.Style
	StatusMatch lipgloss.Style
	StatusEmpty lipgloss.Style
	StatusError lipgloss.Style
	Prompt      lipgloss.Style
	LineNumber  lipgloss.Style
	Help        lipgloss.Style
	HelpKey     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusMatch: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Prompt:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		LineNumber:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:        lipgloss.NewStyle().Faint(true),
		HelpKey:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	}
}
