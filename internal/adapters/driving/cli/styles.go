package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sheetpost/internal/core/domain"
)

// Theme defines the colour palette for command output.
type Theme struct {
	// Primary is the accent colour for headers.
	Primary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates a published row.
	Success lipgloss.Color

	// Warning indicates a skipped row.
	Warning lipgloss.Color

	// Error indicates a failed row.
	Error lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains the lipgloss styles used by the commands.
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Muted:   lipgloss.NewStyle().Foreground(theme.Muted),
		Success: lipgloss.NewStyle().Bold(true).Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(theme.Warning),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
	}
}

var styles = NewStyles(nil)

// Status renders an outcome status with its colour.
func (s *Styles) Status(status domain.OutcomeStatus) string {
	label := string(status)
	switch status {
	case domain.OutcomeSuccess:
		return s.Success.Render(label)
	case domain.OutcomeSkipped:
		return s.Warning.Render(label)
	case domain.OutcomeError:
		return s.Error.Render(label)
	default:
		return label
	}
}
