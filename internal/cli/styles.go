// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7FB4CA")).
			MarginBottom(1)

	// LabelStyle formats figure labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	// ValueStyle formats monetary values.
	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	// ProfitStyle formats positive profit figures.
	ProfitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98BB6C"))

	// LossStyle formats negative figures.
	LossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E46876"))

	// WarningStyle formats degraded-input warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E6C384"))

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)
