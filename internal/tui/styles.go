package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibseq/internal/ui"
)

// Style variables for the explorer, built from the ui palette by initTUIStyles.
var (
	panelStyle     lipgloss.Style
	titleStyle     lipgloss.Style
	labelStyle     lipgloss.Style
	valueStyle     lipgloss.Style
	generatorStyle lipgloss.Style
	timingStyle    lipgloss.Style
	termsStyle     lipgloss.Style
	sparklineStyle lipgloss.Style
	errorStyle     lipgloss.Style
	statusStyle    lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the active ui palette.
// Run calls it again after the application has applied --no-color.
func initTUIStyles() {
	p := ui.Current()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Frame.Color).
		Foreground(p.Term.Color).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Frame.Color)

	labelStyle = lipgloss.NewStyle().
		Foreground(p.Muted.Color)

	valueStyle = lipgloss.NewStyle().
		Foreground(p.Count.Color).
		Bold(true)

	generatorStyle = lipgloss.NewStyle().
		Foreground(p.Generator.Color).
		Bold(true)

	timingStyle = lipgloss.NewStyle().
		Foreground(p.Timing.Color)

	termsStyle = lipgloss.NewStyle().
		Foreground(p.Term.Color)

	sparklineStyle = lipgloss.NewStyle().
		Foreground(p.Success.Color)

	errorStyle = lipgloss.NewStyle().
		Foreground(p.Failure.Color).
		Bold(true)

	statusStyle = lipgloss.NewStyle().
		Foreground(p.Muted.Color).
		Italic(true)
}
