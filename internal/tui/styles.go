package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/darksharpness/int2048/internal/ui"
)

// Styles are rebuilt from the ui theme by initTUIStyles.
var (
	panelStyle      lipgloss.Style
	headerStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	dimStyle        lipgloss.Style
	accentStyle     lipgloss.Style
	exprStyle       lipgloss.Style
	resultStyle     lipgloss.Style
	errorStyle      lipgloss.Style
	promptStyle     lipgloss.Style
	statLabelStyle  lipgloss.Style
	statValueStyle  lipgloss.Style
	statusBusyStyle lipgloss.Style
	sparklineStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme. Run calls it
// again after the app has applied --no-color.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	accentStyle = lipgloss.NewStyle().Foreground(t.Accent)

	exprStyle = lipgloss.NewStyle().Foreground(t.Dim)
	resultStyle = lipgloss.NewStyle().Foreground(t.Success)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	promptStyle = lipgloss.NewStyle().Foreground(t.Prompt).Bold(true)

	statLabelStyle = lipgloss.NewStyle().Foreground(t.Dim)
	statValueStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	statusBusyStyle = lipgloss.NewStyle().Foreground(t.Prompt).Bold(true)
	sparklineStyle = lipgloss.NewStyle().Foreground(t.Accent)
}
