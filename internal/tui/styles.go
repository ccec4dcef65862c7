package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibbridge/internal/ui"
)

// Style variables for the TUI.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle      lipgloss.Style
	headerStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	versionStyle    lipgloss.Style
	statStyle       lipgloss.Style
	labelStyle      lipgloss.Style
	valueStyle      lipgloss.Style
	successStyle    lipgloss.Style
	errorStyle      lipgloss.Style
	progressStyle   lipgloss.Style
	statusRunStyle  lipgloss.Style
	statusIdleStyle lipgloss.Style
	cpuStyle        lipgloss.Style
	memStyle        lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().Foreground(t.Dim)
	statStyle = lipgloss.NewStyle().Foreground(t.Info)
	labelStyle = lipgloss.NewStyle().Foreground(t.Dim)

	valueStyle = lipgloss.NewStyle().
		Foreground(t.Text).
		Bold(true)

	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	progressStyle = lipgloss.NewStyle().Foreground(t.Accent)

	statusRunStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	statusIdleStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	cpuStyle = lipgloss.NewStyle().Foreground(t.Accent)
	memStyle = lipgloss.NewStyle().Foreground(t.Warning)
}
