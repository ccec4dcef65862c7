package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibbridge/internal/format"
	"github.com/agbru/fibbridge/internal/metrics"
	"github.com/agbru/fibbridge/internal/sysmon"
)

// HeaderModel renders the top bar: title, version, backend and host load.
type HeaderModel struct {
	version string
	algo    string
	sys     sysmon.Stats
	heap    uint64
	width   int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version, algo string) HeaderModel {
	return HeaderModel{version: version, algo: algo}
}

// SetAlgo updates the displayed backend.
func (h *HeaderModel) SetAlgo(algo string) { h.algo = algo }

// SetSysStats updates the host load figures.
func (h *HeaderModel) SetSysStats(s sysmon.Stats) { h.sys = s }

// SetMemStats updates the process heap figure.
func (h *HeaderModel) SetMemStats(s metrics.MemorySnapshot) { h.heap = s.HeapAlloc }

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "fibbridge"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	left := titleStyle.Render(titleText) +
		versionStyle.Render(" | ") +
		statStyle.Render("backend: "+h.algo)

	right := cpuStyle.Render(fmt.Sprintf("CPU %5.1f%%", h.sys.CPUPercent)) + "  " +
		memStyle.Render(fmt.Sprintf("MEM %5.1f%%", h.sys.MemPercent)) + "  " +
		versionStyle.Render("heap "+format.FormatBytes(h.heap))

	gap := h.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Render(left + spaces(gap) + right)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
