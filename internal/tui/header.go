package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/darksharpness/int2048/bigint"
	"github.com/darksharpness/int2048/internal/format"
)

// HeaderModel renders the top bar: title, version, active thresholds and
// the duration of the last evaluation.
type HeaderModel struct {
	version string
	last    time.Duration
	width   int
}

func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

// SetLast records the duration of the latest evaluation.
func (h *HeaderModel) SetLast(d time.Duration) {
	h.last = d
}

func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "int2048"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	th := bigint.CurrentThresholds()
	pipe := dimStyle.Render(" | ")
	row := titleStyle.Render(titleText) + pipe +
		dimStyle.Render("mul ") + accentStyle.Render(fmt.Sprintf("%d", th.BruteForceMulLimbs)) +
		dimStyle.Render(" div ") + accentStyle.Render(fmt.Sprintf("%d", th.BruteForceDivLimbs)) +
		dimStyle.Render(" limbs")
	if h.last > 0 {
		row += pipe + dimStyle.Render("last ") + accentStyle.Render(format.FormatExecutionDuration(h.last))
	}
	gap := max(h.width-2-lipgloss.Width(row), 0)
	return headerStyle.Render(row + spaces(gap))
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
