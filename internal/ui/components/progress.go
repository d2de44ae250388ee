package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// ProgressBar displays a horizontal progress bar built from block runes so
// it stays readable without color.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int

	LabelStyle  lipgloss.Style
	FilledStyle lipgloss.Style
	EmptyStyle  lipgloss.Style
}

// NewProgressBar creates a new progress bar with unstyled parts.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += p.LabelStyle.Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))
	empty := barWidth - filled

	result += p.FilledStyle.Render(strings.Repeat("█", filled))
	result += p.EmptyStyle.Render(strings.Repeat("░", empty))

	if p.ShowPercent {
		result += fmt.Sprintf("  %d%%", int(p.Percent*100))
	}

	return result
}
