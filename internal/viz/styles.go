package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles are derived from CurrentTheme on every render so a theme switch
// takes effect on the next frame.
type styles struct {
	title, subtitle lipgloss.Style
	label, value    lipgloss.Style
	selected, item  lipgloss.Style
	key, hint       lipgloss.Style
	running, paused lipgloss.Style
	errText         lipgloss.Style
	panel           lipgloss.Style
}

func themeStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		subtitle: lipgloss.NewStyle().Foreground(t.Muted),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(13),
		value:    lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		selected: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		item:     lipgloss.NewStyle().Foreground(t.Muted),
		key:      lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		hint:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		running:  lipgloss.NewStyle().Foreground(t.Sorted).Bold(true),
		paused:   lipgloss.NewStyle().Foreground(t.Current).Bold(true),
		errText:  lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
	}
}

// ProgressBar renders a filled/empty bar for percent in [0, 1]
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = min(max(filled, 0), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(CurrentTheme.Sorted).Render(bar)
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	// Sample to fit width
	step := max(1, len(values)/width)

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)
		b.WriteRune(chars[idx])
	}
	return lipgloss.NewStyle().Foreground(CurrentTheme.Secondary).Render(b.String())
}

func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(0, mid-3))
	right := strings.Repeat("─", max(0, width-mid-3))
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(left + " ◆ " + right)
}
