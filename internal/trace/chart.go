package trace

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Chart plots comparisons and swaps against the step number.
func Chart(entries []Entry, width, height int) string {
	if len(entries) < 2 {
		return ""
	}
	comparisons := make([]float64, len(entries))
	swaps := make([]float64, len(entries))
	for i, e := range entries {
		comparisons[i] = float64(e.Counters.Comparisons)
		swaps[i] = float64(e.Counters.Swaps)
	}
	return asciigraph.PlotMany([][]float64{comparisons, swaps},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
		asciigraph.SeriesLegends("comparisons", "swaps"),
		asciigraph.Caption("counters per step"),
	)
}

// Summary is a one-line counter report for a run.
func Summary(m Meta) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d comparisons, %d swaps, %d steps", m.Runs, m.Counters.Comparisons, m.Counters.Swaps, m.Counters.CurrentStep)
	if m.Fallback {
		fmt.Fprintf(&sb, " (fallback for %s)", m.Algorithm)
	}
	switch m.Outcome {
	case "found":
		fmt.Fprintf(&sb, ", found at index %d", *m.Found)
	case "not_found":
		sb.WriteString(", not found")
	}
	if m.Error != "" {
		fmt.Fprintf(&sb, ", failed: %s", m.Error)
	}
	return sb.String()
}
