package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Colors of the bar roles in SnapshotSVG.
const (
	barDefault = "#00ff9f"
	barMarked  = "#ff2a6d"
	background = "#0a0a0a"
)

// SnapshotSVG draws values as a bar chart. Bars at marked indices are
// drawn in the highlight color.
func SnapshotSVG(values []int, marked []int, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	if len(values) == 0 {
		sb.WriteString("</svg>")
		return sb.String()
	}

	lo, hi := min(0, slices.Min(values)), slices.Max(values)
	span := float64(hi - lo)
	if span == 0 {
		span = 1
	}

	barW := float64(width) / float64(len(values))
	gap := barW * 0.1
	for i, v := range values {
		h := float64(v-lo) / span * float64(height) * 0.95
		if h < 1 {
			h = 1
		}
		fill := barDefault
		if slices.Contains(marked, i) {
			fill = barMarked
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%d</title></rect>
`, float64(i)*barW+gap/2, float64(height)-h, barW-gap, h, fill, v))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CountersSVG draws the comparisons curve of a run as a polyline.
func CountersSVG(entries []Entry, width, height int, strokeColor string) string {
	if len(entries) < 2 {
		return ""
	}
	maxC := 1
	for _, e := range entries {
		maxC = max(maxC, e.Counters.Comparisons)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor))

	last := float64(len(entries) - 1)
	for i, e := range entries {
		x := float64(i) / last * float64(width)
		y := float64(height) - float64(e.Counters.Comparisons)/float64(maxC)*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
