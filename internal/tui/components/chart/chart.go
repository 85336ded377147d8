// Package chart draws per-day totals as horizontal bars with a target marker.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/analyzer"
)

const (
	DefaultWidth = 30
	barRune      = "█"
	markerRune   = "▲"
)

var (
	metStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	targetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// Render draws one row per day followed by an axis row marking the target.
// width is the length of the longest possible bar.
func Render(series []analyzer.DailyTotal, target float64, unit string, width int) string {
	if len(series) == 0 {
		return labelStyle.Render("No entries yet.")
	}
	if width < 1 {
		width = DefaultWidth
	}

	scale := target
	for _, d := range series {
		scale = math.Max(scale, d.Total)
	}
	if scale <= 0 {
		scale = 1
	}

	var b strings.Builder
	for _, d := range series {
		n := barLength(d.Total, scale, width)
		bar := strings.Repeat(barRune, n) + strings.Repeat(" ", width-n)
		style := missStyle
		if d.Met {
			style = metStyle
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			labelStyle.Render(shortDay(d.Day)),
			style.Render(bar),
			formatAmount(d.Total, d.Met),
		)
	}

	col := barLength(target, scale, width)
	if col > 0 {
		col--
	}
	// Day labels are five characters plus a space.
	marker := strings.Repeat(" ", 6+col) + markerRune
	b.WriteString(targetStyle.Render(fmt.Sprintf("%s target %s %s", marker, trimFloat(target), unit)))
	return b.String()
}

func barLength(v, scale float64, width int) int {
	if v <= 0 {
		return 0
	}
	n := int(math.Round(v / scale * float64(width)))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

// shortDay turns YYYY-MM-DD into MM-DD.
func shortDay(day string) string {
	if len(day) == 10 {
		return day[5:]
	}
	return day
}

func formatAmount(v float64, met bool) string {
	if met {
		return trimFloat(v) + " ✓"
	}
	return trimFloat(v)
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
