package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stressOrder fixes the display order of known stress levels, healthiest
// first. Unknown levels follow alphabetically.
var stressOrder = map[string]int{
	"healthy":  0,
	"mild":     1,
	"low":      1,
	"moderate": 2,
	"medium":   2,
	"high":     3,
	"severe":   4,
	"critical": 4,
}

// SortStressLevels orders level names for display.
func SortStressLevels(dist map[string]int) []string {
	levels := make([]string, 0, len(dist))
	for level := range dist {
		levels = append(levels, level)
	}
	sort.Slice(levels, func(i, j int) bool {
		oi, iok := stressOrder[strings.ToLower(levels[i])]
		oj, jok := stressOrder[strings.ToLower(levels[j])]
		switch {
		case iok && jok && oi != oj:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return levels[i] < levels[j]
		}
	})
	return levels
}

// StressBars renders a horizontal bar per stress level, scaled to the
// largest count, at most barWidth cells wide.
func StressBars(styles Styles, dist map[string]int, barWidth int) string {
	if len(dist) == 0 {
		return styles.Muted.Render("no analysis data yet")
	}
	if barWidth < 1 {
		barWidth = 1
	}

	max := 0
	labelWidth := 0
	for level, count := range dist {
		if count > max {
			max = count
		}
		if len(level) > labelWidth {
			labelWidth = len(level)
		}
	}

	var sb strings.Builder
	for _, level := range SortStressLevels(dist) {
		count := dist[level]
		filled := 0
		if max > 0 {
			filled = count * barWidth / max
		}
		if count > 0 && filled == 0 {
			filled = 1
		}

		bar := lipgloss.NewStyle().
			Foreground(styles.StressColor(level)).
			Render(strings.Repeat("█", filled))

		sb.WriteString(fmt.Sprintf("%-*s %s %d\n", labelWidth, level, bar, count))
	}
	return strings.TrimRight(sb.String(), "\n")
}
