package ui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const progressBarWidth = 20

// availabilityBar renders a fixed-width bar of available versus total copies
// with the percentage alongside, colored by bucket.
func availabilityBar(theme Theme, sum stockSummary) string {
	rate := sum.Rate()
	filled := 0
	if sum.TotalCopies > 0 {
		filled = progressBarWidth * sum.AvailableCopies / sum.TotalCopies
	}
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	var color string
	switch sum.Bucket() {
	case bucketGreen:
		color = theme.Success
	case bucketYellow:
		color = theme.Warning
	default:
		color = theme.Danger
	}
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Faint)).Render(strings.Repeat("░", progressBarWidth-filled))
	label := strconv.Itoa(sum.AvailableCopies) + "/" + strconv.Itoa(sum.TotalCopies) +
		" (" + strconv.Itoa(rate) + "%)"
	return bar + " " + lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(label)
}

// loadingLine renders a muted placeholder row while a fetch is in flight.
func loadingLine(styles Styles, label string) string {
	return styles.MutedText.Render("⋯ " + label)
}

// errorLine renders an inline failure with a retry hint.
func errorLine(styles Styles, label string) string {
	return styles.DangerText.Render("✗ " + label)
}

// tabBar renders a row of labeled tabs, highlighting the active index.
func tabBar(theme Theme, labels []string, active int) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted)).Padding(0, 1)
		if i == active {
			style = style.
				Foreground(lipgloss.Color(theme.Accent)).
				Bold(true).
				Underline(true)
		}
		parts = append(parts, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// keyHint renders "key action" pairs for footer help lines.
func keyHint(styles Styles, pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(styles.AccentText.Render(pairs[i]))
		b.WriteString(styles.MutedText.Render(" " + pairs[i+1]))
	}
	return b.String()
}

// clampCursor keeps a list cursor within [0, n).
func clampCursor(cursor, n int) int {
	if n == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
