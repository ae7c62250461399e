package ui

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// truncate shortens s to at most width runes, appending an ellipsis when
// something was cut. Widths below 2 return the bare cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 2 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

// truncateMiddle keeps the start and end of s, cutting the middle. Useful
// for file paths and long identifiers.
func truncateMiddle(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 5 {
		return truncate(s, width)
	}
	keep := width - 1
	head := keep / 2
	tail := keep - head
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}

func padRight(s string, width int) string {
	gap := width - len([]rune(s))
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// relativeTime renders a timestamp as a short human phrase, or a dash when
// the time is unset.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "–"
	}
	return humanize.Time(t)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
