package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Dune", 10, "Dune"},
		{"cut", "Dune Messiah", 8, "Dune Me…"},
		{"exact", "Dune", 4, "Dune"},
		{"zero", "Dune", 0, ""},
		{"one", "Dune", 1, "D"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.width); got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("/home/user/downloads/catalog-export.csv", 20)
	if len([]rune(got)) > 20 {
		t.Fatalf("truncateMiddle() length = %d, want <= 20", len([]rune(got)))
	}
	if got[0] != '/' {
		t.Errorf("truncateMiddle() = %q, want leading path kept", got)
	}
	if got[len(got)-1] != 'v' {
		t.Errorf("truncateMiddle() = %q, want trailing path kept", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Fatalf("padRight() = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Fatalf("padRight() should not cut, got %q", got)
	}
}

func TestClampCursor(t *testing.T) {
	tests := []struct {
		cursor, n, want int
	}{
		{0, 0, 0},
		{-1, 5, 0},
		{5, 5, 4},
		{2, 5, 2},
		{10, 3, 2},
	}
	for _, tt := range tests {
		if got := clampCursor(tt.cursor, tt.n); got != tt.want {
			t.Errorf("clampCursor(%d, %d) = %d, want %d", tt.cursor, tt.n, got, tt.want)
		}
	}
}

func TestPluralize(t *testing.T) {
	if got := pluralize(1, "copy", "copies"); got != "copy" {
		t.Errorf("pluralize(1) = %q", got)
	}
	if got := pluralize(0, "copy", "copies"); got != "copies" {
		t.Errorf("pluralize(0) = %q", got)
	}
}

func TestJoinNonEmpty(t *testing.T) {
	if got := joinNonEmpty("  ", "a", "", "b"); got != "a  b" {
		t.Fatalf("joinNonEmpty() = %q", got)
	}
}
