package ui

import (
	"strconv"
	"testing"
	"time"
)

func TestValidateISBN13(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"plain digits", "9780441013593", true},
		{"hyphenated", "978-0-441-01359-3", true},
		{"spaces", "978 0441013593", true},
		{"too short", "978044101359", false},
		{"too long", "97804410135931", false},
		{"letters", "978044101359X", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateISBN(tt.value, 13)
			if (got == "") != tt.ok {
				t.Fatalf("validateISBN(%q, 13) = %q, want ok=%v", tt.value, got, tt.ok)
			}
		})
	}
}

func TestValidateISBN10AllowsCheckDigitX(t *testing.T) {
	if msg := validateISBN("043942089X", 10); msg != "" {
		t.Fatalf("validateISBN() = %q, want valid", msg)
	}
	if msg := validateISBN("04394208X9", 10); msg == "" {
		t.Fatal("validateISBN() accepted X in a non-final position")
	}
}

func TestValidateYear(t *testing.T) {
	next := strconv.Itoa(time.Now().Year() + 1)
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"reasonable", "1965", true},
		{"next year", next, true},
		{"too old", "1399", false},
		{"far future", "3000", false},
		{"not a number", "soon", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateYear(tt.value)
			if (got == "") != tt.ok {
				t.Fatalf("validateYear(%q) = %q, want ok=%v", tt.value, got, tt.ok)
			}
		})
	}
}

func TestValidateOptionalURL(t *testing.T) {
	if msg := validateOptionalURL("Cover URL", ""); msg != "" {
		t.Errorf("empty URL should pass, got %q", msg)
	}
	if msg := validateOptionalURL("Cover URL", "https://covers.example.com/a.jpg"); msg != "" {
		t.Errorf("https URL should pass, got %q", msg)
	}
	if msg := validateOptionalURL("Cover URL", "ftp://example.com/a.jpg"); msg == "" {
		t.Error("ftp URL should fail")
	}
	if msg := validateOptionalURL("Cover URL", "not a url"); msg == "" {
		t.Error("garbage should fail")
	}
}

func TestValidatePositiveInt(t *testing.T) {
	if msg := validatePositiveInt("Copies", "3", 1); msg != "" {
		t.Errorf("3 should pass, got %q", msg)
	}
	if msg := validatePositiveInt("Copies", "0", 1); msg == "" {
		t.Error("0 should fail with min 1")
	}
	if msg := validatePositiveInt("Copies", "0", 0); msg != "" {
		t.Errorf("0 should pass with min 0, got %q", msg)
	}
	if msg := validatePositiveInt("Copies", "many", 1); msg == "" {
		t.Error("non-number should fail")
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"two entries", "Frank Herbert, Brian Herbert", []string{"Frank Herbert", "Brian Herbert"}},
		{"extra commas", ", Frank Herbert,, ", []string{"Frank Herbert"}},
		{"empty", "", nil},
		{"only separators", ", ,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitList(tt.value)
			if len(got) != len(tt.want) {
				t.Fatalf("splitList(%q) = %v, want %v", tt.value, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("splitList(%q)[%d] = %q, want %q", tt.value, i, got[i], tt.want[i])
				}
			}
		})
	}
}
