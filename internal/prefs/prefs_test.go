package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.Locale != defaultLocale {
		t.Fatalf("Locale = %q, want %q", p.Locale, defaultLocale)
	}
	if p.BooksView != defaultBooksView {
		t.Fatalf("BooksView = %q, want %q", p.BooksView, defaultBooksView)
	}
}

func TestLoad_ParsesAndSanitizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte(`
theme = "Slate"
locale = "pl"
books_view = "sideways"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(path)
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", p.Theme)
	}
	if p.Locale != "pl" {
		t.Fatalf("Locale = %q, want pl", p.Locale)
	}
	// Unknown view modes fall back.
	if p.BooksView != defaultBooksView {
		t.Fatalf("BooksView = %q, want %q", p.BooksView, defaultBooksView)
	}
}

func TestLoad_InvalidTOMLFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte(`theme = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	p := Load(path)
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want default on parse failure", p.Theme)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	want := Prefs{Theme: "Kanagawa", Locale: "pl", BooksView: "list"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got := Load(path)
	if got != want {
		t.Fatalf("round trip = %#v, want %#v", got, want)
	}
}
