package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/librelib/librarian/internal/api"
	"github.com/librelib/librarian/internal/i18n"
	"github.com/librelib/librarian/internal/session"
	"github.com/librelib/librarian/internal/state"
)

// newTestModel wires a Model against a stub server. The handler serves every
// route except /auth/me, which always returns an active admin so gated
// actions are reachable.
func newTestModel(t *testing.T, handler http.HandlerFunc) (Model, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, map[string]any{
			"id":     "u1",
			"name":   "Test Admin",
			"email":  "admin@example.com",
			"role":   "admin",
			"status": "active",
		})
	})
	if handler != nil {
		mux.HandleFunc("/api/", handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL+"/api", "token")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	sess, err := session.Establish(ctx, client)
	if err != nil {
		t.Fatalf("Establish() error = %v", err)
	}

	m := New(Options{
		Context:     context.Background(),
		Client:      client,
		Store:       &state.Store{},
		Session:     sess,
		Catalog:     i18n.New("en"),
		DownloadDir: t.TempDir(),
		PollTick:    time.Minute,
		ThemeName:   "Nightfox",
		BooksView:   "grid",
	})
	m.width = 100
	m.height = 30
	m.ready = true
	return m, srv
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func TestNewDefaults(t *testing.T) {
	m := New(Options{})
	if m.currentView != ViewDashboard {
		t.Fatalf("currentView = %v, want ViewDashboard", m.currentView)
	}
	if m.theme.Name != "Nightfox" {
		t.Errorf("theme = %q, want Nightfox", m.theme.Name)
	}
	if m.books.viewModeName() != "grid" {
		t.Errorf("books view = %q, want grid", m.books.viewModeName())
	}
}

func TestNewListViewMode(t *testing.T) {
	m := New(Options{BooksView: "list"})
	if m.books.viewModeName() != "list" {
		t.Fatalf("books view = %q, want list", m.books.viewModeName())
	}
}
