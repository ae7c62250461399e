package ui

import (
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/api"
	"github.com/librelib/librarian/internal/i18n"
	"github.com/librelib/librarian/internal/session"
	"github.com/librelib/librarian/internal/state"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestCancelOnlyOfferedForPending(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.requests.requests = []api.BorrowRequest{
		{ID: "r1", Status: api.RequestApproved},
		{ID: "r2", Status: api.RequestPending},
	}
	m.requests.loaded = true

	m.requests.cursor = 0
	_, cmd := m.handleRequestsKey(keyPress('c'))
	if cmd != nil {
		t.Fatal("cancel must be a no-op on an approved request")
	}

	m.requests.cursor = 1
	_, cmd = m.handleRequestsKey(keyPress('c'))
	if cmd == nil {
		t.Fatal("cancel must fire for a pending request")
	}
}

func TestStatusFilterCyclesThroughAllTabs(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.requests.requests = []api.BorrowRequest{
		{ID: "r1", Status: api.RequestPending},
		{ID: "r2", Status: api.RequestRejected},
	}

	if got := len(m.visibleRequests()); got != 2 {
		t.Fatalf("all tab shows %d, want 2", got)
	}

	tabs := len(api.RequestStatuses) + 1
	for i := 1; i < tabs; i++ {
		res, _ := m.handleRequestsKey(keyPress('f'))
		m = res.(Model)
		status := api.RequestStatuses[m.requests.filter-1]
		for _, req := range m.visibleRequests() {
			if req.Status != status {
				t.Fatalf("tab %q shows request with status %q", status, req.Status)
			}
		}
	}

	res, _ := m.handleRequestsKey(keyPress('f'))
	m = res.(Model)
	if m.requests.filter != 0 {
		t.Fatalf("filter = %d, want wrap to 0", m.requests.filter)
	}
}

func TestRequestsWithoutUserResolveEmpty(t *testing.T) {
	m := New(Options{
		Session: &session.Session{},
		Catalog: i18n.New("en"),
		Store:   &state.Store{},
	})

	res, cmd := m.reloadRequests()
	m = res.(Model)
	if cmd != nil {
		t.Fatal("no fetch should run without a user id")
	}
	if !m.requests.loaded {
		t.Fatal("view should resolve to an empty loaded state")
	}
	if len(m.requests.requests) != 0 {
		t.Fatalf("requests = %d, want 0", len(m.requests.requests))
	}
}

func TestCancelSuccessTriggersRefetch(t *testing.T) {
	var gotPath string
	m, _ := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		writeData(w, map[string]any{})
	})
	m.requests.requests = []api.BorrowRequest{{ID: "r2", Status: api.RequestPending}}
	m.requests.cursor = 0

	_, cmd := m.handleRequestsKey(keyPress('c'))
	if cmd == nil {
		t.Fatal("expected a cancel command")
	}

	msg := cmd()
	done, ok := msg.(actionDoneMsg)
	if !ok {
		t.Fatalf("msg = %T, want actionDoneMsg", msg)
	}
	if done.err != nil {
		t.Fatalf("cancel error = %v", done.err)
	}
	if gotPath != "PATCH /api/borrow-requests/r2/cancel" {
		t.Errorf("request = %q, want PATCH /api/borrow-requests/r2/cancel", gotPath)
	}
	if done.refresh == nil {
		t.Fatal("success must schedule a refetch")
	}
	if _, ok := done.refresh().(requestsReloadMsg); !ok {
		t.Error("refresh must reload the requests view")
	}
}
