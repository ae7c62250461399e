package ui

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/librelib/librarian/internal/api"
	"github.com/librelib/librarian/internal/session"
)

func TestDashboardOpsFetchDegradesPerResource(t *testing.T) {
	m, _ := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/borrow-requests/pending":
			writeData(w, []map[string]any{{"_id": "r1", "titleId": "t1", "status": "pending"}})
		case "/api/borrow-records/active":
			writeData(w, []map[string]any{
				{"_id": "b1", "status": "borrowed"},
				{"_id": "b2", "status": "borrowed"},
			})
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	msg, ok := m.fetchDashboardOpsCmd(7)().(dashboardOpsMsg)
	if !ok {
		t.Fatal("fetch must deliver a dashboardOpsMsg")
	}
	if msg.seq != 7 {
		t.Errorf("seq = %d, want 7", msg.seq)
	}
	if len(msg.pending) != 1 || msg.pending[0].ID != "r1" {
		t.Errorf("pending = %+v, want the one pending request", msg.pending)
	}
	if msg.activeLoans != 2 {
		t.Errorf("activeLoans = %d, want 2", msg.activeLoans)
	}
	for _, name := range []string{"overdue loans", "users"} {
		found := false
		for _, f := range msg.failed {
			if f == name {
				found = true
			}
		}
		if !found {
			t.Errorf("failed = %v, want it to name %q", msg.failed, name)
		}
	}
	if len(msg.failed) != 2 {
		t.Errorf("failed = %v, want exactly the two broken resources", msg.failed)
	}
}

func TestHandleDashboardOpsIgnoresStaleSeq(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.dash.seq = 2

	res, _ := m.handleDashboardOps(dashboardOpsMsg{seq: 1, activeLoans: 9})
	m = res.(Model)
	if m.dash.loaded || m.dash.activeLoans != 0 {
		t.Fatal("a stale fetch result must be dropped")
	}

	res, _ = m.handleDashboardOps(dashboardOpsMsg{seq: 2, activeLoans: 9, pendingUsers: 1})
	m = res.(Model)
	if !m.dash.loaded || m.dash.activeLoans != 9 || m.dash.pendingUsers != 1 {
		t.Fatalf("dash = %+v, want the current fetch applied", m.dash)
	}
}

func TestEnterDashboardSkipsFetchForNonStaff(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.session = &session.Session{} // not staff

	res, cmd := m.enterDashboard()
	m = res.(Model)
	if cmd != nil {
		t.Fatal("non-staff sessions must not fetch the operations pane")
	}
	if m.dash.seq != 0 {
		t.Errorf("seq = %d, want untouched", m.dash.seq)
	}
}

func TestDashboardOpsPaneListsPendingAndOverdue(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.dash = dashboardState{
		pending: []api.BorrowRequest{
			{ID: "r1", TitleID: "t1", Title: &api.Title{ID: "t1", Title: "Dune"},
				Status: api.RequestPending, RequestedAt: time.Now().Add(-time.Hour)},
		},
		overdue: []api.BorrowRecord{
			{ID: "b1", TitleID: "t2", Status: api.RecordOverdue,
				DueDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)},
		},
		activeLoans:  4,
		pendingUsers: 2,
		loaded:       true,
		seq:          1,
	}
	m.snapshot.Catalog.Titles = []api.Title{{ID: "t2", Title: "Solaris"}}

	pane := m.renderDashboardOps()
	for _, want := range []string{"Dune", "Solaris", "2026-08-20", "4 ", "2 "} {
		if !strings.Contains(pane, want) {
			t.Errorf("pane missing %q:\n%s", want, pane)
		}
	}
	if strings.Contains(pane, "No requests awaiting review") {
		t.Error("the empty state must not show alongside pending rows")
	}
}

func TestDashboardOpsPaneNamesFailedResources(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.dash.loaded = true
	m.dash.failed = []string{"pending requests"}

	pane := m.renderDashboardOps()
	if !strings.Contains(pane, "pending requests") {
		t.Errorf("pane must name the failed resource:\n%s", pane)
	}
	if strings.Contains(pane, "No requests awaiting review") {
		t.Error("the empty state must not show when the pending fetch failed")
	}
}
