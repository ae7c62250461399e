package ui

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/librelib/librarian/internal/api"
	"github.com/librelib/librarian/internal/session"
)

func TestBorrowFormOffersOnlyStockedInventories(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.snapshot.Catalog.Libraries = []api.Library{
		{ID: "l1", Name: "Main"},
		{ID: "l2", Name: "East"},
	}

	f := newBorrowForm(m, "t1", []api.Inventory{
		{ID: "i1", TitleID: "t1", Library: api.Ref{ID: "l1"}, TotalCopies: 3, AvailableCopies: 2},
		{ID: "i2", TitleID: "t1", Library: api.Ref{ID: "l2"}, TotalCopies: 1, AvailableCopies: 0},
	})

	if len(f.stocked) != 1 || f.stocked[0].ID != "i1" {
		t.Fatalf("stocked = %+v, want only the inventory with available copies", f.stocked)
	}
	opts := f.form.Fields[brLibrary].Options
	if len(opts) != 1 || !strings.Contains(opts[0], "Main") || !strings.Contains(opts[0], "2 available") {
		t.Fatalf("options = %v, want the library name with its stock", opts)
	}
}

func TestBorrowFormSubmitPostsRequest(t *testing.T) {
	var gotPath string
	var gotInput api.RequestInput
	m, _ := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotInput)
		writeData(w, map[string]any{"_id": "r-new", "status": "pending"})
	})

	f := newBorrowForm(m, "t1", []api.Inventory{
		{ID: "i1", TitleID: "t1", Library: api.Ref{ID: "l1"}, AvailableCopies: 2},
	})
	f.form.Fields[brNotes].Input.SetValue("for class")

	_, cmd, closed := f.submit()
	if !closed || cmd == nil {
		t.Fatal("a valid submit must close the form and run the request")
	}
	msg, ok := cmd().(actionDoneMsg)
	if !ok || msg.err != nil {
		t.Fatalf("cmd delivered %T err=%v, want successful actionDoneMsg", msg, msg.err)
	}
	if gotPath != "POST /api/borrow-requests" {
		t.Fatalf("request = %q, want POST /api/borrow-requests", gotPath)
	}
	if gotInput.TitleID != "t1" || gotInput.LibraryID != "l1" || gotInput.InventoryID != "i1" {
		t.Fatalf("input = %+v, want title, library and inventory ids", gotInput)
	}
	if gotInput.Notes != "for class" {
		t.Errorf("notes = %q, want the entered note", gotInput.Notes)
	}
	if msg.refresh == nil {
		t.Fatal("a created request must refetch the requests view")
	}
	if _, ok := msg.refresh().(requestsReloadMsg); !ok {
		t.Error("refresh must reload the requests view")
	}
}

func TestBorrowFormWithoutStockJustCloses(t *testing.T) {
	m, _ := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request expected, got %s %s", r.Method, r.URL.Path)
	})

	f := newBorrowForm(m, "t1", nil)
	if !strings.Contains(f.View(m.theme, 100, 40), "No copies available") {
		t.Error("the empty state must explain there is nothing to borrow")
	}
	_, cmd, closed := f.submit()
	if !closed || cmd != nil {
		t.Fatal("submitting with no stock closes without a request")
	}
}

func TestRequestBorrowOpensForAnySignedInUser(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.session = &session.Session{} // not staff
	m.currentView = ViewBookDetail
	m.detail.title = &api.Title{ID: "t1", Title: "Dune"}
	m.detail.inventories = []api.Inventory{
		{ID: "i1", TitleID: "t1", Library: api.Ref{ID: "l1"}, AvailableCopies: 1},
	}

	res, _ := m.handleDetailKey(keyPress('R'))
	m = res.(Model)

	if _, ok := m.modal.(*borrowForm); !ok {
		t.Fatalf("modal = %T, want *borrowForm even without staff rights", m.modal)
	}
}
