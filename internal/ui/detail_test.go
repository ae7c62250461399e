package ui

import (
	"net/http"
	"testing"

	"github.com/librelib/librarian/internal/api"
)

func TestDetailNotFoundRendersViewWithoutToast(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.detail = detailState{titleID: "t1", loading: true, seq: 1}

	res, _ := m.handleDetailTitle(detailTitleMsg{
		seq: 1,
		err: &api.APIError{StatusCode: http.StatusNotFound, Message: "not found"},
	})
	m = res.(Model)

	if !m.detail.notFound {
		t.Fatal("notFound = false, want true")
	}
	if m.detail.loadErr != nil {
		t.Errorf("loadErr = %v, want nil", m.detail.loadErr)
	}
	if m.toast.active() {
		t.Error("404 must not raise a toast")
	}
}

func TestDetailServerErrorRaisesToast(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.detail = detailState{titleID: "t1", loading: true, seq: 1}

	res, _ := m.handleDetailTitle(detailTitleMsg{
		seq: 1,
		err: &api.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"},
	})
	m = res.(Model)

	if m.detail.notFound {
		t.Error("notFound = true, want false")
	}
	if m.detail.loadErr == nil {
		t.Error("loadErr = nil, want error")
	}
	if !m.toast.active() {
		t.Fatal("server error must raise a toast")
	}
}

func TestDetailStaleResponsesIgnored(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.detail = detailState{titleID: "t2", loading: true, seq: 2}

	res, _ := m.handleDetailTitle(detailTitleMsg{seq: 1, title: &api.Title{ID: "t1"}})
	m = res.(Model)

	if !m.detail.loading {
		t.Fatal("stale response must not clear loading")
	}
	if m.detail.title != nil {
		t.Fatal("stale response must not set the title")
	}
}

func TestDetailExtrasDegradeToEmpty(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.detail = detailState{titleID: "t1", seq: 1, extrasBusy: true}

	res, _ := m.handleDetailExtras(detailExtrasMsg{
		seq:    1,
		copies: []api.Copy{{ID: "c1", Status: api.CopyAvailable}},
		failed: []string{"inventories"},
	})
	m = res.(Model)

	if m.detail.extrasBusy {
		t.Fatal("extrasBusy = true, want false")
	}
	if len(m.detail.copies) != 1 {
		t.Errorf("copies = %d, want 1", len(m.detail.copies))
	}
	if len(m.detail.inventories) != 0 {
		t.Errorf("inventories = %d, want 0", len(m.detail.inventories))
	}
	if len(m.detail.failed) != 1 || m.detail.failed[0] != "inventories" {
		t.Errorf("failed = %v, want [inventories]", m.detail.failed)
	}
}

func TestOrderedCopiesMatchesBreakdownOrder(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.detail.copies = []api.Copy{
		{ID: "c1", Library: api.Ref{ID: "l2"}, Barcode: "B2"},
		{ID: "c2", Library: api.Ref{ID: "l1"}, Barcode: "B1"},
	}
	m.snapshot.Catalog.Libraries = []api.Library{
		{ID: "l1", Name: "Alpha"},
		{ID: "l2", Name: "Beta"},
	}

	ordered := m.orderedCopies()
	if len(ordered) != 2 {
		t.Fatalf("ordered = %d copies, want 2", len(ordered))
	}
	if ordered[0].ID != "c2" {
		t.Errorf("first copy = %s, want c2 (Alpha groups first)", ordered[0].ID)
	}

	m.detail.copyCursor = 0
	if cp := m.selectedCopy(); cp == nil || cp.ID != "c2" {
		t.Errorf("selectedCopy() = %+v, want c2", cp)
	}
}

func TestLabelItemResolvesLibraryName(t *testing.T) {
	libraries := []api.Library{{ID: "l1", Name: "Main Branch"}}
	title := api.Title{ID: "t1", Title: "Dune"}
	cp := api.Copy{ID: "c1", Library: api.Ref{ID: "l1"}, Barcode: "BC-001", ShelfLocation: "A3"}

	item := labelItemFor(title, cp, libraries)
	if item.LibraryName != "Main Branch" {
		t.Errorf("LibraryName = %q, want the resolved branch name", item.LibraryName)
	}
	if item.Barcode != "BC-001" || item.Title != "Dune" {
		t.Errorf("item = %+v, want barcode and title carried over", item)
	}

	// An id with no matching library falls back to the raw id.
	cp.Library = api.Ref{ID: "l-gone"}
	if item := labelItemFor(title, cp, libraries); item.LibraryName != "l-gone" {
		t.Errorf("LibraryName = %q, want the bare id fallback", item.LibraryName)
	}
}
