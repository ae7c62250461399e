package ui

import (
	"net/http"
	"testing"

	"github.com/librelib/librarian/internal/api"
)

func TestRowValidationErrorsOpenTheirOwnModal(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.impexp.importing = true

	res, _ := m.handleImportDone(importDoneMsg{
		err: &api.APIError{
			StatusCode: http.StatusUnprocessableEntity,
			Message:    "validation failed",
			Errors:     []string{"row 2: isbn13 missing", "row 5: unknown library"},
		},
	})
	m = res.(Model)

	if m.impexp.importing {
		t.Fatal("importing flag must clear")
	}
	modal, ok := m.modal.(*rowErrorsModal)
	if !ok {
		t.Fatalf("modal = %T, want *rowErrorsModal", m.modal)
	}
	if len(modal.errors) != 2 {
		t.Fatalf("modal holds %d errors, want 2", len(modal.errors))
	}
	if m.toast.active() {
		t.Error("row errors route to the modal, not a toast")
	}
}

func TestPlainImportFailureToasts(t *testing.T) {
	m, _ := newTestModel(t, nil)

	res, _ := m.handleImportDone(importDoneMsg{
		err: &api.APIError{StatusCode: http.StatusBadGateway, Message: "upstream down"},
	})
	m = res.(Model)

	if m.modal != nil {
		t.Fatal("a non-validation failure must not open a modal")
	}
	if !m.toast.active() {
		t.Fatal("a non-validation failure must toast")
	}
}

func TestImportSuccessRefreshesCatalog(t *testing.T) {
	m, _ := newTestModel(t, nil)

	res, cmd := m.handleImportDone(importDoneMsg{
		result: &api.ImportResult{CreatedTitles: 4, CreatedCopies: 9},
	})
	m = res.(Model)

	if m.impexp.lastResult == nil || m.impexp.lastResult.CreatedTitles != 4 {
		t.Fatalf("lastResult = %+v, want the summary kept", m.impexp.lastResult)
	}
	if cmd == nil {
		t.Fatal("a successful import must refetch the catalog")
	}
	if _, ok := cmd().(booksReloadMsg); !ok {
		t.Error("refresh must reload the books view")
	}
}

func TestImportResultWithRowErrorsOpensModal(t *testing.T) {
	m, _ := newTestModel(t, nil)

	res, _ := m.handleImportDone(importDoneMsg{
		result: &api.ImportResult{CreatedTitles: 1, Errors: []string{"row 3: bad year"}},
	})
	m = res.(Model)

	if _, ok := m.modal.(*rowErrorsModal); !ok {
		t.Fatalf("modal = %T, want *rowErrorsModal", m.modal)
	}
}
