package ui

import (
	"testing"

	"github.com/librelib/librarian/internal/api"
)

func TestSummarizeStock_SumsAcrossLibraries(t *testing.T) {
	inventories := []api.Inventory{
		{TitleID: "t1", TotalCopies: 3, AvailableCopies: 1},
		{TitleID: "t1", TotalCopies: 2, AvailableCopies: 2},
		{TitleID: "t2", TotalCopies: 5, AvailableCopies: 0},
	}

	summary := summarizeStock(inventories)
	if got := summary["t1"]; got.TotalCopies != 5 || got.AvailableCopies != 3 {
		t.Fatalf("t1 summary = %+v, want 5 total 3 available", got)
	}
	if got := summary["t2"]; got.TotalCopies != 5 || got.AvailableCopies != 0 {
		t.Fatalf("t2 summary = %+v, want 5 total 0 available", got)
	}
	if summary["t1"].AvailableCopies > summary["t1"].TotalCopies {
		t.Fatal("available must not exceed total")
	}
}

func TestStockSummary_Buckets(t *testing.T) {
	cases := []struct {
		name      string
		total     int
		available int
		wantRate  int
		want      availabilityBucket
	}{
		{"empty is red", 0, 0, 0, bucketRed},
		{"zero available", 4, 0, 0, bucketRed},
		{"below quarter", 5, 1, 20, bucketRed},
		{"exactly quarter is yellow", 4, 1, 25, bucketYellow},
		{"dune scenario is yellow", 3, 1, 33, bucketYellow},
		{"just below half", 100, 49, 49, bucketYellow},
		{"exactly half is green", 2, 1, 50, bucketGreen},
		{"full", 3, 3, 100, bucketGreen},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := stockSummary{TotalCopies: tc.total, AvailableCopies: tc.available}
			if s.Rate() != tc.wantRate {
				t.Fatalf("Rate() = %d, want %d", s.Rate(), tc.wantRate)
			}
			if s.Bucket() != tc.want {
				t.Fatalf("Bucket() = %d, want %d", s.Bucket(), tc.want)
			}
		})
	}
}

func TestTallyByStatus_PartitionIsExhaustive(t *testing.T) {
	copies := []api.Copy{
		{ID: "c1", Status: api.CopyAvailable},
		{ID: "c2", Status: api.CopyAvailable},
		{ID: "c3", Status: api.CopyBorrowed},
		{ID: "c4", Status: api.CopyLost},
		{ID: "c5", Status: "weird"},
	}

	tally := tallyByStatus(copies)
	sum := 0
	for _, n := range tally {
		sum += n
	}
	if sum != len(copies) {
		t.Fatalf("tally sum = %d, want %d", sum, len(copies))
	}
	if tally[api.CopyAvailable] != 2 || tally[api.CopyBorrowed] != 1 || tally["weird"] != 1 {
		t.Fatalf("tally = %v", tally)
	}
}

func TestBreakdownByLibrary_GroupsAndResolves(t *testing.T) {
	libraries := []api.Library{
		{ID: "lib-1", Name: "Main"},
		{ID: "lib-2", Name: "East"},
	}
	copies := []api.Copy{
		{ID: "c1", Library: api.Ref{ID: "lib-2"}, Status: api.CopyAvailable},
		{ID: "c2", Library: api.Ref{ID: "lib-1"}, Status: api.CopyBorrowed},
		{ID: "c3", Library: api.Ref{ID: "lib-2"}, Status: api.CopyAvailable},
	}

	groups := breakdownByLibrary(copies, libraries)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	// Sorted by display name: East before Main.
	if groups[0].Library.Name() != "East" || groups[1].Library.Name() != "Main" {
		t.Fatalf("group order = %q, %q", groups[0].Library.Name(), groups[1].Library.Name())
	}
	if groups[0].Tally[api.CopyAvailable] != 2 {
		t.Fatalf("East tally = %v, want 2 available", groups[0].Tally)
	}
	if len(groups[0].Copies)+len(groups[1].Copies) != len(copies) {
		t.Fatal("breakdown lost copies")
	}
}

func TestFilterTitles(t *testing.T) {
	titles := []api.Title{
		{ID: "t1", Title: "Dune", Authors: []string{"Frank Herbert"}},
		{ID: "t2", Title: "Foundation", Authors: []string{"Isaac Asimov"}},
	}

	if got := filterTitles(titles, ""); len(got) != 2 {
		t.Fatalf("empty term = %d titles, want 2", len(got))
	}
	got := filterTitles(titles, "herbert")
	if len(got) != 1 || got[0].ID != "t1" {
		t.Fatalf("author search = %#v, want only t1", got)
	}
	if got := filterTitles(titles, "zzz"); len(got) != 0 {
		t.Fatalf("no-match search = %d titles, want 0", len(got))
	}
}

func TestCountRequestStatuses(t *testing.T) {
	requests := []api.BorrowRequest{
		{Status: api.RequestPending},
		{Status: api.RequestPending},
		{Status: api.RequestRejected},
	}
	counts := countRequestStatuses(requests)
	if counts[api.RequestPending] != 2 || counts[api.RequestRejected] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}
