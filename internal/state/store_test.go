package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/librelib/librarian/internal/api"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	catalog := Catalog{
		Titles:      []api.Title{{ID: "t1"}, {ID: "t2"}},
		Inventories: []api.Inventory{{ID: "i1", TitleID: "t1"}},
		Libraries:   []api.Library{{ID: "lib-1", Name: "Main"}},
		Stats:       &api.DashboardStats{TotalTitles: 2},
	}

	before := time.Now()
	s.Update(catalog, []string{"activity"}, nil)

	snap := s.Snapshot()
	if len(snap.Catalog.Titles) != 2 || snap.Catalog.Titles[0].ID != "t1" {
		t.Fatalf("snapshot titles = %#v, want 2 titles", snap.Catalog.Titles)
	}
	if snap.Catalog.Stats == nil || snap.Catalog.Stats.TotalTitles != 2 {
		t.Fatalf("snapshot stats = %#v, want TotalTitles=2", snap.Catalog.Stats)
	}
	if !snap.ResourceFailed("activity") || snap.ResourceFailed("titles") {
		t.Fatalf("ResourceFailed = %v, want only activity failed", snap.Failed)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Catalog.Titles[0].ID = "mutated"
	snap.Catalog.Stats.TotalTitles = 99
	snap2 := s.Snapshot()
	if snap2.Catalog.Titles[0].ID != "t1" {
		t.Fatalf("Snapshot should clone titles; got %q want t1", snap2.Catalog.Titles[0].ID)
	}
	if snap2.Catalog.Stats.TotalTitles != 2 {
		t.Fatalf("Snapshot should clone stats; got %d want 2", snap2.Catalog.Stats.TotalTitles)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(Catalog{Titles: []api.Title{{ID: "t1"}}}, nil, nil)

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(Catalog{}, nil, origErr)

	snap := s.Snapshot()
	if len(snap.Catalog.Titles) != 1 || snap.Catalog.Titles[0].ID != "t1" {
		t.Fatalf("titles changed on error: got %#v", snap.Catalog.Titles)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailuresAndOffline(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Update(Catalog{}, nil, errors.New("fail 1"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(Catalog{}, nil, errors.New("fail 2"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(Catalog{}, nil, nil)
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("after success: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}
}
