package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/librelib/librarian/internal/api"
)

// Catalog is the shared data the background poller keeps fresh for the UI.
// Views with their own fetch cycles (book detail, requests, history) load on
// top of this baseline.
type Catalog struct {
	Titles      []api.Title
	Inventories []api.Inventory
	Libraries   []api.Library
	Stats       *api.DashboardStats
	Activity    []api.ActivityEntry
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Catalog             Catalog
	Failed              []string // resources that failed in the last best-effort refresh
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// ResourceFailed reports whether the named resource failed in the last
// refresh while the rest of the snapshot stayed usable.
func (s Snapshot) ResourceFailed(name string) bool {
	for _, failed := range s.Failed {
		if failed == name {
			return true
		}
	}
	return false
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored catalog. When err is non-nil the previous data
// is kept but the error is recorded for visibility. failed names resources
// that degraded to empty in a partial refresh.
func (s *Store) Update(catalog Catalog, failed []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Catalog = cloneCatalog(catalog)
	s.snapshot.Failed = cloneSlice(failed)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Catalog = cloneCatalog(s.snapshot.Catalog)
	snap.Failed = cloneSlice(s.snapshot.Failed)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneCatalog(c Catalog) Catalog {
	dup := Catalog{
		Titles:      cloneSlice(c.Titles),
		Inventories: cloneSlice(c.Inventories),
		Libraries:   cloneSlice(c.Libraries),
		Activity:    cloneSlice(c.Activity),
	}
	if c.Stats != nil {
		stats := *c.Stats
		dup.Stats = &stats
	}
	return dup
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
