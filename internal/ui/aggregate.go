package ui

import (
	"sort"

	"github.com/librelib/librarian/internal/api"
)

// Availability buckets for the books-grid progress bar.
type availabilityBucket int

const (
	bucketRed availabilityBucket = iota
	bucketYellow
	bucketGreen
)

// stockSummary aggregates inventory counters for one title across every
// library stocking it. The books list trusts the server's cached counters;
// the detail view recomputes from live copies instead.
type stockSummary struct {
	TotalCopies     int
	AvailableCopies int
}

// Rate returns the availability percentage, zero when no copies exist.
func (s stockSummary) Rate() int {
	if s.TotalCopies <= 0 {
		return 0
	}
	return s.AvailableCopies * 100 / s.TotalCopies
}

// Bucket classifies the availability rate: >=50 green, >=25 yellow, else red.
func (s stockSummary) Bucket() availabilityBucket {
	rate := s.Rate()
	switch {
	case rate >= 50:
		return bucketGreen
	case rate >= 25:
		return bucketYellow
	default:
		return bucketRed
	}
}

// summarizeStock sums inventory counters per title id.
func summarizeStock(inventories []api.Inventory) map[string]stockSummary {
	summary := make(map[string]stockSummary, len(inventories))
	for _, inv := range inventories {
		s := summary[inv.TitleID]
		s.TotalCopies += inv.TotalCopies
		s.AvailableCopies += inv.AvailableCopies
		summary[inv.TitleID] = s
	}
	return summary
}

// tallyByStatus counts copies per status. Every copy lands in exactly one
// bucket; unknown statuses are preserved as their own key so the partition
// stays exhaustive.
func tallyByStatus(copies []api.Copy) map[string]int {
	tally := make(map[string]int)
	for _, cp := range copies {
		tally[cp.Status]++
	}
	return tally
}

// libraryBreakdown groups copies by library and tallies statuses within
// each group, sorted by library display name for stable rendering.
type libraryGroup struct {
	Library api.Ref
	Copies  []api.Copy
	Tally   map[string]int
}

func breakdownByLibrary(copies []api.Copy, libraries []api.Library) []libraryGroup {
	index := make(map[string]*libraryGroup)
	var order []string
	for _, cp := range copies {
		id := cp.Library.ID
		group, ok := index[id]
		if !ok {
			group = &libraryGroup{Library: cp.Library.Resolve(libraries)}
			index[id] = group
			order = append(order, id)
		}
		group.Copies = append(group.Copies, cp)
	}
	groups := make([]libraryGroup, 0, len(order))
	for _, id := range order {
		group := index[id]
		group.Tally = tallyByStatus(group.Copies)
		groups = append(groups, *group)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Library.Name() < groups[j].Library.Name()
	})
	return groups
}

// filterTitles returns the titles matching the search term, preserving
// catalog order.
func filterTitles(titles []api.Title, term string) []api.Title {
	if term == "" {
		return titles
	}
	var out []api.Title
	for _, t := range titles {
		if t.MatchesSearch(term) {
			out = append(out, t)
		}
	}
	return out
}

// countByStatus counts requests or records per status for the tab bar.
func countRequestStatuses(requests []api.BorrowRequest) map[string]int {
	counts := make(map[string]int)
	for _, r := range requests {
		counts[r.Status]++
	}
	return counts
}

func countRecordStatuses(records []api.BorrowRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Status]++
	}
	return counts
}
