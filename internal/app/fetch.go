package app

import (
	"context"
	"fmt"
	"sync"
)

// Fetch is one named unit of a best-effort aggregate fetch. Run stores its
// result through a closure so the combinator stays type-agnostic.
type Fetch struct {
	Name string
	Run  func(ctx context.Context) error
}

// BestEffort runs every fetch concurrently and waits for all of them. A
// failed fetch does not abort the rest; its name is returned so callers can
// surface the degradation instead of silently rendering empty data. An error
// is returned only when every fetch failed.
func BestEffort(ctx context.Context, fetches ...Fetch) ([]string, error) {
	if len(fetches) == 0 {
		return nil, nil
	}

	errs := make([]error, len(fetches))
	var wg sync.WaitGroup
	for i, fetch := range fetches {
		wg.Add(1)
		go func(i int, fetch Fetch) {
			defer wg.Done()
			errs[i] = fetch.Run(ctx)
		}(i, fetch)
	}
	wg.Wait()

	var failed []string
	var firstErr error
	for i, err := range errs {
		if err != nil {
			failed = append(failed, fetches[i].Name)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if len(failed) == len(fetches) {
		return failed, fmt.Errorf("all fetches failed: %w", firstErr)
	}
	return failed, nil
}
