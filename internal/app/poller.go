package app

import (
	"context"
	"log"
	"time"

	"github.com/librelib/librarian/internal/api"
	"github.com/librelib/librarian/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	activityFeedLimit   = 20
)

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client *api.Client, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			refresh(ctx, store, client)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// refresh performs one best-effort catalog refresh. Individual resource
// failures degrade to empty data with the resource name recorded; only a
// total failure keeps the previous snapshot.
func refresh(ctx context.Context, store *state.Store, client *api.Client) {
	var catalog state.Catalog

	failed, err := BestEffort(ctx,
		Fetch{Name: "titles", Run: func(ctx context.Context) error {
			titles, err := client.FetchTitles(ctx)
			catalog.Titles = titles
			return err
		}},
		Fetch{Name: "inventories", Run: func(ctx context.Context) error {
			inventories, err := client.FetchInventories(ctx, "")
			catalog.Inventories = inventories
			return err
		}},
		Fetch{Name: "libraries", Run: func(ctx context.Context) error {
			libraries, err := client.FetchLibraries(ctx)
			catalog.Libraries = libraries
			return err
		}},
		Fetch{Name: "stats", Run: func(ctx context.Context) error {
			stats, err := client.FetchDashboardStats(ctx)
			catalog.Stats = stats
			return err
		}},
		Fetch{Name: "activity", Run: func(ctx context.Context) error {
			activity, err := client.FetchRecentActivity(ctx, activityFeedLimit)
			catalog.Activity = activity
			return err
		}},
	)
	if err != nil {
		store.Update(state.Catalog{}, nil, err)
		log.Printf("catalog poll failed: %v", err)
		return
	}
	store.Update(catalog, failed, nil)
}
