// Package app provides the orchestration layer for the Librarian dashboard.
//
// Run is the composition root: it loads the backend config and user
// preferences, builds the API client, establishes the session with a
// pre-flight current-user fetch, starts the background catalog poller, and
// blocks in the UI until the context is cancelled.
//
// The poller refreshes the shared state.Store at a fixed cadence using
// BestEffort, the aggregate-fetch combinator: each resource (titles,
// inventories, libraries, stats, activity) is fetched concurrently, and a
// single failing resource degrades to empty data with its name recorded in
// the snapshot rather than failing the whole refresh. Only a refresh in
// which every resource fails keeps the previous snapshot and increments the
// offline counter.
//
// Fatal errors (returned from Run): unreadable config, client init failure,
// pre-flight session failure. Recoverable errors (logged, polling
// continues): periodic fetch failures.
package app
