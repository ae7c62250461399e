// Package api implements the HTTP client for the Librarian backend.
//
// The client is the sole conduit between the dashboard and the backend: it
// attaches bearer-token auth and a request id, decodes JSON, and unwraps the
// {success, data} envelope that most endpoints use while tolerating the flat
// payloads some still return.
//
// Resources follow the backend's REST surface:
//
//   - Titles: catalog CRUD plus the distinct category list
//   - Inventories: per-library stock ledgers for a title
//   - Copies: physical items with barcode and status
//   - Libraries: branch directory
//   - Borrow requests and records: per-user lists, cancel, staff queues
//   - Users: current account, directory, profile/password updates
//   - CSV: multipart import, blob export and template download
//   - Reports: dashboard stats, activity feed, date-ranged usage reports
//
// Failures surface as *APIError with the status code, the server's message
// and any row-level validation errors. IsNotFound distinguishes expected
// absence (a 404 detail fetch, an empty history) from real failures.
//
// The client performs no caching, retries, or request deduplication; callers
// own their refresh policy.
package api
