package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError describes a non-2xx response from the backend. The server's
// message and any row-level validation errors are preserved so the UI can
// route them (toast vs. validation modal).
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
	Path       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the backend. The dashboard
// treats these as expected absence, not failures.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// HasValidationErrors reports whether err carries row-level validation
// errors, as returned by the CSV import endpoint.
func HasValidationErrors(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && len(apiErr.Errors) > 0
}

// ServerMessage extracts the backend's error message from err, falling back
// to err.Error() for transport failures.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// ValidationErrors returns the row-level errors carried by err, or nil.
func ValidationErrors(err error) []string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Errors
	}
	return nil
}
