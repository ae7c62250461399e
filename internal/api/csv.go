package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
)

// ImportCSV uploads a catalog CSV as multipart form data. A response whose
// body carries row-level validation errors is returned as an *APIError with
// Errors populated; use HasValidationErrors to route it to the validation
// modal instead of a generic failure toast.
func (c *Client) ImportCSV(ctx context.Context, filename string, content io.Reader) (*ImportResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy csv content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize form: %w", err)
	}

	rel := &url.URL{Path: "/csv/import"}
	resp, err := c.roundTrip(ctx, http.MethodPost, rel, &buf, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, errorFromResponse(rel.Path, resp.StatusCode, payload)
	}
	var result ImportResult
	if err := decodeEnvelope(payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ExportCSV downloads the full catalog as a CSV blob.
func (c *Client) ExportCSV(ctx context.Context) ([]byte, error) {
	return c.doBlob(ctx, "/csv/export", nil)
}

// FetchTemplate downloads the import template CSV.
func (c *Client) FetchTemplate(ctx context.Context) ([]byte, error) {
	return c.doBlob(ctx, "/csv/template", nil)
}
