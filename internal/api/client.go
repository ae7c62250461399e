package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the Librarian backend HTTP API. It attaches bearer-token
// auth and unwraps {success, data} envelopes; it does not cache, retry, or
// dedupe in-flight requests.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
}

const (
	defaultUserAgent = "librarian/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL. A bare host:port is
// assumed to be http.
func NewClient(baseURL, token string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		token:     token,
	}, nil
}

// SetToken replaces the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// envelope is the backend's common response wrapper. Some endpoints return
// flat payloads instead; decode tolerates both.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Errors  []string        `json:"errors"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	rel := &url.URL{Path: path, RawQuery: query.Encode()}
	return c.do(ctx, http.MethodGet, rel, nil, dest)
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPost, &url.URL{Path: path}, body, dest)
}

func (c *Client) put(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPut, &url.URL{Path: path}, body, dest)
}

func (c *Client) patch(ctx context.Context, path string, body, dest any) error {
	return c.do(ctx, http.MethodPatch, &url.URL{Path: path}, body, dest)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, &url.URL{Path: path}, nil, nil)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	resp, err := c.roundTrip(ctx, method, rel, reader, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return errorFromResponse(rel.Path, resp.StatusCode, payload)
	}
	if dest == nil {
		return nil
	}
	return decodeEnvelope(payload, dest)
}

// doBlob retrieves a binary payload (CSV export, template download) without
// envelope handling.
func (c *Client) doBlob(ctx context.Context, path string, query url.Values) ([]byte, error) {
	rel := &url.URL{Path: path, RawQuery: query.Encode()}
	resp, err := c.roundTrip(ctx, http.MethodGet, rel, nil, "")
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
	return payload, nil
}

func (c *Client) roundTrip(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string) (*http.Response, error) {
	// The base URL may carry a path prefix ("/api"); a plain ResolveReference
	// against an absolute rel path would drop it.
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + rel.Path
	reqURL.RawQuery = rel.RawQuery
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// decodeEnvelope unwraps a {success, data} envelope when present, otherwise
// decodes the payload directly into dest.
func decodeEnvelope(payload []byte, dest any) error {
	var env envelope
	if err := json.Unmarshal(payload, &env); err == nil {
		if len(env.Data) > 0 && !bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
			if err := json.Unmarshal(env.Data, dest); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			return nil
		}
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorFromResponse(path string, status int, payload []byte) error {
	apiErr := &APIError{StatusCode: status, Path: path}
	var env envelope
	if err := json.Unmarshal(payload, &env); err == nil {
		apiErr.Message = env.Message
		if apiErr.Message == "" {
			apiErr.Message = env.Error
		}
		apiErr.Errors = env.Errors
	}
	return apiErr
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u, nil
}

// TitleInput is the payload for creating or updating a Title.
type TitleInput struct {
	ISBN13        string   `json:"isbn13"`
	ISBN10        string   `json:"isbn10,omitempty"`
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle,omitempty"`
	Authors       []string `json:"authors"`
	Categories    []string `json:"categories,omitempty"`
	Language      string   `json:"language"`
	Publisher     string   `json:"publisher"`
	PublishedYear int      `json:"publishedYear"`
	Description   string   `json:"description,omitempty"`
	CoverURL      string   `json:"coverUrl,omitempty"`
}

// FetchTitles retrieves the whole catalog.
func (c *Client) FetchTitles(ctx context.Context) ([]Title, error) {
	var titles []Title
	if err := c.get(ctx, "/titles", nil, &titles); err != nil {
		return nil, err
	}
	return titles, nil
}

// FetchTitle retrieves one title by id. A missing title surfaces as an
// *APIError with status 404; use IsNotFound to branch.
func (c *Client) FetchTitle(ctx context.Context, id string) (*Title, error) {
	var title Title
	if err := c.get(ctx, "/titles/"+id, nil, &title); err != nil {
		return nil, err
	}
	return &title, nil
}

// CreateTitle adds a catalog record.
func (c *Client) CreateTitle(ctx context.Context, input TitleInput) (*Title, error) {
	var title Title
	if err := c.post(ctx, "/titles", input, &title); err != nil {
		return nil, err
	}
	return &title, nil
}

// UpdateTitle replaces a catalog record.
func (c *Client) UpdateTitle(ctx context.Context, id string, input TitleInput) (*Title, error) {
	var title Title
	if err := c.put(ctx, "/titles/"+id, input, &title); err != nil {
		return nil, err
	}
	return &title, nil
}

// DeleteTitle removes a title. The server cascades to its copies,
// inventories and borrow records.
func (c *Client) DeleteTitle(ctx context.Context, id string) error {
	return c.delete(ctx, "/titles/"+id)
}

// FetchCategories retrieves the distinct category names in use.
func (c *Client) FetchCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.get(ctx, "/titles/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// InventoryInput is the payload for creating an inventory record.
type InventoryInput struct {
	TitleID         string `json:"titleId"`
	LibraryID       string `json:"libraryId"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
	ShelfLocation   string `json:"shelfLocation,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// FetchInventories retrieves inventory records, optionally filtered by title.
func (c *Client) FetchInventories(ctx context.Context, titleID string) ([]Inventory, error) {
	values := url.Values{}
	if titleID != "" {
		values.Set("titleId", titleID)
	}
	var inventories []Inventory
	if err := c.get(ctx, "/inventories", values, &inventories); err != nil {
		return nil, err
	}
	return inventories, nil
}

// CreateInventory assigns a title to a library.
func (c *Client) CreateInventory(ctx context.Context, input InventoryInput) (*Inventory, error) {
	var inv Inventory
	if err := c.post(ctx, "/inventories", input, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// CopyQuery filters /copies requests.
type CopyQuery struct {
	TitleID string
	Limit   int
}

// CopyInput is the payload for creating or updating a physical copy.
type CopyInput struct {
	TitleID       string `json:"titleId"`
	LibraryID     string `json:"libraryId"`
	InventoryID   string `json:"inventoryId,omitempty"`
	Barcode       string `json:"barcode,omitempty"`
	Status        string `json:"status"`
	Condition     string `json:"condition"`
	ShelfLocation string `json:"shelfLocation,omitempty"`
}

// FetchCopies retrieves physical copies matching the query.
func (c *Client) FetchCopies(ctx context.Context, query CopyQuery) ([]Copy, error) {
	values := url.Values{}
	if query.TitleID != "" {
		values.Set("titleId", query.TitleID)
	}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	var copies []Copy
	if err := c.get(ctx, "/copies", values, &copies); err != nil {
		return nil, err
	}
	return copies, nil
}

// CreateCopy registers a physical copy.
func (c *Client) CreateCopy(ctx context.Context, input CopyInput) (*Copy, error) {
	var cp Copy
	if err := c.post(ctx, "/copies", input, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// UpdateCopy edits a physical copy.
func (c *Client) UpdateCopy(ctx context.Context, id string, input CopyInput) (*Copy, error) {
	var cp Copy
	if err := c.put(ctx, "/copies/"+id, input, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// DeleteCopy removes a physical copy.
func (c *Client) DeleteCopy(ctx context.Context, id string) error {
	return c.delete(ctx, "/copies/"+id)
}

// FetchLibraries retrieves all library branches.
func (c *Client) FetchLibraries(ctx context.Context) ([]Library, error) {
	var libraries []Library
	if err := c.get(ctx, "/libraries", nil, &libraries); err != nil {
		return nil, err
	}
	return libraries, nil
}
