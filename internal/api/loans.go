package api

import (
	"context"
	"fmt"
)

// RequestInput is the payload for creating a borrow request.
type RequestInput struct {
	TitleID     string `json:"titleId"`
	LibraryID   string `json:"libraryId"`
	InventoryID string `json:"inventoryId,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// FetchUserRequests retrieves the borrow requests of one user.
func (c *Client) FetchUserRequests(ctx context.Context, userID string) ([]BorrowRequest, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required")
	}
	var requests []BorrowRequest
	if err := c.get(ctx, "/borrow-requests/user/"+userID, nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// FetchPendingRequests retrieves every pending request, for staff review.
func (c *Client) FetchPendingRequests(ctx context.Context) ([]BorrowRequest, error) {
	var requests []BorrowRequest
	if err := c.get(ctx, "/borrow-requests/pending", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// CreateRequest submits a new borrow request.
func (c *Client) CreateRequest(ctx context.Context, input RequestInput) (*BorrowRequest, error) {
	var request BorrowRequest
	if err := c.post(ctx, "/borrow-requests", input, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// CancelRequest cancels a pending borrow request.
func (c *Client) CancelRequest(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("request id required")
	}
	return c.patch(ctx, "/borrow-requests/"+id+"/cancel", nil, nil)
}

// FetchUserRecords retrieves the loan history of one user.
func (c *Client) FetchUserRecords(ctx context.Context, userID string) ([]BorrowRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id required")
	}
	var records []BorrowRecord
	if err := c.get(ctx, "/borrow-records/user/"+userID, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchOverdueRecords retrieves every overdue loan.
func (c *Client) FetchOverdueRecords(ctx context.Context) ([]BorrowRecord, error) {
	var records []BorrowRecord
	if err := c.get(ctx, "/borrow-records/overdue", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchActiveRecords retrieves every active loan.
func (c *Client) FetchActiveRecords(ctx context.Context) ([]BorrowRecord, error) {
	var records []BorrowRecord
	if err := c.get(ctx, "/borrow-records/active", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
