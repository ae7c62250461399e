package api

import (
	"strings"
	"time"
)

// Title is the catalog-level record for a book, independent of physical stock.
type Title struct {
	ID            string   `json:"_id"`
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

// MatchesSearch reports whether the title or any author contains the term,
// case-insensitively. An empty term matches everything.
func (t Title) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), term) {
		return true
	}
	for _, a := range t.Authors {
		if strings.Contains(strings.ToLower(a), term) {
			return true
		}
	}
	return false
}

// Inventory is the per-library stock ledger for a Title. At most one
// inventory exists per (titleId, libraryId) pair.
type Inventory struct {
	ID              string `json:"_id"`
	TitleID         string `json:"titleId"`
	Library         Ref    `json:"libraryId"`
	TotalCopies     int    `json:"totalCopies"`
	AvailableCopies int    `json:"availableCopies"`
	ShelfLocation   string `json:"shelfLocation,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// Copy statuses form an exhaustive partition of a title's physical items.
const (
	CopyAvailable   = "available"
	CopyBorrowed    = "borrowed"
	CopyReserved    = "reserved"
	CopyLost        = "lost"
	CopyMaintenance = "maintenance"
)

// CopyStatuses lists every copy status in display order.
var CopyStatuses = []string{CopyAvailable, CopyBorrowed, CopyReserved, CopyLost, CopyMaintenance}

// Copy is one physical, trackable item of a Title at a specific library.
type Copy struct {
	ID            string     `json:"_id"`
	TitleID       string     `json:"titleId"`
	Library       Ref        `json:"libraryId"`
	InventoryID   string     `json:"inventoryId"`
	Barcode       string     `json:"barcode,omitempty"`
	Status        string     `json:"status"`
	Condition     string     `json:"condition"`
	ShelfLocation string     `json:"shelfLocation,omitempty"`
	AcquiredAt    *time.Time `json:"acquiredAt,omitempty"`
}

// Borrow request statuses.
const (
	RequestPending   = "pending"
	RequestApproved  = "approved"
	RequestRejected  = "rejected"
	RequestCancelled = "cancelled"
)

// RequestStatuses lists every borrow-request status in display order.
var RequestStatuses = []string{RequestPending, RequestApproved, RequestRejected, RequestCancelled}

// BorrowRequest is a pending ask to borrow a Title, subject to staff approval.
type BorrowRequest struct {
	ID          string     `json:"_id"`
	UserID      string     `json:"userId"`
	Library     Ref        `json:"libraryId"`
	TitleID     string     `json:"titleId"`
	Title       *Title     `json:"title,omitempty"`
	InventoryID string     `json:"inventoryId,omitempty"`
	CopyID      string     `json:"copyId,omitempty"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	DecidedAt   *time.Time `json:"decidedAt,omitempty"`
	DecidedBy   string     `json:"decidedBy,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// CanCancel reports whether the request may still be cancelled by its owner.
func (r BorrowRequest) CanCancel() bool {
	return r.Status == RequestPending
}

// Borrow record statuses.
const (
	RecordBorrowed = "borrowed"
	RecordReturned = "returned"
	RecordOverdue  = "overdue"
	RecordLost     = "lost"
)

// RecordStatuses lists every borrow-record status in display order.
var RecordStatuses = []string{RecordBorrowed, RecordReturned, RecordOverdue, RecordLost}

// Fees captures late and damage charges on a loan.
type Fees struct {
	LateFee   float64 `json:"lateFee,omitempty"`
	DamageFee float64 `json:"damageFee,omitempty"`
	Currency  string  `json:"currency,omitempty"`
}

// Total returns the combined fee amount.
func (f Fees) Total() float64 {
	return f.LateFee + f.DamageFee
}

// BorrowRecord is the history of an actual loan. Read-only from the
// dashboard's perspective.
type BorrowRecord struct {
	ID          string     `json:"_id"`
	UserID      string     `json:"userId"`
	Library     Ref        `json:"libraryId"`
	TitleID     string     `json:"titleId"`
	Title       *Title     `json:"title,omitempty"`
	InventoryID string     `json:"inventoryId"`
	CopyID      string     `json:"copyId"`
	BorrowDate  time.Time  `json:"borrowDate"`
	DueDate     time.Time  `json:"dueDate"`
	ReturnDate  *time.Time `json:"returnDate,omitempty"`
	Status      string     `json:"status"`
	ApprovedBy  string     `json:"approvedBy"`
	Fees        *Fees      `json:"fees,omitempty"`
}

// User roles and account statuses.
const (
	RoleGuest      = "guest"
	RoleStudent    = "student"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"

	UserActive    = "active"
	UserPending   = "pending"
	UserRejected  = "rejected"
	UserSuspended = "suspended"
)

// Profile holds optional user contact details.
type Profile struct {
	Phone string `json:"phone,omitempty"`
}

// User is the authenticated account driving the dashboard.
type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	Libraries   []string   `json:"libraries,omitempty"`
	Profile     *Profile   `json:"profile,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// HasRole reports whether the user's role is one of the given roles.
func (u User) HasRole(roles ...string) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// CanManage reports whether the user may perform catalog mutations.
func (u User) CanManage() bool {
	return u.HasRole(RoleAdmin, RoleSuperadmin)
}

// Library is a physical branch referenced by inventories, copies and loans.
type Library struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// DashboardStats aggregates top-line counts for the home view.
type DashboardStats struct {
	TotalTitles     int `json:"totalTitles"`
	TotalCopies     int `json:"totalCopies"`
	AvailableCopies int `json:"availableCopies"`
	ActiveLoans     int `json:"activeLoans"`
	OverdueLoans    int `json:"overdueLoans"`
	PendingRequests int `json:"pendingRequests"`
	TotalUsers      int `json:"totalUsers"`
}

// ActivityEntry is one row in the recent-activity feed.
type ActivityEntry struct {
	ID        string    `json:"_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	UserName  string    `json:"userName,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Report is the aggregate usage report for a date range.
type Report struct {
	From           time.Time      `json:"from"`
	To             time.Time      `json:"to"`
	Borrows        int            `json:"borrows"`
	Returns        int            `json:"returns"`
	NewTitles      int            `json:"newTitles"`
	NewUsers       int            `json:"newUsers"`
	OverdueLoans   int            `json:"overdueLoans"`
	TopTitles      []ReportTitle  `json:"topTitles,omitempty"`
	LoansByLibrary map[string]int `json:"loansByLibrary,omitempty"`
}

// ReportTitle is one entry in a report's most-borrowed list.
type ReportTitle struct {
	TitleID string `json:"titleId"`
	Title   string `json:"title"`
	Borrows int    `json:"borrows"`
}

// ImportResult summarizes a CSV import, including row-level validation
// errors reported by the server.
type ImportResult struct {
	CreatedTitles int      `json:"createdTitles"`
	CreatedCopies int      `json:"createdCopies"`
	SkippedRows   int      `json:"skippedRows,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}
