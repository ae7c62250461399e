package api

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

const reportDateLayout = "2006-01-02"

// ReportRange bounds a usage report query.
type ReportRange struct {
	From time.Time
	To   time.Time
}

// LastDays returns a range covering the last n days up to now.
func LastDays(n int) ReportRange {
	now := time.Now()
	return ReportRange{From: now.AddDate(0, 0, -n), To: now}
}

// FetchDashboardStats retrieves top-line counts for the home view.
func (c *Client) FetchDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.get(ctx, "/reports/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// FetchRecentActivity retrieves the latest activity feed entries.
func (c *Client) FetchRecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	var entries []ActivityEntry
	if err := c.get(ctx, "/reports/activity", values, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FetchReport retrieves the aggregate usage report for a date range.
func (c *Client) FetchReport(ctx context.Context, rng ReportRange) (*Report, error) {
	values := url.Values{}
	if !rng.From.IsZero() {
		values.Set("from", rng.From.Format(reportDateLayout))
	}
	if !rng.To.IsZero() {
		values.Set("to", rng.To.Format(reportDateLayout))
	}
	var report Report
	if err := c.get(ctx, "/reports", values, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
