package ui

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/librelib/librarian/internal/api"
	"github.com/librelib/librarian/internal/i18n"
)

// dashboardState holds the admin operations pane: pending requests, overdue
// and active loans, and users awaiting approval. Non-admin sessions never
// fetch it.
type dashboardState struct {
	pending      []api.BorrowRequest
	overdue      []api.BorrowRecord
	activeLoans  int
	pendingUsers int
	failed       []string
	loaded       bool
	seq          int
}

type dashboardOpsMsg struct {
	seq          int
	pending      []api.BorrowRequest
	overdue      []api.BorrowRecord
	activeLoans  int
	pendingUsers int
	failed       []string
}

// fetchDashboardOpsCmd loads the operations pane best-effort: each resource
// that fails comes back empty and named in failed.
func (m Model) fetchDashboardOpsCmd(seq int) tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		var (
			wg      sync.WaitGroup
			pending []api.BorrowRequest
			overdue []api.BorrowRecord
			active  []api.BorrowRecord
			users   []api.User

			pendingErr, overdueErr, activeErr, usersErr error
		)
		wg.Add(4)
		go func() {
			defer wg.Done()
			pending, pendingErr = client.FetchPendingRequests(reqCtx)
		}()
		go func() {
			defer wg.Done()
			overdue, overdueErr = client.FetchOverdueRecords(reqCtx)
		}()
		go func() {
			defer wg.Done()
			active, activeErr = client.FetchActiveRecords(reqCtx)
		}()
		go func() {
			defer wg.Done()
			users, usersErr = client.FetchUsers(reqCtx)
		}()
		wg.Wait()

		msg := dashboardOpsMsg{seq: seq, pending: pending, overdue: overdue}
		if pendingErr != nil {
			msg.failed = append(msg.failed, "pending requests")
			msg.pending = nil
		}
		if overdueErr != nil {
			msg.failed = append(msg.failed, "overdue loans")
			msg.overdue = nil
		}
		if activeErr != nil {
			msg.failed = append(msg.failed, "active loans")
		} else {
			msg.activeLoans = len(active)
		}
		if usersErr != nil {
			msg.failed = append(msg.failed, "users")
		} else {
			for _, u := range users {
				if u.Status == "pending" {
					msg.pendingUsers++
				}
			}
		}
		return msg
	}
}

// enterDashboard refetches the operations pane for staff sessions.
func (m Model) enterDashboard() (tea.Model, tea.Cmd) {
	if !m.session.CanManage() {
		return m, nil
	}
	m.dash.seq++
	return m, m.fetchDashboardOpsCmd(m.dash.seq)
}

func (m Model) handleDashboardOps(msg dashboardOpsMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.dash.seq {
		return m, nil
	}
	m.dash.pending = msg.pending
	m.dash.overdue = msg.overdue
	m.dash.activeLoans = msg.activeLoans
	m.dash.pendingUsers = msg.pendingUsers
	m.dash.failed = msg.failed
	m.dash.loaded = true
	return m, nil
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Refresh) {
		return m.enterDashboard()
	}
	return m, nil
}

const dashboardOpsRows = 5

// renderDashboard renders the stat cards, the staff operations pane, and the
// recent activity feed.
func (m Model) renderDashboard() string {
	var b strings.Builder

	if m.snapshot.LastUpdated.IsZero() {
		b.WriteString(loadingLine(m.styles, m.tr("common.loading", "Loading...")))
		return b.String()
	}

	if m.snapshot.ResourceFailed("stats") {
		b.WriteString(errorLine(m.styles, m.tr("dashboard.stats_failed", "Statistics unavailable")))
		b.WriteString("\n\n")
	} else if stats := m.snapshot.Catalog.Stats; stats != nil {
		cards := []string{
			m.statCard(m.tr("dashboard.titles", "Titles"), strconv.Itoa(stats.TotalTitles), m.theme.Accent),
			m.statCard(m.tr("dashboard.copies", "Copies"), strconv.Itoa(stats.TotalCopies), m.theme.Accent),
			m.statCard(m.tr("dashboard.available", "Available"), strconv.Itoa(stats.AvailableCopies), m.theme.Success),
			m.statCard(m.tr("dashboard.loans", "Active loans"), strconv.Itoa(stats.ActiveLoans), m.theme.Info),
			m.statCard(m.tr("dashboard.overdue", "Overdue"), strconv.Itoa(stats.OverdueLoans), m.theme.Danger),
			m.statCard(m.tr("dashboard.pending", "Pending requests"), strconv.Itoa(stats.PendingRequests), m.theme.Warning),
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		b.WriteString("\n\n")
	}

	if m.session.CanManage() {
		b.WriteString(m.renderDashboardOps())
		b.WriteString("\n")
	}

	b.WriteString(m.styles.AccentText.Render(m.tr("dashboard.activity", "Recent activity")))
	b.WriteString("\n")
	switch {
	case m.snapshot.ResourceFailed("activity"):
		b.WriteString(errorLine(m.styles, m.tr("dashboard.activity_failed", "Activity feed unavailable")))
	case len(m.snapshot.Catalog.Activity) == 0:
		b.WriteString(m.styles.MutedText.Render(m.tr("dashboard.no_activity", "No recent activity")))
	default:
		for _, entry := range m.snapshot.Catalog.Activity {
			when := m.styles.FaintText.Render(padRight(relativeTime(entry.Timestamp), 16))
			who := ""
			if entry.UserName != "" {
				who = m.styles.MutedText.Render(entry.UserName + " ")
			}
			line := when + who + m.styles.Text.Render(entry.Message)
			b.WriteString(truncate(line, m.width*2) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderDashboardOps renders the staff pane: pending request and overdue
// loan rows plus the active-loan and user-approval counters.
func (m Model) renderDashboardOps() string {
	var b strings.Builder

	b.WriteString(m.styles.AccentText.Render(m.tr("dashboard.ops", "Operations")))
	b.WriteString("\n")

	for _, name := range m.dash.failed {
		b.WriteString(errorLine(m.styles, m.trf("dashboard.ops_partial", "Could not load {name}",
			i18n.Args{"name": name})))
		b.WriteString("\n")
	}
	if !m.dash.loaded {
		b.WriteString(loadingLine(m.styles, m.tr("common.loading", "Loading...")))
		b.WriteString("\n")
		return b.String()
	}

	summary := joinNonEmpty("  ·  ",
		strconv.Itoa(m.dash.activeLoans)+" "+m.tr("dashboard.active_loans", "loans out"),
		strconv.Itoa(m.dash.pendingUsers)+" "+m.tr("dashboard.pending_users", "users awaiting approval"),
	)
	b.WriteString(m.styles.MutedText.Render(summary))
	b.WriteString("\n")

	if len(m.dash.pending) == 0 && !m.dashFailed("pending requests") {
		b.WriteString(m.styles.MutedText.Render(m.tr("dashboard.no_pending", "No requests awaiting review")))
		b.WriteString("\n")
	}
	for i, req := range m.dash.pending {
		if i == dashboardOpsRows {
			b.WriteString(m.styles.FaintText.Render("… " +
				strconv.Itoa(len(m.dash.pending)-dashboardOpsRows) + " more"))
			b.WriteString("\n")
			break
		}
		b.WriteString(m.statusDot(req.Status))
		b.WriteString(m.styles.Text.Render(padRight(truncate(m.titleNameFor(req.TitleID, req.Title), 34), 36)))
		b.WriteString(m.styles.FaintText.Render(relativeTime(req.RequestedAt)))
		b.WriteString("\n")
	}

	for i, rec := range m.dash.overdue {
		if i == dashboardOpsRows {
			b.WriteString(m.styles.FaintText.Render("… " +
				strconv.Itoa(len(m.dash.overdue)-dashboardOpsRows) + " more"))
			b.WriteString("\n")
			break
		}
		b.WriteString(m.statusDot(api.RecordOverdue))
		b.WriteString(m.styles.Text.Render(padRight(truncate(m.titleNameFor(rec.TitleID, rec.Title), 34), 36)))
		b.WriteString(m.styles.MutedText.Render(m.trf("dashboard.due", "due {date}",
			i18n.Args{"date": rec.DueDate.Format("2006-01-02")})))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) dashFailed(name string) bool {
	for _, failed := range m.dash.failed {
		if failed == name {
			return true
		}
	}
	return false
}

// statusDot renders a colored marker for a request or loan status.
func (m Model) statusDot(status string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.StatusColor(status))).
		Render("● ")
}

// titleNameFor prefers the populated title, then the snapshot catalog, then
// the raw id.
func (m Model) titleNameFor(titleID string, populated *api.Title) string {
	if populated != nil && populated.Title != "" {
		return populated.Title
	}
	for i := range m.snapshot.Catalog.Titles {
		if m.snapshot.Catalog.Titles[i].ID == titleID {
			return m.snapshot.Catalog.Titles[i].Title
		}
	}
	return titleID
}

func (m Model) statCard(label, value, color string) string {
	return m.styles.Panel.Render(
		lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(value) +
			"\n" + m.styles.MutedText.Render(label))
}
