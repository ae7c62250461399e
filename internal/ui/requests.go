package ui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/api"
)

// requestsState holds the borrow-requests view state.
type requestsState struct {
	requests []api.BorrowRequest
	loading  bool
	loadErr  error
	loaded   bool
	seq      int

	filter int // 0 = all, 1.. = index into api.RequestStatuses
	cursor int
}

type requestsMsg struct {
	seq      int
	requests []api.BorrowRequest
	err      error
}

type requestsReloadMsg struct{}

func requestsRefreshCmd() tea.Cmd {
	return func() tea.Msg { return requestsReloadMsg{} }
}

func (m Model) fetchRequestsCmd(seq int) tea.Cmd {
	ctx := m.ctx
	client := m.client
	userID := m.session.UserID()
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		requests, err := client.FetchUserRequests(reqCtx, userID)
		if api.IsNotFound(err) {
			// A user with no requests is an empty list, not a failure.
			return requestsMsg{seq: seq}
		}
		return requestsMsg{seq: seq, requests: requests, err: err}
	}
}

func (m Model) enterRequests() (tea.Model, tea.Cmd) {
	if m.requests.loaded || m.requests.loading {
		return m, nil
	}
	return m.reloadRequests()
}

func (m Model) reloadRequests() (tea.Model, tea.Cmd) {
	// Without a resolved user there is nothing to fetch; render empty.
	if m.session.UserID() == "" {
		m.requests.loaded = true
		m.requests.requests = nil
		return m, nil
	}
	m.requests.seq++
	m.requests.loading = true
	m.requests.loadErr = nil
	return m, m.fetchRequestsCmd(m.requests.seq)
}

func (m Model) handleRequestsLoaded(msg requestsMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.requests.seq {
		return m, nil
	}
	m.requests.loading = false
	m.requests.loadErr = msg.err
	if msg.err == nil {
		m.requests.requests = msg.requests
		m.requests.loaded = true
	}
	m.requests.cursor = clampCursor(m.requests.cursor, len(m.visibleRequests()))
	return m, nil
}

// visibleRequests applies the status tab filter.
func (m Model) visibleRequests() []api.BorrowRequest {
	if m.requests.filter == 0 {
		return m.requests.requests
	}
	status := api.RequestStatuses[m.requests.filter-1]
	var out []api.BorrowRequest
	for _, r := range m.requests.requests {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

func (m Model) handleRequestsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleRequests()

	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m.reloadRequests()

	case key.Matches(msg, m.keys.CycleFilter):
		m.requests.filter = (m.requests.filter + 1) % (len(api.RequestStatuses) + 1)
		m.requests.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		if m.requests.cursor >= len(visible) {
			return m, nil
		}
		req := visible[m.requests.cursor]
		if !req.CanCancel() {
			return m, nil
		}
		id := req.ID
		client := m.client
		return m, m.actionCmd(
			m.tr("toast.request_cancelled", "Request cancelled"),
			requestsRefreshCmd(),
			func(ctx context.Context) error {
				return client.CancelRequest(ctx, id)
			})

	case key.Matches(msg, m.keys.Down):
		m.requests.cursor = clampCursor(m.requests.cursor+1, len(visible))
	case key.Matches(msg, m.keys.Up):
		m.requests.cursor = clampCursor(m.requests.cursor-1, len(visible))
	case key.Matches(msg, m.keys.Top):
		m.requests.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.requests.cursor = clampCursor(len(visible)-1, len(visible))
	}

	return m, nil
}

func (m Model) renderRequests() string {
	var b strings.Builder

	counts := countRequestStatuses(m.requests.requests)
	labels := []string{m.tr("common.all", "All") + " " + strconv.Itoa(len(m.requests.requests))}
	for _, status := range api.RequestStatuses {
		labels = append(labels, status+" "+strconv.Itoa(counts[status]))
	}
	b.WriteString(tabBar(m.theme, labels, m.requests.filter))
	b.WriteString("\n\n")

	switch {
	case m.requests.loading:
		b.WriteString(loadingLine(m.styles, m.tr("common.loading", "Loading...")))
		return b.String()
	case m.requests.loadErr != nil:
		b.WriteString(errorLine(m.styles, m.tr("requests.failed", "Could not load your requests")+"  "+
			m.tr("common.retry_hint", "press r to retry")))
		return b.String()
	}

	visible := m.visibleRequests()
	if len(visible) == 0 {
		b.WriteString(m.styles.MutedText.Render(m.tr("requests.empty", "No borrow requests")))
		return b.String()
	}

	for i, req := range visible {
		marker := "  "
		row := m.styles.Text
		if i == m.requests.cursor {
			marker = m.styles.AccentText.Render("> ")
			row = m.styles.Selected
		}
		name := req.TitleID
		if req.Title != nil {
			name = req.Title.Title
		}
		b.WriteString(marker)
		b.WriteString(row.Render(padRight(truncate(name, 36), 38)))
		b.WriteString(m.styles.MutedText.Render(padRight(truncate(req.Library.Name(), 20), 22)))
		b.WriteString(m.styles.StatusStyle(req.Status).Render(req.Status))
		b.WriteString(" " + m.styles.FaintText.Render(relativeTime(req.RequestedAt)))
		if req.CanCancel() && i == m.requests.cursor {
			b.WriteString("  " + m.styles.WarningText.Render(m.tr("requests.cancel_hint", "c to cancel")))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
