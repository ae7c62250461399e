package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/api"
)

// historyState holds the read-only borrow history view state.
type historyState struct {
	records []api.BorrowRecord
	loading bool
	loadErr error
	loaded  bool
	seq     int

	filter int // 0 = all, 1.. = index into api.RecordStatuses
	cursor int
}

type historyMsg struct {
	seq     int
	records []api.BorrowRecord
	err     error
}

func (m Model) fetchHistoryCmd(seq int) tea.Cmd {
	ctx := m.ctx
	client := m.client
	userID := m.session.UserID()
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		records, err := client.FetchUserRecords(reqCtx, userID)
		if api.IsNotFound(err) {
			return historyMsg{seq: seq}
		}
		return historyMsg{seq: seq, records: records, err: err}
	}
}

func (m Model) enterHistory() (tea.Model, tea.Cmd) {
	if m.history.loaded || m.history.loading {
		return m, nil
	}
	if m.session.UserID() == "" {
		m.history.loaded = true
		return m, nil
	}
	m.history.seq++
	m.history.loading = true
	m.history.loadErr = nil
	return m, m.fetchHistoryCmd(m.history.seq)
}

func (m Model) handleHistoryLoaded(msg historyMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.history.seq {
		return m, nil
	}
	m.history.loading = false
	m.history.loadErr = msg.err
	if msg.err == nil {
		m.history.records = msg.records
		m.history.loaded = true
	}
	m.history.cursor = clampCursor(m.history.cursor, len(m.visibleRecords()))
	return m, nil
}

func (m Model) visibleRecords() []api.BorrowRecord {
	if m.history.filter == 0 {
		return m.history.records
	}
	status := api.RecordStatuses[m.history.filter-1]
	var out []api.BorrowRecord
	for _, r := range m.history.records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleRecords()

	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.history.loaded = false
		return m.enterHistory()

	case key.Matches(msg, m.keys.CycleFilter):
		m.history.filter = (m.history.filter + 1) % (len(api.RecordStatuses) + 1)
		m.history.cursor = 0

	case key.Matches(msg, m.keys.Down):
		m.history.cursor = clampCursor(m.history.cursor+1, len(visible))
	case key.Matches(msg, m.keys.Up):
		m.history.cursor = clampCursor(m.history.cursor-1, len(visible))
	case key.Matches(msg, m.keys.Top):
		m.history.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.history.cursor = clampCursor(len(visible)-1, len(visible))
	}

	return m, nil
}

func (m Model) renderHistory() string {
	var b strings.Builder

	counts := countRecordStatuses(m.history.records)
	labels := []string{m.tr("common.all", "All") + " " + strconv.Itoa(len(m.history.records))}
	for _, status := range api.RecordStatuses {
		labels = append(labels, status+" "+strconv.Itoa(counts[status]))
	}
	b.WriteString(tabBar(m.theme, labels, m.history.filter))
	b.WriteString("\n\n")

	switch {
	case m.history.loading:
		b.WriteString(loadingLine(m.styles, m.tr("common.loading", "Loading...")))
		return b.String()
	case m.history.loadErr != nil:
		b.WriteString(errorLine(m.styles, m.tr("history.failed", "Could not load your history")+"  "+
			m.tr("common.retry_hint", "press r to retry")))
		return b.String()
	}

	visible := m.visibleRecords()
	if len(visible) == 0 {
		b.WriteString(m.styles.MutedText.Render(m.tr("history.empty", "No loans on record")))
		return b.String()
	}

	for i, rec := range visible {
		marker := "  "
		row := m.styles.Text
		if i == m.history.cursor {
			marker = m.styles.AccentText.Render("> ")
			row = m.styles.Selected
		}
		name := rec.TitleID
		if rec.Title != nil {
			name = rec.Title.Title
		}
		b.WriteString(marker)
		b.WriteString(row.Render(padRight(truncate(name, 32), 34)))
		b.WriteString(m.styles.StatusStyle(rec.Status).Render(rec.Status))
		b.WriteString(" " + m.styles.MutedText.Render(
			m.tr("history.due", "due")+" "+rec.DueDate.Format("2006-01-02")))
		if rec.ReturnDate != nil {
			b.WriteString(m.styles.FaintText.Render("  " +
				m.tr("history.returned", "returned") + " " + rec.ReturnDate.Format("2006-01-02")))
		}
		if rec.Fees != nil && rec.Fees.Total() > 0 {
			b.WriteString("  " + m.styles.WarningText.Render(
				fmt.Sprintf("%.2f %s", rec.Fees.Total(), rec.Fees.Currency)))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
