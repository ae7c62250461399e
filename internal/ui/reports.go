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

// reportRangeDays are the cycleable report windows.
var reportRangeDays = []int{7, 30, 90, 365}

// reportsState holds the usage-reports view state.
type reportsState struct {
	report   *api.Report
	loading  bool
	loadErr  error
	loaded   bool
	seq      int
	rangeIdx int
}

func newReportsState() reportsState {
	return reportsState{rangeIdx: 1} // 30 days
}

type reportMsg struct {
	seq    int
	report *api.Report
	err    error
}

func (m Model) fetchReportCmd(seq, days int) tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		report, err := client.FetchReport(reqCtx, api.LastDays(days))
		return reportMsg{seq: seq, report: report, err: err}
	}
}

func (m Model) enterReports() (tea.Model, tea.Cmd) {
	if m.reports.loaded || m.reports.loading {
		return m, nil
	}
	return m.reloadReports()
}

func (m Model) reloadReports() (tea.Model, tea.Cmd) {
	m.reports.seq++
	m.reports.loading = true
	m.reports.loadErr = nil
	return m, m.fetchReportCmd(m.reports.seq, reportRangeDays[m.reports.rangeIdx])
}

func (m Model) handleReportLoaded(msg reportMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.reports.seq {
		return m, nil
	}
	m.reports.loading = false
	m.reports.loadErr = msg.err
	if msg.err == nil {
		m.reports.report = msg.report
		m.reports.loaded = true
	}
	return m, nil
}

func (m Model) handleReportsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m.reloadReports()
	case key.Matches(msg, m.keys.CycleFilter):
		m.reports.rangeIdx = (m.reports.rangeIdx + 1) % len(reportRangeDays)
		return m.reloadReports()
	}
	return m, nil
}

func (m Model) renderReports() string {
	var b strings.Builder

	labels := make([]string, len(reportRangeDays))
	for i, days := range reportRangeDays {
		labels[i] = strconv.Itoa(days) + "d"
	}
	b.WriteString(tabBar(m.theme, labels, m.reports.rangeIdx))
	b.WriteString("\n\n")

	switch {
	case m.reports.loading:
		b.WriteString(loadingLine(m.styles, m.tr("common.loading", "Loading...")))
		return b.String()
	case m.reports.loadErr != nil:
		b.WriteString(errorLine(m.styles, m.tr("reports.failed", "Could not load the report")+"  "+
			m.tr("common.retry_hint", "press r to retry")))
		return b.String()
	case m.reports.report == nil:
		b.WriteString(m.styles.MutedText.Render(m.tr("reports.empty", "No report data")))
		return b.String()
	}

	rep := m.reports.report
	b.WriteString(m.styles.FaintText.Render(
		rep.From.Format("2006-01-02") + " – " + rep.To.Format("2006-01-02")))
	b.WriteString("\n\n")

	rows := [][2]string{
		{m.tr("reports.borrows", "Borrows"), strconv.Itoa(rep.Borrows)},
		{m.tr("reports.returns", "Returns"), strconv.Itoa(rep.Returns)},
		{m.tr("reports.new_titles", "New titles"), strconv.Itoa(rep.NewTitles)},
		{m.tr("reports.new_users", "New users"), strconv.Itoa(rep.NewUsers)},
		{m.tr("reports.overdue", "Overdue loans"), strconv.Itoa(rep.OverdueLoans)},
	}
	for _, row := range rows {
		b.WriteString(m.styles.MutedText.Render(padRight(row[0], 18)))
		b.WriteString(m.styles.Text.Render(row[1]))
		b.WriteString("\n")
	}

	if len(rep.TopTitles) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.AccentText.Render(m.tr("reports.top", "Most borrowed")))
		b.WriteString("\n")
		for i, top := range rep.TopTitles {
			b.WriteString(m.styles.FaintText.Render(padRight(strconv.Itoa(i+1)+".", 4)))
			b.WriteString(m.styles.Text.Render(padRight(truncate(top.Title, 40), 42)))
			b.WriteString(m.styles.MutedText.Render(strconv.Itoa(top.Borrows)))
			b.WriteString("\n")
		}
	}

	if len(rep.LoansByLibrary) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.AccentText.Render(m.tr("reports.by_library", "Loans by library")))
		b.WriteString("\n")
		for _, name := range sortedKeys(rep.LoansByLibrary) {
			b.WriteString(m.styles.MutedText.Render(padRight(truncate(name, 28), 30)))
			b.WriteString(m.styles.Text.Render(strconv.Itoa(rep.LoansByLibrary[name])))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
