package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top line: logo, connection state, signed-in user.
func (m Model) renderHeader() string {
	logo := m.styles.Logo.Render(" " + m.tr("app.title", "Librarian") + " ")

	var status string
	switch {
	case m.snapshot.IsOffline():
		status = m.styles.DangerText.Render("● " + m.tr("app.offline", "offline"))
	case m.snapshot.LastError != nil:
		status = m.styles.WarningText.Render("● " + m.tr("app.degraded", "degraded"))
	default:
		status = m.styles.SuccessText.Render("● " + m.tr("app.online", "online"))
	}
	if !m.snapshot.LastUpdated.IsZero() {
		status += m.styles.FaintText.Render("  " + m.trf("app.updated", "updated {when}",
			map[string]string{"when": relativeTime(m.snapshot.LastUpdated)}))
	}

	user := m.session.User()
	who := m.styles.MutedText.Render(joinNonEmpty(" ", user.Name, "("+user.Role+")"))

	left := logo + " " + status
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(who) - 2
	if gap < 1 {
		gap = 1
	}
	return m.styles.Header.Render(left + strings.Repeat(" ", gap) + who)
}

// renderNav renders the view tab bar.
func (m Model) renderNav() string {
	labels := []string{
		"1 " + m.tr("nav.dashboard", "Dashboard"),
		"2 " + m.tr("nav.books", "Books"),
		"3 " + m.tr("nav.requests", "Requests"),
		"4 " + m.tr("nav.history", "History"),
		"5 " + m.tr("nav.import", "Import/Export"),
		"6 " + m.tr("nav.reports", "Reports"),
		"7 " + m.tr("nav.settings", "Settings"),
	}
	active := 0
	switch m.currentView {
	case ViewBooks, ViewBookDetail:
		active = 1
	case ViewRequests:
		active = 2
	case ViewHistory:
		active = 3
	case ViewImportExport:
		active = 4
	case ViewReports:
		active = 5
	case ViewSettings:
		active = 6
	}
	return tabBar(m.theme, labels, active)
}

// renderFooter renders the toast when active, otherwise contextual key hints.
func (m Model) renderFooter() string {
	if m.toast.active() {
		return m.styles.Footer.Render(m.toast.render(m.styles))
	}
	return m.styles.Footer.Render(m.footerHints())
}

func (m Model) footerHints() string {
	switch m.currentView {
	case ViewBooks:
		return keyHint(m.styles,
			"/", m.tr("common.search", "search"),
			"v", m.tr("books.toggle", "grid/list"),
			"enter", m.tr("common.open", "open"),
			"a", m.tr("books.add", "add"),
			"?", m.tr("common.help", "help"))
	case ViewBookDetail:
		if m.session.CanManage() {
			return keyHint(m.styles,
				"R", m.tr("detail.borrow", "borrow"),
				"e", m.tr("detail.edit", "edit"),
				"a", m.tr("detail.add_copy", "add copy"),
				"L", m.tr("detail.assign", "assign"),
				"b/Q/B", m.tr("detail.labels", "labels"),
				"esc", m.tr("common.back", "back"))
		}
		return keyHint(m.styles,
			"R", m.tr("detail.borrow", "borrow"),
			"esc", m.tr("common.back", "back"),
			"?", m.tr("common.help", "help"))
	case ViewRequests:
		return keyHint(m.styles,
			"f", m.tr("requests.filter", "filter"),
			"c", m.tr("requests.cancel", "cancel"),
			"r", m.tr("common.refresh", "refresh"))
	case ViewImportExport:
		return keyHint(m.styles,
			"i", m.tr("import.run", "import"),
			"e", m.tr("export.run", "export"),
			"t", m.tr("template.run", "template"))
	case ViewReports:
		return keyHint(m.styles,
			"f", m.tr("reports.range", "range"),
			"r", m.tr("common.refresh", "refresh"))
	case ViewSettings:
		return keyHint(m.styles,
			"T", m.tr("settings.theme", "theme"),
			"L", m.tr("settings.locale", "locale"),
			"p", m.tr("settings.profile", "profile"),
			"w", m.tr("settings.password", "password"))
	default:
		return keyHint(m.styles,
			"1-7", m.tr("common.views", "views"),
			"?", m.tr("common.help", "help"),
			"ctrl+c", m.tr("common.quit", "quit"))
	}
}

// renderHelp renders the full-screen key reference overlay.
func (m Model) renderHelp() string {
	rows := [][2]string{
		{"1-7", m.tr("help.views", "Switch view")},
		{"j/k", m.tr("help.move", "Move selection")},
		{"g/G", m.tr("help.ends", "Jump to top/bottom")},
		{"enter", m.tr("help.open", "Open selection")},
		{"/", m.tr("help.search", "Search books")},
		{"v", m.tr("help.toggle", "Toggle grid/list")},
		{"R", m.tr("help.borrow", "Request to borrow")},
		{"a", m.tr("help.add", "Add book or copy")},
		{"e / E", m.tr("help.edit", "Edit title / copy")},
		{"D", m.tr("help.delete_title", "Delete title")},
		{"x", m.tr("help.delete_copy", "Delete copy")},
		{"L", m.tr("help.assign", "Assign to library")},
		{"b / Q / B", m.tr("help.labels", "Barcode / QR / sheet labels")},
		{"f", m.tr("help.filter", "Cycle status filter or range")},
		{"c", m.tr("help.cancel", "Cancel pending request")},
		{"r", m.tr("help.refresh", "Refresh / retry")},
		{"T", m.tr("help.theme", "Cycle theme")},
		{"esc", m.tr("help.back", "Back / dismiss")},
		{"ctrl+c", m.tr("help.quit", "Quit")},
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(m.styles.AccentText.Render(padRight(row[0], 12)))
		b.WriteString(m.styles.Text.Render(row[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n" + m.styles.FaintText.Render(m.tr("help.dismiss", "Press any key to close")))

	return modalFrame(m.theme, m.tr("help.title", "Keyboard reference"), strings.TrimRight(b.String(), "\n"), m.width, m.height)
}
