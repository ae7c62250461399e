package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// rowErrorsModal lists per-row CSV validation failures.
type rowErrorsModal struct {
	title  string
	errors []string
	offset int
}

const rowErrorsPageSize = 12

func newRowErrorsModal(m Model, errors []string) *rowErrorsModal {
	return &rowErrorsModal{
		title:  m.tr("import.errors_title", "Import validation errors"),
		errors: errors,
	}
}

func (r *rowErrorsModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil, false
	}
	switch keyMsg.String() {
	case "esc", "enter", "q":
		return r, nil, true
	case "j", "down":
		if r.offset < len(r.errors)-rowErrorsPageSize {
			r.offset++
		}
	case "k", "up":
		if r.offset > 0 {
			r.offset--
		}
	}
	return r, nil, false
}

func (r *rowErrorsModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder

	b.WriteString(styles.MutedText.Render(strconv.Itoa(len(r.errors)) + " " +
		pluralize(len(r.errors), "row failed", "rows failed")))
	b.WriteString("\n\n")

	end := r.offset + rowErrorsPageSize
	if end > len(r.errors) {
		end = len(r.errors)
	}
	for _, line := range r.errors[r.offset:end] {
		b.WriteString(styles.DangerText.Render("✗ "))
		b.WriteString(styles.Text.Render(truncate(line, 56)))
		b.WriteString("\n")
	}
	if len(r.errors) > rowErrorsPageSize {
		b.WriteString("\n" + styles.FaintText.Render("j/k scroll"))
	}
	b.WriteString("\n" + styles.FaintText.Render("esc to close"))

	return modalFrame(theme, r.title, strings.TrimRight(b.String(), "\n"), width, height)
}
