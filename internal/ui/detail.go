package ui

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/api"
	"github.com/librelib/librarian/internal/i18n"
	"github.com/librelib/librarian/internal/labels"
)

// detailState holds the book detail view state. The title itself is
// required; inventories and copies degrade independently.
type detailState struct {
	titleID string
	title   *api.Title

	loading  bool
	notFound bool
	loadErr  error
	seq      int

	inventories []api.Inventory
	copies      []api.Copy
	failed      []string
	extrasBusy  bool

	copyCursor int
}

// Messages

type detailTitleMsg struct {
	seq   int
	title *api.Title
	err   error
}

type detailExtrasMsg struct {
	seq         int
	inventories []api.Inventory
	copies      []api.Copy
	failed      []string
}

type detailReloadMsg struct{}

func detailRefreshCmd() tea.Cmd {
	return func() tea.Msg { return detailReloadMsg{} }
}

// Commands

func (m Model) fetchDetailTitleCmd(seq int, id string) tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		title, err := client.FetchTitle(reqCtx, id)
		return detailTitleMsg{seq: seq, title: title, err: err}
	}
}

// fetchDetailExtrasCmd loads inventories and copies best-effort: a failed
// resource comes back empty and named in failed rather than aborting the view.
func (m Model) fetchDetailExtrasCmd(seq int, id string) tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		var (
			wg          sync.WaitGroup
			inventories []api.Inventory
			copies      []api.Copy
			invErr      error
			copyErr     error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			inventories, invErr = client.FetchInventories(reqCtx, id)
		}()
		go func() {
			defer wg.Done()
			copies, copyErr = client.FetchCopies(reqCtx, api.CopyQuery{TitleID: id})
		}()
		wg.Wait()

		var failed []string
		if invErr != nil {
			failed = append(failed, "inventories")
			inventories = nil
		}
		if copyErr != nil {
			failed = append(failed, "copies")
			copies = nil
		}
		return detailExtrasMsg{seq: seq, inventories: inventories, copies: copies, failed: failed}
	}
}

// enterDetail opens the detail view for a title.
func (m Model) enterDetail(id string) (tea.Model, tea.Cmd) {
	m.currentView = ViewBookDetail
	m.detail = detailState{titleID: id, loading: true, extrasBusy: true, seq: m.detail.seq + 1}
	return m, tea.Batch(
		m.fetchDetailTitleCmd(m.detail.seq, id),
		m.fetchDetailExtrasCmd(m.detail.seq, id),
	)
}

// reloadDetail refetches the current title after a mutation.
func (m Model) reloadDetail() (tea.Model, tea.Cmd) {
	if m.detail.titleID == "" {
		return m, nil
	}
	return m.enterDetail(m.detail.titleID)
}

func (m Model) handleDetailTitle(msg detailTitleMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.detail.seq {
		return m, nil
	}
	m.detail.loading = false
	switch {
	case msg.err == nil:
		m.detail.title = msg.title
	case api.IsNotFound(msg.err):
		// Expected absence renders a view, never a toast.
		m.detail.notFound = true
	default:
		m.detail.loadErr = msg.err
		m.toast = newToast(toastError, api.ServerMessage(msg.err))
	}
	return m, nil
}

func (m Model) handleDetailExtras(msg detailExtrasMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.detail.seq {
		return m, nil
	}
	m.detail.extrasBusy = false
	m.detail.inventories = msg.inventories
	m.detail.copies = msg.copies
	m.detail.failed = msg.failed
	m.detail.copyCursor = clampCursor(m.detail.copyCursor, len(msg.copies))
	return m, nil
}

// orderedCopies returns the copies in display order, grouped by library,
// so the cursor and the rendered rows agree.
func (m Model) orderedCopies() []api.Copy {
	groups := breakdownByLibrary(m.detail.copies, m.snapshot.Catalog.Libraries)
	out := make([]api.Copy, 0, len(m.detail.copies))
	for _, group := range groups {
		out = append(out, group.Copies...)
	}
	return out
}

func (m Model) selectedCopy() *api.Copy {
	ordered := m.orderedCopies()
	if m.detail.copyCursor < len(ordered) {
		cp := ordered[m.detail.copyCursor]
		return &cp
	}
	return nil
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m.reloadDetail()

	case key.Matches(msg, m.keys.Down):
		m.detail.copyCursor = clampCursor(m.detail.copyCursor+1, len(m.detail.copies))
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.detail.copyCursor = clampCursor(m.detail.copyCursor-1, len(m.detail.copies))
		return m, nil
	}

	if m.detail.title == nil {
		return m, nil
	}
	title := m.detail.title

	if key.Matches(msg, m.keys.RequestBorrow) {
		m.modal = newBorrowForm(m, title.ID, m.detail.inventories)
		return m, textinput.Blink
	}

	if !m.session.CanManage() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.EditTitle):
		m.modal = newBookForm(m, title)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.DeleteTitle):
		m.modal = newDeleteTitleConfirm(m, *title, len(m.detail.copies), len(m.detail.inventories))
		return m, nil

	case key.Matches(msg, m.keys.AddCopy):
		m.modal = newCopyForm(m, title.ID, nil)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.EditCopy):
		if cp := m.selectedCopy(); cp != nil {
			m.modal = newCopyForm(m, title.ID, cp)
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keys.DeleteCopy):
		if cp := m.selectedCopy(); cp != nil {
			m.modal = newDeleteCopyConfirm(m, *cp)
		}
		return m, nil

	case key.Matches(msg, m.keys.Assign):
		m.modal = newAssignForm(m, title.ID, m.detail.inventories)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.PrintBarcode):
		if cp := m.selectedCopy(); cp != nil {
			return m, m.writeLabelCmd(labelItemFor(*title, *cp, m.snapshot.Catalog.Libraries), false)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrintQR):
		if cp := m.selectedCopy(); cp != nil {
			return m, m.writeLabelCmd(labelItemFor(*title, *cp, m.snapshot.Catalog.Libraries), true)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrintSheet):
		return m, m.writeSheetCmd(*title)
	}

	return m, nil
}

func labelItemFor(title api.Title, cp api.Copy, libraries []api.Library) labels.Item {
	lib := cp.Library.Resolve(libraries)
	return labels.Item{
		Barcode:       cp.Barcode,
		Title:         title.Title,
		LibraryName:   lib.Name(),
		ShelfLocation: cp.ShelfLocation,
	}
}

// writeLabelCmd writes a single-copy label document to the download dir.
func (m Model) writeLabelCmd(item labels.Item, qr bool) tea.Cmd {
	dir := m.downloadDir
	done := m.tr("toast.label_written", "Label written to {path}")
	missing := m.tr("toast.no_barcode", "This copy has no barcode")
	return func() tea.Msg {
		if item.Barcode == "" {
			return actionDoneMsg{err: errString(missing)}
		}
		doc := item.BarcodeDocument()
		name := "barcode-" + item.Barcode
		if qr {
			doc = item.QRDocument()
			name = "qr-" + item.Barcode
		}
		path, err := labels.Write(dir, name, doc)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{success: strings.ReplaceAll(done, "{path}", path)}
	}
}

// writeSheetCmd writes the all-copies barcode sheet. Copies without a
// barcode are skipped, not errors.
func (m Model) writeSheetCmd(title api.Title) tea.Cmd {
	dir := m.downloadDir
	copies := m.detail.copies
	libraries := m.snapshot.Catalog.Libraries
	done := m.tr("toast.sheet_written", "{count} labels written to {path}")
	empty := m.tr("toast.sheet_empty", "No copies with barcodes to print")
	return func() tea.Msg {
		items := make([]labels.Item, 0, len(copies))
		for _, cp := range copies {
			items = append(items, labelItemFor(title, cp, libraries))
		}
		doc, count := labels.Sheet(items)
		if count == 0 {
			return actionDoneMsg{err: errString(empty)}
		}
		path, err := labels.Write(dir, "barcodes-"+title.ID, doc)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		msg := strings.ReplaceAll(done, "{count}", strconv.Itoa(count))
		msg = strings.ReplaceAll(msg, "{path}", path)
		return actionDoneMsg{success: msg}
	}
}

// errString is a trivial error for user-facing one-liners.
type errString string

func (e errString) Error() string { return string(e) }

// renderDetail renders the full book detail view.
func (m Model) renderDetail() string {
	switch {
	case m.detail.loading:
		return loadingLine(m.styles, m.tr("common.loading", "Loading..."))
	case m.detail.notFound:
		return m.styles.MutedText.Render(m.tr("detail.not_found", "This book no longer exists")) +
			"\n" + m.styles.FaintText.Render(m.tr("common.back_hint", "press esc to go back"))
	case m.detail.loadErr != nil:
		return errorLine(m.styles, m.tr("detail.load_failed", "Could not load this book")+"  "+
			m.tr("common.retry_hint", "press r to retry"))
	case m.detail.title == nil:
		return ""
	}

	title := m.detail.title
	var b strings.Builder

	// Header block
	b.WriteString(m.styles.Text.Bold(true).Render(title.Title))
	if title.Subtitle != "" {
		b.WriteString(m.styles.MutedText.Render("  " + title.Subtitle))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(strings.Join(title.Authors, ", ")))
	b.WriteString("\n")
	meta := joinNonEmpty("  ",
		"ISBN-13 "+title.ISBN13,
		isbn10Label(title.ISBN10),
		title.Publisher,
		yearLabel(title.PublishedYear),
		title.Language,
	)
	b.WriteString(m.styles.FaintText.Render(meta))
	b.WriteString("\n")
	if len(title.Categories) > 0 {
		b.WriteString(m.styles.AccentText.Render(strings.Join(title.Categories, " · ")))
		b.WriteString("\n")
	}
	if title.Description != "" {
		b.WriteString(m.styles.Text.Render(truncate(title.Description, 400)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Degraded-resource strip
	for _, name := range m.detail.failed {
		b.WriteString(errorLine(m.styles, m.trf("detail.partial", "Could not load {name}",
			i18n.Args{"name": name})))
		b.WriteString("\n")
	}
	if m.detail.extrasBusy {
		b.WriteString(loadingLine(m.styles, m.tr("detail.loading_copies", "Loading copies...")))
		return b.String()
	}

	// Status tallies recomputed from the live copy list.
	tally := tallyByStatus(m.detail.copies)
	var badges []string
	for _, status := range api.CopyStatuses {
		if n := tally[status]; n > 0 {
			badges = append(badges, m.styles.StatusStyle(status).Render(status+" "+strconv.Itoa(n)))
		}
	}
	if len(badges) > 0 {
		b.WriteString(strings.Join(badges, " "))
		b.WriteString("\n\n")
	}

	sum := stockSummary{
		TotalCopies:     len(m.detail.copies),
		AvailableCopies: tally[api.CopyAvailable],
	}
	if sum.TotalCopies > 0 {
		b.WriteString(availabilityBar(m.theme, sum))
		b.WriteString("\n\n")
	}

	// Per-library breakdown
	groups := breakdownByLibrary(m.detail.copies, m.snapshot.Catalog.Libraries)
	if len(groups) == 0 {
		b.WriteString(m.styles.MutedText.Render(m.tr("detail.no_copies", "No copies registered")))
		return b.String()
	}

	idx := 0
	for _, group := range groups {
		b.WriteString(m.styles.AccentText.Render(group.Library.Name()))
		b.WriteString(m.styles.FaintText.Render("  " +
			strconv.Itoa(len(group.Copies)) + " " + pluralize(len(group.Copies), "copy", "copies")))
		b.WriteString("\n")
		for _, cp := range group.Copies {
			marker := "  "
			row := m.styles.Text
			if idx == m.detail.copyCursor {
				marker = m.styles.AccentText.Render("> ")
				row = m.styles.Selected
			}
			barcode := cp.Barcode
			if barcode == "" {
				barcode = m.tr("detail.no_barcode", "(no barcode)")
			}
			b.WriteString(marker)
			b.WriteString(row.Render(padRight(barcode, 18)))
			b.WriteString(m.styles.StatusStyle(cp.Status).Render(cp.Status))
			b.WriteString(" " + m.styles.MutedText.Render(joinNonEmpty("  ", cp.Condition, cp.ShelfLocation)))
			b.WriteString("\n")
			idx++
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func isbn10Label(isbn string) string {
	if isbn == "" {
		return ""
	}
	return "ISBN-10 " + isbn
}

func yearLabel(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
