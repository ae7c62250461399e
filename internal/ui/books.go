package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/librelib/librarian/internal/api"
	"github.com/librelib/librarian/internal/i18n"
)

const searchDebounce = 300 * time.Millisecond

// booksViewMode selects the catalog layout.
type booksViewMode int

const (
	booksGrid booksViewMode = iota
	booksList
)

// booksState holds the catalog browser state. Titles and inventories load
// independently so one failing does not blank the other.
type booksState struct {
	titles      []api.Title
	inventories []api.Inventory

	loadingTitles      bool
	loadingInventories bool
	titlesErr          error
	inventoriesErr     error
	loaded             bool
	seq                int

	searching   bool
	searchInput textinput.Model
	term        string
	debounceSeq int

	advanced   advancedFilter
	categories []string

	viewMode booksViewMode
	cursor   int
}

func newBooksState(viewMode string) booksState {
	in := textinput.New()
	in.Placeholder = "title or author"
	in.CharLimit = 120
	mode := booksGrid
	if viewMode == "list" {
		mode = booksList
	}
	return booksState{searchInput: in, viewMode: mode}
}

func (s booksState) viewModeName() string {
	if s.viewMode == booksList {
		return "list"
	}
	return "grid"
}

// Messages

type booksTitlesMsg struct {
	seq    int
	titles []api.Title
	err    error
}

type booksInventoriesMsg struct {
	seq         int
	inventories []api.Inventory
	err         error
}

type searchDebounceMsg struct {
	seq int
}

type categoriesMsg struct {
	categories []string
	err        error
}

// Commands

func (m Model) fetchBooksTitlesCmd(seq int) tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		titles, err := client.FetchTitles(reqCtx)
		return booksTitlesMsg{seq: seq, titles: titles, err: err}
	}
}

func (m Model) fetchBooksInventoriesCmd(seq int) tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		inventories, err := client.FetchInventories(reqCtx, "")
		return booksInventoriesMsg{seq: seq, inventories: inventories, err: err}
	}
}

// fetchCategoriesCmd loads the known category names for search suggestions.
func (m Model) fetchCategoriesCmd() tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		categories, err := client.FetchCategories(reqCtx)
		return categoriesMsg{categories: categories, err: err}
	}
}

// handleCategoriesLoaded caches the category names and feeds them into an
// open advanced-search modal. A failed fetch just leaves the hint empty.
func (m Model) handleCategoriesLoaded(msg categoriesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, nil
	}
	m.books.categories = msg.categories
	if modal, ok := m.modal.(*advancedSearchModal); ok {
		modal.categories = msg.categories
	}
	return m, nil
}

func debounceCmd(seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

// enterBooks starts the parallel catalog fetch on first entry.
func (m Model) enterBooks() (tea.Model, tea.Cmd) {
	if m.books.loaded || m.books.loadingTitles || m.books.loadingInventories {
		return m, nil
	}
	return m.reloadBooks()
}

// reloadBooks refetches titles and inventories, invalidating in-flight loads.
func (m Model) reloadBooks() (tea.Model, tea.Cmd) {
	m.books.seq++
	m.books.loadingTitles = true
	m.books.loadingInventories = true
	m.books.titlesErr = nil
	m.books.inventoriesErr = nil
	return m, tea.Batch(
		m.fetchBooksTitlesCmd(m.books.seq),
		m.fetchBooksInventoriesCmd(m.books.seq),
	)
}

// booksRefreshCmd is the fire-and-refetch hook used after title mutations.
func booksRefreshCmd() tea.Cmd {
	return func() tea.Msg { return booksReloadMsg{} }
}

type booksReloadMsg struct{}

func (m Model) handleBooksTitles(msg booksTitlesMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.books.seq {
		return m, nil
	}
	m.books.loadingTitles = false
	m.books.titlesErr = msg.err
	if msg.err == nil {
		m.books.titles = msg.titles
		m.books.loaded = true
	}
	m.books.cursor = clampCursor(m.books.cursor, len(m.visibleTitles()))
	return m, nil
}

func (m Model) handleBooksInventories(msg booksInventoriesMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.books.seq {
		return m, nil
	}
	m.books.loadingInventories = false
	m.books.inventoriesErr = msg.err
	if msg.err == nil {
		m.books.inventories = msg.inventories
	}
	return m, nil
}

func (m Model) handleSearchDebounce(msg searchDebounceMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.books.debounceSeq {
		return m, nil
	}
	m.books.term = strings.TrimSpace(m.books.searchInput.Value())
	m.books.cursor = 0
	return m, nil
}

// visibleTitles applies the search term and the advanced filter.
func (m Model) visibleTitles() []api.Title {
	titles := filterTitles(m.books.titles, m.books.term)
	if m.books.advanced.isZero() {
		return titles
	}
	var out []api.Title
	for _, t := range titles {
		if m.books.advanced.matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// handleBooksKey processes keyboard input for the books view.
func (m Model) handleBooksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.books.searching {
		return m.handleBooksSearchKey(msg)
	}

	visible := m.visibleTitles()

	switch {
	case key.Matches(msg, m.keys.Search):
		m.books.searching = true
		m.books.searchInput.Focus()
		return m, textinput.Blink

	case msg.String() == "A":
		m.modal = newAdvancedSearchModal(m.books.advanced, m.books.categories)
		cmds := []tea.Cmd{textinput.Blink}
		if m.books.categories == nil {
			cmds = append(cmds, m.fetchCategoriesCmd())
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keys.ToggleView):
		if m.books.viewMode == booksGrid {
			m.books.viewMode = booksList
		} else {
			m.books.viewMode = booksGrid
		}
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.reloadBooks()

	case key.Matches(msg, m.keys.AddBook):
		if !m.session.CanManage() {
			return m, nil
		}
		// The form itself warns when no libraries exist; a toast here would
		// be covered by the modal.
		m.modal = newBookForm(m, nil)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Open):
		if m.books.cursor < len(visible) {
			return m.enterDetail(visible[m.books.cursor].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.books.cursor = clampCursor(m.books.cursor+1, len(visible))
	case key.Matches(msg, m.keys.Up):
		m.books.cursor = clampCursor(m.books.cursor-1, len(visible))
	case key.Matches(msg, m.keys.Top):
		m.books.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.books.cursor = clampCursor(len(visible)-1, len(visible))
	case key.Matches(msg, m.keys.PageDown):
		m.books.cursor = clampCursor(m.books.cursor+10, len(visible))
	case key.Matches(msg, m.keys.PageUp):
		m.books.cursor = clampCursor(m.books.cursor-10, len(visible))
	}

	return m, nil
}

// handleBooksSearchKey routes keys into the search input with debounce.
func (m Model) handleBooksSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.books.searching = false
		m.books.searchInput.Blur()
		return m, nil
	case "enter":
		m.books.searching = false
		m.books.searchInput.Blur()
		m.books.term = strings.TrimSpace(m.books.searchInput.Value())
		m.books.cursor = 0
		return m, nil
	}

	before := m.books.searchInput.Value()
	var cmd tea.Cmd
	m.books.searchInput, cmd = m.books.searchInput.Update(msg)
	if m.books.searchInput.Value() != before {
		m.books.debounceSeq++
		return m, tea.Batch(cmd, debounceCmd(m.books.debounceSeq))
	}
	return m, cmd
}

// renderBooks renders the catalog browser.
func (m Model) renderBooks() string {
	var b strings.Builder

	// Search bar
	if m.books.searching {
		b.WriteString(m.styles.AccentText.Render(m.tr("common.search", "Search") + ": "))
		b.WriteString(m.books.searchInput.View())
		b.WriteString("\n")
	} else if m.books.term != "" {
		b.WriteString(m.styles.MutedText.Render(
			m.trf("books.filtered", "Filtered: \"{term}\"", i18n.Args{"term": m.books.term})))
		b.WriteString("\n")
	}
	if !m.books.advanced.isZero() {
		b.WriteString(m.styles.WarningText.Render(m.tr("books.advanced_on", "Advanced filter active (A to edit)")))
		b.WriteString("\n")
	}

	// Per-resource loading and failure strips
	if m.books.loadingTitles {
		b.WriteString(loadingLine(m.styles, m.tr("books.loading", "Loading catalog...")))
		return b.String()
	}
	if m.books.titlesErr != nil {
		b.WriteString(errorLine(m.styles,
			m.tr("books.titles_failed", "Could not load the catalog")+"  "+
				m.tr("common.retry_hint", "press r to retry")))
		return b.String()
	}
	if m.books.loadingInventories {
		b.WriteString(loadingLine(m.styles, m.tr("books.loading_stock", "Loading availability...")))
		b.WriteString("\n")
	} else if m.books.inventoriesErr != nil {
		b.WriteString(errorLine(m.styles,
			m.tr("books.stock_failed", "Availability unavailable")+"  "+
				m.tr("common.retry_hint", "press r to retry")))
		b.WriteString("\n")
	}

	visible := m.visibleTitles()
	if len(visible) == 0 {
		if m.books.term != "" {
			b.WriteString(m.styles.MutedText.Render(
				m.trf("books.no_results", "No books match \"{term}\"", i18n.Args{"term": m.books.term})))
		} else {
			b.WriteString(m.styles.MutedText.Render(m.tr("books.empty", "The catalog is empty")))
		}
		return b.String()
	}

	stock := summarizeStock(m.books.inventories)
	if m.books.viewMode == booksGrid {
		b.WriteString(m.renderBooksGrid(visible, stock))
	} else {
		b.WriteString(m.renderBooksList(visible, stock))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderBooksGrid(titles []api.Title, stock map[string]stockSummary) string {
	cardWidth := 32
	cols := m.width / (cardWidth + 2)
	if cols < 1 {
		cols = 1
	}

	var rows []string
	var row []string
	for i, title := range titles {
		card := m.renderBookCard(title, stock[title.ID], cardWidth, i == m.books.cursor)
		row = append(row, card)
		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderBookCard(title api.Title, sum stockSummary, width int, selected bool) string {
	panel := m.styles.Panel
	if selected {
		panel = m.styles.PanelFocus
	}

	name := m.styles.Text.Bold(true).Render(truncate(title.Title, width-2))
	authors := m.styles.MutedText.Render(truncate(strings.Join(title.Authors, ", "), width-2))
	var bar string
	if sum.TotalCopies > 0 {
		bar = availabilityBar(m.theme, sum)
	} else {
		bar = m.styles.FaintText.Render(m.tr("books.no_copies", "no copies"))
	}
	return panel.Width(width).Render(name + "\n" + authors + "\n" + bar)
}

func (m Model) renderBooksList(titles []api.Title, stock map[string]stockSummary) string {
	var b strings.Builder
	for i, title := range titles {
		marker := "  "
		line := m.styles.Text
		if i == m.books.cursor {
			marker = m.styles.AccentText.Render("> ")
			line = m.styles.Selected
		}
		sum := stock[title.ID]
		var avail string
		if sum.TotalCopies > 0 {
			avail = availabilityBar(m.theme, sum)
		} else {
			avail = m.styles.FaintText.Render(m.tr("books.no_copies", "no copies"))
		}
		b.WriteString(marker)
		b.WriteString(line.Render(padRight(truncate(title.Title, 40), 42)))
		b.WriteString(m.styles.MutedText.Render(padRight(truncate(strings.Join(title.Authors, ", "), 28), 30)))
		b.WriteString(avail)
		b.WriteString("\n")
	}
	return b.String()
}
