// Package ui provides the Bubble Tea terminal interface for Librarian.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/api"
	"github.com/librelib/librarian/internal/i18n"
	"github.com/librelib/librarian/internal/prefs"
	"github.com/librelib/librarian/internal/session"
	"github.com/librelib/librarian/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewDashboard View = iota
	ViewBooks
	ViewBookDetail
	ViewRequests
	ViewHistory
	ViewImportExport
	ViewReports
	ViewSettings
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Client      *api.Client
	Store       *state.Store
	Session     *session.Session
	Catalog     *i18n.Catalog
	DownloadDir string
	PollTick    time.Duration
	ThemeName   string
	BooksView   string
	PrefsPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	client      *api.Client
	store       *state.Store
	session     *session.Session
	catalog     *i18n.Catalog
	downloadDir string
	prefsPath   string
	pollTick    time.Duration

	// UI state
	keys        keyMap
	theme       Theme
	styles      Styles
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	modal       Modal
	toast       toast

	// Shared data
	snapshot state.Snapshot

	// Per-view state
	dash     dashboardState
	books    booksState
	detail   detailState
	requests requestsState
	history  historyState
	impexp   importExportState
	reports  reportsState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = 30 * time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = i18n.New("en")
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)
	return Model{
		ctx:         ctx,
		client:      opts.Client,
		store:       opts.Store,
		session:     opts.Session,
		catalog:     catalog,
		downloadDir: opts.DownloadDir,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       theme,
		styles:      theme.Styles(),
		currentView: ViewDashboard,
		books:       newBooksState(opts.BooksView),
		impexp:      newImportExportState(),
		reports:     newReportsState(),
	}
}

// tr resolves a translation with a fallback default.
func (m Model) tr(key, def string) string {
	return m.catalog.T(key, def)
}

// trf resolves a translation with {name} interpolation.
func (m Model) trf(key, def string, args i18n.Args) string {
	return m.catalog.Tf(key, def, args)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(time.Second),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	// The dashboard is the entry view; staff sessions load its operations
	// pane right away.
	if m.session.CanManage() {
		cmds = append(cmds, m.fetchDashboardOpsCmd(m.dash.seq))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		return m, nil

	case actionDoneMsg:
		return m.handleActionDone(msg)

	case sessionMsg:
		if msg.err == nil && msg.sess != nil {
			m.session = msg.sess
		}
		return m, nil

	case searchDebounceMsg:
		return m.handleSearchDebounce(msg)

	case advancedSearchMsg:
		m.books.advanced = msg.filter
		m.books.cursor = 0
		return m, nil

	case booksReloadMsg:
		return m.reloadBooks()

	case detailReloadMsg:
		return m.reloadDetail()

	case requestsReloadMsg:
		return m.reloadRequests()

	case booksTitlesMsg:
		return m.handleBooksTitles(msg)

	case booksInventoriesMsg:
		return m.handleBooksInventories(msg)

	case detailTitleMsg:
		return m.handleDetailTitle(msg)

	case detailExtrasMsg:
		return m.handleDetailExtras(msg)

	case requestsMsg:
		return m.handleRequestsLoaded(msg)

	case historyMsg:
		return m.handleHistoryLoaded(msg)

	case importDoneMsg:
		return m.handleImportDone(msg)

	case downloadDoneMsg:
		return m.handleDownloadDone(msg)

	case reportMsg:
		return m.handleReportLoaded(msg)

	case dashboardOpsMsg:
		return m.handleDashboardOps(msg)

	case categoriesMsg:
		return m.handleCategoriesLoaded(msg)
	}

	// Unrouted messages still reach an open modal (textinput blink, etc).
	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An open modal captures all keys.
	if m.modal != nil {
		var cmd tea.Cmd
		var closed bool
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// While a view's text input is focused, only escape and quit are global.
	if m.textEntryActive() {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		default:
			return m.handleViewKey(msg)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ViewDashboard):
		return m.switchView(ViewDashboard)
	case key.Matches(msg, m.keys.ViewBooks):
		return m.switchView(ViewBooks)
	case key.Matches(msg, m.keys.ViewRequests):
		return m.switchView(ViewRequests)
	case key.Matches(msg, m.keys.ViewHistory):
		return m.switchView(ViewHistory)
	case key.Matches(msg, m.keys.ViewImport):
		return m.switchView(ViewImportExport)
	case key.Matches(msg, m.keys.ViewReports):
		return m.switchView(ViewReports)
	case key.Matches(msg, m.keys.ViewSettings):
		return m.switchView(ViewSettings)

	case key.Matches(msg, m.keys.Escape):
		if m.currentView == ViewBookDetail {
			m.currentView = ViewBooks
			return m, nil
		}
		return m, nil
	}

	return m.handleViewKey(msg)
}

// handleViewKey routes a key to the active view.
func (m Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewDashboard:
		return m.handleDashboardKey(msg)
	case ViewBooks:
		return m.handleBooksKey(msg)
	case ViewBookDetail:
		return m.handleDetailKey(msg)
	case ViewRequests:
		return m.handleRequestsKey(msg)
	case ViewHistory:
		return m.handleHistoryKey(msg)
	case ViewImportExport:
		return m.handleImportExportKey(msg)
	case ViewReports:
		return m.handleReportsKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

// textEntryActive reports whether the active view holds keyboard focus in a
// text input, which suspends single-letter global bindings.
func (m Model) textEntryActive() bool {
	switch m.currentView {
	case ViewBooks:
		return m.books.searching
	case ViewImportExport:
		return m.impexp.editingPath
	}
	return false
}

// switchView activates a view and triggers its entry fetch.
func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	if m.currentView == v {
		return m, nil
	}
	m.currentView = v
	switch v {
	case ViewDashboard:
		return m.enterDashboard()
	case ViewBooks:
		return m.enterBooks()
	case ViewRequests:
		return m.enterRequests()
	case ViewHistory:
		return m.enterHistory()
	case ViewReports:
		return m.enterReports()
	}
	return m, nil
}

// handleTick refreshes the store snapshot and reschedules the tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(time.Second)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

// handleActionDone reports a mutation outcome and kicks the follow-up fetch.
func (m Model) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.toast = newToast(toastError, api.ServerMessage(msg.err))
		return m, nil
	}
	if msg.success != "" {
		m.toast = newToast(toastSuccess, msg.success)
	}
	return m, msg.refresh
}

// savePrefs persists the current theme, locale, and books view mode.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:     m.theme.Name,
		Locale:    m.catalog.Locale(),
		BooksView: m.books.viewModeName(),
	})
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderNav())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.renderDashboard()
	case ViewBooks:
		return m.renderBooks()
	case ViewBookDetail:
		return m.renderDetail()
	case ViewRequests:
		return m.renderRequests()
	case ViewHistory:
		return m.renderHistory()
	case ViewImportExport:
		return m.renderImportExport()
	case ViewReports:
		return m.renderReports()
	case ViewSettings:
		return m.renderSettings()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// actionDoneMsg reports a completed mutation. On success the refresh command
// re-fetches whatever the mutation touched.
type actionDoneMsg struct {
	success string
	err     error
	refresh tea.Cmd
}

type sessionMsg struct {
	sess *session.Session
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// actionCmd runs a mutation and reports the outcome.
func (m Model) actionCmd(success string, refresh tea.Cmd, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := fn(reqCtx); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{success: success, refresh: refresh}
	}
}

func (m Model) refreshSessionCmd() tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		sess, err := session.Establish(reqCtx, client)
		return sessionMsg{sess: sess, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
