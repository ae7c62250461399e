package ui

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/api"
	"github.com/librelib/librarian/internal/i18n"
)

// importExportState holds the CSV import/export view state.
type importExportState struct {
	pathInput   textinput.Model
	editingPath bool
	importing   bool
	lastResult  *api.ImportResult
}

func newImportExportState() importExportState {
	in := textinput.New()
	in.Placeholder = "/path/to/books.csv"
	in.CharLimit = 512
	return importExportState{pathInput: in}
}

type importDoneMsg struct {
	result *api.ImportResult
	err    error
}

type downloadDoneMsg struct {
	kind string // "export" or "template"
	path string
	err  error
}

// importCmd uploads the CSV at path as a multipart request.
func (m Model) importCmd(path string) tea.Cmd {
	ctx := m.ctx
	client := m.client
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		defer f.Close()

		reqCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()
		result, err := client.ImportCSV(reqCtx, filepath.Base(path), f)
		return importDoneMsg{result: result, err: err}
	}
}

// downloadCmd fetches a CSV blob and writes it into the download dir.
func (m Model) downloadCmd(kind string) tea.Cmd {
	ctx := m.ctx
	client := m.client
	dir := m.downloadDir
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
		defer cancel()

		var (
			data []byte
			err  error
			name string
		)
		if kind == "template" {
			data, err = client.FetchTemplate(reqCtx)
			name = "librarian-template.csv"
		} else {
			data, err = client.ExportCSV(reqCtx)
			name = "librarian-export-" + time.Now().Format("2006-01-02") + ".csv"
		}
		if err != nil {
			return downloadDoneMsg{kind: kind, err: err}
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return downloadDoneMsg{kind: kind, err: err}
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return downloadDoneMsg{kind: kind, err: err}
		}
		return downloadDoneMsg{kind: kind, path: path}
	}
}

func (m Model) handleImportDone(msg importDoneMsg) (tea.Model, tea.Cmd) {
	m.impexp.importing = false

	if msg.err != nil {
		// Row-level validation failures get their own modal; anything else
		// is an ordinary action failure.
		if rows := api.ValidationErrors(msg.err); len(rows) > 0 {
			m.modal = newRowErrorsModal(m, rows)
			return m, nil
		}
		m.toast = newToast(toastError, api.ServerMessage(msg.err))
		return m, nil
	}

	m.impexp.lastResult = msg.result
	if msg.result != nil && len(msg.result.Errors) > 0 {
		m.modal = newRowErrorsModal(m, msg.result.Errors)
		return m, nil
	}
	m.toast = newToast(toastSuccess, m.tr("import.done", "Import complete"))
	return m, booksRefreshCmd()
}

func (m Model) handleDownloadDone(msg downloadDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.toast = newToast(toastError, api.ServerMessage(msg.err))
		return m, nil
	}
	m.toast = newToast(toastSuccess, m.trf("export.done", "Saved to {path}",
		i18n.Args{"path": msg.path}))
	return m, nil
}

func (m Model) handleImportExportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.impexp.editingPath {
		switch msg.String() {
		case "esc":
			m.impexp.editingPath = false
			m.impexp.pathInput.Blur()
			return m, nil
		case "enter":
			path := strings.TrimSpace(m.impexp.pathInput.Value())
			m.impexp.editingPath = false
			m.impexp.pathInput.Blur()
			if path == "" {
				return m, nil
			}
			m.impexp.importing = true
			return m, m.importCmd(path)
		}
		var cmd tea.Cmd
		m.impexp.pathInput, cmd = m.impexp.pathInput.Update(msg)
		return m, cmd
	}

	if m.impexp.importing {
		return m, nil
	}

	switch {
	case msg.String() == "i":
		if !m.session.CanManage() {
			return m, nil
		}
		m.impexp.editingPath = true
		m.impexp.pathInput.Focus()
		return m, textinput.Blink
	case msg.String() == "e":
		return m, m.downloadCmd("export")
	case msg.String() == "t":
		return m, m.downloadCmd("template")
	case key.Matches(msg, m.keys.Escape):
		return m, nil
	}
	return m, nil
}

func (m Model) renderImportExport() string {
	var b strings.Builder

	b.WriteString(m.styles.AccentText.Render(m.tr("import.title", "CSV import")))
	b.WriteString("\n")
	if !m.session.CanManage() {
		b.WriteString(m.styles.MutedText.Render(m.tr("import.admin_only", "Importing requires an admin account")))
		b.WriteString("\n")
	} else if m.impexp.editingPath {
		b.WriteString(m.styles.Text.Render(m.tr("import.path", "File") + ": "))
		b.WriteString(m.impexp.pathInput.View())
		b.WriteString("\n")
		b.WriteString(m.styles.FaintText.Render(m.tr("import.hint", "enter to upload, esc to cancel")))
		b.WriteString("\n")
	} else if m.impexp.importing {
		b.WriteString(loadingLine(m.styles, m.tr("import.uploading", "Uploading...")))
		b.WriteString("\n")
	} else {
		b.WriteString(m.styles.MutedText.Render(m.tr("import.start", "Press i to choose a CSV file")))
		b.WriteString("\n")
	}

	if res := m.impexp.lastResult; res != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.SuccessText.Render(
			m.trf("import.summary", "Created {titles} titles and {copies} copies", i18n.Args{
				"titles": strconv.Itoa(res.CreatedTitles),
				"copies": strconv.Itoa(res.CreatedCopies),
			})))
		b.WriteString("\n")
		if res.SkippedRows > 0 {
			b.WriteString(m.styles.WarningText.Render(
				m.trf("import.skipped", "{count} rows skipped", i18n.Args{
					"count": strconv.Itoa(res.SkippedRows),
				})))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.AccentText.Render(m.tr("export.title", "Downloads")))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(
		"e  " + m.tr("export.catalog", "Export catalog CSV")))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(
		"t  " + m.tr("template.download", "Download import template")))
	b.WriteString("\n\n")
	b.WriteString(m.styles.FaintText.Render(
		m.trf("export.dir", "Files are written to {dir}", i18n.Args{"dir": m.downloadDir})))

	return strings.TrimRight(b.String(), "\n")
}
