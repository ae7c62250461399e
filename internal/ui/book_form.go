package ui

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/api"
)

const noLibraryOption = "(none)"

// bookForm creates or edits a catalog title. On create it can also assign
// the book to a library, which issues a follow-up inventory request.
type bookForm struct {
	client    *api.Client
	ctx       context.Context
	form      form
	existing  *api.Title
	libraries []api.Library
	refresh   tea.Cmd
	title     string
	saved     string
	warning   string
}

// Field order. The library and copies fields only exist on create.
const (
	bfISBN13 = iota
	bfISBN10
	bfTitle
	bfSubtitle
	bfAuthors
	bfCategories
	bfLanguage
	bfPublisher
	bfYear
	bfDescription
	bfCoverURL
	bfLibrary
	bfCopies
)

func newBookForm(m Model, existing *api.Title) *bookForm {
	var t api.Title
	if existing != nil {
		t = *existing
	}

	fields := []formField{
		newTextField("ISBN-13", "9780000000000", t.ISBN13, func(v string) string {
			return validateISBN(v, 13)
		}),
		newTextField("ISBN-10", "", t.ISBN10, func(v string) string {
			if strings.TrimSpace(v) == "" {
				return ""
			}
			return validateISBN(v, 10)
		}),
		newTextField("Title", "", t.Title, func(v string) string {
			if msg := validateRequired("Title", v); msg != "" {
				return msg
			}
			return validateMaxLen("Title", v, maxTitleLen)
		}),
		newTextField("Subtitle", "", t.Subtitle, func(v string) string {
			return validateMaxLen("Subtitle", v, maxTitleLen)
		}),
		newTextField("Authors", "first author, second author", strings.Join(t.Authors, ", "), func(v string) string {
			if len(splitList(v)) == 0 {
				return "At least one author is required"
			}
			return ""
		}),
		newTextField("Categories", "fiction, sci-fi", strings.Join(t.Categories, ", "), nil),
		newTextField("Language", "en", t.Language, func(v string) string {
			return validateRequired("Language", v)
		}),
		newTextField("Publisher", "", t.Publisher, func(v string) string {
			if msg := validateRequired("Publisher", v); msg != "" {
				return msg
			}
			return validateMaxLen("Publisher", v, maxNameLen)
		}),
		newTextField("Published year", "", yearValue(t.PublishedYear), validateYear),
		newTextField("Description", "", t.Description, func(v string) string {
			return validateMaxLen("Description", v, maxDescriptionLen)
		}),
		newTextField("Cover URL", "https://", t.CoverURL, func(v string) string {
			return validateOptionalURL("Cover URL", v)
		}),
	}

	title := "Edit book"
	saved := "Book updated"
	warning := ""
	if existing == nil {
		title = "Add book"
		saved = "Book created"
		if len(m.snapshot.Catalog.Libraries) == 0 {
			// Shown inside the form; a toast would be hidden behind the modal.
			warning = m.tr("toast.no_libraries",
				"No libraries exist yet; the book will not be assigned anywhere")
		}
		options := []string{noLibraryOption}
		for _, lib := range m.snapshot.Catalog.Libraries {
			options = append(options, lib.Name)
		}
		fields = append(fields,
			newPickerField("Assign to library", options, noLibraryOption),
			newTextField("Initial copies", "1", "1", func(v string) string {
				return validatePositiveInt("Initial copies", v, 1)
			}),
		)
	}

	refresh := booksRefreshCmd()
	if existing != nil {
		refresh = tea.Batch(detailRefreshCmd(), booksRefreshCmd())
	}

	return &bookForm{
		client:    m.client,
		ctx:       m.ctx,
		form:      newForm(fields...),
		existing:  existing,
		libraries: m.snapshot.Catalog.Libraries,
		refresh:   refresh,
		title:     title,
		saved:     saved,
		warning:   warning,
	}
}

func yearValue(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func (f *bookForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// Forward blink and other component messages to the focused input.
		if f.form.Focus < len(f.form.Fields) {
			var cmd tea.Cmd
			f.form.Fields[f.form.Focus].Input, cmd = f.form.Fields[f.form.Focus].Input.Update(msg)
			return f, cmd, false
		}
		return f, nil, false
	}

	switch keyMsg.String() {
	case "esc":
		return f, nil, true
	case "ctrl+s":
		return f.submit()
	case "enter":
		if f.form.Focus == len(f.form.Fields)-1 {
			return f.submit()
		}
		f.form.next()
		return f, nil, false
	}

	return f, f.form.handleKey(keyMsg), false
}

// submit validates and issues the create or update. Creating with a library
// selected issues the title request first, then the inventory request.
func (f *bookForm) submit() (Modal, tea.Cmd, bool) {
	if !f.form.validate() {
		return f, nil, false
	}

	input := api.TitleInput{
		ISBN13:      f.form.Fields[bfISBN13].value(),
		ISBN10:      f.form.Fields[bfISBN10].value(),
		Title:       f.form.Fields[bfTitle].value(),
		Subtitle:    f.form.Fields[bfSubtitle].value(),
		Authors:     splitList(f.form.Fields[bfAuthors].value()),
		Categories:  splitList(f.form.Fields[bfCategories].value()),
		Language:    f.form.Fields[bfLanguage].value(),
		Publisher:   f.form.Fields[bfPublisher].value(),
		Description: f.form.Fields[bfDescription].value(),
		CoverURL:    f.form.Fields[bfCoverURL].value(),
	}
	input.PublishedYear, _ = strconv.Atoi(f.form.Fields[bfYear].value())

	client := f.client
	ctx := f.ctx
	refresh := f.refresh
	saved := f.saved

	if f.existing != nil {
		id := f.existing.ID
		cmd := func() tea.Msg {
			reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			defer cancel()
			if _, err := client.UpdateTitle(reqCtx, id, input); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{success: saved, refresh: refresh}
		}
		return f, cmd, true
	}

	libraryID := ""
	copies := 0
	if len(f.form.Fields) > bfLibrary {
		if name := f.form.Fields[bfLibrary].value(); name != noLibraryOption {
			for _, lib := range f.libraries {
				if lib.Name == name {
					libraryID = lib.ID
					break
				}
			}
			copies, _ = strconv.Atoi(f.form.Fields[bfCopies].value())
		}
	}

	cmd := func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		created, err := client.CreateTitle(reqCtx, input)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		if libraryID != "" {
			_, err = client.CreateInventory(reqCtx, api.InventoryInput{
				TitleID:         created.ID,
				LibraryID:       libraryID,
				TotalCopies:     copies,
				AvailableCopies: copies,
			})
			if err != nil {
				return actionDoneMsg{err: err}
			}
		}
		return actionDoneMsg{success: saved, refresh: refresh}
	}
	return f, cmd, true
}

func (f *bookForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := f.form.render(theme)
	if f.warning != "" {
		body += "\n\n" + styles.WarningText.Render("! "+f.warning)
	}
	body += "\n\n" + styles.FaintText.Render("ctrl+s save · enter next field · esc cancel")
	return modalFrame(theme, f.title, body, width, height)
}
