package ui

import (
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/api"
)

// borrowForm submits a borrow request for a title. Only inventories with
// available stock are offered.
type borrowForm struct {
	client  *api.Client
	ctx     context.Context
	form    form
	titleID string
	stocked []api.Inventory
}

const (
	brLibrary = iota
	brNotes
)

func newBorrowForm(m Model, titleID string, inventories []api.Inventory) *borrowForm {
	var stocked []api.Inventory
	var options []string
	for _, inv := range inventories {
		if inv.AvailableCopies > 0 {
			stocked = append(stocked, inv)
			options = append(options, libraryDisplayName(inv.Library, m.snapshot.Catalog.Libraries)+
				" ("+strconv.Itoa(inv.AvailableCopies)+" available)")
		}
	}

	fields := []formField{
		newPickerField("Borrow from", options, ""),
		newTextField("Notes", "", "", func(v string) string {
			return validateMaxLen("Notes", v, maxDescriptionLen)
		}),
	}

	return &borrowForm{
		client:  m.client,
		ctx:     m.ctx,
		form:    newForm(fields...),
		titleID: titleID,
		stocked: stocked,
	}
}

func (f *borrowForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
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

func (f *borrowForm) submit() (Modal, tea.Cmd, bool) {
	if len(f.stocked) == 0 {
		return f, nil, true
	}
	if !f.form.validate() {
		return f, nil, false
	}

	idx := f.form.Fields[brLibrary].Selected
	if idx < 0 || idx >= len(f.stocked) {
		return f, nil, false
	}
	inv := f.stocked[idx]

	input := api.RequestInput{
		TitleID:     f.titleID,
		LibraryID:   inv.Library.ID,
		InventoryID: inv.ID,
		Notes:       f.form.Fields[brNotes].value(),
	}

	client := f.client
	ctx := f.ctx
	cmd := func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if _, err := client.CreateRequest(reqCtx, input); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{success: "Borrow request submitted", refresh: requestsRefreshCmd()}
	}
	return f, cmd, true
}

func (f *borrowForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var body string
	if len(f.stocked) == 0 {
		body = styles.MutedText.Render("No copies available to borrow right now.") +
			"\n\n" + styles.FaintText.Render("esc to close")
	} else {
		body = f.form.render(theme) + "\n\n" +
			styles.FaintText.Render("ctrl+s submit · enter next field · esc cancel")
	}
	return modalFrame(theme, "Request to borrow", body, width, height)
}
