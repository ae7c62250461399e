package ui

import (
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/api"
)

// assignForm creates an inventory linking a title to a library. Libraries
// that already hold the title are excluded from the picker.
type assignForm struct {
	client    *api.Client
	ctx       context.Context
	form      form
	titleID   string
	available []api.Library
}

const (
	afLibrary = iota
	afCopies
	afShelf
	afNotes
)

func newAssignForm(m Model, titleID string, inventories []api.Inventory) *assignForm {
	held := make(map[string]bool, len(inventories))
	for _, inv := range inventories {
		held[inv.Library.ID] = true
	}

	var available []api.Library
	var options []string
	for _, lib := range m.snapshot.Catalog.Libraries {
		if !held[lib.ID] {
			available = append(available, lib)
			options = append(options, lib.Name)
		}
	}

	fields := []formField{
		newPickerField("Library", options, ""),
		newTextField("Total copies", "1", "1", func(v string) string {
			return validatePositiveInt("Total copies", v, 0)
		}),
		newTextField("Shelf location", "A-12", "", func(v string) string {
			return validateMaxLen("Shelf location", v, maxNameLen)
		}),
		newTextField("Notes", "", "", func(v string) string {
			return validateMaxLen("Notes", v, maxDescriptionLen)
		}),
	}

	return &assignForm{
		client:    m.client,
		ctx:       m.ctx,
		form:      newForm(fields...),
		titleID:   titleID,
		available: available,
	}
}

func (f *assignForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
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

func (f *assignForm) submit() (Modal, tea.Cmd, bool) {
	if len(f.available) == 0 {
		return f, nil, true
	}
	if !f.form.validate() {
		return f, nil, false
	}

	idx := f.form.Fields[afLibrary].Selected
	if idx < 0 || idx >= len(f.available) {
		return f, nil, false
	}
	copies, _ := strconv.Atoi(f.form.Fields[afCopies].value())

	input := api.InventoryInput{
		TitleID:         f.titleID,
		LibraryID:       f.available[idx].ID,
		TotalCopies:     copies,
		AvailableCopies: copies,
		ShelfLocation:   f.form.Fields[afShelf].value(),
		Notes:           f.form.Fields[afNotes].value(),
	}

	client := f.client
	ctx := f.ctx
	cmd := func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if _, err := client.CreateInventory(reqCtx, input); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{success: "Assigned to library", refresh: detailRefreshCmd()}
	}
	return f, cmd, true
}

func (f *assignForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var body string
	if len(f.available) == 0 {
		body = styles.MutedText.Render("Every library already holds this title.") +
			"\n\n" + styles.FaintText.Render("esc to close")
	} else {
		body = f.form.render(theme) + "\n\n" +
			styles.FaintText.Render("ctrl+s save · enter next field · esc cancel")
	}
	return modalFrame(theme, "Assign to library", body, width, height)
}
