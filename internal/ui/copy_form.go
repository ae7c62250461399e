package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/api"
)

var copyConditions = []string{"new", "good", "fair", "poor", "damaged"}

// copyForm creates or edits a physical copy. New copies go into one of the
// libraries that already hold an inventory of the title.
type copyForm struct {
	client      *api.Client
	ctx         context.Context
	form        form
	titleID     string
	existing    *api.Copy
	inventories []api.Inventory
	libraries   []api.Library
}

const (
	cfBarcode = iota
	cfStatus
	cfCondition
	cfShelf
	cfLibrary
)

func newCopyForm(m Model, titleID string, existing *api.Copy) *copyForm {
	var cp api.Copy
	if existing != nil {
		cp = *existing
	} else {
		cp.Status = api.CopyAvailable
		cp.Condition = "good"
	}

	fields := []formField{
		newTextField("Barcode", "BC-0001", cp.Barcode, func(v string) string {
			return validateMaxLen("Barcode", v, maxNameLen)
		}),
		newPickerField("Status", api.CopyStatuses, cp.Status),
		newPickerField("Condition", copyConditions, cp.Condition),
		newTextField("Shelf location", "A-12", cp.ShelfLocation, func(v string) string {
			return validateMaxLen("Shelf location", v, maxNameLen)
		}),
	}

	inventories := m.detail.inventories
	libraries := m.snapshot.Catalog.Libraries
	if existing == nil {
		var options []string
		for _, inv := range inventories {
			options = append(options, libraryDisplayName(inv.Library, libraries))
		}
		lib := newPickerField("Library", options, "")
		lib.Validate = func(v string) string {
			return validateRequired("Library", v)
		}
		fields = append(fields, lib)
	}

	return &copyForm{
		client:      m.client,
		ctx:         m.ctx,
		form:        newForm(fields...),
		titleID:     titleID,
		existing:    existing,
		inventories: inventories,
		libraries:   libraries,
	}
}

func libraryDisplayName(ref api.Ref, libraries []api.Library) string {
	return ref.Resolve(libraries).Name()
}

func (f *copyForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
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

func (f *copyForm) submit() (Modal, tea.Cmd, bool) {
	if !f.form.validate() {
		return f, nil, false
	}

	input := api.CopyInput{
		TitleID:       f.titleID,
		Barcode:       f.form.Fields[cfBarcode].value(),
		Status:        f.form.Fields[cfStatus].value(),
		Condition:     f.form.Fields[cfCondition].value(),
		ShelfLocation: f.form.Fields[cfShelf].value(),
	}

	client := f.client
	ctx := f.ctx
	refresh := detailRefreshCmd()

	if f.existing != nil {
		id := f.existing.ID
		input.LibraryID = f.existing.Library.ID
		input.InventoryID = f.existing.InventoryID
		cmd := func() tea.Msg {
			reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			defer cancel()
			if _, err := client.UpdateCopy(reqCtx, id, input); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{success: "Copy updated", refresh: refresh}
		}
		return f, cmd, true
	}

	if idx := f.form.Fields[cfLibrary].Selected; idx >= 0 && idx < len(f.inventories) {
		input.LibraryID = f.inventories[idx].Library.ID
		input.InventoryID = f.inventories[idx].ID
	}

	cmd := func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if _, err := client.CreateCopy(reqCtx, input); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{success: "Copy added", refresh: refresh}
	}
	return f, cmd, true
}

func (f *copyForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	title := "Add copy"
	if f.existing != nil {
		title = "Edit copy"
	}
	body := f.form.render(theme)
	if f.existing == nil && len(f.inventories) == 0 {
		body = styles.WarningText.Render("Assign this title to a library first (L)") + "\n\n" + body
	}
	body += "\n\n" + styles.FaintText.Render("ctrl+s save · enter next field · esc cancel")
	return modalFrame(theme, title, body, width, height)
}
