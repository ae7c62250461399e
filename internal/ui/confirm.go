package ui

import (
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/api"
)

// confirmModal asks a yes/no question before running a destructive action.
type confirmModal struct {
	title   string
	message string
	warning string
	confirm tea.Cmd
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch keyMsg.String() {
	case "y", "enter":
		return c, c.confirm, true
	case "n", "esc":
		return c, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.Text.Render(c.message)
	if c.warning != "" {
		body += "\n\n" + styles.DangerText.Render(c.warning)
	}
	body += "\n\n" + styles.FaintText.Render("y confirm · n cancel")
	return modalFrame(theme, c.title, body, width, height)
}

// newDeleteTitleConfirm enumerates everything the cascade will remove.
func newDeleteTitleConfirm(m Model, title api.Title, copies, inventories int) *confirmModal {
	client := m.client
	ctx := m.ctx
	id := title.ID
	success := m.tr("toast.title_deleted", "Book deleted")

	confirm := func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := client.DeleteTitle(reqCtx, id); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{success: success, refresh: booksRefreshCmd()}
	}

	warning := "This also removes " +
		strconv.Itoa(inventories) + " " + pluralize(inventories, "library assignment", "library assignments") +
		" and " + strconv.Itoa(copies) + " " + pluralize(copies, "copy", "copies") + "."

	return &confirmModal{
		title:   m.tr("detail.delete_title", "Delete book"),
		message: "Delete \"" + title.Title + "\"?",
		warning: warning,
		confirm: confirm,
	}
}

// newDeleteCopyConfirm quotes the literal barcode so the operator can check
// it against the physical item.
func newDeleteCopyConfirm(m Model, cp api.Copy) *confirmModal {
	client := m.client
	ctx := m.ctx
	id := cp.ID
	success := m.tr("toast.copy_deleted", "Copy deleted")

	confirm := func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := client.DeleteCopy(reqCtx, id); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{success: success, refresh: detailRefreshCmd()}
	}

	barcode := cp.Barcode
	if barcode == "" {
		barcode = m.tr("detail.no_barcode", "(no barcode)")
	}

	return &confirmModal{
		title:   m.tr("detail.delete_copy", "Delete copy"),
		message: "Delete copy \"" + barcode + "\"?",
		confirm: confirm,
	}
}
