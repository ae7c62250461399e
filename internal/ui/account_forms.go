package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/api"
)

// profileForm edits the signed-in user's display name and phone.
type profileForm struct {
	client  *api.Client
	ctx     context.Context
	refresh tea.Cmd
	form    form
	saved   string
}

func newProfileForm(m Model) *profileForm {
	user := m.session.User()
	phone := ""
	if user.Profile != nil {
		phone = user.Profile.Phone
	}
	fields := []formField{
		newTextField("Name", "", user.Name, func(v string) string {
			if msg := validateRequired("Name", v); msg != "" {
				return msg
			}
			return validateMaxLen("Name", v, maxNameLen)
		}),
		newTextField("Phone", "+48 ...", phone, func(v string) string {
			return validateMaxLen("Phone", v, 32)
		}),
	}
	return &profileForm{
		client:  m.client,
		ctx:     m.ctx,
		refresh: m.refreshSessionCmd(),
		form:    newForm(fields...),
		saved:   m.tr("toast.profile_saved", "Profile updated"),
	}
}

func (f *profileForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
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

func (f *profileForm) submit() (Modal, tea.Cmd, bool) {
	if !f.form.validate() {
		return f, nil, false
	}
	input := api.ProfileInput{
		Name:  f.form.Fields[0].value(),
		Phone: f.form.Fields[1].value(),
	}
	client := f.client
	ctx := f.ctx
	refresh := f.refresh
	saved := f.saved
	cmd := func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if _, err := client.UpdateProfile(reqCtx, input); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{success: saved, refresh: refresh}
	}
	return f, cmd, true
}

func (f *profileForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := f.form.render(theme) + "\n\n" +
		styles.FaintText.Render("ctrl+s save · esc cancel")
	return modalFrame(theme, "Edit profile", body, width, height)
}

// passwordForm changes the signed-in user's password.
type passwordForm struct {
	client *api.Client
	ctx    context.Context
	form   form
	saved  string
}

func newPasswordForm(m Model) *passwordForm {
	current := newTextField("Current password", "", "", func(v string) string {
		return validateRequired("Current password", v)
	})
	current.Input.EchoMode = textinput.EchoPassword
	next := newTextField("New password", "", "", func(v string) string {
		if len(v) < 8 {
			return "New password must be at least 8 characters"
		}
		return ""
	})
	next.Input.EchoMode = textinput.EchoPassword

	f := &passwordForm{
		client: m.client,
		ctx:    m.ctx,
		saved:  m.tr("toast.password_changed", "Password changed"),
	}
	repeat := newTextField("Repeat new password", "", "", nil)
	repeat.Input.EchoMode = textinput.EchoPassword
	f.form = newForm(current, next, repeat)
	return f
}

func (f *passwordForm) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
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

func (f *passwordForm) submit() (Modal, tea.Cmd, bool) {
	if !f.form.validate() {
		return f, nil, false
	}
	if f.form.Fields[1].Input.Value() != f.form.Fields[2].Input.Value() {
		f.form.Fields[2].Err = "Passwords do not match"
		return f, nil, false
	}
	input := api.PasswordInput{
		CurrentPassword: f.form.Fields[0].Input.Value(),
		NewPassword:     f.form.Fields[1].Input.Value(),
	}
	client := f.client
	ctx := f.ctx
	saved := f.saved
	cmd := func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := client.ChangePassword(reqCtx, input); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{success: saved}
	}
	return f, cmd, true
}

func (f *passwordForm) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := f.form.render(theme) + "\n\n" +
		styles.FaintText.Render("ctrl+s save · esc cancel")
	return modalFrame(theme, "Change password", body, width, height)
}
