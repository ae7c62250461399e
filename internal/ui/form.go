package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formField is a single labeled entry in a modal form. A field is either a
// free-text input or, when Options is set, a picker cycled with left/right.
type formField struct {
	Label    string
	Input    textinput.Model
	Options  []string
	Selected int
	Validate func(string) string
	Err      string
	Disabled bool
	Hint     string
}

func newTextField(label, placeholder, value string, validate func(string) string) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.SetValue(value)
	in.CharLimit = 0
	return formField{Label: label, Input: in, Validate: validate}
}

func newPickerField(label string, options []string, selected string) formField {
	f := formField{Label: label, Options: options}
	for i, opt := range options {
		if opt == selected {
			f.Selected = i
			break
		}
	}
	return f
}

func (f formField) value() string {
	if len(f.Options) > 0 {
		if f.Selected >= 0 && f.Selected < len(f.Options) {
			return f.Options[f.Selected]
		}
		return ""
	}
	return strings.TrimSpace(f.Input.Value())
}

// form holds a set of fields with one focused at a time.
type form struct {
	Fields []formField
	Focus  int
}

func newForm(fields ...formField) form {
	f := form{Fields: fields}
	f.setFocus(f.firstEnabled())
	return f
}

func (f *form) firstEnabled() int {
	for i := range f.Fields {
		if !f.Fields[i].Disabled {
			return i
		}
	}
	return 0
}

func (f *form) setFocus(idx int) {
	for i := range f.Fields {
		f.Fields[i].Input.Blur()
	}
	f.Focus = idx
	if idx >= 0 && idx < len(f.Fields) && len(f.Fields[idx].Options) == 0 {
		f.Fields[idx].Input.Focus()
	}
}

func (f *form) next() {
	n := len(f.Fields)
	for step := 1; step <= n; step++ {
		idx := (f.Focus + step) % n
		if !f.Fields[idx].Disabled {
			f.setFocus(idx)
			return
		}
	}
}

func (f *form) prev() {
	n := len(f.Fields)
	for step := 1; step <= n; step++ {
		idx := (f.Focus - step + n) % n
		if !f.Fields[idx].Disabled {
			f.setFocus(idx)
			return
		}
	}
}

// handleKey routes a key to the focused field. Tab and shift+tab move focus,
// left/right cycle pickers. Returns a command from the text input, if any.
func (f *form) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.next()
		return nil
	case "shift+tab", "up":
		f.prev()
		return nil
	}

	if f.Focus < 0 || f.Focus >= len(f.Fields) {
		return nil
	}
	field := &f.Fields[f.Focus]
	if len(field.Options) > 0 {
		switch msg.String() {
		case "left":
			field.Selected = (field.Selected - 1 + len(field.Options)) % len(field.Options)
		case "right", " ":
			field.Selected = (field.Selected + 1) % len(field.Options)
		}
		return nil
	}

	var cmd tea.Cmd
	field.Input, cmd = field.Input.Update(msg)
	return cmd
}

// validate runs every field validator, records errors, and reports whether
// the form is clean.
func (f *form) validate() bool {
	ok := true
	for i := range f.Fields {
		field := &f.Fields[i]
		field.Err = ""
		if field.Disabled || field.Validate == nil {
			continue
		}
		if msg := field.Validate(field.value()); msg != "" {
			field.Err = msg
			ok = false
		}
	}
	return ok
}

// render draws the form fields with labels, focus markers, and errors.
func (f *form) render(theme Theme) string {
	styles := theme.Styles()
	var b strings.Builder
	for i := range f.Fields {
		field := &f.Fields[i]
		marker := "  "
		labelStyle := styles.MutedText
		if i == f.Focus {
			marker = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent)).Render("> ")
			labelStyle = styles.AccentText
		}
		if field.Disabled {
			labelStyle = styles.FaintText
		}
		b.WriteString(marker + labelStyle.Render(field.Label) + "\n")

		switch {
		case field.Disabled:
			b.WriteString("  " + styles.FaintText.Render(field.value()) + "\n")
		case len(field.Options) > 0:
			b.WriteString("  " + renderPicker(styles, field, i == f.Focus) + "\n")
		default:
			b.WriteString("  " + field.Input.View() + "\n")
		}

		if field.Err != "" {
			b.WriteString("  " + styles.DangerText.Render(field.Err) + "\n")
		} else if field.Hint != "" && i == f.Focus {
			b.WriteString("  " + styles.FaintText.Render(field.Hint) + "\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPicker(styles Styles, field *formField, focused bool) string {
	value := field.value()
	if value == "" {
		value = "(none)"
	}
	if focused {
		return styles.Text.Render("◀ " + value + " ▶")
	}
	return styles.Text.Render(value)
}
