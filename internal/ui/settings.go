package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/i18n"
)

// handleSettingsKey processes keyboard input for the settings view. Theme
// cycling is global (T); this view adds locale and account actions.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "L":
		m.catalog = i18n.New(nextLocale(m.catalog.Locale()))
		m.savePrefs()
		return m, nil
	case "p":
		m.modal = newProfileForm(m)
		return m, textinput.Blink
	case "w":
		m.modal = newPasswordForm(m)
		return m, textinput.Blink
	}
	return m, nil
}

func nextLocale(current string) string {
	locales := i18n.Locales()
	for i, loc := range locales {
		if loc == current {
			return locales[(i+1)%len(locales)]
		}
	}
	return locales[0]
}

func (m Model) renderSettings() string {
	var b strings.Builder
	user := m.session.User()

	b.WriteString(m.styles.AccentText.Render(m.tr("settings.account", "Account")))
	b.WriteString("\n")
	rows := [][2]string{
		{m.tr("settings.name", "Name"), user.Name},
		{m.tr("settings.email", "Email"), user.Email},
		{m.tr("settings.role", "Role"), user.Role},
		{m.tr("settings.status", "Status"), user.Status},
	}
	if user.Profile != nil && user.Profile.Phone != "" {
		rows = append(rows, [2]string{m.tr("settings.phone", "Phone"), user.Profile.Phone})
	}
	if user.LastLoginAt != nil {
		rows = append(rows, [2]string{m.tr("settings.last_login", "Last login"), relativeTime(*user.LastLoginAt)})
	}
	for _, row := range rows {
		b.WriteString(m.styles.MutedText.Render(padRight(row[0], 14)))
		b.WriteString(m.styles.Text.Render(row[1]))
		b.WriteString("\n")
	}
	if len(user.Libraries) > 0 {
		b.WriteString(m.styles.MutedText.Render(padRight(m.tr("settings.libraries", "Libraries"), 14)))
		b.WriteString(m.styles.Text.Render(strings.Join(user.Libraries, ", ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.AccentText.Render(m.tr("settings.appearance", "Appearance")))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(padRight(m.tr("settings.theme_label", "Theme"), 14)))
	b.WriteString(m.styles.Text.Render(m.theme.Name))
	b.WriteString(m.styles.FaintText.Render("  (" + strings.Join(ThemeNames(), ", ") + ")"))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(padRight(m.tr("settings.locale_label", "Language"), 14)))
	b.WriteString(m.styles.Text.Render(m.catalog.Locale()))
	b.WriteString(m.styles.FaintText.Render("  (" + strings.Join(i18n.Locales(), ", ") + ")"))
	b.WriteString("\n\n")

	b.WriteString(keyHint(m.styles,
		"T", m.tr("settings.cycle_theme", "cycle theme"),
		"L", m.tr("settings.cycle_locale", "switch language"),
		"p", m.tr("settings.edit_profile", "edit profile"),
		"w", m.tr("settings.change_password", "change password")))

	return b.String()
}
