package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/librelib/librarian/internal/api"
)

// advancedFilter narrows the catalog beyond the plain search term. Empty
// fields match everything.
type advancedFilter struct {
	Title    string
	Author   string
	Category string
	Language string
	Year     int
}

func (f advancedFilter) isZero() bool {
	return f == advancedFilter{}
}

func (f advancedFilter) matches(t api.Title) bool {
	if f.Title != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Title)) {
		return false
	}
	if f.Author != "" {
		found := false
		for _, a := range t.Authors {
			if strings.Contains(strings.ToLower(a), strings.ToLower(f.Author)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Category != "" {
		found := false
		for _, c := range t.Categories {
			if strings.EqualFold(c, f.Category) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Language != "" && !strings.EqualFold(t.Language, f.Language) {
		return false
	}
	if f.Year != 0 && t.PublishedYear != f.Year {
		return false
	}
	return true
}

type advancedSearchMsg struct {
	filter advancedFilter
}

// advancedSearchModal builds an advancedFilter. Submitting with every field
// blank clears the filter.
type advancedSearchModal struct {
	form       form
	categories []string
}

const (
	asTitle = iota
	asAuthor
	asCategory
	asLanguage
	asYear
)

func newAdvancedSearchModal(current advancedFilter, categories []string) *advancedSearchModal {
	year := ""
	if current.Year != 0 {
		year = strconv.Itoa(current.Year)
	}
	fields := []formField{
		newTextField("Title contains", "", current.Title, nil),
		newTextField("Author contains", "", current.Author, nil),
		newTextField("Category", "", current.Category, nil),
		newTextField("Language", "", current.Language, nil),
		newTextField("Published year", "", year, func(v string) string {
			if strings.TrimSpace(v) == "" {
				return ""
			}
			if _, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
				return "Published year must be a number"
			}
			return ""
		}),
	}
	return &advancedSearchModal{form: newForm(fields...), categories: categories}
}

func (a *advancedSearchModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if a.form.Focus < len(a.form.Fields) {
			var cmd tea.Cmd
			a.form.Fields[a.form.Focus].Input, cmd = a.form.Fields[a.form.Focus].Input.Update(msg)
			return a, cmd, false
		}
		return a, nil, false
	}

	switch keyMsg.String() {
	case "esc":
		return a, nil, true
	case "ctrl+s":
		return a.submit()
	case "enter":
		if a.form.Focus == len(a.form.Fields)-1 {
			return a.submit()
		}
		a.form.next()
		return a, nil, false
	}
	return a, a.form.handleKey(keyMsg), false
}

func (a *advancedSearchModal) submit() (Modal, tea.Cmd, bool) {
	if !a.form.validate() {
		return a, nil, false
	}
	filter := advancedFilter{
		Title:    a.form.Fields[asTitle].value(),
		Author:   a.form.Fields[asAuthor].value(),
		Category: a.form.Fields[asCategory].value(),
		Language: a.form.Fields[asLanguage].value(),
	}
	filter.Year, _ = strconv.Atoi(a.form.Fields[asYear].value())
	cmd := func() tea.Msg {
		return advancedSearchMsg{filter: filter}
	}
	return a, cmd, true
}

func (a *advancedSearchModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := a.form.render(theme)
	if len(a.categories) > 0 {
		body += "\n\n" + styles.MutedText.Render(
			"Categories: "+truncate(strings.Join(a.categories, " · "), 64))
	}
	body += "\n\n" + styles.FaintText.Render("ctrl+s apply · blank fields clear · esc cancel")
	return modalFrame(theme, "Advanced search", body, width, height)
}
