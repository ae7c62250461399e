// Package i18n resolves translation keys to localized display strings.
// Locales are embedded TOML tables; lookups fall back to English and then to
// the caller-supplied default so a missing key never renders blank.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

//go:embed locales/*.toml
var localeFS embed.FS

// DefaultLocale is used when the requested locale is unknown.
const DefaultLocale = "en"

// Args holds interpolation values for placeholders like {term}.
type Args map[string]string

// Catalog resolves keys for one locale.
type Catalog struct {
	locale   string
	messages map[string]string
	fallback map[string]string
}

// Locales lists the embedded locale codes.
func Locales() []string {
	return []string{"en", "pl"}
}

// New loads the catalog for the given locale. Unknown locales fall back to
// English.
func New(locale string) *Catalog {
	locale = strings.ToLower(strings.TrimSpace(locale))
	fallback, err := loadLocale(DefaultLocale)
	if err != nil {
		fallback = map[string]string{}
	}
	if locale == "" || locale == DefaultLocale {
		return &Catalog{locale: DefaultLocale, messages: fallback, fallback: fallback}
	}
	messages, err := loadLocale(locale)
	if err != nil {
		return &Catalog{locale: DefaultLocale, messages: fallback, fallback: fallback}
	}
	return &Catalog{locale: locale, messages: messages, fallback: fallback}
}

// Locale returns the active locale code.
func (c *Catalog) Locale() string {
	if c == nil {
		return DefaultLocale
	}
	return c.locale
}

// T resolves key, falling back to English and finally to def.
func (c *Catalog) T(key, def string) string {
	if c != nil {
		if msg, ok := c.messages[key]; ok {
			return msg
		}
		if msg, ok := c.fallback[key]; ok {
			return msg
		}
	}
	return def
}

// Tf resolves key like T and interpolates {name} placeholders from args.
// Placeholders without a value are left in place.
func (c *Catalog) Tf(key, def string, args Args) string {
	msg := c.T(key, def)
	for name, value := range args {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}
	return msg
}

func loadLocale(locale string) (map[string]string, error) {
	data, err := localeFS.ReadFile("locales/" + locale + ".toml")
	if err != nil {
		return nil, fmt.Errorf("read locale %s: %w", locale, err)
	}
	messages := map[string]string{}
	if err := toml.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("parse locale %s: %w", locale, err)
	}
	return messages, nil
}
