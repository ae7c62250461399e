package ui

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Field validators used by the modal forms. Each returns "" when the value
// passes. Checks mirror what the backend enforces so most errors surface
// before a request is made.

const (
	maxTitleLen       = 300
	maxNameLen        = 120
	maxDescriptionLen = 2000
	minPublishedYear  = 1400
)

func validateRequired(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return label + " is required"
	}
	return ""
}

func validateMaxLen(label, value string, max int) string {
	if len([]rune(strings.TrimSpace(value))) > max {
		return label + " must be at most " + strconv.Itoa(max) + " characters"
	}
	return ""
}

// validateISBN checks digit count only; checksum validation is the server's
// concern. Hyphens and spaces are ignored.
func validateISBN(value string, digits int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(value))
	if len(cleaned) != digits {
		return "ISBN-" + strconv.Itoa(digits) + " must have " + strconv.Itoa(digits) + " digits"
	}
	for i, r := range cleaned {
		if r >= '0' && r <= '9' {
			continue
		}
		// ISBN-10 allows a trailing X check digit.
		if digits == 10 && i == 9 && (r == 'X' || r == 'x') {
			continue
		}
		return "ISBN-" + strconv.Itoa(digits) + " must have " + strconv.Itoa(digits) + " digits"
	}
	return ""
}

func validateOptionalURL(label, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return label + " must be a valid http(s) URL"
	}
	return ""
}

func validateYear(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Published year is required"
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return "Published year must be a number"
	}
	maxYear := time.Now().Year() + 1
	if year < minPublishedYear || year > maxYear {
		return "Published year must be between " + strconv.Itoa(minPublishedYear) + " and " + strconv.Itoa(maxYear)
	}
	return ""
}

func validatePositiveInt(label, value string, min int) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return label + " is required"
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return label + " must be a number"
	}
	if n < min {
		return label + " must be at least " + strconv.Itoa(min)
	}
	return ""
}

// splitList splits a comma-separated input into trimmed, non-empty entries.
// Used for authors and categories.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
