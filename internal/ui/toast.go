package ui

import (
	"time"
)

type toastLevel int

const (
	toastSuccess toastLevel = iota
	toastWarning
	toastError
)

const toastDuration = 4 * time.Second

// toast is a transient notification shown in the footer area.
type toast struct {
	Level   toastLevel
	Message string
	Expires time.Time
}

func newToast(level toastLevel, message string) toast {
	return toast{Level: level, Message: message, Expires: time.Now().Add(toastDuration)}
}

func (t toast) active() bool {
	return t.Message != "" && time.Now().Before(t.Expires)
}

func (t toast) render(styles Styles) string {
	if !t.active() {
		return ""
	}
	switch t.Level {
	case toastSuccess:
		return styles.SuccessText.Render("✓ " + t.Message)
	case toastWarning:
		return styles.WarningText.Render("! " + t.Message)
	default:
		return styles.DangerText.Render("✗ " + t.Message)
	}
}
