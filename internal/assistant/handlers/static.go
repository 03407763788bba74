package handlers

import (
	"context"

	"hr-assistant/internal/assistant/composer"
	"hr-assistant/internal/models"
)

// PasswordHelp refuses to reveal or reset credentials and points at the
// self-service reset flow. It never reads data.
func PasswordHelp() Handler {
	return HandlerFunc(func(context.Context, Request) Draft {
		return draft(composer.KeyPasswordHelp)
	})
}

// FAQ answers intent with its static text.
func FAQ(intent models.IntentID) Handler {
	return HandlerFunc(func(context.Context, Request) Draft {
		return draft(composer.FAQKey(intent))
	})
}
