// Package router maps a classified intent to exactly one responder and
// renders its draft into the reply payload.
package router

import (
	"context"
	"fmt"

	"hr-assistant/internal/assistant/composer"
	"hr-assistant/internal/assistant/handlers"
	"hr-assistant/internal/assistant/scope"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/models"
)

type Router struct {
	handlers map[models.IntentID]handlers.Handler
	composer *composer.Composer
	logger   logger.Logger
}

func New(c *composer.Composer, log logger.Logger) *Router {
	return &Router{
		handlers: make(map[models.IntentID]handlers.Handler),
		composer: c,
		logger:   log.WithFields(map[string]interface{}{"component": "router"}),
	}
}

// Register binds h to intent, replacing any earlier binding.
func (r *Router) Register(intent models.IntentID, h handlers.Handler) {
	r.handlers[intent] = h
}

// RegisterAll binds every entry of hs.
func (r *Router) RegisterAll(hs map[models.IntentID]handlers.Handler) {
	for intent, h := range hs {
		r.Register(intent, h)
	}
}

func (r *Router) Handler(intent models.IntentID) (handlers.Handler, bool) {
	h, ok := r.handlers[intent]
	return h, ok
}

// Dispatch answers intent. ActionFAQ, or an intent with no registered
// handler, is answered from the FAQ table; an intent missing from that table
// gets the generic fallback text.
func (r *Router) Dispatch(ctx context.Context, intent models.IntentID, action scope.Action, req handlers.Request) (reply models.ReplyPayload) {
	h, ok := r.handlers[intent]
	if action == scope.ActionFAQ || !ok {
		h = handlers.FAQ(intent)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("handler panicked", map[string]interface{}{
				"intent": string(intent),
				"panic":  fmt.Sprint(rec),
			})
			reply = r.render(intent, handlers.FAQ(intent).Handle(ctx, req), req)
		}
	}()

	return r.render(intent, h.Handle(ctx, req), req)
}

// OutOfScope is the reply for a message that matched no intent.
func (r *Router) OutOfScope(req handlers.Request) models.ReplyPayload {
	return models.ReplyPayload{
		Reply:  r.composer.Compose(composer.KeyOutOfScope, composer.Bindings{composer.BindingName: displayName(req)}),
		Intent: nil,
	}
}

func (r *Router) render(intent models.IntentID, d handlers.Draft, req handlers.Request) models.ReplyPayload {
	bindings := d.Bindings
	if bindings == nil {
		bindings = composer.Bindings{}
	}
	bindings[composer.BindingName] = displayName(req)

	return models.ReplyPayload{
		Reply:  r.composer.Compose(d.Template, bindings),
		Intent: models.IntentPtr(intent),
	}
}

func displayName(req handlers.Request) string {
	if req.Username == nil {
		return ""
	}
	return *req.Username
}
