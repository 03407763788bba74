// Package assistant runs one conversation message through classification,
// scope restriction, dispatch and composition.
package assistant

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"hr-assistant/internal/assistant/catalog"
	"hr-assistant/internal/assistant/composer"
	"hr-assistant/internal/assistant/handlers"
	"hr-assistant/internal/assistant/matcher"
	"hr-assistant/internal/assistant/normalize"
	"hr-assistant/internal/assistant/router"
	"hr-assistant/internal/assistant/scope"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/common/metrics"
	"hr-assistant/internal/models"
)

const (
	tracerName = "hr-assistant/assistant"

	// ActionOutOfScope labels messages that matched no intent.
	ActionOutOfScope = "out_of_scope"
)

type Config struct {
	Locale string
	// AdminRoleID is used as given; zero is a valid role id.
	AdminRoleID int64
	// CollaboratorTimeout bounds all collaborator reads for one message; zero disables it.
	CollaboratorTimeout time.Duration
}

type Assistant struct {
	catalog  *catalog.Catalog
	matcher  *matcher.Matcher
	guard    *scope.Guard
	composer *composer.Composer
	router   *router.Router
	users    handlers.UserDirectory
	timeout  time.Duration
	clock    func() time.Time
	tracer   trace.Tracer
	logger   logger.Logger
}

type Option func(*Assistant)

func WithClock(clock func() time.Time) Option {
	return func(a *Assistant) { a.clock = clock }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(a *Assistant) { a.tracer = tracer }
}

// WithComposer replaces the reply templates, e.g. to add FAQ answers for
// intents registered only in an external catalog.
func WithComposer(c *composer.Composer) Option {
	return func(a *Assistant) { a.composer = c }
}

// New wires an Assistant over an already loaded catalog. users may be nil,
// in which case only a username supplied on the request is used.
func New(cfg Config, cat *catalog.Catalog, deps handlers.Dependencies, users handlers.UserDirectory, log logger.Logger, opts ...Option) *Assistant {
	if cat == nil {
		cat = catalog.Empty()
	}

	log = log.WithFields(map[string]interface{}{"component": "assistant"})

	a := &Assistant{
		catalog:  cat,
		matcher:  matcher.New(normalize.New(cfg.Locale)),
		guard:    scope.NewGuard(cfg.AdminRoleID),
		composer: composer.New(nil),
		users:    users,
		timeout:  cfg.CollaboratorTimeout,
		clock:    time.Now,
		tracer:   otel.Tracer(tracerName),
		logger:   log,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.router = router.New(a.composer, log)
	a.router.RegisterAll(handlers.Defaults(deps, log))
	return a
}

func (a *Assistant) Catalog() *catalog.Catalog {
	return a.catalog
}

// Classify exposes the matcher over the assistant's catalog.
func (a *Assistant) Classify(message string) (models.IntentID, bool) {
	return a.matcher.Classify(message, a.catalog)
}

// HandleMessage always returns a reply; classification misses, restricted
// intents, missing data and collaborator faults are all reply variants.
func (a *Assistant) HandleMessage(ctx context.Context, req models.ConversationRequest) models.ReplyPayload {
	start := time.Now()

	ctx, span := a.tracer.Start(ctx, "assistant.HandleMessage")
	defer span.End()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	_, classifySpan := a.tracer.Start(ctx, "assistant.classify")
	folded := a.matcher.Normalize(req.Message)
	intent, matched := a.matcher.Classify(req.Message, a.catalog)
	classifySpan.SetAttributes(attribute.Bool("matched", matched), attribute.String("intent", string(intent)))
	classifySpan.End()

	hreq := handlers.Request{
		Message:  req.Message,
		Folded:   folded,
		CallerID: req.CallerID,
		RoleID:   req.RoleID,
		Username: a.resolveUsername(ctx, req),
		Now:      a.clock(),
	}

	var (
		reply  models.ReplyPayload
		action string
	)
	if !matched {
		action = ActionOutOfScope
		reply = a.router.OutOfScope(hreq)
	} else {
		effective := a.guard.Restrict(intent, req.RoleID)
		action = string(effective)

		dctx, dispatchSpan := a.tracer.Start(ctx, "assistant.dispatch")
		dispatchSpan.SetAttributes(attribute.String("intent", string(intent)), attribute.String("action", action))
		reply = a.router.Dispatch(dctx, intent, effective, hreq)
		dispatchSpan.End()
	}

	elapsed := time.Since(start)
	label := metrics.IntentLabel(string(intent))
	metrics.MessagesHandled.WithLabelValues(label, action).Inc()
	metrics.MessageDuration.WithLabelValues(label).Observe(elapsed.Seconds())

	span.SetAttributes(attribute.String("intent", label), attribute.String("action", action))
	a.logger.Info("message handled", map[string]interface{}{
		"intent":        label,
		"action":        action,
		"messageLength": len(req.Message),
		"durationMs":    elapsed.Milliseconds(),
	})

	return reply
}

// resolveUsername prefers the username supplied with the request and
// otherwise asks the user directory. Any failure yields nil.
func (a *Assistant) resolveUsername(ctx context.Context, req models.ConversationRequest) *string {
	if req.Username != nil {
		if name := strings.TrimSpace(*req.Username); name != "" {
			return &name
		}
	}
	if req.CallerID == nil || a.users == nil {
		return nil
	}

	name, err := a.users.Username(ctx, *req.CallerID)
	if err != nil {
		a.logger.Debug("username lookup failed", map[string]interface{}{
			"collaborator": handlers.CollaboratorUser,
			"error":        err.Error(),
		})
		return nil
	}
	if name = strings.TrimSpace(name); name == "" {
		return nil
	}
	return &name
}
