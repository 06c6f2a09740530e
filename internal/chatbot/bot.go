package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vendorconnect/vendorconnect-platform/internal/marketplace"
	"github.com/vendorconnect/vendorconnect-platform/internal/observability/metrics"
	"github.com/vendorconnect/vendorconnect-platform/internal/tenancy"
	"github.com/vendorconnect/vendorconnect-platform/pkg/logging"
)

// ErrProcessing wraps every failure converted into the generic apology reply.
var ErrProcessing = errors.New("chatbot: failed to process turn")

const (
	sourceMessage = "message"
	sourceTag     = "tag"
)

// Request is one free-text chat turn.
type Request struct {
	Message  string
	Language string
	Context  ConversationContext
	// Vendor is nil for guests.
	Vendor *marketplace.Vendor
}

// TagRequest is one widget button press.
type TagRequest struct {
	Action   string
	Language string
	Context  ConversationContext
	Vendor   *marketplace.Vendor
}

type turn struct {
	lang    Language
	vendor  *marketplace.Vendor
	message string
	context ConversationContext
}

func (t turn) businessType() marketplace.BusinessType {
	if t.vendor == nil {
		return ""
	}
	return t.vendor.BusinessType
}

// Bot turns chat messages and tag actions into localized replies. It keeps no
// per-conversation state and is safe for concurrent use.
type Bot struct {
	catalog   marketplace.Repository
	logger    *logging.Logger
	metrics   *metrics.ChatbotMetrics
	tracer    trace.Tracer
	threshold float64
}

type Option func(*Bot)

// WithLogger sets the logger used for failures and classification traces.
func WithLogger(logger *logging.Logger) Option {
	return func(b *Bot) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMetrics records served turns and failures.
func WithMetrics(m *metrics.ChatbotMetrics) Option {
	return func(b *Bot) {
		b.metrics = m
	}
}

// WithConfidenceThreshold overrides DefaultConfidenceThreshold. Values outside [0,1] are ignored.
func WithConfidenceThreshold(threshold float64) Option {
	return func(b *Bot) {
		if threshold >= 0 && threshold <= 1 {
			b.threshold = threshold
		}
	}
}

// NewBot creates a Bot reading enrichment data from catalog.
func NewBot(catalog marketplace.Repository, opts ...Option) *Bot {
	if catalog == nil {
		panic("chatbot: catalog repository cannot be nil")
	}
	b := &Bot{
		catalog:   catalog,
		logger:    logging.Default(),
		tracer:    otel.Tracer("vendorconnect.internal.chatbot"),
		threshold: DefaultConfidenceThreshold,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ProcessMessage serves a free-text turn. On failure it returns the localized
// apology envelope together with an error wrapping ErrProcessing.
func (b *Bot) ProcessMessage(ctx context.Context, req Request) (Envelope, error) {
	ctx, span := b.tracer.Start(ctx, "chatbot.process_message")
	defer span.End()

	t := newTurn(req.Language, req.Vendor, req.Message, req.Context)
	return b.serve(ctx, span, sourceMessage, t, func(ctx context.Context, t turn) (Envelope, error) {
		return b.route(ctx, t)
	})
}

// ProcessTagAction serves a widget button press, bypassing classification.
func (b *Bot) ProcessTagAction(ctx context.Context, req TagRequest) (Envelope, error) {
	ctx, span := b.tracer.Start(ctx, "chatbot.process_tag")
	defer span.End()

	action := strings.TrimSpace(req.Action)
	span.SetAttributes(attribute.String("chatbot.action", action))
	t := newTurn(req.Language, req.Vendor, "", req.Context)
	return b.serve(ctx, span, sourceTag, t, func(ctx context.Context, t turn) (Envelope, error) {
		return b.dispatchTag(ctx, action, t)
	})
}

func newTurn(language string, vendor *marketplace.Vendor, message string, incoming ConversationContext) turn {
	if incoming == nil {
		incoming = ConversationContext{}
	}
	return turn{
		lang:    ParseLanguage(language),
		vendor:  vendor,
		message: message,
		context: incoming,
	}
}

// serve runs build and converts any error or panic into the failure envelope.
func (b *Bot) serve(ctx context.Context, span trace.Span, source string, t turn, build func(context.Context, turn) (Envelope, error)) (env Envelope, err error) {
	start := time.Now()
	span.SetAttributes(
		attribute.String("chatbot.source", source),
		attribute.String("chatbot.language", string(t.lang)),
		attribute.Bool("chatbot.vendor", t.vendor != nil),
	)

	defer func() {
		if r := recover(); r != nil {
			env, err = b.fail(ctx, span, source, t, fmt.Errorf("panic: %v", r))
		}
	}()

	served, buildErr := build(ctx, t)
	if buildErr != nil {
		return b.fail(ctx, span, source, t, buildErr)
	}

	env = served
	env.Context = Advance(t.context, served.Context)
	intent := env.Context.Intent()
	span.SetAttributes(attribute.String("chatbot.intent", intent))
	b.metrics.ObserveTurn(source, intent, time.Since(start).Seconds())
	return env, nil
}

func (b *Bot) fail(ctx context.Context, span trace.Span, source string, t turn, cause error) (Envelope, error) {
	err := fmt.Errorf("%w: %w", ErrProcessing, cause)
	span.RecordError(err)
	sessionID, _ := tenancy.SessionIDFromContext(ctx)
	b.logger.Error("chat turn failed",
		"source", source,
		"language", string(t.lang),
		"session_id", sessionID,
		"error", cause,
	)
	b.metrics.ObserveFailure(source)
	return failureEnvelope(t.lang), err
}
