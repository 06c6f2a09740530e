package webchat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/vendorconnect/vendorconnect-platform/internal/chatbot"
	"github.com/vendorconnect/vendorconnect-platform/internal/marketplace"
	"github.com/vendorconnect/vendorconnect-platform/internal/observability/metrics"
	"github.com/vendorconnect/vendorconnect-platform/internal/tenancy"
	"github.com/vendorconnect/vendorconnect-platform/pkg/logging"
)

// Responder serves chat turns.
type Responder interface {
	ProcessMessage(ctx context.Context, req chatbot.Request) (chatbot.Envelope, error)
	ProcessTagAction(ctx context.Context, req chatbot.TagRequest) (chatbot.Envelope, error)
}

// VendorResolver maps the handshake request to the signed-in vendor.
type VendorResolver interface {
	ResolveVendor(ctx context.Context) *marketplace.Vendor
}

// TranscriptStore records and replays widget conversations.
type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, msg TranscriptMessage) error
	List(ctx context.Context, sessionID string, limit int64) ([]TranscriptMessage, error)
}

const historyLimit = 50

// Frame types.
const (
	frameMessage  = "message"
	frameTag      = "tag"
	frameLanguage = "language"
	framePing     = "ping"

	framePong    = "pong"
	frameReply   = "reply"
	frameSession = "session"
	frameHistory = "history"
	frameError   = "error"
)

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type     string                      `json:"type"` // "message", "tag", "language", "ping"
	Text     string                      `json:"text,omitempty"`
	Action   string                      `json:"action,omitempty"`
	Language string                      `json:"language,omitempty"`
	Context  chatbot.ConversationContext `json:"context,omitempty"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string            `json:"type"` // "session", "history", "reply", "language", "pong", "error"
	SessionID string            `json:"session_id,omitempty"`
	Text      string            `json:"text,omitempty"`
	Language  chatbot.Language  `json:"language,omitempty"`
	Reply     *chatbot.Envelope `json:"reply,omitempty"`
	Messages  []HistoryMessage  `json:"messages,omitempty"`
}

// HistoryMessage is a simplified message for history responses.
type HistoryMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Handler serves the chat widget over WebSocket.
type Handler struct {
	bot        Responder
	vendors    VendorResolver
	transcript TranscriptStore
	metrics    *metrics.ChatbotMetrics
	logger     *logging.Logger
}

// NewHandler creates a web chat handler. vendors, transcript and m may be nil.
func NewHandler(bot Responder, vendors VendorResolver, transcript TranscriptStore, m *metrics.ChatbotMetrics, logger *logging.Logger) *Handler {
	if bot == nil {
		panic("webchat: responder cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		bot:        bot,
		vendors:    vendors,
		transcript: transcript,
		metrics:    m,
		logger:     logger,
	}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// session is the per-connection state carried between frames.
type session struct {
	id       string
	vendor   *marketplace.Vendor
	language string
	context  chatbot.ConversationContext
}

// HandleWebSocket upgrades to WebSocket and serves chat turns until the widget disconnects.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	s := &session{
		id:       r.URL.Query().Get("session"),
		language: r.URL.Query().Get("lang"),
		context:  chatbot.ConversationContext{},
	}
	if s.id == "" {
		s.id = generateSessionID()
	}
	ctx := tenancy.WithSessionID(r.Context(), s.id)
	if h.vendors != nil {
		s.vendor = h.vendors.ResolveVendor(ctx)
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{Type: frameSession, SessionID: s.id})
	if history := h.history(ctx, s.id, historyLimit); len(history) > 0 {
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: frameHistory, Messages: history})
	}

	h.metrics.SessionOpened()
	defer h.metrics.SessionClosed()
	h.logger.Info("webchat: connection opened", "session_id", s.id, "vendor", s.vendor != nil)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", s.id, "error", err)
			return
		}

		switch msg.Type {
		case framePing:
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: framePong})
		case frameLanguage:
			s.language = msg.Language
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: frameLanguage, Language: chatbot.ParseLanguage(msg.Language)})
		case frameMessage, frameTag:
			if err := validateFrame(ctx, msg); err != nil {
				h.logger.Debug("webchat: rejected frame", "session_id", s.id, "error", err)
				_ = websocket.JSON.Send(conn, OutboundMessage{Type: frameError, Text: err.Error()})
				continue
			}
			_ = websocket.JSON.Send(conn, h.serveTurn(ctx, s, msg))
		default:
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: frameError, Text: "unsupported frame type"})
		}
	}
}

// validateFrame applies the HTTP request limits to a chat frame.
func validateFrame(ctx context.Context, msg InboundMessage) error {
	if msg.Type == frameTag {
		return chatbot.TagActionRequest{Action: msg.Action, Language: msg.Language}.Validate(ctx)
	}
	return chatbot.MessageRequest{Message: msg.Text, Language: msg.Language}.Validate(ctx)
}

// serveTurn runs one chat turn and carries the returned context forward. A frame
// that brings its own context replaces the server-held one.
func (h *Handler) serveTurn(ctx context.Context, s *session, msg InboundMessage) OutboundMessage {
	if msg.Language != "" {
		s.language = msg.Language
	}
	if msg.Context != nil {
		s.context = msg.Context
	}

	var (
		env  chatbot.Envelope
		err  error
		said string
	)
	if msg.Type == frameTag {
		said = msg.Action
		env, err = h.bot.ProcessTagAction(ctx, chatbot.TagRequest{
			Action:   msg.Action,
			Language: s.language,
			Context:  s.context,
			Vendor:   s.vendor,
		})
	} else {
		said = strings.ToLower(strings.TrimSpace(msg.Text))
		env, err = h.bot.ProcessMessage(ctx, chatbot.Request{
			Message:  said,
			Language: s.language,
			Context:  s.context,
			Vendor:   s.vendor,
		})
	}
	if err != nil {
		h.logger.Warn("webchat: turn failed", "session_id", s.id, "error", err)
	} else {
		s.context = env.Context
	}

	h.record(ctx, s.id, said, env)
	return OutboundMessage{Type: frameReply, Reply: &env}
}

func (h *Handler) history(ctx context.Context, sessionID string, limit int64) []HistoryMessage {
	if h.transcript == nil {
		return nil
	}
	msgs, err := h.transcript.List(ctx, sessionID, limit)
	if err != nil {
		h.logger.Warn("webchat: failed to load history", "session_id", sessionID, "error", err)
		return nil
	}
	return toHistory(msgs)
}

// HandleHistory returns chat history for a session.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	history := []HistoryMessage{}
	if h.transcript != nil {
		msgs, err := h.transcript.List(r.Context(), sessionID, 2*historyLimit)
		if err != nil {
			h.logger.Error("webchat: failed to load history", "error", err)
			http.Error(w, "failed to load history", http.StatusInternalServerError)
			return
		}
		history = toHistory(msgs)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"messages": history})
}
