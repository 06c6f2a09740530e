package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/vendorconnect/vendorconnect-platform/internal/marketplace"
	"github.com/vendorconnect/vendorconnect-platform/internal/tenancy"
	"github.com/vendorconnect/vendorconnect-platform/pkg/logging"
)

const (
	maxMessageRunes = 2000
	maxLanguageLen  = 8
	maxActionLen    = 64
)

// VendorLookup resolves the signed-in vendor for a request.
type VendorLookup interface {
	VendorByID(ctx context.Context, id int64) (*marketplace.Vendor, error)
}

// MessageRequest is the body of POST /api/chatbot/message.
type MessageRequest struct {
	Message   string              `json:"message"`
	Language  string              `json:"language"`
	Context   ConversationContext `json:"context"`
	SessionID string              `json:"session_id"`
}

func (r MessageRequest) Validate(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, &r,
		validation.Field(&r.Message, validation.RuneLength(0, maxMessageRunes)),
		validation.Field(&r.Language, validation.Length(0, maxLanguageLen)),
	)
}

// TagActionRequest is the body of POST /api/chatbot/tag.
type TagActionRequest struct {
	Action    string              `json:"action"`
	Language  string              `json:"language"`
	Context   ConversationContext `json:"context"`
	SessionID string              `json:"session_id"`
}

func (r TagActionRequest) Validate(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, &r,
		validation.Field(&r.Action, validation.Length(0, maxActionLen)),
		validation.Field(&r.Language, validation.Length(0, maxLanguageLen)),
	)
}

// LanguageRequest is the body of POST /api/chatbot/language.
type LanguageRequest struct {
	Language  string `json:"language"`
	SessionID string `json:"session_id"`
}

// LanguageResponse echoes the language the bot will answer in.
type LanguageResponse struct {
	Success  bool     `json:"success"`
	Language Language `json:"language"`
}

// Handler wires HTTP requests to the Bot.
type Handler struct {
	bot     *Bot
	vendors VendorLookup
	logger  *logging.Logger
}

// NewHandler creates a chatbot handler. vendors may be nil, in which case every caller is a guest.
func NewHandler(bot *Bot, vendors VendorLookup, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		bot:     bot,
		vendors: vendors,
		logger:  logger,
	}
}

// Message handles POST /api/chatbot/message.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(r.Context()); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ctx := withSession(r.Context(), req.SessionID)
	env, err := h.bot.ProcessMessage(ctx, Request{
		Message:  strings.ToLower(strings.TrimSpace(req.Message)),
		Language: req.Language,
		Context:  req.Context,
		Vendor:   h.ResolveVendor(ctx),
	})
	h.writeEnvelope(w, env, err)
}

// Tag handles POST /api/chatbot/tag.
func (h *Handler) Tag(w http.ResponseWriter, r *http.Request) {
	var req TagActionRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(r.Context()); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ctx := withSession(r.Context(), req.SessionID)
	env, err := h.bot.ProcessTagAction(ctx, TagRequest{
		Action:   req.Action,
		Language: req.Language,
		Context:  req.Context,
		Vendor:   h.ResolveVendor(ctx),
	})
	h.writeEnvelope(w, env, err)
}

// Language handles POST /api/chatbot/language. The preference is not stored;
// the widget resends it with every turn.
func (h *Handler) Language(w http.ResponseWriter, r *http.Request) {
	var req LanguageRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := validation.ValidateStructWithContext(r.Context(), &req,
		validation.Field(&req.Language, validation.Length(0, maxLanguageLen)),
	); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.writeJSON(w, http.StatusOK, LanguageResponse{Success: true, Language: ParseLanguage(req.Language)})
}

// ResolveVendor returns the signed-in vendor, or nil for guests and unknown ids.
func (h *Handler) ResolveVendor(ctx context.Context) *marketplace.Vendor {
	id, ok := tenancy.VendorIDFromContext(ctx)
	if !ok || h.vendors == nil {
		return nil
	}
	vendor, err := h.vendors.VendorByID(ctx, id)
	if err != nil {
		if !errors.Is(err, marketplace.ErrVendorNotFound) {
			h.logger.Warn("vendor lookup failed, serving as guest", "vendor_id", id, "error", err)
		}
		return nil
	}
	return vendor
}

func withSession(ctx context.Context, sessionID string) context.Context {
	if sessionID == "" {
		return ctx
	}
	return tenancy.WithSessionID(ctx, sessionID)
}

// decode reads a JSON body. An empty body decodes as the zero request.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Error("failed to decode chatbot request", "path", r.URL.Path, "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeEnvelope(w http.ResponseWriter, env Envelope, err error) {
	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
	}
	h.writeJSON(w, status, env)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
