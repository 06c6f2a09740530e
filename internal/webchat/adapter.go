package webchat

import (
	"context"
	"strings"
	"time"

	"github.com/vendorconnect/vendorconnect-platform/internal/chatbot"
)

// record appends the visitor line and the bot reply to the transcript. Failures
// are logged and never reach the widget.
func (h *Handler) record(ctx context.Context, sessionID, said string, env chatbot.Envelope) {
	if h.transcript == nil {
		return
	}
	now := time.Now().UTC()
	if said != "" {
		if err := h.transcript.Append(ctx, sessionID, TranscriptMessage{
			Role:      "user",
			Body:      said,
			Timestamp: now,
		}); err != nil {
			h.logger.Warn("webchat: failed to record message", "session_id", sessionID, "error", err)
			return
		}
	}
	if err := h.transcript.Append(ctx, sessionID, TranscriptMessage{
		Role:      "assistant",
		Body:      replyText(env.Message),
		Intent:    env.Context.Intent(),
		Timestamp: now,
	}); err != nil {
		h.logger.Warn("webchat: failed to record reply", "session_id", sessionID, "error", err)
	}
}

// replyText flattens a list reply into one line per item.
func replyText(m chatbot.Message) string {
	if m.IsList() {
		return strings.Join(m.Items, "\n")
	}
	return m.Text
}

func toHistory(msgs []TranscriptMessage) []HistoryMessage {
	history := make([]HistoryMessage, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, HistoryMessage{
			Role:      m.Role,
			Text:      m.Body,
			Timestamp: m.Timestamp.Format(time.RFC3339),
		})
	}
	return history
}
