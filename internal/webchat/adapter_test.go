package webchat

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorconnect/vendorconnect-platform/internal/chatbot"
	"github.com/vendorconnect/vendorconnect-platform/pkg/logging"
)

func TestReplyText(t *testing.T) {
	assert.Equal(t, "plain", replyText(chatbot.TextMessage("plain")))
	assert.Equal(t, "a\nb", replyText(chatbot.ListMessage("a", "b")))
	assert.Empty(t, replyText(chatbot.ListMessage()))
}

func TestRecord(t *testing.T) {
	ts := newMockTranscript()
	h := NewHandler(newBot(t), nil, ts, nil, logging.New("error"))

	h.record(context.Background(), "sess1", "", chatbot.Envelope{
		Message: chatbot.ListMessage("one", "two"),
		Context: chatbot.ConversationContext{"intent": "support"},
	})

	msgs := ts.store["sess1"]
	require.Len(t, msgs, 1, "empty visitor lines are not recorded")
	assert.Equal(t, "assistant", msgs[0].Role)
	assert.Equal(t, "one\ntwo", msgs[0].Body)
	assert.Equal(t, "support", msgs[0].Intent)
}

func TestRecordLogsStoreFailure(t *testing.T) {
	ts := newMockTranscript()
	ts.err = errors.New("redis down")
	var logs bytes.Buffer
	h := NewHandler(newBot(t), nil, ts, nil, logging.NewWithWriter("warn", &logs))

	h.record(context.Background(), "sess1", "hello", chatbot.Envelope{Message: chatbot.TextMessage("hi")})
	assert.Contains(t, logs.String(), "webchat: failed to record message")
}
