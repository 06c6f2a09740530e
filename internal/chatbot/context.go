package chatbot

import (
	"encoding/json"
	"maps"
	"math"
	"strconv"
)

// Reserved context keys.
const (
	ContextKeyIntent       = "intent"
	ContextKeyMessageCount = "messageCount"
)

// ConversationContext is the caller-held state threaded through every turn.
// The server never stores it.
type ConversationContext map[string]any

// Intent returns the last served intent, or "" when none was recorded.
func (c ConversationContext) Intent() string {
	s, _ := c[ContextKeyIntent].(string)
	return s
}

// MessageCount returns the turn counter. Values decoded from JSON arrive as
// float64 or json.Number; anything unreadable counts as 0.
func (c ConversationContext) MessageCount() int {
	switch v := c[ContextKeyMessageCount].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

// Advance produces the context returned to the caller. It copies what the
// builder served and, unless the builder set messageCount itself, stores the
// incoming count plus one.
func Advance(incoming, served ConversationContext) ConversationContext {
	out := make(ConversationContext, len(served)+1)
	maps.Copy(out, served)
	if _, ok := out[ContextKeyMessageCount]; !ok {
		out[ContextKeyMessageCount] = incoming.MessageCount() + 1
	}
	return out
}
