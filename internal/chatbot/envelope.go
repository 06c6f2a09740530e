package chatbot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Message is either plain text or an itemized list.
type Message struct {
	Text  string
	Items []string
}

// TextMessage builds a plain-text message.
func TextMessage(text string) Message {
	return Message{Text: text}
}

// ListMessage builds a list message.
func ListMessage(items ...string) Message {
	if items == nil {
		items = []string{}
	}
	return Message{Items: items}
}

// IsList reports whether m renders as {type: "list"}.
func (m Message) IsList() bool {
	return m.Items != nil
}

type listPayload struct {
	Type  string   `json:"type"`
	Items []string `json:"items"`
}

func (m Message) MarshalJSON() ([]byte, error) {
	if m.IsList() {
		return json.Marshal(listPayload{Type: "list", Items: m.Items})
	}
	return json.Marshal(m.Text)
}

func (m *Message) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Message{Text: s}
		return nil
	}
	var p listPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("chatbot: decode message: %w", err)
	}
	if p.Type != "list" {
		return errors.New("chatbot: unknown message type " + p.Type)
	}
	*m = ListMessage(p.Items...)
	return nil
}

// Action is a suggested follow-up button.
type Action struct {
	Action string `json:"action"`
	Label  string `json:"label"`
}

// Envelope is the reply returned for every turn. Actions is nil only for the
// failure reply.
type Envelope struct {
	Message Message             `json:"message"`
	Context ConversationContext `json:"context"`
	Actions []Action            `json:"actions"`
}

// failureEnvelope is the localized apology served when a turn cannot be built.
func failureEnvelope(lang Language) Envelope {
	return Envelope{
		Message: TextMessage(phrases.text(lang, "error.generic")),
		Context: ConversationContext{},
		Actions: nil,
	}
}
