package chatbot

import (
	"context"
	"strings"
)

// greeting serves the introduction on a first turn and a shorter welcome afterwards.
// It sets messageCount itself.
func (b *Bot) greeting(_ context.Context, t turn) (Envelope, error) {
	count := t.context.MessageCount()
	variant := "greeting.first"
	if count > 0 {
		variant = "greeting.return"
	}

	var sb strings.Builder
	sb.WriteString(phrases.text(t.lang, variant+".open"))
	if t.vendor != nil {
		sb.WriteString(phrases.text(t.lang, variant+".vendor",
			"name", t.vendor.Name,
			"business", string(t.vendor.BusinessType)))
	}
	sb.WriteString(phrases.text(t.lang, variant+".close"))

	if key := "greeting.business." + string(t.businessType()); t.vendor != nil && phrases.hasText(key) {
		sb.WriteString("\n\n")
		sb.WriteString(phrases.text(t.lang, key))
	}

	return Envelope{
		Message: TextMessage(sb.String()),
		Context: ConversationContext{
			ContextKeyIntent:       string(CategoryGreeting),
			ContextKeyMessageCount: count + 1,
		},
		Actions: []Action{
			{"find-suppliers", "Find Suppliers"},
			{"place-order", "Place Order"},
			{"track-delivery", "Track Delivery"},
			{"price-alerts", "Price Alerts"},
			{"business-tips", "Business Tips"},
			{"market-trends", "Market Trends"},
		},
	}, nil
}
