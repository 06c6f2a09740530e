package chatbot

import (
	"context"
	"strings"

	"github.com/vendorconnect/vendorconnect-platform/internal/marketplace"
)

// unclear reports which topics the message touched, or a general menu when none.
func (b *Bot) unclear(_ context.Context, t turn) (Envelope, error) {
	if topics := lex.topicsIn(t.message); len(topics) > 0 {
		items := []string{phrases.text(t.lang, "default.keywords", "topics", strings.Join(topics, ", "))}
		for _, topic := range topics {
			items = append(items, phrases.list(t.lang, "default.suggest."+topic)...)
		}
		return Envelope{
			Message: ListMessage(items...),
			Context: ConversationContext{
				ContextKeyIntent: string(CategoryUnclear),
				"keywordsFound":  topics,
			},
			Actions: []Action{
				{"find-suppliers", "Find Suppliers"},
				{"browse-products", "Browse Products"},
				{"compare-prices", "Compare Prices"},
				{"place-order", "Place Order"},
				{"track-delivery", "Track Delivery"},
				{"business-tips", "Business Tips"},
			},
		}, nil
	}

	items := []string{phrases.text(t.lang, "default.general")}
	items = append(items, phrases.list(t.lang, "default.menu")...)
	if key := "default.business." + string(t.businessType()); t.vendor != nil && phrases.hasList(key) {
		items = append(items, phrases.text(t.lang, "default.personal",
			"name", t.vendor.Name,
			"business", string(t.vendor.BusinessType)))
		items = append(items, phrases.list(t.lang, key)...)
	}

	return Envelope{
		Message: ListMessage(items...),
		Context: ConversationContext{
			ContextKeyIntent: string(CategoryUnclear),
			"generalHelp":    true,
		},
		Actions: []Action{
			{"find-suppliers", "Find Suppliers"},
			{"place-order", "Place Order"},
			{"track-delivery", "Track Delivery"},
			{"price-alerts", "Price Alerts"},
			{"account-settings", "Account Settings"},
			{"contact-support", "Contact Support"},
			{"business-analytics", "Business Analytics"},
			{"market-trends", "Market Trends"},
		},
	}, nil
}

// followUp resolves a low-confidence turn against the previous intent.
// Disambiguating phrases route to a supplier sub-response whatever the prior topic was.
func (b *Bot) followUp(ctx context.Context, t turn, previous string) (Envelope, error) {
	switch {
	case lex.matches(familyFollowUpLocation, t.message):
		return b.suppliersNearby(ctx, t)
	case lex.matches(familyFollowUpRating, t.message):
		return b.suppliersTopRated(ctx, t)
	case lex.matches(familyFollowUpPrice, t.message):
		return b.suppliersByPrice(ctx, t)
	case lex.matches(familyFollowUpCategory, t.message):
		return b.suppliersByCategory(ctx, t)
	}

	return Envelope{
		Message: TextMessage(phrases.text(t.lang, "followup.contextual", "topic", previous)),
		Context: ConversationContext{
			ContextKeyIntent: previous,
			"followUp":       true,
		},
		Actions: []Action{
			{previous + "-details", "More " + marketplace.Title(previous)},
			{"related-topics", "Related Topics"},
			{"start-over", "Start Over"},
		},
	}, nil
}
