package chatbot

import (
	"context"
	"fmt"
)

// pricing always lists live catalog prices; comparison, trend and alert
// blocks are toggled by their keyword families.
func (b *Bot) pricing(ctx context.Context, t turn) (Envelope, error) {
	comparison := lex.matches(familyPriceComparison, t.message)
	alerts := lex.matches(familyPriceAlert, t.message)
	trends := lex.matches(familyPriceTrend, t.message)

	products, err := b.catalog.Products(ctx, 5)
	if err != nil {
		return Envelope{}, fmt.Errorf("chatbot: load current prices: %w", err)
	}

	items := []string{
		phrases.text(t.lang, "pricing.intro"),
		phrases.text(t.lang, "pricing.current.title"),
	}
	for _, p := range products {
		items = append(items, priceLine(t.lang, p), stockLine(t.lang, p))
	}
	if comparison {
		items = append(items, phrases.text(t.lang, "pricing.comparison.title"))
		items = append(items, phrases.list(t.lang, "pricing.comparison.items")...)
	}
	if trends {
		items = append(items, phrases.text(t.lang, "pricing.trends.title"))
		items = append(items, phrases.list(t.lang, "pricing.trends.items")...)
	}
	if alerts {
		items = append(items, phrases.text(t.lang, "pricing.alerts.title"))
		items = append(items, phrases.list(t.lang, "pricing.alerts.items")...)
	}
	if key := "pricing.business." + string(t.businessType()); t.vendor != nil && phrases.hasText(key) {
		items = append(items, phrases.text(t.lang, key))
		items = append(items, phrases.list(t.lang, "pricing.business.items")...)
	}

	return Envelope{
		Message: ListMessage(items...),
		Context: ConversationContext{
			ContextKeyIntent: string(CategoryPricing),
			"comparison":     comparison,
			"alerts":         alerts,
			"trends":         trends,
		},
		Actions: []Action{
			{"current-prices", "Current Prices"},
			{"set-alerts", "Set Price Alerts"},
			{"price-comparison", "Compare Prices"},
			{"price-trends", "Price Trends"},
			{"market-analysis", "Market Analysis"},
			{"bulk-pricing", "Bulk Pricing"},
			{"negotiate-price", "Negotiate Price"},
			{"price-history", "Price History"},
		},
	}, nil
}
