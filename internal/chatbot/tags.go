package chatbot

import "context"

type builder func(b *Bot, ctx context.Context, t turn) (Envelope, error)

// tagRoutes maps widget buttons straight to builders, skipping classification.
var tagRoutes = map[string]builder{
	"find-suppliers":  (*Bot).suppliersOverview,
	"place-order":     (*Bot).orders,
	"track-delivery":  (*Bot).delivery,
	"price-alerts":    (*Bot).pricing,
	"business-tips":   (*Bot).businessTips,
	"account-help":    (*Bot).account,
	"market-trends":   (*Bot).marketTrends,
	"contact-support": (*Bot).support,

	"nearby-suppliers":    (*Bot).suppliersNearby,
	"top-rated-suppliers": (*Bot).suppliersTopRated,
	"compare-prices":      (*Bot).suppliersByPrice,
	"view-all-categories": (*Bot).suppliersByCategory,
}

// intentRoutes maps classified categories to builders.
var intentRoutes = map[Category]builder{
	CategorySuppliers: (*Bot).suppliers,
	CategoryOrders:    (*Bot).orders,
	CategoryDelivery:  (*Bot).delivery,
	CategoryPricing:   (*Bot).pricing,
	CategoryHelp:      (*Bot).help,
	CategoryAccount:   (*Bot).account,
	CategoryProducts:  (*Bot).products,
	CategoryBusiness:  (*Bot).business,
	CategoryGreeting:  (*Bot).greeting,
}

// KnownTag reports whether action has a dedicated builder.
func KnownTag(action string) bool {
	_, ok := tagRoutes[action]
	return ok
}

// dispatchTag serves a tag action. Known tags see an empty message; unknown
// ones fall through to the default reply using the action id as the message.
func (b *Bot) dispatchTag(ctx context.Context, action string, t turn) (Envelope, error) {
	if route, ok := tagRoutes[action]; ok {
		t.message = ""
		return route(b, ctx, t)
	}
	t.message = action
	return b.unclear(ctx, t)
}

// route runs greeting detection, classification and follow-up handling for a free-text turn.
func (b *Bot) route(ctx context.Context, t turn) (Envelope, error) {
	if IsGreeting(t.message, t.lang) {
		return b.greeting(ctx, t)
	}

	best, score := Classify(t.message, t.lang)
	b.logger.Debug("chat turn classified", "intent", best, "score", score)
	if score < b.threshold {
		if previous := t.context.Intent(); previous != "" {
			return b.followUp(ctx, t, previous)
		}
		return b.unclear(ctx, t)
	}
	if route, ok := intentRoutes[best]; ok {
		return route(b, ctx, t)
	}
	return b.unclear(ctx, t)
}
