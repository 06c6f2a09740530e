package chatbot

import (
	"context"
	"fmt"

	"github.com/vendorconnect/vendorconnect-platform/internal/marketplace"
)

func (b *Bot) help(_ context.Context, t turn) (Envelope, error) {
	items := append([]string{phrases.text(t.lang, "help.intro")}, phrases.list(t.lang, "help.topics")...)
	return Envelope{
		Message: ListMessage(items...),
		Context: ConversationContext{ContextKeyIntent: string(CategoryHelp)},
		Actions: []Action{
			{"contact-support", "Contact Support"},
			{"faq", "View FAQ"},
			{"tutorial", "Watch Tutorial"},
			{"feedback", "Send Feedback"},
		},
	}, nil
}

// account needs a signed-in vendor; guests get a login prompt.
func (b *Bot) account(_ context.Context, t turn) (Envelope, error) {
	if t.vendor == nil {
		return Envelope{
			Message: TextMessage(phrases.text(t.lang, "account.login")),
			Context: ConversationContext{
				ContextKeyIntent: string(CategoryAccount),
				"requiresLogin":  true,
			},
			Actions: []Action{
				{"login", "Log In"},
				{"register", "Register"},
			},
		}, nil
	}

	items := []string{phrases.text(t.lang, "account.overview", "name", t.vendor.Name)}
	items = append(items, phrases.list(t.lang, "account.details",
		"business", marketplace.Title(string(t.vendor.BusinessType)),
		"location", t.vendor.Location,
		"phone", t.vendor.Phone)...)

	return Envelope{
		Message: ListMessage(items...),
		Context: ConversationContext{
			ContextKeyIntent: string(CategoryAccount),
			"vendorId":       t.vendor.ID,
		},
		Actions: []Action{
			{"view-profile", "View Profile"},
			{"edit-profile", "Edit Profile"},
			{"order-history", "Order History"},
			{"settings", "Settings"},
		},
	}, nil
}

// products filters the catalog to the vendor's business categories when known.
func (b *Bot) products(ctx context.Context, t turn) (Envelope, error) {
	var (
		products []marketplace.Product
		err      error
	)
	if bt := t.businessType(); t.vendor != nil && bt.Known() {
		products, err = b.catalog.ProductsInCategories(ctx, bt.Categories(), 5)
	} else {
		products, err = b.catalog.Products(ctx, 5)
	}
	if err != nil {
		return Envelope{}, fmt.Errorf("chatbot: load products: %w", err)
	}

	items := []string{phrases.text(t.lang, "products.intro")}
	for _, p := range products {
		items = append(items, priceLine(t.lang, p), stockLine(t.lang, p))
	}

	return Envelope{
		Message: ListMessage(items...),
		Context: ConversationContext{ContextKeyIntent: string(CategoryProducts)},
		Actions: []Action{
			{"browse-products", "Browse Products"},
			{"search-products", "Search Products"},
			{"product-details", "Product Details"},
			{"add-to-cart", "Add to Cart"},
		},
	}, nil
}

func (b *Bot) business(_ context.Context, t turn) (Envelope, error) {
	items := append([]string{phrases.text(t.lang, "business.intro")}, phrases.list(t.lang, "business.offerings")...)
	return Envelope{
		Message: ListMessage(items...),
		Context: ConversationContext{ContextKeyIntent: string(CategoryBusiness)},
		Actions: []Action{
			{"business-analytics", "Business Analytics"},
			{"market-trends", "Market Trends"},
			{"best-practices", "Best Practices"},
			{"growth-strategies", "Growth Strategies"},
			{"networking", "Networking"},
			{"resources", "Resources"},
			{"consultation", "Expert Consultation"},
		},
	}, nil
}

func (b *Bot) businessTips(_ context.Context, t turn) (Envelope, error) {
	items := []string{phrases.text(t.lang, "tips.intro")}
	items = append(items, phrases.list(t.lang, "tips.general")...)
	if key := "tips.business." + string(t.businessType()); t.vendor != nil && phrases.hasList(key) {
		items = append(items, phrases.list(t.lang, key)...)
	}
	return Envelope{
		Message: ListMessage(items...),
		Context: ConversationContext{ContextKeyIntent: string(CategoryBusinessTips)},
		Actions: []Action{
			{"market-trends", "Market Trends"},
			{"supplier-tips", "Supplier Tips"},
			{"pricing-strategy", "Pricing Strategy"},
			{"customer-service", "Customer Service"},
			{"inventory-management", "Inventory Management"},
			{"seasonal-planning", "Seasonal Planning"},
		},
	}, nil
}

func (b *Bot) marketTrends(_ context.Context, t turn) (Envelope, error) {
	items := append([]string{phrases.text(t.lang, "trends.intro")}, phrases.list(t.lang, "trends.current")...)
	return Envelope{
		Message: ListMessage(items...),
		Context: ConversationContext{ContextKeyIntent: string(CategoryMarketTrends)},
		Actions: []Action{
			{"price-analysis", "Price Analysis"},
			{"demand-forecast", "Demand Forecast"},
			{"seasonal-trends", "Seasonal Trends"},
			{"competitor-analysis", "Competitor Analysis"},
			{"supply-chain-insights", "Supply Chain Insights"},
			{"customer-preferences", "Customer Preferences"},
		},
	}, nil
}

func (b *Bot) support(_ context.Context, t turn) (Envelope, error) {
	items := append([]string{phrases.text(t.lang, "support.intro")}, phrases.list(t.lang, "support.options")...)
	return Envelope{
		Message: ListMessage(items...),
		Context: ConversationContext{ContextKeyIntent: string(CategorySupport)},
		Actions: []Action{
			{"live-chat", "Start Live Chat"},
			{"phone-support", "Call Support"},
			{"email-support", "Email Support"},
			{"faq", "View FAQ"},
			{"video-tutorials", "Video Tutorials"},
			{"community-forum", "Community Forum"},
			{"technical-support", "Technical Support"},
			{"business-consultation", "Business Consultation"},
		},
	}, nil
}
