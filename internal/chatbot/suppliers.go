package chatbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vendorconnect/vendorconnect-platform/internal/marketplace"
)

const (
	searchComprehensive = "comprehensive"
	searchLocation      = "location"
	searchRating        = "rating"
	searchPrice         = "price"
	searchCategory      = "category"
)

// suppliers narrows to a sub-response by keyword family. Location wins over
// rating, rating over price, price over category.
func (b *Bot) suppliers(ctx context.Context, t turn) (Envelope, error) {
	switch {
	case lex.matches(familySupplierLocation, t.message):
		return b.suppliersNearby(ctx, t)
	case lex.matches(familySupplierRating, t.message):
		return b.suppliersTopRated(ctx, t)
	case lex.matches(familySupplierPrice, t.message):
		return b.suppliersByPrice(ctx, t)
	case lex.matches(familySupplierCategory, t.message):
		return b.suppliersByCategory(ctx, t)
	default:
		return b.suppliersOverview(ctx, t)
	}
}

func supplierContext(searchType string) ConversationContext {
	return ConversationContext{
		ContextKeyIntent: string(CategorySuppliers),
		"searchType":     searchType,
	}
}

func (b *Bot) suppliersOverview(ctx context.Context, t turn) (Envelope, error) {
	var all, top []marketplace.Supplier
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = b.catalog.Suppliers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		top, err = b.catalog.TopVerifiedSuppliers(gctx, 3)
		return err
	})
	if err := g.Wait(); err != nil {
		return Envelope{}, fmt.Errorf("chatbot: load suppliers: %w", err)
	}

	keyProducts := make([][]marketplace.Product, len(top))
	g, gctx = errgroup.WithContext(ctx)
	for i, s := range top {
		g.Go(func() error {
			products, err := b.catalog.ProductsBySupplier(gctx, s.ID, 3)
			keyProducts[i] = products
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Envelope{}, fmt.Errorf("chatbot: load supplier products: %w", err)
	}

	stats := marketplace.Summarize(all)
	items := []string{phrases.text(t.lang, "suppliers.comprehensive.intro")}
	items = append(items, phrases.list(t.lang, "suppliers.overview",
		"total", strconv.Itoa(stats.Total),
		"verified", strconv.Itoa(stats.Verified),
		"percent", formatOneDecimal(stats.VerifiedPercent()),
		"average", formatOneDecimal(stats.AverageRating),
		"locations", strconv.Itoa(stats.Locations))...)

	items = append(items, phrases.text(t.lang, "suppliers.top.title"))
	for i, s := range top {
		items = append(items,
			phrases.text(t.lang, "suppliers.top.entry", "rank", strconv.Itoa(i+1), "name", s.Name),
			phrases.text(t.lang, "suppliers.top.location", "location", s.Location),
			phrases.text(t.lang, "suppliers.top.rating",
				"rating", formatDecimal(s.Rating),
				"hygiene", formatDecimal(s.HygieneRating)),
			phrases.text(t.lang, "suppliers.top.contact", "phone", s.Phone),
			phrases.text(t.lang, "suppliers.top.reliability", "score", formatOneDecimal(s.ReliabilityScore())),
		)
		if names := productNames(keyProducts[i]); len(names) > 0 {
			items = append(items, phrases.text(t.lang, "suppliers.top.products", "products", strings.Join(names, ", ")))
		}
		items = append(items, qualityLabel(t.lang, s.Rating))
	}

	if key := "suppliers.analysis." + string(t.businessType()); t.vendor != nil && phrases.hasList(key) {
		items = append(items, phrases.list(t.lang, key)...)
	}
	items = append(items, phrases.list(t.lang, "suppliers.strategy")...)

	served := supplierContext(searchComprehensive)
	served["analysis"] = true
	return Envelope{
		Message: ListMessage(items...),
		Context: served,
		Actions: []Action{
			{"view-supplier-details", "View Supplier Details"},
			{"compare-suppliers", "Compare Suppliers"},
			{"contact-supplier", "Contact Supplier"},
			{"supplier-performance", "Performance Analysis"},
			{"negotiate-prices", "Negotiate Prices"},
			{"backup-suppliers", "Find Backup Suppliers"},
			{"seasonal-analysis", "Seasonal Analysis"},
			{"supplier-reviews", "Read Reviews"},
		},
	}, nil
}

func qualityLabel(lang Language, rating float64) string {
	switch {
	case rating >= 4.5:
		return phrases.text(lang, "suppliers.quality.premium")
	case rating >= 4.0:
		return phrases.text(lang, "suppliers.quality.good")
	default:
		return phrases.text(lang, "suppliers.quality.standard")
	}
}

func productNames(products []marketplace.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}

// suppliersNearby lists verified suppliers with illustrative distances.
func (b *Bot) suppliersNearby(ctx context.Context, t turn) (Envelope, error) {
	suppliers, err := b.catalog.VerifiedSuppliers(ctx, 3)
	if err != nil {
		return Envelope{}, fmt.Errorf("chatbot: load nearby suppliers: %w", err)
	}

	items := []string{phrases.text(t.lang, "suppliers.location.intro")}
	for i, s := range suppliers {
		items = append(items,
			phrases.text(t.lang, "suppliers.location.entry", "name", s.Name, "location", s.Location),
			phrases.text(t.lang, "suppliers.location.detail",
				"distance", formatDecimal(float64(i+1)*2.5),
				"rating", formatDecimal(s.Rating),
				"phone", s.Phone),
		)
	}

	return Envelope{
		Message: ListMessage(items...),
		Context: supplierContext(searchLocation),
		Actions: []Action{
			{"get-directions", "Get Directions"},
			{"call-supplier", "Call Supplier"},
			{"view-on-map", "View on Map"},
			{"set-location", "Set My Location"},
		},
	}, nil
}

func (b *Bot) suppliersTopRated(ctx context.Context, t turn) (Envelope, error) {
	suppliers, err := b.catalog.TopVerifiedSuppliers(ctx, 3)
	if err != nil {
		return Envelope{}, fmt.Errorf("chatbot: load top rated suppliers: %w", err)
	}

	items := []string{phrases.text(t.lang, "suppliers.rating.intro")}
	for _, s := range suppliers {
		items = append(items,
			phrases.text(t.lang, "suppliers.rating.entry", "name", s.Name, "location", s.Location),
			phrases.text(t.lang, "suppliers.rating.detail",
				"stars", strings.Repeat("⭐", int(s.Rating)),
				"rating", formatDecimal(s.Rating),
				"hygiene", formatDecimal(s.HygieneRating)),
			phrases.text(t.lang, "suppliers.rating.contact", "phone", s.Phone),
		)
	}

	return Envelope{
		Message: ListMessage(items...),
		Context: supplierContext(searchRating),
		Actions: []Action{
			{"read-reviews", "Read Reviews"},
			{"contact-supplier", "Contact Supplier"},
			{"view-details", "View Details"},
			{"add-to-favorites", "Add to Favorites"},
		},
	}, nil
}

func (b *Bot) suppliersByPrice(ctx context.Context, t turn) (Envelope, error) {
	products, err := b.catalog.Products(ctx, 5)
	if err != nil {
		return Envelope{}, fmt.Errorf("chatbot: load products for price comparison: %w", err)
	}

	items := []string{phrases.text(t.lang, "suppliers.price.intro")}
	for _, p := range products {
		items = append(items,
			priceLine(t.lang, p),
			phrases.text(t.lang, "catalog.offer",
				"supplier", p.SupplierName,
				"stock", strconv.Itoa(p.StockAvailable),
				"unit", p.Unit),
		)
	}

	return Envelope{
		Message: ListMessage(items...),
		Context: supplierContext(searchPrice),
		Actions: []Action{
			{"compare-prices", "Compare All Prices"},
			{"set-price-alert", "Set Price Alert"},
			{"bulk-discount", "Check Bulk Discounts"},
			{"negotiate-price", "Negotiate Price"},
		},
	}, nil
}

func (b *Bot) suppliersByCategory(ctx context.Context, t turn) (Envelope, error) {
	categories, err := b.catalog.ProductCategories(ctx, 8)
	if err != nil {
		return Envelope{}, fmt.Errorf("chatbot: load categories: %w", err)
	}

	items := []string{phrases.text(t.lang, "suppliers.category.intro")}
	for _, c := range categories {
		items = append(items, phrases.text(t.lang, "suppliers.category.entry", "category", marketplace.Title(c)))
	}

	return Envelope{
		Message: ListMessage(items...),
		Context: supplierContext(searchCategory),
		Actions: []Action{
			{"select-category", "Select Category"},
			{"view-all-categories", "View All Categories"},
			{"mixed-order", "Mixed Category Order"},
			{"seasonal-products", "Seasonal Products"},
		},
	}, nil
}

func priceLine(lang Language, p marketplace.Product) string {
	return phrases.text(lang, "catalog.price",
		"name", p.Name,
		"price", formatDecimal(p.CurrentPrice),
		"unit", p.Unit)
}

// stockLine is the supplier line shown under a price without the unit.
func stockLine(lang Language, p marketplace.Product) string {
	return phrases.text(lang, "catalog.stock",
		"supplier", p.SupplierName,
		"stock", strconv.Itoa(p.StockAvailable))
}
