package chatbot

import "context"

func (b *Bot) orders(_ context.Context, t turn) (Envelope, error) {
	urgent := lex.matches(familyOrderUrgent, t.message)
	bulk := lex.matches(familyOrderBulk, t.message)
	specific := lex.matches(familyOrderSpecific, t.message)

	items := []string{phrases.text(t.lang, "orders.intro")}
	if urgent {
		items = append(items, phrases.text(t.lang, "orders.urgent.title"))
		items = append(items, phrases.list(t.lang, "orders.urgent.items")...)
	}
	if bulk {
		items = append(items, phrases.text(t.lang, "orders.bulk.title"))
		items = append(items, phrases.list(t.lang, "orders.bulk.items")...)
	}
	if specific {
		items = append(items, phrases.list(t.lang, "orders.specific")...)
	}
	items = append(items, phrases.list(t.lang, "orders.options")...)

	if key := "orders.business." + string(t.businessType()); t.vendor != nil && phrases.hasText(key) {
		items = append(items, phrases.text(t.lang, key))
		items = append(items, phrases.list(t.lang, "orders.business.items")...)
	}

	actions := []Action{
		{"browse-products", "Browse Products"},
		{"search-products", "Search Products"},
		{"create-group-order", "Create Group Order"},
		{"view-orders", "View Orders"},
	}
	if urgent {
		actions = append(actions, Action{"urgent-order", "Urgent Order"})
	}
	if bulk {
		actions = append(actions, Action{"bulk-order", "Bulk Order"})
	}
	actions = append(actions,
		Action{"price-check", "Check Prices"},
		Action{"stock-check", "Check Stock"},
	)

	return Envelope{
		Message: ListMessage(items...),
		Context: ConversationContext{
			ContextKeyIntent: string(CategoryOrders),
			"urgency":        urgent,
			"bulk":           bulk,
		},
		Actions: actions,
	}, nil
}
