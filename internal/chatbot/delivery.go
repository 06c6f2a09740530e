package chatbot

import "context"

func (b *Bot) delivery(_ context.Context, t turn) (Envelope, error) {
	urgent := lex.matches(familyDeliveryUrgent, t.message)
	delayed := lex.matches(familyDeliveryDelay, t.message)

	items := []string{phrases.text(t.lang, "delivery.intro")}
	items = append(items, phrases.list(t.lang, "delivery.current")...)
	if urgent {
		items = append(items, phrases.text(t.lang, "delivery.urgent.title"))
		items = append(items, phrases.list(t.lang, "delivery.urgent.items")...)
	}
	if delayed {
		items = append(items, phrases.text(t.lang, "delivery.delay.title"))
		items = append(items, phrases.list(t.lang, "delivery.delay.items")...)
	}
	items = append(items, phrases.list(t.lang, "delivery.options")...)

	actions := []Action{
		{"track-current", "Track Current Delivery"},
		{"delivery-history", "Delivery History"},
		{"delivery-settings", "Delivery Settings"},
		{"contact-driver", "Contact Driver"},
	}
	if urgent {
		actions = append(actions, Action{"urgent-delivery", "Urgent Delivery"})
	}
	if delayed {
		actions = append(actions, Action{"report-delay", "Report Delay"})
	}
	actions = append(actions,
		Action{"schedule-delivery", "Schedule Delivery"},
		Action{"change-address", "Change Address"},
	)

	return Envelope{
		Message: ListMessage(items...),
		Context: ConversationContext{
			ContextKeyIntent: string(CategoryDelivery),
			"urgency":        urgent,
			"hasDelay":       delayed,
		},
		Actions: actions,
	}, nil
}
