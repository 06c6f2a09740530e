package chatbot

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is the coarse topic a turn is served under.
type Category string

const (
	CategorySuppliers Category = "suppliers"
	CategoryOrders    Category = "orders"
	CategoryDelivery  Category = "delivery"
	CategoryPricing   Category = "pricing"
	CategoryHelp      Category = "help"
	CategoryAccount   Category = "account"
	CategoryProducts  Category = "products"
	CategoryBusiness  Category = "business"
	CategoryGreeting  Category = "greeting"
	CategoryUnclear   Category = "unclear"

	// Served only through tag actions.
	CategoryBusinessTips Category = "business_tips"
	CategoryMarketTrends Category = "market_trends"
	CategorySupport      Category = "support"
)

// Keyword family names.
const (
	familySupplierLocation = "suppliers.location"
	familySupplierRating   = "suppliers.rating"
	familySupplierPrice    = "suppliers.price"
	familySupplierCategory = "suppliers.category"

	familyOrderUrgent   = "orders.urgent"
	familyOrderBulk     = "orders.bulk"
	familyOrderSpecific = "orders.specific"

	familyDeliveryUrgent = "delivery.urgent"
	familyDeliveryDelay  = "delivery.delay"

	familyPriceComparison = "pricing.comparison"
	familyPriceAlert      = "pricing.alert"
	familyPriceTrend      = "pricing.trend"

	familyFollowUpLocation = "followup.location"
	familyFollowUpRating   = "followup.rating"
	familyFollowUpPrice    = "followup.price"
	familyFollowUpCategory = "followup.category"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

type lexiconIntent struct {
	Name     Category              `yaml:"name"`
	Keywords map[Language][]string `yaml:"keywords"`
}

type lexiconTopic struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type lexicon struct {
	Greetings map[Language][]string `yaml:"greetings"`
	Intents   []lexiconIntent       `yaml:"intents"`
	Families  map[string][]string   `yaml:"families"`
	Topics    []lexiconTopic        `yaml:"topics"`
}

var lex = mustLoadLexicon(lexiconYAML)

func mustLoadLexicon(data []byte) *lexicon {
	l, err := loadLexicon(data)
	if err != nil {
		panic(err)
	}
	return l
}

func loadLexicon(data []byte) (*lexicon, error) {
	var l lexicon
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("chatbot: decode lexicon: %w", err)
	}
	if len(l.Greetings[LanguageEnglish]) == 0 {
		return nil, fmt.Errorf("chatbot: lexicon has no en greetings")
	}
	if len(l.Intents) == 0 {
		return nil, fmt.Errorf("chatbot: lexicon has no intents")
	}
	return &l, nil
}

// Categories returns the classifiable categories in declaration order.
func Categories() []Category {
	out := make([]Category, len(lex.Intents))
	for i, in := range lex.Intents {
		out[i] = in.Name
	}
	return out
}

func (l *lexicon) greetings(lang Language) []string {
	if g, ok := l.Greetings[lang]; ok {
		return g
	}
	return l.Greetings[LanguageEnglish]
}

func (l *lexicon) keywords(cat Category, lang Language) []string {
	for _, in := range l.Intents {
		if in.Name != cat {
			continue
		}
		if kw, ok := in.Keywords[lang]; ok {
			return kw
		}
		return in.Keywords[LanguageEnglish]
	}
	return nil
}

func (l *lexicon) matches(family, message string) bool {
	return containsAny(message, l.Families[family])
}

// topicsIn returns the names of every topic family with at least one keyword in message.
func (l *lexicon) topicsIn(message string) []string {
	var found []string
	for _, t := range l.Topics {
		if containsAny(message, t.Keywords) {
			found = append(found, t.Name)
		}
	}
	return found
}

func containsAny(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}
