package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesDeclarationOrder(t *testing.T) {
	assert.Equal(t, []Category{
		CategorySuppliers, CategoryOrders, CategoryDelivery, CategoryPricing, CategoryHelp,
		CategoryAccount, CategoryProducts, CategoryBusiness, CategoryGreeting, CategoryUnclear,
	}, Categories())
}

func TestScore(t *testing.T) {
	assert.InDelta(t, 2.0/13.0, Score("where are the cheap tomato suppliers near me", CategorySuppliers, LanguageEnglish), 1e-9)
	assert.InDelta(t, 1.0/12.0, Score("cheap", CategoryPricing, LanguageEnglish), 1e-9)
	assert.Zero(t, Score("anything at all", CategoryGreeting, LanguageEnglish))
	assert.Zero(t, Score("", CategorySuppliers, LanguageEnglish))
}

func TestScoreIsCaseSensitive(t *testing.T) {
	assert.Zero(t, Score("SUPPLIER", CategorySuppliers, LanguageEnglish))
	assert.Greater(t, Score("supplier", CategorySuppliers, LanguageEnglish), 0.0)
}

func TestScoreFallsBackToEnglishKeywords(t *testing.T) {
	msg := "find supplier in wholesale market"
	assert.Equal(t, Score(msg, CategorySuppliers, LanguageEnglish), Score(msg, CategorySuppliers, LanguageTamil))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		message string
		want    Category
		trusted bool
	}{
		{"find supplier in wholesale market", CategorySuppliers, true},
		{"i need and want to buy urgent bulk order", CategoryOrders, true},
		{"track delivery status in transit, it is late", CategoryDelivery, true},
		{"price alert: cheap discount deal", CategoryPricing, true},
		{"help me, i have a problem and issue, need a guide", CategoryHelp, true},
		{"my account profile settings", CategoryAccount, true},
		{"show product items and stock", CategoryProducts, true},
		{"business shop food customer", CategoryBusiness, true},
		{"where are the cheap tomato suppliers near me", CategorySuppliers, false},
	}
	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			got, score := Classify(tc.message, LanguageEnglish)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.trusted, score >= DefaultConfidenceThreshold, "score %.3f", score)
		})
	}
}

func TestClassifyTiesKeepFirstCategory(t *testing.T) {
	got, score := Classify("nothing relevant", LanguageEnglish)
	assert.Equal(t, CategorySuppliers, got)
	assert.Zero(t, score)

	// "cost" and "buy" each score exactly one keyword in their families;
	// pricing has 12 keywords and orders 13, so pricing wins on ratio.
	got, _ = Classify("cost to buy", LanguageEnglish)
	assert.Equal(t, CategoryPricing, got)
}

func TestClassifyDeterministic(t *testing.T) {
	msg := "need a cheap supplier for delivery"
	first, firstScore := Classify(msg, LanguageEnglish)
	for i := 0; i < 50; i++ {
		got, score := Classify(msg, LanguageEnglish)
		assert.Equal(t, first, got)
		assert.Equal(t, firstScore, score)
	}
}

func TestIsGreeting(t *testing.T) {
	assert.True(t, IsGreeting("  Hello there ", LanguageEnglish))
	assert.True(t, IsGreeting("GOOD MORNING", LanguageEnglish))
	assert.True(t, IsGreeting("नमस्ते", LanguageHindi))
	assert.True(t, IsGreeting("வணக்கம்", LanguageTamil))
	assert.True(t, IsGreeting("hey", Language("fr")))
	assert.False(t, IsGreeting("track my delivery", LanguageEnglish))
	assert.False(t, IsGreeting("hello", LanguageHindi), "hindi table replaces the english one")
}
