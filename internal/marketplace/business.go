package marketplace

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BusinessType tags what a vendor sells.
type BusinessType string

const (
	BusinessIceCream BusinessType = "ice_cream"
	BusinessChaat    BusinessType = "chaat"
	BusinessDosa     BusinessType = "dosa"
	BusinessSamosa   BusinessType = "samosa"
	BusinessVadaPav  BusinessType = "vada_pav"
	BusinessTea      BusinessType = "tea"
	BusinessJuice    BusinessType = "juice"
	BusinessOther    BusinessType = "other"
)

// businessCategories maps each business type to the product categories it buys.
var businessCategories = map[BusinessType][]string{
	BusinessIceCream: {"ice_cream", "dairy", "essentials", "fruits"},
	BusinessChaat:    {"chaat", "vegetables", "essentials", "dairy"},
	BusinessDosa:     {"dosa", "vegetables", "essentials", "dairy"},
	BusinessSamosa:   {"samosa", "vegetables", "essentials"},
	BusinessVadaPav:  {"vada_pav", "vegetables", "essentials"},
	BusinessTea:      {"tea", "dairy", "essentials"},
	BusinessJuice:    {"juice", "vegetables", "essentials", "fruits"},
	BusinessOther: {
		"vegetables", "oils", "grains", "pulses", "dairy", "essentials",
		"ice_cream", "chaat", "dosa", "samosa", "vada_pav", "tea", "juice", "fruits",
	},
}

// Categories returns the product categories relevant to b, or nil when b is unknown.
// The returned slice is a copy.
func (b BusinessType) Categories() []string {
	cats, ok := businessCategories[b]
	if !ok {
		return nil
	}
	out := make([]string, len(cats))
	copy(out, cats)
	return out
}

// Known reports whether b is one of the enumerated business types.
func (b BusinessType) Known() bool {
	_, ok := businessCategories[b]
	return ok
}

var titleCaser = cases.Title(language.English)

// Title renders a snake_case tag such as a category or business type for display.
func Title(tag string) string {
	return titleCaser.String(strings.ReplaceAll(tag, "_", " "))
}
