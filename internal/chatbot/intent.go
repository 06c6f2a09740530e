package chatbot

import "strings"

// DefaultConfidenceThreshold is the lowest classification score trusted without context.
const DefaultConfidenceThreshold = 0.3

// normalize lowercases and trims a message for greeting detection.
func normalize(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

// IsGreeting reports whether the normalized message contains a greeting phrase for lang.
func IsGreeting(message string, lang Language) bool {
	return containsAny(normalize(message), lex.greetings(lang))
}

// Score returns the fraction of cat's keywords that occur in message as substrings.
// Categories without keywords always score 0.
func Score(message string, cat Category, lang Language) float64 {
	keywords := lex.keywords(cat, lang)
	if len(keywords) == 0 {
		return 0
	}
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}

// Classify scores every category in declaration order and returns the best one.
// Ties keep the earlier category.
func Classify(message string, lang Language) (Category, float64) {
	var (
		best      Category
		bestScore = -1.0
	)
	for _, in := range lex.Intents {
		if s := Score(message, in.Name, lang); s > bestScore {
			best, bestScore = in.Name, s
		}
	}
	return best, bestScore
}
