package chatbot

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Language selects the string table used for every user-facing reply.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageBengali Language = "bn"
	LanguageTamil   Language = "ta"
)

var supportedLanguages = []Language{LanguageEnglish, LanguageHindi, LanguageBengali, LanguageTamil}

// ParseLanguage resolves a caller-supplied code. Unknown or empty codes resolve to English.
func ParseLanguage(code string) Language {
	l := Language(strings.ToLower(strings.TrimSpace(code)))
	if l.Supported() {
		return l
	}
	return LanguageEnglish
}

// Supported reports whether l has its own string table.
func (l Language) Supported() bool {
	for _, s := range supportedLanguages {
		if s == l {
			return true
		}
	}
	return false
}

//go:embed phrases.yaml
var phrasesYAML []byte

type phrasebook struct {
	Texts map[string]map[Language]string   `yaml:"texts"`
	Lists map[string]map[Language][]string `yaml:"lists"`
}

var phrases = mustLoadPhrasebook(phrasesYAML)

func mustLoadPhrasebook(data []byte) *phrasebook {
	p, err := loadPhrasebook(data)
	if err != nil {
		panic(err)
	}
	return p
}

func loadPhrasebook(data []byte) (*phrasebook, error) {
	var p phrasebook
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("chatbot: decode phrasebook: %w", err)
	}
	for key, byLang := range p.Texts {
		if _, ok := byLang[LanguageEnglish]; !ok {
			return nil, fmt.Errorf("chatbot: phrase %q has no en text", key)
		}
	}
	for key, byLang := range p.Lists {
		if _, ok := byLang[LanguageEnglish]; !ok {
			return nil, fmt.Errorf("chatbot: list %q has no en items", key)
		}
	}
	return &p, nil
}

// hasText reports whether key exists in the text table.
func (p *phrasebook) hasText(key string) bool {
	_, ok := p.Texts[key]
	return ok
}

func (p *phrasebook) hasList(key string) bool {
	_, ok := p.Lists[key]
	return ok
}

// text returns the localized text for key with {placeholders} filled from
// name/value pairs. Missing keys yield "".
func (p *phrasebook) text(lang Language, key string, pairs ...string) string {
	byLang, ok := p.Texts[key]
	if !ok {
		return ""
	}
	s, ok := byLang[lang]
	if !ok {
		s = byLang[LanguageEnglish]
	}
	return fill(s, pairs...)
}

// list returns a fresh copy of the localized list for key.
func (p *phrasebook) list(lang Language, key string, pairs ...string) []string {
	byLang, ok := p.Lists[key]
	if !ok {
		return nil
	}
	items, ok := byLang[lang]
	if !ok {
		items = byLang[LanguageEnglish]
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = fill(item, pairs...)
	}
	return out
}

func fill(s string, pairs ...string) string {
	if len(pairs) == 0 || !strings.Contains(s, "{") {
		return s
	}
	oldnew := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		oldnew = append(oldnew, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(oldnew...).Replace(s)
}

// formatDecimal renders a catalog figure the way the storefront prints it:
// shortest representation, always with a fractional part ("28.0", "4.5").
func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatOneDecimal renders f with exactly one fractional digit.
func formatOneDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
