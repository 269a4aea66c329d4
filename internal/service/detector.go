package service

import (
	"strings"
	"unicode"
)

// Detector classifies a message as a thank-you event by exact token
// membership against a configured vocabulary. No stemming, no fuzzy match.
type Detector struct {
	words map[string]struct{}
}

func NewDetector(vocabulary []string) *Detector {
	words := make(map[string]struct{}, len(vocabulary))
	for _, w := range vocabulary {
		words[strings.ToLower(w)] = struct{}{}
	}
	return &Detector{words: words}
}

// IsThank reports whether any word-like token of text is in the vocabulary.
func (d *Detector) IsThank(text string) bool {
	for _, tok := range tokenize(text) {
		if _, ok := d.words[tok]; ok {
			return true
		}
	}
	return false
}

// tokenize splits text into lowercase word-like tokens. Letters, digits and
// apostrophes belong to a token; everything else separates tokens.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
