package services

import (
	"regexp"
	"strings"
)

// stopWords are common function words excluded from free-text harvesting
var stopWords = map[string]bool{
	"the": true, "of": true, "and": true, "a": true, "an": true,
	"to": true, "in": true, "on": true, "for": true, "at": true, "by": true,
	"is": true, "it": true, "as": true, "be": true, "was": true,
	"are": true, "been": true, "with": true, "from": true, "into": true,
	"that": true, "this": true, "has": true, "have": true, "had": true,
	"his": true, "her": true, "its": true, "their": true, "or": true,
	"not": true, "but": true, "they": true, "you": true, "we": true,
}

var wordToken = regexp.MustCompile(`[A-Za-z][A-Za-z\-']+`)

// HarvestWords extracts candidate vocabulary words from free text.
// Tokens are lowercased, stripped of surrounding punctuation, filtered for
// length >= 2 and stop words, and deduplicated preserving first occurrence.
func HarvestWords(text string) []string {
	tokens := wordToken.FindAllString(text, -1)

	seen := make(map[string]bool, len(tokens))
	var words []string
	for _, t := range tokens {
		t = strings.ToLower(strings.Trim(t, "-'"))
		if len(t) < 2 || stopWords[t] || seen[t] {
			continue
		}
		seen[t] = true
		words = append(words, t)
	}
	return words
}
