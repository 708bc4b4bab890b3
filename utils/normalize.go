package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a string for comparison: trimmed, lowercased, diacritics
// removed ("Marçal" == "marcal").
func Normalize(s string) string {
	folded, _, err := transform.String(stripMarks, strings.TrimSpace(s))
	if err != nil {
		folded = strings.TrimSpace(s)
	}
	return strings.ToLower(folded)
}

// NameTokens splits a normalized name into its significant tokens, dropping
// connector words of up to 2 characters ("de", "da", "e").
func NameTokens(s string) []string {
	var tokens []string
	for _, tok := range strings.Fields(Normalize(s)) {
		if len(tok) > 2 {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
