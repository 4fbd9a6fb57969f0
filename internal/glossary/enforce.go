package glossary

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Apply replaces whole-word, case-insensitive occurrences of every source
// term in text with its target term, re-casing each replacement to match the
// matched span: an ALLCAPS match yields an uppercase replacement, a
// Capitalized match a capitalized one, anything else the stored form.
// Terms are applied in sorted order so enforcement is deterministic.
func Apply(entries map[string]string, text string) string {
	if len(entries) == 0 || text == "" {
		return text
	}
	terms := make([]string, 0, len(entries))
	for term := range entries {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	for _, term := range terms {
		target := entries[term]
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		if err != nil {
			continue
		}
		text = pattern.ReplaceAllStringFunc(text, func(matched string) string {
			return recase(matched, target)
		})
	}
	return text
}

func recase(matched, target string) string {
	switch {
	case isAllUpper(matched):
		return strings.ToUpper(target)
	case isCapitalized(matched):
		return capitalize(target)
	default:
		return target
	}
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return hasLetter
}

func isCapitalized(s string) bool {
	first, _ := utf8.DecodeRuneInString(s)
	return first != utf8.RuneError && unicode.IsUpper(first)
}

func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}
