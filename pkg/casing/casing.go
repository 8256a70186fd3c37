// Package casing converts schema field names into labels, Go identifiers and
// storage keys.
package casing

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var splitWordsPattern = regexp.MustCompile(`[_\-\s\[\].]+`)

// Label converts a field name into a human-friendly label. It splits on
// underscores, dashes, brackets and camelCase boundaries.
func Label(name string) string {
	words := Words(name)
	titler := cases.Title(language.Und)
	for i, word := range words {
		words[i] = titler.String(word)
	}
	return strings.Join(words, " ")
}

// Pascal converts a field name into an exported Go identifier, so
// "first_name" becomes "FirstName". Common initialisms are not special-cased.
func Pascal(name string) string {
	words := Words(name)
	titler := cases.Title(language.Und)
	var out strings.Builder
	for _, word := range words {
		out.WriteString(titler.String(word))
	}
	return out.String()
}

// Words splits a field name into lower-cased words.
func Words(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	var words []string
	for _, chunk := range splitWordsPattern.Split(name, -1) {
		if chunk == "" {
			continue
		}
		for _, word := range strings.Fields(splitCamel(chunk)) {
			words = append(words, strings.ToLower(word))
		}
	}
	return words
}

// Key lower-cases value and drops everything outside [a-z0-9_-].
func Key(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	var out strings.Builder
	out.Grow(len(value))
	for _, r := range value {
		if isLower(r) || isDigit(r) || r == '_' || r == '-' {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func splitCamel(input string) string {
	var out strings.Builder
	runes := []rune(input)
	for i, r := range runes {
		if i > 0 && isBoundary(runes, i) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(runes []rune, index int) bool {
	prev, r := runes[index-1], runes[index]
	if isLower(prev) && isUpper(r) {
		return true
	}
	// "HTMLParser": break before the last upper of an acronym run.
	if isUpper(prev) && isUpper(r) && index+1 < len(runes) && isLower(runes[index+1]) {
		return true
	}
	return (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }
