package service

import (
	"slices"
	"strings"
)

// Terms lowercases s and splits it on whitespace.
func Terms(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

// Matches reports whether a recipe title qualifies for a search. Only the
// first search term is consulted: the title matches if it contains that
// term, and does not match otherwise, whatever the later terms are.
// Both arguments are expected to come from Terms.
//
// TODO: switch to any-term matching once product signs off on the change
// to search results.
func Matches(searchTerms, titleWords []string) bool {
	if len(searchTerms) == 0 {
		return false
	}
	return slices.Contains(titleWords, searchTerms[0])
}
