package search

import (
	"strings"

	"github.com/vietbites/discovery/internal/domain/restaurant"
)

// matchesText reports whether the query text appears in the restaurant's
// name, description, or any cuisine or tag display name. Matching is
// case-insensitive and diacritic-sensitive, as stored. Empty text matches
// everything.
func matchesText(r *restaurant.Restaurant, text string) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)

	if strings.Contains(strings.ToLower(r.Name()), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description()), needle) {
		return true
	}
	for _, c := range r.Cuisines() {
		if strings.Contains(strings.ToLower(c.Name()), needle) {
			return true
		}
	}
	for _, t := range r.Tags() {
		if strings.Contains(strings.ToLower(t.Name()), needle) {
			return true
		}
	}
	return false
}
