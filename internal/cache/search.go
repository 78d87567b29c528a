package cache

import (
	"strings"
	"unicode"

	"github.com/krzmknt/macos-music-tui/internal/domain"
)

// searchFilter is one field-scoped condition. exact switches from smart-case
// substring match to strict string equality.
type searchFilter struct {
	value string
	exact bool
}

// Search runs the query language over the cached tracks and returns every
// record matching all conditions, in storage order.
//
// The query is whitespace-tokenized. Tokens prefixed name:/artist:/album:
// (prefix match is case-insensitive) become field filters; everything else is
// a general term matched against the whole record. Filter values wrapped in
// matching double or single quotes require exact equality; an unterminated
// quote degrades to a literal substring match including the quote character.
// Matching is smart case: a value with any upper-case rune is compared
// case-sensitively, otherwise against the lower-cased search key. All filters
// and terms must hold. An empty query returns the entire set.
func (c *TrackCache) Search(query string) []domain.Track {
	c.ensureSearchKeys()

	var nameFilters, artistFilters, albumFilters []searchFilter
	var general []string

	for _, word := range strings.Fields(query) {
		lower := strings.ToLower(word)
		switch {
		case strings.HasPrefix(lower, "name:"):
			if f, ok := parseFilterValue(word[len("name:"):]); ok {
				nameFilters = append(nameFilters, f)
			}
		case strings.HasPrefix(lower, "artist:"):
			if f, ok := parseFilterValue(word[len("artist:"):]); ok {
				artistFilters = append(artistFilters, f)
			}
		case strings.HasPrefix(lower, "album:"):
			if f, ok := parseFilterValue(word[len("album:"):]); ok {
				albumFilters = append(albumFilters, f)
			}
		default:
			general = append(general, word)
		}
	}

	var results []domain.Track
	for _, t := range c.Tracks {
		if matchesFilters(t.Name, nameFilters) &&
			matchesFilters(t.Artist, artistFilters) &&
			matchesFilters(t.Album, albumFilters) &&
			matchesGeneral(t, general) {
			results = append(results, t)
		}
	}
	return results
}

func matchesFilters(target string, filters []searchFilter) bool {
	for _, f := range filters {
		if !fieldMatch(target, f) {
			return false
		}
	}
	return true
}

func matchesGeneral(t domain.Track, words []string) bool {
	for _, word := range words {
		var matched bool
		if hasUpper(word) {
			matched = strings.Contains(t.Name+" "+t.Artist+" "+t.Album, word)
		} else {
			matched = strings.Contains(t.SearchKey, strings.ToLower(word))
		}
		if !matched {
			return false
		}
	}
	return true
}

// parseFilterValue strips matching surrounding quotes, which mark the filter
// exact. Empty values (or empty quoted values) drop the filter entirely.
func parseFilterValue(value string) (searchFilter, bool) {
	if value == "" {
		return searchFilter{}, false
	}
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			inner := value[1 : len(value)-1]
			if inner == "" {
				return searchFilter{}, false
			}
			return searchFilter{value: inner, exact: true}, true
		}
	}
	return searchFilter{value: value, exact: false}, true
}

func fieldMatch(target string, f searchFilter) bool {
	if f.exact {
		return target == f.value
	}
	return smartCaseMatch(target, f.value)
}

// smartCaseMatch is case-sensitive when key contains upper-case, otherwise
// case-insensitive.
func smartCaseMatch(target, key string) bool {
	if hasUpper(key) {
		return strings.Contains(target, key)
	}
	return strings.Contains(strings.ToLower(target), strings.ToLower(key))
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
