package view

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// BestMatch returns the visible row that best matches query, preferring an
// exact name, then a prefix, then a substring, then the closest fuzzy
// match. It returns -1 when no row is visible and 0 when nothing matches.
func (v *View) BestMatch(query string) int {
	names := v.Names()
	if len(names) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, name := range names {
		if strings.EqualFold(name, trimmed) {
			return i
		}
	}
	for i, name := range names {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			return i
		}
	}
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
