package core

import (
	"slices"
	"strings"
)

// Rank returns a new slice ordered Spotify first, then by descending
// popularity when both sides have one, otherwise by title. The sort is stable.
func Rank(results []SearchResult) []SearchResult {
	ranked := slices.Clone(results)
	slices.SortStableFunc(ranked, compareResults)
	return ranked
}

func compareResults(a, b SearchResult) int {
	aSpotify, bSpotify := a.Platform == PlatformSpotify, b.Platform == PlatformSpotify
	if aSpotify != bSpotify {
		if aSpotify {
			return -1
		}
		return 1
	}

	// Equal popularity keeps merge order; title only orders unscored pairs.
	if a.HasPopularity() && b.HasPopularity() {
		return *b.PopularityScore - *a.PopularityScore
	}

	return strings.Compare(a.Title, b.Title)
}
