package core

// Merge folds secondary results into primary ones. Each primary item takes
// the best-scoring secondary item still available (the earliest wins ties)
// and records its link when the score clears MatchThreshold. Unclaimed
// secondary items follow in their original order. The inputs are not modified.
func Merge(primary, secondary []SearchResult, scorer Scorer) []SearchResult {
	if scorer == nil {
		scorer = ContainmentScorer{}
	}

	merged := make([]SearchResult, 0, len(primary)+len(secondary))
	consumed := make([]bool, len(secondary))

	for _, p := range primary {
		best, bestScore := -1, -1
		for i, s := range secondary {
			if consumed[i] {
				continue
			}
			if score := scorer.Score(p, s); score > bestScore {
				best, bestScore = i, score
			}
		}

		if best >= 0 && IsMatch(bestScore) {
			consumed[best] = true
			p.ExternalLinks.YouTube = secondary[best].SourceURL
		}
		merged = append(merged, p)
	}

	for i, s := range secondary {
		if !consumed[i] {
			merged = append(merged, s)
		}
	}

	return merged
}
