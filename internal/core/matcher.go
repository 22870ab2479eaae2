package core

import (
	"math"
	"strings"

	"arch1ve/pkg/fuzzy"
)

// MatchThreshold is the score a pair must strictly exceed to be merged.
const MatchThreshold = 70

const (
	titleExactPoints     = 100
	titleContainsPoints  = 50
	artistExactPoints    = 60
	artistContainsPoints = 30
	durationPoints       = 20
)

// Scorer rates how likely two results describe the same recording, in [0,180].
type Scorer interface {
	Score(a, b SearchResult) int
}

// IsMatch reports whether a score clears MatchThreshold.
func IsMatch(score int) bool {
	return score > MatchThreshold
}

// ContainmentScorer compares titles and artists case-insensitively by
// equality and substring containment, and durations by exact text.
type ContainmentScorer struct{}

// Score implements Scorer.
func (ContainmentScorer) Score(a, b SearchResult) int {
	score := containmentPoints(a.Title, b.Title, titleExactPoints, titleContainsPoints)
	score += containmentPoints(a.Artist, b.Artist, artistExactPoints, artistContainsPoints)

	if a.DurationText != "" && b.DurationText != "" && a.DurationText == b.DurationText {
		score += durationPoints
	}

	return score
}

func containmentPoints(x, y string, exact, contains int) int {
	x, y = strings.ToLower(x), strings.ToLower(y)
	if x == "" || y == "" {
		return 0
	}

	switch {
	case x == y:
		return exact
	case strings.Contains(x, y), strings.Contains(y, x):
		return contains
	default:
		return 0
	}
}

// FuzzyScorer weighs title and artist similarity after stripping video
// decorations, and credits durations within a tolerance instead of
// requiring identical text.
type FuzzyScorer struct {
	normalizer *fuzzy.Normalizer
}

// NewFuzzyScorer returns a FuzzyScorer.
func NewFuzzyScorer() *FuzzyScorer {
	return &FuzzyScorer{normalizer: fuzzy.NewNormalizer()}
}

// Score implements Scorer.
func (s *FuzzyScorer) Score(a, b SearchResult) int {
	n := s.normalizer
	if n == nil {
		n = fuzzy.NewNormalizer()
	}

	var total float64

	ta, tb := n.NormalizeTitle(a.Title), n.NormalizeTitle(b.Title)
	if ta != "" && tb != "" {
		total += n.CalculateSimilarity(ta, tb) * titleExactPoints
	}

	aa, ab := n.NormalizeArtist(a.Artist), n.NormalizeArtist(b.Artist)
	if aa != "" && ab != "" {
		total += n.CalculateSimilarity(aa, ab) * artistExactPoints
	}

	da, okA := fuzzy.ParseClock(a.DurationText)
	db, okB := fuzzy.ParseClock(b.DurationText)
	if okA && okB {
		total += n.DurationTolerance(da, db) * durationPoints
	}

	return int(math.Round(total))
}

// NewScorer resolves a scorer by its configured name. Unknown names fall
// back to the containment scorer.
func NewScorer(name string) Scorer {
	if strings.EqualFold(name, MatcherFuzzy) {
		return NewFuzzyScorer()
	}
	return ContainmentScorer{}
}
