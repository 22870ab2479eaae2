// Package fuzzy provides tolerant comparison helpers for track metadata.
package fuzzy

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	featPattern    = regexp.MustCompile(`(?i)\s*[(\[]\s*(?:feat\.?|ft\.?|featuring)\s+[^)\]]*[)\]]`)
	featTail       = regexp.MustCompile(`(?i)\s+(?:feat\.?|ft\.?|featuring)\s+.*$`)
	videoNoise     = regexp.MustCompile(`(?i)\s*[(\[][^)\]]*(?:official|lyric|lyrics|audio|video|m/?v|visualizer|remaster(?:ed)?|live)[^)\]]*[)\]]`)
	topicSuffix    = regexp.MustCompile(`(?i)\s*-\s*topic$`)
	vevoSuffix     = regexp.MustCompile(`(?i)vevo$`)
	nonAlnum       = regexp.MustCompile(`[^\p{L}\p{N}\s&]+`)
	spaceRun       = regexp.MustCompile(`\s+`)
	caseFolder     = cases.Fold()
	toleranceFull  = 30 * time.Second
	toleranceLimit = 2 * time.Minute
)

// Normalizer folds titles and artist names into a comparable form.
type Normalizer struct{}

// NewNormalizer returns a ready Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeArtist folds an artist or channel name. YouTube auto-generated
// channel suffixes ("- Topic", "VEVO") are removed.
func (n *Normalizer) NormalizeArtist(artist string) string {
	artist = topicSuffix.ReplaceAllString(strings.TrimSpace(artist), "")
	artist = vevoSuffix.ReplaceAllString(artist, "")
	artist = n.fold(artist)

	artist = strings.ReplaceAll(artist, " and ", " & ")
	return strings.TrimSpace(artist)
}

// NormalizeTitle folds a title and strips featuring credits and the
// bracketed decorations video uploads usually carry.
func (n *Normalizer) NormalizeTitle(title string) string {
	title = featPattern.ReplaceAllString(title, "")
	title = videoNoise.ReplaceAllString(title, "")
	title = featTail.ReplaceAllString(title, "")
	return n.fold(title)
}

func (n *Normalizer) fold(text string) string {
	text = norm.NFKD.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !unicode.IsMark(r) {
			b.WriteRune(r)
		}
	}

	// Recompose so Hangul jamo compare as syllables again.
	text = norm.NFC.String(b.String())
	text = caseFolder.String(text)
	text = nonAlnum.ReplaceAllString(text, " ")
	text = spaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CalculateSimilarity returns the longest-common-subsequence ratio of two
// strings in [0,1], measured in runes.
func (n *Normalizer) CalculateSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	return float64(lcs(a, b)) / float64(max(len(a), len(b)))
}

func lcs(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// DurationTolerance gives full credit for durations within 30s of each
// other, fading linearly to zero at a two minute difference.
func (n *Normalizer) DurationTolerance(d1, d2 time.Duration) float64 {
	diff := d1 - d2
	if diff < 0 {
		diff = -diff
	}

	if diff <= toleranceFull {
		return 1.0
	}
	if diff >= toleranceLimit {
		return 0.0
	}

	return 1.0 - float64(diff-toleranceFull)/float64(toleranceLimit-toleranceFull)
}

// ParseClock parses "m:ss" or "h:mm:ss" into a duration.
func ParseClock(s string) (time.Duration, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	var total int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, false
		}
		if i > 0 && v >= 60 {
			return 0, false
		}
		total = total*60 + v
	}

	return time.Duration(total) * time.Second, true
}
