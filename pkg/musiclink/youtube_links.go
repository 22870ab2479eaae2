package musiclink

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const youtubeWatchURL = "https://www.youtube.com/watch?v="

var (
	youtubeVideoID    = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	youtubePlaylistID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	youtubeTimestamp  = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s?)?$`)

	// Path prefixes that carry the video ID as their next segment.
	youtubeIDPaths = []string{"/embed/", "/v/", "/shorts/"}

	youtubeThumbnailFiles = map[string]string{
		"default":  "default.jpg",
		"medium":   "mqdefault.jpg",
		"high":     "hqdefault.jpg",
		"standard": "sddefault.jpg",
		"maxres":   "maxresdefault.jpg",
	}
)

func isYouTubeHost(host string) bool {
	switch strings.ToLower(host) {
	case "youtube.com", "www.youtube.com", "m.youtube.com", "music.youtube.com", "youtu.be":
		return true
	}
	return false
}

// parseYouTubeURL parses a link whose host is YouTube. A missing scheme is
// read as https.
func parseYouTubeURL(rawURL string) (*url.URL, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || !isYouTubeHost(u.Hostname()) {
		return nil, false
	}
	return u, true
}

// ExtractYouTubeVideoID returns the 11 character video ID of a watch, short,
// embed, v, shorts or YouTube Music link.
func ExtractYouTubeVideoID(rawURL string) (string, bool) {
	u, ok := parseYouTubeURL(rawURL)
	if !ok {
		return "", false
	}

	var id string
	path := strings.TrimSuffix(u.Path, "/")
	switch {
	case strings.EqualFold(u.Hostname(), "youtu.be"):
		id = strings.TrimPrefix(path, "/")
	case path == "/watch":
		id = u.Query().Get("v")
	default:
		for _, prefix := range youtubeIDPaths {
			if rest, found := strings.CutPrefix(path, prefix); found {
				id = rest
				break
			}
		}
	}

	if !youtubeVideoID.MatchString(id) {
		return "", false
	}
	return id, true
}

// ExtractYouTubePlaylistID returns the list parameter of a playlist link.
func ExtractYouTubePlaylistID(rawURL string) (string, bool) {
	u, ok := parseYouTubeURL(rawURL)
	if !ok {
		return "", false
	}
	switch strings.TrimSuffix(u.Path, "/") {
	case "/playlist", "/watch":
	default:
		return "", false
	}
	if id := u.Query().Get("list"); youtubePlaylistID.MatchString(id) {
		return id, true
	}
	return "", false
}

// ClassifyYouTubeURL reports whether a link is a video, a YouTube Music
// video or a playlist. Video IDs win over playlist IDs.
func ClassifyYouTubeURL(rawURL string) (Kind, bool) {
	if _, ok := ExtractYouTubeVideoID(rawURL); ok {
		if IsYouTubeMusicURL(rawURL) {
			return KindMusic, true
		}
		return KindVideo, true
	}
	if _, ok := ExtractYouTubePlaylistID(rawURL); ok {
		return KindPlaylist, true
	}
	return "", false
}

// IsValidYouTubeURL reports whether the link carries a video or playlist ID.
func IsValidYouTubeURL(rawURL string) bool {
	_, ok := ClassifyYouTubeURL(rawURL)
	return ok
}

// IsYouTubeMusicURL reports whether the link is on music.youtube.com.
func IsYouTubeMusicURL(rawURL string) bool {
	u, ok := parseYouTubeURL(rawURL)
	return ok && strings.EqualFold(u.Hostname(), "music.youtube.com")
}

// IsYouTubeShortsURL reports whether the link is a Shorts link.
func IsYouTubeShortsURL(rawURL string) bool {
	u, ok := parseYouTubeURL(rawURL)
	return ok && strings.HasPrefix(u.Path, "/shorts/")
}

// NormalizeYouTubeURL rewrites a link to its canonical watch or playlist URL.
func NormalizeYouTubeURL(rawURL string) (string, bool) {
	if id, ok := ExtractYouTubeVideoID(rawURL); ok {
		return YouTubeWatchURL(id), true
	}
	if id, ok := ExtractYouTubePlaylistID(rawURL); ok {
		return "https://www.youtube.com/playlist?list=" + id, true
	}
	return "", false
}

// YouTubeWatchURL returns the canonical watch URL of a video.
func YouTubeWatchURL(videoID string) string {
	return youtubeWatchURL + videoID
}

// YouTubeEmbedURL returns the embed URL for the video a link points at.
func YouTubeEmbedURL(rawURL string) (string, bool) {
	id, ok := ExtractYouTubeVideoID(rawURL)
	if !ok {
		return "", false
	}
	return "https://www.youtube.com/embed/" + id, true
}

// YouTubeThumbnailURL returns the still image URL of a video. quality is one
// of default, medium, high, standard or maxres; anything else means high.
func YouTubeThumbnailURL(videoID, quality string) string {
	file, ok := youtubeThumbnailFiles[quality]
	if !ok {
		file = youtubeThumbnailFiles["high"]
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/%s", videoID, file)
}

// YouTubeTimestamp returns the start offset in seconds of a link's t
// parameter. Plain numbers and h/m/s forms such as 1m30s are accepted.
func YouTubeTimestamp(rawURL string) (int, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, false
	}
	t := u.Query().Get("t")
	if t == "" {
		return 0, false
	}

	m := youtubeTimestamp.FindStringSubmatch(t)
	if m == nil {
		return 0, false
	}

	total := 0
	for i, unit := range []int{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, false
		}
		total += v * unit
	}
	return total, true
}

// WithYouTubeTimestamp returns the canonical watch URL starting at seconds.
// Links without a video ID are returned unchanged.
func WithYouTubeTimestamp(rawURL string, seconds int) string {
	id, ok := ExtractYouTubeVideoID(rawURL)
	if !ok {
		return rawURL
	}

	minutes, rest := seconds/60, seconds%60
	if minutes > 0 {
		return fmt.Sprintf("%s%s&t=%dm%ds", youtubeWatchURL, id, minutes, rest)
	}
	return fmt.Sprintf("%s%s&t=%ds", youtubeWatchURL, id, seconds)
}

// ShortsToWatchURL converts a Shorts link into a regular watch URL.
func ShortsToWatchURL(rawURL string) (string, bool) {
	if !IsYouTubeShortsURL(rawURL) {
		return "", false
	}
	id, ok := ExtractYouTubeVideoID(rawURL)
	if !ok {
		return "", false
	}
	return YouTubeWatchURL(id), true
}
