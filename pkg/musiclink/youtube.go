package musiclink

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

const (
	// YouTubeOEmbedURL is the YouTube oEmbed API endpoint.
	YouTubeOEmbedURL = "https://www.youtube.com/oembed"
	// youtubeExpectedSplitParts is the expected number of parts when splitting title/artist strings.
	youtubeExpectedSplitParts = 2
)

var (
	videoMarkers = regexp.MustCompile(
		`(?i)\s*[(\[](?:official (?:music )?video|official audio|lyric video|lyrics|hd|4k|m/v|mv)[)\]]`)
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
)

// YouTubeOEmbedResponse represents the response from YouTube's oEmbed API.
type YouTubeOEmbedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// YouTubeResolver resolves YouTube and YouTube Music links through oEmbed,
// which needs no API key.
type YouTubeResolver struct {
	client   *http.Client
	endpoint string
}

// YouTubeResolverOption customizes a YouTubeResolver.
type YouTubeResolverOption func(*YouTubeResolver)

// WithOEmbedEndpoint points the resolver at another oEmbed endpoint.
func WithOEmbedEndpoint(endpoint string) YouTubeResolverOption {
	return func(r *YouTubeResolver) {
		r.endpoint = endpoint
	}
}

// WithHTTPClient replaces the resolver's HTTP client.
func WithHTTPClient(client *http.Client) YouTubeResolverOption {
	return func(r *YouTubeResolver) {
		if client != nil {
			r.client = client
		}
	}
}

// NewYouTubeResolver creates a new YouTube link resolver.
func NewYouTubeResolver(opts ...YouTubeResolverOption) *YouTubeResolver {
	r := &YouTubeResolver{
		client:   newHTTPClient(),
		endpoint: YouTubeOEmbedURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CanResolve checks if the URL is a YouTube or YouTube Music video link.
func (r *YouTubeResolver) CanResolve(rawURL string) bool {
	_, ok := ExtractYouTubeVideoID(rawURL)
	return ok
}

// Resolve extracts track information from a YouTube URL using the oEmbed API.
func (r *YouTubeResolver) Resolve(ctx context.Context, rawURL string) (*TrackInfo, error) {
	videoID, ok := ExtractYouTubeVideoID(rawURL)
	if !ok {
		return nil, fmt.Errorf("no video ID in %q: %w", rawURL, ErrUnsupportedLink)
	}

	resp, err := fetchOEmbed[YouTubeOEmbedResponse](ctx, r.client, r.endpoint, YouTubeWatchURL(videoID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch oEmbed data: %w", err)
	}

	title, artist := r.parseTrackInfo(resp)
	thumbnail := resp.ThumbnailURL
	if thumbnail == "" {
		thumbnail = YouTubeThumbnailURL(videoID, "high")
	}

	return &TrackInfo{
		Title:        title,
		Artist:       artist,
		ThumbnailURL: thumbnail,
	}, nil
}

// parseTrackInfo extracts track title and artist from oEmbed response.
func (r *YouTubeResolver) parseTrackInfo(resp *YouTubeOEmbedResponse) (title, artist string) {
	title = r.cleanTitle(resp.Title)
	artist = r.extractArtist(title, resp.AuthorName)
	return title, artist
}

// cleanTitle removes common YouTube video metadata from titles.
func (r *YouTubeResolver) cleanTitle(title string) string {
	return strings.TrimSpace(videoMarkers.ReplaceAllString(title, ""))
}

// extractArtist prefers the official channel name, then the "Artist - Title"
// convention, then the uploader as-is.
func (r *YouTubeResolver) extractArtist(title, authorName string) string {
	if strings.HasSuffix(authorName, "VEVO") {
		return r.splitCamelCase(strings.TrimSuffix(authorName, "VEVO"))
	}

	if strings.HasSuffix(authorName, " - Topic") {
		return strings.TrimSuffix(authorName, " - Topic")
	}

	if strings.Contains(title, " - ") {
		parts := strings.SplitN(title, " - ", youtubeExpectedSplitParts)
		if len(parts) == youtubeExpectedSplitParts {
			return strings.TrimSpace(parts[0])
		}
	}

	return authorName
}

// splitCamelCase splits a camelCase string into words.
func (r *YouTubeResolver) splitCamelCase(s string) string {
	return camelBoundary.ReplaceAllString(s, "$1 $2")
}
