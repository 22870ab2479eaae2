package core

import (
	"context"
	"fmt"
)

// Platform identifies the streaming service a result came from.
type Platform string

const (
	// PlatformSpotify marks results produced by the Spotify Web API
	PlatformSpotify Platform = "spotify"
	// PlatformYouTube marks results produced by the YouTube Data API
	PlatformYouTube Platform = "youtube"
)

// Kind is the type of playable item a result represents.
type Kind string

const (
	// KindTrack is a Spotify track
	KindTrack Kind = "track"
	// KindVideo is a YouTube video
	KindVideo Kind = "video"
	// KindPlaylist is a playlist on either platform
	KindPlaylist Kind = "playlist"
)

// ExternalLinks accumulates a link per platform that contributed to a result.
type ExternalLinks struct {
	Spotify string `json:"spotify,omitempty"`
	YouTube string `json:"youtube,omitempty"`
}

// SearchResult is a single playable item normalized across platforms.
// Empty strings and a nil PopularityScore mean the provider did not supply the field.
type SearchResult struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Artist          string        `json:"artist"`
	Album           string        `json:"album,omitempty"`
	DurationText    string        `json:"duration,omitempty"`
	ThumbnailURL    string        `json:"thumbnail"`
	SourceURL       string        `json:"url"`
	Platform        Platform      `json:"platform"`
	Kind            Kind          `json:"type"`
	PopularityScore *int          `json:"popularity,omitempty"`
	PreviewURL      string        `json:"previewUrl,omitempty"`
	ExternalLinks   ExternalLinks `json:"externalUrls"`
}

// HasPopularity reports whether the provider exposed a popularity score.
func (r *SearchResult) HasPopularity() bool {
	return r.PopularityScore != nil
}

// Degradation records an optional provider that did not contribute to a search.
type Degradation struct {
	Platform Platform `json:"platform"`
	Reason   string   `json:"reason"`
}

// UnifiedSearchResult is the response envelope of a unified search.
type UnifiedSearchResult struct {
	Tracks       []SearchResult `json:"tracks"`
	Videos       []SearchResult `json:"videos"`
	Playlists    []SearchResult `json:"playlists"`
	TotalResults int            `json:"totalResults"`
	HasMore      bool           `json:"hasMore"`
	Degradations []Degradation  `json:"degraded,omitempty"`
}

// SearchRequest carries everything a single unified search needs.
// Credentials are passed per call so the searcher holds no ambient secrets.
type SearchRequest struct {
	Query         string
	SpotifyToken  string
	YouTubeAPIKey string
	Limit         int
}

// Adapter searches one platform and maps its payload into SearchResults.
type Adapter interface {
	Platform() Platform
	Search(ctx context.Context, query, credential string, limit int) ([]SearchResult, error)
}

// TrackLookup fetches a single Spotify track by ID.
type TrackLookup interface {
	GetTrack(ctx context.Context, credential, trackID string) (*SearchResult, error)
}

// VideoLookup fetches a single YouTube video by ID.
type VideoLookup interface {
	GetVideo(ctx context.Context, credential, videoID string) (*SearchResult, error)
}

// FormatDuration renders milliseconds as minutes:seconds with zero-padded seconds.
func FormatDuration(ms int) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
