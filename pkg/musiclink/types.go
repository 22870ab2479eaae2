// Package musiclink parses Spotify and YouTube links and resolves YouTube
// videos to track information without an API key.
package musiclink

import (
	"context"
	"errors"
)

// Provider is the service a link points at.
type Provider string

const (
	ProviderSpotify Provider = "spotify"
	ProviderYouTube Provider = "youtube"
)

// Kind is what a link points at within its provider.
type Kind string

const (
	KindVideo    Kind = "video"
	KindMusic    Kind = "music" // a video on music.youtube.com
	KindPlaylist Kind = "playlist"
	KindTrack    Kind = "track"
	KindAlbum    Kind = "album"
	KindArtist   Kind = "artist"
	KindUser     Kind = "user"
)

var (
	// ErrUnsupportedLink is returned when a link matches no known provider pattern.
	ErrUnsupportedLink = errors.New("unsupported music link")
	// ErrNoResolver is returned when no resolver can handle a URL.
	ErrNoResolver = errors.New("no resolver found for URL")
)

// Link is a parsed provider link.
type Link struct {
	Provider Provider
	Kind     Kind
	ID       string
	// CanonicalURL is the provider's standard web URL for the item.
	CanonicalURL string
	// StartSeconds is the YouTube start offset, zero when absent.
	StartSeconds int
}

// TrackInfo holds track information extracted without provider credentials.
type TrackInfo struct {
	Title        string
	Artist       string
	ThumbnailURL string
}

// Resolver turns a link into track information.
type Resolver interface {
	// Resolve extracts track information from a music provider URL.
	Resolve(ctx context.Context, url string) (*TrackInfo, error)

	// CanResolve checks if this resolver can handle the given URL.
	CanResolve(url string) bool
}
