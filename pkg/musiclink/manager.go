package musiclink

import (
	"context"
	"strings"
)

// Manager parses links of every supported provider and coordinates the
// key-less resolvers.
type Manager struct {
	resolvers []Resolver
}

// NewManager creates a new music link manager with all supported resolvers.
func NewManager(resolvers ...Resolver) *Manager {
	if len(resolvers) == 0 {
		resolvers = []Resolver{NewYouTubeResolver()}
	}
	return &Manager{resolvers: resolvers}
}

// Parse identifies the provider, kind and ID of a link.
func (m *Manager) Parse(link string) (*Link, error) {
	link = strings.TrimSpace(link)

	if kind, ok := SpotifyURIType(link); ok {
		id, _ := SpotifyURIID(link)
		web, _ := SpotifyURIToWebURL(link)
		return &Link{Provider: ProviderSpotify, Kind: kind, ID: id, CanonicalURL: web}, nil
	}
	if uri, ok := SpotifyWebURLToURI(link); ok {
		kind, _ := SpotifyURIType(uri)
		id, _ := SpotifyURIID(uri)
		web, _ := SpotifyURIToWebURL(uri)
		return &Link{Provider: ProviderSpotify, Kind: kind, ID: id, CanonicalURL: web}, nil
	}

	if kind, ok := ClassifyYouTubeURL(link); ok {
		parsed := &Link{Provider: ProviderYouTube, Kind: kind}
		if kind == KindPlaylist {
			parsed.ID, _ = ExtractYouTubePlaylistID(link)
		} else {
			parsed.ID, _ = ExtractYouTubeVideoID(link)
		}
		parsed.CanonicalURL, _ = NormalizeYouTubeURL(link)
		parsed.StartSeconds, _ = YouTubeTimestamp(link)
		return parsed, nil
	}

	return nil, ErrUnsupportedLink
}

// Resolve attempts to resolve a music link using the appropriate resolver.
func (m *Manager) Resolve(ctx context.Context, url string) (*TrackInfo, error) {
	for _, resolver := range m.resolvers {
		if resolver.CanResolve(url) {
			return resolver.Resolve(ctx, url)
		}
	}

	return nil, ErrNoResolver
}

// CanResolve checks if any resolver can handle the given URL.
func (m *Manager) CanResolve(url string) bool {
	for _, resolver := range m.resolvers {
		if resolver.CanResolve(url) {
			return true
		}
	}
	return false
}
