package musiclink

import (
	"net/url"
	"regexp"
	"strings"
)

const spotifyWebBase = "https://open.spotify.com/"

var (
	spotifyURIPattern = regexp.MustCompile(`^spotify:(track|album|artist|playlist|user):([a-zA-Z0-9]+)$`)
	spotifyWebPath    = regexp.MustCompile(`^/(?:intl-[a-z]{2}(?:-[a-zA-Z]{2})?/)?(track|album|artist|playlist|user)/([a-zA-Z0-9]+)/?$`)
)

// IsValidSpotifyURI reports whether uri has the form spotify:<type>:<id>.
func IsValidSpotifyURI(uri string) bool {
	return spotifyURIPattern.MatchString(uri)
}

// SpotifyURIType returns the item type of a Spotify URI.
func SpotifyURIType(uri string) (Kind, bool) {
	m := spotifyURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return "", false
	}
	return Kind(m[1]), true
}

// SpotifyURIID returns the item ID of a Spotify URI.
func SpotifyURIID(uri string) (string, bool) {
	m := spotifyURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// SpotifyURIToWebURL converts spotify:track:<id> to its open.spotify.com URL.
func SpotifyURIToWebURL(uri string) (string, bool) {
	m := spotifyURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return "", false
	}
	return spotifyWebBase + m[1] + "/" + m[2], true
}

// SpotifyWebURLToURI converts an open.spotify.com URL to a spotify: URI.
// Query strings such as si= and localized path prefixes are ignored.
func SpotifyWebURLToURI(rawURL string) (string, bool) {
	kind, id, ok := parseSpotifyWebURL(rawURL)
	if !ok {
		return "", false
	}
	return "spotify:" + string(kind) + ":" + id, true
}

// ExtractSpotifyTrackID accepts a track URI or a track web URL.
func ExtractSpotifyTrackID(link string) (string, bool) {
	link = strings.TrimSpace(link)
	if m := spotifyURIPattern.FindStringSubmatch(link); m != nil {
		if m[1] != string(KindTrack) {
			return "", false
		}
		return m[2], true
	}

	kind, id, ok := parseSpotifyWebURL(link)
	if !ok || kind != KindTrack {
		return "", false
	}
	return id, true
}

func parseSpotifyWebURL(rawURL string) (Kind, string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || !strings.EqualFold(u.Hostname(), "open.spotify.com") {
		return "", "", false
	}
	m := spotifyWebPath.FindStringSubmatch(u.Path)
	if m == nil {
		return "", "", false
	}
	return Kind(m[1]), m[2], true
}
