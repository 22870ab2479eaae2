// Package spotify adapts the Spotify Web API to the unified search core.
package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"arch1ve/internal/core"
)

const (
	// DefaultTimeout bounds a single Spotify request.
	DefaultTimeout = 10 * time.Second
	// UnknownArtist is the default value when artist name is not available
	UnknownArtist = "Unknown"
)

// Client searches Spotify on behalf of the caller's access token. It keeps
// no token of its own and is safe for concurrent use.
type Client struct {
	baseURL string
	base    http.RoundTripper
	timeout time.Duration
	logger  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithTransport sets the round tripper the bearer transport wraps.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if rt != nil {
			c.base = rt
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a Spotify adapter. baseURL must end with a slash; an
// empty value selects the public Web API.
func NewClient(config *core.SpotifyConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := core.DefaultSpotifyBaseURL
	if config != nil && config.BaseURL != "" {
		baseURL = config.BaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	c := &Client{
		baseURL: baseURL,
		base:    http.DefaultTransport,
		timeout: DefaultTimeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Platform implements core.Adapter.
func (c *Client) Platform() core.Platform {
	return core.PlatformSpotify
}

// Search implements core.Adapter with a track search.
func (c *Client) Search(ctx context.Context, query, credential string, limit int) ([]core.SearchResult, error) {
	if credential == "" {
		return nil, core.ErrMissingCredential
	}

	results, err := c.api(credential).Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(limit))
	if err != nil {
		if isMalformedPayload(err) {
			c.logger.Debug("Ignoring malformed Spotify search payload", zap.Error(err))
			return []core.SearchResult{}, nil
		}
		return nil, fmt.Errorf("search failed: %w", err)
	}

	if results == nil || results.Tracks == nil {
		return []core.SearchResult{}, nil
	}

	tracks := make([]core.SearchResult, 0, len(results.Tracks.Tracks))
	for i := range results.Tracks.Tracks {
		track := &results.Tracks.Tracks[i]
		if track.ID == "" {
			continue
		}
		tracks = append(tracks, c.convertSpotifyTrack(track))
	}

	return tracks, nil
}

// GetTrack implements core.TrackLookup.
func (c *Client) GetTrack(ctx context.Context, credential, trackID string) (*core.SearchResult, error) {
	if credential == "" {
		return nil, core.ErrMissingCredential
	}

	recorder := &statusRecorder{base: c.base}
	track, err := c.apiWithTransport(credential, recorder).GetTrack(ctx, spotify.ID(trackID))
	switch {
	case err != nil && recorder.notFound():
		return nil, fmt.Errorf("spotify track %s: %w", trackID, core.ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("get track failed: %w", err)
	case track == nil || track.ID == "":
		return nil, fmt.Errorf("spotify track %s: %w", trackID, core.ErrNotFound)
	}

	result := c.convertSpotifyTrack(track)
	return &result, nil
}

// api builds a client bound to one caller's token.
func (c *Client) api(credential string) *spotify.Client {
	return c.apiWithTransport(credential, c.base)
}

func (c *Client) apiWithTransport(credential string, base http.RoundTripper) *spotify.Client {
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: credential, TokenType: "Bearer"})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{Source: source, Base: wholeBody{base: base}},
		Timeout:   c.timeout,
	}
	return spotify.New(httpClient, spotify.WithBaseURL(c.baseURL))
}

// statusRecorder remembers the status of the last response it carried, so a
// missing track can be told apart from other API errors whatever shape the
// error body has.
type statusRecorder struct {
	base   http.RoundTripper
	status atomic.Int32
}

func (r *statusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.base.RoundTrip(req)
	if resp != nil {
		r.status.Store(int32(resp.StatusCode))
	}
	return resp, err
}

// notFound covers 400 because Spotify answers malformed IDs with "invalid id".
func (r *statusRecorder) notFound() bool {
	status := int(r.status.Load())
	return status == http.StatusNotFound || status == http.StatusBadRequest
}

func (c *Client) convertSpotifyTrack(track *spotify.FullTrack) core.SearchResult {
	var artists []string
	for _, artist := range track.Artists {
		if artist.Name != "" {
			artists = append(artists, artist.Name)
		}
	}
	artist := strings.Join(artists, ", ")
	if artist == "" {
		artist = UnknownArtist
	}

	var thumbnail string
	if len(track.Album.Images) > 0 {
		thumbnail = track.Album.Images[0].URL
	}

	webURL := track.ExternalURLs["spotify"]

	return core.SearchResult{
		ID:              string(track.ID),
		Title:           track.Name,
		Artist:          artist,
		Album:           track.Album.Name,
		DurationText:    core.FormatDuration(int(track.Duration)),
		ThumbnailURL:    thumbnail,
		SourceURL:       webURL,
		Platform:        core.PlatformSpotify,
		Kind:            core.KindTrack,
		PopularityScore: core.IntPtr(int(track.Popularity)),
		PreviewURL:      track.PreviewURL,
		ExternalLinks:   core.ExternalLinks{Spotify: webURL},
	}
}

// wholeBody reads every response body before handing it on, so a connection
// that drops mid-body fails the request instead of looking like a short
// payload to the decoder.
type wholeBody struct {
	base http.RoundTripper
}

func (t wholeBody) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return resp, nil
}

// isMalformedPayload reports decode failures of a fully received body.
// Transport failures arrive as *url.Error and never count.
func isMalformedPayload(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return false
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// AppToken obtains an application token with the client credentials grant.
// An empty tokenURL selects the Spotify accounts service.
func AppToken(ctx context.Context, config *core.SpotifyConfig, tokenURL string) (*oauth2.Token, error) {
	if config == nil || config.ClientID == "" || config.ClientSecret == "" {
		return nil, errors.New("spotify client id and secret are required for an app token")
	}
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	cc := clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     tokenURL,
	}
	token, err := cc.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("client credentials exchange failed: %w", err)
	}
	return token, nil
}
