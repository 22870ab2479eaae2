// Package youtube adapts the YouTube Data API v3 to the unified search core.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"arch1ve/internal/core"
	"arch1ve/pkg/musiclink"
)

// maxResultsPerPage is the largest maxResults the search endpoint accepts.
const maxResultsPerPage = 50

var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// errMalformedPayload marks a fully received 2xx body that did not decode.
var errMalformedPayload = errors.New("malformed payload")

// Client searches YouTube videos with the caller-supplied API key.
type Client struct {
	baseURL        string
	fetchDurations bool
	http           *http.Client
	logger         *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// NewClient creates a YouTube adapter from config. A nil config selects the
// public API with durations disabled.
func NewClient(config *core.YouTubeConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := core.DefaultYouTubeBaseURL
	timeout := core.DefaultYouTubeTimeout
	var fetchDurations bool
	if config != nil {
		if config.BaseURL != "" {
			baseURL = config.BaseURL
		}
		if config.Timeout > 0 {
			timeout = config.Timeout
		}
		fetchDurations = config.FetchDurations
	}

	c := &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		fetchDurations: fetchDurations,
		http:           &http.Client{Timeout: timeout},
		logger:         logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Platform implements core.Adapter.
func (c *Client) Platform() core.Platform {
	return core.PlatformYouTube
}

type thumbnail struct {
	URL string `json:"url"`
}

type snippet struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	Thumbnails   struct {
		Default thumbnail `json:"default"`
		Medium  thumbnail `json:"medium"`
		High    thumbnail `json:"high"`
	} `json:"thumbnails"`
}

// bestThumbnail prefers high, then medium, then default.
func (s *snippet) bestThumbnail() string {
	for _, t := range []thumbnail{s.Thumbnails.High, s.Thumbnails.Medium, s.Thumbnails.Default} {
		if t.URL != "" {
			return t.URL
		}
	}
	return ""
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string  `json:"id"`
		Snippet        snippet `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Search implements core.Adapter with a video search.
func (c *Client) Search(ctx context.Context, query, credential string, limit int) ([]core.SearchResult, error) {
	if credential == "" {
		return nil, core.ErrMissingCredential
	}
	if limit <= 0 || limit > maxResultsPerPage {
		limit = maxResultsPerPage
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("q", query)
	params.Set("key", credential)

	var body searchResponse
	if err := c.get(ctx, "search", params, &body); err != nil {
		if errors.Is(err, errMalformedPayload) {
			c.logger.Debug("Ignoring malformed YouTube search payload", zap.Error(err))
			return []core.SearchResult{}, nil
		}
		return nil, err
	}

	out := make([]core.SearchResult, 0, len(body.Items))
	ids := make([]string, 0, len(body.Items))
	for i := range body.Items {
		item := &body.Items[i]
		if item.ID.VideoID == "" {
			continue
		}
		out = append(out, convertVideo(item.ID.VideoID, &item.Snippet, ""))
		ids = append(ids, item.ID.VideoID)
	}

	if c.fetchDurations && len(ids) > 0 {
		durations, err := c.durations(ctx, credential, ids)
		if err != nil {
			c.logger.Warn("Failed to fetch YouTube durations", zap.Error(err))
			return out, fmt.Errorf("youtube durations: %w", core.ErrPartialResults)
		}
		for i := range out {
			out[i].DurationText = durations[out[i].ID]
		}
	}

	return out, nil
}

// GetVideo implements core.VideoLookup.
func (c *Client) GetVideo(ctx context.Context, credential, videoID string) (*core.SearchResult, error) {
	if credential == "" {
		return nil, core.ErrMissingCredential
	}

	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("id", videoID)
	params.Set("key", credential)

	var body videosResponse
	if err := c.get(ctx, "videos", params, &body); err != nil {
		return nil, err
	}

	for i := range body.Items {
		item := &body.Items[i]
		if item.ID != videoID {
			continue
		}
		result := convertVideo(item.ID, &item.Snippet, formatISODuration(item.ContentDetails.Duration))
		return &result, nil
	}
	return nil, fmt.Errorf("youtube video %s: %w", videoID, core.ErrNotFound)
}

func (c *Client) durations(ctx context.Context, credential string, ids []string) (map[string]string, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", credential)

	var body videosResponse
	if err := c.get(ctx, "videos", params, &body); err != nil {
		return nil, err
	}

	durations := make(map[string]string, len(body.Items))
	for _, item := range body.Items {
		durations[item.ID] = formatISODuration(item.ContentDetails.Duration)
	}
	return durations, nil
}

// get performs one API call. Errors never carry the request URL because it
// holds the API key.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dest any) error {
	reqURL := c.baseURL + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("youtube %s request: %w", endpoint, stripURL(err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("youtube %s request: %w", endpoint, stripURL(err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("youtube %s status %d", endpoint, resp.StatusCode)
	}

	// A body that stops short of its length is a transport failure, not a
	// malformed payload.
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("youtube %s read: %w", endpoint, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("youtube %s: %w: %w", endpoint, errMalformedPayload, err)
	}
	return nil
}

func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

func convertVideo(id string, s *snippet, duration string) core.SearchResult {
	watchURL := musiclink.YouTubeWatchURL(id)
	return core.SearchResult{
		ID:            id,
		Title:         s.Title,
		Artist:        s.ChannelTitle,
		DurationText:  duration,
		ThumbnailURL:  s.bestThumbnail(),
		SourceURL:     watchURL,
		Platform:      core.PlatformYouTube,
		Kind:          core.KindVideo,
		ExternalLinks: core.ExternalLinks{YouTube: watchURL},
	}
}

// parseISODuration parses the PnDTnHnMnS form the API uses for video lengths.
func parseISODuration(value string) (time.Duration, bool) {
	m := isoDurationRe.FindStringSubmatch(value)
	if m == nil || value == "P" || value == "PT" {
		return 0, false
	}

	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}
	var total time.Duration
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, false
		}
		total += time.Duration(n) * unit
	}
	return total, true
}

// formatISODuration renders an API duration as m:ss. Live streams report
// P0D and get no duration.
func formatISODuration(value string) string {
	d, ok := parseISODuration(value)
	if !ok || d <= 0 {
		return ""
	}
	return core.FormatDuration(int(d.Milliseconds()))
}
