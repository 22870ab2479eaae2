package musiclink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	oembedTimeout      = 10 * time.Second
	oembedMaxRedirects = 3
)

var (
	// ErrNotFound is returned when the oEmbed endpoint has no such item.
	ErrNotFound = errors.New("item not found")

	errRedirectLoop = errors.New("oEmbed redirect limit reached")
)

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: oembedTimeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= oembedMaxRedirects {
				return errRedirectLoop
			}
			return nil
		},
	}
}

// oembedStatusError classifies a non-200 oEmbed answer. YouTube answers 401
// for private videos and 400 for malformed IDs, so both count as missing.
func oembedStatusError(status int) error {
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound, http.StatusUnauthorized, http.StatusBadRequest:
		return fmt.Errorf("oEmbed status %d: %w", status, ErrNotFound)
	default:
		return fmt.Errorf("oEmbed status %d", status)
	}
}

// fetchOEmbed asks endpoint for the JSON description of target.
func fetchOEmbed[T any](ctx context.Context, client *http.Client, endpoint, target string) (*T, error) {
	query := url.Values{"url": {target}, "format": {"json"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := oembedStatusError(resp.StatusCode); err != nil {
		return nil, err
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode oEmbed response: %w", err)
	}
	return &out, nil
}
