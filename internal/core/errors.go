package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery is returned when a query normalizes to nothing searchable.
	ErrInvalidQuery = errors.New("invalid search query")

	// ErrMissingCredential is returned when no Spotify access token was supplied.
	ErrMissingCredential = errors.New("missing spotify access token")

	// ErrUpstreamFailure matches any *UpstreamError via errors.Is.
	ErrUpstreamFailure = errors.New("upstream failure")

	// ErrUnsupportedLink is returned when a link is neither a Spotify track nor a YouTube video.
	ErrUnsupportedLink = errors.New("unsupported link")

	// ErrNotFound is returned when a provider has no item for the requested ID.
	ErrNotFound = errors.New("not found")

	// ErrPartialResults comes back together with usable results that an
	// adapter could not fully enrich. The results may be shown but not kept.
	ErrPartialResults = errors.New("partial results")
)

// UpstreamError reports that a load-bearing provider call failed.
type UpstreamError struct {
	Platform Platform
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s upstream failure: %v", e.Platform, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is makes every UpstreamError match ErrUpstreamFailure.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstreamFailure
}

// UpstreamPlatform extracts the failing platform from err, if any.
func UpstreamPlatform(err error) (Platform, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.Platform, true
	}
	return "", false
}
