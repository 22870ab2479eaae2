package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"arch1ve/pkg/musiclink"
)

// LinkResolver turns a pasted Spotify or YouTube link into a SearchResult.
type LinkResolver struct {
	tracks TrackLookup
	videos VideoLookup
	oembed musiclink.Resolver
	logger *zap.Logger
}

// NewLinkResolver wires the lookups. videos and oembed may be nil; a YouTube
// link then fails with an upstream error when neither is available.
func NewLinkResolver(tracks TrackLookup, videos VideoLookup, oembed musiclink.Resolver,
	logger *zap.Logger) *LinkResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LinkResolver{tracks: tracks, videos: videos, oembed: oembed, logger: logger}
}

// Resolve fetches the track or video a link points at. Spotify links need a
// token. YouTube links use the Data API when a key is given and oEmbed otherwise.
func (r *LinkResolver) Resolve(ctx context.Context, link, spotifyToken, youtubeKey string) (*SearchResult, error) {
	link = strings.TrimSpace(link)

	if trackID, ok := musiclink.ExtractSpotifyTrackID(link); ok {
		return r.resolveSpotify(ctx, trackID, spotifyToken)
	}

	if videoID, ok := musiclink.ExtractYouTubeVideoID(link); ok {
		return r.resolveYouTube(ctx, videoID, youtubeKey)
	}

	return nil, ErrUnsupportedLink
}

func (r *LinkResolver) resolveSpotify(ctx context.Context, trackID, token string) (*SearchResult, error) {
	if token == "" {
		return nil, ErrMissingCredential
	}
	if r.tracks == nil {
		return nil, &UpstreamError{Platform: PlatformSpotify, Err: errors.New("spotify lookup not configured")}
	}

	result, err := r.tracks.GetTrack(ctx, token, trackID)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil, err
	case err != nil:
		return nil, &UpstreamError{Platform: PlatformSpotify, Err: err}
	}
	return result, nil
}

func (r *LinkResolver) resolveYouTube(ctx context.Context, videoID, key string) (*SearchResult, error) {
	if key != "" && r.videos != nil {
		result, err := r.videos.GetVideo(ctx, key, videoID)
		switch {
		case err == nil:
			return result, nil
		case errors.Is(err, ErrNotFound):
			return nil, err
		default:
			r.logger.Warn("YouTube video lookup failed, falling back to oEmbed",
				zap.String("videoID", videoID),
				zap.Error(err))
		}
	}

	if r.oembed == nil {
		return nil, &UpstreamError{Platform: PlatformYouTube, Err: errors.New("no key-less resolver configured")}
	}

	watchURL := musiclink.YouTubeWatchURL(videoID)
	info, err := r.oembed.Resolve(ctx, watchURL)
	switch {
	case errors.Is(err, musiclink.ErrNotFound):
		return nil, fmt.Errorf("youtube video %s: %w", videoID, ErrNotFound)
	case err != nil:
		return nil, &UpstreamError{Platform: PlatformYouTube, Err: err}
	}

	return &SearchResult{
		ID:            videoID,
		Title:         info.Title,
		Artist:        info.Artist,
		ThumbnailURL:  info.ThumbnailURL,
		SourceURL:     watchURL,
		Platform:      PlatformYouTube,
		Kind:          KindVideo,
		ExternalLinks: ExternalLinks{YouTube: watchURL},
	}, nil
}
