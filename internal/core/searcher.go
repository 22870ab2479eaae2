package core

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Degradation reasons
const (
	ReasonMissingAPIKey = "missing_api_key"
	ReasonUpstreamError = "upstream_error"
)

// Searcher runs unified searches. It holds no per-search state and is safe
// for concurrent use.
type Searcher struct {
	spotify      Adapter
	youtube      Adapter
	scorer       Scorer
	defaultLimit int
	maxLimit     int
	logger       *zap.Logger
}

// SearcherOption customizes a Searcher.
type SearcherOption func(*Searcher)

// WithScorer replaces the default containment scorer.
func WithScorer(scorer Scorer) SearcherOption {
	return func(s *Searcher) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// WithLimits overrides the default and maximum result limits.
func WithLimits(defaultLimit, maxLimit int) SearcherOption {
	return func(s *Searcher) {
		if defaultLimit > 0 {
			s.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxLimit = maxLimit
		}
	}
}

// NewSearcher wires the adapters. youtube may be nil, in which case every
// search is degraded to Spotify only.
func NewSearcher(spotify, youtube Adapter, logger *zap.Logger, opts ...SearcherOption) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Searcher{
		spotify:      spotify,
		youtube:      youtube,
		scorer:       ContainmentScorer{},
		defaultLimit: DefaultSearchLimit,
		maxLimit:     MaxSearchLimit,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxLimit < s.defaultLimit {
		s.maxLimit = s.defaultLimit
	}
	return s
}

// EffectiveLimit applies the default to non-positive limits and caps the rest.
func (s *Searcher) EffectiveLimit(limit int) int {
	switch {
	case limit <= 0:
		return s.defaultLimit
	case limit > s.maxLimit:
		return s.maxLimit
	default:
		return limit
	}
}

// UnifiedSearch queries Spotify and, when an API key is present, YouTube in
// parallel, then merges and ranks the results. A Spotify failure fails the
// search. A YouTube failure only adds a Degradation to the envelope.
func (s *Searcher) UnifiedSearch(ctx context.Context, req SearchRequest) (*UnifiedSearchResult, error) {
	query := NormalizeQuery(req.Query)
	if query == "" {
		return nil, ErrInvalidQuery
	}
	if req.SpotifyToken == "" {
		return nil, ErrMissingCredential
	}

	limit := s.EffectiveLimit(req.Limit)

	var (
		spotifyResults []SearchResult
		youtubeResults []SearchResult
		degradations   []Degradation
		mu             sync.Mutex
	)

	degrade := func(reason string) {
		mu.Lock()
		degradations = append(degradations, Degradation{Platform: PlatformYouTube, Reason: reason})
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		results, err := s.spotify.Search(gctx, query, req.SpotifyToken, limit)
		if err != nil && !errors.Is(err, ErrPartialResults) {
			return &UpstreamError{Platform: PlatformSpotify, Err: err}
		}
		spotifyResults = results
		return nil
	})

	switch {
	case s.youtube == nil || req.YouTubeAPIKey == "":
		degrade(ReasonMissingAPIKey)
		s.logger.Warn("YouTube search skipped",
			zap.String("platform", string(PlatformYouTube)),
			zap.String("reason", ReasonMissingAPIKey))
	default:
		g.Go(func() error {
			results, err := s.youtube.Search(gctx, query, req.YouTubeAPIKey, limit)
			if err != nil && !errors.Is(err, ErrPartialResults) {
				// A group cancelled while the caller's context is live means
				// Spotify already failed the search.
				if gctx.Err() == nil || ctx.Err() != nil {
					degrade(ReasonUpstreamError)
					s.logger.Warn("YouTube search failed, continuing with Spotify only",
						zap.String("platform", string(PlatformYouTube)),
						zap.Error(err))
				}
				return nil
			}
			youtubeResults = results
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("Unified search failed",
			zap.String("platform", string(PlatformSpotify)),
			zap.String("query", query),
			zap.Error(err))
		return nil, err
	}

	ranked := Rank(Merge(spotifyResults, youtubeResults, s.scorer))

	envelope := &UnifiedSearchResult{
		Tracks:       []SearchResult{},
		Videos:       []SearchResult{},
		Playlists:    []SearchResult{},
		TotalResults: len(ranked),
		HasMore:      len(spotifyResults) >= limit,
		Degradations: degradations,
	}
	for _, r := range ranked {
		switch r.Kind {
		case KindTrack:
			envelope.Tracks = append(envelope.Tracks, r)
		case KindVideo:
			envelope.Videos = append(envelope.Videos, r)
		}
	}

	s.logger.Debug("Unified search completed",
		zap.String("query", query),
		zap.Int("limit", limit),
		zap.Int("spotify", len(spotifyResults)),
		zap.Int("youtube", len(youtubeResults)),
		zap.Int("merged", len(ranked)))

	return envelope, nil
}
