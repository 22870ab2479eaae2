package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"arch1ve/internal/cache"
	"arch1ve/internal/core"
	httpserver "arch1ve/internal/http"
	"arch1ve/internal/spotify"
	"arch1ve/internal/throttle"
	"arch1ve/internal/youtube"
	"arch1ve/pkg/musiclink"
)

// components are the wired search services shared by every command.
type components struct {
	searcher *core.Searcher
	links    *core.LinkResolver
	store    cache.Store
}

// buildComponents wires adapters, decorators and the core services. metrics
// may be nil on the command line.
func buildComponents(cfg *core.Config, log *zap.Logger, metrics *httpserver.Metrics) (*components, error) {
	spotifyClient := spotify.NewClient(&cfg.Spotify, log.Named("spotify"))
	youtubeClient := youtube.NewClient(&cfg.YouTube, log.Named("youtube"))

	spotifyAdapter := throttle.Limit(spotifyClient,
		throttle.NewLimiter(cfg.RateLimit.SpotifyRPS, cfg.RateLimit.Burst))
	youtubeAdapter := throttle.Limit(youtubeClient,
		throttle.NewLimiter(cfg.RateLimit.YouTubeRPS, cfg.RateLimit.Burst))

	store, err := openStore(&cfg.Cache)
	if err != nil {
		return nil, err
	}
	if store != nil {
		var opts []cache.Option
		if metrics != nil {
			opts = append(opts, cache.WithLookupCounter(metrics.CacheLookupsTotal))
		}
		// Only YouTube results are shared: they do not depend on who asked.
		youtubeAdapter = cache.Wrap(youtubeAdapter, store, log.Named("cache"), opts...)
	}

	searcher := core.NewSearcher(spotifyAdapter, youtubeAdapter, log.Named("search"),
		core.WithScorer(core.NewScorer(cfg.Search.Matcher)),
		core.WithLimits(cfg.Search.DefaultLimit, cfg.Search.MaxLimit))

	oembed := musiclink.NewManager(musiclink.NewYouTubeResolver())
	links := core.NewLinkResolver(spotifyClient, youtubeClient, oembed, log.Named("links"))

	return &components{searcher: searcher, links: links, store: store}, nil
}

func openStore(cfg *core.CacheConfig) (cache.Store, error) {
	switch cfg.Backend {
	case core.CacheBackendMemory:
		return cache.NewMemoryStore(cfg.Size, cfg.TTL), nil
	case core.CacheBackendRedis:
		store, err := cache.OpenRedisStore(cfg.RedisURL, cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis cache: %w", err)
		}
		return store, nil
	default:
		return nil, nil
	}
}

// ready reports whether a remote cache is reachable.
func (c *components) ready(ctx context.Context) error {
	if pinger, ok := c.store.(cache.Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

func (c *components) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
