package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"arch1ve/internal/i18n"
)

// Configuration defaults
const (
	DefaultSearchLimit     = 20
	MaxSearchLimit         = 50
	DefaultServerPort      = 8080
	DefaultCacheSize       = 1024
	DefaultCacheTTL        = 10 * time.Minute
	DefaultYouTubeTimeout  = 10 * time.Second
	DefaultSpotifyBaseURL  = "https://api.spotify.com/v1/"
	DefaultYouTubeBaseURL  = "https://www.googleapis.com/youtube/v3"
	DefaultClientPerMinute = 60
)

// Matcher strategies
const (
	MatcherContainment = "containment"
	MatcherFuzzy       = "fuzzy"
)

// Cache backends
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type Config struct {
	Spotify   SpotifyConfig
	YouTube   YouTubeConfig
	Search    SearchConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Server    ServerConfig
	Log       LogConfig
	App       AppConfig
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// AccessToken is only used by the CLI; HTTP requests bring their own.
	AccessToken string
	BaseURL     string
}

type YouTubeConfig struct {
	APIKey         string
	BaseURL        string
	FetchDurations bool
	Timeout        time.Duration
}

type SearchConfig struct {
	DefaultLimit int
	MaxLimit     int
	Matcher      string
}

type CacheConfig struct {
	Backend  string
	TTL      time.Duration
	Size     int
	RedisURL string
}

// RateLimitConfig bounds outbound provider calls and inbound client requests.
// Zero RPS disables the corresponding limiter.
type RateLimitConfig struct {
	SpotifyRPS      float64
	YouTubeRPS      float64
	Burst           int
	ClientPerMinute int
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type AppConfig struct {
	Language string
}

func DefaultConfig() *Config {
	return &Config{
		Spotify: SpotifyConfig{
			RedirectURL: "http://localhost:8080/callback",
			BaseURL:     DefaultSpotifyBaseURL,
		},
		YouTube: YouTubeConfig{
			BaseURL: DefaultYouTubeBaseURL,
			Timeout: DefaultYouTubeTimeout,
		},
		Search: SearchConfig{
			DefaultLimit: DefaultSearchLimit,
			MaxLimit:     MaxSearchLimit,
			Matcher:      MatcherContainment,
		},
		Cache: CacheConfig{
			Backend: CacheBackendNone,
			TTL:     DefaultCacheTTL,
			Size:    DefaultCacheSize,
		},
		RateLimit: RateLimitConfig{
			Burst:           5,
			ClientPerMinute: DefaultClientPerMinute,
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         DefaultServerPort,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		App: AppConfig{
			Language: i18n.DefaultLanguage,
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Search.DefaultLimit <= 0 {
		errs = append(errs, fmt.Errorf("search.default-limit must be positive, got %d", c.Search.DefaultLimit))
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		errs = append(errs, fmt.Errorf("search.max-limit %d is below search.default-limit %d",
			c.Search.MaxLimit, c.Search.DefaultLimit))
	}
	switch strings.ToLower(c.Search.Matcher) {
	case MatcherContainment, MatcherFuzzy:
	default:
		errs = append(errs, fmt.Errorf("search.matcher must be %q or %q, got %q",
			MatcherContainment, MatcherFuzzy, c.Search.Matcher))
	}

	switch c.Cache.Backend {
	case CacheBackendNone:
	case CacheBackendMemory:
		if c.Cache.Size <= 0 {
			errs = append(errs, fmt.Errorf("cache.size must be positive, got %d", c.Cache.Size))
		}
	case CacheBackendRedis:
		if c.Cache.RedisURL == "" {
			errs = append(errs, errors.New("cache.redis-url is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("cache.backend must be none, memory or redis, got %q", c.Cache.Backend))
	}
	if c.Cache.Backend != CacheBackendNone && c.Cache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL))
	}

	if c.RateLimit.SpotifyRPS < 0 || c.RateLimit.YouTubeRPS < 0 {
		errs = append(errs, errors.New("rate limits must not be negative"))
	}
	if (c.RateLimit.SpotifyRPS > 0 || c.RateLimit.YouTubeRPS > 0) && c.RateLimit.Burst <= 0 {
		errs = append(errs, fmt.Errorf("rate-limit.burst must be positive, got %d", c.RateLimit.Burst))
	}
	if c.RateLimit.ClientPerMinute < 0 {
		errs = append(errs, fmt.Errorf("rate-limit.client-per-minute must not be negative, got %d",
			c.RateLimit.ClientPerMinute))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !strings.HasSuffix(c.Spotify.BaseURL, "/") {
		errs = append(errs, fmt.Errorf("spotify.base-url must end with a slash, got %q", c.Spotify.BaseURL))
	}
	if !i18n.IsSupported(c.App.Language) {
		errs = append(errs, fmt.Errorf("app.language %q is not one of %v", c.App.Language, i18n.GetSupportedLanguages()))
	}

	return errors.Join(errs...)
}
