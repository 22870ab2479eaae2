package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"arch1ve/internal/cache"
	"arch1ve/internal/core"
	"arch1ve/pkg/musiclink"
)

func TestFlagToEnvVar(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{"youtube-api-key", "ARCH1VE_YOUTUBE_API_KEY"},
		{"rate-limit-client-per-minute", "ARCH1VE_RATE_LIMIT_CLIENT_PER_MINUTE"},
		{"language", "ARCH1VE_LANGUAGE"},
	}

	for _, tt := range tests {
		if got := flagToEnvVar(tt.flag); got != tt.want {
			t.Errorf("flagToEnvVar(%q) = %q, want %q", tt.flag, got, tt.want)
		}
	}
}

func TestBuildLogger(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		for _, format := range []string{"json", "console"} {
			log, err := buildLogger(tt.level, format)
			require.NoError(t, err)
			if !log.Core().Enabled(tt.want) {
				t.Errorf("buildLogger(%q, %q) does not enable %v", tt.level, format, tt.want)
			}
			if tt.want > zapcore.DebugLevel && log.Core().Enabled(tt.want-1) {
				t.Errorf("buildLogger(%q, %q) enables %v", tt.level, format, tt.want-1)
			}
		}
	}
}

func setViper(t *testing.T, key string, value any) {
	t.Helper()
	previous := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, previous) })
}

func TestBuildConfig_Defaults(t *testing.T) {
	cfg := buildConfig()
	defaults := core.DefaultConfig()

	assert.Equal(t, defaults.Search, cfg.Search)
	assert.Equal(t, defaults.Cache, cfg.Cache)
	assert.Equal(t, defaults.YouTube, cfg.YouTube)
	assert.Equal(t, defaultServerHost, cfg.Server.Host)
	assert.Equal(t, defaults.Server.Port, cfg.Server.Port)
	assert.NoError(t, cfg.Validate())
}

func TestBuildConfig_Overrides(t *testing.T) {
	setViper(t, "search-matcher", "FUZZY")
	setViper(t, "cache-backend", "Memory")
	setViper(t, "cache-ttl", "90s")
	setViper(t, "youtube-api-key", "yt-key")
	setViper(t, "rate-limit-youtube-rps", 2.5)
	setViper(t, "server-host", "")
	setViper(t, "language", "xx")

	cfg := buildConfig()

	assert.Equal(t, core.MatcherFuzzy, cfg.Search.Matcher)
	assert.Equal(t, core.CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "yt-key", cfg.YouTube.APIKey)
	assert.InDelta(t, 2.5, cfg.RateLimit.YouTubeRPS, 0.001)
	assert.Equal(t, defaultServerHost, cfg.Server.Host)
	assert.Equal(t, "en", cfg.App.Language, "unsupported language falls back")
}

func TestGenerateEnvExampleContent(t *testing.T) {
	content := generateEnvExampleContent(rootCmd)

	for _, want := range []string{
		"# Arch1ve Configuration",
		"ARCH1VE_YOUTUBE_API_KEY=your_youtube_data_api_key",
		"ARCH1VE_SEARCH_MATCHER=containment",
		"ARCH1VE_CACHE_BACKEND=none",
		"# CLI: --cache-backend, --cache-ttl, --cache-size, --cache-redis-url",
	} {
		assert.Contains(t, content, want)
	}
}

func TestEnvSections_ReferToRealFlags(t *testing.T) {
	for _, section := range envSections {
		for _, f := range section.flags {
			if rootCmd.PersistentFlags().Lookup(f.name) == nil {
				t.Errorf("section %q lists unknown flag %q", section.title, f.name)
			}
		}
	}
}

func TestOpenStore(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		store, err := openStore(&core.CacheConfig{Backend: core.CacheBackendNone})
		require.NoError(t, err)
		assert.Nil(t, store)
	})

	t.Run("memory", func(t *testing.T) {
		store, err := openStore(&core.CacheConfig{Backend: core.CacheBackendMemory, Size: 8, TTL: time.Minute})
		require.NoError(t, err)
		assert.IsType(t, &cache.MemoryStore{}, store)
		require.NoError(t, store.Close())
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, err := openStore(&core.CacheConfig{
			Backend:  core.CacheBackendRedis,
			TTL:      time.Minute,
			RedisURL: "redis://" + mr.Addr() + "/0",
		})
		require.NoError(t, err)
		assert.IsType(t, &cache.RedisStore{}, store)
		require.NoError(t, store.Close())
	})

	t.Run("bad redis url", func(t *testing.T) {
		_, err := openStore(&core.CacheConfig{Backend: core.CacheBackendRedis, RedisURL: "not a url"})
		assert.Error(t, err)
	})
}

func TestBuildComponents(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := core.DefaultConfig()
	cfg.Cache.Backend = core.CacheBackendRedis
	cfg.Cache.RedisURL = "redis://" + mr.Addr()

	comps, err := buildComponents(cfg, zap.NewNop(), nil)
	require.NoError(t, err)
	require.NotNil(t, comps.searcher)
	require.NotNil(t, comps.links)

	assert.NoError(t, comps.ready(context.Background()))

	mr.Close()
	assert.Error(t, comps.ready(context.Background()), "ready fails once redis is gone")
	assert.NoError(t, comps.Close())
}

func TestComponents_ReadyWithoutCache(t *testing.T) {
	comps, err := buildComponents(core.DefaultConfig(), zap.NewNop(), nil)
	require.NoError(t, err)

	assert.NoError(t, comps.ready(context.Background()))
	assert.NoError(t, comps.Close())
}

func TestSpotifyToken(t *testing.T) {
	token, err := spotifyToken(context.Background(), &core.SpotifyConfig{
		AccessToken:  "fixed",
		ClientID:     "id",
		ClientSecret: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed", token, "a configured access token wins")

	token, err = spotifyToken(context.Background(), &core.SpotifyConfig{ClientID: "id"})
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestPrintLink(t *testing.T) {
	var buf bytes.Buffer
	err := printLink(&buf, &musiclink.Link{
		Provider:     musiclink.ProviderYouTube,
		Kind:         musiclink.KindVideo,
		ID:           "dQw4w9WgXcQ",
		CanonicalURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		StartSeconds: 43,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "provider: youtube\n"))
	assert.Contains(t, out, "id:       dQw4w9WgXcQ\n")
	assert.Contains(t, out, "start:    43s\n")
}
