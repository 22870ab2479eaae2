// Package main provides the Arch1ve search CLI application entry point.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"arch1ve/internal/core"
	"arch1ve/internal/i18n"
)

const (
	envPrefix         = "ARCH1VE"
	defaultServerHost = "0.0.0.0"
)

var (
	cfgFile string
	config  *core.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "arch1ve",
	Short: "Arch1ve - unified Spotify and YouTube track search",
	Long: `Arch1ve searches Spotify and YouTube at once, merges the results that describe the same
recording and serves them as one ranked list over HTTP or on the command line.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := core.DefaultConfig()
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "config file (default is .env)")
	flags.String("log-level", defaults.Log.Level, "log level (debug, info, warn, error)")
	flags.String("log-format", defaults.Log.Format, "log format (json, console)")

	flags.String("spotify-client-id", "", "Spotify client ID, used for app tokens on the command line")
	flags.String("spotify-client-secret", "", "Spotify client secret")
	flags.String("spotify-redirect-url", defaults.Spotify.RedirectURL, "Spotify OAuth redirect URL")
	flags.String("spotify-access-token", "", "Spotify access token for the search and resolve commands")
	flags.String("spotify-base-url", defaults.Spotify.BaseURL, "Spotify Web API base URL")

	flags.String("youtube-api-key", "", "YouTube Data API key (empty disables YouTube search)")
	flags.String("youtube-base-url", defaults.YouTube.BaseURL, "YouTube Data API base URL")
	flags.Bool("youtube-fetch-durations", defaults.YouTube.FetchDurations, "Fetch video durations with an extra API call")
	flags.Duration("youtube-timeout", defaults.YouTube.Timeout, "YouTube request timeout")

	flags.Int("search-default-limit", defaults.Search.DefaultLimit, "Results per platform when no limit is given")
	flags.Int("search-max-limit", defaults.Search.MaxLimit, "Largest accepted limit per platform")
	flags.String("search-matcher", defaults.Search.Matcher,
		fmt.Sprintf("Cross-platform matcher (%s, %s)", core.MatcherContainment, core.MatcherFuzzy))

	flags.String("cache-backend", defaults.Cache.Backend,
		fmt.Sprintf("YouTube result cache (%s, %s, %s)", core.CacheBackendNone, core.CacheBackendMemory, core.CacheBackendRedis))
	flags.Duration("cache-ttl", defaults.Cache.TTL, "Cached result lifetime")
	flags.Int("cache-size", defaults.Cache.Size, "Maximum entries of the memory cache")
	flags.String("cache-redis-url", "", "Redis URL of the redis cache (redis://host:6379/0)")

	flags.Float64("rate-limit-spotify-rps", defaults.RateLimit.SpotifyRPS, "Spotify requests per second, 0 for unlimited")
	flags.Float64("rate-limit-youtube-rps", defaults.RateLimit.YouTubeRPS, "YouTube requests per second, 0 for unlimited")
	flags.Int("rate-limit-burst", defaults.RateLimit.Burst, "Burst size of the provider rate limits")
	flags.Int("rate-limit-client-per-minute", defaults.RateLimit.ClientPerMinute,
		"API requests per client per minute, 0 for unlimited")

	flags.String("server-host", defaultServerHost, "HTTP server host")
	flags.Int("server-port", defaults.Server.Port, "HTTP server port")
	flags.Duration("server-read-timeout", defaults.Server.ReadTimeout, "HTTP read timeout")
	flags.Duration("server-write-timeout", defaults.Server.WriteTimeout, "HTTP write timeout")

	supportedLangs := strings.Join(i18n.GetSupportedLanguages(), ", ")
	flags.String("language", i18n.DefaultLanguage, fmt.Sprintf("Default message language (%s)", supportedLangs))
	flags.Bool("generate-env-example", false, "Generate .env.example file from current configuration and exit")

	if err := viper.BindPFlags(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bind flags: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(serveCmd, searchCmd, resolveCmd)
}

func initConfig() {
	envFile := ".env"
	if cfgFile != "" {
		envFile = cfgFile
	}

	if err := gotenv.Load(envFile); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	config = buildConfig()

	var err error
	logger, err = buildLogger(config.Log.Level, config.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
}

func buildConfig() *core.Config {
	cfg := core.DefaultConfig()

	configureSpotify(cfg)
	configureYouTube(cfg)
	configureSearch(cfg)
	configureCache(cfg)
	configureRateLimit(cfg)
	configureServer(cfg)
	configureApp(cfg)

	return cfg
}

func configureSpotify(cfg *core.Config) {
	cfg.Spotify.ClientID = viper.GetString("spotify-client-id")
	cfg.Spotify.ClientSecret = viper.GetString("spotify-client-secret")
	cfg.Spotify.RedirectURL = viper.GetString("spotify-redirect-url")
	cfg.Spotify.AccessToken = viper.GetString("spotify-access-token")
	cfg.Spotify.BaseURL = viper.GetString("spotify-base-url")
}

func configureYouTube(cfg *core.Config) {
	cfg.YouTube.APIKey = viper.GetString("youtube-api-key")
	cfg.YouTube.BaseURL = viper.GetString("youtube-base-url")
	cfg.YouTube.FetchDurations = viper.GetBool("youtube-fetch-durations")
	cfg.YouTube.Timeout = viper.GetDuration("youtube-timeout")
}

func configureSearch(cfg *core.Config) {
	cfg.Search.DefaultLimit = viper.GetInt("search-default-limit")
	cfg.Search.MaxLimit = viper.GetInt("search-max-limit")
	cfg.Search.Matcher = strings.ToLower(viper.GetString("search-matcher"))
}

func configureCache(cfg *core.Config) {
	cfg.Cache.Backend = strings.ToLower(viper.GetString("cache-backend"))
	cfg.Cache.TTL = viper.GetDuration("cache-ttl")
	cfg.Cache.Size = viper.GetInt("cache-size")
	cfg.Cache.RedisURL = viper.GetString("cache-redis-url")
}

func configureRateLimit(cfg *core.Config) {
	cfg.RateLimit.SpotifyRPS = viper.GetFloat64("rate-limit-spotify-rps")
	cfg.RateLimit.YouTubeRPS = viper.GetFloat64("rate-limit-youtube-rps")
	cfg.RateLimit.Burst = viper.GetInt("rate-limit-burst")
	cfg.RateLimit.ClientPerMinute = viper.GetInt("rate-limit-client-per-minute")
}

func configureServer(cfg *core.Config) {
	cfg.Server.Host = viper.GetString("server-host")
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaultServerHost
	}
	cfg.Server.Port = viper.GetInt("server-port")
	cfg.Server.ReadTimeout = viper.GetDuration("server-read-timeout")
	cfg.Server.WriteTimeout = viper.GetDuration("server-write-timeout")
	cfg.Log.Level = viper.GetString("log-level")
	cfg.Log.Format = viper.GetString("log-format")
}

func configureApp(cfg *core.Config) {
	cfg.App.Language = viper.GetString("language")
	if cfg.App.Language == "" {
		cfg.App.Language = i18n.DefaultLanguage
	}

	if !i18n.IsSupported(cfg.App.Language) {
		fmt.Fprintf(os.Stderr, "Warning: Unsupported language '%s', falling back to '%s'. Supported languages: %s\n",
			cfg.App.Language, i18n.DefaultLanguage, strings.Join(i18n.GetSupportedLanguages(), ", "))
		cfg.App.Language = i18n.DefaultLanguage
	}
}

func buildLogger(level, format string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if strings.EqualFold(format, "console") {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	return cfg.Build()
}
