package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"arch1ve/internal/core"
	httpserver "arch1ve/internal/http"
	"arch1ve/internal/spotify"
	"arch1ve/internal/throttle"
	"arch1ve/pkg/musiclink"
)

const version = "1.0.0"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search API over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run one unified search and print the JSON envelope",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <link>",
	Short: "Resolve a Spotify track or YouTube video link",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "Results per platform (0 uses search-default-limit)")
	resolveCmd.Flags().Bool("inspect", false, "Only parse the link and print what it points at")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if viper.GetBool("generate-env-example") {
		return generateEnvExample(cmd)
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Starting Arch1ve",
		zap.String("version", version),
		zap.String("matcher", config.Search.Matcher),
		zap.String("cache", config.Cache.Backend),
		zap.Bool("youtube_enabled", config.YouTube.APIKey != ""))
	if config.YouTube.APIKey == "" {
		logger.Warn("No YouTube API key configured, searches will return Spotify results only")
	}

	registry := prometheus.NewRegistry()
	metrics := httpserver.NewMetrics(registry)

	comps, err := buildComponents(config, logger, metrics)
	if err != nil {
		return err
	}

	var floodgate *throttle.Floodgate
	if config.RateLimit.ClientPerMinute > 0 {
		floodgate = throttle.NewFloodgate(config.RateLimit.ClientPerMinute)
		defer floodgate.Stop()
	}

	server := httpserver.NewServer(&config.Server, httpserver.Dependencies{
		Searcher:      comps.searcher,
		Links:         comps.links,
		YouTubeAPIKey: config.YouTube.APIKey,
		Floodgate:     floodgate,
		Language:      config.App.Language,
		Ready:         comps.ready,
		Registry:      registry,
		Metrics:       metrics,
	}, logger.Named("http"))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start(gCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		if err := comps.Close(); err != nil {
			logger.Debug("Failed to close result cache", zap.Error(err))
		}
		return nil
	})

	logger.Info("Arch1ve started successfully",
		zap.String("http_addr", fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)))

	if err := g.Wait(); err != nil {
		logger.Error("Arch1ve stopped with error", zap.Error(err))
		return err
	}

	logger.Info("Arch1ve stopped gracefully")
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	token, err := spotifyToken(ctx, &config.Spotify)
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("%w: set --spotify-access-token or the Spotify client ID and secret", core.ErrMissingCredential)
	}

	comps, err := buildComponents(config, logger, nil)
	if err != nil {
		return err
	}
	defer comps.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	result, err := comps.searcher.UnifiedSearch(ctx, core.SearchRequest{
		Query:         strings.Join(args, " "),
		SpotifyToken:  token,
		YouTubeAPIKey: config.YouTube.APIKey,
		Limit:         limit,
	})
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), result)
}

func runResolve(cmd *cobra.Command, args []string) error {
	link := args[0]

	if inspect, _ := cmd.Flags().GetBool("inspect"); inspect {
		parsed, err := musiclink.NewManager().Parse(link)
		if err != nil {
			return err
		}
		return printLink(cmd.OutOrStdout(), parsed)
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// YouTube links resolve without a Spotify token.
	token, err := spotifyToken(ctx, &config.Spotify)
	if err != nil {
		logger.Warn("Continuing without a Spotify token", zap.Error(err))
	}

	comps, err := buildComponents(config, logger, nil)
	if err != nil {
		return err
	}
	defer comps.Close()

	result, err := comps.links.Resolve(ctx, link, token, config.YouTube.APIKey)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), result)
}

// spotifyToken prefers a configured access token and falls back to an app
// token from the client credentials grant. It returns "" when neither is
// configured.
func spotifyToken(ctx context.Context, cfg *core.SpotifyConfig) (string, error) {
	if cfg.AccessToken != "" {
		return cfg.AccessToken, nil
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return "", nil
	}

	token, err := spotify.AppToken(ctx, cfg, "")
	if err != nil {
		return "", fmt.Errorf("failed to obtain Spotify app token: %w", err)
	}
	return token.AccessToken, nil
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printLink(w io.Writer, link *musiclink.Link) error {
	_, err := fmt.Fprintf(w, "provider: %s\nkind:     %s\nid:       %s\nurl:      %s\n",
		link.Provider, link.Kind, link.ID, link.CanonicalURL)
	if err == nil && link.StartSeconds > 0 {
		_, err = fmt.Fprintf(w, "start:    %ds\n", link.StartSeconds)
	}
	return err
}
