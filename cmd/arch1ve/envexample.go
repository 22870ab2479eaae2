package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func generateEnvExample(cmd *cobra.Command) error {
	fmt.Println("Generating .env.example file from current configuration...")

	content := generateEnvExampleContent(cmd)

	if err := os.WriteFile(".env.example", []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write .env.example: %w", err)
	}

	fmt.Println("✅ Successfully generated .env.example file")
	return nil
}

// envSection groups flags under one heading of the generated file.
type envSection struct {
	title string
	flags []envFlag
}

type envFlag struct {
	name        string
	example     string // overrides the flag default when set
	description string
}

var envSections = []envSection{
	{"Spotify - searches run with the caller's token", []envFlag{
		{"spotify-client-id", "your_client_id", "Client ID, lets the CLI obtain app tokens"},
		{"spotify-client-secret", "your_client_secret", "Client secret"},
		{"spotify-access-token", "", "Fixed access token for the search and resolve commands"},
		{"spotify-redirect-url", "", "OAuth redirect URL registered for the app"},
		{"spotify-base-url", "", "Web API base URL, must end with a slash"},
	}},
	{"YouTube - optional, searches degrade to Spotify only without a key", []envFlag{
		{"youtube-api-key", "your_youtube_data_api_key", "YouTube Data API v3 key"},
		{"youtube-base-url", "", "Data API base URL"},
		{"youtube-fetch-durations", "", "Fetch durations with an extra videos call per search"},
		{"youtube-timeout", "", "Request timeout"},
	}},
	{"Search", []envFlag{
		{"search-default-limit", "", "Results per platform when the request has no limit"},
		{"search-max-limit", "", "Largest accepted limit"},
		{"search-matcher", "", "containment or fuzzy"},
	}},
	{"Result cache - YouTube results only", []envFlag{
		{"cache-backend", "", "none, memory or redis"},
		{"cache-ttl", "", "Entry lifetime"},
		{"cache-size", "", "Memory cache capacity"},
		{"cache-redis-url", "redis://localhost:6379/0", "Redis URL for the redis backend"},
	}},
	{"Rate limits", []envFlag{
		{"rate-limit-spotify-rps", "", "Spotify requests per second, 0 for unlimited"},
		{"rate-limit-youtube-rps", "", "YouTube requests per second, 0 for unlimited"},
		{"rate-limit-burst", "", "Token bucket burst"},
		{"rate-limit-client-per-minute", "", "API requests per client per minute, 0 for unlimited"},
	}},
	{"HTTP server", []envFlag{
		{"server-host", "127.0.0.1", "Bind address"},
		{"server-port", "", "Port"},
		{"server-read-timeout", "", "Read timeout"},
		{"server-write-timeout", "", "Write timeout, also bounds each request"},
	}},
	{"Application", []envFlag{
		{"language", "", "Message language when Accept-Language matches nothing (en, ko)"},
		{"log-level", "", "debug, info, warn or error"},
		{"log-format", "", "json or console"},
	}},
}

func generateEnvExampleContent(cmd *cobra.Command) string {
	var content strings.Builder

	content.WriteString("# =============================================================================\n")
	content.WriteString("# Arch1ve Configuration\n")
	content.WriteString("# =============================================================================\n")
	content.WriteString("#\n")
	content.WriteString("# Copy this file to .env and update with your values\n")
	content.WriteString("# All environment variables have CLI flag equivalents (use --help to see them)\n")
	content.WriteString("#\n")
	fmt.Fprintf(&content, "# Format: %s_<SECTION>_<SETTING>=value\n", envPrefix)
	content.WriteString("# CLI equivalent: --<section>-<setting>\n")
	content.WriteString("#\n")
	content.WriteString("# =============================================================================\n\n")

	for _, section := range envSections {
		generateSection(&content, cmd, section)
	}

	return content.String()
}

func generateSection(content *strings.Builder, cmd *cobra.Command, section envSection) {
	content.WriteString("# -----------------------------------------------------------------------------\n")
	fmt.Fprintf(content, "# %s\n", section.title)
	content.WriteString("# -----------------------------------------------------------------------------\n")

	names := make([]string, 0, len(section.flags))
	for _, f := range section.flags {
		names = append(names, "--"+f.name)
	}
	fmt.Fprintf(content, "# CLI: %s\n", strings.Join(names, ", "))

	for _, f := range section.flags {
		def := getDefaultValueString(cmd, f.name)
		value := f.example
		if value == "" {
			value = def
		}
		fmt.Fprintf(content, "%s=%s    # %s (default: %s)\n", flagToEnvVar(f.name), value, f.description, def)
	}
	content.WriteString("\n")
}

func flagToEnvVar(flagName string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

func getDefaultValueString(cmd *cobra.Command, flagName string) string {
	if f := cmd.Root().PersistentFlags().Lookup(flagName); f != nil {
		return f.DefValue
	}
	return ""
}
