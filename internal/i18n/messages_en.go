package i18n

// englishMessages contains all English translations.
var englishMessages = map[string]string{
	// Request errors
	"error.invalid_query":      "Enter a search term with at least one letter or number.",
	"error.missing_credential": "Connect your Spotify account to search.",
	"error.missing_url":        "Provide a link to resolve.",
	"error.unsupported_link":   "Only Spotify track links and YouTube video links are supported.",
	"error.not_found":          "We couldn't find that track.",
	"error.rate_limited":       "Too many searches. Wait %d seconds and try again.",
	"error.invalid_limit":      "The limit must be a whole number.",

	// Upstream errors
	"error.upstream":         "%s is not responding right now. Please try again.",
	"error.upstream_timeout": "The search took too long. Please try again.",
	"error.generic":          "Something went wrong. Please try again.",

	// Degradation notices
	"notice.degraded.youtube": "YouTube results are unavailable for this search.",

	// Platform names
	"platform.spotify": "Spotify",
	"platform.youtube": "YouTube",
}
