// Package i18n provides internationalization support for user-facing messages
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

const (
	// DefaultLanguage is the fallback language when no translation is available
	DefaultLanguage = "en"
	// KoreanMessages is the language code of the Korean message set
	KoreanMessages = "ko"
)

var supported = []language.Tag{language.English, language.Korean}

var matcher = language.NewMatcher(supported)

// Localizer provides translation functionality
type Localizer struct {
	language string
	messages map[string]string
}

// NewLocalizer creates a new localizer for the specified language
func NewLocalizer(language string) *Localizer {
	return &Localizer{
		language: language,
		messages: getMessages(language),
	}
}

// Language returns the language code the localizer was created for.
func (l *Localizer) Language() string {
	return l.language
}

// T translates a message key, with optional parameters for formatting
func (l *Localizer) T(key string, args ...interface{}) string {
	if message, exists := l.messages[key]; exists {
		return format(message, args)
	}

	if l.language != DefaultLanguage {
		if fallbackMessage, exists := getMessages(DefaultLanguage)[key]; exists {
			return format(fallbackMessage, args)
		}
	}

	return key
}

func format(message string, args []interface{}) string {
	if len(args) > 0 {
		return fmt.Sprintf(message, args...)
	}
	return message
}

// GetSupportedLanguages returns list of supported language codes
func GetSupportedLanguages() []string {
	return []string{DefaultLanguage, KoreanMessages}
}

// IsSupported reports whether a message set exists for the language code.
func IsSupported(lang string) bool {
	for _, l := range GetSupportedLanguages() {
		if l == lang {
			return true
		}
	}
	return false
}

// Negotiate picks a supported language from an Accept-Language header value.
// The fallback is used when the header is empty, malformed or matches nothing.
func Negotiate(acceptLanguage, fallback string) string {
	if !IsSupported(fallback) {
		fallback = DefaultLanguage
	}
	if acceptLanguage == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}

	base, _ := supported[idx].Base()
	return base.String()
}

// getMessages returns the message map for a given language
func getMessages(language string) map[string]string {
	switch language {
	case KoreanMessages:
		return koreanMessages
	default:
		return englishMessages
	}
}
