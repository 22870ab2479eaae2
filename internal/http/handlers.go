package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"arch1ve/internal/core"
	"arch1ve/internal/i18n"
)

// maxQueryLength caps the raw query in runes.
const maxQueryLength = 200

// Error codes returned in the "error" field of error bodies.
const (
	codeInvalidQuery      = "invalid_query"
	codeInvalidLimit      = "invalid_limit"
	codeMissingCredential = "missing_credential"
	codeMissingURL        = "missing_url"
	codeUnsupportedLink   = "unsupported_link"
	codeNotFound          = "not_found"
	codeRateLimited       = "rate_limited"
	codeUpstream          = "upstream_error"
	codeUpstreamTimeout   = "upstream_timeout"
	codeInternal          = "internal_error"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// searchResponse adds localized notices about degraded providers.
type searchResponse struct {
	*core.UnifiedSearchResult
	Notices []string `json:"notices,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	loc := s.localizer(r)

	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" || utf8.RuneCountInString(query) > maxQueryLength {
		s.metrics.RecordSearch(codeInvalidQuery)
		writeError(w, http.StatusBadRequest, codeInvalidQuery, loc.T("error.invalid_query"))
		return
	}

	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			s.metrics.RecordSearch(codeInvalidLimit)
			writeError(w, http.StatusBadRequest, codeInvalidLimit, loc.T("error.invalid_limit"))
			return
		}
		limit = v
	}

	result, err := s.deps.Searcher.UnifiedSearch(r.Context(), core.SearchRequest{
		Query:         query,
		SpotifyToken:  bearerToken(r),
		YouTubeAPIKey: s.deps.YouTubeAPIKey,
		Limit:         limit,
	})
	if err != nil {
		s.metrics.RecordSearch(s.writeFailure(w, r, loc, err))
		return
	}

	resp := searchResponse{UnifiedSearchResult: result}
	for _, d := range result.Degradations {
		s.metrics.RecordDegradation(string(d.Platform), d.Reason)
		resp.Notices = append(resp.Notices, loc.T("notice.degraded."+string(d.Platform)))
	}

	s.metrics.RecordSearch("ok")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	loc := s.localizer(r)

	link := strings.TrimSpace(r.URL.Query().Get("url"))
	if link == "" {
		s.metrics.RecordLinkResolution(codeMissingURL)
		writeError(w, http.StatusBadRequest, codeMissingURL, loc.T("error.missing_url"))
		return
	}

	result, err := s.deps.Links.Resolve(r.Context(), link, bearerToken(r), s.deps.YouTubeAPIKey)
	if err != nil {
		s.metrics.RecordLinkResolution(s.writeFailure(w, r, loc, err))
		return
	}

	s.metrics.RecordLinkResolution("ok")
	writeJSON(w, http.StatusOK, result)
}

// writeFailure maps a core error to a status and localized body and returns
// the error code it wrote.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, loc *i18n.Localizer, err error) string {
	status, code, message := http.StatusInternalServerError, codeInternal, loc.T("error.generic")

	switch {
	case errors.Is(err, core.ErrInvalidQuery):
		status, code, message = http.StatusBadRequest, codeInvalidQuery, loc.T("error.invalid_query")
	case errors.Is(err, core.ErrMissingCredential):
		status, code, message = http.StatusUnauthorized, codeMissingCredential, loc.T("error.missing_credential")
	case errors.Is(err, core.ErrUnsupportedLink):
		status, code, message = http.StatusBadRequest, codeUnsupportedLink, loc.T("error.unsupported_link")
	case errors.Is(err, core.ErrNotFound):
		status, code, message = http.StatusNotFound, codeNotFound, loc.T("error.not_found")
	case errors.Is(err, context.DeadlineExceeded):
		status, code, message = http.StatusGatewayTimeout, codeUpstreamTimeout, loc.T("error.upstream_timeout")
	case errors.Is(err, core.ErrUpstreamFailure):
		platform, _ := core.UpstreamPlatform(err)
		s.metrics.RecordUpstreamError(string(platform))
		status, code = http.StatusBadGateway, codeUpstream
		message = loc.T("error.upstream", loc.T("platform."+string(platform)))
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.String("code", code),
			zap.Error(err))
	}

	writeError(w, status, code, message)
	return code
}

func (s *Server) localizer(r *http.Request) *i18n.Localizer {
	return i18n.NewLocalizer(i18n.Negotiate(r.Header.Get("Accept-Language"), s.deps.Language))
}

// bearerToken extracts the token of an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
