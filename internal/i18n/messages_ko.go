package i18n

// koreanMessages contains all Korean translations.
var koreanMessages = map[string]string{
	// Request errors
	"error.invalid_query":      "글자나 숫자가 하나 이상 포함된 검색어를 입력해 주세요.",
	"error.missing_credential": "검색하려면 Spotify 계정을 연결해 주세요.",
	"error.missing_url":        "확인할 링크를 입력해 주세요.",
	"error.unsupported_link":   "Spotify 트랙 링크와 YouTube 동영상 링크만 지원합니다.",
	"error.not_found":          "해당 트랙을 찾을 수 없습니다.",
	"error.rate_limited":       "검색 요청이 너무 많습니다. %d초 후에 다시 시도해 주세요.",
	"error.invalid_limit":      "limit 값은 정수여야 합니다.",

	// Upstream errors
	"error.upstream":         "%s 응답이 없습니다. 잠시 후 다시 시도해 주세요.",
	"error.upstream_timeout": "검색 시간이 초과되었습니다. 다시 시도해 주세요.",
	"error.generic":          "문제가 발생했습니다. 다시 시도해 주세요.",

	// Degradation notices
	"notice.degraded.youtube": "이번 검색에서는 YouTube 결과를 가져오지 못했습니다.",

	// Platform names
	"platform.spotify": "Spotify",
	"platform.youtube": "YouTube",
}
