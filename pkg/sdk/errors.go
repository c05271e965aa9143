package searchproxy

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/searchproxy/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery        = domain.ErrInvalidQuery
	ErrNoSearchResults     = domain.ErrNoSearchResults
	ErrRateLimited         = domain.ErrRateLimited
	ErrAnswerQuotaExceeded = domain.ErrAnswerQuotaExceeded
	ErrSearchProviderError = domain.ErrSearchProviderError
	ErrLLMProviderError    = domain.ErrLLMProviderError
	ErrNotImplemented      = domain.ErrNotImplemented

	// ErrUnauthorized is returned when the server rejects the API key.
	ErrUnauthorized = errors.New("unauthorized")
)

// codeSentinels maps API error codes to sentinel errors.
var codeSentinels = map[string]error{
	"validation_failed":     ErrInvalidQuery,
	"no_search_results":     ErrNoSearchResults,
	"rate_limited":          ErrRateLimited,
	"answer_quota_exceeded": ErrAnswerQuotaExceeded,
	"search_provider_error": ErrSearchProviderError,
	"llm_provider_error":    ErrLLMProviderError,
	"not_implemented":       ErrNotImplemented,
	"unauthorized":          ErrUnauthorized,
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int    // HTTP status code
	Code    string // machine-readable code, e.g. "no_search_results"
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("searchproxy: HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("searchproxy: HTTP %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap exposes the sentinel matching Code, if any.
func (e *APIError) Unwrap() error {
	return codeSentinels[e.Code]
}
