package domain

import "errors"

var (
	// ErrInvalidQuery signals a malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrNoSearchResults signals that a search produced nothing to answer from.
	ErrNoSearchResults = errors.New("no search results")

	// ErrSearchProviderError signals a search engine failure.
	ErrSearchProviderError = errors.New("search provider error")
	// ErrLLMProviderError signals a completion provider failure.
	ErrLLMProviderError = errors.New("llm provider error")
	// ErrAnswerQuotaExceeded signals an exhausted answer token budget.
	ErrAnswerQuotaExceeded = errors.New("answer quota exceeded")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrNotImplemented signals a disabled or unimplemented feature.
	ErrNotImplemented = errors.New("not implemented")
)
