package query

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/searchproxy/internal/domain"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/kind"
)

// Query parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length in runes.
	MaxQueryLength = 2048
	DefaultLimit   = 30
	MaxLimit       = 100
)

// Query is a validated search request.
type Query struct {
	text  string
	kind  kind.Kind
	limit int
}

// New validates and normalizes search parameters.
// Defaults: kind=text, limit=30. Limit is clamped to maxLimit (MaxLimit when maxLimit <= 0).
func New(text string, k kind.Kind, limit, maxLimit int) (Query, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Query{}, fmt.Errorf("%w: query is required", domain.ErrInvalidQuery)
	}
	if utf8.RuneCountInString(text) > MaxQueryLength {
		return Query{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if k == "" {
		k = kind.Text
	}
	if !k.IsValid() {
		return Query{}, fmt.Errorf("%w: invalid search type %q", domain.ErrInvalidQuery, k)
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Query{text: text, kind: k, limit: limit}, nil
}

// Text returns the trimmed query string.
func (q Query) Text() string { return q.text }

// Kind returns the result family.
func (q Query) Kind() kind.Kind { return q.kind }

// Limit returns the maximum number of raw results to process.
func (q Query) Limit() int { return q.limit }
