package search

import (
	"context"

	"github.com/kailas-cloud/searchproxy/internal/domain/search/result"
)

// Engine queries the upstream search engine and returns unprocessed hits in engine order.
type Engine interface {
	Search(ctx context.Context, query string, categories []string) ([]result.Raw, error)
}
