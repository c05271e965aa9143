package answer

import (
	"context"

	"github.com/kailas-cloud/searchproxy/internal/domain/search/query"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/result"
)

// Searcher runs the text search the answer is grounded on.
type Searcher interface {
	Search(ctx context.Context, q query.Query) (result.Set, error)
}
