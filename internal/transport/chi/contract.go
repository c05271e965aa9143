package chi

import (
	"context"

	domanswer "github.com/kailas-cloud/searchproxy/internal/domain/answer"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/query"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/result"
	domusage "github.com/kailas-cloud/searchproxy/internal/domain/usage"
	healthuc "github.com/kailas-cloud/searchproxy/internal/usecase/health"
)

// Searcher runs normalized searches.
type Searcher interface {
	Search(ctx context.Context, q query.Query) (result.Set, error)
}

// Answerer generates answers grounded on search results.
type Answerer interface {
	Answer(ctx context.Context, text string, resultsToConsider int) (domanswer.Answer, error)
}

// UsageReporter builds answer usage reports.
type UsageReporter interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}

// HealthReporter aggregates component health.
type HealthReporter interface {
	Check(ctx context.Context) healthuc.Report
}
