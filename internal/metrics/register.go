package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "searchproxy"

var registerOnce sync.Once

// Register adds every searchproxy collector to reg. Must be called once from main;
// repeated calls are no-ops.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(
			httpRequestDuration,
			httpRequestsTotal,
			httpRequestsInFlight,
			SearchRequestsTotal,
			SearchRequestDuration,
			SearchResultsReturned,
			SearchResultsDropped,
			SearchCacheTotal,
			LLMRequestsTotal,
			LLMRequestDuration,
			LLMTokensTotal,
			LLMErrorsTotal,
			LLMBudgetTokensRemaining,
		)
	})
}
