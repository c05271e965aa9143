package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/searchproxy/internal/domain/usage"
	"github.com/kailas-cloud/searchproxy/internal/domain/usage/budget"
	"github.com/kailas-cloud/searchproxy/internal/domain/usage/metrics"
)

// Service handles answer usage reporting.
type Service struct {
	br  BudgetReader
	now func() time.Time
}

// New creates a Service. br can be nil when answers are disabled.
func New(br BudgetReader) *Service {
	return &Service{br: br, now: func() time.Time { return time.Now().UTC() }}
}

type counters struct {
	limit, used, remaining, requests int64
}

// GetReport builds a usage report for the given period.
// The total period has no boundaries and reports the monthly counters.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := s.now()
	var start, end int64
	var c counters

	switch period {
	case domusage.PeriodDay:
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		start = dayStart.UnixMilli()
		end = dayStart.Add(24 * time.Hour).UnixMilli()
		c = s.daily()
	case domusage.PeriodMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = monthStart.UnixMilli()
		end = monthStart.AddDate(0, 1, 0).UnixMilli()
		c = s.monthly()
	default:
		c = s.monthly()
	}

	provider := ""
	if s.br != nil {
		provider = s.br.Provider()
	}

	exhausted := c.limit > 0 && c.remaining <= 0
	b := budget.New(int(c.limit), int(c.remaining), exhausted, end)
	m := metrics.New(int(c.requests), int(c.used))

	return domusage.NewReport(period, start, end, provider, m, b)
}

func (s *Service) daily() counters {
	if s.br == nil {
		return counters{}
	}
	return counters{
		limit:     s.br.DailyLimit(),
		used:      s.br.DailyUsed(),
		remaining: s.br.RemainingDaily(),
		requests:  s.br.DailyRequests(),
	}
}

func (s *Service) monthly() counters {
	if s.br == nil {
		return counters{}
	}
	return counters{
		limit:     s.br.MonthlyLimit(),
		used:      s.br.MonthlyUsed(),
		remaining: s.br.RemainingMonthly(),
		requests:  s.br.MonthlyRequests(),
	}
}
