package domain

import "context"

type answerUsageKey struct{}

// AnswerUsage collects completion token usage for a single HTTP request.
// The handler puts a mutable pointer into the context before calling the service;
// the service writes after completion; the handler reads it for response headers.
type AnswerUsage struct {
	TotalTokens int
	Used        bool
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *AnswerUsage) {
	u := &AnswerUsage{}
	return context.WithValue(ctx, answerUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *AnswerUsage {
	u, _ := ctx.Value(answerUsageKey{}).(*AnswerUsage)
	return u
}

// AddTokens records consumed tokens.
func (u *AnswerUsage) AddTokens(n int) {
	if u != nil {
		u.TotalTokens += n
		u.Used = true
	}
}
