package completion

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchproxy/internal/domain"
)

type mockCompleter struct {
	result domain.CompletionResult
	err    error
	calls  int
}

func (m *mockCompleter) Complete(_ context.Context, _ []domain.Message) (domain.CompletionResult, error) {
	m.calls++
	return m.result, m.err
}

func TestInstrumented_RecordsBudgetAndUsage(t *testing.T) {
	inner := &mockCompleter{result: domain.CompletionResult{Content: "hi", TotalTokens: 42}}
	bt := NewBudgetTracker("local", 1000, 0, BudgetActionReject, zap.NewNop())
	ic := NewInstrumentedCompleter(inner, "local", "qwen", bt, zap.NewNop())

	ctx, usage := domain.NewContextWithUsage(context.Background())
	res, err := ic.Complete(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Content != "hi" {
		t.Errorf("unexpected content %q", res.Content)
	}
	if bt.DailyUsed() != 42 {
		t.Errorf("expected 42 tokens recorded, got %d", bt.DailyUsed())
	}
	if !usage.Used || usage.TotalTokens != 42 {
		t.Errorf("expected usage collector to be filled, got %+v", usage)
	}
}

func TestInstrumented_CountsRequestsWithoutUsage(t *testing.T) {
	inner := &mockCompleter{result: domain.CompletionResult{Content: "hi"}}
	bt := NewBudgetTracker("local", 0, 0, BudgetActionReject, zap.NewNop())
	ic := NewInstrumentedCompleter(inner, "local", "qwen", bt, zap.NewNop())

	for range 2 {
		if _, err := ic.Complete(context.Background(), nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if bt.DailyRequests() != 2 || bt.MonthlyRequests() != 2 {
		t.Errorf("expected 2 requests counted, got daily=%d monthly=%d", bt.DailyRequests(), bt.MonthlyRequests())
	}
	if bt.DailyUsed() != 0 {
		t.Errorf("expected no tokens, got %d", bt.DailyUsed())
	}
}

func TestInstrumented_BudgetRejects(t *testing.T) {
	inner := &mockCompleter{}
	bt := NewBudgetTracker("local", 10, 0, BudgetActionReject, zap.NewNop())
	bt.Record(10)
	ic := NewInstrumentedCompleter(inner, "local", "qwen", bt, zap.NewNop())

	_, err := ic.Complete(context.Background(), nil)
	if !errors.Is(err, domain.ErrAnswerQuotaExceeded) {
		t.Fatalf("expected ErrAnswerQuotaExceeded, got %v", err)
	}
	if inner.calls != 0 {
		t.Error("inner completer must not be called when budget is exhausted")
	}
}

func TestInstrumented_InnerError(t *testing.T) {
	inner := &mockCompleter{err: domain.ErrLLMProviderError}
	ic := NewInstrumentedCompleter(inner, "local", "qwen", nil, zap.NewNop())

	_, err := ic.Complete(context.Background(), nil)
	if !errors.Is(err, domain.ErrLLMProviderError) {
		t.Fatalf("expected ErrLLMProviderError, got %v", err)
	}
}

func TestInstrumented_NilBudget(t *testing.T) {
	inner := &mockCompleter{result: domain.CompletionResult{TotalTokens: 5}}
	ic := NewInstrumentedCompleter(inner, "local", "qwen", nil, zap.NewNop())

	if _, err := ic.Complete(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
