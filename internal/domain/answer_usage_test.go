package domain

import (
	"context"
	"testing"
)

func TestUsageFromContext_NotSet(t *testing.T) {
	if u := UsageFromContext(context.Background()); u != nil {
		t.Errorf("expected nil usage, got %+v", u)
	}
}

func TestUsageFromContext_AddTokens(t *testing.T) {
	ctx, u := NewContextWithUsage(context.Background())

	UsageFromContext(ctx).AddTokens(12)
	UsageFromContext(ctx).AddTokens(30)

	if u.TotalTokens != 42 {
		t.Errorf("expected 42 tokens, got %d", u.TotalTokens)
	}
	if !u.Used {
		t.Error("expected Used=true")
	}
}

func TestAddTokens_NilSafe(t *testing.T) {
	var u *AnswerUsage
	u.AddTokens(5) // must not panic
}
