package budget

import "testing"

func TestNew(t *testing.T) {
	b := New(5000, 0, true, 1700000000000)

	if b.TokensLimit() != 5000 {
		t.Errorf("limit = %d", b.TokensLimit())
	}
	if b.TokensRemaining() != 0 {
		t.Errorf("remaining = %d", b.TokensRemaining())
	}
	if !b.IsExhausted() {
		t.Error("expected exhausted")
	}
	if b.ResetsAt() != 1700000000000 {
		t.Errorf("resetsAt = %d", b.ResetsAt())
	}
}
