package domain

import "context"

// Role is the author of a chat message.
type Role string

// Chat roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single chat turn sent to the completion provider.
type Message struct {
	Role    Role
	Content string
}

// Completer is the shared chat completion contract between layers.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (CompletionResult, error)
}

// HealthChecker verifies provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CompletionResult carries generated text and token usage.
type CompletionResult struct {
	Content          string
	FinishReason     string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
