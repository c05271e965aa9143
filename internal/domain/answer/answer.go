package answer

import "github.com/kailas-cloud/searchproxy/internal/domain/search/result"

// Answer is a generated response grounded on search results.
type Answer struct {
	id               string
	text             string
	model            string
	sources          []result.Text
	promptTokens     int
	completionTokens int
	totalTokens      int
}

// New creates an Answer.
func New(id, text, model string, sources []result.Text, promptTokens, completionTokens, totalTokens int) Answer {
	return Answer{
		id:               id,
		text:             text,
		model:            model,
		sources:          sources,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		totalTokens:      totalTokens,
	}
}

// ID returns the answer identifier.
func (a Answer) ID() string { return a.id }

// Text returns the generated answer.
func (a Answer) Text() string { return a.text }

// Model returns the model that produced the answer.
func (a Answer) Model() string { return a.model }

// Sources returns the search results the answer was grounded on.
func (a Answer) Sources() []result.Text { return a.sources }

// PromptTokens returns tokens consumed by the prompt.
func (a Answer) PromptTokens() int { return a.promptTokens }

// CompletionTokens returns tokens generated.
func (a Answer) CompletionTokens() int { return a.completionTokens }

// TotalTokens returns prompt plus completion tokens.
func (a Answer) TotalTokens() int { return a.totalTokens }
