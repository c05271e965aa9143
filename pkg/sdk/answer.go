package searchproxy

import (
	"context"
	"net/http"
	"time"
)

// Answer is a generated answer with the search results it was grounded on.
type Answer struct {
	ID      string       `json:"id"`
	Answer  string       `json:"answer"`
	Model   string       `json:"model"`
	Sources []TextResult `json:"sources"`
	Usage   TokenUsage   `json:"usage"`
}

// TokenUsage reports tokens consumed by the completion.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type answerRequest struct {
	Query             string `json:"query"`
	ResultsToConsider int    `json:"results_to_consider,omitempty"`
}

// Answer asks the server to answer query from its top search results.
// resultsToConsider <= 0 uses the server default.
func (c *Client) Answer(ctx context.Context, query string, resultsToConsider int) (_ Answer, err error) {
	start := time.Now()
	defer func() { c.obs.observe("answer", start, err) }()

	var resp Answer
	req := answerRequest{Query: query, ResultsToConsider: max(resultsToConsider, 0)}
	if err = c.do(ctx, http.MethodPost, "/answer", nil, req, &resp); err != nil {
		return Answer{}, err
	}
	return resp, nil
}
