package chi

import (
	"time"

	domanswer "github.com/kailas-cloud/searchproxy/internal/domain/answer"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/kind"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/result"
	domusage "github.com/kailas-cloud/searchproxy/internal/domain/usage"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.Code.
const (
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeUnauthorized        ErrorCode = "unauthorized"
	ErrorCodeValidationFailed    ErrorCode = "validation_failed"
	ErrorCodeNoSearchResults     ErrorCode = "no_search_results"
	ErrorCodeRateLimited         ErrorCode = "rate_limited"
	ErrorCodeQuotaExceeded       ErrorCode = "answer_quota_exceeded"
	ErrorCodeSearchProviderError ErrorCode = "search_provider_error"
	ErrorCodeLLMProviderError    ErrorCode = "llm_provider_error"
	ErrorCodeNotImplemented      ErrorCode = "not_implemented"
	ErrorCodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Type    string `json:"type"`
	Query   string `json:"query"`
	Results any    `json:"results"`
}

// TextResult is a textual search hit.
type TextResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// ImageResult is an image or video search hit.
type ImageResult struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Source    string `json:"source"`
}

// AnswerRequest is the body of POST /answer.
type AnswerRequest struct {
	Query             string `json:"query"`
	ResultsToConsider *int   `json:"results_to_consider,omitempty"`
}

// AnswerResponse is the body of a successful POST /answer.
type AnswerResponse struct {
	ID      string       `json:"id"`
	Answer  string       `json:"answer"`
	Model   string       `json:"model,omitempty"`
	Sources []TextResult `json:"sources"`
	Usage   TokenUsage   `json:"usage"`
}

// TokenUsage reports tokens consumed by one completion.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// UsageResponse is the body of GET /usage.
type UsageResponse struct {
	Period        string       `json:"period"`
	Provider      string       `json:"provider,omitempty"`
	PeriodStartAt *time.Time   `json:"period_start_at,omitempty"`
	PeriodEndAt   *time.Time   `json:"period_end_at,omitempty"`
	Usage         UsageMetrics `json:"usage"`
	Budget        BudgetStatus `json:"budget"`
}

// UsageMetrics counts answer requests and tokens.
type UsageMetrics struct {
	AnswerRequests int `json:"answer_requests"`
	Tokens         int `json:"tokens"`
}

// BudgetStatus reports the answer token budget. TokensRemaining is -1 when unlimited.
type BudgetStatus struct {
	TokensLimit     int        `json:"tokens_limit"`
	TokensRemaining int        `json:"tokens_remaining"`
	IsExhausted     bool       `json:"is_exhausted"`
	ResetsAt        *time.Time `json:"resets_at,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func searchResponseFromDomain(text string, set result.Set) SearchResponse {
	resp := SearchResponse{Type: string(set.Kind()), Query: text}
	if set.Kind() == kind.Images {
		items := make([]ImageResult, 0, len(set.Images()))
		for _, i := range set.Images() {
			items = append(items, ImageResult{
				Title: i.Title(), URL: i.URL(), Thumbnail: i.Thumbnail(), Source: i.Source(),
			})
		}
		resp.Results = items
		return resp
	}
	resp.Results = textResultsFromDomain(set.Texts())
	return resp
}

func textResultsFromDomain(texts []result.Text) []TextResult {
	items := make([]TextResult, 0, len(texts))
	for _, t := range texts {
		items = append(items, TextResult{Title: t.Title(), Snippet: t.Snippet(), URL: t.URL()})
	}
	return items
}

func answerResponseFromDomain(a domanswer.Answer) AnswerResponse {
	return AnswerResponse{
		ID:      a.ID(),
		Answer:  a.Text(),
		Model:   a.Model(),
		Sources: textResultsFromDomain(a.Sources()),
		Usage: TokenUsage{
			PromptTokens:     a.PromptTokens(),
			CompletionTokens: a.CompletionTokens(),
			TotalTokens:      a.TotalTokens(),
		},
	}
}

func usageResponseFromDomain(report domusage.Report) UsageResponse {
	resp := UsageResponse{
		Period:   string(report.Period()),
		Provider: report.Provider(),
		Usage: UsageMetrics{
			AnswerRequests: report.Metrics().AnswerRequests(),
			Tokens:         report.Metrics().Tokens(),
		},
		Budget: BudgetStatus{
			TokensLimit:     report.Budget().TokensLimit(),
			TokensRemaining: report.Budget().TokensRemaining(),
			IsExhausted:     report.Budget().IsExhausted(),
		},
	}

	if report.PeriodStart() > 0 {
		start := time.UnixMilli(report.PeriodStart()).UTC()
		end := time.UnixMilli(report.PeriodEnd()).UTC()
		resp.PeriodStartAt = &start
		resp.PeriodEndAt = &end
	}
	if report.Budget().ResetsAt() > 0 {
		resetsAt := time.UnixMilli(report.Budget().ResetsAt()).UTC()
		resp.Budget.ResetsAt = &resetsAt
	}
	return resp
}
