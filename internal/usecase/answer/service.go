package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchproxy/internal/domain"
	domanswer "github.com/kailas-cloud/searchproxy/internal/domain/answer"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/kind"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/query"
)

// Defaults for the number of search results fed into the prompt.
const (
	DefaultResultsToConsider = 3
	MaxResultsToConsider     = 10
)

// Config controls answer generation.
type Config struct {
	Model               string
	ResultsToConsider   int
	IncludeURLsInPrompt bool
	SystemPrompt        string
	MaxSearchLimit      int
}

// Service answers questions from the top search results.
type Service struct {
	searcher  Searcher
	completer domain.Completer
	cfg       Config
	logger    *zap.Logger
}

// New creates an answer service. A nil completer disables answering.
func New(searcher Searcher, completer domain.Completer, cfg Config, logger *zap.Logger) *Service {
	if cfg.ResultsToConsider <= 0 {
		cfg.ResultsToConsider = DefaultResultsToConsider
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{searcher: searcher, completer: completer, cfg: cfg, logger: logger}
}

// Enabled reports whether a completion provider is configured.
func (s *Service) Enabled() bool { return s.completer != nil }

// Answer searches for text and generates an answer from the first resultsToConsider hits.
// resultsToConsider <= 0 uses the configured default; values above MaxResultsToConsider are clamped.
func (s *Service) Answer(ctx context.Context, text string, resultsToConsider int) (domanswer.Answer, error) {
	if s.completer == nil {
		return domanswer.Answer{}, fmt.Errorf("answer generation: %w", domain.ErrNotImplemented)
	}

	q, err := query.New(text, kind.Text, 0, s.cfg.MaxSearchLimit)
	if err != nil {
		return domanswer.Answer{}, fmt.Errorf("build query: %w", err)
	}

	n := resultsToConsider
	if n <= 0 {
		n = s.cfg.ResultsToConsider
	}
	n = min(n, MaxResultsToConsider)

	set, err := s.searcher.Search(ctx, q)
	if err != nil {
		return domanswer.Answer{}, fmt.Errorf("search: %w", err)
	}
	sources := set.Texts()
	if len(sources) == 0 {
		return domanswer.Answer{}, fmt.Errorf("answer %q: %w", q.Text(), domain.ErrNoSearchResults)
	}
	if len(sources) > n {
		sources = sources[:n]
	}

	messages := buildMessages(s.cfg.SystemPrompt, q.Text(), sources, s.cfg.IncludeURLsInPrompt)
	res, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return domanswer.Answer{}, fmt.Errorf("generate answer: %w", err)
	}

	content := strings.TrimSpace(res.Content)
	if content == "" {
		return domanswer.Answer{}, fmt.Errorf("empty completion (finish_reason=%s): %w",
			res.FinishReason, domain.ErrLLMProviderError)
	}

	s.logger.Debug("Answer generated",
		zap.Int("sources", len(sources)),
		zap.Int("total_tokens", res.TotalTokens),
	)

	return domanswer.New(
		uuid.NewString(), content, s.cfg.Model, sources,
		res.PromptTokens, res.CompletionTokens, res.TotalTokens,
	), nil
}
