package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchproxy/internal/domain"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/kind"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/query"
	domusage "github.com/kailas-cloud/searchproxy/internal/domain/usage"
	"github.com/kailas-cloud/searchproxy/internal/logger"
	healthuc "github.com/kailas-cloud/searchproxy/internal/usecase/health"
)

// maxAnswerBody caps the POST /answer request body.
const maxAnswerBody = 64 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the search proxy HTTP API.
type Server struct {
	search        Searcher
	answer        Answerer
	usage         UsageReporter
	health        HealthReporter
	defaultLimit  int
	maxLimit      int
	metrics       http.Handler
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
// defaultLimit applies when the search limit is omitted or zero; maxLimit caps it.
func NewServer(
	search Searcher,
	answer Answerer,
	usage UsageReporter,
	health HealthReporter,
	defaultLimit, maxLimit int,
) *Server {
	s := &Server{
		search:       search,
		answer:       answer,
		usage:        usage,
		health:       health,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		metrics:      promhttp.Handler(),
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrNoSearchResults, http.StatusNotFound, ErrorCodeNoSearchResults),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorCodeRateLimited),
		sentinelHandler(domain.ErrAnswerQuotaExceeded, http.StatusPaymentRequired, ErrorCodeQuotaExceeded),
		sentinelHandler(domain.ErrSearchProviderError, http.StatusBadGateway, ErrorCodeSearchProviderError),
		sentinelHandler(domain.ErrLLMProviderError, http.StatusBadGateway, ErrorCodeLLMProviderError),
		sentinelHandler(domain.ErrNotImplemented, http.StatusNotImplemented, ErrorCodeNotImplemented),
	}
	return s
}

// Routes registers the API handlers on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/search", s.Search)
	r.Post("/answer", s.Answer)
	r.Get("/usage", s.GetUsage)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles GET /search?q=&type=&limit=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var (
		q     string
		typ   *string
		limit *int
	)
	if err := runtime.BindQueryParameter("form", true, true, "q", params, &q); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "Invalid format for parameter q: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "type", params, &typ); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "Invalid format for parameter type: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", params, &limit); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "Invalid format for parameter limit: "+err.Error())
		return
	}

	var k kind.Kind
	if typ != nil {
		k = kind.Kind(*typ)
	}
	n := s.defaultLimit
	if limit != nil {
		if *limit < 0 {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "limit must not be negative")
			return
		}
		if *limit > 0 {
			n = *limit
		}
	}

	sq, err := query.New(q, k, n, s.maxLimit)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	set, err := s.search.Search(r.Context(), sq)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseFromDomain(sq.Text(), set))
}

// Answer handles POST /answer.
func (s *Server) Answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnswerBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	n := 0
	if req.ResultsToConsider != nil {
		if *req.ResultsToConsider <= 0 {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "results_to_consider must be positive")
			return
		}
		n = *req.ResultsToConsider
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	a, err := s.answer.Answer(ctx, req.Query, n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setAnswerHeaders(w, usage)
	writeJSON(w, http.StatusOK, answerResponseFromDomain(a))
}

// GetUsage handles GET /usage?period=day|month|total.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	var p *string
	if err := runtime.BindQueryParameter("form", true, false, "period", r.URL.Query(), &p); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "Invalid format for parameter period: "+err.Error())
		return
	}

	period := domusage.PeriodMonth
	if p != nil {
		period = domusage.Period(*p)
		if !period.IsValid() {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
				fmt.Sprintf("period must be one of %s, %s, %s",
					domusage.PeriodDay, domusage.PeriodMonth, domusage.PeriodTotal))
			return
		}
	}

	report := s.usage.GetReport(r.Context(), period)
	writeJSON(w, http.StatusOK, usageResponseFromDomain(report))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

func setAnswerHeaders(w http.ResponseWriter, usage *domain.AnswerUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Answer-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
// Validation errors keep their detail since it only describes the caller's input.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidQuery) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrNoSearchResults,
		domain.ErrRateLimited,
		domain.ErrAnswerQuotaExceeded,
		domain.ErrSearchProviderError,
		domain.ErrLLMProviderError,
		domain.ErrNotImplemented,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
