package searxng

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/searchproxy/internal/domain"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/result"
	"github.com/kailas-cloud/searchproxy/internal/metrics"
	"github.com/kailas-cloud/searchproxy/internal/version"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 512

// Client queries a SearXNG instance through its JSON API.
type Client struct {
	http       *http.Client
	baseURL    *url.URL
	language   string
	safeSearch int
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Config holds the search engine settings.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	Language          string
	SafeSearch        int
	RequestsPerSecond float64
	Burst             int
	HTTPClient        *http.Client // optional, overrides Timeout
	Logger            *zap.Logger
}

// NewClient creates a SearXNG client.
func NewClient(cfg *Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url must be absolute, got %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:       httpClient,
		baseURL:    base,
		language:   cfg.Language,
		safeSearch: cfg.SafeSearch,
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger,
	}, nil
}

// Search runs a query restricted to the given categories and returns raw hits in engine order.
func (c *Client) Search(ctx context.Context, query string, categories []string) ([]result.Raw, error) {
	kind := metricKind(categories)

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(kind, "rate_limited").Inc()
		return nil, fmt.Errorf("wait for search slot: %w: %w", domain.ErrRateLimited, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(query, categories), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.SearchRequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(kind, "error").Inc()
		return nil, fmt.Errorf("search request failed: %w: %w", domain.ErrSearchProviderError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.SearchRequestsTotal.WithLabelValues(kind, strconv.Itoa(resp.StatusCode)).Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("search engine returned %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(body)), domain.ErrSearchProviderError)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(kind, "decode_error").Inc()
		return nil, fmt.Errorf("decode search response: %w: %w", domain.ErrSearchProviderError, err)
	}
	metrics.SearchRequestsTotal.WithLabelValues(kind, "success").Inc()

	if len(payload.UnresponsiveEngines) > 0 {
		c.logger.Debug("Some search engines did not respond",
			zap.Int("count", len(payload.UnresponsiveEngines)),
			zap.Any("engines", payload.UnresponsiveEngines),
		)
	}

	raws := make([]result.Raw, len(payload.Results))
	for i, r := range payload.Results {
		raws[i] = r.toDomain()
	}
	return raws, nil
}

// HealthCheck verifies the instance answers on its health endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	u := *c.baseURL
	u.Path += "/healthz"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.New("searxng health: unexpected status " + strconv.Itoa(resp.StatusCode))
	}
	return nil
}

func (c *Client) searchURL(query string, categories []string) string {
	u := *c.baseURL
	u.Path += "/search"

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	if len(categories) > 0 {
		q.Set("categories", strings.Join(categories, ","))
	}
	if c.language != "" {
		q.Set("language", c.language)
	}
	q.Set("safesearch", strconv.Itoa(c.safeSearch))
	u.RawQuery = q.Encode()

	return u.String()
}

// metricKind keeps the category label bounded to the configured category sets.
func metricKind(categories []string) string {
	if len(categories) == 0 {
		return "default"
	}
	return strings.Join(categories, "+")
}
