package searchproxy

import (
	"context"
	"net/http"
	"time"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded", "error"
	Checks map[string]string `json:"checks"` // component → "ok"/"error"
}

// Healthy reports whether every component passed.
func (h HealthStatus) Healthy() bool { return h.Status == "ok" }

// Health checks the server and its upstreams. A degraded server still returns a status, not an error.
func (c *Client) Health(ctx context.Context) (_ HealthStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	var resp HealthStatus
	if err = c.do(ctx, http.MethodGet, "/health", nil, nil, &resp, http.StatusServiceUnavailable); err != nil {
		return HealthStatus{}, err
	}
	return resp, nil
}
