package homechef

import (
	"context"
	"fmt"
	"time"

	healthuc "github.com/kailas-cloud/homechef/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // "cache", "embedding", "generation" -> "ok"/"error"
}

// Health checks the cache and both model endpoints.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)

	var err error
	if report.Status != healthuc.Healthy {
		err = fmt.Errorf("health status %s", report.Status)
	}
	c.obs.observe("health", start, err)

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// Healthy reports whether every component passed its check.
func (h HealthStatus) Healthy() bool { return h.Status == string(healthuc.Healthy) }

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
