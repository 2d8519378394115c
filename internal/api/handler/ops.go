// Package handler provides HTTP handlers for the PaddleSpot API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/paddlespot/paddlespot/internal/api/models"
	"github.com/paddlespot/paddlespot/internal/api/response"
	"github.com/paddlespot/paddlespot/internal/provider/resilience"
)

// Pinger checks a backing store. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	db        Pinger
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler. db and registry may be nil.
func NewOpsHandler(version, buildTime string, db Pinger, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		db:        db,
		registry:  registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]any{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			health.Status = models.HealthStatusFail
			health.Details = map[string]any{"database": err.Error()}
			response.JSON(w, r, http.StatusServiceUnavailable, health)
			return
		}
		health.Details = map[string]any{"database": "ok"}
	}

	response.JSON(w, r, http.StatusOK, health)
}

// ProviderStatus handles GET /v1/ops/providers - upstream circuit health.
func (h *OpsHandler) ProviderStatus(w http.ResponseWriter, r *http.Request) {
	status := models.ProvidersStatus{
		Status:    models.HealthStatusOK,
		Time:      models.Timestamp(time.Now()),
		Providers: []models.ProviderStatus{},
	}
	if h.registry == nil {
		response.JSON(w, r, http.StatusOK, status)
		return
	}

	for _, ph := range h.registry.GetAllHealth() {
		ps := models.ProviderStatus{
			Provider:      ph.Name,
			Status:        healthStatus(ph.Status()),
			CircuitState:  ph.CircuitState.String(),
			Requests:      ph.Counts.Requests,
			TotalFailures: ph.Counts.TotalFailures,
			LastError:     ph.LastError,
		}
		if ph.LastSuccessAt != nil {
			ts := models.Timestamp(*ph.LastSuccessAt)
			ps.LastSuccessAt = &ts
		}
		if ph.LastFailureAt != nil {
			ts := models.Timestamp(*ph.LastFailureAt)
			ps.LastFailureAt = &ts
		}
		status.Providers = append(status.Providers, ps)

		switch {
		case ph.IsUnhealthy():
			status.Status = models.HealthStatusFail
		case ps.Status == models.HealthStatusDegraded && status.Status == models.HealthStatusOK:
			status.Status = models.HealthStatusDegraded
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func healthStatus(s string) models.HealthStatus {
	switch s {
	case resilience.StatusHealthy:
		return models.HealthStatusOK
	case resilience.StatusDegraded:
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusFail
	}
}
