package worker

import (
	"encoding/json"
	"net/http"
)

// HealthHandler serves the worker's liveness endpoint with the job's
// running totals.
func HealthHandler(job *RefreshJob, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "healthy",
			"version": version,
			"refresh": job.MetricsSnapshot(),
		})
	})
}
