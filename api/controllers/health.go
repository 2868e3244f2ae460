package controllers

import (
	"context"
	"net/http"

	"github.com/alunakitchen/pickup-backend/api/responses"
)

// Pinger is the health check surface a dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health reports liveness of the datasource and the session store.
func Health(checks map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		healthy := true

		for name, check := range checks {
			if check == nil {
				resp.Checks[name] = "skipped"
				continue
			}
			if err := check.Ping(ctx); err != nil {
				resp.Checks[name] = err.Error()
				healthy = false
				continue
			}
			resp.Checks[name] = "ok"
		}

		status := http.StatusOK
		if !healthy {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, status, resp)
	}
}
