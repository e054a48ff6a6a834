package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	applog "github.com/janisto/huma-feed/internal/platform/logging"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status"`
}

// Check tests a dependency; a non-nil error marks the service unhealthy.
type Check func(ctx context.Context) error

const checkTimeout = 2 * time.Second

// NewHandler returns a plain HTTP handler reporting "healthy" when every
// check passes and 503 "unhealthy" otherwise.
func NewHandler(checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		status, code := "healthy", http.StatusOK
		for _, check := range checks {
			if err := check(ctx); err != nil {
				applog.LogError(ctx, "health check failed", err)
				status, code = "unhealthy", http.StatusServiceUnavailable
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(Response{Status: status})
	}
}
