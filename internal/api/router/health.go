package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/vendorconnect/vendorconnect-platform/pkg/logging"
)

const readinessTimeout = 2 * time.Second

// ReadinessCheck probes one backing service.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// CatalogInvalidator drops cached catalog reads.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context) error
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readyHandler reports 503 when any check fails.
func readyHandler(checks []ReadinessCheck, logger *logging.Logger) http.HandlerFunc {
	if logger == nil {
		logger = logging.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				logger.Warn("readiness check failed", "check", c.Name, "error", err)
				results[c.Name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[c.Name] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "unavailable"
		}
		writeJSON(w, status, map[string]any{"status": overall, "checks": results})
	}
}

func invalidateCatalogHandler(catalog CatalogInvalidator, logger *logging.Logger) http.HandlerFunc {
	if logger == nil {
		logger = logging.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if err := catalog.Invalidate(r.Context()); err != nil {
			logger.Error("failed to invalidate catalog cache", "error", err)
			http.Error(w, "failed to invalidate catalog cache", http.StatusInternalServerError)
			return
		}
		logger.Info("catalog cache invalidated")
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
