package handlers

import (
	"net/http"
	"time"

	"github.com/Bethel-nz/foodprint/app/router"
	"github.com/Bethel-nz/foodprint/internal/health"
)

// Version is reported by the health endpoint. It is set at build time with
// -ldflags "-X github.com/Bethel-nz/foodprint/handlers.Version=...".
var Version = "1.0.0"

// Health serves the operational endpoints.
type Health struct {
	environment string
	checker     *health.Checker
}

func NewHealth(environment string, checker *health.Checker) *Health {
	if checker == nil {
		checker = health.NewChecker()
	}
	return &Health{environment: environment, checker: checker}
}

// HealthCheck reports the service identity.
func (h *Health) HealthCheck(c *router.Context) {
	c.JSON(http.StatusOK, map[string]string{
		"status":      string(health.StatusHealthy),
		"service":     "foodprint-api",
		"version":     Version,
		"environment": h.environment,
	})
}

// Liveness always answers while the process can serve requests.
func (h *Health) Liveness(c *router.Context) {
	c.JSON(http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness runs the registered checks and answers 503 if any fails.
func (h *Health) Readiness(c *router.Context) {
	status, results := h.checker.Run(c.Request.Context())

	code := http.StatusOK
	if status != health.StatusHealthy {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, map[string]any{
		"status":    status,
		"checks":    results,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
