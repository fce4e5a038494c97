package routes

import (
	"net/http"

	"github.com/dukerupert/ukpostcode/internal/handler"
	"github.com/dukerupert/ukpostcode/internal/router"
)

// RegisterCheckerRoutes registers the form page, the check endpoints and
// the operational endpoints.
func RegisterCheckerRoutes(r *router.Router, deps CheckerDeps) {
	r.Get("/{$}", deps.CheckHandler.Form)

	// Operational
	r.Get("/health", handler.Health)
	if deps.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	// Check endpoints are rate limited per client
	checks := r
	if deps.RateLimiter != nil {
		checks = r.Group(deps.RateLimiter.Middleware)
	}
	checks.Post("/check", deps.CheckHandler.CheckForm)
	checks.Post("/api/check", deps.CheckHandler.CheckAPI)
}
