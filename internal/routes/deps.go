package routes

import (
	"github.com/dukerupert/ukpostcode/internal/handler"
	"github.com/dukerupert/ukpostcode/internal/middleware"
)

// CheckerDeps contains dependencies for the postcode checker routes
type CheckerDeps struct {
	// Form page, form submission and JSON API
	CheckHandler *handler.CheckHandler

	// RateLimiter guards the check endpoints. Nil disables limiting.
	RateLimiter *middleware.RateLimiter

	// Metrics exposes /metrics. Nil disables the endpoint.
	Metrics *middleware.Metrics
}

// KnownPaths are the routes reported by name in HTTP metrics
var KnownPaths = []string{"/", "/check", "/api/check", "/health", "/metrics"}
