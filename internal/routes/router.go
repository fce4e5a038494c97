package routes

import (
	"log/slog"
	"time"

	"github.com/dukerupert/ukpostcode/internal/middleware"
	"github.com/dukerupert/ukpostcode/internal/router"
)

// ChainConfig configures the global middleware chain
type ChainConfig struct {
	Logger      *slog.Logger
	Security    middleware.SecurityHeadersConfig
	MaxBodySize int64
	Timeout     time.Duration
}

// NewRouter builds the checker router with the global middleware chain.
// Recovery sits inside Timeout because Timeout runs the handler on its
// own goroutine.
func NewRouter(chain ChainConfig, deps CheckerDeps) *router.Router {
	if chain.Logger == nil {
		chain.Logger = slog.Default()
	}

	mw := []router.Middleware{middleware.RequestID}
	if deps.Metrics != nil {
		mw = append(mw, deps.Metrics.Middleware)
	}
	mw = append(mw,
		middleware.SecurityHeaders(chain.Security),
		middleware.MaxBodySize(chain.MaxBodySize),
		middleware.Timeout(chain.Timeout),
		router.Recovery(chain.Logger),
		middleware.WithRequestLogger(chain.Logger),
		router.Logger(chain.Logger),
	)

	r := router.New(mw...)
	RegisterCheckerRoutes(r, deps)
	return r
}
