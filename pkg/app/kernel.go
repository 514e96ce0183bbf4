package app

import (
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// buildRouter sets up the global middleware, the /metrics endpoint and the
// application's routes.
func buildRouter(a *Application) *router.Router {
	r := router.New()

	// Outermost first: metrics see total latency, recovery catches panics
	// from everything below it, the logger needs the request id.
	r.Use(a.Metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))

	r.Get("/metrics", "metrics", a.Metrics.Handler())

	for _, fn := range a.routesFns {
		fn(r)
	}
	return r
}
