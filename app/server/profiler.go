package server

import (
	"net/http"
	"net/http/pprof"

	"github.com/Bethel-nz/foodprint/app/router"
	"github.com/Bethel-nz/foodprint/internal/metrics"
)

// withProfiler serves the net/http/pprof endpoints and hands every other
// request to next.
func withProfiler(next http.Handler) http.Handler {
	rg := router.NewRouter()
	debug := rg.Group("/debug/pprof")
	debug.Mount("/cmdline", http.HandlerFunc(pprof.Cmdline))
	debug.Mount("/profile", http.HandlerFunc(pprof.Profile))
	debug.Mount("/symbol", http.HandlerFunc(pprof.Symbol))
	debug.Mount("/trace", http.HandlerFunc(pprof.Trace))
	debug.Mount("/", http.HandlerFunc(pprof.Index))

	r := router.Handler(rg)
	r.NotFoundHandler = next
	return r
}

// withMetricsEndpoint serves GET /metrics and hands every other request to next.
func withMetricsEndpoint(next http.Handler, m *metrics.Metrics) http.Handler {
	rg := router.NewRouter()
	rg.GET("/metrics", func(c *router.Context) {
		m.Handler().ServeHTTP(c, c.Request)
	})

	r := router.Handler(rg)
	r.NotFoundHandler = next
	r.MethodNotAllowedHandler = next
	return r
}
