package http

import (
	"net/http"

	"proxy-logs/internal/queries"
	"proxy-logs/internal/shared/configs"
	"proxy-logs/internal/shared/loggers"
	"proxy-logs/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

type RouterOptions struct {
	// ResponseHeaders are set on every /get_data response.
	ResponseHeaders map[string]string
	RateLimit       configs.RateLimitConfig
}

// NewRouter creates and configures the HTTP router.
func NewRouter(queryService queries.QueryService, opts RouterOptions, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	getDataHandler := NewGetDataHandler(queryService, opts.ResponseHeaders)

	// Routes
	router.With(mwRateLimit(opts.RateLimit)).Get("/get_data", errorHandlingAdapter(getDataHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
