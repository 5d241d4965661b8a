package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/streaminghub/catalog/api"
	"github.com/streaminghub/catalog/catalog"
	"github.com/streaminghub/catalog/core/handler"
	"github.com/streaminghub/catalog/core/health"
	"github.com/streaminghub/catalog/core/metrics"
	"github.com/streaminghub/catalog/core/response"
	"github.com/streaminghub/catalog/core/static"
	"github.com/streaminghub/catalog/middleware"
)

type routerDeps struct {
	log     *slog.Logger
	app     appConfig
	layout  static.Layout
	svc     *catalog.Service
	checks  []health.Check
	metrics *metrics.Metrics // nil when disabled
}

// newRouter wires probes, metrics and the site. Every path that is not a
// probe goes through the static Site, which hands API paths to the JSON API.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.ClientIP,
		middleware.Tracing,
	)
	if d.metrics != nil {
		r.Use(d.metrics.Middleware)
	}
	r.Use(
		middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger: d.log,
			Skip:   isProbe,
		}),
		chimw.Recoverer,
		middleware.SecurityHeaders(securityHeaders(d.app)),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:  d.app.CORSOrigins,
			ExposeHeaders: []string{"X-Request-ID"},
		}),
	)

	r.Get("/live", handler.Adapt(health.Liveness, response.ErrorHandler))
	r.Get("/ready", handler.Adapt(health.Readiness(d.log, d.checks...), response.ErrorHandler))
	if d.metrics != nil {
		r.Handle("/metrics", d.metrics.Handler())
	}

	apiHandler := api.New(d.svc,
		api.WithPrefix(d.layout.APIPrefix),
		api.WithLogger(d.log),
	).Handler()

	siteOpts := []static.SiteOption{
		static.WithPassthrough(apiHandler),
		static.WithLogger(d.log),
	}
	if d.metrics != nil {
		siteOpts = append(siteOpts, static.WithObserver(d.metrics))
	}
	r.Handle("/*", static.NewSite(static.NewPipeline(d.layout), siteOpts...))

	return r
}

func securityHeaders(app appConfig) middleware.SecurityHeadersConfig {
	cfg := middleware.BalancedSecurity
	cfg.IsDevelopment = app.development()
	return cfg
}

func isProbe(r *http.Request) bool {
	switch r.URL.Path {
	case "/live", "/ready", "/metrics":
		return true
	}
	return false
}
