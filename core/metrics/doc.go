// Package metrics exposes Prometheus collectors for the HTTP server and the
// page resolution pipeline.
//
//	m := metrics.New()
//	r.Use(m.Middleware)
//	r.Handle("/metrics", m.Handler())
//	site := static.NewSite(pipeline, static.WithObserver(m))
package metrics
