// Package health serves the liveness and readiness probes.
//
//	r.Get("/live", handler.Adapt(health.Liveness, response.ErrorHandler))
//	r.Get("/ready", handler.Adapt(health.Readiness(log, sqlite.Healthcheck(db)), response.ErrorHandler))
//
// Liveness never touches dependencies. Readiness fails with 503 as soon as
// one check fails or CheckTimeout passes.
package health
