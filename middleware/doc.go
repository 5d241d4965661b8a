// Package middleware provides net/http middleware for the catalog server.
// Every middleware has the func(http.Handler) http.Handler shape and plugs
// straight into a chi router.
//
// Available middleware:
//
//   - RequestID assigns a request id and exposes it through GetRequestID.
//   - ClientIP resolves the client address behind proxies (GetClientIP).
//   - Tracing opens an OpenTelemetry server span per request.
//   - Logging writes one structured log line per request.
//   - CORS answers preflight requests and sets CORS response headers.
//   - BodyLimit rejects oversized request bodies with 413.
//   - SecurityHeaders sets X-Content-Type-Options, X-Frame-Options and friends.
//
// Typical ordering:
//
//	r := chi.NewRouter()
//	r.Use(
//		middleware.RequestID,
//		middleware.ClientIP,
//		middleware.Tracing,
//		middleware.Logging(log),
//		chimw.Recoverer,
//	)
//
// RequestID should run before Logging and Tracing so both can attach the id.
// RequestIDExtractor plugs into logger.WithContextExtractors to add the id to
// every log record written with a request context.
package middleware
