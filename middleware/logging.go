package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/streaminghub/catalog/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo)
	LogLevel slog.Level

	// LogHeaders enables logging of request headers (default: false)
	LogHeaders bool

	// SensitiveHeaders are redacted when LogHeaders is set
	SensitiveHeaders []string

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging (default: "http")
	Component string
}

// Logging logs one line per request with the default configuration.
func Logging(log *slog.Logger) func(http.Handler) http.Handler {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging middleware. Responses with a
// 5xx status are logged at error level, 4xx and slow requests at warn.
func LoggingWithConfig(cfg LoggingConfig) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}
	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{"Authorization", "Cookie", "X-Api-Key"}
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			duration := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			requestID, _ := GetRequestID(r.Context())
			clientIP, _ := GetClientIP(r.Context())
			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.StatusCode(status),
				logger.BytesOut(int64(ww.BytesWritten())),
				logger.Latency(duration),
				logger.RequestID(requestID),
				logger.ClientIP(clientIP),
				logger.UserAgent(r.UserAgent()),
			}

			if cfg.LogHeaders {
				headers := make(map[string]any, len(r.Header))
				for key, values := range r.Header {
					switch {
					case slices.Contains(cfg.SensitiveHeaders, key):
						headers[key] = "[REDACTED]"
					case len(values) == 1:
						headers[key] = values[0]
					default:
						headers[key] = values
					}
				}
				attrs = append(attrs, slog.Any("request_headers", headers))
			}

			level := cfg.LogLevel
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			case duration > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}

			cfg.Logger.LogAttrs(r.Context(), level, "HTTP request completed", attrs...)
		})
	}
}
