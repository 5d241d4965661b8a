package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig defines configuration options for CORS middleware.
type CORSConfig struct {
	// Skip allows bypassing CORS handling for specific requests
	Skip func(r *http.Request) bool

	// AllowOrigins specifies allowed origins. Use "*" for all origins.
	// If empty, defaults to allowing all origins ("*")
	AllowOrigins []string

	// AllowMethods specifies allowed HTTP methods.
	// If empty, defaults to GET, HEAD, PUT, PATCH, POST, DELETE
	AllowMethods []string

	// AllowHeaders specifies allowed request headers.
	AllowHeaders []string

	// ExposeHeaders specifies which headers are exposed to the client
	ExposeHeaders []string

	// AllowCredentials indicates whether credentials are allowed.
	// Never sent together with a wildcard origin.
	AllowCredentials bool

	// MaxAge specifies how long preflight requests can be cached (in seconds)
	MaxAge int
}

// CORS allows every origin with the default methods and headers.
func CORS(next http.Handler) http.Handler {
	return CORSWithConfig(CORSConfig{})(next)
}

// CORSWithConfig creates a CORS middleware with custom configuration.
// Preflight requests are answered directly with 204, or 403 when the origin
// or method is not allowed.
func CORSWithConfig(cfg CORSConfig) func(http.Handler) http.Handler {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Content-Type",
			"Origin",
			"Authorization",
			"X-Request-ID",
		}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")

	allowOriginsMap := make(map[string]bool, len(cfg.AllowOrigins))
	for _, origin := range cfg.AllowOrigins {
		allowOriginsMap[strings.TrimSpace(origin)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			origin := r.Header.Get("Origin")

			var allowedOrigin string
			allowed := false
			switch {
			case len(cfg.AllowOrigins) == 0 || allowOriginsMap["*"]:
				allowedOrigin, allowed = "*", true
			case allowOriginsMap[origin]:
				allowedOrigin, allowed = origin, true
			}

			headers := w.Header()
			isPreflight := r.Method == http.MethodOptions &&
				r.Header.Get("Access-Control-Request-Method") != ""

			if isPreflight {
				if !allowed || !slices.Contains(cfg.AllowMethods, r.Header.Get("Access-Control-Request-Method")) {
					w.WriteHeader(http.StatusForbidden)
					return
				}

				headers.Set("Access-Control-Allow-Origin", allowedOrigin)
				headers.Set("Access-Control-Allow-Methods", allowMethods)
				if r.Header.Get("Access-Control-Request-Headers") != "" {
					headers.Set("Access-Control-Allow-Headers", allowHeaders)
				}
				if cfg.AllowCredentials && allowedOrigin != "*" {
					headers.Set("Access-Control-Allow-Credentials", "true")
				}
				if cfg.MaxAge > 0 {
					headers.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				headers.Add("Vary", "Origin")
				headers.Add("Vary", "Access-Control-Request-Method")
				headers.Add("Vary", "Access-Control-Request-Headers")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if allowed {
				headers.Set("Access-Control-Allow-Origin", allowedOrigin)
				if cfg.AllowCredentials && allowedOrigin != "*" {
					headers.Set("Access-Control-Allow-Credentials", "true")
				}
				if exposeHeaders != "" {
					headers.Set("Access-Control-Expose-Headers", exposeHeaders)
				}
				headers.Add("Vary", "Origin")
			}

			next.ServeHTTP(w, r)
		})
	}
}
