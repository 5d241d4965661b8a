package middleware

import (
	"maps"
	"net/http"
)

// SecurityHeadersConfig configures the security headers middleware.
type SecurityHeadersConfig struct {
	// ContentTypeOptions controls X-Content-Type-Options header
	ContentTypeOptions string

	// FrameOptions controls X-Frame-Options header
	FrameOptions string

	// ReferrerPolicy controls Referrer-Policy header
	ReferrerPolicy string

	// StrictTransportSecurity controls Strict-Transport-Security header
	StrictTransportSecurity string

	// CustomHeaders allows adding additional custom security headers
	CustomHeaders map[string]string

	// IsDevelopment disables HSTS
	IsDevelopment bool
}

// BalancedSecurity suits pages that load their own scripts and call the API
// on the same origin. No Content-Security-Policy is set.
var BalancedSecurity = SecurityHeadersConfig{
	ContentTypeOptions:      "nosniff",
	FrameOptions:            "SAMEORIGIN",
	ReferrerPolicy:          "strict-origin-when-cross-origin",
	StrictTransportSecurity: "max-age=31536000; includeSubDomains",
}

// SecurityHeaders creates a security headers middleware.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	headers := make(map[string]string)
	if cfg.ContentTypeOptions != "" {
		headers["X-Content-Type-Options"] = cfg.ContentTypeOptions
	}
	if cfg.FrameOptions != "" {
		headers["X-Frame-Options"] = cfg.FrameOptions
	}
	if cfg.ReferrerPolicy != "" {
		headers["Referrer-Policy"] = cfg.ReferrerPolicy
	}
	if cfg.StrictTransportSecurity != "" {
		headers["Strict-Transport-Security"] = cfg.StrictTransportSecurity
	}
	maps.Copy(headers, cfg.CustomHeaders)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for key, value := range headers {
				w.Header().Set(key, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
