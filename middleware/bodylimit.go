package middleware

import (
	"fmt"
	"net/http"

	"github.com/streaminghub/catalog/core/response"
)

// Common size constants for convenience.
const (
	KB int64 = 1024
	MB       = 1024 * KB
)

// ErrRequestEntityTooLarge is rendered when the declared body size exceeds the limit.
var ErrRequestEntityTooLarge = response.HTTPError{
	Status:  http.StatusRequestEntityTooLarge,
	Code:    "request_entity_too_large",
	Message: http.StatusText(http.StatusRequestEntityTooLarge),
}

// BodyLimit rejects requests whose Content-Length exceeds maxSize with 413
// and caps the body reader at maxSize for requests without one. A
// non-positive maxSize means 4MB.
func BodyLimit(maxSize int64) func(http.Handler) http.Handler {
	if maxSize <= 0 {
		maxSize = 4 * MB
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxSize {
				response.JSONErrorHandler(w, r, ErrRequestEntityTooLarge.
					WithMessage(fmt.Sprintf("Request body too large. Maximum allowed: %d bytes", maxSize)).
					WithDetails(map[string]any{"limit": maxSize}))
				return
			}
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, maxSize)
			}
			next.ServeHTTP(w, r)
		})
	}
}
