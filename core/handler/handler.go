package handler

import "net/http"

// Response is a function that renders HTTP responses.
// It sets headers, status code, and writes the response body.
// Rendering errors are handled by the ErrorHandler passed to Adapt.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc handles a request and returns the response to render.
type HandlerFunc func(r *http.Request) Response

// ErrorHandler handles errors during request processing.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Adapt turns h into a standard http.HandlerFunc. Errors returned while
// rendering go to onError; a nil onError answers 500 with the error text.
func Adapt(h HandlerFunc, onError ErrorHandler) http.HandlerFunc {
	if onError == nil {
		onError = plainError
	}
	return func(w http.ResponseWriter, r *http.Request) {
		resp := h(r)
		if resp == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := resp(w, r); err != nil {
			onError(w, r, err)
		}
	}
}

func plainError(w http.ResponseWriter, _ *http.Request, err error) {
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
