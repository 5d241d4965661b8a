package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/streaminghub/catalog/core/logger"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// convertToHTTPError converts any error to an HTTPError.
func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	baseErr, ok := httpErrorsByStatus[status]
	if !ok {
		baseErr = ErrInternalServerError
	}
	return baseErr.WithError(err)
}

// errorBody is the JSON shape of API errors. "error" carries the human
// readable message.
type errorBody struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorHandler returns errors as plain text.
func ErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := convertToHTTPError(err)
	logServerError(r, httpErr, err)
	_ = StringWithStatus(httpErr.Error(), httpErr.Status)(w, r)
}

// JSONErrorHandler returns errors as JSON. Causes of 5xx errors are logged
// and kept out of the response body.
func JSONErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := convertToHTTPError(err)
	logServerError(r, httpErr, err)

	body := errorBody{Error: httpErr.Message, Code: httpErr.Code, Details: httpErr.Details}
	if httpErr.Status >= http.StatusInternalServerError {
		body.Details = nil
	}
	_ = JSONWithStatus(body, httpErr.Status)(w, r)
}

func logServerError(r *http.Request, httpErr HTTPError, err error) {
	if httpErr.Status < http.StatusInternalServerError {
		return
	}
	slog.ErrorContext(r.Context(), "request failed",
		logger.Component("api"),
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.StatusCode(httpErr.Status),
		logger.Error(err),
	)
}
