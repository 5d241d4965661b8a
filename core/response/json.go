package response

import (
	"encoding/json"
	"net/http"

	"github.com/streaminghub/catalog/core/handler"
)

// JSON creates an application/json response with 200 OK status.
// A nil value encodes as null.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// Created is JSON with 201 Created.
func Created(v any) handler.Response {
	return JSONWithStatus(v, http.StatusCreated)
}

// JSONWithStatus creates an application/json response with custom status code.
// The value is encoded straight to the response writer.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)

		switch status {
		case http.StatusNoContent, http.StatusNotModified:
			return nil
		}
		return json.NewEncoder(w).Encode(v)
	}
}
