package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/streaminghub/catalog/middleware"
)

func TestTracing(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Tracing)
	r.Get("/api/films/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "boom" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	})

	tests := []struct {
		name string
		path string
		want int
	}{
		{name: "matched_route", path: "/api/films/7", want: http.StatusAccepted},
		{name: "server_error", path: "/api/films/boom", want: http.StatusInternalServerError},
		{name: "unmatched", path: "/nope", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
