package response

import (
	"io"
	"net/http"

	"github.com/streaminghub/catalog/core/handler"
)

// String writes content as text/plain with 200 OK.
func String(content string) handler.Response {
	return StringWithStatus(content, http.StatusOK)
}

// StringWithStatus writes content as text/plain. A zero status means 200.
func StringWithStatus(content string, status int) handler.Response {
	if status == 0 {
		status = http.StatusOK
	}
	return func(w http.ResponseWriter, _ *http.Request) error {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, err := io.WriteString(w, content)
		return err
	}
}
