package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/streaminghub/catalog/catalog"
	"github.com/streaminghub/catalog/core/health"
	"github.com/streaminghub/catalog/core/metrics"
	"github.com/streaminghub/catalog/core/static"
	"github.com/streaminghub/catalog/integration/database/sqlite"
	"github.com/streaminghub/catalog/repository"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestRouter(t *testing.T, withMetrics bool) http.Handler {
	t.Helper()

	project := t.TempDir()
	public := filepath.Join(project, "public")
	writeFile(t, filepath.Join(project, "filmy.html"), "<h1>films</h1>")
	writeFile(t, filepath.Join(public, "about.html"), "<h1>about</h1>")
	writeFile(t, filepath.Join(public, "css", "site.css"), "body{}")
	writeFile(t, filepath.Join(public, "_hidden", "index.html"), "<h1>hidden</h1>")

	layout, err := static.NewLayout(static.Layout{
		Roots:      []string{project, public},
		AssetRoots: []string{public},
		Protected: static.ProtectedNamespace{
			Prefix: "/_hidden",
			Index:  filepath.Join(public, "_hidden", "index.html"),
		},
		DefaultDocuments: []string{"filmy.html", "index.html"},
	})
	require.NoError(t, err)

	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.Config{Path: sqlite.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	fsys, err := repository.Migrations(repository.DialectSQLite)
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(ctx, db, sqlite.Config{}, fsys, nil))
	repo, err := repository.New(db, repository.DialectSQLite)
	require.NoError(t, err)

	var m *metrics.Metrics
	if withMetrics {
		m = metrics.New()
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newRouter(routerDeps{
		log:     log,
		app:     appConfig{Env: "production", CORSOrigins: []string{"*"}},
		layout:  layout,
		svc:     catalog.NewService(repo, catalog.WithLogger(log), catalog.WithBcryptCost(bcrypt.MinCost)),
		checks:  []health.Check{sqlite.Healthcheck(db)},
		metrics: m,
	})
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRouterSite(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, false)

	tests := []struct {
		name     string
		target   string
		status   int
		location string
		body     string
	}{
		{name: "root_serves_protected_index", target: "/", status: http.StatusOK, body: "<h1>hidden</h1>"},
		{name: "extensionless_page", target: "/about", status: http.StatusOK, body: "<h1>about</h1>"},
		{name: "html_suffix_redirect", target: "/about.html?x=1", status: http.StatusMovedPermanently, location: "/about?x=1"},
		{name: "legacy_prefix_redirect", target: "/public/css/site.css", status: http.StatusMovedPermanently, location: "/css/site.css"},
		{name: "legacy_prefix_keeps_question_mark", target: "/public/css/site.css??a=1", status: http.StatusMovedPermanently, location: "/css/site.css??a=1"},
		{name: "protected_redirect", target: "/_hidden/index.html?x=1", status: http.StatusMovedPermanently, location: "/"},
		{name: "asset", target: "/css/site.css", status: http.StatusOK, body: "body{}"},
		{name: "missing_asset", target: "/css/nope.css", status: http.StatusNotFound, body: "Not found\n"},
		{name: "missing_page", target: "/nope", status: http.StatusNotFound, body: "Not found\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := get(h, tt.target)
			assert.Equal(t, tt.status, rec.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get("Location"))
			}
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestRouterAPIPassthrough(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/films", strings.NewReader(`{"title":"Heat"}`))
	req.Header.Set("Origin", "https://example.com")
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(h, "/api/films")
	require.Equal(t, http.StatusOK, rec.Code)
	var films []catalog.Film
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &films))
	require.Len(t, films, 1)

	rec = get(h, "/api/films/"+"1")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(h, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/api/films", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouterNonGetOnPage(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, false)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/about", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestRouterProbes(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, true)

	rec := get(h, "/live")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	rec = get(h, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())

	get(h, "/about.html")
	get(h, "/api/films")

	rec = get(h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `catalog_site_resolutions_total{outcome="redirect",rule="document_suffix"} 1`)
	assert.Contains(t, body, `catalog_site_resolutions_total{outcome="passthrough",rule="none"} 1`)
	assert.Contains(t, body, `route="/api/films"`)
}

func TestRouterWithoutMetrics(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, false)

	// /metrics is an extensionless page lookup when metrics are off.
	rec := get(h, "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
