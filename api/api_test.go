package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/streaminghub/catalog/api"
	"github.com/streaminghub/catalog/catalog"
	"github.com/streaminghub/catalog/integration/database/sqlite"
	"github.com/streaminghub/catalog/repository"
)

func newHandler(t *testing.T, opts ...api.Option) http.Handler {
	t.Helper()

	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.Config{Path: sqlite.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	fsys, err := repository.Migrations(repository.DialectSQLite)
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(ctx, db, sqlite.Config{}, fsys, nil))

	repo, err := repository.New(db, repository.DialectSQLite)
	require.NoError(t, err)

	svc := catalog.NewService(repo,
		catalog.WithBcryptCost(bcrypt.MinCost),
		catalog.WithTokenGenerator(func() string { return "test-token" }),
	)
	return api.New(svc, opts...).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestFilms(t *testing.T) {
	t.Parallel()

	h := newHandler(t)

	rec := do(t, h, http.MethodGet, "/api/films", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/films", `{"title":"Heat","description":"LA","url":"https://example.com/heat"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	film := decodeBody[catalog.Film](t, rec)
	assert.Equal(t, "Heat", film.Title)

	rec = do(t, h, http.MethodGet, "/api/films/"+itoa(film.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, film.ID, decodeBody[catalog.Film](t, rec).ID)

	rec = do(t, h, http.MethodPost, "/api/films", `{"description":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "title required", errBody["error"])
	assert.Equal(t, "bad_request", errBody["code"])

	rec = do(t, h, http.MethodGet, "/api/films/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", decodeBody[map[string]any](t, rec)["error"])

	rec = do(t, h, http.MethodGet, "/api/films/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSeries(t *testing.T) {
	t.Parallel()

	h := newHandler(t)

	rec := do(t, h, http.MethodPost, "/api/series", `{"title":"Dark"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	series := decodeBody[catalog.Series](t, rec)

	rec = do(t, h, http.MethodGet, "/api/series", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]catalog.Series](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/api/series/"+itoa(series.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestItemsCRUD(t *testing.T) {
	t.Parallel()

	h := newHandler(t)

	rec := do(t, h, http.MethodPost, "/api/items", `{"title":"note","content":"hello"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	item := decodeBody[catalog.Item](t, rec)
	path := "/api/items/" + itoa(item.ID)

	rec = do(t, h, http.MethodPut, path, `{"title":"note 2","content":"bye"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "note 2", decodeBody[catalog.Item](t, rec).Title)

	rec = do(t, h, http.MethodPut, "/api/items/999", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRatings(t *testing.T) {
	t.Parallel()

	h := newHandler(t)

	rec := do(t, h, http.MethodGet, "/api/ratings?movie_id=1&user_id=1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	rec = do(t, h, http.MethodPost, "/api/ratings", `{"movie_id":1,"user_id":1,"score":6}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/ratings", `{"movie_id":1,"user_id":1,"score":9}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/ratings?movie_id=1&user_id=1", "")
	assert.JSONEq(t, `{"movie_id":1,"user_id":1,"score":9}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/ratings?movie_id=1", "")
	assert.JSONEq(t, `[{"movie_id":1,"user_id":1,"score":9}]`, rec.Body.String())

	tests := []struct {
		name string
		body string
	}{
		{name: "missing_score", body: `{"movie_id":1,"user_id":1}`},
		{name: "score_out_of_range", body: `{"movie_id":1,"user_id":1,"score":42}`},
		{name: "malformed_json", body: `{"movie_id":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/ratings", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec = do(t, h, http.MethodGet, "/api/ratings?movie_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLibraryAndFriends(t *testing.T) {
	t.Parallel()

	h := newHandler(t)

	rec := do(t, h, http.MethodPost, "/api/library", `{"item_type":"film","item_id":3}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/library", "")
	entries := decodeBody[[]catalog.LibraryEntry](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, catalog.DefaultUserID, entries[0].UserID)

	rec = do(t, h, http.MethodGet, "/api/library?user_id=2", "")
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/login", `{"username":"ala","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	ala := decodeBody[catalog.Session](t, rec).User
	rec = do(t, h, http.MethodPost, "/api/login", `{"username":"ola","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	ola := decodeBody[catalog.Session](t, rec).User

	rec = do(t, h, http.MethodPost, "/api/friends", `{"user_id":`+itoa(ala.ID)+`,"friend_user_id":`+itoa(ola.ID)+`}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/friends", `{"user_id":`+itoa(ala.ID)+`,"friend_user_id":`+itoa(ola.ID)+`}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/friends?user_id="+itoa(ala.ID), "")
	friends := decodeBody[[]catalog.Friend](t, rec)
	require.Len(t, friends, 1)
	assert.Equal(t, "ola", friends[0].FriendUsername)
	assert.Equal(t, catalog.FriendStatusAccepted, friends[0].Status)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	h := newHandler(t)

	rec := do(t, h, http.MethodPost, "/api/login", `{"username":"ala","password":"kot"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "test-token", body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ala", user["username"])
	assert.NotContains(t, user, "password_hash")
	assert.NotContains(t, user, "PasswordHash")

	rec = do(t, h, http.MethodPost, "/api/login", `{"username":"ala","password":"kot"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/login", `{"username":"ala","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid credentials", decodeBody[map[string]any](t, rec)["error"])

	rec = do(t, h, http.MethodPost, "/api/login", `{"username":"ala"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "username/password required", decodeBody[map[string]any](t, rec)["error"])
}

func TestUnknownRoutes(t *testing.T) {
	t.Parallel()

	h := newHandler(t)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{name: "unknown_api_path", method: http.MethodGet, path: "/api/nope", status: http.StatusNotFound},
		{name: "api_root", method: http.MethodGet, path: "/api", status: http.StatusNotFound},
		{name: "outside_prefix", method: http.MethodGet, path: "/films", status: http.StatusNotFound},
		{name: "wrong_method", method: http.MethodPatch, path: "/api/films", status: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, h, tt.method, tt.path, "")
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	h := newHandler(t, api.WithMaxBodySize(32))

	rec := do(t, h, http.MethodPost, "/api/items", `{"title":"`+strings.Repeat("x", 64)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCustomPrefix(t *testing.T) {
	t.Parallel()

	h := newHandler(t, api.WithPrefix("/v1"))

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/films", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/films", "").Code)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
