package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/streaminghub/catalog/catalog"
	"github.com/streaminghub/catalog/core/handler"
	"github.com/streaminghub/catalog/core/response"
	"github.com/streaminghub/catalog/middleware"
)

const (
	defaultPrefix   = "/api"
	defaultMaxBody  = 1 * middleware.MB
	invalidJSONBody = "invalid JSON body"
)

// API serves the catalog CRUD endpoints as JSON.
type API struct {
	svc     *catalog.Service
	log     *slog.Logger
	prefix  string
	maxBody int64
}

// Option configures an API.
type Option func(*API)

// WithPrefix sets the URL prefix the routes live under (default "/api").
func WithPrefix(prefix string) Option {
	return func(a *API) {
		if prefix != "" {
			a.prefix = prefix
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// WithMaxBodySize caps request bodies (default 1MB).
func WithMaxBodySize(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxBody = n
		}
	}
}

// New creates the API on top of svc.
func New(svc *catalog.Service, opts ...Option) *API {
	a := &API{
		svc:     svc,
		log:     slog.Default(),
		prefix:  defaultPrefix,
		maxBody: defaultMaxBody,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handler returns a router answering full request paths under the prefix.
// Unknown paths and methods get JSON errors.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.NotFound(a.adapt(notFound))
	r.MethodNotAllowed(a.adapt(methodNotAllowed))

	r.Route(a.prefix, func(r chi.Router) {
		r.Use(middleware.BodyLimit(a.maxBody))

		r.Get("/films", a.adapt(a.listFilms))
		r.Post("/films", a.adapt(a.createFilm))
		r.Get("/films/{id}", a.adapt(a.getFilm))

		r.Get("/series", a.adapt(a.listSeries))
		r.Post("/series", a.adapt(a.createSeries))
		r.Get("/series/{id}", a.adapt(a.getSeries))

		r.Get("/items", a.adapt(a.listItems))
		r.Post("/items", a.adapt(a.createItem))
		r.Get("/items/{id}", a.adapt(a.getItem))
		r.Put("/items/{id}", a.adapt(a.updateItem))
		r.Delete("/items/{id}", a.adapt(a.deleteItem))

		r.Get("/ratings", a.adapt(a.listRatings))
		r.Post("/ratings", a.adapt(a.rate))

		r.Get("/library", a.adapt(a.listLibrary))
		r.Post("/library", a.adapt(a.addToLibrary))

		r.Get("/friends", a.adapt(a.listFriends))
		r.Post("/friends", a.adapt(a.addFriend))

		r.Post("/login", a.adapt(a.login))

		r.NotFound(a.adapt(notFound))
		r.MethodNotAllowed(a.adapt(methodNotAllowed))
	})

	return r
}

func (a *API) adapt(h handler.HandlerFunc) http.HandlerFunc {
	return handler.Adapt(h, a.renderError)
}

// renderError maps catalog errors to HTTP errors and renders them as JSON.
func (a *API) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *catalog.ValidationError
	switch {
	case errors.As(err, &ve):
		err = response.ErrBadRequest.
			WithMessage(ve.Message).
			WithDetails(map[string]any{"field": ve.Field})
	case errors.Is(err, catalog.ErrNotFound):
		err = response.ErrNotFound.WithMessage("Not found")
	case errors.Is(err, catalog.ErrInvalidCredentials):
		err = response.ErrUnauthorized.WithMessage("invalid credentials")
	case errors.Is(err, catalog.ErrConflict):
		err = response.ErrConflict.WithMessage("already exists")
	}
	response.JSONErrorHandler(w, r, err)
}

func notFound(*http.Request) handler.Response {
	return response.Error(response.ErrNotFound.WithMessage("Not found"))
}

func methodNotAllowed(*http.Request) handler.Response {
	return response.Error(response.ErrMethodNotAllowed)
}

// decode reads a JSON body into v.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return middleware.ErrRequestEntityTooLarge
		}
		return response.ErrBadRequest.WithMessage(invalidJSONBody)
	}
	return nil
}

// pathID parses the {id} URL parameter. Non-numeric ids cannot match a row.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, catalog.ErrNotFound
	}
	return id, nil
}

// queryID parses an optional numeric query parameter; absent means 0.
func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, response.ErrBadRequest.
			WithMessage(name + " must be a positive integer").
			WithDetails(map[string]any{"field": name})
	}
	return id, nil
}
