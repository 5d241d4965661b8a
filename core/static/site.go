package static

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/streaminghub/catalog/core/logger"
)

const tracerName = "github.com/streaminghub/catalog/core/static"

// Observer is notified of every resolution. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveResolution(outcome string, rule Rule)
}

// Site renders pipeline resolutions over HTTP.
type Site struct {
	pipeline    *Pipeline
	passthrough http.Handler
	observer    Observer
	logger      *slog.Logger
	tracer      trace.Tracer
}

// SiteOption configures a Site.
type SiteOption func(*Site)

// WithPassthrough sets the handler receiving API requests.
// Without it API paths answer 404.
func WithPassthrough(h http.Handler) SiteOption {
	return func(s *Site) {
		if h != nil {
			s.passthrough = h
		}
	}
}

// WithObserver registers an observer for resolution outcomes.
func WithObserver(o Observer) SiteOption {
	return func(s *Site) {
		s.observer = o
	}
}

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) SiteOption {
	return func(s *Site) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSite creates the HTTP front of the pipeline.
func NewSite(p *Pipeline, opts ...SiteOption) *Site {
	s := &Site{
		pipeline:    p,
		passthrough: http.HandlerFunc(notFound),
		logger:      slog.Default(),
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.tracer.Start(r.Context(), "static.resolve",
		trace.WithAttributes(attribute.String("url.path", r.URL.Path)),
	)
	defer span.End()
	r = r.WithContext(ctx)

	res := s.pipeline.Resolve(Request{Path: r.URL.Path, RawQuery: r.URL.RawQuery})
	outcome := Outcome(res)
	span.SetAttributes(attribute.String("static.outcome", outcome))

	var rule Rule
	if rd, ok := res.(Redirect); ok {
		rule = rd.Rule
		span.SetAttributes(attribute.String("static.rule", rule.String()))
	}
	if s.observer != nil {
		s.observer.ObserveResolution(outcome, rule)
	}

	s.logger.DebugContext(ctx, "path resolved",
		logger.Component("static"),
		logger.Path(r.URL.Path),
		logger.Result(outcome),
	)

	switch res := res.(type) {
	case Passthrough:
		s.passthrough.ServeHTTP(w, r)
	case Redirect:
		w.Header().Set("Location", res.Target)
		w.WriteHeader(http.StatusMovedPermanently)
	case NotFound:
		notFound(w, r)
	default:
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		switch res := res.(type) {
		case ServeFile:
			if !serveFile(w, r, res.Path) {
				span.SetStatus(codes.Error, "file vanished")
				notFound(w, r)
			}
		case Static:
			s.serveStatic(w, r, res.Path)
		case Diagnostic:
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(res.Text))
		}
	}
}

// serveStatic is the generic static handler: an exact relative match in the
// asset roots, regular files only, never anything under the protected prefix.
func (s *Site) serveStatic(w http.ResponseWriter, r *http.Request, cleanPath string) {
	l := s.pipeline.Layout()
	if l.Protected.Contains(cleanPath) {
		notFound(w, r)
		return
	}

	file, ok := s.pipeline.resolver.FindIn(l.assetRoots(), strings.TrimPrefix(cleanPath, "/"))
	if !ok || !serveFile(w, r, file) {
		notFound(w, r)
	}
}

// serveFile writes the file with http.ServeContent. http.ServeFile is not
// used because it redirects requests for index.html. It reports false when
// the file could not be opened, before anything was written.
func serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	http.ServeContent(w, r, filepath.Base(name), info.ModTime(), f)
	return true
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "Not found", http.StatusNotFound)
}

// Outcome names a resolution for logs and metrics.
func Outcome(res Resolution) string {
	switch res.(type) {
	case Redirect:
		return "redirect"
	case ServeFile:
		return "serve_file"
	case Diagnostic:
		return "diagnostic"
	case Static:
		return "static"
	case Passthrough:
		return "passthrough"
	default:
		return "not_found"
	}
}
