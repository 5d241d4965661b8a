package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ContextExtractor pulls a single attribute out of a context.
// It reports false when the context carries nothing for it.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type config struct {
	level      slog.Level
	json       bool
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
	handlerOpt *slog.HandlerOptions
}

// Option configures the logger created by New.
type Option func(*config)

// New creates a logger. Without options it writes text at info level to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ho := cfg.handlerOpt
	if ho == nil {
		ho = &slog.HandlerOptions{}
	}
	ho.Level = cfg.level

	var h slog.Handler
	if cfg.json {
		h = slog.NewJSONHandler(cfg.output, ho)
	} else {
		h = slog.NewTextHandler(cfg.output, ho)
	}
	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}
	if len(cfg.extractors) > 0 {
		h = &contextHandler{Handler: h, extractors: cfg.extractors}
	}

	return slog.New(h)
}

// SetAsDefault installs l as the slog default logger.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// WithDevelopment configures text output at debug level.
func WithDevelopment(app string) Option {
	return func(c *config) {
		c.level = slog.LevelDebug
		c.json = false
		c.attrs = append(c.attrs, slog.String("app", app), slog.String("env", "development"))
	}
}

// WithStaging configures JSON output at debug level.
func WithStaging(app string) Option {
	return func(c *config) {
		c.level = slog.LevelDebug
		c.json = true
		c.attrs = append(c.attrs, slog.String("app", app), slog.String("env", "staging"))
	}
}

// WithProduction configures JSON output at info level.
func WithProduction(app string) Option {
	return func(c *config) {
		c.level = slog.LevelInfo
		c.json = true
		c.attrs = append(c.attrs, slog.String("app", app), slog.String("env", "production"))
	}
}

// WithEnvironment picks one of the presets above by name. Unknown names
// fall back to development.
func WithEnvironment(env, app string) Option {
	switch strings.ToLower(env) {
	case "production", "prod":
		return WithProduction(app)
	case "staging", "stage":
		return WithStaging(app)
	default:
		return WithDevelopment(app)
	}
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithLevelName sets the minimum level from its name ("debug", "info",
// "warn", "error"). Invalid names are ignored.
func WithLevelName(name string) Option {
	return func(c *config) {
		var lvl slog.Level
		if name == "" || lvl.UnmarshalText([]byte(name)) != nil {
			return
		}
		c.level = lvl
	}
}

// WithJSONFormatter switches to JSON output.
func WithJSONFormatter() Option {
	return func(c *config) {
		c.json = true
	}
}

// WithTextFormatter switches to text output.
func WithTextFormatter() Option {
	return func(c *config) {
		c.json = false
	}
}

// WithOutput sets the destination writer.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// WithHandlerOptions sets the slog handler options. The level still comes
// from WithLevel or the environment preset.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(c *config) {
		c.handlerOpt = opts
	}
}

// WithContextExtractors adds extractors run for every record logged with a
// context.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		c.extractors = append(c.extractors, extractors...)
	}
}

// contextHandler decorates a handler with attributes taken from the record's
// context.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		for _, extract := range h.extractors {
			if attr, ok := extract(ctx); ok {
				r.AddAttrs(attr)
			}
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
