package server

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/streaminghub/catalog/core/logger"
)

// Server runs one http.Server at a time with graceful shutdown.
// Safe for concurrent use.
type Server struct {
	addr     string
	log      *slog.Logger
	shutdown time.Duration
	tls      *tls.Config
	// template holds the timeouts copied into every started http.Server.
	template http.Server

	mu       sync.RWMutex
	srv      *http.Server
	listener net.Listener
}

// Option configures a Server. Zero durations and sizes are ignored.
type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

func WithTLS(cfg *tls.Config) Option {
	return func(s *Server) { s.tls = cfg }
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdown = d
		}
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.template.ReadTimeout = d
		}
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.template.WriteTimeout = d
		}
	}
}

func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.template.IdleTimeout = d
		}
	}
}

func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.template.MaxHeaderBytes = n
		}
	}
}

// New creates a server for addr. Logging is discarded unless WithLogger is
// given.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdown: DefaultShutdownTimeout,
		template: http.Server{
			ReadTimeout:    DefaultReadTimeout,
			WriteTimeout:   DefaultWriteTimeout,
			IdleTimeout:    DefaultIdleTimeout,
			MaxHeaderBytes: DefaultMaxHeaderBytes,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the bound address while running, so ":0" shows the real
// port, and the configured address otherwise.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Start binds the listener, then serves until ctx is done or serving fails.
// Bind errors are returned as ErrListen before anything is served. It
// returns ctx.Err() on cancellation and leaves shutdown to Stop.
func (s *Server) Start(ctx context.Context, h http.Handler) error {
	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrListen, err)
	}
	if s.tls != nil {
		ln = tls.NewListener(ln, s.tls)
	}

	srv := &http.Server{
		Handler:        h,
		ReadTimeout:    s.template.ReadTimeout,
		WriteTimeout:   s.template.WriteTimeout,
		IdleTimeout:    s.template.IdleTimeout,
		MaxHeaderBytes: s.template.MaxHeaderBytes,
		TLSConfig:      s.tls,
		ErrorLog:       slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}
	s.srv, s.listener = srv, ln
	s.mu.Unlock()

	s.log.InfoContext(ctx, "server listening",
		logger.Component("server"),
		logger.Key("addr", ln.Addr().String()),
		logger.Key("tls", s.tls != nil),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.reset()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop shuts the server down, waiting at most the shutdown timeout for
// in-flight requests. It is a no-op when the server is not running.
func (s *Server) Stop() error {
	s.mu.RLock()
	srv := s.srv
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}
	defer s.reset()

	s.log.Info("server shutting down",
		logger.Component("server"),
		logger.Key("timeout", s.shutdown),
	)

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.log.Error("server shutdown failed", logger.Component("server"), logger.Error(err))
		return errors.Join(ErrShutdown, err)
	}
	s.log.Info("server stopped", logger.Component("server"))
	return nil
}

// Run adapts the server to errgroup.Go. The returned function serves until
// ctx is done, then stops gracefully. Cancellation is not an error.
func (s *Server) Run(ctx context.Context, h http.Handler) func() error {
	return func() error {
		err := s.Start(ctx, h)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return s.Stop()
		}
		return err
	}
}

func (s *Server) reset() {
	s.mu.Lock()
	s.srv, s.listener = nil, nil
	s.mu.Unlock()
}
