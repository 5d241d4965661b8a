package server

import (
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"
)

// Defaults applied by New and DefaultConfig.
const (
	DefaultAddr            = ":3000"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20
)

// Config is loaded from the environment with core/config.
type Config struct {
	Addr string `env:"SERVER_ADDR" envDefault:":3000"`
	// Port replaces the port of Addr when set. Hosting platforms pass the
	// listen port this way.
	Port string `env:"PORT"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MaxHeaderBytes  int           `env:"SERVER_MAX_HEADER_BYTES" envDefault:"1048576"`

	// TLS is enabled only when both files are set.
	TLSCertFile string `env:"SERVER_TLS_CERT_FILE"`
	TLSKeyFile  string `env:"SERVER_TLS_KEY_FILE"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Addr:            DefaultAddr,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		IdleTimeout:     DefaultIdleTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		MaxHeaderBytes:  DefaultMaxHeaderBytes,
	}
}

// ListenAddr returns Addr with Port applied.
func (c Config) ListenAddr() (string, error) {
	if c.Port == "" {
		if c.Addr == "" {
			return "", ErrMissingAddress
		}
		return c.Addr, nil
	}

	if n, err := strconv.Atoi(c.Port); err != nil || n < 0 || n > 65535 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPort, c.Port)
	}
	host := ""
	if c.Addr != "" {
		h, _, err := net.SplitHostPort(c.Addr)
		if err != nil {
			return "", fmt.Errorf("server: parse address %q: %w", c.Addr, err)
		}
		host = h
	}
	return net.JoinHostPort(host, c.Port), nil
}

// NewFromConfig creates a Server from cfg. Zero values keep the defaults
// and opts are applied last.
func NewFromConfig(cfg Config, opts ...Option) (*Server, error) {
	addr, err := cfg.ListenAddr()
	if err != nil {
		return nil, err
	}

	fromCfg := []Option{
		WithReadTimeout(cfg.ReadTimeout),
		WithWriteTimeout(cfg.WriteTimeout),
		WithIdleTimeout(cfg.IdleTimeout),
		WithShutdownTimeout(cfg.ShutdownTimeout),
		WithMaxHeaderBytes(cfg.MaxHeaderBytes),
	}

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.TLSCertFile, cfg.TLSKeyFile)
		if err != nil {
			return nil, fmt.Errorf("server: load tls key pair: %w", err)
		}
		fromCfg = append(fromCfg, WithTLS(&tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}))
	}

	return New(addr, append(fromCfg, opts...)...), nil
}
