package logger

import (
	"log/slog"
	"time"
)

// Helpers that take an error, a string id or an any value return an empty
// Attr for nil or "" so callers never need a guard. slog drops empty attrs.

func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Key is the escape hatch for attributes without a helper.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Component names the package or subsystem writing the line.
func Component(name string) slog.Attr { return slog.String("component", name) }

func Event(name string) slog.Attr { return slog.String("event", name) }
func Result(result string) slog.Attr { return slog.String("result", result) }
func Driver(name string) slog.Attr { return slog.String("driver", name) }
func Count(key string, n int) slog.Attr { return slog.Int(key, n) }

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }

// Request log keys.

func Method(method string) slog.Attr { return slog.String("method", method) }
func Path(path string) slog.Attr { return slog.String("path", path) }
func StatusCode(code int) slog.Attr { return slog.Int("status_code", code) }
func BytesOut(n int64) slog.Attr { return slog.Int64("bytes_out", n) }
func Latency(d time.Duration) slog.Attr { return slog.Duration("latency", d) }

func RequestID(id string) slog.Attr { return nonEmpty("request_id", id) }
func ClientIP(ip string) slog.Attr { return nonEmpty("client_ip", ip) }
func UserAgent(ua string) slog.Attr { return nonEmpty("user_agent", ua) }

func nonEmpty(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}
