package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/streaminghub/catalog/core/handler"
	"github.com/streaminghub/catalog/core/logger"
	"github.com/streaminghub/catalog/core/response"
)

// CheckTimeout bounds a single readiness pass.
const CheckTimeout = 2 * time.Second

// Check reports whether one dependency is usable.
type Check func(context.Context) error

// Liveness answers "ALIVE" while the process can serve requests.
func Liveness(*http.Request) handler.Response {
	return response.String("ALIVE")
}

// Readiness answers "READY" when every check passes and 503 otherwise.
// Checks run concurrently and share CheckTimeout.
func Readiness(log *slog.Logger, checks ...Check) handler.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(r *http.Request) handler.Response {
		ctx, cancel := context.WithTimeout(r.Context(), CheckTimeout)
		defer cancel()

		g, gctx := errgroup.WithContext(ctx)
		for _, check := range checks {
			check := check
			g.Go(func() error { return check(gctx) })
		}
		if err := g.Wait(); err != nil {
			log.ErrorContext(r.Context(), "readiness check failed",
				logger.Component("health"),
				logger.Error(err),
			)
			return response.Error(response.ErrServiceUnavailable)
		}
		return response.String("READY")
	}
}
