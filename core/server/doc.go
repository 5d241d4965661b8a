// Package server wraps http.Server with graceful shutdown and production
// defaults.
//
//	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	return g.Wait()
//
// The listener is bound inside Start, before serving begins, so an address
// already in use is reported as ErrListen instead of being lost in a
// goroutine. Run returns nil after a shutdown caused by context
// cancellation.
package server
