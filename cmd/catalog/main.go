package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"github.com/streaminghub/catalog/catalog"
	"github.com/streaminghub/catalog/core/config"
	"github.com/streaminghub/catalog/core/health"
	"github.com/streaminghub/catalog/core/logger"
	"github.com/streaminghub/catalog/core/metrics"
	"github.com/streaminghub/catalog/core/server"
	"github.com/streaminghub/catalog/middleware"
	"github.com/streaminghub/catalog/repository"
)

type cli struct {
	Serve   serveCmd   `cmd:"" default:"1" help:"Run the HTTP server (default)."`
	Migrate migrateCmd `cmd:"" help:"Apply database migrations and exit."`
}

type serveCmd struct{}

func (serveCmd) Run(ctx context.Context, log *slog.Logger, app *appConfig) error {
	var site siteConfig
	if err := config.Load(&site); err != nil {
		return err
	}
	layout, err := site.layout()
	if err != nil {
		return fmt.Errorf("invalid site layout: %w", err)
	}

	var srvCfg server.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}

	db, err := openDatabase(ctx, *app, log)
	if err != nil {
		return err
	}
	defer db.close()

	repo, err := repository.New(db.db, db.dialect)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if app.MetricsEnabled {
		m = metrics.New()
	}

	h := newRouter(routerDeps{
		log:     log,
		app:     *app,
		layout:  layout,
		svc:     catalog.NewService(repo, catalog.WithLogger(log)),
		checks:  []health.Check{db.check},
		metrics: m,
	})

	srv, err := server.NewFromConfig(srvCfg, server.WithLogger(log))
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "site layout loaded",
		logger.Component("static"),
		logger.Key("roots", layout.Roots),
		logger.Key("asset_roots", layout.AssetRoots),
		logger.Key("protected_prefix", layout.Protected.Prefix),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(ctx, h))
	return g.Wait()
}

type migrateCmd struct{}

func (migrateCmd) Run(ctx context.Context, log *slog.Logger, app *appConfig) error {
	db, err := openDatabase(ctx, *app, log)
	if err != nil {
		return err
	}
	db.close()
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var app appConfig
	config.MustLoad(&app)

	log := logger.New(
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithLevelName(app.LogLevel),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	)
	logger.SetAsDefault(log)

	var c cli
	kctx := kong.Parse(&c,
		kong.Name("catalog"),
		kong.Description("Catalog site server: static pages with URL rewriting plus a JSON API."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(log, &app),
	)

	err := kctx.Run()
	stop()
	if err != nil {
		log.Error("command failed", logger.Component("cli"), logger.Error(err))
		os.Exit(1)
	}
}
