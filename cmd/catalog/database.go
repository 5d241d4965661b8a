package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/streaminghub/catalog/core/config"
	"github.com/streaminghub/catalog/core/health"
	"github.com/streaminghub/catalog/core/logger"
	"github.com/streaminghub/catalog/integration/database/pg"
	"github.com/streaminghub/catalog/integration/database/sqlite"
	"github.com/streaminghub/catalog/repository"
)

type database struct {
	db      *sql.DB
	dialect repository.Dialect
	check   health.Check
	close   func()
}

// openDatabase connects to the configured driver and applies migrations.
func openDatabase(ctx context.Context, app appConfig, log *slog.Logger) (*database, error) {
	dialect, err := repository.ParseDialect(app.DBDriver)
	if err != nil {
		return nil, err
	}
	migrations, err := repository.Migrations(dialect)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case repository.DialectPostgres:
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, cfg, migrations, log); err != nil {
			pool.Close()
			return nil, err
		}
		db := stdlib.OpenDBFromPool(pool)
		log.InfoContext(ctx, "database ready", logger.Component("database"), logger.Driver(string(dialect)))
		return &database{
			db:      db,
			dialect: dialect,
			check:   pg.Healthcheck(pool),
			close: func() {
				_ = db.Close()
				pool.Close()
			},
		}, nil

	default:
		var cfg sqlite.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		db, err := sqlite.Open(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := sqlite.Migrate(ctx, db, cfg, migrations, log); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.InfoContext(ctx, "database ready",
			logger.Component("database"),
			logger.Driver(string(dialect)),
			logger.Path(cfg.Path),
		)
		return &database{
			db:      db,
			dialect: dialect,
			check:   sqlite.Healthcheck(db),
			close:   func() { _ = db.Close() },
		}, nil
	}
}
