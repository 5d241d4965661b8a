// Package pg manages PostgreSQL connectivity for the catalog store. It is
// used when DB_DRIVER=postgres, typically against a hosted Supabase
// database.
//
//   - Connect creates a pgx connection pool, retrying with a doubling interval.
//   - Migrate applies embedded goose migrations through a database/sql wrapper.
//   - Healthcheck returns a ping function for the readiness probe.
//   - IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolationError and
//     IsTxClosedError classify driver errors.
//
// Configuration comes from the environment:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg) // PG_CONN_URL is required
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, migrations, log); err != nil {
//		return err
//	}
//
// The repository layer talks to the pool through stdlib.OpenDBFromPool so
// the same SQL code serves both postgres and sqlite.
package pg
