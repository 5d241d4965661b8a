// Package sqlite opens the local catalog database with the pure Go
// modernc.org/sqlite driver and applies goose migrations to it.
//
//	db, err := sqlite.Open(ctx, sqlite.Config{Path: "./data/db.sqlite"})
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	if err := sqlite.Migrate(ctx, db, cfg, migrations, log); err != nil {
//		return err
//	}
//
// Use sqlite.MemoryPath for throwaway databases in tests.
package sqlite
