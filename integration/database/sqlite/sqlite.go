package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/streaminghub/catalog/core/logger"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Predefined errors.
var (
	ErrFailedToOpenDB          = errors.New("failed to open sqlite database")
	ErrHealthcheckFailed       = errors.New("healthcheck failed, sqlite database is not available")
	ErrFailedToApplyMigrations = errors.New("failed to apply migrations")
)

// Config holds the sqlite settings.
type Config struct {
	Path            string        `env:"SQLITE_PATH" envDefault:"./data/db.sqlite"`
	BusyTimeout     time.Duration `env:"SQLITE_BUSY_TIMEOUT" envDefault:"5s"`
	MigrationsTable string        `env:"SQLITE_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}

// Open opens the database file, creating its directory when needed. The
// pool is limited to one connection: sqlite serializes writers anyway and
// an in-memory database lives only as long as its connection.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.Path == "" {
		cfg.Path = MemoryPath
	}
	if cfg.Path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, errors.Join(ErrFailedToOpenDB, err)
		}
	}

	db, err := sql.Open("sqlite", dsn(cfg))
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDB, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrFailedToOpenDB, err)
	}
	return db, nil
}

func dsn(cfg Config) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	if cfg.BusyTimeout > 0 {
		q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()))
	}
	if cfg.Path != MemoryPath {
		q.Add("_pragma", "journal_mode(WAL)")
	}
	return cfg.Path + "?" + q.Encode()
}

// Migrate applies the goose migrations found in fsys.
func Migrate(ctx context.Context, db *sql.DB, cfg Config, fsys fs.FS, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	table := cfg.MigrationsTable
	if table == "" {
		table = "schema_migrations"
	}
	store, err := database.NewStore(database.DialectSQLite3, table)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	provider, err := goose.NewProvider("", db, fsys, goose.WithStore(store))
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}
	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			logger.Component("sqlite"),
			logger.Key("version", r.Source.Version),
			logger.Key("source", r.Source.Path),
			logger.Duration(r.Duration),
		)
	}
	log.InfoContext(ctx, "migrations up to date", logger.Component("sqlite"), logger.Count("applied", len(results)))
	return nil
}

// Healthcheck returns a function pinging the database, suitable for readiness probes.
func Healthcheck(db *sql.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// IsUniqueViolation reports a UNIQUE or PRIMARY KEY constraint failure.
func IsUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
