package repository

import (
	"embed"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

// Dialect selects placeholder syntax and the migration set.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect maps a DB_DRIVER value to a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pg":
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDialect, driver)
}

//go:embed migrations
var migrations embed.FS

// Migrations returns the goose migration files for d.
func Migrations(d Dialect) (fs.FS, error) {
	switch d {
	case DialectSQLite, DialectPostgres:
		return fs.Sub(migrations, "migrations/"+string(d))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, d)
}

// rebind rewrites ? placeholders to $1, $2, ... Queries in this package
// never contain a literal question mark.
func rebind(q string) string {
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] != '?' {
			b.WriteByte(q[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
