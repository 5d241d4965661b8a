// Package repository implements catalog.Store with plain SQL over
// database/sql. Queries are written with ? placeholders and rebound to
// $n for postgres, so one implementation serves both the local sqlite
// database and a hosted postgres one.
//
// Embedded goose migrations for each dialect are exposed through
// Migrations and applied by the integration/database packages.
package repository
