// Package migrations holds goose Go-migrations for the inbox schema.
// Importing it registers every migration with goose.
package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

// Dir is where goose looks for migration sources, relative to the working
// directory.
const Dir = "migrations"

// Up applies all pending migrations.
func Up(db *sql.DB) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db, Dir)
}

// Status prints the applied/pending state of every migration.
func Status(db *sql.DB) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Status(db, Dir)
}
