package tasktrack

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

// Migrate applies all pending SQL migrations from the embedded filesystem.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "data/sql/migrations")
}
