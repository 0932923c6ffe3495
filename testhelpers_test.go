package tasktrack_test

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/chun-mura/tasktrack"
)

// newTestDB opens a per-test in-memory database with all migrations
// applied. The database name is derived from the test name so tests never
// share state.
func newTestDB(t *testing.T) (*bun.DB, tasktrack.RepositoryManager) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqldb.Close() })

	require.NoError(t, tasktrack.Migrate(context.Background(), sqldb))

	db := bun.NewDB(sqldb, sqlitedialect.New())

	return db, tasktrack.NewRepositoryManager(db)
}
