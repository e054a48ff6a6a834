package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/janisto/huma-feed/internal/platform/postgres"
)

// PostgresEnv names the variable holding the scratch database DSN.
const PostgresEnv = "TEST_DATABASE_URL"

// NewPostgresPool connects to the database in TEST_DATABASE_URL, migrates it
// and truncates both tables. The test is skipped when the variable is unset.
func NewPostgresPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv(PostgresEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresEnv)
	}

	ctx := context.Background()
	pool, err := postgres.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}
	truncate := func() {
		if _, err := pool.Exec(ctx, "TRUNCATE posts, profiles"); err != nil {
			t.Errorf("failed to truncate: %v", err)
		}
	}
	truncate()
	t.Cleanup(func() {
		truncate()
		pool.Close()
	})
	return pool
}
