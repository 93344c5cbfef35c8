//go:build integration

package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresConfig starts a throwaway Postgres container and returns a test
// configuration pointing at it. The container stops when t finishes.
func PostgresConfig(t *testing.T) *config.App {
	t.Helper()
	ctx := context.Background()

	pg, err := tcpostgres.Run(
		ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("fintrack"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres connection string: %v", err)
	}

	cfg := TestConfig()
	cfg.DB.Url = dsn
	cfg.DB.MaxOpenConns = 5
	cfg.DB.MaxIdleConns = 2
	return cfg
}
