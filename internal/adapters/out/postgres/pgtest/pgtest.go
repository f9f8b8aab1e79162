// Package pgtest starts a throwaway PostgreSQL container with the production
// schema applied. Used by the integration suites only.
package pgtest

import (
	"context"
	"testing"
	"time"

	adapter "marketplace/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Database is a migrated database inside a running container.
type Database struct {
	DB        *gorm.DB
	URL       string
	container *postgres.PostgresContainer
}

// Start runs postgres:15-alpine and applies the migrations.
func Start(ctx context.Context, t *testing.T) *Database {
	t.Helper()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("connection string: %v", err)
	}

	if err = adapter.Migrate(url); err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("migrate: %v", err)
	}

	db, err := adapter.Open(url)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("open: %v", err)
	}

	return &Database{DB: db, URL: url, container: container}
}

// Truncate empties every table.
func (d *Database) Truncate(t *testing.T) {
	t.Helper()
	if err := d.DB.Exec(
		"TRUNCATE TABLE location_orders, product_orders, shop_orders, orders, products, shops, addresses, users RESTART IDENTITY CASCADE",
	).Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

// Stop terminates the container.
func (d *Database) Stop(t *testing.T) {
	t.Helper()
	if d == nil || d.container == nil {
		return
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if err := d.container.Terminate(context.Background()); err != nil {
		t.Logf("terminate postgres container: %v", err)
	}
}
