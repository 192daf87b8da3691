// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnviews/internal/ioconfig"
	"github.com/gnames/gnviews/internal/iodb"
	"github.com/gnames/gnviews/pkg/config"
	"github.com/gnames/gnviews/pkg/db"
	"github.com/jackc/pgx/v5"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "gnviews_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It loads the standard config (from file, env or defaults) and overrides
// the database name to TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test in short mode")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()
	if home, err := os.UserHomeDir(); err == nil {
		if loaded, err := ioconfig.Load(home); err == nil {
			cfg = loaded
		}
	}

	// Always use test database for safety
	cfg.Database.Database = TestDatabaseName

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// Connect opens a connection pool to the test database. The pool is closed
// when the test finishes.
func Connect(t *testing.T) db.Operator {
	t.Helper()

	op := iodb.NewPgxOperator()
	err := op.Connect(context.Background(), GetTestDatabaseConfig())
	if err != nil {
		t.Fatalf("Failed to connect to %s: %v", TestDatabaseName, err)
	}
	t.Cleanup(func() { _ = op.Close() })
	return op
}

// BeginTx starts a transaction that is rolled back when the test
// finishes, so integration tests leave no relations behind.
func BeginTx(t *testing.T, op db.Operator) pgx.Tx {
	t.Helper()

	ctx := context.Background()
	tx, err := op.Pool().Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(ctx) })
	return tx
}

// WriteDefinitions writes versioned definition files into a temporary
// directory and returns it. Keys are file names like "reports_v01.sql".
func WriteDefinitions(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	return dir
}
