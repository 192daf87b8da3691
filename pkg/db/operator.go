package db

import (
	"context"

	"github.com/gnames/gnviews/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes the pgxpool.Pool
// for components that open their own transactions.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool. Lifecycle operations use it
	// to begin the transaction they run in.
	Pool() *pgxpool.Pool

	// ServerVersion returns server_version_num, for example 160002.
	ServerVersion(ctx context.Context) (int, error)
}
