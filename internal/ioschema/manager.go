// Package ioschema implements SchemaManager interface for
// the journal table. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/gnviews/pkg/db"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/schema"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Migrate creates or updates the journal table.
func (m *manager) Migrate(ctx context.Context) error {
	gormDB, err := OpenGORM(m.operator.Pool())
	if err != nil {
		return err
	}

	if err = schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}
	slog.Info("Journal table is ready", "table", schema.JournalTable)
	return nil
}

// OpenGORM wraps a pgx pool into a GORM connection. GORM's own logger is
// silenced, statements are logged by gnviews.
func OpenGORM(pool *pgxpool.Pool) (*gorm.DB, error) {
	if pool == nil {
		return nil, NotConnectedError()
	}

	db := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}
