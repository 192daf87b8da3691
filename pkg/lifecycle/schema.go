package lifecycle

import "context"

// SchemaManager keeps the tables gnviews owns, currently only the command
// journal. Migrate is idempotent and safe to run on every start.
type SchemaManager interface {
	// Migrate creates or updates the journal table with GORM AutoMigrate.
	Migrate(ctx context.Context) error
}
