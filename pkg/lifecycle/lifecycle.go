// Package lifecycle describes the capabilities needed to manage views and
// materialized views. Implementations live in internal packages, callers
// and tests depend only on these interfaces.
package lifecycle

import (
	"context"

	"github.com/gnames/gnviews/pkg/relation"
)

// RelationCatalog reads views, materialized views, their indexes and
// dependencies from the database catalog.
type RelationCatalog interface {
	// Relations returns views and materialized views visible in the
	// current search path, without relations owned by extensions.
	Relations(ctx context.Context) ([]relation.Relation, error)

	// Indexes returns non-primary indexes of a relation ordered by name.
	Indexes(ctx context.Context, name relation.Name) ([]relation.Index, error)

	// Dependencies returns edges between relations of the given kinds.
	// Without kinds both views and materialized views are used.
	Dependencies(ctx context.Context, kinds ...relation.Kind) ([]relation.Edge, error)
}

// FunctionCatalog reads user-defined functions from the database catalog.
type FunctionCatalog interface {
	// Functions returns SQL and PL/pgSQL functions visible in the current
	// search path, without aggregates and functions owned by extensions.
	Functions(ctx context.Context) ([]relation.Function, error)
}

// Statements is the mutating surface. Each call validates its options
// before any SQL is issued.
type Statements interface {
	FunctionStatements

	CreateView(ctx context.Context, name relation.Name, opts CreateOptions) error
	DropView(ctx context.Context, name relation.Name, opts DropOptions) error
	UpdateView(ctx context.Context, name relation.Name, opts UpdateOptions) error

	// ReplaceView with an empty `to` replaces the definition of a plain
	// view in place. Otherwise `from` takes the place of `to`.
	ReplaceView(ctx context.Context, from, to relation.Name, opts ReplaceOptions) error
	RenameView(ctx context.Context, from, to relation.Name, opts RenameOptions) error
}

// FunctionStatements manage functions with versioned definitions. Options
// are shared with views, materialized options are rejected.
type FunctionStatements interface {
	CreateFunction(ctx context.Context, name relation.Name, opts CreateOptions) error
	DropFunction(ctx context.Context, name relation.Name, opts DropOptions) error

	// UpdateFunction drops the function and creates the new version, so
	// the argument list may change between versions.
	UpdateFunction(ctx context.Context, name relation.Name, opts UpdateOptions) error
}

// Refresher refreshes materialized views.
type Refresher interface {
	RefreshMaterializedView(ctx context.Context, name relation.Name, opts RefreshOptions) error
}

// DefinitionSource resolves a relation name and a version to SQL.
type DefinitionSource interface {
	// Definition returns the SQL text. A missing or empty definition is an
	// error.
	Definition(name relation.Name, version int) (string, error)

	// Location describes where the definition is kept, for messages.
	Location(name relation.Name, version int) string
}

// Reporter receives informational progress messages.
type Reporter interface {
	Report(msg string)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(msg string)

// Report implements Reporter.
func (f ReporterFunc) Report(msg string) {
	f(msg)
}
