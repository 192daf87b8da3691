// Package relation holds read projections of views, materialized views and
// their indexes as the database catalog reports them.
package relation

// Kind is the pg_class.relkind of a relation.
type Kind string

const (
	// KindView is a plain view.
	KindView Kind = "v"

	// KindMaterialized is a materialized view.
	KindMaterialized Kind = "m"
)

// Relation is a snapshot of a view or materialized view. It is recomputed
// from the catalog every time it is needed.
type Relation struct {
	// Name of the relation.
	Name Name

	// Definition is the query as rendered by pg_get_viewdef.
	Definition string

	// Materialized is true for materialized views.
	Materialized bool

	// Populated is false for materialized views created WITH NO DATA
	// and never refreshed. Plain views are always populated.
	Populated bool
}

// Kind returns the relkind of the relation.
func (r Relation) Kind() Kind {
	if r.Materialized {
		return KindMaterialized
	}
	return KindView
}

// Edge says that Dependent's definition references Dependency.
type Edge struct {
	Dependent  Name
	Dependency Name
}
