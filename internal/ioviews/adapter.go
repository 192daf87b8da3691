// Package ioviews runs the lifecycle of views and materialized views on
// PostgreSQL: create, update (in place or side by side), swap, rename,
// refresh and drop, keeping indexes of materialized views.
package ioviews

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gnames/gnviews/internal/iocatalog"
	"github.com/gnames/gnviews/internal/ioindex"
	"github.com/gnames/gnviews/pkg/db"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
	"github.com/gnames/gnviews/pkg/tempname"
)

const (
	// MinMaterializedVersion is the first server version with
	// materialized views (9.3).
	MinMaterializedVersion = 90300

	// MinConcurrentRefreshVersion is the first server version with
	// REFRESH MATERIALIZED VIEW CONCURRENTLY (9.4).
	MinConcurrentRefreshVersion = 90400
)

// Adapter is bound to one transaction. It checks the state of a relation
// before changing it, and reads the catalog again after each change.
type Adapter struct {
	conn          db.Conn
	catalog       *iocatalog.Catalog
	indexes       *ioindex.Manager
	reporter      lifecycle.Reporter
	names         *tempname.Generator
	serverVersion int
}

var _ lifecycle.Refresher = (*Adapter)(nil)

// New creates an Adapter. The serverVersion is server_version_num of the
// connected server.
func New(
	conn db.Conn,
	reporter lifecycle.Reporter,
	names *tempname.Generator,
	serverVersion int,
) *Adapter {
	return &Adapter{
		conn:          conn,
		catalog:       iocatalog.New(conn),
		indexes:       ioindex.New(conn, reporter, names),
		reporter:      reporter,
		names:         names,
		serverVersion: serverVersion,
	}
}

// Catalog returns the catalog reader of the adapter's transaction.
func (a *Adapter) Catalog() *iocatalog.Catalog {
	return a.catalog
}

// SupportsMaterializedViews reports whether the server has materialized
// views.
func (a *Adapter) SupportsMaterializedViews() bool {
	return a.serverVersion >= MinMaterializedVersion
}

// SupportsConcurrentRefresh reports whether materialized views can be
// refreshed concurrently.
func (a *Adapter) SupportsConcurrentRefresh() bool {
	return a.serverVersion >= MinConcurrentRefreshVersion
}

func (a *Adapter) exec(ctx context.Context, sql string) error {
	slog.Debug("Executing statement", "sql", sql)
	_, err := a.conn.Exec(ctx, sql)
	return err
}

func (a *Adapter) report(format string, args ...any) {
	a.reporter.Report(fmt.Sprintf(format, args...))
}

// requireAbsent fails when a view or materialized view with the name
// exists.
func (a *Adapter) requireAbsent(ctx context.Context, name relation.Name) error {
	_, ok, err := a.catalog.Lookup(ctx, name)
	if err != nil {
		return err
	}
	if ok {
		return lifecycle.RelationExistsError(name)
	}
	return nil
}

// require returns the relation when it exists and has the given kind.
func (a *Adapter) require(
	ctx context.Context,
	name relation.Name,
	kind relation.Kind,
) (relation.Relation, error) {
	rel, ok, err := a.catalog.Lookup(ctx, name)
	if err != nil {
		return rel, err
	}
	if !ok || rel.Kind() != kind {
		return rel, lifecycle.RelationNotFoundError(name, kind)
	}
	return rel, nil
}

// renameTarget checks that a rename keeps the relation in its schema and
// returns the new local name.
func renameTarget(rel relation.Relation, to relation.Name) (string, error) {
	if to.Schema != "" && to.Schema != rel.Name.Schema {
		return "", relation.InvalidNameError(
			to.Key(), "rename cannot move a relation to another schema",
		)
	}
	return relation.QuoteIdent(to.Local), nil
}

// body removes trailing semicolons, so the query can be embedded into
// CREATE statements.
func body(sql string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(sql), ";"))
}
