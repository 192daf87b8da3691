// Package iocatalog reads views, materialized views, their indexes and
// dependencies, and user-defined functions from pg_catalog. Query
// failures are returned unchanged.
package iocatalog

import (
	"context"
	"errors"
	"strings"

	"github.com/gnames/gnviews/pkg/db"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
	"github.com/jackc/pgx/v5"
)

// Catalog implements lifecycle.RelationCatalog. It keeps no state between
// calls, every call reads the catalog again.
type Catalog struct {
	conn db.Conn
}

var (
	_ lifecycle.RelationCatalog = (*Catalog)(nil)
	_ lifecycle.FunctionCatalog = (*Catalog)(nil)
)

// New creates a Catalog reading through conn. Inside a lifecycle operation
// conn is the operation's transaction, so the catalog sees its changes.
func New(conn db.Conn) *Catalog {
	return &Catalog{conn: conn}
}

// Relations returns views and materialized views ordered by schema and
// name.
func (c *Catalog) Relations(ctx context.Context) ([]relation.Relation, error) {
	rows, err := c.conn.Query(ctx, relationsSQL)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanRelation)
}

// Lookup finds a single view or materialized view by name. The name is
// resolved with the search path when it has no schema.
func (c *Catalog) Lookup(
	ctx context.Context,
	name relation.Name,
) (relation.Relation, bool, error) {
	rows, err := c.conn.Query(ctx, lookupSQL, name.Qualified())
	if err != nil {
		return relation.Relation{}, false, err
	}

	res, err := pgx.CollectExactlyOneRow(rows, scanRelation)
	if errors.Is(err, pgx.ErrNoRows) {
		return relation.Relation{}, false, nil
	}
	if err != nil {
		return relation.Relation{}, false, err
	}
	return res, true, nil
}

func scanRelation(row pgx.CollectableRow) (relation.Relation, error) {
	var res relation.Relation
	err := row.Scan(
		&res.Name.Schema, &res.Name.Local, &res.Definition,
		&res.Materialized, &res.Populated,
	)
	res.Definition = strings.TrimSpace(res.Definition)
	return res, err
}

// Indexes returns non-primary indexes of a relation ordered by index
// name. An unknown relation has no indexes.
func (c *Catalog) Indexes(
	ctx context.Context,
	name relation.Name,
) ([]relation.Index, error) {
	rows, err := c.conn.Query(ctx, indexesSQL, name.Qualified())
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (relation.Index, error) {
		var res relation.Index
		err := row.Scan(
			&res.Owner.Schema, &res.Owner.Local,
			&res.IndexName, &res.Definition,
		)
		return res, err
	})
}

// Dependencies returns dependency edges between relations of the given
// kinds. Without kinds views and materialized views are both used.
func (c *Catalog) Dependencies(
	ctx context.Context,
	kinds ...relation.Kind,
) ([]relation.Edge, error) {
	if len(kinds) == 0 {
		kinds = []relation.Kind{relation.KindView, relation.KindMaterialized}
	}
	kk := make([]string, len(kinds))
	for i, k := range kinds {
		kk[i] = string(k)
	}

	rows, err := c.conn.Query(ctx, dependenciesSQL, kk)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (relation.Edge, error) {
		var res relation.Edge
		err := row.Scan(
			&res.Dependent.Schema, &res.Dependent.Local,
			&res.Dependency.Schema, &res.Dependency.Local,
		)
		return res, err
	})
}

// Definition returns the live definition of a relation as the server
// renders it.
func (c *Catalog) Definition(
	ctx context.Context,
	name relation.Name,
) (string, error) {
	var res *string
	err := c.conn.QueryRow(ctx, definitionSQL, name.Qualified()).Scan(&res)
	if err != nil {
		return "", err
	}
	if res == nil {
		return "", lifecycle.RelationNotFoundError(name, relation.KindView)
	}
	return strings.TrimSpace(*res), nil
}

// Size returns the total disk size of a relation with its indexes.
func (c *Catalog) Size(ctx context.Context, name relation.Name) (int64, error) {
	var res *int64
	err := c.conn.QueryRow(ctx, sizeSQL, name.Qualified()).Scan(&res)
	if err != nil {
		return 0, err
	}
	if res == nil {
		return 0, lifecycle.RelationNotFoundError(name, relation.KindMaterialized)
	}
	return *res, nil
}

// Functions returns user-defined functions ordered by schema, name and
// arguments.
func (c *Catalog) Functions(ctx context.Context) ([]relation.Function, error) {
	rows, err := c.conn.Query(ctx, functionsSQL)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanFunction)
}

// LookupFunctions returns all overloads of a function name.
func (c *Catalog) LookupFunctions(
	ctx context.Context,
	name relation.Name,
) ([]relation.Function, error) {
	rows, err := c.conn.Query(ctx, lookupFunctionsSQL, name.Local, name.Schema)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanFunction)
}

func scanFunction(row pgx.CollectableRow) (relation.Function, error) {
	var res relation.Function
	err := row.Scan(
		&res.Name.Schema, &res.Name.Local, &res.Arguments, &res.Definition,
	)
	res.Definition = strings.TrimSpace(res.Definition)
	return res, err
}
