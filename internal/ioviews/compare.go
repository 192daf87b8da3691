package ioviews

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/gnviews/internal/iocatalog"
	"github.com/gnames/gnviews/pkg/relation"
)

// ViewMatchesDefinition compares the live definition of a relation with
// candidate SQL. The candidate is rendered by the server through a
// temporary view inside a savepoint that is always rolled back, so
// formatting differences do not count as changes. The live definition is
// returned for error messages.
func (a *Adapter) ViewMatchesDefinition(
	ctx context.Context,
	name relation.Name,
	sql string,
) (bool, string, error) {
	live, err := a.catalog.Definition(ctx, name)
	if err != nil {
		return false, "", err
	}

	sp, err := a.conn.Begin(ctx)
	if err != nil {
		return false, live, err
	}
	defer func() { _ = sp.Rollback(ctx) }()

	tmp := relation.Name{
		Schema: "pg_temp",
		Local:  a.names.Generate(name.Local, "cmp"),
	}
	q := fmt.Sprintf("CREATE TEMPORARY VIEW %s AS %s",
		relation.QuoteIdent(tmp.Local), body(sql))
	if _, err = sp.Exec(ctx, q); err != nil {
		return false, live, err
	}

	candidate, err := iocatalog.New(sp).Definition(ctx, tmp)
	if err != nil {
		return false, live, err
	}

	return strings.TrimSpace(candidate) == strings.TrimSpace(live), live, nil
}
