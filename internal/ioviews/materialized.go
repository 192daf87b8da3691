package ioviews

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
)

// CreateMaterializedView creates a materialized view that must not exist
// yet. With CopyIndexesFrom the indexes of that relation are recreated on
// the new one, failures are reported and skipped.
func (a *Adapter) CreateMaterializedView(
	ctx context.Context,
	name relation.Name,
	sql string,
	opts lifecycle.MaterializedOptions,
) error {
	if !a.SupportsMaterializedViews() {
		return lifecycle.MaterializedViewsUnsupportedError(a.serverVersion)
	}
	if err := a.requireAbsent(ctx, name); err != nil {
		return err
	}

	if err := a.createMaterialized(ctx, name, sql, opts.NoData); err != nil {
		return err
	}

	if opts.CopyIndexesFrom == "" {
		return nil
	}
	from, err := relation.ParseName(opts.CopyIndexesFrom)
	if err != nil {
		return err
	}
	_, err = a.indexes.Copy(ctx, from, name)
	return err
}

func (a *Adapter) createMaterialized(
	ctx context.Context,
	name relation.Name,
	sql string,
	noData bool,
) error {
	q := fmt.Sprintf("CREATE MATERIALIZED VIEW %s AS %s", name.Qualified(), body(sql))
	if noData {
		q += " WITH NO DATA"
	}
	return a.exec(ctx, q)
}

// UpdateMaterializedView replaces the definition of an existing
// materialized view. By default indexes are captured, the view is dropped
// and created again, and the indexes are reapplied. SideBySide builds the
// new version next to the old one and swaps it in.
func (a *Adapter) UpdateMaterializedView(
	ctx context.Context,
	name relation.Name,
	sql string,
	opts lifecycle.MaterializedOptions,
) error {
	if opts.NoData && opts.SideBySide {
		return lifecycle.OptionsConflictError("update", "no_data", "side_by_side")
	}
	if !a.SupportsMaterializedViews() {
		return lifecycle.MaterializedViewsUnsupportedError(a.serverVersion)
	}
	rel, err := a.require(ctx, name, relation.KindMaterialized)
	if err != nil {
		return err
	}

	if opts.SideBySide {
		return a.sideBySide(ctx, rel.Name, sql)
	}

	indexes, err := a.indexes.Snapshot(ctx, rel.Name)
	if err != nil {
		return err
	}
	if err = a.exec(ctx, "DROP MATERIALIZED VIEW "+rel.Name.Qualified()); err != nil {
		return err
	}
	if err = a.createMaterialized(ctx, rel.Name, sql, opts.NoData); err != nil {
		return err
	}
	a.indexes.Reapply(ctx, indexes)
	return nil
}

func (a *Adapter) sideBySide(ctx context.Context, name relation.Name, sql string) error {
	tmp := name.Sibling(a.names.Generate(name.Local, "new"))

	if err := a.createMaterialized(ctx, tmp, sql, false); err != nil {
		return err
	}
	if size, err := a.catalog.Size(ctx, tmp); err == nil {
		a.report("temporary materialized view '%s' has been created (%s)",
			tmp.Key(), humanize.Bytes(uint64(size)))
	} else {
		a.report("temporary materialized view '%s' has been created", tmp.Key())
	}

	if _, err := a.indexes.Migrate(ctx, name, tmp); err != nil {
		return err
	}

	if err := a.exec(ctx, "DROP MATERIALIZED VIEW "+name.Qualified()); err != nil {
		return err
	}
	a.report("materialized view '%s' has been dropped", name.Key())

	q := fmt.Sprintf("ALTER MATERIALIZED VIEW %s RENAME TO %s",
		tmp.Qualified(), relation.QuoteIdent(name.Local))
	if err := a.exec(ctx, q); err != nil {
		return err
	}
	a.report("temporary materialized view '%s' has been renamed to '%s'",
		tmp.Key(), name.Key())
	return nil
}

// SwapRelation puts `from` in place of `to`. An existing `to` is dropped,
// `from` is renamed, and with renameIndexes its indexes follow the new
// name.
func (a *Adapter) SwapRelation(
	ctx context.Context,
	from, to relation.Name,
	materialized, renameIndexes bool,
) error {
	kind := relation.KindView
	if materialized {
		kind = relation.KindMaterialized
		if !a.SupportsMaterializedViews() {
			return lifecycle.MaterializedViewsUnsupportedError(a.serverVersion)
		}
	}

	rel, err := a.require(ctx, from, kind)
	if err != nil {
		return err
	}
	newLocal, err := renameTarget(rel, to)
	if err != nil {
		return err
	}
	dest := rel.Name.Sibling(to.Local)

	old, ok, err := a.catalog.Lookup(ctx, dest)
	if err != nil {
		return err
	}
	if ok {
		if err = a.drop(ctx, old); err != nil {
			return err
		}
		a.report("%s '%s' has been dropped", kindName(old.Kind()), old.Name.Key())
	}

	q := fmt.Sprintf("ALTER %s %s RENAME TO %s",
		kindSQL(kind), rel.Name.Qualified(), newLocal)
	if err = a.exec(ctx, q); err != nil {
		return err
	}
	a.report("%s '%s' has been renamed to '%s'",
		kindName(kind), rel.Name.Key(), dest.Key())

	if materialized && renameIndexes {
		return a.indexes.RenameFor(ctx, dest, rel.Name.Local, dest.Local)
	}
	return nil
}

// RenameMaterializedView renames a materialized view without touching its
// definition.
func (a *Adapter) RenameMaterializedView(
	ctx context.Context,
	from, to relation.Name,
	renameIndexes bool,
) error {
	if !a.SupportsMaterializedViews() {
		return lifecycle.MaterializedViewsUnsupportedError(a.serverVersion)
	}
	rel, err := a.require(ctx, from, relation.KindMaterialized)
	if err != nil {
		return err
	}
	newLocal, err := renameTarget(rel, to)
	if err != nil {
		return err
	}
	dest := rel.Name.Sibling(to.Local)
	if err = a.requireAbsent(ctx, dest); err != nil {
		return err
	}

	q := fmt.Sprintf("ALTER MATERIALIZED VIEW %s RENAME TO %s",
		rel.Name.Qualified(), newLocal)
	if err = a.exec(ctx, q); err != nil {
		return err
	}

	if renameIndexes {
		return a.indexes.RenameFor(ctx, dest, rel.Name.Local, dest.Local)
	}
	return nil
}

// DropMaterializedView drops an existing materialized view.
func (a *Adapter) DropMaterializedView(ctx context.Context, name relation.Name) error {
	if !a.SupportsMaterializedViews() {
		return lifecycle.MaterializedViewsUnsupportedError(a.serverVersion)
	}
	rel, err := a.require(ctx, name, relation.KindMaterialized)
	if err != nil {
		return err
	}
	return a.drop(ctx, rel)
}

func (a *Adapter) drop(ctx context.Context, rel relation.Relation) error {
	return a.exec(ctx, fmt.Sprintf("DROP %s %s", kindSQL(rel.Kind()), rel.Name.Qualified()))
}

func kindSQL(k relation.Kind) string {
	if k == relation.KindMaterialized {
		return "MATERIALIZED VIEW"
	}
	return "VIEW"
}

func kindName(k relation.Kind) string {
	if k == relation.KindMaterialized {
		return "materialized view"
	}
	return "view"
}
