package ioviews

import (
	"context"
	"fmt"

	"github.com/gnames/gnviews/pkg/relation"
)

// CreateView creates a plain view that must not exist yet.
func (a *Adapter) CreateView(ctx context.Context, name relation.Name, sql string) error {
	if err := a.requireAbsent(ctx, name); err != nil {
		return err
	}
	return a.exec(ctx, fmt.Sprintf("CREATE VIEW %s AS %s", name.Qualified(), body(sql)))
}

// DropView drops an existing plain view.
func (a *Adapter) DropView(ctx context.Context, name relation.Name) error {
	rel, err := a.require(ctx, name, relation.KindView)
	if err != nil {
		return err
	}
	return a.drop(ctx, rel)
}

// UpdateView drops a plain view and creates it with a new definition,
// which also allows removing columns.
func (a *Adapter) UpdateView(ctx context.Context, name relation.Name, sql string) error {
	rel, err := a.require(ctx, name, relation.KindView)
	if err != nil {
		return err
	}
	if err = a.drop(ctx, rel); err != nil {
		return err
	}
	return a.exec(ctx, fmt.Sprintf("CREATE VIEW %s AS %s", rel.Name.Qualified(), body(sql)))
}

// ReplaceView uses CREATE OR REPLACE VIEW, so dependent views stay in
// place. PostgreSQL only accepts definitions that keep existing columns.
func (a *Adapter) ReplaceView(ctx context.Context, name relation.Name, sql string) error {
	rel, err := a.require(ctx, name, relation.KindView)
	if err != nil {
		return err
	}
	q := fmt.Sprintf("CREATE OR REPLACE VIEW %s AS %s", rel.Name.Qualified(), body(sql))
	return a.exec(ctx, q)
}

// RenameView renames a plain view.
func (a *Adapter) RenameView(ctx context.Context, from, to relation.Name) error {
	rel, err := a.require(ctx, from, relation.KindView)
	if err != nil {
		return err
	}
	newLocal, err := renameTarget(rel, to)
	if err != nil {
		return err
	}
	if err = a.requireAbsent(ctx, rel.Name.Sibling(to.Local)); err != nil {
		return err
	}
	q := fmt.Sprintf("ALTER VIEW %s RENAME TO %s", rel.Name.Qualified(), newLocal)
	return a.exec(ctx, q)
}
