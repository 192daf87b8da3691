// Package ioindex keeps indexes of materialized views alive while the
// views are dropped and created again.
package ioindex

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gnames/gnviews/internal/iocatalog"
	"github.com/gnames/gnviews/pkg/db"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
	"github.com/gnames/gnviews/pkg/tempname"
)

// Manager snapshots and recreates indexes inside the transaction of a
// lifecycle operation.
type Manager struct {
	conn     db.Conn
	catalog  lifecycle.RelationCatalog
	reporter lifecycle.Reporter
	names    *tempname.Generator
}

// New creates a Manager. The conn is normally a pgx.Tx, so that Begin
// opens a savepoint.
func New(
	conn db.Conn,
	reporter lifecycle.Reporter,
	names *tempname.Generator,
) *Manager {
	return &Manager{
		conn:     conn,
		catalog:  iocatalog.New(conn),
		reporter: reporter,
		names:    names,
	}
}

// Snapshot captures the current indexes of a relation.
func (m *Manager) Snapshot(
	ctx context.Context,
	name relation.Name,
) ([]relation.Index, error) {
	return m.catalog.Indexes(ctx, name)
}

// Reapply executes each index definition in its own savepoint. A failed
// index rolls back only its savepoint, so the surrounding operation and
// the other indexes are not affected. Failures are reported, never
// returned.
func (m *Manager) Reapply(
	ctx context.Context,
	indexes []relation.Index,
) []Outcome {
	res := make([]Outcome, 0, len(indexes))
	for _, idx := range indexes {
		o := m.create(ctx, idx)
		if !o.Recreated {
			slog.Warn("Index skipped",
				"index", idx.IndexName,
				"owner", idx.Owner.Key(),
				"reason", o.Reason,
			)
		}
		m.reporter.Report(o.String())
		res = append(res, o)
	}
	return res
}

func (m *Manager) create(ctx context.Context, idx relation.Index) Outcome {
	res := Outcome{Index: idx}

	sp, err := m.conn.Begin(ctx)
	if err != nil {
		res.Reason = err.Error()
		return res
	}

	if _, err = sp.Exec(ctx, idx.Definition); err != nil {
		res.Reason = err.Error()
		_ = sp.Rollback(ctx)
		return res
	}

	if err = sp.Commit(ctx); err != nil {
		res.Reason = err.Error()
		return res
	}

	res.Recreated = true
	return res
}

// Migrate moves indexes from one relation to another. Source indexes are
// renamed to temporary names first, then their definitions are applied to
// the destination under the original names.
func (m *Manager) Migrate(
	ctx context.Context,
	from, to relation.Name,
) ([]Outcome, error) {
	source, err := m.Snapshot(ctx, from)
	if err != nil {
		return nil, err
	}

	retargeted := make([]relation.Index, len(source))
	for i, idx := range source {
		if retargeted[i], err = idx.Retarget(to); err != nil {
			return nil, err
		}
	}

	for _, idx := range source {
		tmp := m.names.Generate(idx.IndexName, "old")
		if err = m.rename(ctx, idx, tmp); err != nil {
			return nil, err
		}
	}
	if len(source) > 0 {
		m.reporter.Report(fmt.Sprintf(
			"indexes on '%s' have been renamed to avoid collisions", from.Key(),
		))
	}

	return m.Reapply(ctx, retargeted), nil
}

// Copy recreates indexes of one relation on another. Index names get the
// destination name instead of the source name, or the destination name as
// a prefix when they do not contain the source name.
func (m *Manager) Copy(
	ctx context.Context,
	from, to relation.Name,
) ([]Outcome, error) {
	source, err := m.Snapshot(ctx, from)
	if err != nil {
		return nil, err
	}

	copies := make([]relation.Index, 0, len(source))
	for _, idx := range source {
		name := to.Local + "_" + idx.IndexName
		if strings.Contains(idx.IndexName, from.Local) {
			name = strings.ReplaceAll(idx.IndexName, from.Local, to.Local)
		}

		cp, err := idx.Retarget(to)
		if err != nil {
			return nil, err
		}
		if cp, err = cp.Renamed(name); err != nil {
			return nil, err
		}
		copies = append(copies, cp)
	}

	return m.Reapply(ctx, copies), nil
}

// RenameFor renames indexes of a relation whose names contain oldLocal,
// replacing it with newLocal.
func (m *Manager) RenameFor(
	ctx context.Context,
	name relation.Name,
	oldLocal, newLocal string,
) error {
	indexes, err := m.Snapshot(ctx, name)
	if err != nil {
		return err
	}

	for _, idx := range indexes {
		if !strings.Contains(idx.IndexName, oldLocal) {
			continue
		}
		newName := strings.ReplaceAll(idx.IndexName, oldLocal, newLocal)
		if err = m.rename(ctx, idx, newName); err != nil {
			return err
		}
		m.reporter.Report(fmt.Sprintf(
			"index '%s' on '%s' has been renamed to '%s'",
			idx.IndexName, name.Key(), newName,
		))
	}
	return nil
}

func (m *Manager) rename(ctx context.Context, idx relation.Index, to string) error {
	from := idx.Owner.Sibling(idx.IndexName).Qualified()
	q := fmt.Sprintf("ALTER INDEX %s RENAME TO %s", from, relation.QuoteIdent(to))
	_, err := m.conn.Exec(ctx, q)
	return err
}
