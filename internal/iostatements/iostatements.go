// Package iostatements is the mutating surface used by plans and the CLI.
// It validates options, resolves versioned definitions, runs the change
// through ioviews and records every successful call, so a batch can be
// journaled and inverted later.
package iostatements

import (
	"context"

	"github.com/gnames/gnviews/internal/ioviews"
	"github.com/gnames/gnviews/pkg/command"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
)

// Statements implements lifecycle.Statements on top of an ioviews.Adapter.
type Statements struct {
	*command.Recorder
	views *ioviews.Adapter
	defs  lifecycle.DefinitionSource
	funcs lifecycle.DefinitionSource
}

var (
	_ lifecycle.Statements     = (*Statements)(nil)
	_ command.CommandRecorder = (*Statements)(nil)
)

// New creates Statements. When rec is nil a new recorder is used.
func New(
	views *ioviews.Adapter,
	defs lifecycle.DefinitionSource,
	rec *command.Recorder,
) *Statements {
	if rec == nil {
		rec = command.NewRecorder()
	}
	return &Statements{Recorder: rec, views: views, defs: defs, funcs: defs}
}

// WithFunctions sets where function definitions are read from. By default
// they share the source of view definitions.
func (s *Statements) WithFunctions(funcs lifecycle.DefinitionSource) *Statements {
	if funcs != nil {
		s.funcs = funcs
	}
	return s
}

// CreateView creates a view or a materialized view. Without a version and
// SQL the first version of the definition is used.
func (s *Statements) CreateView(
	ctx context.Context,
	name relation.Name,
	opts lifecycle.CreateOptions,
) error {
	opts, err := opts.Validate()
	if err != nil {
		return err
	}
	sql, err := s.definition(name, opts.Version, opts.SQLDefinition)
	if err != nil {
		return err
	}

	if m := opts.Materialized; m != nil {
		err = s.views.CreateMaterializedView(ctx, name, sql, *m)
	} else {
		err = s.views.CreateView(ctx, name, sql)
	}
	if err != nil {
		return err
	}
	return s.Recorder.CreateView(ctx, name, opts)
}

// DropView drops a view or a materialized view. RevertToVersion is only
// recorded, rollback uses it.
func (s *Statements) DropView(
	ctx context.Context,
	name relation.Name,
	opts lifecycle.DropOptions,
) error {
	var err error
	if opts.Materialized != nil {
		err = s.views.DropMaterializedView(ctx, name)
	} else {
		err = s.views.DropView(ctx, name)
	}
	if err != nil {
		return err
	}
	return s.Recorder.DropView(ctx, name, opts)
}

// UpdateView changes the definition of an existing relation.
func (s *Statements) UpdateView(
	ctx context.Context,
	name relation.Name,
	opts lifecycle.UpdateOptions,
) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	sql, err := s.definition(name, opts.Version, opts.SQLDefinition)
	if err != nil {
		return err
	}

	if m := opts.Materialized; m != nil {
		err = s.views.UpdateMaterializedView(ctx, name, sql, *m)
	} else {
		err = s.views.UpdateView(ctx, name, sql)
	}
	if err != nil {
		return err
	}
	return s.Recorder.UpdateView(ctx, name, opts)
}

// ReplaceView without `to` rewrites a plain view in place with
// CREATE OR REPLACE VIEW. With `to` the relation `from` takes the place of
// `to`, and when a version is given the result is checked against that
// version of `to`.
func (s *Statements) ReplaceView(
	ctx context.Context,
	from, to relation.Name,
	opts lifecycle.ReplaceOptions,
) error {
	if err := opts.Validate(to); err != nil {
		return err
	}

	if to.IsZero() {
		sql, err := s.definition(from, opts.Version, "")
		if err != nil {
			return err
		}
		if err = s.views.ReplaceView(ctx, from, sql); err != nil {
			return err
		}
		return s.Recorder.ReplaceView(ctx, from, to, opts)
	}

	expected, err := s.expected(to, opts.Version)
	if err != nil {
		return err
	}
	m := opts.Materialized
	err = s.views.SwapRelation(ctx, from, to, m != nil, m != nil && m.RenameIndexes)
	if err != nil {
		return err
	}
	if err = s.verify(ctx, destination(from, to), to, opts.Version, expected); err != nil {
		return err
	}
	return s.Recorder.ReplaceView(ctx, from, to, opts)
}

// RenameView renames a relation. With a version the renamed relation is
// checked against that version of the new name.
func (s *Statements) RenameView(
	ctx context.Context,
	from, to relation.Name,
	opts lifecycle.RenameOptions,
) error {
	if err := opts.Validate(to); err != nil {
		return err
	}
	expected, err := s.expected(to, opts.Version)
	if err != nil {
		return err
	}

	if m := opts.Materialized; m != nil {
		err = s.views.RenameMaterializedView(ctx, from, to, m.RenameIndexes)
	} else {
		err = s.views.RenameView(ctx, from, to)
	}
	if err != nil {
		return err
	}
	if err = s.verify(ctx, destination(from, to), to, opts.Version, expected); err != nil {
		return err
	}
	return s.Recorder.RenameView(ctx, from, to, opts)
}

func (s *Statements) definition(name relation.Name, version int, sql string) (string, error) {
	if sql != "" {
		return sql, nil
	}
	return s.defs.Definition(name, version)
}

// expected reads the definition a moved relation is checked against, so a
// missing file fails before any SQL runs.
func (s *Statements) expected(name relation.Name, version int) (string, error) {
	if version <= 0 {
		return "", nil
	}
	return s.defs.Definition(name, version)
}

func (s *Statements) verify(
	ctx context.Context,
	live, name relation.Name,
	version int,
	sql string,
) error {
	if version <= 0 {
		return nil
	}
	ok, liveSQL, err := s.views.ViewMatchesDefinition(ctx, live, sql)
	if err != nil {
		return err
	}
	if !ok {
		return lifecycle.StoredDefinitionMismatchError(
			name, s.defs.Location(name, version), liveSQL,
		)
	}
	return nil
}

// destination is where a rename puts the relation. A bare new name keeps
// the schema of the old one.
func destination(from, to relation.Name) relation.Name {
	if to.Schema != "" {
		return to
	}
	return from.Sibling(to.Local)
}
