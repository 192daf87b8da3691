package iostatements

import (
	"context"

	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
)

// CreateFunction creates a function from its versioned definition or from
// SQL. Without both the first version is used.
func (s *Statements) CreateFunction(
	ctx context.Context,
	name relation.Name,
	opts lifecycle.CreateOptions,
) error {
	opts, err := opts.ValidateFunction()
	if err != nil {
		return err
	}
	sql, err := s.functionDefinition(name, opts.Version, opts.SQLDefinition)
	if err != nil {
		return err
	}
	if err = s.views.CreateFunction(ctx, name, sql); err != nil {
		return err
	}
	return s.Recorder.CreateFunction(ctx, name, opts)
}

// DropFunction drops a function. RevertToVersion is only recorded.
func (s *Statements) DropFunction(
	ctx context.Context,
	name relation.Name,
	opts lifecycle.DropOptions,
) error {
	if err := opts.ValidateFunction(); err != nil {
		return err
	}
	if err := s.views.DropFunction(ctx, name); err != nil {
		return err
	}
	return s.Recorder.DropFunction(ctx, name, opts)
}

// UpdateFunction replaces a function with another version of it.
func (s *Statements) UpdateFunction(
	ctx context.Context,
	name relation.Name,
	opts lifecycle.UpdateOptions,
) error {
	if err := opts.ValidateFunction(); err != nil {
		return err
	}
	sql, err := s.functionDefinition(name, opts.Version, opts.SQLDefinition)
	if err != nil {
		return err
	}
	if err = s.views.UpdateFunction(ctx, name, sql); err != nil {
		return err
	}
	return s.Recorder.UpdateFunction(ctx, name, opts)
}

func (s *Statements) functionDefinition(
	name relation.Name,
	version int,
	sql string,
) (string, error) {
	if sql != "" {
		return sql, nil
	}
	return s.funcs.Definition(name, version)
}
