package command

import (
	"context"

	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
)

// Apply issues the command against a statements implementation.
func Apply(ctx context.Context, s lifecycle.Statements, c Command) error {
	name, err := relation.ParseName(c.Name)
	if err != nil {
		return err
	}
	var to relation.Name
	if c.To != "" {
		if to, err = relation.ParseName(c.To); err != nil {
			return err
		}
	}
	a := c.Args

	switch c.Op {
	case CreateView:
		return s.CreateView(ctx, name, lifecycle.CreateOptions{
			Version:       a.Version,
			SQLDefinition: a.SQLDefinition,
			Materialized:  a.Materialized,
		})
	case DropView:
		return s.DropView(ctx, name, lifecycle.DropOptions{
			RevertToVersion: a.RevertToVersion,
			Materialized:    a.Materialized,
		})
	case UpdateView:
		return s.UpdateView(ctx, name, lifecycle.UpdateOptions{
			Version:         a.Version,
			SQLDefinition:   a.SQLDefinition,
			RevertToVersion: a.RevertToVersion,
			Materialized:    a.Materialized,
		})
	case ReplaceView:
		return s.ReplaceView(ctx, name, to, lifecycle.ReplaceOptions{
			Version:         a.Version,
			RevertToVersion: a.RevertToVersion,
			Materialized:    a.Materialized,
		})
	case RenameView:
		return s.RenameView(ctx, name, to, lifecycle.RenameOptions{
			Version:         a.Version,
			RevertToVersion: a.RevertToVersion,
			Materialized:    a.Materialized,
		})
	case CreateFunction:
		return s.CreateFunction(ctx, name, lifecycle.CreateOptions{
			Version:       a.Version,
			SQLDefinition: a.SQLDefinition,
			Materialized:  a.Materialized,
		})
	case DropFunction:
		return s.DropFunction(ctx, name, lifecycle.DropOptions{
			RevertToVersion: a.RevertToVersion,
			Materialized:    a.Materialized,
		})
	case UpdateFunction:
		return s.UpdateFunction(ctx, name, lifecycle.UpdateOptions{
			Version:         a.Version,
			SQLDefinition:   a.SQLDefinition,
			RevertToVersion: a.RevertToVersion,
			Materialized:    a.Materialized,
		})
	default:
		return UnknownOperationError(c.Op)
	}
}

// ApplyAll issues commands in order and stops at the first error.
func ApplyAll(ctx context.Context, s lifecycle.Statements, cmds []Command) error {
	for _, c := range cmds {
		if err := Apply(ctx, s, c); err != nil {
			return err
		}
	}
	return nil
}
