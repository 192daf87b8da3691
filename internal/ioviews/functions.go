package ioviews

import (
	"context"
	"strings"

	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
)

// CreateFunction runs a CREATE FUNCTION statement. The function must not
// exist before and must exist after, so a definition that creates a
// function under another name is rejected.
func (a *Adapter) CreateFunction(ctx context.Context, name relation.Name, sql string) error {
	ff, err := a.catalog.LookupFunctions(ctx, name)
	if err != nil {
		return err
	}
	if len(ff) > 0 {
		return lifecycle.FunctionExistsError(name)
	}
	return a.createFunction(ctx, name, sql)
}

// DropFunction drops a function that has exactly one overload.
func (a *Adapter) DropFunction(ctx context.Context, name relation.Name) error {
	fn, err := a.requireFunction(ctx, name)
	if err != nil {
		return err
	}
	return a.exec(ctx, "DROP FUNCTION "+fn.Signature())
}

// UpdateFunction drops the function and runs the new definition, so the
// new version may change arguments or the return type.
func (a *Adapter) UpdateFunction(ctx context.Context, name relation.Name, sql string) error {
	fn, err := a.requireFunction(ctx, name)
	if err != nil {
		return err
	}
	if err = a.exec(ctx, "DROP FUNCTION "+fn.Signature()); err != nil {
		return err
	}
	return a.createFunction(ctx, name, sql)
}

// Function returns the only overload of a function.
func (a *Adapter) Function(ctx context.Context, name relation.Name) (relation.Function, error) {
	return a.requireFunction(ctx, name)
}

func (a *Adapter) createFunction(ctx context.Context, name relation.Name, sql string) error {
	if err := a.exec(ctx, strings.TrimSpace(sql)); err != nil {
		return err
	}
	ff, err := a.catalog.LookupFunctions(ctx, name)
	if err != nil {
		return err
	}
	if len(ff) == 0 {
		return lifecycle.FunctionNotFoundError(name)
	}
	return nil
}

func (a *Adapter) requireFunction(
	ctx context.Context,
	name relation.Name,
) (relation.Function, error) {
	ff, err := a.catalog.LookupFunctions(ctx, name)
	if err != nil {
		return relation.Function{}, err
	}
	switch len(ff) {
	case 0:
		return relation.Function{}, lifecycle.FunctionNotFoundError(name)
	case 1:
		return ff[0], nil
	}
	sigs := make([]string, len(ff))
	for i, f := range ff {
		sigs[i] = f.Signature()
	}
	return relation.Function{}, lifecycle.FunctionOverloadedError(name, sigs)
}
