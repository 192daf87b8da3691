package lifecycle

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
	"github.com/gnames/gnviews/pkg/relation"
)

// OptionsConflictError is returned when two options that exclude each
// other are both set.
func OptionsConflictError(op, a, b string) error {
	msg := "Options <em>%s</em> and <em>%s</em> cannot be used together in %s"
	vars := []any{a, b, op}

	return &gn.Error{
		Code: errcode.OptionsConflictError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: %s conflicts with %s", op, a, b),
	}
}

// OptionsMissingError is returned when a required option is absent.
func OptionsMissingError(op, option string) error {
	msg := "Option <em>%s</em> is required for %s"
	vars := []any{option, op}

	return &gn.Error{
		Code: errcode.OptionsMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: missing %s", op, option),
	}
}

// RelationExistsError is returned when a relation that must be absent
// already exists.
func RelationExistsError(name relation.Name) error {
	msg := "Relation <em>%s</em> already exists"

	return &gn.Error{
		Code: errcode.RelationExistsError,
		Msg:  msg,
		Vars: []any{name.Key()},
		Err:  fmt.Errorf("relation %s already exists", name.Key()),
	}
}

// RelationNotFoundError is returned when a relation of the expected kind
// does not exist.
func RelationNotFoundError(name relation.Name, kind relation.Kind) error {
	what := "view"
	if kind == relation.KindMaterialized {
		what = "materialized view"
	}
	msg := "Cannot find %s <em>%s</em>"

	return &gn.Error{
		Code: errcode.RelationNotFoundError,
		Msg:  msg,
		Vars: []any{what, name.Key()},
		Err:  fmt.Errorf("%s %s does not exist", what, name.Key()),
	}
}

// UnpopulatedRelationError is returned when a concurrent refresh is asked
// for a materialized view that was never populated.
func UnpopulatedRelationError(name relation.Name) error {
	msg := `Materialized view <em>%s</em> is not populated

Refresh it once without <em>concurrently</em> first.`

	return &gn.Error{
		Code: errcode.UnpopulatedRelationError,
		Msg:  msg,
		Vars: []any{name.Key()},
		Err: fmt.Errorf(
			"cannot refresh unpopulated %s concurrently", name.Key(),
		),
	}
}

// MaterializedViewsUnsupportedError is returned for servers older than
// PostgreSQL 9.3.
func MaterializedViewsUnsupportedError(serverVersion int) error {
	msg := `Materialized views need PostgreSQL <em>9.3</em> or newer

Server version: %d`

	return &gn.Error{
		Code: errcode.MaterializedViewsUnsupportedError,
		Msg:  msg,
		Vars: []any{serverVersion},
		Err: fmt.Errorf(
			"materialized views unsupported by server %d", serverVersion,
		),
	}
}

// ConcurrentRefreshUnsupportedError is returned for servers older than
// PostgreSQL 9.4.
func ConcurrentRefreshUnsupportedError(serverVersion int) error {
	msg := `Concurrent refresh needs PostgreSQL <em>9.4</em> or newer

Server version: %d`

	return &gn.Error{
		Code: errcode.ConcurrentRefreshUnsupportedError,
		Msg:  msg,
		Vars: []any{serverVersion},
		Err: fmt.Errorf(
			"concurrent refresh unsupported by server %d", serverVersion,
		),
	}
}

// StoredDefinitionMismatchError is returned when the live definition of a
// relation differs from the stored definition it is expected to match.
func StoredDefinitionMismatchError(
	name relation.Name,
	location, live string,
) error {
	msg := `Definition of <em>%s</em> does not match <em>%s</em>

<em>Live definition:</em>
%s`

	return &gn.Error{
		Code: errcode.StoredDefinitionMismatchError,
		Msg:  msg,
		Vars: []any{name.Key(), location, live},
		Err: fmt.Errorf(
			"%s does not match %s", name.Key(), location,
		),
	}
}

// FunctionExistsError is returned when a function that must be absent
// already exists.
func FunctionExistsError(name relation.Name) error {
	msg := "Function <em>%s</em> already exists"

	return &gn.Error{
		Code: errcode.FunctionExistsError,
		Msg:  msg,
		Vars: []any{name.Key()},
		Err:  fmt.Errorf("function %s already exists", name.Key()),
	}
}

// FunctionNotFoundError is returned when a function does not exist.
func FunctionNotFoundError(name relation.Name) error {
	msg := "Cannot find function <em>%s</em>"

	return &gn.Error{
		Code: errcode.FunctionNotFoundError,
		Msg:  msg,
		Vars: []any{name.Key()},
		Err:  fmt.Errorf("function %s does not exist", name.Key()),
	}
}

// FunctionOverloadedError is returned when a name matches several
// functions, so it is not clear which one to change.
func FunctionOverloadedError(name relation.Name, signatures []string) error {
	msg := `Function <em>%s</em> is overloaded

Signatures:
  %s`

	return &gn.Error{
		Code: errcode.FunctionOverloadedError,
		Msg:  msg,
		Vars: []any{name.Key(), strings.Join(signatures, "\n  ")},
		Err: fmt.Errorf(
			"function %s has %d overloads", name.Key(), len(signatures),
		),
	}
}
