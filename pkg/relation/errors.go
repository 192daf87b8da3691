package relation

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
)

// InvalidNameError is returned when an identifier cannot be parsed.
func InvalidNameError(name, reason string) error {
	msg := "Invalid relation name <em>%s</em>: %s"
	vars := []any{name, reason}

	return &gn.Error{
		Code: errcode.InvalidNameError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid relation name %q: %s", name, reason),
	}
}

// IndexDefinitionError is returned when an index definition does not have
// the shape PostgreSQL uses when it renders indexes, so it cannot be
// rewritten safely.
func IndexDefinitionError(idx Index, reason string) error {
	msg := `Cannot rewrite index <em>%s</em> on <em>%s</em>: %s

<em>Definition:</em>
  %s`
	vars := []any{idx.IndexName, idx.Owner.Key(), reason, idx.Definition}

	return &gn.Error{
		Code: errcode.IndexDefinitionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("index %s on %s: %s",
			idx.IndexName, idx.Owner.Key(), reason),
	}
}
