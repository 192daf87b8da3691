package command

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
)

// IrreversibleOperationError is returned when a command cannot be
// inverted because no version to revert to was recorded.
func IrreversibleOperationError(c Command) error {
	msg := `Cannot roll back <em>%s</em> of <em>%s</em>

The operation was applied without <em>revert_to_version</em>.`

	return &gn.Error{
		Code: errcode.IrreversibleOperationError,
		Msg:  msg,
		Vars: []any{c.Op, c.Name},
		Err:  fmt.Errorf("%s %s is irreversible: no revert_to_version", c.Op, c.Name),
	}
}

// UnknownOperationError is returned for commands with an unknown
// operation name.
func UnknownOperationError(op Op) error {
	msg := "Unknown operation <em>%s</em>"

	return &gn.Error{
		Code: errcode.UnknownOperationError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("unknown operation %q", op),
	}
}
