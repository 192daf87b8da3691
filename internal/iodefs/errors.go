package iodefs

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
	"github.com/gnames/gnviews/pkg/relation"
)

// DefinitionNotFoundError is returned when a definition file cannot be
// read.
func DefinitionNotFoundError(
	name relation.Name,
	version int,
	path string,
	err error,
) error {
	msg := `Cannot find version %d of <em>%s</em>

Expected file: <em>%s</em>`

	return &gn.Error{
		Code: errcode.DefinitionNotFoundError,
		Msg:  msg,
		Vars: []any{version, name.Key(), path},
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

// DefinitionEmptyError is returned for definition files without SQL.
func DefinitionEmptyError(name relation.Name, version int, path string) error {
	msg := "Definition of <em>%s</em> version %d is empty: <em>%s</em>"

	return &gn.Error{
		Code: errcode.DefinitionEmptyError,
		Msg:  msg,
		Vars: []any{name.Key(), version, path},
		Err:  fmt.Errorf("empty definition %s", path),
	}
}

// DefinitionWriteError is returned when a definition file cannot be
// created.
func DefinitionWriteError(path string, err error) error {
	msg := "Cannot write definition <em>%s</em>"

	return &gn.Error{
		Code: errcode.DefinitionWriteError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write %s: %w", path, err),
	}
}
