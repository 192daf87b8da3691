package ioplan

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
)

// PlanReadError is returned when a plan file cannot be read or parsed.
func PlanReadError(path string, err error) error {
	msg := "Cannot read plan <em>%s</em>: %s"

	return &gn.Error{
		Code: errcode.PlanReadError,
		Msg:  msg,
		Vars: []any{path, err},
		Err:  fmt.Errorf("cannot read plan %s: %w", path, err),
	}
}
