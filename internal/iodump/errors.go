package iodump

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
)

// UnknownFormatError is returned for unsupported dump formats.
func UnknownFormatError(f string) error {
	msg := "Unknown dump format <em>%s</em>, use sql or yaml"

	return &gn.Error{
		Code: errcode.DumpFormatError,
		Msg:  msg,
		Vars: []any{f},
		Err:  fmt.Errorf("unknown dump format %q", f),
	}
}
