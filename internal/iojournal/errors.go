package iojournal

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
)

// JournalError is returned when the journal cannot be read or written.
func JournalError(op string, err error) error {
	msg := "Cannot %s the journal"

	return &gn.Error{
		Code: errcode.JournalError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("journal %s: %w", op, err),
	}
}

// JournalEmptyError is returned when there is nothing to roll back.
func JournalEmptyError() error {
	return &gn.Error{
		Code: errcode.JournalEmptyError,
		Msg:  "The journal is empty, nothing to roll back",
		Err:  fmt.Errorf("journal is empty"),
	}
}
