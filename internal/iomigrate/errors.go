package iomigrate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
)

// NotConnectedError is returned when a batch is run before connecting.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Operation attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TransactionError is returned when a transaction cannot be started or
// committed.
func TransactionError(stage string, err error) error {
	msg := "Cannot %s transaction"

	return &gn.Error{
		Code: errcode.DBTransactionError,
		Msg:  msg,
		Vars: []any{stage},
		Err:  fmt.Errorf("cannot %s transaction: %w", stage, err),
	}
}
