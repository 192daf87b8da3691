package iotesting

import (
	"context"
	"errors"

	"github.com/gnames/gnviews/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUnexpectedCall is returned by every SilentConn method.
var ErrUnexpectedCall = errors.New("unexpected database call")

// SilentConn is a db.Conn that fails every call and counts them. Tests use
// it to check that validation happens before any SQL.
type SilentConn struct {
	Calls int
}

var _ db.Conn = (*SilentConn)(nil)

func (c *SilentConn) Begin(context.Context) (pgx.Tx, error) {
	c.Calls++
	return nil, ErrUnexpectedCall
}

func (c *SilentConn) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	c.Calls++
	return pgconn.CommandTag{}, ErrUnexpectedCall
}

func (c *SilentConn) Query(context.Context, string, ...any) (pgx.Rows, error) {
	c.Calls++
	return nil, ErrUnexpectedCall
}

func (c *SilentConn) QueryRow(context.Context, string, ...any) pgx.Row {
	c.Calls++
	return failedRow{}
}

type failedRow struct{}

func (failedRow) Scan(...any) error { return ErrUnexpectedCall }
