package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
)

// ConnectionError is returned when database connection fails.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>

  3. Check your configuration file:
     <em>~/.config/gnviews/config.yaml</em>`
	vars := []any{host, port, host, user}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// NotConnectedError is returned when an operation is attempted
// before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// ServerVersionError is returned when the server version cannot be read.
func ServerVersionError(err error) error {
	msg := "Cannot read PostgreSQL server version"

	return &gn.Error{
		Code: errcode.DBServerVersionError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot read server_version_num: %w", err),
	}
}
