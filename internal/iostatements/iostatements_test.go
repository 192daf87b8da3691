package iostatements_test

import (
	"context"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/internal/iodefs"
	"github.com/gnames/gnviews/internal/iostatements"
	"github.com/gnames/gnviews/internal/iotesting"
	"github.com/gnames/gnviews/internal/ioviews"
	"github.com/gnames/gnviews/pkg/command"
	"github.com/gnames/gnviews/pkg/errcode"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
	"github.com/gnames/gnviews/pkg/tempname"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatements(
	t *testing.T,
	conn *iotesting.SilentConn,
	serverVersion int,
) *iostatements.Statements {
	dir := iotesting.WriteDefinitions(t, map[string]string{
		"reports_v01.sql": "SELECT 1 AS id",
	})
	names := tempname.NewGenerator(tempname.MaxIdentifierLength)
	quiet := lifecycle.ReporterFunc(func(string) {})
	views := ioviews.New(conn, quiet, names, serverVersion)
	return iostatements.New(views, iodefs.New(dir), nil).
		WithFunctions(iodefs.New(t.TempDir()))
}

func TestValidationBeforeSQL(t *testing.T) {
	ctx := context.Background()
	reports := relation.MustParseName("reports")
	other := relation.MustParseName("reports_next")

	tests := []struct {
		msg     string
		version int
		call    func(s *iostatements.Statements) error
		code    gn.ErrorCode
	}{
		{
			"create with version and sql", 160000,
			func(s *iostatements.Statements) error {
				return s.CreateView(ctx, reports, lifecycle.CreateOptions{
					Version: 1, SQLDefinition: "SELECT 1",
				})
			},
			errcode.OptionsConflictError,
		},
		{
			"create with missing definition", 160000,
			func(s *iostatements.Statements) error {
				return s.CreateView(ctx, reports, lifecycle.CreateOptions{Version: 7})
			},
			errcode.DefinitionNotFoundError,
		},
		{
			"create materialized on old server", 90200,
			func(s *iostatements.Statements) error {
				return s.CreateView(ctx, reports, lifecycle.CreateOptions{
					Materialized: &lifecycle.MaterializedOptions{},
				})
			},
			errcode.MaterializedViewsUnsupportedError,
		},
		{
			"update without version", 160000,
			func(s *iostatements.Statements) error {
				return s.UpdateView(ctx, reports, lifecycle.UpdateOptions{})
			},
			errcode.OptionsMissingError,
		},
		{
			"update with version and sql", 160000,
			func(s *iostatements.Statements) error {
				return s.UpdateView(ctx, reports, lifecycle.UpdateOptions{
					Version: 1, SQLDefinition: "SELECT 1",
				})
			},
			errcode.OptionsConflictError,
		},
		{
			"update no data side by side", 160000,
			func(s *iostatements.Statements) error {
				return s.UpdateView(ctx, reports, lifecycle.UpdateOptions{
					Version: 1,
					Materialized: &lifecycle.MaterializedOptions{
						NoData: true, SideBySide: true,
					},
				})
			},
			errcode.OptionsConflictError,
		},
		{
			"replace in place without version", 160000,
			func(s *iostatements.Statements) error {
				return s.ReplaceView(ctx, reports, relation.Name{}, lifecycle.ReplaceOptions{})
			},
			errcode.OptionsMissingError,
		},
		{
			"replace materialized in place", 160000,
			func(s *iostatements.Statements) error {
				return s.ReplaceView(ctx, reports, relation.Name{}, lifecycle.ReplaceOptions{
					Version:      1,
					Materialized: &lifecycle.MaterializedOptions{},
				})
			},
			errcode.OptionsConflictError,
		},
		{
			"replace with missing target definition", 160000,
			func(s *iostatements.Statements) error {
				return s.ReplaceView(ctx, other, reports, lifecycle.ReplaceOptions{Version: 3})
			},
			errcode.DefinitionNotFoundError,
		},
		{
			"rename without target", 160000,
			func(s *iostatements.Statements) error {
				return s.RenameView(ctx, reports, relation.Name{}, lifecycle.RenameOptions{})
			},
			errcode.OptionsMissingError,
		},
		{
			"rename materialized on old server", 90200,
			func(s *iostatements.Statements) error {
				return s.RenameView(ctx, reports, other, lifecycle.RenameOptions{
					Materialized: &lifecycle.MaterializedOptions{RenameIndexes: true},
				})
			},
			errcode.MaterializedViewsUnsupportedError,
		},
		{
			"create materialized function", 160000,
			func(s *iostatements.Statements) error {
				return s.CreateFunction(ctx, reports, lifecycle.CreateOptions{
					SQLDefinition: "CREATE FUNCTION reports() RETURNS int AS 'SELECT 1' LANGUAGE sql",
					Materialized:  &lifecycle.MaterializedOptions{},
				})
			},
			errcode.OptionsConflictError,
		},
		{
			"create function reads function definitions", 160000,
			func(s *iostatements.Statements) error {
				// reports_v01.sql exists only among view definitions
				return s.CreateFunction(ctx, reports, lifecycle.CreateOptions{})
			},
			errcode.DefinitionNotFoundError,
		},
		{
			"update function without version", 160000,
			func(s *iostatements.Statements) error {
				return s.UpdateFunction(ctx, reports, lifecycle.UpdateOptions{RevertToVersion: 1})
			},
			errcode.OptionsMissingError,
		},
		{
			"drop materialized function", 160000,
			func(s *iostatements.Statements) error {
				return s.DropFunction(ctx, reports, lifecycle.DropOptions{
					Materialized: &lifecycle.MaterializedOptions{},
				})
			},
			errcode.OptionsConflictError,
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			conn := &iotesting.SilentConn{}
			s := newStatements(t, conn, v.version)
			err := v.call(s)
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok, "expected gn.Error, got %T", err)
			assert.Equal(t, v.code, gnErr.Code)
			assert.Zero(t, conn.Calls, "no SQL before validation passes")
			assert.Empty(t, s.Commands(), "failed calls are not recorded")
		})
	}
}

func TestSharedRecorder(t *testing.T) {
	rec := command.NewRecorder()
	names := tempname.NewGenerator(tempname.MaxIdentifierLength)
	views := ioviews.New(&iotesting.SilentConn{}, lifecycle.ReporterFunc(func(string) {}), names, 160000)
	s := iostatements.New(views, iodefs.New(t.TempDir()), rec)

	rec.Record(command.Command{Op: command.CreateView, Name: "reports"})
	assert.Len(t, s.Commands(), 1)
}
