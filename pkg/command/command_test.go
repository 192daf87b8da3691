package command_test

import (
	"context"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/command"
	"github.com/gnames/gnviews/pkg/errcode"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mat = &lifecycle.MaterializedOptions{SideBySide: true}

func TestInvert(t *testing.T) {
	tests := []struct {
		msg string
		cmd command.Command
		res command.Command
	}{
		{
			"create",
			command.Command{
				Op:   command.CreateView,
				Name: "reports",
				Args: command.Args{Version: 2, Materialized: mat},
			},
			command.Command{
				Op:   command.DropView,
				Name: "reports",
				Args: command.Args{Materialized: mat},
			},
		},
		{
			"create from sql",
			command.Command{
				Op:   command.CreateView,
				Name: "reports",
				Args: command.Args{SQLDefinition: "SELECT 1"},
			},
			command.Command{Op: command.DropView, Name: "reports"},
		},
		{
			"drop",
			command.Command{
				Op:   command.DropView,
				Name: "reports",
				Args: command.Args{RevertToVersion: 3},
			},
			command.Command{
				Op:   command.CreateView,
				Name: "reports",
				Args: command.Args{Version: 3},
			},
		},
		{
			"update",
			command.Command{
				Op:   command.UpdateView,
				Name: "reports",
				Args: command.Args{
					Version: 3, RevertToVersion: 2, Materialized: mat,
				},
			},
			command.Command{
				Op:   command.UpdateView,
				Name: "reports",
				Args: command.Args{Version: 2, Materialized: mat},
			},
		},
		{
			"update from sql",
			command.Command{
				Op:   command.UpdateView,
				Name: "reports",
				Args: command.Args{SQLDefinition: "SELECT 2", RevertToVersion: 1},
			},
			command.Command{
				Op:   command.UpdateView,
				Name: "reports",
				Args: command.Args{Version: 1},
			},
		},
		{
			"replace in place",
			command.Command{
				Op:   command.ReplaceView,
				Name: "reports",
				Args: command.Args{Version: 2, RevertToVersion: 1},
			},
			command.Command{
				Op:   command.ReplaceView,
				Name: "reports",
				Args: command.Args{Version: 1},
			},
		},
		{
			"replace swap",
			command.Command{
				Op:   command.ReplaceView,
				Name: "reports_next",
				To:   "reports",
				Args: command.Args{Version: 2, RevertToVersion: 1},
			},
			command.Command{
				Op:   command.ReplaceView,
				Name: "reports",
				To:   "reports_next",
				Args: command.Args{Version: 1},
			},
		},
		{
			"rename",
			command.Command{
				Op:   command.RenameView,
				Name: "reports",
				To:   "stats",
				Args: command.Args{Version: 1, RevertToVersion: 1},
			},
			command.Command{
				Op:   command.RenameView,
				Name: "stats",
				To:   "reports",
				Args: command.Args{Version: 1},
			},
		},
		{
			"create function",
			command.Command{
				Op:   command.CreateFunction,
				Name: "stats.total",
				Args: command.Args{Version: 2},
			},
			command.Command{Op: command.DropFunction, Name: "stats.total"},
		},
		{
			"drop function",
			command.Command{
				Op:   command.DropFunction,
				Name: "stats.total",
				Args: command.Args{RevertToVersion: 2},
			},
			command.Command{
				Op:   command.CreateFunction,
				Name: "stats.total",
				Args: command.Args{Version: 2},
			},
		},
		{
			"update function",
			command.Command{
				Op:   command.UpdateFunction,
				Name: "stats.total",
				Args: command.Args{SQLDefinition: "CREATE FUNCTION ...", RevertToVersion: 1},
			},
			command.Command{
				Op:   command.UpdateFunction,
				Name: "stats.total",
				Args: command.Args{Version: 1},
			},
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, err := command.Invert(v.cmd)
			require.NoError(t, err)
			assert.Equal(t, v.res, res)
			assert.Zero(t, res.Args.RevertToVersion)
			assert.Empty(t, res.Args.SQLDefinition)
		})
	}
}

func TestInvertCopiesOptions(t *testing.T) {
	m := &lifecycle.MaterializedOptions{RenameIndexes: true}
	c := command.Command{
		Op: command.RenameView, Name: "a", To: "b",
		Args: command.Args{RevertToVersion: 1, Materialized: m},
	}
	res, err := command.Invert(c)
	require.NoError(t, err)
	res.Args.Materialized.RenameIndexes = false
	assert.True(t, m.RenameIndexes)
}

func TestInvertIrreversible(t *testing.T) {
	for _, op := range []command.Op{
		command.DropView,
		command.UpdateView,
		command.ReplaceView,
		command.RenameView,
		command.DropFunction,
		command.UpdateFunction,
	} {
		t.Run(string(op), func(t *testing.T) {
			_, err := command.Invert(command.Command{
				Op: op, Name: "reports", To: "stats",
				Args: command.Args{Version: 2},
			})
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.IrreversibleOperationError, gnErr.Code)
		})
	}
}

func TestInvertUnknown(t *testing.T) {
	_, err := command.Invert(command.Command{Op: "truncate", Name: "x"})
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.UnknownOperationError, gnErr.Code)
	assert.False(t, command.Op("truncate").Valid())
	assert.True(t, command.DropView.Valid())
}

func TestInvertAll(t *testing.T) {
	cmds := []command.Command{
		{Op: command.CreateView, Name: "a"},
		{Op: command.UpdateView, Name: "b", Args: command.Args{Version: 2, RevertToVersion: 1}},
		{Op: command.RenameView, Name: "c", To: "d", Args: command.Args{RevertToVersion: 4}},
	}
	res, err := command.InvertAll(cmds)
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, command.RenameView, res[0].Op)
	assert.Equal(t, "d", res[0].Name)
	assert.Equal(t, command.UpdateView, res[1].Op)
	assert.Equal(t, command.DropView, res[2].Op)

	cmds = append(cmds, command.Command{Op: command.DropView, Name: "e"})
	res, err = command.InvertAll(cmds)
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestDropRoundTrip(t *testing.T) {
	ctx := context.Background()
	name := relation.MustParseName("reports")

	forward := command.NewRecorder()
	err := forward.DropView(ctx, name, lifecycle.DropOptions{RevertToVersion: 4})
	require.NoError(t, err)

	inv, err := command.InvertAll(forward.Commands())
	require.NoError(t, err)

	replay := command.NewRecorder()
	require.NoError(t, command.ApplyAll(ctx, replay, inv))

	direct := command.NewRecorder()
	err = direct.CreateView(ctx, name, lifecycle.CreateOptions{Version: 4})
	require.NoError(t, err)

	assert.Equal(t, direct.Commands(), replay.Commands())
}

func TestRecorderKeys(t *testing.T) {
	ctx := context.Background()
	r := command.NewRecorder()
	from := relation.Name{Schema: "public", Local: "Reports"}
	to := relation.Name{Schema: "stats", Local: "reports"}

	require.NoError(t, r.RenameView(ctx, from, to, lifecycle.RenameOptions{}))
	require.NoError(t, r.ReplaceView(ctx, to, relation.Name{},
		lifecycle.ReplaceOptions{Version: 2}))

	cmds := r.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, `"Reports"`, cmds[0].Name)
	assert.Equal(t, "stats.reports", cmds[0].To)
	assert.Equal(t, "", cmds[1].To)

	r.Reset()
	assert.Empty(t, r.Commands())
}

func TestApplyBadName(t *testing.T) {
	err := command.Apply(context.Background(), command.NewRecorder(),
		command.Command{Op: command.CreateView, Name: ""})
	require.Error(t, err)
}

func TestFunctionRoundTrip(t *testing.T) {
	ctx := context.Background()
	name := relation.MustParseName("stats.total")

	forward := command.NewRecorder()
	require.NoError(t, forward.CreateFunction(ctx, name, lifecycle.CreateOptions{Version: 1}))
	require.NoError(t, forward.UpdateFunction(ctx, name,
		lifecycle.UpdateOptions{Version: 2, RevertToVersion: 1}))
	require.NoError(t, forward.DropFunction(ctx, name,
		lifecycle.DropOptions{RevertToVersion: 2}))

	cmds := forward.Commands()
	require.Len(t, cmds, 3)
	assert.Equal(t, []command.Op{
		command.CreateFunction, command.UpdateFunction, command.DropFunction,
	}, []command.Op{cmds[0].Op, cmds[1].Op, cmds[2].Op})

	inv, err := command.InvertAll(cmds)
	require.NoError(t, err)

	replay := command.NewRecorder()
	require.NoError(t, command.ApplyAll(ctx, replay, inv))

	direct := command.NewRecorder()
	require.NoError(t, direct.CreateFunction(ctx, name, lifecycle.CreateOptions{Version: 2}))
	require.NoError(t, direct.UpdateFunction(ctx, name, lifecycle.UpdateOptions{Version: 1}))
	require.NoError(t, direct.DropFunction(ctx, name, lifecycle.DropOptions{}))

	assert.Equal(t, direct.Commands(), replay.Commands())
	assert.True(t, command.UpdateFunction.Valid())
}
