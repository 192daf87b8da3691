package iojournal_test

import (
	"context"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/internal/iojournal"
	"github.com/gnames/gnviews/internal/ioschema"
	"github.com/gnames/gnviews/internal/iotesting"
	"github.com/gnames/gnviews/pkg/command"
	"github.com/gnames/gnviews/pkg/db"
	"github.com/gnames/gnviews/pkg/errcode"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	err := iojournal.JournalEmptyError()
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.JournalEmptyError, gnErr.Code)

	err = iojournal.JournalError("read", assert.AnError)
	gnErr, ok = err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.JournalError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, assert.AnError)
}

// setup opens the journal. Batches written by a test are removed when
// it finishes.
func setup(t *testing.T) (context.Context, db.Operator, *iojournal.Journal) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	op := iotesting.Connect(t)
	require.NoError(t, ioschema.NewManager(op).Migrate(ctx))

	gormDB, err := ioschema.OpenGORM(op.Pool())
	require.NoError(t, err)
	return ctx, op, iojournal.New(gormDB)
}

// inTx runs fn in a pgx transaction and commits it when commit is true.
func inTx(
	t *testing.T,
	op db.Operator,
	commit bool,
	fn func(tx pgx.Tx),
) {
	t.Helper()
	ctx := context.Background()
	tx, err := op.Pool().Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	fn(tx)
	if commit {
		require.NoError(t, tx.Commit(ctx))
	}
}

func batchIDs(t *testing.T, j *iojournal.Journal) []string {
	t.Helper()
	all, err := j.Batches(context.Background())
	require.NoError(t, err)
	res := make([]string, len(all))
	for i, b := range all {
		res[i] = b.ID
	}
	return res
}

func TestAppendAndRead(t *testing.T) {
	ctx, op, j := setup(t)

	first := []command.Command{
		{Op: command.CreateView, Name: "reports", Args: command.Args{Version: 1}},
	}
	second := []command.Command{
		{
			Op:   command.UpdateView,
			Name: "reports",
			Args: command.Args{
				Version:         2,
				RevertToVersion: 1,
				Materialized:    &lifecycle.MaterializedOptions{SideBySide: true},
			},
		},
		{Op: command.RenameView, Name: "reports", To: "reports_old", Args: command.Args{RevertToVersion: 2}},
	}

	var id1, id2 string
	inTx(t, op, true, func(tx pgx.Tx) {
		id, err := j.Append(ctx, tx, nil)
		require.NoError(t, err)
		assert.Empty(t, id)

		id1, err = j.Append(ctx, tx, first)
		require.NoError(t, err)
		id2, err = j.Append(ctx, tx, second)
		require.NoError(t, err)
	})
	t.Cleanup(func() {
		inTx(t, op, true, func(tx pgx.Tx) {
			_ = j.DeleteBatch(ctx, tx, id1)
			_ = j.DeleteBatch(ctx, tx, id2)
		})
	})
	assert.NotEqual(t, id1, id2)

	last, err := j.LastBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, id2, last.ID)
	assert.Equal(t, second, last.Commands)

	all, err := j.Batches(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(all), 2)
	assert.Equal(t, first, all[len(all)-2].Commands)

	inTx(t, op, true, func(tx pgx.Tx) {
		require.NoError(t, j.DeleteBatch(ctx, tx, id2))
	})
	last, err = j.LastBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, id1, last.ID)
}

func TestWritesFollowTransaction(t *testing.T) {
	ctx, op, j := setup(t)
	cmds := []command.Command{{Op: command.CreateView, Name: "totals"}}

	var id string
	inTx(t, op, false, func(tx pgx.Tx) {
		var err error
		id, err = j.Append(ctx, tx, cmds)
		require.NoError(t, err)
	})
	assert.NotContains(t, batchIDs(t, j), id, "append is rolled back")

	inTx(t, op, true, func(tx pgx.Tx) {
		var err error
		id, err = j.Append(ctx, tx, cmds)
		require.NoError(t, err)
	})
	t.Cleanup(func() {
		inTx(t, op, true, func(tx pgx.Tx) { _ = j.DeleteBatch(ctx, tx, id) })
	})
	assert.Contains(t, batchIDs(t, j), id)

	inTx(t, op, false, func(tx pgx.Tx) {
		require.NoError(t, j.DeleteBatch(ctx, tx, id))
	})
	assert.Contains(t, batchIDs(t, j), id, "delete is rolled back")
}
