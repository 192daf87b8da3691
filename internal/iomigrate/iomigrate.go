// Package iomigrate runs lifecycle operations in transactions and keeps
// the journal of applied batches. Each batch is one transaction, which is
// also what savepoints of index recreation are nested in.
package iomigrate

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnviews/internal/iostatements"
	"github.com/gnames/gnviews/internal/ioviews"
	"github.com/gnames/gnviews/pkg/command"
	"github.com/gnames/gnviews/pkg/config"
	"github.com/gnames/gnviews/pkg/db"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
	"github.com/gnames/gnviews/pkg/schema"
	"github.com/gnames/gnviews/pkg/tempname"
)

// Journal keeps applied batches. Writes take the connection of the batch
// transaction.
type Journal interface {
	Append(ctx context.Context, conn db.Conn, cmds []command.Command) (string, error)
	LastBatch(ctx context.Context) (schema.Batch, error)
	DeleteBatch(ctx context.Context, conn db.Conn, id string) error
}

// Runner opens one transaction per batch.
type Runner struct {
	operator db.Operator
	journal  Journal
	defs     lifecycle.DefinitionSource
	funcs    lifecycle.DefinitionSource
	reporter lifecycle.Reporter
	maxLen   int
}

// New creates a Runner. defs holds view definitions, funcs holds function
// definitions.
func New(
	op db.Operator,
	journal Journal,
	defs, funcs lifecycle.DefinitionSource,
	reporter lifecycle.Reporter,
	cfg *config.Config,
) *Runner {
	return &Runner{
		operator: op,
		journal:  journal,
		defs:     defs,
		funcs:    funcs,
		reporter: reporter,
		maxLen:   cfg.Views.MaxIdentifierLength,
	}
}

// Run calls fn with statements bound to a new transaction. The
// transaction is committed when fn succeeds and rolled back otherwise.
// Recorded commands are returned, the journal is not changed.
func (r *Runner) Run(
	ctx context.Context,
	fn func(ctx context.Context, s *iostatements.Statements) error,
) ([]command.Command, error) {
	return r.run(ctx, fn, nil)
}

// run is Run with an extra step that gets recorded commands before the
// transaction is committed.
func (r *Runner) run(
	ctx context.Context,
	fn func(ctx context.Context, s *iostatements.Statements) error,
	after func(tx db.Conn, recorded []command.Command) error,
) ([]command.Command, error) {
	var res []command.Command
	err := r.inTx(ctx, func(tx db.Conn, views *ioviews.Adapter) error {
		s := iostatements.New(views, r.defs, nil).WithFunctions(r.funcs)
		if err := fn(ctx, s); err != nil {
			return err
		}
		res = s.Commands()
		if after != nil {
			return after(tx, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Apply applies commands as one batch and journals them in the same
// transaction. It returns the batch ID, which is empty when there was
// nothing to apply.
func (r *Runner) Apply(ctx context.Context, cmds []command.Command) (string, error) {
	start := time.Now()
	var id string
	recorded, err := r.run(ctx,
		func(ctx context.Context, s *iostatements.Statements) error {
			return command.ApplyAll(ctx, s, cmds)
		},
		func(tx db.Conn, recorded []command.Command) error {
			var err error
			id, err = r.journal.Append(ctx, tx, recorded)
			return err
		},
	)
	if err != nil {
		return "", err
	}
	slog.Info("Batch applied",
		"batch", id,
		"commands", len(recorded),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return id, nil
}

// Rollback applies inverses of the last batch in reverse order and removes
// the batch from the journal. Irreversible commands fail before a
// transaction is opened.
func (r *Runner) Rollback(ctx context.Context) ([]command.Command, error) {
	batch, err := r.journal.LastBatch(ctx)
	if err != nil {
		return nil, err
	}
	inverse, err := command.InvertAll(batch.Commands)
	if err != nil {
		return nil, err
	}

	_, err = r.run(ctx,
		func(ctx context.Context, s *iostatements.Statements) error {
			return command.ApplyAll(ctx, s, inverse)
		},
		func(tx db.Conn, _ []command.Command) error {
			return r.journal.DeleteBatch(ctx, tx, batch.ID)
		},
	)
	if err != nil {
		return nil, err
	}
	slog.Info("Batch rolled back", "batch", batch.ID, "commands", len(inverse))
	return inverse, nil
}

// Refresh refreshes one materialized view.
func (r *Runner) Refresh(
	ctx context.Context,
	name relation.Name,
	opts lifecycle.RefreshOptions,
) error {
	return r.inTx(ctx, func(_ db.Conn, views *ioviews.Adapter) error {
		return views.RefreshMaterializedView(ctx, name, opts)
	})
}

// RefreshAll refreshes all materialized views in dependency order.
func (r *Runner) RefreshAll(ctx context.Context, concurrently bool) error {
	return r.inTx(ctx, func(_ db.Conn, views *ioviews.Adapter) error {
		return views.RefreshAll(ctx, concurrently)
	})
}

func (r *Runner) inTx(
	ctx context.Context,
	fn func(tx db.Conn, views *ioviews.Adapter) error,
) error {
	pool := r.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}
	version, err := r.operator.ServerVersion(ctx)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return TransactionError("begin", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	names := tempname.NewGenerator(r.maxLen)
	slog.Debug("Transaction started", "salt", names.Salt())
	views := ioviews.New(tx, r.reporter, names, version)
	if err = fn(tx, views); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return TransactionError("commit", err)
	}
	return nil
}
