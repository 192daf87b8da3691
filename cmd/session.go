/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/internal/iodb"
	"github.com/gnames/gnviews/internal/iodefs"
	"github.com/gnames/gnviews/internal/iojournal"
	"github.com/gnames/gnviews/internal/iologger"
	"github.com/gnames/gnviews/internal/iomigrate"
	"github.com/gnames/gnviews/internal/ioschema"
	"github.com/gnames/gnviews/pkg/command"
	"github.com/gnames/gnviews/pkg/db"
)

// session is a connected database with the journal and the runner.
type session struct {
	op      db.Operator
	journal *iojournal.Journal
	runner  *iomigrate.Runner
}

func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}
	// stdout may carry dump or plan output, so the connection is only logged
	slog.Info("Connected to database",
		"user", cfg.Database.User,
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Database,
	)
	return op, nil
}

func openSession(ctx context.Context) (*session, error) {
	op, err := connect(ctx)
	if err != nil {
		return nil, err
	}

	// the journal is written in batch transactions, so it has to exist
	// before the first one
	if err = ioschema.NewManager(op).Migrate(ctx); err != nil {
		_ = op.Close()
		return nil, err
	}

	gormDB, err := ioschema.OpenGORM(op.Pool())
	if err != nil {
		_ = op.Close()
		return nil, err
	}

	journal := iojournal.New(gormDB)
	runner := iomigrate.New(
		op,
		journal,
		iodefs.New(cfg.Views.DefinitionsDir),
		iodefs.New(cfg.Views.FunctionsDir),
		iologger.NewReporter(quiet),
		cfg,
	)
	return &session{op: op, journal: journal, runner: runner}, nil
}

func (s *session) close() {
	_ = s.op.Close()
}

// applyCommands runs commands as one batch and prints the outcome.
func applyCommands(cmds ...command.Command) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.close()

	id, err := s.runner.Apply(ctx, cmds)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	msg, vars := batchMessage(id)
	gn.Info(msg, vars...)
	return nil
}

// batchMessage describes the outcome of Apply. An empty batch ID means
// that no command was recorded.
func batchMessage(id string) (string, []any) {
	if id == "" {
		return "Nothing to apply, the journal is unchanged", nil
	}
	return "Batch <em>%s</em> has been applied", []any{id}
}
