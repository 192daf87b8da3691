package command

import (
	"context"
	"slices"
	"sync"

	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
)

// Recorder implements lifecycle.Statements by recording every call
// without touching a database. It is also embedded by the statements
// implementation that does execute SQL.
type Recorder struct {
	mu   sync.Mutex
	cmds []Command
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends a command.
func (r *Recorder) Record(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.Args.Materialized = cloneMaterialized(c.Args.Materialized)
	r.cmds = append(r.cmds, c)
}

// Commands returns a copy of the recorded commands in issuance order.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.cmds)
}

// Reset forgets recorded commands.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = nil
}

// CreateView records a create_view command.
func (r *Recorder) CreateView(
	_ context.Context,
	name relation.Name,
	opts lifecycle.CreateOptions,
) error {
	r.Record(Command{
		Op:   CreateView,
		Name: name.Key(),
		Args: Args{
			Version:       opts.Version,
			SQLDefinition: opts.SQLDefinition,
			Materialized:  opts.Materialized,
		},
	})
	return nil
}

// DropView records a drop_view command.
func (r *Recorder) DropView(
	_ context.Context,
	name relation.Name,
	opts lifecycle.DropOptions,
) error {
	r.Record(Command{
		Op:   DropView,
		Name: name.Key(),
		Args: Args{
			RevertToVersion: opts.RevertToVersion,
			Materialized:    opts.Materialized,
		},
	})
	return nil
}

// UpdateView records an update_view command.
func (r *Recorder) UpdateView(
	_ context.Context,
	name relation.Name,
	opts lifecycle.UpdateOptions,
) error {
	r.Record(Command{
		Op:   UpdateView,
		Name: name.Key(),
		Args: Args{
			Version:         opts.Version,
			SQLDefinition:   opts.SQLDefinition,
			RevertToVersion: opts.RevertToVersion,
			Materialized:    opts.Materialized,
		},
	})
	return nil
}

// ReplaceView records a replace_view command.
func (r *Recorder) ReplaceView(
	_ context.Context,
	from, to relation.Name,
	opts lifecycle.ReplaceOptions,
) error {
	c := Command{
		Op:   ReplaceView,
		Name: from.Key(),
		Args: Args{
			Version:         opts.Version,
			RevertToVersion: opts.RevertToVersion,
			Materialized:    opts.Materialized,
		},
	}
	if !to.IsZero() {
		c.To = to.Key()
	}
	r.Record(c)
	return nil
}

// RenameView records a rename_view command.
func (r *Recorder) RenameView(
	_ context.Context,
	from, to relation.Name,
	opts lifecycle.RenameOptions,
) error {
	r.Record(Command{
		Op:   RenameView,
		Name: from.Key(),
		To:   to.Key(),
		Args: Args{
			Version:         opts.Version,
			RevertToVersion: opts.RevertToVersion,
			Materialized:    opts.Materialized,
		},
	})
	return nil
}

// CreateFunction records a create_function command.
func (r *Recorder) CreateFunction(
	_ context.Context,
	name relation.Name,
	opts lifecycle.CreateOptions,
) error {
	r.Record(Command{
		Op:   CreateFunction,
		Name: name.Key(),
		Args: Args{Version: opts.Version, SQLDefinition: opts.SQLDefinition},
	})
	return nil
}

// DropFunction records a drop_function command.
func (r *Recorder) DropFunction(
	_ context.Context,
	name relation.Name,
	opts lifecycle.DropOptions,
) error {
	r.Record(Command{
		Op:   DropFunction,
		Name: name.Key(),
		Args: Args{RevertToVersion: opts.RevertToVersion},
	})
	return nil
}

// UpdateFunction records an update_function command.
func (r *Recorder) UpdateFunction(
	_ context.Context,
	name relation.Name,
	opts lifecycle.UpdateOptions,
) error {
	r.Record(Command{
		Op:   UpdateFunction,
		Name: name.Key(),
		Args: Args{
			Version:         opts.Version,
			SQLDefinition:   opts.SQLDefinition,
			RevertToVersion: opts.RevertToVersion,
		},
	})
	return nil
}
