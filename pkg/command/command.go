// Package command records mutating view operations as values that can be
// inverted and replayed, which is what migration rollback is built on.
package command

import (
	"github.com/gnames/gnviews/pkg/lifecycle"
)

// Op is the name of a recorded operation.
type Op string

const (
	CreateView  Op = "create_view"
	DropView    Op = "drop_view"
	UpdateView  Op = "update_view"
	ReplaceView Op = "replace_view"
	RenameView  Op = "rename_view"

	CreateFunction Op = "create_function"
	DropFunction   Op = "drop_function"
	UpdateFunction Op = "update_function"
)

// Ops lists all known operations.
var Ops = []Op{
	CreateView, DropView, UpdateView, ReplaceView, RenameView,
	CreateFunction, DropFunction, UpdateFunction,
}

// Valid reports whether the operation is known.
func (o Op) Valid() bool {
	for _, v := range Ops {
		if o == v {
			return true
		}
	}
	return false
}

// Command is one recorded call to the statements surface.
type Command struct {
	// Op is the operation.
	Op Op `json:"op" yaml:"op"`

	// Name is the relation or function the operation works on, or the
	// source of a rename or a replacement.
	Name string `json:"name" yaml:"name"`

	// To is the destination of a rename or a replacement.
	To string `json:"to,omitempty" yaml:"to,omitempty"`

	// Args are the options of the call.
	Args Args `json:"args" yaml:"args"`
}

// Args are the options of a recorded call. Zero values mean the option
// was not given.
type Args struct {
	Version         int                            `json:"version,omitempty" yaml:"version,omitempty"`
	SQLDefinition   string                         `json:"sql_definition,omitempty" yaml:"sql_definition,omitempty"`
	RevertToVersion int                            `json:"revert_to_version,omitempty" yaml:"revert_to_version,omitempty"`
	Materialized    *lifecycle.MaterializedOptions `json:"materialized,omitempty" yaml:"materialized,omitempty"`
}

// CommandRecorder collects commands in the order they were issued.
type CommandRecorder interface {
	Record(c Command)
	Commands() []Command
}

func cloneMaterialized(m *lifecycle.MaterializedOptions) *lifecycle.MaterializedOptions {
	if m == nil {
		return nil
	}
	res := *m
	return &res
}
