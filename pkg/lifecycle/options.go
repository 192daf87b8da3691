package lifecycle

import "github.com/gnames/gnviews/pkg/relation"

// MaterializedOptions marks a call as operating on a materialized view.
// A nil pointer means a plain view. Options that do not apply to a call are
// ignored.
type MaterializedOptions struct {
	// NoData creates the relation without populating it.
	NoData bool `json:"no_data,omitempty" yaml:"no_data,omitempty"`

	// SideBySide builds a new version under a temporary name and swaps it
	// in, keeping the old one readable meanwhile.
	SideBySide bool `json:"side_by_side,omitempty" yaml:"side_by_side,omitempty"`

	// CopyIndexesFrom names a relation whose indexes are recreated on a
	// new materialized view.
	CopyIndexesFrom string `json:"copy_indexes_from,omitempty" yaml:"copy_indexes_from,omitempty"`

	// RenameIndexes renames indexes whose names embed the old relation name.
	RenameIndexes bool `json:"rename_indexes,omitempty" yaml:"rename_indexes,omitempty"`
}

// CreateOptions configure CreateView.
type CreateOptions struct {
	Version       int
	SQLDefinition string
	Materialized  *MaterializedOptions
}

// Validate returns the options with defaults applied. Without a version
// and SQL the first version is used.
func (o CreateOptions) Validate() (CreateOptions, error) {
	if o.Version != 0 && o.SQLDefinition != "" {
		return o, OptionsConflictError("create", "version", "sql_definition")
	}
	if o.Version < 0 {
		return o, OptionsMissingError("create", "positive version")
	}
	if o.Version == 0 && o.SQLDefinition == "" {
		o.Version = 1
	}
	return o, nil
}

// ValidateFunction is Validate for CreateFunction.
func (o CreateOptions) ValidateFunction() (CreateOptions, error) {
	if o.Materialized != nil {
		return o, OptionsConflictError("create function", "materialized", "function")
	}
	return o.Validate()
}

// DropOptions configure DropView.
type DropOptions struct {
	RevertToVersion int
	Materialized    *MaterializedOptions
}

// ValidateFunction checks DropFunction options.
func (o DropOptions) ValidateFunction() error {
	if o.Materialized != nil {
		return OptionsConflictError("drop function", "materialized", "function")
	}
	return nil
}

// UpdateOptions configure UpdateView.
type UpdateOptions struct {
	Version         int
	SQLDefinition   string
	RevertToVersion int
	Materialized    *MaterializedOptions
}

// Validate checks that exactly one of version and SQL is given, and that
// the materialized strategies do not contradict each other.
func (o UpdateOptions) Validate() error {
	if o.Version != 0 && o.SQLDefinition != "" {
		return OptionsConflictError("update", "version", "sql_definition")
	}
	if o.Version <= 0 && o.SQLDefinition == "" {
		return OptionsMissingError("update", "version or sql_definition")
	}
	if m := o.Materialized; m != nil && m.NoData && m.SideBySide {
		return OptionsConflictError("update", "no_data", "side_by_side")
	}
	return nil
}

// ValidateFunction is Validate for UpdateFunction.
func (o UpdateOptions) ValidateFunction() error {
	if o.Materialized != nil {
		return OptionsConflictError("update function", "materialized", "function")
	}
	return o.Validate()
}

// ReplaceOptions configure ReplaceView.
type ReplaceOptions struct {
	Version         int
	RevertToVersion int
	Materialized    *MaterializedOptions
}

// Validate checks the options against the kind of replacement. Replacing
// in place rewrites a plain view, so it needs a version and cannot be
// materialized.
func (o ReplaceOptions) Validate(to relation.Name) error {
	if !to.IsZero() {
		return nil
	}
	if o.Version <= 0 {
		return OptionsMissingError("replace", "version")
	}
	if o.Materialized != nil {
		return OptionsConflictError("replace", "materialized", "in-place replacement")
	}
	return nil
}

// RenameOptions configure RenameView.
type RenameOptions struct {
	Version         int
	RevertToVersion int
	Materialized    *MaterializedOptions
}

// Validate checks that there is a new name.
func (o RenameOptions) Validate(to relation.Name) error {
	if to.IsZero() {
		return OptionsMissingError("rename", "to")
	}
	return nil
}

// RefreshOptions configure a materialized view refresh.
type RefreshOptions struct {
	// Concurrently refreshes without locking out readers. It needs a
	// populated relation with a unique index.
	Concurrently bool

	// Cascade refreshes upstream materialized views first.
	Cascade bool
}
