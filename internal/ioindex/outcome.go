package ioindex

import (
	"fmt"

	"github.com/gnames/gnviews/pkg/relation"
)

// Outcome is the result of recreating one index.
type Outcome struct {
	// Index is the definition that was executed.
	Index relation.Index

	// Recreated is true when the index exists again.
	Recreated bool

	// Reason is the database error for a skipped index.
	Reason string
}

// String returns a message for the progress reporter.
func (o Outcome) String() string {
	if o.Recreated {
		return fmt.Sprintf("index '%s' on '%s' has been recreated",
			o.Index.IndexName, o.Index.Owner.Key())
	}
	return fmt.Sprintf(
		"index '%s' on '%s' is no longer valid and has been dropped: %s",
		o.Index.IndexName, o.Index.Owner.Key(), o.Reason,
	)
}

// Skipped returns outcomes of indexes that were not recreated.
func Skipped(oo []Outcome) []Outcome {
	var res []Outcome
	for _, o := range oo {
		if !o.Recreated {
			res = append(res, o)
		}
	}
	return res
}
