package schema

import (
	"fmt"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnviews/pkg/command"
)

// Batch is a group of journal entries applied together.
type Batch struct {
	ID         string
	AppVersion string
	CreatedAt  time.Time
	Commands   []command.Command
}

// NewEntries converts commands of a batch to journal entries.
func NewEntries(
	batchID, appVersion string,
	createdAt time.Time,
	cmds []command.Command,
) ([]JournalEntry, error) {
	enc := gnfmt.GNjson{}
	res := make([]JournalEntry, len(cmds))
	for i, c := range cmds {
		args, err := enc.Encode(c.Args)
		if err != nil {
			return nil, fmt.Errorf("cannot encode %s %s: %w", c.Op, c.Name, err)
		}
		res[i] = JournalEntry{
			BatchID:    batchID,
			Position:   i,
			Op:         string(c.Op),
			Name:       c.Name,
			To:         c.To,
			Args:       string(args),
			AppVersion: appVersion,
			CreatedAt:  createdAt,
		}
	}
	return res, nil
}

// Command restores the command of an entry.
func (e JournalEntry) Command() (command.Command, error) {
	res := command.Command{
		Op:   command.Op(e.Op),
		Name: e.Name,
		To:   e.To,
	}
	if e.Args == "" {
		return res, nil
	}

	enc := gnfmt.GNjson{}
	if err := enc.Decode([]byte(e.Args), &res.Args); err != nil {
		return res, fmt.Errorf("cannot decode arguments of %s %s: %w", e.Op, e.Name, err)
	}
	return res, nil
}

// Batches groups entries by batch. Entries must be ordered by batch and
// position, the order of batches is kept.
func Batches(entries []JournalEntry) ([]Batch, error) {
	var res []Batch
	for _, e := range entries {
		if len(res) == 0 || res[len(res)-1].ID != e.BatchID {
			res = append(res, Batch{
				ID:         e.BatchID,
				AppVersion: e.AppVersion,
				CreatedAt:  e.CreatedAt,
			})
		}
		c, err := e.Command()
		if err != nil {
			return nil, err
		}
		b := &res[len(res)-1]
		b.Commands = append(b.Commands, c)
	}
	return res, nil
}
