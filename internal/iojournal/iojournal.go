// Package iojournal stores batches of applied commands in the
// gnviews_journal table, so that the last batch can be rolled back.
// Writes go through the connection of the batch transaction, so a batch
// is journaled only when its DDL is committed.
package iojournal

import (
	"context"
	"time"

	gnviews "github.com/gnames/gnviews/pkg"
	"github.com/gnames/gnviews/pkg/command"
	"github.com/gnames/gnviews/pkg/db"
	"github.com/gnames/gnviews/pkg/schema"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Journal reads and writes journal entries with GORM.
type Journal struct {
	db *gorm.DB
}

// New creates a Journal. The table must exist, see ioschema.
func New(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

// Append stores commands as a new batch on conn and returns its ID.
// Nothing is stored for an empty batch.
func (j *Journal) Append(
	ctx context.Context,
	conn db.Conn,
	cmds []command.Command,
) (string, error) {
	if len(cmds) == 0 {
		return "", nil
	}

	id := uuid.NewString()
	entries, err := schema.NewEntries(id, gnviews.Version, time.Now().UTC(), cmds)
	if err != nil {
		return "", JournalError("append", err)
	}

	stmt := j.dryRun().Create(&entries).Statement
	if err = exec(ctx, conn, stmt); err != nil {
		return "", JournalError("append", err)
	}
	return id, nil
}

// LastBatch returns the most recently applied batch.
func (j *Journal) LastBatch(ctx context.Context) (schema.Batch, error) {
	var last schema.JournalEntry
	err := j.db.WithContext(ctx).Order("id DESC").Limit(1).Find(&last).Error
	if err != nil {
		return schema.Batch{}, JournalError("read", err)
	}
	if last.BatchID == "" {
		return schema.Batch{}, JournalEmptyError()
	}

	var entries []schema.JournalEntry
	err = j.db.WithContext(ctx).
		Where("batch_id = ?", last.BatchID).
		Order("position").
		Find(&entries).Error
	if err != nil {
		return schema.Batch{}, JournalError("read", err)
	}

	bb, err := schema.Batches(entries)
	if err != nil {
		return schema.Batch{}, JournalError("read", err)
	}
	return bb[0], nil
}

// Batches returns all batches, oldest first.
func (j *Journal) Batches(ctx context.Context) ([]schema.Batch, error) {
	var entries []schema.JournalEntry
	err := j.db.WithContext(ctx).Order("id").Find(&entries).Error
	if err != nil {
		return nil, JournalError("read", err)
	}

	res, err := schema.Batches(entries)
	if err != nil {
		return nil, JournalError("read", err)
	}
	return res, nil
}

// DeleteBatch removes a batch on conn, in the transaction that rolls
// it back.
func (j *Journal) DeleteBatch(ctx context.Context, conn db.Conn, id string) error {
	stmt := j.dryRun().
		Where("batch_id = ?", id).
		Delete(&schema.JournalEntry{}).Statement
	if err := exec(ctx, conn, stmt); err != nil {
		return JournalError("delete", err)
	}
	return nil
}

// dryRun builds statements without running them.
func (j *Journal) dryRun() *gorm.DB {
	return j.db.Session(&gorm.Session{DryRun: true})
}

func exec(ctx context.Context, conn db.Conn, stmt *gorm.Statement) error {
	if stmt.Error != nil {
		return stmt.Error
	}
	_, err := conn.Exec(ctx, stmt.SQL.String(), stmt.Vars...)
	return err
}
