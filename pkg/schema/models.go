// Package schema provides the database model of the gnviews journal.
// Every applied batch of commands is stored, so the last batch can be
// inverted by a rollback.
package schema

import (
	"time"
)

// JournalTable is the name of the journal table.
const JournalTable = "gnviews_journal"

// JournalEntry is one command of an applied batch.
type JournalEntry struct {
	// ID orders entries across batches.
	ID uint `db:"id" gorm:"primaryKey"`

	// BatchID groups commands applied in one run.
	BatchID string `db:"batch_id" gorm:"type:uuid;not null;index:idx_gnviews_journal_batch,priority:1"`

	// Position is the issuance order inside the batch, starting at 0.
	Position int `db:"position" gorm:"not null;index:idx_gnviews_journal_batch,priority:2"`

	// Op is the command operation, for example update_view.
	Op string `db:"op" gorm:"type:varchar(20);not null"`

	// Name is the canonical key of the target relation.
	Name string `db:"name" gorm:"type:text;not null"`

	// To is the second relation of rename and replace commands.
	To string `db:"to_name" gorm:"column:to_name;type:text"`

	// Args keeps command arguments as JSON.
	Args string `db:"args" gorm:"type:text"`

	// AppVersion is the gnviews version that applied the batch.
	AppVersion string `db:"app_version" gorm:"type:varchar(50)"`

	CreatedAt time.Time `db:"created_at" gorm:"not null"`
}

// TableName implements gorm's Tabler.
func (JournalEntry) TableName() string {
	return JournalTable
}
