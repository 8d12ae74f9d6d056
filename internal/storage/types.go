package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Snapshot is one persisted scan result. Snapshots are append-only history;
// the latest row is what authoring tools reload between scans.
type Snapshot struct {
	bun.BaseModel `bun:"table:corpus_snapshots,alias:cs"`

	ID           uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Root         string    `bun:"root,notnull" json:"root"`
	Collections  int       `bun:"collections,notnull" json:"collections"`
	RecordCount  int       `bun:"record_count,notnull" json:"record_count"`
	WarningCount int       `bun:"warning_count,notnull" json:"warning_count"`
	ErrorCount   int       `bun:"error_count,notnull" json:"error_count"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// SnapshotRecord is one corpus record flattened into the snapshot history.
// Bodies stay on disk; the checksum is enough to detect unchanged content.
type SnapshotRecord struct {
	bun.BaseModel `bun:"table:corpus_records,alias:cr"`

	ID             uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	SnapshotID     uuid.UUID  `bun:"snapshot_id,notnull,type:uuid" json:"snapshot_id"`
	Path           string     `bun:"path,notnull" json:"path"`
	CollectionID   string     `bun:"collection_id,notnull" json:"collection_id"`
	CollectionSlug string     `bun:"collection_slug" json:"collection_slug"`
	ItemIndex      int        `bun:"item_index,notnull" json:"item_index"`
	Indexed        bool       `bun:"indexed,notnull" json:"indexed"`
	Slug           string     `bun:"slug,notnull" json:"slug"`
	Title          string     `bun:"title,notnull" json:"title"`
	Description    *string    `bun:"description" json:"description,omitempty"`
	Date           *time.Time `bun:"date,nullzero" json:"date,omitempty"`
	Draft          bool       `bun:"draft,notnull" json:"draft"`
	Weight         int        `bun:"weight,notnull" json:"weight"`
	Template       *string    `bun:"template" json:"template,omitempty"`
	RenderTemplate string     `bun:"render_template,notnull" json:"render_template"`
	Position       int        `bun:"position,notnull" json:"position"`
	Visible        bool       `bun:"visible,notnull" json:"visible"`
	Ambiguous      bool       `bun:"ambiguous,notnull" json:"ambiguous"`
	Checksum       string     `bun:"checksum" json:"checksum,omitempty"`

	Snapshot *Snapshot `bun:"rel:belongs-to,join:snapshot_id=id" json:"snapshot,omitempty"`
}
