package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-corpus/internal/collections"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/pkg/interfaces"

	_ "github.com/mattn/go-sqlite3"
)

// Open creates a bun handle over a sqlite database at the given DSN.
// Use ":memory:" for throwaway stores.
func Open(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite %s: %w", dsn, err)
	}
	// sqlite is single-writer; one pooled connection also keeps ":memory:"
	// databases visible across queries.
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// Store persists published corpus snapshots so authoring tools can inspect
// scan history and reload the latest corpus without rescanning.
type Store struct {
	db     *bun.DB
	logger interfaces.Logger
}

// New wires a snapshot store over the provided bun handle.
func New(db *bun.DB, logger interfaces.Logger) *Store {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Store{db: db, logger: logger}
}

// Init creates the snapshot tables when absent.
func (s *Store) Init(ctx context.Context) error {
	models := []any{
		(*Snapshot)(nil),
		(*SnapshotRecord)(nil),
	}
	for _, model := range models {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table: %w", err)
		}
	}
	return nil
}

// SaveCorpus flattens a corpus snapshot plus its report into history rows.
// The whole snapshot is written in one transaction so readers never observe a
// partial scan.
func (s *Store) SaveCorpus(ctx context.Context, corpus *interfaces.Corpus, report *interfaces.Report) (uuid.UUID, error) {
	if corpus == nil {
		return uuid.Nil, fmt.Errorf("storage: corpus is required")
	}

	snapshot := &Snapshot{
		ID:          uuid.New(),
		Root:        corpus.Root,
		Collections: len(corpus.Collections),
	}
	if report != nil {
		snapshot.WarningCount = report.Warnings()
		snapshot.ErrorCount = report.Errors()
	}

	rows := []*SnapshotRecord{}
	for _, col := range corpus.Collections {
		visible := map[string]interfaces.Entry{}
		for _, entry := range col.Visible {
			visible[entry.Path] = entry
		}
		for _, rec := range col.Records {
			row := recordRow(snapshot.ID, rec)
			if entry, ok := visible[rec.Path]; ok {
				row.Visible = true
				row.Position = entry.Position
				row.RenderTemplate = entry.RenderTemplate
			} else {
				row.Position = -1
				row.RenderTemplate = collections.ResolveTemplate(rec, col.Records, collections.DefaultTemplate)
			}
			rows = append(rows, row)
		}
	}
	snapshot.RecordCount = len(rows)

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(snapshot).Exec(ctx); err != nil {
			return fmt.Errorf("storage: insert snapshot: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return fmt.Errorf("storage: insert records: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	logging.WithFields(s.logger, map[string]any{
		"snapshot_id": snapshot.ID.String(),
		"records":     snapshot.RecordCount,
		"collections": snapshot.Collections,
	}).Info("storage.snapshot.saved")

	return snapshot.ID, nil
}

// Latest returns the most recent snapshot header, or nil when no scan has
// been persisted yet.
func (s *Store) Latest(ctx context.Context) (*Snapshot, error) {
	snapshot := new(Snapshot)
	err := s.db.NewSelect().
		Model(snapshot).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: latest snapshot: %w", err)
	}
	return snapshot, nil
}

// Records returns a snapshot's rows ordered the way the corpus orders them.
func (s *Store) Records(ctx context.Context, snapshotID uuid.UUID) ([]*SnapshotRecord, error) {
	var rows []*SnapshotRecord
	err := s.db.NewSelect().
		Model(&rows).
		Where("snapshot_id = ?", snapshotID).
		Order("collection_id ASC", "weight ASC", "item_index ASC", "slug ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: snapshot records: %w", err)
	}
	return rows, nil
}

func recordRow(snapshotID uuid.UUID, rec *interfaces.Record) *SnapshotRecord {
	row := &SnapshotRecord{
		ID:             uuid.New(),
		SnapshotID:     snapshotID,
		Path:           rec.Path,
		CollectionID:   rec.CollectionID,
		CollectionSlug: rec.CollectionSlug,
		ItemIndex:      rec.ItemIndex,
		Indexed:        rec.Indexed,
		Slug:           rec.Slug,
		Title:          rec.Title,
		Draft:          rec.Draft,
		Weight:         rec.Weight,
		Ambiguous:      rec.Ambiguous,
		Checksum:       rec.Checksum,
	}
	if rec.Description != "" {
		description := rec.Description
		row.Description = &description
	}
	if rec.HasDate {
		date := rec.Date
		row.Date = &date
	}
	if rec.Template != "" {
		template := rec.Template
		row.Template = &template
	}
	return row
}
