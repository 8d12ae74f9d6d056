package storage

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-corpus/internal/collections"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := New(db, nil)
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return store
}

func fixtureCorpus() (*interfaces.Corpus, *interfaces.Report) {
	records := []*interfaces.Record{
		{
			Path:           "day 1/chapter-1.md",
			CollectionID:   "day 1",
			CollectionSlug: "day-1",
			ItemIndex:      1,
			Indexed:        true,
			Slug:           "chapter-1",
			Title:          "Opening",
			Description:    "First chapter",
			Date:           time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			HasDate:        true,
			Checksum:       "abc123",
		},
		{
			Path:           "day 1/chapter-2.md",
			CollectionID:   "day 1",
			CollectionSlug: "day-1",
			ItemIndex:      2,
			Indexed:        true,
			Slug:           "chapter-2",
			Title:          "Hidden",
			Draft:          true,
		},
	}

	corpus, _ := collections.Build("content", records, collections.BuildOptions{
		DefaultTemplate: collections.DefaultTemplate,
	})
	report := &interfaces.Report{
		Root:    "content",
		Scanned: 2,
		Loaded:  2,
		Issues: []interfaces.Issue{
			{Path: "day 1/chapter-2.md", Code: interfaces.CodeMissingField, Level: interfaces.IssueWarning, Message: "description missing"},
		},
	}
	return corpus, report
}

func TestSaveCorpusAndReadBack(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	corpus, report := fixtureCorpus()

	id, err := store.SaveCorpus(ctx, corpus, report)
	if err != nil {
		t.Fatalf("save corpus: %v", err)
	}

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.ID != id {
		t.Fatalf("expected the saved snapshot, got %+v", latest)
	}
	if latest.Root != "content" || latest.Collections != 1 || latest.RecordCount != 2 {
		t.Fatalf("unexpected snapshot header %+v", latest)
	}
	if latest.WarningCount != 1 || latest.ErrorCount != 0 {
		t.Fatalf("unexpected issue counts %+v", latest)
	}

	rows, err := store.Records(ctx, id)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Slug != "chapter-1" || !first.Visible || first.Position != 0 {
		t.Fatalf("unexpected first row %+v", first)
	}
	if first.RenderTemplate != collections.DefaultTemplate {
		t.Fatalf("expected resolved template, got %q", first.RenderTemplate)
	}
	if first.Date == nil || !first.Date.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected the record date persisted, got %v", first.Date)
	}

	// The draft is persisted for history but marked invisible.
	second := rows[1]
	if second.Slug != "chapter-2" || second.Visible || second.Position != -1 {
		t.Fatalf("unexpected draft row %+v", second)
	}
	if !second.Draft {
		t.Fatal("expected the draft flag persisted")
	}
}

func TestLatestOnEmptyStore(t *testing.T) {
	store := newTestStore(t)

	latest, err := store.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest != nil {
		t.Fatalf("expected nil on an empty store, got %+v", latest)
	}
}

func TestSaveCorpusNilCorpus(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.SaveCorpus(context.Background(), nil, nil); err == nil {
		t.Fatal("expected an error for a nil corpus")
	}
}

func TestSaveCorpusHistoryOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	corpus, report := fixtureCorpus()

	if _, err := store.SaveCorpus(ctx, corpus, report); err != nil {
		t.Fatalf("first save: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)
	second, err := store.SaveCorpus(ctx, corpus, report)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	latest, err := store.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.ID != second {
		t.Fatalf("expected the most recent snapshot, got %+v", latest)
	}
}
