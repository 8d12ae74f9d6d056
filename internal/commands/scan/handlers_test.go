package scancmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-corpus/internal/collections"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

type fakeScanner struct {
	corpus *interfaces.Corpus
	report *interfaces.Report
	err    error

	gotOpts interfaces.ScanOptions
}

func (f *fakeScanner) Scan(ctx context.Context, opts interfaces.ScanOptions) (*interfaces.Corpus, *interfaces.Report, error) {
	f.gotOpts = opts
	return f.corpus, f.report, f.err
}

func testCorpus() *interfaces.Corpus {
	return &interfaces.Corpus{
		Root: "content",
		Collections: []*interfaces.Collection{
			{ID: "day 1", Slug: "day-1", Ordinal: 1},
		},
	}
}

func TestScanDirectoryHandler(t *testing.T) {
	scanner := &fakeScanner{
		corpus: testCorpus(),
		report: &interfaces.Report{Root: "content", Scanned: 1, Loaded: 1},
	}

	var sunkCorpus *interfaces.Corpus
	var sunkReport *interfaces.Report
	factory := func(directory string) (interfaces.Scanner, error) {
		if directory != "content" {
			t.Fatalf("unexpected directory %q", directory)
		}
		return scanner, nil
	}
	sink := func(c *interfaces.Corpus, r *interfaces.Report) {
		sunkCorpus, sunkReport = c, r
	}

	handler := NewScanDirectoryHandler(factory, nil, sink)
	err := handler.Execute(context.Background(), ScanDirectoryCommand{
		Directory:     "content",
		IncludeDrafts: true,
		DryRun:        true,
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if !scanner.gotOpts.IncludeDrafts || !scanner.gotOpts.DryRun {
		t.Fatalf("expected scan options forwarded, got %+v", scanner.gotOpts)
	}
	if sunkCorpus != scanner.corpus || sunkReport != scanner.report {
		t.Fatal("expected the sink to receive the scan output")
	}
}

func TestScanDirectoryHandlerValidation(t *testing.T) {
	handler := NewScanDirectoryHandler(func(string) (interfaces.Scanner, error) {
		t.Fatal("factory must not run on validation failure")
		return nil, nil
	}, nil, nil)

	if err := handler.Execute(context.Background(), ScanDirectoryCommand{}); err == nil {
		t.Fatal("expected a validation error for an empty directory")
	}
}

func TestScanDirectoryHandlerScanFailure(t *testing.T) {
	boom := errors.New("root unreadable")
	factory := func(string) (interfaces.Scanner, error) {
		return &fakeScanner{err: boom}, nil
	}

	var sinkCalled bool
	handler := NewScanDirectoryHandler(factory, nil, func(*interfaces.Corpus, *interfaces.Report) {
		sinkCalled = true
	})

	err := handler.Execute(context.Background(), ScanDirectoryCommand{Directory: "content"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the scan failure surfaced, got %v", err)
	}
	// The sink still fires so callers can render partial reports.
	if !sinkCalled {
		t.Fatal("expected the sink to run on failure")
	}
}

func TestExportCorpusHandler(t *testing.T) {
	store := collections.NewStore()
	store.Publish(testCorpus())

	out := filepath.Join(t.TempDir(), "corpus.json")
	handler := NewExportCorpusHandler(store, nil)

	if err := handler.Execute(context.Background(), ExportCorpusCommand{Output: out, Pretty: true}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var decoded interfaces.Corpus
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if decoded.Root != "content" || len(decoded.Collections) != 1 {
		t.Fatalf("unexpected export %+v", decoded)
	}
}

func TestExportCorpusHandlerNoSnapshot(t *testing.T) {
	handler := NewExportCorpusHandler(collections.NewStore(), nil)

	err := handler.Execute(context.Background(), ExportCorpusCommand{Output: "-"})
	if !errors.Is(err, ErrSnapshotMissing) {
		t.Fatalf("expected ErrSnapshotMissing, got %v", err)
	}
}

func TestExportCorpusHandlerValidation(t *testing.T) {
	handler := NewExportCorpusHandler(collections.NewStore(), nil)

	if err := handler.Execute(context.Background(), ExportCorpusCommand{}); err == nil {
		t.Fatal("expected a validation error for an empty output")
	}
}
