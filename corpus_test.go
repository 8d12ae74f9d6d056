package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func fixtureConfig(t *testing.T) Config {
	t.Helper()
	root := t.TempDir()
	writeFixture(t, root, "day 1/chapter-1.md", `+++
title = "Opening"
description = "First chapter"
+++
body
`)
	writeFixture(t, root, "day 1/chapter-2.md", `---
title: Continuation
description: Second chapter
draft: true
---
body
`)

	cfg := DefaultConfig()
	cfg.ContentDir = root
	return cfg
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContentDir = ""
	if _, err := New(cfg); !errors.Is(err, ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestNewMissingContentRoot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ContentDir = filepath.Join(t.TempDir(), "missing")
	if _, err := New(cfg); err == nil {
		t.Fatal("expected an error for a missing content root")
	}
}

func TestModuleScanPublishesSnapshot(t *testing.T) {
	module, err := New(fixtureConfig(t))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	if module.Corpus() != nil {
		t.Fatal("expected no snapshot before the first scan")
	}

	corpus, report, err := module.Scan(context.Background(), interfaces.ScanOptions{})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if report.Loaded != 2 {
		t.Fatalf("expected two records loaded, got %d", report.Loaded)
	}
	if module.Corpus() != corpus {
		t.Fatal("expected the scan to publish its snapshot")
	}

	day1 := corpus.Collections[0]
	if len(day1.Visible) != 1 {
		t.Fatalf("expected the draft filtered by default, got %d entries", len(day1.Visible))
	}
}

func TestModuleScanWithStorage(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Features.Storage = true
	cfg.Storage.DSN = ":memory:"

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if module.Storage() == nil {
		t.Fatal("expected the storage service wired")
	}

	if _, _, err := module.Scan(context.Background(), interfaces.ScanOptions{}); err != nil {
		t.Fatalf("scan: %v", err)
	}

	latest, err := module.Storage().Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.RecordCount != 2 {
		t.Fatalf("expected the scan persisted, got %+v", latest)
	}
}

func TestModuleScanDryRunSkipsPersistence(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Features.Storage = true
	cfg.Storage.DSN = ":memory:"

	module, err := New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	if _, _, err := module.Scan(context.Background(), interfaces.ScanOptions{DryRun: true}); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if module.Corpus() != nil {
		t.Fatal("a dry run must not publish")
	}

	latest, err := module.Storage().Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest != nil {
		t.Fatalf("a dry run must not persist, got %+v", latest)
	}
}
