// Package corpus turns a directory tree of frontmatter-prefixed Markdown
// files into an ordered, draft-filtered, atomically published content corpus.
// The module facade wires the scan pipeline, snapshot store, logging, and the
// optional persistence layer from a single Config.
package corpus

import (
	"context"
	"fmt"

	"github.com/goliatone/go-corpus/internal/collections"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/internal/logging/gologger"
	"github.com/goliatone/go-corpus/internal/scanner"
	"github.com/goliatone/go-corpus/internal/storage"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// ScannerService exports the scan service contract for consumers of the corpus package.
type ScannerService = scanner.Service

// SnapshotStore exports the atomic snapshot store.
type SnapshotStore = collections.Store

// StorageService exports the optional persistence layer.
type StorageService = storage.Store

// Module is the top level corpus runtime façade.
type Module struct {
	cfg       Config
	logs      interfaces.LoggerProvider
	snapshots *collections.Store
	scanner   *scanner.Service
	storage   *storage.Store
}

// New constructs a corpus module using the provided configuration.
func New(cfg Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{
		cfg:       cfg,
		snapshots: collections.NewStore(),
	}

	if cfg.Features.Logger {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		m.logs = provider
	}

	svc, err := scanner.NewService(scanner.Config{
		ContentDir:      cfg.ContentDir,
		Pattern:         cfg.Scanner.Pattern,
		Recursive:       cfg.Scanner.Recursive,
		Workers:         cfg.Scanner.Workers,
		FileTimeout:     cfg.Scanner.FileTimeout,
		IncludeDrafts:   cfg.Ordering.IncludeDrafts,
		DefaultTemplate: cfg.Ordering.DefaultTemplate,
	}, scanner.Dependencies{
		Snapshots: m.snapshots,
		Logger:    logging.ScannerLogger(m.logs),
	})
	if err != nil {
		return nil, err
	}
	m.scanner = svc

	if cfg.Features.Storage {
		db, err := storage.Open(cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		store := storage.New(db, logging.StorageLogger(m.logs))
		if err := store.Init(context.Background()); err != nil {
			return nil, fmt.Errorf("corpus: init storage: %w", err)
		}
		m.storage = store
	}

	return m, nil
}

// Scanner returns the configured scan service.
func (m *Module) Scanner() *ScannerService {
	return m.scanner
}

// Snapshots returns the atomic snapshot store.
func (m *Module) Snapshots() *SnapshotStore {
	return m.snapshots
}

// Corpus returns the currently published snapshot, nil before the first scan.
func (m *Module) Corpus() *interfaces.Corpus {
	if m == nil || m.snapshots == nil {
		return nil
	}
	return m.snapshots.Current()
}

// Storage returns the persistence layer, nil when the feature is disabled.
func (m *Module) Storage() *StorageService {
	if m == nil {
		return nil
	}
	return m.storage
}

// Logger returns a module-scoped logger from the configured provider.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.logs, name)
}

// Scan runs a full scan, publishing the snapshot and, when storage is
// enabled and the run is not a dry run, persisting it to snapshot history.
func (m *Module) Scan(ctx context.Context, opts interfaces.ScanOptions) (*interfaces.Corpus, *interfaces.Report, error) {
	corpus, report, err := m.scanner.Scan(ctx, opts)
	if err != nil {
		return corpus, report, err
	}

	if m.storage != nil && !opts.DryRun {
		if _, err := m.storage.SaveCorpus(ctx, corpus, report); err != nil {
			return corpus, report, err
		}
	}

	return corpus, report, nil
}
