package scancmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-corpus/internal/commands"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

const (
	scanOperation   = "corpus.scan_directory"
	exportOperation = "corpus.export_corpus"
)

// ErrSnapshotMissing is returned when an export runs before any scan has
// published a snapshot.
var ErrSnapshotMissing = errors.New("corpus command: no published snapshot to export")

var (
	_ command.Commander[ScanDirectoryCommand] = (*ScanDirectoryHandler)(nil)
	_ command.Commander[ExportCorpusCommand]  = (*ExportCorpusHandler)(nil)
)

// ScannerFactory builds a scanner bound to the requested content directory.
type ScannerFactory func(directory string) (interfaces.Scanner, error)

// ReportSink receives the scan output, letting CLI callers render the report
// without re-running the scan.
type ReportSink func(*interfaces.Corpus, *interfaces.Report)

// ScanDirectoryHandler orchestrates corpus scans via the shared command
// handler foundation.
type ScanDirectoryHandler struct {
	inner *commands.Handler[ScanDirectoryCommand]
}

// NewScanDirectoryHandler creates a handler bound to the supplied scanner factory.
func NewScanDirectoryHandler(factory ScannerFactory, logger interfaces.Logger, sink ReportSink, opts ...commands.HandlerOption[ScanDirectoryCommand]) *ScanDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ScanDirectoryCommand) error {
		svc, err := factory(msg.Directory)
		if err != nil {
			return err
		}

		corpus, report, err := svc.Scan(ctx, interfaces.ScanOptions{
			IncludeDrafts: msg.IncludeDrafts,
			DryRun:        msg.DryRun,
		})
		if sink != nil {
			sink(corpus, report)
		}
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"directory":   msg.Directory,
			"scanned":     report.Scanned,
			"loaded":      report.Loaded,
			"collections": len(corpus.Collections),
			"warnings":    report.Warnings(),
			"errors":      report.Errors(),
			"dry_run":     msg.DryRun,
		}).Info("corpus.command.scan_directory.completed")
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[ScanDirectoryCommand]{
		commands.WithLogger[ScanDirectoryCommand](baseLogger),
		commands.WithOperation[ScanDirectoryCommand](scanOperation),
	}, opts...)

	return &ScanDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *ScanDirectoryHandler) Execute(ctx context.Context, msg ScanDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ExportCorpusHandler serializes the current snapshot for downstream tools.
type ExportCorpusHandler struct {
	inner *commands.Handler[ExportCorpusCommand]
}

// NewExportCorpusHandler creates a handler reading from the supplied snapshot source.
func NewExportCorpusHandler(snapshots interfaces.SnapshotSource, logger interfaces.Logger, opts ...commands.HandlerOption[ExportCorpusCommand]) *ExportCorpusHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ExportCorpusCommand) error {
		if snapshots == nil {
			return ErrSnapshotMissing
		}
		corpus := snapshots.Current()
		if corpus == nil {
			return ErrSnapshotMissing
		}

		var data []byte
		var err error
		if msg.Pretty {
			data, err = json.MarshalIndent(corpus, "", "  ")
		} else {
			data, err = json.Marshal(corpus)
		}
		if err != nil {
			return fmt.Errorf("corpus command: encode corpus: %w", err)
		}
		data = append(data, '\n')

		if msg.Output == "-" {
			if _, err := os.Stdout.Write(data); err != nil {
				return fmt.Errorf("corpus command: write stdout: %w", err)
			}
		} else if err := os.WriteFile(msg.Output, data, 0o644); err != nil {
			return fmt.Errorf("corpus command: write %s: %w", msg.Output, err)
		}

		logging.WithFields(baseLogger, map[string]any{
			"output":      msg.Output,
			"collections": len(corpus.Collections),
		}).Info("corpus.command.export_corpus.completed")
		return nil
	}

	handlerOpts := append([]commands.HandlerOption[ExportCorpusCommand]{
		commands.WithLogger[ExportCorpusCommand](baseLogger),
		commands.WithOperation[ExportCorpusCommand](exportOperation),
	}, opts...)

	return &ExportCorpusHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *ExportCorpusHandler) Execute(ctx context.Context, msg ExportCorpusCommand) error {
	return h.inner.Execute(ctx, msg)
}
