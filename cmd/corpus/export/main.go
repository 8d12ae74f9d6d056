package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/goliatone/go-corpus/cmd/corpus/internal/bootstrap"
	scancmd "github.com/goliatone/go-corpus/internal/commands/scan"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

func main() {
	if err := runExport(os.Args[1:]); err != nil {
		log.Fatalf("corpus export: %v", err)
	}
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("corpus-export", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering content files")
	workers := fs.Int("workers", 0, "Parse worker count (0 selects the CPU count)")
	fileTimeout := fs.Duration("file-timeout", 5*time.Second, "Per-file read timeout (0 disables the bound)")
	includeDrafts := fs.Bool("include-drafts", false, "Include draft records in visible sequences (preview mode)")
	defaultTemplate := fs.String("default-template", "page.html", "Template applied when no record or sibling declares one")
	storageDSN := fs.String("db", "", "Optional sqlite DSN for snapshot history")
	out := fs.String("out", "-", "Destination path for the corpus JSON (\"-\" for stdout)")
	pretty := fs.Bool("pretty", true, "Indent the JSON output")
	quiet := fs.Bool("quiet", true, "Disable structured logging output")
	logLevel := fs.String("log-level", "info", "Logging level")
	logFormat := fs.String("log-format", "console", "Logging format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := bootstrap.BuildModule(bootstrap.Options{
		ContentDir:      *contentDir,
		Pattern:         *pattern,
		Recursive:       true,
		Workers:         *workers,
		FileTimeout:     *fileTimeout,
		IncludeDrafts:   *includeDrafts,
		DefaultTemplate: *defaultTemplate,
		StorageDSN:      *storageDSN,
		LogLevel:        *logLevel,
		LogFormat:       *logFormat,
		Quiet:           *quiet,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()

	_, report, err := module.Module.Scan(ctx, interfaces.ScanOptions{IncludeDrafts: *includeDrafts})
	if err != nil {
		return fmt.Errorf("scan %s: %w", *contentDir, err)
	}
	if errs := report.Errors(); errs > 0 {
		fmt.Fprintf(os.Stderr, "scan reported %d errors (see -quiet=false for detail)\n", errs)
	}

	handler := scancmd.NewExportCorpusHandler(module.Module.Snapshots(), module.Logger)
	return handler.Execute(ctx, scancmd.ExportCorpusCommand{
		Output: *out,
		Pretty: *pretty,
	})
}
