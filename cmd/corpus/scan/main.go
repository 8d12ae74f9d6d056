package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/goliatone/go-corpus/cmd/corpus/internal/bootstrap"
	scancmd "github.com/goliatone/go-corpus/internal/commands/scan"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

func main() {
	if err := runScan(os.Args[1:]); err != nil {
		log.Fatalf("corpus scan: %v", err)
	}
}

func runScan(args []string) error {
	fs := flag.NewFlagSet("corpus-scan", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering content files")
	workers := fs.Int("workers", 0, "Parse worker count (0 selects the CPU count)")
	fileTimeout := fs.Duration("file-timeout", 5*time.Second, "Per-file read timeout (0 disables the bound)")
	includeDrafts := fs.Bool("include-drafts", false, "Include draft records in visible sequences (preview mode)")
	defaultTemplate := fs.String("default-template", "page.html", "Template applied when no record or sibling declares one")
	storageDSN := fs.String("db", "", "Optional sqlite DSN for snapshot history")
	out := fs.String("out", "", "Optional path for the corpus JSON (\"-\" for stdout)")
	dryRun := fs.Bool("dry-run", false, "Build the corpus and report without publishing or persisting")
	quiet := fs.Bool("quiet", false, "Disable structured logging output")
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

	var (
		corpusOut *interfaces.Corpus
		reportOut *interfaces.Report
	)

	factory := func(string) (interfaces.Scanner, error) {
		// The module is already bound to the requested content root.
		return module.Module, nil
	}
	sink := func(c *interfaces.Corpus, r *interfaces.Report) {
		corpusOut = c
		reportOut = r
	}

	handler := scancmd.NewScanDirectoryHandler(factory, module.Logger, sink)
	cmd := scancmd.ScanDirectoryCommand{
		Directory:     *contentDir,
		IncludeDrafts: *includeDrafts,
		DryRun:        *dryRun,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute scan command: %w", err)
	}

	printReport(reportOut)

	if *out != "" && corpusOut != nil {
		if err := writeCorpus(corpusOut, *out); err != nil {
			return err
		}
	}

	return nil
}

func printReport(report *interfaces.Report) {
	if report == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "scanned %d files, loaded %d records in %s (%d warnings, %d errors)\n",
		report.Scanned, report.Loaded, report.Duration.Round(time.Millisecond), report.Warnings(), report.Errors())

	if len(report.Issues) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stderr)
	t.AppendHeader(table.Row{"Level", "Code", "Path", "Message"})
	for _, issue := range report.Issues {
		t.AppendRow(table.Row{issue.Level, issue.Code, issue.Path, issue.Message})
	}
	t.Render()
}

func writeCorpus(corpus *interfaces.Corpus, out string) error {
	data, err := json.MarshalIndent(corpus, "", "  ")
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	data = append(data, '\n')

	if out == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write corpus %s: %w", out, err)
	}
	return nil
}
