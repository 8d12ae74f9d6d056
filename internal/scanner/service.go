package scanner

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/goliatone/go-corpus/internal/collections"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/internal/markdown"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// ErrNoContent indicates the content root held no readable content file at
// all. Together with an unreadable root it is the only fatal scan outcome;
// every per-file failure degrades to a report issue.
var ErrNoContent = errors.New("scanner: no readable content files under root")

// Config controls a scan service instance.
type Config struct {
	ContentDir      string
	Pattern         string
	Recursive       bool
	Workers         int
	FileTimeout     time.Duration
	IncludeDrafts   bool
	DefaultTemplate string
}

// Dependencies lists the collaborators required by the scan service.
type Dependencies struct {
	Snapshots *collections.Store
	Logger    interfaces.Logger
}

// Service walks a content tree, fans file parsing out across a worker pool,
// and merges the results into an ordered corpus snapshot on the coordinating
// goroutine so grouping stays deterministic.
type Service struct {
	cfg       Config
	loader    *markdown.Loader
	snapshots *collections.Store
	logger    interfaces.Logger
	now       func() time.Time
}

var _ interfaces.Scanner = (*Service)(nil)

// NewService constructs a scan service rooted at cfg.ContentDir.
func NewService(cfg Config, deps Dependencies) (*Service, error) {
	loader, err := markdown.NewDirLoader(markdown.LoaderConfig{
		BasePath:    cfg.ContentDir,
		Pattern:     cfg.Pattern,
		Recursive:   cfg.Recursive,
		FileTimeout: cfg.FileTimeout,
	})
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	snapshots := deps.Snapshots
	if snapshots == nil {
		snapshots = collections.NewStore()
	}

	return &Service{
		cfg:       cfg,
		loader:    loader,
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Snapshots exposes the store the service publishes into.
func (s *Service) Snapshots() *collections.Store {
	return s.snapshots
}

type loadOutcome struct {
	path   string
	result *markdown.DocumentResult
	err    error
}

// Scan walks the content tree and produces a corpus snapshot plus report.
// Successful non-dry runs publish the snapshot atomically; a cancelled or
// failed scan leaves the previously published snapshot authoritative.
func (s *Service) Scan(ctx context.Context, opts interfaces.ScanOptions) (*interfaces.Corpus, *interfaces.Report, error) {
	start := s.now()

	paths, err := s.loader.Discover(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoContent, s.cfg.ContentDir)
	}

	outcomes := s.loadAll(ctx, paths)
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	report := &interfaces.Report{
		Root:        s.cfg.ContentDir,
		GeneratedAt: start,
		Scanned:     len(paths),
	}

	records := make([]*interfaces.Record, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.err != nil {
			report.Issues = append(report.Issues, issueFromError(outcome.path, outcome.err))
			continue
		}
		for _, found := range outcome.result.Issues {
			report.Issues = append(report.Issues, issueFromError(outcome.path, found))
		}
		records = append(records, recordFromDocument(outcome.result.Document))
	}
	report.Loaded = len(records)

	if len(records) == 0 {
		report.Duration = s.now().Sub(start)
		return nil, report, fmt.Errorf("%w: %s", ErrNoContent, s.cfg.ContentDir)
	}

	buildOpts := collections.BuildOptions{
		IncludeDrafts:   opts.IncludeDrafts || s.cfg.IncludeDrafts,
		DefaultTemplate: s.cfg.DefaultTemplate,
	}
	corpus, buildIssues := collections.Build(s.cfg.ContentDir, records, buildOpts)
	report.Issues = append(report.Issues, buildIssues...)
	report.Duration = s.now().Sub(start)

	if !opts.DryRun {
		s.snapshots.Publish(corpus)
	}

	logging.WithFields(s.logger, map[string]any{
		"scanned":        report.Scanned,
		"loaded":         report.Loaded,
		"collections":    len(corpus.Collections),
		"warnings":       report.Warnings(),
		"errors":         report.Errors(),
		"include_drafts": buildOpts.IncludeDrafts,
		"dry_run":        opts.DryRun,
	}).Info("scanner.scan.completed")

	return corpus, report, nil
}

// loadAll fans file loads out across the worker pool and merges results back
// in path order so the corpus build is deterministic.
func (s *Service) loadAll(ctx context.Context, paths []string) []loadOutcome {
	workers := s.effectiveWorkerCount(len(paths))

	if workers <= 1 || len(paths) <= 1 {
		outcomes := make([]loadOutcome, 0, len(paths))
		for _, path := range paths {
			if ctx.Err() != nil {
				return outcomes
			}
			result, err := s.loader.LoadFile(ctx, path)
			outcomes = append(outcomes, loadOutcome{path: path, result: result, err: err})
		}
		return outcomes
	}

	jobs := make(chan string)
	results := make(chan loadOutcome, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
					result, err := s.loader.LoadFile(ctx, path)
					results <- loadOutcome{path: path, result: result, err: err}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case <-ctx.Done():
				return
			case jobs <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]loadOutcome, 0, len(paths))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].path < outcomes[j].path
	})
	return outcomes
}

func (s *Service) effectiveWorkerCount(fileCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if fileCount > 0 && workers > fileCount {
		workers = fileCount
	}
	return workers
}

func recordFromDocument(doc *interfaces.Document) *interfaces.Record {
	rec := &interfaces.Record{
		Path:           doc.Path,
		CollectionID:   doc.Hierarchy.CollectionID,
		CollectionSlug: doc.Hierarchy.CollectionSlug,
		ItemIndex:      doc.Hierarchy.ItemIndex,
		Indexed:        doc.Hierarchy.Indexed,
		Slug:           doc.Hierarchy.Slug,
		Title:          doc.Meta.Title,
		Description:    doc.Meta.Description,
		Date:           doc.Meta.Date,
		HasDate:        doc.Meta.HasDate,
		Draft:          doc.Meta.Draft,
		Weight:         doc.Meta.Weight,
		Template:       doc.Meta.Template,
		Extra:          doc.Meta.Extra,
		Checksum:       hex.EncodeToString(doc.Checksum),
		Body:           doc.Body,
	}
	if rec.Title == "" {
		rec.Title = fallbackTitle(rec.Slug)
	}
	return rec
}

// fallbackTitle derives a display title from the slug when frontmatter omits
// one; the omission is still reported as a missing-field issue.
func fallbackTitle(slug string) string {
	if slug == "" {
		return "Untitled"
	}
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(words) == 0 {
		return "Untitled"
	}
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func issueFromError(path string, err error) interfaces.Issue {
	issue := interfaces.Issue{
		Path:    path,
		Level:   interfaces.IssueError,
		Message: err.Error(),
	}

	var missing *markdown.MissingFieldError
	switch {
	case errors.Is(err, markdown.ErrReadTimeout):
		issue.Code = interfaces.CodeReadTimeout
	case errors.As(err, &missing):
		issue.Code = interfaces.CodeMissingField
		// Records missing display fields are kept; only title is treated as
		// an error-level validation failure.
		if missing.Field != "title" {
			issue.Level = interfaces.IssueWarning
		}
	case errors.Is(err, markdown.ErrUnindexableFilename):
		issue.Code = interfaces.CodeUnindexableFilename
		issue.Level = interfaces.IssueWarning
	case errors.Is(err, markdown.ErrInvalidDate):
		issue.Code = interfaces.CodeInvalidDate
		issue.Level = interfaces.IssueWarning
	default:
		issue.Code = interfaces.CodeUnrecognizedHeader
	}
	return issue
}
