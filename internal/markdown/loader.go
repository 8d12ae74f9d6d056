package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// LoaderConfig configures how content files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where content documents live.
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// FileTimeout bounds each file read; zero disables the bound.
	FileTimeout time.Duration
}

// Loader turns filesystem paths into parsed corpus documents.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
	timeout   time.Duration
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
		timeout:   cfg.FileTimeout,
	}
}

// NewDirLoader constructs a Loader rooted at cfg.BasePath on the host
// filesystem. The base path must exist; a missing root is the one fatal scan
// condition.
func NewDirLoader(cfg LoaderConfig) (*Loader, error) {
	basePath := cfg.BasePath
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown loader: stat base path %s: %w", basePath, err)
	}
	cfg.BasePath = basePath
	return NewLoader(os.DirFS(basePath), cfg), nil
}

// DocumentResult carries the parsed document along with per-file findings the
// scan report collects.
type DocumentResult struct {
	Document *interfaces.Document
	Issues   []error
}

// Discover walks the content tree and returns the matching file paths in
// deterministic (sorted) order.
func (l *Loader) Discover(ctx context.Context) ([]string, error) {
	var paths []string

	walkErr := fs.WalkDir(l.fs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !l.recursive && path != "." {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if l.matchesPattern(filepath.ToSlash(path)) {
			paths = append(paths, filepath.ToSlash(path))
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("markdown loader: walk %s: %w", l.basePath, walkErr)
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadFile reads and parses a single content document. The read is bounded by
// the configured timeout; parse findings that do not exclude the record are
// returned as issues on the result.
func (l *Loader) LoadFile(ctx context.Context, path string) (*DocumentResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel := filepath.ToSlash(path)
	data, err := l.readFile(ctx, rel)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseFrontMatter(rel, data)
	if err != nil {
		return nil, err
	}

	doc := &interfaces.Document{
		Path:    rel,
		Meta:    parsed.Meta,
		Dialect: parsed.Dialect,
		Body:    parsed.Body,
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]

	issues := parsed.Issues

	hierarchy, err := ResolveHierarchy(rel)
	if err != nil {
		// Unindexable filenames degrade ordering, they do not exclude the record.
		issues = append(issues, err)
	}
	doc.Hierarchy = hierarchy

	return &DocumentResult{
		Document: doc,
		Issues:   issues,
	}, nil
}

func (l *Loader) readFile(ctx context.Context, path string) ([]byte, error) {
	if l.timeout <= 0 {
		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return nil, fmt.Errorf("markdown loader read %s: %w", path, err)
		}
		return data, nil
	}

	type readResult struct {
		data []byte
		err  error
	}
	done := make(chan readResult, 1)
	go func() {
		data, err := fs.ReadFile(l.fs, path)
		done <- readResult{data: data, err: err}
	}()

	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, &ReadTimeoutError{Path: path, Timeout: l.timeout}
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("markdown loader read %s: %w", path, res.err)
		}
		return res.data, nil
	}
}

func (l *Loader) matchesPattern(path string) bool {
	pattern := filepath.ToSlash(l.pattern)
	if strings.Contains(pattern, "**") {
		// Basic support for ** by stripping repeated separators.
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	var target string
	if strings.Contains(pattern, "/") {
		target = path
	} else {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}
