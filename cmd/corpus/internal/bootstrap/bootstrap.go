package bootstrap

import (
	"fmt"
	"strings"
	"time"

	corpus "github.com/goliatone/go-corpus"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// Options captures configuration for corpus CLI bootstraps.
type Options struct {
	ContentDir      string
	Pattern         string
	Recursive       bool
	Workers         int
	FileTimeout     time.Duration
	IncludeDrafts   bool
	DefaultTemplate string
	StorageDSN      string
	LogLevel        string
	LogFormat       string
	Quiet           bool
}

// Module wraps the corpus module and the logger the CLIs report through.
type Module struct {
	Module *corpus.Module
	Logger interfaces.Logger
}

// BuildModule constructs a corpus module configured from CLI flags.
func BuildModule(opts Options) (*Module, error) {
	cfg := corpus.DefaultConfig()

	cfg.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.ContentDir == "" {
		cfg.ContentDir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Scanner.Pattern = trimmed
	}
	cfg.Scanner.Recursive = opts.Recursive
	if opts.Workers > 0 {
		cfg.Scanner.Workers = opts.Workers
	}
	if opts.FileTimeout > 0 {
		cfg.Scanner.FileTimeout = opts.FileTimeout
	}
	cfg.Ordering.IncludeDrafts = opts.IncludeDrafts
	if trimmed := strings.TrimSpace(opts.DefaultTemplate); trimmed != "" {
		cfg.Ordering.DefaultTemplate = trimmed
	}

	if dsn := strings.TrimSpace(opts.StorageDSN); dsn != "" {
		cfg.Features.Storage = true
		cfg.Storage.DSN = dsn
	}

	if !opts.Quiet {
		cfg.Features.Logger = true
		if level := strings.TrimSpace(opts.LogLevel); level != "" {
			cfg.Logging.Level = level
		}
		if format := strings.TrimSpace(opts.LogFormat); format != "" {
			cfg.Logging.Format = format
		}
	}

	module, err := corpus.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialise corpus module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: module.Logger("corpus.cli"),
	}, nil
}
