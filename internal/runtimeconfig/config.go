package runtimeconfig

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// ErrContentDirRequired indicates the scan root was left empty.
var ErrContentDirRequired = errors.New("corpus config: content directory is required")

// ErrWorkersInvalid rejects negative worker counts; zero means NumCPU.
var ErrWorkersInvalid = errors.New("corpus config: scanner workers must be zero or positive")

// ErrFileTimeoutInvalid rejects negative per-file read timeouts.
var ErrFileTimeoutInvalid = errors.New("corpus config: scanner file timeout must be zero or positive")

// ErrDefaultTemplateRequired indicates the global template fallback was cleared.
var ErrDefaultTemplateRequired = errors.New("corpus config: ordering default template is required")

// ErrStorageDSNRequired indicates storage is enabled without a DSN.
var ErrStorageDSNRequired = errors.New("corpus config: storage dsn is required when storage is enabled")

var ErrStorageDriverUnknown = errors.New("corpus config: storage driver is invalid")
var ErrLoggingProviderRequired = errors.New("corpus config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("corpus config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("corpus config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("corpus config: logging format is invalid")

// Config aggregates feature flags and engine settings for the corpus module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	ContentDir string
	Scanner    ScannerConfig
	Ordering   OrderingConfig
	Storage    StorageConfig
	Logging    LoggingConfig
	Features   Features
}

// ScannerConfig controls content discovery and the parallel scan pipeline.
type ScannerConfig struct {
	// Pattern limits discovered files to those matching the supplied glob.
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// Workers caps the parse worker pool; zero selects runtime.NumCPU.
	Workers int
	// FileTimeout bounds each file read; zero disables the bound.
	FileTimeout time.Duration
}

// OrderingConfig captures visibility and template fallback behaviour.
type OrderingConfig struct {
	// IncludeDrafts switches visible sequences into preview mode by default.
	IncludeDrafts bool
	// DefaultTemplate is the global template fallback.
	DefaultTemplate string
}

// StorageConfig wires the optional snapshot persistence layer.
type StorageConfig struct {
	Driver string
	DSN    string
}

// LoggingConfig selects the logging provider and its options.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles optional subsystems.
type Features struct {
	// Storage persists published snapshots to the configured database.
	Storage bool
	// Logger enables the configured logging provider; disabled means no-op.
	Logger bool
}

// DefaultConfig returns the baseline configuration for a corpus module.
func DefaultConfig() Config {
	return Config{
		ContentDir: "content",
		Scanner: ScannerConfig{
			Pattern:     "*.md",
			Recursive:   true,
			Workers:     runtime.NumCPU(),
			FileTimeout: 5 * time.Second,
		},
		Ordering: OrderingConfig{
			DefaultTemplate: "page.html",
		},
		Storage: StorageConfig{
			Driver: "sqlite",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
		Features: Features{},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Scanner.Workers < 0 {
		return ErrWorkersInvalid
	}
	if cfg.Scanner.FileTimeout < 0 {
		return ErrFileTimeoutInvalid
	}
	if strings.TrimSpace(cfg.Ordering.DefaultTemplate) == "" {
		return ErrDefaultTemplateRequired
	}
	if cfg.Features.Storage {
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
		if driver := normalizeDriver(cfg.Storage.Driver); driver != "sqlite" {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeDriver(driver string) string {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		return "sqlite"
	}
	return driver
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
