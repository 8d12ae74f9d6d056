package runtimeconfig

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.ContentDir != "content" {
		t.Fatalf("unexpected content dir %q", cfg.ContentDir)
	}
	if cfg.Scanner.Pattern != "*.md" || !cfg.Scanner.Recursive {
		t.Fatalf("unexpected scanner defaults %+v", cfg.Scanner)
	}
	if cfg.Scanner.FileTimeout != 5*time.Second {
		t.Fatalf("unexpected file timeout %s", cfg.Scanner.FileTimeout)
	}
	if cfg.Ordering.DefaultTemplate != "page.html" {
		t.Fatalf("unexpected default template %q", cfg.Ordering.DefaultTemplate)
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "missing content dir",
			mutate:  func(cfg *Config) { cfg.ContentDir = "  " },
			wantErr: ErrContentDirRequired,
		},
		{
			name:    "negative workers",
			mutate:  func(cfg *Config) { cfg.Scanner.Workers = -1 },
			wantErr: ErrWorkersInvalid,
		},
		{
			name:    "negative file timeout",
			mutate:  func(cfg *Config) { cfg.Scanner.FileTimeout = -time.Second },
			wantErr: ErrFileTimeoutInvalid,
		},
		{
			name:    "empty default template",
			mutate:  func(cfg *Config) { cfg.Ordering.DefaultTemplate = "" },
			wantErr: ErrDefaultTemplateRequired,
		},
		{
			name: "storage enabled without dsn",
			mutate: func(cfg *Config) {
				cfg.Features.Storage = true
				cfg.Storage.DSN = ""
			},
			wantErr: ErrStorageDSNRequired,
		},
		{
			name: "unknown storage driver",
			mutate: func(cfg *Config) {
				cfg.Features.Storage = true
				cfg.Storage.DSN = "corpus.db"
				cfg.Storage.Driver = "postgres"
			},
			wantErr: ErrStorageDriverUnknown,
		},
		{
			name: "unknown logging provider",
			mutate: func(cfg *Config) {
				cfg.Features.Logger = true
				cfg.Logging.Provider = "syslog"
			},
			wantErr: ErrLoggingProviderUnknown,
		},
		{
			name: "invalid logging level",
			mutate: func(cfg *Config) {
				cfg.Features.Logger = true
				cfg.Logging.Level = "verbose"
			},
			wantErr: ErrLoggingLevelInvalid,
		},
		{
			name: "invalid logging format",
			mutate: func(cfg *Config) {
				cfg.Features.Logger = true
				cfg.Logging.Format = "xml"
			},
			wantErr: ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateStorageDriverDefaultsToSqlite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Features.Storage = true
	cfg.Storage.DSN = "file::memory:?cache=shared"
	cfg.Storage.Driver = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty driver must default to sqlite: %v", err)
	}
}
