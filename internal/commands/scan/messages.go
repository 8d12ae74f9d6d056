package scancmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	scanDirectoryMessageType = "corpus.scan_directory"
	exportCorpusMessageType  = "corpus.export_corpus"
)

// ScanDirectoryCommand triggers a corpus scan of the provided content
// directory. Per-file findings are collected into the scan report; the
// command only fails on the fatal cases (unreadable root, no content).
type ScanDirectoryCommand struct {
	// Directory selects the content root to scan.
	Directory string `json:"directory"`
	// IncludeDrafts switches visible sequences into preview mode for this scan.
	IncludeDrafts bool `json:"include_drafts,omitempty"`
	// DryRun builds the corpus and report without publishing the snapshot.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ScanDirectoryCommand) Type() string { return scanDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ScanDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("corpus.scan_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// ExportCorpusCommand serializes the currently published corpus snapshot as
// JSON for downstream tools. Output "-" writes to standard output.
type ExportCorpusCommand struct {
	// Output is the destination file path, or "-" for stdout.
	Output string `json:"output"`
	// Pretty toggles indented JSON.
	Pretty bool `json:"pretty,omitempty"`
}

// Type implements command.Message.
func (ExportCorpusCommand) Type() string { return exportCorpusMessageType }

// Validate ensures a destination is present before handlers execute.
func (cmd ExportCorpusCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Output, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("corpus.export_corpus.output_required", "output is required")
			}
			return nil
		})),
	)
}
