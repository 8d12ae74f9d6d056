package interfaces

import (
	"context"
	"time"
)

// Record is one content file resolved into the corpus. Drafts are retained on
// the owning collection for authoring tools; only visible sequences exclude
// them.
type Record struct {
	Path           string         `json:"path"`
	CollectionID   string         `json:"collection_id"`
	CollectionSlug string         `json:"collection_slug"`
	ItemIndex      int            `json:"item_index"`
	Indexed        bool           `json:"indexed"`
	Slug           string         `json:"slug"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	Date           time.Time      `json:"date,omitzero"`
	HasDate        bool           `json:"-"`
	Draft          bool           `json:"draft"`
	Weight         int            `json:"weight"`
	Template       string         `json:"template,omitempty"`
	Extra          map[string]any `json:"extra,omitempty"`
	// Ambiguous marks records that share an ItemIndex with a sibling; ordering
	// degrades to date then slug for the pair instead of aborting the build.
	Ambiguous bool `json:"ambiguous,omitempty"`
	// Checksum is the hex-encoded SHA-256 of the source bytes.
	Checksum string `json:"checksum,omitempty"`
	// Body is the raw Markdown body, opaque to the engine.
	Body []byte `json:"-"`
}

// Entry is a Record projected into a collection's visible sequence, with the
// navigation metadata the renderer consumes.
type Entry struct {
	Record
	// Position is the zero-based index within the visible sequence.
	Position int `json:"position"`
	// Prev and Next carry sibling slugs for navigation links; empty at the
	// sequence boundaries.
	Prev string `json:"prev,omitempty"`
	Next string `json:"next,omitempty"`
	// RenderTemplate is the template name resolved for this entry (explicit
	// field, sibling majority, or the configured default).
	RenderTemplate string `json:"render_template"`
}

// Collection groups the records sharing one collection identifier. Records
// holds every record including drafts; Visible is the public ordered sequence.
type Collection struct {
	ID      string    `json:"id"`
	Slug    string    `json:"slug"`
	Ordinal int       `json:"ordinal"`
	Records []*Record `json:"records"`
	Visible []Entry   `json:"visible"`
}

// Corpus is an immutable snapshot of every collection, ordered by the numeric
// component of the collection identifier. Snapshots are rebuilt whole on every
// scan and published atomically; they are never mutated in place.
type Corpus struct {
	Root          string        `json:"root"`
	Collections   []*Collection `json:"collections"`
	IncludeDrafts bool          `json:"include_drafts,omitempty"`
}

// IssueLevel separates warnings (degraded determinism, missing display
// fields) from per-file errors (unparseable files excluded from the corpus,
// or records kept under a derived title when the frontmatter omits one).
type IssueLevel string

const (
	IssueWarning IssueLevel = "warning"
	IssueError   IssueLevel = "error"
)

// Issue codes mirror the scan failure taxonomy.
const (
	CodeUnrecognizedHeader  = "UNRECOGNIZED_HEADER"
	CodeMissingField        = "MISSING_FIELD"
	CodeUnindexableFilename = "UNINDEXABLE_FILENAME"
	CodeAmbiguousOrdering   = "AMBIGUOUS_ORDERING"
	CodeReadTimeout         = "READ_TIMEOUT"
	CodeInvalidDate         = "INVALID_DATE"
)

// Issue is a single per-file finding collected during a scan. Issues never
// abort the scan; only a missing or unreadable root is fatal.
type Issue struct {
	Path    string     `json:"path"`
	Code    string     `json:"code"`
	Level   IssueLevel `json:"level"`
	Message string     `json:"message"`
}

// Report aggregates the outcome of one scan alongside the best-effort corpus.
type Report struct {
	Root        string        `json:"root"`
	GeneratedAt time.Time     `json:"generated_at"`
	Scanned     int           `json:"scanned"`
	Loaded      int           `json:"loaded"`
	Issues      []Issue       `json:"issues,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// Warnings counts warning-level issues on the report.
func (r *Report) Warnings() int { return r.count(IssueWarning) }

// Errors counts error-level issues on the report.
func (r *Report) Errors() int { return r.count(IssueError) }

func (r *Report) count(level IssueLevel) int {
	if r == nil {
		return 0
	}
	total := 0
	for _, issue := range r.Issues {
		if issue.Level == level {
			total++
		}
	}
	return total
}

// ScanOptions narrows the scope of a single scan invocation.
type ScanOptions struct {
	// IncludeDrafts switches the visible sequences into preview mode. It is a
	// capability flag on the same code path, not a separate pipeline.
	IncludeDrafts bool
	// DryRun builds the corpus and report without publishing the snapshot.
	DryRun bool
}

// Scanner walks a content tree and produces a corpus snapshot plus report.
type Scanner interface {
	Scan(ctx context.Context, opts ScanOptions) (*Corpus, *Report, error)
}

// SnapshotSource exposes the currently published corpus snapshot. Readers
// hold the returned pointer for the duration of their request; a concurrent
// rescan never mutates it.
type SnapshotSource interface {
	Current() *Corpus
}
