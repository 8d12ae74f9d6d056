package interfaces

import "time"

// Dialect identifies the frontmatter header variant detected for a source
// file. It is resolved once per file from the opening delimiter and carried on
// the parsed document so downstream consumers never re-inspect the bytes.
type Dialect string

const (
	// DialectTOML marks a `+++` delimited header.
	DialectTOML Dialect = "toml"
	// DialectYAML marks a `---` delimited header.
	DialectYAML Dialect = "yaml"
	// DialectNone marks a file whose opening line matched no known delimiter.
	DialectNone Dialect = ""
)

// Meta is the typed frontmatter record extracted from a content file.
// Unknown fields are preserved in Extra rather than rejected so newer corpora
// remain loadable by older tooling.
type Meta struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Date        time.Time      `json:"date,omitzero"`
	HasDate     bool           `json:"-"`
	Draft       bool           `json:"draft"`
	Weight      int            `json:"weight"`
	Template    string         `json:"template,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// Hierarchy captures a content file's position derived purely from its
// filesystem path. Directory names are the source of truth for grouping,
// independent of anything the frontmatter declares.
type Hierarchy struct {
	// CollectionID is the immediate parent directory name, trimmed but never
	// reinterpreted (e.g. "day 13").
	CollectionID string `json:"collection_id"`
	// CollectionSlug is the URL-safe form of CollectionID (e.g. "day-13").
	CollectionSlug string `json:"collection_slug"`
	// ItemIndex is the first integer found in the filename. Valid only when
	// Indexed is true.
	ItemIndex int `json:"item_index"`
	// Indexed reports whether the filename carried an integer ordinal.
	Indexed bool `json:"indexed"`
	// Slug is the filename with its extension stripped, used as a stable
	// external identifier.
	Slug string `json:"slug"`
}

// Document is a fully loaded content file: hierarchy, metadata, and the raw
// Markdown body, which stays opaque to the engine.
type Document struct {
	Path      string    `json:"path"`
	Hierarchy Hierarchy `json:"hierarchy"`
	Meta      Meta      `json:"meta"`
	Dialect   Dialect   `json:"dialect"`
	Body      []byte    `json:"-"`
	Checksum  []byte    `json:"-"`
}
