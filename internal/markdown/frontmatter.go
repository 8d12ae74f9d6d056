package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// reserved frontmatter keys decoded into typed Meta fields; everything else is
// preserved verbatim in Meta.Extra.
var reservedKeys = map[string]struct{}{
	"title":       {},
	"description": {},
	"date":        {},
	"draft":       {},
	"weight":      {},
	"template":    {},
}

// ParseResult carries the decoded frontmatter alongside the Markdown body and
// any non-fatal findings. Issues holds warning and validation errors that the
// scanner reports per file without excluding the record.
type ParseResult struct {
	Meta    interfaces.Meta
	Body    []byte
	Dialect interfaces.Dialect
	Issues  []error
}

// DetectDialect inspects the first non-blank line and resolves the header
// dialect once per file. Anything other than a `+++` or `---` delimiter maps
// to DialectNone.
func DetectDialect(source []byte) interfaces.Dialect {
	for _, line := range bytes.Split(source, []byte("\n")) {
		trimmed := strings.TrimSpace(string(line))
		if trimmed == "" {
			continue
		}
		switch trimmed {
		case "+++":
			return interfaces.DialectTOML
		case "---":
			return interfaces.DialectYAML
		default:
			return interfaces.DialectNone
		}
	}
	return interfaces.DialectNone
}

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It is a pure function of its input: no I/O, no
// shared state. A hard error is returned only when the header is
// unrecognizable or undecodable; field-level findings land in Issues.
func ParseFrontMatter(path string, source []byte) (*ParseResult, error) {
	dialect := DetectDialect(source)
	if dialect == interfaces.DialectNone {
		return nil, fmt.Errorf("%w: path=%s", ErrUnrecognizedHeader, path)
	}

	var env frontMatterEnvelope
	body, err := frontmatter.MustParse(bytes.NewReader(source), &env)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter %s: %w", path, err)
	}

	// Decode a second time into a raw map so unknown fields survive both
	// dialects; the envelope's inline tag only covers YAML.
	raw := map[string]any{}
	if _, err := frontmatter.MustParse(bytes.NewReader(source), &raw); err != nil {
		return nil, fmt.Errorf("parse frontmatter %s: %w", path, err)
	}

	result := &ParseResult{
		Dialect: dialect,
		Body:    body,
	}

	meta := interfaces.Meta{
		Title:       strings.TrimSpace(env.Title),
		Description: strings.TrimSpace(env.Description),
		Draft:       env.Draft,
		Weight:      env.Weight,
		Template:    strings.TrimSpace(env.Template),
		Extra:       extraFields(raw),
	}

	if date, ok, err := normalizeDate(env.Date); err != nil {
		result.Issues = append(result.Issues, &InvalidDateError{Path: path, Value: fmt.Sprint(env.Date)})
	} else if ok {
		meta.Date = date
		meta.HasDate = true
	}

	if meta.Title == "" {
		result.Issues = append(result.Issues, &MissingFieldError{Path: path, Field: "title"})
	}
	if meta.Description == "" {
		result.Issues = append(result.Issues, &MissingFieldError{Path: path, Field: "description"})
	}

	result.Meta = meta
	return result, nil
}

type frontMatterEnvelope struct {
	Title       string `yaml:"title"       toml:"title"`
	Description string `yaml:"description" toml:"description"`
	Date        any    `yaml:"date"        toml:"date"`
	Draft       bool   `yaml:"draft"       toml:"draft"`
	Weight      int    `yaml:"weight"      toml:"weight"`
	Template    string `yaml:"template"    toml:"template"`
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// normalizeDate accepts the union of shapes the two decoders produce: native
// datetimes from TOML, strings from YAML.
func normalizeDate(value any) (time.Time, bool, error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return v, true, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return time.Time{}, false, nil
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return parsed, true, nil
			}
		}
		return time.Time{}, false, ErrInvalidDate
	default:
		return time.Time{}, false, ErrInvalidDate
	}
}

func extraFields(raw map[string]any) map[string]any {
	extra := map[string]any{}
	for key, value := range raw {
		if _, reserved := reservedKeys[strings.ToLower(key)]; reserved {
			continue
		}
		extra[key] = value
	}
	return extra
}
