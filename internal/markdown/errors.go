package markdown

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnrecognizedHeader is returned when a file's first non-blank line
	// opens neither a `+++` nor a `---` frontmatter block.
	ErrUnrecognizedHeader = errors.New("markdown: unrecognized frontmatter header")
	// ErrMissingField is the base error for absent required frontmatter fields.
	ErrMissingField = errors.New("markdown: required frontmatter field missing")
	// ErrUnindexableFilename is the base error for filenames without an
	// integer ordinal.
	ErrUnindexableFilename = errors.New("markdown: filename carries no numeric index")
	// ErrReadTimeout is the base error for file reads exceeding the bound.
	ErrReadTimeout = errors.New("markdown: file read timed out")
	// ErrInvalidDate is the base error for unparseable frontmatter dates.
	ErrInvalidDate = errors.New("markdown: frontmatter date is invalid")
)

// MissingFieldError reports which required field a file's frontmatter omits.
type MissingFieldError struct {
	Path  string
	Field string
}

func (e *MissingFieldError) Error() string {
	if e == nil {
		return ErrMissingField.Error()
	}
	return fmt.Sprintf("%s: field=%s path=%s", ErrMissingField.Error(), e.Field, e.Path)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// UnindexableFilenameError marks a file whose name yields no chapter ordinal.
// The record is retained and placed at the end of its collection, ordered by
// date only.
type UnindexableFilenameError struct {
	Path string
}

func (e *UnindexableFilenameError) Error() string {
	if e == nil {
		return ErrUnindexableFilename.Error()
	}
	return fmt.Sprintf("%s: path=%s", ErrUnindexableFilename.Error(), e.Path)
}

func (e *UnindexableFilenameError) Unwrap() error {
	return ErrUnindexableFilename
}

// ReadTimeoutError captures a single file read exceeding the configured bound.
type ReadTimeoutError struct {
	Path    string
	Timeout time.Duration
}

func (e *ReadTimeoutError) Error() string {
	if e == nil {
		return ErrReadTimeout.Error()
	}
	return fmt.Sprintf("%s: path=%s timeout=%s", ErrReadTimeout.Error(), e.Path, e.Timeout)
}

func (e *ReadTimeoutError) Unwrap() error {
	return ErrReadTimeout
}

// InvalidDateError captures an unparseable date value. Parse failures degrade
// to a zero date; they never exclude the record.
type InvalidDateError struct {
	Path  string
	Value string
}

func (e *InvalidDateError) Error() string {
	if e == nil {
		return ErrInvalidDate.Error()
	}
	return fmt.Sprintf("%s: value=%q path=%s", ErrInvalidDate.Error(), e.Value, e.Path)
}

func (e *InvalidDateError) Unwrap() error {
	return ErrInvalidDate
}
