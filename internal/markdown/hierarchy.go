package markdown

import (
	"path/filepath"
	"strconv"
	"strings"

	slug "github.com/goliatone/go-slug"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// ResolveHierarchy derives a content item's position in the corpus purely
// from its filesystem path: the parent directory names the collection, the
// first integer in the filename is the chapter ordinal, and the extension
// stripped filename is the stable slug.
//
// A filename without an integer returns the hierarchy with Indexed=false and
// an UnindexableFilenameError; callers keep the record and let the ordering
// engine place it at the end of its collection by date.
func ResolveHierarchy(path string) (interfaces.Hierarchy, error) {
	normalized := filepath.ToSlash(filepath.Clean(path))
	base := filepath.Base(normalized)
	parent := strings.TrimSpace(filepath.Base(filepath.Dir(normalized)))
	if parent == "." || parent == "/" {
		parent = ""
	}

	h := interfaces.Hierarchy{
		CollectionID:   parent,
		CollectionSlug: normalizeCollectionSlug(parent),
		Slug:           strings.TrimSuffix(base, filepath.Ext(base)),
	}

	index, ok := firstInteger(base)
	if !ok {
		return h, &UnindexableFilenameError{Path: path}
	}
	h.ItemIndex = index
	h.Indexed = true
	return h, nil
}

// firstInteger returns the first decimal run in name.
func firstInteger(name string) (int, bool) {
	start := -1
	for i, r := range name {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			value, err := strconv.Atoi(name[start:i])
			if err != nil {
				return 0, false
			}
			return value, true
		}
	}
	if start >= 0 {
		value, err := strconv.Atoi(name[start:])
		if err != nil {
			return 0, false
		}
		return value, true
	}
	return 0, false
}

func normalizeCollectionSlug(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	if normalized, err := slug.Normalize(value); err == nil {
		return normalized
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "-")
}
