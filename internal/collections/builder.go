package collections

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// BuildOptions controls visibility and template fallback for a corpus build.
type BuildOptions struct {
	// IncludeDrafts switches visible sequences into preview mode. Same code
	// path either way; the flag only widens the filter.
	IncludeDrafts bool
	// DefaultTemplate is the global template fallback, "page.html" by
	// convention.
	DefaultTemplate string
}

// Build groups records into collections, flags structural conflicts, and
// computes every collection's visible sequence. It never aborts: duplicate
// ordinals degrade determinism predictably (date, then slug) and are surfaced
// as warnings alongside the corpus.
func Build(root string, records []*interfaces.Record, opts BuildOptions) (*interfaces.Corpus, []interfaces.Issue) {
	grouped := map[string][]*interfaces.Record{}
	order := []string{}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		key := rec.CollectionID
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], rec)
	}

	var issues []interfaces.Issue
	collections := make([]*interfaces.Collection, 0, len(order))
	for _, id := range order {
		members := grouped[id]
		issues = append(issues, flagAmbiguousOrdinals(id, members)...)

		slices.SortFunc(members, Compare)

		col := &interfaces.Collection{
			ID:      id,
			Slug:    collectionSlug(members),
			Ordinal: collectionOrdinal(id),
			Records: members,
		}
		col.Visible = VisibleSequence(members, opts)
		collections = append(collections, col)
	}

	slices.SortFunc(collections, compareCollections)

	return &interfaces.Corpus{
		Root:          root,
		Collections:   collections,
		IncludeDrafts: opts.IncludeDrafts,
	}, issues
}

// flagAmbiguousOrdinals marks every record that shares an item index with a
// sibling. Both records are retained; the ordering tuple breaks the tie by
// date then slug.
func flagAmbiguousOrdinals(collectionID string, members []*interfaces.Record) []interfaces.Issue {
	byIndex := map[int][]*interfaces.Record{}
	for _, rec := range members {
		if !rec.Indexed {
			continue
		}
		byIndex[rec.ItemIndex] = append(byIndex[rec.ItemIndex], rec)
	}

	indices := make([]int, 0, len(byIndex))
	for index, dupes := range byIndex {
		if len(dupes) > 1 {
			indices = append(indices, index)
		}
	}
	slices.Sort(indices)

	var issues []interfaces.Issue
	for _, index := range indices {
		dupes := byIndex[index]
		paths := make([]string, 0, len(dupes))
		for _, rec := range dupes {
			rec.Ambiguous = true
			paths = append(paths, rec.Path)
		}
		slices.Sort(paths)
		issues = append(issues, interfaces.Issue{
			Path:    paths[0],
			Code:    interfaces.CodeAmbiguousOrdering,
			Level:   interfaces.IssueWarning,
			Message: fmt.Sprintf("collection %q has %d records with item index %d: %s", collectionID, len(dupes), index, strings.Join(paths, ", ")),
		})
	}
	return issues
}

func collectionSlug(members []*interfaces.Record) string {
	for _, rec := range members {
		if rec.CollectionSlug != "" {
			return rec.CollectionSlug
		}
	}
	return ""
}

// collectionOrdinal extracts the numeric component of a collection id so
// "day 2" orders before "day 13". Ids without a number return -1 and sort
// after the numbered collections.
func collectionOrdinal(id string) int {
	start := -1
	for i, r := range id {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return parseOrdinal(id[start:i])
		}
	}
	if start >= 0 {
		return parseOrdinal(id[start:])
	}
	return -1
}

func parseOrdinal(digits string) int {
	value, err := strconv.Atoi(digits)
	if err != nil {
		return -1
	}
	return value
}

func compareCollections(a, b *interfaces.Collection) int {
	switch {
	case a.Ordinal >= 0 && b.Ordinal < 0:
		return -1
	case a.Ordinal < 0 && b.Ordinal >= 0:
		return 1
	case a.Ordinal != b.Ordinal:
		if a.Ordinal < b.Ordinal {
			return -1
		}
		return 1
	default:
		return strings.Compare(a.ID, b.ID)
	}
}
