package collections

import (
	"math"
	"strings"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// sortIndex returns the effective ordinal for the ordering tuple. Records
// without a filename index sort after every indexed sibling, leaving date as
// their only ordering signal.
func sortIndex(rec *interfaces.Record) int {
	if !rec.Indexed {
		return math.MaxInt
	}
	return rec.ItemIndex
}

// Compare implements the total order (weight, item_index, date, slug). Slug
// is unique within a collection, so no two records ever compare equal and the
// resulting sort is deterministic for identical input.
func Compare(a, b *interfaces.Record) int {
	if a.Weight != b.Weight {
		if a.Weight < b.Weight {
			return -1
		}
		return 1
	}

	ai, bi := sortIndex(a), sortIndex(b)
	if ai != bi {
		if ai < bi {
			return -1
		}
		return 1
	}

	if !a.Date.Equal(b.Date) {
		if a.Date.Before(b.Date) {
			return -1
		}
		return 1
	}

	if c := strings.Compare(a.Slug, b.Slug); c != 0 {
		return c
	}
	return strings.Compare(a.Path, b.Path)
}

// VisibleSequence produces the externally visible ordered sequence for one
// collection's records: draft filtering, total-order sort, zero-based
// positions, and prev/next navigation slugs. It never fails; an all-draft
// collection yields an empty sequence.
//
// The input must already be sorted with Compare; Build guarantees that.
func VisibleSequence(records []*interfaces.Record, opts BuildOptions) []interfaces.Entry {
	visible := make([]interfaces.Entry, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if rec.Draft && !opts.IncludeDrafts {
			continue
		}
		visible = append(visible, interfaces.Entry{
			Record:         *rec,
			RenderTemplate: ResolveTemplate(rec, records, opts.DefaultTemplate),
		})
	}

	for i := range visible {
		visible[i].Position = i
		if i > 0 {
			visible[i].Prev = visible[i-1].Slug
		}
		if i < len(visible)-1 {
			visible[i].Next = visible[i+1].Slug
		}
	}
	return visible
}
