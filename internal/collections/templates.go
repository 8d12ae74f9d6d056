package collections

import (
	"strings"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// DefaultTemplate is the global fallback applied when neither the record nor
// its siblings declare a template.
const DefaultTemplate = "page.html"

// ResolveTemplate maps a record to its rendering template: the explicit
// frontmatter field when present, otherwise the most common explicit template
// among the record's collection siblings, otherwise the supplied default.
// Majority-vote ties resolve to the lexically smallest candidate so repeated
// scans stay deterministic. This resolver never fails.
func ResolveTemplate(rec *interfaces.Record, siblings []*interfaces.Record, fallback string) string {
	if rec != nil {
		if tpl := strings.TrimSpace(rec.Template); tpl != "" {
			return tpl
		}
	}

	if tpl := majorityTemplate(siblings); tpl != "" {
		return tpl
	}

	if fallback = strings.TrimSpace(fallback); fallback != "" {
		return fallback
	}
	return DefaultTemplate
}

func majorityTemplate(siblings []*interfaces.Record) string {
	counts := map[string]int{}
	for _, sibling := range siblings {
		if sibling == nil {
			continue
		}
		if tpl := strings.TrimSpace(sibling.Template); tpl != "" {
			counts[tpl]++
		}
	}

	winner := ""
	best := 0
	for tpl, count := range counts {
		if count > best || (count == best && (winner == "" || tpl < winner)) {
			winner = tpl
			best = count
		}
	}
	return winner
}
