package collections

import (
	"testing"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

func TestResolveTemplateExplicit(t *testing.T) {
	rec := record("day 1", "chapter-1", 1, withTemplate("lesson.html"))
	siblings := []*interfaces.Record{
		rec,
		record("day 1", "chapter-2", 2, withTemplate("quiz.html")),
		record("day 1", "chapter-3", 3, withTemplate("quiz.html")),
	}

	if got := ResolveTemplate(rec, siblings, DefaultTemplate); got != "lesson.html" {
		t.Fatalf("expected the explicit template, got %q", got)
	}
}

func TestResolveTemplateSiblingMajority(t *testing.T) {
	rec := record("day 1", "chapter-1", 1)
	siblings := []*interfaces.Record{
		rec,
		record("day 1", "chapter-2", 2, withTemplate("quiz.html")),
		record("day 1", "chapter-3", 3, withTemplate("quiz.html")),
		record("day 1", "chapter-4", 4, withTemplate("lesson.html")),
	}

	if got := ResolveTemplate(rec, siblings, DefaultTemplate); got != "quiz.html" {
		t.Fatalf("expected the sibling majority template, got %q", got)
	}
}

func TestResolveTemplateMajorityTie(t *testing.T) {
	rec := record("day 1", "chapter-1", 1)
	siblings := []*interfaces.Record{
		rec,
		record("day 1", "chapter-2", 2, withTemplate("quiz.html")),
		record("day 1", "chapter-3", 3, withTemplate("lesson.html")),
	}

	// Ties resolve to the lexically smallest candidate so repeated scans agree.
	if got := ResolveTemplate(rec, siblings, DefaultTemplate); got != "lesson.html" {
		t.Fatalf("expected the lexically smallest candidate, got %q", got)
	}
}

func TestResolveTemplateDefault(t *testing.T) {
	rec := record("day 1", "chapter-1", 1)
	siblings := []*interfaces.Record{rec}

	if got := ResolveTemplate(rec, siblings, ""); got != DefaultTemplate {
		t.Fatalf("expected %q, got %q", DefaultTemplate, got)
	}
	if got := ResolveTemplate(rec, siblings, "custom.html"); got != "custom.html" {
		t.Fatalf("expected the configured fallback, got %q", got)
	}
}

func TestVisibleSequenceResolvesTemplates(t *testing.T) {
	records := []*interfaces.Record{
		record("day 1", "chapter-1", 1),
		record("day 1", "chapter-2", 2, withTemplate("quiz.html")),
		record("day 1", "chapter-3", 3, withTemplate("quiz.html")),
	}

	visible := VisibleSequence(records, BuildOptions{DefaultTemplate: DefaultTemplate})
	if visible[0].RenderTemplate != "quiz.html" {
		t.Fatalf("expected the sibling majority on the bare record, got %q", visible[0].RenderTemplate)
	}
	if visible[1].RenderTemplate != "quiz.html" {
		t.Fatalf("expected the explicit template, got %q", visible[1].RenderTemplate)
	}
}
