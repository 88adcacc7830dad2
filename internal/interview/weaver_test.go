package interview

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateDraft_NoAnswers(t *testing.T) {
	if _, err := GenerateDraft("Jane Doe", LevelModerate, nil); !errors.Is(err, ErrNoResponses) {
		t.Fatalf("expected ErrNoResponses, got %v", err)
	}
}

func TestGenerateDraft_Skeleton(t *testing.T) {
	answers := []Answer{
		{Topic: "basic_info", Question: "What is your full name?", Text: "Jane Doe"},
		{Topic: "early_life", Question: "What is your earliest memory?", Text: "Snow in the garden."},
		{Topic: "legacy", Question: "How would you like to be remembered?", Text: "As kind."},
	}
	draft, err := GenerateDraft("Jane Doe", LevelModerate, answers)
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}

	if !strings.HasPrefix(draft, "# The Life of Jane Doe\n") {
		t.Fatalf("missing title, draft starts: %q", firstLine(draft))
	}
	for _, want := range []string{
		"*A biographical narrative based on a personal interview.*",
		"## Introduction",
		"## Early Life & Childhood",
		"## Legacy",
	} {
		if !strings.Contains(draft, want) {
			t.Fatalf("draft missing %q:\n%s", want, draft)
		}
	}
	// legacy answered, so the closing line does not trail off
	if !strings.Contains(draft, "*This biography was created from a personal interview with Jane Doe.*") {
		t.Fatalf("wrong closing line:\n%s", draft)
	}
	if strings.Contains(draft, "The story continues to unfold.") {
		t.Fatalf("closing should not hint at an unfinished story when legacy is answered")
	}
}

func TestGenerateDraft_ClosingWithoutLegacy(t *testing.T) {
	answers := []Answer{
		{Topic: "career", Question: "Tell me about your career.", Text: "Forty years at sea."},
	}
	draft, err := GenerateDraft("Sam Holt", LevelDetailed, answers)
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	if !strings.Contains(draft, "The story continues to unfold.*") {
		t.Fatalf("open-ended closing missing:\n%s", draft)
	}
}

func TestGenerateDraft_SectionOrderIsCanonical(t *testing.T) {
	// Feed answers in reverse order; sections must still come out in the
	// fixed narrative order.
	answers := []Answer{
		{Topic: "legacy", Question: "q", Text: "Legacy text."},
		{Topic: "reflections", Question: "q", Text: "Reflections text."},
		{Topic: "career", Question: "q", Text: "Career text."},
		{Topic: "early_life", Question: "q", Text: "Early text."},
	}
	draft, err := GenerateDraft("Jane Doe", LevelModerate, answers)
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}

	order := []string{
		"## Early Life & Childhood",
		"## Career & Work",
		"## Life Reflections",
		"## Legacy",
	}
	last := -1
	for _, h := range order {
		idx := strings.Index(draft, h)
		if idx < 0 {
			t.Fatalf("heading %q missing:\n%s", h, draft)
		}
		if idx < last {
			t.Fatalf("heading %q out of order:\n%s", h, draft)
		}
		last = idx
	}
}

func TestGenerateDraft_OmitsUnansweredTopics(t *testing.T) {
	answers := []Answer{
		{Topic: "early_life", Question: "q", Text: "Something."},
	}
	draft, err := GenerateDraft("Jane Doe", LevelModerate, answers)
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	for _, h := range []string{"## Introduction", "## Education", "## Legacy"} {
		if strings.Contains(draft, h) {
			t.Fatalf("unanswered section %q should be omitted:\n%s", h, draft)
		}
	}
}

func TestGenerateDraft_ShortLevelJoinsAndPunctuates(t *testing.T) {
	answers := []Answer{
		{Topic: "family_heritage", Question: "Tell me about your parents.", Text: "Mum was a nurse"},
		{Topic: "family_heritage", Question: "Did you have any siblings?", Text: "One brother!"},
	}
	draft, err := GenerateDraft("Jane Doe", LevelUltraBrief, answers)
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	// single-space join, missing full stop added, existing punctuation kept,
	// and no lead-in phrases at the short levels
	if !strings.Contains(draft, "Mum was a nurse. One brother!\n") {
		t.Fatalf("short weave wrong:\n%s", draft)
	}
	if strings.Contains(draft, "Regarding siblings,") {
		t.Fatalf("short levels must not use lead-ins:\n%s", draft)
	}
}

func TestGenerateDraft_LongLevelParagraphsAndLeadIns(t *testing.T) {
	answers := []Answer{
		{Topic: "family_heritage", Question: "Tell me about your parents.", Text: "Mum was a nurse."},
		{Topic: "family_heritage", Question: "Did you have any brothers or sisters?", Text: "One brother."},
	}
	draft, err := GenerateDraft("Jane Doe", LevelComprehensive, answers)
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	// first answer of a group never takes a lead-in; later ones do
	if strings.Contains(draft, "Speaking of family, Mum was a nurse.") {
		t.Fatalf("first answer should not get a lead-in:\n%s", draft)
	}
	if !strings.Contains(draft, "Mum was a nurse.\n\nRegarding siblings, One brother.") {
		t.Fatalf("paragraph weave wrong:\n%s", draft)
	}
}

func TestGenerateDraft_EmptyAnswersSkippedWithoutShiftingLeadIns(t *testing.T) {
	answers := []Answer{
		{Topic: "family_heritage", Question: "Tell me about your parents.", Text: "   "},
		{Topic: "family_heritage", Question: "Did you have any siblings?", Text: "One brother."},
	}
	draft, err := GenerateDraft("Jane Doe", LevelModerate, answers)
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	// the sibling answer is still in second position, so its own lead-in
	// applies even though the first answer was blank
	if !strings.Contains(draft, "## Family & Heritage\n\nRegarding siblings, One brother.\n") {
		t.Fatalf("empty-answer handling wrong:\n%s", draft)
	}
}

func TestGenerateDraft_Deterministic(t *testing.T) {
	answers := []Answer{
		{Topic: "basic_info", Question: "What is your full name?", Text: "Jane Doe"},
		{Topic: "challenges", Question: "What was the most difficult period?", Text: "The flood years."},
		{Topic: "reflections", Question: "What are you most grateful for?", Text: "My family"},
	}
	a, err := GenerateDraft("Jane Doe", LevelBrief, answers)
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	b, err := GenerateDraft("Jane Doe", LevelBrief, answers)
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	if a != b {
		t.Fatalf("drafts for identical input differ")
	}
	if !strings.Contains(a, "My family.") {
		t.Fatalf("terminal punctuation not normalized:\n%s", a)
	}
}

func TestLeadInFor(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"What is your earliest memory?", "Looking back to the earliest memories,"},
		// "grandparents" contains "parents", and the earlier pattern wins
		{"Tell me about your grandparents.", "Speaking of family,"},
		{"What advice would you give your younger self?", "With the wisdom of years,"},
		{"Completely unmatched question text", ""},
	}
	for _, tc := range tests {
		if got := leadInFor(tc.question); got != tc.want {
			t.Fatalf("leadInFor(%q) = %q, want %q", tc.question, got, tc.want)
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
