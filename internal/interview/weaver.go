// Narrative draft weaving.
//
// The weaver turns a session's stored answers into a Markdown biography:
// a title, an introduction drawn from the basic_info topic, one section per
// answered topic in a fixed canonical order, and a closing provenance line.
// Output is deterministic: identical input yields byte-identical Markdown.
package interview

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoResponses is returned when draft generation is attempted before any
// answer has been stored.
var ErrNoResponses = errors.New("no responses recorded")

// draftSection pairs a topic id with the heading its section renders under.
// The slice order is the canonical section order of the generated narrative,
// independent of both the bank's topic order and answer arrival order.
// basic_info renders as an unlabeled introduction and is handled separately.
var draftSections = []struct {
	id      string
	heading string
}{
	{"basic_info", ""},
	{"early_life", "Early Life & Childhood"},
	{"family_heritage", "Family & Heritage"},
	{"education", "Education"},
	{"career", "Career & Work"},
	{"love_relationships", "Love & Relationships"},
	{"children_parenting", "Children & Parenting"},
	{"hobbies_passions", "Hobbies & Passions"},
	{"achievements", "Achievements & Milestones"},
	{"challenges", "Challenges & Resilience"},
	{"faith_values", "Faith & Values"},
	{"travel_adventures", "Travel & Adventures"},
	{"historical_moments", "A Life in History"},
	{"daily_life", "Daily Life"},
	{"reflections", "Life Reflections"},
	{"legacy", "Legacy"},
}

// leadIns maps question-text patterns to narrative lead-in phrases. The list
// is ordered and the first matching pattern wins; several patterns can match
// the same question (e.g. "parents" vs "grandparents"), so reordering entries
// changes the produced prose.
var leadIns = []struct {
	pattern *regexp.Regexp
	phrase  string
}{
	{regexp.MustCompile(`(?i)earliest memory`), "Looking back to the earliest memories,"},
	{regexp.MustCompile(`(?i)favorite things to do`), "When it came to favorite pastimes,"},
	{regexp.MustCompile(`(?i)best friend`), "On the topic of childhood friendships,"},
	{regexp.MustCompile(`(?i)holidays|special occasions`), "When holidays and special occasions came around,"},
	{regexp.MustCompile(`(?i)most vivid memory`), "One memory stands out above the rest:"},
	{regexp.MustCompile(`(?i)parents`), "Speaking of family,"},
	{regexp.MustCompile(`(?i)brothers or sisters|siblings`), "Regarding siblings,"},
	{regexp.MustCompile(`(?i)grandparents`), "The grandparents also played a role:"},
	{regexp.MustCompile(`(?i)school`), "When it came to education,"},
	{regexp.MustCompile(`(?i)first job`), "The working years began early:"},
	{regexp.MustCompile(`(?i)career|work.*life`), "Career-wise,"},
	{regexp.MustCompile(`(?i)proud`), "With pride,"},
	{regexp.MustCompile(`(?i)met.*partner|important person`), "In matters of the heart,"},
	{regexp.MustCompile(`(?i)wedding`), "The wedding day was memorable:"},
	{regexp.MustCompile(`(?i)children|parent`), "As for family life,"},
	{regexp.MustCompile(`(?i)hobby|hobbies|interests`), "Beyond work and family,"},
	{regexp.MustCompile(`(?i)challenge|difficult`), "Life was not without its challenges:"},
	{regexp.MustCompile(`(?i)strength|hope`), "Through it all,"},
	{regexp.MustCompile(`(?i)values|believe`), "At the core,"},
	{regexp.MustCompile(`(?i)travel|visited|trip`), "Travel brought its own adventures:"},
	{regexp.MustCompile(`(?i)world event|history`), "Living through history,"},
	{regexp.MustCompile(`(?i)grateful`), "With deep gratitude,"},
	{regexp.MustCompile(`(?i)advice|younger self`), "With the wisdom of years,"},
	{regexp.MustCompile(`(?i)remembered|legacy`), "Looking toward the future,"},
}

// GenerateDraft weaves the stored answers of one session into a Markdown
// biography for subjectName at the given detail level.
//
// Answers are grouped by topic; inside a group, first-occurrence arrival
// order is preserved, so a revised answer keeps its original narrative
// position. Topics without answers are omitted. For the two shortest levels
// the prose is compact: answers are joined with single spaces and terminal
// punctuation is normalized. For all other levels each answer becomes its own
// paragraph, optionally preceded by a contextual lead-in phrase derived from
// the stored question text.
func GenerateDraft(subjectName string, level DetailLevel, answers []Answer) (string, error) {
	if len(answers) == 0 {
		return "", ErrNoResponses
	}
	isShort := level == LevelUltraBrief || level == LevelBrief

	byTopic := make(map[string][]Answer, len(draftSections))
	for _, a := range answers {
		byTopic[a.Topic] = append(byTopic[a.Topic], a)
	}

	var b strings.Builder

	b.WriteString("# The Life of " + subjectName + "\n\n")
	b.WriteString("*A biographical narrative based on a personal interview.*\n\n")
	b.WriteString("---\n")

	if intro := byTopic["basic_info"]; len(intro) > 0 {
		b.WriteString("\n## Introduction\n\n")
		b.WriteString(weave(intro, isShort))
	}

	for _, s := range draftSections {
		if s.id == "basic_info" {
			continue
		}
		group := byTopic[s.id]
		if len(group) == 0 {
			continue
		}
		b.WriteString("\n## " + s.heading + "\n\n")
		b.WriteString(weave(group, isShort))
	}

	b.WriteString("\n---\n\n")
	if len(byTopic["legacy"]) > 0 {
		b.WriteString("*This biography was created from a personal interview with " + subjectName + ".*\n")
	} else {
		b.WriteString("*This biography was created from a personal interview with " + subjectName + ". ")
		b.WriteString("The story continues to unfold.*\n")
	}

	return b.String(), nil
}

// weave stitches one topic's answers into prose. Empty answers are skipped
// without disturbing the lead-in positions of the ones that follow.
func weave(group []Answer, isShort bool) string {
	var b strings.Builder
	emitted := 0
	for i, a := range group {
		text := strings.TrimSpace(a.Text)
		if text == "" {
			continue
		}
		if isShort {
			if emitted > 0 {
				b.WriteString(" ")
			}
		} else {
			if emitted > 0 {
				b.WriteString("\n\n")
			}
			// Lead-ins key off position in the group, not emission order, so a
			// skipped empty answer does not shift phrases onto the wrong text.
			if i > 0 {
				if phrase := leadInFor(a.Question); phrase != "" {
					b.WriteString(phrase + " ")
				}
			}
		}
		emitted++
		b.WriteString(text)
		if !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "!") && !strings.HasSuffix(text, "?") {
			b.WriteString(".")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// leadInFor returns the narrative lead-in for a question, or "" when no
// pattern matches.
func leadInFor(question string) string {
	for _, li := range leadIns {
		if li.pattern.MatchString(question) {
			return li.phrase
		}
	}
	return ""
}
