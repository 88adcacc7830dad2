// Package search provides a simple, deterministic, concurrency-safe in-memory
// search facility over the interview question bank. It lets clients locate a
// previously seen question (to revise an answer or jump back to it) without
// paging through the whole plan. It is intentionally small and
// dependency-free:
//
//   - No logging in the library (callers decide how/what to log)
//   - Unicode-aware tokenization with optional stop-word removal
//   - Immutable, read-only indexes after construction (safe for concurrent use)
//   - Deterministic scoring and ordering (ties resolve to plan order)
//
// Scoring uses Jaccard similarity between the query token set and each
// question’s token set: score = |Q ∩ P| / |Q ∪ P|.
package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/tbourn/go-biography-backend/internal/interview"
)

// Result is a ranked question match with its similarity score.
type Result struct {
	Topic     string  `json:"topic"`
	TopicName string  `json:"topic_name"`
	Question  string  `json:"question"`
	Score     float64 `json:"score"`
}

// ----------------------------------------------------------------------------
// Options

type Option func(*config)

type config struct {
	stopwords map[string]struct{}
}

func defaultConfig() config {
	return config{
		stopwords: defaultStopwords,
	}
}

// WithStopwords replaces the default stop-word set used during tokenization.
func WithStopwords(words []string) Option {
	return func(c *config) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		c.stopwords = m
	}
}

// Interview questions lean on the same interrogative scaffolding ("what was
// your", "tell me about"), so those words carry no signal between questions.
var defaultStopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "of": {}, "to": {},
	"in": {}, "is": {}, "was": {}, "were": {}, "do": {}, "did": {}, "does": {},
	"you": {}, "your": {}, "me": {}, "my": {}, "what": {}, "who": {}, "how": {},
	"when": {}, "where": {}, "tell": {}, "about": {}, "describe": {},
	"have": {}, "has": {}, "had": {}, "that": {}, "it": {}, "are": {},
}

// ----------------------------------------------------------------------------
// Implementation

type doc struct {
	topic     string
	topicName string
	question  string
	tokens    map[string]struct{}
	tLen      int
}

type index struct {
	docs []doc
}

// Catalog holds one immutable question index per detail level. Deeper levels
// include more questions, so each level gets its own index built from its own
// plan. A Catalog is safe for concurrent use after construction.
type Catalog struct {
	cfg     config
	indexes map[interview.DetailLevel]*index
}

// NewCatalog builds the per-level question indexes from the question bank.
// The bank is static, so this never fails and is done once at startup.
func NewCatalog(opts ...Option) *Catalog {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	c := &Catalog{cfg: cfg, indexes: make(map[interview.DetailLevel]*index)}
	for _, lvl := range interview.Levels() {
		plan, err := interview.BuildPlan(lvl.ID)
		if err != nil {
			continue
		}
		c.indexes[lvl.ID] = buildIndex(plan, cfg)
	}
	return c
}

func buildIndex(plan interview.TopicPlan, cfg config) *index {
	var docs []doc
	for _, t := range plan {
		for _, q := range t.Questions {
			toks := tokenize(q, cfg.stopwords)
			if len(toks) == 0 {
				continue
			}
			docs = append(docs, doc{
				topic:     t.ID,
				topicName: t.Name,
				question:  q,
				tokens:    toks,
				tLen:      len(toks),
			})
		}
	}
	return &index{docs: docs}
}

// TopK returns up to k best-matching questions from the given level's plan,
// ranked by Jaccard similarity. Equal scores keep plan order, so results are
// stable across calls. An unknown level or blank query yields nil.
func (c *Catalog) TopK(level interview.DetailLevel, query string, k int) []Result {
	idx, ok := c.indexes[level]
	if !ok || len(idx.docs) == 0 {
		return nil
	}
	if strings.TrimSpace(query) == "" {
		return nil
	}
	if k <= 0 {
		k = 5
	}
	qTokens := tokenize(query, c.cfg.stopwords)
	if len(qTokens) == 0 {
		return nil
	}
	qLen := len(qTokens)

	buf := make([]Result, 0, len(idx.docs))
	for _, d := range idx.docs {
		over := overlap(qTokens, d.tokens)
		if over == 0 {
			continue
		}
		score := float64(over) / float64(qLen+d.tLen-over)
		buf = append(buf, Result{
			Topic:     d.topic,
			TopicName: d.topicName,
			Question:  d.question,
			Score:     score,
		})
	}
	if len(buf) == 0 {
		return nil
	}

	sort.SliceStable(buf, func(a, b int) bool { return buf[a].Score > buf[b].Score })

	if k > len(buf) {
		k = len(buf)
	}
	return buf[:k]
}

// ----------------------------------------------------------------------------
// Helpers

var wordRE = regexp.MustCompile(`\p{L}+\p{N}*`)

func tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	s = strings.ToLower(s)
	words := wordRE.FindAllString(s, -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, skip := stop[w]; skip {
			continue
		}
		out[w] = struct{}{}
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := 0
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
