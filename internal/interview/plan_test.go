package interview

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildPlan_UnknownLevel(t *testing.T) {
	if _, err := BuildPlan("saga"); !errors.Is(err, ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
	if _, err := CountQuestions(""); !errors.Is(err, ErrUnknownLevel) {
		t.Fatalf("expected ErrUnknownLevel, got %v", err)
	}
}

func TestBuildPlan_UltraBrief(t *testing.T) {
	plan, err := BuildPlan(LevelUltraBrief)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}

	wantTopics := []string{"basic_info", "early_life", "family_heritage", "reflections", "legacy"}
	if len(plan) != len(wantTopics) {
		t.Fatalf("got %d topics, want %d", len(plan), len(wantTopics))
	}
	for i, pt := range plan {
		if pt.ID != wantTopics[i] {
			t.Fatalf("topic %d: got %q want %q", i, pt.ID, wantTopics[i])
		}
	}

	n, err := CountQuestions(LevelUltraBrief)
	if err != nil {
		t.Fatalf("CountQuestions: %v", err)
	}
	if n != 11 {
		t.Fatalf("ultra_brief question count = %d, want 11", n)
	}
}

func TestBuildPlan_DepthFilter(t *testing.T) {
	plan, err := BuildPlan(LevelBrief)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}

	byID := make(map[string]PlanTopic, len(plan))
	for _, pt := range plan {
		byID[pt.ID] = pt
	}

	// brief has maxDepth 2, so every plan question must exist in the bank at
	// depth <= 2 for its topic, and every depth <= 2 bank question must be in
	// the plan, in bank order.
	for _, topic := range Topics() {
		pt, included := byID[topic.ID]
		minIdx, _ := LevelIndex(topic.MinLevel)
		if minIdx > 1 {
			if included {
				t.Fatalf("topic %q (min level %q) should not appear at brief", topic.ID, topic.MinLevel)
			}
			continue
		}
		if !included {
			t.Fatalf("topic %q missing from brief plan", topic.ID)
		}
		var want []string
		for _, q := range topic.Questions {
			if q.Depth <= 2 {
				want = append(want, q.Text)
			}
		}
		if !reflect.DeepEqual(pt.Questions, want) {
			t.Fatalf("topic %q: questions %v, want %v", topic.ID, pt.Questions, want)
		}
	}
}

func TestCountQuestions_MonotonicAcrossLevels(t *testing.T) {
	prev := 0
	for _, lvl := range Levels() {
		n, err := CountQuestions(lvl.ID)
		if err != nil {
			t.Fatalf("CountQuestions(%q): %v", lvl.ID, err)
		}
		if n <= prev {
			t.Fatalf("level %q: count %d not greater than previous %d", lvl.ID, n, prev)
		}
		prev = n
	}

	// comprehensive includes the whole bank
	total := 0
	for _, topic := range Topics() {
		total += len(topic.Questions)
	}
	if prev != total {
		t.Fatalf("comprehensive count %d != bank total %d", prev, total)
	}
}

func TestBuildPlan_Deterministic(t *testing.T) {
	a, err := BuildPlan(LevelDetailed)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	b, err := BuildPlan(LevelDetailed)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("plans for the same level differ")
	}
}
