// Topic plan construction.
//
// A topic plan is the concrete, level-filtered view of the question bank for
// one interview. It is derived on demand and never persisted; for a fixed
// bank, the same level always yields the same plan.
package interview

import "errors"

// ErrUnknownLevel is returned when a detail level is not one of the five
// canonical levels.
var ErrUnknownLevel = errors.New("unknown detail level")

// PlanTopic is one topic of a plan with its level-filtered question texts.
type PlanTopic struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Questions   []string `json:"questions"`
}

// TopicPlan is the ordered sequence of topics for one interview.
type TopicPlan []PlanTopic

// BuildPlan applies a detail level to the question bank.
//
// A topic is included when its minimum level is at or below the requested
// level in the canonical ordering; within an included topic, a question is
// included when its depth does not exceed the level's maximum depth. Bank
// ordering is preserved on both axes, so the result is deterministic for a
// given (bank, level) pair.
func BuildPlan(level DetailLevel) (TopicPlan, error) {
	levelIdx, ok := LevelIndex(level)
	if !ok {
		return nil, ErrUnknownLevel
	}
	maxDepth := levelConfigs[levelIdx].MaxDepth

	plan := make(TopicPlan, 0, len(topics))
	for _, t := range topics {
		minIdx, ok := LevelIndex(t.MinLevel)
		if !ok || minIdx > levelIdx {
			continue
		}
		qs := make([]string, 0, len(t.Questions))
		for _, q := range t.Questions {
			if q.Depth <= maxDepth {
				qs = append(qs, q.Text)
			}
		}
		plan = append(plan, PlanTopic{
			ID:          t.ID,
			Name:        t.Name,
			Icon:        t.Icon,
			Description: t.Description,
			Questions:   qs,
		})
	}
	return plan, nil
}

// CountQuestions returns the total number of questions in the plan for level.
func CountQuestions(level DetailLevel) (int, error) {
	plan, err := BuildPlan(level)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, t := range plan {
		n += len(t.Questions)
	}
	return n, nil
}
