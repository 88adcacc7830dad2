// Resumption navigation.
//
// The navigator computes and steps the (topic index, question index) cursor
// that identifies the current question of an in-progress interview. All
// functions here are pure: they operate on a plan and data supplied by the
// caller and never touch the session store.
package interview

import "errors"

// ErrTopicIndex is returned by JumpToTopic for an out-of-range topic index.
var ErrTopicIndex = errors.New("topic index out of range")

// Cursor identifies one question within a topic plan.
type Cursor struct {
	Topic    int `json:"topic_index"`
	Question int `json:"question_index"`
}

// Answer is one recorded answer as seen by the engine: the topic id and the
// verbatim question text locate the question, Text carries the answer prose.
// The same question text may appear under two different topics, so lookups
// always match on the (topic, question) pair.
type Answer struct {
	Topic    string
	Question string
	Text     string
}

// InitialCursor computes where an interview resumes given the plan and the
// previously stored answers in arrival order.
//
// With no answers the cursor is the first question of the first topic. Other-
// wise the last answer is located in the plan and the cursor advances one
// step past it, except at the very end of the plan, where it stays on the
// final question; reaching end-of-plan is the caller's signal to offer draft
// generation rather than another question.
//
// When the last answer's topic no longer exists in the plan (the level was
// changed and the plan rebuilt), the cursor falls back to the start of the
// plan. This is a defined fallback, not an error.
func InitialCursor(plan TopicPlan, answered []Answer) Cursor {
	if len(plan) == 0 || len(answered) == 0 {
		return Cursor{}
	}
	last := answered[len(answered)-1]

	tIdx := -1
	for i, t := range plan {
		if t.ID == last.Topic {
			tIdx = i
			break
		}
	}
	if tIdx < 0 {
		return Cursor{}
	}

	qIdx := -1
	for i, q := range plan[tIdx].Questions {
		if q == last.Question {
			qIdx = i
			break
		}
	}
	if qIdx < 0 {
		// The question fell out of the rebuilt plan; restart its topic.
		return Cursor{Topic: tIdx}
	}
	return Advance(plan, Cursor{Topic: tIdx, Question: qIdx})
}

// Advance steps the cursor one question forward: to the next question of the
// current topic, else to the first question of the next topic. At the final
// question of the final topic it is a no-op; there is no wrap-around.
func Advance(plan TopicPlan, cur Cursor) Cursor {
	if !valid(plan, cur) {
		return cur
	}
	if cur.Question < len(plan[cur.Topic].Questions)-1 {
		return Cursor{Topic: cur.Topic, Question: cur.Question + 1}
	}
	if cur.Topic < len(plan)-1 {
		return Cursor{Topic: cur.Topic + 1}
	}
	return cur
}

// Retreat steps the cursor one question backward: to the previous question of
// the current topic, else to the last question of the previous topic. At the
// very first question it is a no-op.
func Retreat(plan TopicPlan, cur Cursor) Cursor {
	if !valid(plan, cur) {
		return cur
	}
	if cur.Question > 0 {
		return Cursor{Topic: cur.Topic, Question: cur.Question - 1}
	}
	if cur.Topic > 0 {
		prev := cur.Topic - 1
		return Cursor{Topic: prev, Question: len(plan[prev].Questions) - 1}
	}
	return cur
}

// JumpToTopic moves the cursor to the first question of the given topic.
func JumpToTopic(plan TopicPlan, topicIndex int) (Cursor, error) {
	if topicIndex < 0 || topicIndex >= len(plan) {
		return Cursor{}, ErrTopicIndex
	}
	return Cursor{Topic: topicIndex}, nil
}

// valid reports whether cur addresses an existing question of plan.
func valid(plan TopicPlan, cur Cursor) bool {
	if cur.Topic < 0 || cur.Topic >= len(plan) {
		return false
	}
	return cur.Question >= 0 && cur.Question < len(plan[cur.Topic].Questions)
}
