// Package triage implements the adaptive conversation controller: the
// scripted question sequencer, the vagueness filter, the confidence gate,
// the follow-up routers, and the per-turn state machine that composes them.
package triage

// DefaultQuestions returns the fixed intake question list asked, in order,
// before any adaptive logic runs.
func DefaultQuestions() []string {
	return []string{
		"How have you been feeling lately?",
		"Have you experienced any unusual changes in behavior?",
		"Are there any particular thoughts that worry you often?",
		"Do you feel comfortable in social settings?",
		"Have your sleeping patterns changed recently?",
		"Do you find it hard to concentrate on tasks?",
		"Are there any repetitive thoughts or actions you engage in?",
		"Have you faced difficulties in expressing emotions?",
		"Do loud sounds or bright lights affect you strongly?",
		"Is change in routine distressing for you?",
	}
}

// Sequencer delivers the scripted intake questions by index. It is
// stateless and order-stable: the same index always yields the same text.
type Sequencer struct {
	questions []string
}

// NewSequencer creates a sequencer over an immutable question list. The
// slice is copied so later mutation by the caller cannot reorder questions.
func NewSequencer(questions []string) *Sequencer {
	copied := make([]string, len(questions))
	copy(copied, questions)
	return &Sequencer{questions: copied}
}

// Next returns the scripted question at index and true while the index is
// in bounds, or "" and false once the scripted phase is complete.
func (s *Sequencer) Next(index int) (string, bool) {
	if index < 0 || index >= len(s.questions) {
		return "", false
	}
	return s.questions[index], true
}

// Len returns the number of scripted questions.
func (s *Sequencer) Len() int {
	return len(s.questions)
}

// Questions returns a copy of the scripted question list.
func (s *Sequencer) Questions() []string {
	copied := make([]string, len(s.questions))
	copy(copied, s.questions)
	return copied
}
