// Package models defines conversation state structures for CogniScreen.
package models

// Phase identifies where a conversation is in the triage state machine.
type Phase string

const (
	// PhaseScripted covers the fixed-order intake questions.
	PhaseScripted Phase = "SCRIPTED"
	// PhaseAdaptive covers confidence-gated follow-up questioning.
	PhaseAdaptive Phase = "ADAPTIVE"
	// PhaseDiagnosed is the terminal phase after a declared diagnosis.
	PhaseDiagnosed Phase = "DIAGNOSED"
	// PhaseInconclusive is the terminal phase after an inconclusive notice.
	PhaseInconclusive Phase = "INCONCLUSIVE"
)

// ConversationState is the client-carried value object reconstructed from
// the request each turn. The server never stores it between requests.
type ConversationState struct {
	QuestionIndex int
	FollowupCount int
	Answers       []string
}

// StateFromRequest reconstructs conversation state from client-echoed
// fields. Answers is copied so turn processing never aliases request data.
func StateFromRequest(req TurnRequest) ConversationState {
	answers := make([]string, len(req.Answers))
	copy(answers, req.Answers)
	return ConversationState{
		QuestionIndex: req.QuestionIndex,
		FollowupCount: req.FollowupCount,
		Answers:       answers,
	}
}

// Phase derives the current phase from the question index and the length of
// the scripted question list. Terminal phases exist only in responses; a
// fresh request is always scripted or adaptive.
func (s ConversationState) Phase(scriptedQuestions int) Phase {
	if s.QuestionIndex < scriptedQuestions {
		return PhaseScripted
	}
	return PhaseAdaptive
}
