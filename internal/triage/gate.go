package triage

import "github.com/cogniscreen/cogniscreen/internal/models"

// Action is the per-turn decision produced by the confidence gate.
type Action int

const (
	// ActionDiagnose terminates the conversation with a declared diagnosis.
	ActionDiagnose Action = iota
	// ActionFollowup asks one more adaptive follow-up question.
	ActionFollowup
	// ActionInconclusive terminates the conversation without a diagnosis.
	ActionInconclusive
)

// String returns the action name for logs.
func (a Action) String() string {
	switch a {
	case ActionDiagnose:
		return "diagnose"
	case ActionFollowup:
		return "followup"
	case ActionInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// ConfidenceGate applies the fixed-priority decision table that bounds
// conversation length: diagnose at or above the threshold, otherwise follow
// up while budget remains, otherwise terminate inconclusive. Reaching the
// budget forces termination even if confidence is trending upward.
type ConfidenceGate struct {
	threshold    int
	maxFollowups int
}

// NewConfidenceGate creates a gate with the standard threshold and budget.
func NewConfidenceGate() *ConfidenceGate {
	return &ConfidenceGate{
		threshold:    models.ConfidenceThreshold,
		maxFollowups: models.MaxFollowups,
	}
}

// Decide evaluates the decision table in priority order. The threshold is
// inclusive: confidence exactly at the threshold diagnoses.
func (g *ConfidenceGate) Decide(confidence, followupCount int) Action {
	if confidence >= g.threshold {
		return ActionDiagnose
	}
	if followupCount < g.maxFollowups {
		return ActionFollowup
	}
	return ActionInconclusive
}
