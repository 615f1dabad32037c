// Package models defines the core data structures for CogniScreen.
//
// It includes the per-turn request/response types exchanged with clients,
// the diagnosis result produced each turn, and the structured feedback
// record persisted on diagnosed conversations.
package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Triage policy constants shared across components.
const (
	// ConfidenceThreshold is the minimum confidence (inclusive) required to
	// declare a diagnosis.
	ConfidenceThreshold = 85
	// MaxFollowups bounds the number of adaptive follow-up questions per
	// conversation.
	MaxFollowups = 5
	// VagueConfidenceCap is the confidence ceiling applied to turns flagged
	// as low-information.
	VagueConfidenceCap = 60
	// MinEvidenceTerms is the minimum number of distinct symptom terms below
	// which a turn counts as low-information.
	MinEvidenceTerms = 3
	// FeedbackAnswerSlots is the fixed number of answer columns in a
	// feedback record.
	FeedbackAnswerSlots = 15
	// MaxUtteranceLength defines the maximum allowed length for a single
	// client utterance.
	MaxUtteranceLength = 4096
)

// Error variables for better error handling and testability
var (
	ErrMissingUtterance        = errors.New("message field is required")
	ErrUtteranceTooLong        = errors.New("message exceeds maximum length")
	ErrNegativeQuestionIndex   = errors.New("question_index cannot be negative")
	ErrFollowupCountOutOfRange = errors.New("followup_count outside allowed range")
	ErrInvalidConfidence       = errors.New("confidence outside 0-100 range")
	ErrEmptyDiagnosisLabel     = errors.New("diagnosis label cannot be empty")
	ErrEmptyFollowupQuestion   = errors.New("follow-up router returned an empty question")
)

// TurnRequest is the payload a client submits for one conversation turn.
// The client carries all conversation state between turns, so every field
// besides Message echoes what the previous response returned. Message is a
// pointer so that an absent field is distinguishable from an empty answer.
type TurnRequest struct {
	Message       *string  `json:"message"`
	QuestionIndex int      `json:"question_index"`
	FollowupCount int      `json:"followup_count"`
	Answers       []string `json:"answers"`
}

// Validate performs request validation before any turn processing.
func (r *TurnRequest) Validate() error {
	if r.Message == nil {
		return ErrMissingUtterance
	}
	if len(*r.Message) > MaxUtteranceLength {
		return ErrUtteranceTooLong
	}
	if r.QuestionIndex < 0 {
		return ErrNegativeQuestionIndex
	}
	if r.FollowupCount < 0 || r.FollowupCount > MaxFollowups {
		return ErrFollowupCountOutOfRange
	}
	return nil
}

// Utterance returns the client's message text, or "" when absent.
func (r *TurnRequest) Utterance() string {
	if r.Message == nil {
		return ""
	}
	return *r.Message
}

// TurnResponse is the per-turn reply. Exactly one of Reply (terminal) or
// NextQuestion (non-terminal) is set. Answers echoes the full history back
// to the client on non-terminal turns; terminal turns omit it and reset the
// counters so a client can start a fresh conversation by echoing them as-is.
type TurnResponse struct {
	Reply         *string  `json:"reply"`
	NextQuestion  *string  `json:"next_question"`
	QuestionIndex int      `json:"question_index"`
	FollowupCount int      `json:"followup_count"`
	Answers       []string `json:"answers,omitempty"`
	ShowResult    bool     `json:"show_result,omitempty"`
}

// Terminal reports whether this response ends the conversation.
func (r *TurnResponse) Terminal() bool {
	return r.Reply != nil
}

// DiagnosisResult is the ensemble's verdict for one turn. It is recomputed
// fresh from the evidence every adaptive turn and never stored until the
// turn that terminates the conversation.
type DiagnosisResult struct {
	Label      string `json:"label"`
	Confidence int    `json:"confidence"`
}

// Validate checks the result against the collaborator contract.
func (d DiagnosisResult) Validate() error {
	if d.Label == "" {
		return ErrEmptyDiagnosisLabel
	}
	if d.Confidence < 0 || d.Confidence > 100 {
		return ErrInvalidConfidence
	}
	return nil
}

// FeedbackRecord is the fixed-width row appended once per diagnosed
// conversation. Answers always holds exactly FeedbackAnswerSlots entries:
// extra answers are truncated, missing slots are padded with empty strings.
type FeedbackRecord struct {
	ID             string    `json:"id"`
	Answers        []string  `json:"answers"`
	PredictedLabel string    `json:"predicted_label"`
	Confidence     int       `json:"confidence"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewFeedbackRecord builds a feedback record with padded answer slots.
func NewFeedbackRecord(answers []string, predictedLabel string, confidence int) FeedbackRecord {
	return FeedbackRecord{
		ID:             uuid.NewString(),
		Answers:        PadAnswers(answers),
		PredictedLabel: predictedLabel,
		Confidence:     confidence,
		CreatedAt:      time.Now().UTC(),
	}
}

// PadAnswers normalizes an answer history to exactly FeedbackAnswerSlots
// entries, truncating beyond the limit and padding with empty strings below.
func PadAnswers(answers []string) []string {
	padded := make([]string, FeedbackAnswerSlots)
	copy(padded, answers)
	return padded
}
