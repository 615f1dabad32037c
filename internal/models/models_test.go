package models

import (
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestTurnRequestValidate_MissingMessage(t *testing.T) {
	req := TurnRequest{}
	if err := req.Validate(); err != ErrMissingUtterance {
		t.Errorf("expected ErrMissingUtterance, got %v", err)
	}
}

func TestTurnRequestValidate_EmptyMessageAllowed(t *testing.T) {
	// An empty answer is a real (if unhelpful) answer; only an absent field
	// is malformed.
	req := TurnRequest{Message: strPtr("")}
	if err := req.Validate(); err != nil {
		t.Errorf("expected empty message to validate, got %v", err)
	}
}

func TestTurnRequestValidate_TooLong(t *testing.T) {
	req := TurnRequest{Message: strPtr(strings.Repeat("a", MaxUtteranceLength+1))}
	if err := req.Validate(); err != ErrUtteranceTooLong {
		t.Errorf("expected ErrUtteranceTooLong, got %v", err)
	}
}

func TestTurnRequestValidate_NegativeIndex(t *testing.T) {
	req := TurnRequest{Message: strPtr("hi"), QuestionIndex: -1}
	if err := req.Validate(); err != ErrNegativeQuestionIndex {
		t.Errorf("expected ErrNegativeQuestionIndex, got %v", err)
	}
}

func TestTurnRequestValidate_FollowupCountRange(t *testing.T) {
	req := TurnRequest{Message: strPtr("hi"), FollowupCount: MaxFollowups + 1}
	if err := req.Validate(); err != ErrFollowupCountOutOfRange {
		t.Errorf("expected ErrFollowupCountOutOfRange, got %v", err)
	}
	req.FollowupCount = MaxFollowups
	if err := req.Validate(); err != nil {
		t.Errorf("expected followup_count at the budget to validate, got %v", err)
	}
}

func TestDiagnosisResultValidate(t *testing.T) {
	cases := []struct {
		name   string
		result DiagnosisResult
		want   error
	}{
		{"valid", DiagnosisResult{Label: "Anxiety", Confidence: 85}, nil},
		{"zero confidence", DiagnosisResult{Label: "Unclassified", Confidence: 0}, nil},
		{"over range", DiagnosisResult{Label: "Anxiety", Confidence: 101}, ErrInvalidConfidence},
		{"under range", DiagnosisResult{Label: "Anxiety", Confidence: -1}, ErrInvalidConfidence},
		{"empty label", DiagnosisResult{Confidence: 50}, ErrEmptyDiagnosisLabel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.result.Validate(); err != tc.want {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPadAnswers_Exact(t *testing.T) {
	answers := make([]string, FeedbackAnswerSlots)
	for i := range answers {
		answers[i] = "answer"
	}
	padded := PadAnswers(answers)
	if len(padded) != FeedbackAnswerSlots {
		t.Fatalf("expected %d slots, got %d", FeedbackAnswerSlots, len(padded))
	}
	for i, a := range padded {
		if a != answers[i] {
			t.Errorf("slot %d changed: %q", i, a)
		}
	}
}

func TestPadAnswers_Short(t *testing.T) {
	padded := PadAnswers([]string{"one", "two", "three"})
	if len(padded) != FeedbackAnswerSlots {
		t.Fatalf("expected %d slots, got %d", FeedbackAnswerSlots, len(padded))
	}
	for i := 3; i < FeedbackAnswerSlots; i++ {
		if padded[i] != "" {
			t.Errorf("slot %d should be empty, got %q", i, padded[i])
		}
	}
}

func TestPadAnswers_Long(t *testing.T) {
	answers := make([]string, 20)
	for i := range answers {
		answers[i] = "answer"
	}
	padded := PadAnswers(answers)
	if len(padded) != FeedbackAnswerSlots {
		t.Fatalf("expected only the first %d answers to survive, got %d slots", FeedbackAnswerSlots, len(padded))
	}
}

func TestNewFeedbackRecord(t *testing.T) {
	record := NewFeedbackRecord([]string{"a", "b"}, "OCD", 92)
	if record.ID == "" {
		t.Error("expected a generated record ID")
	}
	if len(record.Answers) != FeedbackAnswerSlots {
		t.Errorf("expected %d answer slots, got %d", FeedbackAnswerSlots, len(record.Answers))
	}
	if record.PredictedLabel != "OCD" || record.Confidence != 92 {
		t.Errorf("prediction fields not carried: %+v", record)
	}
	if record.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStateFromRequest_CopiesAnswers(t *testing.T) {
	req := TurnRequest{Message: strPtr("hi"), Answers: []string{"first"}}
	state := StateFromRequest(req)
	state.Answers[0] = "mutated"
	if req.Answers[0] != "first" {
		t.Error("state must not alias request answers")
	}
}

func TestConversationStatePhase(t *testing.T) {
	state := ConversationState{QuestionIndex: 9}
	if got := state.Phase(10); got != PhaseScripted {
		t.Errorf("index 9 of 10 should be scripted, got %s", got)
	}
	state.QuestionIndex = 10
	if got := state.Phase(10); got != PhaseAdaptive {
		t.Errorf("index 10 of 10 should be adaptive, got %s", got)
	}
}
