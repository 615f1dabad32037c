package triage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cogniscreen/cogniscreen/internal/models"
	"github.com/cogniscreen/cogniscreen/internal/nlp"
)

// mockGenAIClient implements genai.ClientInterface for router tests.
type mockGenAIClient struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (m *mockGenAIClient) GeneratePrompt(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	return m.response, m.err
}

func TestGenAIRouter_Success(t *testing.T) {
	client := &mockGenAIClient{response: "  Do you re-check locked doors?  "}
	r := NewGenAIRouter(client)
	question, err := r.NextQuestion(context.Background(), nlp.NewEvidenceSet("checking"), "OCD", 70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if question != "Do you re-check locked doors?" {
		t.Errorf("expected trimmed question, got %q", question)
	}
	if !strings.Contains(client.lastUser, "OCD") || !strings.Contains(client.lastUser, "checking") {
		t.Errorf("prompt should carry label and evidence, got %q", client.lastUser)
	}
}

func TestGenAIRouter_EmptyQuestionIsError(t *testing.T) {
	client := &mockGenAIClient{response: "   "}
	r := NewGenAIRouter(client)
	_, err := r.NextQuestion(context.Background(), nlp.NewEvidenceSet(), "Anxiety", 50)
	if !errors.Is(err, models.ErrEmptyFollowupQuestion) {
		t.Errorf("expected ErrEmptyFollowupQuestion, got %v", err)
	}
}

func TestGenAIRouter_GenerationFailure(t *testing.T) {
	client := &mockGenAIClient{err: errors.New("service failure")}
	r := NewGenAIRouter(client)
	_, err := r.NextQuestion(context.Background(), nlp.NewEvidenceSet(), "Anxiety", 50)
	if err == nil || !strings.Contains(err.Error(), "service failure") {
		t.Errorf("expected wrapped service failure, got %v", err)
	}
}
