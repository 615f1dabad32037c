package triage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cogniscreen/cogniscreen/internal/genai"
	"github.com/cogniscreen/cogniscreen/internal/models"
	"github.com/cogniscreen/cogniscreen/internal/nlp"
)

const genaiRouterSystemPrompt = "You are a mental health triage assistant. " +
	"Given the symptoms detected so far and the current candidate condition, " +
	"ask exactly one short, empathetic follow-up question that would best " +
	"distinguish the candidate condition. Reply with the question only, no " +
	"preamble and no explanation."

// GenAIRouter phrases targeted follow-up questions with an LLM. Question
// wording may vary across calls for the same inputs; the controller only
// requires a non-empty question.
type GenAIRouter struct {
	client genai.ClientInterface
}

// NewGenAIRouter creates a router backed by the given GenAI client.
func NewGenAIRouter(client genai.ClientInterface) *GenAIRouter {
	return &GenAIRouter{client: client}
}

// NextQuestion asks the LLM for one follow-up question. An empty completion
// is an error: the turn must fail rather than present a blank question.
func (r *GenAIRouter) NextQuestion(ctx context.Context, evidence nlp.EvidenceSet, label string, confidence int) (string, error) {
	userPrompt := fmt.Sprintf(
		"Detected symptom terms: %s.\nCandidate condition: %s (confidence %d%%).\nAsk the single most informative follow-up question.",
		strings.Join(evidence.Terms(), ", "), label, confidence,
	)
	question, err := r.client.GeneratePrompt(ctx, genaiRouterSystemPrompt, userPrompt)
	if err != nil {
		slog.Error("GenAIRouter.NextQuestion: generation failed", "error", err, "label", label)
		return "", fmt.Errorf("follow-up generation failed: %w", err)
	}
	question = strings.TrimSpace(question)
	if question == "" {
		slog.Error("GenAIRouter.NextQuestion: generation returned empty question", "label", label)
		return "", models.ErrEmptyFollowupQuestion
	}
	return question, nil
}
