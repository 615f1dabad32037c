package triage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cogniscreen/cogniscreen/internal/models"
	"github.com/cogniscreen/cogniscreen/internal/nlp"
)

// InconclusiveNotice is the terminal reply when the follow-up budget runs
// out below the confidence threshold.
const InconclusiveNotice = "The current responses are inconclusive for a confident diagnosis.\n" +
	"We recommend seeking professional medical advice."

// DiagnosisPredictor is the ensemble collaborator contract.
type DiagnosisPredictor interface {
	Predict(evidence nlp.EvidenceSet) (models.DiagnosisResult, error)
}

// Recommender resolves advice text and reference links for a label.
type Recommender interface {
	Recommend(label string) string
	Links(label string) []string
}

// FeedbackSink persists one feedback record per diagnosed conversation.
type FeedbackSink interface {
	AddFeedback(record models.FeedbackRecord) error
}

// Controller owns the per-turn triage state machine. It is stateless across
// turns: everything it needs arrives in the request, and the response hands
// the updated state back to the client.
type Controller struct {
	sequencer  *Sequencer
	aggregator *Aggregator
	predictor  DiagnosisPredictor
	vagueness  *VaguenessFilter
	gate       *ConfidenceGate
	router     FollowupRouter
	recommend  Recommender
	feedback   FeedbackSink
}

// NewController wires the controller's collaborators.
func NewController(sequencer *Sequencer, aggregator *Aggregator, predictor DiagnosisPredictor, router FollowupRouter, recommend Recommender, feedback FeedbackSink) *Controller {
	return &Controller{
		sequencer:  sequencer,
		aggregator: aggregator,
		predictor:  predictor,
		vagueness:  NewVaguenessFilter(),
		gate:       NewConfidenceGate(),
		router:     router,
		recommend:  recommend,
		feedback:   feedback,
	}
}

// Questions exposes the scripted question list for the API layer.
func (c *Controller) Questions() []string {
	return c.sequencer.Questions()
}

// HandleTurn processes one conversation turn. The request must already be
// validated. A returned error means the turn failed atomically: no feedback
// was written and the client's state is untouched, since state only ever
// lives in the client's own echoed fields.
func (c *Controller) HandleTurn(ctx context.Context, req models.TurnRequest) (*models.TurnResponse, error) {
	state := models.StateFromRequest(req)
	utterance := req.Utterance()
	answers := append(state.Answers, utterance)
	phase := state.Phase(c.sequencer.Len())
	slog.Debug("Controller.HandleTurn: processing turn", "phase", phase, "question_index", state.QuestionIndex, "followup_count", state.FollowupCount, "answers", len(answers))

	if question, ok := c.sequencer.Next(state.QuestionIndex); ok {
		// Scripted phase: content-independent, follow-up counter stays 0.
		return &models.TurnResponse{
			NextQuestion:  &question,
			QuestionIndex: state.QuestionIndex + 1,
			FollowupCount: 0,
			Answers:       answers,
		}, nil
	}

	// Adaptive phase, entered on the same turn the scripted list runs out.
	evidence := c.aggregator.Aggregate(answers)
	result, err := c.predictor.Predict(evidence)
	if err != nil {
		slog.Error("Controller.HandleTurn: prediction failed", "error", err)
		return nil, fmt.Errorf("diagnosis prediction failed: %w", err)
	}
	if err := result.Validate(); err != nil {
		slog.Error("Controller.HandleTurn: prediction violated contract", "error", err, "label", result.Label, "confidence", result.Confidence)
		return nil, fmt.Errorf("diagnosis prediction invalid: %w", err)
	}
	confidence := c.vagueness.Apply(result.Confidence, utterance, evidence.Len())

	action := c.gate.Decide(confidence, state.FollowupCount)
	slog.Debug("Controller.HandleTurn: gate decided", "action", action.String(), "label", result.Label, "confidence", confidence, "evidence_terms", evidence.Len())

	switch action {
	case ActionFollowup:
		question, err := c.router.NextQuestion(ctx, evidence, result.Label, confidence)
		if err != nil {
			return nil, fmt.Errorf("follow-up routing failed: %w", err)
		}
		if strings.TrimSpace(question) == "" {
			slog.Error("Controller.HandleTurn: router returned empty question", "label", result.Label)
			return nil, models.ErrEmptyFollowupQuestion
		}
		return &models.TurnResponse{
			NextQuestion:  &question,
			QuestionIndex: state.QuestionIndex,
			FollowupCount: state.FollowupCount + 1,
			Answers:       answers,
		}, nil

	case ActionInconclusive:
		notice := InconclusiveNotice
		slog.Info("Controller.HandleTurn: conversation inconclusive", "followup_count", state.FollowupCount, "confidence", confidence)
		return terminalResponse(notice), nil

	default: // ActionDiagnose
		record := models.NewFeedbackRecord(answers, result.Label, confidence)
		if err := c.feedback.AddFeedback(record); err != nil {
			// The user-facing outcome must not depend on logging succeeding.
			slog.Warn("Controller.HandleTurn: feedback append failed", "error", err, "record_id", record.ID, "label", result.Label)
		}
		reply := c.formatDiagnosisReply(result.Label, confidence)
		slog.Info("Controller.HandleTurn: diagnosis declared", "label", result.Label, "confidence", confidence, "record_id", record.ID)
		return terminalResponse(reply), nil
	}
}

// terminalResponse builds a conversation-ending response with counters
// reset so the client can re-enter the scripted phase by echoing them.
func terminalResponse(reply string) *models.TurnResponse {
	return &models.TurnResponse{
		Reply:         &reply,
		QuestionIndex: 0,
		FollowupCount: 0,
		ShowResult:    true,
	}
}

// formatDiagnosisReply renders the diagnosis, the recommendation, and any
// reference links for the label.
func (c *Controller) formatDiagnosisReply(label string, confidence int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Likely condition: %s (%d%%)\n", label, confidence)
	fmt.Fprintf(&b, "Recommendation: %s", c.recommend.Recommend(label))
	if links := c.recommend.Links(label); len(links) > 0 {
		b.WriteString("\n\nHelpful Reading:\n")
		b.WriteString(strings.Join(links, "\n"))
	}
	return b.String()
}
