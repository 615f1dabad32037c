// Package api provides HTTP handlers for CogniScreen endpoints.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cogniscreen/cogniscreen/internal/models"
	"github.com/cogniscreen/cogniscreen/internal/util"
)

// chatHandler processes one conversation turn: POST /chat.
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	turnID := util.GenerateTurnID()
	slog.Debug("Server.chatHandler: processing turn request", "method", r.Method, "turn_id", turnID)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.chatHandler: method not allowed", "method", r.Method, "turn_id", turnID)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req models.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.chatHandler: failed to decode JSON", "error", err, "turn_id", turnID)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	// Reject malformed requests before any turn processing happens.
	if err := req.Validate(); err != nil {
		slog.Warn("Server.chatHandler: validation failed", "error", err, "turn_id", turnID)
		writeJSONResponse(w, errorStatus(err), models.Error(err.Error()))
		return
	}

	resp, err := s.controller.HandleTurn(r.Context(), req)
	if err != nil {
		// Collaborator failures fail the turn atomically; the client's state
		// is untouched because it only ever lives client-side.
		slog.Error("Server.chatHandler: turn failed", "error", err, "turn_id", turnID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to process turn"))
		return
	}

	slog.Debug("Server.chatHandler: turn completed", "turn_id", turnID, "terminal", resp.Terminal(), "question_index", resp.QuestionIndex, "followup_count", resp.FollowupCount)
	writeJSONResponse(w, http.StatusOK, resp)
}

// questionsHandler returns the scripted intake question list: GET /questions.
func (s *Server) questionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.questionsHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(s.controller.Questions()))
}

// feedbackHandler lists recorded feedback for operators: GET /feedback.
func (s *Server) feedbackHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		slog.Warn("Server.feedbackHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	records, err := s.st.ListFeedback()
	if err != nil {
		slog.Error("Server.feedbackHandler: listing failed", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to list feedback"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(records))
}

// healthHandler is a liveness probe: GET /health.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("healthy", nil))
}

// errorStatus maps validation errors to HTTP status codes. Currently all
// validation failures are client errors; kept separate so new error kinds
// slot in without touching the handler.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrMissingUtterance),
		errors.Is(err, models.ErrUtteranceTooLong),
		errors.Is(err, models.ErrNegativeQuestionIndex),
		errors.Is(err, models.ErrFollowupCountOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
