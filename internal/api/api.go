// Package api provides the HTTP server and handlers for CogniScreen.
//
// It exposes the per-turn POST /chat endpoint, the scripted question list,
// a feedback listing for operators, and a health probe. The server holds no
// per-conversation state: every request carries the full conversation state
// and every response hands it back.
package api

import (
	"log/slog"
	"net/http"

	"github.com/cogniscreen/cogniscreen/internal/ensemble"
	"github.com/cogniscreen/cogniscreen/internal/genai"
	"github.com/cogniscreen/cogniscreen/internal/nlp"
	"github.com/cogniscreen/cogniscreen/internal/recommend"
	"github.com/cogniscreen/cogniscreen/internal/store"
	"github.com/cogniscreen/cogniscreen/internal/triage"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Opts holds configuration for the API server.
type Opts struct {
	Addr string
}

// Option configures the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// Server bundles the triage controller and its dependencies behind HTTP
// handlers.
type Server struct {
	addr       string
	controller *triage.Controller
	st         store.FeedbackStore
}

// NewServer creates a server around an assembled controller and store.
func NewServer(controller *triage.Controller, st store.FeedbackStore, opts ...Option) *Server {
	cfg := Opts{Addr: DefaultAddr}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{addr: cfg.Addr, controller: controller, st: st}
}

// Handler returns the route table, exposed separately for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.chatHandler)
	mux.HandleFunc("/questions", s.questionsHandler)
	mux.HandleFunc("/feedback", s.feedbackHandler)
	mux.HandleFunc("/health", s.healthHandler)
	return mux
}

// ListenAndServe starts the HTTP server and blocks.
func (s *Server) ListenAndServe() error {
	slog.Info("Server.ListenAndServe: CogniScreen API listening", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// Run assembles all modules from their options and serves the API. When no
// GenAI option provides an API key and the environment has none, follow-up
// routing falls back to the deterministic static router.
func Run(storeOpts []store.Option, genaiOpts []genai.Option, apiOpts []Option) error {
	st, err := store.New(storeOpts...)
	if err != nil {
		return err
	}
	defer st.Close()

	var router triage.FollowupRouter
	if gaClient, err := genai.NewClient(genaiOpts...); err != nil {
		slog.Warn("api.Run: GenAI client unavailable, using static follow-up router", "error", err)
		router = triage.NewStaticRouter()
	} else {
		router = triage.NewGenAIRouter(gaClient)
	}

	sequencer := triage.NewSequencer(triage.DefaultQuestions())
	aggregator := triage.NewAggregator(nlp.NewTokenizer(), nlp.NewExtractor())
	controller := triage.NewController(
		sequencer,
		aggregator,
		ensemble.NewPredictor(),
		router,
		recommend.NewDirectory(),
		st,
	)

	server := NewServer(controller, st, apiOpts...)
	return server.ListenAndServe()
}
