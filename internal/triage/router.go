package triage

import (
	"context"
	"log/slog"

	"github.com/cogniscreen/cogniscreen/internal/nlp"
)

// FollowupRouter produces the next adaptive follow-up question. The
// controller treats the call as fallible: an error or empty question fails
// the turn rather than silently defaulting.
type FollowupRouter interface {
	NextQuestion(ctx context.Context, evidence nlp.EvidenceSet, label string, confidence int) (string, error)
}

// probe is a targeted question tied to the symptom term it would confirm.
type probe struct {
	term     string
	question string
}

// StaticRouter picks follow-up questions from fixed per-condition probe
// lists, preferring the first probe whose target term is still missing from
// the evidence. It is fully deterministic.
type StaticRouter struct {
	probes   map[string][]probe
	fallback string
}

// NewStaticRouter creates the router with the built-in probe tables.
func NewStaticRouter() *StaticRouter {
	return &StaticRouter{
		probes: map[string][]probe{
			"Anxiety": {
				{term: "panic", question: "Do you ever experience sudden episodes of intense fear or a racing heart?"},
				{term: "restlessness", question: "Do you often feel restless or on edge without a clear reason?"},
				{term: "tension", question: "Do you notice physical tension, like tight muscles or nervousness, during the day?"},
				{term: "fear", question: "Are there specific situations that make you feel afraid or that you try to avoid?"},
			},
			"OCD": {
				{term: "compulsions", question: "Do you feel driven to repeat certain actions or rituals to feel at ease?"},
				{term: "checking", question: "Do you find yourself checking things like locks or appliances more than once?"},
				{term: "contamination_fear", question: "Do concerns about germs or contamination lead you to wash or clean repeatedly?"},
				{term: "counting", question: "Do you feel a need to count or arrange things in a particular way?"},
			},
			"Autism": {
				{term: "sensory_sensitivity", question: "Do everyday sounds, lights, or textures ever feel overwhelming to you?"},
				{term: "routine_distress", question: "How do you feel when your daily routine changes unexpectedly?"},
				{term: "eye_contact_avoidance", question: "Do you find eye contact during conversations uncomfortable?"},
				{term: "emotional_expression", question: "Is it hard to put your emotions into words when talking with others?"},
			},
			"Depression": {
				{term: "low_mood", question: "Have you been feeling persistently sad, empty, or hopeless lately?"},
				{term: "fatigue", question: "Do you feel tired or drained even after resting?"},
				{term: "sleep_change", question: "Has the amount or quality of your sleep changed noticeably?"},
				{term: "appetite_change", question: "Have you noticed changes in your appetite or eating habits?"},
			},
		},
		fallback: "Could you tell me more about how you have been feeling day to day?",
	}
}

// NextQuestion returns the first probe for the candidate condition whose
// target term is absent from the evidence, or a generic prompt when the
// condition is unknown or fully covered.
func (r *StaticRouter) NextQuestion(ctx context.Context, evidence nlp.EvidenceSet, label string, confidence int) (string, error) {
	for _, p := range r.probes[label] {
		if !evidence.Has(p.term) {
			slog.Debug("StaticRouter.NextQuestion: probing missing term", "label", label, "term", p.term)
			return p.question, nil
		}
	}
	slog.Debug("StaticRouter.NextQuestion: no uncovered probe, using fallback", "label", label, "confidence", confidence)
	return r.fallback, nil
}
