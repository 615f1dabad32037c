// Package ensemble implements the diagnosis prediction collaborator: a
// small committee of scorers that maps an evidence set to a condition label
// with an integer confidence in [0,100].
package ensemble

import (
	"log/slog"
	"sort"

	"github.com/cogniscreen/cogniscreen/internal/models"
	"github.com/cogniscreen/cogniscreen/internal/nlp"
)

// DefaultLabel is returned when no condition matches the evidence.
const DefaultLabel = "Unclassified"

// conditionProfile describes the symptom markers of one condition and how
// strongly each marker votes for it.
type conditionProfile struct {
	label   string
	weights map[string]int
}

// Predictor scores evidence sets against the condition profiles. Prediction
// is pure: identical evidence always yields the identical result.
type Predictor struct {
	profiles []conditionProfile
}

// NewPredictor creates a predictor with the built-in condition profiles.
func NewPredictor() *Predictor {
	return &Predictor{profiles: defaultProfiles()}
}

// Predict combines two voters per condition: the weighted sum of matched
// markers and the coverage of the condition's marker set. The top-scoring
// condition wins; ties break on label order so results stay deterministic.
func (p *Predictor) Predict(evidence nlp.EvidenceSet) (models.DiagnosisResult, error) {
	best := models.DiagnosisResult{Label: DefaultLabel, Confidence: 0}
	bestScore := 0

	for _, profile := range p.profiles {
		weightSum := 0
		matched := 0
		for term, weight := range profile.weights {
			if evidence.Has(term) {
				weightSum += weight
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		coverage := (matched * 100) / len(profile.weights)
		score := weightSum + coverage/4
		if score > bestScore || (score == bestScore && profile.label < best.Label) {
			bestScore = score
			best = models.DiagnosisResult{Label: profile.label, Confidence: confidenceFromScore(score)}
		}
	}

	if err := best.Validate(); err != nil {
		return models.DiagnosisResult{}, err
	}
	slog.Debug("Predictor.Predict: evidence scored", "label", best.Label, "confidence", best.Confidence, "evidence_terms", evidence.Len())
	return best, nil
}

// confidenceFromScore maps a raw committee score onto the 0-100 confidence
// scale. Scores saturate at 99 so only strong multi-marker evidence crosses
// the diagnosis threshold.
func confidenceFromScore(score int) int {
	if score <= 0 {
		return 0
	}
	confidence := 30 + score
	if confidence > 99 {
		confidence = 99
	}
	return confidence
}

// Labels returns the known condition taxonomy in sorted order.
func (p *Predictor) Labels() []string {
	labels := make([]string, 0, len(p.profiles))
	for _, profile := range p.profiles {
		labels = append(labels, profile.label)
	}
	sort.Strings(labels)
	return labels
}

func defaultProfiles() []conditionProfile {
	return []conditionProfile{
		{
			label: "Anxiety",
			weights: map[string]int{
				"worry":        16,
				"fear":         12,
				"panic":        16,
				"restlessness": 12,
				"tension":      10,
			},
		},
		{
			label: "OCD",
			weights: map[string]int{
				"intrusive_thoughts": 18,
				"compulsions":        18,
				"checking":           14,
				"counting":           12,
				"contamination_fear": 14,
			},
		},
		{
			label: "Autism",
			weights: map[string]int{
				"social_discomfort":     14,
				"eye_contact_avoidance": 14,
				"sensory_sensitivity":   16,
				"routine_distress":      16,
				"emotional_expression":  12,
			},
		},
		{
			label: "Depression",
			weights: map[string]int{
				"low_mood":                 18,
				"sleep_change":             12,
				"fatigue":                  12,
				"concentration_difficulty": 12,
				"appetite_change":          10,
			},
		},
	}
}
