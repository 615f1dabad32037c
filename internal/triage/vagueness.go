package triage

import (
	"log/slog"
	"strings"

	"github.com/cogniscreen/cogniscreen/internal/models"
)

// VaguenessFilter flags low-information turns and caps their confidence so
// a single evasive answer cannot push an over-weighted ensemble score past
// the diagnosis threshold.
type VaguenessFilter struct {
	phrases  map[string]struct{}
	minTerms int
	cap      int
}

// defaultNonCommittalPhrases are utterances that, after lowercasing and
// trimming, carry no symptom information on their own.
func defaultNonCommittalPhrases() []string {
	return []string{"ok", "i don't know", "maybe", "not sure"}
}

// NewVaguenessFilter creates the filter with the standard policy: fewer
// than models.MinEvidenceTerms distinct terms, or a stock non-committal
// phrase, caps confidence at models.VagueConfidenceCap.
func NewVaguenessFilter() *VaguenessFilter {
	phrases := make(map[string]struct{})
	for _, p := range defaultNonCommittalPhrases() {
		phrases[p] = struct{}{}
	}
	return &VaguenessFilter{
		phrases:  phrases,
		minTerms: models.MinEvidenceTerms,
		cap:      models.VagueConfidenceCap,
	}
}

// IsVague reports whether the current turn counts as low-information.
func (f *VaguenessFilter) IsVague(utterance string, evidenceTerms int) bool {
	if evidenceTerms < f.minTerms {
		return true
	}
	normalized := strings.ToLower(strings.TrimSpace(utterance))
	_, stock := f.phrases[normalized]
	return stock
}

// Apply returns the effective confidence for this turn: the ensemble's
// confidence, capped when the turn is vague.
func (f *VaguenessFilter) Apply(confidence int, utterance string, evidenceTerms int) int {
	if !f.IsVague(utterance, evidenceTerms) {
		return confidence
	}
	if confidence > f.cap {
		slog.Debug("VaguenessFilter.Apply: capping confidence on vague turn", "reported", confidence, "cap", f.cap, "evidence_terms", evidenceTerms)
		return f.cap
	}
	return confidence
}
