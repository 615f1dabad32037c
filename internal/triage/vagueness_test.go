package triage

import (
	"testing"

	"github.com/cogniscreen/cogniscreen/internal/models"
)

func TestVagueness_StockPhraseCapsAnyCase(t *testing.T) {
	f := NewVaguenessFilter()
	for _, utterance := range []string{"maybe", "MAYBE", "  Maybe  ", "Not Sure", "i don't know", "OK"} {
		if got := f.Apply(95, utterance, 10); got != models.VagueConfidenceCap {
			t.Errorf("utterance %q: expected cap %d, got %d", utterance, models.VagueConfidenceCap, got)
		}
	}
}

func TestVagueness_ThinEvidenceCaps(t *testing.T) {
	f := NewVaguenessFilter()
	if got := f.Apply(90, "not sure", 1); got != models.VagueConfidenceCap {
		t.Errorf("expected capped confidence %d, got %d", models.VagueConfidenceCap, got)
	}
	if got := f.Apply(90, "my rituals and checking take hours", models.MinEvidenceTerms-1); got != models.VagueConfidenceCap {
		t.Errorf("evidence below %d terms must cap, got %d", models.MinEvidenceTerms, got)
	}
}

func TestVagueness_InformativeTurnPasses(t *testing.T) {
	f := NewVaguenessFilter()
	if got := f.Apply(95, "I keep checking locks and counting, germs terrify me", models.MinEvidenceTerms); got != 95 {
		t.Errorf("informative turn must not be capped, got %d", got)
	}
}

func TestVagueness_CapNeverRaisesConfidence(t *testing.T) {
	f := NewVaguenessFilter()
	if got := f.Apply(40, "maybe", 0); got != 40 {
		t.Errorf("cap must not raise a low confidence, got %d", got)
	}
}

func TestVagueness_PhraseMustMatchExactly(t *testing.T) {
	f := NewVaguenessFilter()
	// A sentence containing a stock phrase is not itself a stock phrase.
	if got := f.Apply(95, "maybe the checking and counting and germs matter", 4); got != 95 {
		t.Errorf("substring match must not trigger the cap, got %d", got)
	}
}
