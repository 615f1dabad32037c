package nlp

import (
	"log/slog"
	"strings"
)

// Extractor detects canonical symptom terms in a token stream using a fixed
// surface-phrase lexicon. Extraction is pure and deterministic: the same
// token sequence always yields the same evidence set.
type Extractor struct {
	lexicon  map[string]string // surface phrase (space-joined tokens) -> canonical term
	maxNgram int
}

// NewExtractor creates an extractor with the default symptom lexicon.
func NewExtractor() *Extractor {
	return NewExtractorWithLexicon(defaultLexicon())
}

// NewExtractorWithLexicon creates an extractor over a custom lexicon. The
// lexicon maps lowercase surface phrases (tokens joined by single spaces) to
// canonical symptom term identifiers.
func NewExtractorWithLexicon(lexicon map[string]string) *Extractor {
	maxNgram := 1
	for phrase := range lexicon {
		if n := strings.Count(phrase, " ") + 1; n > maxNgram {
			maxNgram = n
		}
	}
	return &Extractor{lexicon: lexicon, maxNgram: maxNgram}
}

// Extract scans the tokens for lexicon phrases, longest match first, and
// returns the set of canonical terms found. Matched phrases are consumed
// greedily so overlapping shorter phrases do not double count.
func (e *Extractor) Extract(tokens []string) EvidenceSet {
	evidence := NewEvidenceSet()
	for i := 0; i < len(tokens); {
		matched := false
		for n := e.maxNgram; n >= 1; n-- {
			if i+n > len(tokens) {
				continue
			}
			phrase := strings.Join(tokens[i:i+n], " ")
			if term, ok := e.lexicon[phrase]; ok {
				evidence.Add(term)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	slog.Debug("Extractor.Extract: evidence extracted", "tokens", len(tokens), "terms", evidence.Len())
	return evidence
}

// defaultLexicon maps answer vocabulary to canonical symptom terms. Phrases
// are written post-tokenization, so clitics appear split ("ca n't sleep").
func defaultLexicon() map[string]string {
	return map[string]string{
		// anxiety markers
		"worry":          "worry",
		"worried":        "worry",
		"worrying":       "worry",
		"anxious":        "worry",
		"anxiety":        "worry",
		"afraid":         "fear",
		"scared":         "fear",
		"fear":           "fear",
		"panic":          "panic",
		"panic attack":   "panic",
		"panic attacks":  "panic",
		"heart racing":   "panic",
		"restless":       "restlessness",
		"restlessness":   "restlessness",
		"on edge":        "restlessness",
		"tense":          "tension",
		"tension":        "tension",
		"nervous":        "tension",

		// obsessive-compulsive markers
		"intrusive thoughts":  "intrusive_thoughts",
		"unwanted thoughts":   "intrusive_thoughts",
		"repetitive thoughts": "intrusive_thoughts",
		"obsess":              "intrusive_thoughts",
		"obsessive":           "intrusive_thoughts",
		"obsessions":          "intrusive_thoughts",
		"compulsion":          "compulsions",
		"compulsions":         "compulsions",
		"ritual":              "compulsions",
		"rituals":             "compulsions",
		"repetitive actions":  "compulsions",
		"checking":            "checking",
		"double checking":     "checking",
		"recheck":             "checking",
		"counting":            "counting",
		"count things":        "counting",
		"germs":               "contamination_fear",
		"contamination":       "contamination_fear",
		"washing hands":       "contamination_fear",
		"wash my hands":       "contamination_fear",

		// autism-spectrum markers
		"social settings":     "social_discomfort",
		"social situations":   "social_discomfort",
		"avoid people":        "social_discomfort",
		"around people":       "social_discomfort",
		"eye contact":         "eye_contact_avoidance",
		"loud sounds":         "sensory_sensitivity",
		"loud noises":         "sensory_sensitivity",
		"bright lights":       "sensory_sensitivity",
		"sensory":             "sensory_sensitivity",
		"routine":             "routine_distress",
		"routines":            "routine_distress",
		"change in routine":   "routine_distress",
		"expressing emotions": "emotional_expression",
		"express emotions":    "emotional_expression",
		"expressing feelings": "emotional_expression",
		"express my feelings": "emotional_expression",

		// mood markers
		"sad":           "low_mood",
		"sadness":       "low_mood",
		"hopeless":      "low_mood",
		"hopelessness":  "low_mood",
		"feeling down":  "low_mood",
		"feel empty":    "low_mood",
		"insomnia":      "sleep_change",
		"sleep":         "sleep_change",
		"sleeping":      "sleep_change",
		"ca n't sleep":  "sleep_change",
		"tired":         "fatigue",
		"fatigue":       "fatigue",
		"exhausted":     "fatigue",
		"no energy":     "fatigue",
		"concentrate":   "concentration_difficulty",
		"concentration": "concentration_difficulty",
		"focus":         "concentration_difficulty",
		"distracted":    "concentration_difficulty",
		"appetite":      "appetite_change",
		"eating less":   "appetite_change",
		"eating more":   "appetite_change",
	}
}
