package triage

import (
	"strings"

	"github.com/cogniscreen/cogniscreen/internal/nlp"
)

// Tokenizer splits free text into tokens. Must be pure and deterministic.
type Tokenizer interface {
	Tokenize(text string) []string
}

// SymptomExtractor maps a token sequence to an evidence set. Must be pure
// and deterministic given the same tokens.
type SymptomExtractor interface {
	Extract(tokens []string) nlp.EvidenceSet
}

// Aggregator recomputes the evidence set from the full answer history every
// turn. There is no incremental cache: historical re-extraction is cheap
// relative to the correctness risk of partial updates.
type Aggregator struct {
	tokenizer Tokenizer
	extractor SymptomExtractor
}

// NewAggregator creates an aggregator over the given collaborators.
func NewAggregator(tokenizer Tokenizer, extractor SymptomExtractor) *Aggregator {
	return &Aggregator{tokenizer: tokenizer, extractor: extractor}
}

// Aggregate joins all answers, scripted and follow-up alike, into one
// undifferentiated text blob and extracts symptom terms from it.
func (a *Aggregator) Aggregate(answers []string) nlp.EvidenceSet {
	blob := strings.Join(answers, " ")
	return a.extractor.Extract(a.tokenizer.Tokenize(blob))
}
