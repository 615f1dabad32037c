// Package nlp provides the text collaborators consumed by the triage
// controller: a deterministic tokenizer and a lexicon-based symptom
// extractor producing evidence sets.
package nlp

import (
	"strings"
	"unicode"
)

// Tokenizer splits free text into word tokens. It is a pure function of its
// input: no locale settings, no internal state, identical output for
// identical input.
type Tokenizer struct{}

// NewTokenizer creates a tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize lowercases the text, splits negation clitics ("don't" becomes
// "do" and "n't"), and breaks the result on any rune that is not a letter,
// digit, or in-word apostrophe/hyphen. Punctuation is dropped.
func (t *Tokenizer) Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		tokens = append(tokens, splitClitic(current.String())...)
		current.Reset()
	}

	runes := []rune(lowered)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(r)
		case r == '\'' || r == '’':
			// Keep apostrophes only between letters, normalized to ASCII.
			if current.Len() > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]) {
				current.WriteRune('\'')
			} else {
				flush()
			}
		default:
			// Hyphenated compounds split into their parts; punctuation drops.
			flush()
		}
	}
	flush()
	return tokens
}

// splitClitic separates a trailing "n't" from its verb so that negations
// surface as their own token ("can't" -> "ca", "n't").
func splitClitic(word string) []string {
	if strings.HasSuffix(word, "n't") && len(word) > 3 {
		return []string{word[:len(word)-3], "n't"}
	}
	if strings.HasSuffix(word, "'") {
		word = strings.TrimSuffix(word, "'")
	}
	if word == "" {
		return nil
	}
	return []string{word}
}
