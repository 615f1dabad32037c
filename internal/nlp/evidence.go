package nlp

import "sort"

// EvidenceSet is the set of canonical symptom terms detected across all
// answers so far. Duplicates collapse; ordering is not meaningful.
type EvidenceSet map[string]struct{}

// NewEvidenceSet creates an evidence set containing the given terms.
func NewEvidenceSet(terms ...string) EvidenceSet {
	set := make(EvidenceSet, len(terms))
	for _, term := range terms {
		set.Add(term)
	}
	return set
}

// Add inserts a term into the set.
func (e EvidenceSet) Add(term string) {
	e[term] = struct{}{}
}

// Has reports whether a term is present.
func (e EvidenceSet) Has(term string) bool {
	_, ok := e[term]
	return ok
}

// Len returns the number of distinct terms.
func (e EvidenceSet) Len() int {
	return len(e)
}

// Terms returns the terms in sorted order for deterministic iteration.
func (e EvidenceSet) Terms() []string {
	terms := make([]string, 0, len(e))
	for term := range e {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
