package reconcile

import "attendance-reconciler/core/utils"

// Equivalence decides whether two attendance values count as equal.
// Comparison is always case-insensitive and whitespace-normalized;
// configured equivalence sets additionally map synonymous codes (for
// example P and Present) onto one class. The zero value compares by
// normalized equality only.
type Equivalence struct {
	class map[string]string
}

// NewEquivalence builds an Equivalence from value sets. Every member of a
// set is considered equal to every other member. Sets are supplied as
// data, typically from the mapping file.
func NewEquivalence(sets [][]string) Equivalence {
	eq := Equivalence{class: make(map[string]string)}
	for _, set := range sets {
		if len(set) == 0 {
			continue
		}
		canon := utils.Fold(set[0])
		for _, member := range set {
			eq.class[utils.Fold(member)] = canon
		}
	}
	return eq
}

// Equal reports whether a and b are equivalent attendance values.
func (e Equivalence) Equal(a, b string) bool {
	fa, fb := utils.Fold(a), utils.Fold(b)
	if fa == fb {
		return true
	}
	ca, aok := e.class[fa]
	cb, bok := e.class[fb]
	return aok && bok && ca == cb
}
