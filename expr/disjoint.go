package expr

import (
	"github.com/ava12/tapegen/tape"
)

// DisjointDeriv returns transitions of e on tape t whose tokens are pairwise disjoint.
// Overlapping transitions are split into the intersection, leading to the union of both successors,
// and the remainders of each, leading to their own successors.
func DisjointDeriv(e Expr, t tape.Tape, target tape.Token, env *Env) []Transition {
	return Disjoint(e.Deriv(t, target, env))
}

// Disjoint splits overlapping transitions of the same tape.
func Disjoint(trs []Transition) []Transition {
	if len(trs) < 2 {
		return trs
	}

	var result []Transition
	for _, tr := range trs {
		pending := []Transition{tr}
		for len(pending) > 0 {
			p := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			result, pending = mergeTransition(result, pending, p)
		}
	}
	return result
}

// mergeTransition adds p to result, splitting the first existing transition it overlaps.
// The part of p not covered by that transition is pushed back to pending.
func mergeTransition(result, pending []Transition, p Transition) ([]Transition, []Transition) {
	for i, r := range result {
		if r.Tape.Name() != p.Tape.Name() {
			continue
		}

		common := r.Token.And(p.Token)
		if common.IsEmpty() {
			continue
		}

		merged := make([]Transition, 0, len(result)+1)
		merged = append(merged, result[:i]...)
		merged = append(merged, Transition{r.Tape, common, or(r.Next, p.Next)})
		if rest := r.Token.AndNot(p.Token); !rest.IsEmpty() {
			merged = append(merged, Transition{r.Tape, rest, r.Next})
		}
		merged = append(merged, result[i+1:]...)

		if rest := p.Token.AndNot(r.Token); !rest.IsEmpty() {
			pending = append(pending, Transition{p.Tape, rest, p.Next})
		}
		return merged, pending
	}

	return append(result, p), pending
}
