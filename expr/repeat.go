package expr

import (
	"math"
	"strconv"

	"github.com/ava12/tapegen/tape"
)

// Unbounded is the maximum repetition count meaning "no limit".
const Unbounded = math.MaxInt

type star struct {
	child Expr
	id    idCache
}

// Star returns the Kleene closure of child.
func Star(child Expr) Expr {
	if IsNull(child) || IsEpsilon(child) {
		return epsilonExpr
	}
	if _, is := child.(*star); is {
		return child
	}

	return &star{child: child}
}

// Rep returns child repeated from min to max times, max may be Unbounded.
// Negative min or min > max gives Null. Copies are unrolled one at a time during derivation,
// so large bounds cost nothing until they are reached.
func Rep(child Expr, min, max int) Expr {
	switch {
	case min < 0 || min > max:
		return nullExpr
	case max == 0 || IsEpsilon(child):
		return epsilonExpr
	case IsNull(child):
		if min == 0 {
			return epsilonExpr
		}
		return nullExpr
	case min == 0 && max == Unbounded:
		return Star(child)
	case min == 1 && max == 1:
		return child
	}

	return &repeat{child: child, min: min, max: max}
}

func (s *star) ID() string {
	return s.id.get(func() string {
		return "(" + s.child.ID() + ")*"
	})
}

func (s *star) Tapes() tape.Names {
	return s.child.Tapes()
}

func (s *star) Delta(t tape.Tape, env *Env) Expr {
	d := s.child.Delta(t, env)
	if d == s.child {
		return s
	}
	return Star(d)
}

func (s *star) Deriv(t tape.Tape, target tape.Token, env *Env) []Transition {
	trs := s.child.Deriv(t, target, env)
	result := make([]Transition, len(trs))
	for i, tr := range trs {
		result[i] = Transition{tr.Tape, tr.Token, Concat(tr.Next, s)}
	}
	return result
}

func (s *star) CollectVocab(c tape.Collection, v *VocabEnv) {
	s.child.CollectVocab(c, v)
}

type repeat struct {
	child    Expr
	min, max int
	id       idCache
}

func (r *repeat) ID() string {
	return r.id.get(func() string {
		max := "inf"
		if r.max != Unbounded {
			max = strconv.Itoa(r.max)
		}
		return "(" + r.child.ID() + "){" + strconv.Itoa(r.min) + "," + max + "}"
	})
}

func (r *repeat) Tapes() tape.Names {
	return r.child.Tapes()
}

// rest returns the repetition remaining after one copy of child.
func (r *repeat) rest() Expr {
	min := r.min - 1
	if min < 0 {
		min = 0
	}
	max := r.max
	if max != Unbounded {
		max--
	}
	return Rep(r.child, min, max)
}

func (r *repeat) Delta(t tape.Tape, env *Env) Expr {
	d := r.child.Delta(t, env)
	if d == r.child {
		return r
	}
	return Rep(d, r.min, r.max)
}

// Deriv consumes a character with the first copy of child. Copies accepting nothing on t
// may be skipped, their remainders on other tapes are kept in front of the deriving copy.
func (r *repeat) Deriv(t tape.Tape, target tape.Token, env *Env) []Transition {
	if !r.child.Tapes().Contains(t.Name()) {
		return nil
	}

	trs := r.child.Deriv(t, target, env)
	skipped := r.child.Delta(t, env)
	var result []Transition
	var prefix Expr = epsilonExpr
	current := r
	for {
		rest := current.rest()
		for _, tr := range trs {
			result = append(result, Transition{tr.Tape, tr.Token, Concat(prefix, Concat(tr.Next, rest))})
		}
		if IsNull(skipped) || IsEpsilon(skipped) {
			return result
		}

		prefix = Concat(prefix, skipped)
		next, is := rest.(*repeat)
		if !is {
			for _, tr := range rest.Deriv(t, target, env) {
				result = append(result, Transition{tr.Tape, tr.Token, Concat(prefix, tr.Next)})
			}
			return result
		}
		current = next
	}
}

func (r *repeat) CollectVocab(c tape.Collection, v *VocabEnv) {
	r.child.CollectVocab(c, v)
}
