package expr

import (
	"github.com/ava12/tapegen"
	"github.com/ava12/tapegen/tape"
)

type negation struct {
	child Expr
	tapes tape.Names
	id    idCache
}

// Not returns the complement of e over tapes of e.
func Not(e Expr) Expr {
	return Negation(e, e.Tapes())
}

// Negation returns the complement of child over given tapes: every record over tapes not accepted by child.
// Only negations of at most one tape can be derived, others report MultiTapeNegationError
// through traversal environment.
func Negation(child Expr, tapes tape.Names) Expr {
	if IsNull(child) {
		return Universe(tapes)
	}
	if n, is := child.(*negation); is && n.tapes.Equal(tapes) {
		return n.child
	}
	if len(tapes) == 0 && IsEpsilon(child) {
		return nullExpr
	}

	return &negation{child: child, tapes: tapes}
}

// Universe returns the expression accepting any record over given tapes.
func Universe(tapes tape.Names) Expr {
	stars := make([]Expr, len(tapes))
	for i, t := range tapes {
		stars[i] = Star(Dot(t))
	}
	return Seq(stars...)
}

func multiTapeNegationError(tapes tape.Names) *tapegen.Error {
	return tapegen.FormatError(MultiTapeNegationError, "cannot negate expression over multiple tapes %s", tapes)
}

func (n *negation) ID() string {
	return n.id.get(func() string {
		return "~" + n.tapes.String() + "(" + n.child.ID() + ")"
	})
}

func (n *negation) Tapes() tape.Names {
	return n.tapes
}

func (n *negation) checkTapes(env *Env) bool {
	if len(n.tapes) > 1 {
		env.fail(multiTapeNegationError(n.tapes))
		return false
	}
	return true
}

func (n *negation) Delta(t tape.Tape, env *Env) Expr {
	if !n.tapes.Contains(t.Name()) {
		return n
	}
	if !n.checkTapes(env) {
		return nullExpr
	}

	if Accepts(n.child.Delta(t, env), env) {
		return nullExpr
	}
	return epsilonExpr
}

func (n *negation) Deriv(t tape.Tape, target tape.Token, env *Env) []Transition {
	if !n.tapes.Contains(t.Name()) || !n.checkTapes(env) {
		return nil
	}

	var result []Transition
	remainder := target
	for _, tr := range DisjointDeriv(n.child, t, target, env) {
		remainder = remainder.AndNot(tr.Token)
		result = append(result, Transition{tr.Tape, tr.Token, Negation(tr.Next, n.tapes)})
	}

	if !t.IsEmpty(remainder) {
		result = append(result, Transition{t, remainder, Universe(n.tapes)})
	}
	return result
}

func (n *negation) CollectVocab(c tape.Collection, v *VocabEnv) {
	for _, name := range n.tapes {
		c.Add(name)
	}
	n.child.CollectVocab(c, v)
}
