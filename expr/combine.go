package expr

import (
	"github.com/ava12/tapegen/tape"
)

type concat struct {
	first, rest Expr
	tapes       tape.Names
	id          idCache
}

// Concat returns the concatenation of a and b.
func Concat(a, b Expr) Expr {
	if IsNull(a) || IsNull(b) {
		return nullExpr
	}
	if IsEpsilon(a) {
		return b
	}
	if IsEpsilon(b) {
		return a
	}
	if c, is := a.(*concat); is {
		return Concat(c.first, Concat(c.rest, b))
	}

	return &concat{first: a, rest: b, tapes: a.Tapes().Union(b.Tapes())}
}

// Seq returns the concatenation of all expressions, Epsilon if there are none.
func Seq(exprs ...Expr) Expr {
	var result Expr = epsilonExpr
	for i := len(exprs) - 1; i >= 0; i-- {
		result = Concat(exprs[i], result)
	}
	return result
}

func (c *concat) ID() string {
	return c.id.get(func() string {
		return "(" + c.first.ID() + " " + c.rest.ID() + ")"
	})
}

func (c *concat) Tapes() tape.Names {
	return c.tapes
}

func (c *concat) Delta(t tape.Tape, env *Env) Expr {
	return Concat(c.first.Delta(t, env), c.rest.Delta(t, env))
}

func (c *concat) Deriv(t tape.Tape, target tape.Token, env *Env) []Transition {
	var result []Transition
	for _, tr := range c.first.Deriv(t, target, env) {
		result = append(result, Transition{tr.Tape, tr.Token, Concat(tr.Next, c.rest)})
	}

	fd := c.first.Delta(t, env)
	if IsNull(fd) {
		return result
	}

	for _, tr := range c.rest.Deriv(t, target, env) {
		result = append(result, Transition{tr.Tape, tr.Token, Concat(fd, tr.Next)})
	}
	return result
}

func (c *concat) CollectVocab(col tape.Collection, v *VocabEnv) {
	c.first.CollectVocab(col, v)
	c.rest.CollectVocab(col, v)
}

type union struct {
	first, rest Expr
	tapes       tape.Names
	id          idCache
}

// Union returns the union of all expressions, Null if there are none.
func Union(exprs ...Expr) Expr {
	var result Expr = nullExpr
	for i := len(exprs) - 1; i >= 0; i-- {
		result = or(exprs[i], result)
	}
	return result
}

// Maybe returns the union of e and Epsilon.
func Maybe(e Expr) Expr {
	return or(epsilonExpr, e)
}

func or(a, b Expr) Expr {
	if IsNull(a) {
		return b
	}
	if IsNull(b) || a == b {
		return a
	}
	if u, is := a.(*union); is {
		return or(u.first, or(u.rest, b))
	}

	return &union{first: a, rest: b, tapes: a.Tapes().Union(b.Tapes())}
}

func (u *union) ID() string {
	return u.id.get(func() string {
		return "(" + u.first.ID() + "|" + u.rest.ID() + ")"
	})
}

func (u *union) Tapes() tape.Names {
	return u.tapes
}

func (u *union) Delta(t tape.Tape, env *Env) Expr {
	return or(u.first.Delta(t, env), u.rest.Delta(t, env))
}

func (u *union) Deriv(t tape.Tape, target tape.Token, env *Env) []Transition {
	result := u.first.Deriv(t, target, env)
	return append(result, u.rest.Deriv(t, target, env)...)
}

func (u *union) CollectVocab(c tape.Collection, v *VocabEnv) {
	u.first.CollectVocab(c, v)
	u.rest.CollectVocab(c, v)
}

type intersect struct {
	first, rest Expr
	tapes       tape.Names
	id          idCache
}

// Intersect returns the intersection of a and b.
// Both operands must write the same tapes, use Join or Filter for operands with differing tapes.
func Intersect(a, b Expr) Expr {
	if IsNull(a) || IsNull(b) {
		return nullExpr
	}
	if a == b {
		return a
	}
	if i, is := a.(*intersect); is {
		return Intersect(i.first, Intersect(i.rest, b))
	}

	return &intersect{first: a, rest: b, tapes: a.Tapes().Union(b.Tapes())}
}

func (i *intersect) ID() string {
	return i.id.get(func() string {
		return "(" + i.first.ID() + "&" + i.rest.ID() + ")"
	})
}

func (i *intersect) Tapes() tape.Names {
	return i.tapes
}

func (i *intersect) Delta(t tape.Tape, env *Env) Expr {
	return Intersect(i.first.Delta(t, env), i.rest.Delta(t, env))
}

func (i *intersect) Deriv(t tape.Tape, target tape.Token, env *Env) []Transition {
	var result []Transition
	for _, tr1 := range DisjointDeriv(i.first, t, target, env) {
		for _, tr2 := range DisjointDeriv(i.rest, t, tr1.Token, env) {
			result = append(result, Transition{tr2.Tape, tr2.Token, Intersect(tr1.Next, tr2.Next)})
		}
	}
	return result
}

func (i *intersect) CollectVocab(c tape.Collection, v *VocabEnv) {
	i.first.CollectVocab(c, v)
	i.rest.CollectVocab(c, v)
}
