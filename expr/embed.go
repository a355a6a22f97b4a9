package expr

import (
	"github.com/ava12/tapegen/tape"
)

type embed struct {
	name  string
	child Expr
	tapes tape.Names
	id    idCache
}

// Embed returns a reference to named symbol writing given tapes.
// The symbol is resolved against the traversal symbol table only when the reference is derived,
// so symbols may refer to themselves or to each other.
// Every nesting of the same symbol is counted, once the counter reaches the maximum the reference accepts nothing.
// A symbol missing from the table is treated as Epsilon.
func Embed(name string, tapes ...string) Expr {
	return &embed{name: name, tapes: tape.NewNames(tapes...)}
}

// newEmbed wraps a successor of symbol body so that further derivation is still counted as nested in symbol.
func newEmbed(name string, child Expr, tapes tape.Names) Expr {
	if IsNull(child) || IsEpsilon(child) {
		return child
	}
	return &embed{name: name, child: child, tapes: tapes}
}

func (e *embed) ID() string {
	if e.child == nil {
		return "@" + e.name
	}
	return e.id.get(func() string {
		return "@" + e.name + "(" + e.child.ID() + ")"
	})
}

func (e *embed) Tapes() tape.Names {
	return e.tapes
}

// Name returns the referenced symbol name.
func (e *embed) Name() string {
	return e.name
}

func (e *embed) enter(env *Env) (Expr, *Env, bool) {
	if env.Stack.ExceedsMax(e.name) {
		return nil, nil, false
	}

	child := e.child
	if child == nil {
		child = env.resolve(e.name)
	}
	return child, env.WithStack(env.Stack.Add(e.name)), true
}

func (e *embed) Delta(t tape.Tape, env *Env) Expr {
	child, childEnv, ok := e.enter(env)
	if !ok {
		return nullExpr
	}

	d := child.Delta(t, childEnv)
	if d == e.child {
		return e
	}
	return newEmbed(e.name, d, e.tapes)
}

func (e *embed) Deriv(t tape.Tape, target tape.Token, env *Env) []Transition {
	child, childEnv, ok := e.enter(env)
	if !ok {
		return nil
	}

	trs := child.Deriv(t, target, childEnv)
	result := make([]Transition, len(trs))
	for i, tr := range trs {
		result[i] = Transition{tr.Tape, tr.Token, newEmbed(e.name, tr.Next, e.tapes)}
	}
	return result
}

func (e *embed) CollectVocab(c tape.Collection, v *VocabEnv) {
	for _, name := range e.tapes {
		c.Add(name)
	}
	if e.child != nil {
		e.child.CollectVocab(c, v)
		return
	}

	if !v.visit(e.name, c) {
		return
	}
	if child, found := v.Symbols.Resolve(e.name); found {
		child.CollectVocab(c, v)
	}
}
