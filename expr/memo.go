package expr

import (
	"github.com/ava12/tapegen/internal/log"
	"github.com/ava12/tapegen/tape"
)

// memoEntry caches transitions of a single tape.
// seen contains every character ever queried, characters of seen not covered by transitions lead nowhere.
type memoEntry struct {
	seen        tape.Token
	transitions []Transition
}

// memoCache holds caches of a Memo node for one traversal session.
// Keys combine tape name, collection view, and recursion counters.
type memoCache struct {
	derivs map[string]*memoEntry
	deltas map[string]Expr
}

type memo struct {
	child Expr
	id    idCache
}

// Memo returns child caching its transitions. Repeated derivation of the same Memo node
// queries child only for target characters not queried before.
// Caches live in the traversal environment, so every generation session starts with empty caches.
func Memo(child Expr) Expr {
	switch child.(type) {
	case *epsilon, *null, *memo:
		return child
	}

	return &memo{child: child}
}

func (m *memo) ID() string {
	return m.id.get(func() string {
		return "memo(" + m.child.ID() + ")"
	})
}

func (m *memo) Tapes() tape.Names {
	return m.child.Tapes()
}

func (m *memo) cache(t tape.Tape, env *Env) (*memoCache, string) {
	c := env.state.memos[m]
	if c == nil {
		c = &memoCache{derivs: make(map[string]*memoEntry), deltas: make(map[string]Expr)}
		env.state.memos[m] = c
	}
	return c, t.Name() + "|" + tape.Signature(env.Tapes) + "|" + env.Stack.Key()
}

func (m *memo) Delta(t tape.Tape, env *Env) Expr {
	c, key := m.cache(t, env)
	if d, has := c.deltas[key]; has {
		return d
	}

	d := m.child.Delta(t, env)
	if d == m.child {
		d = m
	} else {
		d = Memo(d)
	}
	c.deltas[key] = d
	return d
}

func (m *memo) Deriv(t tape.Tape, target tape.Token, env *Env) []Transition {
	c, key := m.cache(t, env)
	entry := c.derivs[key]
	if entry == nil {
		entry = &memoEntry{seen: tape.None}
		c.derivs[key] = entry
	}

	var result []Transition
	for _, tr := range entry.transitions {
		tok := tr.Token.And(target)
		if !tok.IsEmpty() {
			result = append(result, Transition{t, tok, tr.Next})
		}
	}

	unseen := target.AndNot(entry.seen)
	if unseen.IsEmpty() {
		return result
	}

	for _, tr := range DisjointDeriv(m.child, t, unseen, env) {
		next := Transition{t, tr.Token, Memo(tr.Next)}
		entry.transitions = append(entry.transitions, next)
		result = append(result, next)
	}
	entry.seen = entry.seen.Or(unseen)
	log.DebugS("memo cache extended", "tape", t.Name(), "transitions", len(entry.transitions))
	return result
}

func (m *memo) CollectVocab(c tape.Collection, v *VocabEnv) {
	m.child.CollectVocab(c, v)
}
