package expr

import (
	"strconv"
	"strings"

	"github.com/ava12/tapegen/tape"
)

// matchBuffer holds characters the child has already produced on a matched tape but not yet emitted.
type matchBuffer struct {
	tape  string
	chars []string
}

type matchBuffers []matchBuffer

func (mb matchBuffers) get(name string) []string {
	for _, b := range mb {
		if b.tape == name {
			return b.chars
		}
	}
	return nil
}

func (mb matchBuffers) set(name string, chars []string) matchBuffers {
	result := make(matchBuffers, 0, len(mb)+1)
	found := false
	for _, b := range mb {
		if b.tape == name {
			found = true
			b = matchBuffer{name, chars}
		}
		if len(b.chars) > 0 {
			result = append(result, b)
		}
	}
	if !found && len(chars) > 0 {
		result = append(result, matchBuffer{name, chars})
	}
	return result
}

func (mb matchBuffers) push(name, char string) matchBuffers {
	old := mb.get(name)
	chars := make([]string, len(old), len(old)+1)
	copy(chars, old)
	return mb.set(name, append(chars, char))
}

func (mb matchBuffers) pop(name string) matchBuffers {
	return mb.set(name, mb.get(name)[1:])
}

type match struct {
	child   Expr
	matched tape.Names
	buffers matchBuffers
	tapes   tape.Names
	id      idCache
}

// Match returns child constrained to write the same character on every tape of tapes at each step.
// Tapes of child not listed in tapes are not affected.
func Match(child Expr, tapes ...string) Expr {
	return newMatch(child, tape.NewNames(tapes...), nil)
}

// MatchDot returns the expression copying any single character to all given tapes.
func MatchDot(tapes ...string) Expr {
	dots := make([]Expr, len(tapes))
	for i, t := range tapes {
		dots[i] = Dot(t)
	}
	return Match(Seq(dots...), tapes...)
}

func newMatch(child Expr, matched tape.Names, buffers matchBuffers) Expr {
	if IsNull(child) {
		return nullExpr
	}
	if IsEpsilon(child) && len(buffers) == 0 {
		return epsilonExpr
	}

	return &match{child: child, matched: matched, buffers: buffers, tapes: child.Tapes().Union(matched)}
}

func (m *match) ID() string {
	return m.id.get(func() string {
		var sb strings.Builder
		sb.WriteString("match" + m.matched.String() + "(" + m.child.ID() + ")")
		for _, b := range m.buffers {
			sb.WriteString("[" + b.tape + ":" + strconv.Quote(strings.Join(b.chars, "")) + "]")
		}
		return sb.String()
	})
}

func (m *match) Tapes() tape.Names {
	return m.tapes
}

func (m *match) Delta(t tape.Tape, env *Env) Expr {
	if m.matched.Contains(t.Name()) && len(m.buffers.get(t.Name())) > 0 {
		return nullExpr
	}

	d := m.child.Delta(t, env)
	if d == m.child {
		return m
	}
	return newMatch(d, m.matched, m.buffers)
}

func (m *match) Deriv(t tape.Tape, target tape.Token, env *Env) []Transition {
	name := t.Name()
	if !m.matched.Contains(name) {
		trs := m.child.Deriv(t, target, env)
		result := make([]Transition, len(trs))
		for i, tr := range trs {
			result[i] = Transition{tr.Tape, tr.Token, newMatch(tr.Next, m.matched, m.buffers)}
		}
		return result
	}

	if buffered := m.buffers.get(name); len(buffered) > 0 {
		tok := t.Token(buffered[0]).And(target)
		if tok.IsEmpty() {
			return nil
		}
		return []Transition{{t, tok, newMatch(m.child, m.matched, m.buffers.pop(name))}}
	}

	var result []Transition
	for _, tr := range DisjointDeriv(m.child, t, target, env) {
		for _, c := range t.Chars(tr.Token) {
			for _, s := range m.copyChar(name, c, tr.Next, env) {
				result = append(result, Transition{t, t.Token(c), s})
			}
		}
	}
	return result
}

type matchState struct {
	child   Expr
	buffers matchBuffers
}

// copyChar derives child on every matched tape except source, consuming c.
// Every resulting branch buffers c on these tapes until it is emitted.
func (m *match) copyChar(source, c string, child Expr, env *Env) []Expr {
	states := []matchState{{child, m.buffers}}
	for _, name := range m.matched {
		if name == source {
			continue
		}

		t, e := env.Tapes.Tape(name)
		if e != nil {
			env.fail(e)
			return nil
		}

		var next []matchState
		for _, s := range states {
			for _, tr := range DisjointDeriv(s.child, t, t.Token(c), env) {
				next = append(next, matchState{tr.Next, s.buffers.push(name, c)})
			}
		}
		states = next
	}

	result := make([]Expr, 0, len(states))
	for _, s := range states {
		if e := newMatch(s.child, m.matched, s.buffers); !IsNull(e) {
			result = append(result, e)
		}
	}
	return result
}

func (m *match) CollectVocab(c tape.Collection, v *VocabEnv) {
	m.child.CollectVocab(c, v)

	tapes := make([]tape.Tape, len(m.matched))
	var chars []string
	for i, name := range m.matched {
		tapes[i] = c.Add(name)
		chars = append(chars, tapes[i].Vocab()...)
	}
	for _, t := range tapes {
		for _, ch := range chars {
			t.Token(ch)
		}
	}
}
