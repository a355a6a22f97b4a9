package expr

import (
	"strconv"
	"strings"

	"github.com/ava12/tapegen/tape"
)

type idCache struct {
	id string
}

func (c *idCache) get(build func() string) string {
	if c.id == "" {
		c.id = build()
	}
	return c.id
}

type epsilon struct{}

var epsilonExpr = &epsilon{}

// Epsilon returns the expression accepting only the record with all tapes empty.
func Epsilon() Expr {
	return epsilonExpr
}

func (*epsilon) ID() string {
	return "ε"
}

func (*epsilon) Tapes() tape.Names {
	return nil
}

func (e *epsilon) Delta(tape.Tape, *Env) Expr {
	return e
}

func (*epsilon) Deriv(tape.Tape, tape.Token, *Env) []Transition {
	return nil
}

func (*epsilon) CollectVocab(tape.Collection, *VocabEnv) {}

type null struct{}

var nullExpr = &null{}

// Null returns the expression accepting nothing.
func Null() Expr {
	return nullExpr
}

func (*null) ID() string {
	return "∅"
}

func (*null) Tapes() tape.Names {
	return nil
}

func (e *null) Delta(tape.Tape, *Env) Expr {
	return e
}

func (*null) Deriv(tape.Tape, tape.Token, *Env) []Transition {
	return nil
}

func (*null) CollectVocab(tape.Collection, *VocabEnv) {}

type dot struct {
	tape  string
	tapes tape.Names
}

// Dot returns the expression accepting any single character on tape.
func Dot(tapeName string) Expr {
	return &dot{tapeName, tape.NewNames(tapeName)}
}

func (d *dot) ID() string {
	return "." + d.tape
}

func (d *dot) Tapes() tape.Names {
	return d.tapes
}

func (d *dot) Delta(t tape.Tape, _ *Env) Expr {
	if t.Name() == d.tape {
		return nullExpr
	}
	return d
}

func (d *dot) Deriv(t tape.Tape, target tape.Token, _ *Env) []Transition {
	if t.Name() != d.tape || t.IsEmpty(target) {
		return nil
	}

	return []Transition{{t, target, epsilonExpr}}
}

func (d *dot) CollectVocab(c tape.Collection, _ *VocabEnv) {
	c.Add(d.tape)
}

type literal struct {
	tape  string
	chars []string
	tapes tape.Names
	id    idCache
}

// Lit returns the expression accepting text on tape. Empty text gives Epsilon.
func Lit(tapeName, text string) Expr {
	return newLiteral(tapeName, tape.Split(text))
}

func newLiteral(tapeName string, chars []string) Expr {
	if len(chars) == 0 {
		return epsilonExpr
	}
	return &literal{tape: tapeName, chars: chars, tapes: tape.NewNames(tapeName)}
}

func (l *literal) ID() string {
	return l.id.get(func() string {
		return l.tape + ":" + strconv.Quote(strings.Join(l.chars, ""))
	})
}

func (l *literal) Tapes() tape.Names {
	return l.tapes
}

func (l *literal) Delta(t tape.Tape, _ *Env) Expr {
	if t.Name() == l.tape {
		return nullExpr
	}
	return l
}

func (l *literal) Deriv(t tape.Tape, target tape.Token, _ *Env) []Transition {
	if t.Name() != l.tape {
		return nil
	}

	tok := t.Token(l.chars[0]).And(target)
	if tok.IsEmpty() {
		return nil
	}
	return []Transition{{t, tok, newLiteral(l.tape, l.chars[1:])}}
}

func (l *literal) CollectVocab(c tape.Collection, _ *VocabEnv) {
	t := c.Add(l.tape)
	for _, ch := range l.chars {
		t.Token(ch)
	}
}
