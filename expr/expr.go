// Package expr implements the multi-tape expression algebra and its derivatives.
//
// An expression describes a (possibly infinite) set of records, each record containing a string per tape.
// Expressions are immutable; smart constructors keep them simplified:
// Epsilon and Null act as identities and absorbers for Concat, Union, and Intersect,
// and chains of the same binary operator are right-flattened.
//
// Generation never builds a state graph. Instead each expression computes
//   - Delta: the expression remaining if nothing more is consumed on a tape;
//   - Deriv: transitions (tape, token, successor) consuming one character on a tape.
//
// DisjointDeriv makes transition tokens pairwise disjoint, this is required by Negation and Intersect
// and keeps generated outputs free of ambiguous duplicates.
package expr

import (
	"github.com/ava12/tapegen"
	"github.com/ava12/tapegen/internal/log"
	"github.com/ava12/tapegen/tape"
)

// Error codes used by expr:
const (
	// MultiTapeNegationError indicates an attempt to derive a negation referencing more than one tape.
	MultiTapeNegationError = tapegen.ExprErrors + iota
)

// Expr is a node of the expression algebra. Every variant is immutable except for Memo caches.
type Expr interface {
	// ID returns a string uniquely describing expression structure.
	ID() string
	// Tapes returns the set of tapes the expression may write to.
	Tapes() tape.Names
	// Delta returns the expression remaining if no more characters are consumed on tape t.
	Delta(t tape.Tape, env *Env) Expr
	// Deriv returns transitions consuming one character of target on tape t.
	// Transition tokens may overlap, use DisjointDeriv to get disjoint ones.
	Deriv(t tape.Tape, target tape.Token, env *Env) []Transition
	// CollectVocab registers every character the expression may write in collection tapes.
	CollectVocab(c tape.Collection, v *VocabEnv)
}

// Transition is a single derivative step: consuming any character of Token on Tape leads to Next.
type Transition struct {
	Tape  tape.Tape
	Token tape.Token
	Next  Expr
}

type envState struct {
	err    error
	warned map[string]bool
	memos  map[*memo]*memoCache
}

// Env is the traversal environment passed to Delta and Deriv.
// Env values are never modified, With* methods return modified copies sharing error state.
type Env struct {
	Tapes   tape.Collection
	Symbols *SymbolTable
	Stack   CounterStack
	state   *envState
}

// NewEnv creates traversal environment. maxRecursion limits nesting of each embedded symbol.
func NewEnv(tapes tape.Collection, symbols *SymbolTable, maxRecursion int) *Env {
	if symbols == nil {
		symbols = NewSymbolTable()
	}
	return &Env{
		Tapes:   tapes,
		Symbols: symbols,
		Stack:   NewCounterStack(maxRecursion),
		state:   &envState{warned: make(map[string]bool), memos: make(map[*memo]*memoCache)},
	}
}

// Err returns the first boundary violation detected during traversal or nil.
func (env *Env) Err() error {
	return env.state.err
}

func (env *Env) fail(e error) {
	if env.state.err == nil {
		env.state.err = e
		log.ErrorS("traversal failed", "error", e)
	}
}

func (env *Env) failed() bool {
	return env.state.err != nil
}

// WithStack returns a copy of env using given counter stack.
func (env *Env) WithStack(s CounterStack) *Env {
	result := *env
	result.Stack = s
	return &result
}

// WithTapes returns a copy of env using given tape collection.
func (env *Env) WithTapes(c tape.Collection) *Env {
	result := *env
	result.Tapes = c
	return &result
}

func (env *Env) resolve(name string) Expr {
	e, found := env.Symbols.Resolve(name)
	if found {
		return e
	}

	if !env.state.warned[name] {
		env.state.warned[name] = true
		log.WarnS("unresolved symbol, treating as empty", "symbol", name)
	}
	return Epsilon()
}

// VocabEnv tracks embedded symbols already visited by the vocabulary pass.
type VocabEnv struct {
	Symbols *SymbolTable
	visited map[string]bool
}

// NewVocabEnv creates vocabulary pass environment.
func NewVocabEnv(symbols *SymbolTable) *VocabEnv {
	if symbols == nil {
		symbols = NewSymbolTable()
	}
	return &VocabEnv{symbols, make(map[string]bool)}
}

// visit marks symbol as visited under given collection view and reports whether it was not visited before.
func (v *VocabEnv) visit(name string, c tape.Collection) bool {
	key := name + "|" + tape.Signature(c)
	if v.visited[key] {
		return false
	}

	v.visited[key] = true
	return true
}

// CollectVocab runs the vocabulary pre-pass: every character e may write is registered in c.
// Tapes of e are added to c if missing.
func CollectVocab(e Expr, c tape.Collection, symbols *SymbolTable) {
	for _, n := range e.Tapes() {
		c.Add(n)
	}
	e.CollectVocab(c, NewVocabEnv(symbols))
}

// IsEpsilon reports whether e is the empty-string expression.
func IsEpsilon(e Expr) bool {
	_, is := e.(*epsilon)
	return is
}

// IsNull reports whether e is the empty-language expression.
func IsNull(e Expr) bool {
	_, is := e.(*null)
	return is
}

// closingTape is written by no expression.
var closingTape = tape.NewCollection(tape.HiddenPrefix).Add(tape.HiddenPrefix)

// Close resolves wrappers (Embed, Memo, Rename, Match) of an expression already closed on all its tapes,
// the result is Epsilon if e accepts the empty record.
func Close(e Expr, env *Env) Expr {
	if IsNull(e) || IsEpsilon(e) {
		return e
	}
	return e.Delta(closingTape, env)
}

// Accepts reports whether e accepts the record with all tapes empty.
func Accepts(e Expr, env *Env) bool {
	for _, n := range e.Tapes() {
		if IsNull(e) || IsEpsilon(e) {
			break
		}

		e = e.Delta(env.Tapes.Add(n), env)
	}
	return IsEpsilon(Close(e, env))
}
