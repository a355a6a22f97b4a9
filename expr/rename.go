package expr

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/ava12/tapegen/tape"
)

type rename struct {
	child    Expr
	from, to string
	tapes    tape.Names
	id       idCache
}

// Rename returns child with tape from visible as tape to.
func Rename(child Expr, from, to string) Expr {
	if from == to || IsNull(child) || IsEpsilon(child) {
		return child
	}
	ct := child.Tapes()
	if !ct.Contains(from) && !ct.Contains(to) {
		return child
	}

	return &rename{child: child, from: from, to: to, tapes: ct.Rename(from, to)}
}

var hiddenCount atomic.Uint64

// Hide returns child with tape renamed to a hidden tape, so it does not appear in records
// and does not interact with tapes of other expressions. Every call uses a new hidden tape.
func Hide(child Expr, tapeName string) Expr {
	return HideAt(child, tapeName, "#"+strconv.FormatUint(hiddenCount.Add(1), 10))
}

// HideAt is Hide naming the hidden tape after site: hiding equal children at the same site
// gives the same tape, distinct sites give distinct tapes.
func HideAt(child Expr, tapeName, site string) Expr {
	hidden := fmt.Sprintf("%s%s_%016x", tape.HiddenPrefix, tapeName, xxhash.Sum64String(site+"|"+child.ID()))
	return Rename(child, tapeName, hidden)
}

func (r *rename) ID() string {
	return r.id.get(func() string {
		return "rename(" + r.child.ID() + "," + r.from + ">" + r.to + ")"
	})
}

func (r *rename) Tapes() tape.Names {
	return r.tapes
}

// inner returns the tape seen by child instead of t and false if child cannot see t at all.
func (r *rename) inner(t tape.Tape) (tape.Tape, bool) {
	switch t.Name() {
	case r.to:
		return tape.Rename(t, r.from), true
	case r.from:
		return nil, false
	default:
		return t, true
	}
}

func (r *rename) childEnv(env *Env) *Env {
	return env.WithTapes(tape.Renamed(env.Tapes, r.from, r.to))
}

func (r *rename) Delta(t tape.Tape, env *Env) Expr {
	it, visible := r.inner(t)
	if !visible {
		return r
	}

	d := r.child.Delta(it, r.childEnv(env))
	if d == r.child {
		return r
	}
	return Rename(d, r.from, r.to)
}

func (r *rename) Deriv(t tape.Tape, target tape.Token, env *Env) []Transition {
	it, visible := r.inner(t)
	if !visible {
		return nil
	}

	trs := r.child.Deriv(it, target, r.childEnv(env))
	result := make([]Transition, len(trs))
	for i, tr := range trs {
		result[i] = Transition{t, tr.Token, Rename(tr.Next, r.from, r.to)}
	}
	return result
}

func (r *rename) CollectVocab(c tape.Collection, v *VocabEnv) {
	c.Add(r.to)
	r.child.CollectVocab(tape.Renamed(c, r.from, r.to), v)
}
