package tape

import (
	"github.com/ava12/tapegen"
)

// Collection aggregates tapes and dispatches them by name.
type Collection interface {
	// Tape returns the tape with given name or UnknownTapeError.
	Tape(name string) (Tape, error)
	// Lookup returns the tape with given name and true or nil and false if it is absent.
	Lookup(name string) (Tape, bool)
	// Add returns the tape with given name creating it if necessary.
	Add(name string) Tape
	// Names returns names of all tapes visible through collection.
	Names() Names
}

// Tapes is the basic Collection holding vocabularies.
type Tapes struct {
	tapes map[string]*vocabTape
	names Names
}

// NewCollection creates a collection containing tapes with given names.
func NewCollection(names ...string) *Tapes {
	result := &Tapes{tapes: make(map[string]*vocabTape)}
	for _, n := range names {
		result.Add(n)
	}
	return result
}

func unknownTapeError(name string) *tapegen.Error {
	return tapegen.FormatError(UnknownTapeError, "unknown tape %q", name)
}

func (ts *Tapes) Tape(name string) (Tape, error) {
	t, has := ts.tapes[name]
	if !has {
		return nil, unknownTapeError(name)
	}

	return t, nil
}

func (ts *Tapes) Lookup(name string) (Tape, bool) {
	t, has := ts.tapes[name]
	if !has {
		return nil, false
	}

	return t, true
}

func (ts *Tapes) Add(name string) Tape {
	t, has := ts.tapes[name]
	if !has {
		t = newVocabTape(name)
		ts.tapes[name] = t
		ts.names = ts.names.With(name)
	}
	return t
}

func (ts *Tapes) Names() Names {
	return ts.names
}

// renamedCollection is a view in which name from denotes the tape named to in underlying collection.
type renamedCollection struct {
	inner    Collection
	from, to string
}

// Renamed returns a view of c in which the tape named to is visible under name from.
// It is used to let a child expression see a renamed tape under its own name without re-tokenizing.
func Renamed(c Collection, from, to string) Collection {
	if from == to {
		return c
	}
	return renamedCollection{c, from, to}
}

func (rc renamedCollection) Tape(name string) (Tape, error) {
	if name != rc.from {
		return rc.inner.Tape(name)
	}

	t, e := rc.inner.Tape(rc.to)
	if e != nil {
		return nil, e
	}
	return Rename(t, rc.from), nil
}

func (rc renamedCollection) Lookup(name string) (Tape, bool) {
	if name != rc.from {
		return rc.inner.Lookup(name)
	}

	t, has := rc.inner.Lookup(rc.to)
	if !has {
		return nil, false
	}
	return Rename(t, rc.from), true
}

func (rc renamedCollection) Add(name string) Tape {
	if name != rc.from {
		return rc.inner.Add(name)
	}

	return Rename(rc.inner.Add(rc.to), rc.from)
}

func (rc renamedCollection) Names() Names {
	return rc.inner.Names().Rename(rc.to, rc.from)
}

// Signature returns a string identifying the chain of renamed views leading to c.
// Collections with equal signatures map names to the same vocabularies.
func Signature(c Collection) string {
	if s, is := c.(interface{ signature() string }); is {
		return s.signature()
	}
	return ""
}

func (rc renamedCollection) signature() string {
	return Signature(rc.inner) + "/" + rc.from + ">" + rc.to
}
