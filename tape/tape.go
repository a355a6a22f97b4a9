// Package tape defines tapes (named output channels), their character vocabularies, and tokens.
//
// Each tape assigns bit indices to characters lazily, in order of first appearance.
// Indices are never removed or renumbered, so a token built earlier stays valid when
// the vocabulary grows.
package tape

import (
	"strings"
	"unicode/utf8"

	"github.com/ava12/tapegen"
	"github.com/ava12/tapegen/internal/ints"
)

// Error codes used by tape:
const (
	// UnknownTapeError indicates that a tape missing from collection was requested.
	UnknownTapeError = tapegen.TapeErrors + iota
)

// HiddenPrefix starts names of internal tapes, such tapes never appear in output records.
const HiddenPrefix = "."

// IsHidden reports whether tape name denotes an internal tape.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, HiddenPrefix)
}

// Tape is a named output channel with its own character vocabulary.
type Tape interface {
	// Name returns the tape name as seen by the caller, it may differ from the name of underlying vocabulary.
	Name() string
	// Size returns current vocabulary size.
	Size() int
	// Token returns single-character token, registering the character if it is not in vocabulary yet.
	Token(char string) Token
	// Tokenize returns one token per rune of s.
	Tokenize(s string) []Token
	// Chars returns characters of token in vocabulary order.
	Chars(t Token) []string
	// IsEmpty reports whether token contains no character of current vocabulary.
	IsEmpty(t Token) bool
	// Vocab returns characters in index order.
	Vocab() []string
}

// Split splits text into characters (runes) the way tapes tokenize it.
func Split(text string) []string {
	result := make([]string, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		result = append(result, string(r))
	}
	return result
}

type vocabTape struct {
	name  string
	chars []string
	index map[string]int
}

func newVocabTape(name string) *vocabTape {
	return &vocabTape{name: name, index: make(map[string]int)}
}

func (vt *vocabTape) Name() string {
	return vt.name
}

func (vt *vocabTape) Size() int {
	return len(vt.chars)
}

func (vt *vocabTape) Token(char string) Token {
	i, has := vt.index[char]
	if !has {
		i = len(vt.chars)
		vt.chars = append(vt.chars, char)
		vt.index[char] = i
	}
	return NewToken(i)
}

func (vt *vocabTape) Tokenize(s string) []Token {
	chars := Split(s)
	result := make([]Token, len(chars))
	for i, c := range chars {
		result[i] = vt.Token(c)
	}
	return result
}

func (vt *vocabTape) Chars(t Token) []string {
	var result []string
	if t.inverse {
		for i, c := range vt.chars {
			if !t.bits.Contains(i) {
				result = append(result, c)
			}
		}
		return result
	}

	t.bits.Each(func(i int) {
		if i < len(vt.chars) {
			result = append(result, vt.chars[i])
		}
	})
	return result
}

func (vt *vocabTape) IsEmpty(t Token) bool {
	if !t.inverse {
		return ints.Intersect(t.bits, ints.Range(len(vt.chars))).IsEmpty()
	}

	return ints.Subtract(ints.Range(len(vt.chars)), t.bits).IsEmpty()
}

func (vt *vocabTape) Vocab() []string {
	result := make([]string, len(vt.chars))
	copy(result, vt.chars)
	return result
}

// renamedTape shows underlying tape under another name, sharing its vocabulary.
type renamedTape struct {
	Tape
	name string
}

// Rename returns a view of t named name. Tokens of the view and of t are interchangeable.
func Rename(t Tape, name string) Tape {
	if rt, is := t.(renamedTape); is {
		t = rt.Tape
	}
	if t.Name() == name {
		return t
	}
	return renamedTape{t, name}
}

func (rt renamedTape) Name() string {
	return rt.name
}
