package tape

import (
	"github.com/ava12/tapegen/internal/ints"
)

// Token is an immutable set of character indices of a single tape vocabulary.
// A token is either finite (contains listed indices) or co-finite (contains every index except listed ones),
// the latter allows the universal token to stay valid when the vocabulary grows.
// A token is only meaningful relative to its tape.
type Token struct {
	bits    ints.Set
	inverse bool
}

// Any is the token matching every character of any vocabulary (ALL-bits).
var Any = Token{inverse: true}

// None is the empty token (NO-bits).
var None = Token{}

// NewToken creates finite token containing given character indices.
func NewToken(indices ...int) Token {
	return Token{bits: ints.NewSet(indices...)}
}

// And returns the intersection of t and u.
func (t Token) And(u Token) Token {
	switch {
	case !t.inverse && !u.inverse:
		return Token{bits: ints.Intersect(t.bits, u.bits)}
	case !t.inverse:
		return Token{bits: ints.Subtract(t.bits, u.bits)}
	case !u.inverse:
		return Token{bits: ints.Subtract(u.bits, t.bits)}
	default:
		return Token{bits: ints.Union(t.bits, u.bits), inverse: true}
	}
}

// Or returns the union of t and u.
func (t Token) Or(u Token) Token {
	switch {
	case !t.inverse && !u.inverse:
		return Token{bits: ints.Union(t.bits, u.bits)}
	case !t.inverse:
		return Token{bits: ints.Subtract(u.bits, t.bits), inverse: true}
	case !u.inverse:
		return Token{bits: ints.Subtract(t.bits, u.bits), inverse: true}
	default:
		return Token{bits: ints.Intersect(t.bits, u.bits), inverse: true}
	}
}

// Not returns the complement of t.
func (t Token) Not() Token {
	return Token{bits: t.bits, inverse: !t.inverse}
}

// AndNot returns characters of t not present in u.
func (t Token) AndNot(u Token) Token {
	return t.And(u.Not())
}

// IsEmpty reports whether t contains no characters regardless of vocabulary size.
// A co-finite token is never empty, use Tape.IsEmpty to test it against a vocabulary.
func (t Token) IsEmpty() bool {
	return !t.inverse && t.bits.IsEmpty()
}

// IsAny reports whether t is the universal token.
func (t Token) IsAny() bool {
	return t.inverse && t.bits.IsEmpty()
}

// Contains reports whether character index i belongs to t.
func (t Token) Contains(i int) bool {
	return t.bits.Contains(i) != t.inverse
}

// Equal reports whether t and u contain the same characters.
func (t Token) Equal(u Token) bool {
	return t.inverse == u.inverse && t.bits.IsEqual(u.bits)
}

// String returns token indices, co-finite tokens are prefixed with "~".
func (t Token) String() string {
	if t.IsAny() {
		return "*"
	}

	if t.inverse {
		return "~" + t.bits.String()
	}
	return t.bits.String()
}

// Match is the bitwise AND of two tokens of the same tape.
func Match(t1, t2 Token) Token {
	return t1.And(t2)
}
