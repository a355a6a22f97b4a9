/*
Package tapegen is a multi-tape grammar engine: it generates and parses records of parallel strings
described by symbolic expressions.

Consists of subpackages:
  - cmd/tapegen: console utility generating, sampling, and parsing records of a grammar file;
  - tape: tapes (named output channels), their vocabularies, and character tokens;
  - expr: immutable expression algebra, derivatives, recursion counters, and symbol table;
  - generate: breadth-first and randomized traversal producing output records;
  - grammar: compiled grammar, entry points for generation and parsing, YAML grammar files;
  - notation: compact text notation for expressions;
  - lexer, source: tokenizer and source files used by notation.

Typical usage is:

1. Describe symbols either with expr constructors or in a YAML grammar file using notation.

2. Build grammar.Grammar from symbol definitions.

3. Call Generate, Sample, or Parse and pull records from the returned generator.
*/
package tapegen

import (
	"errors"
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	TapeErrors     = 1   // used by tape
	ExprErrors     = 101 // used by expr
	GrammarErrors  = 201 // used by grammar
	NotationErrors = 301 // used by lexer and notation
	LoaderErrors   = 401 // used by grammar file loader
)

// Error is the error type used by tapegen subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// HasCode reports whether e wraps an *Error with given code.
func HasCode(e error, code int) bool {
	var te *Error
	return errors.As(e, &te) && te.Code == code
}
