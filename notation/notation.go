// Package notation parses the compact text notation of expressions used in grammar files.
//
// An expression is either a function call or a bare symbol name:
//
//	seq(lit(t1, "hi"), opt(greeting), rep(dot(t2), 1, 3))
//
// Bare names and names passed where an expression is expected are embedded symbol references.
// Tape arguments are plain names, strings are double-quoted with Go escapes,
// counts are integers or inf. Comments start with # and run to the end of line.
package notation

import (
	"regexp"
	"strconv"

	"github.com/ava12/tapegen"
	"github.com/ava12/tapegen/expr"
	"github.com/ava12/tapegen/lexer"
	"github.com/ava12/tapegen/source"
	"github.com/ava12/tapegen/tape"
)

// Error codes used by notation:
const (
	// UnexpectedTokenError indicates a token not allowed at current position.
	UnexpectedTokenError = tapegen.NotationErrors + 10 + iota

	// UnknownFunctionError indicates a call of undefined function.
	UnknownFunctionError

	// ArgumentCountError indicates a call with wrong number of arguments.
	ArgumentCountError

	// ArgumentTypeError indicates an argument of wrong kind, e.g. a string passed as a tape name.
	ArgumentTypeError
)

// Unbounded is the name denoting unlimited repetition count.
const Unbounded = "inf"

const (
	nameToken = iota
	stringToken
	numberToken
	opToken
)

var (
	tokenRe = regexp.MustCompile(`(?s:\s+|#[^\n]*|([A-Za-z_][A-Za-z0-9_.]*)|("(?:[^"\\\n]|\\.)*")|(-?\d+)|([(),])|("[^\n]{0,10}))`)

	tokenTypes = []lexer.TokenType{
		{Type: nameToken, TypeName: "name"},
		{Type: stringToken, TypeName: "string"},
		{Type: numberToken, TypeName: "number"},
		{Type: opToken, TypeName: "operator"},
		{Type: -1, TypeName: ""},
	}

	defaultLexer = lexer.New(tokenRe, tokenTypes)
)

// TapeResolver returns tapes written by a named symbol, used to build symbol references.
type TapeResolver func(symbol string) tape.Names

type parser struct {
	cursor *source.Cursor
	tok    *lexer.Token
	tapes  TapeResolver
	refs   []string
}

// Parse parses a single expression occupying the whole source.
// Names of all referenced symbols are returned in order of appearance.
func Parse(src *source.Source, tapes TapeResolver) (expr.Expr, []string, error) {
	p := &parser{cursor: source.NewCursor(src), tapes: tapes}
	if e := p.next(); e != nil {
		return nil, nil, e
	}

	result, e := p.parseExpr()
	if e != nil {
		return nil, nil, e
	}
	if p.tok.Type() != lexer.EofTokenType {
		return nil, nil, unexpectedTokenError(p.tok, "end of expression")
	}
	return result, p.refs, nil
}

// ParseString parses text named name.
func ParseString(name, text string, tapes TapeResolver) (expr.Expr, error) {
	result, _, e := Parse(source.New(name, []byte(text)), tapes)
	return result, e
}

func unexpectedTokenError(t *lexer.Token, expected string) *tapegen.Error {
	text := t.Text()
	if t.Type() == lexer.EofTokenType {
		text = t.TypeName()
	}
	return tapegen.FormatErrorPos(t, UnexpectedTokenError, "unexpected %q, expecting %s", text, expected)
}

func (p *parser) next() error {
	t, e := defaultLexer.Next(p.cursor)
	if e != nil {
		return e
	}

	p.tok = t
	return nil
}

func (p *parser) isOp(text string) bool {
	return p.tok.Type() == opToken && p.tok.Text() == text
}

func (p *parser) skipOp(text string) error {
	if !p.isOp(text) {
		return unexpectedTokenError(p.tok, strconv.Quote(text))
	}
	return p.next()
}

func (p *parser) parseExpr() (expr.Expr, error) {
	arg, e := p.parseArg()
	if e != nil {
		return nil, e
	}
	return p.toExpr(arg)
}

// parseArg parses a call, a name, a string, or a number.
func (p *parser) parseArg() (argument, error) {
	tok := p.tok
	switch tok.Type() {
	case stringToken, numberToken:
		return argument{tok: tok}, p.next()

	case nameToken:
		if e := p.next(); e != nil {
			return argument{}, e
		}
		if !p.isOp("(") {
			return argument{tok: tok}, nil
		}

		args, e := p.parseArgs()
		if e != nil {
			return argument{}, e
		}
		result, e := p.call(tok, args)
		return argument{tok: tok, expr: result}, e

	default:
		return argument{}, unexpectedTokenError(tok, "expression")
	}
}

func (p *parser) parseArgs() ([]argument, error) {
	if e := p.skipOp("("); e != nil {
		return nil, e
	}

	var result []argument
	if p.isOp(")") {
		return result, p.next()
	}

	for {
		arg, e := p.parseArg()
		if e != nil {
			return nil, e
		}
		result = append(result, arg)

		if p.isOp(")") {
			return result, p.next()
		}
		if e = p.skipOp(","); e != nil {
			return nil, e
		}
	}
}

// toExpr converts an argument to expression, bare names are symbol references.
func (p *parser) toExpr(arg argument) (expr.Expr, error) {
	if arg.expr != nil {
		return arg.expr, nil
	}
	if arg.tok.Type() != nameToken {
		return nil, argumentTypeError(arg.tok, "expression")
	}

	name := arg.tok.Text()
	p.refs = append(p.refs, name)
	var tapes tape.Names
	if p.tapes != nil {
		tapes = p.tapes(name)
	}
	return expr.Embed(name, tapes...), nil
}
