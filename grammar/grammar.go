// Package grammar binds named symbol definitions into a compiled grammar
// and provides entry points for generation, sampling, and parsing.
//
// A Grammar is not safe for concurrent use: tape vocabularies and Memo caches
// are shared by all sessions of the grammar.
package grammar

import (
	"sort"

	"github.com/ava12/tapegen"
	"github.com/ava12/tapegen/expr"
	"github.com/ava12/tapegen/generate"
	"github.com/ava12/tapegen/internal/log"
	"github.com/ava12/tapegen/tape"
)

// Error codes used by grammar:
const (
	// UnknownSymbolError indicates a request for a symbol missing from the grammar.
	UnknownSymbolError = tapegen.GrammarErrors + iota

	// UnknownInputTapeError indicates parse input for a tape the symbol never writes.
	UnknownInputTapeError
)

// Grammar is an ordered set of named expressions sharing one tape collection.
type Grammar struct {
	symbols *expr.SymbolTable
	tapes   *tape.Tapes
}

// New creates an empty grammar.
func New() *Grammar {
	return &Grammar{symbols: expr.NewSymbolTable(), tapes: tape.NewCollection()}
}

// Define adds or replaces a symbol. The last defined symbol is the grammar default.
func (g *Grammar) Define(name string, e expr.Expr) {
	g.symbols.Define(name, e)
}

// Symbols returns the symbol table of g.
func (g *Grammar) Symbols() *expr.SymbolTable {
	return g.symbols
}

// Names returns symbol names in definition order.
func (g *Grammar) Names() []string {
	return g.symbols.Names()
}

// Collection returns the tape collection shared by all sessions of g.
func (g *Grammar) Collection() tape.Collection {
	return g.tapes
}

func unknownSymbolError(name string) *tapegen.Error {
	if name == "" {
		return tapegen.FormatError(UnknownSymbolError, "grammar has no symbols")
	}
	return tapegen.FormatError(UnknownSymbolError, "unknown symbol %q", name)
}

// resolve returns the fully qualified name of a symbol, empty name denotes the grammar default.
func (g *Grammar) resolve(name string) (string, expr.Expr, error) {
	if e, found := g.symbols.Lookup(name); found {
		return name, e, nil
	}

	qualified, e, found := g.symbols.Default(name)
	if !found {
		return "", nil, unknownSymbolError(name)
	}
	return qualified, e, nil
}

// Compile returns the expression for a symbol and the tapes it writes.
// name may be a fully qualified symbol name, a namespace (denoting its last symbol),
// or empty (denoting the last symbol of the grammar).
// The result is a reference to the symbol, so recursion is counted from the symbol itself.
func (g *Grammar) Compile(name string) (expr.Expr, tape.Names, error) {
	qualified, e, err := g.resolve(name)
	if err != nil {
		return nil, nil, err
	}

	tapes := e.Tapes()
	return expr.Embed(qualified, tapes...), tapes, nil
}

// session runs the vocabulary pre-pass for e and starts a generator.
func (g *Grammar) session(e expr.Expr, tapes tape.Names, opts generate.Options) *generate.Generator {
	expr.CollectVocab(e, g.tapes, g.symbols)
	return generate.New(e, tapes, g.tapes, g.symbols, opts)
}

// Generate starts generation of records of a symbol.
func (g *Grammar) Generate(name string, opts generate.Options) (*generate.Generator, error) {
	e, tapes, err := g.Compile(name)
	if err != nil {
		return nil, err
	}

	log.DebugS("generating", "symbol", name, "tapes", tapes.String())
	return g.session(e, tapes, opts), nil
}

// Sample returns up to n records of a symbol chosen at random.
func (g *Grammar) Sample(name string, n int, opts generate.Options) ([]generate.Record, error) {
	e, tapes, err := g.Compile(name)
	if err != nil || n <= 0 {
		return nil, err
	}

	opts.Random = true
	opts.MaxResults = n
	return g.session(e, tapes, opts).Collect()
}

// Parse starts generation of records of a symbol matching input.
// input maps tape names to their complete text, tapes missing from input are generated freely.
func (g *Grammar) Parse(name string, input map[string]string, opts generate.Options) (*generate.Generator, error) {
	e, tapes, err := g.Compile(name)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(input))
	for n := range input {
		names = append(names, n)
	}
	sort.Strings(names)

	lits := make([]expr.Expr, 0, len(names))
	for _, n := range names {
		if !tapes.Contains(n) {
			return nil, tapegen.FormatError(UnknownInputTapeError, "symbol %q does not write tape %q", name, n)
		}
		lits = append(lits, expr.Lit(n, input[n]))
	}

	// Input tapes are not padded, so a tape with empty input stays empty.
	pattern := expr.Concat(expr.Seq(lits...), expr.Universe(tapes.Minus(tape.NewNames(names...))))
	log.DebugS("parsing", "symbol", name, "input", len(input))
	return g.session(expr.Intersect(e, pattern), tapes, opts), nil
}
