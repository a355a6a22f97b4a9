package grammar

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ava12/tapegen"
	"github.com/ava12/tapegen/expr"
	"github.com/ava12/tapegen/internal/log"
	"github.com/ava12/tapegen/notation"
	"github.com/ava12/tapegen/source"
	"github.com/ava12/tapegen/tape"
)

// Error codes used by grammar file loader:
const (
	// YAMLError indicates malformed YAML.
	YAMLError = tapegen.LoaderErrors + iota

	// FormatError indicates a grammar file structure violation, e.g. a symbol defined by a list.
	FormatError

	// DuplicateSymbolError indicates a symbol defined twice in the same file.
	DuplicateSymbolError

	// ReadError indicates a file that cannot be read.
	ReadError
)

// file is the layout of a grammar file:
//
//	tapes:
//	  word: [text, gloss]
//	symbols:
//	  root: lit(text, "hello")
//	  word: seq(root, opt(lit(text, "s")))
//
// Symbols are kept in file order, the last one is the grammar default.
// Tape lists are optional, tapes of every symbol are inferred from its definition and references.
type file struct {
	Tapes   map[string][]string `yaml:"tapes"`
	Symbols yaml.Node           `yaml:"symbols"`
}

type definition struct {
	name string
	src  *source.Source
	expr expr.Expr
	refs []string
}

// LoadFile reads a YAML grammar file.
func LoadFile(path string) (*Grammar, error) {
	content, e := os.ReadFile(path)
	if e != nil {
		return nil, tapegen.FormatError(ReadError, "cannot read grammar: %s", e)
	}
	return LoadYAML(path, content)
}

// LoadYAML builds a grammar from YAML content, name is used in error messages.
func LoadYAML(name string, content []byte) (*Grammar, error) {
	var f file
	if e := yaml.Unmarshal(content, &f); e != nil {
		return nil, tapegen.FormatError(YAMLError, "%s: %s", name, e)
	}

	defs, e := f.definitions(name)
	if e != nil {
		return nil, e
	}

	tapes := make(map[string]tape.Names, len(defs))
	for symbol, names := range f.Tapes {
		tapes[symbol] = tape.NewNames(names...)
	}
	if e = inferTapes(defs, tapes); e != nil {
		return nil, e
	}

	g := New()
	for _, d := range defs {
		g.Define(d.name, d.expr)
	}
	for _, d := range defs {
		for _, ref := range d.refs {
			if _, found := g.symbols.Resolve(ref); !found {
				log.WarnS("reference to undefined symbol", "grammar", name, "symbol", d.name, "reference", ref)
			}
		}
	}
	log.DebugS("grammar loaded", "grammar", name, "symbols", len(defs))
	return g, nil
}

func (f *file) definitions(name string) ([]*definition, error) {
	node := &f.Symbols
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, tapegen.NewError(FormatError, "symbols must be a mapping", name, node.Line, node.Column)
	}

	seen := make(map[string]bool, len(node.Content)/2)
	result := make([]*definition, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, tapegen.NewError(FormatError, "symbol name must be a non-empty string", name, key.Line, key.Column)
		}
		if seen[key.Value] {
			return nil, tapegen.NewError(DuplicateSymbolError, "symbol "+key.Value+" is already defined", name, key.Line, key.Column)
		}
		if value.Kind != yaml.ScalarNode {
			return nil, tapegen.NewError(FormatError, "definition of "+key.Value+" must be a string", name, value.Line, value.Column)
		}

		seen[key.Value] = true
		line := value.Line
		if value.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
			line++
		}
		result = append(result, &definition{name: key.Value, src: source.NewAt(name, []byte(value.Value), line)})
	}
	return result, nil
}

// inferTapes parses definitions until tapes of every symbol reach a fixed point.
// A symbol writes the tapes of its definition, which include the tapes of symbols it references.
// Visible tape sets only grow and are bounded by the tapes mentioned in the file, so the loop terminates.
// Hidden tapes are new on every parse, a symbol keeps the hidden tapes of its latest definition.
func inferTapes(defs []*definition, tapes map[string]tape.Names) error {
	resolve := func(symbol string) tape.Names {
		if ts, found := tapes[symbol]; found {
			return ts
		}

		prefix := symbol + expr.NamespaceSeparator
		for i := len(defs) - 1; i >= 0; i-- {
			if strings.HasPrefix(defs[i].name, prefix) {
				return tapes[defs[i].name]
			}
		}
		return nil
	}

	for pass := 1; ; pass++ {
		changed := false
		for _, d := range defs {
			e, refs, err := notation.Parse(d.src, resolve)
			if err != nil {
				return err
			}

			d.expr, d.refs = e, refs
			prev := tapes[d.name]
			ts := prev.Visible().Union(e.Tapes())
			tapes[d.name] = ts
			if !ts.Visible().Equal(prev.Visible()) {
				changed = true
			}
		}

		if !changed {
			log.DebugS("symbol tapes inferred", "passes", pass)
			return nil
		}
	}
}
