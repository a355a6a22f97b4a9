package notation

import (
	"fmt"
	"strconv"

	"github.com/ava12/tapegen"
	"github.com/ava12/tapegen/expr"
	"github.com/ava12/tapegen/lexer"
)

// argument is a parsed call argument. expr is set for calls only.
type argument struct {
	tok  *lexer.Token
	expr expr.Expr
}

// callArgs converts call arguments to the types required by a function.
// The first conversion error is kept, later conversions return zero values.
type callArgs struct {
	p    *parser
	name *lexer.Token
	args []argument
	err  error
}

type builder func(c *callArgs) expr.Expr

type function struct {
	minArgs, maxArgs int
	build            builder
}

const variadic = -1

var functions map[string]function

func init() {
	binary := func(f func(a, b expr.Expr) expr.Expr) function {
		return function{2, 2, func(c *callArgs) expr.Expr {
			return f(c.expr(0), c.expr(1))
		}}
	}
	unary := func(f func(e expr.Expr) expr.Expr) function {
		return function{1, 1, func(c *callArgs) expr.Expr {
			return f(c.expr(0))
		}}
	}

	functions = map[string]function{
		"eps": {0, 0, func(*callArgs) expr.Expr {
			return expr.Epsilon()
		}},
		"null": {0, 0, func(*callArgs) expr.Expr {
			return expr.Null()
		}},
		"lit": {2, 2, func(c *callArgs) expr.Expr {
			return expr.Lit(c.tape(0), c.str(1))
		}},
		"dot": {1, 1, func(c *callArgs) expr.Expr {
			return expr.Dot(c.tape(0))
		}},
		"seq": {0, variadic, func(c *callArgs) expr.Expr {
			return expr.Seq(c.exprs(0)...)
		}},
		"union": {0, variadic, func(c *callArgs) expr.Expr {
			return expr.Union(c.exprs(0)...)
		}},
		"intersect": binary(expr.Intersect),
		"join":      binary(expr.Join),
		"filter":    binary(expr.Filter),
		"starts":    binary(expr.StartsWith),
		"ends":      binary(expr.EndsWith),
		"contains":  binary(expr.Contains),
		"not":       unary(expr.Not),
		"star":      unary(expr.Star),
		"opt":       unary(expr.Maybe),
		"memo":      unary(expr.Memo),
		"rep": {2, 3, func(c *callArgs) expr.Expr {
			max := expr.Unbounded
			if len(c.args) > 2 {
				max = c.count(2)
			}
			return expr.Rep(c.expr(0), c.count(1), max)
		}},
		"match": {2, variadic, func(c *callArgs) expr.Expr {
			return expr.Match(c.expr(0), c.tapes(1)...)
		}},
		"copy": {2, variadic, func(c *callArgs) expr.Expr {
			return expr.MatchDot(c.tapes(0)...)
		}},
		"rename": {3, 3, func(c *callArgs) expr.Expr {
			return expr.Rename(c.expr(0), c.tape(1), c.tape(2))
		}},
		"hide": {2, 2, func(c *callArgs) expr.Expr {
			return expr.HideAt(c.expr(0), c.tape(1), c.site())
		}},
	}
}

func argumentCountError(name *lexer.Token, count int) *tapegen.Error {
	return tapegen.FormatErrorPos(name, ArgumentCountError, "wrong number of arguments (%d) for %s", count, name.Text())
}

func argumentTypeError(t *lexer.Token, expected string) *tapegen.Error {
	return tapegen.FormatErrorPos(t, ArgumentTypeError, "%q is not a valid %s", t.Text(), expected)
}

func (p *parser) call(name *lexer.Token, args []argument) (expr.Expr, error) {
	f, found := functions[name.Text()]
	if !found {
		return nil, tapegen.FormatErrorPos(name, UnknownFunctionError, "unknown function %s", name.Text())
	}
	if len(args) < f.minArgs || (f.maxArgs != variadic && len(args) > f.maxArgs) {
		return nil, argumentCountError(name, len(args))
	}

	c := &callArgs{p: p, name: name, args: args}
	result := f.build(c)
	if c.err != nil {
		return nil, c.err
	}
	return result, nil
}

// site identifies the call by its position, it is the same every time the source is parsed.
func (c *callArgs) site() string {
	return fmt.Sprintf("%s:%d:%d", c.name.SourceName(), c.name.Line(), c.name.Col())
}

func (c *callArgs) fail(e error) {
	if c.err == nil {
		c.err = e
	}
}

func (c *callArgs) expr(i int) expr.Expr {
	if c.err != nil {
		return expr.Null()
	}

	result, e := c.p.toExpr(c.args[i])
	if e != nil {
		c.fail(e)
		return expr.Null()
	}
	return result
}

func (c *callArgs) exprs(from int) []expr.Expr {
	result := make([]expr.Expr, 0, len(c.args)-from)
	for i := from; i < len(c.args); i++ {
		result = append(result, c.expr(i))
	}
	return result
}

func (c *callArgs) tape(i int) string {
	arg := c.args[i]
	if arg.expr != nil || arg.tok.Type() != nameToken {
		c.fail(argumentTypeError(arg.tok, "tape name"))
		return ""
	}
	return arg.tok.Text()
}

func (c *callArgs) tapes(from int) []string {
	result := make([]string, 0, len(c.args)-from)
	for i := from; i < len(c.args); i++ {
		result = append(result, c.tape(i))
	}
	return result
}

func (c *callArgs) str(i int) string {
	arg := c.args[i]
	if arg.expr != nil || arg.tok.Type() != stringToken {
		c.fail(argumentTypeError(arg.tok, "string"))
		return ""
	}

	result, e := strconv.Unquote(arg.tok.Text())
	if e != nil {
		c.fail(argumentTypeError(arg.tok, "string"))
	}
	return result
}

func (c *callArgs) count(i int) int {
	arg := c.args[i]
	if arg.expr == nil && arg.tok.Type() == nameToken && arg.tok.Text() == Unbounded {
		return expr.Unbounded
	}
	if arg.expr != nil || arg.tok.Type() != numberToken {
		c.fail(argumentTypeError(arg.tok, "count"))
		return 0
	}

	result, e := strconv.Atoi(arg.tok.Text())
	if e != nil {
		c.fail(argumentTypeError(arg.tok, "count"))
	}
	return result
}
