package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/tapegen/expr"
	"github.com/ava12/tapegen/generate"
)

func records(t *testing.T, e expr.Expr) []generate.Record {
	t.Helper()
	result, err := generate.Generate(e, nil, generate.Options{MaxChars: 8})
	require.NoError(t, err)
	return result
}

var (
	pairs = expr.Union(
		expr.Seq(expr.Lit("t1", "a"), expr.Lit("t2", "x")),
		expr.Seq(expr.Lit("t1", "b"), expr.Lit("t2", "y")),
	)
	gloss = expr.Union(
		expr.Seq(expr.Lit("t2", "x"), expr.Lit("t3", "ex")),
		expr.Seq(expr.Lit("t2", "y"), expr.Lit("t3", "why")),
		expr.Seq(expr.Lit("t2", "z"), expr.Lit("t3", "zed")),
	)
	upper = expr.Union(
		expr.Seq(expr.Lit("t3", "ex"), expr.Lit("t4", "EX")),
		expr.Seq(expr.Lit("t3", "zed"), expr.Lit("t4", "ZED")),
	)
)

func TestJoin(t *testing.T) {
	assert.ElementsMatch(t, []generate.Record{
		{"t1": "a", "t2": "x", "t3": "ex"},
		{"t1": "b", "t2": "y", "t3": "why"},
	}, records(t, expr.Join(pairs, gloss)))
}

func TestJoinIsCommutative(t *testing.T) {
	assert.ElementsMatch(t, records(t, expr.Join(pairs, gloss)), records(t, expr.Join(gloss, pairs)))
}

func TestJoinIsAssociative(t *testing.T) {
	left := records(t, expr.Join(expr.Join(pairs, gloss), upper))
	right := records(t, expr.Join(pairs, expr.Join(gloss, upper)))
	assert.ElementsMatch(t, []generate.Record{{"t1": "a", "t2": "x", "t3": "ex", "t4": "EX"}}, left)
	assert.ElementsMatch(t, left, right)
}

func TestFilter(t *testing.T) {
	words := expr.Union(expr.Lit("t1", "cat"), expr.Lit("t1", "dog"), expr.Lit("t1", "cow"))
	assert.ElementsMatch(t, []generate.Record{{"t1": "cat"}, {"t1": "cow"}},
		records(t, expr.StartsWith(words, expr.Lit("t1", "c"))))
	assert.ElementsMatch(t, []generate.Record{{"t1": "dog"}},
		records(t, expr.EndsWith(words, expr.Lit("t1", "g"))))
	assert.ElementsMatch(t, []generate.Record{{"t1": "cow"}, {"t1": "dog"}},
		records(t, expr.Contains(words, expr.Lit("t1", "o"))))
	assert.ElementsMatch(t, []generate.Record{{"t1": "dog"}},
		records(t, expr.Filter(words, expr.Lit("t1", "dog"))))
}

func TestFilterKeepsTapes(t *testing.T) {
	e := expr.Filter(pairs, expr.Lit("t1", "b"))
	assert.Equal(t, []generate.Record{{"t1": "b", "t2": "y"}}, records(t, e))
}
