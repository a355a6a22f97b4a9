package generate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/tapegen/expr"
	. "github.com/ava12/tapegen/internal/test"
	"github.com/ava12/tapegen/tape"
)

func generate(t *testing.T, e expr.Expr, symbols *expr.SymbolTable, opts Options) []Record {
	t.Helper()
	records, err := Generate(e, symbols, opts)
	require.NoError(t, err)
	return records
}

func TestLiteral(t *testing.T) {
	records := generate(t, expr.Lit("t1", "hello"), nil, Options{})
	expected := []Record{{"t1": "hello"}}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Errorf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestUnionWithEpsilon(t *testing.T) {
	records := generate(t, expr.Union(expr.Lit("t1", "hello"), expr.Epsilon()), nil, Options{})
	assert.ElementsMatch(t, []Record{{"t1": "hello"}, {}}, records)
}

func TestJoinWithComplementIsEmpty(t *testing.T) {
	hello := expr.Lit("t1", "hello")
	records := generate(t, expr.Join(hello, expr.Not(hello)), nil, Options{})
	assert.Empty(t, records)
}

func TestRepeatShortestFirst(t *testing.T) {
	records := generate(t, expr.Rep(expr.Lit("t1", "na"), 1, 4), nil, Options{})
	expected := []Record{{"t1": "na"}, {"t1": "nana"}, {"t1": "nanana"}, {"t1": "nananana"}}
	if diff := cmp.Diff(expected, records); diff != "" {
		t.Errorf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestMatchCopiesCharacter(t *testing.T) {
	e := expr.Seq(expr.MatchDot("t1", "t2"), expr.Lit("t1", "hi"), expr.Lit("t2", "ih"))
	records := generate(t, e, nil, Options{})
	assert.ElementsMatch(t, []Record{
		{"t1": "hhi", "t2": "hih"},
		{"t1": "ihi", "t2": "iih"},
	}, records)
}

func TestDotExpandsVocabulary(t *testing.T) {
	e := expr.Seq(expr.Dot("t1"), expr.Union(expr.Lit("t1", "a"), expr.Lit("t1", "b")))
	records := generate(t, e, nil, Options{})
	assert.ElementsMatch(t, []Record{
		{"t1": "aa"}, {"t1": "ab"}, {"t1": "ba"}, {"t1": "bb"},
	}, records)
}

func TestMultipleTapes(t *testing.T) {
	e := expr.Seq(expr.Lit("t1", "ab"), expr.Lit("t2", "c"))
	records := generate(t, e, nil, Options{})
	assert.Equal(t, []Record{{"t1": "ab", "t2": "c"}}, records)
}

func TestRecursionLimit(t *testing.T) {
	symbols := expr.NewSymbolTable()
	// s = "a" s?
	symbols.Define("s", expr.Seq(expr.Lit("t1", "a"), expr.Maybe(expr.Embed("s", "t1"))))

	records := generate(t, expr.Embed("s", "t1"), symbols, Options{})
	assert.Equal(t, []Record{{"t1": "a"}, {"t1": "aa"}, {"t1": "aaa"}, {"t1": "aaaa"}}, records)

	records = generate(t, expr.Embed("s", "t1"), symbols, Options{MaxRecursion: 2})
	assert.Equal(t, []Record{{"t1": "a"}, {"t1": "aa"}}, records)
}

func TestUnresolvedSymbolIsEmpty(t *testing.T) {
	e := expr.Seq(expr.Lit("t1", "x"), expr.Embed("missing", "t1"))
	records := generate(t, e, nil, Options{})
	assert.Equal(t, []Record{{"t1": "x"}}, records)
}

func TestTapelessExpressions(t *testing.T) {
	assert.Equal(t, []Record{{}}, generate(t, expr.Embed("missing"), nil, Options{}))
	assert.Equal(t, []Record{{}}, generate(t, expr.Embed("missing"), nil, Options{Random: true, Seed: 5}))

	symbols := expr.NewSymbolTable()
	symbols.Define("none", expr.Rep(expr.Lit("t1", "a"), 0, 0))
	symbols.Define("empty", expr.Null())
	assert.Equal(t, []Record{{}}, generate(t, expr.Embed("none"), symbols, Options{}))
	assert.Empty(t, generate(t, expr.Embed("empty"), symbols, Options{}))
	assert.Equal(t, []Record{{"t1": "x"}}, generate(t, expr.Seq(expr.Embed("none"), expr.Lit("t1", "x")), symbols, Options{}))
}

func TestMaxChars(t *testing.T) {
	before := testutil.ToFloat64(branchesPruned.WithLabelValues(modeBFS))
	records := generate(t, expr.Star(expr.Lit("t1", "a")), nil, Options{MaxChars: 3})
	assert.Equal(t, []Record{{}, {"t1": "a"}, {"t1": "aa"}, {"t1": "aaa"}}, records)
	assert.Greater(t, testutil.ToFloat64(branchesPruned.WithLabelValues(modeBFS)), before)
}

func TestMaxResults(t *testing.T) {
	g := New(expr.Star(expr.Lit("t1", "a")), nil, collect(expr.Lit("t1", "a")), nil, Options{MaxResults: 2})
	records, err := g.Collect()
	require.NoError(t, err)
	assert.Equal(t, []Record{{}, {"t1": "a"}}, records)
	ExpectInt(t, 2, g.Count())
	ExpectBool(t, false, g.Next())
}

func TestHiddenTapesOmitted(t *testing.T) {
	e := expr.Seq(expr.Lit("t1", "x"), expr.Hide(expr.Lit("t2", "secret"), "t2"))
	records := generate(t, e, nil, Options{})
	assert.Equal(t, []Record{{"t1": "x"}}, records)
}

func TestMultiTapeNegationFails(t *testing.T) {
	e := expr.Not(expr.Seq(expr.Lit("t1", "a"), expr.Lit("t2", "b")))
	_, err := Generate(e, nil, Options{})
	ExpectErrorCode(t, expr.MultiTapeNegationError, err)
}

func TestUnknownTapeFails(t *testing.T) {
	g := New(expr.Lit("t1", "a"), nil, tape.NewCollection(), nil, Options{})
	ExpectBool(t, false, g.Next())
	ExpectErrorCode(t, tape.UnknownTapeError, g.Err())
}

func TestRecordsEmittedCounter(t *testing.T) {
	before := testutil.ToFloat64(recordsEmitted.WithLabelValues(modeBFS))
	generate(t, expr.Rep(expr.Lit("t1", "na"), 1, 4), nil, Options{})
	assert.Equal(t, before+4, testutil.ToFloat64(recordsEmitted.WithLabelValues(modeBFS)))
}

func TestRandomIsSound(t *testing.T) {
	e := expr.Rep(expr.Union(expr.Lit("t1", "a"), expr.Lit("t1", "b")), 1, 3)
	exhaustive := generate(t, e, nil, Options{})
	require.Len(t, exhaustive, 2+4+8)

	before := testutil.ToFloat64(recordsEmitted.WithLabelValues(modeRandom))
	sampled := generate(t, e, nil, Options{Random: true, Seed: 42})
	assert.Subset(t, exhaustive, sampled)
	assert.Len(t, sampled, len(exhaustive))
	assert.Equal(t, before+float64(len(sampled)), testutil.ToFloat64(recordsEmitted.WithLabelValues(modeRandom)))
}

func TestRandomIsReproducible(t *testing.T) {
	e := expr.Star(expr.Union(expr.Lit("t1", "a"), expr.Lit("t1", "b")))
	opts := Options{Random: true, Seed: 7, MaxResults: 5, MaxChars: 10}
	first := generate(t, e, nil, opts)
	second := generate(t, e, nil, opts)
	assert.Len(t, first, 5)
	assert.Equal(t, first, second)
}

func collect(e expr.Expr) tape.Collection {
	c := tape.NewCollection()
	expr.CollectVocab(e, c, nil)
	return c
}
