package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{1, 2, 1},
			{1, 2, 1},
			{100, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{8, 4, 3},
			{9, 4, 4},
			{10, 4, 5},
			{11, 4, 6},
			{12, 4, 7},
			{13, 4, 8},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
	}

	for text, results := range samples {
		s := New("", []byte(text))
		for _, res := range results {
			l, c := s.LineCol(res.pos)
			assert.Equal(t, res, result{res.pos, l, c}, "sample %q", text)
		}
	}
}

func TestNewAtShiftsLines(t *testing.T) {
	s := NewAt("grammar.yaml", []byte("lit(t1,\n  x)"), 5)
	l, c := s.LineCol(10)
	assert.Equal(t, 6, l)
	assert.Equal(t, 3, c)
}

func TestPosImplementsSourcePos(t *testing.T) {
	s := New("src", []byte("ab\ncd"))
	p := NewPos(s, 4)
	assert.Equal(t, "src", p.SourceName())
	assert.Equal(t, 2, p.Line())
	assert.Equal(t, 2, p.Col())
	assert.Equal(t, 4, p.Pos())
	assert.Same(t, s, p.Source())
	assert.Equal(t, "", NewPos(nil, 3).SourceName())
}

func TestCursor(t *testing.T) {
	c := NewCursor(New("foo", []byte("foo")))
	assert.False(t, c.IsEmpty())

	c.Skip(2)
	content, pos := c.ContentPos()
	assert.Equal(t, "foo", string(content))
	assert.Equal(t, 2, pos)
	assert.Equal(t, 3, c.SourcePos().Col())

	c.Skip(4)
	assert.Equal(t, 3, c.Pos())
	assert.True(t, c.IsEmpty())
	c.Skip(-1)
	assert.Equal(t, 3, c.Pos())
}
