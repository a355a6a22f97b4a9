// Package source holds named source texts and converts byte offsets to line and column numbers.
package source

import (
	"bytes"
	"unicode/utf8"
)

// Source is a named text, e.g. a grammar file or a single notation string of a grammar file.
type Source struct {
	name          string
	content       []byte
	lineStarts    []int
	prevLineIndex int
	lineOffset    int
}

// New creates a source starting at line 1.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content, prevLineIndex: -1}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

// NewAt creates a source embedded in a larger file starting at given line,
// reported line numbers are shifted accordingly.
func NewAt(name string, content []byte, line int) *Source {
	s := New(name, content)
	if line > 1 {
		s.lineOffset = line - 1
	}
	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCol returns 1-based line and column (in runes) for byte offset pos.
func (s *Source) LineCol(pos int) (line, col int) {
	var lineIndex int
	if pos < 0 {
		pos = 0
		lineIndex = 0
	} else if pos >= len(s.content) {
		pos = len(s.content)
		lineIndex = len(s.lineStarts) - 1
	} else {
		lineIndex = s.findLineIndex(pos)
	}

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1 + s.lineOffset, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

func (s *Source) findLineIndex(pos int) int {
	if s.prevLineIndex >= 0 && s.lineStarts[s.prevLineIndex] <= pos {
		lineIndex := s.prevLineIndex
		last := len(s.lineStarts) - 1
		for lineIndex <= last && s.lineStarts[lineIndex] <= pos {
			lineIndex++
		}
		lineIndex--
		s.prevLineIndex = lineIndex
		return lineIndex
	}

	leftIndex := 0
	rightIndex := len(s.lineStarts) - 1
	index := 0
	if s.prevLineIndex >= 0 {
		rightIndex = s.prevLineIndex
	}
	for leftIndex < rightIndex {
		index = (leftIndex + rightIndex + 1) >> 1
		lineStart := s.lineStarts[index]
		if lineStart == pos {
			return index
		}

		if lineStart < pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
			index = rightIndex
		}
	}
	s.prevLineIndex = index
	return index
}

// Pos is a position in a source. It implements tapegen.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col  int
}

// NewPos returns the position of byte offset pos in s.
func NewPos(s *Source, pos int) Pos {
	result := Pos{src: s, pos: pos}
	if s != nil {
		result.line, result.col = s.LineCol(pos)
	}
	return result
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}

// Cursor is a reading position in a source.
type Cursor struct {
	source *Source
	pos    int
}

// NewCursor creates a cursor at the start of s.
func NewCursor(s *Source) *Cursor {
	return &Cursor{source: s}
}

func (c *Cursor) Source() *Source {
	return c.source
}

func (c *Cursor) Pos() int {
	return c.pos
}

// SourcePos returns current position.
func (c *Cursor) SourcePos() Pos {
	return NewPos(c.source, c.pos)
}

// IsEmpty reports whether the whole source is consumed.
func (c *Cursor) IsEmpty() bool {
	return c.pos >= c.source.Len()
}

// ContentPos returns source content and current offset.
func (c *Cursor) ContentPos() ([]byte, int) {
	return c.source.Content(), c.pos
}

// Skip advances cursor by size bytes without passing the end of source.
func (c *Cursor) Skip(size int) {
	if size <= 0 {
		return
	}

	c.pos += size
	if c.pos > c.source.Len() {
		c.pos = c.source.Len()
	}
}
