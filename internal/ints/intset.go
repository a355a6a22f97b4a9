// Package ints implements sets of non-negative integers stored as bit chunks.
// Sets are values: every operation returns a new set and never modifies its operands,
// so sets may be shared freely between tokens.
package ints

import (
	"math/bits"
	"strconv"
	"strings"
)

const IntSizeShift = 5 + (^uint(0) >> 32 & 1)
const IntSize = 1 << IntSizeShift

// Set is an immutable set of non-negative integers. The zero value is an empty set.
type Set struct {
	chunks []uint
}

// NewSet creates a set containing given items. Negative items are ignored.
func NewSet(items ...int) Set {
	return Set{}.With(items...)
}

// Range creates a set containing all items in [0, n).
func Range(n int) Set {
	if n <= 0 {
		return Set{}
	}

	chunks := make([]uint, chunkCount(n-1))
	for i := range chunks {
		chunks[i] = ^uint(0)
	}
	if rest := n & (IntSize - 1); rest != 0 {
		chunks[len(chunks)-1] = (uint(1) << uint(rest)) - 1
	}
	return Set{chunks}
}

func chunkCount(maxItem int) int {
	return (maxItem >> IntSizeShift) + 1
}

func bitMask(item int) uint {
	return 1 << (uint(item) & (IntSize - 1))
}

func (s Set) grown(maxItem int) []uint {
	cnt := chunkCount(maxItem)
	if cnt < len(s.chunks) {
		cnt = len(s.chunks)
	}
	chunks := make([]uint, cnt)
	copy(chunks, s.chunks)
	return chunks
}

// With returns a set containing items of s and given items.
func (s Set) With(items ...int) Set {
	max := -1
	for _, item := range items {
		if item > max {
			max = item
		}
	}
	if max < 0 {
		return s
	}

	chunks := s.grown(max)
	for _, item := range items {
		if item >= 0 {
			chunks[item>>IntSizeShift] |= bitMask(item)
		}
	}
	return Set{chunks}
}

// Contains reports whether item belongs to s.
func (s Set) Contains(item int) bool {
	if item < 0 || item>>IntSizeShift >= len(s.chunks) {
		return false
	}

	return s.chunks[item>>IntSizeShift]&bitMask(item) != 0
}

// Len returns the number of items in s.
func (s Set) Len() int {
	result := 0
	for _, chunk := range s.chunks {
		result += bits.OnesCount(chunk)
	}
	return result
}

// IsEmpty reports whether s contains no items.
func (s Set) IsEmpty() bool {
	for _, chunk := range s.chunks {
		if chunk != 0 {
			return false
		}
	}

	return true
}

// ToSlice returns items of s in ascending order.
func (s Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	s.Each(func(item int) {
		result = append(result, item)
	})
	return result
}

// Each calls f for every item of s in ascending order.
func (s Set) Each(f func(item int)) {
	for i, chunk := range s.chunks {
		base := i << IntSizeShift
		for chunk != 0 {
			f(base + bits.TrailingZeros(chunk))
			chunk &= chunk - 1
		}
	}
}

// IsEqual reports whether s and t contain the same items.
func (s Set) IsEqual(t Set) bool {
	short, long := s.chunks, t.chunks
	if len(short) > len(long) {
		short, long = long, short
	}
	for i, chunk := range short {
		if chunk != long[i] {
			return false
		}
	}
	for _, chunk := range long[len(short):] {
		if chunk != 0 {
			return false
		}
	}
	return true
}

// Union returns a set containing items of both s and t.
func Union(s, t Set) Set {
	if len(s.chunks) < len(t.chunks) {
		s, t = t, s
	}
	chunks := make([]uint, len(s.chunks))
	copy(chunks, s.chunks)
	for i, chunk := range t.chunks {
		chunks[i] |= chunk
	}
	return Set{trim(chunks)}
}

// Intersect returns a set containing items present in both s and t.
func Intersect(s, t Set) Set {
	if len(s.chunks) > len(t.chunks) {
		s, t = t, s
	}
	chunks := make([]uint, len(s.chunks))
	for i, chunk := range s.chunks {
		chunks[i] = chunk & t.chunks[i]
	}
	return Set{trim(chunks)}
}

// Subtract returns a set containing items of s not present in t.
func Subtract(s, t Set) Set {
	chunks := make([]uint, len(s.chunks))
	copy(chunks, s.chunks)
	l := len(t.chunks)
	if l > len(chunks) {
		l = len(chunks)
	}
	for i := 0; i < l; i++ {
		chunks[i] &= ^t.chunks[i]
	}
	return Set{trim(chunks)}
}

func trim(chunks []uint) []uint {
	l := len(chunks)
	for l > 0 && chunks[l-1] == 0 {
		l--
	}
	return chunks[:l]
}

// String returns items of s formatted like "{1,2,5}".
func (s Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	s.Each(func(item int) {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.Itoa(item))
	})
	sb.WriteByte('}')
	return sb.String()
}
