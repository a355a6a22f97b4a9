package ints

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptySet(t *testing.T) {
	var s Set
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(0))
	assert.False(t, s.Contains(-1))
	assert.Equal(t, "{}", s.String())
	assert.True(t, s.IsEqual(NewSet()))
}

func TestWithIsNonDestructive(t *testing.T) {
	s := NewSet(1, 2)
	u := s.With(100)
	assert.False(t, s.Contains(100))
	assert.True(t, u.Contains(100))
	assert.Equal(t, []int{1, 2}, s.ToSlice())
	assert.Equal(t, []int{1, 2, 100}, u.ToSlice())
}

func TestNegativeItemsIgnored(t *testing.T) {
	s := NewSet(-5, 3)
	assert.Equal(t, []int{3}, s.ToSlice())
}

func TestRange(t *testing.T) {
	for _, n := range []int{0, 1, IntSize - 1, IntSize, IntSize + 1, 3*IntSize + 7} {
		t.Run(fmt.Sprintf("%d items", n), func(t *testing.T) {
			s := Range(n)
			require.Equal(t, n, s.Len())
			for i := 0; i < n; i++ {
				require.True(t, s.Contains(i), "item %d", i)
			}
			require.False(t, s.Contains(n))
		})
	}
}

func TestSetOperations(t *testing.T) {
	samples := []struct {
		s, t                   []int
		union, inter, subtract []int
	}{
		{[]int{}, []int{}, []int{}, []int{}, []int{}},
		{[]int{1}, []int{}, []int{1}, []int{}, []int{1}},
		{[]int{}, []int{1}, []int{1}, []int{}, []int{}},
		{[]int{1, 2, 3}, []int{2, 3, 4}, []int{1, 2, 3, 4}, []int{2, 3}, []int{1}},
		{[]int{1, 200}, []int{200}, []int{1, 200}, []int{200}, []int{1}},
		{[]int{0, 64, 128}, []int{1, 65, 129}, []int{0, 1, 64, 65, 128, 129}, []int{}, []int{0, 64, 128}},
		{[]int{300}, []int{1, 2}, []int{1, 2, 300}, []int{}, []int{300}},
	}

	for i, sample := range samples {
		t.Run(fmt.Sprintf("sample %d", i), func(t *testing.T) {
			s := NewSet(sample.s...)
			u := NewSet(sample.t...)
			assert.Equal(t, sample.union, Union(s, u).ToSlice())
			assert.Equal(t, sample.inter, Intersect(s, u).ToSlice())
			assert.Equal(t, sample.subtract, Subtract(s, u).ToSlice())
			assert.Equal(t, sample.s, s.ToSlice())
			assert.Equal(t, sample.t, u.ToSlice())
		})
	}
}

func TestIsEqualIgnoresTrailingChunks(t *testing.T) {
	s := NewSet(1, 500)
	u := Subtract(s, NewSet(500))
	assert.True(t, u.IsEqual(NewSet(1)))
	assert.True(t, NewSet(1).IsEqual(u))
	assert.False(t, s.IsEqual(u))
	assert.True(t, Intersect(NewSet(200), NewSet(3)).IsEmpty())
}

func TestString(t *testing.T) {
	assert.Equal(t, "{0,7,70}", NewSet(70, 0, 7).String())
}
