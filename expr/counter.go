package expr

import (
	"strconv"
	"strings"
)

// DefaultMaxRecursion is the default nesting limit for an embedded symbol.
const DefaultMaxRecursion = 4

type counterEntry struct {
	key   string
	count int
}

// CounterStack maps symbol names to recursion counts in insertion order.
// It is a value: Add returns a new stack and leaves the original untouched.
type CounterStack struct {
	entries []counterEntry
	max     int
}

// NewCounterStack creates an empty stack with given maximum, negative maximum means DefaultMaxRecursion.
func NewCounterStack(max int) CounterStack {
	if max < 0 {
		max = DefaultMaxRecursion
	}
	return CounterStack{max: max}
}

// Max returns the maximum count.
func (cs CounterStack) Max() int {
	return cs.max
}

// Get returns the count for key, 0 if key was never added.
func (cs CounterStack) Get(key string) int {
	for _, e := range cs.entries {
		if e.key == key {
			return e.count
		}
	}
	return 0
}

// Add returns a stack with the count for key incremented.
func (cs CounterStack) Add(key string) CounterStack {
	entries := make([]counterEntry, len(cs.entries), len(cs.entries)+1)
	copy(entries, cs.entries)
	for i := range entries {
		if entries[i].key == key {
			entries[i].count++
			return CounterStack{entries, cs.max}
		}
	}
	return CounterStack{append(entries, counterEntry{key, 1}), cs.max}
}

// ExceedsMax reports whether key has already been entered the maximum number of times.
func (cs CounterStack) ExceedsMax(key string) bool {
	return cs.Get(key) >= cs.max
}

// Keys returns keys in order of first addition.
func (cs CounterStack) Keys() []string {
	result := make([]string, len(cs.entries))
	for i, e := range cs.entries {
		result[i] = e.key
	}
	return result
}

// Key returns a string identifying the maximum and all counts of cs.
func (cs CounterStack) Key() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(cs.max))
	for _, e := range cs.entries {
		sb.WriteString("," + e.key + ":" + strconv.Itoa(e.count))
	}
	return sb.String()
}
