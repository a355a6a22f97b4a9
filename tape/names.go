package tape

import (
	"slices"
	"strings"
)

// Names is a sorted set of tape names. Operations never modify their operands.
type Names []string

// NewNames creates a set of given names.
func NewNames(names ...string) Names {
	result := make(Names, 0, len(names))
	for _, n := range names {
		result = result.With(n)
	}
	return result
}

// Contains reports whether name belongs to ns.
func (ns Names) Contains(name string) bool {
	_, found := slices.BinarySearch(ns, name)
	return found
}

// With returns ns plus name.
func (ns Names) With(name string) Names {
	i, found := slices.BinarySearch(ns, name)
	if found {
		return ns
	}

	result := make(Names, 0, len(ns)+1)
	result = append(result, ns[:i]...)
	result = append(result, name)
	return append(result, ns[i:]...)
}

// Without returns ns minus name.
func (ns Names) Without(name string) Names {
	i, found := slices.BinarySearch(ns, name)
	if !found {
		return ns
	}

	result := make(Names, 0, len(ns)-1)
	result = append(result, ns[:i]...)
	return append(result, ns[i+1:]...)
}

// Union returns names present in either ns or other.
func (ns Names) Union(other Names) Names {
	result := ns
	for _, n := range other {
		result = result.With(n)
	}
	return result
}

// Minus returns names of ns not present in other.
func (ns Names) Minus(other Names) Names {
	result := make(Names, 0, len(ns))
	for _, n := range ns {
		if !other.Contains(n) {
			result = append(result, n)
		}
	}
	return result
}

// Rename replaces name from with name to if ns contains from.
func (ns Names) Rename(from, to string) Names {
	if from == to || !ns.Contains(from) {
		return ns
	}
	return ns.Without(from).With(to)
}

// Equal reports whether both sets contain the same names.
func (ns Names) Equal(other Names) bool {
	return slices.Equal(ns, other)
}

// Visible returns names that are not hidden.
func (ns Names) Visible() Names {
	result := make(Names, 0, len(ns))
	for _, n := range ns {
		if !IsHidden(n) {
			result = append(result, n)
		}
	}
	return result
}

func (ns Names) String() string {
	return "{" + strings.Join(ns, ",") + "}"
}
