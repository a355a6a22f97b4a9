package generate

import (
	"github.com/ava12/tapegen/expr"
)

// DefaultMaxChars is the default limit of characters written to all tapes of a single record.
const DefaultMaxChars = 100

// Options control a generation session. Zero fields take default values.
type Options struct {
	// Random switches to randomized depth-first traversal.
	Random bool
	// MaxRecursion limits nesting of each embedded symbol, expr.DefaultMaxRecursion if not positive.
	MaxRecursion int
	// MaxChars limits total number of characters in a record, DefaultMaxChars if not positive.
	MaxChars int
	// MaxResults limits number of records, 0 means no limit.
	MaxResults int
	// Seed initializes random traversal, 0 picks a random seed.
	Seed uint64
}

func (o Options) withDefaults() Options {
	if o.MaxRecursion <= 0 {
		o.MaxRecursion = expr.DefaultMaxRecursion
	}
	if o.MaxChars <= 0 {
		o.MaxChars = DefaultMaxChars
	}
	if o.MaxResults < 0 {
		o.MaxResults = 0
	}
	return o
}

func (o Options) mode() string {
	if o.Random {
		return modeRandom
	}
	return modeBFS
}
