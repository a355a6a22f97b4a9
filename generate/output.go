package generate

import (
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"github.com/ava12/tapegen/tape"
)

// Record maps tape names to generated text. Hidden tapes are never present.
type Record map[string]string

// String formats r like {t1:"hello", t2:"world"} with tapes sorted by name.
func (r Record) String() string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name + ":" + strconv.Quote(r[name]))
	}
	sb.WriteByte('}')
	return sb.String()
}

type tokenNode struct {
	token tape.Token
	prev  *tokenNode
	size  int
}

type branch struct {
	tape tape.Tape
	last *tokenNode
}

// Output is a persistent accumulator of tokens written to every tape.
// Add never modifies its receiver, so outputs of sibling branches share their common prefix.
// The zero value and nil are both valid empty outputs.
type Output struct {
	branches []branch
}

// Add returns output with tok appended to tape t.
func (o *Output) Add(t tape.Tape, tok tape.Token) *Output {
	var branches []branch
	if o != nil {
		branches = o.branches
	}

	name := t.Name()
	i := sort.Search(len(branches), func(i int) bool {
		return branches[i].tape.Name() >= name
	})

	result := make([]branch, len(branches), len(branches)+1)
	copy(result, branches)
	if i < len(result) && result[i].tape.Name() == name {
		last := result[i].last
		result[i].last = &tokenNode{tok, last, last.size + 1}
	} else {
		result = append(result, branch{})
		copy(result[i+1:], result[i:])
		result[i] = branch{t, &tokenNode{tok, nil, 1}}
	}
	return &Output{result}
}

// Len returns the number of tokens written to all tapes.
func (o *Output) Len() int {
	if o == nil {
		return 0
	}

	result := 0
	for _, b := range o.branches {
		result += b.last.size
	}
	return result
}

func (b branch) tokens() []tape.Token {
	result := make([]tape.Token, b.last.size)
	for n := b.last; n != nil; n = n.prev {
		result[n.size-1] = n.token
	}
	return result
}

// Records expands output to records, every character of every token is taken in turn.
// A token matching no character of its tape yields no records at all.
func (o *Output) Records() []Record {
	result := []Record{{}}
	if o == nil {
		return result
	}

	for _, b := range o.branches {
		if tape.IsHidden(b.tape.Name()) {
			continue
		}

		texts := []string{""}
		for _, tok := range b.tokens() {
			chars := b.tape.Chars(tok)
			next := make([]string, 0, len(texts)*len(chars))
			for _, text := range texts {
				for _, c := range chars {
					next = append(next, text+c)
				}
			}
			texts = next
		}

		records := make([]Record, 0, len(result)*len(texts))
		for _, r := range result {
			for _, text := range texts {
				nr := make(Record, len(r)+1)
				for k, v := range r {
					nr[k] = v
				}
				nr[b.tape.Name()] = text
				records = append(records, nr)
			}
		}
		result = records
	}
	return result
}

// RandomRecord expands output to a single record choosing one character of every token at random.
// The second result is false if some token matches no character.
func (o *Output) RandomRecord(rnd *rand.Rand) (Record, bool) {
	result := Record{}
	if o == nil {
		return result, true
	}

	for _, b := range o.branches {
		if tape.IsHidden(b.tape.Name()) {
			continue
		}

		var sb strings.Builder
		for _, tok := range b.tokens() {
			chars := b.tape.Chars(tok)
			if len(chars) == 0 {
				return nil, false
			}
			sb.WriteString(chars[rnd.IntN(len(chars))])
		}
		result[b.tape.Name()] = sb.String()
	}
	return result, true
}
