// Package generate enumerates records accepted by an expression.
//
// Generation is parsing: there is no separate recognizer, an input is parsed
// by generating from the expression filtered by the input literals.
//
// Two traversal strategies share the same derivative primitives.
// Breadth-first traversal yields records in order of non-decreasing total length,
// randomized traversal walks the derivative tree depth first choosing successors at random.
package generate

import (
	"log/slog"
	"math/rand/v2"

	"github.com/gammazero/deque"

	"github.com/ava12/tapegen/expr"
	"github.com/ava12/tapegen/internal/log"
	"github.com/ava12/tapegen/internal/queue"
	"github.com/ava12/tapegen/tape"
)

// yieldChance is the probability of yielding a pooled candidate at every randomized step.
const yieldChance = 0.2

type item struct {
	tapes  []tape.Tape
	output *Output
	expr   expr.Expr
	chars  int
}

// Generator lazily produces records of an expression.
type Generator struct {
	opts    Options
	mode    string
	env     *expr.Env
	step    func() bool
	pending []Record
	record  Record
	emitted int
	err     error
	done    bool

	current, next *queue.Queue[item]

	stack deque.Deque[item]
	pool  deque.Deque[*Output]
	rnd   *rand.Rand
}

// New creates a generator of records of e.
// Every tape of e is traversed along with given tapes, all of them must be present in coll.
// Vocabularies of coll tapes must be complete, see expr.CollectVocab.
// Errors are reported by Err once Next returns false.
func New(e expr.Expr, tapes tape.Names, coll tape.Collection, symbols *expr.SymbolTable, opts Options) *Generator {
	opts = opts.withDefaults()
	g := &Generator{
		opts: opts,
		mode: opts.mode(),
		env:  expr.NewEnv(coll, symbols, opts.MaxRecursion),
	}

	tapes = tape.NewNames(tapes...).Union(e.Tapes())
	ts := make([]tape.Tape, 0, len(tapes))
	for _, name := range tapes {
		t, err := coll.Tape(name)
		if err != nil {
			g.err = err
			g.done = true
			return g
		}
		ts = append(ts, t)
	}

	start := item{tapes: ts, expr: e}
	if opts.Random {
		seed := opts.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		g.rnd = rand.New(rand.NewPCG(seed, ^seed))
		g.stack.PushBack(start)
		g.step = g.stepRandom
	} else {
		g.current = queue.New(start)
		g.next = queue.New[item]()
		g.step = g.stepBFS
	}

	if log.Enabled(slog.LevelDebug) {
		log.DebugS("generation started", "mode", g.mode, "tapes", tapes.String(), "expr", e.ID())
	}
	return g
}

// Generate collects all records of e using a fresh tape collection.
func Generate(e expr.Expr, symbols *expr.SymbolTable, opts Options) ([]Record, error) {
	coll := tape.NewCollection()
	expr.CollectVocab(e, coll, symbols)
	return New(e, nil, coll, symbols, opts).Collect()
}

// Next advances to the next record. It returns false when generation is complete or failed.
func (g *Generator) Next() bool {
	g.record = nil
	for len(g.pending) == 0 {
		if g.done {
			return false
		}

		more := g.step()
		if err := g.env.Err(); err != nil {
			g.err = err
			g.pending = nil
			g.finish()
			return false
		}
		if !more {
			g.finish()
		}
	}

	g.record, g.pending = g.pending[0], g.pending[1:]
	g.emitted++
	recordsEmitted.WithLabelValues(g.mode).Inc()
	if g.opts.MaxResults > 0 && g.emitted >= g.opts.MaxResults {
		g.pending = nil
		g.finish()
	}
	return true
}

// Record returns the record produced by the last successful Next call.
func (g *Generator) Record() Record {
	return g.record
}

// Err returns the error that stopped generation, if any.
func (g *Generator) Err() error {
	return g.err
}

// Count returns the number of records produced so far.
func (g *Generator) Count() int {
	return g.emitted
}

// Collect returns all remaining records.
func (g *Generator) Collect() ([]Record, error) {
	var result []Record
	for g.Next() {
		result = append(result, g.Record())
	}
	return result, g.Err()
}

func (g *Generator) finish() {
	if g.done {
		return
	}

	g.done = true
	log.DebugS("generation finished", "mode", g.mode, "records", g.emitted)
}

// successors derives it on its head tape.
// Delta successors keep the character count and close the head tape,
// derivative successors consume a character and move the head tape to the end of the list.
// An item with no tapes left has at most one successor, Epsilon if it accepts.
func (g *Generator) successors(it item) (closed, consumed []item) {
	statesExpanded.WithLabelValues(g.mode).Inc()
	if len(it.tapes) == 0 {
		if d := expr.Close(it.expr, g.env); expr.IsEpsilon(d) {
			closed = append(closed, item{nil, it.output, d, it.chars})
		}
		return closed, nil
	}

	head := it.tapes[0]
	if d := it.expr.Delta(head, g.env); !expr.IsNull(d) {
		closed = append(closed, item{it.tapes[1:], it.output, d, it.chars})
	}

	if it.chars >= g.opts.MaxChars {
		branchesPruned.WithLabelValues(g.mode).Inc()
		return closed, nil
	}

	rotated := make([]tape.Tape, 0, len(it.tapes))
	rotated = append(append(rotated, it.tapes[1:]...), head)
	for _, tr := range expr.DisjointDeriv(it.expr, head, tape.Any, g.env) {
		if expr.IsNull(tr.Next) {
			continue
		}
		consumed = append(consumed, item{rotated, it.output.Add(head, tr.Token), tr.Next, it.chars + 1})
	}
	return closed, consumed
}

// stepBFS processes one work item. Items consuming a character go to the next round,
// so every record of a round has the same total length.
func (g *Generator) stepBFS() bool {
	if g.current.IsEmpty() {
		if g.next.IsEmpty() {
			return false
		}
		g.current, g.next = g.next, g.current
	}

	it, _ := g.current.First()
	if expr.IsEpsilon(it.expr) {
		g.pending = append(g.pending, it.output.Records()...)
		return true
	}

	closed, consumed := g.successors(it)
	g.current.Append(closed...)
	g.next.Append(consumed...)
	return true
}

// stepRandom processes one work item depth first or yields a pooled candidate.
// Candidates left in the pool when the stack is exhausted are yielded in random order.
func (g *Generator) stepRandom() bool {
	if g.pool.Len() > 0 && (g.stack.Len() == 0 || g.rnd.Float64() < yieldChance) {
		g.yieldCandidate()
		return true
	}
	if g.stack.Len() == 0 {
		return false
	}

	it := g.stack.PopBack()
	if expr.IsEpsilon(it.expr) {
		g.pool.PushBack(it.output)
		return true
	}

	closed, consumed := g.successors(it)
	items := append(closed, consumed...)
	g.rnd.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	for _, next := range items {
		g.stack.PushBack(next)
	}
	return true
}

func (g *Generator) yieldCandidate() {
	i := g.rnd.IntN(g.pool.Len())
	last := g.pool.Len() - 1
	out := g.pool.At(i)
	g.pool.Set(i, g.pool.At(last))
	g.pool.PopBack()

	if r, ok := out.RandomRecord(g.rnd); ok {
		g.pending = append(g.pending, r)
	}
}
