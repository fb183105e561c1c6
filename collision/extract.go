package collision

import (
	"cmp"
	"context"
	"slices"
)

// Result is the outcome of one extraction.
type Result struct {
	// Loops are closed boundary loops, each with the occupied region on the
	// right-hand side of travel (y-down), so outer loops have positive signed
	// area and holes negative.
	Loops []Loop
	// Incomplete counts loops abandoned because a corner could not be
	// connected within the attempt budget. Their corners are discarded.
	Incomplete int
	// Degenerate counts loops that closed with fewer than three points.
	Degenerate int
}

// Complete reports whether every corner ended up in an emitted loop.
func (r Result) Complete() bool {
	return r.Incomplete == 0 && r.Degenerate == 0
}

type options struct {
	budget int
}

// Option configures ExtractBoundariesContext.
type Option func(*options)

// WithAttemptBudget caps the connection attempts spent on a single loop.
// Values <= 0 select the default of max(corners^2, 16).
func WithAttemptBudget(n int) Option {
	return func(o *options) {
		o.budget = n
	}
}

// ExtractBoundaries traces the boundary loops of the occupied region.
func ExtractBoundaries(occ Occupancy) Result {
	res, _ := ExtractBoundariesContext(context.Background(), occ)
	return res
}

// ExtractBoundariesContext is ExtractBoundaries with cancellation, checked
// between loops. On cancellation the loops finished so far are returned
// together with ctx.Err().
func ExtractBoundariesContext(ctx context.Context, occ Occupancy, opts ...Option) (Result, error) {
	var res Result
	if len(occ) == 0 {
		return res, nil
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	t := newTracer(occ)
	budget := o.budget
	if budget <= 0 {
		budget = max(len(t.entries)*len(t.entries), 16)
	}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		start, ok := t.nextStart()
		if !ok {
			break
		}
		loop, status := t.trace(start, budget)
		switch status {
		case traceClosed:
			res.Loops = append(res.Loops, loop)
		case traceDegenerate:
			res.Degenerate++
		default:
			res.Incomplete++
		}
	}
	return res, nil
}

type traceStatus int

const (
	traceClosed traceStatus = iota
	traceDegenerate
	traceAbandoned
)

// tracer owns the corner work-set of one extraction. Entries are consumed by
// flag so the set is never mutated while being scanned.
type tracer struct {
	occ      Occupancy
	entries  []cornerEntry
	consumed []bool
	at       map[Corner][]int
	cursor   int
}

func newTracer(occ Occupancy) *tracer {
	seen := make(map[Corner]struct{}, len(occ)*2)
	var entries []cornerEntry
	for c := range occ {
		for _, k := range [4]Corner{
			{X: c.X, Y: c.Y},
			{X: c.X + 1, Y: c.Y},
			{X: c.X, Y: c.Y + 1},
			{X: c.X + 1, Y: c.Y + 1},
		} {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			if m := quadrants(occ, k); isCornerMask(m) {
				entries = append(entries, cornerEntries(k, m)...)
			}
		}
	}

	slices.SortFunc(entries, func(a, b cornerEntry) int {
		if c := cmp.Compare(a.at.Y, b.at.Y); c != 0 {
			return c
		}
		if c := cmp.Compare(a.at.X, b.at.X); c != 0 {
			return c
		}
		return cmp.Compare(a.out, b.out)
	})

	at := make(map[Corner][]int, len(entries))
	for i, e := range entries {
		at[e.at] = append(at[e.at], i)
	}

	return &tracer{
		occ:      occ,
		entries:  entries,
		consumed: make([]bool, len(entries)),
		at:       at,
	}
}

// nextStart returns the first unconsumed entry in (y, x) order.
func (t *tracer) nextStart() (int, bool) {
	for t.cursor < len(t.entries) && t.consumed[t.cursor] {
		t.cursor++
	}
	if t.cursor >= len(t.entries) {
		return -1, false
	}
	return t.cursor, true
}

// follow walks the straight run leaving e and returns the corner that ends it.
func (t *tracer) follow(e cornerEntry) (Corner, bool) {
	c := e.at
	for {
		if !boundaryEdge(t.occ, c, e.out) {
			return c, false
		}
		c = e.out.step(c)
		m := quadrants(t.occ, c)
		if isCornerMask(m) {
			return c, true
		}
		if !isStraightMask(m) {
			return c, false
		}
	}
}

// link returns the entry that continues the outline after entry i, whether or
// not it has been consumed.
func (t *tracer) link(i int) (int, bool) {
	e := t.entries[i]
	c, ok := t.follow(e)
	if !ok {
		return -1, false
	}
	want := e.out.reverse()
	for _, j := range t.at[c] {
		if t.entries[j].in == want {
			return j, true
		}
	}
	return -1, false
}

func (t *tracer) trace(start, budget int) (Loop, traceStatus) {
	t.consumed[start] = true
	path := []int{start}
	cur := start

	for attempts := 0; ; attempts++ {
		if attempts >= budget {
			return nil, traceAbandoned
		}
		next, ok := t.link(cur)
		if !ok || t.consumed[next] {
			return nil, traceAbandoned
		}
		t.consumed[next] = true
		path = append(path, next)
		cur = next

		if closing, ok := t.link(cur); ok && closing == start {
			if len(path) < 3 {
				return nil, traceDegenerate
			}
			loop := make(Loop, len(path))
			for i, idx := range path {
				loop[i] = t.entries[idx].at.Point()
			}
			return loop, traceClosed
		}
	}
}
