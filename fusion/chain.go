package fusion

import (
	"context"
	"fmt"

	"github.com/katalvlaran/personafuse/persona"
)

// Step is one fusion on a chain: From x Partner = Result.
type Step struct {
	From    persona.Entity
	Partner persona.Entity
	Result  persona.Entity
}

// ChainOption configures Chain.
type ChainOption func(*chainOptions)

type chainOptions struct {
	maxSteps int
	partner  func(persona.Entity) bool

	// err is recorded by a bad option and surfaced by Chain.
	err error
}

// WithMaxSteps stops the search after n fusions. 0 means no limit; a
// negative n makes Chain return ErrBadOption.
func WithMaxSteps(n int) ChainOption {
	return func(o *chainOptions) {
		if n < 0 {
			o.err = fmt.Errorf("%w: max steps cannot be negative (%d)", ErrBadOption, n)
			return
		}
		o.maxSteps = n
	}
}

// WithPartnerFilter restricts the partners a chain may use. fn receives a
// copy of the candidate partner and returns false to skip it.
func WithPartnerFilter(fn func(persona.Entity) bool) ChainOption {
	return func(o *chainOptions) {
		if fn != nil {
			o.partner = fn
		}
	}
}

// link is the BFS parent record: how a persona was first reached.
type link struct {
	from, partner string
}

type chainItem struct {
	name  string
	depth int
}

// Chain finds a shortest sequence of two-persona fusions turning from into
// to, where each step fuses the previous result with some partner. from ==
// to yields an empty chain.
//
// Implementation:
//   - Breadth-first over the fusion graph: the successors of a persona are
//     the labels on its outgoing edges.
//   - Partners and labels are visited in sorted order, so the chain returned
//     among equally short ones is deterministic.
//   - The context is checked once per dequeued persona.
//
// Complexity: O(V + E) over the fusion graph.
//
// Errors: ErrPersonaNotFound, ErrBadOption, ErrNoChain, or ctx.Err().
func (e *Engine) Chain(ctx context.Context, from, to string, opts ...ChainOption) ([]Step, error) {
	o := chainOptions{partner: func(persona.Entity) bool { return true }}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if _, err := e.lookup(from); err != nil {
		return nil, err
	}
	if _, err := e.lookup(to); err != nil {
		return nil, err
	}
	if from == to {
		return []Step{}, nil
	}

	parent := map[string]link{}
	seen := map[string]bool{from: true}
	queue := []chainItem{{name: from}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cur := queue[0]
		queue = queue[1:]
		if o.maxSteps > 0 && cur.depth >= o.maxSteps {
			continue
		}

		for _, partner := range e.fusions.Children(cur.name) {
			if !o.partner(mustClone(e, partner)) {
				continue
			}
			for _, result := range e.fusions.Labels(cur.name, partner) {
				if seen[result] {
					continue
				}
				seen[result] = true
				parent[result] = link{from: cur.name, partner: partner}
				if result == to {
					return e.unwind(parent, from, to), nil
				}
				queue = append(queue, chainItem{name: result, depth: cur.depth + 1})
			}
		}
	}

	return nil, fmt.Errorf("%w: %s to %s", ErrNoChain, from, to)
}

// unwind follows parent links back from to and returns the steps in order.
func (e *Engine) unwind(parent map[string]link, from, to string) []Step {
	var steps []Step
	for cur := to; cur != from; {
		l := parent[cur]
		steps = append(steps, Step{
			From:    mustClone(e, l.from),
			Partner: mustClone(e, l.partner),
			Result:  mustClone(e, cur),
		})
		cur = l.from
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}

	return steps
}

// mustClone copies a persona the fusion graph already names, so the lookup
// cannot fail.
func mustClone(e *Engine, name string) persona.Entity {
	p, _ := e.cat.Persona(name)
	return p.Clone()
}
