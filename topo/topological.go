package topo

import (
	"context"
	"errors"
	"fmt"
)

// ErrCycleDetected is returned when Sort finds a back-edge: the outer DAG
// of ACs is supposed to be acyclic by construction, so this signals a
// fatal invariant violation rather than a recoverable condition.
var ErrCycleDetected = errors.New("topo: cycle detected")

// Graph is the minimal surface Sort needs: a set of node identifiers and,
// for each, its outgoing edges (children before parents in the result).
type Graph interface {
	Nodes() []int
	Children(id int) []int
}

const (
	white = iota
	gray
	black
)

// Option configures Sort.
type Option func(*options)

type options struct {
	ctx context.Context
}

// WithContext enables cancellation of a long-running sort. A nil context
// is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// Sort returns g's nodes in dependency order: for every edge u→v (read "u
// holds a Memory node referencing v's value"), v appears before u in the
// result. This is the scheduler's required bottom-up, children-before-
// parents order — the raw DFS post-order, left unreversed because RC
// edges point from dependent to dependency rather than the other way
// around. Returns ErrCycleDetected if g contains a cycle.
func Sort(g Graph, opts ...Option) ([]int, error) {
	cfg := options{ctx: context.Background()}
	for _, o := range opts {
		o(&cfg)
	}

	nodes := g.Nodes()
	s := &sorter{
		g:     g,
		ctx:   cfg.ctx,
		state: make(map[int]int, len(nodes)),
		order: make([]int, 0, len(nodes)),
	}

	for _, n := range nodes {
		if s.state[n] == white {
			if err := s.visit(n); err != nil {
				return nil, err
			}
		}
	}

	return s.order, nil
}

type sorter struct {
	g     Graph
	ctx   context.Context
	state map[int]int
	order []int
}

func (s *sorter) visit(id int) error {
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
	}

	switch s.state[id] {
	case gray:
		return fmt.Errorf("%w: at node %d", ErrCycleDetected, id)
	case black:
		return nil
	}

	s.state[id] = gray
	for _, c := range s.g.Children(id) {
		if err := s.visit(c); err != nil {
			return err
		}
	}
	s.state[id] = black
	s.order = append(s.order, id)

	return nil
}
