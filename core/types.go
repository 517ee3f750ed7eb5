// Package core defines the labeled Graph type and its sentinel errors.
//
// All core APIs use a single sync.RWMutex: mutations take the write lock,
// queries take the read lock. Graphs that are fully built before being shared
// can therefore be read from any number of goroutines.
//
// Errors:
//
//	ErrEmptyNodeID    - node ID is the empty string.
//	ErrEmptyLabel     - edge label is the empty string.
//	ErrNodeExists     - node is already present.
//	ErrNodeNotFound   - requested node does not exist.
//	ErrEdgeNotFound   - requested edge does not exist.
//	ErrDuplicateEdge  - identical labeled edge already present.
//	ErrLoopNotAllowed - self-loop when loops are disabled.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyNodeID indicates that the provided node ID is empty.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrEmptyLabel indicates that the provided edge label is empty.
	ErrEmptyLabel = errors.New("core: edge label is empty")

	// ErrNodeExists indicates an insertion of a node that is already present.
	ErrNodeExists = errors.New("core: node already present")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent labeled edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrDuplicateEdge indicates the (from, to, label) triple is already present.
	ErrDuplicateEdge = errors.New("core: duplicate labeled edge")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")
)

// node is the per-vertex record. parents holds every node with at least one
// edge pointing here, so removals can unlink incoming edges in O(deg).
type node struct {
	id      string
	parents map[string]struct{}
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithLoops permits self-loops (edges from a node to itself).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// GraphStats is a read-only snapshot of a Graph's size and policy.
type GraphStats struct {
	NodeCount   int
	EdgeCount   int
	AllowsLoops bool
}

// Graph is a directed labeled multigraph.
//
// mu guards every field below it. edgeCount is the number of distinct
// (from, to, label) triples currently stored.
type Graph struct {
	mu sync.RWMutex

	allowLoops bool // allow self-loops

	nodes     map[string]*node
	edgeCount int

	// adjacency[from][to][label] = struct{}{}
	adjacency map[string]map[string]map[string]struct{}
}

// NewGraph creates an empty Graph with the given options.
// By default self-loops are rejected.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		nodes:     make(map[string]*node),
		adjacency: make(map[string]map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Looped reports whether self-loops are permitted by policy.
func (g *Graph) Looped() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.allowLoops
}

// Stats returns a snapshot of node/edge counts and the loop policy.
// Complexity: O(1).
func (g *Graph) Stats() *GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return &GraphStats{
		NodeCount:   len(g.nodes),
		EdgeCount:   g.edgeCount,
		AllowsLoops: g.allowLoops,
	}
}
