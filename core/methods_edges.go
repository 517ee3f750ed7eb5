// File: methods_edges.go
// Role: Labeled edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/Labels/EdgeCount.
// Determinism:
//   - Labels() returns labels sorted ascending.
// Concurrency:
//   - Mutations under the write lock.
//   - Read queries under the read lock.

package core

// AddEdge inserts the labeled edge from→to, adding either endpoint if absent.
//
// Steps:
//  1. Validate IDs and label.
//  2. Reject a self-loop unless WithLoops() was given.
//  3. Lock, ensure both nodes, reject an identical (from, to, label) triple.
//  4. Insert the label into adjacency[from][to] and record from as a parent of to.
//
// A different label between the same ordered pair is accepted.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to, label string) error {
	if from == "" || to == "" {
		return ErrEmptyNodeID
	}
	if label == "" {
		return ErrEmptyLabel
	}
	if from == to && !g.allowLoops {
		return ErrLoopNotAllowed
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	ensureNode(g, from)
	child := ensureNode(g, to)

	if _, dup := g.adjacency[from][to][label]; dup {
		return ErrDuplicateEdge
	}
	ensureAdjacency(g, from, to)
	g.adjacency[from][to][label] = struct{}{}
	child.parents[from] = struct{}{}
	g.edgeCount++

	return nil
}

// RemoveEdge deletes the labeled edge from→to.
//
// Empty buckets are pruned immediately, and from stops being a parent of to
// once its last label towards to is gone.
//
// Complexity: O(1).
func (g *Graph) RemoveEdge(from, to, label string) error {
	if from == "" || to == "" {
		return ErrEmptyNodeID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.nodes[from] == nil || g.nodes[to] == nil {
		return ErrNodeNotFound
	}
	labels := g.adjacency[from][to]
	if _, ok := labels[label]; !ok {
		return ErrEdgeNotFound
	}
	delete(labels, label)
	g.edgeCount--
	if len(labels) == 0 {
		delete(g.adjacency[from], to)
		delete(g.nodes[to].parents, from)
		if len(g.adjacency[from]) == 0 {
			delete(g.adjacency, from)
		}
	}

	return nil
}

// HasEdge reports whether at least one labeled edge from→to exists.
// Complexity: O(1).
func (g *Graph) HasEdge(from, to string) bool {
	if from == "" || to == "" {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adjacency[from][to]) > 0
}

// Labels returns the labels on edges from→to, sorted ascending, or nil if
// there are none (including when either node is unknown).
//
// The returned slice is a fresh copy; mutating it does not affect the graph.
// Complexity: O(k log k) for k labels.
func (g *Graph) Labels(from, to string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return sortedKeys(g.adjacency[from][to])
}

// EdgeCount returns the number of stored (from, to, label) triples.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeCount
}

// ensureAdjacency allocates the nested buckets for from→to.
// Must be called ONLY under the write lock.
func ensureAdjacency(g *Graph, from, to string) {
	if g.adjacency[from] == nil {
		g.adjacency[from] = make(map[string]map[string]struct{})
	}
	if g.adjacency[from][to] == nil {
		g.adjacency[from][to] = make(map[string]struct{})
	}
}
