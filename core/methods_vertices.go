// File: methods_vertices.go
// Role: Node lifecycle & queries.
//
// Determinism:
//   - Nodes(), Children(), Parents() return IDs sorted lexicographically ascending.
//
// Concurrency:
//   - Mutations under the write lock, queries under the read lock.
package core

import "sort"

// AddNode inserts an isolated node.
//
// Implementation:
//   - Stage 1: Validate non-empty ID (ErrEmptyNodeID).
//   - Stage 2: Under the write lock, reject a present ID (ErrNodeExists).
//   - Stage 3: Register the node with an empty parent set.
//
// Behavior highlights:
//   - A rejected insert leaves the graph untouched, so callers that only need
//     presence can ignore ErrNodeExists.
//
// Complexity:
//   - Time O(1) amortized, Space O(1).
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[id]; exists {
		return ErrNodeExists
	}
	ensureNode(g, id)

	return nil
}

// HasNode reports whether the node ID exists (empty ID ⇒ false).
// Complexity: O(1).
func (g *Graph) HasNode(id string) bool {
	if id == "" {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[id]

	return ok
}

// RemoveNode deletes a node together with all of its outgoing and incoming edges.
//
// Implementation:
//   - Stage 1: Validate ID and presence.
//   - Stage 2: For every child, drop the child's parent link and count the labels removed.
//   - Stage 3: For every parent, delete the parent→id bucket and prune the parent's
//     adjacency entry if it became empty.
//   - Stage 4: Delete the node record.
//
// Errors:
//   - ErrEmptyNodeID: if id == "".
//   - ErrNodeNotFound: if the node does not exist.
//
// Complexity:
//   - Time O(out(v) + in(v)), Space O(1).
func (g *Graph) RemoveNode(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	n, exists := g.nodes[id]
	if !exists {
		return ErrNodeNotFound
	}

	// Outgoing edges.
	var to string
	var labels map[string]struct{}
	for to, labels = range g.adjacency[id] {
		g.edgeCount -= len(labels)
		if child := g.nodes[to]; child != nil {
			delete(child.parents, id)
		}
	}
	delete(g.adjacency, id)

	// Incoming edges. A self-loop was already dropped with the outgoing bucket.
	var from string
	for from = range n.parents {
		if from == id {
			continue
		}
		g.edgeCount -= len(g.adjacency[from][id])
		delete(g.adjacency[from], id)
		if len(g.adjacency[from]) == 0 {
			delete(g.adjacency, from)
		}
	}

	delete(g.nodes, id)

	return nil
}

// Nodes returns all node IDs in lexicographic ascending order.
// Complexity: O(V log V).
func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]string, 0, len(g.nodes))
	var id string
	for id = range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// NodeCount returns the current number of nodes.
// Complexity: O(1).
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.nodes)
}

// Children returns the IDs that id has at least one outgoing edge to, sorted
// ascending. It returns nil when id is unknown or has no outgoing edges.
// Complexity: O(d log d).
func (g *Graph) Children(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return sortedKeys(g.adjacency[id])
}

// Parents returns the IDs with at least one edge into id, sorted ascending.
// It returns nil when id is unknown or has no incoming edges.
// Complexity: O(d log d).
func (g *Graph) Parents(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := g.nodes[id]
	if n == nil {
		return nil
	}

	return sortedKeys(n.parents)
}

// ensureNode registers id if missing. Must be called under the write lock.
func ensureNode(g *Graph, id string) *node {
	n := g.nodes[id]
	if n == nil {
		n = &node{id: id, parents: make(map[string]struct{})}
		g.nodes[id] = n
	}

	return n
}

// sortedKeys returns the keys of m sorted ascending, or nil when m is empty.
func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
