// File: methods_clone.go
// Role: Cloning and clearing graph instances.
// Concurrency:
//   - Read lock for snapshotting; no mutation of the source graph.

package core

// Clone returns a deep copy of the Graph: policy, nodes, reverse links and
// labeled adjacency. The clone shares no maps with the source.
//
// Complexity: O(V + E)
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	clone := &Graph{
		allowLoops: g.allowLoops,
		nodes:      make(map[string]*node, len(g.nodes)),
		adjacency:  make(map[string]map[string]map[string]struct{}, len(g.adjacency)),
		edgeCount:  g.edgeCount,
	}

	var id, parent string
	var n *node
	for id, n = range g.nodes {
		cn := &node{id: id, parents: make(map[string]struct{}, len(n.parents))}
		for parent = range n.parents {
			cn.parents[parent] = struct{}{}
		}
		clone.nodes[id] = cn
	}

	var from, to, label string
	var toMap map[string]map[string]struct{}
	var labels map[string]struct{}
	for from, toMap = range g.adjacency {
		for to, labels = range toMap {
			ensureAdjacency(clone, from, to)
			for label = range labels {
				clone.adjacency[from][to][label] = struct{}{}
			}
		}
	}

	return clone
}

// Clear resets the graph to an empty state while preserving the loop policy.
//
// Complexity: O(1) for map reallocation.
// Concurrency: acquires the write lock.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes = make(map[string]*node)
	g.adjacency = make(map[string]map[string]map[string]struct{})
	g.edgeCount = 0
}
