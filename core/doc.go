// Package core provides a small, thread-safe, directed labeled multigraph
// keyed by string node IDs.
//
// The Graph G = (V, E) stores edges as (from, to, label) triples:
//
//   - Constant-time edge operations via nested maps:
//     adjacency[from][to][label] = struct{}{}
//   - Reverse adjacency per node (who points at me) so RemoveNode can unlink
//     incoming edges without scanning the whole graph.
//   - Several distinct labels may connect the same ordered pair; an identical
//     (from, to, label) triple is rejected with ErrDuplicateEdge.
//   - Self-loops are rejected unless the graph was built WithLoops().
//
// The structure is domain-agnostic. personafuse uses it twice: once with
// persona names as nodes and the fused persona's name as the label, and once
// with arcana names as nodes and the resulting arcana as the label.
//
// Core Methods:
//
//	// Node lifecycle
//	AddNode(id string) error                 // O(1)
//	HasNode(id string) bool                  // O(1)
//	RemoveNode(id string) error              // O(deg(v))
//
//	// Edge lifecycle
//	AddEdge(from, to, label string) error    // O(1)†
//	RemoveEdge(from, to, label string) error // O(1)
//	HasEdge(from, to string) bool            // O(1)
//
//	// Query
//	Labels(from, to string) []string         // O(k·log k), sorted copy or nil
//	Children(id string) []string             // O(d·log d), sorted copy or nil
//	Parents(id string) []string              // O(d·log d), sorted copy or nil
//	Nodes() []string                         // O(V·log V)
//	NodeCount() int, EdgeCount() int         // O(1)
//
//	// Maintenance
//	Clone() *Graph                           // O(V+E) deep copy
//	Clear()                                  // O(1)
//
// Invariant: no node appears as a key of the adjacency map with an empty edge
// set; buckets are pruned as soon as their last label is removed.
//
// Errors:
//
//	ErrEmptyNodeID    – zero-length node ID
//	ErrEmptyLabel     – zero-length edge label
//	ErrNodeExists     – AddNode on a present node
//	ErrNodeNotFound   – missing node
//	ErrEdgeNotFound   – missing (from, to, label) triple
//	ErrDuplicateEdge  – identical (from, to, label) triple already present
//	ErrLoopNotAllowed – self-loop when loops are disabled
//
// † amortized: nested-map insertion plus reverse-adjacency bookkeeping.
package core
