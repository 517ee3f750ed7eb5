// Package core_test contains test helpers for personafuse/core.
//
// Purpose:
//   - Provide small, deterministic fixtures and assertion utilities for core.Graph.
//   - Keep the method-contract tests stdlib-only; testify is used where suites help.
//   - Enforce concurrency-safe testing patterns (no *testing.T usage inside goroutines).

package core_test

import (
	"errors"
	"sort"
	"testing"

	"github.com/katalvlaran/personafuse/core"
)

// Common node IDs used across core tests.
const (
	NodeEmpty = ""

	NodeA = "A"
	NodeB = "B"
	NodeC = "C"
	NodeD = "D"

	NodeX = "X"
)

// Common labels used across core tests.
const (
	LabelEmpty = ""
	LabelL1    = "L1"
	LabelL2    = "L2"
	LabelL3    = "L3"
)

// Common concurrency sizes used across core tests.
const (
	NReaders = 50
	NCloners = 20
	NFanout  = 100
)

// NewDiamond RETURNS A→B, A→C, B→D, C→D labeled L1, plus a second label L2 on A→B.
//
// Shape:
//
//	    A
//	   / \
//	  B   C
//	   \ /
//	    D
func NewDiamond(t *testing.T) *core.Graph {
	t.Helper()

	g := core.NewGraph()
	MustNoError(t, g.AddEdge(NodeA, NodeB, LabelL1), "AddEdge(A,B,L1)")
	MustNoError(t, g.AddEdge(NodeA, NodeB, LabelL2), "AddEdge(A,B,L2)")
	MustNoError(t, g.AddEdge(NodeA, NodeC, LabelL1), "AddEdge(A,C,L1)")
	MustNoError(t, g.AddEdge(NodeB, NodeD, LabelL1), "AddEdge(B,D,L1)")
	MustNoError(t, g.AddEdge(NodeC, NodeD, LabelL1), "AddEdge(C,D,L1)")

	return g
}

// MustNoError FAILS the test if err != nil.
func MustNoError(t *testing.T, err error, op string) {
	t.Helper()

	if err == nil {
		return
	}

	t.Fatalf("%s: unexpected error: %v", op, err)
}

// MustErrorIs FAILS the test if !errors.Is(err, target).
// Use only for sentinel-style contracts (core.Err*).
func MustErrorIs(t *testing.T, err error, target error, op string) {
	t.Helper()

	if errors.Is(err, target) {
		return
	}

	t.Fatalf("%s: want errors.Is(err,%v)=true; got err=%v", op, target, err)
}

// MustTrue FAILS the test if cond is false.
func MustTrue(t *testing.T, cond bool, op string) {
	t.Helper()

	if cond {
		return
	}

	t.Fatalf("%s: want true; got false", op)
}

// MustFalse FAILS the test if cond is true.
func MustFalse(t *testing.T, cond bool, op string) {
	t.Helper()

	if !cond {
		return
	}

	t.Fatalf("%s: want false; got true", op)
}

// MustEqualInt FAILS the test if got != want.
func MustEqualInt(t *testing.T, got, want int, op string) {
	t.Helper()

	if got == want {
		return
	}

	t.Fatalf("%s: got %d; want %d", op, got, want)
}

// MustEqualStrings FAILS the test if got and want differ element-wise.
// A nil slice and an empty slice are NOT considered equal: nil is the
// documented "none" result of Labels/Children/Parents.
func MustEqualStrings(t *testing.T, got, want []string, op string) {
	t.Helper()

	if (got == nil) != (want == nil) || len(got) != len(want) {
		t.Fatalf("%s: got %#v; want %#v", op, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%s: got %#v; want %#v", op, got, want)
		}
	}
}

// MustSortedStrings FAILS the test if ids are not sorted ascending.
func MustSortedStrings(t *testing.T, ids []string, op string) {
	t.Helper()

	if sort.StringsAreSorted(ids) {
		return
	}

	t.Fatalf("%s: not sorted: %v", op, ids)
}
