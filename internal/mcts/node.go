// Package mcts implements a PUCT tree search arena driven by an
// externally supplied policy/value pair: the caller provides a function
// from position to (policy vector, value estimate) and this package owns
// everything about tree bookkeeping — selection, expansion, virtual loss,
// backpropagation, and subtree reuse across moves.
package mcts

import (
	"math"
	"sync/atomic"

	"github.com/hailam/minishogi/internal/shogi"
)

// cPUCTBase and cPUCTInit are the two constants of the AlphaZero/KataGo
// PUCT exploration term; c grows slowly with the child's own visit count
// (see Node.PUCT).
const (
	cPUCTBase = 19652.0
	cPUCTInit = 1.25
)

// Node is one vertex of the search tree, stored by value inside Arena's
// flat slice. Fields touched by concurrent selecting goroutines (N, w,
// VirtualLoss, used) are manipulated with atomics; everything else is
// written once under the single-writer expansion lock and read-only
// afterward.
type Node struct {
	Move   shogi.Move
	Parent uint32

	FirstChild  uint32
	NumChildren uint16

	P float32 // prior probability from the policy head, renormalized over legal moves
	V float32 // cached leaf value from the node's first expansion, for readout/debugging

	N           atomic.Uint32
	w           atomic.Uint64 // float64 bits; accumulated value from this node's own side-to-move perspective
	VirtualLoss atomic.Int32

	IsTerminal    bool
	TerminalValue float32

	used atomic.Bool // CAS gate: only one goroutine may expand a given node
}

// AddW atomically adds delta to the node's cumulative value sum.
func (n *Node) AddW(delta float64) {
	for {
		old := n.w.Load()
		sum := math.Float64frombits(old) + delta
		if n.w.CompareAndSwap(old, math.Float64bits(sum)) {
			return
		}
	}
}

// W returns the node's cumulative value sum.
func (n *Node) W() float64 {
	return math.Float64frombits(n.w.Load())
}

// TryExpand marks the node as being expanded by the calling goroutine.
// Only the first caller succeeds; all others must back off and retry
// selection, since expansion (populating FirstChild/NumChildren) is not
// itself atomic.
func (n *Node) TryExpand() bool {
	return n.used.CompareAndSwap(false, true)
}

// Expanded reports whether this node has children and is not a terminal
// position (terminal nodes are leaves forever).
func (n *Node) Expanded() bool {
	return n.NumChildren > 0 && !n.IsTerminal
}

// PUCT computes the exploration-weighted score of n as a child of a
// parent with parentN total visits, per the AlphaZero/KataGo PUCT
// variant (spec §4.F). A leaf another goroutine is already descending
// into (virtual loss present, no children of its own yet) scores 0 so a
// sibling is preferred instead of piling onto the same in-flight leaf.
func (n *Node) PUCT(parentN uint32) float32 {
	vl := float32(n.VirtualLoss.Load())
	if vl > 0 && !n.Expanded() {
		return 0
	}

	nf := float32(n.N.Load())

	c := float32(math.Log2(float64((1+nf+cPUCTBase)/cPUCTBase))) + cPUCTInit

	var q float32
	if nf+vl != 0 {
		q = 1 - float32(n.W()+float64(vl))/(nf+vl)
	}

	u := c * n.P * float32(math.Sqrt(float64(parentN))) / (1 + nf + vl)
	return q + u
}
