package mcts

import (
	"sync/atomic"
	"unsafe"

	"github.com/hailam/minishogi/internal/shogi"
)

// nodeSize is used to convert a caller-supplied memory budget (in
// gigabytes) into a node count, per spec §4.F.
var nodeSize = int(unsafe.Sizeof(Node{}))

// NullNode is the reserved sentinel index meaning "no parent" / "no node".
const NullNode uint32 = 0

// Arena is a flat, fixed-capacity pool of Nodes. Children are addressed
// by index into nodes, never by pointer, so the whole tree can be
// relocated (see AdvanceRoot) without chasing pointers.
type Arena struct {
	nodes []Node
	next  atomic.Uint32 // bump-allocator cursor; next free slot
	root  uint32
}

// NewArena allocates an arena sized from a memory budget in gigabytes.
// Node 0 is reserved as the null sentinel; slot 1 becomes the initial
// root.
func NewArena(budgetGB float64) *Arena {
	n := int(budgetGB * (1 << 30) / float64(nodeSize))
	if n < 2 {
		n = 2
	}
	a := &Arena{nodes: make([]Node, n)}
	a.next.Store(1)
	a.root = a.alloc()
	return a
}

// alloc claims the next free slot via a CAS bump allocator. Panics if the
// arena is exhausted — callers sized the budget to avoid this in normal
// operation; a full arena mid-search indicates the budget was set too
// small for the requested playout count.
func (a *Arena) alloc() uint32 {
	for {
		old := a.next.Load()
		if int(old) >= len(a.nodes) {
			panic("mcts: arena exhausted")
		}
		if a.next.CompareAndSwap(old, old+1) {
			return old
		}
	}
}

// AllocChildren reserves a contiguous block of n node slots for the
// children of a single expanding node, so FirstChild..FirstChild+n stays
// valid as a range. Expansion is single-writer per node (guarded by
// Node.TryExpand), so the block itself needs no further synchronization
// once claimed.
func (a *Arena) AllocChildren(n int) uint32 {
	for {
		old := a.next.Load()
		if int(old)+n > len(a.nodes) {
			panic("mcts: arena exhausted")
		}
		if a.next.CompareAndSwap(old, old+uint32(n)) {
			return old
		}
	}
}

// Node returns a pointer to the node at idx.
func (a *Arena) Node(idx uint32) *Node { return &a.nodes[idx] }

// Root returns the current root index.
func (a *Arena) Root() uint32 { return a.root }

// Capacity reports the total number of node slots, including the null
// sentinel.
func (a *Arena) Capacity() int { return len(a.nodes) }

// Used reports how many slots have been claimed.
func (a *Arena) Used() int { return int(a.next.Load()) }

// Reset discards the whole tree and starts a fresh root at slot 1, for
// the start of a new game.
func (a *Arena) Reset() {
	a.nodes = make([]Node, len(a.nodes))
	a.next.Store(1)
	a.root = a.alloc()
}

// copyNodeFields copies every field of src into dst except Parent and
// FirstChild, which the caller remaps itself during relocation. It reads
// src's atomic fields with Load and writes dst's with Store instead of a
// whole-struct assignment, since Node embeds sync/atomic types that must
// never be copied by value while still reachable from other code.
func copyNodeFields(dst, src *Node) {
	dst.Move = src.Move
	dst.NumChildren = src.NumChildren
	dst.P = src.P
	dst.V = src.V
	dst.IsTerminal = src.IsTerminal
	dst.TerminalValue = src.TerminalValue

	dst.N.Store(src.N.Load())
	dst.w.Store(src.w.Load())
	dst.VirtualLoss.Store(src.VirtualLoss.Load())
	dst.used.Store(src.used.Load())
}

// AdvanceRoot promotes childIdx (a child of the current root) to be the
// new root, garbage-collecting every sibling subtree and compacting the
// surviving subtree into a fresh backing array.
//
// Relocation walks the surviving subtree breadth-first rather than
// depth-first: each dequeued node's full set of children is allocated as
// one contiguous run in the new array, so FirstChild..FirstChild+NumChildren
// remains a valid contiguous block afterward (selection code relies on
// this). A depth-first relocation would interleave cursor allocations
// across sibling subtrees and break that contiguity.
func (a *Arena) AdvanceRoot(childIdx uint32) {
	if childIdx == NullNode {
		a.Reset()
		return
	}

	fresh := make([]Node, len(a.nodes))
	cursor := uint32(1)

	type queueItem struct {
		old uint32
		new uint32
	}

	newRoot := cursor
	cursor++
	copyNodeFields(&fresh[newRoot], &a.nodes[childIdx])
	fresh[newRoot].Parent = NullNode

	queue := []queueItem{{old: childIdx, new: newRoot}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		n := a.nodes[item.old].NumChildren
		if n == 0 {
			continue
		}
		oldFirst := a.nodes[item.old].FirstChild
		newFirst := cursor
		cursor += uint32(n)

		for i := uint16(0); i < n; i++ {
			oldChild := oldFirst + uint32(i)
			newChild := newFirst + uint32(i)
			copyNodeFields(&fresh[newChild], &a.nodes[oldChild])
			fresh[newChild].Parent = item.new
			queue = append(queue, queueItem{old: oldChild, new: newChild})
		}
		fresh[item.new].FirstChild = newFirst
	}

	a.nodes = fresh
	a.next.Store(cursor)
	a.root = newRoot
}

// SetRoot implements spec §4.F's set_root: given the position just
// reached (its last played move recorded in Kif[Ply]), either reuse the
// matching child of the current root as the new root — discarding every
// sibling subtree — or, if reuse is false or no matching child was ever
// expanded, clear the whole arena and start fresh. Returns the new root
// index, the same value Root() reports afterward.
func (a *Arena) SetRoot(pos *shogi.Position, reuse bool) uint32 {
	if !reuse || pos.Ply == 0 {
		a.Reset()
		return a.Root()
	}

	lastMove := pos.Kif[pos.Ply].Move
	child := a.FindChildByMove(a.Root(), lastMove)
	if child == NullNode {
		a.Reset()
		return a.Root()
	}

	a.AdvanceRoot(child)
	return a.Root()
}

// FindChildByMove returns the index of parent's child whose move matches
// m, or NullNode if parent was never expanded or no child played m (e.g.
// the opponent's move fell outside this tree's explored set).
func (a *Arena) FindChildByMove(parent uint32, m shogi.Move) uint32 {
	p := &a.nodes[parent]
	for i := uint16(0); i < p.NumChildren; i++ {
		idx := p.FirstChild + uint32(i)
		c := &a.nodes[idx]
		if c.Move.From == m.From && c.Move.To == m.To && c.Move.Promotion == m.Promotion && c.Move.Piece == m.Piece {
			return idx
		}
	}
	return NullNode
}
