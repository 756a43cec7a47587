package mcts

import (
	"github.com/hailam/minishogi/internal/shogi"
)

// Evaluate expands the leaf node at idx against the current pos (the
// caller must already have descended to it via SelectLeaf) using an
// externally supplied policy vector and value scalar, and returns the
// value to back up the tree.
//
// If the node was already visited (n > 0), expansion is skipped and the
// cached terminal value or policy-derived value is returned unchanged —
// re-evaluating a node another goroutine already expanded would waste
// the call and risk a torn read of half-written children.
func Evaluate(a *Arena, idx uint32, pos *shogi.Position, policy []float32, value float32) float32 {
	node := a.Node(idx)
	if node.N.Load() > 0 {
		if node.IsTerminal {
			return node.TerminalValue
		}
		return node.V
	}

	if !node.TryExpand() {
		// another goroutine is expanding this node concurrently; report
		// its own already-claimed value estimate so backprop still has
		// something to add.
		return value
	}

	moves := pos.GenerateMoves()

	if v, ok := terminalValue(pos, moves); ok {
		node.IsTerminal = true
		node.TerminalValue = v
		return v
	}

	node.V = value

	sum := float32(0)
	indices := make([]int, len(moves))
	for i, m := range moves {
		polIdx := m.ToPolicyIndex(pos.SideToMove)
		indices[i] = polIdx
		sum += policy[polIdx]
	}
	if sum <= 0 {
		sum = 1
	}

	first := a.AllocChildren(len(moves))
	node.FirstChild = first
	node.NumChildren = uint16(len(moves))

	for i, m := range moves {
		child := a.Node(first + uint32(i))
		child.Move = m
		child.Parent = idx
		child.P = policy[indices[i]] / sum
	}

	return value
}

// terminalValue detects the two terminal conditions of spec §4.F and
// returns the value to assign, reported from the current side-to-move's
// perspective.
func terminalValue(pos *shogi.Position, moves []shogi.Move) (float32, bool) {
	if rep, checkRep := pos.IsRepetition(); rep {
		if checkRep {
			return 0.5, true
		}
		if pos.SideToMove == shogi.Black {
			return 1, true
		}
		return 0, true
	}

	if len(moves) == 0 {
		if pos.Ply > 0 {
			last := pos.Kif[pos.Ply].Move
			if last.Piece.GetPieceType() == shogi.Pawn && last.IsDrop() {
				return 1, true
			}
		}
		return 0, true
	}

	return 0, false
}
