// Package mate solves short forced-mate sequences by exhaustive search,
// independent of the MCTS arena in internal/mcts. It exists because a
// policy/value network is a poor judge of razor-thin tactical lines; an
// exact solver catches them instead.
package mate

import (
	"github.com/hailam/minishogi/internal/shogi"
)

// SolveDFS looks for a forced mate against pos within maxDepth plies,
// trying odd depths (the attacker must deliver the final blow) from 1 up
// to maxDepth. It returns the first mating move found at the shallowest
// depth, or shogi.NullMove if none exists within the budget. Because
// GenerateMoves already excludes drop-pawn-mate and other illegal moves,
// every move returned by the attacker's move list is a candidate mating
// move by construction.
func SolveDFS(pos *shogi.Position, maxDepth int) (bool, shogi.Move) {
	for depth := 1; depth <= maxDepth; depth += 2 {
		if mate, m := attack(pos, depth); mate {
			return true, m
		}
	}
	return false, shogi.NullMove
}

// attack searches for a move that checkmates the opponent within depth
// plies, assuming pos's side to move is trying to deliver mate.
func attack(pos *shogi.Position, depth int) (bool, shogi.Move) {
	if depth <= 0 {
		return false, shogi.NullMove
	}

	for _, m := range pos.GenerateMoves() {
		pos.DoMove(m)

		giveCheck := pos.InCheck()
		rep, _ := pos.IsRepetition()

		var mate bool
		if giveCheck && !rep {
			mate, _ = defense(pos, depth-1)
		}

		pos.UndoMove()

		if mate {
			return true, m
		}
	}
	return false, shogi.NullMove
}

// defense reports whether every response available to the side just put
// in check still loses, i.e. whether the position reached by attack is an
// actual checkmate.
func defense(pos *shogi.Position, depth int) (bool, shogi.Move) {
	moves := pos.GenerateMoves()
	if len(moves) == 0 {
		// A mate delivered by a pawn drop is not a win for the dropper.
		last := pos.Kif[pos.Ply].Move
		if last.IsDrop() && last.Piece.GetPieceType() == shogi.Pawn {
			return false, shogi.NullMove
		}
		return true, shogi.NullMove
	}

	for _, m := range moves {
		pos.DoMove(m)

		rep, _ := pos.IsRepetition()
		var escapes bool
		if rep {
			escapes = true
		} else {
			mate, _ := attack(pos, depth-1)
			escapes = !mate
		}

		pos.UndoMove()

		if escapes {
			return false, shogi.NullMove
		}
	}
	return true, shogi.NullMove
}
