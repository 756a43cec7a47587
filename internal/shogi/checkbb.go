package shogi

// setCheckBB recomputes AdjacentCheckBB[p.Ply] and LongCheckBB[p.Ply] for
// the current side to move: the squares of opponent pieces giving check,
// split by whether the check is a one-step attack or a ranged (sliding)
// one. Movegen uses the split to tell a capture-or-block situation (long
// check) apart from a capture-or-flee one (adjacent check), and uses
// popcount across both to detect double check (spec §4.E).
func (p *Position) setCheckBB() {
	stm := p.SideToMove
	opp := stm.GetOpColor()
	king := p.KingSquare(stm)

	var adjacent, long Bitboard
	occ := p.Occupied()

	for _, pt := range PieceTypeAll {
		pc := NewPiece(opp, pt)
		bb := p.PieceBB[pc]
		for bb != 0 {
			sq := bb.LSB()
			bb = bb.Clear(sq)
			if AdjacentAttack(sq, pc).IsSet(king) {
				adjacent = adjacent.Set(sq)
			}
			if slidingReach(pt) && RayAttack(pt, sq, occ).IsSet(king) {
				long = long.Set(sq)
			}
		}
	}

	p.AdjacentCheckBB[p.Ply] = adjacent
	p.LongCheckBB[p.Ply] = long
	p.updateSequentCheckCount()
}

// slidingReach reports whether pt has any ray-based (non-adjacent) reach.
func slidingReach(pt PieceType) bool {
	switch pt {
	case Bishop, BishopX, Rook, RookX:
		return true
	default:
		return false
	}
}

// RayAttack returns the sliding reach of a piece of type pt standing on sq
// against occupancy occ. Promoted bishops and rooks add their adjacent
// step separately via AdjacentAttack; RayAttack only covers the
// slide-derived component, which is what setCheckBB and movegen need to
// find blocking squares.
func RayAttack(pt PieceType, sq Square, occ Bitboard) Bitboard {
	switch pt {
	case Bishop, BishopX:
		return BishopAttack(sq, occ)
	case Rook, RookX:
		return RookAttack(sq, occ)
	default:
		return 0
	}
}

// updateSequentCheckCount tracks, per color, how many consecutive plies
// that color has been giving check — used for the check-repetition rule
// (spec §4.E: 7 consecutive checks from one side is a loss for that side).
func (p *Position) updateSequentCheckCount() {
	ply := p.Ply
	var prev [2]int
	if ply > 0 {
		prev = p.SequentCheckCount[ply-1]
	}
	checker := p.SideToMove.GetOpColor() // the side that just moved, putting stm in check (if any)
	p.SequentCheckCount[ply] = prev
	if p.InCheck() {
		p.SequentCheckCount[ply][checker] = prev[checker] + 1
	} else {
		p.SequentCheckCount[ply][checker] = 0
	}
}
