package shogi

// Copy returns an independent copy of p. When entire is false, the copy
// carries only the state needed to continue play and check the rules from
// this point forward (board, hands, flags, bitboards, current ply's check
// state) — not the full move/hash history — matching the lightweight
// scratch-board pattern the move generator uses for its legality probe.
func (p *Position) Copy(entire bool) *Position {
	n := &Position{
		SideToMove: p.SideToMove,
		Board:      p.Board,
		Hand:       p.Hand,
		PawnFlags:  p.PawnFlags,
		PieceBB:    p.PieceBB,
		PlayerBB:   p.PlayerBB,
		Ply:        0,
		hash:       p.hash,
	}
	n.HashHistory[0] = p.hash
	n.AdjacentCheckBB[0] = p.AdjacentCheckBB[p.Ply]
	n.LongCheckBB[0] = p.LongCheckBB[p.Ply]
	n.SequentCheckCount[0] = p.SequentCheckCount[p.Ply]

	if entire {
		n.Ply = p.Ply
		for i := 0; i <= p.Ply; i++ {
			n.Kif[i] = p.Kif[i]
			n.HashHistory[i] = p.HashHistory[i]
			n.AdjacentCheckBB[i] = p.AdjacentCheckBB[i]
			n.LongCheckBB[i] = p.LongCheckBB[i]
			n.SequentCheckCount[i] = p.SequentCheckCount[i]
		}
	}
	return n
}
