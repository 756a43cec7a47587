package shogi

// DoMove applies m, which must be a legal move for the side to move,
// updating the board, hands, incremental bitboards/hash, and history
// (spec §4.E). Hand counts and pawn flags are snapshotted into the kif
// entry so UndoMove can restore them directly rather than reverse the
// incremental arithmetic.
func (p *Position) DoMove(m Move) {
	mover := p.SideToMove
	entry := kifEntry{
		Move:       m,
		HandBefore: p.Hand,
		PawnBefore: p.PawnFlags,
		WasCheck:   p.InCheck(),
	}

	if m.IsDrop() {
		pt := m.Piece.GetPieceType()
		p.Hand[mover][pt.HandIndex()]--
		p.put(m.To, m.Piece)
		if pt == Pawn {
			p.PawnFlags[mover] |= 1 << uint(m.To.Col())
		}
	} else {
		p.remove(m.From, m.Piece)

		if m.Captured != NoPiece {
			p.remove(m.To, m.Captured)
			capturedType := m.Captured.GetPieceType()
			p.Hand[mover][capturedType.GetRaw().HandIndex()]++
			if capturedType == Pawn {
				p.PawnFlags[mover.GetOpColor()] &^= 1 << uint(m.To.Col())
			}
		}

		arriving := m.Piece
		if m.Promotion {
			arriving = m.Piece.GetPromoted()
		}
		p.put(m.To, arriving)

		if m.Piece.GetPieceType() == Pawn {
			p.PawnFlags[mover] &^= 1 << uint(m.From.Col())
			if !m.Promotion {
				p.PawnFlags[mover] |= 1 << uint(m.To.Col())
			}
		}
	}

	p.Ply++
	p.Kif[p.Ply] = entry
	p.SideToMove = mover.GetOpColor()
	p.hash ^= sideToMoveBit
	p.HashHistory[p.Ply] = p.hash
	p.setCheckBB()
}

// UndoMove reverses the most recent DoMove, restoring p to the position it
// held beforehand.
func (p *Position) UndoMove() {
	entry := p.Kif[p.Ply]
	m := entry.Move
	mover := p.SideToMove.GetOpColor()

	if m.IsDrop() {
		p.remove(m.To, m.Piece)
	} else {
		arrived := m.Piece
		if m.Promotion {
			arrived = m.Piece.GetPromoted()
		}
		p.remove(m.To, arrived)
		p.put(m.From, m.Piece)
		if m.Captured != NoPiece {
			p.put(m.To, m.Captured)
		}
	}

	p.Hand = entry.HandBefore
	p.PawnFlags = entry.PawnBefore
	p.SideToMove = mover
	p.hash ^= sideToMoveBit
	p.Ply--
}
