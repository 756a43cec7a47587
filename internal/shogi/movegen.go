package shogi

// GenerateMoves returns every legal move for the side to move.
func (p *Position) GenerateMoves() []Move {
	return p.GenerateMovesWithOption(true, true, false)
}

// GenerateMovesWithOption generates board moves (isBoard), drops (isHand),
// or both, optionally skipping the legality filter (allowIllegal) to get
// the raw pseudo-legal candidate set. GenerateMoves is the
// (true, true, false) case.
func (p *Position) GenerateMovesWithOption(isBoard, isHand, allowIllegal bool) []Move {
	if p.Ply >= MaxPly {
		return nil
	}

	stm := p.SideToMove
	ownBB := p.PlayerBB[stm]
	occ := p.Occupied()

	var moves []Move

	if isBoard {
		for _, pt := range PieceTypeAll {
			pc := NewPiece(stm, pt)
			bb := p.PieceBB[pc]
			for bb != 0 {
				from := bb.LSB()
				bb = bb.Clear(from)
				targets := AdjacentAttack(from, pc) | RayAttack(pt, from, occ)
				targets &^= ownBB
				for targets != 0 {
					to := targets.LSB()
					targets = targets.Clear(to)
					dir, amount, _ := GetRelation(from, to)
					captured := p.Board[to]
					moves = appendPromotionVariants(moves, pc, from, dir, uint8(amount), to, captured)
				}
			}
		}
	}

	if isHand && p.AdjacentCheckBB[p.Ply] == 0 {
		for _, pt := range HandPieceTypes {
			if p.Hand[stm][pt.HandIndex()] == 0 {
				continue
			}
			for to := Square(0); to < SquareNB; to++ {
				if p.Board[to] != NoPiece {
					continue
				}
				if !p.dropAllowed(stm, pt, to) {
					continue
				}
				moves = append(moves, NewDropMove(NewPiece(stm, pt), to))
			}
		}
	}

	if allowIllegal {
		return moves
	}
	return p.filterLegal(moves)
}

// appendPromotionVariants appends promote=false and, where legal, a
// promote=true variant of the same board move (spec §4.E: the promotion
// zone trigger fires on the source square, the destination square, or
// both).
func appendPromotionVariants(moves []Move, pc Piece, from Square, dir Direction, amount uint8, to Square, captured Piece) []Move {
	pt := pc.GetPieceType()
	color := pc.GetColor()

	canPromote := pt.IsPromotable() && (inPromotionZone(from, color) || inPromotionZone(to, color))
	forced := pt == Pawn && inPromotionZone(to, color)

	if canPromote {
		moves = append(moves, NewBoardMove(pc, from, dir, amount, to, true, captured))
	}
	if !forced {
		moves = append(moves, NewBoardMove(pc, from, dir, amount, to, false, captured))
	}
	return moves
}

// inPromotionZone reports whether sq lies in color's promotion zone: the
// rank furthest from color's own camp (row 0 for White, which starts on
// row 4; row 4 for Black, which starts on row 0).
func inPromotionZone(sq Square, color Color) bool {
	if color == White {
		return sq.Row() == 0
	}
	return sq.Row() == 4
}

// dropAllowed reports whether dropping a piece of type pt on sq is
// permitted, independent of check legality: no dropping on an occupied
// square (checked by the caller), the nifu rule for pawns, and no dropping
// any piece where it would immediately have zero legal moves (only pawns
// are affected on a 5x5 board).
func (p *Position) dropAllowed(color Color, pt PieceType, sq Square) bool {
	if pt != Pawn {
		return true
	}
	if inPromotionZone(sq, color) {
		return false
	}
	return p.PawnFlags[color]&(1<<uint(sq.Col())) == 0
}

// filterLegal removes candidates that leave (or place) the mover's own
// king in check, enforces the must-respond-to-check constraints, and
// excludes drop-pawn-mate.
func (p *Position) filterLegal(candidates []Move) []Move {
	stm := p.SideToMove
	checkers := p.checkerSquares()

	out := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		if len(checkers) >= 2 && m.Piece.GetPieceType() != King {
			continue
		}
		if len(checkers) == 1 && m.Piece.GetPieceType() != King && !resolvesSingleCheck(p, checkers[0], m) {
			continue
		}

		scratch := p.Copy(false)
		scratch.DoMove(m)
		if isSquareAttacked(scratch, scratch.KingSquare(stm), stm.GetOpColor()) {
			continue
		}

		if m.IsDrop() && m.Piece.GetPieceType() == Pawn && scratch.InCheck() {
			if len(scratch.GenerateMoves()) == 0 {
				continue // drop-pawn-mate
			}
		}

		out = append(out, m)
	}
	return out
}

// checkerSquares returns the squares of every opponent piece currently
// giving check to the side to move's king.
func (p *Position) checkerSquares() []Square {
	bb := p.AdjacentCheckBB[p.Ply] | p.LongCheckBB[p.Ply]
	return bb.Squares()
}

// resolvesSingleCheck reports whether m captures the lone checking piece
// or, for a ranged check, interposes on a square between the checker and
// the king.
func resolvesSingleCheck(p *Position, checker Square, m Move) bool {
	if m.To == checker {
		return true
	}
	king := p.KingSquare(p.SideToMove)
	between := raySquaresBetween(checker, king)
	return between.IsSet(m.To)
}

// raySquaresBetween returns the squares strictly between a and b when they
// share a ray, excluding both endpoints.
func raySquaresBetween(a, b Square) Bitboard {
	dir, dist, ok := GetRelation(a, b)
	if !ok || dist < 2 {
		return 0
	}
	var bb Bitboard
	cur := a
	for i := 1; i < dist; i++ {
		cur = NewSquare(cur.Row()+deltas[dir][0], cur.Col()+deltas[dir][1])
		bb = bb.Set(cur)
	}
	return bb
}

// isSquareAttacked reports whether any piece of color by attacks sq on the
// given position, independent of whose turn it is — used to validate that
// a simulated move does not leave the mover's own king in check.
func isSquareAttacked(p *Position, sq Square, by Color) bool {
	occ := p.Occupied()
	for _, pt := range PieceTypeAll {
		pc := NewPiece(by, pt)
		bb := p.PieceBB[pc]
		for bb != 0 {
			from := bb.LSB()
			bb = bb.Clear(from)
			if AdjacentAttack(from, pc).IsSet(sq) {
				return true
			}
			if slidingReach(pt) && RayAttack(pt, from, occ).IsSet(sq) {
				return true
			}
		}
	}
	return false
}
