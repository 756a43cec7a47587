package shogi

// adjacentAttack[sq][piece] is the set of squares a given piece attacks
// from sq in a single step, bounded by the board edge. Indexed directly
// by the Piece byte value; sliding pieces (Bishop/Rook, raw) contribute
// nothing here since their reach is entirely ray-based (slidingattacks.go).
var adjacentAttack [SquareNB][pieceTableSize]Bitboard

func init() {
	for sq := Square(0); sq < SquareNB; sq++ {
		for _, c := range [2]Color{White, Black} {
			for _, pt := range PieceTypeAll {
				p := NewPiece(c, pt)
				dirs := p.GetMoveDirs()
				var bb Bitboard
				for _, d := range DirectionAll {
					if dirs&(1<<uint8(d)) == 0 {
						continue
					}
					nr := sq.Row() + deltas[d][0]
					nc := sq.Col() + deltas[d][1]
					if nr < 0 || nr > 4 || nc < 0 || nc > 4 {
						continue
					}
					bb = bb.Set(NewSquare(nr, nc))
				}
				adjacentAttack[sq][p] = bb
			}
		}
	}
}

// AdjacentAttack is the public entry point for the one-step attack table.
func AdjacentAttack(sq Square, p Piece) Bitboard {
	return adjacentAttack[sq][p]
}
