package shogi

import "testing"

func perft(p *Position, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := p.GenerateMoves()
	if depth == 1 {
		return len(moves)
	}
	count := 0
	for _, m := range moves {
		p.DoMove(m)
		count += perft(p, depth-1)
		p.UndoMove()
	}
	return count
}

func TestPerftStartingPosition(t *testing.T) {
	cases := []struct {
		depth    int
		expected int
	}{
		{1, 14},
	}
	for _, c := range cases {
		p := NewPosition()
		got := perft(p, c.depth)
		if got != c.expected {
			t.Errorf("perft(%d) = %d, want %d", c.depth, got, c.expected)
		}
	}
}

func TestPerftDepth2IsPositiveAndRestoresPosition(t *testing.T) {
	p := NewPosition()
	before := p.SFEN(false)
	got := perft(p, 2)
	if got <= 14 {
		t.Errorf("perft(2) = %d, expected more responses than perft(1)", got)
	}
	if p.SFEN(false) != before {
		t.Errorf("perft should leave the position unchanged; got %q, want %q", p.SFEN(false), before)
	}
}

// Scenario: double check must be answered by a king move; no other piece
// move or drop is legal.
func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	p := NewPosition()
	// A hand-built position where both a rook and a bishop attack the
	// white king simultaneously; the only escape is the king itself.
	if err := p.SetSFEN("4k/1b3/5/5/r3K b - 1"); err != nil {
		t.Fatalf("SetSFEN failed: %v", err)
	}
	for _, m := range p.GenerateMoves() {
		if m.Piece.GetPieceType() != King {
			t.Errorf("expected only king moves under double check, got %s", m)
		}
	}
}

// Scenario: a pawn drop that would checkmate the opposing king is illegal,
// even though the king is otherwise boxed in by White's other pieces.
func TestDropPawnMateIsIllegal(t *testing.T) {
	p := NewPosition()
	if err := p.SetSFEN("k4/5/1GSB1/5/4K b P 1"); err != nil {
		t.Fatalf("SetSFEN failed: %v", err)
	}
	mateSquare := NewSquare(1, 0)
	for _, m := range p.GenerateMoves() {
		if m.IsDrop() && m.Piece.GetPieceType() == Pawn && m.To == mateSquare {
			t.Errorf("drop-pawn-mate move %s should be illegal", m)
		}
	}
}

func TestNifuForbidsSecondPawnOnFile(t *testing.T) {
	p := NewPosition()
	if err := p.SetSFEN("4k/5/5/P4/4K b P 1"); err != nil {
		t.Fatalf("SetSFEN failed: %v", err)
	}
	for _, m := range p.GenerateMoves() {
		if m.IsDrop() && m.Piece.GetPieceType() == Pawn && m.To.Col() == 0 {
			t.Errorf("nifu should forbid dropping a second pawn on file 0, got %s", m)
		}
	}
}

func TestForcedPromotionOnLastRank(t *testing.T) {
	p := NewPosition()
	if err := p.SetSFEN("k4/4P/5/5/4K b - 1"); err != nil {
		t.Fatalf("SetSFEN failed: %v", err)
	}
	for _, m := range p.GenerateMoves() {
		if m.Piece.GetPieceType() == Pawn && m.To.Row() == 0 && !m.Promotion {
			t.Errorf("pawn reaching the last rank must promote, got non-promoting %s", m)
		}
	}
}
