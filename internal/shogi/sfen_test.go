package shogi

import "testing"

func TestSetStartPosition(t *testing.T) {
	p := NewPosition()
	if p.SideToMove != White {
		t.Errorf("starting position should have White to move, got %v", p.SideToMove)
	}
	if p.Board[NewSquare(0, 4)].GetPieceType() != King || p.Board[NewSquare(0, 4)].GetColor() != Black {
		t.Errorf("expected black king at (0,4)")
	}
	if p.Board[NewSquare(4, 0)].GetPieceType() != King || p.Board[NewSquare(4, 0)].GetColor() != White {
		t.Errorf("expected white king at (4,0)")
	}
	if p.Board[NewSquare(1, 4)].GetPieceType() != Pawn || p.Board[NewSquare(1, 4)].GetColor() != Black {
		t.Errorf("expected black pawn at (1,4)")
	}
	if p.Board[NewSquare(3, 0)].GetPieceType() != Pawn || p.Board[NewSquare(3, 0)].GetColor() != White {
		t.Errorf("expected white pawn at (3,0)")
	}
}

func TestSFENRoundTrip(t *testing.T) {
	p := NewPosition()
	rendered := p.SFEN(false)
	if rendered != startSFEN {
		t.Errorf("SFEN() = %q, want %q", rendered, startSFEN)
	}

	var q Position
	if err := q.SetSFEN(rendered); err != nil {
		t.Fatalf("SetSFEN(%q) failed: %v", rendered, err)
	}
	if q.SFEN(false) != rendered {
		t.Errorf("round trip mismatch: got %q, want %q", q.SFEN(false), rendered)
	}
	if q.hash != p.hash {
		t.Errorf("round trip hash mismatch")
	}
}

func TestHashMatchesComputeHash(t *testing.T) {
	p := NewPosition()
	if p.Hash() != p.ComputeHash() {
		t.Errorf("incremental hash %d does not match recomputed hash %d", p.Hash(), p.ComputeHash())
	}
}

func TestSetSFENRejectsMalformed(t *testing.T) {
	var p Position
	if err := p.SetSFEN("garbage"); err == nil {
		t.Errorf("expected an error parsing a malformed sfen")
	}
}
