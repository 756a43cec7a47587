package shogi

import "testing"

func TestNullMoveSFEN(t *testing.T) {
	if NullMove.SFEN() != "resign" {
		t.Errorf("NullMove.SFEN() = %q, want resign", NullMove.SFEN())
	}
	if !NullMove.IsNull() {
		t.Errorf("NullMove.IsNull() should be true")
	}
}

func TestSFENToMoveRoundTrip(t *testing.T) {
	p := NewPosition()
	for _, m := range p.GenerateMoves() {
		text := m.SFEN()
		parsed, err := SFENToMove(p, text)
		if err != nil {
			t.Fatalf("SFENToMove(%q) failed: %v", text, err)
		}
		if parsed.From != m.From || parsed.To != m.To || parsed.Promotion != m.Promotion {
			t.Errorf("SFENToMove(%q) = %+v, want %+v", text, parsed, m)
		}
	}
}

func TestPolicyIndexRange(t *testing.T) {
	p := NewPosition()
	for _, m := range p.GenerateMoves() {
		idx := m.ToPolicyIndex(p.SideToMove)
		if idx < 0 || idx >= PolicyDim {
			t.Errorf("move %s has out-of-range policy index %d", m, idx)
		}
	}
}

func TestPolicyIndexDistinctPerMove(t *testing.T) {
	p := NewPosition()
	seen := map[int]Move{}
	for _, m := range p.GenerateMoves() {
		idx := m.ToPolicyIndex(p.SideToMove)
		if other, ok := seen[idx]; ok {
			t.Errorf("moves %s and %s collide at policy index %d", m, other, idx)
		}
		seen[idx] = m
	}
}

func TestDropMoveSFEN(t *testing.T) {
	m := NewDropMove(NewPiece(White, Pawn), NewSquare(2, 2))
	if m.SFEN() != "P*"+NewSquare(2, 2).String() {
		t.Errorf("drop sfen = %q", m.SFEN())
	}
	if !m.IsDrop() {
		t.Errorf("drop move should report IsDrop() true")
	}
}
