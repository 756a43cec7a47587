package shogi

// Piece is a color-tagged piece value: the low nibble holds the PieceType
// bits, and bit 4 (0x10) is set iff the piece belongs to Black. This
// layout is inherited from the original engine this package is derived
// from and lets GetColor/GetPieceType extract either half with a mask.
type Piece uint8

// NoPiece is the empty-square sentinel (PieceType NoPieceType, color bit
// unset); it is never a member of any piece_bb.
const NoPiece Piece = 0

const blackBit Piece = 0b10000

// NewPiece builds a Piece from a color and a piece type.
func NewPiece(c Color, pt PieceType) Piece {
	p := Piece(pt)
	if c == Black {
		p |= blackBit
	}
	return p
}

// GetColor extracts the color of p. Meaningless on NoPiece.
func (p Piece) GetColor() Color {
	if p&blackBit != 0 {
		return Black
	}
	return White
}

// GetPieceType extracts the piece type of p.
func (p Piece) GetPieceType() PieceType {
	return PieceType(p &^ blackBit)
}

// GetOpPiece flips the color of p, leaving NoPiece unchanged.
func (p Piece) GetOpPiece() Piece {
	if p == NoPiece {
		return NoPiece
	}
	return p ^ blackBit
}

// GetPromoted returns the promoted form of p (same color), or NoPiece if
// p cannot be promoted.
func (p Piece) GetPromoted() Piece {
	pt := p.GetPieceType().GetPromoted()
	if pt == NoPieceType {
		return NoPiece
	}
	return NewPiece(p.GetColor(), pt)
}

// GetRaw strips promotion from p, keeping its color.
func (p Piece) GetRaw() Piece {
	if p == NoPiece {
		return NoPiece
	}
	return NewPiece(p.GetColor(), p.GetPieceType().GetRaw())
}

// IsPromotable reports whether p is raw and not King or Gold.
func (p Piece) IsPromotable() bool {
	return p.GetPieceType().IsPromotable()
}

func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	s := p.GetPieceType().String()
	if p.GetColor() == Black {
		// Black pieces render lower-case, matching the SFEN board field.
		lower := make([]byte, 0, len(s))
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c >= 'A' && c <= 'Z' {
				c = c - 'A' + 'a'
			}
			lower = append(lower, c)
		}
		return string(lower)
	}
	return s
}
