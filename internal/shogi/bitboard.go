package shogi

import "math/bits"

// Bitboard is a 25-bit subset of a 32-bit word; bit i indicates square i
// is a member.
type Bitboard uint32

// SquareBB returns the singleton bitboard for a square.
func SquareBB(s Square) Bitboard {
	return Bitboard(1) << uint(s)
}

// FileMask[c] has every square in column c set.
var FileMask [5]Bitboard

// RankMask[r] has every square in row r set.
var RankMask [5]Bitboard

func init() {
	for sq := Square(0); sq < SquareNB; sq++ {
		FileMask[sq.Col()] |= SquareBB(sq)
		RankMask[sq.Row()] |= SquareBB(sq)
	}
}

// Set returns bb with s added.
func (bb Bitboard) Set(s Square) Bitboard { return bb | SquareBB(s) }

// Clear returns bb with s removed.
func (bb Bitboard) Clear(s Square) Bitboard { return bb &^ SquareBB(s) }

// IsSet reports whether s is a member of bb.
func (bb Bitboard) IsSet(s Square) bool { return bb&SquareBB(s) != 0 }

// PopCount returns the number of set bits.
func (bb Bitboard) PopCount() int { return bits.OnesCount32(uint32(bb)) }

// LSB returns the lowest-indexed set square, or NoSquare if bb is empty.
func (bb Bitboard) LSB() Square {
	if bb == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros32(uint32(bb)))
}

// PopLSB returns the lowest-indexed set square and removes it from bb.
func (bb *Bitboard) PopLSB() Square {
	s := bb.LSB()
	if s != NoSquare {
		*bb &^= SquareBB(s)
	}
	return s
}

// Squares returns every set square, lowest index first.
func (bb Bitboard) Squares() []Square {
	out := make([]Square, 0, bb.PopCount())
	for b := bb; b != 0; {
		out = append(out, b.PopLSB())
	}
	return out
}
