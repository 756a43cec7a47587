package shogi

// MaxPly bounds the history arrays carried on Position; once Ply reaches
// this many plies, move generation returns no moves (spec §4.E).
const MaxPly = 512

// kifEntry is one record of move history, enough to undo a move and to
// answer repetition queries without rescanning the board.
type kifEntry struct {
	Move        Move
	HandBefore  [2][5]int
	PawnBefore  [2]uint8
	WasCheck    bool
}

// Position is the full mutable game state: board, hands, incremental
// bitboards, and per-ply history needed to undo moves and detect
// repetition (spec §3).
type Position struct {
	SideToMove Color
	Board      [SquareNB]Piece
	Hand       [2][5]int // indexed by Color, then PieceType.HandIndex()
	PawnFlags  [2]uint8  // bit i set => side has an unpromoted pawn on file i

	PieceBB  [pieceTableSize]Bitboard // indexed by Piece value
	PlayerBB [2]Bitboard              // indexed by Color

	Ply int
	Kif [MaxPly + 1]kifEntry

	HashHistory       [MaxPly + 1]uint64
	AdjacentCheckBB    [MaxPly + 1]Bitboard
	LongCheckBB        [MaxPly + 1]Bitboard
	SequentCheckCount  [MaxPly + 1][2]int

	hash uint64
}

// NewPosition returns a Position set to the Minishogi starting position.
func NewPosition() *Position {
	p := &Position{}
	p.SetStartPosition()
	return p
}

// startSFEN is the Minishogi starting position: Black's rook/bishop/
// silver/gold/king along row 0 with a lone pawn one rank up, mirrored for
// White along row 4, White to move first.
const startSFEN = "rbsgk/4p/5/P4/KGSBR b - 1"

// SetStartPosition resets p to the Minishogi starting position.
func (p *Position) SetStartPosition() {
	if err := p.SetSFEN(startSFEN); err != nil {
		panic("shogi: invalid built-in starting sfen: " + err.Error())
	}
}

// Hash returns the incrementally maintained Zobrist hash of p.
func (p *Position) Hash() uint64 { return p.hash }

// put places piece pc on sq, maintaining Board/PieceBB/PlayerBB. sq must be
// currently empty.
func (p *Position) put(sq Square, pc Piece) {
	p.Board[sq] = pc
	p.PieceBB[pc] = p.PieceBB[pc].Set(sq)
	p.PlayerBB[pc.GetColor()] = p.PlayerBB[pc.GetColor()].Set(sq)
	p.hash ^= ZobristPiece(sq, pc)
}

// remove clears sq, which must hold pc.
func (p *Position) remove(sq Square, pc Piece) {
	p.Board[sq] = NoPiece
	p.PieceBB[pc] = p.PieceBB[pc].Clear(sq)
	p.PlayerBB[pc.GetColor()] = p.PlayerBB[pc.GetColor()].Clear(sq)
	p.hash ^= ZobristPiece(sq, pc)
}

// Occupied is the union of both players' pieces.
func (p *Position) Occupied() Bitboard {
	return p.PlayerBB[White] | p.PlayerBB[Black]
}

// GetCheckBB returns the current side to move's aggregate check bitboard
// (adjacent checks OR long/sliding checks), per spec §4.E.
func (p *Position) GetCheckBB() Bitboard {
	return p.AdjacentCheckBB[p.Ply] | p.LongCheckBB[p.Ply]
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.GetCheckBB() != 0
}

// KingSquare returns the square of c's king.
func (p *Position) KingSquare(c Color) Square {
	bb := p.PieceBB[NewPiece(c, King)]
	return bb.LSB()
}
