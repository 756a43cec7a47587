package shogi

import (
	"fmt"
)

// Move is an immutable value describing either a board move or a drop.
// Amount == 0 identifies a drop (direction is meaningless in that case);
// From == NoSquare for a drop, since the origin is the player's hand, not
// a board square.
type Move struct {
	Piece     Piece
	From      Square
	Dir       Direction
	Amount    uint8
	To        Square
	Promotion bool
	Captured  Piece
}

// NullMove is the reserved sentinel used as a tombstone and to signal "no
// mate found" / "resign".
var NullMove = Move{Piece: NoPiece, From: NoSquare, To: 0}

// NewBoardMove builds a board move.
func NewBoardMove(piece Piece, from Square, dir Direction, amount uint8, to Square, promotion bool, captured Piece) Move {
	return Move{Piece: piece, From: from, Dir: dir, Amount: amount, To: to, Promotion: promotion, Captured: captured}
}

// NewDropMove builds a drop move; direction and amount are irrelevant and
// left at their zero values.
func NewDropMove(piece Piece, to Square) Move {
	return Move{Piece: piece, From: NoSquare, To: to, Captured: NoPiece}
}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool { return m.Piece == NoPiece }

// IsDrop reports whether m places a piece from hand rather than moving one
// already on the board.
func (m Move) IsDrop() bool { return m.Amount == 0 }

var handSFENChar = map[PieceType]byte{
	Gold: 'G', Silver: 'S', Bishop: 'B', Rook: 'R', Pawn: 'P',
}

// SFEN renders m in SFEN move notation: "<from><to>[+]" for a board move,
// "<PIECE>*<to>" for a drop, "resign" for the null move.
func (m Move) SFEN() string {
	if m.IsNull() {
		return "resign"
	}
	if m.IsDrop() {
		return fmt.Sprintf("%c*%s", handSFENChar[m.Piece.GetPieceType()], m.To)
	}
	if m.Promotion {
		return fmt.Sprintf("%s%s+", m.From, m.To)
	}
	return fmt.Sprintf("%s%s", m.From, m.To)
}

var csaPieceCode = map[PieceType]string{
	King: "OU", Gold: "KI", Silver: "GI", Bishop: "KA", Rook: "HI", Pawn: "FU",
	SilverX: "NG", BishopX: "UM", RookX: "RY", PawnX: "TO",
}

// CSA renders m in CSA move notation: "<from or 00><to><piece-on-arrival>".
func (m Move) CSA() string {
	if m.IsNull() {
		return "%TORYO"
	}
	arrival := m.Piece.GetPieceType()
	if m.Promotion {
		arrival = arrival.GetPromoted()
	}
	from := "00"
	if !m.IsDrop() {
		from = csaSquare(m.From)
	}
	return from + csaSquare(m.To) + csaPieceCode[arrival]
}

func csaSquare(s Square) string {
	// CSA numbers files 5..1 left-to-right from White's view, the same
	// file ordering as SFEN, and ranks 1..5 top-to-bottom as digits.
	return fmt.Sprintf("%d%d", 5-s.Col(), s.Row()+1)
}

// ToPolicyIndex maps m into the 69x25 policy vector described in spec
// §4.D, flattened channel-major. mover is the side that played m; for
// Black the square key is reflected (24-s) to keep the representation
// symmetric for a side-to-move-is-White network convention. The direction
// channel itself is not reflected — this matches the original engine's
// move_to_policy_index exactly (see DESIGN.md's Open Question on this).
func (m Move) ToPolicyIndex(mover Color) int {
	var channel int
	var key Square
	if m.IsDrop() {
		channel = 64 + m.Piece.GetPieceType().HandIndex()
		key = m.To
	} else {
		base := 4*int(m.Dir) + int(m.Amount) - 1
		if m.Promotion {
			base += 32
		}
		channel = base
		key = m.From
	}
	row, col := key.Row(), key.Col()
	if mover == Black {
		row, col = 4-row, 4-col
	}
	return channel*25 + row*5 + col
}

func (m Move) String() string { return m.SFEN() }

// policyChannelCount is the number of channels (69) in the policy vector;
// PolicyDim is its total flattened dimension (69 * 25 = 1725).
const policyChannelCount = 69
const PolicyDim = policyChannelCount * SquareNB

// SFENToMove parses an SFEN move string against pos, resolving a board
// move's (direction, amount) via the relation table, filling in Piece and
// Captured from the current board state and Promotion from a trailing '+'.
func SFENToMove(pos *Position, text string) (Move, error) {
	if text == "resign" {
		return NullMove, nil
	}
	if len(text) < 4 {
		return NullMove, fmt.Errorf("shogi: malformed sfen move %q", text)
	}
	if text[1] == '*' {
		var pt PieceType
		for k, v := range handSFENChar {
			if v == text[0] {
				pt = k
			}
		}
		if pt == NoPieceType {
			return NullMove, fmt.Errorf("shogi: unknown drop piece in %q", text)
		}
		to, err := ParseSquare(text[2:4])
		if err != nil {
			return NullMove, err
		}
		return NewDropMove(NewPiece(pos.SideToMove, pt), to), nil
	}
	from, err := ParseSquare(text[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return NullMove, err
	}
	dir, amount, ok := GetRelation(from, to)
	if !ok {
		return NullMove, fmt.Errorf("shogi: %s and %s share no ray", from, to)
	}
	promotion := len(text) > 4 && text[4] == '+'
	piece := pos.Board[from]
	captured := pos.Board[to]
	return NewBoardMove(piece, from, dir, uint8(amount), to, promotion, captured), nil
}
