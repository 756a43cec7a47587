package shogi

import (
	"fmt"
	"strconv"
	"strings"
)

var sfenPieceLetter = map[PieceType]byte{
	King: 'K', Gold: 'G', Silver: 'S', Bishop: 'B', Rook: 'R', Pawn: 'P',
}

var sfenLetterPiece = func() map[byte]PieceType {
	m := make(map[byte]PieceType, len(sfenPieceLetter))
	for pt, b := range sfenPieceLetter {
		m[b] = pt
	}
	return m
}()

// SetSFEN parses an SFEN board/side/hand/ply record, optionally followed by
// " moves <sfen-move> ...", and overwrites p in place. The side-to-move
// field is inverted relative to standard shogi notation: 'b' means White
// to move, 'w' means Black to move (spec §6).
func (p *Position) SetSFEN(text string) error {
	fields := strings.Fields(text)
	if len(fields) < 4 {
		return fmt.Errorf("shogi: sfen %q has fewer than 4 fields", text)
	}

	*p = Position{}

	if err := p.setBoardField(fields[0]); err != nil {
		return err
	}

	switch fields[1] {
	case "b":
		p.SideToMove = White
	case "w":
		p.SideToMove = Black
	default:
		return fmt.Errorf("shogi: sfen side-to-move field must be b or w, got %q", fields[1])
	}

	if err := p.setHandField(fields[2]); err != nil {
		return err
	}

	ply, err := strconv.Atoi(fields[3])
	if err != nil {
		return fmt.Errorf("shogi: sfen ply field %q is not a number: %w", fields[3], err)
	}
	p.Ply = 0 // the move-number field is read but not used; our Ply is a history index starting at 0
	_ = ply

	p.hash = p.ComputeHash()
	p.HashHistory[p.Ply] = p.hash
	p.setCheckBB()

	if len(fields) > 4 {
		if fields[4] != "moves" {
			return fmt.Errorf("shogi: expected \"moves\" after sfen record, got %q", fields[4])
		}
		for _, mv := range fields[5:] {
			m, err := SFENToMove(p, mv)
			if err != nil {
				return fmt.Errorf("shogi: replaying %q: %w", mv, err)
			}
			p.DoMove(m)
		}
	}
	return nil
}

func (p *Position) setBoardField(board string) error {
	rows := strings.Split(board, "/")
	if len(rows) != 5 {
		return fmt.Errorf("shogi: sfen board field must have 5 ranks, got %d", len(rows))
	}
	for r, row := range rows {
		col := 0
		promoted := false
		for _, ch := range row {
			switch {
			case ch == '+':
				promoted = true
			case ch >= '1' && ch <= '9':
				col += int(ch - '0')
			default:
				if col > 4 {
					return fmt.Errorf("shogi: sfen rank %q overflows the board", row)
				}
				color := White
				letter := byte(ch)
				if ch >= 'a' && ch <= 'z' {
					color = Black
					letter = byte(ch - 'a' + 'A')
				}
				pt, ok := sfenLetterPiece[letter]
				if !ok {
					return fmt.Errorf("shogi: unknown sfen piece letter %q", string(ch))
				}
				if promoted {
					pt = pt.GetPromoted()
				}
				sq := NewSquare(r, col)
				p.put(sq, NewPiece(color, pt))
				if pt == Pawn {
					p.PawnFlags[color] |= 1 << uint(col)
				}
				col++
				promoted = false
			}
		}
	}
	return nil
}

func (p *Position) setHandField(hand string) error {
	if hand == "-" {
		return nil
	}
	count := 0
	for _, ch := range hand {
		if ch >= '0' && ch <= '9' {
			count = count*10 + int(ch-'0')
			continue
		}
		if count == 0 {
			count = 1
		}
		color := White
		letter := byte(ch)
		if ch >= 'a' && ch <= 'z' {
			color = Black
			letter = byte(ch - 'a' + 'A')
		}
		pt, ok := sfenLetterPiece[letter]
		if !ok {
			return fmt.Errorf("shogi: unknown sfen hand piece letter %q", string(ch))
		}
		p.Hand[color][pt.HandIndex()] += count
		count = 0
	}
	return nil
}

// SFEN renders p back into SFEN notation. When includeHistory is true, the
// full move list played since the initial position is appended as a
// " moves ..." suffix instead of folding it into the board/hand fields.
func (p *Position) SFEN(includeHistory bool) string {
	src := p
	if includeHistory && p.Ply > 0 {
		src = p.Copy(true)
		for src.Ply > 0 {
			src.UndoMove()
		}
	}
	var b strings.Builder
	for r := 0; r < 5; r++ {
		if r > 0 {
			b.WriteByte('/')
		}
		empty := 0
		for c := 0; c < 5; c++ {
			pc := src.Board[NewSquare(r, c)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			pt := pc.GetPieceType()
			letter := sfenPieceLetter[pt.GetRaw()]
			if pt.IsPromoted() {
				b.WriteByte('+')
			}
			if pc.GetColor() == Black {
				letter = letter - 'A' + 'a'
			}
			b.WriteByte(letter)
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
	}

	b.WriteByte(' ')
	if src.SideToMove == White {
		b.WriteByte('b')
	} else {
		b.WriteByte('w')
	}

	b.WriteByte(' ')
	handStr := src.handSFEN()
	if handStr == "" {
		b.WriteByte('-')
	} else {
		b.WriteString(handStr)
	}

	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(src.Ply + 1))

	if includeHistory && p.Ply > 0 {
		b.WriteString(" moves")
		for i := 1; i <= p.Ply; i++ {
			b.WriteByte(' ')
			b.WriteString(p.Kif[i].Move.SFEN())
		}
	}
	return b.String()
}

func (p *Position) handSFEN() string {
	var b strings.Builder
	// Highest-value pieces first, White then Black, matching conventional
	// SFEN hand ordering (rook, bishop, gold, silver, pawn).
	order := [5]PieceType{Rook, Bishop, Gold, Silver, Pawn}
	for _, color := range [2]Color{White, Black} {
		for _, pt := range order {
			n := p.Hand[color][pt.HandIndex()]
			if n == 0 {
				continue
			}
			if n > 1 {
				b.WriteString(strconv.Itoa(n))
			}
			letter := sfenPieceLetter[pt]
			if color == Black {
				letter = letter - 'A' + 'a'
			}
			b.WriteByte(letter)
		}
	}
	return b.String()
}
