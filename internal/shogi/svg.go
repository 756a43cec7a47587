package shogi

import (
	"io"

	svg "github.com/ajstarks/svgo"
)

// cellSize is the pixel edge length of one board square in ToSVG's output.
const cellSize = 80

// ToSVG renders p as a simple diagrammed board: a 5x5 grid with each
// occupied square labeled by its upper-case piece letter, Black's drawn in
// dark red, with the position's SFEN as a caption below the board.
// It is a debugging aid for self-play inspection, not a full board-art
// renderer.
func (p *Position) ToSVG(w io.Writer) error {
	canvas := svg.New(w)
	size := cellSize * 5
	canvas.Start(size, size+cellSize/2)
	canvas.Rect(0, 0, size, size, "fill:white;stroke:black")

	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			x := c * cellSize
			y := r * cellSize
			canvas.Rect(x, y, cellSize, cellSize, "fill:none;stroke:black")

			pc := p.Board[NewSquare(r, c)]
			if pc == NoPiece {
				continue
			}
			label := pc.GetPieceType().String()
			style := "fill:black;text-anchor:middle;font-size:20px"
			if pc.GetColor() == Black {
				style = "fill:darkred;text-anchor:middle;font-size:20px"
			}
			canvas.Text(x+cellSize/2, y+cellSize/2, label, style)
		}
	}

	canvas.Text(size/2, size+cellSize/3, p.SFEN(false), "text-anchor:middle;font-size:14px")
	canvas.End()
	return nil
}
