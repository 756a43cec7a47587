// Package nninput flattens a Position into the dense tensor layout an
// external policy/value network expects (spec §4.G). The network itself,
// its training pipeline, and any weight format are out of scope; this
// package only produces the input side of that boundary.
package nninput

import (
	"github.com/hailam/minishogi/internal/shogi"
)

const (
	squares = shogi.SquareNB

	friendlyPieceChannels = 10
	enemyPieceChannels    = 10
	repetitionChannels    = 3
	friendlyHandChannels  = 5
	enemyHandChannels     = 5

	perStepChannels = friendlyPieceChannels + enemyPieceChannels + repetitionChannels + friendlyHandChannels + enemyHandChannels

	prependedChannels = 2 // side-to-move flag, ply count
)

// ChannelCount returns the total channel depth of the encoded tensor for
// h history steps, matching Dim(h) = ChannelCount(h) * 25 floats.
func ChannelCount(h int) int {
	return perStepChannels*h + prependedChannels
}

// Dim returns the total flattened length of ToNNInput's output for h
// history steps.
func Dim(h int) int {
	return ChannelCount(h) * squares
}

// ToNNInput encodes pos and its h-step history into a channel-major
// dense float32 vector. When fewer than h prior positions exist, the
// remaining (oldest) history slots are left zero. History is walked by
// undoing moves on a full copy of pos (history included), so the caller's
// own pos is left untouched.
func ToNNInput(pos *shogi.Position, h int) []float32 {
	out := make([]float32, Dim(h))

	mover := pos.SideToMove
	writeBroadcast(out, 0, boolChannel(mover == shogi.Black))
	writeBroadcast(out, 1, float32(pos.Ply))

	walker := pos.Copy(true)
	offset := prependedChannels
	for step := 0; step < h; step++ {
		if walker == nil {
			break
		}
		encodeStep(out, offset, walker, mover)
		offset += perStepChannels

		if walker.Ply == 0 {
			walker = nil
			continue
		}
		walker.UndoMove()
	}

	return out
}

func boolChannel(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// writeBroadcast fills channel c (0-based absolute channel index) with
// value v across all 25 squares.
func writeBroadcast(out []float32, c int, v float32) {
	base := c * squares
	for s := 0; s < squares; s++ {
		out[base+s] = v
	}
}

// encodeStep writes one history step's channels starting at channel
// `offset` (in channels, not floats) into out. mover is the side whose
// point of view the whole tensor is encoded from: when mover is Black,
// squares are reflected (s -> 24-s) so the mover always appears to be
// playing "upward", per spec §4.G.
func encodeStep(out []float32, offset int, pos *shogi.Position, mover shogi.Color) {
	opponent := shogi.White
	if mover == shogi.White {
		opponent = shogi.Black
	}

	for sq := shogi.Square(0); sq < shogi.SquareNB; sq++ {
		pc := pos.Board[sq]
		if pc == shogi.NoPiece {
			continue
		}
		dest := reflectSquare(sq, mover)

		var chBase int
		if pc.GetColor() == mover {
			chBase = offset
		} else {
			chBase = offset + friendlyPieceChannels
		}
		pieceCh := pieceTypeChannel(pc.GetPieceType())
		out[(chBase+pieceCh)*squares+int(dest)] = 1
	}

	// Thermometer-coded repetition count: channel k is 1 iff the position
	// has recurred more than k times, so {0,1,2,>=3} prior occurrences
	// read as {000, 100, 110, 111} across the 3 channels.
	repCh := offset + friendlyPieceChannels + enemyPieceChannels
	rep := pos.GetRepetition()
	for k := 0; k < repetitionChannels; k++ {
		if rep > k {
			writeBroadcast(out, repCh+k, 1)
		}
	}

	handBase := repCh + repetitionChannels
	for i, pt := range shogi.HandPieceTypes {
		writeBroadcast(out, handBase+i, float32(pos.Hand[mover][pt.HandIndex()]))
	}
	oppHandBase := handBase + friendlyHandChannels
	for i, pt := range shogi.HandPieceTypes {
		writeBroadcast(out, oppHandBase+i, float32(pos.Hand[opponent][pt.HandIndex()]))
	}
}

// reflectSquare mirrors sq when mover is Black, matching the policy-index
// reflection rule of Move.ToPolicyIndex so board and policy agree on
// which side "plays upward".
func reflectSquare(sq shogi.Square, mover shogi.Color) shogi.Square {
	if mover != shogi.Black {
		return sq
	}
	return shogi.SquareNB - 1 - sq
}

// pieceTypeChannel maps the 10 PieceType values to 0..9 channel indices
// within a color's 10-channel block.
func pieceTypeChannel(pt shogi.PieceType) int {
	for i, candidate := range shogi.PieceTypeAll {
		if candidate == pt {
			return i
		}
	}
	return 0
}
