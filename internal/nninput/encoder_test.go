package nninput

import (
	"testing"

	"github.com/hailam/minishogi/internal/shogi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNNInputDimensions(t *testing.T) {
	pos := shogi.NewPosition()
	out := ToNNInput(pos, 8)
	assert.Len(t, out, Dim(8))
	assert.Equal(t, (10+10+3+5+5)*8+2, ChannelCount(8))
}

func TestToNNInputZeroFillsMissingHistory(t *testing.T) {
	pos := shogi.NewPosition()
	out := ToNNInput(pos, 8)

	perStep := perStepChannels * squares
	firstStepStart := prependedChannels * squares
	lastStepStart := firstStepStart + perStep*7

	var lastStepSum float32
	for i := 0; i < perStep; i++ {
		lastStepSum += out[lastStepStart+i]
	}
	assert.Zero(t, lastStepSum, "history step beyond the game start should be zero-filled")

	var firstStepSum float32
	for i := 0; i < perStep; i++ {
		firstStepSum += out[firstStepStart+i]
	}
	assert.NotZero(t, firstStepSum, "the current position's own step should not be all zero")
}

func TestToNNInputSideToMoveFlag(t *testing.T) {
	pos := shogi.NewPosition()
	require.Equal(t, shogi.White, pos.SideToMove)

	out := ToNNInput(pos, 1)
	assert.Zero(t, out[0], "White to move should leave the side-to-move channel at 0")

	moves := pos.GenerateMoves()
	require.NotEmpty(t, moves)
	pos.DoMove(moves[0])
	require.Equal(t, shogi.Black, pos.SideToMove)

	out2 := ToNNInput(pos, 1)
	assert.Equal(t, float32(1), out2[0])
}

func TestToNNInputDoesNotMutateCaller(t *testing.T) {
	pos := shogi.NewPosition()
	before := pos.SFEN(true)
	ToNNInput(pos, 8)
	assert.Equal(t, before, pos.SFEN(true))
}
