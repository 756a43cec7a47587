package mate

import (
	"testing"

	"github.com/hailam/minishogi/internal/shogi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solve(t *testing.T, sfen string, depth int) (bool, shogi.Move) {
	t.Helper()
	pos := shogi.NewPosition()
	require.NoError(t, pos.SetSFEN(sfen))
	return SolveDFS(pos, depth)
}

func TestSolveDFS_GoldDropMate(t *testing.T) {
	mate, m := solve(t, "2k2/5/2P2/5/2K2 b G 1", 7)
	assert.True(t, mate)
	assert.False(t, m.IsNull())
}

func TestSolveDFS_ThreeGoldsMate(t *testing.T) {
	mate, _ := solve(t, "5/5/2k2/5/2K2 b 3G 1", 7)
	assert.True(t, mate)
}

func TestSolveDFS_TwoGoldsNoMate(t *testing.T) {
	mate, m := solve(t, "5/5/2k2/5/2K2 b 2G 1", 7)
	assert.False(t, mate)
	assert.True(t, m.IsNull())
}

func TestSolveDFS_FullHandMate(t *testing.T) {
	mate, _ := solve(t, "2k2/5/2B2/5/2K2 b GSBRgsr2p 1", 7)
	assert.True(t, mate)
}

// No generated move may be a drop-pawn-mate: a pawn drop that gives check
// and leaves the defender with zero replies is excluded by GenerateMoves
// itself, so it should never appear as a solver-reported mating move.
func TestSolveDFS_NeverReturnsDropPawnMate(t *testing.T) {
	_, m := solve(t, "2k2/5/2P2/5/2K2 b G 1", 7)
	require.False(t, m.IsNull())
	assert.False(t, m.IsDrop() && m.Piece.GetPieceType() == shogi.Pawn)
}
