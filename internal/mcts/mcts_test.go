package mcts

import (
	"context"
	"testing"

	"github.com/hailam/minishogi/internal/shogi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniformEvaluator stands in for a neural network: every legal move gets
// equal prior mass and the position is scored as a coin flip.
func uniformEvaluator(pos *shogi.Position) ([]float32, float32) {
	policy := make([]float32, shogi.PolicyDim)
	for i := range policy {
		policy[i] = 1
	}
	return policy, 0.5
}

func TestEvaluateExpandsRootWithNormalizedPriors(t *testing.T) {
	a := NewArena(0.01)
	pos := shogi.NewPosition()
	legal := pos.GenerateMoves()

	policy, value := uniformEvaluator(pos)
	Evaluate(a, a.Root(), pos, policy, value)

	root := a.Node(a.Root())
	require.Equal(t, len(legal), int(root.NumChildren))

	var sum float32
	for i := uint16(0); i < root.NumChildren; i++ {
		sum += a.Node(root.FirstChild + uint32(i)).P
	}
	assert.InDelta(t, 1.0, sum, 1e-4)
}

func TestSelectLeafDescendsIntoUnexpandedChild(t *testing.T) {
	a := NewArena(0.01)
	pos := shogi.NewPosition()
	policy, value := uniformEvaluator(pos)
	Evaluate(a, a.Root(), pos, policy, value)

	leaf, depth := SelectLeaf(a, pos, false)
	assert.Equal(t, 1, depth)
	assert.NotEqual(t, a.Root(), leaf)
	assert.Equal(t, int32(1), a.Node(leaf).VirtualLoss.Load())
	assert.Equal(t, int32(1), a.Node(a.Root()).VirtualLoss.Load())
}

func TestBackpropagateUpdatesVisitsAndUndoesVirtualLoss(t *testing.T) {
	a := NewArena(0.01)
	pos := shogi.NewPosition()
	policy, value := uniformEvaluator(pos)
	Evaluate(a, a.Root(), pos, policy, value)

	leaf, _ := SelectLeaf(a, pos, false)
	leafPolicy, leafValue := uniformEvaluator(pos)
	v := Evaluate(a, leaf, pos, leafPolicy, leafValue)
	Backpropagate(a, leaf, v)

	root := a.Node(a.Root())
	assert.Equal(t, uint32(1), root.N.Load())
	assert.Equal(t, int32(0), root.VirtualLoss.Load())

	leafNode := a.Node(leaf)
	assert.Equal(t, uint32(1), leafNode.N.Load())
	assert.Equal(t, int32(0), leafNode.VirtualLoss.Load())
}

func TestParallelSearchAccumulatesRootVisits(t *testing.T) {
	a := NewArena(0.05)
	pos := shogi.NewPosition()

	err := ParallelSearch(context.Background(), a, pos, uniformEvaluator, SearchOptions{
		Playouts:    64,
		Parallelism: 4,
	})
	require.NoError(t, err)

	root := a.Node(a.Root())
	assert.Equal(t, uint32(64), root.N.Load())
	assert.Greater(t, int(root.NumChildren), 0)
}

func TestBestMoveReturnsMostVisitedChild(t *testing.T) {
	a := NewArena(0.05)
	pos := shogi.NewPosition()
	require.NoError(t, ParallelSearch(context.Background(), a, pos, uniformEvaluator, SearchOptions{
		Playouts:    32,
		Parallelism: 2,
	}))

	best := BestMove(a, a.Root())
	root := a.Node(a.Root())
	bestN := a.Node(best).N.Load()
	for i := uint16(0); i < root.NumChildren; i++ {
		idx := root.FirstChild + uint32(i)
		assert.LessOrEqual(t, a.Node(idx).N.Load(), bestN)
	}
}

func TestDumpReportsRootVisitsAndChildren(t *testing.T) {
	a := NewArena(0.05)
	pos := shogi.NewPosition()
	require.NoError(t, ParallelSearch(context.Background(), a, pos, uniformEvaluator, SearchOptions{
		Playouts:    32,
		Parallelism: 1,
	}))

	visits, _, children := Dump(a, a.Root(), false, false)
	assert.Equal(t, uint32(32), visits)
	assert.Equal(t, int(a.Node(a.Root()).NumChildren), len(children))

	// The first playout ends at the unexpanded root itself, so it counts
	// toward the root's visits but not toward any child's.
	var total uint32
	for _, c := range children {
		total += c.Visits
	}
	assert.Equal(t, visits-1, total)
}

func TestAdvanceRootPreservesChosenSubtree(t *testing.T) {
	a := NewArena(0.05)
	pos := shogi.NewPosition()
	policy, value := uniformEvaluator(pos)
	Evaluate(a, a.Root(), pos, policy, value)

	root := a.Node(a.Root())
	require.Greater(t, int(root.NumChildren), 0)
	chosen := root.FirstChild
	chosenMove := a.Node(chosen).Move

	childPos := pos.Copy(true)
	childPos.DoMove(chosenMove)
	childPolicy, childValue := uniformEvaluator(childPos)
	Evaluate(a, chosen, childPos, childPolicy, childValue)
	wantGrandchildren := int(a.Node(chosen).NumChildren)

	a.AdvanceRoot(chosen)

	newRoot := a.Node(a.Root())
	assert.Equal(t, chosenMove, newRoot.Move)
	assert.Equal(t, uint32(0), newRoot.Parent)
	assert.Equal(t, wantGrandchildren, int(newRoot.NumChildren))
}

func TestSetRootReusesSubtreeAfterRealDoMove(t *testing.T) {
	a := NewArena(0.05)
	pos := shogi.NewPosition()
	policy, value := uniformEvaluator(pos)
	Evaluate(a, a.Root(), pos, policy, value)

	root := a.Node(a.Root())
	require.Greater(t, int(root.NumChildren), 0)
	chosen := root.FirstChild
	chosenMove := a.Node(chosen).Move

	childPolicy, childValue := uniformEvaluator(pos)
	pos.DoMove(chosenMove)
	Evaluate(a, chosen, pos, childPolicy, childValue)
	wantGrandchildren := int(a.Node(chosen).NumChildren)

	a.SetRoot(pos, true)

	newRoot := a.Node(a.Root())
	assert.Equal(t, chosenMove, newRoot.Move)
	assert.Equal(t, uint32(0), newRoot.Parent)
	assert.Equal(t, wantGrandchildren, int(newRoot.NumChildren))
}

func TestSetRootResetsWhenNotReusing(t *testing.T) {
	a := NewArena(0.05)
	pos := shogi.NewPosition()
	policy, value := uniformEvaluator(pos)
	Evaluate(a, a.Root(), pos, policy, value)

	moves := pos.GenerateMoves()
	require.NotEmpty(t, moves)
	pos.DoMove(moves[0])

	a.SetRoot(pos, false)

	newRoot := a.Node(a.Root())
	assert.Equal(t, shogi.NullMove, newRoot.Move)
	assert.Equal(t, uint16(0), newRoot.NumChildren)
}

func TestVisualizeProducesDOT(t *testing.T) {
	a := NewArena(0.05)
	pos := shogi.NewPosition()
	require.NoError(t, ParallelSearch(context.Background(), a, pos, uniformEvaluator, SearchOptions{
		Playouts:    16,
		Parallelism: 2,
	}))

	dot := Visualize(a, a.Root(), 3)
	assert.Contains(t, dot, "digraph")
}
