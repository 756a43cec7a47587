package mcts

import (
	"math"

	"github.com/hailam/minishogi/internal/shogi"
)

// SelectLeaf walks from root to an unexpanded or terminal node, playing
// each chosen move on pos along the way, and returns the leaf's index.
// Virtual loss is applied (+1) to every node visited, including root and
// the leaf itself; Backpropagate undoes it along the identical path.
//
// forcedPlayouts enables KataGo's forced-playout override: a child
// visited fewer than sqrt(2*p*N) times is selected regardless of its
// PUCT score, to guarantee every promising-but-unlucky move gets a
// minimum number of looks before target pruning can discard it.
func SelectLeaf(a *Arena, pos *shogi.Position, forcedPlayouts bool) (leaf uint32, depth int) {
	cur := a.Root()
	for {
		node := a.Node(cur)
		node.VirtualLoss.Add(1)

		if node.IsTerminal || !node.Expanded() {
			return cur, depth
		}

		best := pickChild(a, node, forcedPlayouts)
		child := a.Node(best)
		pos.DoMove(child.Move)
		cur = best
		depth++
	}
}

// pickChild returns the index of parent's child with the highest PUCT
// score, honoring the forced-playout override when enabled.
func pickChild(a *Arena, parent *Node, forcedPlayouts bool) uint32 {
	parentN := parent.N.Load()

	var best uint32
	var bestScore float32 = -math.MaxFloat32
	found := false

	for i := uint16(0); i < parent.NumChildren; i++ {
		idx := parent.FirstChild + uint32(i)
		child := a.Node(idx)

		var score float32
		if forcedPlayouts && forcedPlayoutApplies(child, parentN) {
			score = float32(math.Inf(1))
		} else {
			score = child.PUCT(parentN)
		}

		if !found || score > bestScore {
			bestScore = score
			best = idx
			found = true
		}
	}
	return best
}

// forcedPlayoutApplies reports whether child has been visited fewer
// times than the KataGo forced-playout threshold sqrt(2*p*N).
func forcedPlayoutApplies(child *Node, parentN uint32) bool {
	threshold := math.Sqrt(2 * float64(child.P) * float64(parentN))
	return float64(child.N.Load()) < threshold
}
