package mcts

import (
	"fmt"
	"sort"

	"github.com/awalterschulze/gographviz"
)

// BestMove returns the index of root's most-visited child, the usual
// final-move selection once search has finished.
func BestMove(a *Arena, root uint32) uint32 {
	parent := a.Node(root)
	var best uint32
	var bestN uint32
	found := false
	for i := uint16(0); i < parent.NumChildren; i++ {
		idx := parent.FirstChild + uint32(i)
		n := a.Node(idx).N.Load()
		if !found || n > bestN {
			bestN = n
			best = idx
			found = true
		}
	}
	return best
}

// MoveVisits pairs a child's SFEN move string with its visit count and
// cached leaf value, the unit returned by Dump.
type MoveVisits struct {
	SFEN   string
	Visits uint32
	V      float32
}

// Dump reports root's total visits, its average value, and a per-child
// visit breakdown. When targetPruning is set, non-best children have
// their reported visit count reduced down to the smallest value whose
// PUCT score (recomputed at that reduced visit count) is still at least
// the best child's actual PUCT score, following KataGo's policy-target
// pruning: the argmax is preserved exactly while removing exploration
// noise from the reported target. When removeZeros is set, children
// whose (possibly pruned) visit count reaches zero are omitted.
func Dump(a *Arena, root uint32, targetPruning, removeZeros bool) (rootVisits uint32, q float64, children []MoveVisits) {
	rootNode := a.Node(root)
	rootVisits = rootNode.N.Load()
	if rootVisits > 0 {
		q = rootNode.W() / float64(rootVisits)
	}

	parentN := rootVisits
	var bestPUCT float32 = -1
	var bestIdx uint32
	for i := uint16(0); i < rootNode.NumChildren; i++ {
		idx := rootNode.FirstChild + uint32(i)
		score := a.Node(idx).PUCT(parentN)
		if score > bestPUCT {
			bestPUCT = score
			bestIdx = idx
		}
	}

	for i := uint16(0); i < rootNode.NumChildren; i++ {
		idx := rootNode.FirstChild + uint32(i)
		child := a.Node(idx)
		n := child.N.Load()

		if targetPruning && idx != bestIdx {
			n = prunedVisits(child, parentN, n, bestPUCT)
		}
		if removeZeros && n == 0 {
			continue
		}
		children = append(children, MoveVisits{SFEN: child.Move.SFEN(), Visits: n, V: cachedValue(child)})
	}
	return rootVisits, q, children
}

// cachedValue reports node's stored leaf value for readout: the terminal
// value for a terminal node, or the cached value from its first
// expansion (spec §3's `v`) otherwise.
func cachedValue(node *Node) float32 {
	if node.IsTerminal {
		return node.TerminalValue
	}
	return node.V
}

// prunedVisits finds the smallest visit count n' <= actualN for which
// child's PUCT score, recomputed as if it had n' visits and no virtual
// loss, is still >= bestPUCT — the minimal target-pruned count that
// leaves the reported argmax unchanged.
func prunedVisits(child *Node, parentN uint32, actualN uint32, bestPUCT float32) uint32 {
	if actualN == 0 {
		return 0
	}
	w := child.W()

	probe := &Node{P: child.P}
	for n := actualN; n > 0; n-- {
		probe.N.Store(n)
		probe.w.Store(0)
		probe.AddW(w * float64(n) / float64(actualN)) // keep Q ~constant as N shrinks
		if probe.PUCT(parentN) < bestPUCT {
			if n == actualN {
				return actualN
			}
			return n + 1
		}
	}
	return 0
}

// Visualize renders the top-k most-visited subtree of root as a DOT
// graph, for ad-hoc inspection of search behavior.
func Visualize(a *Arena, root uint32, k int) string {
	g := gographviz.NewGraph()
	_ = g.SetName("mcts")
	_ = g.SetDir(true)

	visitTopK(a, g, root, k)
	return g.String()
}

func visitTopK(a *Arena, g *gographviz.Graph, idx uint32, k int) {
	node := a.Node(idx)
	name := fmt.Sprintf("n%d", idx)
	label := fmt.Sprintf("\"%s n=%d v=%.3f\"", node.Move.SFEN(), node.N.Load(), cachedValue(node))
	_ = g.AddNode("mcts", name, map[string]string{"label": label})

	if node.NumChildren == 0 {
		return
	}

	type ranked struct {
		idx uint32
		n   uint32
	}
	all := make([]ranked, 0, node.NumChildren)
	for i := uint16(0); i < node.NumChildren; i++ {
		c := node.FirstChild + uint32(i)
		all = append(all, ranked{c, a.Node(c).N.Load()})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].n > all[j].n })
	if len(all) > k {
		all = all[:k]
	}

	for _, r := range all {
		childName := fmt.Sprintf("n%d", r.idx)
		_ = g.AddEdge(name, childName, true, nil)
		visitTopK(a, g, r.idx, k)
	}
}
