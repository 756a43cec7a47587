package mcts

// Backpropagate walks from leaf to root along Parent pointers, adding
// value to the leaf and 1-value to its parent, alternating at every step
// (the two sides of the board alternate at every ply, so a win for one
// node's side to move is a loss for its parent's), incrementing each
// node's visit count, and undoing the virtual loss SelectLeaf applied on
// the way down.
func Backpropagate(a *Arena, leaf uint32, value float32) {
	v := float64(value)
	cur := leaf
	for {
		node := a.Node(cur)
		node.AddW(v)
		node.N.Add(1)
		node.VirtualLoss.Add(-1)

		if cur == a.Root() {
			return
		}
		v = 1 - v
		cur = node.Parent
	}
}
