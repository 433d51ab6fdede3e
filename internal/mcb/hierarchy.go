package mcb

// WalkHierarchy traverses the bone tree rooted at root in the exact order
// the Saturn engine used and returns the nodes with sequential bone indices
// (the slice index). The order is the cross-component contract: pose blocks
// and animation tracks are arrays keyed by it.
//
// Engine order, per node: assign the next bone index, descend into the child
// subtree, then continue with the sibling — the sibling is a child of the
// same parent, not of this node's subtree. The walk is iterative with an
// explicit stack and a visited set, so malformed cyclic input terminates.
func (b *Bundle) WalkHierarchy(root uint32) *Hierarchy {
	h := &Hierarchy{Root: root}
	type frame struct {
		off    uint32
		depth  int
		parent int
	}
	visited := make(map[uint32]bool)
	stack := []frame{{off: root, depth: 0, parent: -1}}
	for len(stack) > 0 && len(h.Nodes) < maxBones {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.off == 0 || visited[f.off] || int(f.off)+hierNodeSize > len(b.data) {
			continue
		}
		visited[f.off] = true

		o := int(f.off)
		n := HierarchyNode{
			Offset:      f.off,
			ModelOffset: b.u32(o),
			Child:       b.u32(o + 4),
			Sibling:     b.u32(o + 8),
			Depth:       f.depth,
			Parent:      f.parent,
		}
		idx := len(h.Nodes)
		h.Nodes = append(h.Nodes, n)

		// Sibling is pushed first so the whole child subtree is emitted
		// before it, matching the recursive engine order.
		if n.Sibling != 0 {
			stack = append(stack, frame{off: n.Sibling, depth: f.depth, parent: f.parent})
		}
		if n.Child != 0 {
			stack = append(stack, frame{off: n.Child, depth: f.depth + 1, parent: idx})
		}
	}
	return h
}

// ModelBones returns the bone indices that carry an attached model, in
// traversal order.
func (h *Hierarchy) ModelBones() []int {
	var out []int
	for i, n := range h.Nodes {
		if n.ModelOffset != 0 {
			out = append(out, i)
		}
	}
	return out
}
