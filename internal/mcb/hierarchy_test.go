package mcb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkHierarchyOrder(t *testing.T) {
	b, err := Parse(chainBundle())
	require.NoError(t, err)

	h := b.WalkHierarchy(b.Entries[0].Offset)
	require.Equal(t, 4, h.BoneCount())

	// root, then the child subtree, then the root's next child (the
	// sibling link of node A).
	assert.Equal(t, uint32(4), h.Nodes[0].Offset)
	assert.Equal(t, uint32(16), h.Nodes[1].Offset)
	assert.Equal(t, uint32(28), h.Nodes[2].Offset)
	assert.Equal(t, uint32(40), h.Nodes[3].Offset)

	// A sibling hangs off the shared parent, not off the node that
	// references it.
	assert.Equal(t, -1, h.Nodes[0].Parent)
	assert.Equal(t, 0, h.Nodes[1].Parent)
	assert.Equal(t, 1, h.Nodes[2].Parent)
	assert.Equal(t, 0, h.Nodes[3].Parent)

	assert.Equal(t, 0, h.Nodes[0].Depth)
	assert.Equal(t, 1, h.Nodes[1].Depth)
	assert.Equal(t, 2, h.Nodes[2].Depth)
	assert.Equal(t, 1, h.Nodes[3].Depth)
}

func TestWalkHierarchyTwoBones(t *testing.T) {
	b, err := Parse(posedBundle(FixedOne))
	require.NoError(t, err)

	h := b.WalkHierarchy(b.Entries[0].Offset)
	require.Equal(t, 2, h.BoneCount())
	assert.Equal(t, []int{-1, 0}, []int{h.Nodes[0].Parent, h.Nodes[1].Parent})
}

func TestWalkHierarchyCycleTerminates(t *testing.T) {
	// Two nodes pointing at each other as children.
	w := &buf{}
	w.u32(4)
	w.u32(0).u32(16).u32(0)
	w.u32(0).u32(4).u32(0)

	b, err := Parse(w.b)
	require.NoError(t, err)
	h := b.WalkHierarchy(4)
	assert.Equal(t, 2, h.BoneCount())
}

func TestModelBones(t *testing.T) {
	h := &Hierarchy{Nodes: []HierarchyNode{
		{ModelOffset: 0},
		{ModelOffset: 100},
		{ModelOffset: 0},
		{ModelOffset: 200},
	}}
	assert.Equal(t, []int{1, 3}, h.ModelBones())
}
