package skeleton

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pds-mcb-extract/internal/mathutil"
	"pds-mcb-extract/internal/mcb"
)

func identityScale() [3]int32 {
	return [3]int32{mcb.FixedOne, mcb.FixedOne, mcb.FixedOne}
}

func assertVec(t *testing.T, want, got mathutil.Vec3) {
	t.Helper()
	for k := 0; k < 3; k++ {
		assert.InDelta(t, want[k], got[k], 1e-9, "component %d", k)
	}
}

func TestLocalMatrixTranslation(t *testing.T) {
	bp := mcb.BonePose{
		Translation: [3]int32{mcb.FixedOne, 2 * mcb.FixedOne, -mcb.FixedOne / 2},
		Scale:       identityScale(),
	}
	m := LocalMatrix(bp)
	assertVec(t, mathutil.Vec3{1, 2, -0.5}, m.MulPoint(mathutil.Vec3{}))
}

func TestLocalMatrixQuarterTurnZ(t *testing.T) {
	// 0x4000 of 0x10000 is a quarter revolution.
	bp := mcb.BonePose{
		Rotation: [3]int32{0, 0, 0x4000},
		Scale:    identityScale(),
	}
	m := LocalMatrix(bp)
	assertVec(t, mathutil.Vec3{0, 1, 0}, m.MulPoint(mathutil.Vec3{1, 0, 0}))
}

func TestLocalMatrixRotationOrder(t *testing.T) {
	bp := mcb.BonePose{
		Rotation: [3]int32{0x1000, 0x2000, 0x3000},
		Scale:    identityScale(),
	}
	m := LocalMatrix(bp)

	toRad := 2 * math.Pi / 65536
	want := mathutil.Mat3Mul(
		mathutil.RotZ(float64(0x3000)*toRad),
		mathutil.Mat3Mul(
			mathutil.RotY(float64(0x2000)*toRad),
			mathutil.RotX(float64(0x1000)*toRad),
		),
	)
	p := mathutil.Vec3{1, 2, 3}
	assertVec(t, want.MulVec3(p), m.MulPoint(p))
}

func TestLocalMatrixScale(t *testing.T) {
	bp := mcb.BonePose{
		Scale: [3]int32{2 * mcb.FixedOne, mcb.FixedOne, mcb.FixedOne / 2},
	}
	m := LocalMatrix(bp)
	assertVec(t, mathutil.Vec3{2, 1, 0.5}, m.MulPoint(mathutil.Vec3{1, 1, 1}))
}

func TestEvaluateChain(t *testing.T) {
	nodes := []mcb.HierarchyNode{
		{Parent: -1},
		{Parent: 0},
	}
	pose := []mcb.BonePose{
		{Translation: [3]int32{mcb.FixedOne, 0, 0}, Scale: identityScale()},
		{Translation: [3]int32{mcb.FixedOne, 0, 0}, Scale: identityScale()},
	}
	worlds := Evaluate(nodes, pose)
	require.Len(t, worlds, 2)
	assertVec(t, mathutil.Vec3{1, 0, 0}, worlds[0].MulPoint(mathutil.Vec3{}))
	assertVec(t, mathutil.Vec3{2, 0, 0}, worlds[1].MulPoint(mathutil.Vec3{}))
}

func TestEvaluateSiblingUsesParentTransform(t *testing.T) {
	// Bone 1 rotates; bone 2 is its sibling under the root, so the
	// rotation must not leak into it.
	nodes := []mcb.HierarchyNode{
		{Parent: -1},
		{Parent: 0},
		{Parent: 0},
	}
	pose := []mcb.BonePose{
		{Translation: [3]int32{mcb.FixedOne, 0, 0}, Scale: identityScale()},
		{Rotation: [3]int32{0, 0, 0x4000}, Scale: identityScale()},
		{Translation: [3]int32{mcb.FixedOne, 0, 0}, Scale: identityScale()},
	}
	worlds := Evaluate(nodes, pose)
	assertVec(t, mathutil.Vec3{2, 0, 0}, worlds[2].MulPoint(mathutil.Vec3{}))
	assertVec(t, mathutil.Vec3{1, 1, 0}, worlds[1].MulPoint(mathutil.Vec3{1, 0, 0}))
}

func TestEvaluateShortPoseFallsBackToIdentity(t *testing.T) {
	nodes := []mcb.HierarchyNode{
		{Parent: -1},
		{Parent: 0},
	}
	pose := []mcb.BonePose{
		{Translation: [3]int32{mcb.FixedOne, 0, 0}, Scale: identityScale()},
	}
	worlds := Evaluate(nodes, pose)
	assertVec(t, mathutil.Vec3{1, 0, 0}, worlds[1].MulPoint(mathutil.Vec3{}))
}

func TestPlaceModel(t *testing.T) {
	m := &mcb.Model{Vertices: []mcb.Vertex{{16, 0, 0}, {0, -32, 0}}}
	world := LocalMatrix(mcb.BonePose{
		Translation: [3]int32{mcb.FixedOne, 0, 0},
		Scale:       identityScale(),
	})
	placed := PlaceModel(m, world)
	require.Len(t, placed, 2)
	assertVec(t, mathutil.Vec3{2, 0, 0}, placed[0])
	assertVec(t, mathutil.Vec3{1, -2, 0}, placed[1])
}
