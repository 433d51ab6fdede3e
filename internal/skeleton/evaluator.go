// Package skeleton turns bone poses into world-space transforms and places
// model geometry under them.
package skeleton

import (
	"math"

	"pds-mcb-extract/internal/mathutil"
	"pds-mcb-extract/internal/mcb"
)

const fixedToFloat = 1.0 / 65536.0

// LocalMatrix builds one bone's local transform from its fixed-point pose.
// Translation units are 16.16 world units; rotation units are 16.16 turns
// (65536 = one full revolution); scale is a plain 16.16 factor. The
// transform order is translate × rotZ × rotY × rotX × scale.
func LocalMatrix(bp mcb.BonePose) mathutil.Mat4 {
	t := mathutil.Vec3{
		float64(bp.Translation[0]) * fixedToFloat,
		float64(bp.Translation[1]) * fixedToFloat,
		float64(bp.Translation[2]) * fixedToFloat,
	}
	rx := float64(bp.Rotation[0]) * fixedToFloat * 2 * math.Pi
	ry := float64(bp.Rotation[1]) * fixedToFloat * 2 * math.Pi
	rz := float64(bp.Rotation[2]) * fixedToFloat * 2 * math.Pi
	s := mathutil.Mat3Diag(
		float64(bp.Scale[0])*fixedToFloat,
		float64(bp.Scale[1])*fixedToFloat,
		float64(bp.Scale[2])*fixedToFloat,
	)
	m := mathutil.Mat3Mul(mathutil.RotZYX(rx, ry, rz), s)
	return mathutil.FromMat3Translation(m, t)
}

// Evaluate computes the world transform of every bone in traversal order.
// A node's parent index always precedes it in the slice, so a single forward
// pass chains each local matrix onto the already-final parent world. A bone
// beyond the pose's length uses an identity pose (unit scale, no motion).
func Evaluate(nodes []mcb.HierarchyNode, pose []mcb.BonePose) []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, len(nodes))
	for i, n := range nodes {
		bp := mcb.BonePose{Scale: [3]int32{mcb.FixedOne, mcb.FixedOne, mcb.FixedOne}}
		if i < len(pose) {
			bp = pose[i]
		}
		local := LocalMatrix(bp)
		if n.Parent >= 0 && n.Parent < i {
			worlds[i] = mathutil.Mat4Mul(worlds[n.Parent], local)
		} else {
			worlds[i] = local
		}
	}
	return worlds
}

// PlaceModel transforms a model's vertices into world space under a bone's
// world matrix. Skinning is rigid: every vertex of a model belongs to the
// one bone the model hangs off.
func PlaceModel(m *mcb.Model, world mathutil.Mat4) []mathutil.Vec3 {
	out := make([]mathutil.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		w := v.World()
		out[i] = world.MulPoint(mathutil.Vec3{w[0], w[1], w[2]})
	}
	return out
}
