package mcb

import "fmt"

// FindPose locates the static pose block for a hierarchy with boneCount
// bones using the default scale tolerance.
func (b *Bundle) FindPose(boneCount int) (*Pose, error) {
	return b.FindPoseTolerance(boneCount, DefaultScaleTolerance)
}

// FindPoseTolerance scans size-eligible pointer-table entries for a region of
// boneCount 36-byte records whose three scale fields all lie within tol of
// FixedOne. Pose blocks carry no other signature; the near-1.0 rest scale is
// the only thing that distinguishes them from arbitrary data. The first
// matching region wins and its entry is retagged KindPose.
//
// On failure the typed ErrPoseNotFound is returned; substituting an identity
// pose is the caller's explicit decision, never this function's.
func (b *Bundle) FindPoseTolerance(boneCount int, tol int32) (*Pose, error) {
	if boneCount < 1 {
		return nil, fmt.Errorf("%w: bone count %d", ErrPoseNotFound, boneCount)
	}
	need := boneCount * poseEntrySize
	for i := range b.Entries {
		e := &b.Entries[i]
		if e.Kind == KindModel || e.Kind == KindHierarchy || e.Kind == KindAnimation {
			continue
		}
		if e.Size < need || int(e.Offset)+need > len(b.data) {
			continue
		}
		if b.poseSignatureAt(e.Offset, boneCount, tol) {
			e.Kind = KindPose
			return b.decodePose(e.Offset, boneCount), nil
		}
	}
	return nil, fmt.Errorf("%w: %d bones", ErrPoseNotFound, boneCount)
}

// poseSignatureAt checks every bone record's scale triplet at +24..35.
func (b *Bundle) poseSignatureAt(off uint32, boneCount int, tol int32) bool {
	for i := 0; i < boneCount; i++ {
		base := int(off) + i*poseEntrySize + 24
		for j := 0; j < 3; j++ {
			d := b.s32(base+j*4) - FixedOne
			if d < -tol || d > tol {
				return false
			}
		}
	}
	return true
}

func (b *Bundle) decodePose(off uint32, boneCount int) *Pose {
	p := &Pose{Offset: off, Bones: make([]BonePose, boneCount)}
	for i := range p.Bones {
		base := int(off) + i*poseEntrySize
		for j := 0; j < 3; j++ {
			p.Bones[i].Translation[j] = b.s32(base + j*4)
			p.Bones[i].Rotation[j] = b.s32(base + 12 + j*4)
			p.Bones[i].Scale[j] = b.s32(base + 24 + j*4)
		}
	}
	return p
}

// IdentityPose builds a rest pose of boneCount bones: zero translation and
// rotation, unit scale. Preview fallback for bundles where FindPose fails.
func IdentityPose(boneCount int) *Pose {
	p := &Pose{Bones: make([]BonePose, boneCount)}
	for i := range p.Bones {
		p.Bones[i].Scale = [3]int32{FixedOne, FixedOne, FixedOne}
	}
	return p
}
