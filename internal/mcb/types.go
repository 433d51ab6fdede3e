package mcb

// Kind classifies a pointer-table entry. The MCB format carries no type
// tags, so every kind is inferred from structural signatures.
type Kind int

const (
	KindUnknown Kind = iota
	KindModel
	KindHierarchy
	KindAnimation
	KindPose
)

func (k Kind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindHierarchy:
		return "hierarchy"
	case KindAnimation:
		return "animation"
	case KindPose:
		return "pose"
	default:
		return "unknown"
	}
}

// Entry is one classified pointer-table slot.
type Entry struct {
	Slot   int
	Offset uint32
	Size   int
	Kind   Kind
}

// Vertex holds one raw vertex: 3×s16, 12.4 fixed point (raw/16 = world units).
type Vertex [3]int16

// World converts the raw 12.4 coordinates to floating-point world units.
func (v Vertex) World() [3]float64 {
	return [3]float64{
		float64(v[0]) / 16.0,
		float64(v[1]) / 16.0,
		float64(v[2]) / 16.0,
	}
}

// RenderCommand carries the opaque per-quad VDP1 command fields. The decoder
// forwards these untouched; only the texture/rendering collaborator
// interprets them.
type RenderCommand struct {
	Ctrl uint16
	Pmod uint16
	Colr uint16
	Srca uint16
	Size uint16
}

// Quad is one face of a model. Index C == Index D marks a 3-vertex face.
type Quad struct {
	Index           [4]uint16
	LightingControl uint16
	Cmd             RenderCommand
}

// LightingMode returns the 2-bit mode selecting the trailing lighting-data
// length (0, 8, 48 or 24 bytes).
func (q Quad) LightingMode() int {
	return int(q.LightingControl>>8) & 3
}

// IsTriangle reports whether the quad degenerates to a 3-vertex face.
func (q Quad) IsTriangle() bool {
	return q.Index[2] == q.Index[3]
}

// Model holds one decoded model sub-resource.
type Model struct {
	Offset   uint32
	Radius   int32 // 20.12 fixed, informational only
	Vertices []Vertex
	Quads    []Quad
}

// HierarchyNode is one bone of a hierarchy tree in traversal order. The slice
// index in Hierarchy.Nodes is the bone index — the join key shared with pose
// blocks and animation tracks.
type HierarchyNode struct {
	Offset      uint32
	ModelOffset uint32
	Child       uint32
	Sibling     uint32
	Depth       int
	Parent      int // bone index of the parent node, -1 at the root
}

// Hierarchy is the ordered bone array produced by WalkHierarchy.
type Hierarchy struct {
	Root  uint32
	Nodes []HierarchyNode
}

// BoneCount returns the number of bones in traversal order.
func (h *Hierarchy) BoneCount() int {
	return len(h.Nodes)
}

// BonePose holds one bone's transform in raw 16.16 fixed point.
// Rotation: 0x10000 = 360°. Rest scale is 0x10000 per axis.
type BonePose struct {
	Translation [3]int32
	Rotation    [3]int32
	Scale       [3]int32
}

// Pose is a decoded static pose block. len(Bones) equals the bone count of
// the hierarchy it was resolved for.
type Pose struct {
	Offset uint32
	Bones  []BonePose
}

// Animation channel indices within a bone's 9-track group.
const (
	ChTransX = iota
	ChTransY
	ChTransZ
	ChRotX
	ChRotY
	ChRotZ
	ChScaleX
	ChScaleY
	ChScaleZ

	NumChannels = 9
)

// Track is the run-length/delta-encoded time series for one (bone, channel)
// pair. Entries are raw 16-bit values; internal/anim interprets them.
type Track struct {
	Entries []uint16
}

// Clip is a decoded animation block header plus all per-bone tracks.
// BoneCount may be less than the hierarchy bone count; trailing bones keep
// the static pose.
type Clip struct {
	Offset      uint32
	Flags       uint16
	Mode        int
	BoneCount   int
	FrameCount  int
	HasPosition bool
	HasRotation bool
	HasScale    bool
	Tracks      [][NumChannels]Track // indexed by bone
}

// Byte-layout and sanity constants, all from the Saturn engine's structures.
const (
	modelHeaderSize = 12
	vertexSize      = 6
	quadBaseSize    = 20
	hierNodeSize    = 12
	poseEntrySize   = 36
	clipHeaderSize  = 12
	trackHeaderSize = 0x38 // 9×s16 lengths + u16 pad + 9×u32 offsets

	maxVertexCount = 5000
	maxClipBones   = 500
	maxClipFrames  = 500
	maxBones       = 512 // hierarchy walk guard on malformed trees

	// FixedOne is 1.0 in 16.16 fixed point, the unit of pose transforms.
	FixedOne = 0x10000

	// DefaultScaleTolerance is the band around FixedOne that pose-block scale
	// fields must fall into. Empirical, not a hardware constant — tunable.
	DefaultScaleTolerance = 0x8000
)

// lightingTail maps a quad's lighting mode to the number of trailing bytes
// after the 20-byte base record. Skipping the wrong amount desynchronizes
// every subsequent quad.
var lightingTail = [4]int{0, 8, 48, 24}
