package mcb

// classify tags every pointer-table entry with the first matching structural
// signature. Order matters: model is the most specific check, hierarchy next,
// animation last. Pose blocks are not detected here — they have no signature
// of their own until a hierarchy supplies a bone count (see FindPose).
// Anything that matches nothing, including entries whose internal offsets
// escape the buffer, stays KindUnknown; a single bad entry never aborts the
// bundle.
func classify(b *Bundle) []Entry {
	entries := make([]Entry, len(b.Offsets))
	for i, off := range b.Offsets {
		e := Entry{Slot: i, Offset: off, Size: b.entrySize(i), Kind: KindUnknown}
		switch {
		case b.looksLikeModel(off):
			e.Kind = KindModel
		case b.looksLikeHierarchy(off):
			e.Kind = KindHierarchy
		case b.looksLikeAnimation(off):
			e.Kind = KindAnimation
		}
		entries[i] = e
	}
	return entries
}

// looksLikeModel tests the 12-byte model header: a plausible vertex count at
// +4 and a vertex table offset at +8 with room for count×6 bytes.
func (b *Bundle) looksLikeModel(off uint32) bool {
	o := int(off)
	if o+modelHeaderSize > len(b.data) {
		return false
	}
	vc := b.u32(o + 4)
	vo := b.u32(o + 8)
	if vc < 1 || vc > maxVertexCount {
		return false
	}
	if !b.inRange(vo) {
		return false
	}
	return int(vo)+int(vc)*vertexSize <= len(b.data)
}

// looksLikeHierarchy tests a 12-byte node: three fields each zero or
// in-range, a nonzero model reference resolving to something model-like, and
// a tree of at least two nodes (a single node is indistinguishable from a
// bare model pointer).
func (b *Bundle) looksLikeHierarchy(off uint32) bool {
	o := int(off)
	if o+hierNodeSize > len(b.data) {
		return false
	}
	m := b.u32(o)
	c := b.u32(o + 4)
	s := b.u32(o + 8)
	if m == 0 && c == 0 && s == 0 {
		return false
	}
	for _, ref := range [3]uint32{m, c, s} {
		if ref != 0 && int64(ref) >= int64(len(b.data)) {
			return false
		}
	}
	if m != 0 && !b.looksLikeModel(m) {
		return false
	}
	return b.countNodes(off) >= 2
}

// countNodes walks the tree iteratively with a visited guard, so cyclic or
// self-referencing garbage terminates instead of recursing forever.
func (b *Bundle) countNodes(root uint32) int {
	visited := make(map[uint32]bool)
	stack := []uint32{root}
	count := 0
	for len(stack) > 0 && count < maxBones {
		off := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if off == 0 || visited[off] || int(off)+hierNodeSize > len(b.data) {
			continue
		}
		visited[off] = true
		count++
		stack = append(stack, b.u32(int(off)+8), b.u32(int(off)+4))
	}
	return count
}

// looksLikeAnimation tests the 12-byte clip header: a known mode in the low
// flag bits, bone and frame counts in 1..500, and a track-header table that
// fits inside the buffer.
func (b *Bundle) looksLikeAnimation(off uint32) bool {
	o := int(off)
	if o+clipHeaderSize > len(b.data) {
		return false
	}
	flags := b.u16(o)
	if flags == 0 {
		return false
	}
	switch flags & 7 {
	case 0, 1, 4, 5:
	default:
		return false
	}
	bones := int(b.u16(o + 2))
	frames := int(b.u16(o + 4))
	if bones < 1 || bones > maxClipBones || frames < 1 || frames > maxClipFrames {
		return false
	}
	tableOff := b.u32(o + 8)
	if tableOff == 0 {
		return false
	}
	return o+int(tableOff)+bones*trackHeaderSize <= len(b.data)
}

// EntriesOfKind returns the classified entries matching kind, in slot order.
func (b *Bundle) EntriesOfKind(kind Kind) []Entry {
	var out []Entry
	for _, e := range b.Entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
