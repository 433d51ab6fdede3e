package mcb

import "encoding/binary"

// buf builds big-endian binary fixtures for decoder tests.
type buf struct {
	b []byte
}

func (w *buf) u32(v uint32) *buf {
	w.b = binary.BigEndian.AppendUint32(w.b, v)
	return w
}

func (w *buf) u16(v uint16) *buf {
	w.b = binary.BigEndian.AppendUint16(w.b, v)
	return w
}

func (w *buf) s16(v int16) *buf {
	return w.u16(uint16(v))
}

func (w *buf) s32(v int32) *buf {
	return w.u32(uint32(v))
}

func (w *buf) pad(n int) *buf {
	w.b = append(w.b, make([]byte, n)...)
	return w
}

func (w *buf) len() int {
	return len(w.b)
}

// unitQuadBundle builds a one-slot bundle holding a single flat quad model:
// four vertices forming a unit square (raw 12.4 values 0 and 16) and one
// mode-0 quad. The model's radius word doubles as the pointer-table
// terminator, so the blob must start with a value that cannot be a slot.
func unitQuadBundle() []byte {
	w := &buf{}
	w.u32(4) // slot 0 -> model at 4

	// model header at 4: radius 0 (stops the table scan), 4 vertices,
	// vertex table at 56
	w.s32(0).u32(4).u32(56)

	// quad at 16: indices 0..3, lighting mode 0, opaque command words
	w.u16(0).u16(1).u16(2).u16(3)
	w.u16(0x0000)
	w.u16(0x1111).u16(0x2222).u16(0x3333).u16(0x4444).u16(0x5555)

	// terminator record: four zero indices
	w.pad(20)

	// vertex table at 56: (0,0,0) (16,0,0) (16,16,0) (0,16,0)
	w.s16(0).s16(0).s16(0)
	w.s16(16).s16(0).s16(0)
	w.s16(16).s16(16).s16(0)
	w.s16(0).s16(16).s16(0)

	return w.b
}

// chainBundle builds a one-slot bundle with a four-node bone tree:
//
//	root -> child A -> child B
//	             \--> sibling C (child of root)
//
// Engine traversal order is root, A, B, C.
func chainBundle() []byte {
	w := &buf{}
	w.u32(4) // slot 0 -> root node at 4

	w.u32(0).u32(16).u32(0) // root at 4: child A, no sibling
	w.u32(0).u32(28).u32(40) // A at 16: child B, sibling C
	w.u32(0).u32(0).u32(0)   // B at 28: leaf
	w.u32(0).u32(0).u32(0)   // C at 40: leaf

	return w.b
}

// posedBundle builds a two-slot bundle: a two-bone hierarchy and an
// unclassifiable blob carrying the rest-pose scale signature for two bones.
func posedBundle(scale int32) []byte {
	w := &buf{}
	w.u32(8)  // slot 0 -> hierarchy root at 8
	w.u32(32) // slot 1 -> pose block at 32

	w.u32(0).u32(20).u32(0) // root at 8: one child
	w.u32(0).u32(0).u32(0)  // child at 20: leaf

	// pose block at 32: two 36-byte bone records
	for i := 0; i < 2; i++ {
		w.s32(int32(i) * 0x20000).s32(0).s32(0) // translation
		w.s32(0).s32(0).s32(0)                  // rotation
		w.s32(scale).s32(scale).s32(scale)      // scale
	}

	return w.b
}

// clipBundle builds a one-slot bundle holding an animation block with one
// bone and one populated channel (translation X).
func clipBundle(flags uint16, frames int, entries []uint16) []byte {
	w := &buf{}
	w.u32(4) // slot 0 -> clip at 4

	// clip header at 4; the flags word read as a u32 exceeds the buffer
	// length, which is what stops the pointer-table scan
	w.u16(flags).u16(1).u16(uint16(frames)).u16(0).u32(12)

	// track header table at 16 (clip-relative 12): one 0x38-byte record
	w.s16(int16(len(entries)))
	for ch := 1; ch < NumChannels; ch++ {
		w.s16(0)
	}
	w.u16(0)
	w.u32(68) // channel 0 data at clip-relative 68 = absolute 72
	for ch := 1; ch < NumChannels; ch++ {
		w.u32(0)
	}

	for _, e := range entries {
		w.u16(e)
	}
	return w.b
}
