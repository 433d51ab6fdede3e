package mcb

import "fmt"

// DecodeModel decodes the model sub-resource at off: a 12-byte header, the
// vertex table it points at, and the quad stream that follows the header.
//
// The quad stream has no count; it ends at the first record whose four
// indices are all zero. Each 20-byte base record is followed by 0, 8, 48 or
// 24 bytes of lighting data selected by the record's own lighting mode, so
// the mode must be decoded before advancing. A record that would run past
// the buffer ends the stream silently — a partial model is acceptable.
func (b *Bundle) DecodeModel(off uint32) (*Model, error) {
	o := int(off)
	if o+modelHeaderSize > len(b.data) {
		return nil, fmt.Errorf("mcb: model header at 0x%x: %w", off, ErrInvalidBundle)
	}
	radius := b.s32(o)
	vc := int(b.u32(o + 4))
	vo := int(b.u32(o + 8))
	if vc < 1 || vc > maxVertexCount || vo+vc*vertexSize > len(b.data) {
		return nil, fmt.Errorf("mcb: model at 0x%x: bad vertex table (count=%d offset=0x%x)", off, vc, vo)
	}

	m := &Model{
		Offset:   off,
		Radius:   radius,
		Vertices: make([]Vertex, vc),
	}
	for i := range m.Vertices {
		base := vo + i*vertexSize
		m.Vertices[i] = Vertex{b.s16(base), b.s16(base + 2), b.s16(base + 4)}
	}

	pos := o + modelHeaderSize
	for pos+quadBaseSize <= len(b.data) {
		var idx [4]uint16
		for k := range idx {
			idx[k] = b.u16(pos + k*2)
		}
		if idx[0] == 0 && idx[1] == 0 && idx[2] == 0 && idx[3] == 0 {
			break
		}
		if int(idx[0]) >= vc || int(idx[1]) >= vc || int(idx[2]) >= vc || int(idx[3]) >= vc {
			// Out-of-range index: the stream has desynchronized or the model
			// is shorter than the heuristic believed. Keep what we have.
			break
		}
		q := Quad{
			Index:           idx,
			LightingControl: b.u16(pos + 8),
			Cmd: RenderCommand{
				Ctrl: b.u16(pos + 10),
				Pmod: b.u16(pos + 12),
				Colr: b.u16(pos + 14),
				Srca: b.u16(pos + 16),
				Size: b.u16(pos + 18),
			},
		}
		pos += quadBaseSize + lightingTail[q.LightingMode()]
		m.Quads = append(m.Quads, q)
	}

	return m, nil
}
