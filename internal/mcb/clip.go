package mcb

import "fmt"

// Clip header flag bits above the 3-bit mode field.
const (
	flagHasPosition = 1 << 3
	flagHasRotation = 1 << 4
	flagHasScale    = 1 << 5
)

// DecodeClip decodes the animation block at off: the 12-byte header, then
// per bone a 0x38-byte track header (9×s16 lengths, u16 pad, 9×u32 data
// offsets) and the track data it points at. Both the track-header table
// offset and the per-track data offsets are relative to the clip start.
//
// A track whose declared length runs past the buffer is clamped to what
// fits — decode overruns are non-fatal end-of-track conditions.
func (b *Bundle) DecodeClip(off uint32) (*Clip, error) {
	if !b.looksLikeAnimation(off) {
		return nil, fmt.Errorf("mcb: no animation block at 0x%x: %w", off, ErrInvalidBundle)
	}
	o := int(off)
	flags := b.u16(o)
	c := &Clip{
		Offset:      off,
		Flags:       flags,
		Mode:        int(flags & 7),
		BoneCount:   int(b.u16(o + 2)),
		FrameCount:  int(b.u16(o + 4)),
		HasPosition: flags&flagHasPosition != 0,
		HasRotation: flags&flagHasRotation != 0,
		HasScale:    flags&flagHasScale != 0,
	}

	table := o + int(b.u32(o+8))
	c.Tracks = make([][NumChannels]Track, c.BoneCount)
	for bone := 0; bone < c.BoneCount; bone++ {
		hdr := table + bone*trackHeaderSize
		for ch := 0; ch < NumChannels; ch++ {
			length := int(b.s16(hdr + ch*2))
			if length <= 0 {
				continue
			}
			dataOff := o + int(b.u32(hdr+20+ch*4))
			if dataOff >= len(b.data) {
				continue
			}
			if avail := (len(b.data) - dataOff) / 2; length > avail {
				length = avail
			}
			entries := make([]uint16, length)
			for i := range entries {
				entries[i] = b.u16(dataOff + i*2)
			}
			c.Tracks[bone][ch] = Track{Entries: entries}
		}
	}
	return c, nil
}

// DecodeClips decodes every entry classified as an animation block. Entries
// that fail to decode are skipped; a bad clip never hides the others.
func (b *Bundle) DecodeClips() []*Clip {
	var clips []*Clip
	for _, e := range b.EntriesOfKind(KindAnimation) {
		c, err := b.DecodeClip(e.Offset)
		if err != nil {
			continue
		}
		clips = append(clips, c)
	}
	return clips
}
