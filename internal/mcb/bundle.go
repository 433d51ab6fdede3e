package mcb

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrInvalidBundle means the buffer cannot be parsed at all (too short or
	// no usable pointer table). Per-entry problems never produce this; they
	// degrade the single entry to KindUnknown instead.
	ErrInvalidBundle = errors.New("mcb: invalid bundle")

	// ErrPoseNotFound means no candidate region carried the pose-block scale
	// signature for the requested bone count. Callers may substitute
	// IdentityPose for preview output; the resolver never does so silently.
	ErrPoseNotFound = errors.New("mcb: pose block not found")
)

// Bundle is an immutable asset file plus its derived pointer table and
// classified entries. All decode methods are read-only; one parsed Bundle is
// safe to share across any number of display instances.
type Bundle struct {
	data    []byte
	Offsets []uint32
	Entries []Entry
}

// Parse scans the pointer table and classifies every entry.
func Parse(data []byte) (*Bundle, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidBundle, len(data))
	}
	b := &Bundle{data: data}
	b.Offsets = scanPointerTable(data)
	if len(b.Offsets) == 0 {
		return nil, fmt.Errorf("%w: empty pointer table", ErrInvalidBundle)
	}
	b.Entries = classify(b)
	return b, nil
}

// Len returns the bundle size in bytes.
func (b *Bundle) Len() int {
	return len(b.data)
}

// scanPointerTable reads sequential big-endian u32 offsets from the start of
// the buffer. The table has no length field; it ends at the first value that
// is out of range or does not point past the scan cursor (the first entry's
// payload typically begins right where the table stops).
func scanPointerTable(data []byte) []uint32 {
	var offsets []uint32
	for pos := 0; pos+4 <= len(data); pos += 4 {
		v := binary.BigEndian.Uint32(data[pos:])
		if int64(v) >= int64(len(data)) || int(v) <= pos {
			break
		}
		offsets = append(offsets, v)
	}
	return offsets
}

// entrySize estimates the byte span of slot i: up to the next slot's target
// if it lies beyond this one, otherwise to the end of the buffer. Offsets
// need not be monotonic, so this is an upper bound used only for
// size-eligibility checks.
func (b *Bundle) entrySize(i int) int {
	off := int(b.Offsets[i])
	if i+1 < len(b.Offsets) && int(b.Offsets[i+1]) > off {
		return int(b.Offsets[i+1]) - off
	}
	return len(b.data) - off
}

// Bounds-checked big-endian readers. Out-of-range reads return zero; every
// classifier and decoder checks sizes before trusting a value.

func (b *Bundle) u32(off int) uint32 {
	if off < 0 || off+4 > len(b.data) {
		return 0
	}
	return binary.BigEndian.Uint32(b.data[off:])
}

func (b *Bundle) s32(off int) int32 {
	return int32(b.u32(off))
}

func (b *Bundle) u16(off int) uint16 {
	if off < 0 || off+2 > len(b.data) {
		return 0
	}
	return binary.BigEndian.Uint16(b.data[off:])
}

func (b *Bundle) s16(off int) int16 {
	return int16(b.u16(off))
}

// inRange reports whether off is a usable non-zero offset into the buffer.
func (b *Bundle) inRange(off uint32) bool {
	return off != 0 && int64(off) < int64(len(b.data))
}
