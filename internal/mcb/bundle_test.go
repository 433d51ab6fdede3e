package mcb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "too short", data: []byte{0, 0, 1}},
		{name: "no table", data: []byte{0, 0, 0, 0, 0, 0, 0, 0}},
		{name: "first word out of range", data: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidBundle)
		})
	}
}

func TestScanPointerTableStops(t *testing.T) {
	// Three valid slots, then a word pointing at or before the cursor.
	w := &buf{}
	w.u32(100).u32(200).u32(300)
	w.u32(8) // 8 <= position 12, ends the table
	w.pad(400 - w.len())

	b, err := Parse(w.b)
	require.NoError(t, err)
	assert.Equal(t, []uint32{100, 200, 300}, b.Offsets)
}

func TestEntrySizes(t *testing.T) {
	w := &buf{}
	w.u32(100).u32(150).u32(120) // non-monotonic on purpose
	w.pad(200 - w.len())

	b, err := Parse(w.b)
	require.NoError(t, err)
	require.Len(t, b.Entries, 3)

	// Slot 0 spans to slot 1's target; slot 2 follows slot 1 but points
	// backward, so both fall back to end-of-buffer.
	assert.Equal(t, 50, b.Entries[0].Size)
	assert.Equal(t, 50, b.Entries[1].Size)
	assert.Equal(t, 80, b.Entries[2].Size)
}

func TestParseIsDeterministic(t *testing.T) {
	data := unitQuadBundle()
	first, err := Parse(data)
	require.NoError(t, err)
	second, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, first.Offsets, second.Offsets)
	assert.Equal(t, first.Entries, second.Entries)
}

func TestClassifyKinds(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []Kind
	}{
		{name: "model", data: unitQuadBundle(), want: []Kind{KindModel}},
		{name: "hierarchy", data: chainBundle(), want: []Kind{KindHierarchy}},
		{name: "animation", data: clipBundle(0x0009, 4, []uint16{0x0010}), want: []Kind{KindAnimation}},
		{name: "hierarchy plus unknown", data: posedBundle(FixedOne), want: []Kind{KindHierarchy, KindUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse(tt.data)
			require.NoError(t, err)
			require.Len(t, b.Entries, len(tt.want))
			for i, k := range tt.want {
				assert.Equal(t, k, b.Entries[i].Kind, "slot %d", i)
			}
		})
	}
}

func TestClassifyBadEntryDegradesToUnknown(t *testing.T) {
	// Model-shaped header whose vertex table would run past the buffer.
	w := &buf{}
	w.u32(4)
	w.s32(0).u32(5000).u32(16)
	w.pad(40)

	b, err := Parse(w.b)
	require.NoError(t, err)
	require.Len(t, b.Entries, 1)
	assert.Equal(t, KindUnknown, b.Entries[0].Kind)
}
