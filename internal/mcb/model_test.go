package mcb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeModelUnitQuad(t *testing.T) {
	b, err := Parse(unitQuadBundle())
	require.NoError(t, err)

	m, err := b.DecodeModel(b.Entries[0].Offset)
	require.NoError(t, err)
	require.Len(t, m.Vertices, 4)
	require.Len(t, m.Quads, 1)

	// Raw 12.4 values scale to world units by /16.
	wantWorld := [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for i, v := range m.Vertices {
		assert.Equal(t, wantWorld[i], v.World(), "vertex %d", i)
	}

	q := m.Quads[0]
	assert.Equal(t, [4]uint16{0, 1, 2, 3}, q.Index)
	assert.False(t, q.IsTriangle())
	assert.Equal(t, 0, q.LightingMode())
	assert.Equal(t, uint16(0x1111), q.Cmd.Ctrl)
	assert.Equal(t, uint16(0x5555), q.Cmd.Size)
}

func TestDecodeModelLightingTailSkip(t *testing.T) {
	// Two quads with 48 bytes of junk lighting data between them. Skipping
	// the wrong amount would misread the second quad's indices.
	w := &buf{}
	w.u32(4)
	w.s32(0).u32(3).u32(128)

	// quad 1 at 16: lighting mode 2, 48-byte tail
	w.u16(0).u16(1).u16(2).u16(2)
	w.u16(0x0200)
	w.pad(10)
	for i := 0; i < 12; i++ {
		w.u32(0xDEADBEEF)
	}

	// quad 2 at 84: mode 0
	w.u16(2).u16(1).u16(0).u16(0)
	w.u16(0x0000)
	w.pad(10)

	// terminator at 104
	w.pad(20)

	// vertex table at 128 (pad from 124)
	w.pad(128 - w.len())
	for i := 0; i < 3; i++ {
		w.s16(int16(i)).s16(0).s16(0)
	}

	b, err := Parse(w.b)
	require.NoError(t, err)
	m, err := b.DecodeModel(4)
	require.NoError(t, err)

	require.Len(t, m.Quads, 2)
	assert.True(t, m.Quads[0].IsTriangle())
	assert.Equal(t, 2, m.Quads[0].LightingMode())
	assert.Equal(t, [4]uint16{2, 1, 0, 0}, m.Quads[1].Index)
}

func TestDecodeModelStopsOnBadIndex(t *testing.T) {
	w := &buf{}
	w.u32(4)
	w.s32(0).u32(2).u32(56)

	// quad 1 valid
	w.u16(0).u16(1).u16(1).u16(0)
	w.u16(0)
	w.pad(10)

	// quad 2 references vertex 7 of 2: stream has desynchronized
	w.u16(7).u16(0).u16(1).u16(1)
	w.u16(0)
	w.pad(10)

	w.pad(56 - w.len())
	w.s16(0).s16(0).s16(0)
	w.s16(16).s16(0).s16(0)

	b, err := Parse(w.b)
	require.NoError(t, err)
	m, err := b.DecodeModel(4)
	require.NoError(t, err)
	assert.Len(t, m.Quads, 1)
}

func TestDecodeModelRejectsBadHeader(t *testing.T) {
	b, err := Parse(unitQuadBundle())
	require.NoError(t, err)

	_, err = b.DecodeModel(uint32(b.Len() - 4))
	assert.Error(t, err)
}
