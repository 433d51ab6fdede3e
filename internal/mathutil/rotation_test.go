package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotZQuarterTurn(t *testing.T) {
	v := RotZ(math.Pi / 2).MulVec3(Vec3{1, 0, 0})
	assert.InDelta(t, 0, v[0], 1e-12)
	assert.InDelta(t, 1, v[1], 1e-12)
	assert.InDelta(t, 0, v[2], 1e-12)
}

func TestRotZYXComposition(t *testing.T) {
	rx, ry, rz := 0.3, -0.7, 1.1
	want := Mat3Mul(RotZ(rz), Mat3Mul(RotY(ry), RotX(rx)))
	got := RotZYX(rx, ry, rz)
	for i := 0; i < 9; i++ {
		assert.InDelta(t, want[i], got[i], 1e-12, "element %d", i)
	}
}

func TestRotZYXIsOrthonormal(t *testing.T) {
	m := RotZYX(0.4, 1.2, -0.9)
	mt := m.Transpose()
	prod := Mat3Mul(m, mt)
	id := Mat3Identity()
	for i := 0; i < 9; i++ {
		assert.InDelta(t, id[i], prod[i], 1e-12, "element %d", i)
	}
	assert.InDelta(t, 1.0, m.Det(), 1e-12)
}

func TestDeg2Rad(t *testing.T) {
	assert.InDelta(t, math.Pi, Deg2Rad(180), 1e-12)
	assert.InDelta(t, -math.Pi/2, Deg2Rad(-90), 1e-12)
}
