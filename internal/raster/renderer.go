// Package raster renders placed geometry into flat-shaded preview images.
// It lives entirely outside the decode path; nothing in the decoders depends
// on it.
package raster

import (
	"image"
	"math"

	"pds-mcb-extract/internal/mathutil"
	"pds-mcb-extract/internal/mcb"
)

// Piece is one bone's renderable geometry: world-space vertex positions and
// the quads that index them.
type Piece struct {
	Positions []mathutil.Vec3
	Quads     []mcb.Quad
}

// Fixed preview camera: tilt the skeleton toward the viewer, then swing it
// so both front and side read in a single frame.
var previewView = mathutil.Mat3Mul(
	mathutil.RotX(mathutil.Deg2Rad(-15)),
	mathutil.RotY(mathutil.Deg2Rad(25)),
)

// Render orthographically projects pieces into a size×size NRGBA image,
// rasterizing at size×supersample and leaving the downsample to the caller.
// The model is auto-fitted: its rotated bounding box is centered and scaled
// to fill the frame minus a fixed margin.
func Render(pieces []Piece, size, supersample int) *image.NRGBA {
	renderSize := size * supersample

	allMin := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	rotated := make([][]mathutil.Vec3, len(pieces))
	for pi, p := range pieces {
		rotated[pi] = make([]mathutil.Vec3, len(p.Positions))
		for vi, v := range p.Positions {
			tv := previewView.MulVec3(v)
			rotated[pi][vi] = tv
			for k := 0; k < 3; k++ {
				if tv[k] < allMin[k] {
					allMin[k] = tv[k]
				}
				if tv[k] > allMax[k] {
					allMax[k] = tv[k]
				}
			}
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	if allMin[0] > allMax[0] {
		return img
	}

	center := allMin.Add(allMax).Scale(0.5)
	span := allMax[0] - allMin[0]
	if s := allMax[1] - allMin[1]; s > span {
		span = s
	}
	if span < 0.001 {
		span = 0.001
	}
	margin := 16 * supersample
	scale := float64(renderSize-2*margin) / span
	half := float64(renderSize) / 2

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	for pi, p := range pieces {
		n := len(p.Positions)
		px := make([]float64, n)
		py := make([]float64, n)
		pz := make([]float64, n)
		for vi, tv := range rotated[pi] {
			// Screen y grows downward; model y grows up.
			px[vi] = (tv[0]-center[0])*scale + half
			py[vi] = (center[1]-tv[1])*scale + half
			pz[vi] = tv[2] - center[2]
		}
		for _, q := range p.Quads {
			a, b, c, d := int(q.Index[0]), int(q.Index[1]), int(q.Index[2]), int(q.Index[3])
			RasterizeTriangle(fb, px, py, pz, [3]int{a, b, c}, &lc)
			if !q.IsTriangle() {
				RasterizeTriangle(fb, px, py, pz, [3]int{a, c, d}, &lc)
			}
		}
	}

	copy(img.Pix, fb.Color)
	return img
}
