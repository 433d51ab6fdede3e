package raster

import (
	"math"

	"pds-mcb-extract/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters for the preview shader.
type LightConfig struct {
	LightDir mathutil.Vec3
	RimDir   mathutil.Vec3
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig returns the preview lighting: a key light high and to
// the left, a dim rim from behind, and hemisphere fill.
func DefaultLightConfig() LightConfig {
	return LightConfig{
		LightDir: mathutil.Vec3{180, 260, 140}.Normalize(),
		RimDir:   mathutil.Vec3{-160, 130, -210}.Normalize(),
		Ambient:  0.55,
		Hemi:     0.50,
		Direct:   1.35,
		Rim:      0.50,
		Exposure: 1.05,
		InvGamma: 1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a unit face normal.
// Lambertian terms use the absolute dot product so back-facing quads light
// the same as front-facing ones; Saturn quads are double-sided.
func (lc *LightConfig) ComputeShade(nx, ny, nz float64) float64 {
	ndlMain := math.Abs(nx*lc.LightDir[0] + ny*lc.LightDir[1] + nz*lc.LightDir[2])
	ndlRim := math.Abs(nx*lc.RimDir[0] + ny*lc.RimDir[1] + nz*lc.RimDir[2])
	hemi := (1.0-math.Abs(ny))*0.5 + 0.5
	return lc.Ambient + hemi*lc.Hemi + ndlMain*lc.Direct + ndlRim*lc.Rim
}

// Precomputed sRGB-to-linear lookup table.
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
