package shaders

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// hash3 maps a lattice point to a pseudo-random value in [0, 1). It is the
// sin-fract hash used by the WGSL sources, so CPU and GPU agree.
func hash3(p math3d.Vec3) float64 {
	return math3d.Fract(math.Sin(p.Dot(math3d.V3(127.1, 311.7, 74.7))) * 43758.5453)
}

// ValueNoise returns smooth 3D value noise in [0, 1).
func ValueNoise(p math3d.Vec3) float64 {
	i := p.Floor()
	f := p.Fract()
	// cubic fade f*f*(3-2f)
	w := f.Mul(f).Mul(math3d.Splat3(3).Sub(f.Scale(2)))

	c000 := hash3(i)
	c100 := hash3(i.Add(math3d.V3(1, 0, 0)))
	c010 := hash3(i.Add(math3d.V3(0, 1, 0)))
	c110 := hash3(i.Add(math3d.V3(1, 1, 0)))
	c001 := hash3(i.Add(math3d.V3(0, 0, 1)))
	c101 := hash3(i.Add(math3d.V3(1, 0, 1)))
	c011 := hash3(i.Add(math3d.V3(0, 1, 1)))
	c111 := hash3(i.Add(math3d.V3(1, 1, 1)))

	x00 := math3d.Mix(c000, c100, w.X)
	x10 := math3d.Mix(c010, c110, w.X)
	x01 := math3d.Mix(c001, c101, w.X)
	x11 := math3d.Mix(c011, c111, w.X)
	y0 := math3d.Mix(x00, x10, w.Y)
	y1 := math3d.Mix(x01, x11, w.Y)
	return math3d.Mix(y0, y1, w.Z)
}

// fbmOctaves matches the unrolled sum in the WGSL sources.
const fbmOctaves = 4

// FBM sums fbmOctaves octaves of value noise, doubling frequency and halving
// amplitude each octave, normalized to [0, 1).
func FBM(p math3d.Vec3) float64 {
	var sum, norm float64
	amp := 0.5
	for range fbmOctaves {
		sum += ValueNoise(p) * amp
		norm += amp
		p = p.Scale(2)
		amp *= 0.5
	}
	return sum / norm
}
