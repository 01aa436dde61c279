package gfx

import (
	"math"
	"sort"

	"github.com/taigrr/facet/pkg/math3d"
)

// WrapMode determines how ramp coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapClamp  WrapMode = iota // Clamp to edge
	WrapRepeat                 // Tile the ramp
)

// FilterMode determines how ramp sampling is performed.
type FilterMode int

const (
	FilterLinear  FilterMode = iota // Linear interpolation (smooth)
	FilterNearest                   // Nearest texel (banded)
)

// RampStop is one control point of a color ramp.
type RampStop struct {
	At    float64 // Position in [0, 1]
	Color math3d.Vec4
}

// Ramp is a one-dimensional texture of linear RGBA texels, sampled by
// fragment kernels to map a scalar (height, heat) to a color.
type Ramp struct {
	Texels []math3d.Vec4
	Wrap   WrapMode
	Filter FilterMode
}

// NewRamp bakes the stops into a ramp of the given resolution. Stops are
// sorted by position; positions before the first stop or after the last take
// that stop's color.
func NewRamp(resolution int, stops ...RampStop) *Ramp {
	resolution = max(resolution, 2)
	r := &Ramp{Texels: make([]math3d.Vec4, resolution)}
	if len(stops) == 0 {
		return r
	}

	sorted := append([]RampStop(nil), stops...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })

	for i := range r.Texels {
		t := float64(i) / float64(resolution-1)
		r.Texels[i] = evalStops(sorted, t)
	}
	return r
}

func evalStops(stops []RampStop, t float64) math3d.Vec4 {
	if t <= stops[0].At {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.At {
			span := b.At - a.At
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.At)/span)
		}
	}
	return stops[len(stops)-1].Color
}

// Sample returns the ramp color at coordinate u.
func (r *Ramp) Sample(u float64) math3d.Vec4 {
	n := len(r.Texels)
	if n == 0 {
		return math3d.Vec4{}
	}
	u = r.wrapCoord(u)

	switch r.Filter {
	case FilterNearest:
		i := int(math.Round(u * float64(n-1)))
		return r.Texels[i]
	default:
		f := u * float64(n-1)
		i0 := int(math.Floor(f))
		i1 := min(i0+1, n-1)
		return r.Texels[i0].Lerp(r.Texels[i1], f-float64(i0))
	}
}

// wrapCoord applies the wrap mode to a coordinate.
func (r *Ramp) wrapCoord(u float64) float64 {
	switch r.Wrap {
	case WrapRepeat:
		u = u - math.Floor(u) // fmod to [0,1)
	default:
		u = math3d.Clamp(u, 0, 1)
	}
	return u
}
