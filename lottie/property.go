package lottie

import (
	"sort"

	"github.com/kinetic-motion/director/anim"
)

// Converter turns a raw component slice sampled from keyframes into a
// typed property value (scalar, Vec2, Vec3, Color, ...).
type Converter[T any] func(components []float64) T

// Resolve implements spec §4.8's property sampler: binary-searches the
// keyframe list by time, interpolates the active segment under its
// cubic-Bezier tangent (falling back to linear when no tangent is given),
// holds at a hold keyframe, and clamps out-of-range samples — before the
// first keyframe returns its start value, at-or-after the last keyframe
// returns its end value (scenario S3).
func Resolve[T any](prop *AnimatedProperty, frame float64, convert Converter[T], def T) T {
	if prop == nil {
		return def
	}
	if prop.Animated == 0 {
		if prop.Static == nil {
			return def
		}
		return convert(prop.Static)
	}
	kfs := prop.Keyframes
	if len(kfs) == 0 {
		return def
	}
	if frame < kfs[0].Time {
		return convert(kfs[0].Start)
	}
	last := kfs[len(kfs)-1]
	if frame >= last.Time {
		return convert(valueOrStart(last.End, last.Start))
	}

	idx := sort.Search(len(kfs), func(i int) bool { return kfs[i].Time > frame }) - 1
	if idx < 0 {
		idx = 0
	}
	kf := kfs[idx]
	if kf.Hold {
		return convert(kf.Start)
	}

	var nextTime float64
	if idx+1 < len(kfs) {
		nextTime = kfs[idx+1].Time
	} else {
		nextTime = kf.Time
	}
	span := nextTime - kf.Time
	frac := 0.0
	if span > 0 {
		frac = (frame - kf.Time) / span
	}
	frac = easeFraction(kf, frac)

	start := kf.Start
	end := valueOrStart(kf.End, kf.Start)
	n := len(start)
	if len(end) < n {
		n = len(end)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = start[i] + (end[i]-start[i])*frac
	}
	return convert(out)
}

func valueOrStart(end, start []float64) []float64 {
	if len(end) > 0 {
		return end
	}
	return start
}

// easeFraction applies the keyframe's cubic-Bezier tangent (spec §3's
// solveCubicBezier) to the linear fraction, when one is present.
func easeFraction(kf Keyframe, frac float64) float64 {
	if kf.OutTangent == nil || kf.InTangent == nil {
		return frac
	}
	o, i := kf.OutTangent, kf.InTangent
	if len(o.X) == 0 || len(o.Y) == 0 || len(i.X) == 0 || len(i.Y) == 0 {
		return frac
	}
	return anim.SolveCubicBezier(o.X[0], o.Y[0], i.X[0], i.Y[0], frac)
}

// ScalarConverter reads the first component as a float64.
func ScalarConverter(c []float64) float64 {
	if len(c) == 0 {
		return 0
	}
	return c[0]
}

// Vec2Converter reads the first two components as an anim.Vec2.
func Vec2Converter(c []float64) anim.Vec2 {
	v := anim.Vec2{}
	if len(c) > 0 {
		v.X = c[0]
	}
	if len(c) > 1 {
		v.Y = c[1]
	}
	return v
}

// Vec3Converter reads the first three components as an anim.Vec3.
func Vec3Converter(c []float64) anim.Vec3 {
	v := anim.Vec3{}
	if len(c) > 0 {
		v.X = c[0]
	}
	if len(c) > 1 {
		v.Y = c[1]
	}
	if len(c) > 2 {
		v.Z = c[2]
	}
	return v
}

// ColorConverter reads up to four components (0..1 range, Lottie's native
// color representation) as an anim.Color.
func ColorConverter(c []float64) anim.Color {
	col := anim.Color{A: 1}
	if len(c) > 0 {
		col.R = c[0]
	}
	if len(c) > 1 {
		col.G = c[1]
	}
	if len(c) > 2 {
		col.B = c[2]
	}
	if len(c) > 3 {
		col.A = c[3]
	}
	return col
}
