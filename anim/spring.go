package anim

import "math"

// SpringConfig parameterizes a mass-spring ODE bake.
type SpringConfig struct {
	Stiffness    float64
	Damping      float64
	Mass         float64
	InitVelocity float64
}

const (
	springSubstep      = 1.0 / 240.0
	springSafetyHorizon = 8.0 // seconds
	positionEpsilon    = 1e-3
	velocityEpsilon    = 1e-3
)

// AddSpring bakes a mass-spring ODE from the track's current value to
// target, integrating at a fixed substep with semi-implicit Euler, and
// appends the per-step positions as linear-easing micro-keyframes until
// the system settles (|position-target|<eps and |velocity|<eps) or the
// safety horizon elapses (spec §3).
func (tr *Track[T]) AddSpring(target T, cfg SpringConfig) {
	// Spring integration operates on scalar components; decompose T into a
	// slice of float64 components, integrate each independently (a spring
	// has no cross-axis coupling), and recompose.
	startTime := 0.0
	if n := len(tr.keyframes); n > 0 {
		startTime = tr.keyframes[n-1].time
	}
	from := components(tr.current)
	to := components(target)
	n := len(from)
	if n == 0 || n != len(to) {
		return
	}
	pos := append([]float64(nil), from...)
	vel := make([]float64, n)
	for i := range vel {
		vel[i] = cfg.InitVelocity
	}

	mass := cfg.Mass
	if mass <= 0 {
		mass = 1
	}

	tr.keyframes = append(tr.keyframes, keyframe[T]{
		value: fromComponents[T](pos),
		time:  startTime,
		ease:  EaseLinear,
	})

	t := 0.0
	for t < springSafetyHorizon {
		settled := true
		for i := 0; i < n; i++ {
			disp := pos[i] - to[i]
			accel := (-cfg.Stiffness*disp - cfg.Damping*vel[i]) / mass
			vel[i] += accel * springSubstep
			pos[i] += vel[i] * springSubstep
			if math.Abs(pos[i]-to[i]) >= positionEpsilon || math.Abs(vel[i]) >= velocityEpsilon {
				settled = false
			}
		}
		t += springSubstep
		tr.keyframes = append(tr.keyframes, keyframe[T]{
			value: fromComponents[T](pos),
			time:  startTime + t,
			ease:  EaseLinear,
		})
		if settled {
			break
		}
	}
	tr.keyframes = append(tr.keyframes, keyframe[T]{value: target, time: startTime + t, ease: EaseLinear})
	tr.current = target
}

// components decomposes a Lerpable value into its scalar parts.
func components[T Lerpable](v T) []float64 {
	switch vv := any(v).(type) {
	case float64:
		return []float64{vv}
	case Vec2:
		return []float64{vv.X, vv.Y}
	case Vec3:
		return []float64{vv.X, vv.Y, vv.Z}
	case Vec4:
		return []float64{vv.X, vv.Y, vv.Z, vv.W}
	case Color:
		return []float64{vv.R, vv.G, vv.B, vv.A}
	case FloatVec:
		return append([]float64(nil), vv...)
	}
	return nil
}

// fromComponents recomposes a Lerpable value from its scalar parts.
func fromComponents[T Lerpable](c []float64) T {
	var zero T
	switch any(zero).(type) {
	case float64:
		return any(c[0]).(T)
	case Vec2:
		return any(Vec2{c[0], c[1]}).(T)
	case Vec3:
		return any(Vec3{c[0], c[1], c[2]}).(T)
	case Vec4:
		return any(Vec4{c[0], c[1], c[2], c[3]}).(T)
	case Color:
		return any(Color{c[0], c[1], c[2], c[3]}).(T)
	case FloatVec:
		return any(FloatVec(append([]float64(nil), c...))).(T)
	}
	return zero
}
