package anim

import "sort"

// keyframe is one (target_value, cumulative_time, easing) tuple per spec
// §3's "Animated value".
type keyframe[T Lerpable] struct {
	value T
	time  float64
	ease  Easing
}

// Track is a time-ordered sequence of keyframes sampled by Update. The
// zero value is ready to use once initialized with New.
type Track[T Lerpable] struct {
	keyframes []keyframe[T]
	current   T
}

// New returns a track whose current value is initial and which has no
// segments yet.
func New[T Lerpable](initial T) *Track[T] {
	return &Track[T]{current: initial}
}

// Current returns the track's most recently sampled value.
func (tr *Track[T]) Current() T { return tr.current }

// SetCurrent overwrites the track's current value directly, bypassing
// keyframe interpolation. Used by audio-reactive bindings (spec §4.2),
// which drive a property straight from band energy rather than a
// keyframe timeline.
func (tr *Track[T]) SetCurrent(v T) { tr.current = v }

// AddSegment appends a segment from start to target lasting duration
// seconds, starting immediately after the track's last keyframe (or at
// t=0 for an empty track). If the track is non-empty, a zero-duration
// jump to start is inserted first so the new segment begins cleanly
// (spec §4.2).
func (tr *Track[T]) AddSegment(start, target T, duration float64, ease Easing) {
	startTime := 0.0
	if n := len(tr.keyframes); n > 0 {
		startTime = tr.keyframes[n-1].time
		tr.keyframes = append(tr.keyframes, keyframe[T]{value: start, time: startTime})
	} else {
		tr.keyframes = append(tr.keyframes, keyframe[T]{value: start, time: startTime})
	}
	tr.keyframes = append(tr.keyframes, keyframe[T]{value: target, time: startTime + duration, ease: ease})
}

// Update seeks to the bracketing keyframe pair for time t via binary
// search (O(log n)) and interpolates under the trailing keyframe's easing,
// storing and returning the result.
func (tr *Track[T]) Update(t float64) T {
	n := len(tr.keyframes)
	if n == 0 {
		return tr.current
	}
	if t <= tr.keyframes[0].time {
		tr.current = tr.keyframes[0].value
		return tr.current
	}
	if t >= tr.keyframes[n-1].time {
		tr.current = tr.keyframes[n-1].value
		return tr.current
	}
	// Binary search for the first keyframe with time > t.
	idx := sort.Search(n, func(i int) bool { return tr.keyframes[i].time > t })
	lo := tr.keyframes[idx-1]
	hi := tr.keyframes[idx]
	span := hi.time - lo.time
	var p float64
	if span > 0 {
		p = (t - lo.time) / span
	}
	p = hi.ease.Apply(p)
	tr.current = lerp(lo.value, hi.value, p)
	return tr.current
}

// Keyframes exposes the raw segment list for tests and the Lottie property
// sampler, which needs direct access to tangents beyond what Update alone
// offers.
func (tr *Track[T]) Keyframes() []struct {
	Value T
	Time  float64
	Ease  Easing
} {
	out := make([]struct {
		Value T
		Time  float64
		Ease  Easing
	}, len(tr.keyframes))
	for i, k := range tr.keyframes {
		out[i] = struct {
			Value T
			Time  float64
			Ease  Easing
		}{k.value, k.time, k.ease}
	}
	return out
}
