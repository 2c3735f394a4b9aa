package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnimationEndpoints(t *testing.T) {
	tr := New(0.0)
	tr.AddSegment(0, 10, 2.0, EaseLinear)

	assert.InDelta(t, 0.0, tr.Update(0), 1e-5)
	assert.InDelta(t, 10.0, tr.Update(2.0), 1e-5)
	assert.InDelta(t, 5.0, tr.Update(1.0), 1e-5)
}

func TestKeyframeBinarySearchSegmentBoundaries(t *testing.T) {
	// Exercises Track's own binary search at and beyond segment
	// boundaries; the Lottie keyframe scenario (S3) has its own sampling
	// rule and is tested separately in package lottie.
	tr := New(0.0)
	tr.AddSegment(0, 10, 10, EaseLinear)
	tr.AddSegment(10, 20, 10, EaseLinear)

	cases := map[float64]float64{0: 0, 5: 5, 10: 10, 15: 15, 20: 20, -5: 0, 25: 20}
	for in, want := range cases {
		assert.InDelta(t, want, tr.Update(in), 1e-5, "t=%v", in)
	}
}

func TestSpringSettlesWithinEpsilon(t *testing.T) {
	tr := New(0.0)
	tr.AddSpring(1.0, SpringConfig{Stiffness: 100, Damping: 10, Mass: 1, InitVelocity: 0})

	kfs := tr.Keyframes()
	assert.InDelta(t, 0.0, kfs[0].Value, 1e-9)

	last := kfs[len(kfs)-1]
	assert.InDelta(t, 1.0, last.Value, positionEpsilon)
	assert.LessOrEqual(t, last.Time, springSafetyHorizon+1.0)
}

func TestVec2Lerp(t *testing.T) {
	tr := New(Vec2{0, 0})
	tr.AddSegment(Vec2{0, 0}, Vec2{10, 20}, 1.0, EaseLinear)
	v := tr.Update(0.5)
	assert.InDelta(t, 5.0, v.X, 1e-9)
	assert.InDelta(t, 10.0, v.Y, 1e-9)
}

func TestBindingDefaultRanges(t *testing.T) {
	min, max := DefaultRange("scale")
	assert.Equal(t, 1.0, min)
	assert.Equal(t, 2.0, max)

	min, max = DefaultRange("rotation")
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 30.0, max)

	min, max = DefaultRange("opacity")
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 100.0, max)
}
