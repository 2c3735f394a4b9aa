package lottie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestResolveLottieKeyframeScenario mirrors spec scenario S3 exactly:
// keyframes [(t=0,s=0,e=10), (t=10,s=10,e=20), (t=20,s=20,e=30)], sampled
// at frames 0, 5, 10, 15, 20, -5, 25 should yield 0, 5, 10, 15, 30, 0, 30.
func TestResolveLottieKeyframeScenario(t *testing.T) {
	prop := &AnimatedProperty{
		Animated: 1,
		Keyframes: []Keyframe{
			{Time: 0, Start: []float64{0}, End: []float64{10}},
			{Time: 10, Start: []float64{10}, End: []float64{20}},
			{Time: 20, Start: []float64{20}, End: []float64{30}},
		},
	}

	frames := []float64{0, 5, 10, 15, 20, -5, 25}
	expected := []float64{0, 5, 10, 15, 30, 0, 30}

	for i, f := range frames {
		got := Resolve(prop, f, ScalarConverter, 0.0)
		assert.InDelta(t, expected[i], got, 1e-9, "frame %v", f)
	}
}

func TestResolveStaticProperty(t *testing.T) {
	prop := &AnimatedProperty{Animated: 0, Static: []float64{42}}
	assert.Equal(t, 42.0, Resolve(prop, 100, ScalarConverter, 0.0))
}

func TestResolveHoldKeyframeFreezesValue(t *testing.T) {
	prop := &AnimatedProperty{
		Animated: 1,
		Keyframes: []Keyframe{
			{Time: 0, Start: []float64{1}, End: []float64{5}, Hold: true},
			{Time: 10, Start: []float64{5}, End: []float64{9}},
		},
	}
	assert.Equal(t, 1.0, Resolve(prop, 5, ScalarConverter, 0.0))
}

func TestResolveNilPropertyReturnsDefault(t *testing.T) {
	assert.Equal(t, 7.0, Resolve[float64](nil, 0, ScalarConverter, 7.0))
}
