package timeline

import (
	"testing"

	"github.com/kinetic-motion/director/scene"
	"github.com/stretchr/testify/assert"
)

func TestTwoSceneFadeRipple(t *testing.T) {
	// S1: add_scene(3); add_scene(2); add_transition(fade, dur=1, ease=linear).
	tl := New()
	s0 := tl.AddScene(scene.Nil, 3)
	s1 := tl.AddScene(scene.Nil, 2)
	tl.AddTransition(s0, s1, 1, Fade, func(p float64) float64 { return p }, TransitionParams{})

	assert.InDelta(t, 0, tl.Items[0].StartTime, 1e-9)
	assert.InDelta(t, 3, tl.Items[0].End(), 1e-9)
	assert.InDelta(t, 2, tl.Items[1].StartTime, 1e-9)
	assert.InDelta(t, 4, tl.Items[1].End(), 1e-9)
	assert.InDelta(t, 4, tl.TotalDuration(), 1e-9)

	idx, tr := tl.ActiveAt(2.5)
	assert.Equal(t, 0, idx)
	assert.NotNil(t, tr)
	assert.Equal(t, Fade, tr.Kind)
}

func TestAudioRippleOnTransition(t *testing.T) {
	// S5: scene0 dur=3 w/ audio at start=0; scene1 dur=2 w/ audio at start=3.
	tl := New()
	s0 := tl.AddScene(scene.Nil, 3, "audio0")
	s1 := tl.AddScene(scene.Nil, 2, "audio1")
	tl.AddTransition(s0, s1, 1, Fade, nil, TransitionParams{})

	start, ok := tl.AudioStart("audio1")
	assert.True(t, ok)
	assert.InDelta(t, 2, start, 1e-9)

	start0, _ := tl.AudioStart("audio0")
	assert.InDelta(t, 0, start0, 1e-9)
}

func TestTransitionRipplePropertyGeneral(t *testing.T) {
	tl := New()
	tl.AddScene(scene.Nil, 5)
	tl.AddScene(scene.Nil, 5)
	tl.AddScene(scene.Nil, 5)

	before := append([]Item(nil), tl.Items...)
	tl.AddTransition(1, 2, 2, Fade, nil, TransitionParams{})

	assert.InDelta(t, before[0].StartTime, tl.Items[0].StartTime, 1e-9)
	assert.InDelta(t, before[1].StartTime, tl.Items[1].StartTime, 1e-9)
	assert.InDelta(t, before[2].StartTime-2, tl.Items[2].StartTime, 1e-9)
}
