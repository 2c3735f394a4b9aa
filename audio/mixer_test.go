package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMixAddsTwoClipsAndClamps(t *testing.T) {
	m := New()
	loud := make([]float32, 100)
	for i := range loud {
		loud[i] = 0.9
	}
	m.AddClip(&Clip{ID: "a", Samples: loud, SampleRate: 100, Channels: 1, StartTime: 0, Duration: 1})
	m.AddClip(&Clip{ID: "b", Samples: loud, SampleRate: 100, Channels: 1, StartTime: 0, Duration: 1})

	out := m.Mix(10, 0, 100)
	assert.Len(t, out, 20)
	for _, v := range out {
		assert.LessOrEqual(t, v, float32(1.0))
		assert.GreaterOrEqual(t, v, float32(-1.0))
		assert.InDelta(t, 1.0, v, 1e-6) // 0.9 + 0.9 clamps to 1.0
	}
}

func TestMixSkipsClipBeforeStartAndAfterDuration(t *testing.T) {
	m := New()
	samples := make([]float32, 200)
	for i := range samples {
		samples[i] = 0.5
	}
	m.AddClip(&Clip{ID: "a", Samples: samples, SampleRate: 100, Channels: 1, StartTime: 1.0, Duration: 1.0})

	before := m.Mix(5, 0, 100)
	for _, v := range before {
		assert.Equal(t, float32(0), v)
	}

	during := m.Mix(5, 1.5, 100)
	found := false
	for _, v := range during {
		if v != 0 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMixLoopsClipPastItsOwnDuration(t *testing.T) {
	m := New()
	samples := []float32{1, 0, -1, 0} // 4 mono frames at rate 4 => 1s loop
	m.AddClip(&Clip{ID: "a", Samples: samples, SampleRate: 4, Channels: 1, StartTime: 0, Duration: 1, Loop: true})

	out := m.Mix(4, 1.0, 4) // second loop iteration, same pattern
	assert.InDelta(t, 1.0, out[0], 1e-6)
	assert.InDelta(t, 0.0, out[2], 1e-6)
}
