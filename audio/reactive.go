package audio

import (
	"strconv"
	"sync"

	"github.com/kinetic-motion/director/scene"
)

// ReactiveSource adapts a Mixer + Analyzer pair into anim.BandSampler,
// extracting a window of a single clip's mono samples centered at the
// requested time and running it through the FFT band analysis. Results are
// cached per (trackID, band, quantized time) since the sampler pass (C5)
// may query the same band multiple times per frame for different bindings.
type ReactiveSource struct {
	mixer    *Mixer
	analyzer *Analyzer

	mu    sync.Mutex
	cache map[string]float64
}

// NewReactiveSource builds a source over the given mixer using an analyzer
// with the given FFT window size.
func NewReactiveSource(m *Mixer, windowSize, sampleRate int) *ReactiveSource {
	return &ReactiveSource{
		mixer:    m,
		analyzer: NewAnalyzer(windowSize, sampleRate),
		cache:    map[string]float64{},
	}
}

// BandEnergy implements anim.BandSampler: band is scene.AudioBand cast to
// int by the caller (C1's audio-binding sampler holds only an int to avoid
// anim depending on scene).
func (r *ReactiveSource) BandEnergy(trackID string, band int, t float64) float64 {
	key := cacheKey(trackID, band, t)
	r.mu.Lock()
	if v, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return v
	}
	r.mu.Unlock()

	r.mixer.mu.RLock()
	clip, ok := r.mixer.clips[trackID]
	r.mixer.mu.RUnlock()
	if !ok {
		return 0
	}

	mono := r.extractMono(clip, t)
	energies := r.analyzer.BandEnergies(mono)
	v := energies[scene.AudioBand(band)]

	r.mu.Lock()
	r.cache[key] = v
	r.mu.Unlock()
	return v
}

func (r *ReactiveSource) extractMono(c *Clip, t float64) []float64 {
	n := r.analyzer.windowSize
	out := make([]float64, n)
	if c.SampleRate <= 0 || len(c.Samples) == 0 {
		return out
	}
	clipFrames := len(c.Samples) / maxInt(c.Channels, 1)
	startFrame := int((t-c.StartTime)*float64(c.SampleRate)) - n/2
	for i := 0; i < n; i++ {
		fi := startFrame + i
		if fi < 0 || fi >= clipFrames {
			continue
		}
		if c.Channels >= 2 {
			l := c.Samples[fi*c.Channels]
			rr := c.Samples[fi*c.Channels+1]
			out[i] = float64(l+rr) / 2
		} else {
			out[i] = float64(c.Samples[fi])
		}
	}
	return out
}

// ResetCache clears the memoized band energies; entries are otherwise kept
// for the life of the source.
func (r *ReactiveSource) ResetCache() {
	r.mu.Lock()
	r.cache = map[string]float64{}
	r.mu.Unlock()
}

// cacheKey quantizes t to millisecond resolution for cache-key stability.
func cacheKey(trackID string, band int, t float64) string {
	ms := int64(t * 1000)
	return trackID + "|" + strconv.Itoa(band) + "|" + strconv.FormatInt(ms, 10)
}
