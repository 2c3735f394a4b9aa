package audio

import (
	"math/cmplx"

	"github.com/kinetic-motion/director/scene"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// Analyzer computes per-band energy from a window of mono samples via a
// real FFT, used to drive audio-reactive property bindings (spec §4.9,
// SPEC_FULL.md C9 extension). Grounded on the ambilight visualizer's use of
// gonum.org/v1/gonum/dsp/fourier.NewFFT + window.Hamming + cmplx.Abs
// magnitude spectrum, retaining only the first half of the coefficients.
type Analyzer struct {
	fft        *fourier.FFT
	windowSize int
	sampleRate int
}

// NewAnalyzer builds an analyzer for a fixed window size and sample rate.
func NewAnalyzer(windowSize, sampleRate int) *Analyzer {
	return &Analyzer{
		fft:        fourier.NewFFT(windowSize),
		windowSize: windowSize,
		sampleRate: sampleRate,
	}
}

// bandRanges holds the [lowHz, highHz) boundaries of scene.AudioBand's
// three buckets.
var bandRanges = map[scene.AudioBand][2]float64{
	scene.BandBass:  {20, 250},
	scene.BandMids:  {250, 4000},
	scene.BandHighs: {4000, 20000},
}

// BandEnergies windows mono samples with a Hamming window, runs a real FFT,
// and sums magnitude within each of the three AudioBand ranges, normalized
// by bin count so louder windows with more bins don't bias comparisons.
func (a *Analyzer) BandEnergies(mono []float64) map[scene.AudioBand]float64 {
	result := map[scene.AudioBand]float64{}
	if len(mono) != a.windowSize {
		padded := make([]float64, a.windowSize)
		copy(padded, mono)
		mono = padded
	}
	coeff := a.fft.Coefficients(nil, window.Hamming(mono))
	half := coeff[:len(coeff)/2]
	binHz := float64(a.sampleRate) / float64(a.windowSize)

	for band, r := range bandRanges {
		lowBin := int(r[0] / binHz)
		highBin := int(r[1] / binHz)
		if highBin > len(half) {
			highBin = len(half)
		}
		sum := 0.0
		count := 0
		for i := lowBin; i < highBin; i++ {
			sum += cmplx.Abs(half[i])
			count++
		}
		if count > 0 {
			result[band] = sum / float64(count)
		}
	}
	return result
}
