package audio

import (
	"math"
	"testing"

	"github.com/kinetic-motion/director/scene"
	"github.com/stretchr/testify/assert"
)

func TestBandEnergiesFindsDominantBassTone(t *testing.T) {
	const sampleRate = 8000
	const windowSize = 1024
	freq := 100.0 // within the Bass band (20-250Hz)

	mono := make([]float64, windowSize)
	for i := range mono {
		mono[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}

	a := NewAnalyzer(windowSize, sampleRate)
	energies := a.BandEnergies(mono)

	assert.Greater(t, energies[scene.BandBass], energies[scene.BandHighs])
}

func TestBandEnergiesPadsShortWindow(t *testing.T) {
	a := NewAnalyzer(64, 8000)
	energies := a.BandEnergies([]float64{1, 0, -1, 0})
	assert.NotNil(t, energies)
}
