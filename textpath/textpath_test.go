package textpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistributeLeftJustify(t *testing.T) {
	advances := []float64{10, 10, 10}
	placements := Distribute(advances, 100, nil, Options{Justify: JustifyLeft})
	assert.InDelta(t, 5, placements[0].Distance, 1e-9)
	assert.InDelta(t, 15, placements[1].Distance, 1e-9)
	assert.InDelta(t, 25, placements[2].Distance, 1e-9)
}

func TestDistributeForceAlignScalesToAvailable(t *testing.T) {
	advances := []float64{10, 10}
	placements := Distribute(advances, 100, nil, Options{ForceAlign: true, FirstMargin: 0, LastMargin: 0})
	// total=20, available=100, scale=5 -> glyph widths become 50 each.
	assert.InDelta(t, 25, placements[0].Distance, 1e-9)
	assert.InDelta(t, 75, placements[1].Distance, 1e-9)
}

func TestDistributeReverseFlipsOrderAndAngle(t *testing.T) {
	advances := []float64{10, 10}
	tangent := func(d float64) float64 { return 0 }
	placements := Distribute(advances, 100, tangent, Options{Reverse: true})
	assert.InDelta(t, 15, placements[0].Distance, 1e-9)
	assert.InDelta(t, 3.141592653589793, placements[0].Angle, 1e-9)
}
