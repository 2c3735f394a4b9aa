package render

import "github.com/hajimehoshi/ebiten/v2"

// GeoMFromAffine converts a [a,b,c,d,tx,ty] affine matrix into an
// ebiten.GeoM, for element Draw implementations that need to place their
// content using the full node transform rather than just its rect.
func GeoMFromAffine(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
