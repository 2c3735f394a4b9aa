package elements

import (
	"image"
	"image/color"
	"testing"

	"github.com/kinetic-motion/director/lottie"
	"github.com/stretchr/testify/assert"
)

func solidRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestApplyTintBlendsTowardWhiteRamp(t *testing.T) {
	img := solidRGBA(4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	applyTint(img, map[string][]float64{
		"black":  {0, 0, 0, 1},
		"white":  {1, 0, 0, 1},
		"amount": {100},
	})
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Greater(t, r, g)
	assert.Equal(t, g, b)
}

func TestApplyFillRecolorPreservesAlpha(t *testing.T) {
	img := solidRGBA(2, 2, color.RGBA{R: 10, G: 200, B: 10, A: 128})
	applyFillRecolor(img, map[string][]float64{"color": {0, 0, 1, 1}})
	_, _, bl, a := img.At(0, 0).RGBA()
	assert.NotZero(t, bl)
	assert.InDelta(t, 128.0/255.0, float64(a)/65535.0, 1e-2)
}

func TestApplyLevelsClampsToInputRange(t *testing.T) {
	img := solidRGBA(2, 2, color.RGBA{R: 10, G: 10, B: 10, A: 255})
	applyLevels(img, map[string][]float64{"inputBlack": {50}, "inputWhite": {200}})
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
}

func TestApplyGaussianBlurSpreadsASinglePixel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 9, 9))
	img.SetRGBA(4, 4, color.RGBA{R: 255, A: 255})
	applyGaussianBlur(img, map[string][]float64{"radius": {1}})
	_, _, _, centerA := img.At(4, 4).RGBA()
	_, _, _, neighborA := img.At(5, 4).RGBA()
	assert.NotZero(t, neighborA)
	assert.Greater(t, centerA, neighborA)
}

func TestApplyTwirlLeavesCenterFixed(t *testing.T) {
	img := solidRGBA(20, 20, color.RGBA{R: 255, A: 255})
	before := img.At(10, 10)
	applyTwirl(img, map[string][]float64{"angle": {90}, "radius": {15}})
	after := img.At(10, 10)
	assert.Equal(t, before, after)
}

func TestCompositeNodeAppliesEffectsOnlyWithinItsOwnSubtree(t *testing.T) {
	child := &lottie.RenderNode{
		Kind: lottie.ContentShape,
		Paths: []lottie.MaterializedPath{{
			Path: lottie.BezierPath{Closed: true, Vertices: [][2]float64{{2, 2}, {8, 2}, {8, 8}, {2, 8}}},
			Fill: &lottie.Paint{R: 1, G: 0, B: 0, A: 1},
		}},
		Alpha: 1,
		Effects: []lottie.EffectInstance{{
			Type: string(lottie.EffectFill), Supported: true,
			Params: map[string][]float64{"color": {0, 0, 1, 1}},
		}},
		Transform: lottie.Identity4(),
	}
	root := &lottie.RenderNode{Kind: lottie.ContentGroup, Transform: lottie.Identity4(), Children: []*lottie.RenderNode{child}}

	img := rasterizeNodes([]*lottie.RenderNode{root}, 10, 10)
	_, _, bl, _ := img.At(5, 5).RGBA()
	assert.NotZero(t, bl)
}
