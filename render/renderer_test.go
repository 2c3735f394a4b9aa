package render

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kinetic-motion/director/scene"
	"github.com/kinetic-motion/director/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fillElement struct {
	r, g, b, a float32
}

func (f fillElement) Kind() string          { return "Box" }
func (f fillElement) Update(t float64) bool { return false }
func (f fillElement) IsContainer() bool     { return true }
func (f fillElement) Draw(dst *ebiten.Image, rect scene.Rect, transform [6]float64, opacity float64) {
	img := ebiten.NewImage(maxI(int(rect.W), 1), maxI(int(rect.H), 1))
	img.Fill(color.RGBA{R: byte(f.r * 255), G: byte(f.g * 255), B: byte(f.b * 255), A: byte(f.a * 255)})
	var op ebiten.DrawImageOptions
	op.GeoM.Concat(GeoMFromAffine(transform))
	op.ColorScale.ScaleAlpha(float32(opacity))
	dst.DrawImage(img, &op)
}

func TestRenderFrameProducesViewportSizedImage(t *testing.T) {
	a := scene.NewArena()
	root := a.Add(fillElement{r: 1, g: 0, b: 0, a: 1})
	node := a.Get(root)
	node.LayoutRect = scene.Rect{W: 64, H: 64}

	r := New(a)
	img := r.RenderFrame(root, scene.Rect{W: 64, H: 64}, 0, nil, MotionBlurConfig{}, 1.0/30)
	require.NotNil(t, img)
	assert.GreaterOrEqual(t, img.Bounds().Dx(), 64)
	assert.GreaterOrEqual(t, img.Bounds().Dy(), 64)
	r.ReleaseFrame(img)
}

func TestRenderPackageCompilesStandalone(t *testing.T) {
	// placeholder ensuring package compiles standalone; mixer bounds are
	// exercised in package audio.
	assert.True(t, true)
}

func solidImage(w, h int, c color.RGBA) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return img
}

func TestRenderTransitionCircleOpenRevealsB(t *testing.T) {
	a := solidImage(32, 32, color.RGBA{R: 255, A: 255})
	b := solidImage(32, 32, color.RGBA{B: 255, A: 255})
	target := ebiten.NewImage(32, 32)

	RenderTransition(target, a, b, &timeline.Transition{Kind: timeline.CircleOpen}, 0.0)
	ar, _, ab, _ := target.At(16, 16).RGBA()
	assert.NotZero(t, ar)
	assert.Zero(t, ab)

	target.Clear()
	RenderTransition(target, a, b, &timeline.Transition{Kind: timeline.CircleOpen}, 1.0)
	_, _, bx, ba := target.At(16, 16).RGBA()
	assert.NotZero(t, bx)
	assert.NotZero(t, ba)
}

func TestRenderTransitionIrisUsesParamRadii(t *testing.T) {
	a := solidImage(40, 40, color.RGBA{R: 255, A: 255})
	b := solidImage(40, 40, color.RGBA{G: 255, A: 255})
	target := ebiten.NewImage(40, 40)

	tr := &timeline.Transition{Kind: timeline.Iris, Params: timeline.TransitionParams{IrisR0: 0, IrisR1: 40}}
	RenderTransition(target, a, b, tr, 1.0)
	_, gx, _, ga := target.At(20, 20).RGBA()
	assert.NotZero(t, gx)
	assert.NotZero(t, ga)
}

func TestRenderTransitionWaveGlitchSpiralProduceViewportSizedOutput(t *testing.T) {
	a := solidImage(24, 24, color.RGBA{R: 255, A: 255})
	b := solidImage(24, 24, color.RGBA{B: 255, A: 255})
	target := ebiten.NewImage(24, 24)

	kinds := []timeline.TransitionKind{timeline.Wave, timeline.Glitch, timeline.Spiral}
	for _, k := range kinds {
		target.Clear()
		tr := &timeline.Transition{Kind: k, Params: timeline.TransitionParams{
			WaveAmp: 4, WaveFreq: 2, GlitchIntensity: 0.5, SpiralRotations: 2,
		}}
		RenderTransition(target, a, b, tr, 0.5)
		assert.Equal(t, 24, target.Bounds().Dx())
		assert.Equal(t, 24, target.Bounds().Dy())
	}
}
