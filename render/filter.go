package render

import "github.com/hajimehoshi/ebiten/v2"

// Filter is the effect-chain unit applied by an Effect element (spec
// §4.3's "blur / drop-shadow / color-matrix / grayscale / sepia /
// directional-blur / film-grain"), grounded on willow/filter.go's Filter
// interface.
type Filter interface {
	Apply(src, dst *ebiten.Image)
	Padding() int
}

// filterChainPadding sums the padding every filter in the chain requires,
// so the offscreen render target is allocated large enough to avoid
// clipping blur/shadow spread (willow/filter.go's filterChainPadding).
func filterChainPadding(filters []Filter) int {
	total := 0
	for _, f := range filters {
		total += f.Padding()
	}
	return total
}

// applyFilters runs the chain in order, ping-ponging between two pooled
// offscreen images so each filter reads the previous filter's output.
func applyFilters(filters []Filter, src *ebiten.Image, p *pool) *ebiten.Image {
	if len(filters) == 0 {
		return src
	}
	b := src.Bounds()
	cur := src
	for _, f := range filters {
		dst := p.Acquire(b.Dx(), b.Dy())
		f.Apply(cur, dst)
		if cur != src {
			p.Release(cur)
		}
		cur = dst
	}
	return cur
}

// BlurFilter applies an iterative Kawase-style box blur, matching
// willow/filter.go's BlurFilter approach of repeated small-radius passes
// instead of a single large-kernel Gaussian.
type BlurFilter struct {
	Radius     float64
	Iterations int
}

func (f *BlurFilter) Padding() int { return int(f.Radius*float64(maxI(f.Iterations, 1)) + 1) }

func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	iter := maxI(f.Iterations, 1)
	b := src.Bounds()
	cur := src
	for i := 0; i < iter; i++ {
		out := dst
		if i < iter-1 {
			out = ebiten.NewImage(b.Dx(), b.Dy())
		}
		var op ebiten.DrawImageOptions
		off := f.Radius * (float64(i) + 1) / float64(iter)
		for _, d := range [][2]float64{{off, 0}, {-off, 0}, {0, off}, {0, -off}} {
			op.GeoM.Reset()
			op.GeoM.Translate(d[0], d[1])
			op.ColorScale.ScaleAlpha(0.25)
			out.DrawImage(cur, &op)
		}
		cur = out
	}
}

// DropShadowFilter draws an offset copy of src tinted by R, G, B, A beneath
// it. The copy is not blurred; Blur only widens Padding.
type DropShadowFilter struct {
	OffsetX, OffsetY float64
	Blur             BlurFilter
	R, G, B, A       float64
}

func (f *DropShadowFilter) Padding() int {
	return f.Blur.Padding() + int(maxF(absF(f.OffsetX), absF(f.OffsetY)))
}

func (f *DropShadowFilter) Apply(src, dst *ebiten.Image) {
	shadow := dst
	var tint ebiten.DrawImageOptions
	tint.GeoM.Translate(f.OffsetX, f.OffsetY)
	tint.ColorScale.Scale(float32(f.R), float32(f.G), float32(f.B), float32(f.A))
	shadow.DrawImage(src, &tint)
	var op ebiten.DrawImageOptions
	dst.DrawImage(src, &op)
}

// ColorMatrixFilter applies a 4x5 affine color transform (RGBA + offset),
// as willow/filter.go's Kage color-matrix shader does; here it is computed
// on the CPU via ReadPixels/WritePixels to avoid depending on a shader
// compiler for the port.
type ColorMatrixFilter struct {
	M [20]float32 // row-major 4x5: [r,g,b,a,offset] per output channel
}

func (f *ColorMatrixFilter) Padding() int { return 0 }

func (f *ColorMatrixFilter) Apply(src, dst *ebiten.Image) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	px := make([]byte, 4*w*h)
	src.ReadPixels(px)
	out := make([]byte, len(px))
	for i := 0; i < len(px); i += 4 {
		r := float32(px[i]) / 255
		g := float32(px[i+1]) / 255
		bch := float32(px[i+2]) / 255
		a := float32(px[i+3]) / 255
		out[i] = clampByte(f.M[0]*r + f.M[1]*g + f.M[2]*bch + f.M[3]*a + f.M[4])
		out[i+1] = clampByte(f.M[5]*r + f.M[6]*g + f.M[7]*bch + f.M[8]*a + f.M[9])
		out[i+2] = clampByte(f.M[10]*r + f.M[11]*g + f.M[12]*bch + f.M[13]*a + f.M[14])
		out[i+3] = clampByte(f.M[15]*r + f.M[16]*g + f.M[17]*bch + f.M[18]*a + f.M[19])
	}
	dst.WritePixels(out)
}

// Grayscale returns a ColorMatrixFilter implementing luminance desaturation.
func Grayscale() *ColorMatrixFilter {
	return &ColorMatrixFilter{M: [20]float32{
		0.299, 0.587, 0.114, 0, 0,
		0.299, 0.587, 0.114, 0, 0,
		0.299, 0.587, 0.114, 0, 0,
		0, 0, 0, 1, 0,
	}}
}

// Sepia returns a ColorMatrixFilter implementing the standard sepia tone.
func Sepia() *ColorMatrixFilter {
	return &ColorMatrixFilter{M: [20]float32{
		0.393, 0.769, 0.189, 0, 0,
		0.349, 0.686, 0.168, 0, 0,
		0.272, 0.534, 0.131, 0, 0,
		0, 0, 0, 1, 0,
	}}
}

// DirectionalBlurFilter streaks pixels along a direction vector.
type DirectionalBlurFilter struct {
	DX, DY float64
	Steps  int
}

func (f *DirectionalBlurFilter) Padding() int { return int(maxF(absF(f.DX), absF(f.DY))) }

func (f *DirectionalBlurFilter) Apply(src, dst *ebiten.Image) {
	steps := maxI(f.Steps, 1)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(f.DX*t, f.DY*t)
		op.ColorScale.ScaleAlpha(float32(1.0 / float64(steps)))
		dst.DrawImage(src, &op)
	}
}

// FilmGrainFilter overlays a deterministic pseudo-random luminance noise
// pattern at a given intensity and seed.
type FilmGrainFilter struct {
	Intensity float64
	Seed      uint32
}

func (f *FilmGrainFilter) Padding() int { return 0 }

func (f *FilmGrainFilter) Apply(src, dst *ebiten.Image) {
	var op ebiten.DrawImageOptions
	dst.DrawImage(src, &op)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	px := make([]byte, 4*w*h)
	dst.ReadPixels(px)
	state := f.Seed
	next := func() uint32 {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		return state
	}
	for i := 0; i < len(px); i += 4 {
		n := float64(next()%200)/100 - 1 // [-1,1)
		noise := n * f.Intensity
		px[i] = clampByte(float32(px[i])/255 + float32(noise))
		px[i+1] = clampByte(float32(px[i+1])/255 + float32(noise))
		px[i+2] = clampByte(float32(px[i+2])/255 + float32(noise))
	}
	dst.WritePixels(px)
}

// clampByte clamps a normalized [0,1] channel value and scales it to a byte.
func clampByte(v float32) byte {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return byte(v * 255)
}

func maxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}
func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
func absF(a float64) float64 {
	if a < 0 {
		return -a
	}
	return a
}
