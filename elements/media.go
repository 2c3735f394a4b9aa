package elements

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kinetic-motion/director/layout"
	"github.com/kinetic-motion/director/scene"
)

// ObjectFit mirrors CSS object-fit for media elements (spec §4.3).
type ObjectFit int

const (
	FitFill ObjectFit = iota
	FitContain
	FitCover
	FitNone
	FitScaleDown
)

// fitRect computes the drawn (x, y, w, h) for a source of size (sw, sh)
// placed inside dst using fit.
func fitRect(dst scene.Rect, sw, sh float64, fit ObjectFit) (x, y, w, h float64) {
	if sw <= 0 || sh <= 0 {
		return dst.X, dst.Y, dst.W, dst.H
	}
	srcAspect := sw / sh
	dstAspect := dst.W / dst.H
	switch fit {
	case FitFill:
		return dst.X, dst.Y, dst.W, dst.H
	case FitNone:
		return dst.X + (dst.W-sw)/2, dst.Y + (dst.H-sh)/2, sw, sh
	case FitContain, FitScaleDown:
		if srcAspect > dstAspect {
			w = dst.W
			h = w / srcAspect
		} else {
			h = dst.H
			w = h * srcAspect
		}
		if fit == FitScaleDown && (w > sw || h > sh) {
			w, h = sw, sh
		}
		return dst.X + (dst.W-w)/2, dst.Y + (dst.H-h)/2, w, h
	case FitCover:
		if srcAspect > dstAspect {
			h = dst.H
			w = h * srcAspect
		} else {
			w = dst.W
			h = w / srcAspect
		}
		return dst.X + (dst.W-w)/2, dst.Y + (dst.H-h)/2, w, h
	}
	return dst.X, dst.Y, dst.W, dst.H
}

// Image displays a decoded pixel buffer with the given object-fit.
type Image struct {
	PropertyAnimators
	Style   layout.Style
	Source  *ebiten.Image
	Fit     ObjectFit
	LoadErr error // set when the asset failed to load; renders as empty.
}

func (im *Image) Kind() string              { return "Image" }
func (im *Image) IsContainer() bool         { return false }
func (im *Image) LayoutStyle() layout.Style { return im.Style }
func (im *Image) Update(t float64) bool     { return false }

func (im *Image) Draw(dst *ebiten.Image, rect scene.Rect, transform [6]float64, opacity float64) {
	if im.Source == nil || im.LoadErr != nil {
		return // spec §7: asset failure renders as empty/transparent.
	}
	b := im.Source.Bounds()
	x, y, w, h := fitRect(rect, float64(b.Dx()), float64(b.Dy()), im.Fit)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(affineGeoM(transform))
	op.ColorScale.ScaleAlpha(float32(opacity))
	dst.DrawImage(im.Source, &op)
}

// VideoDecoder is implemented by the preview and export decoders of
// package export; Video holds one and asks it for the frame nearest to
// its current local time.
type VideoDecoder interface {
	FrameAt(t float64) (*ebiten.Image, int, int, error)
}

// Video presents decoded video frames through a VideoDecoder, either a
// threaded preview decoder or a synchronous export decoder (spec §4.10).
type Video struct {
	PropertyAnimators
	Style      layout.Style
	Decoder    VideoDecoder
	Fit        ObjectFit
	lastGood   *ebiten.Image
	lastErr    error
}

func (v *Video) Kind() string              { return "Video" }
func (v *Video) IsContainer() bool         { return false }
func (v *Video) LayoutStyle() layout.Style { return v.Style }

func (v *Video) Update(localTime float64) bool {
	if v.Decoder == nil {
		return false
	}
	img, _, _, err := v.Decoder.FrameAt(localTime)
	if err != nil {
		// spec §7: preview decoder failure keeps presenting the last good frame.
		v.lastErr = err
		return false
	}
	v.lastGood = img
	v.lastErr = nil
	return true
}

func (v *Video) Draw(dst *ebiten.Image, rect scene.Rect, transform [6]float64, opacity float64) {
	if v.lastGood == nil {
		return
	}
	b := v.lastGood.Bounds()
	x, y, w, h := fitRect(rect, float64(b.Dx()), float64(b.Dy()), v.Fit)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(affineGeoM(transform))
	op.ColorScale.ScaleAlpha(float32(opacity))
	dst.DrawImage(v.lastGood, &op)
}

// affineGeoM performs the same [a,b,c,d,tx,ty] -> GeoM mapping as
// render.GeoMFromAffine; duplicated here to avoid elements depending on
// render for a single conversion.
func affineGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
