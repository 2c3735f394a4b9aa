// Package elements implements the concrete node kinds of spec §4.3: Box,
// Text, Image, Video, Lottie, Vector, Effect, and Composition, each
// satisfying scene.Element, render.Drawable, and layout.StyleProvider.
//
// Grounded on phanxgames-willow/node.go's kind constructors
// (NewContainer/NewSprite/NewMesh/NewText) for the per-kind dispatch
// shape, phanxgames-willow/filter.go for the Effect kind's filter chain,
// and phanxgames-willow/text.go for Text's use of ebiten/v2/text/v2.
package elements

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/kinetic-motion/director/anim"
	"github.com/kinetic-motion/director/layout"
	"github.com/kinetic-motion/director/render"
	"github.com/kinetic-motion/director/scene"
)

// PropertyAnimators is embedded by every element kind to route typed
// property animation by name (spec §4.3 (v)): opacity, x, y, scale,
// rotation, bg_color, border_radius, font_size, color, etc.
type PropertyAnimators struct {
	Opacity *anim.Track[float64]
	X, Y    *anim.Track[float64]
	ScaleX  *anim.Track[float64]
	ScaleY  *anim.Track[float64]
	Rotation *anim.Track[float64]
	tracks  map[string]*anim.Track[float64]
}

// AnimateFloat registers or replaces a float property animator by name.
func (p *PropertyAnimators) AnimateFloat(name string, tr *anim.Track[float64]) {
	if p.tracks == nil {
		p.tracks = map[string]*anim.Track[float64]{}
	}
	p.tracks[name] = tr
}

// Track returns the named float animator, or nil if none is registered.
func (p *PropertyAnimators) Track(name string) *anim.Track[float64] {
	if p.tracks == nil {
		return nil
	}
	return p.tracks[name]
}

// Shadow is one drop-shadow layer behind a Box. SPEC_FULL.md §4.3 extends
// the distilled spec's single shadow to a stack, as original_source's
// src/node/shape.rs keeps a Vec<Shadow>.
type Shadow struct {
	OffsetX, OffsetY float64
	Blur             float64
	Color            color.RGBA
}

// Box is a rectangle with optional background, border, border radius, and
// a stack of drop shadows; it may have children laid out by its own flex
// style.
type Box struct {
	PropertyAnimators
	Style         layout.Style
	Background    color.RGBA
	HasBackground bool
	BorderRadius  float64
	BorderWidth   float64
	BorderColor   color.RGBA
	Shadows       []Shadow
}

func (b *Box) Kind() string       { return "Box" }
func (b *Box) IsContainer() bool  { return true }
func (b *Box) LayoutStyle() layout.Style { return b.Style }

// Update advances this box's own property tracks to local time t and
// reports whether anything changed (spec §4.3 (ii)).
func (b *Box) Update(t float64) bool {
	changed := false
	if b.Opacity != nil {
		b.Opacity.Update(t)
		changed = true
	}
	if b.X != nil {
		b.X.Update(t)
		changed = true
	}
	if b.Y != nil {
		b.Y.Update(t)
		changed = true
	}
	return changed
}

// Draw paints the box's background, border, and shadows into dst at rect,
// transformed by transform and faded by opacity.
func (b *Box) Draw(dst *ebiten.Image, rect scene.Rect, transform [6]float64, opacity float64) {
	for i := len(b.Shadows) - 1; i >= 0; i-- {
		s := b.Shadows[i]
		drawRoundedRect(dst, rect.X+s.OffsetX, rect.Y+s.OffsetY, rect.W, rect.H, b.BorderRadius, s.Color, opacity)
	}
	if b.HasBackground {
		drawRoundedRect(dst, rect.X, rect.Y, rect.W, rect.H, b.BorderRadius, b.Background, opacity)
	}
	if b.BorderWidth > 0 {
		drawRoundedRectStroke(dst, rect.X, rect.Y, rect.W, rect.H, b.BorderRadius, b.BorderWidth, b.BorderColor, opacity)
	}
}

func drawRoundedRect(dst *ebiten.Image, x, y, w, h, radius float64, c color.RGBA, opacity float64) {
	var path vector.Path
	addRoundedRectPath(&path, x, y, w, h, radius)
	op := &vector.FillOptions{}
	alpha := float32(opacity) * float32(c.A) / 255
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].ColorR = float32(c.R) / 255
		vs[i].ColorG = float32(c.G) / 255
		vs[i].ColorB = float32(c.B) / 255
		vs[i].ColorA = alpha
	}
	_ = op
	var dio ebiten.DrawTrianglesOptions
	dio.AntiAlias = true
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	dst.DrawTriangles(vs, is, white, &dio)
}

func drawRoundedRectStroke(dst *ebiten.Image, x, y, w, h, radius, width float64, c color.RGBA, opacity float64) {
	var path vector.Path
	addRoundedRectPath(&path, x, y, w, h, radius)
	so := &vector.StrokeOptions{Width: float32(width)}
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, so)
	alpha := float32(opacity) * float32(c.A) / 255
	for i := range vs {
		vs[i].ColorR = float32(c.R) / 255
		vs[i].ColorG = float32(c.G) / 255
		vs[i].ColorB = float32(c.B) / 255
		vs[i].ColorA = alpha
	}
	var dio ebiten.DrawTrianglesOptions
	dio.AntiAlias = true
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	dst.DrawTriangles(vs, is, white, &dio)
}

func addRoundedRectPath(path *vector.Path, x, y, w, h, r float64) {
	if r <= 0 {
		path.MoveTo(float32(x), float32(y))
		path.LineTo(float32(x+w), float32(y))
		path.LineTo(float32(x+w), float32(y+h))
		path.LineTo(float32(x), float32(y+h))
		path.Close()
		return
	}
	fx, fy, fw, fh, fr := float32(x), float32(y), float32(w), float32(h), float32(r)
	path.MoveTo(fx+fr, fy)
	path.LineTo(fx+fw-fr, fy)
	path.Arc(fx+fw-fr, fy+fr, fr, -3.14159/2, 0, vector.Clockwise)
	path.LineTo(fx+fw, fy+fh-fr)
	path.Arc(fx+fw-fr, fy+fh-fr, fr, 0, 3.14159/2, vector.Clockwise)
	path.LineTo(fx+fr, fy+fh)
	path.Arc(fx+fr, fy+fh-fr, fr, 3.14159/2, 3.14159, vector.Clockwise)
	path.LineTo(fx, fy+fr)
	path.Arc(fx+fr, fy+fr, fr, 3.14159, 3.14159*3/2, vector.Clockwise)
	path.Close()
}
