package elements

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kinetic-motion/director/layout"
	"github.com/kinetic-motion/director/scene"
)

// SubEngine is implemented by the root director.Engine; Composition holds
// one to render a nested scene graph into an offscreen buffer and blit the
// result, mirroring willow's nested-scene render-to-texture pattern.
type SubEngine interface {
	RenderAt(t float64, w, h int) *ebiten.Image
}

// Composition is a pre-composition: an independent scene rendered on its
// own timeline and blitted into the parent tree as a single image, per
// spec §4.3's "nested composition" element kind.
type Composition struct {
	PropertyAnimators
	Style     layout.Style
	Engine    SubEngine
	StartTime float64 // the nested composition's own local_time offset
	TimeScale float64 // 1.0 = real time; supports speed-ramped pre-comps
}

func (c *Composition) Kind() string              { return "Composition" }
func (c *Composition) IsContainer() bool         { return false }
func (c *Composition) LayoutStyle() layout.Style { return c.Style }

func (c *Composition) Update(localTime float64) bool {
	if c.Opacity != nil {
		c.Opacity.Update(localTime)
	}
	return c.Engine != nil
}

func (c *Composition) Draw(dst *ebiten.Image, rect scene.Rect, transform [6]float64, opacity float64) {
	if c.Engine == nil {
		return
	}
	w, h := int(rect.W), int(rect.H)
	if w <= 0 || h <= 0 {
		return
	}
	scale := c.TimeScale
	if scale == 0 {
		scale = 1.0
	}
	frame := c.Engine.RenderAt(c.StartTime*scale, w, h)
	if frame == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(rect.X, rect.Y)
	op.GeoM.Concat(affineGeoM(transform))
	op.ColorScale.ScaleAlpha(float32(opacity))
	dst.DrawImage(frame, &op)
}
