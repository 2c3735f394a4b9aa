package elements

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kinetic-motion/director/layout"
	"github.com/kinetic-motion/director/render"
	"github.com/kinetic-motion/director/scene"
)

// Effect is a non-leaf wrapper whose render applies its filter chain to
// the accumulated paint of its children rather than drawing itself (spec
// §4.3). When IsAdjustmentLayer is set, the renderer applies the chain to
// the composite beneath it instead (spec §4.7 "Adjustment layers").
type Effect struct {
	PropertyAnimators
	Style   layout.Style
	Chain   []render.Filter
}

func (e *Effect) Kind() string              { return "Effect" }
func (e *Effect) IsContainer() bool         { return true }
func (e *Effect) LayoutStyle() layout.Style { return e.Style }
func (e *Effect) Update(t float64) bool     { return false }
func (e *Effect) Filters() []render.Filter  { return e.Chain }

// Draw is a no-op: Effect paints nothing itself. Its children are painted
// by the renderer's normal recursion, and render.Renderer's special-case
// dispatch (EffectHolder) applies Chain to the accumulated result.
func (e *Effect) Draw(dst *ebiten.Image, rect scene.Rect, transform [6]float64, opacity float64) {}
