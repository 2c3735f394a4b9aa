package elements

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/kinetic-motion/director/layout"
	"github.com/kinetic-motion/director/scene"
	"github.com/kinetic-motion/director/textpath"
)

// Span is one run of rich text sharing style (spec §4.3).
type Span struct {
	Text     string
	Font     *text.GoTextFace
	Size     float64
	Weight   int
	Italic   bool
	Color    color.RGBA
	Gradient []color.RGBA
}

// GlyphAnimation names a per-glyph animation style.
type GlyphAnimation int

const (
	GlyphAnimNone GlyphAnimation = iota
	GlyphAnimTypewriter
	GlyphAnimWave
	GlyphAnimStagger
)

// PathSource supplies arc length and tangent angle for TextOnPath mode;
// implemented by Vector.
type PathSource interface {
	ArcLength() float64
	TangentAt(distance float64) (x, y, angle float64)
}

// Text is a rich-text element with an optional TextOnPath mode that
// distributes glyphs along a host Vector node's path using the shared
// textpath package (SPEC_FULL.md §4.3). GlyphAnim and AnimSpeed are stored
// but not read by Draw: glyphs are drawn without per-glyph animation.
type Text struct {
	PropertyAnimators
	Style       layout.Style
	Spans       []Span
	GlyphAnim   GlyphAnimation
	AnimSpeed   float64
	TextOnPath  bool
	Path        PathSource
	PathOptions textpath.Options
}

func (t *Text) Kind() string              { return "Text" }
func (t *Text) IsContainer() bool         { return false }
func (t *Text) LayoutStyle() layout.Style { return t.Style }

func (t *Text) Update(localTime float64) bool {
	if t.Opacity != nil {
		t.Opacity.Update(localTime)
		return true
	}
	return false
}

// Draw lays out each span's glyphs on a straight baseline or, when
// TextOnPath is set, distributes them along Path. No per-glyph animation
// offsets are applied.
func (t *Text) Draw(dst *ebiten.Image, rect scene.Rect, transform [6]float64, opacity float64) {
	if t.TextOnPath && t.Path != nil {
		t.drawAlongPath(dst, rect, opacity)
		return
	}
	x := rect.X
	for _, span := range t.Spans {
		if span.Font == nil {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, rect.Y)
		op.ColorScale.ScaleAlpha(float32(opacity))
		op.ColorScale.Scale(float32(span.Color.R)/255, float32(span.Color.G)/255, float32(span.Color.B)/255, 1)
		text.Draw(dst, span.Text, span.Font, op)
		w, _ := text.Measure(span.Text, span.Font, 0)
		x += w
	}
}

func (t *Text) drawAlongPath(dst *ebiten.Image, rect scene.Rect, opacity float64) {
	var advances []float64
	var glyphs []rune
	for _, span := range t.Spans {
		for _, r := range span.Text {
			glyphs = append(glyphs, r)
			advances = append(advances, span.Size*0.6) // approximate advance without shaping
		}
	}
	pathLen := t.Path.ArcLength()
	placements := textpath.Distribute(advances, pathLen, func(d float64) float64 {
		_, _, angle := t.Path.TangentAt(d)
		return angle
	}, t.PathOptions)

	spanIdx := 0
	for i, r := range glyphs {
		if spanIdx >= len(t.Spans) {
			break
		}
		span := t.Spans[spanIdx]
		if span.Font == nil {
			continue
		}
		px, py, _ := t.Path.TangentAt(placements[i].Distance)
		op := &text.DrawOptions{}
		op.GeoM.Rotate(placements[i].Angle)
		op.GeoM.Translate(rect.X+px, rect.Y+py)
		op.ColorScale.ScaleAlpha(float32(opacity))
		text.Draw(dst, string(r), span.Font, op)
	}
}
