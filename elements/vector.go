package elements

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kinetic-motion/director/layout"
	"github.com/kinetic-motion/director/scene"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Vector renders an SVG-like path, rasterized via srwiley/oksvg +
// srwiley/rasterx — the same stack RetroCodeRamen-Nitro-Core-DX uses for
// vector path rasterization, grounded in SPEC_FULL.md's domain stack.
type Vector struct {
	PropertyAnimators
	Style  layout.Style
	SVG    *oksvg.SvgIcon
	cached *ebiten.Image
	arcLen float64
	points []pathPoint
}

type pathPoint struct {
	x, y, cumLen, angle float64
}

func (v *Vector) Kind() string              { return "Vector" }
func (v *Vector) IsContainer() bool         { return false }
func (v *Vector) LayoutStyle() layout.Style { return v.Style }
func (v *Vector) Update(t float64) bool     { return false }

func (v *Vector) Draw(dst *ebiten.Image, rect scene.Rect, transform [6]float64, opacity float64) {
	if v.SVG == nil {
		return
	}
	w, h := int(rect.W), int(rect.H)
	if w <= 0 || h <= 0 {
		return
	}
	rgba := rasterizeSVG(v.SVG, w, h)
	img := ebiten.NewImageFromImage(rgba)
	v.cached = img
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(rect.X, rect.Y)
	op.GeoM.Concat(affineGeoM(transform))
	op.ColorScale.ScaleAlpha(float32(opacity))
	dst.DrawImage(img, &op)
}

func rasterizeSVG(icon *oksvg.SvgIcon, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return img
}

// ArcLength returns the cached total arc length of the polyline passed to
// SetPolyline, used by textpath-driven TextOnPath distribution.
func (v *Vector) ArcLength() float64 { return v.arcLen }

// TangentAt returns the point and tangent angle at the given arc-length
// distance along the cached path polyline.
func (v *Vector) TangentAt(distance float64) (x, y, angle float64) {
	if len(v.points) < 2 {
		return 0, 0, 0
	}
	if distance <= 0 {
		p0, p1 := v.points[0], v.points[1]
		return p0.x, p0.y, math.Atan2(p1.y-p0.y, p1.x-p0.x)
	}
	for i := 1; i < len(v.points); i++ {
		if v.points[i].cumLen >= distance {
			prev := v.points[i-1]
			cur := v.points[i]
			segLen := cur.cumLen - prev.cumLen
			t := 0.0
			if segLen > 0 {
				t = (distance - prev.cumLen) / segLen
			}
			x = prev.x + (cur.x-prev.x)*t
			y = prev.y + (cur.y-prev.y)*t
			angle = math.Atan2(cur.y-prev.y, cur.x-prev.x)
			return x, y, angle
		}
	}
	last := v.points[len(v.points)-1]
	return last.x, last.y, last.angle
}

// SetPolyline precomputes arc-length and tangent data from a flattened
// point list, called once after the SVG path is parsed/flattened.
func (v *Vector) SetPolyline(pts [][2]float64) {
	v.points = make([]pathPoint, len(pts))
	cum := 0.0
	for i, p := range pts {
		angle := 0.0
		if i > 0 {
			prev := pts[i-1]
			cum += math.Hypot(p[0]-prev[0], p[1]-prev[1])
			angle = math.Atan2(p[1]-prev[1], p[0]-prev[0])
		}
		v.points[i] = pathPoint{x: p[0], y: p[1], cumLen: cum, angle: angle}
	}
	v.arcLen = cum
}
