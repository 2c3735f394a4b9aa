// Package textpath implements glyph-along-path distribution, per spec §4.8
// "Text on path". It is used by elements.Text in TextOnPath mode; the
// lottie package does not import it.
package textpath

// Justify controls how glyphs are distributed along the available path
// length.
type Justify int

const (
	JustifyLeft Justify = iota
	JustifyCenter
	JustifyRight
)

// Placement is the resolved position (in path arc-length parameterization)
// and rotation for one glyph.
type Placement struct {
	Distance float64 // arc-length distance from path start
	Angle    float64 // tangent angle, radians
}

// Options configures one distribution pass.
type Options struct {
	FirstMargin  float64
	LastMargin   float64
	Justify      Justify
	ForceAlign   bool
	Perpendicular bool
	Reverse      bool
}

// Distribute places len(advances) glyphs along a path of total length
// pathLength, given each glyph's advance width, per spec §4.8: distribute
// from first_margin to path_length-last_margin; justify left/center/right;
// force-alignment scales per-glyph by available/total; perpendicular
// rotates glyphs 90 degrees to the tangent; reverse flips by adding pi.
func Distribute(advances []float64, pathLength float64, tangentAngle func(distance float64) float64, opt Options) []Placement {
	n := len(advances)
	out := make([]Placement, n)
	if n == 0 {
		return out
	}

	total := 0.0
	for _, a := range advances {
		total += a
	}
	available := pathLength - opt.FirstMargin - opt.LastMargin

	scale := 1.0
	if opt.ForceAlign && total > 0 {
		scale = available / total
	}

	var start float64
	switch opt.Justify {
	case JustifyCenter:
		start = opt.FirstMargin + (available-total*scale)/2
	case JustifyRight:
		start = opt.FirstMargin + (available - total*scale)
	default:
		start = opt.FirstMargin
	}

	cursor := start
	for i, a := range advances {
		glyphWidth := a * scale
		center := cursor + glyphWidth/2
		angle := 0.0
		if tangentAngle != nil {
			angle = tangentAngle(center)
		}
		if opt.Perpendicular {
			angle += 1.5707963267948966 // pi/2
		}
		if opt.Reverse {
			angle += 3.141592653589793
		}
		out[i] = Placement{Distance: center, Angle: angle}
		cursor += glyphWidth
	}

	if opt.Reverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
