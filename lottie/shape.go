package lottie

// Shape is one entry in a Lottie shape layer's "shapes" list: a geometry
// (path/rect/ellipse/polystar), a paint (fill/stroke/gradient), a
// modifier (trim/round-corners/repeater/etc.), or a nested group.
type Shape struct {
	Type  string  `json:"ty"`
	Name  string  `json:"nm"`
	Items []Shape `json:"it,omitempty"` // group contents, declaration order

	// Geometry fields (path/rect/ellipse/polystar).
	Vertices  *AnimatedBezier  `json:"ks,omitempty"`
	Position  AnimatedProperty `json:"p,omitempty"`
	Size      AnimatedProperty `json:"s,omitempty"`
	Radius    AnimatedProperty `json:"r,omitempty"`
	PolyType  int              `json:"sy,omitempty"`
	Points    AnimatedProperty `json:"pt,omitempty"`

	// Paint fields (fill/stroke/gradient-fill/gradient-stroke).
	Color     AnimatedProperty `json:"c,omitempty"`
	Opacity   AnimatedProperty `json:"o,omitempty"`
	Width     AnimatedProperty `json:"w,omitempty"`
	GradientStart AnimatedProperty `json:"s1,omitempty"`
	GradientEnd   AnimatedProperty `json:"e1,omitempty"`
	GradientStops AnimatedProperty `json:"g,omitempty"`

	// Group transform.
	Transform *Transform2D `json:"tr,omitempty"`

	// Trim path.
	TrimStart AnimatedProperty `json:"so,omitempty"`
	TrimEnd   AnimatedProperty `json:"eo,omitempty"`
	TrimOffset AnimatedProperty `json:"o2,omitempty"`

	// Repeater.
	Copies  AnimatedProperty `json:"cp,omitempty"`
	StartOp AnimatedProperty `json:"so2,omitempty"`
	EndOp   AnimatedProperty `json:"eo2,omitempty"`

	MergeMode int `json:"mm,omitempty"`

	// Amount is the single scalar driving whichever shape modifier this
	// entry is (PuckerBloat's percentage, Twist's angle in degrees,
	// OffsetPath's distance, WigglePath's extra displacement). RoundCorners
	// reuses Radius and ZigZag reuses Radius/Points, since those already
	// carry the right shape.
	Amount AnimatedProperty `json:"a,omitempty"`
}

// BezierPath is a cubic-Bezier path: vertices with independent in/out
// tangent handles, per Lottie's path vertex schema.
type BezierPath struct {
	Closed   bool        `json:"c"`
	Vertices [][2]float64 `json:"v"`
	InTangents  [][2]float64 `json:"i"`
	OutTangents [][2]float64 `json:"o"`
}

// AnimatedBezier is an animated path property: either a static BezierPath
// or keyframes whose start/end values are each a BezierPath.
type AnimatedBezier struct {
	Animated  int
	Static    BezierPath
	Keyframes []BezierKeyframe
}

// BezierKeyframe pairs a time with start/end BezierPath endpoints for path
// morphing between them (spec §4.8 path morphing).
type BezierKeyframe struct {
	Time  float64
	Start BezierPath
	End   BezierPath
	Hold  bool
}

const (
	ShapeTypePath     = "sh"
	ShapeTypeRect     = "rc"
	ShapeTypeEllipse  = "el"
	ShapeTypePolystar = "sr"
	ShapeTypeFill     = "fl"
	ShapeTypeStroke   = "st"
	ShapeTypeGradientFill   = "gf"
	ShapeTypeGradientStroke = "gs"
	ShapeTypeGroup    = "gr"
	ShapeTypeTransform = "tr"
	ShapeTypeTrim     = "tm"
	ShapeTypeRepeater = "rp"
	ShapeTypeMergePaths = "mm"
	ShapeTypeRoundCorners = "rd"
	ShapeTypeZigZag   = "zz"
	ShapeTypePuckerBloat = "pb"
	ShapeTypeTwist    = "tw"
	ShapeTypeOffsetPath = "op"
	ShapeTypeWigglePath = "wp"
)
