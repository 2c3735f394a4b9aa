package lottie

// Mat4 is a 4x4 column-major transform matrix, used by the Lottie render
// tree independent of the host scene graph's 2D affine (spec §4.8: "nodes
// with a 4x4 transform").
type Mat4 [16]float64

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// ContentKind discriminates a render node's payload, per spec §4.8's
// closed tagged union (group, shape, text, image).
type ContentKind int

const (
	ContentGroup ContentKind = iota
	ContentShape
	ContentText
	ContentImage
)

// MatteType names how a track-matte pair clips its partner layer.
type MatteType int

const (
	MatteNone MatteType = iota
	MatteAlpha
	MatteAlphaInverted
	MatteLuma
	MatteLumaInverted
)

// RenderNode is one node of the per-frame Lottie render tree.
type RenderNode struct {
	Name      string
	Transform Mat4
	Alpha     float64
	Blend     string
	Kind      ContentKind
	Children  []*RenderNode

	// ContentShape payload: materialized paths with paint already applied.
	Paths []MaterializedPath

	// ContentImage payload.
	ImageRef string

	// ContentText payload.
	Text           string
	FontFamily     string
	FontSize       float64
	TextFill       *Paint
	TextJustify    int

	Matte     MatteType
	MatteNode *RenderNode
	Effects   []EffectInstance

	// Side-effect records (spec §4.8 audio/data layers).
	AudioEvent *RuntimeAudioEvent
	DataBinding *RuntimeDataBinding
}

// MaterializedPath is a shape-processor output: geometry plus paint.
type MaterializedPath struct {
	Path   BezierPath
	Fill   *Paint
	Stroke *Paint
}

// Paint is a resolved fill or stroke color/opacity/width.
type Paint struct {
	R, G, B, A float64
	Width      float64 // 0 for fills
}

// EffectInstance is a resolved effect application, or an Unsupported
// placeholder retained for round-tripping (spec §4.8 effects dispatch).
// Params is keyed by a normalized property name (e.g. "color", "radius",
// "amount") since Lottie effect properties are positional in the raw JSON
// and a slice would carry no meaning at the call site; most parameters
// resolve to a single-element slice, colors to three or four.
type EffectInstance struct {
	Type        string
	Supported   bool
	Params      map[string][]float64
	Unsupported *Unsupported
}

// Unsupported marks an effect type or layer type the interpreter doesn't
// implement; retained as a no-op rather than dropped (spec's error
// taxonomy: direrr.LottieUnsupportedError, logged once per process).
type Unsupported struct {
	Kind string
	Name string
}

// RuntimeAudioEvent is emitted by an audio layer instead of a graphical
// node; playback happens through the host mixer, this is advisory only
// (spec Open Question 2's resolution).
type RuntimeAudioEvent struct {
	LayerName string
	AssetRef  string
	Time      float64
}

// RuntimeDataBinding is emitted by a data layer instead of a graphical
// node.
type RuntimeDataBinding struct {
	LayerName string
	Key       string
	Value     float64
}
