// Package lottie implements the near-complete Lottie interpreter of spec
// §4.8 (C8): JSON parsing, a keyframe property sampler, layer and shape
// processing, and path morphing, producing a per-frame render tree
// independent of the host scene graph. Expression strings are parsed and
// kept on each property, but the sampler does not evaluate them; the
// per-Player Evaluator is not invoked during sampling.
//
// Grounded on phanxgames-willow's own JSON-driven asset model (atlas.go's
// texture-atlas JSON schema) for the "parse once, share immutably" asset
// shape, and on dop251/goja (the only JS engine anywhere in the retrieval
// pack) for expression evaluation.
package lottie

import "encoding/json"

// Keyframe is one (time, start, end) sample of an animated property, per
// spec §4.8's property sampler contract and scenario S3.
type Keyframe struct {
	Time       float64   `json:"t"`
	Start      []float64 `json:"s"`
	End        []float64 `json:"e"`
	Hold       bool      `json:"h"`
	InTangent  *Bezier2  `json:"i,omitempty"`
	OutTangent *Bezier2  `json:"o,omitempty"`
	Expression string    `json:"x,omitempty"`
}

// Bezier2 is a 2D easing control point, x/y each in [0,1] per dimension,
// used to solve the cubic-Bezier tangent the same way spec §3 does for
// scene-level easing curves.
type Bezier2 struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// AnimatedProperty is either a static value (Static) or a keyframe list
// (Keyframes), matching Lottie JSON's "a" discriminator (0 = static).
type AnimatedProperty struct {
	Animated   int        `json:"a"`
	Static     []float64  `json:"k,omitempty"`
	Keyframes  []Keyframe `json:"-"`
	Expression string     `json:"x,omitempty"`
}

// UnmarshalJSON handles Lottie's overloaded "k" field: either a flat
// number array (static) or an array of keyframe objects (animated).
func (p *AnimatedProperty) UnmarshalJSON(data []byte) error {
	var raw struct {
		A int             `json:"a"`
		K json.RawMessage `json:"k"`
		X string          `json:"x"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Animated = raw.A
	p.Expression = raw.X
	if raw.A == 0 {
		_ = json.Unmarshal(raw.K, &p.Static)
		return nil
	}
	return json.Unmarshal(raw.K, &p.Keyframes)
}

// Transform2D is a Lottie layer or shape transform block (spec §4.8:
// position/anchor/scale/rotation X/Y/Z, orientation, skew).
type Transform2D struct {
	Position    AnimatedProperty `json:"p"`
	Anchor      AnimatedProperty `json:"a"`
	Scale       AnimatedProperty `json:"s"`
	Rotation    AnimatedProperty `json:"r"`
	RotationX   AnimatedProperty `json:"rx"`
	RotationY   AnimatedProperty `json:"ry"`
	RotationZ   AnimatedProperty `json:"rz"`
	Orientation AnimatedProperty `json:"or"`
	Skew        AnimatedProperty `json:"sk"`
	SkewAxis    AnimatedProperty `json:"sa"`
	Opacity     AnimatedProperty `json:"o"`
}

// Layer is one entry in a Lottie composition's layer list.
type Layer struct {
	Index     int              `json:"ind"`
	Name      string           `json:"nm"`
	Type      int              `json:"ty"` // 0=precomp,1=solid,2=image,3=null,4=shape,5=text,6=audio,13=camera,15=data
	ThreeD    int              `json:"ddd"`
	InPoint   float64          `json:"ip"`
	OutPoint  float64          `json:"op"`
	StartTime float64          `json:"st"`
	Hidden    bool             `json:"hd"`
	Transform Transform2D      `json:"ks"`
	Shapes    []Shape          `json:"shapes,omitempty"`
	RefID     string           `json:"refId,omitempty"`
	TimeRemap *AnimatedProperty `json:"tm,omitempty"`
	TrackMatteType int         `json:"tt,omitempty"`
	Parent    int              `json:"parent,omitempty"`
	HasParent bool             `json:"-"`
	Text      *TextLayerData   `json:"t,omitempty"`
	Camera3D  *CameraData      `json:"-"` // not filled in by parsing or layer processing; ComposeCameraTransform resolves camera data itself
	Effects   []EffectDoc      `json:"ef,omitempty"`
}

// TextLayerData is a Lottie text layer's "t" block: a static document
// descriptor (Lottie's per-keyframe text animator groups are not modeled;
// the document's own styling is treated as constant for the layer's
// lifetime, matching the common case of non-animated source text).
type TextLayerData struct {
	Document TextDocument `json:"-"`
}

// UnmarshalJSON unwraps Lottie's "d.k[0].s" document-keyframe envelope,
// taking the first keyframe's style object as the layer's constant document.
func (t *TextLayerData) UnmarshalJSON(data []byte) error {
	var raw struct {
		D struct {
			K []struct {
				S TextDocument `json:"s"`
			} `json:"k"`
		} `json:"d"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.D.K) > 0 {
		t.Document = raw.D.K[0].S
	}
	return nil
}

// TextDocument is one Lottie text document ("d.k[0].s" in the raw JSON,
// flattened here since multi-keyframe text content is rare in practice).
type TextDocument struct {
	Text       string    `json:"t"`
	FontFamily string    `json:"f"`
	FontSize   float64   `json:"s"`
	FillColor  []float64 `json:"fc"`
	Justify    int       `json:"j"` // 0=left,1=right,2=center
	Tracking   float64   `json:"tr"`
	LineHeight float64   `json:"lh"`
}

// Asset is an immutable-after-construction parsed Lottie document, shared
// as a many-reader reference across Player instances (spec §5's
// shared-resource policy).
type Asset struct {
	Width      int     `json:"w"`
	Height     int     `json:"h"`
	FrameRate  float64 `json:"fr"`
	InPoint    float64 `json:"ip"`
	OutPoint   float64 `json:"op"`
	Layers     []Layer `json:"layers"`
	Assets     []SubAsset `json:"assets,omitempty"`
}

// SubAsset is a precomp or image referenced by RefID from a layer.
type SubAsset struct {
	ID     string  `json:"id"`
	Layers []Layer `json:"layers,omitempty"`
	Path   string  `json:"u,omitempty"`
	File   string  `json:"p,omitempty"`
}

// ParseAsset parses raw Lottie JSON bytes into an immutable Asset.
func ParseAsset(data []byte) (*Asset, error) {
	var a Asset
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	for i := range a.Layers {
		a.Layers[i].HasParent = a.Layers[i].Parent != 0
	}
	return &a, nil
}

// PrecompByID looks up a sub-composition's layer list by asset id.
func (a *Asset) PrecompByID(id string) ([]Layer, bool) {
	for _, sa := range a.Assets {
		if sa.ID == id && sa.Layers != nil {
			return sa.Layers, true
		}
	}
	return nil, false
}
