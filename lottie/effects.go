package lottie

import (
	"strconv"
	"strings"
	"sync"

	"github.com/kinetic-motion/director/direrr"
	"github.com/sirupsen/logrus"
)

// EffectType names a Lottie effect type code mapped to a uniform block and
// shader, per spec §4.8. Codes not listed here resolve to the catch-all
// "unknown" path.
type EffectType string

const (
	EffectTint          EffectType = "tint"
	EffectFill          EffectType = "fill"
	EffectStroke        EffectType = "stroke"
	EffectTritone       EffectType = "tritone"
	EffectLevels        EffectType = "levels"
	EffectDropShadow    EffectType = "drop-shadow"
	EffectRadialWipe    EffectType = "radial-wipe"
	EffectDisplacement  EffectType = "displacement-map"
	EffectMatte3        EffectType = "matte3"
	EffectGaussianBlur  EffectType = "gaussian-blur"
	EffectTwirl         EffectType = "twirl"
	EffectMeshWarp      EffectType = "mesh-warp"
	EffectWavy          EffectType = "wavy"
	EffectSpherize      EffectType = "spherize"
	EffectPuppet        EffectType = "puppet"
)

var knownEffects = map[string]EffectType{
	string(EffectTint): EffectTint, string(EffectFill): EffectFill,
	string(EffectStroke): EffectStroke, string(EffectTritone): EffectTritone,
	string(EffectLevels): EffectLevels, string(EffectDropShadow): EffectDropShadow,
	string(EffectRadialWipe): EffectRadialWipe, string(EffectDisplacement): EffectDisplacement,
	string(EffectMatte3): EffectMatte3, string(EffectGaussianBlur): EffectGaussianBlur,
	string(EffectTwirl): EffectTwirl, string(EffectMeshWarp): EffectMeshWarp,
	string(EffectWavy): EffectWavy, string(EffectSpherize): EffectSpherize,
	string(EffectPuppet): EffectPuppet,
}

var (
	warnOnce  sync.Map // (kind,name) -> struct{}
)

// ResolveEffect maps a raw effect type name to a dispatchable
// EffectInstance, or an Unsupported placeholder if the name isn't one of
// the known types, logging once per (kind, name) pair per process (spec
// §4.8 and the error taxonomy's LottieUnsupportedError).
func ResolveEffect(rawName string, params map[string][]float64) EffectInstance {
	if ty, ok := knownEffects[rawName]; ok {
		return EffectInstance{Type: string(ty), Supported: true, Params: params}
	}
	warnUnsupportedOnce("effect", rawName)
	return EffectInstance{
		Type:        rawName,
		Supported:   false,
		Unsupported: &Unsupported{Kind: "effect", Name: rawName},
	}
}

// EffectDoc is one entry in a layer's "ef" effects list: a display name
// (and/or After Effects match name) plus its property list, per Lottie's
// effect JSON schema.
type EffectDoc struct {
	Name      string          `json:"nm"`
	MatchName string          `json:"mn"`
	Props     []EffectPropDoc `json:"ef"`
}

// EffectPropDoc is one effect parameter: a name plus an animated numeric
// value. Lottie's effect property schema distinguishes slider/color/point
// etc. by a "ty" code, but all of them bottom out in the same animated
// numeric-array shape AnimatedProperty already models.
type EffectPropDoc struct {
	Name  string           `json:"nm"`
	Value AnimatedProperty `json:"v"`
}

// ResolveLayerEffects converts a layer's raw effect JSON list into
// dispatchable EffectInstances. Lottie doesn't publish a stable
// effect-type enum the way it does for shapes and layers, so each entry's
// display/match name is matched to a canonical EffectType by substring
// heuristic, and each property's raw animated value is resolved to its
// per-frame numbers and filed under a normalized parameter key.
func ResolveLayerEffects(docs []EffectDoc, frame float64) []EffectInstance {
	if len(docs) == 0 {
		return nil
	}
	out := make([]EffectInstance, 0, len(docs))
	for _, doc := range docs {
		params := make(map[string][]float64, len(doc.Props))
		for i := range doc.Props {
			p := &doc.Props[i]
			params[normalizeParamName(p.Name)] = resolveRaw(&p.Value, frame)
		}
		out = append(out, ResolveEffect(effectNameFromDoc(doc), params))
	}
	return out
}

func resolveRaw(ap *AnimatedProperty, frame float64) []float64 {
	return Resolve(ap, frame, func(c []float64) []float64 { return c }, nil)
}

// effectNameFromDoc matches a layer effect's display/match name to one of
// the canonical EffectType codes; unmatched names fall through to
// ResolveEffect's unsupported path under their lowercased original name.
func effectNameFromDoc(doc EffectDoc) string {
	name := strings.ToLower(doc.Name)
	if name == "" {
		name = strings.ToLower(doc.MatchName)
	}
	switch {
	case strings.Contains(name, "tritone"):
		return string(EffectTritone)
	case strings.Contains(name, "tint"):
		return string(EffectTint)
	case strings.Contains(name, "fill"):
		return string(EffectFill)
	case strings.Contains(name, "stroke"):
		return string(EffectStroke)
	case strings.Contains(name, "level"):
		return string(EffectLevels)
	case strings.Contains(name, "drop shadow"), strings.Contains(name, "drop-shadow"), strings.Contains(name, "shadow"):
		return string(EffectDropShadow)
	case strings.Contains(name, "radial wipe"), strings.Contains(name, "radial-wipe"):
		return string(EffectRadialWipe)
	case strings.Contains(name, "displacement"):
		return string(EffectDisplacement)
	case strings.Contains(name, "matte"):
		return string(EffectMatte3)
	case strings.Contains(name, "gaussian"), strings.Contains(name, "blur"):
		return string(EffectGaussianBlur)
	case strings.Contains(name, "twirl"):
		return string(EffectTwirl)
	case strings.Contains(name, "mesh warp"), strings.Contains(name, "mesh-warp"):
		return string(EffectMeshWarp)
	case strings.Contains(name, "wavy"):
		return string(EffectWavy)
	case strings.Contains(name, "spherize"):
		return string(EffectSpherize)
	case strings.Contains(name, "puppet"):
		return string(EffectPuppet)
	}
	return name
}

// normalizeParamName maps an effect property's free-text display name to
// a stable key so the pixel-filter code in package elements doesn't have
// to match on After Effects' exact property labels. Specific compound
// names (e.g. "Input Black") are checked before the generic substrings
// they contain (e.g. "black"), since switch-true evaluates cases in order
// and the generic case would otherwise shadow the specific one.
func normalizeParamName(raw string) string {
	low := strings.ToLower(raw)
	switch {
	case strings.Contains(low, "input black"):
		return "inputBlack"
	case strings.Contains(low, "input white"):
		return "inputWhite"
	case strings.Contains(low, "gamma"):
		return "gamma"
	case strings.Contains(low, "black"):
		return "black"
	case strings.Contains(low, "white"):
		return "white"
	case strings.Contains(low, "midtones"):
		return "midtones"
	case strings.Contains(low, "highlights"):
		return "highlights"
	case strings.Contains(low, "shadows"):
		return "shadows"
	case strings.Contains(low, "color"):
		return "color"
	case strings.Contains(low, "opacity"), strings.Contains(low, "amount"), strings.Contains(low, "blend"):
		return "amount"
	case strings.Contains(low, "radius"), strings.Contains(low, "softness"), strings.Contains(low, "blurriness"):
		return "radius"
	case strings.Contains(low, "angle"):
		return "angle"
	case strings.Contains(low, "distance"):
		return "distance"
	}
	return low
}

// ResolveLayerType reports whether layer type code ty is one the
// interpreter implements; unknown codes are retained as a no-op layer.
func ResolveLayerType(ty int) (string, bool) {
	names := map[int]string{
		0: "precomp", 1: "solid", 2: "image", 3: "null",
		4: "shape", 5: "text", 6: "audio", 13: "camera", 15: "data",
	}
	name, ok := names[ty]
	if !ok {
		warnUnsupportedOnce("layer", strconv.Itoa(ty))
		return "unknown", false
	}
	return name, true
}

func warnUnsupportedOnce(kind, name string) {
	key := kind + ":" + name
	if _, loaded := warnOnce.LoadOrStore(key, struct{}{}); !loaded {
		err := &direrr.LottieUnsupportedError{Kind: kind, Name: name}
		logrus.Warn(err.Error())
	}
}
