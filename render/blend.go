package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kinetic-motion/director/scene"
)

// EbitenBlend maps a scene.BlendMode onto the nearest ebiten.Blend. ebiten's
// GPU blend equation only expresses the separable Porter-Duff set directly;
// every other mode, including the non-separable HSL modes (Hue/Saturation/
// Color/Luminosity), maps to SrcOver here. This package has no shader pass
// for those modes.
func EbitenBlend(m scene.BlendMode) ebiten.Blend {
	switch m {
	case scene.BlendClear:
		return ebiten.Blend{BlendFactorSourceRGB: ebiten.BlendFactorZero, BlendFactorSourceAlpha: ebiten.BlendFactorZero, BlendFactorDestinationRGB: ebiten.BlendFactorZero, BlendFactorDestinationAlpha: ebiten.BlendFactorZero, BlendOperationRGB: ebiten.BlendOperationAdd, BlendOperationAlpha: ebiten.BlendOperationAdd}
	case scene.BlendSrc:
		return ebiten.Blend{BlendFactorSourceRGB: ebiten.BlendFactorOne, BlendFactorSourceAlpha: ebiten.BlendFactorOne, BlendFactorDestinationRGB: ebiten.BlendFactorZero, BlendFactorDestinationAlpha: ebiten.BlendFactorZero, BlendOperationRGB: ebiten.BlendOperationAdd, BlendOperationAlpha: ebiten.BlendOperationAdd}
	case scene.BlendDst:
		return ebiten.Blend{BlendFactorSourceRGB: ebiten.BlendFactorZero, BlendFactorSourceAlpha: ebiten.BlendFactorZero, BlendFactorDestinationRGB: ebiten.BlendFactorOne, BlendFactorDestinationAlpha: ebiten.BlendFactorOne, BlendOperationRGB: ebiten.BlendOperationAdd, BlendOperationAlpha: ebiten.BlendOperationAdd}
	case scene.BlendSrcIn:
		return ebiten.Blend{BlendFactorSourceRGB: ebiten.BlendFactorDestinationAlpha, BlendFactorSourceAlpha: ebiten.BlendFactorDestinationAlpha, BlendFactorDestinationRGB: ebiten.BlendFactorZero, BlendFactorDestinationAlpha: ebiten.BlendFactorZero, BlendOperationRGB: ebiten.BlendOperationAdd, BlendOperationAlpha: ebiten.BlendOperationAdd}
	case scene.BlendDstIn:
		return ebiten.Blend{BlendFactorSourceRGB: ebiten.BlendFactorZero, BlendFactorSourceAlpha: ebiten.BlendFactorZero, BlendFactorDestinationRGB: ebiten.BlendFactorSourceAlpha, BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha, BlendOperationRGB: ebiten.BlendOperationAdd, BlendOperationAlpha: ebiten.BlendOperationAdd}
	case scene.BlendSrcOut:
		return ebiten.Blend{BlendFactorSourceRGB: ebiten.BlendFactorOneMinusDestinationAlpha, BlendFactorSourceAlpha: ebiten.BlendFactorOneMinusDestinationAlpha, BlendFactorDestinationRGB: ebiten.BlendFactorZero, BlendFactorDestinationAlpha: ebiten.BlendFactorZero, BlendOperationRGB: ebiten.BlendOperationAdd, BlendOperationAlpha: ebiten.BlendOperationAdd}
	case scene.BlendDstOut:
		return ebiten.Blend{BlendFactorSourceRGB: ebiten.BlendFactorZero, BlendFactorSourceAlpha: ebiten.BlendFactorZero, BlendFactorDestinationRGB: ebiten.BlendFactorOneMinusSourceAlpha, BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha, BlendOperationRGB: ebiten.BlendOperationAdd, BlendOperationAlpha: ebiten.BlendOperationAdd}
	case scene.BlendSrcAtop:
		return ebiten.Blend{BlendFactorSourceRGB: ebiten.BlendFactorDestinationAlpha, BlendFactorSourceAlpha: ebiten.BlendFactorDestinationAlpha, BlendFactorDestinationRGB: ebiten.BlendFactorOneMinusSourceAlpha, BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha, BlendOperationRGB: ebiten.BlendOperationAdd, BlendOperationAlpha: ebiten.BlendOperationAdd}
	case scene.BlendDstAtop:
		return ebiten.Blend{BlendFactorSourceRGB: ebiten.BlendFactorOneMinusDestinationAlpha, BlendFactorSourceAlpha: ebiten.BlendFactorOneMinusDestinationAlpha, BlendFactorDestinationRGB: ebiten.BlendFactorSourceAlpha, BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha, BlendOperationRGB: ebiten.BlendOperationAdd, BlendOperationAlpha: ebiten.BlendOperationAdd}
	case scene.BlendXor:
		return ebiten.Blend{BlendFactorSourceRGB: ebiten.BlendFactorOneMinusDestinationAlpha, BlendFactorSourceAlpha: ebiten.BlendFactorOneMinusDestinationAlpha, BlendFactorDestinationRGB: ebiten.BlendFactorOneMinusSourceAlpha, BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha, BlendOperationRGB: ebiten.BlendOperationAdd, BlendOperationAlpha: ebiten.BlendOperationAdd}
	case scene.BlendPlusLighter:
		return ebiten.Blend{BlendFactorSourceRGB: ebiten.BlendFactorOne, BlendFactorSourceAlpha: ebiten.BlendFactorOne, BlendFactorDestinationRGB: ebiten.BlendFactorOne, BlendFactorDestinationAlpha: ebiten.BlendFactorOne, BlendOperationRGB: ebiten.BlendOperationAdd, BlendOperationAlpha: ebiten.BlendOperationAdd}
	case scene.BlendMultiply:
		return ebiten.Blend{BlendFactorSourceRGB: ebiten.BlendFactorDestinationColor, BlendFactorSourceAlpha: ebiten.BlendFactorDestinationAlpha, BlendFactorDestinationRGB: ebiten.BlendFactorOneMinusSourceAlpha, BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha, BlendOperationRGB: ebiten.BlendOperationAdd, BlendOperationAlpha: ebiten.BlendOperationAdd}
	case scene.BlendScreen:
		return ebiten.Blend{BlendFactorSourceRGB: ebiten.BlendFactorOne, BlendFactorSourceAlpha: ebiten.BlendFactorOne, BlendFactorDestinationRGB: ebiten.BlendFactorOneMinusSourceColor, BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha, BlendOperationRGB: ebiten.BlendOperationAdd, BlendOperationAlpha: ebiten.BlendOperationAdd}
	default: // SrcOver and every mode the blend-factor model cannot express.
		return ebiten.BlendSourceOver
	}
}

// NeedsShaderBlend reports whether m is one of the modes that a
// fixed-function GPU blend equation cannot express, and that EbitenBlend
// therefore maps to SrcOver (the non-separable modes and the separable
// ones ebiten's blend-factor model cannot express exactly: Overlay, Darken,
// Lighten, ColorDodge, ColorBurn, HardLight, SoftLight, Difference,
// Exclusion, Hue, Saturation, Color, Luminosity, HardMix, LinearBurn).
func NeedsShaderBlend(m scene.BlendMode) bool {
	switch m {
	case scene.BlendOverlay, scene.BlendDarken, scene.BlendLighten,
		scene.BlendColorDodge, scene.BlendColorBurn, scene.BlendHardLight,
		scene.BlendSoftLight, scene.BlendDifference, scene.BlendExclusion,
		scene.BlendHue, scene.BlendSaturation, scene.BlendColor, scene.BlendLuminosity,
		scene.BlendHardMix, scene.BlendLinearBurn:
		return true
	default:
		return false
	}
}
