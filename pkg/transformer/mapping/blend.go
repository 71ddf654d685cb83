package mapping

import (
	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
)

// blendMode maps a host blend mode. Modes the renderer has no equivalent
// for, including pass-through, become Normal.
func blendMode(m scenegraph.BlendMode) dtif.BlendMode {
	switch m {
	case scenegraph.BlendMultiply:
		return dtif.BlendMultiply
	case scenegraph.BlendScreen:
		return dtif.BlendScreen
	case scenegraph.BlendOverlay:
		return dtif.BlendOverlay
	case scenegraph.BlendDarken:
		return dtif.BlendDarken
	case scenegraph.BlendLighten:
		return dtif.BlendLighten
	case scenegraph.BlendColorDodge:
		return dtif.BlendColorDodge
	case scenegraph.BlendColorBurn:
		return dtif.BlendColorBurn
	case scenegraph.BlendHardLight:
		return dtif.BlendHardLight
	case scenegraph.BlendSoftLight:
		return dtif.BlendSoftLight
	case scenegraph.BlendDifference:
		return dtif.BlendDifference
	case scenegraph.BlendExclusion:
		return dtif.BlendExclusion
	case scenegraph.BlendHue:
		return dtif.BlendHue
	case scenegraph.BlendSaturation:
		return dtif.BlendSaturation
	case scenegraph.BlendColor:
		return dtif.BlendColor
	case scenegraph.BlendLuminosity:
		return dtif.BlendLuminosity
	default:
		return dtif.BlendNormal
	}
}
