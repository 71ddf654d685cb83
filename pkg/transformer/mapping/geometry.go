package mapping

import (
	"math"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
)

// decompose splits a host transform into translation and rotation in
// degrees. Scale and skew are dropped: a node's size is carried by its
// width and height.
func decompose(m scenegraph.Affine) dtif.Transform {
	rot := math.Atan2(m[1], m[0]) * 180 / math.Pi
	if rot == 0 {
		// Avoid -0 in the output.
		rot = 0
	}
	return dtif.Transform{
		Translation: dtif.Vec2{m[4], m[5]},
		RotationDeg: rot,
	}
}

func vec(v scenegraph.Vec2) dtif.Vec2 {
	return dtif.Vec2{v.X, v.Y}
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func rgb(c scenegraph.Color) *[3]uint8 {
	return &[3]uint8{channel(c.R), channel(c.G), channel(c.B)}
}

func rgba(c scenegraph.Color) [4]uint8 {
	return [4]uint8{channel(c.R), channel(c.G), channel(c.B), channel(c.A)}
}
