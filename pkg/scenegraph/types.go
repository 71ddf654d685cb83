package scenegraph

import "math"

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Affine is a 2D affine matrix laid out as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Translation returns the matrix's translation component.
func (m Affine) Translation() Vec2 {
	return Vec2{X: m[4], Y: m[5]}
}

// Multiply returns m * o.
func (m Affine) Multiply(o Affine) Affine {
	return Affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Apply transforms the point p.
func (m Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Rotate returns a pure rotation matrix for the angle in radians.
func Rotate(rad float64) Affine {
	sin, cos := math.Sincos(rad)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// Translate returns a pure translation matrix.
func Translate(x, y float64) Affine {
	return Affine{1, 0, 0, 1, x, y}
}

// Color is an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// BlendMode is the host's layer and paint blend mode.
type BlendMode uint8

const (
	BlendPassThrough BlendMode = iota
	BlendNormal
	BlendDarken
	BlendMultiply
	BlendLinearBurn
	BlendColorBurn
	BlendLighten
	BlendScreen
	BlendLinearDodge
	BlendColorDodge
	BlendOverlay
	BlendSoftLight
	BlendHardLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

// PaintType is the host's paint type tag.
type PaintType uint8

const (
	PaintSolid PaintType = iota
	PaintGradientLinear
	PaintGradientRadial
	PaintGradientAngular
	PaintGradientDiamond
	PaintImage
	PaintVideo

	// NumPaintTypes is the number of paint types.
	NumPaintTypes = int(PaintVideo) + 1
)

// IsGradient reports whether the paint type is one of the gradient types.
func (t PaintType) IsGradient() bool {
	switch t {
	case PaintGradientLinear, PaintGradientRadial, PaintGradientAngular, PaintGradientDiamond:
		return true
	default:
		return false
	}
}

// ScaleMode selects how an image paint is fitted into its node.
type ScaleMode uint8

const (
	ScaleFill ScaleMode = iota
	ScaleFit
	ScaleCrop
	ScaleTile
)

// ColorStop is a single gradient stop.
type ColorStop struct {
	Position float64
	Color    Color
}

// Paint is a fill or stroke paint. It is plain data: every field is part of
// the paint's identity, which is what lets equal paints on different nodes
// be deduplicated.
type Paint struct {
	Type      PaintType
	Visible   bool
	Opacity   float64
	BlendMode BlendMode

	// Solid
	Color Color

	// Gradients
	GradientStops     []ColorStop
	GradientTransform Affine

	// Image and video
	ImageHash      string
	ScaleMode      ScaleMode
	ImageTransform Affine
	ScalingFactor  float64
	Rotation       float64
}

// EffectType is the host's effect type tag.
type EffectType uint8

const (
	EffectDropShadow EffectType = iota
	EffectInnerShadow
	EffectLayerBlur
	EffectBackgroundBlur
)

// Effect is a layer effect.
type Effect struct {
	Type      EffectType
	Visible   bool
	Color     Color
	Offset    Vec2
	Radius    float64
	Spread    float64
	BlendMode BlendMode
}

// StrokeAlign positions a stroke relative to the node's outline.
type StrokeAlign uint8

const (
	StrokeInside StrokeAlign = iota
	StrokeCenter
	StrokeOutside
)

// Font identifies a font face. Family, style and weight are the face's
// identity; two text segments using equal Fonts share one font asset.
type Font struct {
	Family string
	Style  string
	Weight int
}

// Unit qualifies letter spacing and line height values.
type Unit uint8

const (
	UnitAuto Unit = iota
	UnitPixels
	UnitPercent
)

// Measure is a value with a unit.
type Measure struct {
	Value float64
	Unit  Unit
}

// TextSegment is a run of characters sharing one style. Start is inclusive,
// End is exclusive, both in characters.
type TextSegment struct {
	Start         int
	End           int
	Font          Font
	FontSize      float64
	LetterSpacing Measure
	LineHeight    Measure
}

type TextAlignHorizontal uint8

const (
	TextAlignLeft TextAlignHorizontal = iota
	TextAlignCenter
	TextAlignRight
	TextAlignJustified
)

type TextAlignVertical uint8

const (
	TextAlignTop TextAlignVertical = iota
	TextAlignMiddle
	TextAlignBottom
)

// TextAutoResize is the host's text box sizing behavior.
type TextAutoResize uint8

const (
	AutoResizeNone TextAutoResize = iota
	AutoResizeHeight
	AutoResizeWidthAndHeight
	AutoResizeTruncate
)

// ConstraintType pins a node to its parent along one axis.
type ConstraintType uint8

const (
	ConstraintMin ConstraintType = iota
	ConstraintMax
	ConstraintCenter
	ConstraintStretch
	ConstraintScale
)

// Constraints are a node's resizing constraints in a non auto-layout parent.
type Constraints struct {
	Horizontal ConstraintType
	Vertical   ConstraintType
}

// LayoutPositioning tells whether a child of an auto-layout container takes
// part in the layout.
type LayoutPositioning uint8

const (
	PositionAuto LayoutPositioning = iota
	PositionAbsolute
)

// SizingMode is a child's sizing behavior along one axis inside an
// auto-layout container.
type SizingMode uint8

const (
	SizingFixed SizingMode = iota
	SizingHug
	SizingFill
)

// LayoutMode is a container's auto-layout direction.
type LayoutMode uint8

const (
	LayoutNone LayoutMode = iota
	LayoutHorizontal
	LayoutVertical
)

// AxisAlign aligns children along an auto-layout axis.
type AxisAlign uint8

const (
	AlignMin AxisAlign = iota
	AlignCenter
	AlignMax
	AlignSpaceBetween
	AlignBaseline
)

// AutoLayout holds a container's auto-layout settings.
type AutoLayout struct {
	Mode         LayoutMode
	ItemSpacing  float64
	PaddingTop   float64
	PaddingRight float64
	PaddingBot   float64
	PaddingLeft  float64
	PrimaryAlign AxisAlign
	CounterAlign AxisAlign
}

// Arc describes a partial ellipse. Angles are in radians.
type Arc struct {
	StartingAngle float64
	EndingAngle   float64
	InnerRadius   float64
}

// VectorPath is one path of a vector network in SVG path syntax.
type VectorPath struct {
	WindingRule string
	Data        string
}
