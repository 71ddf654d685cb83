package snapshot

import (
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
)

// Base holds the fields every snapshot node has. Fields are exported so
// fixtures can be written as struct literals; use the New* constructors to
// get sensible defaults (opacity 1, identity transform).
type Base struct {
	NodeID     string
	NodeName   string
	NodeKind   scenegraph.NodeKind
	Hidden     bool
	Matrix     scenegraph.Affine
	Dimensions scenegraph.Vec2
	Alpha      float64
	Blend      scenegraph.BlendMode

	Constrain   scenegraph.Constraints
	Positioning scenegraph.LayoutPositioning
	SizingH     scenegraph.SizingMode
	SizingV     scenegraph.SizingMode

	// Flatten marks the node to be exported as a single image.
	Flatten bool

	parent scenegraph.Node
}

func newBase(id, name string, kind scenegraph.NodeKind, w, h float64) Base {
	return Base{
		NodeID:     id,
		NodeName:   name,
		NodeKind:   kind,
		Matrix:     scenegraph.Identity,
		Dimensions: scenegraph.Vec2{X: w, Y: h},
		Alpha:      1,
		Blend:      scenegraph.BlendPassThrough,
	}
}

func (b *Base) ID() string                         { return b.NodeID }
func (b *Base) Name() string                       { return b.NodeName }
func (b *Base) Kind() scenegraph.NodeKind          { return b.NodeKind }
func (b *Base) Visible() bool                      { return !b.Hidden }
func (b *Base) Transform() scenegraph.Affine       { return b.Matrix }
func (b *Base) Size() scenegraph.Vec2              { return b.Dimensions }
func (b *Base) Opacity() float64                   { return b.Alpha }
func (b *Base) BlendMode() scenegraph.BlendMode    { return b.Blend }
func (b *Base) Parent() scenegraph.Node            { return b.parent }
func (b *Base) Constraints() scenegraph.Constraints { return b.Constrain }
func (b *Base) FlattenOnExport() bool              { return b.Flatten }

func (b *Base) LayoutPositioning() scenegraph.LayoutPositioning { return b.Positioning }

func (b *Base) LayoutSizing() (scenegraph.SizingMode, scenegraph.SizingMode) {
	return b.SizingH, b.SizingV
}

// SetPosition sets the translation of the node's transform, keeping
// rotation and skew.
func (b *Base) SetPosition(x, y float64) {
	b.Matrix[4] = x
	b.Matrix[5] = y
}

func (b *Base) setParent(p scenegraph.Node) { b.parent = p }

type parentSetter interface {
	setParent(scenegraph.Node)
}

// Geometry holds fills, strokes and effects.
type Geometry struct {
	FillPaints   []scenegraph.Paint
	StrokePaints []scenegraph.Paint
	Weight       float64
	Align        scenegraph.StrokeAlign
	EffectList   []scenegraph.Effect
}

func (g *Geometry) Fills() []scenegraph.Paint          { return g.FillPaints }
func (g *Geometry) Strokes() []scenegraph.Paint        { return g.StrokePaints }
func (g *Geometry) StrokeWeight() float64              { return g.Weight }
func (g *Geometry) StrokeAlign() scenegraph.StrokeAlign { return g.Align }
func (g *Geometry) Effects() []scenegraph.Effect       { return g.EffectList }

// Frame is a frame, component or instance.
type Frame struct {
	Base
	Geometry
	Auto  scenegraph.AutoLayout
	Radii [4]float64
	Clip  bool

	children []scenegraph.Node
}

// NewFrame creates a frame of the given size.
func NewFrame(id, name string, w, h float64) *Frame {
	return &Frame{Base: newBase(id, name, scenegraph.KindFrame, w, h)}
}

func (f *Frame) Children() []scenegraph.Node         { return f.children }
func (f *Frame) AutoLayout() scenegraph.AutoLayout   { return f.Auto }
func (f *Frame) CornerRadii() [4]float64             { return f.Radii }
func (f *Frame) ClipsContent() bool                  { return f.Clip }

// Append adds children to the frame.
func (f *Frame) Append(children ...scenegraph.Node) *Frame {
	f.children = appendChildren(f, f.children, children)
	return f
}

// Group is a group node. Groups have effects but no fills of their own.
type Group struct {
	Base
	EffectList []scenegraph.Effect

	children []scenegraph.Node
}

// NewGroup creates a group of the given size.
func NewGroup(id, name string, w, h float64) *Group {
	return &Group{Base: newBase(id, name, scenegraph.KindGroup, w, h)}
}

func (g *Group) Children() []scenegraph.Node   { return g.children }
func (g *Group) Effects() []scenegraph.Effect { return g.EffectList }

// Append adds children to the group.
func (g *Group) Append(children ...scenegraph.Node) *Group {
	g.children = appendChildren(g, g.children, children)
	return g
}

// Shape is any leaf geometry: rectangle, ellipse, polygon, star, vector,
// line or boolean operation.
type Shape struct {
	Base
	Geometry
	Radii  [4]float64
	Arc    scenegraph.Arc
	Points int
	Inner  float64
	Paths  []scenegraph.VectorPath
}

// NewShape creates a shape of the given kind and size.
func NewShape(id, name string, kind scenegraph.NodeKind, w, h float64) *Shape {
	s := &Shape{Base: newBase(id, name, kind, w, h)}
	s.Blend = scenegraph.BlendNormal
	switch kind {
	case scenegraph.KindEllipse:
		s.Arc = scenegraph.Arc{EndingAngle: 2 * 3.141592653589793}
	case scenegraph.KindPolygon:
		s.Points = 3
	case scenegraph.KindStar:
		s.Points = 5
		s.Inner = 0.382
	}
	return s
}

// NewRectangle creates a rectangle filled with the given paints.
func NewRectangle(id, name string, w, h float64, fills ...scenegraph.Paint) *Shape {
	s := NewShape(id, name, scenegraph.KindRectangle, w, h)
	s.FillPaints = fills
	return s
}

func (s *Shape) CornerRadii() [4]float64              { return s.Radii }
func (s *Shape) ArcData() scenegraph.Arc              { return s.Arc }
func (s *Shape) PointCount() int                      { return s.Points }
func (s *Shape) InnerRadius() float64                 { return s.Inner }
func (s *Shape) VectorPaths() []scenegraph.VectorPath { return s.Paths }

// Text is a text layer.
type Text struct {
	Base
	Geometry
	Content string
	Runs    []scenegraph.TextSegment
	HAlign  scenegraph.TextAlignHorizontal
	VAlign  scenegraph.TextAlignVertical
	Resize  scenegraph.TextAutoResize
}

// NewText creates a text node with one segment spanning all characters.
func NewText(id, name, content string, font scenegraph.Font, size float64) *Text {
	t := &Text{Base: newBase(id, name, scenegraph.KindText, 0, 0), Content: content}
	t.Blend = scenegraph.BlendNormal
	t.Runs = []scenegraph.TextSegment{{
		Start:    0,
		End:      len([]rune(content)),
		Font:     font,
		FontSize: size,
	}}
	t.Resize = scenegraph.AutoResizeWidthAndHeight
	return t
}

func (t *Text) Characters() string                  { return t.Content }
func (t *Text) Segments() []scenegraph.TextSegment  { return t.Runs }
func (t *Text) AutoResize() scenegraph.TextAutoResize { return t.Resize }

func (t *Text) TextAlign() (scenegraph.TextAlignHorizontal, scenegraph.TextAlignVertical) {
	return t.HAlign, t.VAlign
}

// Slice is an export slice. It has no capabilities beyond Node.
type Slice struct {
	Base
}

// NewSlice creates a slice node.
func NewSlice(id, name string, w, h float64) *Slice {
	return &Slice{Base: newBase(id, name, scenegraph.KindSlice, w, h)}
}

func appendChildren(parent scenegraph.Node, dst, children []scenegraph.Node) []scenegraph.Node {
	for _, c := range children {
		if c == nil {
			panic("snapshot: cannot append nil child")
		}
		if ps, ok := c.(parentSetter); ok {
			ps.setParent(parent)
		}
		dst = append(dst, c)
	}
	return dst
}

// SolidPaint returns a visible, fully opaque solid paint.
func SolidPaint(r, g, b float64) scenegraph.Paint {
	return scenegraph.Paint{
		Type:      scenegraph.PaintSolid,
		Visible:   true,
		Opacity:   1,
		BlendMode: scenegraph.BlendNormal,
		Color:     scenegraph.Color{R: r, G: g, B: b, A: 1},
	}
}

// ImagePaint returns a visible image paint in fill mode.
func ImagePaint(hash string) scenegraph.Paint {
	return scenegraph.Paint{
		Type:           scenegraph.PaintImage,
		Visible:        true,
		Opacity:        1,
		BlendMode:      scenegraph.BlendNormal,
		ImageHash:      hash,
		ScaleMode:      scenegraph.ScaleFill,
		ImageTransform: scenegraph.Identity,
		ScalingFactor:  1,
	}
}

var (
	_ scenegraph.ParentNode     = (*Frame)(nil)
	_ scenegraph.GeometryNode   = (*Frame)(nil)
	_ scenegraph.EffectNode     = (*Frame)(nil)
	_ scenegraph.LayoutNode     = (*Frame)(nil)
	_ scenegraph.AutoLayoutNode = (*Frame)(nil)
	_ scenegraph.CornerNode     = (*Frame)(nil)
	_ scenegraph.ClipNode       = (*Frame)(nil)
	_ scenegraph.FlattenNode    = (*Frame)(nil)
	_ scenegraph.ParentNode     = (*Group)(nil)
	_ scenegraph.EffectNode     = (*Group)(nil)
	_ scenegraph.GeometryNode   = (*Shape)(nil)
	_ scenegraph.StarNode       = (*Shape)(nil)
	_ scenegraph.EllipseNode    = (*Shape)(nil)
	_ scenegraph.VectorNode     = (*Shape)(nil)
	_ scenegraph.TextNode       = (*Text)(nil)
	_ scenegraph.Node           = (*Slice)(nil)
)
