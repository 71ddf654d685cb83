// Package scenegraph describes the host design tool's scene graph as a
// read-only capability surface.
//
// The exporter never depends on a concrete host. A host node only has to
// implement Node; everything else (children, fills, text, auto-layout...)
// is discovered by asserting the smaller capability interfaces below, so a
// node that lacks a capability is simply skipped for that step.
package scenegraph

// NodeKind is the host's node type tag.
type NodeKind uint8

const (
	KindFrame            NodeKind = iota // top-level or nested frame
	KindGroup                            // logical group without own geometry
	KindComponent                        // component definition (frame-like)
	KindInstance                         // component instance (frame-like)
	KindRectangle                        // rectangle shape
	KindEllipse                          // ellipse or arc
	KindPolygon                          // regular polygon
	KindStar                             // star
	KindVector                           // free-form vector network
	KindText                             // text layer
	KindLine                             // line (no fill geometry)
	KindBooleanOperation                 // union/subtract/intersect/exclude
	KindSlice                            // export slice, never rendered

	// NumNodeKinds is the number of node kinds. Tables indexed by NodeKind
	// use it to assert that every kind has an entry.
	NumNodeKinds = int(KindSlice) + 1
)

var nodeKindNames = [NumNodeKinds]string{
	KindFrame:            "FRAME",
	KindGroup:            "GROUP",
	KindComponent:        "COMPONENT",
	KindInstance:         "INSTANCE",
	KindRectangle:        "RECTANGLE",
	KindEllipse:          "ELLIPSE",
	KindPolygon:          "POLYGON",
	KindStar:             "STAR",
	KindVector:           "VECTOR",
	KindText:             "TEXT",
	KindLine:             "LINE",
	KindBooleanOperation: "BOOLEAN_OPERATION",
	KindSlice:            "SLICE",
}

func (k NodeKind) String() string {
	if int(k) < NumNodeKinds {
		return nodeKindNames[k]
	}
	return "UNKNOWN"
}

// IsContainer reports whether nodes of this kind hold children.
func (k NodeKind) IsContainer() bool {
	switch k {
	case KindFrame, KindGroup, KindComponent, KindInstance:
		return true
	default:
		return false
	}
}

// Node is the minimal capability every host node provides.
type Node interface {
	// ID is the host's own identifier for the node (e.g. "12:345").
	ID() string
	Name() string
	Kind() NodeKind
	Visible() bool

	// Transform is the node's transform relative to its parent.
	Transform() Affine

	// Size is the node's unscaled width and height. Scale is never folded
	// into Transform.
	Size() Vec2

	Opacity() float64
	BlendMode() BlendMode

	// Parent returns the containing node, or nil for a detached node.
	Parent() Node
}

// ParentNode is implemented by nodes that have children.
type ParentNode interface {
	Node
	Children() []Node
}

// GeometryNode is implemented by nodes that carry fills and strokes.
type GeometryNode interface {
	Node
	Fills() []Paint
	Strokes() []Paint
	StrokeWeight() float64
	StrokeAlign() StrokeAlign
}

// EffectNode is implemented by nodes that carry effects (shadows, blurs).
type EffectNode interface {
	Node
	Effects() []Effect
}

// LayoutNode is implemented by nodes that can be laid out by their parent.
type LayoutNode interface {
	Node
	Constraints() Constraints
	LayoutPositioning() LayoutPositioning
	LayoutSizing() (horizontal, vertical SizingMode)
}

// AutoLayoutNode is implemented by containers that may lay out their
// children automatically.
type AutoLayoutNode interface {
	Node
	AutoLayout() AutoLayout
}

// CornerNode is implemented by nodes with rounded corners.
type CornerNode interface {
	Node
	// CornerRadii returns top-left, top-right, bottom-right, bottom-left.
	CornerRadii() [4]float64
}

// ClipNode is implemented by containers that may clip their content.
type ClipNode interface {
	Node
	ClipsContent() bool
}

// FlattenNode is implemented by nodes the host may mark to be exported as
// a single flattened image instead of a node tree.
type FlattenNode interface {
	Node
	FlattenOnExport() bool
}

// EllipseNode exposes arc data.
type EllipseNode interface {
	Node
	ArcData() Arc
}

// PolygonNode exposes the point count of regular polygons.
type PolygonNode interface {
	Node
	PointCount() int
}

// StarNode exposes star geometry.
type StarNode interface {
	PolygonNode
	// InnerRadius is the ratio of the inner to the outer radius.
	InnerRadius() float64
}

// VectorNode exposes vector paths.
type VectorNode interface {
	Node
	VectorPaths() []VectorPath
}

// TextNode exposes text content and its styled segments.
type TextNode interface {
	GeometryNode
	Characters() string
	Segments() []TextSegment
	TextAlign() (TextAlignHorizontal, TextAlignVertical)
	AutoResize() TextAutoResize
}

// Walk calls fn for node and all descendants in depth-first pre-order.
// Returning false from fn skips the node's subtree.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	if p, ok := node.(ParentNode); ok {
		for _, child := range p.Children() {
			Walk(child, fn)
		}
	}
}
