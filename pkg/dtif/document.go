// Package dtif is the DTIF (Design Tree Interchange Format) document model:
// the flat, ID-linked composition of nodes, paints and assets consumed by
// the rendering engine.
package dtif

// Version is the document format version written by this package.
const Version = "1.0"

// Document is a DTIF composition. Records reference each other only through
// prefixed string IDs (see FormatNodeID and friends).
type Document struct {
	Version    string   `json:"version" yaml:"version"`
	Name       string   `json:"name" yaml:"name"`
	Size       Vec2     `json:"size" yaml:"size"`
	Viewport   Viewport `json:"viewport" yaml:"viewport"`
	RootNodeID string   `json:"rootNodeId" yaml:"rootNodeId"`
	Nodes      []*Node  `json:"nodes" yaml:"nodes"`
	Paints     []*Paint `json:"paints" yaml:"paints"`
	Assets     []*Asset `json:"assets" yaml:"assets"`
}

// Vec2 serializes as a two element array.
type Vec2 [2]float64

// Viewport is the initial view onto the composition.
type Viewport struct {
	PhysicalPosition Vec2 `json:"physicalPosition" yaml:"physicalPosition"`
	PhysicalSize     Vec2 `json:"physicalSize" yaml:"physicalSize"`
}

// Node returns the node record with the given ID, or nil.
func (d *Document) Node(id string) *Node {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Paint returns the paint record with the given ID, or nil.
func (d *Document) Paint(id string) *Paint {
	for _, p := range d.Paints {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Asset returns the asset record with the given ID, or nil.
func (d *Document) Asset(id string) *Asset {
	for _, a := range d.Assets {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Root returns the root node record, or nil.
func (d *Document) Root() *Node {
	return d.Node(d.RootNodeID)
}

type NodeType string

const (
	NodeFrame     NodeType = "Frame"
	NodeGroup     NodeType = "Group"
	NodeRectangle NodeType = "Rectangle"
	NodeEllipse   NodeType = "Ellipse"
	NodePolygon   NodeType = "Polygon"
	NodeStar      NodeType = "Star"
	NodeVector    NodeType = "Vector"
	NodeText      NodeType = "Text"
)

// IsContainer reports whether records of this type carry children.
func (t NodeType) IsContainer() bool {
	return t == NodeFrame || t == NodeGroup
}

// BlendMode is the renderer's blend mode.
type BlendMode string

const (
	BlendNormal     BlendMode = "Normal"
	BlendMultiply   BlendMode = "Multiply"
	BlendScreen     BlendMode = "Screen"
	BlendOverlay    BlendMode = "Overlay"
	BlendDarken     BlendMode = "Darken"
	BlendLighten    BlendMode = "Lighten"
	BlendColorDodge BlendMode = "ColorDodge"
	BlendColorBurn  BlendMode = "ColorBurn"
	BlendHardLight  BlendMode = "HardLight"
	BlendSoftLight  BlendMode = "SoftLight"
	BlendDifference BlendMode = "Difference"
	BlendExclusion  BlendMode = "Exclusion"
	BlendHue        BlendMode = "Hue"
	BlendSaturation BlendMode = "Saturation"
	BlendColor      BlendMode = "Color"
	BlendLuminosity BlendMode = "Luminosity"
)

// Transform is a node's local transform relative to its parent. Scale is
// never part of it; it is carried by Node.Size.
type Transform struct {
	Translation Vec2    `json:"translation" yaml:"translation"`
	RotationDeg float64 `json:"rotationDeg" yaml:"rotationDeg"`
}

// Node is one node record. Fields that only apply to some node types are
// omitted when empty.
type Node struct {
	Type          NodeType       `json:"type" yaml:"type"`
	ID            string         `json:"id" yaml:"id"`
	Name          string         `json:"name,omitempty" yaml:"name,omitempty"`
	Visible       bool           `json:"visible" yaml:"visible"`
	Transform     Transform      `json:"transform" yaml:"transform"`
	Size          Vec2           `json:"size" yaml:"size"`
	Opacity       float64        `json:"opacity" yaml:"opacity"`
	BlendMode     BlendMode      `json:"blendMode" yaml:"blendMode"`
	LayoutElement *LayoutElement `json:"layoutElement,omitempty" yaml:"layoutElement,omitempty"`
	Styles        []Style        `json:"styles,omitempty" yaml:"styles,omitempty"`

	// Frame and Group
	Children     []string      `json:"children,omitempty" yaml:"children,omitempty"`
	ClipContent  bool          `json:"clipContent,omitempty" yaml:"clipContent,omitempty"`
	LayoutParent *LayoutParent `json:"layoutParent,omitempty" yaml:"layoutParent,omitempty"`

	// Frame and Rectangle: top-left, top-right, bottom-right, bottom-left.
	CornerRadii *[4]float64 `json:"cornerRadii,omitempty" yaml:"cornerRadii,omitempty"`

	// Ellipse
	Arc *Arc `json:"arc,omitempty" yaml:"arc,omitempty"`

	// Polygon and Star
	PointCount       int     `json:"pointCount,omitempty" yaml:"pointCount,omitempty"`
	InnerRadiusRatio float64 `json:"innerRadiusRatio,omitempty" yaml:"innerRadiusRatio,omitempty"`

	// Vector
	Paths []Path `json:"paths,omitempty" yaml:"paths,omitempty"`

	// Text
	Text                string           `json:"text,omitempty" yaml:"text,omitempty"`
	Attributes          []TextAttributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	HorizontalAlignment string           `json:"horizontalTextAlignment,omitempty" yaml:"horizontalTextAlignment,omitempty"`
	VerticalAlignment   string           `json:"verticalTextAlignment,omitempty" yaml:"verticalTextAlignment,omitempty"`
	SizingMode          string           `json:"sizingMode,omitempty" yaml:"sizingMode,omitempty"`
}

// Arc is a partial ellipse; angles in radians.
type Arc struct {
	StartingAngle    float64 `json:"startingAngle" yaml:"startingAngle"`
	EndingAngle      float64 `json:"endingAngle" yaml:"endingAngle"`
	InnerRadiusRatio float64 `json:"innerRadiusRatio" yaml:"innerRadiusRatio"`
}

type Path struct {
	WindingRule string `json:"windingRule" yaml:"windingRule"`
	Data        string `json:"data" yaml:"data"`
}

// TextAttributes styles the characters in [Start, End).
type TextAttributes struct {
	Start      int       `json:"start" yaml:"start"`
	End        int       `json:"end" yaml:"end"`
	Attributes TextStyle `json:"attributes" yaml:"attributes"`
}

type TextStyle struct {
	FontID        string  `json:"fontId,omitempty" yaml:"fontId,omitempty"`
	FontFamily    string  `json:"fontFamily" yaml:"fontFamily"`
	FontStyle     string  `json:"fontStyle" yaml:"fontStyle"`
	FontWeight    int     `json:"fontWeight" yaml:"fontWeight"`
	FontSize      float64 `json:"fontSize" yaml:"fontSize"`
	LetterSpacing Measure `json:"letterSpacing" yaml:"letterSpacing"`
	LineHeight    Measure `json:"lineHeight" yaml:"lineHeight"`
}

// Measure is a length that may be automatic, absolute or relative.
type Measure struct {
	Type  string  `json:"type" yaml:"type"` // Auto, Pixels or Percent
	Value float64 `json:"value,omitempty" yaml:"value,omitempty"`
}

type LayoutElementType string

const (
	LayoutAbsolute LayoutElementType = "Absolute"
	LayoutStatic   LayoutElementType = "Static"
)

// LayoutElement tells the renderer how a node is placed in its parent.
// Absolute elements carry constraints; Static elements take part in their
// parent's flex layout and carry sizing modes.
type LayoutElement struct {
	Type                 LayoutElementType `json:"type" yaml:"type"`
	HorizontalConstraint string            `json:"horizontalConstraint,omitempty" yaml:"horizontalConstraint,omitempty"`
	VerticalConstraint   string            `json:"verticalConstraint,omitempty" yaml:"verticalConstraint,omitempty"`
	HorizontalSizing     string            `json:"horizontalSizingMode,omitempty" yaml:"horizontalSizingMode,omitempty"`
	VerticalSizing       string            `json:"verticalSizingMode,omitempty" yaml:"verticalSizingMode,omitempty"`
}

// LayoutParent is a container's flex layout.
type LayoutParent struct {
	Type           string     `json:"type" yaml:"type"` // always Flex
	Direction      string     `json:"flexDirection" yaml:"flexDirection"`
	Gap            float64    `json:"gap" yaml:"gap"`
	Padding        [4]float64 `json:"padding" yaml:"padding"` // top, right, bottom, left
	JustifyContent string     `json:"justifyContent" yaml:"justifyContent"`
	AlignItems     string     `json:"alignItems" yaml:"alignItems"`
}

type StyleType string

const (
	StyleFill       StyleType = "Fill"
	StyleStroke     StyleType = "Stroke"
	StyleDropShadow StyleType = "DropShadow"
)

// Style is one entry of a node's ordered style list.
type Style struct {
	Type      StyleType `json:"type" yaml:"type"`
	PaintID   string    `json:"paintId,omitempty" yaml:"paintId,omitempty"`
	Width     float64   `json:"width,omitempty" yaml:"width,omitempty"`
	Alignment string    `json:"alignment,omitempty" yaml:"alignment,omitempty"`

	// DropShadow
	Color    *[4]uint8 `json:"color,omitempty" yaml:"color,omitempty"`
	Position *Vec2     `json:"position,omitempty" yaml:"position,omitempty"`
	Spread   float64   `json:"spread,omitempty" yaml:"spread,omitempty"`
	Blur     float64   `json:"blur,omitempty" yaml:"blur,omitempty"`

	BlendMode BlendMode `json:"blendMode" yaml:"blendMode"`
	Opacity   float64   `json:"opacity" yaml:"opacity"`
	Visible   bool      `json:"visible" yaml:"visible"`
}

type PaintType string

const (
	PaintSolid    PaintType = "Solid"
	PaintGradient PaintType = "Gradient"
	PaintImage    PaintType = "Image"
)

// Paint is one paint record.
type Paint struct {
	Type      PaintType `json:"type" yaml:"type"`
	ID        string    `json:"id" yaml:"id"`
	BlendMode BlendMode `json:"blendMode" yaml:"blendMode"`
	Opacity   float64   `json:"opacity" yaml:"opacity"`
	IsVisible bool      `json:"isVisible" yaml:"isVisible"`

	// Solid, as RGB
	Color *[3]uint8 `json:"color,omitempty" yaml:"color,omitempty"`

	// Gradient
	Variant *GradientVariant `json:"variant,omitempty" yaml:"variant,omitempty"`
	Stops   []ColorStop      `json:"stops,omitempty" yaml:"stops,omitempty"`

	// Image
	ImageID   string     `json:"imageId,omitempty" yaml:"imageId,omitempty"`
	ScaleMode *ScaleMode `json:"scaleMode,omitempty" yaml:"scaleMode,omitempty"`
}

// GradientVariant is one of Linear, Radial, Conic or Diamond with the
// gradient's transform in [a b c d tx ty] order.
type GradientVariant struct {
	Type      string     `json:"type" yaml:"type"`
	Transform [6]float64 `json:"transform" yaml:"transform"`
}

const (
	GradientLinear  = "Linear"
	GradientRadial  = "Radial"
	GradientConic   = "Conic"
	GradientDiamond = "Diamond"
)

// ColorStop is a gradient stop; Color is RGBA.
type ColorStop struct {
	Position float64  `json:"position" yaml:"position"`
	Color    [4]uint8 `json:"color" yaml:"color"`
}

// ScaleMode is one of Fill, Fit, Crop (with Transform) or Tile (with
// Rotation and ScalingFactor).
type ScaleMode struct {
	Type          string      `json:"type" yaml:"type"`
	Transform     *[6]float64 `json:"transform,omitempty" yaml:"transform,omitempty"`
	Rotation      float64     `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	ScalingFactor float64     `json:"scalingFactor,omitempty" yaml:"scalingFactor,omitempty"`
}

const (
	ScaleModeFill = "Fill"
	ScaleModeFit  = "Fit"
	ScaleModeCrop = "Crop"
	ScaleModeTile = "Tile"
)

type ContentType string

const (
	ContentPng     ContentType = "Png"
	ContentJpeg    ContentType = "Jpeg"
	ContentGif     ContentType = "Gif"
	ContentSvg     ContentType = "Svg"
	ContentTtf     ContentType = "Ttf"
	ContentOtf     ContentType = "Otf"
	ContentWoff    ContentType = "Woff"
	ContentWoff2   ContentType = "Woff2"
	ContentUnknown ContentType = "Unknown"
)

// MIME returns the media type for the content type.
func (c ContentType) MIME() string {
	switch c {
	case ContentPng:
		return "image/png"
	case ContentJpeg:
		return "image/jpeg"
	case ContentGif:
		return "image/gif"
	case ContentSvg:
		return "image/svg+xml"
	case ContentTtf:
		return "font/ttf"
	case ContentOtf:
		return "font/otf"
	case ContentWoff:
		return "font/woff"
	case ContentWoff2:
		return "font/woff2"
	default:
		return "application/octet-stream"
	}
}

type ContentKind string

const (
	ContentBinary ContentKind = "Binary"
	ContentURL    ContentKind = "Url"
)

// Content is either inline bytes or a URL.
type Content struct {
	Type    ContentKind `json:"type" yaml:"type"`
	Content ByteArray   `json:"content,omitempty" yaml:"content,omitempty"`
	URL     string      `json:"url,omitempty" yaml:"url,omitempty"`
}

// Asset is one binary resource record.
type Asset struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name,omitempty" yaml:"name,omitempty"`
	Content     Content       `json:"content" yaml:"content"`
	ContentType AssetMimeType `json:"contentType" yaml:"contentType"`
}

type AssetMimeType struct {
	Type ContentType `json:"type" yaml:"type"`
}

// Clone returns a copy of n whose slices can be modified without affecting
// n.
func (n *Node) Clone() *Node {
	cp := *n
	cp.Children = append([]string(nil), n.Children...)
	cp.Styles = append([]Style(nil), n.Styles...)
	cp.Attributes = append([]TextAttributes(nil), n.Attributes...)
	cp.Paths = append([]Path(nil), n.Paths...)
	if n.LayoutElement != nil {
		le := *n.LayoutElement
		cp.LayoutElement = &le
	}
	return &cp
}
