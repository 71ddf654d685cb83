package transformer

import (
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
)

// ToTransformNode is one visited node awaiting the node phase. The phase
// transformer must treat it as read-only.
type ToTransformNode struct {
	ID       ContinuousID
	ParentID ContinuousID
	Node     scenegraph.Node
	Kind     scenegraph.NodeKind

	// ChildIDs are in host child order.
	ChildIDs []ContinuousID

	// Fills, Strokes and Segments are copies taken during the walk. The
	// host may change afterwards; transformers map these, not the node's
	// current lists.
	Fills    []scenegraph.Paint
	Strokes  []scenegraph.Paint
	Segments []scenegraph.TextSegment

	// FillIDs and StrokeIDs are index-aligned with Fills and Strokes.
	FillIDs   []ContinuousID
	StrokeIDs []ContinuousID

	// FontIDs are index-aligned with Segments.
	FontIDs []ContinuousID

	// AssetIDs are all assets the node depends on: image assets of its
	// paints, then fonts.
	AssetIDs []ContinuousID
}

// IsRoot reports whether the entry is the walked root.
func (n *ToTransformNode) IsRoot() bool { return n.ID == ZeroID }

// PaintIDs returns the fill then stroke paint IDs.
func (n *ToTransformNode) PaintIDs() []ContinuousID {
	ids := make([]ContinuousID, 0, len(n.FillIDs)+len(n.StrokeIDs))
	ids = append(ids, n.FillIDs...)
	return append(ids, n.StrokeIDs...)
}

// ToTransformPaint is one distinct paint awaiting the paint phase.
type ToTransformPaint struct {
	ID      ContinuousID
	Paint   scenegraph.Paint
	NodeIDs []ContinuousID

	// ImageAssetID is the asset holding an image paint's binary. Only set
	// when HasImageAsset is true.
	ImageAssetID  ContinuousID
	HasImageAsset bool
}

// AssetKind distinguishes the binary resources a document embeds.
type AssetKind uint8

const (
	AssetFont AssetKind = iota
	AssetImage
)

func (k AssetKind) String() string {
	switch k {
	case AssetFont:
		return "font"
	case AssetImage:
		return "image"
	default:
		return "unknown"
	}
}

// AssetInput is the identity of an asset: a font face or an image hash.
type AssetInput struct {
	Kind      AssetKind
	Font      scenegraph.Font
	ImageHash string
}

// ToTransformAsset is one distinct asset awaiting the asset phase.
type ToTransformAsset struct {
	ID ContinuousID
	AssetInput
	NodeIDs []ContinuousID
}

// WalkResult holds the worklists produced by ProcessNodeTree. Nodes are in
// post-order: a node's entry follows all of its descendants'.
type WalkResult struct {
	RootID ContinuousID
	Nodes  []*ToTransformNode
	Paints []*ToTransformPaint
	Assets []*ToTransformAsset
}

type walker struct {
	ids         *IDSpace
	paints      *Deduplicator[scenegraph.Paint]
	assets      *Deduplicator[AssetInput]
	paintImages map[ContinuousID]ContinuousID
	nodes       []*ToTransformNode
}

// ProcessNodeTree walks root depth first and builds the worklists. The root
// always gets ZeroID; every other node gets ids.Nodes.NextID() before its
// own subtree is walked. Paints and assets are deduplicated by content. The
// walk does no I/O and never fails: invisible and unsupported nodes are
// enumerated like any other.
func ProcessNodeTree(root scenegraph.Node, ids *IDSpace) *WalkResult {
	if root == nil {
		panic("transformer: ProcessNodeTree called with nil root")
	}
	w := &walker{
		ids:         ids,
		paints:      NewPaintDeduplicator[scenegraph.Paint](ids.Paints),
		assets:      NewAssetDeduplicator[AssetInput](ids.Assets),
		paintImages: make(map[ContinuousID]ContinuousID),
	}
	w.visit(root, ZeroID, ZeroID)

	res := &WalkResult{RootID: ZeroID, Nodes: w.nodes}
	for _, e := range w.paints.Entries() {
		imageID, hasImage := w.paintImages[e.ID]
		res.Paints = append(res.Paints, &ToTransformPaint{
			ID:            e.ID,
			Paint:         e.Input,
			NodeIDs:       e.NodeIDs,
			ImageAssetID:  imageID,
			HasImageAsset: hasImage,
		})
	}
	for _, e := range w.assets.Entries() {
		res.Assets = append(res.Assets, &ToTransformAsset{
			ID:         e.ID,
			AssetInput: e.Input,
			NodeIDs:    e.NodeIDs,
		})
	}
	return res
}

func (w *walker) visit(node scenegraph.Node, id, parentID ContinuousID) {
	entry := &ToTransformNode{
		ID:       id,
		ParentID: parentID,
		Node:     node,
		Kind:     node.Kind(),
	}

	if p, ok := node.(scenegraph.ParentNode); ok {
		for _, child := range p.Children() {
			childID := w.ids.Nodes.NextID()
			entry.ChildIDs = append(entry.ChildIDs, childID)
			w.visit(child, childID, id)
		}
	}

	if g, ok := node.(scenegraph.GeometryNode); ok {
		entry.Fills = append([]scenegraph.Paint(nil), g.Fills()...)
		entry.Strokes = append([]scenegraph.Paint(nil), g.Strokes()...)
		for _, p := range entry.Fills {
			entry.FillIDs = append(entry.FillIDs, w.paint(entry, p))
		}
		for _, p := range entry.Strokes {
			entry.StrokeIDs = append(entry.StrokeIDs, w.paint(entry, p))
		}
	}

	if t, ok := node.(scenegraph.TextNode); ok {
		entry.Segments = append([]scenegraph.TextSegment(nil), t.Segments()...)
		for _, seg := range entry.Segments {
			fontID := w.assets.GetOrGenerateID(AssetInput{Kind: AssetFont, Font: seg.Font}, id)
			entry.FontIDs = append(entry.FontIDs, fontID)
			entry.AssetIDs = append(entry.AssetIDs, fontID)
		}
	}

	w.nodes = append(w.nodes, entry)
}

func (w *walker) paint(entry *ToTransformNode, p scenegraph.Paint) ContinuousID {
	if p.Type != scenegraph.PaintImage || p.ImageHash == "" {
		return w.paints.GetOrGenerateIDFor(identityOf(p), p, entry.ID)
	}
	imageID := w.assets.GetOrGenerateID(AssetInput{Kind: AssetImage, ImageHash: p.ImageHash}, entry.ID)
	entry.AssetIDs = append(entry.AssetIDs, imageID)
	paintID := w.paints.GetOrGenerateIDFor(identityOf(p), p, entry.ID)
	w.paintImages[paintID] = imageID
	return paintID
}

// paintIdentity holds the fields that distinguish paints of one type.
// Fields another paint type uses stay zero.
type paintIdentity struct {
	Type      scenegraph.PaintType
	Visible   bool
	Opacity   float64
	BlendMode scenegraph.BlendMode

	Color     scenegraph.Color
	Stops     []scenegraph.ColorStop
	Transform scenegraph.Affine

	ImageHash     string
	ScaleMode     scenegraph.ScaleMode
	ScalingFactor float64
	Rotation      float64
}

func identityOf(p scenegraph.Paint) paintIdentity {
	id := paintIdentity{
		Type:      p.Type,
		Visible:   p.Visible,
		Opacity:   p.Opacity,
		BlendMode: p.BlendMode,
	}
	switch {
	case p.Type == scenegraph.PaintSolid:
		id.Color = p.Color
	case p.Type.IsGradient():
		id.Stops = p.GradientStops
		id.Transform = p.GradientTransform
	case p.Type == scenegraph.PaintImage || p.Type == scenegraph.PaintVideo:
		id.ImageHash = p.ImageHash
		id.ScaleMode = p.ScaleMode
		id.Transform = p.ImageTransform
		id.ScalingFactor = p.ScalingFactor
		id.Rotation = p.Rotation
	}
	return id
}
