package mapping

import (
	"context"
	"errors"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

type nodeMapper func(m *Mapper, ctx context.Context, item *transformer.ToTransformNode, pc *transformer.PipelineContext) transformer.Result[*dtif.Node]

// nodeMappers has one entry per host node kind.
var nodeMappers = [...]nodeMapper{
	scenegraph.KindFrame:            mapFrame,
	scenegraph.KindGroup:            mapGroup,
	scenegraph.KindComponent:        mapFrame,
	scenegraph.KindInstance:         mapFrame,
	scenegraph.KindRectangle:        mapRectangle,
	scenegraph.KindEllipse:          mapEllipse,
	scenegraph.KindPolygon:          mapPolygon,
	scenegraph.KindStar:             mapStar,
	scenegraph.KindVector:           mapVector,
	scenegraph.KindText:             mapText,
	scenegraph.KindLine:             (*Mapper).rasterize,
	scenegraph.KindBooleanOperation: (*Mapper).rasterize,
	scenegraph.KindSlice:            unsupported,
}

// A node kind without a table entry fails to compile here.
var (
	_ [len(nodeMappers) - scenegraph.NumNodeKinds]struct{}
	_ [scenegraph.NumNodeKinds - len(nodeMappers)]struct{}
)

var errNoMapping = errors.New("no mapping for node kind")

// TransformNode maps one node to its record.
func (m *Mapper) TransformNode(ctx context.Context, item *transformer.ToTransformNode, pc *transformer.PipelineContext) transformer.Result[*dtif.Node] {
	id := item.ID.NodeID()

	if !item.IsRoot() {
		if !item.Node.Visible() && !pc.IncludeInvisible {
			return transformer.Fail[*dtif.Node](transformer.NewError(transformer.KindInvisibleNode, id, nil))
		}
		if flattenedAncestor(item.Node, pc.Root) {
			return transformer.Fail[*dtif.Node](transformer.NewError(transformer.KindFlattened, id, nil))
		}
		if item.Kind.IsContainer() && flattens(item.Node) {
			return m.rasterize(ctx, item, pc)
		}
	}

	if int(item.Kind) >= len(nodeMappers) || nodeMappers[item.Kind] == nil {
		return transformer.Fail[*dtif.Node](transformer.NewError(transformer.KindUnsupportedNode, id, errNoMapping))
	}
	return nodeMappers[item.Kind](m, ctx, item, pc)
}

func flattens(n scenegraph.Node) bool {
	f, ok := n.(scenegraph.FlattenNode)
	return ok && f.FlattenOnExport()
}

// flattenedAncestor reports whether a container between n and root is
// exported as an image.
func flattenedAncestor(n, root scenegraph.Node) bool {
	for p := n.Parent(); p != nil && p != root; p = p.Parent() {
		if p.Kind().IsContainer() && flattens(p) {
			return true
		}
	}
	return false
}

// base fills the fields every node record has.
func base(typ dtif.NodeType, item *transformer.ToTransformNode) *dtif.Node {
	n := item.Node
	return &dtif.Node{
		Type:          typ,
		Name:          n.Name(),
		Visible:       n.Visible(),
		Transform:     decompose(n.Transform()),
		Size:          vec(n.Size()),
		Opacity:       clamp01(n.Opacity()),
		BlendMode:     blendMode(n.BlendMode()),
		LayoutElement: layoutElement(item),
		Styles:        styles(item),
	}
}

func children(item *transformer.ToTransformNode) []string {
	if len(item.ChildIDs) == 0 {
		return nil
	}
	out := make([]string, len(item.ChildIDs))
	for i, c := range item.ChildIDs {
		out[i] = c.NodeID()
	}
	return out
}

func cornerRadii(n scenegraph.Node) *[4]float64 {
	c, ok := n.(scenegraph.CornerNode)
	if !ok {
		return nil
	}
	r := c.CornerRadii()
	if r == [4]float64{} {
		return nil
	}
	return &r
}

func mapFrame(_ *Mapper, _ context.Context, item *transformer.ToTransformNode, _ *transformer.PipelineContext) transformer.Result[*dtif.Node] {
	rec := base(dtif.NodeFrame, item)
	rec.Children = children(item)
	rec.CornerRadii = cornerRadii(item.Node)
	rec.LayoutParent = layoutParent(item.Node)
	if c, ok := item.Node.(scenegraph.ClipNode); ok {
		rec.ClipContent = c.ClipsContent()
	}
	return transformer.Ok(rec)
}

func mapGroup(_ *Mapper, _ context.Context, item *transformer.ToTransformNode, _ *transformer.PipelineContext) transformer.Result[*dtif.Node] {
	rec := base(dtif.NodeGroup, item)
	rec.Children = children(item)
	return transformer.Ok(rec)
}

func mapRectangle(_ *Mapper, _ context.Context, item *transformer.ToTransformNode, _ *transformer.PipelineContext) transformer.Result[*dtif.Node] {
	rec := base(dtif.NodeRectangle, item)
	rec.CornerRadii = cornerRadii(item.Node)
	return transformer.Ok(rec)
}

func mapEllipse(_ *Mapper, _ context.Context, item *transformer.ToTransformNode, _ *transformer.PipelineContext) transformer.Result[*dtif.Node] {
	rec := base(dtif.NodeEllipse, item)
	if e, ok := item.Node.(scenegraph.EllipseNode); ok {
		arc := e.ArcData()
		rec.Arc = &dtif.Arc{
			StartingAngle:    arc.StartingAngle,
			EndingAngle:      arc.EndingAngle,
			InnerRadiusRatio: arc.InnerRadius,
		}
	}
	return transformer.Ok(rec)
}

func mapPolygon(_ *Mapper, _ context.Context, item *transformer.ToTransformNode, _ *transformer.PipelineContext) transformer.Result[*dtif.Node] {
	rec := base(dtif.NodePolygon, item)
	if p, ok := item.Node.(scenegraph.PolygonNode); ok {
		rec.PointCount = p.PointCount()
	}
	return transformer.Ok(rec)
}

func mapStar(_ *Mapper, _ context.Context, item *transformer.ToTransformNode, _ *transformer.PipelineContext) transformer.Result[*dtif.Node] {
	rec := base(dtif.NodeStar, item)
	if s, ok := item.Node.(scenegraph.StarNode); ok {
		rec.PointCount = s.PointCount()
		rec.InnerRadiusRatio = s.InnerRadius()
	}
	return transformer.Ok(rec)
}

func mapVector(_ *Mapper, _ context.Context, item *transformer.ToTransformNode, _ *transformer.PipelineContext) transformer.Result[*dtif.Node] {
	rec := base(dtif.NodeVector, item)
	if v, ok := item.Node.(scenegraph.VectorNode); ok {
		for _, p := range v.VectorPaths() {
			rec.Paths = append(rec.Paths, dtif.Path{WindingRule: p.WindingRule, Data: p.Data})
		}
	}
	return transformer.Ok(rec)
}

func unsupported(_ *Mapper, _ context.Context, item *transformer.ToTransformNode, _ *transformer.PipelineContext) transformer.Result[*dtif.Node] {
	return transformer.Fail[*dtif.Node](transformer.NewError(transformer.KindUnsupportedNode, item.ID.NodeID(), errNoMapping))
}
