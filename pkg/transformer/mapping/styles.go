package mapping

import (
	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

// styles builds a node's style list from the paints seen during the walk:
// fills, then strokes, then effects the renderer supports.
func styles(item *transformer.ToTransformNode) []dtif.Style {
	var out []dtif.Style

	if g, ok := item.Node.(scenegraph.GeometryNode); ok {
		for i, p := range item.Fills {
			out = append(out, paintStyle(dtif.StyleFill, item.FillIDs[i], p))
		}
		for i, p := range item.Strokes {
			s := paintStyle(dtif.StyleStroke, item.StrokeIDs[i], p)
			s.Width = g.StrokeWeight()
			s.Alignment = strokeAlign(g.StrokeAlign())
			out = append(out, s)
		}
	}

	if e, ok := item.Node.(scenegraph.EffectNode); ok {
		for _, effect := range e.Effects() {
			if s, ok := effectStyle(effect); ok {
				out = append(out, s)
			}
		}
	}

	return out
}

func paintStyle(typ dtif.StyleType, id transformer.ContinuousID, p scenegraph.Paint) dtif.Style {
	return dtif.Style{
		Type:      typ,
		PaintID:   id.PaintID(),
		BlendMode: blendMode(p.BlendMode),
		Opacity:   clamp01(p.Opacity),
		Visible:   p.Visible,
	}
}

func strokeAlign(a scenegraph.StrokeAlign) string {
	switch a {
	case scenegraph.StrokeCenter:
		return "Center"
	case scenegraph.StrokeOutside:
		return "Outside"
	default:
		return "Inside"
	}
}

// effectStyle maps an effect. Inner shadows and blurs have no style in the
// document and are skipped.
func effectStyle(e scenegraph.Effect) (dtif.Style, bool) {
	switch e.Type {
	case scenegraph.EffectDropShadow:
		color := rgba(e.Color)
		pos := vec(e.Offset)
		return dtif.Style{
			Type:      dtif.StyleDropShadow,
			Color:     &color,
			Position:  &pos,
			Spread:    e.Spread,
			Blur:      e.Radius,
			BlendMode: blendMode(e.BlendMode),
			Opacity:   1,
			Visible:   e.Visible,
		}, true
	default:
		return dtif.Style{}, false
	}
}
