package mapping

import (
	"context"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

func mapText(_ *Mapper, _ context.Context, item *transformer.ToTransformNode, _ *transformer.PipelineContext) transformer.Result[*dtif.Node] {
	t, ok := item.Node.(scenegraph.TextNode)
	if !ok {
		return transformer.Fail[*dtif.Node](transformer.NewError(transformer.KindUnsupportedNode, item.ID.NodeID(), errNoMapping))
	}

	rec := base(dtif.NodeText, item)
	rec.Text = t.Characters()

	for i, seg := range item.Segments {
		rec.Attributes = append(rec.Attributes, dtif.TextAttributes{
			Start: seg.Start,
			End:   seg.End,
			Attributes: dtif.TextStyle{
				FontID:        item.FontIDs[i].AssetID(),
				FontFamily:    seg.Font.Family,
				FontStyle:     seg.Font.Style,
				FontWeight:    seg.Font.Weight,
				FontSize:      seg.FontSize,
				LetterSpacing: measure(seg.LetterSpacing),
				LineHeight:    measure(seg.LineHeight),
			},
		})
	}

	h, v := t.TextAlign()
	rec.HorizontalAlignment = horizontalAlign(h)
	rec.VerticalAlignment = verticalAlign(v)
	rec.SizingMode = textSizing(t.AutoResize())

	return transformer.Ok(rec)
}

func measure(m scenegraph.Measure) dtif.Measure {
	switch m.Unit {
	case scenegraph.UnitPixels:
		return dtif.Measure{Type: "Pixels", Value: m.Value}
	case scenegraph.UnitPercent:
		return dtif.Measure{Type: "Percent", Value: m.Value}
	default:
		return dtif.Measure{Type: "Auto"}
	}
}

func horizontalAlign(a scenegraph.TextAlignHorizontal) string {
	switch a {
	case scenegraph.TextAlignCenter:
		return "Center"
	case scenegraph.TextAlignRight:
		return "Right"
	case scenegraph.TextAlignJustified:
		return "Justified"
	default:
		return "Left"
	}
}

func verticalAlign(a scenegraph.TextAlignVertical) string {
	switch a {
	case scenegraph.TextAlignMiddle:
		return "Center"
	case scenegraph.TextAlignBottom:
		return "Bottom"
	default:
		return "Top"
	}
}

func textSizing(r scenegraph.TextAutoResize) string {
	switch r {
	case scenegraph.AutoResizeWidthAndHeight:
		return "WidthAndHeight"
	case scenegraph.AutoResizeHeight:
		return "Height"
	default:
		return "Fixed"
	}
}
