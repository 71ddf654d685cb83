package mapping

import (
	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

// layoutElement places a node in its parent. A child of an auto-layout
// container takes part in the flex layout unless it is absolutely
// positioned; every other node, and the root, keeps its constraints.
func layoutElement(item *transformer.ToTransformNode) *dtif.LayoutElement {
	ln, ok := item.Node.(scenegraph.LayoutNode)
	if !ok {
		return &dtif.LayoutElement{
			Type:                 dtif.LayoutAbsolute,
			HorizontalConstraint: "Start",
			VerticalConstraint:   "Start",
		}
	}

	if !item.IsRoot() && inAutoLayout(item.Node) && ln.LayoutPositioning() != scenegraph.PositionAbsolute {
		h, v := ln.LayoutSizing()
		return &dtif.LayoutElement{
			Type:             dtif.LayoutStatic,
			HorizontalSizing: sizingMode(h),
			VerticalSizing:   sizingMode(v),
		}
	}

	c := ln.Constraints()
	return &dtif.LayoutElement{
		Type:                 dtif.LayoutAbsolute,
		HorizontalConstraint: constraint(c.Horizontal),
		VerticalConstraint:   constraint(c.Vertical),
	}
}

func inAutoLayout(n scenegraph.Node) bool {
	p, ok := n.Parent().(scenegraph.AutoLayoutNode)
	return ok && p.AutoLayout().Mode != scenegraph.LayoutNone
}

func constraint(c scenegraph.ConstraintType) string {
	switch c {
	case scenegraph.ConstraintMax:
		return "End"
	case scenegraph.ConstraintCenter:
		return "Center"
	case scenegraph.ConstraintStretch:
		return "Stretch"
	case scenegraph.ConstraintScale:
		return "Scale"
	default:
		return "Start"
	}
}

func sizingMode(m scenegraph.SizingMode) string {
	switch m {
	case scenegraph.SizingHug:
		return "Hug"
	case scenegraph.SizingFill:
		return "Fill"
	default:
		return "Fixed"
	}
}

// layoutParent describes a container's own auto-layout, or nil.
func layoutParent(n scenegraph.Node) *dtif.LayoutParent {
	a, ok := n.(scenegraph.AutoLayoutNode)
	if !ok {
		return nil
	}
	al := a.AutoLayout()
	if al.Mode == scenegraph.LayoutNone {
		return nil
	}

	direction := "Row"
	if al.Mode == scenegraph.LayoutVertical {
		direction = "Column"
	}
	return &dtif.LayoutParent{
		Type:           "Flex",
		Direction:      direction,
		Gap:            al.ItemSpacing,
		Padding:        [4]float64{al.PaddingTop, al.PaddingRight, al.PaddingBot, al.PaddingLeft},
		JustifyContent: axisAlign(al.PrimaryAlign),
		AlignItems:     axisAlign(al.CounterAlign),
	}
}

func axisAlign(a scenegraph.AxisAlign) string {
	switch a {
	case scenegraph.AlignCenter:
		return "Center"
	case scenegraph.AlignMax:
		return "End"
	case scenegraph.AlignSpaceBetween:
		return "SpaceBetween"
	case scenegraph.AlignBaseline:
		return "Baseline"
	default:
		return "Start"
	}
}
