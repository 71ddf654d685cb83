package snapshot

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
)

const ellipseSegments = 48

// render draws node and its visible descendants into an RGBA image the
// size of node. The node's own transform is ignored so the output is
// positioned at the origin.
func render(node scenegraph.Node, scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	size := node.Size()
	w := int(math.Ceil(size.X * scale))
	h := int(math.Ceil(size.Y * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	base := scenegraph.Affine{scale, 0, 0, scale, 0, 0}
	drawNode(dst, node, base, node.Opacity())
	return dst
}

func drawNode(dst *image.RGBA, node scenegraph.Node, m scenegraph.Affine, opacity float64) {
	if g, ok := node.(scenegraph.GeometryNode); ok {
		for _, p := range g.Fills() {
			if !p.Visible {
				continue
			}
			c, ok := paintColor(p, opacity)
			if !ok {
				continue
			}
			fillOutline(dst, outline(node, m), c)
		}
	}

	p, ok := node.(scenegraph.ParentNode)
	if !ok {
		return
	}
	for _, child := range p.Children() {
		if !child.Visible() {
			continue
		}
		drawNode(dst, child, m.Multiply(child.Transform()), opacity*child.Opacity())
	}
}

// paintColor flattens a paint to one color. Gradients use their first stop;
// images have no color and are skipped.
func paintColor(p scenegraph.Paint, opacity float64) (color.NRGBA, bool) {
	var c scenegraph.Color
	switch {
	case p.Type == scenegraph.PaintSolid:
		c = p.Color
	case p.Type.IsGradient() && len(p.GradientStops) > 0:
		c = p.GradientStops[0].Color
	default:
		return color.NRGBA{}, false
	}
	a := c.A * p.Opacity * opacity
	return color.NRGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: channel(a),
	}, true
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// outline returns the node's outline in device space.
func outline(node scenegraph.Node, m scenegraph.Affine) []scenegraph.Vec2 {
	size := node.Size()
	var pts []scenegraph.Vec2
	switch node.Kind() {
	case scenegraph.KindEllipse:
		rx, ry := size.X/2, size.Y/2
		for i := 0; i < ellipseSegments; i++ {
			t := 2 * math.Pi * float64(i) / ellipseSegments
			pts = append(pts, scenegraph.Vec2{X: rx + rx*math.Cos(t), Y: ry + ry*math.Sin(t)})
		}
	case scenegraph.KindPolygon:
		n := 3
		if pn, ok := node.(scenegraph.PolygonNode); ok && pn.PointCount() >= 3 {
			n = pn.PointCount()
		}
		rx, ry := size.X/2, size.Y/2
		for i := 0; i < n; i++ {
			t := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
			pts = append(pts, scenegraph.Vec2{X: rx + rx*math.Cos(t), Y: ry + ry*math.Sin(t)})
		}
	case scenegraph.KindLine:
		// A line has no height; give it a one unit stroke band.
		pts = []scenegraph.Vec2{{X: 0, Y: -0.5}, {X: size.X, Y: -0.5}, {X: size.X, Y: 0.5}, {X: 0, Y: 0.5}}
	default:
		pts = []scenegraph.Vec2{{X: 0, Y: 0}, {X: size.X, Y: 0}, {X: size.X, Y: size.Y}, {X: 0, Y: size.Y}}
	}
	for i, p := range pts {
		pts[i] = m.Apply(p)
	}
	return pts
}

func fillOutline(dst *image.RGBA, pts []scenegraph.Vec2, c color.NRGBA) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	r.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.LineTo(float32(p.X), float32(p.Y))
	}
	r.ClosePath()
	r.Draw(dst, b, image.NewUniform(c), image.Point{})
}
