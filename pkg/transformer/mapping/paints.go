package mapping

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

var errNoImage = errors.New("image paint has no image")

// TransformPaint maps one paint to its record. Hidden paints are emitted
// with IsVisible false.
func (m *Mapper) TransformPaint(ctx context.Context, item *transformer.ToTransformPaint, pc *transformer.PipelineContext) transformer.Result[*dtif.Paint] {
	p := item.Paint
	rec := &dtif.Paint{
		BlendMode: blendMode(p.BlendMode),
		Opacity:   clamp01(p.Opacity),
		IsVisible: p.Visible,
	}

	switch {
	case p.Type == scenegraph.PaintSolid:
		rec.Type = dtif.PaintSolid
		rec.Color = rgb(p.Color)

	case p.Type.IsGradient():
		rec.Type = dtif.PaintGradient
		rec.Variant = &dtif.GradientVariant{
			Type:      gradientType(p.Type),
			Transform: [6]float64(p.GradientTransform),
		}
		for _, s := range p.GradientStops {
			rec.Stops = append(rec.Stops, dtif.ColorStop{Position: s.Position, Color: rgba(s.Color)})
		}

	case p.Type == scenegraph.PaintImage:
		if err := m.checkImage(ctx, item, pc); err != nil {
			return transformer.Fail[*dtif.Paint](err)
		}
		rec.Type = dtif.PaintImage
		rec.ImageID = item.ImageAssetID.AssetID()
		rec.ScaleMode = scaleMode(p)

	default:
		return transformer.Fail[*dtif.Paint](transformer.NewError(transformer.KindUnsupportedPaint, item.ID.PaintID(),
			fmt.Errorf("unsupported paint type %d", p.Type)))
	}

	return transformer.Ok(rec)
}

// checkImage reads the paint's image from the host and checks that it
// decodes. A missing image may still be loading and is retried; an image
// that does not decode is dropped.
func (m *Mapper) checkImage(ctx context.Context, item *transformer.ToTransformPaint, pc *transformer.PipelineContext) *transformer.TransformError {
	id := item.ID.PaintID()
	if !item.HasImageAsset {
		return transformer.NewError(transformer.KindUnsupportedPaint, id, errNoImage)
	}
	if pc.Host == nil {
		return transformer.NewError(transformer.KindExportFailure, id, errors.New("no host to read images from"))
	}

	data, err := pc.Host.ImageBytes(ctx, item.Paint.ImageHash)
	if err != nil {
		return transformer.NewError(transformer.KindExportFailure, id, err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return transformer.NewError(transformer.KindUnsupportedPaint, id, fmt.Errorf("image %s does not decode: %w", item.Paint.ImageHash, err))
	}

	logger(pc, m).Trace("checked image",
		"paint", id,
		"format", format,
		"width", cfg.Width,
		"height", cfg.Height,
	)
	return nil
}

func gradientType(t scenegraph.PaintType) string {
	switch t {
	case scenegraph.PaintGradientRadial:
		return dtif.GradientRadial
	case scenegraph.PaintGradientAngular:
		return dtif.GradientConic
	case scenegraph.PaintGradientDiamond:
		return dtif.GradientDiamond
	default:
		return dtif.GradientLinear
	}
}

func scaleMode(p scenegraph.Paint) *dtif.ScaleMode {
	switch p.ScaleMode {
	case scenegraph.ScaleFit:
		return &dtif.ScaleMode{Type: dtif.ScaleModeFit}
	case scenegraph.ScaleCrop:
		t := [6]float64(p.ImageTransform)
		return &dtif.ScaleMode{Type: dtif.ScaleModeCrop, Transform: &t}
	case scenegraph.ScaleTile:
		factor := p.ScalingFactor
		if factor <= 0 {
			factor = 1
		}
		return &dtif.ScaleMode{Type: dtif.ScaleModeTile, Rotation: p.Rotation, ScalingFactor: factor}
	default:
		return &dtif.ScaleMode{Type: dtif.ScaleModeFill}
	}
}
