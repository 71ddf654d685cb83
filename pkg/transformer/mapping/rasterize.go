package mapping

import (
	"context"
	"fmt"
	"math"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
	"github.com/hashicorp-forge/dtif/pkg/upload"
)

// rasterize exports a node as a PNG and returns a rectangle filled with
// it. The image asset and paint are inserted straight into the output
// under freshly minted IDs.
func (m *Mapper) rasterize(ctx context.Context, item *transformer.ToTransformNode, pc *transformer.PipelineContext) transformer.Result[*dtif.Node] {
	id := item.ID.NodeID()
	if pc.Host == nil {
		return transformer.Fail[*dtif.Node](transformer.NewError(transformer.KindExportFailure, id, fmt.Errorf("no host to export %s", item.Kind)))
	}

	data, err := m.export(ctx, item.Node, pc)
	if err != nil {
		return transformer.Fail[*dtif.Node](transformer.NewError(transformer.KindExportFailure, id, err))
	}

	assetID := pc.NextAssetID()
	content, err := resolver(pc).Resolve(ctx, data, transformer.ResolveOptions{
		Key:         upload.Key(assetID.AssetID(), item.Node.Name(), dtif.ContentPng),
		ContentType: dtif.ContentPng,
	})
	if err != nil {
		return transformer.Fail[*dtif.Node](transformer.NewError(transformer.KindUploadFailure, id, err))
	}

	pc.InsertAsset(assetID, &dtif.Asset{
		Name:        item.Node.Name(),
		Content:     content,
		ContentType: dtif.AssetMimeType{Type: dtif.ContentPng},
	})

	paintID := pc.NextPaintID()
	pc.InsertPaint(paintID, &dtif.Paint{
		Type:      dtif.PaintImage,
		BlendMode: dtif.BlendNormal,
		Opacity:   1,
		IsVisible: true,
		ImageID:   assetID.AssetID(),
		ScaleMode: &dtif.ScaleMode{Type: dtif.ScaleModeFill},
	})

	rec := &dtif.Node{
		Type:          dtif.NodeRectangle,
		Name:          item.Node.Name(),
		Visible:       item.Node.Visible(),
		Transform:     decompose(item.Node.Transform()),
		Size:          vec(item.Node.Size()),
		Opacity:       clamp01(item.Node.Opacity()),
		BlendMode:     blendMode(item.Node.BlendMode()),
		LayoutElement: layoutElement(item),
		Styles: []dtif.Style{{
			Type:      dtif.StyleFill,
			PaintID:   paintID.PaintID(),
			BlendMode: dtif.BlendNormal,
			Opacity:   1,
			Visible:   true,
		}},
	}

	logger(pc, m).Debug("rasterized node",
		"node", id,
		"kind", item.Kind,
		"asset", assetID.AssetID(),
		"paint", paintID.PaintID(),
		"bytes", len(data),
	)
	return transformer.Ok(rec)
}

// export stages a clone of node in a transient container sized to the node
// and exports the container, so the image is not offset by the node's own
// position. The container is always removed.
func (m *Mapper) export(ctx context.Context, node scenegraph.Node, pc *transformer.PipelineContext) (data []byte, err error) {
	container, err := pc.Host.CreateContainer(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create export container: %w", err)
	}
	defer func() {
		if rerr := container.Remove(); rerr != nil {
			logger(pc, m).Warn("failed to remove export container", "error", rerr)
			if err == nil {
				err = fmt.Errorf("failed to remove export container: %w", rerr)
			}
		}
	}()

	// Lines have no height.
	size := node.Size()
	if err := container.Resize(math.Max(size.X, 1), math.Max(size.Y, 1)); err != nil {
		return nil, fmt.Errorf("failed to resize export container: %w", err)
	}
	if err := container.AppendClone(node); err != nil {
		return nil, fmt.Errorf("failed to stage node for export: %w", err)
	}

	data, err = pc.Host.ExportAsync(ctx, container, scenegraph.ExportSettings{
		Format: scenegraph.FormatPNG,
		Scale:  m.exportScale,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export: %w", err)
	}
	return data, nil
}
