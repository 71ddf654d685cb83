package mapping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
	"github.com/hashicorp-forge/dtif/pkg/upload"
)

// TransformAsset reads a font or image from the host and resolves it
// through the content resolver.
func (m *Mapper) TransformAsset(ctx context.Context, item *transformer.ToTransformAsset, pc *transformer.PipelineContext) transformer.Result[*dtif.Asset] {
	id := item.ID.AssetID()
	if pc.Host == nil {
		return transformer.Fail[*dtif.Asset](transformer.NewError(transformer.KindExportFailure, id, errors.New("no host to read assets from")))
	}

	var (
		data []byte
		name string
		err  error
	)
	switch item.Kind {
	case transformer.AssetFont:
		name = strings.TrimSpace(item.Font.Family + " " + item.Font.Style)
		data, err = pc.Host.FontBytes(ctx, item.Font)
	case transformer.AssetImage:
		name = item.ImageHash
		data, err = pc.Host.ImageBytes(ctx, item.ImageHash)
	default:
		return transformer.Fail[*dtif.Asset](transformer.NewError(transformer.KindInternal, id, fmt.Errorf("unknown asset kind %s", item.Kind)))
	}
	if err != nil {
		return transformer.Fail[*dtif.Asset](transformer.NewError(transformer.KindExportFailure, id, err))
	}

	ct := upload.Sniff(data)
	content, err := resolver(pc).Resolve(ctx, data, transformer.ResolveOptions{
		Key:         upload.Key(id, name, ct),
		ContentType: ct,
	})
	if err != nil {
		return transformer.Fail[*dtif.Asset](transformer.NewError(transformer.KindUploadFailure, id, err))
	}

	logger(pc, m).Debug("resolved asset",
		"asset", id,
		"kind", item.Kind,
		"content_type", ct,
		"content", content.Type,
		"bytes", len(data),
	)
	return transformer.Ok(&dtif.Asset{
		Name:        name,
		Content:     content,
		ContentType: dtif.AssetMimeType{Type: ct},
	})
}
