package transformer

import (
	"context"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
)

// Result is the outcome of transforming one item: a record or an error,
// never both.
type Result[T any] struct {
	Record T
	Err    *TransformError
}

func Ok[T any](record T) Result[T] {
	return Result[T]{Record: record}
}

func Fail[T any](err *TransformError) Result[T] {
	return Result[T]{Err: err}
}

func (r Result[T]) IsOk() bool { return r.Err == nil }

// NodeTransformer maps a node worklist entry to a node record.
type NodeTransformer interface {
	TransformNode(ctx context.Context, item *ToTransformNode, pc *PipelineContext) Result[*dtif.Node]
}

// PaintTransformer maps a paint worklist entry to a paint record.
type PaintTransformer interface {
	TransformPaint(ctx context.Context, item *ToTransformPaint, pc *PipelineContext) Result[*dtif.Paint]
}

// AssetTransformer maps an asset worklist entry to an asset record.
type AssetTransformer interface {
	TransformAsset(ctx context.Context, item *ToTransformAsset, pc *PipelineContext) Result[*dtif.Asset]
}

// NodeTransformerFunc adapts a function to NodeTransformer.
type NodeTransformerFunc func(ctx context.Context, item *ToTransformNode, pc *PipelineContext) Result[*dtif.Node]

func (f NodeTransformerFunc) TransformNode(ctx context.Context, item *ToTransformNode, pc *PipelineContext) Result[*dtif.Node] {
	return f(ctx, item, pc)
}

// PaintTransformerFunc adapts a function to PaintTransformer.
type PaintTransformerFunc func(ctx context.Context, item *ToTransformPaint, pc *PipelineContext) Result[*dtif.Paint]

func (f PaintTransformerFunc) TransformPaint(ctx context.Context, item *ToTransformPaint, pc *PipelineContext) Result[*dtif.Paint] {
	return f(ctx, item, pc)
}

// AssetTransformerFunc adapts a function to AssetTransformer.
type AssetTransformerFunc func(ctx context.Context, item *ToTransformAsset, pc *PipelineContext) Result[*dtif.Asset]

func (f AssetTransformerFunc) TransformAsset(ctx context.Context, item *ToTransformAsset, pc *PipelineContext) Result[*dtif.Asset] {
	return f(ctx, item, pc)
}
