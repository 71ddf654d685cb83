package transformer

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
)

// ResolveOptions describe binary content being resolved.
type ResolveOptions struct {
	// Key is a stable, unique name for the content, e.g. "a12-inter-bold".
	Key         string
	ContentType dtif.ContentType
}

// ContentResolver turns binary content into document content: inline
// bytes, or a URL after uploading it somewhere.
type ContentResolver interface {
	Resolve(ctx context.Context, data []byte, opts ResolveOptions) (dtif.Content, error)
}

// PipelineContext is what phase transformers may use besides their item:
// the host, the content resolver, run options, and the output collections
// for records minted outside the worklists.
type PipelineContext struct {
	// Root is the walked root. Nodes above it are outside the document.
	Root     scenegraph.Node
	Host     scenegraph.Host
	Resolver ContentResolver
	Logger   hclog.Logger

	// IncludeInvisible makes hidden nodes emit records instead of being
	// dropped.
	IncludeInvisible bool

	ids *IDSpace
	out *outputs
}

// NewPipelineContext creates a context for driving transformers outside an
// orchestrator. A nil ids gets a fresh IDSpace.
func NewPipelineContext(host scenegraph.Host, resolver ContentResolver, ids *IDSpace) *PipelineContext {
	if ids == nil {
		ids = NewIDSpace()
	}
	return &PipelineContext{
		Host:     host,
		Resolver: resolver,
		Logger:   hclog.NewNullLogger(),
		ids:      ids,
		out:      newOutputs(),
	}
}

// NextPaintID allocates a paint ID for a record inserted with InsertPaint.
func (pc *PipelineContext) NextPaintID() ContinuousID {
	return pc.ids.Paints.NextID()
}

// NextAssetID allocates an asset ID for a record inserted with InsertAsset.
func (pc *PipelineContext) NextAssetID() ContinuousID {
	return pc.ids.Assets.NextID()
}

// InsertPaint adds a paint record straight to the output, bypassing the
// paint worklist. The record's ID is set from id.
func (pc *PipelineContext) InsertPaint(id ContinuousID, p *dtif.Paint) {
	p.ID = id.PaintID()
	pc.out.paints[id] = p
}

// InsertAsset adds an asset record straight to the output, bypassing the
// asset worklist. The record's ID is set from id.
func (pc *PipelineContext) InsertAsset(id ContinuousID, a *dtif.Asset) {
	a.ID = id.AssetID()
	pc.out.assets[id] = a
}

// Paint returns an emitted paint record, or nil.
func (pc *PipelineContext) Paint(id ContinuousID) *dtif.Paint {
	return pc.out.paints[id]
}

// Asset returns an emitted asset record, or nil.
func (pc *PipelineContext) Asset(id ContinuousID) *dtif.Asset {
	return pc.out.assets[id]
}

// outputs are the records emitted so far. They persist across runs of one
// orchestrator.
type outputs struct {
	nodes  map[ContinuousID]*dtif.Node
	paints map[ContinuousID]*dtif.Paint
	assets map[ContinuousID]*dtif.Asset
}

func newOutputs() *outputs {
	return &outputs{
		nodes:  make(map[ContinuousID]*dtif.Node),
		paints: make(map[ContinuousID]*dtif.Paint),
		assets: make(map[ContinuousID]*dtif.Asset),
	}
}
