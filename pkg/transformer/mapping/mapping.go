// Package mapping holds the default phase transformers: host nodes, paints
// and binaries mapped to DTIF records.
package mapping

import (
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/dtif/pkg/transformer"
	"github.com/hashicorp-forge/dtif/pkg/upload"
)

// Mapper implements the node, paint and asset transformers.
type Mapper struct {
	logger      hclog.Logger
	exportScale float64
}

// Option is a functional option for creating a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(m *Mapper) {
		m.logger = logger
	}
}

// WithExportScale sets the pixel density of rasterized nodes.
func WithExportScale(scale float64) Option {
	return func(m *Mapper) {
		if scale > 0 {
			m.exportScale = scale
		}
	}
}

// New creates a Mapper.
func New(opts ...Option) *Mapper {
	m := &Mapper{
		logger:      hclog.NewNullLogger(),
		exportScale: 2,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("mapping")
	return m
}

// Default returns an orchestrator option that installs a Mapper as all
// three phase transformers.
func Default(opts ...Option) transformer.Option {
	m := New(opts...)
	return transformer.WithTransformers(m, m, m)
}

func resolver(pc *transformer.PipelineContext) transformer.ContentResolver {
	if pc.Resolver != nil {
		return pc.Resolver
	}
	return upload.Inline()
}

func logger(pc *transformer.PipelineContext, m *Mapper) hclog.Logger {
	if pc.Logger != nil {
		return pc.Logger.Named("mapping")
	}
	return m.logger
}

var (
	_ transformer.NodeTransformer  = (*Mapper)(nil)
	_ transformer.PaintTransformer = (*Mapper)(nil)
	_ transformer.AssetTransformer = (*Mapper)(nil)
)
