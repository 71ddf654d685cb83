package scenegraph

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Host when an image, font or node it was
// asked for does not exist.
var ErrNotFound = errors.New("scenegraph: not found")

// ExportFormat is the binary format produced by Host.ExportAsync.
type ExportFormat uint8

const (
	FormatPNG ExportFormat = iota
	FormatJPG
	FormatSVG
)

func (f ExportFormat) String() string {
	switch f {
	case FormatPNG:
		return "PNG"
	case FormatJPG:
		return "JPG"
	case FormatSVG:
		return "SVG"
	default:
		return "UNKNOWN"
	}
}

// ExportSettings configures a binary export.
type ExportSettings struct {
	Format ExportFormat
	// Scale multiplies the node's size. Zero means 1.
	Scale float64
}

// Host is the part of the design tool the exporter calls into. Reads go
// through the Node interfaces; Host covers everything that does I/O or
// mutates the host document.
type Host interface {
	// ExportAsync renders node into the requested format.
	ExportAsync(ctx context.Context, node Node, settings ExportSettings) ([]byte, error)

	// CreateContainer creates a transient, detached container used to
	// stage exports. Callers must Remove it when done.
	CreateContainer(ctx context.Context) (Container, error)

	// ImageBytes returns the encoded image referenced by an image paint.
	ImageBytes(ctx context.Context, hash string) ([]byte, error)

	// FontBytes returns the font file for a font face.
	FontBytes(ctx context.Context, font Font) ([]byte, error)
}

// Container is a transient host node used to stage exports.
type Container interface {
	ParentNode

	Resize(width, height float64) error

	// AppendClone appends a copy of node positioned at the container's
	// origin. The original node is left untouched.
	AppendClone(node Node) error

	// Remove deletes the container from the host document.
	Remove() error
}
