package transformer

import (
	"errors"
	"fmt"
)

// ErrRootResolution is returned by Run when the root node has no record
// after all phases. It is the only per-item failure that aborts a run.
var ErrRootResolution = errors.New("root node could not be transformed")

// ErrorKind classifies a per-item transform failure.
type ErrorKind uint8

const (
	// KindInvisibleNode: the node is hidden and invisible nodes are not
	// included. Dropped.
	KindInvisibleNode ErrorKind = iota
	// KindUnsupportedNode: no mapping exists for the node kind. Dropped.
	KindUnsupportedNode
	// KindUnsupportedPaint: no mapping exists for the paint type. Dropped.
	KindUnsupportedPaint
	// KindExportFailure: the host failed to export or read a binary.
	// Requeued.
	KindExportFailure
	// KindUploadFailure: the content resolver rejected an upload.
	// Requeued.
	KindUploadFailure
	// KindInternal: the transformer failed unexpectedly. Requeued.
	KindInternal
	// KindFlattened: the node is inside a container exported as a single
	// image. Dropped.
	KindFlattened
	// KindInvalidRecord: the transformer emitted a record that does not
	// validate. Dropped.
	KindInvalidRecord
)

var errorKindNames = [...]string{
	KindInvisibleNode:    "invisible node",
	KindUnsupportedNode:  "unsupported node",
	KindUnsupportedPaint: "unsupported paint",
	KindExportFailure:    "export failure",
	KindUploadFailure:    "upload failure",
	KindInternal:         "internal error",
	KindFlattened:        "flattened into ancestor",
	KindInvalidRecord:    "invalid record",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("error kind %d", k)
}

// Retryable reports whether items failing with this kind are requeued for
// the next run rather than dropped.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindExportFailure, KindUploadFailure, KindInternal:
		return true
	default:
		return false
	}
}

// TransformError is the failure outcome of transforming one worklist item.
type TransformError struct {
	Kind ErrorKind
	// Item is the record ID of the failed item ("n3", "p7", "a2").
	Item string
	Err  error
}

// NewError creates a TransformError. err may be nil.
func NewError(kind ErrorKind, item string, err error) *TransformError {
	return &TransformError{Kind: kind, Item: item, Err: err}
}

func (e *TransformError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Item, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Item, e.Kind, e.Err)
}

func (e *TransformError) Unwrap() error { return e.Err }

// Is matches another *TransformError of the same kind, so callers can test
// errors.Is(err, &TransformError{Kind: KindExportFailure}).
func (e *TransformError) Is(target error) bool {
	t, ok := target.(*TransformError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Item == "" || t.Item == e.Item)
}

// Retryable reports whether the item is requeued.
func (e *TransformError) Retryable() bool { return e.Kind.Retryable() }
