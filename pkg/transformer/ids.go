package transformer

import (
	"strconv"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
)

// ContinuousID identifies a node, paint or asset within one orchestrator.
// Each record kind has its own ID space; ZeroID in the node space is
// reserved for the root.
type ContinuousID uint32

// ZeroID is the root node's ID.
const ZeroID ContinuousID = 0

func (id ContinuousID) String() string { return strconv.FormatUint(uint64(id), 10) }

// NodeID returns the node record ID ("n<id>").
func (id ContinuousID) NodeID() string { return dtif.FormatNodeID(uint32(id)) }

// PaintID returns the paint record ID ("p<id>").
func (id ContinuousID) PaintID() string { return dtif.FormatPaintID(uint32(id)) }

// AssetID returns the asset record ID ("a<id>").
func (id ContinuousID) AssetID() string { return dtif.FormatAssetID(uint32(id)) }

// Allocator hands out strictly increasing IDs. It is not safe for
// concurrent use.
type Allocator struct {
	next      ContinuousID
	exhausted bool
}

// NewAllocator returns an allocator that never returns ZeroID.
func NewAllocator() *Allocator {
	return &Allocator{next: ZeroID + 1}
}

// newResourceAllocator starts at ZeroID; only the node space reserves it.
func newResourceAllocator() *Allocator {
	return &Allocator{}
}

// NextID returns an ID greater than every ID returned before.
func (a *Allocator) NextID() ContinuousID {
	if a.exhausted {
		panic("transformer: continuous id space exhausted")
	}
	id := a.next
	if id == ^ContinuousID(0) {
		a.exhausted = true
	} else {
		a.next++
	}
	return id
}

// IDSpace holds one allocator per record kind. One IDSpace is shared by
// the walk and every run of an orchestrator, so IDs minted while
// rasterizing never collide with walked ones.
type IDSpace struct {
	Nodes  *Allocator
	Paints *Allocator
	Assets *Allocator
}

// NewIDSpace returns fresh allocators: nodes start at 1 (0 is the root),
// paints and assets at 0.
func NewIDSpace() *IDSpace {
	return &IDSpace{
		Nodes:  NewAllocator(),
		Paints: newResourceAllocator(),
		Assets: newResourceAllocator(),
	}
}
