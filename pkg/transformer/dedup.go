package transformer

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// Hash is a content hash of a resource's identity-relevant fields.
type Hash [32]byte

func (h Hash) String() string { return hex.EncodeToString(h[:8]) }

// Domain keys separate the hash spaces of the resource kinds, so a paint
// and an asset whose encodings happen to match never share an entry.
// ASCII, zero padded to 32 bytes.
var (
	paintDomain = domainKey{'d', 't', 'i', 'f', '.', 'p', 'a', 'i', 'n', 't'}
	assetDomain = domainKey{'d', 't', 'i', 'f', '.', 'a', 's', 's', 'e', 't'}
)

type domainKey [32]byte

// hashEncMode is CBOR Core Deterministic Encoding: the same value always
// encodes to the same bytes. Nil and empty slices and maps encode alike.
var hashEncMode cbor.EncMode

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.NilContainers = cbor.NilContainerAsEmpty

	var err error
	hashEncMode, err = opts.EncMode()
	if err != nil {
		panic("transformer: CBOR encoder initialization failed: " + err.Error())
	}
}

func contentHash(key domainKey, v any) Hash {
	data, err := hashEncMode.Marshal(v)
	if err != nil {
		// Inputs are plain data structs; encoding cannot fail for them.
		panic("transformer: cannot encode hash input: " + err.Error())
	}
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("transformer: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write(data)
	var h Hash
	copy(h[:], hasher.Sum(nil))
	return h
}

// Entry is one distinct resource and every node that references it, in
// order of sighting.
type Entry[T any] struct {
	ID      ContinuousID
	Hash    Hash
	Input   T
	NodeIDs []ContinuousID
}

// Deduplicator maps resources to IDs by content. Equal inputs share one
// ID and one entry; the referencing node is never part of the hash.
type Deduplicator[T any] struct {
	alloc   *Allocator
	key     domainKey
	byHash  map[Hash]*Entry[T]
	entries []*Entry[T]
}

func newDeduplicator[T any](alloc *Allocator, key domainKey) *Deduplicator[T] {
	return &Deduplicator[T]{
		alloc:  alloc,
		key:    key,
		byHash: make(map[Hash]*Entry[T]),
	}
}

// NewPaintDeduplicator returns a deduplicator in the paint hash domain.
func NewPaintDeduplicator[T any](alloc *Allocator) *Deduplicator[T] {
	return newDeduplicator[T](alloc, paintDomain)
}

// NewAssetDeduplicator returns a deduplicator in the asset hash domain.
func NewAssetDeduplicator[T any](alloc *Allocator) *Deduplicator[T] {
	return newDeduplicator[T](alloc, assetDomain)
}

// GetOrGenerateID returns the ID of the entry equal to input, recording
// source as a referencing node. An unseen input gets a fresh ID and a new
// entry.
func (d *Deduplicator[T]) GetOrGenerateID(input T, source ContinuousID) ContinuousID {
	return d.GetOrGenerateIDFor(input, input, source)
}

// GetOrGenerateIDFor is GetOrGenerateID with the hash taken over identity
// instead of input. The first input seen for an identity is kept.
func (d *Deduplicator[T]) GetOrGenerateIDFor(identity any, input T, source ContinuousID) ContinuousID {
	h := contentHash(d.key, identity)
	if e, ok := d.byHash[h]; ok {
		e.NodeIDs = append(e.NodeIDs, source)
		return e.ID
	}
	e := &Entry[T]{
		ID:      d.alloc.NextID(),
		Hash:    h,
		Input:   input,
		NodeIDs: []ContinuousID{source},
	}
	d.byHash[h] = e
	d.entries = append(d.entries, e)
	return e.ID
}

// Entries returns the entries in order of first sighting.
func (d *Deduplicator[T]) Entries() []*Entry[T] {
	return d.entries
}

func (d *Deduplicator[T]) Len() int {
	return len(d.entries)
}
