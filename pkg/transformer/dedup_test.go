package transformer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph/snapshot"
)

func TestDeduplicatorIdempotence(t *testing.T) {
	d := NewPaintDeduplicator[scenegraph.Paint](newResourceAllocator())

	red := snapshot.SolidPaint(1, 0, 0)
	blue := snapshot.SolidPaint(0, 0, 1)

	first := d.GetOrGenerateID(red, 1)
	assert.Equal(t, first, d.GetOrGenerateID(snapshot.SolidPaint(1, 0, 0), 2))
	other := d.GetOrGenerateID(blue, 3)
	assert.NotEqual(t, first, other)
	assert.Equal(t, first, d.GetOrGenerateID(red, 4))

	require.Equal(t, 2, d.Len())
	entries := d.Entries()
	assert.Equal(t, first, entries[0].ID)
	assert.Equal(t, []ContinuousID{1, 2, 4}, entries[0].NodeIDs)
	assert.Equal(t, red, entries[0].Input)
	assert.Equal(t, other, entries[1].ID)
	assert.Equal(t, []ContinuousID{3}, entries[1].NodeIDs)
}

func TestDeduplicatorReferenceCount(t *testing.T) {
	d := NewAssetDeduplicator[AssetInput](newResourceAllocator())

	fonts := []scenegraph.Font{
		{Family: "Inter", Style: "Regular", Weight: 400},
		{Family: "Inter", Style: "Bold", Weight: 700},
		{Family: "Inter", Style: "Regular", Weight: 400},
		{Family: "Roboto", Style: "Regular", Weight: 400},
		{Family: "Inter", Style: "Bold", Weight: 700},
	}
	for i, f := range fonts {
		d.GetOrGenerateID(AssetInput{Kind: AssetFont, Font: f}, ContinuousID(i+1))
	}

	require.Equal(t, 3, d.Len())
	refs := 0
	seen := map[ContinuousID]bool{}
	for _, e := range d.Entries() {
		refs += len(e.NodeIDs)
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
	assert.Equal(t, len(fonts), refs)
}

func TestContentHashDomains(t *testing.T) {
	in := AssetInput{Kind: AssetImage, ImageHash: "abc"}
	assert.Equal(t, contentHash(assetDomain, in), contentHash(assetDomain, in))
	assert.NotEqual(t, contentHash(assetDomain, in), contentHash(paintDomain, in))

	// Paints that differ only in a nested field hash differently.
	a := snapshot.SolidPaint(1, 0, 0)
	b := snapshot.SolidPaint(1, 0, 0)
	b.Opacity = 0.5
	assert.NotEqual(t, contentHash(paintDomain, a), contentHash(paintDomain, b))

	// Nil and empty slices encode alike.
	c := snapshot.SolidPaint(1, 0, 0)
	c.GradientStops = []scenegraph.ColorStop{}
	assert.Equal(t, contentHash(paintDomain, a), contentHash(paintDomain, c))
}

func TestGetOrGenerateIDFor(t *testing.T) {
	d := NewPaintDeduplicator[scenegraph.Paint](newResourceAllocator())

	a := snapshot.SolidPaint(1, 0, 0)
	b := a
	b.ImageHash = "ignored"

	id := d.GetOrGenerateIDFor(identityOf(a), a, 1)
	assert.Equal(t, id, d.GetOrGenerateIDFor(identityOf(b), b, 2))
	require.Equal(t, 1, d.Len())
	assert.Equal(t, a, d.Entries()[0].Input, "the first input is kept")
	assert.Equal(t, []ContinuousID{1, 2}, d.Entries()[0].NodeIDs)
}
