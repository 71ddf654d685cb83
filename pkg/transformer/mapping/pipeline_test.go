package mapping_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph/snapshot"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
	"github.com/hashicorp-forge/dtif/pkg/transformer/mapping"
)

func TestPipelineRedRectangles(t *testing.T) {
	root := snapshot.NewFrame("1:1", "Root", 200, 100).Append(
		snapshot.NewRectangle("1:2", "A", 50, 50, snapshot.SolidPaint(1, 0, 0)),
		snapshot.NewRectangle("1:3", "B", 50, 50, snapshot.SolidPaint(1, 0, 0)),
	)
	root.SetPosition(300, 400)
	scene := snapshot.NewScene(root)

	o, err := transformer.New(root,
		transformer.WithHost(scene),
		transformer.WithStatusYield(0),
		transformer.WithDocumentName("Root"),
		mapping.Default(),
	)
	require.NoError(t, err)

	doc, report, err := o.Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Complete())

	assert.Equal(t, "n0", doc.RootNodeID)
	assert.Equal(t, dtif.Vec2{200, 100}, doc.Size)
	require.Len(t, doc.Nodes, 3)
	require.Len(t, doc.Paints, 1)
	assert.Empty(t, doc.Assets)

	rootRec := doc.Root()
	require.NotNil(t, rootRec)
	assert.Equal(t, dtif.NodeFrame, rootRec.Type)
	assert.Equal(t, []string{"n1", "n2"}, rootRec.Children)
	assert.Equal(t, dtif.Transform{}, rootRec.Transform, "the root sits at the origin")
	assert.Equal(t, dtif.BlendNormal, rootRec.BlendMode)

	for _, id := range []string{"n1", "n2"} {
		n := doc.Node(id)
		require.NotNil(t, n, id)
		require.Len(t, n.Styles, 1)
		assert.Equal(t, "p0", n.Styles[0].PaintID)
	}

	p := doc.Paint("p0")
	require.NotNil(t, p)
	assert.Equal(t, dtif.PaintSolid, p.Type)
	assert.Equal(t, &[3]uint8{255, 0, 0}, p.Color)

	data, err := doc.Encode(dtif.FormatJSON)
	require.NoError(t, err)
	decoded, err := dtif.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Nodes, decoded.Nodes)
}

func TestPipelineRetriesExportFailures(t *testing.T) {
	inter := scenegraph.Font{Family: "Inter", Style: "Regular", Weight: 400}
	hidden := snapshot.NewRectangle("hidden", "Hidden", 10, 10)
	hidden.Hidden = true
	line := snapshot.NewShape("line", "Divider", scenegraph.KindLine, 100, 0)
	line.FillPaints = []scenegraph.Paint{snapshot.SolidPaint(0, 0, 0)}

	root := snapshot.NewFrame("root", "Card", 200, 100).Append(
		snapshot.NewText("title", "Title", "Hello", inter, 24),
		line,
		hidden,
		snapshot.NewSlice("slice", "Export", 10, 10),
	)
	scene := snapshot.NewScene(root)
	scene.AddFont(inter, []byte("\x00\x01\x00\x00\x00\x0c\x00\x80"))
	scene.FailExports("line", 1)

	o, err := transformer.New(root,
		transformer.WithHost(scene),
		transformer.WithStatusYield(0),
		mapping.Default(mapping.WithExportScale(1)),
	)
	require.NoError(t, err)

	doc, report, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Complete())
	require.Len(t, report.Failed, 1)
	assert.Equal(t, transformer.KindExportFailure, report.Failed[0].Err.Kind)
	assert.Len(t, report.Dropped, 2)
	assert.Equal(t, []string{"n1"}, doc.Root().Children, "failed and dropped children are pruned")
	assert.NotNil(t, doc.Asset("a0"), "font asset")

	doc, report, err = o.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Complete())
	assert.Equal(t, 1, report.Phases[transformer.PhaseNodes].Retried)
	assert.Equal(t, []string{"n1", "n2"}, doc.Root().Children)

	divider := doc.Node("n2")
	require.NotNil(t, divider)
	assert.Equal(t, dtif.NodeRectangle, divider.Type)
	require.Len(t, divider.Styles, 1)

	paint := doc.Paint(divider.Styles[0].PaintID)
	require.NotNil(t, paint)
	assert.Equal(t, dtif.PaintImage, paint.Type)
	asset := doc.Asset(paint.ImageID)
	require.NotNil(t, asset)
	assert.Equal(t, dtif.ContentPng, asset.ContentType.Type)

	assert.Zero(t, scene.LiveContainers())
	require.NoError(t, doc.Validate())
}

func TestPipelineDropsInvalidRecords(t *testing.T) {
	inter := scenegraph.Font{Family: "Inter", Style: "Regular", Weight: 400}

	bad := snapshot.NewRectangle("1:3", "B", 50, 50, snapshot.SolidPaint(1, 0, 0))
	bad.StrokePaints = []scenegraph.Paint{snapshot.SolidPaint(0, 0, 0)}
	bad.Weight = -1

	reversed := snapshot.NewText("1:5", "Reversed", "Hello", inter, 12)
	reversed.Runs[0].Start, reversed.Runs[0].End = 3, 1

	root := snapshot.NewFrame("1:1", "Root", 200, 100).Append(
		snapshot.NewRectangle("1:2", "A", 50, 50, snapshot.SolidPaint(1, 0, 0)),
		bad,
		snapshot.NewText("1:4", "Label", "Hi", inter, 12),
		reversed,
	)
	scene := snapshot.NewScene(root)
	scene.AddFont(inter, []byte{})

	o, err := transformer.New(root,
		transformer.WithHost(scene),
		transformer.WithStatusYield(0),
		mapping.Default(),
	)
	require.NoError(t, err)

	doc, report, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Complete(), "invalid records are dropped, not retried")

	dropped := map[string]transformer.ErrorKind{}
	for _, d := range report.Dropped {
		dropped[d.Err.Item] = d.Err.Kind
	}
	assert.Equal(t, map[string]transformer.ErrorKind{
		"n2": transformer.KindInvalidRecord,
		"n4": transformer.KindInvalidRecord,
		"a0": transformer.KindInvalidRecord,
	}, dropped)

	assert.Equal(t, []string{"n1", "n3"}, doc.Root().Children)
	assert.Empty(t, doc.Assets)

	label := doc.Node("n3")
	require.NotNil(t, label)
	require.Len(t, label.Attributes, 1)
	assert.Empty(t, label.Attributes[0].Attributes.FontID, "the empty font is pruned from the text")
	require.NoError(t, doc.Validate())

	_, report, err = o.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Phases[transformer.PhaseNodes].Retried)
	assert.Zero(t, report.Phases[transformer.PhaseAssets].Retried)
}

func TestPipelineIgnoresHostMutationAfterWalk(t *testing.T) {
	inter := scenegraph.Font{Family: "Inter", Style: "Regular", Weight: 400}
	rect := snapshot.NewRectangle("1:2", "A", 50, 50, snapshot.SolidPaint(1, 0, 0))
	text := snapshot.NewText("1:3", "Label", "Hi", inter, 12)

	root := snapshot.NewFrame("1:1", "Root", 200, 100).Append(rect, text)
	scene := snapshot.NewScene(root)
	scene.AddFont(inter, []byte("\x00\x01\x00\x00\x00\x0c\x00\x80"))

	o, err := transformer.New(root,
		transformer.WithHost(scene),
		transformer.WithStatusYield(0),
		transformer.WithReporter(transformer.ReporterFunc(func(_ context.Context, s transformer.Status) {
			if s.Stage != transformer.StageTraversedTree {
				return
			}
			rect.FillPaints = append(rect.FillPaints, snapshot.SolidPaint(0, 0, 1))
			rect.StrokePaints = []scenegraph.Paint{snapshot.SolidPaint(0, 1, 0)}
			text.Runs = nil
		})),
		mapping.Default(),
	)
	require.NoError(t, err)

	doc, report, err := o.Run(context.Background())
	require.NoError(t, err)
	require.True(t, report.Complete())
	assert.Empty(t, report.Dropped)

	n1 := doc.Node("n1")
	require.NotNil(t, n1)
	require.Len(t, n1.Styles, 1)
	assert.Equal(t, "p0", n1.Styles[0].PaintID)

	n2 := doc.Node("n2")
	require.NotNil(t, n2)
	require.Len(t, n2.Attributes, 1)
	assert.Equal(t, "a0", n2.Attributes[0].Attributes.FontID)
	require.NoError(t, doc.Validate())
}
