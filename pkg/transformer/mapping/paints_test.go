package mapping

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph/snapshot"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
	"github.com/hashicorp-forge/dtif/pkg/upload"
)

var ttfHeader = []byte("\x00\x01\x00\x00\x00\x0c\x00\x80\x00\x03\x00\x40")

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// paintsOf walks a frame filled with the given paints.
func paintsOf(fills ...scenegraph.Paint) (*snapshot.Scene, []*transformer.ToTransformPaint) {
	root := snapshot.NewFrame("root", "", 100, 100).Append(
		snapshot.NewRectangle("r", "", 10, 10, fills...),
	)
	res := transformer.ProcessNodeTree(root, transformer.NewIDSpace())
	return snapshot.NewScene(root), res.Paints
}

func TestTransformPaintSolid(t *testing.T) {
	p := snapshot.SolidPaint(1, 0.5, 0)
	p.Opacity = 0.25
	p.Visible = false
	p.BlendMode = scenegraph.BlendScreen
	scene, paints := paintsOf(p)
	require.Len(t, paints, 1)

	res := New().TransformPaint(context.Background(), paints[0], newContext(scene))
	require.True(t, res.IsOk(), "%v", res.Err)
	assert.Equal(t, &dtif.Paint{
		Type:      dtif.PaintSolid,
		BlendMode: dtif.BlendScreen,
		Opacity:   0.25,
		IsVisible: false,
		Color:     &[3]uint8{255, 128, 0},
	}, res.Record)
}

func TestTransformPaintGradient(t *testing.T) {
	tests := []struct {
		typ     scenegraph.PaintType
		variant string
	}{
		{scenegraph.PaintGradientLinear, dtif.GradientLinear},
		{scenegraph.PaintGradientRadial, dtif.GradientRadial},
		{scenegraph.PaintGradientAngular, dtif.GradientConic},
		{scenegraph.PaintGradientDiamond, dtif.GradientDiamond},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			p := scenegraph.Paint{
				Type:              tt.typ,
				Visible:           true,
				Opacity:           1,
				GradientTransform: scenegraph.Affine{1, 0, 0, 1, 0.5, 0},
				GradientStops: []scenegraph.ColorStop{
					{Position: 0, Color: scenegraph.Color{R: 1, A: 1}},
					{Position: 1, Color: scenegraph.Color{B: 1, A: 0}},
				},
			}
			scene, paints := paintsOf(p)

			res := New().TransformPaint(context.Background(), paints[0], newContext(scene))
			require.True(t, res.IsOk(), "%v", res.Err)
			assert.Equal(t, dtif.PaintGradient, res.Record.Type)
			assert.Equal(t, &dtif.GradientVariant{Type: tt.variant, Transform: [6]float64{1, 0, 0, 1, 0.5, 0}}, res.Record.Variant)
			assert.Equal(t, []dtif.ColorStop{
				{Position: 0, Color: [4]uint8{255, 0, 0, 255}},
				{Position: 1, Color: [4]uint8{0, 0, 255, 0}},
			}, res.Record.Stops)
		})
	}
}

func TestTransformPaintImage(t *testing.T) {
	fill := snapshot.ImagePaint("hash-fill")

	fit := snapshot.ImagePaint("hash-fit")
	fit.ScaleMode = scenegraph.ScaleFit

	crop := snapshot.ImagePaint("hash-crop")
	crop.ScaleMode = scenegraph.ScaleCrop
	crop.ImageTransform = scenegraph.Affine{0.5, 0, 0, 0.5, 0.25, 0.25}

	tile := snapshot.ImagePaint("hash-tile")
	tile.ScaleMode = scenegraph.ScaleTile
	tile.Rotation = 90
	tile.ScalingFactor = 0

	scene, paints := paintsOf(fill, fit, crop, tile)
	require.Len(t, paints, 4)
	data := pngBytes(t)
	for _, hash := range []string{"hash-fill", "hash-fit", "hash-crop", "hash-tile"} {
		scene.AddImage(hash, data)
	}

	m := New()
	pc := newContext(scene)
	var got []*dtif.Paint
	for _, p := range paints {
		res := m.TransformPaint(context.Background(), p, pc)
		require.True(t, res.IsOk(), "%v", res.Err)
		assert.Equal(t, dtif.PaintImage, res.Record.Type)
		assert.Equal(t, p.ImageAssetID.AssetID(), res.Record.ImageID)
		got = append(got, res.Record)
	}

	assert.Equal(t, &dtif.ScaleMode{Type: dtif.ScaleModeFill}, got[0].ScaleMode)
	assert.Equal(t, &dtif.ScaleMode{Type: dtif.ScaleModeFit}, got[1].ScaleMode)
	assert.Equal(t, &dtif.ScaleMode{Type: dtif.ScaleModeCrop, Transform: &[6]float64{0.5, 0, 0, 0.5, 0.25, 0.25}}, got[2].ScaleMode)
	assert.Equal(t, &dtif.ScaleMode{Type: dtif.ScaleModeTile, Rotation: 90, ScalingFactor: 1}, got[3].ScaleMode)
}

func TestTransformPaintImageFailures(t *testing.T) {
	scene, paints := paintsOf(snapshot.ImagePaint("hash"))
	m := New()
	pc := newContext(scene)

	res := m.TransformPaint(context.Background(), paints[0], pc)
	require.False(t, res.IsOk())
	assert.Equal(t, transformer.KindExportFailure, res.Err.Kind, "missing bytes are retried")

	scene.AddImage("hash", []byte("not an image"))
	res = m.TransformPaint(context.Background(), paints[0], pc)
	require.False(t, res.IsOk())
	assert.Equal(t, transformer.KindUnsupportedPaint, res.Err.Kind)
	assert.False(t, res.Err.Retryable())
}

func TestTransformPaintUnsupported(t *testing.T) {
	video := snapshot.ImagePaint("")
	video.Type = scenegraph.PaintVideo
	scene, paints := paintsOf(video)

	res := New().TransformPaint(context.Background(), paints[0], newContext(scene))
	require.False(t, res.IsOk())
	assert.Equal(t, transformer.KindUnsupportedPaint, res.Err.Kind)
	assert.Equal(t, "p0", res.Err.Item)
}

func TestTransformAsset(t *testing.T) {
	inter := scenegraph.Font{Family: "Inter", Style: "Regular", Weight: 400}
	root := snapshot.NewFrame("root", "", 100, 100).Append(
		snapshot.NewText("t", "", "Hi", inter, 12),
		snapshot.NewRectangle("r", "", 10, 10, snapshot.ImagePaint("photo")),
	)
	scene := snapshot.NewScene(root)
	res := transformer.ProcessNodeTree(root, transformer.NewIDSpace())
	require.Len(t, res.Assets, 2)
	font, img := res.Assets[0], res.Assets[1]
	require.Equal(t, transformer.AssetFont, font.Kind)
	require.Equal(t, transformer.AssetImage, img.Kind)

	m := New()
	pc := newContext(scene)

	out := m.TransformAsset(context.Background(), font, pc)
	require.False(t, out.IsOk())
	assert.Equal(t, transformer.KindExportFailure, out.Err.Kind)

	scene.AddFont(inter, ttfHeader)
	scene.AddImage("photo", pngBytes(t))

	out = m.TransformAsset(context.Background(), font, pc)
	require.True(t, out.IsOk(), "%v", out.Err)
	assert.Equal(t, "Inter Regular", out.Record.Name)
	assert.Equal(t, dtif.ContentTtf, out.Record.ContentType.Type)
	assert.Equal(t, dtif.ContentBinary, out.Record.Content.Type)
	assert.Equal(t, ttfHeader, []byte(out.Record.Content.Content))

	var keys []string
	external, err := upload.NewAdapter(upload.Config{
		Mode: upload.ModeExternal,
		Uploader: upload.UploaderFunc(func(_ context.Context, _ []byte, opts upload.UploadOptions) (*upload.UploadResult, error) {
			keys = append(keys, opts.Key)
			return &upload.UploadResult{URL: "https://cdn.example.com/" + opts.Key}, nil
		}),
		KeyPrefix: "exports",
	}, nil)
	require.NoError(t, err)
	pc.Resolver = external

	out = m.TransformAsset(context.Background(), img, pc)
	require.True(t, out.IsOk(), "%v", out.Err)
	assert.Equal(t, dtif.ContentPng, out.Record.ContentType.Type)
	assert.Equal(t, dtif.Content{Type: dtif.ContentURL, URL: "https://cdn.example.com/exports/a1-photo.png"}, out.Record.Content)
	assert.Equal(t, []string{"exports/a1-photo.png"}, keys)
}
