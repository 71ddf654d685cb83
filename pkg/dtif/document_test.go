package dtif

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *Document {
	red := [3]uint8{255, 0, 0}
	return &Document{
		Version:    Version,
		Name:       "Landing",
		Size:       Vec2{200, 100},
		Viewport:   Viewport{PhysicalSize: Vec2{200, 100}},
		RootNodeID: "n0",
		Nodes: []*Node{
			{
				Type:      NodeFrame,
				ID:        "n0",
				Visible:   true,
				Size:      Vec2{200, 100},
				Opacity:   1,
				BlendMode: BlendNormal,
				Children:  []string{"n1", "n2"},
			},
			{
				Type:      NodeRectangle,
				ID:        "n1",
				Visible:   true,
				Opacity:   1,
				BlendMode: BlendNormal,
				Styles:    []Style{{Type: StyleFill, PaintID: "p0", BlendMode: BlendNormal, Opacity: 1, Visible: true}},
			},
			{
				Type:      NodeText,
				ID:        "n2",
				Visible:   true,
				Opacity:   1,
				BlendMode: BlendNormal,
				Text:      "Hi",
				Attributes: []TextAttributes{{
					Start: 0, End: 2,
					Attributes: TextStyle{FontID: "a3", FontFamily: "Inter", FontStyle: "Regular", FontWeight: 400, FontSize: 12},
				}},
			},
		},
		Paints: []*Paint{
			{Type: PaintSolid, ID: "p0", BlendMode: BlendNormal, Opacity: 1, IsVisible: true, Color: &red},
		},
		Assets: []*Asset{
			{
				ID:          "a3",
				Content:     Content{Type: ContentBinary, Content: ByteArray{0, 1, 0, 0}},
				ContentType: AssetMimeType{Type: ContentTtf},
			},
		},
	}
}

func TestRecordIDs(t *testing.T) {
	assert.Equal(t, "n0", FormatNodeID(0))
	assert.Equal(t, "p12", FormatPaintID(12))
	assert.Equal(t, "a7", FormatAssetID(7))

	prefix, n, err := ParseID("p42")
	require.NoError(t, err)
	assert.Equal(t, byte(PaintPrefix), prefix)
	assert.Equal(t, uint32(42), n)

	for _, bad := range []string{"", "n", "x1", "n-1", "nabc"} {
		_, _, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestByteArrayJSON(t *testing.T) {
	data, err := ByteArray{1, 2, 255}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[1,2,255]", string(data))

	var b ByteArray
	require.NoError(t, b.UnmarshalJSON([]byte("[4, 5]")))
	assert.Equal(t, ByteArray{4, 5}, b)

	assert.Error(t, b.UnmarshalJSON([]byte("[256]")))
}

func TestValidate(t *testing.T) {
	require.NoError(t, testDocument().Validate())

	tests := []struct {
		name   string
		mutate func(d *Document)
	}{
		{"missing root", func(d *Document) { d.RootNodeID = "n9" }},
		{"dangling child", func(d *Document) { d.Nodes[0].Children = append(d.Nodes[0].Children, "n5") }},
		{"dangling paint", func(d *Document) { d.Nodes[1].Styles[0].PaintID = "p8" }},
		{"dangling font", func(d *Document) { d.Nodes[2].Attributes[0].Attributes.FontID = "a1" }},
		{"duplicate node", func(d *Document) { d.Nodes[2].ID = "n1" }},
		{"bad node id", func(d *Document) { d.Nodes[1].ID = "p1" }},
		{"leaf with children", func(d *Document) { d.Nodes[1].Children = []string{"n2"} }},
		{"opacity out of range", func(d *Document) { d.Paints[0].Opacity = 1.5 }},
		{"solid without color", func(d *Document) { d.Paints[0].Color = nil }},
		{"binary asset without content", func(d *Document) { d.Assets[0].Content.Content = nil }},
		{"url asset without url", func(d *Document) { d.Assets[0].Content = Content{Type: ContentURL} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := testDocument()
			tt.mutate(d)
			assert.Error(t, d.Validate())
		})
	}
}

func TestRecordValidate(t *testing.T) {
	d := testDocument()
	for _, n := range d.Nodes {
		assert.NoError(t, n.Validate(), n.ID)
	}
	assert.NoError(t, d.Paints[0].Validate())
	assert.NoError(t, d.Assets[0].Validate())

	// Records are checked on their own: a node referencing a missing
	// child is still a valid record.
	d.Nodes[0].Children = []string{"n9"}
	assert.NoError(t, d.Nodes[0].Validate())

	d = testDocument()
	d.Nodes[1].Styles[0].Width = -1
	assert.Error(t, d.Nodes[1].Validate(), "negative stroke width")

	d = testDocument()
	d.Nodes[2].Attributes[0].Start, d.Nodes[2].Attributes[0].End = 3, 1
	assert.Error(t, d.Nodes[2].Validate(), "inverted text range")

	d = testDocument()
	d.Assets[0].Content.Content = ByteArray{}
	assert.Error(t, d.Assets[0].Validate(), "empty content")
}

func TestValidateReportsDanglingReference(t *testing.T) {
	d := testDocument()
	d.Nodes[0].Children = []string{"n1", "n2", "n5"}
	err := d.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDanglingReference)
}

func TestPruneDangling(t *testing.T) {
	d := testDocument()
	d.Nodes[0].Children = []string{"n1", "n9", "n2"}
	d.Nodes[1].Styles = append(d.Nodes[1].Styles, Style{Type: StyleStroke, PaintID: "p4", Width: 1})
	d.Nodes[2].Attributes[0].Attributes.FontID = "a8"
	d.Paints = append(d.Paints, &Paint{Type: PaintImage, ID: "p5", ImageID: "a6", ScaleMode: &ScaleMode{Type: "Fill"}})

	assert.Equal(t, 4, d.PruneDangling())
	assert.Equal(t, []string{"n1", "n2"}, d.Nodes[0].Children)
	assert.Len(t, d.Nodes[1].Styles, 1)
	assert.Empty(t, d.Nodes[2].Attributes[0].Attributes.FontID)
	assert.Len(t, d.Paints, 1)
	require.NoError(t, d.Validate())

	assert.Zero(t, d.PruneDangling())
}

func TestWriteFileRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	want := testDocument()

	require.NoError(t, want.WriteFile(fs, "out/doc.json.zst", FormatJSON, CompressionZstd))

	data, err := afero.ReadFile(fs, "out/doc.json.zst")
	require.NoError(t, err)
	raw, err := Decompress(data, CompressionZstd)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"content": [`)

	got, err := Decode(raw)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeYAML(t *testing.T) {
	data, err := testDocument().Encode(FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rootNodeId: n0")

	_, err = testDocument().Encode(Format("xml"))
	assert.Error(t, err)
}

func TestParseFormatAndCompression(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("toml")
	assert.Error(t, err)

	c, err := ParseCompression("")
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, c)
}
