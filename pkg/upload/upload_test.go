package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

// MockUploader records uploads.
type MockUploader struct {
	uploads []UploadOptions
	err     error
	url     string
}

func (m *MockUploader) UploadData(ctx context.Context, data []byte, opts UploadOptions) (*UploadResult, error) {
	m.uploads = append(m.uploads, opts)
	if m.err != nil {
		return nil, m.err
	}
	return &UploadResult{URL: m.url + opts.Key}, nil
}

func TestNewAdapter(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "inline", cfg: Config{Mode: ModeInline}},
		{name: "external", cfg: Config{Mode: ModeExternal, Uploader: &MockUploader{}}},
		{name: "external without uploader", cfg: Config{Mode: ModeExternal}, wantErr: true},
		{name: "missing mode", cfg: Config{}, wantErr: true},
		{name: "unknown mode", cfg: Config{Mode: "Ftp"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAdapter(tt.cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Mode, a.Mode())
		})
	}
}

func TestResolveInline(t *testing.T) {
	content, err := Inline().Resolve(context.Background(), []byte{1, 2, 3}, transformer.ResolveOptions{Key: "a0"})
	require.NoError(t, err)
	assert.Equal(t, dtif.Content{Type: dtif.ContentBinary, Content: dtif.ByteArray{1, 2, 3}}, content)
}

func TestResolveExternal(t *testing.T) {
	up := &MockUploader{url: "https://cdn.example.com/"}
	a, err := NewAdapter(Config{Mode: ModeExternal, Uploader: up, KeyPrefix: "exports/landing"}, nil)
	require.NoError(t, err)

	content, err := a.Resolve(context.Background(), []byte{1}, transformer.ResolveOptions{
		Key:         "a2-hero.png",
		ContentType: dtif.ContentPng,
	})
	require.NoError(t, err)
	assert.Equal(t, dtif.ContentURL, content.Type)
	assert.Equal(t, "https://cdn.example.com/exports/landing/a2-hero.png", content.URL)
	assert.Empty(t, content.Content)

	require.Len(t, up.uploads, 1)
	assert.Equal(t, UploadOptions{Key: "exports/landing/a2-hero.png", ContentType: "image/png"}, up.uploads[0])
}

func TestResolveExternalErrors(t *testing.T) {
	failing, err := NewAdapter(Config{Mode: ModeExternal, Uploader: &MockUploader{err: errors.New("403 forbidden")}}, nil)
	require.NoError(t, err)
	_, err = failing.Resolve(context.Background(), []byte{1}, transformer.ResolveOptions{Key: "a1"})
	assert.ErrorContains(t, err, "403 forbidden")

	noURL := UploaderFunc(func(context.Context, []byte, UploadOptions) (*UploadResult, error) {
		return &UploadResult{}, nil
	})
	empty, err := NewAdapter(Config{Mode: ModeExternal, Uploader: noURL}, nil)
	require.NoError(t, err)
	_, err = empty.Resolve(context.Background(), []byte{1}, transformer.ResolveOptions{Key: "a1"})
	assert.ErrorIs(t, err, ErrEmptyURL)
}

func TestSniff(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))

	tests := []struct {
		name string
		data []byte
		want dtif.ContentType
	}{
		{"png", buf.Bytes(), dtif.ContentPng},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F'}, dtif.ContentJpeg},
		{"gif", []byte("GIF89a\x01\x00\x01\x00"), dtif.ContentGif},
		{"svg", []byte(`  <svg xmlns="http://www.w3.org/2000/svg"></svg>`), dtif.ContentSvg},
		{"svg with prolog", []byte(`<?xml version="1.0"?><svg></svg>`), dtif.ContentSvg},
		{"ttf", []byte{0, 1, 0, 0, 0, 0x10}, dtif.ContentTtf},
		{"otf", []byte("OTTO\x00\x0a"), dtif.ContentOtf},
		{"woff", []byte("wOFF\x00\x01\x00\x00"), dtif.ContentWoff},
		{"woff2", []byte("wOF2\x00\x01\x00\x00"), dtif.ContentWoff2},
		{"unknown", []byte("hello"), dtif.ContentUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sniff(tt.data))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "a3-inter-bold.ttf", Key("a3", "Inter Bold", dtif.ContentTtf))
	assert.Equal(t, "a0-hero-image.png", Key("a0", "HeroImage", dtif.ContentPng))
	assert.Equal(t, "a1", Key("a1", "  ", dtif.ContentUnknown))
}
