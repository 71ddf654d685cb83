// Package upload turns binary content produced by an export into document
// content: bytes inlined in the document, or a URL after handing the bytes
// to an Uploader.
package upload

import (
	"context"
	"errors"
	"fmt"
	"path"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

// Mode selects how binary content ends up in the document.
type Mode string

const (
	// ModeInline embeds the bytes in the document.
	ModeInline Mode = "Inline"
	// ModeExternal uploads the bytes and stores the returned URL.
	ModeExternal Mode = "External"
)

// ErrEmptyURL is returned when an uploader reports success without a URL.
var ErrEmptyURL = errors.New("uploader returned an empty url")

// UploadOptions describe one upload.
type UploadOptions struct {
	Key         string
	ContentType string
}

// UploadResult is where uploaded content can be fetched from.
type UploadResult struct {
	URL string
}

// Uploader stores binary content somewhere the renderer can fetch it.
type Uploader interface {
	UploadData(ctx context.Context, data []byte, opts UploadOptions) (*UploadResult, error)
}

// UploaderFunc adapts a function to Uploader.
type UploaderFunc func(ctx context.Context, data []byte, opts UploadOptions) (*UploadResult, error)

func (f UploaderFunc) UploadData(ctx context.Context, data []byte, opts UploadOptions) (*UploadResult, error) {
	return f(ctx, data, opts)
}

// Config configures an Adapter.
type Config struct {
	Mode Mode
	// Uploader is required in External mode.
	Uploader Uploader
	// KeyPrefix is prepended to every upload key.
	KeyPrefix string
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Mode, validation.Required, validation.In(ModeInline, ModeExternal)),
		validation.Field(&c.Uploader, validation.When(c.Mode == ModeExternal, validation.Required)),
	)
}

// Adapter resolves binary content according to its mode. It implements
// transformer.ContentResolver.
type Adapter struct {
	cfg    Config
	logger hclog.Logger
}

// NewAdapter creates an adapter. A nil logger discards output.
func NewAdapter(cfg Config, logger hclog.Logger) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid upload configuration: %w", err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Adapter{cfg: cfg, logger: logger.Named("upload")}, nil
}

// Inline returns an adapter that embeds all content.
func Inline() *Adapter {
	return &Adapter{cfg: Config{Mode: ModeInline}, logger: hclog.NewNullLogger()}
}

func (a *Adapter) Mode() Mode { return a.cfg.Mode }

// Resolve returns data as inline content, or uploads it under
// opts.Key (plus the configured prefix) and returns its URL.
func (a *Adapter) Resolve(ctx context.Context, data []byte, opts transformer.ResolveOptions) (dtif.Content, error) {
	if a.cfg.Mode == ModeInline {
		return dtif.Content{Type: dtif.ContentBinary, Content: dtif.ByteArray(data)}, nil
	}

	key := opts.Key
	if a.cfg.KeyPrefix != "" {
		key = path.Join(a.cfg.KeyPrefix, key)
	}

	res, err := a.cfg.Uploader.UploadData(ctx, data, UploadOptions{
		Key:         key,
		ContentType: opts.ContentType.MIME(),
	})
	if err != nil {
		return dtif.Content{}, fmt.Errorf("upload %s: %w", key, err)
	}
	if res == nil || res.URL == "" {
		return dtif.Content{}, fmt.Errorf("upload %s: %w", key, ErrEmptyURL)
	}

	a.logger.Debug("uploaded content",
		"key", key,
		"content_type", opts.ContentType,
		"bytes", len(data),
		"url", res.URL,
	)
	return dtif.Content{Type: dtif.ContentURL, URL: res.URL}, nil
}

var _ transformer.ContentResolver = (*Adapter)(nil)
