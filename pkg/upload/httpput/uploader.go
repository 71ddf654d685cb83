// Package httpput uploads exported content with HTTP PUT requests, as
// accepted by most object stores behind a presigning proxy and by simple
// asset servers.
package httpput

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/dtif/pkg/upload"
)

// Config configures the HTTP uploader.
type Config struct {
	// BaseURL is the URL keys are appended to.
	BaseURL string `hcl:"base_url"`
	// PublicURL is the base URL uploaded content is served from. Defaults
	// to BaseURL.
	PublicURL string            `hcl:"public_url,optional"`
	Headers   map[string]string `hcl:"headers,optional"`

	MaxRetries            int    `hcl:"max_retries,optional"`             // default: 3
	InitialBackoff        string `hcl:"initial_backoff,optional"`         // default: 200ms
	MaxBackoff            string `hcl:"max_backoff,optional"`             // default: 5s
	RequestTimeoutSeconds int    `hcl:"request_timeout_seconds,optional"` // default: 30
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be an http or https url")
	}
	for _, d := range []string{c.InitialBackoff, c.MaxBackoff} {
		if d == "" {
			continue
		}
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("invalid backoff duration %q: %w", d, err)
		}
	}
	return nil
}

// SetDefaults sets default values for optional configuration fields.
func (c *Config) SetDefaults() {
	if c.PublicURL == "" {
		c.PublicURL = c.BaseURL
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.InitialBackoff == "" {
		c.InitialBackoff = "200ms"
	}
	if c.MaxBackoff == "" {
		c.MaxBackoff = "5s"
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = 30
	}
}

// StatusError is returned for a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the request may succeed if sent again.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode == http.StatusRequestTimeout ||
		e.StatusCode >= 500
}

// Uploader PUTs content to BaseURL/key. Transient failures (network
// errors, 408, 429 and 5xx) are retried with exponential backoff within
// one call.
type Uploader struct {
	cfg            *Config
	client         *http.Client
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         hclog.Logger
}

// NewUploader creates an HTTP uploader.
func NewUploader(cfg *Config, logger hclog.Logger) (*Uploader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid http upload configuration: %w", err)
	}
	cfg.SetDefaults()

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	initial, _ := time.ParseDuration(cfg.InitialBackoff)
	maxBackoff, _ := time.ParseDuration(cfg.MaxBackoff)

	return &Uploader{
		cfg:            cfg,
		client:         &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second},
		initialBackoff: initial,
		maxBackoff:     maxBackoff,
		logger:         logger.Named("http-uploader"),
	}, nil
}

// UploadData PUTs data and returns its public URL.
func (u *Uploader) UploadData(ctx context.Context, data []byte, opts upload.UploadOptions) (*upload.UploadResult, error) {
	target := join(u.cfg.BaseURL, opts.Key)

	attempt := 0
	operation := func() error {
		attempt++
		err := u.put(ctx, target, data, opts.ContentType)
		if err == nil {
			return nil
		}

		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Retryable() {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}

		u.logger.Warn("upload attempt failed",
			"url", target,
			"attempt", attempt,
			"error", err)
		return err
	}

	if err := backoff.Retry(operation, u.backoff(ctx)); err != nil {
		return nil, fmt.Errorf("failed to upload %s after %d attempts: %w", opts.Key, attempt, err)
	}

	u.logger.Debug("uploaded", "url", target, "bytes", len(data), "attempts", attempt)
	return &upload.UploadResult{URL: join(u.cfg.PublicURL, opts.Key)}, nil
}

func (u *Uploader) backoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = u.initialBackoff
	b.MaxInterval = u.maxBackoff
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(u.cfg.MaxRetries)), ctx)
}

func (u *Uploader) put(ctx context.Context, target string, data []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(data))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range u.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 == 2 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

func join(base, key string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(key, "/")
}

var _ upload.Uploader = (*Uploader)(nil)
