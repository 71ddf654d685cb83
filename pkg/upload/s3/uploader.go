package s3

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/dtif/pkg/upload"
)

// client is the part of *s3.Client the uploader uses.
type client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Uploader puts content into a bucket and returns its public URL.
type Uploader struct {
	client client
	cfg    *Config
	logger hclog.Logger
}

// NewUploader creates an S3 uploader.
func NewUploader(cfg *Config, logger hclog.Logger) (*Uploader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid S3 configuration: %w", err)
	}
	cfg.SetDefaults()

	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	awsCfg, err := createAWSConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	c := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// Custom endpoint for MinIO or other S3-compatible services
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newUploader(c, cfg, logger), nil
}

func newUploader(c client, cfg *Config, logger hclog.Logger) *Uploader {
	u := &Uploader{
		client: c,
		cfg:    cfg,
		logger: logger.Named("s3-uploader"),
	}
	u.logger.Info("S3 uploader initialized",
		"bucket", cfg.Bucket,
		"prefix", cfg.Prefix,
		"endpoint", cfg.Endpoint)
	return u
}

// createAWSConfig creates AWS SDK configuration from S3 config
func createAWSConfig(cfg *Config) (aws.Config, error) {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.InsecureSkipVerify,
			},
		},
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
		config.WithHTTPClient(httpClient),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	return config.LoadDefaultConfig(context.Background(), opts...)
}

// VerifyBucket checks that the bucket exists and is accessible.
func (u *Uploader) VerifyBucket(ctx context.Context) error {
	_, err := u.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(u.cfg.Bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %s is not accessible: %w", u.cfg.Bucket, err)
	}
	return nil
}

// UploadData stores data under the prefixed key.
func (u *Uploader) UploadData(ctx context.Context, data []byte, opts upload.UploadOptions) (*upload.UploadResult, error) {
	key := u.objectKey(opts.Key)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String(u.cfg.CacheControl),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to put object to S3: %w", err)
	}

	u.logger.Debug("put object", "bucket", u.cfg.Bucket, "key", key, "bytes", len(data))
	return &upload.UploadResult{URL: u.objectURL(key)}, nil
}

func (u *Uploader) objectKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	if u.cfg.Prefix != "" {
		key = path.Join(u.cfg.Prefix, key)
	}
	return key
}

func (u *Uploader) objectURL(key string) string {
	if u.cfg.PublicURL != "" {
		return strings.TrimSuffix(u.cfg.PublicURL, "/") + "/" + key
	}
	return strings.TrimSuffix(u.cfg.Endpoint, "/") + "/" + u.cfg.Bucket + "/" + key
}

var _ upload.Uploader = (*Uploader)(nil)
