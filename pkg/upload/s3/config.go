// Package s3 uploads exported content to an S3-compatible bucket.
package s3

import (
	"fmt"
)

// Config contains configuration for the S3 uploader.
type Config struct {
	// S3 connection settings
	Endpoint  string `hcl:"endpoint,optional"`   // S3 endpoint URL, e.g. a MinIO endpoint; empty for AWS
	Region    string `hcl:"region"`              // AWS region (e.g., "us-west-2")
	Bucket    string `hcl:"bucket"`              // S3 bucket name
	Prefix    string `hcl:"prefix,optional"`     // Optional key prefix (e.g., "dtif/")
	AccessKey string `hcl:"access_key,optional"` // Access key ID
	SecretKey string `hcl:"secret_key,optional"` // Secret access key

	// PublicURL is the base URL objects are served from. Defaults to the
	// path-style object URL on Endpoint.
	PublicURL string `hcl:"public_url,optional"`

	CacheControl          string `hcl:"cache_control,optional"`
	RequestTimeoutSeconds int    `hcl:"request_timeout_seconds,optional"` // default: 30
	InsecureSkipVerify    bool   `hcl:"insecure_skip_verify,optional"`    // for testing only
}

// Validate validates the S3 configuration.
func (c *Config) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.Bucket == "" {
		return fmt.Errorf("bucket is required")
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return fmt.Errorf("access_key and secret_key must be set together")
	}
	if c.Endpoint == "" && c.PublicURL == "" {
		return fmt.Errorf("public_url is required when endpoint is not set")
	}
	return nil
}

// SetDefaults sets default values for optional configuration fields.
func (c *Config) SetDefaults() {
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = 30
	}
	if c.CacheControl == "" {
		c.CacheControl = "public, max-age=31536000, immutable"
	}
}
