// Package config loads the exporter's HCL configuration file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/dtif/pkg/database"
	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/status"
	"github.com/hashicorp-forge/dtif/pkg/upload"
	"github.com/hashicorp-forge/dtif/pkg/upload/httpput"
	"github.com/hashicorp-forge/dtif/pkg/upload/s3"
)

// Upload modes and providers as written in the configuration file.
const (
	ModeInline   = "inline"
	ModeExternal = "external"

	ProviderS3   = "s3"
	ProviderHTTP = "http"
)

// Config is the root of the configuration file.
type Config struct {
	// Name overrides the document name, which defaults to the snapshot's.
	Name             string  `hcl:"name,optional"`
	IncludeInvisible bool    `hcl:"include_invisible,optional"`
	StatusYield      string  `hcl:"status_yield,optional"` // default: 10ms
	ExportScale      float64 `hcl:"export_scale,optional"` // default: 2
	LogLevel         string  `hcl:"log_level,optional"`    // default: info

	Output *OutputConfig `hcl:"output,block"`
	Upload *UploadConfig `hcl:"upload,block"`
	Ledger *LedgerConfig `hcl:"ledger,block"`
	Kafka  *KafkaConfig  `hcl:"kafka,block"`
}

// OutputConfig selects where and how the document is written.
type OutputConfig struct {
	Path     string `hcl:"path,optional"`
	Format   string `hcl:"format,optional"`   // json or yaml, default: json
	Compress string `hcl:"compress,optional"` // none or zstd, default: none
}

// UploadConfig selects how binary content ends up in the document.
type UploadConfig struct {
	Mode      string `hcl:"mode,optional"`     // inline or external, default: inline
	Provider  string `hcl:"provider,optional"` // s3 or http, required in external mode
	KeyPrefix string `hcl:"key_prefix,optional"`

	S3   *s3.Config      `hcl:"s3,block"`
	HTTP *httpput.Config `hcl:"http,block"`
}

// LedgerConfig configures the run ledger.
type LedgerConfig struct {
	Driver       string `hcl:"driver,optional"` // sqlite or postgres, default: sqlite
	DSN          string `hcl:"dsn,optional"`    // default: dtif.db
	MaxOpenConns int    `hcl:"max_open_conns,optional"`
}

// KafkaConfig configures the status publisher.
type KafkaConfig struct {
	Brokers []string `hcl:"brokers"`
	Topic   string   `hcl:"topic,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// LoadFile reads, decodes and validates a configuration file. Secrets may
// be overridden from the environment.
func LoadFile(fs afero.Fs, path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}

	src, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var cfg Config
	// hclsimple picks the syntax from the file extension.
	if err := hclsimple.Decode(path, src, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	cfg.applyEnv()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if c.Upload != nil && c.Upload.S3 != nil {
		if v := os.Getenv("DTIF_S3_ACCESS_KEY"); v != "" {
			c.Upload.S3.AccessKey = v
		}
		if v := os.Getenv("DTIF_S3_SECRET_KEY"); v != "" {
			c.Upload.S3.SecretKey = v
		}
	}
	if c.Ledger != nil {
		if v := os.Getenv("DTIF_LEDGER_DSN"); v != "" {
			c.Ledger.DSN = v
		}
	}
	if v := os.Getenv("DTIF_KAFKA_BROKERS"); v != "" {
		if c.Kafka == nil {
			c.Kafka = &KafkaConfig{}
		}
		c.Kafka.Brokers = strings.Split(v, ",")
	}
}

// SetDefaults sets default values for optional configuration fields.
func (c *Config) SetDefaults() {
	if c.StatusYield == "" {
		c.StatusYield = "10ms"
	}
	if c.ExportScale == 0 {
		c.ExportScale = 2
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.Output == nil {
		c.Output = &OutputConfig{}
	}
	if c.Output.Format == "" {
		c.Output.Format = string(dtif.FormatJSON)
	}
	if c.Output.Compress == "" {
		c.Output.Compress = string(dtif.CompressionNone)
	}

	if c.Upload == nil {
		c.Upload = &UploadConfig{}
	}
	if c.Upload.Mode == "" {
		c.Upload.Mode = ModeInline
	}
	if c.Upload.S3 != nil {
		c.Upload.S3.SetDefaults()
	}
	if c.Upload.HTTP != nil {
		c.Upload.HTTP.SetDefaults()
	}

	if c.Ledger != nil {
		if c.Ledger.Driver == "" {
			c.Ledger.Driver = database.DriverSQLite
		}
		if c.Ledger.DSN == "" && c.Ledger.Driver == database.DriverSQLite {
			c.Ledger.DSN = "dtif.db"
		}
	}

	if c.Kafka != nil && c.Kafka.Topic == "" {
		c.Kafka.Topic = status.DefaultTopic
	}
}

// Validate checks every block and reports all problems at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validation.ValidateStruct(c,
		validation.Field(&c.ExportScale, validation.Min(0.01), validation.Max(8.0)),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&c.StatusYield, validation.By(isDuration)),
	); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Output != nil {
		if _, err := dtif.ParseFormat(c.Output.Format); err != nil {
			result = multierror.Append(result, fmt.Errorf("output: %w", err))
		}
		if _, err := dtif.ParseCompression(c.Output.Compress); err != nil {
			result = multierror.Append(result, fmt.Errorf("output: %w", err))
		}
	}

	if c.Upload != nil {
		if err := c.Upload.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("upload: %w", err))
		}
	}

	if c.Ledger != nil {
		if err := c.Ledger.Database().Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("ledger: %w", err))
		}
	}

	if c.Kafka != nil {
		if err := c.Kafka.Publisher("").Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("kafka: %w", err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Validate checks the upload block and the provider block it selects.
func (c *UploadConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(ModeInline, ModeExternal)),
		validation.Field(&c.Provider,
			validation.When(c.Mode == ModeExternal, validation.Required, validation.In(ProviderS3, ProviderHTTP))),
	); err != nil {
		return err
	}
	if c.Mode != ModeExternal {
		return nil
	}

	switch c.Provider {
	case ProviderS3:
		if c.S3 == nil {
			return fmt.Errorf("s3 configuration is missing")
		}
		return c.S3.Validate()
	case ProviderHTTP:
		if c.HTTP == nil {
			return fmt.Errorf("http configuration is missing")
		}
		return c.HTTP.Validate()
	}
	return nil
}

// UploadMode returns the adapter mode for the configured mode.
func (c *UploadConfig) UploadMode() upload.Mode {
	if c.Mode == ModeExternal {
		return upload.ModeExternal
	}
	return upload.ModeInline
}

// Database returns the connection settings of the ledger.
func (c *LedgerConfig) Database() database.Config {
	return database.Config{
		Driver:       c.Driver,
		DSN:          c.DSN,
		MaxOpenConns: c.MaxOpenConns,
	}
}

// Publisher returns the status publisher settings for a document.
func (c *KafkaConfig) Publisher(document string) status.PublisherConfig {
	return status.PublisherConfig{
		Brokers:  c.Brokers,
		Topic:    c.Topic,
		Document: document,
	}
}

// Yield returns the parsed status yield.
func (c *Config) Yield() time.Duration {
	d, err := time.ParseDuration(c.StatusYield)
	if err != nil {
		return 0
	}
	return d
}

func isDuration(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.ParseDuration(s); err != nil {
		return fmt.Errorf("must be a duration such as 10ms")
	}
	return nil
}
