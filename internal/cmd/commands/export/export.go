package export

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/dtif/internal/cmd/base"
	"github.com/hashicorp-forge/dtif/internal/config"
	"github.com/hashicorp-forge/dtif/pkg/dtif"
	"github.com/hashicorp-forge/dtif/pkg/ledger"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph/snapshot"
	"github.com/hashicorp-forge/dtif/pkg/status"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
	"github.com/hashicorp-forge/dtif/pkg/transformer/mapping"
	"github.com/hashicorp-forge/dtif/pkg/upload"
	"github.com/hashicorp-forge/dtif/pkg/upload/httpput"
	"github.com/hashicorp-forge/dtif/pkg/upload/s3"
)

// Exit codes.
const (
	exitOK      = 0
	exitError   = 1
	exitPartial = 2
)

type Command struct {
	*base.Command

	// Fs is the filesystem snapshots, config and output live on.
	Fs afero.Fs

	flagConfig           string
	flagOut              string
	flagFormat           string
	flagCompress         string
	flagAttempts         int
	flagLogLevel         string
	flagIncludeInvisible bool
}

func (c *Command) Synopsis() string {
	return "Export a scene snapshot to a DTIF document"
}

func (c *Command) Help() string {
	return `Usage: dtif export [options] <snapshot>

  This command transforms a scene snapshot into a DTIF document. Items that
  fail are retried by running the pipeline again, up to -attempts times.
  The document is written even when items are still failing; the exit code
  is then 2.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("export", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to the configuration file. Defaults are used when empty.",
	)
	f.StringVar(
		&c.flagOut, "out", "",
		"Output path. Overrides output.path; \"-\" writes to stdout.",
	)
	f.StringVar(
		&c.flagFormat, "format", "",
		"Document format (json, yaml). Overrides output.format.",
	)
	f.StringVar(
		&c.flagCompress, "compress", "",
		"Document compression (none, zstd). Overrides output.compress.",
	)
	f.IntVar(
		&c.flagAttempts, "attempts", 1,
		"Number of pipeline runs while items are still failing.",
	)
	f.StringVar(
		&c.flagLogLevel, "log-level", "",
		"Log level (trace, debug, info, warn, error). Overrides log_level.",
	)
	f.BoolVar(
		&c.flagIncludeInvisible, "include-invisible", false,
		"Emit records for hidden nodes.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return exitError
	}
	if flags.NArg() != 1 {
		ui.Error("exactly one snapshot path is required")
		return exitError
	}
	if c.flagAttempts < 1 {
		ui.Error("attempts must be at least 1")
		return exitError
	}
	if c.Fs == nil {
		c.Fs = afero.NewOsFs()
	}
	snapshotPath := flags.Arg(0)

	cfg, err := c.loadConfig()
	if err != nil {
		ui.Error(fmt.Sprintf("error loading configuration: %v", err))
		return exitError
	}
	if !c.SetLogLevel(cfg.LogLevel) {
		ui.Error(fmt.Sprintf("invalid log level: %q", cfg.LogLevel))
		return exitError
	}
	logger := c.Log

	format, err := dtif.ParseFormat(cfg.Output.Format)
	if err != nil {
		ui.Error(err.Error())
		return exitError
	}
	compression, err := dtif.ParseCompression(cfg.Output.Compress)
	if err != nil {
		ui.Error(err.Error())
		return exitError
	}

	scene, name, err := snapshot.Load(c.Fs, snapshotPath)
	if err != nil {
		ui.Error(fmt.Sprintf("error loading snapshot: %v", err))
		return exitError
	}
	if cfg.Name != "" {
		name = cfg.Name
	}
	if name == "" {
		name = scene.Root.Name()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, cancelling export", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	resolver, err := newResolver(cfg.Upload, logger)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing upload: %v", err))
		return exitError
	}

	logReporter := status.NewLogReporter(logger)
	reporters := status.Reporters{logReporter}
	recorders := status.Recorders{logReporter}

	if cfg.Ledger != nil {
		l, err := ledger.Open(cfg.Ledger.Database(), logger)
		if err != nil {
			ui.Error(fmt.Sprintf("error opening run ledger: %v", err))
			return exitError
		}
		defer l.Close()
		recorders = append(recorders, l)
	}

	if cfg.Kafka != nil {
		pub, err := status.NewPublisher(cfg.Kafka.Publisher(name), logger)
		if err != nil {
			ui.Error(fmt.Sprintf("error initializing status publisher: %v", err))
			return exitError
		}
		defer func() {
			if err := pub.Close(context.Background()); err != nil {
				logger.Warn("error closing status publisher", "error", err)
			}
		}()
		reporters = append(reporters, pub)
		recorders = append(recorders, pub)
	}

	o, err := transformer.New(scene.Root,
		transformer.WithLogger(logger),
		transformer.WithHost(scene),
		transformer.WithResolver(resolver),
		transformer.WithReporter(reporters),
		transformer.WithRunRecorder(recorders),
		transformer.WithStatusYield(cfg.Yield()),
		transformer.WithIncludeInvisible(cfg.IncludeInvisible),
		transformer.WithDocumentName(name),
		mapping.Default(
			mapping.WithLogger(logger),
			mapping.WithExportScale(cfg.ExportScale),
		),
	)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating pipeline: %v", err))
		return exitError
	}

	var (
		doc    *dtif.Document
		report *transformer.RunReport
	)
	for attempt := 1; attempt <= c.flagAttempts; attempt++ {
		doc, report, err = o.Run(ctx)
		if err != nil {
			ui.Error(fmt.Sprintf("export failed: %v", err))
			return exitError
		}
		if report.Complete() {
			break
		}
		if attempt < c.flagAttempts {
			ui.Warn(fmt.Sprintf("%d items failed, running again (%d/%d)",
				len(report.Failed), attempt+1, c.flagAttempts))
		}
	}

	out := outputPath(cfg.Output.Path, snapshotPath, format, compression)
	if err := writeDocument(c.Fs, doc, out, format, compression); err != nil {
		ui.Error(fmt.Sprintf("error writing document: %v", err))
		return exitError
	}

	summary := fmt.Sprintf("%s: %d nodes, %d paints, %d assets",
		name, report.Nodes, report.Paints, report.Assets)
	if out != "-" {
		summary += " written to " + out
	}

	if !report.Complete() {
		ui.Warn(summary)
		for _, f := range report.Failed {
			ui.Warn(fmt.Sprintf("  %s", f.Err))
		}
		return exitPartial
	}
	ui.Info(summary)
	return exitOK
}

func (c *Command) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if c.flagConfig != "" {
		var err error
		if cfg, err = config.LoadFile(c.Fs, c.flagConfig); err != nil {
			return nil, err
		}
	}

	if c.flagOut != "" {
		cfg.Output.Path = c.flagOut
	}
	if c.flagFormat != "" {
		cfg.Output.Format = c.flagFormat
	}
	if c.flagCompress != "" {
		cfg.Output.Compress = c.flagCompress
	}
	if c.flagLogLevel != "" {
		cfg.LogLevel = c.flagLogLevel
	}
	if c.flagIncludeInvisible {
		cfg.IncludeInvisible = true
	}
	return cfg, nil
}

// newResolver builds the content resolver for the upload block.
func newResolver(cfg *config.UploadConfig, logger hclog.Logger) (*upload.Adapter, error) {
	if cfg.UploadMode() == upload.ModeInline {
		return upload.Inline(), nil
	}

	var (
		uploader upload.Uploader
		err      error
	)
	switch cfg.Provider {
	case config.ProviderS3:
		uploader, err = s3.NewUploader(cfg.S3, logger)
	case config.ProviderHTTP:
		uploader, err = httpput.NewUploader(cfg.HTTP, logger)
	default:
		return nil, fmt.Errorf("unknown upload provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return upload.NewAdapter(upload.Config{
		Mode:      upload.ModeExternal,
		Uploader:  uploader,
		KeyPrefix: cfg.KeyPrefix,
	}, logger)
}

// outputPath returns path, or one derived from the snapshot path when empty.
func outputPath(path, snapshotPath string, format dtif.Format, c dtif.Compression) string {
	if path != "" {
		return path
	}
	base := strings.TrimSuffix(snapshotPath, filepath.Ext(snapshotPath))
	out := base + ".dtif." + string(format)
	if c == dtif.CompressionZstd {
		out += ".zst"
	}
	return out
}

func writeDocument(fs afero.Fs, doc *dtif.Document, path string, format dtif.Format, c dtif.Compression) error {
	if path != "-" {
		return doc.WriteFile(fs, path, format, c)
	}
	data, err := doc.Encode(format)
	if err != nil {
		return err
	}
	if data, err = dtif.Compress(data, c); err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
