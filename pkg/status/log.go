package status

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

// LogReporter writes status events and run summaries to a logger.
type LogReporter struct {
	logger hclog.Logger
}

// NewLogReporter creates a LogReporter. Status events are logged at debug
// level, run summaries at info level, or warn when items failed.
func NewLogReporter(logger hclog.Logger) *LogReporter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &LogReporter{logger: logger.Named("status")}
}

func (r *LogReporter) Report(_ context.Context, s transformer.Status) {
	if s.Stage == transformer.StageTraversedTree {
		r.logger.Debug(s.Stage.String(),
			"run_id", s.RunID,
			"nodes", s.NodeCount,
			"paints", s.PaintCount,
			"assets", s.AssetCount,
		)
		return
	}
	r.logger.Debug(s.Stage.String(), "run_id", s.RunID)
}

func (r *LogReporter) RecordRun(_ context.Context, report *transformer.RunReport) error {
	args := []interface{}{
		"run_id", report.RunID,
		"document", report.Document,
		"attempt", report.Attempt,
		"nodes", report.Nodes,
		"paints", report.Paints,
		"assets", report.Assets,
		"dropped", len(report.Dropped),
		"duration", report.Duration(),
	}
	if report.Complete() {
		r.logger.Info("run complete", args...)
		return nil
	}
	args = append(args, "failed", len(report.Failed))
	if report.Fatal != nil {
		args = append(args, "error", report.Fatal)
	}
	r.logger.Warn("run incomplete", args...)
	for _, f := range report.Failed {
		r.logger.Warn("item queued for retry",
			"run_id", report.RunID,
			"phase", f.Phase,
			"item", f.Err.Item,
			"kind", f.Err.Kind,
			"error", f.Err.Err,
		)
	}
	return nil
}

var (
	_ transformer.Reporter    = (*LogReporter)(nil)
	_ transformer.RunRecorder = (*LogReporter)(nil)
)
