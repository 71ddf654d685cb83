package transformer

import (
	"context"
)

// Stage is an orchestrator state. A run passes through every stage in
// order unless it fails.
type Stage uint8

const (
	StageStart Stage = iota
	StageTraversedTree
	StageTransformingNodes
	StageTransformingPaints
	StageTransformingAssets
	StageConstructingDocument
	StageEnd
)

var stageNames = [...]string{
	StageStart:                "START",
	StageTraversedTree:        "TRAVERSED_TREE",
	StageTransformingNodes:    "TRANSFORMING_NODES",
	StageTransformingPaints:   "TRANSFORMING_PAINTS",
	StageTransformingAssets:   "TRANSFORMING_ASSETS",
	StageConstructingDocument: "CONSTRUCTING_DOCUMENT",
	StageEnd:                  "END",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "UNKNOWN"
}

// Status is one progress event. Counts are set on StageTraversedTree and
// hold the number of items queued for each phase.
type Status struct {
	RunID      string
	Stage      Stage
	NodeCount  int
	PaintCount int
	AssetCount int
}

// Reporter receives status events. Report is called synchronously from
// the run; implementations should return quickly.
type Reporter interface {
	Report(ctx context.Context, status Status)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, status Status)

func (f ReporterFunc) Report(ctx context.Context, status Status) { f(ctx, status) }

// RunRecorder persists run reports. Recording errors are logged and never
// fail the run.
type RunRecorder interface {
	RecordRun(ctx context.Context, report *RunReport) error
}
