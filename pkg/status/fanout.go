package status

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

// Reporters fans status events out to every reporter in order.
type Reporters []transformer.Reporter

func (rs Reporters) Report(ctx context.Context, s transformer.Status) {
	for _, r := range rs {
		r.Report(ctx, s)
	}
}

// Recorders fans run reports out to every recorder. All recorders are
// called; their errors are combined.
type Recorders []transformer.RunRecorder

func (rs Recorders) RecordRun(ctx context.Context, report *transformer.RunReport) error {
	var result *multierror.Error
	for _, r := range rs {
		if err := r.RecordRun(ctx, report); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

var (
	_ transformer.Reporter    = Reporters(nil)
	_ transformer.RunRecorder = Recorders(nil)
)
