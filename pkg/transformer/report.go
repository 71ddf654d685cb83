package transformer

import (
	"time"

	"github.com/hashicorp/go-multierror"
)

// Phase is one of the three transform phases.
type Phase uint8

const (
	PhaseNodes Phase = iota
	PhasePaints
	PhaseAssets

	numPhases = int(PhaseAssets) + 1
)

func (p Phase) String() string {
	switch p {
	case PhaseNodes:
		return "nodes"
	case PhasePaints:
		return "paints"
	case PhaseAssets:
		return "assets"
	default:
		return "unknown"
	}
}

// PhaseReport counts what one phase did during a run.
type PhaseReport struct {
	Phase Phase
	// Queued is the number of items drained: retried failures plus new
	// items.
	Queued  int
	Retried int
	Emitted int
	Failed  int
	Dropped int
}

// ItemOutcome is a failed or dropped item.
type ItemOutcome struct {
	Phase Phase
	Err   *TransformError
}

// RunReport describes one Run. Dropped items are final; failed items are
// queued for the next run.
type RunReport struct {
	RunID    string
	Attempt  int
	Document string
	Started  time.Time
	Finished time.Time

	Phases  [numPhases]PhaseReport
	Dropped []ItemOutcome
	Failed  []ItemOutcome

	// Pruned counts references removed from the assembled document
	// because their target record was missing.
	Pruned int

	// Emitted record counts of the assembled document.
	Nodes  int
	Paints int
	Assets int

	// Fatal is the error that aborted the run, if any.
	Fatal error
}

// Err aggregates the run's per-item failures and fatal error. It returns
// nil when nothing failed; dropped items are not errors.
func (r *RunReport) Err() error {
	var result *multierror.Error
	if r.Fatal != nil {
		result = multierror.Append(result, r.Fatal)
	}
	for _, f := range r.Failed {
		result = multierror.Append(result, f.Err)
	}
	return result.ErrorOrNil()
}

// Complete reports whether the run produced a document with nothing left
// to retry.
func (r *RunReport) Complete() bool {
	return r.Fatal == nil && len(r.Failed) == 0
}

// Duration is the wall time of the run.
func (r *RunReport) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

func (r *RunReport) record(phase Phase, err *TransformError) {
	out := ItemOutcome{Phase: phase, Err: err}
	if err.Retryable() {
		r.Failed = append(r.Failed, out)
		r.Phases[phase].Failed++
		return
	}
	r.Dropped = append(r.Dropped, out)
	r.Phases[phase].Dropped++
}
