// Package ledger records orchestrator runs in a SQL database so exports can
// be audited and retried from the command line.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/hashicorp-forge/dtif/pkg/database"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

// Ledger stores one Run per orchestrator run. It implements
// transformer.RunRecorder.
type Ledger struct {
	db     *gorm.DB
	logger hclog.Logger
}

// Open connects to the database and migrates the ledger's tables.
func Open(cfg database.Config, logger hclog.Logger) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ledger configuration: %w", err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("ledger")

	db, err := database.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}
	l, err := New(db, logger)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return l, nil
}

// New creates a ledger on an open database and migrates its tables.
func New(db *gorm.DB, logger hclog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if err := db.AutoMigrate(ModelsToAutoMigrate()...); err != nil {
		return nil, fmt.Errorf("failed to migrate ledger tables: %w", err)
	}
	return &Ledger{db: db, logger: logger}, nil
}

// Close closes the database.
func (l *Ledger) Close() error {
	return database.Close(l.db)
}

// RecordRun stores the report of one run.
func (l *Ledger) RecordRun(ctx context.Context, report *transformer.RunReport) error {
	run := FromReport(report)
	if err := l.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", report.RunID, err)
	}
	l.logger.Debug("recorded run",
		"run_id", run.RunID,
		"document", run.Document,
		"status", run.Status,
	)
	return nil
}

// FromReport converts a run report to its ledger row.
func FromReport(report *transformer.RunReport) *Run {
	run := &Run{
		RunID:      report.RunID,
		Document:   report.Document,
		Attempt:    report.Attempt,
		StartedAt:  report.Started,
		FinishedAt: report.Finished,
		DurationMs: report.Duration().Milliseconds(),
		Nodes:      report.Nodes,
		Paints:     report.Paints,
		Assets:     report.Assets,
		Pruned:     report.Pruned,
		Phases:     make(map[string]PhaseCounts, len(report.Phases)),
	}

	switch {
	case report.Fatal != nil:
		run.Status = StatusFailed
	case len(report.Failed) > 0:
		run.Status = StatusPartial
	default:
		run.Status = StatusCompleted
	}
	if err := report.Err(); err != nil {
		run.Error = err.Error()
	}

	// Phases a failed run never reached are recorded with zero counts.
	for i, p := range report.Phases {
		run.Phases[transformer.Phase(i).String()] = PhaseCounts{
			Queued:  p.Queued,
			Retried: p.Retried,
			Emitted: p.Emitted,
			Failed:  p.Failed,
			Dropped: p.Dropped,
		}
	}
	run.Failed = itemFailures(report.Failed)
	run.Dropped = itemFailures(report.Dropped)
	return run
}

func itemFailures(outcomes []transformer.ItemOutcome) []ItemFailure {
	if len(outcomes) == 0 {
		return nil
	}
	out := make([]ItemFailure, len(outcomes))
	for i, o := range outcomes {
		out[i] = ItemFailure{
			Phase: o.Phase.String(),
			Item:  o.Err.Item,
			Kind:  o.Err.Kind.String(),
		}
		if o.Err.Err != nil {
			out[i].Error = o.Err.Err.Error()
		}
	}
	return out
}

// ErrRunNotFound is returned by Get for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Get returns the run with the given run ID.
func (l *Ledger) Get(ctx context.Context, runID string) (*Run, error) {
	var run Run
	err := l.db.WithContext(ctx).Where("run_id = ?", runID).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Recent returns up to limit runs, newest first. An empty document matches
// every document.
func (l *Ledger) Recent(ctx context.Context, document string, limit int) ([]Run, error) {
	var runs []Run
	query := l.db.WithContext(ctx).Order("started_at DESC").Order("id DESC")
	if document != "" {
		query = query.Where("document = ?", document)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&runs).Error
	return runs, err
}

// Stats returns the number of runs per status.
func (l *Ledger) Stats(ctx context.Context) (map[string]int64, error) {
	stats := make(map[string]int64)

	for _, status := range []string{StatusCompleted, StatusPartial, StatusFailed} {
		var count int64
		err := l.db.WithContext(ctx).Model(&Run{}).
			Where("status = ?", status).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		stats[status] = count
	}

	return stats, nil
}

// Prune removes runs that finished before the cutoff and returns how many
// were removed.
func (l *Ledger) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result := l.db.WithContext(ctx).
		Where("finished_at < ?", cutoff).
		Delete(&Run{})
	return result.RowsAffected, result.Error
}

var _ transformer.RunRecorder = (*Ledger)(nil)
