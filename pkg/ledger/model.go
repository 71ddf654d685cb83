package ledger

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Run statuses.
const (
	StatusCompleted = "completed" // every item emitted or dropped
	StatusPartial   = "partial"   // document produced, some items queued for retry
	StatusFailed    = "failed"    // no document
)

// Run is one orchestrator run.
type Run struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RunID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_export_runs_run_id" json:"runId"`
	Document string `gorm:"type:varchar(255);not null;index:idx_export_runs_document" json:"document"`
	Attempt  int    `gorm:"not null;default:1" json:"attempt"`
	Status   string `gorm:"type:varchar(20);not null;index:idx_export_runs_status" json:"status"`

	StartedAt  time.Time `gorm:"not null" json:"startedAt"`
	FinishedAt time.Time `gorm:"not null" json:"finishedAt"`
	DurationMs int64     `json:"durationMs"`

	// Record counts of the assembled document.
	Nodes  int `json:"nodes"`
	Paints int `json:"paints"`
	Assets int `json:"assets"`
	Pruned int `json:"pruned"`

	// Phases holds per-phase counts keyed by phase name.
	// Example: {"nodes": {"queued": 14, "emitted": 12, "failed": 1, "dropped": 1}}
	Phases map[string]PhaseCounts `gorm:"serializer:json" json:"phases"`

	// Failed and Dropped list item record IDs with their failure reason.
	Failed  []ItemFailure `gorm:"serializer:json" json:"failed,omitempty"`
	Dropped []ItemFailure `gorm:"serializer:json" json:"dropped,omitempty"`

	Error string `gorm:"type:text" json:"error,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name.
func (Run) TableName() string {
	return "export_runs"
}

// PhaseCounts is the per-phase part of a Run.
type PhaseCounts struct {
	Queued  int `json:"queued"`
	Retried int `json:"retried"`
	Emitted int `json:"emitted"`
	Failed  int `json:"failed"`
	Dropped int `json:"dropped"`
}

// ItemFailure is one failed or dropped item.
type ItemFailure struct {
	Phase string `json:"phase"`
	Item  string `json:"item"`
	Kind  string `json:"kind"`
	Error string `json:"error,omitempty"`
}

// BeforeCreate hook to ensure required fields.
func (r *Run) BeforeCreate(tx *gorm.DB) error {
	if r.RunID == "" {
		return fmt.Errorf("run_id is required")
	}
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	if r.Phases == nil {
		r.Phases = make(map[string]PhaseCounts)
	}
	return nil
}

// Succeeded reports whether the run produced a document.
func (r *Run) Succeeded() bool {
	return r.Status != StatusFailed
}

// Duration is the wall time of the run.
func (r *Run) Duration() time.Duration {
	return time.Duration(r.DurationMs) * time.Millisecond
}

// ModelsToAutoMigrate lists the ledger's tables.
func ModelsToAutoMigrate() []interface{} {
	return []interface{}{
		&Run{},
	}
}
