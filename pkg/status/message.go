// Package status delivers orchestrator progress and run summaries to
// observers: the log, a Kafka topic, or several of them at once.
package status

import (
	"time"

	"github.com/google/uuid"

	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

// EventType tells status events from run summaries.
type EventType string

const (
	EventStatus EventType = "status"
	EventRun    EventType = "run"
)

// Event is the envelope for everything published.
type Event struct {
	// Message metadata
	ID        string    `json:"id"` // Unique message ID (UUID)
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	RunID    string `json:"run_id"`
	Document string `json:"document,omitempty"`

	// Status events
	Stage      string `json:"stage,omitempty"`
	NodeCount  int    `json:"node_count,omitempty"`
	PaintCount int    `json:"paint_count,omitempty"`
	AssetCount int    `json:"asset_count,omitempty"`

	// Run events
	Run *RunSummary `json:"run,omitempty"`
}

// RunSummary is the published part of a run report.
type RunSummary struct {
	Attempt    int    `json:"attempt"`
	Complete   bool   `json:"complete"`
	DurationMs int64  `json:"duration_ms"`
	Nodes      int    `json:"nodes"`
	Paints     int    `json:"paints"`
	Assets     int    `json:"assets"`
	Failed     int    `json:"failed"`
	Dropped    int    `json:"dropped"`
	Error      string `json:"error,omitempty"`
}

// StatusEvent builds the event for one status update.
func StatusEvent(document string, s transformer.Status) *Event {
	return &Event{
		ID:         uuid.New().String(),
		Type:       EventStatus,
		Timestamp:  time.Now(),
		RunID:      s.RunID,
		Document:   document,
		Stage:      s.Stage.String(),
		NodeCount:  s.NodeCount,
		PaintCount: s.PaintCount,
		AssetCount: s.AssetCount,
	}
}

// RunEvent builds the event summarizing a run.
func RunEvent(report *transformer.RunReport) *Event {
	sum := &RunSummary{
		Attempt:    report.Attempt,
		Complete:   report.Complete(),
		DurationMs: report.Duration().Milliseconds(),
		Nodes:      report.Nodes,
		Paints:     report.Paints,
		Assets:     report.Assets,
		Failed:     len(report.Failed),
		Dropped:    len(report.Dropped),
	}
	if err := report.Err(); err != nil {
		sum.Error = err.Error()
	}
	return &Event{
		ID:        uuid.New().String(),
		Type:      EventRun,
		Timestamp: report.Finished,
		RunID:     report.RunID,
		Document:  report.Document,
		Run:       sum,
	}
}

// partitionKey keeps all events of a run in order on one partition.
func partitionKey(e *Event) string {
	if e.RunID != "" {
		return "run:" + e.RunID
	}
	return e.ID
}
