package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/dtif/pkg/database"
	"github.com/hashicorp-forge/dtif/pkg/scenegraph/snapshot"
	"github.com/hashicorp-forge/dtif/pkg/transformer"
	"github.com/hashicorp-forge/dtif/pkg/transformer/mapping"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(database.Config{Driver: database.DriverSQLite, DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func testReport(runID, document string, started time.Time) *transformer.RunReport {
	r := &transformer.RunReport{
		RunID:    runID,
		Attempt:  1,
		Document: document,
		Started:  started,
		Finished: started.Add(1500 * time.Millisecond),
		Nodes:    3,
		Paints:   1,
	}
	r.Phases[transformer.PhaseNodes] = transformer.PhaseReport{Phase: transformer.PhaseNodes, Queued: 4, Emitted: 3, Dropped: 1}
	r.Phases[transformer.PhasePaints] = transformer.PhaseReport{Phase: transformer.PhasePaints, Queued: 1, Emitted: 1}
	r.Phases[transformer.PhaseAssets] = transformer.PhaseReport{Phase: transformer.PhaseAssets}
	r.Dropped = []transformer.ItemOutcome{{
		Phase: transformer.PhaseNodes,
		Err:   transformer.NewError(transformer.KindUnsupportedNode, "n3", nil),
	}}
	return r
}

func TestFromReport(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("completed", func(t *testing.T) {
		run := FromReport(testReport("r1", "Card", started))
		assert.Equal(t, StatusCompleted, run.Status)
		assert.Equal(t, int64(1500), run.DurationMs)
		assert.Equal(t, 1500*time.Millisecond, run.Duration())
		assert.Equal(t, PhaseCounts{Queued: 4, Emitted: 3, Dropped: 1}, run.Phases["nodes"])
		assert.Equal(t, []ItemFailure{{Phase: "nodes", Item: "n3", Kind: "unsupported node"}}, run.Dropped)
		assert.Nil(t, run.Failed)
		assert.Empty(t, run.Error)
	})

	t.Run("partial", func(t *testing.T) {
		r := testReport("r2", "Card", started)
		r.Failed = []transformer.ItemOutcome{{
			Phase: transformer.PhaseAssets,
			Err:   transformer.NewError(transformer.KindUploadFailure, "a0", errors.New("503")),
		}}
		run := FromReport(r)
		assert.Equal(t, StatusPartial, run.Status)
		assert.Equal(t, []ItemFailure{{Phase: "assets", Item: "a0", Kind: "upload failure", Error: "503"}}, run.Failed)
		assert.Contains(t, run.Error, "a0: upload failure: 503")
	})

	t.Run("failed", func(t *testing.T) {
		r := &transformer.RunReport{RunID: "r3", Started: started, Finished: started, Fatal: transformer.ErrRootResolution}
		r.Phases[transformer.PhaseNodes] = transformer.PhaseReport{Phase: transformer.PhaseNodes, Queued: 2, Failed: 1}
		run := FromReport(r)
		assert.Equal(t, StatusFailed, run.Status)
		assert.False(t, run.Succeeded())
		assert.Equal(t, PhaseCounts{Queued: 2, Failed: 1}, run.Phases["nodes"])
		assert.Equal(t, PhaseCounts{}, run.Phases["paints"])
		assert.Contains(t, run.Error, transformer.ErrRootResolution.Error())
	})
}

func TestRecordAndGet(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	started := time.Now().Add(-time.Minute).UTC().Truncate(time.Millisecond)

	require.NoError(t, l.RecordRun(ctx, testReport("run-1", "Card", started)))

	run, err := l.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "Card", run.Document)
	assert.Equal(t, StatusCompleted, run.Status)
	assert.Equal(t, 3, run.Nodes)
	assert.Equal(t, PhaseCounts{Queued: 1, Emitted: 1}, run.Phases["paints"])
	require.Len(t, run.Dropped, 1)
	assert.Equal(t, "n3", run.Dropped[0].Item)
	assert.True(t, started.Equal(run.StartedAt))

	_, err = l.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrRunNotFound))

	err = l.RecordRun(ctx, testReport("run-1", "Card", started))
	assert.Error(t, err, "run IDs are unique")

	err = l.RecordRun(ctx, &transformer.RunReport{})
	assert.Error(t, err, "run ID is required")
}

func TestRecentAndStats(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		doc := "Card"
		if i%2 == 1 {
			doc = "Header"
		}
		r := testReport(fmt.Sprintf("run-%d", i), doc, base.Add(time.Duration(i)*time.Minute))
		if i == 4 {
			r.Fatal = transformer.ErrRootResolution
		}
		require.NoError(t, l.RecordRun(ctx, r))
	}

	runs, err := l.Recent(ctx, "", 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"run-4", "run-3", "run-2"}, []string{runs[0].RunID, runs[1].RunID, runs[2].RunID})

	runs, err = l.Recent(ctx, "Header", 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].RunID)

	stats, err := l.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{StatusCompleted: 4, StatusPartial: 0, StatusFailed: 1}, stats)
}

func TestPrune(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, l.RecordRun(ctx, testReport("old", "Card", time.Now().Add(-48*time.Hour))))
	require.NoError(t, l.RecordRun(ctx, testReport("new", "Card", time.Now())))

	n, err := l.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	runs, err := l.Recent(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "new", runs[0].RunID)
}

func TestLedgerRecordsOrchestratorRuns(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	root := snapshot.NewFrame("1:1", "Card", 100, 100).Append(
		snapshot.NewRectangle("1:2", "Fill", 10, 10, snapshot.SolidPaint(1, 0, 0)),
		snapshot.NewSlice("1:3", "Slice", 10, 10),
	)
	o, err := transformer.New(root,
		transformer.WithHost(snapshot.NewScene(root)),
		transformer.WithStatusYield(0),
		transformer.WithRunRecorder(l),
		mapping.Default(),
	)
	require.NoError(t, err)

	_, report, err := o.Run(ctx)
	require.NoError(t, err)

	run, err := l.Get(ctx, report.RunID)
	require.NoError(t, err)
	assert.Equal(t, "Card", run.Document)
	assert.Equal(t, StatusCompleted, run.Status)
	assert.Equal(t, 2, run.Nodes)
	assert.Equal(t, []ItemFailure{{Phase: "nodes", Item: "n2", Kind: "unsupported node", Error: "no mapping for node kind"}}, run.Dropped)
}
