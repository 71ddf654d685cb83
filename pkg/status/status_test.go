package status

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

// MockProducer records produced records instead of talking to a broker.
type MockProducer struct {
	mu      sync.Mutex
	records []*kgo.Record
	err     error
	flushed bool
	closed  bool
}

func (m *MockProducer) Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error)) {
	m.mu.Lock()
	m.records = append(m.records, r)
	err := m.err
	m.mu.Unlock()
	if promise != nil {
		promise(r, err)
	}
}

func (m *MockProducer) ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	m.mu.Lock()
	defer m.mu.Unlock()
	var results kgo.ProduceResults
	for _, r := range rs {
		m.records = append(m.records, r)
		results = append(results, kgo.ProduceResult{Record: r, Err: m.err})
	}
	return results
}

func (m *MockProducer) Flush(ctx context.Context) error {
	m.flushed = true
	return nil
}

func (m *MockProducer) Close() { m.closed = true }

func testReport(failed bool) *transformer.RunReport {
	started := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	r := &transformer.RunReport{
		RunID:    "run-1",
		Attempt:  2,
		Document: "Card",
		Started:  started,
		Finished: started.Add(250 * time.Millisecond),
		Nodes:    4,
		Paints:   2,
	}
	if failed {
		r.Failed = []transformer.ItemOutcome{{
			Phase: transformer.PhaseNodes,
			Err:   transformer.NewError(transformer.KindExportFailure, "n2", errors.New("export timed out")),
		}}
	}
	return r
}

func TestRunEvent(t *testing.T) {
	e := RunEvent(testReport(true))
	assert.Equal(t, EventRun, e.Type)
	assert.Equal(t, "run-1", e.RunID)
	assert.Equal(t, "Card", e.Document)
	require.NotNil(t, e.Run)
	assert.Equal(t, RunSummary{
		Attempt:    2,
		Complete:   false,
		DurationMs: 250,
		Nodes:      4,
		Paints:     2,
		Failed:     1,
		Error:      e.Run.Error,
	}, *e.Run)
	assert.Contains(t, e.Run.Error, "n2: export failure: export timed out")
	assert.Equal(t, "run:run-1", partitionKey(e))
}

func TestPublisherReport(t *testing.T) {
	mock := &MockProducer{}
	p := newPublisher(mock, PublisherConfig{Brokers: []string{"localhost:9092"}, Document: "Card"}, nil)

	p.Report(context.Background(), transformer.Status{RunID: "run-1", Stage: transformer.StageTraversedTree, NodeCount: 3, PaintCount: 1})

	require.Len(t, mock.records, 1)
	rec := mock.records[0]
	assert.Equal(t, DefaultTopic, rec.Topic)
	assert.Equal(t, []byte("run:run-1"), rec.Key)
	assert.Equal(t, []kgo.RecordHeader{{Key: "type", Value: []byte("status")}}, rec.Headers)

	var e Event
	require.NoError(t, json.Unmarshal(rec.Value, &e))
	assert.Equal(t, EventStatus, e.Type)
	assert.Equal(t, "Card", e.Document)
	assert.Equal(t, "TRAVERSED_TREE", e.Stage)
	assert.Equal(t, 3, e.NodeCount)
	assert.Equal(t, 1, e.PaintCount)
	assert.NotEmpty(t, e.ID)
}

func TestPublisherReportErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	mock := &MockProducer{err: errors.New("broker unavailable")}
	p := newPublisher(mock, PublisherConfig{Brokers: []string{"b"}, Topic: "t"}, hclog.New(&hclog.LoggerOptions{Output: &buf}))

	p.Report(context.Background(), transformer.Status{RunID: "run-1", Stage: transformer.StageStart})
	assert.Contains(t, buf.String(), "failed to publish status event")
	assert.Contains(t, buf.String(), "broker unavailable")
}

func TestPublisherRecordRun(t *testing.T) {
	mock := &MockProducer{}
	p := newPublisher(mock, PublisherConfig{Brokers: []string{"b"}, Topic: "exports"}, nil)

	require.NoError(t, p.RecordRun(context.Background(), testReport(false)))
	require.Len(t, mock.records, 1)
	assert.Equal(t, "exports", mock.records[0].Topic)

	var e Event
	require.NoError(t, json.Unmarshal(mock.records[0].Value, &e))
	assert.Equal(t, EventRun, e.Type)
	require.NotNil(t, e.Run)
	assert.True(t, e.Run.Complete)

	mock.err = errors.New("not leader for partition")
	err := p.RecordRun(context.Background(), testReport(false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not leader for partition")

	require.NoError(t, p.Close(context.Background()))
	assert.True(t, mock.flushed)
	assert.True(t, mock.closed)
}

func TestPublisherConfigValidate(t *testing.T) {
	assert.Error(t, PublisherConfig{}.Validate())
	assert.Error(t, PublisherConfig{Brokers: []string{""}}.Validate())
	assert.NoError(t, PublisherConfig{Brokers: []string{"localhost:9092"}}.Validate())

	_, err := NewPublisher(PublisherConfig{}, nil)
	assert.Error(t, err)
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewLogReporter(hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Debug}))

	r.Report(context.Background(), transformer.Status{RunID: "run-1", Stage: transformer.StageTraversedTree, NodeCount: 7})
	assert.Contains(t, buf.String(), "TRAVERSED_TREE")
	assert.Contains(t, buf.String(), "nodes=7")

	buf.Reset()
	require.NoError(t, r.RecordRun(context.Background(), testReport(false)))
	assert.Contains(t, buf.String(), "status: run complete")

	buf.Reset()
	require.NoError(t, r.RecordRun(context.Background(), testReport(true)))
	out := buf.String()
	assert.Contains(t, out, "run incomplete")
	assert.Contains(t, out, "item queued for retry")
	assert.Contains(t, out, "item=n2")
}

type errRecorder struct{ err error }

func (e errRecorder) RecordRun(context.Context, *transformer.RunReport) error { return e.err }

func TestFanOut(t *testing.T) {
	var stages []string
	collect := transformer.ReporterFunc(func(_ context.Context, s transformer.Status) {
		stages = append(stages, s.Stage.String())
	})
	Reporters{collect, NewLogReporter(nil), collect}.Report(context.Background(), transformer.Status{Stage: transformer.StageEnd})
	assert.Equal(t, []string{"END", "END"}, stages)

	mock := &MockProducer{}
	recorders := Recorders{
		errRecorder{errors.New("ledger unavailable")},
		newPublisher(mock, PublisherConfig{Brokers: []string{"b"}}, nil),
		errRecorder{errors.New("disk full")},
	}
	err := recorders.RecordRun(context.Background(), testReport(false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ledger unavailable")
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, mock.records, 1, "a failing recorder does not stop the others")

	assert.NoError(t, Recorders{}.RecordRun(context.Background(), testReport(false)))
}

// TestPublisherIntegration publishes to a real broker.
// Run with: INTEGRATION_TEST=1 KAFKA_BROKERS=localhost:19092 go test ./pkg/status/...
func TestPublisherIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=1 to run.")
	}
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = "localhost:19092"
	}

	p, err := NewPublisher(PublisherConfig{Brokers: strings.Split(brokers, ","), Topic: "dtif.export-status.test"}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p.Report(ctx, transformer.Status{RunID: "integration", Stage: transformer.StageStart})
	require.NoError(t, p.RecordRun(ctx, testReport(false)))
	require.NoError(t, p.Close(ctx))
}
