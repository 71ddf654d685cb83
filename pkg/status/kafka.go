package status

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/hashicorp-forge/dtif/pkg/transformer"
)

// DefaultTopic is the topic events are published to when none is set.
const DefaultTopic = "dtif.export-status"

// producer is the part of *kgo.Client the publisher uses.
type producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Flush(ctx context.Context) error
	Close()
}

// PublisherConfig holds configuration for the publisher.
type PublisherConfig struct {
	Brokers []string
	Topic   string
	// Document is attached to status events, which do not carry it.
	Document string
}

func (c PublisherConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Brokers, validation.Required, validation.Each(validation.Required)),
	)
}

// Publisher publishes status events and run summaries to Kafka. Status
// events are produced asynchronously so the run is never held up by the
// broker; run summaries are produced synchronously.
type Publisher struct {
	client   producer
	topic    string
	document string
	logger   hclog.Logger
}

// NewPublisher creates a publisher connected to the configured brokers.
func NewPublisher(cfg PublisherConfig, logger hclog.Logger) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid kafka configuration: %w", err)
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.ZstdCompression(), kgo.GzipCompression()),
		kgo.RetryBackoffFn(func(tries int) time.Duration {
			backoff := time.Duration(tries) * 100 * time.Millisecond
			if backoff > 5*time.Second {
				backoff = 5 * time.Second
			}
			return backoff
		}),
		kgo.RequestRetries(5),
		kgo.ProducerLinger(10*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	return newPublisher(client, cfg, logger), nil
}

func newPublisher(client producer, cfg PublisherConfig, logger hclog.Logger) *Publisher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	topic := cfg.Topic
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{
		client:   client,
		topic:    topic,
		document: cfg.Document,
		logger:   logger.Named("kafka"),
	}
}

func (p *Publisher) record(e *Event) (*kgo.Record, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", e.Type, err)
	}
	return &kgo.Record{
		Topic: p.topic,
		Key:   []byte(partitionKey(e)),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "type", Value: []byte(e.Type)},
		},
	}, nil
}

// Report publishes a status event without waiting for the broker.
func (p *Publisher) Report(ctx context.Context, s transformer.Status) {
	rec, err := p.record(StatusEvent(p.document, s))
	if err != nil {
		p.logger.Warn("failed to build status event", "error", err)
		return
	}
	p.client.Produce(ctx, rec, func(r *kgo.Record, err error) {
		if err != nil {
			p.logger.Warn("failed to publish status event",
				"run_id", s.RunID,
				"stage", s.Stage,
				"error", err,
			)
		}
	})
}

// RecordRun publishes the run summary and waits until it is acknowledged.
func (p *Publisher) RecordRun(ctx context.Context, report *transformer.RunReport) error {
	rec, err := p.record(RunEvent(report))
	if err != nil {
		return err
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("failed to publish run summary: %w", err)
	}
	return nil
}

// Close flushes buffered events and closes the client.
func (p *Publisher) Close(ctx context.Context) error {
	err := p.client.Flush(ctx)
	p.client.Close()
	if err != nil {
		return fmt.Errorf("failed to flush status events: %w", err)
	}
	return nil
}

var (
	_ transformer.Reporter    = (*Publisher)(nil)
	_ transformer.RunRecorder = (*Publisher)(nil)
	_ producer                = (*kgo.Client)(nil)
)
