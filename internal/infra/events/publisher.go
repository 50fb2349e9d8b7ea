package events

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type Outbox interface {
	FetchUnpublished(ctx context.Context, limit int) ([]models.Notification, error)
	MarkPublished(ctx context.Context, ids []string, at time.Time) error
}

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type PublisherConfig struct {
	Topic     string
	PollEvery time.Duration
	BatchSize int
}

// Publisher drains the notification outbox into Kafka.
type Publisher struct {
	outbox    Outbox
	writer    Writer
	logger    *slog.Logger
	topic     string
	pollEvery time.Duration
	batchSize int
	now       func() time.Time
}

func NewPublisher(outbox Outbox, writer Writer, logger *slog.Logger, cfg PublisherConfig) *Publisher {
	if cfg.PollEvery <= 0 {
		cfg.PollEvery = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.Topic == "" {
		cfg.Topic = "appointment.events"
	}
	return &Publisher{
		outbox:    outbox,
		writer:    writer,
		logger:    logger,
		topic:     cfg.Topic,
		pollEvery: cfg.PollEvery,
		batchSize: cfg.BatchSize,
		now:       time.Now,
	}
}

// NewKafkaWriter returns nil when no brokers are configured.
func NewKafkaWriter(brokers string) *kafka.Writer {
	list := SplitBrokers(brokers)
	if len(list) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(list...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

func SplitBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func (p *Publisher) Run(ctx context.Context) {
	if p.writer == nil {
		p.logger.Warn("event publisher disabled (no kafka brokers configured)")
		return
	}

	ticker := time.NewTicker(p.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := p.PublishBatch(ctx); err != nil {
				p.logger.Error("event publish failed", "err", err)
			}
		}
	}
}

// PublishBatch sends one batch and returns how many notifications were published.
func (p *Publisher) PublishBatch(ctx context.Context) (int, error) {
	records, err := p.outbox.FetchUnpublished(ctx, p.batchSize)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	msgs := make([]kafka.Message, 0, len(records))
	ids := make([]string, 0, len(records))
	for _, n := range records {
		msgs = append(msgs, kafka.Message{
			Topic: p.topic,
			Key:   []byte(n.Reference),
			Value: []byte(n.Payload),
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(n.ID)},
				{Key: "event_type", Value: []byte(n.Kind)},
			},
		})
		ids = append(ids, n.ID)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return 0, err
	}
	if err := p.outbox.MarkPublished(ctx, ids, p.now()); err != nil {
		return 0, err
	}

	return len(records), nil
}
