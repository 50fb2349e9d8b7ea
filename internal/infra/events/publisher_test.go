package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda-marketplace/internal/logging"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type fakeOutbox struct {
	pending   []models.Notification
	published []string
}

func (f *fakeOutbox) FetchUnpublished(_ context.Context, limit int) ([]models.Notification, error) {
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutbox) MarkPublished(_ context.Context, ids []string, _ time.Time) error {
	f.published = append(f.published, ids...)
	return nil
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestPublishBatch(t *testing.T) {
	outbox := &fakeOutbox{pending: []models.Notification{
		{ID: "n1", Reference: "ref-1", Kind: "appointment.confirmed", Payload: `{"a":1}`},
		{ID: "n2", Reference: "ref-2", Kind: "appointment.cancelled", Payload: `{"a":2}`},
		{ID: "n3", Reference: "ref-3", Kind: "appointment.created", Payload: `{"a":3}`},
	}}
	writer := &fakeWriter{}

	p := NewPublisher(outbox, writer, logging.Discard(), PublisherConfig{Topic: "appointments", BatchSize: 2})

	n, err := p.PublishBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"n1", "n2"}, outbox.published)

	require.Len(t, writer.msgs, 2)
	assert.Equal(t, "appointments", writer.msgs[0].Topic)
	assert.Equal(t, []byte("ref-1"), writer.msgs[0].Key)
	assert.Equal(t, "event_type", writer.msgs[1].Headers[1].Key)
	assert.Equal(t, []byte("appointment.cancelled"), writer.msgs[1].Headers[1].Value)
}

func TestPublishBatch_WriterErrorKeepsOutbox(t *testing.T) {
	outbox := &fakeOutbox{pending: []models.Notification{{ID: "n1"}}}
	writer := &fakeWriter{err: errors.New("broker down")}

	p := NewPublisher(outbox, writer, logging.Discard(), PublisherConfig{})

	_, err := p.PublishBatch(context.Background())
	assert.Error(t, err)
	assert.Empty(t, outbox.published)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Nil(t, SplitBrokers(""))
	assert.Nil(t, NewKafkaWriter(""))
}
