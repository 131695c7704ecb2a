package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/pkg/types"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	publishErr error
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func newTestPublisher(channels ...*fakeChannel) (*Publisher, *int) {
	dials := 0
	p := NewPublisher("amqp://test")
	p.dial = func(string) (channel, func() error, error) {
		if dials >= len(channels) {
			return nil, nil, errors.New("no broker")
		}
		ch := channels[dials]
		dials++
		return ch, func() error { return nil }, nil
	}
	return p, &dials
}

func sampleEvent(eventType string) AppointmentEvent {
	return NewAppointmentEvent(eventType, &domain.Appointment{
		ID:          7,
		BusinessID:  3,
		CustomerID:  "customer_1",
		ServiceName: "Massage",
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:        types.MustTimeString("10:00"),
	}, time.Date(2024, 5, 30, 9, 0, 0, 0, time.UTC))
}

func TestPublisher_PublishesPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	p, dials := newTestPublisher(ch)

	require.NoError(t, p.Publish(context.Background(), sampleEvent(QueueAppointmentCreated)))
	require.NoError(t, p.Publish(context.Background(), sampleEvent(QueueAppointmentCreated)))

	assert.Equal(t, 1, *dials)
	assert.Equal(t, []string{QueueAppointmentCreated}, ch.declared)
	require.Len(t, ch.published, 2)
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)
	assert.Equal(t, "application/json", ch.published[0].ContentType)

	var decoded AppointmentEvent
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &decoded))
	assert.Equal(t, int64(7), decoded.AppointmentID)
	assert.Equal(t, "2024-06-01", decoded.Date)
	assert.Equal(t, "10:00", decoded.Time)
}

func TestPublisher_ReconnectsAfterFailure(t *testing.T) {
	broken := &fakeChannel{publishErr: errors.New("channel closed")}
	healthy := &fakeChannel{}
	p, dials := newTestPublisher(broken, healthy)

	err := p.Publish(context.Background(), sampleEvent(QueueAppointmentCancelled))
	assert.ErrorIs(t, err, ErrPublish)
	assert.True(t, broken.closed)

	require.NoError(t, p.Publish(context.Background(), sampleEvent(QueueAppointmentCancelled)))
	assert.Equal(t, 2, *dials)
	assert.Equal(t, []string{QueueAppointmentCancelled}, healthy.keys)
}

func TestPublisher_DialError(t *testing.T) {
	p, _ := newTestPublisher()

	err := p.Publish(context.Background(), sampleEvent(QueueAppointmentCreated))
	assert.ErrorIs(t, err, ErrConnect)
}
