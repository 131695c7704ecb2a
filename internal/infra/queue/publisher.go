package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// channel часть *amqp.Channel, нужная издателю
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type dialFunc func(url string) (channel, func() error, error)

// Publisher публикует события записей в RabbitMQ.
// Соединение открывается лениво и переоткрывается после ошибки публикации.
type Publisher struct {
	url  string
	dial dialFunc

	mu       sync.Mutex
	ch       channel
	closeFn  func() error
	declared map[string]bool
}

// NewPublisher создает издателя для брокера по url
func NewPublisher(url string) *Publisher {
	return &Publisher{
		url:      url,
		dial:     dialAMQP,
		declared: make(map[string]bool),
	}
}

func dialAMQP(url string) (channel, func() error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	return ch, conn.Close, nil
}

// Publish отправляет событие в durable-очередь с именем event.Type
func (p *Publisher) Publish(ctx context.Context, event AppointmentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: Publish - marshal: %v", ErrPublish, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		ch, closeFn, err := p.dial(p.url)
		if err != nil {
			return fmt.Errorf("%w: Publish - dial: %v", ErrConnect, err)
		}
		p.ch = ch
		p.closeFn = closeFn
		p.declared = make(map[string]bool)
	}

	if !p.declared[event.Type] {
		if _, err := p.ch.QueueDeclare(event.Type, true, false, false, false, nil); err != nil {
			p.reset()
			return fmt.Errorf("%w: Publish - declare %s: %v", ErrPublish, event.Type, err)
		}
		p.declared[event.Type] = true
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx, "", event.Type, false, false, msg); err != nil {
		p.reset()
		return fmt.Errorf("%w: Publish - publish %s: %v", ErrPublish, event.Type, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.reset()
	return nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.closeFn != nil {
		_ = p.closeFn()
	}
	p.ch = nil
	p.closeFn = nil
}

// NoopPublisher используется, когда брокер отключен в конфигурации
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event AppointmentEvent) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
