package rabbitmq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"quiz-contest-service/internal/app"
)

// Publisher pushes per-recipient message payloads onto durable queues, one
// queue per delivery channel. Queues are declared lazily on first publish.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	mu       sync.Mutex
	declared map[string]bool
}

var _ app.MessagePublisher = (*Publisher)(nil)

func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &Publisher{
		conn:     conn,
		ch:       ch,
		declared: make(map[string]bool),
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, queue string, body []byte) error {
	if err := p.ensureQueue(queue); err != nil {
		return err
	}
	err := p.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", queue, err)
	}
	return nil
}

func (p *Publisher) ensureQueue(queue string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.declared[queue] {
		return nil
	}
	if _, err := p.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	p.declared[queue] = true
	return nil
}

func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
